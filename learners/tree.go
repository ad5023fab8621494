package learners

import (
	"sort"

	"go-ml.dev/pkg/zorros"

	"go-ml.dev/pkg/tune/model"
	"go-ml.dev/pkg/tune/space"
	"go-ml.dev/pkg/tune/tasks"
)

/*
CART is a classification tree learner with gini splits on numeric
features. Cp is the minimal impurity decrease accepted for a split.
*/
type CART struct {
	MaxDepth int
	MinSplit int
	Cp       float64
}

func newCART(ps space.Assignment) (model.Learner, error) {
	m := &CART{
		MaxDepth: ps.Int("maxdepth", 10),
		MinSplit: ps.Int("minsplit", 2),
		Cp:       ps.Float("cp", 0),
	}
	if m.MaxDepth < 1 {
		return nil, zorros.Errorf("cart: maxdepth must be positive, got %d", m.MaxDepth)
	}
	if m.MinSplit < 2 {
		return nil, zorros.Errorf("cart: minsplit must be at least 2, got %d", m.MinSplit)
	}
	if m.Cp < 0 {
		return nil, zorros.Errorf("cart: cp must not be negative, got %v", m.Cp)
	}
	return m, nil
}

func (m *CART) Fit(t *tasks.Task, rows []int) (model.Predictor, error) {
	if len(rows) == 0 {
		return nil, zorros.Errorf("cart: no training rows")
	}
	feats := make([]int, t.Width())
	for j := range feats {
		feats[j] = j
	}
	return &TreeModel{Root: m.build(t, rows, feats, 0)}, nil
}

/*
TreeNode is a node of a fitted tree. Leaf nodes carry the positive
class fraction of their training rows.
*/
type TreeNode struct {
	Leaf        bool
	Prob        float64
	Feature     int
	Threshold   float64
	Left, Right *TreeNode
}

/*
TreeModel is a fitted CART predictor
*/
type TreeModel struct {
	Root *TreeNode
}

func (m *TreeModel) Prob(t *tasks.Task, rows []int) []float64 {
	out := make([]float64, len(rows))
	for i, j := range rows {
		out[i] = m.Root.prob(t.Row(j))
	}
	return out
}

func (n *TreeNode) prob(x []float64) float64 {
	for !n.Leaf {
		if x[n.Feature] <= n.Threshold {
			n = n.Left
		} else {
			n = n.Right
		}
	}
	return n.Prob
}

type split struct {
	gain      float64
	feature   int
	threshold float64
}

func (m *CART) build(t *tasks.Task, rows, feats []int, depth int) *TreeNode {
	pos := 0.0
	for _, i := range rows {
		pos += t.Y(i)
	}
	prob := pos / float64(len(rows))
	if depth >= m.MaxDepth || len(rows) < m.MinSplit || prob == 0 || prob == 1 {
		return &TreeNode{Leaf: true, Prob: prob}
	}
	best := split{feature: -1}
	parent := gini(prob)
	for _, f := range feats {
		if s, ok := bestSplit(t, rows, f, parent); ok && s.gain > best.gain {
			best = s
		}
	}
	if best.feature < 0 || best.gain <= m.Cp {
		return &TreeNode{Leaf: true, Prob: prob}
	}
	var left, right []int
	for _, i := range rows {
		if t.Row(i)[best.feature] <= best.threshold {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}
	return &TreeNode{
		Feature:   best.feature,
		Threshold: best.threshold,
		Left:      m.build(t, left, feats, depth+1),
		Right:     m.build(t, right, feats, depth+1),
	}
}

// bestSplit scans the thresholds between distinct sorted values of one
// feature and returns the highest-gain split.
func bestSplit(t *tasks.Task, rows []int, f int, parent float64) (split, bool) {
	type pair struct{ v, y float64 }
	vals := make([]pair, len(rows))
	for i, j := range rows {
		vals[i] = pair{t.Row(j)[f], t.Y(j)}
	}
	sort.Slice(vals, func(a, b int) bool { return vals[a].v < vals[b].v })
	n := float64(len(vals))
	total := 0.0
	for _, p := range vals {
		total += p.y
	}
	best := split{feature: -1}
	leftPos := 0.0
	for s := 1; s < len(vals); s++ {
		leftPos += vals[s-1].y
		if vals[s].v == vals[s-1].v {
			continue
		}
		ln, rn := float64(s), n-float64(s)
		weighted := ln/n*gini(leftPos/ln) + rn/n*gini((total-leftPos)/rn)
		if gain := parent - weighted; gain > best.gain {
			best = split{gain: gain, feature: f, threshold: (vals[s-1].v + vals[s].v) / 2}
		}
	}
	return best, best.feature >= 0
}

func gini(p float64) float64 {
	return 2 * p * (1 - p)
}

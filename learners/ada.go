package learners

import (
	"math"
	"sort"

	"go-ml.dev/pkg/zorros"

	"go-ml.dev/pkg/tune/model"
	"go-ml.dev/pkg/tune/space"
	"go-ml.dev/pkg/tune/tasks"
)

/*
Ada is an AdaBoost learner over decision stumps. Shrinkage scales every
stump vote; 1 is plain AdaBoost.
*/
type Ada struct {
	Rounds    int
	Shrinkage float64
}

func newAda(ps space.Assignment) (model.Learner, error) {
	m := &Ada{
		Rounds:    ps.Int("rounds", 50),
		Shrinkage: ps.Float("shrinkage", 1),
	}
	if m.Rounds < 1 {
		return nil, zorros.Errorf("ada: rounds must be positive, got %d", m.Rounds)
	}
	if m.Shrinkage <= 0 || m.Shrinkage > 1 {
		return nil, zorros.Errorf("ada: shrinkage %v is out of (0,1]", m.Shrinkage)
	}
	return m, nil
}

/*
Stump is one weighted decision stump: rows with the feature at or below
the threshold receive the Below vote, the rest the Above vote. Votes
are pre-scaled by the round weight.
*/
type Stump struct {
	Feature   int
	Threshold float64
	Below     float64
	Above     float64
}

/*
AdaModel is a fitted stump ensemble
*/
type AdaModel struct {
	Stumps []Stump
}

func (m *Ada) Fit(t *tasks.Task, rows []int) (model.Predictor, error) {
	if len(rows) == 0 {
		return nil, zorros.Errorf("ada: no training rows")
	}
	n := len(rows)
	y := make([]float64, n) // ±1 labels
	for i, j := range rows {
		y[i] = t.Y(j)*2 - 1
	}
	w := make([]float64, n)
	for i := range w {
		w[i] = 1 / float64(n)
	}
	out := &AdaModel{}
	for r := 0; r < m.Rounds; r++ {
		st, err := bestStump(t, rows, y, w)
		if err != 0 {
			eps := math.Min(math.Max(err, 1e-10), 1-1e-10)
			alpha := 0.5 * math.Log((1-eps)/eps) * m.Shrinkage
			st.Below *= alpha
			st.Above *= alpha
		} else {
			// perfect stump, take it with a capped vote and stop
			alpha := 0.5 * math.Log((1-1e-10)/1e-10) * m.Shrinkage
			st.Below *= alpha
			st.Above *= alpha
			out.Stumps = append(out.Stumps, st)
			break
		}
		out.Stumps = append(out.Stumps, st)
		z := 0.0
		for i, j := range rows {
			h := st.Above
			if t.Row(j)[st.Feature] <= st.Threshold {
				h = st.Below
			}
			w[i] *= math.Exp(-y[i] * h)
			z += w[i]
		}
		for i := range w {
			w[i] /= z
		}
	}
	return out, nil
}

// bestStump returns the stump with minimal weighted error and that
// error; the returned votes are the raw ±1 side predictions.
func bestStump(t *tasks.Task, rows []int, y, w []float64) (Stump, float64) {
	type pair struct {
		v  float64
		wy float64 // weight signed by label
	}
	best := Stump{Feature: -1}
	bestErr := math.Inf(1)
	wpos := 0.0 // error of the constant +1 stump
	for i := range y {
		if y[i] < 0 {
			wpos += w[i]
		}
	}
	for f := 0; f < t.Width(); f++ {
		vals := make([]pair, len(rows))
		for i, j := range rows {
			vals[i] = pair{v: t.Row(j)[f], wy: w[i] * y[i]}
		}
		sort.Slice(vals, func(a, b int) bool { return vals[a].v < vals[b].v })
		// err of stump (below:+1, above:-1) = wpos + sum_{below}(w if y>0 ... )
		// maintained incrementally: moving a row below flips its contribution
		errBelow := 0.0 // running signed adjustment
		for s := 1; s < len(vals); s++ {
			errBelow += vals[s-1].wy
			if vals[s].v == vals[s-1].v {
				continue
			}
			thr := (vals[s-1].v + vals[s].v) / 2
			// stump predicting -1 below, +1 above
			e := wpos + errBelow
			if e < bestErr {
				bestErr = e
				best = Stump{Feature: f, Threshold: thr, Below: -1, Above: 1}
			}
			// mirrored stump
			if 1-e < bestErr {
				bestErr = 1 - e
				best = Stump{Feature: f, Threshold: thr, Below: 1, Above: -1}
			}
		}
	}
	if best.Feature < 0 {
		// all feature values identical, fall back to the constant stump
		if wpos <= 0.5 {
			return Stump{Feature: 0, Threshold: math.Inf(1), Below: 1, Above: 1}, wpos
		}
		return Stump{Feature: 0, Threshold: math.Inf(1), Below: -1, Above: -1}, 1 - wpos
	}
	return best, bestErr
}

func (m *AdaModel) Prob(t *tasks.Task, rows []int) []float64 {
	out := make([]float64, len(rows))
	for i, j := range rows {
		x := t.Row(j)
		score := 0.0
		for _, st := range m.Stumps {
			if x[st.Feature] <= st.Threshold {
				score += st.Below
			} else {
				score += st.Above
			}
		}
		out[i] = sigmoid(2 * score)
	}
	return out
}

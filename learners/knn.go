package learners

import (
	"math"
	"sort"

	"go-ml.dev/pkg/zorros"

	"go-ml.dev/pkg/tune/fu"
	"go-ml.dev/pkg/tune/model"
	"go-ml.dev/pkg/tune/space"
	"go-ml.dev/pkg/tune/tasks"
)

/*
KNN is a lazy k-nearest neighbours classifier. Fit stores row views of
the training data; Prob is the neighbour vote fraction.
*/
type KNN struct {
	K         int
	Manhattan bool
}

func newKNN(ps space.Assignment) (model.Learner, error) {
	k := ps.Int("k", 5)
	if k < 1 {
		return nil, zorros.Errorf("knn: k must be positive, got %d", k)
	}
	switch d := ps.Choice("distance", "euclidean"); d {
	case "euclidean":
		return &KNN{K: k}, nil
	case "manhattan":
		return &KNN{K: k, Manhattan: true}, nil
	default:
		return nil, zorros.Errorf("knn: unknown distance `%v`", d)
	}
}

func (m *KNN) Fit(t *tasks.Task, rows []int) (model.Predictor, error) {
	if len(rows) == 0 {
		return nil, zorros.Errorf("knn: no training rows")
	}
	x := make([][]float64, len(rows))
	y := make([]float64, len(rows))
	for i, j := range rows {
		x[i] = t.Row(j)
		y[i] = t.Y(j)
	}
	return &KNNModel{K: fu.Mini(m.K, len(rows)), Manhattan: m.Manhattan, X: x, Y: y}, nil
}

/*
KNNModel is a fitted KNN predictor
*/
type KNNModel struct {
	K         int
	Manhattan bool
	X         [][]float64
	Y         []float64
}

func (m *KNNModel) Prob(t *tasks.Task, rows []int) []float64 {
	out := make([]float64, len(rows))
	for i, j := range rows {
		out[i] = m.vote(t.Row(j))
	}
	return out
}

func (m *KNNModel) vote(xi []float64) float64 {
	type pair struct{ d, v float64 }
	// bounded sorted list of the K nearest seen so far
	nbrs := make([]pair, 0, m.K)
	for j, xj := range m.X {
		d := euclidSquared(xi, xj)
		if m.Manhattan {
			d = manhattan(xi, xj)
		}
		if len(nbrs) < m.K {
			nbrs = append(nbrs, pair{d, m.Y[j]})
			sort.Slice(nbrs, func(a, b int) bool { return nbrs[a].d < nbrs[b].d })
		} else if d < nbrs[len(nbrs)-1].d {
			nbrs[len(nbrs)-1] = pair{d, m.Y[j]}
			sort.Slice(nbrs, func(a, b int) bool { return nbrs[a].d < nbrs[b].d })
		}
	}
	sum := 0.0
	for _, p := range nbrs {
		sum += p.v
	}
	return sum / float64(len(nbrs))
}

func euclidSquared(a, b []float64) float64 {
	sum := 0.0
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}

func manhattan(a, b []float64) float64 {
	sum := 0.0
	for i := range a {
		sum += math.Abs(a[i] - b[i])
	}
	return sum
}

package learners

import (
	"math/rand"

	"go-ml.dev/pkg/zorros"

	"go-ml.dev/pkg/tune/fu"
	"go-ml.dev/pkg/tune/model"
	"go-ml.dev/pkg/tune/space"
	"go-ml.dev/pkg/tune/tasks"
)

/*
Forest is a bagged ensemble of CART trees. Every tree trains on a
bootstrap sample of the rows and a random subset of Mtry features;
tree seeds derive from Seed, so a fit is reproducible.
*/
type Forest struct {
	Trees    int
	MaxDepth int
	MinSplit int
	Mtry     int
	Seed     int64
}

func newForest(ps space.Assignment) (model.Learner, error) {
	m := &Forest{
		Trees:    ps.Int("trees", 100),
		MaxDepth: ps.Int("maxdepth", 10),
		MinSplit: ps.Int("minsplit", 2),
		Mtry:     ps.Int("mtry", 0),
		Seed:     1,
	}
	if m.Trees < 1 {
		return nil, zorros.Errorf("forest: trees must be positive, got %d", m.Trees)
	}
	if m.MaxDepth < 1 {
		return nil, zorros.Errorf("forest: maxdepth must be positive, got %d", m.MaxDepth)
	}
	if m.Mtry < 0 {
		return nil, zorros.Errorf("forest: mtry must not be negative, got %d", m.Mtry)
	}
	return m, nil
}

func (m *Forest) Fit(t *tasks.Task, rows []int) (model.Predictor, error) {
	if len(rows) == 0 {
		return nil, zorros.Errorf("forest: no training rows")
	}
	mtry := fu.Mini(fu.Fnzi(m.Mtry, t.Width()), t.Width())
	tree := &CART{MaxDepth: m.MaxDepth, MinSplit: fu.Maxi(m.MinSplit, 2)}
	forest := &ForestModel{Trees: make([]*TreeModel, m.Trees)}
	for i := range forest.Trees {
		rng := rand.New(rand.NewSource(m.Seed + int64(i)))
		sample := make([]int, len(rows))
		for j := range sample {
			sample[j] = rows[rng.Intn(len(rows))]
		}
		feats := rng.Perm(t.Width())[:mtry]
		forest.Trees[i] = &TreeModel{Root: tree.build(t, sample, feats, 0)}
	}
	return forest, nil
}

/*
ForestModel is a fitted forest; its probability is the mean over trees
*/
type ForestModel struct {
	Trees []*TreeModel
}

func (m *ForestModel) Prob(t *tasks.Task, rows []int) []float64 {
	out := make([]float64, len(rows))
	for _, tree := range m.Trees {
		for i, p := range tree.Prob(t, rows) {
			out[i] += p
		}
	}
	for i := range out {
		out[i] /= float64(len(m.Trees))
	}
	return out
}

package eval_test

import (
	"testing"

	"go-ml.dev/pkg/zorros"
	"gotest.tools/assert"

	"go-ml.dev/pkg/tune/eval"
	_ "go-ml.dev/pkg/tune/learners"
	"go-ml.dev/pkg/tune/model"
	"go-ml.dev/pkg/tune/resample"
	"go-ml.dev/pkg/tune/space"
	"go-ml.dev/pkg/tune/tasks"
	"go-ml.dev/pkg/tune/tune"
)

func init() {
	// a family that always panics on fit, to exercise cell isolation
	model.Register("boom", model.Family{
		Factory: func(space.Assignment) (model.Learner, error) { return boom{}, nil },
		Space: func() *space.Space {
			return space.Lucky(func(s *space.Space) error { return s.AddInt("n", 1, 2) })
		},
	})
}

type boom struct{}

func (boom) Fit(*tasks.Task, []int) (model.Predictor, error) {
	panic(zorros.Errorf("boom"))
}

func knnTuner() *tune.AutoTuner {
	sp := space.Lucky(func(s *space.Space) error { return s.AddInt("k", 3, 21) })
	return &tune.AutoTuner{
		Learner:    "knn",
		Space:      sp,
		Resampling: resample.KFold{K: 3, Seed: 11},
		Measure:    model.Brier,
		Strategy:   tune.RandomSearch{Seed: 42},
		Budget:     5,
	}
}

func Test_NestedFoldCounts(t *testing.T) {
	task := tasks.Synthetic(160, 3, 5)
	res, err := eval.Nested(task, knnTuner(), resample.KFold{K: 4, Seed: 3}, model.Accuracy, model.AUC)
	assert.NilError(t, err)

	assert.Equal(t, len(res.Folds), 4)
	assert.Equal(t, len(res.Scores["accuracy"]), 4)
	assert.Equal(t, len(res.Scores["auc"]), 4)
	for _, name := range []string{"accuracy", "auc"} {
		for _, s := range res.Scores[name] {
			assert.Assert(t, s >= 0 && s <= 1)
		}
		assert.Assert(t, res.Means[name] >= 0 && res.Means[name] <= 1)
		assert.Assert(t, res.Stddev[name] >= 0)
	}
	// per-fold winners are retained, not averaged away
	for _, fr := range res.Folds {
		assert.Assert(t, fr != nil)
		assert.Equal(t, len(fr.Trials), 5)
		k := fr.Raw.Int("k", 0)
		assert.Assert(t, k >= 3 && k <= 21)
	}
}

func Test_NestedDefaultsToTunerMeasure(t *testing.T) {
	task := tasks.Synthetic(120, 3, 7)
	res, err := eval.Nested(task, knnTuner(), resample.Holdout{Ratio: 0.3, Seed: 1})
	assert.NilError(t, err)
	assert.Equal(t, len(res.Scores["brier"]), 1)
}

func Test_BenchmarkCellIsolation(t *testing.T) {
	ts := []*tasks.Task{tasks.Synthetic(120, 3, 1), tasks.Synthetic(120, 3, 2)}
	broken := knnTuner()
	broken.Learner = "boom"
	broken.Space = nil
	tuners := []*tune.AutoTuner{knnTuner(), broken}

	res := eval.Benchmark(ts, tuners, resample.KFold{K: 3, Seed: 5}, model.Accuracy)
	assert.Equal(t, len(res.Cells), 4)

	failed := 0
	for _, c := range res.Cells {
		if c.Learner == "boom" {
			assert.Assert(t, c.Err != nil)
			failed++
		} else {
			assert.NilError(t, c.Err)
			assert.Equal(t, len(c.Scores["accuracy"]), 3)
			assert.Assert(t, c.Means["accuracy"] > 0.5)
		}
	}
	assert.Equal(t, failed, 2)

	cell := res.Cell(ts[0].Name, "knn")
	assert.Assert(t, cell != nil && cell.Err == nil)
	assert.Assert(t, res.Cell("nosuch", "knn") == nil)
}

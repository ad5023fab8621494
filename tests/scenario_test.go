package tests

import (
	"testing"

	"gotest.tools/assert"

	"go-ml.dev/pkg/tune/eval"
	_ "go-ml.dev/pkg/tune/learners"
	"go-ml.dev/pkg/tune/model"
	"go-ml.dev/pkg/tune/resample"
	"go-ml.dev/pkg/tune/space"
	"go-ml.dev/pkg/tune/tasks"
	"go-ml.dev/pkg/tune/tune"
)

// The canonical walk-through: tune k of a k-NN learner over [3,51] with
// 20 random evaluations under 3-fold inner resampling minimizing the
// Brier score, refit on the training rows, then score held-out rows.
func Test_TuneKNN(t *testing.T) {
	task := tasks.Synthetic(300, 5, 99)
	train, test, err := task.Split(1.0/3, 1)
	assert.NilError(t, err)

	sp := space.Lucky(func(s *space.Space) error { return s.AddInt("k", 3, 51) })
	at := &tune.AutoTuner{
		Learner:    "knn",
		Space:      sp,
		Resampling: resample.KFold{K: 3, Seed: 17},
		Measure:    model.Brier,
		Strategy:   tune.RandomSearch{Seed: 7},
		Budget:     20,
	}
	assert.NilError(t, at.Train(task, train))

	r := at.Result()
	assert.Equal(t, len(r.Trials), 20)
	k := r.Params.Int("k", 0)
	assert.Assert(t, k >= 3 && k <= 51)
	assert.Assert(t, r.Score >= 0)

	prob, err := at.Predict(task, test)
	assert.NilError(t, err)
	truth := task.Labels(test)
	acc := model.Accuracy.Score(prob, truth)
	auc := model.AUC.Score(prob, truth)
	assert.Assert(t, acc >= 0 && acc <= 1)
	assert.Assert(t, auc >= 0 && auc <= 1)
	assert.Assert(t, acc > 0.8) // blobs this separated are easy
	assert.Assert(t, auc > 0.8)
}

// Nested resampling around the same tuner, plus a small benchmark grid
// comparing learner families under a shared outer scheme.
func Test_NestedAndBenchmark(t *testing.T) {
	task := tasks.Synthetic(200, 4, 21)

	sp := space.Lucky(func(s *space.Space) error { return s.AddInt("k", 3, 31) })
	knn := &tune.AutoTuner{
		Learner:    "knn",
		Space:      sp,
		Resampling: resample.KFold{K: 3, Seed: 2},
		Measure:    model.Brier,
		Strategy:   tune.RandomSearch{Seed: 4},
		Budget:     8,
	}
	nested, err := eval.Nested(task, knn, resample.KFold{K: 5, Seed: 6}, model.Accuracy, model.AUC)
	assert.NilError(t, err)
	assert.Equal(t, len(nested.Folds), 5)
	assert.Equal(t, len(nested.Scores["accuracy"]), 5)
	assert.Assert(t, nested.Means["auc"] > 0.8)

	svm := &tune.AutoTuner{
		Learner:    "svm",
		Resampling: resample.KFold{K: 3, Seed: 2},
		Measure:    model.AUC,
		Strategy:   tune.RandomSearch{Seed: 4},
		Budget:     6,
		Workers:    2,
	}
	res := eval.Benchmark([]*tasks.Task{task}, []*tune.AutoTuner{knn, svm}, resample.KFold{K: 3, Seed: 8}, model.Accuracy)
	assert.Equal(t, len(res.Cells), 2)
	for _, c := range res.Cells {
		assert.NilError(t, c.Err)
		assert.Equal(t, len(c.Scores["accuracy"]), 3)
		assert.Assert(t, c.Means["accuracy"] > 0.7)
	}
}

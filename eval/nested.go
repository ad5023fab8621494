/*
Package eval orchestrates outer evaluation loops around auto-tuning
learners: nested resampling for unbiased performance estimates and
benchmark grids for cross-learner comparison.
*/
package eval

import (
	"gonum.org/v1/gonum/stat"

	"go-ml.dev/pkg/zorros"

	"go-ml.dev/pkg/tune/model"
	"go-ml.dev/pkg/tune/resample"
	"go-ml.dev/pkg/tune/tasks"
	"go-ml.dev/pkg/tune/tune"
)

/*
NestedResult aggregates an outer resampling loop wrapped around an
inner tuning loop. Scores holds one outer score per fold and measure;
Folds keeps every fold's inner tuning result, because different folds
may legitimately select different winners and that divergence is meant
to be inspected, not averaged away.
*/
type NestedResult struct {
	Scores map[string][]float64
	Means  map[string]float64
	Stddev map[string]float64
	Folds  []*tune.Result
}

/*
Nested evaluates an auto-tuning learner under an outer resampling loop.
Each outer fold trains a fresh clone of the tuner (inner search plus
refit) on the fold's training rows and scores the held-out rows under
every measure; with no measures given, the tuner's own measure is used.
*/
func Nested(t *tasks.Task, at *tune.AutoTuner, outer resample.Strategy, measures ...model.Measure) (*NestedResult, error) {
	if len(measures) == 0 {
		measures = []model.Measure{at.Measure}
	}
	folds, err := outer.Split(t.Rows())
	if err != nil {
		return nil, zorros.Wrapf(err, "outer resampling: %v", err.Error())
	}
	r := &NestedResult{
		Scores: map[string][]float64{},
		Means:  map[string]float64{},
		Stddev: map[string]float64{},
	}
	for _, fold := range folds {
		c := at.Clone()
		if err := c.Train(t, fold.Train); err != nil {
			return nil, err
		}
		prob, err := c.Predict(t, fold.Test)
		if err != nil {
			return nil, err
		}
		truth := t.Labels(fold.Test)
		for _, m := range measures {
			r.Scores[m.Name] = append(r.Scores[m.Name], m.Score(prob, truth))
		}
		r.Folds = append(r.Folds, c.Result())
	}
	for _, m := range measures {
		r.Means[m.Name] = stat.Mean(r.Scores[m.Name], nil)
		r.Stddev[m.Name] = stat.StdDev(r.Scores[m.Name], nil)
	}
	return r, nil
}

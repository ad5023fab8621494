package tune

import (
	"fmt"

	"go-ml.dev/pkg/zorros"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"

	"go-ml.dev/pkg/tune/fu"
	"go-ml.dev/pkg/tune/model"
	"go-ml.dev/pkg/tune/resample"
	"go-ml.dev/pkg/tune/space"
	"go-ml.dev/pkg/tune/tasks"
)

/*
AutoTuner is a learner wrapper performing an inner hyper-parameter
search before fitting. Train evaluates up to Budget candidates by inner
resampling restricted to the training rows, picks the best per the
measure direction with ties broken by proposal order, and refits the
learner with the winning configuration on all training rows.

A trained instance refuses another Train until Reset; use Clone for
concurrent outer-fold evaluations, instances are not goroutine safe.
*/
type AutoTuner struct {
	Learner    string            // registered learner family name
	Space      *space.Space      // nil takes the family default
	Resampling resample.Strategy // inner resampling
	Measure    model.Measure
	Strategy   Strategy
	Budget     int
	Workers    int          // concurrent candidate evaluations, 0/1 = sequential
	Journal    *Journal     // optional per-trial persistence
	Verbose    func(string) // optional per-trial progress callback

	fitted model.Predictor
	result *Result
}

/*
Trial is one evaluated candidate configuration
*/
type Trial struct {
	Index  int
	Raw    space.Assignment
	Params space.Assignment // raw with declared transforms applied
	Score  float64
}

/*
Result is the outcome of an inner search: the winning raw and
transformed assignments, its score, and every evaluated trial
*/
type Result struct {
	Raw    space.Assignment
	Params space.Assignment
	Score  float64
	Trials []Trial
	RunID  string // set when a journal recorded the run
}

func (a *AutoTuner) Train(t *tasks.Task, rows []int) error {
	if a.fitted != nil {
		return model.ErrAlreadyTrained
	}
	family, sp, err := a.config()
	if err != nil {
		return err
	}
	candidates, err := a.Strategy.Propose(sp, a.Budget)
	if err != nil {
		return zorros.Wrapf(err, "proposing candidates: %v", err.Error())
	}
	folds, err := a.Resampling.Split(rows)
	if err != nil {
		return zorros.Wrapf(err, "inner resampling: %v", err.Error())
	}

	trials := make([]Trial, len(candidates))
	var g errgroup.Group
	sem := make(chan struct{}, fu.Maxi(a.Workers, 1))
	for i := range candidates {
		i := i
		g.Go(func() (err error) {
			sem <- struct{}{}
			defer func() { <-sem }()
			// a panicking learner must not tear down sibling candidates
			defer func() {
				if p := recover(); p != nil {
					err = zorros.Errorf("candidate %d panicked: %v", i, p)
				}
			}()
			trial := Trial{Index: i, Raw: candidates[i], Params: sp.Transformed(candidates[i])}
			score, err := a.evaluate(t, folds, family, trial.Params)
			if err != nil {
				return zorros.Wrapf(err, "candidate %s: %v", sp.Key(trial.Raw), err.Error())
			}
			trial.Score = score
			trials[i] = trial
			if a.Verbose != nil {
				a.Verbose(fmt.Sprintf("[%3d] %s: %s %.5f", i, sp.Key(trial.Raw), a.Measure.Name, score))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	// selection happens after all scores are in, in proposal order, so
	// the winner does not depend on goroutine completion order
	best := 0
	for i := 1; i < len(trials); i++ {
		if a.Measure.Better(trials[i].Score, trials[best].Score) {
			best = i
		}
	}

	result := &Result{
		Raw:    trials[best].Raw,
		Params: trials[best].Params,
		Score:  trials[best].Score,
		Trials: trials,
	}
	if a.Journal != nil {
		if result.RunID, err = a.Journal.Record(t.Name, a.Learner, trials); err != nil {
			return err
		}
	}

	learner, err := family.Factory(result.Params)
	if err != nil {
		return zorros.Wrapf(err, "winning configuration: %v", err.Error())
	}
	fitted, err := learner.Fit(t, rows)
	if err != nil {
		return zorros.Wrapf(err, "refitting winner: %v", err.Error())
	}
	a.fitted = fitted
	a.result = result
	return nil
}

// evaluate scores one candidate as the mean measure value over the
// inner folds.
func (a *AutoTuner) evaluate(t *tasks.Task, folds []resample.Fold, family model.Family, params space.Assignment) (float64, error) {
	scores := make([]float64, len(folds))
	for k, fold := range folds {
		learner, err := family.Factory(params)
		if err != nil {
			return 0, err
		}
		fitted, err := learner.Fit(t, fold.Train)
		if err != nil {
			return 0, err
		}
		scores[k] = a.Measure.Score(fitted.Prob(t, fold.Test), t.Labels(fold.Test))
	}
	return stat.Mean(scores, nil), nil
}

/*
Predict maps rows of a task to positive-class probabilities using the
refit winner; it fails with model.ErrNotTrained before Train.
*/
func (a *AutoTuner) Predict(t *tasks.Task, rows []int) ([]float64, error) {
	if a.fitted == nil {
		return nil, model.ErrNotTrained
	}
	return a.fitted.Prob(t, rows), nil
}

// Result returns the inner search outcome of the last Train, nil when
// untrained.
func (a *AutoTuner) Result() *Result {
	return a.result
}

// Fitted returns the refit winning predictor, nil when untrained.
func (a *AutoTuner) Fitted() model.Predictor {
	return a.fitted
}

/*
Reset discards the fit and the tuning result, returning the tuner to
its pre-train state so it can be reused in a fresh evaluation without
leaking state from a previous fold
*/
func (a *AutoTuner) Reset() {
	a.fitted = nil
	a.result = nil
}

// Clone returns a fresh untrained tuner with the same configuration.
func (a *AutoTuner) Clone() *AutoTuner {
	return &AutoTuner{
		Learner:    a.Learner,
		Space:      a.Space,
		Resampling: a.Resampling,
		Measure:    a.Measure,
		Strategy:   a.Strategy,
		Budget:     a.Budget,
		Workers:    a.Workers,
		Journal:    a.Journal,
		Verbose:    a.Verbose,
	}
}

func (a *AutoTuner) config() (model.Family, *space.Space, error) {
	family, err := model.Lookup(a.Learner)
	if err != nil {
		return model.Family{}, nil, err
	}
	if a.Resampling == nil || a.Strategy == nil || a.Measure.Fn == nil {
		return model.Family{}, nil, zorros.Errorf("auto-tuner for `%v` is not fully configured", a.Learner)
	}
	sp := a.Space
	if sp == nil {
		sp = family.Space()
	}
	if sp.Len() == 0 {
		return model.Family{}, nil, zorros.Errorf("auto-tuner for `%v` has an empty search space", a.Learner)
	}
	return family, sp, nil
}

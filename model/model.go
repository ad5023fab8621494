package model

import (
	"golang.org/x/xerrors"

	"go-ml.dev/pkg/tune/tasks"
)

/*
Learner is a trainable binary classifier constructor bound to a
hyper-parameter assignment. Fit never mutates the task.
*/
type Learner interface {
	Fit(t *tasks.Task, rows []int) (Predictor, error)
}

/*
Predictor is a fitted model mapping rows of a task to positive-class
probabilities
*/
type Predictor interface {
	Prob(t *tasks.Task, rows []int) []float64
}

// ErrNotTrained is returned by predict-like operations before training.
var ErrNotTrained = xerrors.New("model is not trained")

// ErrAlreadyTrained is returned by Train on a trained instance that was
// not Reset first.
var ErrAlreadyTrained = xerrors.New("model is already trained, reset it first")

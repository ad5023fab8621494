package tasks

import (
	"go-ml.dev/pkg/zorros"

	"go-ml.dev/pkg/tune/fu"
)

/*
Task is an immutable handle of a binary classification dataset.
It owns a feature table and a 0/1 label column; train/test views
are row-index subsets and never copy the data.
*/
type Task struct {
	Name     string
	Features []string
	x        [][]float64
	label    []float64
}

/*
New creates a task from a row-major feature table and a 0/1 label column
*/
func New(name string, features []string, x [][]float64, label []float64) (*Task, error) {
	if len(x) == 0 {
		return nil, zorros.Errorf("task `%v` has no rows", name)
	}
	if len(x) != len(label) {
		return nil, zorros.Errorf("task `%v`: %d rows but %d labels", name, len(x), len(label))
	}
	for i, row := range x {
		if len(row) != len(features) {
			return nil, zorros.Errorf("task `%v`: row %d has %d values, want %d", name, i, len(row), len(features))
		}
	}
	for i, y := range label {
		if y != 0 && y != 1 {
			return nil, zorros.Errorf("task `%v`: label %d is %v, want 0 or 1", name, i, y)
		}
	}
	return &Task{Name: name, Features: features, x: x, label: label}, nil
}

// Len returns the row count.
func (t *Task) Len() int { return len(t.x) }

// Width returns the feature count.
func (t *Task) Width() int { return len(t.Features) }

// Row returns the feature vector of a single row.
func (t *Task) Row(i int) []float64 { return t.x[i] }

// Y returns the 0/1 label of a single row.
func (t *Task) Y(i int) float64 { return t.label[i] }

// Rows returns the identifiers of all rows.
func (t *Task) Rows() []int { return fu.Seq(t.Len()) }

// Labels gathers the labels of the given rows.
func (t *Task) Labels(rows []int) []float64 {
	r := make([]float64, len(rows))
	for i, j := range rows {
		r[i] = t.label[j]
	}
	return r
}

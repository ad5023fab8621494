package eval

import (
	"go-ml.dev/pkg/zorros"
	"go-ml.dev/pkg/zorros/zlog"

	"go-ml.dev/pkg/tune/model"
	"go-ml.dev/pkg/tune/resample"
	"go-ml.dev/pkg/tune/tasks"
	"go-ml.dev/pkg/tune/tune"
)

/*
Cell is one independent evaluation unit of a benchmark grid. A failed
cell carries its error and empty scores.
*/
type Cell struct {
	Task    string
	Learner string
	Scores  map[string][]float64
	Means   map[string]float64
	Folds   []*tune.Result
	Err     error
}

/*
BenchResult holds the cells of a benchmark grid in task-major order
*/
type BenchResult struct {
	Cells []Cell
}

// Cell finds a cell by task and learner name, nil when absent.
func (b *BenchResult) Cell(task, learner string) *Cell {
	for i := range b.Cells {
		if b.Cells[i].Task == task && b.Cells[i].Learner == learner {
			return &b.Cells[i]
		}
	}
	return nil
}

/*
Benchmark evaluates every (task, learner) pair under the same outer
resampling scheme. Cells are independent: an error or panic in one
cell is recorded on that cell and never aborts its siblings.
*/
func Benchmark(ts []*tasks.Task, tuners []*tune.AutoTuner, outer resample.Strategy, measures ...model.Measure) *BenchResult {
	r := &BenchResult{}
	for _, t := range ts {
		for _, at := range tuners {
			cell := Cell{Task: t.Name, Learner: at.Learner}
			res, err := runCell(t, at, outer, measures)
			if err != nil {
				cell.Err = err
				zlog.Warning(err.Error())
			} else {
				cell.Scores = res.Scores
				cell.Means = res.Means
				cell.Folds = res.Folds
			}
			r.Cells = append(r.Cells, cell)
		}
	}
	return r
}

func runCell(t *tasks.Task, at *tune.AutoTuner, outer resample.Strategy, measures []model.Measure) (res *NestedResult, err error) {
	defer func() {
		if p := recover(); p != nil {
			res, err = nil, zorros.Errorf("benchmark cell (%v, %v) panicked: %v", t.Name, at.Learner, p)
		}
	}()
	return Nested(t, at, outer, measures...)
}

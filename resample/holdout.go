package resample

import (
	"math/rand"

	"go-ml.dev/pkg/zorros"
)

/*
Holdout produces a single shuffled train/test partition with the given
test fraction
*/
type Holdout struct {
	Ratio float64
	Seed  int64
}

func (h Holdout) Split(rows []int) ([]Fold, error) {
	if h.Ratio <= 0 || h.Ratio >= 1 {
		return nil, zorros.Errorf("holdout ratio %v is out of (0,1)", h.Ratio)
	}
	if len(rows) < 2 {
		return nil, zorros.Errorf("cannot split %d rows", len(rows))
	}
	rng := rand.New(rand.NewSource(h.Seed))
	shuffled := make([]int, len(rows))
	for i, j := range rng.Perm(len(rows)) {
		shuffled[i] = rows[j]
	}
	n := int(float64(len(rows)) * h.Ratio)
	if n == 0 {
		n = 1
	}
	return []Fold{{Train: shuffled[n:], Test: shuffled[:n]}}, nil
}

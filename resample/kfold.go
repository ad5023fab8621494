package resample

import (
	"math/rand"

	"go-ml.dev/pkg/zorros"
)

/*
KFold shuffles the rows with the given seed and splits them into K
folds; every row lands in exactly one test set. The first len(rows)%K
folds receive one extra test row.
*/
type KFold struct {
	K    int
	Seed int64
}

func (k KFold) Split(rows []int) ([]Fold, error) {
	if k.K < 2 {
		return nil, zorros.Errorf("k-fold needs at least 2 folds, got %d", k.K)
	}
	if len(rows) < k.K {
		return nil, zorros.Errorf("cannot split %d rows into %d folds", len(rows), k.K)
	}
	rng := rand.New(rand.NewSource(k.Seed))
	shuffled := make([]int, len(rows))
	for i, j := range rng.Perm(len(rows)) {
		shuffled[i] = rows[j]
	}
	folds := make([]Fold, k.K)
	size, rem := len(rows)/k.K, len(rows)%k.K
	at := 0
	for i := range folds {
		n := size
		if i < rem {
			n++
		}
		test := shuffled[at : at+n]
		train := make([]int, 0, len(rows)-n)
		train = append(train, shuffled[:at]...)
		train = append(train, shuffled[at+n:]...)
		folds[i] = Fold{Train: train, Test: test}
		at += n
	}
	return folds, nil
}

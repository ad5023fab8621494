package tasks

import (
	"math/rand"

	"go-ml.dev/pkg/zorros"
)

/*
Split partitions the task rows into disjoint train and test row-id sets.
testRatio is the test fraction; the shuffle is fully determined by seed.
*/
func (t *Task) Split(testRatio float64, seed int64) (train, test []int, err error) {
	if testRatio <= 0 || testRatio >= 1 {
		return nil, nil, zorros.Errorf("test ratio %v is out of (0,1)", testRatio)
	}
	rng := rand.New(rand.NewSource(seed))
	perm := rng.Perm(t.Len())
	n := int(float64(t.Len()) * testRatio)
	if n == 0 {
		n = 1
	}
	test = append(test, perm[:n]...)
	train = append(train, perm[n:]...)
	return
}

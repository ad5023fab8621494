package tasks

import (
	"fmt"
	"math/rand"
)

/*
Synthetic generates a seeded two-class dataset of n rows and the given
feature width. Class centers sit at -1 and +1 in every dimension with
unit Gaussian noise, so the classes are separable but not trivially so.
It stands in for the fixed datasets the library is demonstrated on.
*/
func Synthetic(n, width int, seed int64) *Task {
	rng := rand.New(rand.NewSource(seed))
	x := make([][]float64, n)
	label := make([]float64, n)
	features := make([]string, width)
	for j := range features {
		features[j] = fmt.Sprintf("Feature%d", j+1)
	}
	for i := range x {
		c := float64(i % 2)
		center := c*2 - 1 // class 0 at -1, class 1 at +1
		row := make([]float64, width)
		for j := range row {
			row[j] = center + rng.NormFloat64()
		}
		x[i] = row
		label[i] = c
	}
	t, err := New(fmt.Sprintf("synthetic-%d", seed), features, x, label)
	if err != nil {
		panic(err)
	}
	return t
}

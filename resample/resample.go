/*
Package resample generates deterministic train/test row-id partitions
for model evaluation
*/
package resample

/*
Fold is one train/test partition of row ids. Train and Test are always
disjoint.
*/
type Fold struct {
	Train, Test []int
}

/*
Strategy is a fold-generation policy. Split is deterministic for a
given strategy configuration and input row set.
*/
type Strategy interface {
	Split(rows []int) ([]Fold, error)
}

/*
Package learners provides the built-in binary classifier families the
tuning layer searches over: k-nearest neighbours, CART decision trees,
bagged forests, boosted stumps and Pegasos SVMs. Importing the package
registers every family together with its default search space.
*/
package learners

import (
	"encoding/gob"
	"math"

	"go-ml.dev/pkg/tune/model"
	"go-ml.dev/pkg/tune/space"
)

func init() {
	model.Register("knn", model.Family{Factory: newKNN, Space: knnSpace})
	model.Register("cart", model.Family{Factory: newCART, Space: cartSpace})
	model.Register("forest", model.Family{Factory: newForest, Space: forestSpace})
	model.Register("ada", model.Family{Factory: newAda, Space: adaSpace})
	model.Register("svm", model.Family{Factory: newSVM, Space: svmSpace})

	gob.Register(&KNNModel{})
	gob.Register(&TreeModel{})
	gob.Register(&ForestModel{})
	gob.Register(&AdaModel{})
	gob.Register(&LinearSVMModel{})
	gob.Register(&RadialSVMModel{})
}

func knnSpace() *space.Space {
	return space.Lucky(func(s *space.Space) error {
		if err := s.AddInt("k", 3, 51); err != nil {
			return err
		}
		return s.AddChoice("distance", "euclidean", "manhattan")
	})
}

func cartSpace() *space.Space {
	return space.Lucky(func(s *space.Space) error {
		if err := s.AddInt("maxdepth", 1, 30); err != nil {
			return err
		}
		if err := s.AddInt("minsplit", 2, 60); err != nil {
			return err
		}
		return s.Add(space.Param{
			Name: "cp", Kind: space.Real, Min: -4, Max: -1,
			Transform: func(v float64) float64 { return math.Pow(10, v) },
		})
	})
}

func forestSpace() *space.Space {
	return space.Lucky(func(s *space.Space) error {
		if err := s.AddInt("trees", 10, 200); err != nil {
			return err
		}
		if err := s.AddInt("maxdepth", 1, 30); err != nil {
			return err
		}
		return s.AddInt("mtry", 1, 8)
	})
}

func adaSpace() *space.Space {
	return space.Lucky(func(s *space.Space) error {
		if err := s.AddInt("rounds", 10, 200); err != nil {
			return err
		}
		return s.AddFloat("shrinkage", 0.01, 1)
	})
}

// svmSpace declares the canonical conditional parameter: gamma is only
// active when the kernel is radial. cost and gamma tune on a log2 scale.
func svmSpace() *space.Space {
	pow2 := func(v float64) float64 { return math.Pow(2, v) }
	return space.Lucky(func(s *space.Space) error {
		if err := s.Add(space.Param{Name: "cost", Kind: space.Real, Min: -3, Max: 3, Transform: pow2}); err != nil {
			return err
		}
		if err := s.AddChoice("kernel", "linear", "radial"); err != nil {
			return err
		}
		return s.Add(space.Param{
			Name: "gamma", Kind: space.Real, Min: -3, Max: 3,
			Transform: pow2,
			When:      &space.Condition{Key: "kernel", AnyOf: []string{"radial"}},
		})
	})
}

func sigmoid(v float64) float64 {
	return 1 / (1 + math.Exp(-v))
}

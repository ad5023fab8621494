package model

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

/*
Measure scores positive-class probabilities against 0/1 ground truth.
Minimize declares the optimization direction.
*/
type Measure struct {
	Name     string
	Minimize bool
	Fn       func(prob, label []float64) float64
}

// Score evaluates the measure.
func (m Measure) Score(prob, label []float64) float64 { return m.Fn(prob, label) }

/*
Better reports whether score a strictly improves on score b per the
measure direction. NaN never improves and is always improved upon.
*/
func (m Measure) Better(a, b float64) bool {
	if math.IsNaN(a) {
		return false
	}
	if math.IsNaN(b) {
		return true
	}
	if m.Minimize {
		return a < b
	}
	return a > b
}

// Accuracy is the fraction of rows classified correctly at the 0.5 threshold.
var Accuracy = Measure{
	Name: "accuracy",
	Fn: func(prob, label []float64) float64 {
		c := 0
		for i, p := range prob {
			if (p >= 0.5) == (label[i] == 1) {
				c++
			}
		}
		return float64(c) / float64(len(prob))
	},
}

/*
AUC is the area under the ROC curve, computed as the Mann-Whitney rank
statistic with tie-averaged ranks
*/
var AUC = Measure{
	Name: "auc",
	Fn: func(prob, label []float64) float64 {
		n := len(prob)
		ord := make([]int, n)
		for i := range ord {
			ord[i] = i
		}
		sort.Slice(ord, func(a, b int) bool { return prob[ord[a]] < prob[ord[b]] })
		ranks := make([]float64, n)
		for i := 0; i < n; {
			j := i
			for j < n && prob[ord[j]] == prob[ord[i]] {
				j++
			}
			r := float64(i+j+1) / 2 // average 1-based rank over the tie run
			for k := i; k < j; k++ {
				ranks[ord[k]] = r
			}
			i = j
		}
		pos, sum := 0.0, 0.0
		for i, y := range label {
			if y == 1 {
				pos++
				sum += ranks[i]
			}
		}
		neg := float64(n) - pos
		if pos == 0 || neg == 0 {
			return math.NaN()
		}
		return (sum - pos*(pos+1)/2) / (pos * neg)
	},
}

// Brier is the mean squared distance between probability and truth.
var Brier = Measure{
	Name:     "brier",
	Minimize: true,
	Fn: func(prob, label []float64) float64 {
		sq := make([]float64, len(prob))
		for i, p := range prob {
			d := p - label[i]
			sq[i] = d * d
		}
		return stat.Mean(sq, nil)
	},
}

// LogLoss is the mean negative log likelihood, with probabilities
// clamped away from 0 and 1.
var LogLoss = Measure{
	Name:     "logloss",
	Minimize: true,
	Fn: func(prob, label []float64) float64 {
		const eps = 1e-15
		ll := make([]float64, len(prob))
		for i, p := range prob {
			p = math.Min(math.Max(p, eps), 1-eps)
			if label[i] == 1 {
				ll[i] = -math.Log(p)
			} else {
				ll[i] = -math.Log(1 - p)
			}
		}
		return stat.Mean(ll, nil)
	},
}

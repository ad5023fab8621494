package model_test

import (
	"math"
	"testing"

	"gotest.tools/assert"

	"go-ml.dev/pkg/tune/model"
)

func Test_Accuracy(t *testing.T) {
	prob := []float64{0.9, 0.8, 0.4, 0.6}
	label := []float64{1, 1, 0, 0}
	assert.Equal(t, model.Accuracy.Score(prob, label), 0.75)
	assert.Assert(t, !model.Accuracy.Minimize)
}

func Test_AUC(t *testing.T) {
	label := []float64{1, 1, 0, 0}
	assert.Equal(t, model.AUC.Score([]float64{0.9, 0.8, 0.2, 0.1}, label), 1.0)
	assert.Equal(t, model.AUC.Score([]float64{0.1, 0.2, 0.8, 0.9}, label), 0.0)
	// all probabilities tied: no ranking information
	assert.Equal(t, model.AUC.Score([]float64{0.5, 0.5, 0.5, 0.5}, label), 0.5)
	// degenerate single-class truth has no defined AUC
	assert.Assert(t, math.IsNaN(model.AUC.Score([]float64{0.9, 0.8}, []float64{1, 1})))
}

func Test_Brier(t *testing.T) {
	label := []float64{1, 0}
	assert.Equal(t, model.Brier.Score([]float64{1, 0}, label), 0.0)
	assert.Equal(t, model.Brier.Score([]float64{0.5, 0.5}, label), 0.25)
	assert.Assert(t, model.Brier.Minimize)
}

func Test_LogLoss(t *testing.T) {
	label := []float64{1, 0}
	assert.Assert(t, model.LogLoss.Score([]float64{1, 0}, label) < 1e-10)
	assert.Assert(t, model.LogLoss.Score([]float64{0.5, 0.5}, label) > 0.69) // ln 2
}

func Test_BetterHonorsDirection(t *testing.T) {
	assert.Assert(t, model.Accuracy.Better(0.9, 0.8))
	assert.Assert(t, !model.Accuracy.Better(0.8, 0.9))
	assert.Assert(t, !model.Accuracy.Better(0.8, 0.8)) // ties keep the incumbent
	assert.Assert(t, model.Brier.Better(0.1, 0.2))
	assert.Assert(t, !model.Brier.Better(0.2, 0.1))
	assert.Assert(t, model.Brier.Better(0.1, math.NaN()))
	assert.Assert(t, !model.Brier.Better(math.NaN(), 0.1))
}

package learners

import (
	"math"
	"math/rand"

	"go-ml.dev/pkg/zorros"

	"go-ml.dev/pkg/tune/fu"
	"go-ml.dev/pkg/tune/model"
	"go-ml.dev/pkg/tune/space"
	"go-ml.dev/pkg/tune/tasks"
)

/*
SVM is a Pegasos-style support vector machine with a linear or radial
kernel. Gamma applies to the radial kernel only; the default search
space declares it conditionally on kernel=radial. Probabilities are a
logistic squash of the margin.
*/
type SVM struct {
	Cost   float64
	Radial bool
	Gamma  float64
	Epochs int
	Seed   int64
}

func newSVM(ps space.Assignment) (model.Learner, error) {
	m := &SVM{
		Cost:   ps.Float("cost", 1),
		Gamma:  ps.Float("gamma", 0.5),
		Epochs: 50,
		Seed:   1,
	}
	if m.Cost <= 0 {
		return nil, zorros.Errorf("svm: cost must be positive, got %v", m.Cost)
	}
	switch k := ps.Choice("kernel", "linear"); k {
	case "linear":
	case "radial":
		m.Radial = true
		if m.Gamma <= 0 {
			return nil, zorros.Errorf("svm: gamma must be positive, got %v", m.Gamma)
		}
	default:
		return nil, zorros.Errorf("svm: unknown kernel `%v`", k)
	}
	return m, nil
}

func (m *SVM) Fit(t *tasks.Task, rows []int) (model.Predictor, error) {
	if len(rows) == 0 {
		return nil, zorros.Errorf("svm: no training rows")
	}
	if m.Radial {
		return m.fitRadial(t, rows)
	}
	return m.fitLinear(t, rows)
}

func (m *SVM) fitLinear(t *tasks.Task, rows []int) (model.Predictor, error) {
	n := len(rows)
	lambda := 1 / (m.Cost * float64(n))
	rng := rand.New(rand.NewSource(m.Seed))
	w := make([]float64, t.Width())
	b := 0.0
	for iter := 1; iter <= fu.Fnzi(m.Epochs, 50)*n; iter++ {
		i := rows[rng.Intn(n)]
		x, y := t.Row(i), t.Y(i)*2-1
		eta := 1 / (lambda * float64(iter))
		margin := dot(w, x) + b
		for j := range w {
			w[j] *= 1 - eta*lambda
		}
		if y*margin < 1 {
			for j := range w {
				w[j] += eta * y * x[j]
			}
			b += eta * y
		}
	}
	return &LinearSVMModel{W: w, B: b}, nil
}

func (m *SVM) fitRadial(t *tasks.Task, rows []int) (model.Predictor, error) {
	n := len(rows)
	lambda := 1 / (m.Cost * float64(n))
	rng := rand.New(rand.NewSource(m.Seed))
	x := make([][]float64, n)
	y := make([]float64, n)
	for i, j := range rows {
		x[i] = t.Row(j)
		y[i] = t.Y(j)*2 - 1
	}
	alpha := make([]float64, n)
	iters := fu.Fnzi(m.Epochs, 50) * n
	for iter := 1; iter <= iters; iter++ {
		i := rng.Intn(n)
		s := 0.0
		for j := range alpha {
			if alpha[j] != 0 {
				s += alpha[j] * y[j] * rbf(x[j], x[i], m.Gamma)
			}
		}
		s /= lambda * float64(iter)
		if y[i]*s < 1 {
			alpha[i]++
		}
	}
	return &RadialSVMModel{X: x, Y: y, Alpha: alpha, Gamma: m.Gamma, Scale: 1 / (lambda * float64(iters))}, nil
}

/*
LinearSVMModel is a fitted linear-kernel SVM
*/
type LinearSVMModel struct {
	W []float64
	B float64
}

func (m *LinearSVMModel) Prob(t *tasks.Task, rows []int) []float64 {
	out := make([]float64, len(rows))
	for i, j := range rows {
		out[i] = sigmoid(dot(m.W, t.Row(j)) + m.B)
	}
	return out
}

/*
RadialSVMModel is a fitted RBF-kernel SVM in dual form
*/
type RadialSVMModel struct {
	X     [][]float64
	Y     []float64
	Alpha []float64
	Gamma float64
	Scale float64
}

func (m *RadialSVMModel) Prob(t *tasks.Task, rows []int) []float64 {
	out := make([]float64, len(rows))
	for i, j := range rows {
		x := t.Row(j)
		s := 0.0
		for k := range m.Alpha {
			if m.Alpha[k] != 0 {
				s += m.Alpha[k] * m.Y[k] * rbf(m.X[k], x, m.Gamma)
			}
		}
		out[i] = sigmoid(s * m.Scale)
	}
	return out
}

func dot(a, b []float64) float64 {
	sum := 0.0
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}

func rbf(a, b []float64, gamma float64) float64 {
	return math.Exp(-gamma * euclidSquared(a, b))
}

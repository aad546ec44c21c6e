package predictor

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/optimize"
	"gonum.org/v1/gonum/stat"
)

// Logistic is an L2-regularised logistic regression over standardised features
type Logistic struct {
	// Lambda weights the L2 penalty. The intercept is penalised too so that
	// a single-class ledger still yields finite parameters.
	Lambda float64
}

// NewLogistic returns a classifier with the default penalty
func NewLogistic() *Logistic {
	return &Logistic{Lambda: 0.1}
}

// Fit minimises the mean log loss plus penalty with BFGS
func (l *Logistic) Fit(X [][]float64, y []float64) (Model, error) {
	if len(X) == 0 || len(X) != len(y) {
		return nil, fmt.Errorf("logistic: %d rows with %d labels", len(X), len(y))
	}
	dims := len(X[0])

	m := &logisticModel{mean: make([]float64, dims), std: make([]float64, dims)}
	col := make([]float64, len(X))
	for j := 0; j < dims; j++ {
		for i, row := range X {
			col[i] = row[j]
		}
		m.mean[j], m.std[j] = stat.MeanStdDev(col, nil)
		if m.std[j] == 0 || math.IsNaN(m.std[j]) {
			m.std[j] = 1
		}
	}

	Z := make([][]float64, len(X))
	for i, row := range X {
		Z[i] = m.standardise(row)
	}
	n := float64(len(Z))

	problem := optimize.Problem{
		Func: func(theta []float64) float64 {
			loss := 0.0
			for i, z := range Z {
				s := theta[dims] + floats.Dot(theta[:dims], z)
				// log(1+e^s) - y*s, written to stay finite for large |s|
				loss += softplus(s) - y[i]*s
			}
			return loss/n + l.Lambda/2*floats.Dot(theta, theta)
		},
		Grad: func(grad, theta []float64) {
			for k := range grad {
				grad[k] = 0
			}
			for i, z := range Z {
				r := sigmoid(theta[dims]+floats.Dot(theta[:dims], z)) - y[i]
				floats.AddScaled(grad[:dims], r, z)
				grad[dims] += r
			}
			floats.Scale(1/n, grad)
			floats.AddScaled(grad, l.Lambda, theta)
		},
	}

	result, err := optimize.Minimize(problem, make([]float64, dims+1), nil, &optimize.BFGS{})
	if result == nil {
		return nil, fmt.Errorf("logistic: minimise: %w", err)
	}
	// A line search that stalls near the optimum still leaves a usable location
	for _, v := range result.X {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("logistic: diverged (status %v): %w", result.Status, err)
		}
	}

	m.weights = append([]float64(nil), result.X[:dims]...)
	m.bias = result.X[dims]
	return m, nil
}

type logisticModel struct {
	mean, std []float64
	weights   []float64
	bias      float64
}

func (m *logisticModel) standardise(x []float64) []float64 {
	z := make([]float64, len(x))
	for j := range x {
		z[j] = (x[j] - m.mean[j]) / m.std[j]
	}
	return z
}

func (m *logisticModel) PredictProbability(x []float64) float64 {
	return sigmoid(m.bias + floats.Dot(m.weights, m.standardise(x)))
}

func sigmoid(s float64) float64 {
	if s >= 0 {
		return 1 / (1 + math.Exp(-s))
	}
	e := math.Exp(s)
	return e / (1 + e)
}

func softplus(s float64) float64 {
	if s > 0 {
		return s + math.Log1p(math.Exp(-s))
	}
	return math.Log1p(math.Exp(s))
}

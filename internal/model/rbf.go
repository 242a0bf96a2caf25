package model

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Params holds the fixed hyperparameters of the RBF kernel regressor. They
// mirror the SVR-style configuration surface: C is the inverse regularization
// strength (ridge penalty lambda = 1/C), Gamma the kernel width, and Epsilon
// the tolerance band used to count support points.
type Params struct {
	C       float64 `yaml:"c" json:"c"`
	Gamma   float64 `yaml:"gamma" json:"gamma"`
	Epsilon float64 `yaml:"epsilon" json:"epsilon"`
}

// DefaultParams returns the hyperparameters used throughout the impact
// analysis.
func DefaultParams() Params {
	return Params{C: 100, Gamma: 0.1, Epsilon: 0.1}
}

// Validate checks that the hyperparameters are usable.
func (p Params) Validate() error {
	if p.C <= 0 {
		return fmt.Errorf("model params: C must be positive, got %g", p.C)
	}
	if p.Gamma <= 0 {
		return fmt.Errorf("model params: gamma must be positive, got %g", p.Gamma)
	}
	if p.Epsilon < 0 {
		return fmt.Errorf("model params: epsilon must be non-negative, got %g", p.Epsilon)
	}
	return nil
}

// RBFRegressor is a radial-basis-function kernel ridge regressor. Fit solves
// the regularized kernel system (K + lambda*I) alpha = y in closed form, so
// training is deterministic for deterministic inputs. Features follow the
// rows-are-samples convention of mat.Dense; single-feature inputs are n×1
// matrices.
type RBFRegressor struct {
	params Params

	trainX       *mat.Dense
	alpha        []float64
	supportCount int
	fitted       bool
}

// NewRBFRegressor returns an unfitted regressor with the given
// hyperparameters.
func NewRBFRegressor(params Params) *RBFRegressor {
	return &RBFRegressor{params: params}
}

// Fit trains the regressor on feature rows X and targets y. A zero-variance
// target still fits (the solution degenerates toward a constant); the caller
// is responsible for flagging the resulting R² as unreliable.
func (r *RBFRegressor) Fit(X *mat.Dense, y []float64) error {
	if err := r.params.Validate(); err != nil {
		return err
	}
	n, _ := X.Dims()
	if n == 0 {
		return fmt.Errorf("rbf regressor: cannot fit on empty training set")
	}
	if n != len(y) {
		return fmt.Errorf("rbf regressor: %d feature rows vs %d targets", n, len(y))
	}

	lambda := 1 / r.params.C
	gram := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			k := r.kernel(X.RawRowView(i), X.RawRowView(j))
			if i == j {
				k += lambda
			}
			gram.SetSym(i, j, k)
		}
	}

	var chol mat.Cholesky
	if ok := chol.Factorize(gram); !ok {
		return fmt.Errorf("rbf regressor: kernel matrix is not positive definite")
	}

	var alphaVec mat.VecDense
	if err := chol.SolveVecTo(&alphaVec, mat.NewVecDense(n, y)); err != nil {
		return fmt.Errorf("rbf regressor: solving kernel system: %w", err)
	}

	r.trainX = mat.DenseCopyOf(X)
	r.alpha = make([]float64, n)
	copy(r.alpha, alphaVec.RawVector().Data)
	r.fitted = true
	r.supportCount = r.countSupport(y)
	return nil
}

// Predict evaluates the fitted kernel expansion on feature rows X.
func (r *RBFRegressor) Predict(X *mat.Dense) ([]float64, error) {
	if !r.fitted {
		return nil, fmt.Errorf("rbf regressor: predict called before fit")
	}
	m, cols := X.Dims()
	trainRows, trainCols := r.trainX.Dims()
	if cols != trainCols {
		return nil, fmt.Errorf("rbf regressor: %d feature columns, trained on %d", cols, trainCols)
	}

	out := make([]float64, m)
	for j := 0; j < m; j++ {
		row := X.RawRowView(j)
		sum := 0.0
		for i := 0; i < trainRows; i++ {
			sum += r.alpha[i] * r.kernel(row, r.trainX.RawRowView(i))
		}
		out[j] = sum
	}
	return out, nil
}

// SupportCount reports how many training residuals fell outside the epsilon
// tolerance band after fitting.
func (r *RBFRegressor) SupportCount() int {
	return r.supportCount
}

func (r *RBFRegressor) kernel(a, b []float64) float64 {
	d2 := 0.0
	for i := range a {
		d := a[i] - b[i]
		d2 += d * d
	}
	return math.Exp(-r.params.Gamma * d2)
}

func (r *RBFRegressor) countSupport(y []float64) int {
	fitted, err := r.Predict(r.trainX)
	if err != nil {
		return 0
	}
	count := 0
	for i := range y {
		if math.Abs(fitted[i]-y[i]) > r.params.Epsilon {
			count++
		}
	}
	return count
}

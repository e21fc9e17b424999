// Package regress provides the baseline regressors of the wear-loss
// comparison experiment and the metrics used to score every model, neural or
// not.
package regress

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// Model is the fitting surface shared by every regressor in the comparison.
type Model interface {
	Fit(x *mat.Dense, y []float64) error
	Predict(x *mat.Dense) ([]float64, error)
}

// Linear is ordinary least squares with an intercept term.
type Linear struct {
	coef []float64 // intercept first
}

// Fit solves the least-squares problem for x against y.
func (l *Linear) Fit(x *mat.Dense, y []float64) error {
	rows, cols := x.Dims()
	if rows != len(y) {
		return errors.Errorf("x has %d rows, y has %d values", rows, len(y))
	}
	if rows < cols+1 {
		return errors.Errorf("need at least %d rows to fit %d coefficients, got %d", cols+1, cols+1, rows)
	}

	a := withIntercept(x)

	var beta mat.VecDense
	if err := beta.SolveVec(a, mat.NewVecDense(rows, append([]float64(nil), y...))); err != nil {
		return errors.Wrap(err, "least squares solve failed")
	}

	l.coef = make([]float64, cols+1)
	for i := range l.coef {
		l.coef[i] = beta.AtVec(i)
	}
	return nil
}

// Predict applies the fitted coefficients to each row of x.
func (l *Linear) Predict(x *mat.Dense) ([]float64, error) {
	if l.coef == nil {
		return nil, errors.New("model has not been fit")
	}
	rows, cols := x.Dims()
	if cols != len(l.coef)-1 {
		return nil, errors.Errorf("model was fit on %d features, given %d", len(l.coef)-1, cols)
	}

	preds := make([]float64, rows)
	for i := 0; i < rows; i++ {
		p := l.coef[0]
		for j := 0; j < cols; j++ {
			p += l.coef[j+1] * x.At(i, j)
		}
		preds[i] = p
	}
	return preds, nil
}

// Polynomial fits least squares over per-feature power expansions up to
// Degree. No cross terms are generated.
type Polynomial struct {
	Degree int

	lin     Linear
	numFeat int
}

// Fit expands the features and solves the resulting linear problem.
func (p *Polynomial) Fit(x *mat.Dense, y []float64) error {
	if p.Degree < 1 {
		return errors.Errorf("degree must be >= 1 (%d)", p.Degree)
	}

	_, p.numFeat = x.Dims()
	return p.lin.Fit(p.expand(x), y)
}

// Predict applies the fitted expansion to each row of x.
func (p *Polynomial) Predict(x *mat.Dense) ([]float64, error) {
	_, cols := x.Dims()
	if cols != p.numFeat {
		return nil, errors.Errorf("model was fit on %d features, given %d", p.numFeat, cols)
	}
	return p.lin.Predict(p.expand(x))
}

// expand maps each feature value v to v, v², ..., v^Degree.
func (p *Polynomial) expand(x *mat.Dense) *mat.Dense {
	rows, cols := x.Dims()
	out := mat.NewDense(rows, cols*p.Degree, nil)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			v := x.At(i, j)
			pow := 1.0
			for d := 0; d < p.Degree; d++ {
				pow *= v
				out.Set(i, j*p.Degree+d, pow)
			}
		}
	}
	return out
}

// withIntercept prepends a column of ones to x.
func withIntercept(x *mat.Dense) *mat.Dense {
	rows, cols := x.Dims()
	a := mat.NewDense(rows, cols+1, nil)
	for i := 0; i < rows; i++ {
		a.Set(i, 0, 1)
		for j := 0; j < cols; j++ {
			a.Set(i, j+1, x.At(i, j))
		}
	}
	return a
}

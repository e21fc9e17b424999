package regress

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/tribolab/wearnet/dataset"
)

// MSE returns the mean squared error between predictions and targets. The
// slices must have equal, nonzero length.
func MSE(preds, targets []float64) float64 {
	var sum float64
	for i := range preds {
		d := preds[i] - targets[i]
		sum += d * d
	}
	return sum / float64(len(preds))
}

// RMSE returns the root mean squared error.
func RMSE(preds, targets []float64) float64 {
	return math.Sqrt(MSE(preds, targets))
}

// R2 returns the coefficient of determination. A constant target yields NaN.
func R2(preds, targets []float64) float64 {
	mean := stat.Mean(targets, nil)

	var ssRes, ssTot float64
	for i := range targets {
		r := targets[i] - preds[i]
		t := targets[i] - mean
		ssRes += r * r
		ssTot += t * t
	}
	return 1 - ssRes/ssTot
}

// CrossValidate scores a model family by k-fold cross-validation, returning
// the mean squared error averaged over the held-out folds. newModel must
// return a fresh, unfit model; no state crosses fold boundaries.
func CrossValidate(newModel func() Model, x *mat.Dense, y []float64, k int, seed int64) (float64, error) {
	rows, cols := x.Dims()
	if rows != len(y) {
		return 0, errors.Errorf("x has %d rows, y has %d values", rows, len(y))
	}

	folds, err := dataset.KFold(rows, k, seed)
	if err != nil {
		return 0, err
	}

	var mean float64
	for i, fold := range folds {
		held := make(map[int]bool, len(fold))
		for _, r := range fold {
			held[r] = true
		}

		trainX := mat.NewDense(rows-len(fold), cols, nil)
		trainY := make([]float64, 0, rows-len(fold))
		testX := mat.NewDense(len(fold), cols, nil)
		testY := make([]float64, 0, len(fold))

		ti, hi := 0, 0
		for r := 0; r < rows; r++ {
			if held[r] {
				testX.SetRow(hi, x.RawRowView(r))
				testY = append(testY, y[r])
				hi++
			} else {
				trainX.SetRow(ti, x.RawRowView(r))
				trainY = append(trainY, y[r])
				ti++
			}
		}

		m := newModel()
		if err := m.Fit(trainX, trainY); err != nil {
			return 0, errors.Wrapf(err, "fold %d fit failed", i)
		}
		preds, err := m.Predict(testX)
		if err != nil {
			return 0, errors.Wrapf(err, "fold %d predict failed", i)
		}

		mean += MSE(preds, testY)
	}

	return mean / float64(len(folds)), nil
}

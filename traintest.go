package wearnet

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// EpochResult records the losses of one training epoch.
type EpochResult struct {
	Epoch     int
	TrainLoss float64
	ValLoss   float64
}

// History is the append-only record of a training run, one entry per epoch
// actually run. It is read by the early-stopping rule during the run and by
// reporting afterwards.
type History struct {
	Epochs []EpochResult
}

// Len returns the number of epochs recorded.
func (h *History) Len() int {
	return len(h.Epochs)
}

// TrainLoss returns the training-loss series.
func (h *History) TrainLoss() []float64 {
	ls := make([]float64, len(h.Epochs))
	for i, e := range h.Epochs {
		ls[i] = e.TrainLoss
	}
	return ls
}

// ValLoss returns the validation-loss series.
func (h *History) ValLoss() []float64 {
	ls := make([]float64, len(h.Epochs))
	for i, e := range h.Epochs {
		ls[i] = e.ValLoss
	}
	return ls
}

// Fit trains the network on x and y, which are expected already scaled to a
// bounded range. A validation split of ValFraction rows is held out once, via
// the run-owned generator, before the first epoch.
//
// Each epoch runs a training-mode forward pass over the training split,
// records its mean squared error, backpropagates, applies the Rprop update,
// and then records the inference-mode validation loss. Whenever the validation
// loss improves on the best seen by strictly more than MinDelta, the weights
// are snapshotted; Patience consecutive epochs without such an improvement
// stop the run and restore the snapshot. Hitting MaxEpochs stops with the live
// weights. Both are normal terminations and leave the network usable for
// prediction.
//
// A non-finite training or validation loss aborts the run with a NumericError
// alongside the history recorded so far; the loop performs no retries.
func (net *Network) Fit(x *mat.Dense, y []float64) (*History, error) {
	rows, cols := x.Dims()
	if cols != net.inputSize {
		return nil, SizeMismatchError{net.inputSize, cols, "input columns"}
	}
	if rows != len(y) {
		return nil, SizeMismatchError{rows, len(y), "target length"}
	}
	if rows == 0 {
		return nil, ErrNoTrainingData
	}
	if rows < 2 {
		return nil, ErrTooFewRows
	}

	nVal := int(float64(rows) * net.cfg.ValFraction)
	if nVal < 1 {
		nVal = 1
	}

	perm := net.rng.Perm(rows)
	valX, valY := subset(x, y, perm[:nVal])
	trainX, trainY := subset(x, y, perm[nVal:])

	hist := new(History)
	best := math.Inf(1)
	var bestWeights []*mat.Dense
	badEpochs := 0

	for epoch := 0; epoch < net.cfg.MaxEpochs; epoch++ {
		cache := net.forward(trainX, true)
		trainLoss := meanSquaredError(cache.output(), trainY)

		net.applyRprop(net.gradients(cache, trainY))

		valLoss := meanSquaredError(net.forward(valX, false).output(), valY)

		hist.Epochs = append(hist.Epochs, EpochResult{epoch, trainLoss, valLoss})

		if math.IsNaN(trainLoss) || math.IsInf(trainLoss, 0) {
			return hist, NumericError{epoch, "training loss"}
		}
		if math.IsNaN(valLoss) || math.IsInf(valLoss, 0) {
			return hist, NumericError{epoch, "validation loss"}
		}

		if valLoss < best-net.cfg.MinDelta {
			best = valLoss
			badEpochs = 0
			bestWeights = net.snapshot()
		} else {
			badEpochs++
			if badEpochs >= net.cfg.Patience {
				if bestWeights != nil {
					net.restore(bestWeights)
				}
				break
			}
		}
	}

	return hist, nil
}

// meanSquaredError averages the squared residuals between an m×1 output and
// the targets.
func meanSquaredError(out *mat.Dense, targets []float64) float64 {
	var sum float64
	for i, t := range targets {
		d := out.At(i, 0) - t
		sum += d * d
	}
	return sum / float64(len(targets))
}

// subset copies the given rows of x and y into freshly allocated storage.
func subset(x *mat.Dense, y []float64, idx []int) (*mat.Dense, []float64) {
	_, cols := x.Dims()
	sx := mat.NewDense(len(idx), cols, nil)
	sy := make([]float64, len(idx))
	for i, r := range idx {
		sx.SetRow(i, x.RawRowView(r))
		sy[i] = y[r]
	}
	return sx, sy
}

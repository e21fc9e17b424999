package wearnet

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

// linearDataset builds n rows of y = 3*x1 - 2*x2 + noise, min-max scaled to
// [0,1] like the external scaler would.
func linearDataset(n int, noise float64, seed int64) (*mat.Dense, []float64) {
	rng := rand.New(rand.NewSource(seed))

	x := mat.NewDense(n, 2, nil)
	y := make([]float64, n)
	for i := 0; i < n; i++ {
		x1, x2 := rng.Float64(), rng.Float64()
		x.Set(i, 0, x1)
		x.Set(i, 1, x2)
		y[i] = 3*x1 - 2*x2 + noise*rng.NormFloat64()
	}

	lo, hi := y[0], y[0]
	for _, v := range y {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	for i := range y {
		y[i] = (y[i] - lo) / (hi - lo)
	}

	return x, y
}

func TestFitInputValidation(t *testing.T) {
	net, err := New(2, DefaultConfig())
	require.NoError(t, err)

	_, err = net.Fit(mat.NewDense(4, 3, nil), make([]float64, 4))
	assert.IsType(t, SizeMismatchError{}, err)

	_, err = net.Fit(mat.NewDense(4, 2, nil), make([]float64, 3))
	assert.IsType(t, SizeMismatchError{}, err)

	_, err = net.Fit(mat.NewDense(1, 2, nil), make([]float64, 1))
	assert.Equal(t, ErrTooFewRows, err)
}

func TestEarlyStoppingTerminationAndRestore(t *testing.T) {
	cfg := DefaultConfig()
	cfg.HiddenLayers = 1
	cfg.Neurons = 4
	cfg.MaxEpochs = 50
	cfg.Patience = 3
	cfg.Seed = 21

	// an unreachable improvement threshold means only epoch 0 ever improves
	stalled := cfg
	stalled.MinDelta = 1e9

	x, y := linearDataset(24, 0.02, 1)

	a, err := New(2, stalled)
	require.NoError(t, err)
	hist, err := a.Fit(x, y)
	require.NoError(t, err)

	// epoch 0 improves, epochs 1..Patience do not; the run stops at epoch
	// index Patience with every epoch recorded
	require.Equal(t, stalled.Patience+1, hist.Len())
	assert.Equal(t, hist.Len(), len(hist.TrainLoss()))
	assert.Equal(t, hist.Len(), len(hist.ValLoss()))

	// the restored weights are the epoch-0 snapshot: reproduce it with an
	// identically seeded network trained for exactly one epoch
	oneEpoch := cfg
	oneEpoch.MaxEpochs = 1

	b, err := New(2, oneEpoch)
	require.NoError(t, err)
	_, err = b.Fit(x, y)
	require.NoError(t, err)

	for i := range a.layers {
		assert.True(t, mat.Equal(a.layers[i], b.layers[i]),
			"layer %d: early stopping did not restore the epoch-0 snapshot", i)
	}
}

func TestMaxEpochsTermination(t *testing.T) {
	cfg := DefaultConfig()
	cfg.HiddenLayers = 1
	cfg.Neurons = 4
	cfg.MaxEpochs = 17
	cfg.Patience = 1000

	net, err := New(2, cfg)
	require.NoError(t, err)

	x, y := linearDataset(24, 0.02, 2)
	hist, err := net.Fit(x, y)
	require.NoError(t, err)

	assert.Equal(t, cfg.MaxEpochs, hist.Len())
	for i, e := range hist.Epochs {
		assert.Equal(t, i, e.Epoch)
	}

	// both terminal states leave the network usable
	preds, err := net.Predict(x)
	require.NoError(t, err)
	assert.Len(t, preds, 24)
}

func TestFitReportsNonFiniteLoss(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxEpochs = 5

	net, err := New(2, cfg)
	require.NoError(t, err)

	// squared residuals against these targets overflow immediately
	x, _ := linearDataset(10, 0, 3)
	y := make([]float64, 10)
	for i := range y {
		y[i] = math.MaxFloat64
	}

	hist, err := net.Fit(x, y)
	require.Error(t, err)
	assert.IsType(t, NumericError{}, err)
	assert.Equal(t, 1, hist.Len(), "the failing epoch is still recorded")
}

func TestTrainingReducesLossOnLinearTarget(t *testing.T) {
	cfg := DefaultConfig()
	cfg.HiddenLayers = 2
	cfg.Neurons = 8
	cfg.MaxEpochs = 200
	cfg.Patience = 15
	cfg.Dropout = 0
	cfg.Seed = 4

	net, err := New(2, cfg)
	require.NoError(t, err)

	x, y := linearDataset(20, 0.02, 4)
	hist, err := net.Fit(x, y)
	require.NoError(t, err)
	require.Greater(t, hist.Len(), 0)

	best := math.Inf(1)
	for _, v := range hist.ValLoss() {
		best = math.Min(best, v)
	}

	assert.Less(t, best, 0.05, "a near-linear target on the normalized scale should fit well")
	assert.Less(t, hist.TrainLoss()[hist.Len()-1], hist.TrainLoss()[0],
		"training loss should improve over the run")
}

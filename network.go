package wearnet

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

// Network is the trainable state of one run: per-layer weight matrices plus
// the parallel Rprop bookkeeping (adaptive step sizes and previous gradients).
// The three sequences keep identical shapes, entry for entry, for the lifetime
// of the network.
type Network struct {
	cfg       Config
	inputSize int

	layers    []*mat.Dense
	stepSizes []*mat.Dense
	prevGrads []*mat.Dense

	// rng drives weight init, the validation split and dropout masks. It is
	// owned by the run, never shared across networks.
	rng *rand.Rand
}

// New allocates a network for inputs of width inputSize: HiddenLayers+1 weight
// matrices of shape (inputSize, Neurons), (Neurons, Neurons)... and finally
// (Neurons, 1). Weights are drawn i.i.d. from a zero-mean Gaussian scaled by
// sqrt(2/fanIn), which keeps activation variance roughly stable across layers
// at initialization. Step sizes start at StepInit, previous gradients at zero.
func New(inputSize int, cfg Config) (*Network, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if inputSize < 1 {
		return nil, ConfigError{"inputSize", "must be >= 1"}
	}

	net := &Network{
		cfg:       cfg,
		inputSize: inputSize,
		rng:       rand.New(rand.NewSource(cfg.Seed)),
	}

	fanIn := inputSize
	for l := 0; l <= cfg.HiddenLayers; l++ {
		fanOut := cfg.Neurons
		if l == cfg.HiddenLayers {
			fanOut = 1
		}

		w := mat.NewDense(fanIn, fanOut, nil)
		sd := math.Sqrt(2 / float64(fanIn))
		for i := 0; i < fanIn; i++ {
			for j := 0; j < fanOut; j++ {
				w.Set(i, j, net.rng.NormFloat64()*sd)
			}
		}

		steps := mat.NewDense(fanIn, fanOut, nil)
		data := steps.RawMatrix().Data
		for i := range data {
			data[i] = cfg.StepInit
		}

		net.layers = append(net.layers, w)
		net.stepSizes = append(net.stepSizes, steps)
		net.prevGrads = append(net.prevGrads, mat.NewDense(fanIn, fanOut, nil))
		fanIn = fanOut
	}

	return net, nil
}

// InputSize returns the expected number of input columns.
func (net *Network) InputSize() int {
	return net.inputSize
}

// Config returns the configuration the network was built from.
func (net *Network) Config() Config {
	return net.cfg
}

// Predict runs an inference-mode forward pass and returns one prediction per
// row of x. Dropout is the identity here regardless of the configured rate.
// If the column count of x disagrees with the network's input width, a
// SizeMismatchError is returned.
func (net *Network) Predict(x *mat.Dense) ([]float64, error) {
	_, cols := x.Dims()
	if cols != net.inputSize {
		return nil, SizeMismatchError{net.inputSize, cols, "input columns"}
	}

	cache := net.forward(x, false)
	out := cache.acts[len(cache.acts)-1]

	rows, _ := out.Dims()
	preds := make([]float64, rows)
	for i := range preds {
		preds[i] = out.At(i, 0)
	}

	return preds, nil
}

// snapshot deep-copies the weight matrices. The copy shares no backing storage
// with the live weights, so later updates cannot mutate a frozen checkpoint.
func (net *Network) snapshot() []*mat.Dense {
	ws := make([]*mat.Dense, len(net.layers))
	for i, w := range net.layers {
		ws[i] = mat.DenseCopyOf(w)
	}
	return ws
}

// restore copies a snapshot back into the live weights.
func (net *Network) restore(ws []*mat.Dense) {
	for i, w := range ws {
		net.layers[i].Copy(w)
	}
}

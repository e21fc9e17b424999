package wearnet

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// gradients computes one weight-gradient matrix per layer from a training-mode
// forward pass, by the reverse-mode chain rule through the tanh derivatives.
//
// The output error is (prediction - target); the 1/m scaling happens at each
// weight-gradient step. Dropout needs no special handling here: units dropped
// in the forward pass carry zero activation and contribute zero gradient
// through the chain rule on their own.
func (net *Network) gradients(cache *forwardCache, targets []float64) []*mat.Dense {
	m := len(targets)
	out := cache.output()

	errs := mat.NewDense(m, 1, nil)
	for i, t := range targets {
		errs.Set(i, 0, out.At(i, 0)-t)
	}

	grads := make([]*mat.Dense, len(net.layers))
	for i := len(net.layers) - 1; ; i-- {
		fanIn, fanOut := net.layers[i].Dims()

		g := mat.NewDense(fanIn, fanOut, nil)
		g.Mul(cache.acts[i].T(), errs)
		g.Scale(1/float64(m), g)
		grads[i] = g

		if i == 0 {
			break
		}

		// Propagate the error to the previous layer through this layer's
		// weights, then through that layer's tanh derivative.
		back := mat.NewDense(m, fanIn, nil)
		back.Mul(errs, net.layers[i].T())
		back.Apply(func(r, c int, v float64) float64 {
			t := math.Tanh(cache.preActs[i-1].At(r, c))
			return v * (1 - t*t)
		}, back)
		errs = back
	}

	return grads
}

package wearnet

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// forwardCache holds the intermediate values of one batch forward pass, kept
// only long enough for backpropagation over that batch.
//
// preActs[i] is the raw matrix product entering layer i. acts[0] is the input
// batch, acts[i+1] the (possibly dropout-masked) output of layer i; the last
// entry is the final linear output, shape m×1.
type forwardCache struct {
	preActs []*mat.Dense
	acts    []*mat.Dense
}

// forward evaluates the network over a batch. Hidden layers apply tanh and,
// when training with a nonzero dropout rate, inverted dropout: each activation
// is zeroed with probability Dropout and survivors are scaled by 1/(1-Dropout)
// so the expected magnitude is unchanged. The output layer is a plain linear
// projection with no activation and no dropout.
func (net *Network) forward(x *mat.Dense, training bool) *forwardCache {
	cache := &forwardCache{
		preActs: make([]*mat.Dense, len(net.layers)),
		acts:    make([]*mat.Dense, len(net.layers)+1),
	}
	cache.acts[0] = x

	rows, _ := x.Dims()
	act := x
	for i, w := range net.layers {
		_, fanOut := w.Dims()

		pre := mat.NewDense(rows, fanOut, nil)
		pre.Mul(act, w)
		cache.preActs[i] = pre

		if i == len(net.layers)-1 {
			cache.acts[i+1] = pre
			break
		}

		a := mat.NewDense(rows, fanOut, nil)
		a.Apply(func(_, _ int, v float64) float64 {
			return math.Tanh(v)
		}, pre)

		if training && net.cfg.Dropout > 0 {
			keep := 1 - net.cfg.Dropout
			a.Apply(func(_, _ int, v float64) float64 {
				if net.rng.Float64() < net.cfg.Dropout {
					return 0
				}
				return v / keep
			}, a)
		}

		cache.acts[i+1] = a
		act = a
	}

	return cache
}

// output returns the final m×1 result of the pass.
func (c *forwardCache) output() *mat.Dense {
	return c.acts[len(c.acts)-1]
}

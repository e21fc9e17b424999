package wearnet

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// applyRprop mutates the weights, step sizes and previous gradients in place,
// elementwise per layer.
//
// Where the current gradient agrees in sign with the previous one, the step
// size grows by EtaPlus (capped at StepMax). Where the sign reversed, the step
// size shrinks by EtaMinus (floored at StepMin) and the stored gradient is
// zeroed, so the next comparison treats that weight as a fresh start. The
// weight update itself ignores gradient magnitude entirely:
//
//	w -= sign(gradient) * stepSize
//
// which makes the rule insensitive to how gradient scale varies across layers.
func (net *Network) applyRprop(grads []*mat.Dense) {
	for i := range net.layers {
		w := net.layers[i].RawMatrix().Data
		steps := net.stepSizes[i].RawMatrix().Data
		prev := net.prevGrads[i].RawMatrix().Data
		g := grads[i].RawMatrix().Data

		for j := range w {
			switch prod := g[j] * prev[j]; {
			case prod > 0:
				steps[j] = math.Min(steps[j]*net.cfg.EtaPlus, net.cfg.StepMax)
				prev[j] = g[j]
			case prod < 0:
				steps[j] = math.Max(steps[j]*net.cfg.EtaMinus, net.cfg.StepMin)
				prev[j] = 0
			default:
				prev[j] = g[j]
			}

			w[j] -= sign(g[j]) * steps[j]
		}
	}
}

func sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

package wearnet

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"

	"github.com/tribolab/wearnet/dataset"
	"github.com/tribolab/wearnet/utils"
)

// Grid declares the candidate values tried by Search. A nil or empty list
// keeps the base Config's value for that parameter.
type Grid struct {
	Folds        []int
	HiddenLayers []int
	Neurons      []int
	MaxEpochs    []int
	Patience     []int
	Dropout      []float64
}

// Candidate is one concrete point of the grid: a full Config plus the fold
// count its cross-validation uses.
type Candidate struct {
	Config Config
	Folds  int
}

// SearchResult is the winning candidate of a Search, refit on the full data.
type SearchResult struct {
	Network   *Network
	Candidate Candidate
	// Score is the negative mean squared error averaged across folds.
	Score   float64
	History *History
}

// Search exhaustively evaluates every combination of fold count and remaining
// grid values, scoring each by negative mean squared error under k-fold
// cross-validation, and refits the best-scoring configuration on the full
// data. Candidates are scored strictly in declared grid order; on equal scores
// the first candidate encountered wins.
//
// Each fold trains a freshly initialized network whose seed is derived from
// the base seed and the fold index before dispatch, so fold evaluation may run
// in parallel without disturbing reproducibility. A failing candidate aborts
// the whole search; no candidate is skipped.
func Search(x *mat.Dense, y []float64, grid Grid, base Config) (*SearchResult, error) {
	if x == nil {
		return nil, NilArgError{"x"}
	}
	if err := base.Validate(); err != nil {
		return nil, err
	}

	cands := grid.candidates(base)

	scores := make([]float64, len(cands))
	for i, cand := range cands {
		score, err := crossValScore(x, y, cand)
		if err != nil {
			return nil, errors.Wrapf(err, "scoring candidate %d (folds=%d layers=%d neurons=%d dropout=%v)",
				i, cand.Folds, cand.Config.HiddenLayers, cand.Config.Neurons, cand.Config.Dropout)
		}
		scores[i] = score
	}

	win := bestIndex(scores)

	_, cols := x.Dims()
	net, err := New(cols, cands[win].Config)
	if err != nil {
		return nil, err
	}

	hist, err := net.Fit(x, y)
	if err != nil {
		return nil, errors.Wrap(err, "refitting winning candidate failed")
	}

	return &SearchResult{
		Network:   net,
		Candidate: cands[win],
		Score:     scores[win],
		History:   hist,
	}, nil
}

// candidates enumerates the grid in its declared order: fold count outermost,
// then depth, width, epoch cap, patience, dropout. The order is part of the
// contract; ties are broken by it.
func (g Grid) candidates(base Config) []Candidate {
	folds := orInts(g.Folds, 5)
	depths := orInts(g.HiddenLayers, base.HiddenLayers)
	widths := orInts(g.Neurons, base.Neurons)
	epochs := orInts(g.MaxEpochs, base.MaxEpochs)
	patiences := orInts(g.Patience, base.Patience)
	dropouts := g.Dropout
	if len(dropouts) == 0 {
		dropouts = []float64{base.Dropout}
	}

	var cands []Candidate
	for _, k := range folds {
		for _, d := range depths {
			for _, w := range widths {
				for _, e := range epochs {
					for _, p := range patiences {
						for _, dr := range dropouts {
							cfg := base
							cfg.HiddenLayers = d
							cfg.Neurons = w
							cfg.MaxEpochs = e
							cfg.Patience = p
							cfg.Dropout = dr
							cands = append(cands, Candidate{cfg, k})
						}
					}
				}
			}
		}
	}

	return cands
}

func orInts(vals []int, def int) []int {
	if len(vals) == 0 {
		return []int{def}
	}
	return vals
}

// crossValScore trains one fresh network per fold and returns the negative
// mean squared error averaged over the held-out folds. Folds run in parallel;
// per-fold seeds are fixed up front and fold results are collected by index.
func crossValScore(x *mat.Dense, y []float64, cand Candidate) (float64, error) {
	rows, cols := x.Dims()

	folds, err := dataset.KFold(rows, cand.Folds, cand.Config.Seed)
	if err != nil {
		return 0, err
	}

	foldMSE := make([]float64, len(folds))
	foldErr := make([]error, len(folds))

	utils.MultiThread(0, len(folds), func(i int) {
		cfg := cand.Config
		cfg.Seed = cand.Config.Seed + int64(i) + 1

		held := make(map[int]bool, len(folds[i]))
		for _, r := range folds[i] {
			held[r] = true
		}
		trainIdx := make([]int, 0, rows-len(folds[i]))
		for r := 0; r < rows; r++ {
			if !held[r] {
				trainIdx = append(trainIdx, r)
			}
		}

		trainX, trainY := subset(x, y, trainIdx)
		testX, testY := subset(x, y, folds[i])

		net, err := New(cols, cfg)
		if err != nil {
			foldErr[i] = err
			return
		}
		if _, err := net.Fit(trainX, trainY); err != nil {
			foldErr[i] = errors.Wrapf(err, "fold %d training failed", i)
			return
		}

		preds, err := net.Predict(testX)
		if err != nil {
			foldErr[i] = err
			return
		}

		var sum float64
		for j, p := range preds {
			d := p - testY[j]
			sum += d * d
		}
		foldMSE[i] = sum / float64(len(preds))
	}, 1)

	for _, err := range foldErr {
		if err != nil {
			return 0, err
		}
	}

	var mean float64
	for _, m := range foldMSE {
		mean += m
	}
	mean /= float64(len(foldMSE))

	return -mean, nil
}

// bestIndex returns the index of the first occurrence of the maximum score.
func bestIndex(scores []float64) int {
	win := 0
	for i, s := range scores {
		if s > scores[win] {
			win = i
		}
	}
	return win
}

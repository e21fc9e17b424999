package wearnet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCandidatesEnumerationOrder(t *testing.T) {
	base := DefaultConfig()

	grid := Grid{
		Folds:        []int{3, 5},
		HiddenLayers: []int{1, 2},
		Dropout:      []float64{0, 0.2},
	}

	cands := grid.candidates(base)
	require.Len(t, cands, 8)

	// fold count is the outermost axis, dropout the innermost
	assert.Equal(t, 3, cands[0].Folds)
	assert.Equal(t, 3, cands[3].Folds)
	assert.Equal(t, 5, cands[4].Folds)

	assert.Equal(t, 1, cands[0].Config.HiddenLayers)
	assert.Equal(t, 0.0, cands[0].Config.Dropout)
	assert.Equal(t, 0.2, cands[1].Config.Dropout)
	assert.Equal(t, 2, cands[2].Config.HiddenLayers)

	// unlisted parameters keep the base values
	assert.Equal(t, base.Neurons, cands[0].Config.Neurons)
	assert.Equal(t, base.MaxEpochs, cands[0].Config.MaxEpochs)
}

func TestBestIndexTieBreak(t *testing.T) {
	tests := []struct {
		scores []float64
		want   int
	}{
		{[]float64{-1, -2, -3}, 0},
		{[]float64{-3, -1, -2}, 1},
		{[]float64{-2, -1, -1}, 1}, // first of the tied maximum wins
		{[]float64{-1, -1, -1}, 0},
	}

	for _, tt := range tests {
		if got := bestIndex(tt.scores); got != tt.want {
			t.Errorf("bestIndex(%v) = %d, want %d", tt.scores, got, tt.want)
		}
	}
}

func TestSearchTieBreakPrefersFirstCandidate(t *testing.T) {
	x, y := linearDataset(24, 0.02, 8)

	base := DefaultConfig()
	base.MaxEpochs = 30
	base.Seed = 8

	// two identical candidates distinguished only by position produce
	// identical deterministic scores; the first must win
	grid := Grid{
		Folds:    []int{3},
		Patience: []int{10, 10},
	}

	cands := grid.candidates(base)
	require.Len(t, cands, 2)

	first, err := crossValScore(x, y, cands[0])
	require.NoError(t, err)
	second, err := crossValScore(x, y, cands[1])
	require.NoError(t, err)
	require.Equal(t, first, second, "identical candidates must score identically")

	assert.Equal(t, 0, bestIndex([]float64{first, second}))
}

func TestSearchEndToEnd(t *testing.T) {
	x, y := linearDataset(30, 0.02, 9)

	base := DefaultConfig()
	base.MaxEpochs = 60
	base.Patience = 10
	base.Seed = 9

	grid := Grid{
		Folds:        []int{3},
		HiddenLayers: []int{1, 2},
		Neurons:      []int{4},
	}

	res, err := Search(x, y, grid, base)
	require.NoError(t, err)
	require.NotNil(t, res.Network)
	require.NotNil(t, res.History)

	assert.Contains(t, []int{1, 2}, res.Candidate.Config.HiddenLayers)
	assert.Equal(t, 4, res.Candidate.Config.Neurons)
	assert.Equal(t, 3, res.Candidate.Folds)
	assert.False(t, res.Score > 0, "negative mean squared error cannot be positive")

	preds, err := res.Network.Predict(x)
	require.NoError(t, err)
	assert.Len(t, preds, 30)
}

func TestSearchRejectsInvalidBase(t *testing.T) {
	x, y := linearDataset(10, 0, 10)

	base := DefaultConfig()
	base.EtaPlus = 0.9

	_, err := Search(x, y, Grid{}, base)
	require.Error(t, err)
	assert.IsType(t, ConfigError{}, err)
}

func TestSearchNilInput(t *testing.T) {
	_, err := Search(nil, nil, Grid{}, DefaultConfig())
	assert.IsType(t, NilArgError{}, err)
}

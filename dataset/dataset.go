// Package dataset loads the experimental tribology measurement tables and
// prepares them for model fitting: min-max scaling to [0,1], deterministic
// train/test splitting, and k-fold index generation.
package dataset

import (
	"encoding/csv"
	"os"
	"strconv"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// Table is one loaded measurement sheet. The last column of the source file is
// the target (wear loss); the remaining columns are the predictors.
type Table struct {
	// Names are the column headers, target last.
	Names []string

	// X holds one row of predictor values per sample.
	X [][]float64

	// Y holds the target value per sample.
	Y []float64
}

// Load reads a csv file whose first row is a header and whose remaining rows
// are numeric. Every row must have at least two columns (one predictor plus the
// target). Parse failures are reported with their row and column.
func Load(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open dataset %q", path)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read csv %q", path)
	}

	if len(records) < 2 {
		return nil, errors.Errorf("dataset %q has no data rows", path)
	}
	header := records[0]
	if len(header) < 2 {
		return nil, errors.Errorf("dataset %q needs at least one predictor and a target column", path)
	}

	t := &Table{Names: header}
	for r, rec := range records[1:] {
		if len(rec) != len(header) {
			return nil, errors.Errorf("row %d has %d columns, header has %d", r+2, len(rec), len(header))
		}

		row := make([]float64, len(rec))
		for c, cell := range rec {
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, errors.Wrapf(err, "row %d, column %q is not numeric", r+2, header[c])
			}
			row[c] = v
		}

		t.X = append(t.X, row[:len(row)-1])
		t.Y = append(t.Y, row[len(row)-1])
	}

	return t, nil
}

// Rows returns the number of samples.
func (t *Table) Rows() int {
	return len(t.X)
}

// Features returns the predictor columns as a dense matrix, one sample per
// row. The matrix owns its storage; mutating it does not affect the Table.
func (t *Table) Features() *mat.Dense {
	rows := len(t.X)
	cols := len(t.X[0])
	m := mat.NewDense(rows, cols, nil)
	for i, row := range t.X {
		m.SetRow(i, row)
	}
	return m
}

// FeatureNames returns the header names of the predictor columns.
func (t *Table) FeatureNames() []string {
	return t.Names[:len(t.Names)-1]
}

// TargetName returns the header name of the target column.
func (t *Table) TargetName() string {
	return t.Names[len(t.Names)-1]
}

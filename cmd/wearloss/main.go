// Command wearloss runs the wear-loss prediction comparison: it loads a
// measurement table, scales features and target to [0,1], cross-validates the
// baseline regressors against the grid-searched Rprop network, and exports a
// results table.
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"math"
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/tribolab/wearnet"
	"github.com/tribolab/wearnet/dataset"
	"github.com/tribolab/wearnet/regress"
)

var log = logrus.New()

func main() {
	dataPath := flag.String("data", "", "path to the measurement csv (target column last)")
	outPath := flag.String("out", "results.csv", "path to write the results table")
	folds := flag.Int("folds", 5, "cross-validation fold count")
	seed := flag.Int64("seed", 42, "random seed for splits and weight init")
	degree := flag.Int("degree", 2, "degree of the polynomial baseline")
	flag.Parse()

	if *dataPath == "" {
		log.Fatal("-data is required")
	}

	if err := run(*dataPath, *outPath, *folds, *seed, *degree); err != nil {
		log.Fatalf("%+v", err)
	}
}

// row is one line of the exported results table.
type row struct {
	model  string
	cvMSE  float64
	fullR2 float64
}

func run(dataPath, outPath string, folds int, seed int64, degree int) error {
	table, err := dataset.Load(dataPath)
	if err != nil {
		return err
	}

	log.WithFields(logrus.Fields{
		"rows":     table.Rows(),
		"features": table.FeatureNames(),
		"target":   table.TargetName(),
	}).Info("loaded dataset")

	var xScaler dataset.MinMaxScaler
	x := xScaler.FitTransform(table.Features())

	var yScaler dataset.RangeScaler
	y := yScaler.FitTransform(table.Y)

	var results []row

	baselines := []struct {
		name string
		make func() regress.Model
	}{
		{"linear", func() regress.Model { return new(regress.Linear) }},
		{fmt.Sprintf("polynomial(d=%d)", degree), func() regress.Model { return &regress.Polynomial{Degree: degree} }},
	}

	for _, b := range baselines {
		cvMSE, err := regress.CrossValidate(b.make, x, y, folds, seed)
		if err != nil {
			return errors.Wrapf(err, "cross-validating %s failed", b.name)
		}

		m := b.make()
		if err := m.Fit(x, y); err != nil {
			return errors.Wrapf(err, "fitting %s on full data failed", b.name)
		}
		preds, err := m.Predict(x)
		if err != nil {
			return err
		}

		r := row{b.name, cvMSE, regress.R2(preds, y)}
		results = append(results, r)

		log.WithFields(logrus.Fields{
			"model":   r.model,
			"cv_mse":  r.cvMSE,
			"cv_rmse": math.Sqrt(r.cvMSE),
			"r2_full": r.fullR2,
		}).Info("baseline scored")
	}

	base := wearnet.DefaultConfig()
	base.Seed = seed

	grid := wearnet.Grid{
		Folds:        []int{folds},
		HiddenLayers: []int{1, 2, 3},
		Neurons:      []int{4, 8, 16},
		MaxEpochs:    []int{500},
		Patience:     []int{20},
		Dropout:      []float64{0, 0.1},
	}

	log.Info("starting hyperparameter search for the rprop network")
	res, err := wearnet.Search(x, y, grid, base)
	if err != nil {
		return errors.Wrap(err, "hyperparameter search failed")
	}

	preds, err := res.Network.Predict(x)
	if err != nil {
		return err
	}

	r := row{"rprop-mlp", -res.Score, regress.R2(preds, y)}
	results = append(results, r)

	log.WithFields(logrus.Fields{
		"hidden_layers": res.Candidate.Config.HiddenLayers,
		"neurons":       res.Candidate.Config.Neurons,
		"dropout":       res.Candidate.Config.Dropout,
		"cv_mse":        r.cvMSE,
		"r2_full":       r.fullR2,
		"epochs_run":    res.History.Len(),
	}).Info("rprop network scored")

	if err := writeResults(outPath, results); err != nil {
		return err
	}
	log.WithField("path", outPath).Info("results written")

	return nil
}

func writeResults(path string, results []row) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "failed to create results file %q", path)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"model", "cv_mse", "cv_rmse", "r2_full"}); err != nil {
		return errors.Wrap(err, "failed to write results header")
	}
	for _, r := range results {
		rec := []string{
			r.model,
			fmt.Sprintf("%.6g", r.cvMSE),
			fmt.Sprintf("%.6g", math.Sqrt(r.cvMSE)),
			fmt.Sprintf("%.6g", r.fullR2),
		}
		if err := w.Write(rec); err != nil {
			return errors.Wrapf(err, "failed to write results row %q", r.model)
		}
	}
	w.Flush()

	return errors.Wrap(w.Error(), "flushing results failed")
}

// Package wearnet implements the neural regressor used in the wear-loss
// prediction experiments: a fixed-topology multilayer perceptron trained with
// the resilient-propagation (Rprop) update rule.
//
// Building and Training
//
// A network is built from a Config, which carries every per-run parameter:
//
//		cfg := wearnet.DefaultConfig()
//		cfg.HiddenLayers = 2
//		cfg.Neurons = 8
//
//		net, err := wearnet.New(inputSize, cfg)
//		if err != nil {
//			return err
//		}
//
// Config values are validated up front; training is never attempted on a
// partially valid configuration.
//
// Training takes the full (already scaled) feature matrix and target vector,
// holds out a validation fraction once per run, and iterates forward pass,
// backpropagation and Rprop update until early stopping triggers or the epoch
// cap is reached:
//
//		hist, err := net.Fit(x, y)
//
// The returned History holds one entry per epoch actually run, with training
// and validation mean squared error, for downstream reporting and plotting.
// Early stopping restores the best validation-loss snapshot of the weights, so
// the network is usable for prediction in either terminal state:
//
//		preds, err := net.Predict(x)
//
// Hyperparameter Search
//
// Search exhaustively scores a Grid of candidate configurations by k-fold
// cross-validation and refits the winner on the full data:
//
//		res, err := wearnet.Search(x, y, grid, cfg)
//
// Candidates are scored in declared grid order; on equal scores the first
// candidate wins.
//
// Inputs are expected scaled to a bounded range (see subpackage dataset).
// Plotting, spreadsheet export and the non-neural baseline regressors live
// outside this package (see subpackage regress and cmd/wearloss).
package wearnet

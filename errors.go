package wearnet

import "fmt"

// Error is a wrapper for specific types of errors for which there is no
// additional information necessary. These errors are defined as global
// variables.
type Error struct{ string }

func (err Error) Error() string {
	return err.string
}

// These are the global errors that may be returned.
var (
	ErrNoTrainingData = Error{"training data has no rows"}
	ErrTooFewRows     = Error{"too few rows to hold out a validation split"}
)

// NilArgError documents errors resulting from certain arguments provided to a
// function being nil.
type NilArgError struct{ string }

func (err NilArgError) Error() string {
	return err.string + " is nil"
}

// ConfigError reports a Config field that fails validation. No training is
// attempted on a network built from an invalid Config.
type ConfigError struct {
	Field  string
	Reason string
}

func (err ConfigError) Error() string {
	return fmt.Sprintf("invalid config: %s %s", err.Field, err.Reason)
}

// SizeMismatchError reports input whose dimensions disagree with what the
// Network was built for.
type SizeMismatchError struct {
	Expected, Got int
	What          string
}

func (err SizeMismatchError) Error() string {
	return fmt.Sprintf("size mismatch for %s: expected %d, got %d", err.What, err.Expected, err.Got)
}

// NumericError reports a non-finite loss encountered during training. The
// training loop performs no retries; the caller decides whether to abort or
// rerun with different hyperparameters.
type NumericError struct {
	Epoch    int
	Quantity string
}

func (err NumericError) Error() string {
	return fmt.Sprintf("non-finite %s at epoch %d", err.Quantity, err.Epoch)
}

package wearnet

// Config holds the immutable per-run parameters of a training run. Zero values
// are not usable; start from DefaultConfig and override.
type Config struct {
	// HiddenLayers is the number of hidden layers (network depth).
	HiddenLayers int

	// Neurons is the width of every hidden layer.
	Neurons int

	// MaxEpochs is the hard cap on training iterations.
	MaxEpochs int

	// EtaPlus and EtaMinus are the Rprop step-size growth and shrink
	// multipliers. EtaPlus must be > 1, EtaMinus in (0, 1).
	EtaPlus  float64
	EtaMinus float64

	// StepInit is the initial per-weight step size; StepMin and StepMax bound
	// every step size for the lifetime of a run.
	StepInit float64
	StepMin  float64
	StepMax  float64

	// Dropout is the probability of zeroing a hidden unit per forward pass
	// during training. Must be in [0, 1).
	Dropout float64

	// Patience is the number of epochs without sufficient validation-loss
	// improvement tolerated before early stopping.
	Patience int

	// MinDelta is the minimum validation-loss improvement that resets
	// patience. The improvement condition is strict: val < best - MinDelta.
	MinDelta float64

	// ValFraction is the fraction of rows held out for validation, chosen
	// once per run.
	ValFraction float64

	// Seed determines weight initialization, the validation split, and
	// dropout masks. Each run owns its own generator; no process-wide
	// seeding occurs.
	Seed int64
}

// DefaultConfig returns a Config with the standard Rprop constants and a small
// network suitable for the wear-loss tables.
func DefaultConfig() Config {
	return Config{
		HiddenLayers: 1,
		Neurons:      8,
		MaxEpochs:    500,
		EtaPlus:      1.2,
		EtaMinus:     0.5,
		StepInit:     0.1,
		StepMin:      1e-6,
		StepMax:      50,
		Dropout:      0,
		Patience:     20,
		MinDelta:     1e-4,
		ValFraction:  0.25,
		Seed:         1,
	}
}

// Validate checks every field, returning a ConfigError naming the first field
// that fails.
func (c Config) Validate() error {
	switch {
	case c.HiddenLayers < 1:
		return ConfigError{"HiddenLayers", "must be >= 1"}
	case c.Neurons < 1:
		return ConfigError{"Neurons", "must be >= 1"}
	case c.MaxEpochs < 1:
		return ConfigError{"MaxEpochs", "must be >= 1"}
	case c.EtaPlus <= 1:
		return ConfigError{"EtaPlus", "must be > 1"}
	case c.EtaMinus <= 0 || c.EtaMinus >= 1:
		return ConfigError{"EtaMinus", "must be in (0, 1)"}
	case c.StepInit <= 0:
		return ConfigError{"StepInit", "must be > 0"}
	case c.StepMin <= 0 || c.StepMin >= c.StepMax:
		return ConfigError{"StepMin", "must satisfy 0 < StepMin < StepMax"}
	case c.Dropout < 0 || c.Dropout >= 1:
		return ConfigError{"Dropout", "must be in [0, 1)"}
	case c.Patience < 1:
		return ConfigError{"Patience", "must be >= 1"}
	case c.MinDelta < 0:
		return ConfigError{"MinDelta", "must be >= 0"}
	case c.ValFraction <= 0 || c.ValFraction >= 1:
		return ConfigError{"ValFraction", "must be in (0, 1)"}
	}

	return nil
}

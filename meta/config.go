// Package meta assembles the pieces of a compiled pattern and decides how
// each input is answered.
//
// An Engine always owns a Thompson automaton. Depending on what literal
// analysis finds, it may also answer from the exact language (a finite set
// of strings) or reject inputs early with a prefilter before simulating the
// automaton. All strategies accept exactly the same inputs; they differ only
// in cost.
package meta

// Config controls compilation limits and the optional fast paths.
//
// Example:
//
//	config := meta.DefaultConfig()
//	config.EnablePrefilter = false // always simulate the automaton
//	engine, err := meta.CompileWithConfig("(get|post)/.*", config)
type Config struct {
	// MaxStates caps the number of automaton states one compilation may
	// allocate. Wide character classes are the usual way to hit it.
	// Default: 1,000,000
	MaxStates int

	// EnablePrefilter enables rejecting inputs that start with none of the
	// pattern's prefix literals.
	// Default: true
	EnablePrefilter bool

	// EnableLiteralSet enables answering from the exact language when the
	// pattern denotes a small finite set of strings.
	// Default: true
	EnableLiteralSet bool

	// MaxLiterals limits the size of extracted literal sets.
	// Default: 64
	MaxLiterals int

	// MaxLiteralLen limits the byte length of extracted literals.
	// Default: 64
	MaxLiteralLen int
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() Config {
	return Config{
		MaxStates:        1_000_000,
		EnablePrefilter:  true,
		EnableLiteralSet: true,
		MaxLiterals:      64,
		MaxLiteralLen:    64,
	}
}

// Validate checks if the configuration is valid.
//
// Valid ranges:
//   - MaxStates: 2 to 100,000,000
//   - MaxLiterals: 1 to 1,000 (when a literal fast path is enabled)
//   - MaxLiteralLen: 1 to 1,024 (when a literal fast path is enabled)
func (c Config) Validate() error {
	if c.MaxStates < 2 || c.MaxStates > 100_000_000 {
		return &ConfigError{
			Field:   "MaxStates",
			Message: "must be between 2 and 100,000,000",
		}
	}

	if c.EnablePrefilter || c.EnableLiteralSet {
		if c.MaxLiterals < 1 || c.MaxLiterals > 1_000 {
			return &ConfigError{
				Field:   "MaxLiterals",
				Message: "must be between 1 and 1,000",
			}
		}
		if c.MaxLiteralLen < 1 || c.MaxLiteralLen > 1_024 {
			return &ConfigError{
				Field:   "MaxLiteralLen",
				Message: "must be between 1 and 1,024",
			}
		}
	}

	return nil
}

// ConfigError represents an invalid configuration parameter.
type ConfigError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return "thompson: invalid config: " + e.Field + ": " + e.Message
}

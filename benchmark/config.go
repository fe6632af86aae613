package benchmark

import (
	"os"

	"github.com/pkg/errors"
)

// Config is the immutable engine configuration. It is established once at
// startup and shared read-only by every worker.
type Config struct {
	// WarmupTime is the warmup budget in seconds, 0 disables warmup
	WarmupTime float64
	// TimeLimit is the wall-time budget of the adaptive loop in seconds
	TimeLimit float64
	// Runs pins an exact measured run count; 0 selects the adaptive loop
	Runs int
	// MinRuns and MaxRuns bound the adaptive loop; 0 means unset
	MinRuns int
	MaxRuns int
	// Prepare is an optional command executed between measured runs
	Prepare string
	// Shell is the shell command line, or "none" for direct exec
	Shell string
	// NResamples is the bootstrap resample count
	NResamples int
	// Workers is the parallel dispatcher width
	Workers int
	// Input is the child stdin policy: "null" or empty for /dev/null,
	// otherwise a readable file path
	Input string
	// Output is the child stdout policy when stdout is not captured
	Output OutputKind
	// RandSeed seeds the statistics PRNGs
	RandSeed int64
}

// DefaultConfig returns the engine defaults
func DefaultConfig() Config {
	return Config{
		TimeLimit:  5.0,
		Shell:      "/bin/sh",
		NResamples: 100000,
		Workers:    1,
		RandSeed:   1,
	}
}

// InputFile resolves the stdin policy to a file path, empty for /dev/null
func (c *Config) InputFile() string {
	if c.Input == "null" {
		return ""
	}
	return c.Input
}

// Validate checks the configuration before any benchmark runs
func (c *Config) Validate() error {
	if c.TimeLimit <= 0 && c.Runs <= 0 {
		return errors.Wrap(ErrConfig, "time limit should be > 0")
	}
	if c.WarmupTime < 0 {
		return errors.Wrap(ErrConfig, "warmup time should be >= 0")
	}
	if c.Runs < 0 {
		return errors.Wrap(ErrConfig, "run count should be >= 0")
	}
	if c.MinRuns < 0 || c.MaxRuns < 0 {
		return errors.Wrap(ErrConfig, "run bounds should be >= 0")
	}
	if c.MinRuns > 0 && c.MaxRuns > 0 && c.MinRuns > c.MaxRuns {
		return errors.Wrap(ErrConfig, "min runs exceeds max runs")
	}
	if c.NResamples <= 0 {
		return errors.Wrap(ErrConfig, "resample count should be > 0")
	}
	if c.Workers < 1 {
		return errors.Wrap(ErrConfig, "worker count should be >= 1")
	}

	if input := c.InputFile(); input != "" {
		f, err := os.Open(input)
		if err != nil {
			return errors.Wrapf(ErrConfig, "cannot read input file %q", input)
		}
		f.Close()
	}

	return nil
}

package benchmark

import (
	"github.com/Holodome/csbench/logger"
)

// Engine runs benchmarks according to an immutable configuration.
// It owns no benchmark records; records are passed into Run and mutated in
// place by the dispatcher workers.
type Engine struct {
	cfg   Config
	shell []string
	log   logger.Logger
}

// NewEngine validates the configuration and creates an engine
func NewEngine(cfg Config, log logger.Logger) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	shell, err := SplitShell(cfg.Shell)
	if err != nil {
		return nil, err
	}

	if log == nil {
		log = logger.NewPlaneLogger(logger.LevelWarn, false)
	}

	return &Engine{cfg: cfg, shell: shell, log: log}, nil
}

// Config returns the engine configuration
func (e *Engine) Config() Config {
	return e.cfg
}

// Shell returns the parsed shell argument vector, nil when disabled
func (e *Engine) Shell() []string {
	return e.shell
}

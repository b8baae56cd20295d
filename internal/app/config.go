package app

import (
	"errors"
	"time"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	PipelinePath string // hcl/yaml pipeline documents

	LogFormat       string
	LogLevel        string
	HealthcheckPort int
	WorkerCount     int
	Cycles          int // 0 runs continuously
	Interval        time.Duration
}

// NewConfig validates a Config and returns it.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.PipelinePath == "" {
		return nil, errors.New("PipelinePath is a required configuration field and cannot be empty")
	}
	if cfg.Cycles < 0 {
		return nil, errors.New("Cycles must be zero or positive")
	}
	if cfg.Cycles != 1 && cfg.Interval <= 0 {
		return nil, errors.New("Interval must be positive when running more than one cycle")
	}

	return &cfg, nil
}

// Copyright 2015 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package log

import "github.com/cockroachdb/errors"

// Config holds the logging configuration.
type Config struct {
	// Verbosity is the level at or below which VEventf messages are emitted.
	Verbosity int32 `yaml:"verbosity"`
	// Redactable keeps redaction markers around unsafe values in the output.
	Redactable bool `yaml:"redactable"`
}

// DefaultConfig returns the configuration in effect at process start.
func DefaultConfig() Config {
	return Config{}
}

// ApplyConfig applies the given configuration.
func ApplyConfig(cfg Config) error {
	if cfg.Verbosity < 0 {
		return errors.Newf("invalid verbosity %d", cfg.Verbosity)
	}
	logging.verbosity.Store(cfg.Verbosity)
	logging.redactable.Store(cfg.Redactable)
	return nil
}

// SetVerbosity sets the verbosity level and returns the previous one.
func SetVerbosity(level int32) (prev int32) {
	return logging.verbosity.Swap(level)
}

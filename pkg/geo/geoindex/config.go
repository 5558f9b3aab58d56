// Copyright 2020 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

// Package geoindex describes how spatial indexes pack several coordinate
// columns into a single ordinal, and computes that ordinal.
package geoindex

import "github.com/cockroachdb/errors"

// MaxS2Level is the level of S2 leaf cells.
const MaxS2Level = 30

// S2Config is the S2 cell configuration of a spatial index.
type S2Config struct {
	// Level is the S2 cell level at which coordinates are bucketed. Higher
	// levels are finer.
	Level int32 `yaml:"level"`
}

// Config is the configuration of a spatial index. The Dimensions declared
// columns starting at FirstArg are stored as one packed ordinal.
type Config struct {
	Dimensions int      `yaml:"dimensions"`
	FirstArg   int      `yaml:"first_arg"`
	S2         S2Config `yaml:"s2"`
}

// DefaultConfig returns a default config for a two-dimensional spatial index
// whose coordinates are its leading columns.
func DefaultConfig() *Config {
	return &Config{
		Dimensions: 2,
		FirstArg:   0,
		S2:         S2Config{Level: MaxS2Level},
	}
}

// Validate checks the config against an index with declaredColumns columns.
func (c *Config) Validate(declaredColumns int) error {
	if c.Dimensions < 1 {
		return errors.Newf("spatial index must have at least one dimension, found %d", c.Dimensions)
	}
	if c.FirstArg < 0 || c.FirstArg+c.Dimensions > declaredColumns {
		return errors.Newf(
			"spatial columns [%d, %d) out of range for index with %d columns",
			c.FirstArg, c.FirstArg+c.Dimensions, declaredColumns)
	}
	if c.S2.Level < 0 || c.S2.Level > MaxS2Level {
		return errors.Newf("S2 level %d out of range [0, %d]", c.S2.Level, MaxS2Level)
	}
	return nil
}

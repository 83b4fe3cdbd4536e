// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package terrain

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	ScheduleFlat      = "flat"
	ScheduleGeometric = "geometric"

	SeederUniform = "uniform"
	SeederPerlin  = "perlin"

	EvictionNone = "none"
	EvictionLRU  = "lru"
)

/*
	List of curated seeds:
		56
		1337
		2346464
*/

// Seed default seed.
const Seed = int64(56)

// MaxTileSize is the largest tile side accepted from config or the wire.
const MaxTileSize = 1<<14 + 1

// Config describes how tiles are generated.
type Config struct {
	// TileSize is the number of lattice points per tile side, a power of two plus one.
	TileSize int     `yaml:"tile_size" json:"tileSize"`
	ValueMin float32 `yaml:"value_min" json:"valueMin"`
	ValueMax float32 `yaml:"value_max" json:"valueMax"`
	// Randomization is the displacement magnitude of the widest windows.
	Randomization float32 `yaml:"randomization" json:"randomization"`
	// RandomizationSchedule is ScheduleFlat or ScheduleGeometric.
	RandomizationSchedule string `yaml:"schedule" json:"schedule"`
	// Decay is the factor applied per halving of the window (geometric only).
	Decay float32 `yaml:"decay" json:"decay"`
	Seed  int64   `yaml:"seed" json:"seed"`
	// MaxRecursionDepth bounds how many levels up and down a new tile pulls context from.
	MaxRecursionDepth int `yaml:"max_recursion_depth" json:"maxRecursionDepth"`
	// Seeder is SeederUniform or SeederPerlin and picks unconstrained corners.
	Seeder   string         `yaml:"seeder" json:"seeder"`
	Eviction EvictionConfig `yaml:"eviction" json:"eviction"`
}

// EvictionConfig bounds the number of cached tiles. The zero value never evicts.
type EvictionConfig struct {
	Policy   string `yaml:"policy" json:"policy"`
	Capacity int    `yaml:"capacity" json:"capacity"`
}

func DefaultConfig() Config {
	return Config{
		TileSize:              257,
		ValueMin:              0,
		ValueMax:              255,
		Randomization:         64,
		RandomizationSchedule: ScheduleGeometric,
		Decay:                 0.5,
		Seed:                  Seed,
		MaxRecursionDepth:     5,
		Seeder:                SeederUniform,
		Eviction:              EvictionConfig{Policy: EvictionNone},
	}
}

// LoadConfig reads a yaml file over DefaultConfig and validates the result.
func LoadConfig(path string) (Config, error) {
	config := DefaultConfig()

	buf, err := os.ReadFile(path)
	if err != nil {
		return config, fmt.Errorf("reading config: %w", err)
	}
	if err = yaml.Unmarshal(buf, &config); err != nil {
		return config, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err = config.Validate(); err != nil {
		return config, err
	}
	return config, nil
}

func (c Config) Validate() error {
	invalid := func(format string, args ...interface{}) error {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
	}

	if !ValidSize(c.TileSize) || c.TileSize < 3 || c.TileSize > MaxTileSize {
		return invalid("tile_size %d must be a power of two plus one within [3, %d]", c.TileSize, MaxTileSize)
	}
	if !(c.ValueMin < c.ValueMax) {
		return invalid("value_min %g must be less than value_max %g", c.ValueMin, c.ValueMax)
	}
	if c.Randomization < 0 {
		return invalid("randomization %g is negative", c.Randomization)
	}
	switch c.RandomizationSchedule {
	case ScheduleFlat:
	case ScheduleGeometric:
		if c.Decay < 0 || c.Decay > 1 {
			return invalid("decay %g must be within [0, 1]", c.Decay)
		}
	default:
		return invalid("unknown schedule %q", c.RandomizationSchedule)
	}
	if c.MaxRecursionDepth < 0 {
		return invalid("max_recursion_depth %d is negative", c.MaxRecursionDepth)
	}
	switch c.Seeder {
	case SeederUniform, SeederPerlin:
	default:
		return invalid("unknown seeder %q", c.Seeder)
	}
	switch c.Eviction.Policy {
	case "", EvictionNone:
	case EvictionLRU:
		if c.Eviction.Capacity < 1 {
			return invalid("lru eviction needs a positive capacity, got %d", c.Eviction.Capacity)
		}
	default:
		return invalid("unknown eviction policy %q", c.Eviction.Policy)
	}
	return nil
}

func (c Config) Bounds() Range {
	return Range{Min: c.ValueMin, Max: c.ValueMax}
}

// Schedule builds the randomization schedule. Geometric spans are measured
// against the width of a level 0 tile.
func (c Config) Schedule() Schedule {
	if c.RandomizationSchedule == ScheduleFlat {
		return Flat{Base: c.Randomization}
	}
	return Geometric{
		Base:      c.Randomization,
		Decay:     c.Decay,
		Reference: float64(c.TileSize - 1),
	}
}

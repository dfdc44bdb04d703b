// Package config implements the renderer's on-disk configuration,
// grounded on noisetorch-NoiseTorch/config.go's toml.DecodeFile /
// toml.Encode pair.
package config

import (
	"bytes"
	"os"

	"github.com/BurntSushi/toml"
)

// RenderConfig is the ambient tuning surface for a render invocation:
// the path tracer's Config (spec.md §4.8) plus a tile size for
// splitting the image plane across workers (spec.md §5's concurrency
// model assumes per-tile, per-thread ray contexts).
type RenderConfig struct {
	Epsilon       float32
	RouletteDepth int
	MaxDepth      int
	RouletteFloor float32
	TileSize      int
}

// Default returns the renderer's built-in tuning, used when no config
// file is present.
func Default() RenderConfig {
	return RenderConfig{
		Epsilon:       1e-4,
		RouletteDepth: 3,
		MaxDepth:      16,
		RouletteFloor: 0.05,
		TileSize:      32,
	}
}

// Load reads a RenderConfig from a TOML file at path, starting from
// Default() so an incomplete file only overrides the fields it names.
func Load(path string) (RenderConfig, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return RenderConfig{}, err
	}
	return cfg, nil
}

// Save writes cfg to path as TOML.
func Save(path string, cfg RenderConfig) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(&cfg); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0644)
}

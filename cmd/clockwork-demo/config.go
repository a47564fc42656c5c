// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// demoConfig is the demo's settings. Values come from an optional TOML file
// and are then overridden by explicitly set flags.
type demoConfig struct {
	Width   uint32 `toml:"width"`
	Height  uint32 `toml:"height"`
	Frames  int    `toml:"frames"`
	Output  string `toml:"output"`
	Texture string `toml:"texture"`

	// Watch reloads Texture while the demo runs.
	Watch bool `toml:"watch"`

	ClearColor   [4]float64 `toml:"clear_color"`
	CompileSPIRV bool       `toml:"compile_spirv"`
	LogLevel     string     `toml:"log_level"`
}

func defaultDemoConfig() demoConfig {
	return demoConfig{
		Width:      640,
		Height:     480,
		Frames:     8,
		Output:     "frame_%03d.png",
		ClearColor: [4]float64{0.1, 0.2, 0.3, 1.0},
		LogLevel:   "info",
	}
}

// loadDemoConfig reads path over the defaults. An empty path returns the
// defaults.
func loadDemoConfig(path string) (demoConfig, error) {
	cfg := defaultDemoConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, cfg.validate()
}

func (c demoConfig) validate() error {
	if c.Width == 0 || c.Height == 0 {
		return fmt.Errorf("invalid size %dx%d", c.Width, c.Height)
	}
	if c.Frames < 1 {
		return fmt.Errorf("frames must be positive, got %d", c.Frames)
	}
	if c.Output == "" {
		return fmt.Errorf("output pattern is empty")
	}
	return nil
}

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package clockwork

import (
	"time"

	"github.com/gogpu/clockwork/internal/gpu"
	"github.com/gogpu/gputypes"
)

// Config holds the tunable parts of a RenderContext. Zero fields fall back to
// the values of DefaultConfig.
type Config struct {
	// Label prefixes the debug labels of GPU objects created by the context.
	Label string

	// ClearColor is the background the color target is cleared to every
	// frame. A zero color (all channels 0, including alpha) selects the
	// default.
	ClearColor gputypes.Color

	// SubmitTimeout bounds the wait for a frame's command buffer.
	SubmitTimeout time.Duration

	// CompileSPIRV compiles the diffuse shader to SPIR-V with naga instead of
	// passing WGSL to the backend.
	CompileSPIRV bool

	// ValidateMeshes makes LoadMesh reject index lists that refer past the
	// end of the vertex list. Off by default: bad indices then only produce
	// garbage geometry.
	ValidateMeshes bool
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Label:         "clockwork",
		ClearColor:    gputypes.Color{R: 0.1, G: 0.2, B: 0.3, A: 1.0},
		SubmitTimeout: gpu.DefaultSubmitTimeout,
	}
}

// withDefaults fills zero fields from DefaultConfig.
func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.Label == "" {
		c.Label = def.Label
	}
	if c.ClearColor == (gputypes.Color{}) {
		c.ClearColor = def.ClearColor
	}
	if c.SubmitTimeout <= 0 {
		c.SubmitTimeout = def.SubmitTimeout
	}
	return c
}

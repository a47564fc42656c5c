// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package clockwork

import (
	"github.com/gogpu/clockwork/internal/gpu"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// Surface is the output a RenderContext draws into.
//
// Configure is called by the context at construction and on every Resize.
// Each frame the context calls Acquire once and Present once after the frame's
// commands completed.
type Surface interface {
	// Format returns the color format of the views returned by Acquire.
	Format() gputypes.TextureFormat

	// Configure (re)sizes the surface.
	Configure(device hal.Device, queue hal.Queue, width, height uint32) error

	// Size returns the configured size.
	Size() (width, height uint32)

	// Acquire returns the view to render the next frame into.
	Acquire() (hal.TextureView, error)

	// Present hands the finished frame over.
	Present() error

	// Release frees GPU objects owned by the surface.
	Release()
}

// OffscreenSurface renders into a texture it owns and reads every presented
// frame back into an *image.RGBA available through Image.
type OffscreenSurface = gpu.OffscreenSurface

// HostSurface renders into views provided by a host window system through
// SetView before each frame.
type HostSurface = gpu.HostSurface

// NewOffscreenSurface returns an offscreen surface of the given 8-bit RGBA or
// BGRA format.
func NewOffscreenSurface(format gputypes.TextureFormat) (*OffscreenSurface, error) {
	return gpu.NewOffscreenSurface(format)
}

// NewHostSurface returns a host surface. present, when non-nil, is called
// after each frame was submitted.
func NewHostSurface(format gputypes.TextureFormat, present func() error) *HostSurface {
	return gpu.NewHostSurface(format, present)
}

var (
	_ Surface = (*OffscreenSurface)(nil)
	_ Surface = (*HostSurface)(nil)
)

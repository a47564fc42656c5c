// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package clockwork

import (
	"errors"

	"github.com/gogpu/clockwork/internal/gpu"
)

// Errors.
var (
	// ErrDecode matches every *DecodeError through errors.Is.
	ErrDecode = errors.New("clockwork: image decode failed")

	// ErrEmptyMesh is returned when a mesh has no vertices or no indices.
	ErrEmptyMesh = errors.New("clockwork: mesh has no vertices or indices")

	// ErrIndexOutOfRange is returned by LoadMesh when Config.ValidateMeshes is
	// set and an index refers past the end of the vertex list.
	ErrIndexOutOfRange = errors.New("clockwork: mesh index out of range")

	// ErrInvalidSize is returned for a zero width or height.
	ErrInvalidSize = errors.New("clockwork: invalid surface size")

	// ErrClosed is returned by every operation on a closed RenderContext.
	ErrClosed = errors.New("clockwork: render context closed")

	// ErrNoAdapter is returned by New when no GPU adapter is available.
	ErrNoAdapter = gpu.ErrNoAdapter

	// ErrProviderNotHAL is returned by NewFromProvider when the provider does
	// not expose HAL device and queue objects.
	ErrProviderNotHAL = gpu.ErrProviderNotHAL

	// ErrNoSurfaceView is returned by Render when a HostSurface has no view
	// for the current frame.
	ErrNoSurfaceView = gpu.ErrNoSurfaceView

	// ErrSurfaceNotConfigured is returned when a surface is used before it was
	// sized.
	ErrSurfaceNotConfigured = gpu.ErrNotConfigured
)

// DecodeError reports encoded texture bytes that could not be decoded.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return "clockwork: decode texture: " + e.Err.Error()
}

// Unwrap returns the underlying decoder error.
func (e *DecodeError) Unwrap() error { return e.Err }

// Is reports whether target is ErrDecode.
func (e *DecodeError) Is(target error) bool { return target == ErrDecode }

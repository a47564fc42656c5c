// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package camera builds view-projection matrices for clockwork render
// operations.
//
// Projections follow the WebGPU clip-space convention: right-handed view
// space looking down -Z, depth mapped to [0, 1].
package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// ProjectionKind selects how a Projection maps view space to clip space.
type ProjectionKind int

const (
	// Perspective uses Aspect, FovY, ZNear and ZFar.
	Perspective ProjectionKind = iota

	// Orthographic uses Left, Right, Bottom, Top, ZNear and ZFar.
	Orthographic
)

// Projection holds the parameters of a camera projection.
type Projection struct {
	Kind ProjectionKind

	// Aspect is the width/height ratio of the target.
	Aspect float32
	// FovY is the vertical field of view in radians.
	FovY float32

	Left, Right, Bottom, Top float32

	// ZNear and ZFar are the distances of the clip planes.
	ZNear, ZFar float32
}

// DefaultPerspective is a square 90° perspective with clip planes at 0.01
// and 100.
func DefaultPerspective() Projection {
	return Projection{
		Kind:   Perspective,
		Aspect: 1,
		FovY:   math.Pi / 2,
		ZNear:  0.01,
		ZFar:   100,
	}
}

// OrthographicSize returns an orthographic projection of the given width and
// height centered on the view axis.
func OrthographicSize(width, height, znear, zfar float32) Projection {
	return Projection{
		Kind:   Orthographic,
		Left:   -width / 2,
		Right:  width / 2,
		Bottom: -height / 2,
		Top:    height / 2,
		ZNear:  znear,
		ZFar:   zfar,
	}
}

// Matrix returns the projection matrix.
func (p Projection) Matrix() mgl32.Mat4 {
	if p.Kind == Orthographic {
		return orthographicZO(p.Left, p.Right, p.Bottom, p.Top, p.ZNear, p.ZFar)
	}
	return perspectiveZO(p.FovY, p.Aspect, p.ZNear, p.ZFar)
}

// perspectiveZO is mgl32.Perspective with depth mapped to [0, 1] instead of
// [-1, 1].
func perspectiveZO(fovy, aspect, near, far float32) mgl32.Mat4 {
	f := float32(1 / math.Tan(float64(fovy)/2))
	r := far / (near - far)
	return mgl32.Mat4{
		f / aspect, 0, 0, 0,
		0, f, 0, 0,
		0, 0, r, -1,
		0, 0, r * near, 0,
	}
}

// orthographicZO is mgl32.Ortho with depth mapped to [0, 1].
func orthographicZO(left, right, bottom, top, near, far float32) mgl32.Mat4 {
	rw := 1 / (right - left)
	rh := 1 / (top - bottom)
	r := 1 / (near - far)
	return mgl32.Mat4{
		2 * rw, 0, 0, 0,
		0, 2 * rh, 0, 0,
		0, 0, r, 0,
		-(left + right) * rw, -(top + bottom) * rh, r * near, 1,
	}
}

// Camera combines a world transform with a projection. The projection matrix
// is computed on first use and cached until the projection changes.
//
// A Camera is not safe for concurrent use.
type Camera struct {
	// Transform places the camera in the world. The view matrix is its
	// inverse.
	Transform mgl32.Mat4

	projection Projection
	cached     mgl32.Mat4
	resolved   bool
}

// New returns a camera with the given transform and projection.
func New(transform mgl32.Mat4, projection Projection) *Camera {
	return &Camera{Transform: transform, projection: projection}
}

// Default returns a camera at the origin with DefaultPerspective.
func Default() *Camera {
	return New(mgl32.Ident4(), DefaultPerspective())
}

// Projection returns the current projection parameters.
func (c *Camera) Projection() Projection { return c.projection }

// MutProjection drops the cached projection matrix and returns the
// projection for modification. The pointer must not be kept past the next
// call to ResolveProjection or ViewProjection.
func (c *Camera) MutProjection() *Projection {
	c.resolved = false
	return &c.projection
}

// SetProjection replaces the projection.
func (c *Camera) SetProjection(p Projection) {
	c.projection = p
	c.resolved = false
}

// SetAspect updates the aspect ratio from a target size, typically after a
// window resize. Zero sizes are ignored.
func (c *Camera) SetAspect(width, height uint32) {
	if width == 0 || height == 0 {
		return
	}
	c.MutProjection().Aspect = float32(width) / float32(height)
}

// ResolveProjection returns the projection matrix, computing and caching it
// if the projection changed since the last call.
func (c *Camera) ResolveProjection() mgl32.Mat4 {
	if !c.resolved {
		c.cached = c.projection.Matrix()
		c.resolved = true
	}
	return c.cached
}

// ViewProjection returns projection × inverse(Transform), the matrix handed
// to RenderContext.Render.
func (c *Camera) ViewProjection() mgl32.Mat4 {
	return c.ResolveProjection().Mul4(c.Transform.Inv())
}

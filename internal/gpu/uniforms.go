// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpu

import "github.com/go-gl/mathgl/mgl32"

// Uniform buffer sizes in bytes.
const (
	// GlobalUniformSize holds one column-major mat4x4<f32>.
	GlobalUniformSize = 64

	// LocalUniformSize layout:
	//
	//	offset  0: transform  mat4x4<f32>
	//	offset 64: uv_window  vec4<f32>  (u offset, v offset, u width, v height)
	//	offset 80: color      vec4<f32>
	LocalUniformSize = 96
)

// GlobalUniforms is the per-frame data shared by every draw.
type GlobalUniforms struct {
	ViewProjection mgl32.Mat4
}

// Bytes serializes the uniforms for a queue write.
func (g GlobalUniforms) Bytes() []byte {
	buf := make([]byte, GlobalUniformSize)
	putFloats(buf, 0, g.ViewProjection[:])
	return buf
}

// LocalUniforms is the per-draw data written into one pool slot.
type LocalUniforms struct {
	Transform mgl32.Mat4
	UVWindow  mgl32.Vec4
	Color     mgl32.Vec4
}

// Bytes serializes the uniforms for a queue write.
func (l LocalUniforms) Bytes() []byte {
	buf := make([]byte, LocalUniformSize)
	off := putFloats(buf, 0, l.Transform[:])
	off = putFloats(buf, off, l.UVWindow[:])
	putFloats(buf, off, l.Color[:])
	return buf
}

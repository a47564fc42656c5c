// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpu

import (
	"encoding/binary"
	"math"

	"github.com/gogpu/gputypes"
)

// Vertex is one mesh vertex as seen by the diffuse shader.
type Vertex struct {
	Position  [3]float32
	Normal    [3]float32
	TexCoords [2]float32
}

// Vertex buffer layout constants.
//
// Layout (32 bytes, tightly packed):
//
//	offset  0: position  vec3<f32>  @location(0)
//	offset 12: normal    vec3<f32>  @location(1)
//	offset 24: texcoord  vec2<f32>  @location(2)
const (
	VertexStride = 32

	positionOffset = 0
	normalOffset   = 12
	texCoordOffset = 24

	// IndexSize is the size of one index in bytes. Indices are always u32.
	IndexSize = 4
)

// VertexBufferLayout returns the single vertex buffer layout used by the
// diffuse pipeline.
func VertexBufferLayout() []gputypes.VertexBufferLayout {
	return []gputypes.VertexBufferLayout{
		{
			ArrayStride: VertexStride,
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x3, Offset: positionOffset, ShaderLocation: 0},
				{Format: gputypes.VertexFormatFloat32x3, Offset: normalOffset, ShaderLocation: 1},
				{Format: gputypes.VertexFormatFloat32x2, Offset: texCoordOffset, ShaderLocation: 2},
			},
		},
	}
}

// EncodeVertices serializes vertices into the little-endian layout described
// by VertexBufferLayout.
func EncodeVertices(vertices []Vertex) []byte {
	buf := make([]byte, len(vertices)*VertexStride)
	for i, v := range vertices {
		off := i * VertexStride
		off = putFloats(buf, off, v.Position[:])
		off = putFloats(buf, off, v.Normal[:])
		putFloats(buf, off, v.TexCoords[:])
	}
	return buf
}

// EncodeIndices serializes u32 indices in little-endian order.
func EncodeIndices(indices []uint32) []byte {
	buf := make([]byte, len(indices)*IndexSize)
	for i, idx := range indices {
		binary.LittleEndian.PutUint32(buf[i*IndexSize:], idx)
	}
	return buf
}

// putFloats writes vals at off and returns the offset just past them.
func putFloats(buf []byte, off int, vals []float32) int {
	for _, v := range vals {
		binary.LittleEndian.PutUint32(buf[off:], math.Float32bits(v))
		off += 4
	}
	return off
}

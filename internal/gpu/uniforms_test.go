// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpu

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func readFloat(buf []byte, off int) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(buf[off:]))
}

func TestGlobalUniformsLayout(t *testing.T) {
	g := GlobalUniforms{ViewProjection: mgl32.Translate3D(1, 2, 3)}
	buf := g.Bytes()

	if len(buf) != GlobalUniformSize {
		t.Fatalf("expected %d bytes, got %d", GlobalUniformSize, len(buf))
	}
	// Column-major: translation lives in elements 12..14.
	for i, want := range []float32{1, 2, 3} {
		if got := readFloat(buf, (12+i)*4); got != want {
			t.Errorf("element %d: expected %v, got %v", 12+i, want, got)
		}
	}
}

func TestLocalUniformsLayout(t *testing.T) {
	l := LocalUniforms{
		Transform: mgl32.Ident4(),
		UVWindow:  mgl32.Vec4{0.25, 0.5, 0.125, 0.5},
		Color:     mgl32.Vec4{1, 0.5, 0.25, 1},
	}
	buf := l.Bytes()

	if len(buf) != LocalUniformSize {
		t.Fatalf("expected %d bytes, got %d", LocalUniformSize, len(buf))
	}
	if got := readFloat(buf, 0); got != 1 {
		t.Errorf("transform[0]: expected 1, got %v", got)
	}
	if got := readFloat(buf, 4); got != 0 {
		t.Errorf("transform[1]: expected 0, got %v", got)
	}
	for i, want := range l.UVWindow {
		if got := readFloat(buf, 64+i*4); got != want {
			t.Errorf("uv_window[%d]: expected %v, got %v", i, want, got)
		}
	}
	for i, want := range l.Color {
		if got := readFloat(buf, 80+i*4); got != want {
			t.Errorf("color[%d]: expected %v, got %v", i, want, got)
		}
	}
}

func TestEncodeVertices(t *testing.T) {
	vertices := []Vertex{
		{Position: [3]float32{1, 2, 3}, Normal: [3]float32{0, 0, 1}, TexCoords: [2]float32{0.5, 0.75}},
		{Position: [3]float32{-1, -2, -3}},
	}
	buf := EncodeVertices(vertices)

	if len(buf) != 2*VertexStride {
		t.Fatalf("expected %d bytes, got %d", 2*VertexStride, len(buf))
	}
	if got := readFloat(buf, positionOffset+8); got != 3 {
		t.Errorf("position.z: expected 3, got %v", got)
	}
	if got := readFloat(buf, normalOffset+8); got != 1 {
		t.Errorf("normal.z: expected 1, got %v", got)
	}
	if got := readFloat(buf, texCoordOffset+4); got != 0.75 {
		t.Errorf("texcoord.v: expected 0.75, got %v", got)
	}
	if got := readFloat(buf, VertexStride); got != -1 {
		t.Errorf("second position.x: expected -1, got %v", got)
	}
}

func TestEncodeIndices(t *testing.T) {
	buf := EncodeIndices([]uint32{0, 1, 70000})
	if len(buf) != 3*IndexSize {
		t.Fatalf("expected %d bytes, got %d", 3*IndexSize, len(buf))
	}
	if got := binary.LittleEndian.Uint32(buf[8:]); got != 70000 {
		t.Errorf("expected 70000, got %d", got)
	}
}

func TestVertexBufferLayout(t *testing.T) {
	layouts := VertexBufferLayout()
	if len(layouts) != 1 {
		t.Fatalf("expected 1 layout, got %d", len(layouts))
	}
	if layouts[0].ArrayStride != VertexStride {
		t.Errorf("expected stride %d, got %d", VertexStride, layouts[0].ArrayStride)
	}
	attrs := layouts[0].Attributes
	if len(attrs) != 3 {
		t.Fatalf("expected 3 attributes, got %d", len(attrs))
	}
	for i, want := range []uint64{0, 12, 24} {
		if uint64(attrs[i].Offset) != want {
			t.Errorf("attribute %d: expected offset %d, got %d", i, want, attrs[i].Offset)
		}
		if int(attrs[i].ShaderLocation) != i {
			t.Errorf("attribute %d: expected location %d, got %d", i, i, attrs[i].ShaderLocation)
		}
	}
}

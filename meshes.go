// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package clockwork

// QuadMeshData returns a unit square centered on the origin in the XY plane,
// facing +Z. Texture coordinates put (0,0) at the top left.
func QuadMeshData() MeshData {
	normal := [3]float32{0, 0, 1}
	return MeshData{
		Vertices: []Vertex{
			{Position: [3]float32{-0.5, -0.5, 0}, Normal: normal, TexCoords: [2]float32{0, 1}}, // bottom left
			{Position: [3]float32{0.5, -0.5, 0}, Normal: normal, TexCoords: [2]float32{1, 1}},  // bottom right
			{Position: [3]float32{-0.5, 0.5, 0}, Normal: normal, TexCoords: [2]float32{0, 0}},  // top left
			{Position: [3]float32{0.5, 0.5, 0}, Normal: normal, TexCoords: [2]float32{1, 0}},   // top right
		},
		Indices: []uint32{0, 1, 3, 0, 3, 2},
	}
}

// cubeFace describes one face of the unit cube by its normal and the two
// in-plane axes spanning it.
type cubeFace struct {
	normal, right, up [3]float32
}

var cubeFaces = [6]cubeFace{
	{normal: [3]float32{0, 0, 1}, right: [3]float32{1, 0, 0}, up: [3]float32{0, 1, 0}},
	{normal: [3]float32{0, 0, -1}, right: [3]float32{-1, 0, 0}, up: [3]float32{0, 1, 0}},
	{normal: [3]float32{1, 0, 0}, right: [3]float32{0, 0, -1}, up: [3]float32{0, 1, 0}},
	{normal: [3]float32{-1, 0, 0}, right: [3]float32{0, 0, 1}, up: [3]float32{0, 1, 0}},
	{normal: [3]float32{0, 1, 0}, right: [3]float32{1, 0, 0}, up: [3]float32{0, 0, -1}},
	{normal: [3]float32{0, -1, 0}, right: [3]float32{1, 0, 0}, up: [3]float32{0, 0, 1}},
}

// CubeMeshData returns a unit cube centered on the origin. Each face has its
// own four vertices so normals and texture coordinates stay per face.
func CubeMeshData() MeshData {
	vertices := make([]Vertex, 0, 24)
	indices := make([]uint32, 0, 36)

	corners := [4]struct{ r, u, s, t float32 }{
		{-0.5, -0.5, 0, 1},
		{0.5, -0.5, 1, 1},
		{-0.5, 0.5, 0, 0},
		{0.5, 0.5, 1, 0},
	}

	for _, f := range cubeFaces {
		base := uint32(len(vertices)) //nolint:gosec // at most 24 vertices
		for _, c := range corners {
			var p [3]float32
			for k := 0; k < 3; k++ {
				p[k] = 0.5*f.normal[k] + c.r*f.right[k] + c.u*f.up[k]
			}
			vertices = append(vertices, Vertex{
				Position:  p,
				Normal:    f.normal,
				TexCoords: [2]float32{c.s, c.t},
			})
		}
		indices = append(indices, base, base+1, base+3, base, base+3, base+2)
	}

	return MeshData{Vertices: vertices, Indices: indices}
}

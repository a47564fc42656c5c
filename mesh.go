// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package clockwork

import (
	"fmt"

	"github.com/gogpu/clockwork/internal/gpu"
	"github.com/gogpu/clockwork/resource"
)

// Vertex is one mesh vertex: position, normal and texture coordinates, packed
// into 32 bytes.
type Vertex = gpu.Vertex

// MeshData is the CPU-side input of LoadMesh.
type MeshData struct {
	Vertices []Vertex
	Indices  []uint32
}

// Validate reports whether every index refers to an existing vertex.
func (d MeshData) Validate() error {
	if len(d.Vertices) == 0 || len(d.Indices) == 0 {
		return ErrEmptyMesh
	}
	n := uint32(len(d.Vertices)) //nolint:gosec // vertex counts fit in uint32
	for i, idx := range d.Indices {
		if idx >= n {
			return fmt.Errorf("%w: index %d at position %d, %d vertices", ErrIndexOutOfRange, idx, i, n)
		}
	}
	return nil
}

// Mesh is an immutable pair of GPU vertex and index buffers.
type Mesh struct {
	buffers *gpu.MeshBuffers
}

// IndexCount returns the number of indices drawn for this mesh.
func (m Mesh) IndexCount() uint32 { return m.buffers.IndexCount }

// VertexCount returns the number of vertices uploaded for this mesh.
func (m Mesh) VertexCount() uint32 { return m.buffers.VertexCount }

// MeshID identifies a mesh loaded into a RenderContext.
type MeshID = resource.ID[Mesh]

// LoadMesh uploads data to the GPU and registers it as a new mesh.
//
// Indices are not checked against the vertex count unless
// Config.ValidateMeshes is set.
func (rc *RenderContext) LoadMesh(data MeshData) (MeshID, error) {
	if rc.closed {
		return MeshID{}, ErrClosed
	}
	if len(data.Vertices) == 0 || len(data.Indices) == 0 {
		return MeshID{}, ErrEmptyMesh
	}
	if rc.config.ValidateMeshes {
		if err := data.Validate(); err != nil {
			return MeshID{}, err
		}
	}

	label := fmt.Sprintf("%s_mesh_%d", rc.config.Label, rc.meshes.Len())
	buffers, err := gpu.UploadMesh(rc.device, rc.queue, label, data.Vertices, data.Indices)
	if err != nil {
		return MeshID{}, fmt.Errorf("load mesh: %w", err)
	}

	id := rc.meshes.Add(Mesh{buffers: buffers}, nil)
	Logger().Debug("mesh loaded", "id", id, "vertices", len(data.Vertices), "indices", len(data.Indices))
	return id, nil
}

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// MeshBuffers is an immutable pair of GPU vertex and index buffers.
type MeshBuffers struct {
	Vertex hal.Buffer
	Index  hal.Buffer

	// IndexCount is captured at upload time and drives DrawIndexed.
	IndexCount  uint32
	VertexCount uint32
}

// UploadMesh creates a vertex buffer and a u32 index buffer and fills them
// through the queue. Callers must pass non-empty slices.
func UploadMesh(device hal.Device, queue hal.Queue, label string, vertices []Vertex, indices []uint32) (*MeshBuffers, error) {
	vb, err := createAndUploadBuffer(device, queue, label+"_vertices",
		EncodeVertices(vertices), gputypes.BufferUsageVertex|gputypes.BufferUsageCopyDst)
	if err != nil {
		return nil, err
	}

	ib, err := createAndUploadBuffer(device, queue, label+"_indices",
		EncodeIndices(indices), gputypes.BufferUsageIndex|gputypes.BufferUsageCopyDst)
	if err != nil {
		device.DestroyBuffer(vb)
		return nil, err
	}

	slogger().Debug("mesh uploaded",
		"label", label,
		"vertices", len(vertices),
		"indices", len(indices),
	)

	return &MeshBuffers{
		Vertex:      vb,
		Index:       ib,
		IndexCount:  uint32(len(indices)),  //nolint:gosec // mesh index counts fit in uint32
		VertexCount: uint32(len(vertices)), //nolint:gosec // mesh vertex counts fit in uint32
	}, nil
}

// Destroy releases both buffers. Safe to call more than once.
func (m *MeshBuffers) Destroy(device hal.Device) {
	if m.Index != nil {
		device.DestroyBuffer(m.Index)
		m.Index = nil
	}
	if m.Vertex != nil {
		device.DestroyBuffer(m.Vertex)
		m.Vertex = nil
	}
}

// createAndUploadBuffer creates a GPU buffer sized to data and uploads it.
func createAndUploadBuffer(device hal.Device, queue hal.Queue, label string, data []byte, usage gputypes.BufferUsage) (hal.Buffer, error) {
	buf, err := device.CreateBuffer(&hal.BufferDescriptor{
		Label: label,
		Size:  uint64(len(data)),
		Usage: usage,
	})
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", label, err)
	}
	if err := queue.WriteBuffer(buf, 0, data); err != nil {
		device.DestroyBuffer(buf)
		return nil, fmt.Errorf("upload %s: %w", label, err)
	}
	return buf, nil
}

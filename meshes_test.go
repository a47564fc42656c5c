// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package clockwork

import (
	"errors"
	"math"
	"testing"
)

func TestQuadMeshData(t *testing.T) {
	q := QuadMeshData()
	if len(q.Vertices) != 4 || len(q.Indices) != 6 {
		t.Fatalf("expected 4 vertices and 6 indices, got %d and %d", len(q.Vertices), len(q.Indices))
	}
	if err := q.Validate(); err != nil {
		t.Errorf("expected valid quad, got %v", err)
	}
	for i, v := range q.Vertices {
		if v.Normal != [3]float32{0, 0, 1} {
			t.Errorf("vertex %d: expected +Z normal, got %v", i, v.Normal)
		}
	}
}

func TestCubeMeshData(t *testing.T) {
	c := CubeMeshData()
	if len(c.Vertices) != 24 || len(c.Indices) != 36 {
		t.Fatalf("expected 24 vertices and 36 indices, got %d and %d", len(c.Vertices), len(c.Indices))
	}
	if err := c.Validate(); err != nil {
		t.Errorf("expected valid cube, got %v", err)
	}
	for i, v := range c.Vertices {
		for k := 0; k < 3; k++ {
			if math.Abs(float64(v.Position[k])) != 0.5 {
				t.Errorf("vertex %d: expected corner coordinates of ±0.5, got %v", i, v.Position)
				break
			}
		}
		// The vertex lies on the face its normal points out of.
		var dot float32
		for k := 0; k < 3; k++ {
			dot += v.Position[k] * v.Normal[k]
		}
		if dot != 0.5 {
			t.Errorf("vertex %d: expected position·normal 0.5, got %v", i, dot)
		}
	}
}

func TestMeshDataValidate(t *testing.T) {
	if err := (MeshData{}).Validate(); !errors.Is(err, ErrEmptyMesh) {
		t.Errorf("expected ErrEmptyMesh, got %v", err)
	}
	bad := MeshData{Vertices: make([]Vertex, 3), Indices: []uint32{0, 1, 3}}
	if err := bad.Validate(); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("expected ErrIndexOutOfRange, got %v", err)
	}
}

func TestLoadMeshValidation(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ValidateMeshes = true
	rc, _, cleanup := newTestContext(t, cfg)
	defer cleanup()

	if _, err := rc.LoadMesh(MeshData{}); !errors.Is(err, ErrEmptyMesh) {
		t.Errorf("expected ErrEmptyMesh, got %v", err)
	}
	bad := MeshData{Vertices: make([]Vertex, 3), Indices: []uint32{0, 1, 7}}
	if _, err := rc.LoadMesh(bad); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("expected ErrIndexOutOfRange, got %v", err)
	}
	if rc.meshes.Len() != 0 {
		t.Errorf("expected no meshes registered, got %d", rc.meshes.Len())
	}

	id, err := rc.LoadMesh(QuadMeshData())
	if err != nil {
		t.Fatalf("LoadMesh failed: %v", err)
	}
	if id.Index() != 0 {
		t.Errorf("expected first mesh at slot 0, got %d", id.Index())
	}
}

func TestLoadMeshWithoutValidationAcceptsBadIndices(t *testing.T) {
	rc, _, cleanup := newTestContext(t, DefaultConfig())
	defer cleanup()

	bad := MeshData{Vertices: make([]Vertex, 3), Indices: []uint32{0, 1, 7}}
	if _, err := rc.LoadMesh(bad); err != nil {
		t.Errorf("expected unchecked load to succeed, got %v", err)
	}
}

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package clockwork

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/clockwork/resource"
)

func TestColoredMeshLowersToDefaultTexture(t *testing.T) {
	red := mgl32.Vec4{1, 0, 0, 1}
	op := ColoredMesh(mgl32.Translate3D(1, 2, 3), resource.NewID[Mesh](4), red)

	raw := op.lower()
	if raw.textures != (textureKey{DefaultTextureID}) {
		t.Errorf("expected default texture key, got %v", raw.textures)
	}
	if raw.uvWindow != FullUVWindow {
		t.Errorf("expected full uv window, got %v", raw.uvWindow)
	}
	if raw.color != red {
		t.Errorf("expected color %v, got %v", red, raw.color)
	}
	if raw.mesh.Index() != 4 {
		t.Errorf("expected mesh 4, got %d", raw.mesh.Index())
	}
	if raw.transform != mgl32.Translate3D(1, 2, 3) {
		t.Errorf("expected transform to be kept, got %v", raw.transform)
	}
}

func TestTexturedMeshWindow(t *testing.T) {
	tex := resource.NewID[Texture](3)

	op := TexturedMesh(mgl32.Ident4(), MeshID{}, tex, nil, White)
	raw := op.lower()
	if raw.textures[0] != tex {
		t.Errorf("expected texture %v, got %v", tex, raw.textures[0])
	}
	if raw.uvWindow != FullUVWindow {
		t.Errorf("expected nil window to select the full texture, got %v", raw.uvWindow)
	}

	window := mgl32.Vec4{0.25, 0.5, 0.25, 0.5}
	raw = TexturedMesh(mgl32.Ident4(), MeshID{}, tex, &window, White).lower()
	if raw.uvWindow != window {
		t.Errorf("expected window %v, got %v", window, raw.uvWindow)
	}

	// The operation copies the window.
	window[0] = 0.9
	if raw.uvWindow[0] != 0.25 {
		t.Errorf("expected window to be copied, got %v", raw.uvWindow)
	}
}

func TestNilMaterialIsWhite(t *testing.T) {
	raw := RenderOperation{Transform: mgl32.Ident4()}.lower()
	if raw.color != White {
		t.Errorf("expected white, got %v", raw.color)
	}
	if raw.textures[0] != DefaultTextureID {
		t.Errorf("expected default texture, got %v", raw.textures[0])
	}
}

func TestDefaultTextureParameters(t *testing.T) {
	p := DefaultTextureParameters()
	if p.Texture != DefaultTextureID || p.UVWindow != FullUVWindow {
		t.Errorf("unexpected default parameters %+v", p)
	}
}

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package clockwork

import (
	"github.com/go-gl/mathgl/mgl32"
)

// FullUVWindow covers the whole texture: offset (0, 0), size (1, 1).
var FullUVWindow = mgl32.Vec4{0, 0, 1, 1}

// White is the neutral material color.
var White = mgl32.Vec4{1, 1, 1, 1}

// RenderOperation asks for one mesh to be drawn with a transform and a
// material. Operations are rebuilt by the caller every frame and drawn in
// the order given.
type RenderOperation struct {
	Transform mgl32.Mat4
	Mesh      MeshID
	Material  Material
}

// Material describes how a mesh is shaded. BasicDiffuse is the only
// implementation.
type Material interface {
	textureKey() textureKey
	uvWindow() mgl32.Vec4
	color() mgl32.Vec4
}

// TextureParameters selects a texture and the UV rectangle sampled from it.
// UVWindow holds (u offset, v offset, u width, v height).
type TextureParameters struct {
	Texture  TextureID
	UVWindow mgl32.Vec4
}

// DefaultTextureParameters samples the whole default white texture.
func DefaultTextureParameters() TextureParameters {
	return TextureParameters{Texture: DefaultTextureID, UVWindow: FullUVWindow}
}

// NewTextureParameters samples texture through uvWindow, or through the full
// texture when uvWindow is nil.
func NewTextureParameters(texture TextureID, uvWindow *mgl32.Vec4) TextureParameters {
	w := FullUVWindow
	if uvWindow != nil {
		w = *uvWindow
	}
	return TextureParameters{Texture: texture, UVWindow: w}
}

// BasicDiffuse shades a mesh with Color, multiplied by a texture sample when
// Texture is set. Color is straight (not premultiplied) RGBA.
type BasicDiffuse struct {
	Color   mgl32.Vec4
	Texture *TextureParameters
}

func (m BasicDiffuse) params() TextureParameters {
	if m.Texture == nil {
		return DefaultTextureParameters()
	}
	return *m.Texture
}

func (m BasicDiffuse) textureKey() textureKey { return textureKey{m.params().Texture} }
func (m BasicDiffuse) uvWindow() mgl32.Vec4   { return m.params().UVWindow }
func (m BasicDiffuse) color() mgl32.Vec4      { return m.Color }

// ColoredMesh draws mesh in a flat color.
func ColoredMesh(transform mgl32.Mat4, mesh MeshID, color mgl32.Vec4) RenderOperation {
	return RenderOperation{
		Transform: transform,
		Mesh:      mesh,
		Material:  BasicDiffuse{Color: color},
	}
}

// TexturedMesh draws mesh with texture tinted by color. A nil uvWindow
// samples the whole texture.
func TexturedMesh(transform mgl32.Mat4, mesh MeshID, texture TextureID, uvWindow *mgl32.Vec4, color mgl32.Vec4) RenderOperation {
	params := NewTextureParameters(texture, uvWindow)
	return RenderOperation{
		Transform: transform,
		Mesh:      mesh,
		Material:  BasicDiffuse{Color: color, Texture: &params},
	}
}

// rawOperation is a RenderOperation with its material resolved to the
// values the GPU needs.
type rawOperation struct {
	transform mgl32.Mat4
	mesh      MeshID
	textures  textureKey
	uvWindow  mgl32.Vec4
	color     mgl32.Vec4
}

func (op RenderOperation) lower() rawOperation {
	m := op.Material
	if m == nil {
		m = BasicDiffuse{Color: White}
	}
	return rawOperation{
		transform: op.Transform,
		mesh:      op.Mesh,
		textures:  m.textureKey(),
		uvWindow:  m.uvWindow(),
		color:     m.color(),
	}
}

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package atlas maps named sprites to regions of shared textures and turns a
// sprite animation frame into the UV window of a clockwork render operation.
//
// Sprites are registered programmatically. Animations are laid out as a row
// of equally sized frames starting at the sprite's top-left corner.
package atlas

import (
	"errors"
	"fmt"
	"image"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/clockwork"
)

// ErrUnknownSprite is returned when no sprite is registered under a name.
var ErrUnknownSprite = errors.New("atlas: unknown sprite")

// SpriteID identifies a sprite within one TextureAtlas.
type SpriteID int

// Sprite is an animation strip inside a texture.
type Sprite struct {
	Texture clockwork.TextureID

	// UVTopLeft is the top-left corner of the first frame.
	UVTopLeft mgl32.Vec2
	// UVDims is the size of one frame.
	UVDims mgl32.Vec2

	// Frames is the number of frames, laid out left to right.
	Frames int
}

// UVWindow returns the window of the given animation frame. Frame numbers
// wrap around, so a running frame counter can be passed directly.
func (s Sprite) UVWindow(frame int) mgl32.Vec4 {
	n := s.Frames
	if n < 1 {
		n = 1
	}
	frame %= n
	if frame < 0 {
		frame += n
	}
	left := s.UVTopLeft.X() + s.UVDims.X()*float32(frame)
	return mgl32.Vec4{left, s.UVTopLeft.Y(), s.UVDims.X(), s.UVDims.Y()}
}

// Operation returns a render operation drawing frame of s on mesh.
func (s Sprite) Operation(transform mgl32.Mat4, mesh clockwork.MeshID, frame int, color mgl32.Vec4) clockwork.RenderOperation {
	window := s.UVWindow(frame)
	return clockwork.TexturedMesh(transform, mesh, s.Texture, &window, color)
}

// SpriteFromPixels builds a sprite whose first frame is the pixel rectangle
// first inside a texture of the given size.
func SpriteFromPixels(texture clockwork.TextureID, textureSize image.Point, first image.Rectangle, frames int) Sprite {
	w, h := float32(textureSize.X), float32(textureSize.Y)
	return Sprite{
		Texture:   texture,
		UVTopLeft: mgl32.Vec2{float32(first.Min.X) / w, float32(first.Min.Y) / h},
		UVDims:    mgl32.Vec2{float32(first.Dx()) / w, float32(first.Dy()) / h},
		Frames:    frames,
	}
}

// spriteKey names a sprite by the image it was cut from and an optional
// animation tag.
type spriteKey struct {
	image  string
	tag    string
	tagged bool
}

func (k spriteKey) String() string {
	if !k.tagged {
		return k.image
	}
	return k.image + "#" + k.tag
}

// TextureAtlas maps sprite names to sprites.
//
// The zero value is not usable; create atlases with New.
type TextureAtlas struct {
	ids     map[spriteKey]SpriteID
	sprites []Sprite
}

// New returns an empty atlas.
func New() *TextureAtlas {
	return &TextureAtlas{ids: make(map[spriteKey]SpriteID)}
}

// Len returns the number of sprites.
func (a *TextureAtlas) Len() int { return len(a.sprites) }

// AddSprite registers s under image and returns its id. Registering the
// same name again points the name at the new sprite.
func (a *TextureAtlas) AddSprite(s Sprite, image string) SpriteID {
	return a.add(s, spriteKey{image: image})
}

// AddTaggedSprite registers s under image and tag.
func (a *TextureAtlas) AddTaggedSprite(s Sprite, image, tag string) SpriteID {
	return a.add(s, spriteKey{image: image, tag: tag, tagged: true})
}

func (a *TextureAtlas) add(s Sprite, key spriteKey) SpriteID {
	id := SpriteID(len(a.sprites))
	a.sprites = append(a.sprites, s)
	a.ids[key] = id
	return id
}

// SpriteID looks up a sprite registered without a tag.
func (a *TextureAtlas) SpriteID(image string) (SpriteID, bool) {
	id, ok := a.ids[spriteKey{image: image}]
	return id, ok
}

// TaggedSpriteID looks up a sprite registered with a tag.
func (a *TextureAtlas) TaggedSpriteID(image, tag string) (SpriteID, bool) {
	id, ok := a.ids[spriteKey{image: image, tag: tag, tagged: true}]
	return id, ok
}

// Sprite returns the sprite with the given id. It panics on an id that was
// not returned by this atlas.
func (a *TextureAtlas) Sprite(id SpriteID) Sprite {
	if id < 0 || int(id) >= len(a.sprites) {
		panic(fmt.Sprintf("atlas: sprite id %d out of range (%d sprites)", id, len(a.sprites)))
	}
	return a.sprites[id]
}

// LazySpriteID names a sprite before the atlas holding it is populated. It
// is resolved to a SpriteID once, on the first successful Resolve, and keeps
// that id afterwards.
//
// A LazySpriteID must not be shared between atlases or goroutines.
type LazySpriteID struct {
	key      spriteKey
	resolved bool
	id       SpriteID
}

// Lazy returns a lazy id for the untagged sprite image.
func Lazy(image string) *LazySpriteID {
	return &LazySpriteID{key: spriteKey{image: image}}
}

// LazyTagged returns a lazy id for the sprite image with tag.
func LazyTagged(image, tag string) *LazySpriteID {
	return &LazySpriteID{key: spriteKey{image: image, tag: tag, tagged: true}}
}

// Resolved reports whether the id has been resolved.
func (l *LazySpriteID) Resolved() bool { return l.resolved }

// Resolve looks the name up in a on first use and caches the result.
func (l *LazySpriteID) Resolve(a *TextureAtlas) (SpriteID, error) {
	if l.resolved {
		return l.id, nil
	}
	id, ok := a.ids[l.key]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownSprite, l.key)
	}
	l.id = id
	l.resolved = true
	return id, nil
}

// SpriteLazily resolves l and returns its sprite. It panics if the name is
// not registered.
func (a *TextureAtlas) SpriteLazily(l *LazySpriteID) Sprite {
	id, err := l.Resolve(a)
	if err != nil {
		panic(err)
	}
	return a.Sprite(id)
}

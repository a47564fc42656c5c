// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package clockwork

import (
	"fmt"
	"image"

	"github.com/gogpu/clockwork/internal/gpu"
	"github.com/gogpu/clockwork/internal/imageio"
	"github.com/gogpu/clockwork/resource"
)

// Texture is a sampled sRGB GPU image stored in a RenderContext.
type Texture struct {
	gpu *gpu.Texture
}

// Size returns the texture dimensions in pixels.
func (t Texture) Size() (width, height uint32) { return t.gpu.Width, t.gpu.Height }

// TextureID identifies a texture loaded into a RenderContext.
type TextureID = resource.ID[Texture]

// DefaultTextureID is the 1×1 opaque white texture every RenderContext
// registers at construction. Untextured materials sample it.
var DefaultTextureID = resource.NewID[Texture](0)

// LoadTexture decodes encoded image bytes (PNG, JPEG, GIF, BMP, TIFF or WebP)
// and registers the result as a new texture.
//
// Bytes that are not a valid image produce a *DecodeError and leave the
// texture repository unchanged.
func (rc *RenderContext) LoadTexture(encoded []byte) (TextureID, error) {
	if rc.closed {
		return TextureID{}, ErrClosed
	}
	img, format, err := imageio.Decode(encoded)
	if err != nil {
		return TextureID{}, &DecodeError{Err: err}
	}
	id, err := rc.storeTexture(img, nil)
	if err != nil {
		return TextureID{}, err
	}
	Logger().Debug("texture loaded", "id", id, "format", format)
	return id, nil
}

// LoadTextureRGBA registers an already decoded image as a new texture.
func (rc *RenderContext) LoadTextureRGBA(img *image.RGBA) (TextureID, error) {
	if rc.closed {
		return TextureID{}, ErrClosed
	}
	return rc.storeTexture(img, nil)
}

// ReloadTexture decodes encoded and stores the result in the existing slot
// id. The slot's generation advances, so bind groups built from the previous
// texture are rebuilt on the next frame that uses them.
//
// On a decode failure the slot keeps its current texture.
func (rc *RenderContext) ReloadTexture(id TextureID, encoded []byte) error {
	if rc.closed {
		return ErrClosed
	}
	img, _, err := imageio.Decode(encoded)
	if err != nil {
		return &DecodeError{Err: err}
	}
	if _, err := rc.storeTexture(img, &id); err != nil {
		return err
	}
	Logger().Debug("texture reloaded", "id", id, "generation", rc.textures.Generation(id))
	return nil
}

// storeTexture uploads img and adds it to the texture repository, at id when
// id is non-nil. A texture it replaces is destroyed after the new one is in
// place.
func (rc *RenderContext) storeTexture(img *image.RGBA, id *TextureID) (TextureID, error) {
	slot := rc.textures.Len()
	if id != nil {
		slot = id.Index()
	}
	label := fmt.Sprintf("%s_texture_%d", rc.config.Label, slot)
	tex, err := gpu.UploadRGBA(rc.device, rc.queue, label, img)
	if err != nil {
		return TextureID{}, fmt.Errorf("load texture: %w", err)
	}

	var old *gpu.Texture
	if id != nil {
		if prev, ok := rc.textures.Get(*id); ok {
			old = prev.gpu
		}
	}

	newID := rc.textures.Add(Texture{gpu: tex}, id)
	if old != nil {
		old.Destroy(rc.device)
	}
	return newID, nil
}

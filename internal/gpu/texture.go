// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpu

import (
	"fmt"
	"image"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// Texture formats used by the render core.
const (
	// MaterialFormat is the format of every sampled material texture.
	MaterialFormat = gputypes.TextureFormatRGBA8UnormSrgb

	// DepthFormat is the single-channel 32-bit float depth buffer format.
	DepthFormat = gputypes.TextureFormatDepth32Float
)

// Texture is a GPU image together with the view used to bind it.
type Texture struct {
	Texture hal.Texture
	View    hal.TextureView
	Width   uint32
	Height  uint32
	Format  gputypes.TextureFormat
}

// UploadRGBA creates a sampled sRGB texture from img and copies its pixels to
// the GPU. img must have non-zero bounds.
func UploadRGBA(device hal.Device, queue hal.Queue, label string, img *image.RGBA) (*Texture, error) {
	b := img.Bounds()
	w, h := uint32(b.Dx()), uint32(b.Dy()) //nolint:gosec // image bounds are non-negative
	if w == 0 || h == 0 {
		return nil, fmt.Errorf("create %s: empty image", label)
	}

	t, err := newTexture(device, label, w, h, MaterialFormat,
		gputypes.TextureUsageTextureBinding|gputypes.TextureUsageCopyDst)
	if err != nil {
		return nil, err
	}

	err = queue.WriteTexture(
		&hal.ImageCopyTexture{
			Texture:  t.Texture,
			MipLevel: 0,
		},
		tightPixels(img),
		&hal.ImageDataLayout{
			Offset:       0,
			BytesPerRow:  w * 4,
			RowsPerImage: h,
		},
		&hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
	)
	if err != nil {
		t.Destroy(device)
		return nil, fmt.Errorf("upload %s: %w", label, err)
	}

	slogger().Debug("texture uploaded", "label", label, "width", w, "height", h)
	return t, nil
}

// CreateDepthTexture creates the render-attachment depth buffer.
func CreateDepthTexture(device hal.Device, w, h uint32) (*Texture, error) {
	return newTexture(device, "depth", w, h, DepthFormat, gputypes.TextureUsageRenderAttachment)
}

// Destroy releases the view and then the texture. Safe to call more than once.
func (t *Texture) Destroy(device hal.Device) {
	if t.View != nil {
		device.DestroyTextureView(t.View)
		t.View = nil
	}
	if t.Texture != nil {
		device.DestroyTexture(t.Texture)
		t.Texture = nil
	}
}

func newTexture(device hal.Device, label string, w, h uint32, format gputypes.TextureFormat, usage gputypes.TextureUsage) (*Texture, error) {
	tex, err := device.CreateTexture(&hal.TextureDescriptor{
		Label:         label,
		Size:          hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        format,
		Usage:         usage,
	})
	if err != nil {
		return nil, fmt.Errorf("create %s texture: %w", label, err)
	}

	view, err := device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label:         label + "_view",
		Format:        format,
		Dimension:     gputypes.TextureViewDimension2D,
		Aspect:        gputypes.TextureAspectAll,
		MipLevelCount: 1,
	})
	if err != nil {
		device.DestroyTexture(tex)
		return nil, fmt.Errorf("create %s view: %w", label, err)
	}

	return &Texture{Texture: tex, View: view, Width: w, Height: h, Format: format}, nil
}

// tightPixels returns img's pixels with no row padding.
func tightPixels(img *image.RGBA) []byte {
	b := img.Bounds()
	rowBytes := b.Dx() * 4
	if img.Stride == rowBytes && b.Min == (image.Point{}) {
		return img.Pix[:rowBytes*b.Dy()]
	}
	out := make([]byte, rowBytes*b.Dy())
	for y := 0; y < b.Dy(); y++ {
		src := img.PixOffset(b.Min.X, b.Min.Y+y)
		copy(out[y*rowBytes:(y+1)*rowBytes], img.Pix[src:src+rowBytes])
	}
	return out
}

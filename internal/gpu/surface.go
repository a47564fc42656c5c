// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpu

import (
	"errors"
	"fmt"
	"image"
	"unsafe"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// Surface errors.
var (
	// ErrNotConfigured is returned when a surface is used before Configure.
	ErrNotConfigured = errors.New("gpu: surface not configured")

	// ErrNoSurfaceView is returned when the host did not provide a view for
	// the current frame.
	ErrNoSurfaceView = errors.New("gpu: no surface view for this frame")

	// ErrUnsupportedFormat is returned for an offscreen color format that
	// cannot be read back as RGBA8.
	ErrUnsupportedFormat = errors.New("gpu: unsupported offscreen format")
)

// copyPitchAlignment is the required BytesPerRow alignment for
// texture-to-buffer copies.
const copyPitchAlignment = 256

// OffscreenSurface renders into a texture owned by the surface and reads each
// presented frame back into an *image.RGBA.
type OffscreenSurface struct {
	device hal.Device
	queue  hal.Queue

	format gputypes.TextureFormat
	color  *Texture
	image  *image.RGBA
	frames uint64
}

// NewOffscreenSurface returns an unconfigured offscreen surface. format must
// be one of the 8-bit RGBA or BGRA formats.
func NewOffscreenSurface(format gputypes.TextureFormat) (*OffscreenSurface, error) {
	switch format {
	case gputypes.TextureFormatRGBA8Unorm, gputypes.TextureFormatRGBA8UnormSrgb,
		gputypes.TextureFormatBGRA8Unorm, gputypes.TextureFormatBGRA8UnormSrgb:
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedFormat, format)
	}
	return &OffscreenSurface{format: format}, nil
}

// Format returns the color format of the surface.
func (s *OffscreenSurface) Format() gputypes.TextureFormat { return s.format }

// Configure (re)creates the color texture at the given size.
func (s *OffscreenSurface) Configure(device hal.Device, queue hal.Queue, width, height uint32) error {
	s.Release()

	color, err := newTexture(device, "offscreen_color", width, height, s.format,
		gputypes.TextureUsageRenderAttachment|gputypes.TextureUsageCopySrc)
	if err != nil {
		return err
	}

	s.device = device
	s.queue = queue
	s.color = color
	s.image = image.NewRGBA(image.Rect(0, 0, int(width), int(height)))
	slogger().Debug("offscreen surface configured", "width", width, "height", height)
	return nil
}

// Size returns the configured size, or zero before Configure.
func (s *OffscreenSurface) Size() (width, height uint32) {
	if s.color == nil {
		return 0, 0
	}
	return s.color.Width, s.color.Height
}

// Acquire returns the view to render the next frame into.
func (s *OffscreenSurface) Acquire() (hal.TextureView, error) {
	if s.color == nil {
		return nil, ErrNotConfigured
	}
	return s.color.View, nil
}

// Present copies the rendered frame to the CPU.
func (s *OffscreenSurface) Present() error {
	if s.color == nil {
		return ErrNotConfigured
	}
	if err := s.readback(); err != nil {
		return err
	}
	s.frames++
	return nil
}

// Image returns the most recently presented frame. The image is reused by
// the next Present.
func (s *OffscreenSurface) Image() *image.RGBA { return s.image }

// Frames returns the number of presented frames.
func (s *OffscreenSurface) Frames() uint64 { return s.frames }

// Release destroys the color texture. The surface can be configured again.
func (s *OffscreenSurface) Release() {
	if s.color != nil && s.device != nil {
		s.color.Destroy(s.device)
	}
	s.color = nil
}

func (s *OffscreenSurface) readback() error {
	w, h := s.color.Width, s.color.Height

	encoder, err := s.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{
		Label: "offscreen_readback_encoder",
	})
	if err != nil {
		return fmt.Errorf("create command encoder: %w", err)
	}
	defer encoder.Destroy()
	if err := encoder.BeginEncoding("offscreen_readback"); err != nil {
		return fmt.Errorf("begin encoding: %w", err)
	}

	// The color texture is left in render-attachment layout by the frame
	// pass; copies need it as a copy source.
	encoder.TransitionTextures([]hal.TextureBarrier{{
		Texture: s.color.Texture,
		Usage: hal.TextureUsageTransition{
			OldUsage: gputypes.TextureUsageRenderAttachment,
			NewUsage: gputypes.TextureUsageCopySrc,
		},
	}})

	bytesPerRow := w * 4
	alignedBytesPerRow := (bytesPerRow + copyPitchAlignment - 1) &^ (copyPitchAlignment - 1)
	stagingSize := uint64(alignedBytesPerRow) * uint64(h)

	staging, err := s.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "offscreen_staging",
		Size:  stagingSize,
		Usage: gputypes.BufferUsageMapRead | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		encoder.DiscardEncoding()
		return fmt.Errorf("create staging buffer: %w", err)
	}
	defer s.device.DestroyBuffer(staging)

	encoder.CopyTextureToBuffer(s.color.Texture, staging, []hal.BufferTextureCopy{{
		BufferLayout: hal.ImageDataLayout{Offset: 0, BytesPerRow: alignedBytesPerRow, RowsPerImage: h},
		TextureBase:  hal.ImageCopyTexture{Texture: s.color.Texture, MipLevel: 0},
		Size:         hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
	}})

	encoder.TransitionTextures([]hal.TextureBarrier{{
		Texture: s.color.Texture,
		Usage: hal.TextureUsageTransition{
			OldUsage: gputypes.TextureUsageCopySrc,
			NewUsage: gputypes.TextureUsageRenderAttachment,
		},
	}})

	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return fmt.Errorf("end encoding: %w", err)
	}
	defer s.device.FreeCommandBuffer(cmdBuf)

	if err := submitAndWait(s.queue, cmdBuf, DefaultSubmitTimeout); err != nil {
		return err
	}

	mapping, err := s.device.MapBuffer(staging, 0, stagingSize)
	if err != nil {
		return fmt.Errorf("map staging buffer: %w", err)
	}
	defer func() { _ = s.device.UnmapBuffer(staging) }()
	data := unsafe.Slice((*byte)(mapping.Ptr), stagingSize)

	bgra := s.format == gputypes.TextureFormatBGRA8Unorm || s.format == gputypes.TextureFormatBGRA8UnormSrgb
	for row := uint32(0); row < h; row++ {
		src := data[int(row)*int(alignedBytesPerRow):][:bytesPerRow]
		dst := s.image.Pix[int(row)*s.image.Stride:][:bytesPerRow]
		copy(dst, src)
		if bgra {
			for i := 0; i < len(dst); i += 4 {
				dst[i], dst[i+2] = dst[i+2], dst[i]
			}
		}
	}
	return nil
}

// HostSurface presents into views owned by a host window system. The host
// calls SetView before every frame; Present hands the frame back through the
// present callback.
type HostSurface struct {
	format  gputypes.TextureFormat
	view    hal.TextureView
	width   uint32
	height  uint32
	present func() error
}

// NewHostSurface returns a surface that renders into host-provided views of
// the given format. present may be nil.
func NewHostSurface(format gputypes.TextureFormat, present func() error) *HostSurface {
	return &HostSurface{format: format, present: present}
}

// Format returns the color format of the host views.
func (s *HostSurface) Format() gputypes.TextureFormat { return s.format }

// SetView provides the view for the next frame.
func (s *HostSurface) SetView(view hal.TextureView) { s.view = view }

// Configure records the new size. The host owns the swapchain and resizes it
// itself.
func (s *HostSurface) Configure(_ hal.Device, _ hal.Queue, width, height uint32) error {
	s.width = width
	s.height = height
	return nil
}

// Size returns the last configured size.
func (s *HostSurface) Size() (width, height uint32) { return s.width, s.height }

// Acquire returns the view set for this frame.
func (s *HostSurface) Acquire() (hal.TextureView, error) {
	if s.view == nil {
		return nil, ErrNoSurfaceView
	}
	return s.view, nil
}

// Present calls the host's present callback and forgets the frame's view.
func (s *HostSurface) Present() error {
	s.view = nil
	if s.present == nil {
		return nil
	}
	return s.present()
}

// Release forgets the current view.
func (s *HostSurface) Release() { s.view = nil }

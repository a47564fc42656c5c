// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpu

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

func TestUploadMesh(t *testing.T) {
	device, queue, cleanup := createNoopDevice(t)
	defer cleanup()

	vertices := []Vertex{{}, {}, {}, {}}
	indices := []uint32{0, 1, 2, 0, 2, 3}

	m, err := UploadMesh(device, queue, "quad", vertices, indices)
	if err != nil {
		t.Fatalf("UploadMesh failed: %v", err)
	}
	if m.Vertex == nil || m.Index == nil {
		t.Fatal("expected non-nil buffers")
	}
	if m.IndexCount != 6 {
		t.Errorf("expected index count 6, got %d", m.IndexCount)
	}
	if m.VertexCount != 4 {
		t.Errorf("expected vertex count 4, got %d", m.VertexCount)
	}

	m.Destroy(device)
	if m.Vertex != nil || m.Index != nil {
		t.Error("expected Destroy to clear buffers")
	}
	m.Destroy(device)
}

func TestUploadRGBA(t *testing.T) {
	device, queue, cleanup := createNoopDevice(t)
	defer cleanup()

	img := image.NewRGBA(image.Rect(0, 0, 3, 2))
	img.Set(1, 1, color.RGBA{R: 255, A: 255})

	tex, err := UploadRGBA(device, queue, "test", img)
	if err != nil {
		t.Fatalf("UploadRGBA failed: %v", err)
	}
	defer tex.Destroy(device)

	if tex.Width != 3 || tex.Height != 2 {
		t.Errorf("expected 3x2, got %dx%d", tex.Width, tex.Height)
	}
	if tex.Format != MaterialFormat {
		t.Errorf("expected format %v, got %v", MaterialFormat, tex.Format)
	}
	if tex.View == nil {
		t.Error("expected non-nil view")
	}
}

func TestUploadRGBARejectsEmpty(t *testing.T) {
	device, queue, cleanup := createNoopDevice(t)
	defer cleanup()

	if _, err := UploadRGBA(device, queue, "empty", image.NewRGBA(image.Rect(0, 0, 0, 0))); err == nil {
		t.Error("expected error for empty image")
	}
}

func TestTightPixelsSubImage(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.Set(2, 2, color.RGBA{R: 10, G: 20, B: 30, A: 255})

	sub, ok := img.SubImage(image.Rect(2, 2, 4, 4)).(*image.RGBA)
	if !ok {
		t.Fatal("expected *image.RGBA sub image")
	}
	pix := tightPixels(sub)
	if len(pix) != 2*2*4 {
		t.Fatalf("expected 16 bytes, got %d", len(pix))
	}
	if pix[0] != 10 || pix[1] != 20 || pix[2] != 30 || pix[3] != 255 {
		t.Errorf("expected first pixel (10,20,30,255), got %v", pix[:4])
	}
}

func TestCreateDepthTexture(t *testing.T) {
	device, _, cleanup := createNoopDevice(t)
	defer cleanup()

	depth, err := CreateDepthTexture(device, 640, 480)
	if err != nil {
		t.Fatalf("CreateDepthTexture failed: %v", err)
	}
	defer depth.Destroy(device)

	if depth.Format != gputypes.TextureFormatDepth32Float {
		t.Errorf("expected Depth32Float, got %v", depth.Format)
	}
	if depth.Width != 640 || depth.Height != 480 {
		t.Errorf("expected 640x480, got %dx%d", depth.Width, depth.Height)
	}
}

func TestDiffusePipelineCreation(t *testing.T) {
	device, _, cleanup := createNoopDevice(t)
	defer cleanup()

	p, err := NewDiffusePipeline(device, PipelineConfig{ColorFormat: gputypes.TextureFormatBGRA8UnormSrgb})
	if err != nil {
		t.Fatalf("NewDiffusePipeline failed: %v", err)
	}
	if p.Pipeline() == nil {
		t.Error("expected non-nil pipeline")
	}
	if p.BuffersLayout() == nil {
		t.Error("expected non-nil buffers layout")
	}
	if p.ColorFormat() != gputypes.TextureFormatBGRA8UnormSrgb {
		t.Errorf("expected BGRA8UnormSrgb, got %v", p.ColorFormat())
	}

	p.Destroy()
	if p.pipeline != nil || p.sampler != nil || p.shader != nil {
		t.Error("expected Destroy to clear pipeline resources")
	}
	p.Destroy()
}

func TestDiffusePipelineTexturesBindGroup(t *testing.T) {
	device, queue, cleanup := createNoopDevice(t)
	defer cleanup()

	p, err := NewDiffusePipeline(device, PipelineConfig{ColorFormat: gputypes.TextureFormatRGBA8UnormSrgb})
	if err != nil {
		t.Fatalf("NewDiffusePipeline failed: %v", err)
	}
	defer p.Destroy()

	tex, err := UploadRGBA(device, queue, "white", image.NewRGBA(image.Rect(0, 0, 1, 1)))
	if err != nil {
		t.Fatalf("UploadRGBA failed: %v", err)
	}
	defer tex.Destroy(device)

	bg, err := p.CreateTexturesBindGroup("textures", nil)
	if err != nil {
		t.Fatalf("CreateTexturesBindGroup(nil) failed: %v", err)
	}
	device.DestroyBindGroup(bg)

	bg, err = p.CreateTexturesBindGroup("textures", []hal.TextureView{tex.View})
	if err != nil {
		t.Fatalf("CreateTexturesBindGroup failed: %v", err)
	}
	if bg == nil {
		t.Error("expected non-nil bind group")
	}
	device.DestroyBindGroup(bg)
}

func TestUniformPoolGrowsMonotonically(t *testing.T) {
	device, queue, cleanup := createNoopDevice(t)
	defer cleanup()

	p, err := NewDiffusePipeline(device, PipelineConfig{ColorFormat: gputypes.TextureFormatRGBA8UnormSrgb})
	if err != nil {
		t.Fatalf("NewDiffusePipeline failed: %v", err)
	}
	defer p.Destroy()

	pool, err := NewUniformPool(device, queue, p.BuffersLayout())
	if err != nil {
		t.Fatalf("NewUniformPool failed: %v", err)
	}
	defer pool.Destroy()

	if pool.Len() != 0 {
		t.Fatalf("expected empty pool, got %d", pool.Len())
	}

	steps := []struct{ request, want int }{
		{3, 3},
		{1, 3},
		{0, 3},
		{5, 5},
		{2, 5},
	}
	for _, s := range steps {
		if err := pool.EnsureCapacity(s.request); err != nil {
			t.Fatalf("EnsureCapacity(%d) failed: %v", s.request, err)
		}
		if pool.Len() != s.want {
			t.Errorf("after EnsureCapacity(%d): expected %d slots, got %d", s.request, s.want, pool.Len())
		}
	}

	if err := pool.WriteGlobal(GlobalUniforms{ViewProjection: mgl32.Ident4()}); err != nil {
		t.Fatalf("WriteGlobal failed: %v", err)
	}
	for i := 0; i < pool.Len(); i++ {
		if err := pool.WriteLocal(i, LocalUniforms{Transform: mgl32.Ident4()}); err != nil {
			t.Errorf("WriteLocal(%d) failed: %v", i, err)
		}
		if pool.BindGroup(i) == nil {
			t.Errorf("slot %d: expected non-nil bind group", i)
		}
	}
}

func TestUniformPoolDestroy(t *testing.T) {
	device, queue, cleanup := createNoopDevice(t)
	defer cleanup()

	p, err := NewDiffusePipeline(device, PipelineConfig{ColorFormat: gputypes.TextureFormatRGBA8UnormSrgb})
	if err != nil {
		t.Fatalf("NewDiffusePipeline failed: %v", err)
	}
	defer p.Destroy()

	pool, err := NewUniformPool(device, queue, p.BuffersLayout())
	if err != nil {
		t.Fatalf("NewUniformPool failed: %v", err)
	}
	if err := pool.EnsureCapacity(2); err != nil {
		t.Fatalf("EnsureCapacity failed: %v", err)
	}

	pool.Destroy()
	if pool.Len() != 0 {
		t.Errorf("expected 0 slots after Destroy, got %d", pool.Len())
	}
	if pool.global != nil {
		t.Error("expected nil global buffer after Destroy")
	}
	pool.Destroy()
}

func TestOffscreenSurfaceLifecycle(t *testing.T) {
	device, queue, cleanup := createNoopDevice(t)
	defer cleanup()

	s, err := NewOffscreenSurface(gputypes.TextureFormatRGBA8UnormSrgb)
	if err != nil {
		t.Fatalf("NewOffscreenSurface failed: %v", err)
	}

	if _, err := s.Acquire(); !errors.Is(err, ErrNotConfigured) {
		t.Errorf("expected ErrNotConfigured before Configure, got %v", err)
	}

	if err := s.Configure(device, queue, 100, 50); err != nil {
		t.Fatalf("Configure failed: %v", err)
	}
	defer s.Release()

	w, h := s.Size()
	if w != 100 || h != 50 {
		t.Errorf("expected 100x50, got %dx%d", w, h)
	}
	if b := s.Image().Bounds(); b.Dx() != 100 || b.Dy() != 50 {
		t.Errorf("expected 100x50 image, got %v", b)
	}

	view, err := s.Acquire()
	if err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}
	if view == nil {
		t.Fatal("expected non-nil view")
	}

	if err := s.Present(); err != nil {
		t.Fatalf("Present failed: %v", err)
	}
	if s.Frames() != 1 {
		t.Errorf("expected 1 frame, got %d", s.Frames())
	}

	// Reconfigure to a new size.
	if err := s.Configure(device, queue, 64, 64); err != nil {
		t.Fatalf("reconfigure failed: %v", err)
	}
	if b := s.Image().Bounds(); b.Dx() != 64 || b.Dy() != 64 {
		t.Errorf("expected 64x64 image after reconfigure, got %v", b)
	}
}

func TestOffscreenSurfaceRejectsFormat(t *testing.T) {
	if _, err := NewOffscreenSurface(gputypes.TextureFormatDepth32Float); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestHostSurface(t *testing.T) {
	device, _, cleanup := createNoopDevice(t)
	defer cleanup()

	presented := 0
	s := NewHostSurface(gputypes.TextureFormatBGRA8UnormSrgb, func() error {
		presented++
		return nil
	})

	if _, err := s.Acquire(); !errors.Is(err, ErrNoSurfaceView) {
		t.Errorf("expected ErrNoSurfaceView, got %v", err)
	}

	tex, err := newTexture(device, "host", 8, 8, gputypes.TextureFormatBGRA8UnormSrgb, gputypes.TextureUsageRenderAttachment)
	if err != nil {
		t.Fatalf("newTexture failed: %v", err)
	}
	defer tex.Destroy(device)

	s.SetView(tex.View)
	view, err := s.Acquire()
	if err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}
	if view != tex.View {
		t.Error("expected the host view to be returned")
	}
	if err := s.Present(); err != nil {
		t.Fatalf("Present failed: %v", err)
	}
	if presented != 1 {
		t.Errorf("expected 1 present call, got %d", presented)
	}

	// The view is consumed by Present.
	if _, err := s.Acquire(); !errors.Is(err, ErrNoSurfaceView) {
		t.Errorf("expected ErrNoSurfaceView after Present, got %v", err)
	}
}

func TestFrameSubmit(t *testing.T) {
	device, queue, cleanup := createNoopDevice(t)
	defer cleanup()

	color, err := newTexture(device, "color", 16, 16, gputypes.TextureFormatRGBA8UnormSrgb, gputypes.TextureUsageRenderAttachment)
	if err != nil {
		t.Fatalf("newTexture failed: %v", err)
	}
	defer color.Destroy(device)
	depth, err := CreateDepthTexture(device, 16, 16)
	if err != nil {
		t.Fatalf("CreateDepthTexture failed: %v", err)
	}
	defer depth.Destroy(device)

	targets := FrameTargets{Color: color.View, Depth: depth.View, Clear: gputypes.Color{R: 0.1, G: 0.2, B: 0.3, A: 1}}

	f, err := BeginFrame(device, queue, targets)
	if err != nil {
		t.Fatalf("BeginFrame failed: %v", err)
	}
	if f.Pass() == nil {
		t.Fatal("expected open pass")
	}
	if err := f.Submit(0); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	f, err = BeginFrame(device, queue, targets)
	if err != nil {
		t.Fatalf("second BeginFrame failed: %v", err)
	}
	f.Discard()
}

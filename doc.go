// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package clockwork is a small real-time rendering core for 2D and simple 3D
// games built on the gogpu HAL.
//
// # Overview
//
// A [RenderContext] owns a GPU device, an output [Surface], a single diffuse
// render pipeline and the depth buffer. Meshes and textures are uploaded once
// and referred to afterwards by typed identifiers ([MeshID], [TextureID])
// backed by generation-tracked [resource.Repository] slots.
//
// Every frame the caller builds a list of [RenderOperation] values and hands
// it to [RenderContext.Render] together with a view-projection matrix. The
// context writes uniforms into a pool of per-draw buffers that only grows,
// rebuilds texture bind groups whose texture slots changed since they were
// built, and records one indexed draw per operation in list order.
//
// # Quick Start
//
//	surface, _ := clockwork.NewOffscreenSurface(gputypes.TextureFormatRGBA8Unorm)
//	rc, err := clockwork.New(surface, 640, 480, clockwork.DefaultConfig())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer rc.Close()
//
//	quad, _ := rc.LoadMesh(clockwork.QuadMeshData())
//	tex, _ := rc.LoadTexture(pngBytes)
//
//	ops := []clockwork.RenderOperation{
//	    clockwork.TexturedMesh(mgl32.Ident4(), quad, tex, nil, mgl32.Vec4{1, 1, 1, 1}),
//	}
//	if err := rc.Render(mgl32.Ident4(), ops); err != nil {
//	    log.Fatal(err)
//	}
//
// # Threading
//
// RenderContext, the repositories and the caches are not safe for concurrent
// use. Drive them from a single frame loop.
//
// # Logging
//
// clockwork is silent by default. Use [SetLogger] to route its diagnostics to
// any [log/slog] handler.
package clockwork

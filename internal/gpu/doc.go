// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package gpu implements the hal-level plumbing of the clockwork render core.
//
// Everything here talks to github.com/gogpu/wgpu/hal directly and knows
// nothing about resource identifiers: mesh and texture upload, the diffuse
// pipeline with its bind group layouts and sampler, the per-draw uniform
// buffer pool, frame encoding and blocking submission, offscreen and
// host-provided surfaces, and device acquisition.
//
// All types assume single-goroutine use. Resource fields are released in
// reverse creation order by the owning type's Destroy method.
package gpu

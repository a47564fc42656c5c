// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package clockwork

import (
	"fmt"

	"github.com/gogpu/clockwork/internal/gpu"
	"github.com/gogpu/clockwork/resource"
	"github.com/gogpu/wgpu/hal"
)

// textureKey is the tuple of textures a draw samples. The diffuse material
// samples exactly one.
type textureKey [1]TextureID

// textureBindGroup is a group 1 bind group together with the generations of
// the texture slots it was built from.
type textureBindGroup struct {
	generations [1]uint64
	group       hal.BindGroup
}

// bindGroupCache builds texture bind groups lazily and rebuilds an entry as
// soon as one of its texture slots is overwritten.
type bindGroupCache struct {
	device   hal.Device
	pipeline *gpu.DiffusePipeline
	textures *resource.Repository[Texture]
	label    string

	entries map[textureKey]*textureBindGroup
	built   int
}

func newBindGroupCache(device hal.Device, pipeline *gpu.DiffusePipeline, textures *resource.Repository[Texture], label string) *bindGroupCache {
	return &bindGroupCache{
		device:   device,
		pipeline: pipeline,
		textures: textures,
		label:    label,
		entries:  make(map[textureKey]*textureBindGroup),
	}
}

func (c *bindGroupCache) generationsOf(key textureKey) [1]uint64 {
	var gens [1]uint64
	for i, id := range key {
		gens[i] = c.textures.Generation(id)
	}
	return gens
}

// ensureValid makes sure the entry for key exists and matches the live
// generations of its texture slots. Every referenced texture must exist.
func (c *bindGroupCache) ensureValid(key textureKey) error {
	gens := c.generationsOf(key)
	old, ok := c.entries[key]
	if ok && old.generations == gens {
		return nil
	}

	views := make([]hal.TextureView, len(key))
	for i, id := range key {
		views[i] = c.textures.MustGet(id).gpu.View
	}

	label := fmt.Sprintf("%s_textures_%d", c.label, key[0].Index())
	group, err := c.pipeline.CreateTexturesBindGroup(label, views)
	if err != nil {
		return fmt.Errorf("build texture bind group %v: %w", key, err)
	}

	if ok {
		c.device.DestroyBindGroup(old.group)
	}
	c.entries[key] = &textureBindGroup{generations: gens, group: group}
	c.built++
	Logger().Debug("texture bind group built", "key", key[0], "generation", gens[0], "rebuild", ok)
	return nil
}

// entry returns the cached entry for key, or nil.
func (c *bindGroupCache) entry(key textureKey) *textureBindGroup {
	return c.entries[key]
}

// get returns the bind group for key. ensureValid must have been called for
// key first.
func (c *bindGroupCache) get(key textureKey) hal.BindGroup {
	e, ok := c.entries[key]
	if !ok {
		panic(fmt.Sprintf("clockwork: texture bind group %v used before ensureValid", key))
	}
	return e.group
}

// Len returns the number of cached bind groups.
func (c *bindGroupCache) Len() int { return len(c.entries) }

func (c *bindGroupCache) destroy() {
	for key, e := range c.entries {
		if e.group != nil {
			c.device.DestroyBindGroup(e.group)
		}
		delete(c.entries, key)
	}
}

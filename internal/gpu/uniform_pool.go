// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// uniformSlot is one per-draw local uniform buffer and the group 0 bind group
// that pairs it with the shared global buffer.
type uniformSlot struct {
	bindGroup hal.BindGroup
	buffer    hal.Buffer
}

// UniformPool owns the global uniform buffer and a growable list of per-draw
// local uniform buffers. Slot i is used by the i-th draw of a frame.
//
// The pool only grows. Slots beyond the current frame's draw count stay
// allocated and unused, so a frame never reallocates buffers it already had.
type UniformPool struct {
	device hal.Device
	queue  hal.Queue
	layout hal.BindGroupLayout

	global hal.Buffer
	slots  []uniformSlot
}

// NewUniformPool creates the global buffer. layout must be the diffuse
// pipeline's group 0 layout.
func NewUniformPool(device hal.Device, queue hal.Queue, layout hal.BindGroupLayout) (*UniformPool, error) {
	global, err := createAndUploadBuffer(device, queue, "global_uniforms",
		make([]byte, GlobalUniformSize), gputypes.BufferUsageUniform|gputypes.BufferUsageCopyDst)
	if err != nil {
		return nil, err
	}
	return &UniformPool{device: device, queue: queue, layout: layout, global: global}, nil
}

// Len returns the number of allocated slots.
func (p *UniformPool) Len() int { return len(p.slots) }

// EnsureCapacity grows the pool to at least n slots. It never shrinks.
func (p *UniformPool) EnsureCapacity(n int) error {
	if n <= len(p.slots) {
		return nil
	}
	grow := n - len(p.slots)
	for len(p.slots) < n {
		slot, err := p.newSlot(len(p.slots))
		if err != nil {
			return err
		}
		p.slots = append(p.slots, slot)
	}
	slogger().Debug("uniform pool grown", "added", grow, "slots", len(p.slots))
	return nil
}

func (p *UniformPool) newSlot(i int) (uniformSlot, error) {
	label := fmt.Sprintf("local_uniforms_%d", i)
	buf, err := createAndUploadBuffer(p.device, p.queue, label,
		make([]byte, LocalUniformSize), gputypes.BufferUsageUniform|gputypes.BufferUsageCopyDst)
	if err != nil {
		return uniformSlot{}, err
	}

	bg, err := p.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  label + "_bind",
		Layout: p.layout,
		Entries: []gputypes.BindGroupEntry{
			{Binding: 0, Resource: gputypes.BufferBinding{
				Buffer: p.global.NativeHandle(), Offset: 0, Size: GlobalUniformSize,
			}},
			{Binding: 1, Resource: gputypes.BufferBinding{
				Buffer: buf.NativeHandle(), Offset: 0, Size: LocalUniformSize,
			}},
		},
	})
	if err != nil {
		p.device.DestroyBuffer(buf)
		return uniformSlot{}, fmt.Errorf("create %s bind group: %w", label, err)
	}
	return uniformSlot{bindGroup: bg, buffer: buf}, nil
}

// WriteGlobal overwrites the shared global buffer.
func (p *UniformPool) WriteGlobal(g GlobalUniforms) error {
	if err := p.queue.WriteBuffer(p.global, 0, g.Bytes()); err != nil {
		return fmt.Errorf("write global uniforms: %w", err)
	}
	return nil
}

// WriteLocal overwrites slot i's local buffer. i must be below Len.
func (p *UniformPool) WriteLocal(i int, l LocalUniforms) error {
	if err := p.queue.WriteBuffer(p.slots[i].buffer, 0, l.Bytes()); err != nil {
		return fmt.Errorf("write local uniforms %d: %w", i, err)
	}
	return nil
}

// BindGroup returns slot i's group 0 bind group. i must be below Len.
func (p *UniformPool) BindGroup(i int) hal.BindGroup {
	return p.slots[i].bindGroup
}

// Destroy releases every slot and the global buffer. Safe to call more than
// once.
func (p *UniformPool) Destroy() {
	for i := len(p.slots) - 1; i >= 0; i-- {
		if p.slots[i].bindGroup != nil {
			p.device.DestroyBindGroup(p.slots[i].bindGroup)
		}
		if p.slots[i].buffer != nil {
			p.device.DestroyBuffer(p.slots[i].buffer)
		}
	}
	p.slots = nil
	if p.global != nil {
		p.device.DestroyBuffer(p.global)
		p.global = nil
	}
}

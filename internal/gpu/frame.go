// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpu

import (
	"fmt"
	"time"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// DefaultSubmitTimeout bounds the wait for a submitted frame to complete.
const DefaultSubmitTimeout = 5 * time.Second

// FrameTargets are the attachments of one frame's render pass.
type FrameTargets struct {
	Color hal.TextureView
	Depth hal.TextureView
	Clear gputypes.Color
}

// Frame is one recorded render pass. It is created by BeginFrame and must be
// finished with exactly one of Submit or Discard.
type Frame struct {
	device  hal.Device
	queue   hal.Queue
	encoder hal.CommandEncoder
	pass    hal.RenderPassEncoder
}

// BeginFrame creates a command encoder and opens a render pass that clears
// the color target to targets.Clear and the depth target to 1.0.
func BeginFrame(device hal.Device, queue hal.Queue, targets FrameTargets) (*Frame, error) {
	encoder, err := device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{
		Label: "frame_encoder",
	})
	if err != nil {
		return nil, fmt.Errorf("create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("frame"); err != nil {
		encoder.Destroy()
		return nil, fmt.Errorf("begin encoding: %w", err)
	}

	pass := encoder.BeginRenderPass(&hal.RenderPassDescriptor{
		Label: "frame_pass",
		ColorAttachments: []hal.RenderPassColorAttachment{{
			View:       targets.Color,
			LoadOp:     gputypes.LoadOpClear,
			StoreOp:    gputypes.StoreOpStore,
			ClearValue: targets.Clear,
		}},
		DepthStencilAttachment: &hal.RenderPassDepthStencilAttachment{
			View:            targets.Depth,
			DepthLoadOp:     gputypes.LoadOpClear,
			DepthStoreOp:    gputypes.StoreOpStore,
			DepthClearValue: 1.0,
		},
	})

	return &Frame{device: device, queue: queue, encoder: encoder, pass: pass}, nil
}

// Pass returns the open render pass.
func (f *Frame) Pass() hal.RenderPassEncoder { return f.pass }

// Submit closes the pass, submits the command buffer and waits for the GPU
// to finish it.
func (f *Frame) Submit(timeout time.Duration) error {
	f.End()
	defer f.encoder.Destroy()

	cmdBuf, err := f.encoder.EndEncoding()
	if err != nil {
		return fmt.Errorf("end encoding: %w", err)
	}
	defer f.device.FreeCommandBuffer(cmdBuf)

	return submitAndWait(f.queue, cmdBuf, timeout)
}

// Discard closes the pass and drops everything recorded so far.
func (f *Frame) Discard() {
	f.End()
	f.encoder.DiscardEncoding()
	f.encoder.Destroy()
}

// End closes the render pass. Submit and Discard call it if the caller did
// not.
func (f *Frame) End() {
	if f.pass != nil {
		f.pass.End()
		f.pass = nil
	}
}

// pollInterval is the sleep between completion polls in submitAndWait.
const pollInterval = 50 * time.Microsecond

// submitAndWait submits cmdBuf and blocks until the queue reports its
// submission index as completed.
func submitAndWait(queue hal.Queue, cmdBuf hal.CommandBuffer, timeout time.Duration) error {
	if timeout <= 0 {
		timeout = DefaultSubmitTimeout
	}

	index, err := queue.Submit([]hal.CommandBuffer{cmdBuf})
	if err != nil {
		return fmt.Errorf("submit: %w", err)
	}

	deadline := time.Now().Add(timeout)
	for queue.PollCompleted() < index {
		if time.Now().After(deadline) {
			slogger().Warn("GPU submission timed out", "index", index, "timeout", timeout)
			return fmt.Errorf("wait for submission %d: %w", index, hal.ErrTimeout)
		}
		time.Sleep(pollInterval)
	}
	return nil
}

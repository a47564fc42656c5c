// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/clockwork/internal/shader"
)

// PipelineConfig selects the variable parts of the diffuse pipeline.
type PipelineConfig struct {
	// ColorFormat is the format of the surface the pipeline renders into.
	ColorFormat gputypes.TextureFormat

	// CompileSPIRV compiles the shader through naga instead of handing WGSL
	// to the backend.
	CompileSPIRV bool
}

// DiffusePipeline owns the render pipeline and everything it was built from:
// the shader module, both bind group layouts, the pipeline layout and the
// material sampler.
//
// Bind group 0 ("buffers"): global uniform at binding 0, local uniform at
// binding 1, both visible to vertex and fragment stages.
// Bind group 1 ("textures"): filtering sampler at binding 0, then one float
// 2D texture per binding starting at 1, fragment only.
type DiffusePipeline struct {
	device hal.Device

	shader         hal.ShaderModule
	buffersLayout  hal.BindGroupLayout
	texturesLayout hal.BindGroupLayout
	pipelineLayout hal.PipelineLayout
	pipeline       hal.RenderPipeline
	sampler        hal.Sampler

	colorFormat gputypes.TextureFormat
}

// NewDiffusePipeline compiles the diffuse shader and creates the pipeline.
func NewDiffusePipeline(device hal.Device, cfg PipelineConfig) (*DiffusePipeline, error) {
	p := &DiffusePipeline{device: device, colorFormat: cfg.ColorFormat}
	if err := p.create(cfg); err != nil {
		p.Destroy()
		return nil, err
	}
	slogger().Debug("diffuse pipeline created", "format", cfg.ColorFormat, "spirv", cfg.CompileSPIRV)
	return p, nil
}

func (p *DiffusePipeline) create(cfg PipelineConfig) error { //nolint:funlen // GPU pipeline descriptors are inherently verbose
	src, err := shader.Source(shader.DiffuseWGSL, cfg.CompileSPIRV)
	if err != nil {
		return err
	}
	module, err := p.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  "diffuse_shader",
		Source: src,
	})
	if err != nil {
		return fmt.Errorf("compile diffuse shader: %w", err)
	}
	p.shader = module

	buffersLayout, err := p.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "buffers_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: gputypes.ShaderStageVertex | gputypes.ShaderStageFragment,
				Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
			},
			{
				Binding:    1,
				Visibility: gputypes.ShaderStageVertex | gputypes.ShaderStageFragment,
				Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("create buffers bind group layout: %w", err)
	}
	p.buffersLayout = buffersLayout

	texturesLayout, err := p.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "textures_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: gputypes.ShaderStageFragment,
				Sampler:    &gputypes.SamplerBindingLayout{Type: gputypes.SamplerBindingTypeFiltering},
			},
			{
				Binding:    1,
				Visibility: gputypes.ShaderStageFragment,
				Texture: &gputypes.TextureBindingLayout{
					SampleType:    gputypes.TextureSampleTypeFloat,
					ViewDimension: gputypes.TextureViewDimension2D,
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("create textures bind group layout: %w", err)
	}
	p.texturesLayout = texturesLayout

	pipelineLayout, err := p.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            "diffuse_pipe_layout",
		BindGroupLayouts: []hal.BindGroupLayout{p.buffersLayout, p.texturesLayout},
	})
	if err != nil {
		return fmt.Errorf("create diffuse pipeline layout: %w", err)
	}
	p.pipelineLayout = pipelineLayout

	sampler, err := p.device.CreateSampler(&hal.SamplerDescriptor{
		Label:        "material_sampler",
		AddressModeU: gputypes.AddressModeClampToEdge,
		AddressModeV: gputypes.AddressModeClampToEdge,
		AddressModeW: gputypes.AddressModeClampToEdge,
		MagFilter:    gputypes.FilterModeNearest,
		MinFilter:    gputypes.FilterModeNearest,
		MipmapFilter: gputypes.FilterModeNearest,
	})
	if err != nil {
		return fmt.Errorf("create material sampler: %w", err)
	}
	p.sampler = sampler

	premulBlend := gputypes.BlendStatePremultiplied()
	pipeline, err := p.device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  "diffuse_pipeline",
		Layout: p.pipelineLayout,
		Vertex: hal.VertexState{
			Module:     p.shader,
			EntryPoint: shader.VertexEntryPoint,
			Buffers:    VertexBufferLayout(),
		},
		Fragment: &hal.FragmentState{
			Module:     p.shader,
			EntryPoint: shader.FragmentEntryPoint,
			Targets: []gputypes.ColorTargetState{
				{
					Format:    cfg.ColorFormat,
					Blend:     &premulBlend,
					WriteMask: gputypes.ColorWriteMaskAll,
				},
			},
		},
		DepthStencil: &hal.DepthStencilState{
			Format:            DepthFormat,
			DepthWriteEnabled: true,
			DepthCompare:      gputypes.CompareFunctionLessEqual,
			StencilFront: hal.StencilFaceState{
				Compare:     gputypes.CompareFunctionAlways,
				FailOp:      hal.StencilOperationKeep,
				DepthFailOp: hal.StencilOperationKeep,
				PassOp:      hal.StencilOperationKeep,
			},
			StencilBack: hal.StencilFaceState{
				Compare:     gputypes.CompareFunctionAlways,
				FailOp:      hal.StencilOperationKeep,
				DepthFailOp: hal.StencilOperationKeep,
				PassOp:      hal.StencilOperationKeep,
			},
		},
		Primitive: gputypes.PrimitiveState{
			Topology: gputypes.PrimitiveTopologyTriangleList,
			CullMode: gputypes.CullModeNone,
		},
		Multisample: gputypes.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return fmt.Errorf("create diffuse pipeline: %w", err)
	}
	p.pipeline = pipeline

	return nil
}

// Pipeline returns the render pipeline.
func (p *DiffusePipeline) Pipeline() hal.RenderPipeline { return p.pipeline }

// ColorFormat returns the color target format the pipeline was built for.
func (p *DiffusePipeline) ColorFormat() gputypes.TextureFormat { return p.colorFormat }

// BuffersLayout returns the layout of bind group 0.
func (p *DiffusePipeline) BuffersLayout() hal.BindGroupLayout { return p.buffersLayout }

// CreateTexturesBindGroup builds a group 1 bind group: the material sampler
// followed by one entry per view.
func (p *DiffusePipeline) CreateTexturesBindGroup(label string, views []hal.TextureView) (hal.BindGroup, error) {
	entries := make([]gputypes.BindGroupEntry, 0, len(views)+1)
	entries = append(entries, gputypes.BindGroupEntry{
		Binding:  0,
		Resource: gputypes.SamplerBinding{Sampler: p.sampler.NativeHandle()},
	})
	for i, view := range views {
		entries = append(entries, gputypes.BindGroupEntry{
			Binding:  uint32(i + 1), //nolint:gosec // texture tuples are tiny
			Resource: gputypes.TextureViewBinding{TextureView: view.NativeHandle()},
		})
	}

	bg, err := p.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:   label,
		Layout:  p.texturesLayout,
		Entries: entries,
	})
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", label, err)
	}
	return bg, nil
}

// Destroy releases all pipeline resources in reverse creation order.
// Safe to call more than once.
func (p *DiffusePipeline) Destroy() {
	if p.pipeline != nil {
		p.device.DestroyRenderPipeline(p.pipeline)
		p.pipeline = nil
	}
	if p.sampler != nil {
		p.device.DestroySampler(p.sampler)
		p.sampler = nil
	}
	if p.pipelineLayout != nil {
		p.device.DestroyPipelineLayout(p.pipelineLayout)
		p.pipelineLayout = nil
	}
	if p.texturesLayout != nil {
		p.device.DestroyBindGroupLayout(p.texturesLayout)
		p.texturesLayout = nil
	}
	if p.buffersLayout != nil {
		p.device.DestroyBindGroupLayout(p.buffersLayout)
		p.buffersLayout = nil
	}
	if p.shader != nil {
		p.device.DestroyShaderModule(p.shader)
		p.shader = nil
	}
}

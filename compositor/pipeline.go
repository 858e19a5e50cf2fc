// Copyright 2026 The gostim Authors
// SPDX-License-Identifier: BSD-3-Clause

package compositor

import (
	_ "embed"

	"github.com/cogentcore/webgpu/wgpu"

	"github.com/gostim/gostim"
)

//go:embed shaders/gamma.wgsl
var gammaWGSL string

// Pipeline is the gamma/LUT compositing pass for one window. It owns the
// intermediate RGBA16Float texture that scenes render into, the LUT texture
// array, and the render pipeline that blits corrected color onto the
// surface.
//
// The LUT contents are fixed at construction. Resize recreates only the
// intermediate texture and the bind group.
type Pipeline struct {
	format wgpu.TextureFormat

	pipeline *wgpu.RenderPipeline
	layout   *wgpu.BindGroupLayout
	shader   *wgpu.ShaderModule

	lutTexture *wgpu.Texture
	lutView    *wgpu.TextureView
	uniform    *wgpu.Buffer

	intermediate     *wgpu.Texture
	intermediateView *wgpu.TextureView
	bindGroup        *wgpu.BindGroup

	width, height uint32
}

// New builds the compositing pass for a surface of the given format and
// size. The LUT table is built and uploaded once; Options.LUT dimensions
// are validated before any GPU resource is touched.
func New(device *wgpu.Device, queue *wgpu.Queue, surfaceFormat wgpu.TextureFormat, width, height uint32, opts Options) (*Pipeline, error) {
	table, err := BuildTable(opts.LUT)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{format: surfaceFormat, width: width, height: height}

	p.shader, err = device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          "gamma blit shader",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: gammaWGSL},
	})
	if err != nil {
		return nil, &gostim.ResourceError{Resource: "gamma shader", Err: err}
	}

	p.layout, err = device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "gamma bind group layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageFragment,
				Texture: wgpu.TextureBindingLayout{
					SampleType:    wgpu.TextureSampleTypeFloat,
					ViewDimension: wgpu.TextureViewDimension2D,
				},
			},
			{
				Binding:    1,
				Visibility: wgpu.ShaderStageFragment,
				Buffer: wgpu.BufferBindingLayout{
					Type: wgpu.BufferBindingTypeUniform,
				},
			},
			{
				Binding:    2,
				Visibility: wgpu.ShaderStageFragment,
				Texture: wgpu.TextureBindingLayout{
					SampleType:    wgpu.TextureSampleTypeFloat,
					ViewDimension: wgpu.TextureViewDimension2DArray,
				},
			},
		},
	})
	if err != nil {
		return nil, &gostim.ResourceError{Resource: "gamma bind group layout", Err: err}
	}

	pipelineLayout, err := device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            "gamma pipeline layout",
		BindGroupLayouts: []*wgpu.BindGroupLayout{p.layout},
	})
	if err != nil {
		return nil, &gostim.ResourceError{Resource: "gamma pipeline layout", Err: err}
	}
	defer pipelineLayout.Release()

	p.pipeline, err = device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  "gamma blit pipeline",
		Layout: pipelineLayout,
		Vertex: wgpu.VertexState{
			Module:     p.shader,
			EntryPoint: "vs_main",
		},
		Fragment: &wgpu.FragmentState{
			Module:     p.shader,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{{
				Format:    surfaceFormat,
				WriteMask: wgpu.ColorWriteMaskAll,
			}},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyTriangleList,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  wgpu.CullModeNone,
		},
		Multisample: wgpu.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return nil, &gostim.ResourceError{Resource: "gamma pipeline", Err: err}
	}

	p.lutTexture, err = device.CreateTexture(&wgpu.TextureDescriptor{
		Label:         "gamma lut array",
		Size:          wgpu.Extent3D{Width: lutWidth, Height: lutHeight, DepthOrArrayLayers: 3},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        wgpu.TextureFormatR8Unorm,
		Usage:         wgpu.TextureUsageTextureBinding | wgpu.TextureUsageCopyDst,
	})
	if err != nil {
		return nil, &gostim.ResourceError{Resource: "gamma lut texture", Err: err}
	}
	queue.WriteTexture(
		&wgpu.ImageCopyTexture{
			Aspect:   wgpu.TextureAspectAll,
			Texture:  p.lutTexture,
			MipLevel: 0,
			Origin:   wgpu.Origin3D{},
		},
		table,
		&wgpu.TextureDataLayout{
			Offset:       0,
			BytesPerRow:  lutWidth,
			RowsPerImage: lutHeight,
		},
		&wgpu.Extent3D{Width: lutWidth, Height: lutHeight, DepthOrArrayLayers: 3},
	)
	p.lutView, err = p.lutTexture.CreateView(&wgpu.TextureViewDescriptor{
		Dimension: wgpu.TextureViewDimension2DArray,
	})
	if err != nil {
		return nil, &gostim.ResourceError{Resource: "gamma lut view", Err: err}
	}

	p.uniform, err = device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "gamma params",
		Size:  12,
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, &gostim.ResourceError{Resource: "gamma uniform buffer", Err: err}
	}
	correction := uint32(0)
	if opts.EncodeGamma {
		correction = 1
	}
	params := []uint32{correction, lutWidth, lutHeight}
	if err := queue.WriteBuffer(p.uniform, 0, wgpu.ToBytes(params)); err != nil {
		return nil, &gostim.ResourceError{Resource: "gamma uniform buffer", Err: err}
	}

	if err := p.rebuildTarget(device, width, height); err != nil {
		return nil, err
	}
	return p, nil
}

// Intermediate returns the linear texture scenes render into.
func (p *Pipeline) Intermediate() *wgpu.Texture { return p.intermediate }

// Size returns the intermediate texture dimensions.
func (p *Pipeline) Size() (width, height uint32) { return p.width, p.height }

// Resize recreates the intermediate texture and bind group for a new
// surface size. The LUT contents are not recomputed.
func (p *Pipeline) Resize(device *wgpu.Device, width, height uint32) error {
	p.releaseTarget()
	return p.rebuildTarget(device, width, height)
}

// rebuildTarget creates the intermediate texture and bind group for the
// given size.
func (p *Pipeline) rebuildTarget(device *wgpu.Device, width, height uint32) error {
	var err error
	p.intermediate, err = device.CreateTexture(&wgpu.TextureDescriptor{
		Label:         "scene intermediate",
		Size:          wgpu.Extent3D{Width: width, Height: height, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        wgpu.TextureFormatRGBA16Float,
		Usage:         wgpu.TextureUsageTextureBinding | wgpu.TextureUsageCopyDst,
	})
	if err != nil {
		return &gostim.ResourceError{Resource: "intermediate texture", Err: err}
	}
	p.intermediateView, err = p.intermediate.CreateView(nil)
	if err != nil {
		return &gostim.ResourceError{Resource: "intermediate texture view", Err: err}
	}

	p.bindGroup, err = device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "gamma bind group",
		Layout: p.layout,
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, TextureView: p.intermediateView},
			{Binding: 1, Buffer: p.uniform, Offset: 0, Size: 12},
			{Binding: 2, TextureView: p.lutView},
		},
	})
	if err != nil {
		return &gostim.ResourceError{Resource: "gamma bind group", Err: err}
	}
	p.width, p.height = width, height
	return nil
}

// Blit records and submits the compositing pass onto dstView.
func (p *Pipeline) Blit(device *wgpu.Device, queue *wgpu.Queue, dstView *wgpu.TextureView) error {
	encoder, err := device.CreateCommandEncoder(&wgpu.CommandEncoderDescriptor{Label: "gamma blit"})
	if err != nil {
		return &gostim.ResourceError{Resource: "command encoder", Err: err}
	}
	defer encoder.Release()

	pass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		Label: "gamma blit pass",
		ColorAttachments: []wgpu.RenderPassColorAttachment{{
			View:       dstView,
			LoadOp:     wgpu.LoadOpClear,
			StoreOp:    wgpu.StoreOpStore,
			ClearValue: wgpu.Color{},
		}},
	})
	pass.SetPipeline(p.pipeline)
	pass.SetBindGroup(0, p.bindGroup, nil)
	pass.Draw(6, 1, 0, 0)
	pass.End()
	pass.Release()

	cmd, err := encoder.Finish(nil)
	if err != nil {
		return &gostim.ResourceError{Resource: "command buffer", Err: err}
	}
	defer cmd.Release()

	queue.Submit(cmd)
	return nil
}

func (p *Pipeline) releaseTarget() {
	if p.bindGroup != nil {
		p.bindGroup.Release()
		p.bindGroup = nil
	}
	if p.intermediateView != nil {
		p.intermediateView.Release()
		p.intermediateView = nil
	}
	if p.intermediate != nil {
		p.intermediate.Release()
		p.intermediate = nil
	}
}

// Release frees all GPU resources held by the pass.
func (p *Pipeline) Release() {
	p.releaseTarget()
	if p.uniform != nil {
		p.uniform.Release()
	}
	if p.lutView != nil {
		p.lutView.Release()
	}
	if p.lutTexture != nil {
		p.lutTexture.Release()
	}
	if p.pipeline != nil {
		p.pipeline.Release()
	}
	if p.layout != nil {
		p.layout.Release()
	}
	if p.shader != nil {
		p.shader.Release()
	}
}

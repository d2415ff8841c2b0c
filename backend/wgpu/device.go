package wgpu

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/postfx"
	"github.com/gogpu/postfx/render"
)

// Package errors.
var (
	// ErrNoHAL is returned when a device provider does not expose HAL types.
	ErrNoHAL = errors.New("wgpu: provider does not expose HAL device and queue")

	// ErrNilDevice is returned when no HAL device or queue is given.
	ErrNilDevice = errors.New("wgpu: nil device or queue")
)

// Device allocates post-processing resources on a HAL device it does not
// own. It is not safe for concurrent use.
type Device struct {
	device hal.Device
	queue  hal.Queue
	bound  []*FrameBuffer

	uploads int
}

// NewDevice wraps a HAL device and queue owned by the caller.
func NewDevice(device hal.Device, queue hal.Queue) (*Device, error) {
	if device == nil || queue == nil {
		return nil, ErrNilDevice
	}
	return &Device{device: device, queue: queue}, nil
}

// NewDeviceFromProvider extracts the HAL device and queue from a host
// device handle. The handle must implement HalDevice() any and
// HalQueue() any returning hal.Device and hal.Queue.
func NewDeviceFromProvider(provider render.DeviceHandle) (*Device, error) {
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return nil, ErrNoHAL
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, fmt.Errorf("%w: HalDevice is not hal.Device", ErrNoHAL)
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, fmt.Errorf("%w: HalQueue is not hal.Queue", ErrNoHAL)
	}
	return NewDevice(device, queue)
}

func (d *Device) log() *slog.Logger { return postfx.Logger() }

// Current returns the view of the frame buffer bound last, or nil when the
// host's own surface is the destination.
func (d *Device) Current() hal.TextureView {
	if n := len(d.bound); n > 0 {
		return d.bound[n-1].tex.view
	}
	return nil
}

// Uploads returns the number of uniform buffer writes issued.
func (d *Device) Uploads() int { return d.uploads }

// NewFrameBuffer implements render.Device.
func (d *Device) NewFrameBuffer(desc render.TextureDescriptor) (render.FrameBuffer, error) {
	if desc.Width == 0 || desc.Height == 0 {
		return nil, fmt.Errorf("wgpu: frame buffer %q: invalid size %dx%d", desc.Label, desc.Width, desc.Height)
	}

	tex, err := d.device.CreateTexture(textureDescriptor(desc))
	if err != nil {
		return nil, fmt.Errorf("wgpu: create texture %q: %w", desc.Label, err)
	}
	view, err := d.device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label: desc.Label + "_view",
	})
	if err != nil {
		d.device.DestroyTexture(tex)
		return nil, fmt.Errorf("wgpu: create texture view %q: %w", desc.Label, err)
	}

	d.log().Debug("wgpu: frame buffer created", "label", desc.Label, "width", desc.Width, "height", desc.Height)
	return &FrameBuffer{
		dev:   d,
		label: desc.Label,
		tex: &Texture{
			raw:    tex,
			view:   view,
			width:  int(desc.Width),
			height: int(desc.Height),
		},
	}, nil
}

// NewProgram implements render.Device. The WGSL is validated with naga
// first so compile failures carry its diagnostic.
func (d *Device) NewProgram(desc render.ProgramDescriptor) (render.Program, error) {
	src := desc.Source()
	if _, err := naga.Compile(src); err != nil {
		return nil, &render.CompileFailure{Label: desc.Label, Log: err.Error()}
	}

	module, err := d.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  desc.Label,
		Source: hal.ShaderSource{WGSL: src},
	})
	if err != nil {
		return nil, &render.CompileFailure{Label: desc.Label, Log: err.Error()}
	}

	buf, err := d.device.CreateBuffer(&hal.BufferDescriptor{
		Label: desc.Label + "_uniforms",
		Size:  uniformSize,
		Usage: gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		d.device.DestroyShaderModule(module)
		return nil, fmt.Errorf("wgpu: create uniform buffer %q: %w", desc.Label, err)
	}

	d.log().Info("wgpu: program created", "label", desc.Label, "direction", desc.Direction)
	return &Program{
		dev:      d,
		label:    desc.Label,
		module:   module,
		uniforms: buf,
	}, nil
}

// textureDescriptor converts a render descriptor to its HAL form.
func textureDescriptor(desc render.TextureDescriptor) *hal.TextureDescriptor {
	return &hal.TextureDescriptor{
		Label: desc.Label,
		Size: hal.Extent3D{
			Width:              desc.Width,
			Height:             desc.Height,
			DepthOrArrayLayers: max(desc.Depth, 1),
		},
		MipLevelCount: max(desc.MipLevelCount, 1),
		SampleCount:   max(desc.SampleCount, 1),
		Dimension:     gputypes.TextureDimension2D,
		Format:        desc.Format,
		Usage:         textureUsage(desc.Usage),
	}
}

func textureUsage(u render.TextureUsage) gputypes.TextureUsage {
	var out gputypes.TextureUsage
	if u.Has(render.TextureUsageCopySrc) {
		out |= gputypes.TextureUsageCopySrc
	}
	if u.Has(render.TextureUsageCopyDst) {
		out |= gputypes.TextureUsageCopyDst
	}
	if u.Has(render.TextureUsageTextureBinding) {
		out |= gputypes.TextureUsageTextureBinding
	}
	if u.Has(render.TextureUsageStorageBinding) {
		out |= gputypes.TextureUsageStorageBinding
	}
	if u.Has(render.TextureUsageRenderAttachment) {
		out |= gputypes.TextureUsageRenderAttachment
	}
	return out
}

var _ render.Device = (*Device)(nil)

package wgpu

import (
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/postfx/render"
)

// Texture is a frame buffer's colour attachment.
type Texture struct {
	raw           hal.Texture
	view          hal.TextureView
	width, height int
}

func (t *Texture) Width() int  { return t.width }
func (t *Texture) Height() int { return t.height }

// Raw returns the HAL texture.
func (t *Texture) Raw() hal.Texture { return t.raw }

// View returns the texture view to bind for sampling.
func (t *Texture) View() hal.TextureView { return t.view }

// FrameBuffer is an off-screen colour target on the GPU.
type FrameBuffer struct {
	dev   *Device
	label string
	tex   *Texture
}

// Begin pushes f onto the device's attachment stack.
func (f *FrameBuffer) Begin() {
	if f.tex == nil {
		f.dev.log().Warn("wgpu: begin on destroyed frame buffer", "label", f.label)
		return
	}
	f.dev.bound = append(f.dev.bound, f)
}

// End pops f from the attachment stack. Ending a frame buffer that is not
// on top is ignored.
func (f *FrameBuffer) End() {
	n := len(f.dev.bound)
	if n == 0 || f.dev.bound[n-1] != f {
		f.dev.log().Warn("wgpu: end of frame buffer that is not bound", "label", f.label)
		return
	}
	f.dev.bound[n-1] = nil
	f.dev.bound = f.dev.bound[:n-1]
}

// ColorTexture returns the colour attachment, or nil after Destroy.
func (f *FrameBuffer) ColorTexture() render.Texture {
	if f.tex == nil {
		return nil
	}
	return f.tex
}

func (f *FrameBuffer) Width() int {
	if f.tex == nil {
		return 0
	}
	return f.tex.width
}

func (f *FrameBuffer) Height() int {
	if f.tex == nil {
		return 0
	}
	return f.tex.height
}

// Destroy releases the texture and its view. It is safe to call twice.
func (f *FrameBuffer) Destroy() {
	if f.tex == nil {
		return
	}
	f.dev.device.DestroyTextureView(f.tex.view)
	f.dev.device.DestroyTexture(f.tex.raw)
	f.tex = nil
}

var _ render.FrameBuffer = (*FrameBuffer)(nil)

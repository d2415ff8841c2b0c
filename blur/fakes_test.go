package blur

import (
	"errors"
	"fmt"

	"github.com/gogpu/postfx/render"
)

// fakeDevice records every resource it creates and the bind stack of its
// frame buffers.
type fakeDevice struct {
	frameBuffers []*fakeFrameBuffer
	programs     []*fakeProgram
	bound        []*fakeFrameBuffer

	failFrameBuffer string // label whose creation fails
	failProgram     string // label whose compilation fails
}

func (d *fakeDevice) NewFrameBuffer(desc render.TextureDescriptor) (render.FrameBuffer, error) {
	if desc.Label == d.failFrameBuffer {
		return nil, errors.New("out of memory")
	}
	fb := &fakeFrameBuffer{dev: d, label: desc.Label, w: int(desc.Width), h: int(desc.Height)}
	d.frameBuffers = append(d.frameBuffers, fb)
	return fb, nil
}

func (d *fakeDevice) NewProgram(desc render.ProgramDescriptor) (render.Program, error) {
	if desc.Label == d.failProgram {
		return nil, &render.CompileFailure{Label: desc.Label, Log: "error: unexpected token"}
	}
	p := &fakeProgram{label: desc.Label, desc: desc}
	d.programs = append(d.programs, p)
	return p, nil
}

func (d *fakeDevice) live() int {
	n := 0
	for _, fb := range d.frameBuffers {
		if fb.destroyed == 0 {
			n++
		}
	}
	return n
}

func (d *fakeDevice) top() string {
	if len(d.bound) == 0 {
		return "screen"
	}
	return d.bound[len(d.bound)-1].label
}

type fakeFrameBuffer struct {
	dev       *fakeDevice
	label     string
	w, h      int
	destroyed int
}

func (f *fakeFrameBuffer) Begin() { f.dev.bound = append(f.dev.bound, f) }

func (f *fakeFrameBuffer) End() {
	n := len(f.dev.bound)
	if n == 0 || f.dev.bound[n-1] != f {
		panic(fmt.Sprintf("End of %s which is not bound", f.label))
	}
	f.dev.bound = f.dev.bound[:n-1]
}

func (f *fakeFrameBuffer) ColorTexture() render.Texture { return f }
func (f *fakeFrameBuffer) Width() int                   { return f.w }
func (f *fakeFrameBuffer) Height() int                  { return f.h }
func (f *fakeFrameBuffer) Destroy()                     { f.destroyed++ }

type fakeProgram struct {
	label     string
	desc      render.ProgramDescriptor
	uploads   []float32
	destroyed int
}

func (p *fakeProgram) Label() string { return p.label }

func (p *fakeProgram) SetUniformf(name string, v float32) {
	if name != UniformName {
		panic("unexpected uniform " + name)
	}
	p.uploads = append(p.uploads, v)
}

func (p *fakeProgram) Destroy() { p.destroyed++ }

// drawCall is one quad recorded by fakeBatch.
type drawCall struct {
	shader     string // "" for the default program
	target     string // bound frame buffer label, or "screen"
	source     string // sampled texture label
	x, y, w, h float32
	uv         [4]float32
}

type fakeBatch struct {
	dev    *fakeDevice
	shader render.Program
	open   bool
	draws  []drawCall
}

func (b *fakeBatch) SetShader(p render.Program) { b.shader = p }
func (b *fakeBatch) Begin()                     { b.open = true }
func (b *fakeBatch) End()                       { b.open = false }

func (b *fakeBatch) Draw(tex render.Texture, x, y, w, h float32) {
	b.DrawRegion(tex, x, y, w, h, 0, 0, 1, 1)
}

func (b *fakeBatch) DrawRegion(tex render.Texture, x, y, w, h, u0, v0, u1, v1 float32) {
	if !b.open {
		panic("draw outside Begin/End")
	}
	call := drawCall{target: b.dev.top(), x: x, y: y, w: w, h: h, uv: [4]float32{u0, v0, u1, v1}}
	if b.shader != nil {
		call.shader = b.shader.Label()
	}
	if fb, ok := tex.(*fakeFrameBuffer); ok {
		call.source = fb.label
	}
	b.draws = append(b.draws, call)
}

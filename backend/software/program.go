package software

import (
	"github.com/chewxy/math32"

	"github.com/gogpu/postfx/render"
)

// blurUniform is the uniform that scales the emulated blur radius.
const blurUniform = "u_blur"

// Program is a validated WGSL program. Its blur pass runs on the CPU.
type Program struct {
	dev       *Device
	label     string
	direction render.Direction
	uniforms  map[string]float32
	destroyed bool
}

// Label implements render.Program.
func (p *Program) Label() string { return p.label }

// Direction returns the convolution axis the program emulates.
func (p *Program) Direction() render.Direction { return p.direction }

// SetUniformf implements render.Program.
func (p *Program) SetUniformf(name string, v float32) {
	if p.destroyed {
		p.dev.log().Warn("software: uniform set on destroyed program", "label", p.label, "name", name)
		return
	}
	p.uniforms[name] = v
	p.dev.stats.Uploads++
	p.dev.log().Debug("software: uniform", "label", p.label, "name", name, "value", v)
}

// Uniform returns the last value uploaded under name.
func (p *Program) Uniform(name string) (float32, bool) {
	v, ok := p.uniforms[name]
	return v, ok
}

// Radius returns the blur radius in pixels the program asks for. The batch
// caps it at the sampled region's extent along the pass axis.
func (p *Program) Radius() float32 {
	if p.direction == render.DirectionNone {
		return 0
	}
	v := p.uniforms[blurUniform]
	if math32.IsNaN(v) || v <= 0 {
		return 0
	}
	return v * p.dev.maxRadius
}

// Destroy implements render.Program.
func (p *Program) Destroy() {
	if p.destroyed {
		return
	}
	p.destroyed = true
	p.dev.stats.ProgramsDestroyed++
}

var _ render.Program = (*Program)(nil)

package wgpu

import (
	"encoding/binary"
	"math"

	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/postfx/render"
)

// uniformSize is the size of the blur uniform block: u_blur followed by
// padding to 16 bytes.
const uniformSize = 16

// uniformOffsets maps uniform names to their byte offset in the block.
var uniformOffsets = map[string]uint64{
	"u_blur": 0,
}

// Program is a shader module with its uniform buffer.
type Program struct {
	dev      *Device
	label    string
	module   hal.ShaderModule
	uniforms hal.Buffer
}

// Label implements render.Program.
func (p *Program) Label() string { return p.label }

// Module returns the shader module, or nil after Destroy.
func (p *Program) Module() hal.ShaderModule { return p.module }

// UniformBuffer returns the uniform buffer to bind at group 0 binding 0.
func (p *Program) UniformBuffer() hal.Buffer { return p.uniforms }

// SetUniformf writes v into the uniform buffer. Unknown names are logged
// and ignored.
func (p *Program) SetUniformf(name string, v float32) {
	if p.uniforms == nil {
		p.dev.log().Warn("wgpu: uniform set on destroyed program", "label", p.label, "name", name)
		return
	}
	off, ok := uniformOffsets[name]
	if !ok {
		p.dev.log().Warn("wgpu: unknown uniform", "label", p.label, "name", name)
		return
	}
	p.dev.queue.WriteBuffer(p.uniforms, off, encodeFloat(v))
	p.dev.uploads++
}

// Destroy releases the module and the uniform buffer.
func (p *Program) Destroy() {
	if p.uniforms != nil {
		p.dev.device.DestroyBuffer(p.uniforms)
		p.uniforms = nil
	}
	if p.module != nil {
		p.dev.device.DestroyShaderModule(p.module)
		p.module = nil
	}
}

func encodeFloat(v float32) []byte {
	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, math.Float32bits(v))
	return b
}

var _ render.Program = (*Program)(nil)

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

// Texture is an image a Batch can sample from.
type Texture interface {
	// Width returns the texture width in pixels.
	Width() int

	// Height returns the texture height in pixels.
	Height() int
}

// FrameBuffer is an off-screen render target usable both as a draw
// destination and as a sampled texture.
//
// Begin makes the frame buffer the active draw destination; End restores the
// destination that was active before Begin.
type FrameBuffer interface {
	Begin()
	End()

	// ColorTexture returns the colour attachment as a sampleable texture.
	ColorTexture() Texture

	Width() int
	Height() int

	// Destroy releases the frame buffer's GPU resources.
	Destroy()
}

// Device creates GPU resources for post-processing effects.
type Device interface {
	// NewFrameBuffer allocates a frame buffer described by desc.
	NewFrameBuffer(desc TextureDescriptor) (FrameBuffer, error)

	// NewProgram compiles a shader program. Compile failures are reported
	// as *CompileFailure.
	NewProgram(desc ProgramDescriptor) (Program, error)
}

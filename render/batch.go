// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

// Batch issues textured quad draw calls to the active draw destination.
//
// Coordinates are in world units: the world rectangle spanned by the
// viewport's camera origin and screen size maps onto the whole destination.
type Batch interface {
	// SetShader binds the program used by subsequent draws.
	// A nil program restores the default pass-through program.
	SetShader(p Program)

	// Begin starts a run of draws.
	Begin()

	// End flushes pending draws.
	End()

	// Draw draws the whole texture into the destination rectangle.
	Draw(tex Texture, x, y, w, h float32)

	// DrawRegion draws the texture region [u0,v0]-[u1,v1] (normalized
	// coordinates) into the destination rectangle.
	DrawRegion(tex Texture, x, y, w, h, u0, v0, u1, v1 float32)
}

// Viewport is the rendering context an effect draws for.
type Viewport interface {
	// CameraOrigin returns the world position of the screen's top-left corner.
	CameraOrigin() (x, y float32)

	// ScreenSize returns the visible world size.
	ScreenSize() (w, h float32)

	// FramebufferSize returns the backing framebuffer size in pixels.
	FramebufferSize() (w, h int)
}

// FixedViewport is a Viewport with fixed values. It is handy for headless
// rendering and tests.
type FixedViewport struct {
	X, Y          float32
	Width, Height int
}

// CameraOrigin implements Viewport.
func (v *FixedViewport) CameraOrigin() (x, y float32) { return v.X, v.Y }

// ScreenSize implements Viewport.
func (v *FixedViewport) ScreenSize() (w, h float32) {
	return float32(v.Width), float32(v.Height)
}

// FramebufferSize implements Viewport.
func (v *FixedViewport) FramebufferSize() (w, h int) { return v.Width, v.Height }

// Resize changes the viewport size.
func (v *FixedViewport) Resize(width, height int) {
	v.Width, v.Height = width, height
}

var _ Viewport = (*FixedViewport)(nil)

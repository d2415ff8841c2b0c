package software

import "github.com/gogpu/postfx/render"

// FrameBuffer is a CPU frame buffer backed by a render.PixmapTarget.
type FrameBuffer struct {
	dev       *Device
	label     string
	pix       *render.PixmapTarget
	destroyed bool
}

// Begin makes f the device's draw destination.
func (f *FrameBuffer) Begin() {
	if f.destroyed {
		f.dev.log().Warn("software: begin on destroyed frame buffer", "label", f.label)
		return
	}
	f.dev.bound = append(f.dev.bound, f)
}

// End restores the destination active before Begin. Ending a frame buffer
// that is not the current destination is ignored.
func (f *FrameBuffer) End() {
	n := len(f.dev.bound)
	if n == 0 || f.dev.bound[n-1] != f {
		f.dev.log().Warn("software: end of frame buffer that is not bound", "label", f.label)
		return
	}
	f.dev.bound[n-1] = nil
	f.dev.bound = f.dev.bound[:n-1]
}

// ColorTexture returns the backing pixmap.
func (f *FrameBuffer) ColorTexture() render.Texture { return f.pix }

// Pixmap returns the backing pixmap.
func (f *FrameBuffer) Pixmap() *render.PixmapTarget { return f.pix }

// Label returns the debug label.
func (f *FrameBuffer) Label() string { return f.label }

func (f *FrameBuffer) Width() int  { return f.pix.Width() }
func (f *FrameBuffer) Height() int { return f.pix.Height() }

// Destroy releases f. Destroying twice is logged and ignored.
func (f *FrameBuffer) Destroy() {
	if f.destroyed {
		f.dev.log().Warn("software: frame buffer destroyed twice", "label", f.label)
		return
	}
	f.destroyed = true
	f.dev.stats.FrameBuffersDestroyed++
}

var _ render.FrameBuffer = (*FrameBuffer)(nil)

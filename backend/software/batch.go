package software

import (
	"image"

	"github.com/chewxy/math32"
	"golang.org/x/image/draw"

	"github.com/gogpu/postfx/internal/filter"
	"github.com/gogpu/postfx/render"
)

// imageTexture is a texture the batch can read pixels from.
type imageTexture interface {
	render.Texture
	Image() *image.RGBA
}

// Batch draws textured quads into the device's active destination.
//
// World coordinates follow the viewport: the rectangle from the camera
// origin spanning the screen size covers the whole destination, with Y
// growing downwards. Sources are scaled with bilinear filtering.
type Batch struct {
	dev     *Device
	program *Program
	drawing bool

	// scratch holds the convolved source region between draws.
	scratch *image.RGBA
}

// SetShader implements render.Batch. Programs from another device fall back
// to the default pass-through program.
func (b *Batch) SetShader(p render.Program) {
	if p == nil {
		b.program = nil
		return
	}
	sp, ok := p.(*Program)
	if !ok {
		b.dev.log().Warn("software: foreign program ignored", "label", p.Label())
		b.program = nil
		return
	}
	b.program = sp
}

// Begin implements render.Batch.
func (b *Batch) Begin() { b.drawing = true }

// End implements render.Batch.
func (b *Batch) End() { b.drawing = false }

// Draw implements render.Batch.
func (b *Batch) Draw(tex render.Texture, x, y, w, h float32) {
	b.DrawRegion(tex, x, y, w, h, 0, 0, 1, 1)
}

// DrawRegion implements render.Batch.
func (b *Batch) DrawRegion(tex render.Texture, x, y, w, h, u0, v0, u1, v1 float32) {
	if !b.drawing {
		b.dev.log().Warn("software: draw outside Begin/End")
		return
	}
	it, ok := tex.(imageTexture)
	if !ok {
		b.dev.log().Warn("software: texture has no pixels", "width", tex.Width(), "height", tex.Height())
		return
	}

	src := it.Image()
	sr := sourceRect(src.Bounds(), u0, v0, u1, v1)
	if sr.Empty() {
		return
	}
	dst := b.dev.target()
	dr := b.project(dst, x, y, w, h)
	if dr.Empty() {
		return
	}

	img, ir := b.filter(src, sr)
	draw.BiLinear.Scale(dst.Image(), dr, img, ir, draw.Src, nil)
	b.dev.stats.Draws++
}

// filter runs the bound program's blur pass over sr of src. It returns the
// image and rectangle to sample from.
func (b *Batch) filter(src *image.RGBA, sr image.Rectangle) (*image.RGBA, image.Rectangle) {
	if b.program == nil {
		return src, sr
	}
	radius := b.program.Radius()
	if radius <= 0 {
		return src, sr
	}

	size := sr.Size()
	dir := b.program.Direction()
	radius = capRadius(radius, dir, size)
	if b.scratch == nil || b.scratch.Rect.Size() != size {
		b.scratch = image.NewRGBA(image.Rectangle{Max: size})
	}
	region := src.SubImage(sr).(*image.RGBA)
	k := filter.CachedGaussianKernel(float64(radius) / 3)
	switch dir {
	case render.DirectionHorizontal:
		filter.ParallelConvolveHorizontal(b.dev.pool, region, b.scratch, k)
	case render.DirectionVertical:
		filter.ParallelConvolveVertical(b.dev.pool, region, b.scratch, k)
	default:
		return src, sr
	}
	return b.scratch, b.scratch.Rect
}

// capRadius limits radius to the region's extent along the pass axis.
// Wider kernels would only average clamped edge pixels.
func capRadius(radius float32, dir render.Direction, size image.Point) float32 {
	extent := size.X
	if dir == render.DirectionVertical {
		extent = size.Y
	}
	return min(radius, float32(max(extent, 1)))
}

// project maps a world rectangle onto pixel coordinates of dst. The result
// may extend past dst; Scale clips it.
func (b *Batch) project(dst *render.PixmapTarget, x, y, w, h float32) image.Rectangle {
	ox, oy := b.dev.viewport.CameraOrigin()
	sw, sh := b.dev.viewport.ScreenSize()
	if sw <= 0 || sh <= 0 {
		return image.Rectangle{}
	}
	sx := float32(dst.Width()) / sw
	sy := float32(dst.Height()) / sh

	return image.Rect(
		round((x-ox)*sx), round((y-oy)*sy),
		round((x+w-ox)*sx), round((y+h-oy)*sy),
	)
}

func round(v float32) int {
	return int(math32.Floor(v + 0.5))
}

// sourceRect converts normalized texture coordinates to a pixel rectangle.
func sourceRect(bounds image.Rectangle, u0, v0, u1, v1 float32) image.Rectangle {
	fw, fh := float32(bounds.Dx()), float32(bounds.Dy())
	x0 := int(math32.Floor(math32.Min(u0, u1) * fw))
	y0 := int(math32.Floor(math32.Min(v0, v1) * fh))
	x1 := int(math32.Ceil(math32.Max(u0, u1) * fw))
	y1 := int(math32.Ceil(math32.Max(v0, v1) * fh))
	return image.Rect(x0, y0, x1, y1).Add(bounds.Min).Intersect(bounds)
}

var _ render.Batch = (*Batch)(nil)

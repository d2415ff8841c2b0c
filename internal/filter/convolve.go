package filter

import (
	"image"

	"github.com/gogpu/postfx/internal/parallel"
)

// ConvolveHorizontal convolves each row of src with k and writes the
// result to dst. Samples past the image edge clamp to the edge pixel.
func ConvolveHorizontal(src, dst *image.RGBA, k Kernel) {
	convolve(nil, src, dst, k, true)
}

// ConvolveVertical convolves each column of src with k and writes the
// result to dst. Samples past the image edge clamp to the edge pixel.
func ConvolveVertical(src, dst *image.RGBA, k Kernel) {
	convolve(nil, src, dst, k, false)
}

// ParallelConvolveHorizontal is ConvolveHorizontal with rows split across
// pool. A nil pool runs serially.
func ParallelConvolveHorizontal(pool *parallel.WorkerPool, src, dst *image.RGBA, k Kernel) {
	convolve(pool, src, dst, k, true)
}

// ParallelConvolveVertical is ConvolveVertical with rows split across pool.
// A nil pool runs serially.
func ParallelConvolveVertical(pool *parallel.WorkerPool, src, dst *image.RGBA, k Kernel) {
	convolve(pool, src, dst, k, false)
}

// convolve runs a 1D pass along X or Y. src and dst must have the same
// size; when they alias, src is copied first.
func convolve(pool *parallel.WorkerPool, src, dst *image.RGBA, k Kernel, horizontal bool) {
	w, h := src.Rect.Dx(), src.Rect.Dy()
	if dst.Rect.Dx() != w || dst.Rect.Dy() != h {
		panic("filter: source and destination sizes differ")
	}
	if w == 0 || h == 0 {
		return
	}
	if src == dst {
		src = cloneRGBA(src)
	}

	pool.Rows(h, func(y0, y1 int) {
		convolveRows(src, dst, k, horizontal, y0, y1)
	})
}

// convolveRows writes rows [y0, y1) of dst.
func convolveRows(src, dst *image.RGBA, k Kernel, horizontal bool, y0, y1 int) {
	w, h := src.Rect.Dx(), src.Rect.Dy()
	for y := y0; y < y1; y++ {
		srow := src.Pix[y*src.Stride:]
		drow := dst.Pix[y*dst.Stride:]
		for x := 0; x < w; x++ {
			var r, g, b float32
			for i, weight := range k.Weights {
				off := i - k.Radius
				var p []uint8
				if horizontal {
					sx := clampInt(x+off, 0, w-1)
					p = srow[sx*4:]
				} else {
					sy := clampInt(y+off, 0, h-1)
					p = src.Pix[sy*src.Stride+x*4:]
				}
				r += float32(p[0]) * weight
				g += float32(p[1]) * weight
				b += float32(p[2]) * weight
			}
			d := drow[x*4:]
			d[0] = clampUint8(r)
			d[1] = clampUint8(g)
			d[2] = clampUint8(b)
			d[3] = 0xFF
		}
	}
}

func cloneRGBA(img *image.RGBA) *image.RGBA {
	c := &image.RGBA{
		Pix:    make([]uint8, len(img.Pix)),
		Stride: img.Stride,
		Rect:   img.Rect,
	}
	copy(c.Pix, img.Pix)
	return c
}

// clampInt clamps v to [lo, hi].
func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// clampUint8 clamps a float32 to [0, 255] and rounds to nearest.
func clampUint8(v float32) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}

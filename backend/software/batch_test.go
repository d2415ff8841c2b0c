package software

import (
	"bytes"
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/gogpu/postfx/render"
)

func checker(w, h int) *render.PixmapTarget {
	pt := render.NewPixmapTarget(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			pt.SetPixel(x, y, color.RGBA{R: uint8(x * 40), G: uint8(y * 40), B: 7, A: 255})
		}
	}
	return pt
}

func TestBatchPassThrough(t *testing.T) {
	d, vp := newTestDevice(4, 4)
	vp.X, vp.Y = 100, 50
	src := checker(4, 4)

	b := d.Batch()
	b.SetShader(nil)
	b.Begin()
	b.Draw(src, 100, 50, 4, 4)
	b.End()

	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			if got, want := d.Screen().GetPixel(x, y), src.GetPixel(x, y); got != want {
				t.Fatalf("pixel (%d,%d) = %v, want %v", x, y, got, want)
			}
		}
	}
	if d.Stats().Draws != 1 {
		t.Errorf("Draws = %d, want 1", d.Stats().Draws)
	}
}

func TestBatchProjection(t *testing.T) {
	d, vp := newTestDevice(8, 8)
	vp.X, vp.Y = 10, 10
	src := render.NewPixmapTarget(2, 2)
	src.Clear(color.White)

	b := d.Batch()
	b.Begin()
	b.Draw(src, 14, 12, 2, 2)
	b.End()

	screen := d.Screen()
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			inside := x >= 4 && x < 6 && y >= 2 && y < 4
			white := screen.GetPixel(x, y) == color.RGBA{255, 255, 255, 255}
			if inside != white {
				t.Errorf("pixel (%d,%d) white = %v, want %v", x, y, white, inside)
			}
		}
	}
}

func TestBatchScalesToTarget(t *testing.T) {
	// A 4x4 world drawn into a 2x2 frame buffer covers it entirely.
	d, _ := newTestDevice(4, 4)
	fb, _ := d.NewFrameBuffer(render.TargetDescriptor("half", 2, 2))
	src := render.NewPixmapTarget(4, 4)
	src.Clear(color.RGBA{R: 200, A: 255})

	fb.Begin()
	b := d.Batch()
	b.Begin()
	b.Draw(src, 0, 0, 4, 4)
	b.End()
	fb.End()

	out := fb.(*FrameBuffer).Pixmap()
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			if got := out.GetPixel(x, y).(color.RGBA); got.R != 200 {
				t.Errorf("pixel (%d,%d) = %v", x, y, got)
			}
		}
	}
}

func TestBatchBlurPass(t *testing.T) {
	tests := []struct {
		dir     render.Direction
		spreadX bool
		name    string
	}{
		{render.DirectionHorizontal, true, "horizontal"},
		{render.DirectionVertical, false, "vertical"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, _ := newTestDevice(9, 9)
			src := render.NewPixmapTarget(9, 9)
			src.Clear(color.Black)
			src.SetPixel(4, 4, color.White)

			p, _ := d.NewProgram(render.ProgramDescriptor{Label: tt.name, Direction: tt.dir})
			p.SetUniformf(blurUniform, 0.25) // 2px radius

			b := d.Batch()
			b.SetShader(p)
			b.Begin()
			b.Draw(src, 0, 0, 9, 9)
			b.End()

			screen := d.Screen()
			along, across := image.Pt(5, 4), image.Pt(4, 5)
			if !tt.spreadX {
				along, across = across, along
			}
			if c := screen.GetPixel(along.X, along.Y).(color.RGBA); c.R == 0 {
				t.Errorf("no spread along the pass axis at %v", along)
			}
			if c := screen.GetPixel(across.X, across.Y).(color.RGBA); c.R != 0 {
				t.Errorf("spread across the pass axis at %v: %v", across, c)
			}
			if c := screen.GetPixel(4, 4).(color.RGBA); c.R == 255 {
				t.Error("centre kept full intensity")
			}
		})
	}
}

func TestBatchWorkersMatchSerial(t *testing.T) {
	blur := func(opts ...Option) *render.PixmapTarget {
		d, _ := newTestDevice(64, 96, opts...)
		defer d.Close()
		p, _ := d.NewProgram(render.ProgramDescriptor{Label: "v", Direction: render.DirectionVertical})
		p.SetUniformf(blurUniform, 0.5)

		b := d.Batch()
		b.SetShader(p)
		b.Begin()
		b.Draw(checker(64, 96), 0, 0, 64, 96)
		b.End()
		return d.Screen()
	}

	serial := blur()
	par := blur(WithWorkers(4))
	if !bytes.Equal(serial.Pixels(), par.Pixels()) {
		t.Error("multi-worker blur differs from serial blur")
	}
}

func TestCapRadius(t *testing.T) {
	tests := []struct {
		name   string
		radius float32
		dir    render.Direction
		size   image.Point
		want   float32
	}{
		{"below extent", 4, render.DirectionHorizontal, image.Pt(32, 8), 4},
		{"horizontal uses width", 1e4, render.DirectionHorizontal, image.Pt(32, 8), 32},
		{"vertical uses height", 1e4, render.DirectionVertical, image.Pt(32, 8), 8},
		{"infinite", float32(math.Inf(1)), render.DirectionVertical, image.Pt(32, 8), 8},
		{"empty region", 3, render.DirectionHorizontal, image.Pt(0, 0), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := capRadius(tt.radius, tt.dir, tt.size); got != tt.want {
				t.Errorf("capRadius() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBatchHugeAmount(t *testing.T) {
	d, _ := newTestDevice(16, 16)
	p, _ := d.NewProgram(render.ProgramDescriptor{Label: "h", Direction: render.DirectionHorizontal})
	p.SetUniformf(blurUniform, 1e4)

	b := d.Batch()
	b.SetShader(p)
	b.Begin()
	b.Draw(checker(16, 16), 0, 0, 16, 16)
	b.End()

	// Every row collapses towards its mean; the green channel is constant
	// along a row of the checker and stays put.
	screen := d.Screen()
	for y := 0; y < 16; y++ {
		want := checker(16, 16).GetPixel(0, y).(color.RGBA).G
		if got := screen.GetPixel(15, y).(color.RGBA).G; got != want {
			t.Fatalf("row %d green = %d, want %d", y, got, want)
		}
	}
}

func TestBatchZeroAmountIsCopy(t *testing.T) {
	d, _ := newTestDevice(4, 4)
	src := checker(4, 4)
	p, _ := d.NewProgram(render.ProgramDescriptor{Label: "h", Direction: render.DirectionHorizontal})
	p.SetUniformf(blurUniform, 0)

	b := d.Batch()
	b.SetShader(p)
	b.Begin()
	b.Draw(src, 0, 0, 4, 4)
	b.End()

	if got, want := d.Screen().GetPixel(3, 1), src.GetPixel(3, 1); got != want {
		t.Errorf("pixel = %v, want %v", got, want)
	}
}

func TestBatchDrawOutsideBegin(t *testing.T) {
	d, _ := newTestDevice(4, 4)
	d.Batch().Draw(checker(4, 4), 0, 0, 4, 4)
	if d.Stats().Draws != 0 {
		t.Error("draw outside Begin/End was executed")
	}
}

func TestSourceRect(t *testing.T) {
	bounds := image.Rect(0, 0, 100, 50)
	tests := []struct {
		u0, v0, u1, v1 float32
		want           image.Rectangle
	}{
		{0, 0, 1, 1, bounds},
		{0.5, 0, 1, 0.5, image.Rect(50, 0, 100, 25)},
		{0, 1, 1, 0, bounds},
		{-1, -1, 2, 2, bounds},
	}
	for _, tt := range tests {
		if got := sourceRect(bounds, tt.u0, tt.v0, tt.u1, tt.v1); got != tt.want {
			t.Errorf("sourceRect(%v,%v,%v,%v) = %v, want %v", tt.u0, tt.v0, tt.u1, tt.v1, got, tt.want)
		}
	}
}

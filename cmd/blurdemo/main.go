// Command blurdemo renders a test scene through the blur effect on the
// software backend and writes the animated frames as PNG files.
package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/schollz/progressbar/v3"
	"golang.org/x/image/vector"

	"github.com/gogpu/postfx"
	"github.com/gogpu/postfx/backend/software"
	"github.com/gogpu/postfx/blur"
	"github.com/gogpu/postfx/render"
	"github.com/gogpu/postfx/tween"
)

func main() {
	var (
		width    = flag.Int("width", 800, "image width")
		height   = flag.Int("height", 600, "image height")
		frames   = flag.Int("frames", 30, "number of frames to render")
		duration = flag.Duration("duration", time.Second, "blur animation duration")
		amount   = flag.Float64("amount", 0.8, "target blur amount")
		output   = flag.String("output", "frames", "output directory")
		config   = flag.String("config", "", "YAML effect config")
		workers  = flag.Int("workers", 0, "convolution goroutines (0 = GOMAXPROCS)")
		verbose  = flag.Bool("v", false, "verbose logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	postfx.SetLogger(logger)

	err := run(demo{
		width:    *width,
		height:   *height,
		frames:   *frames,
		duration: *duration,
		amount:   float32(*amount),
		output:   *output,
		config:   *config,
		workers:  *workers,
	})
	if err != nil {
		logger.Error("blurdemo failed", "err", err)
		os.Exit(1)
	}
}

type demo struct {
	width, height int
	frames        int
	duration      time.Duration
	amount        float32
	output        string
	config        string
	workers       int
}

func run(d demo) error {
	if d.frames < 1 {
		return errors.New("frames must be >= 1")
	}

	var opts []blur.Option
	if d.config != "" {
		cfg, err := blur.LoadConfig(d.config)
		if err != nil {
			return err
		}
		if opts, err = cfg.Options(); err != nil {
			return err
		}
	}

	vp := &render.FixedViewport{Width: d.width, Height: d.height}
	dev := software.NewDevice(vp, software.WithWorkers(d.workers))
	defer dev.Close()
	tweens := tween.NewManager()
	fx := blur.New(vp, dev, dev.Batch(), tweens, opts...)
	defer func() {
		if err := fx.Dispose(); err != nil {
			postfx.Logger().Warn("dispose", "err", err)
		}
	}()

	if err := fx.Load(nil); err != nil {
		return err
	}
	if err := fx.Resize(); err != nil {
		return err
	}
	if err := os.MkdirAll(d.output, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	scene := render.NewPixmapTargetFromImage(drawScene(d.width, d.height))
	fx.AnimateTo(d.amount, d.duration).Start()
	step := d.duration / time.Duration(d.frames)

	bar := progressbar.Default(int64(d.frames), "rendering")
	for i := 0; i < d.frames; i++ {
		tweens.Update(step)

		if err := fx.Begin(); err != nil {
			return err
		}
		b := dev.Batch()
		b.SetShader(nil)
		b.Begin()
		b.Draw(scene, 0, 0, float32(d.width), float32(d.height))
		b.End()
		if err := fx.EndAndDraw(); err != nil {
			return err
		}

		name := filepath.Join(d.output, fmt.Sprintf("frame_%03d.png", i))
		if err := savePNG(name, dev.Screen().Image()); err != nil {
			return err
		}
		_ = bar.Add(1)
	}
	_ = bar.Finish()

	st := dev.Stats()
	postfx.Logger().Info("frames written",
		"dir", d.output,
		"frames", d.frames,
		"amount", fx.Amount(),
		"uploads", st.Uploads,
		"draws", st.Draws)
	return nil
}

// drawScene rasterizes a few coloured discs over a gradient.
func drawScene(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		t := float64(y) / float64(max(h-1, 1))
		c := color.RGBA{R: uint8(25 + t*100), G: uint8(50 + t*75), B: uint8(100 + t*50), A: 255}
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}

	fw, fh := float32(w), float32(h)
	discs := []struct {
		x, y, r float32
		c       color.RGBA
	}{
		{0.25 * fw, 0.3 * fh, 0.12 * fh, color.RGBA{R: 255, G: 80, B: 80, A: 255}},
		{0.5 * fw, 0.5 * fh, 0.18 * fh, color.RGBA{R: 80, G: 255, B: 80, A: 255}},
		{0.75 * fw, 0.7 * fh, 0.1 * fh, color.RGBA{R: 255, G: 220, B: 60, A: 255}},
	}
	ras := vector.NewRasterizer(w, h)
	for _, d := range discs {
		ras.Reset(w, h)
		circle(ras, d.x, d.y, d.r)
		ras.Draw(img, img.Bounds(), image.NewUniform(d.c), image.Point{})
	}
	return img
}

// circle adds a closed circle made of four cubic arcs.
func circle(ras *vector.Rasterizer, cx, cy, r float32) {
	const k = 0.5522847498
	kr := k * r
	ras.MoveTo(cx+r, cy)
	ras.CubeTo(cx+r, cy+kr, cx+kr, cy+r, cx, cy+r)
	ras.CubeTo(cx-kr, cy+r, cx-r, cy+kr, cx-r, cy)
	ras.CubeTo(cx-r, cy-kr, cx-kr, cy-r, cx, cy-r)
	ras.CubeTo(cx+kr, cy-r, cx+r, cy-kr, cx+r, cy)
	ras.ClosePath()
}

func savePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

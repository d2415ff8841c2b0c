package software

import (
	"fmt"
	"image/color"
	"log/slog"

	"github.com/gogpu/naga"

	"github.com/gogpu/postfx"
	"github.com/gogpu/postfx/internal/parallel"
	"github.com/gogpu/postfx/render"
)

// DefaultMaxRadius is the blur radius in pixels at u_blur = 1.
const DefaultMaxRadius = 8

// Compiler turns WGSL source into a shader binary.
type Compiler func(wgsl string) ([]byte, error)

// Option configures a Device during creation.
type Option func(*options)

type options struct {
	compile   Compiler
	maxRadius float32
	workers   int
	logger    *slog.Logger
}

func defaultOptions() options {
	return options{
		compile:   naga.Compile,
		maxRadius: DefaultMaxRadius,
		workers:   1,
	}
}

// WithCompiler replaces the naga compiler that validates program sources.
func WithCompiler(c Compiler) Option {
	return func(o *options) {
		if c != nil {
			o.compile = c
		}
	}
}

// WithMaxRadius sets the blur radius in pixels reached at u_blur = 1.
func WithMaxRadius(px float32) Option {
	return func(o *options) {
		if px > 0 {
			o.maxRadius = px
		}
	}
}

// WithWorkers spreads blur convolution over n goroutines. n <= 0 uses
// GOMAXPROCS; the default of 1 convolves on the calling goroutine.
// A device with more than one worker must be closed.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithLogger routes device diagnostics to l instead of the package logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// Stats counts device activity.
type Stats struct {
	FrameBuffersCreated   int
	FrameBuffersDestroyed int
	ProgramsCreated       int
	ProgramsDestroyed     int
	Uploads               int // SetUniformf calls
	Draws                 int // quads drawn by the batch
}

// LiveFrameBuffers returns the number of frame buffers not yet destroyed.
func (s Stats) LiveFrameBuffers() int {
	return s.FrameBuffersCreated - s.FrameBuffersDestroyed
}

// Device is a CPU render.Device. It is not safe for concurrent use.
type Device struct {
	viewport render.Viewport
	screen   *render.PixmapTarget
	bound    []*FrameBuffer
	batch    *Batch

	compile   Compiler
	maxRadius float32
	pool      *parallel.WorkerPool
	logger    *slog.Logger
	stats     Stats
}

// NewDevice creates a device whose screen matches the viewport's
// framebuffer size.
func NewDevice(viewport render.Viewport, opts ...Option) *Device {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	w, h := viewport.FramebufferSize()
	d := &Device{
		viewport:  viewport,
		screen:    render.NewPixmapTarget(max(w, 1), max(h, 1)),
		compile:   o.compile,
		maxRadius: o.maxRadius,
		logger:    o.logger,
	}
	if o.workers != 1 {
		d.pool = parallel.NewWorkerPool(o.workers)
	}
	d.screen.Clear(color.Black)
	d.batch = &Batch{dev: d}
	return d
}

// Close stops the convolution workers. The device stays usable and
// convolves serially afterwards.
func (d *Device) Close() {
	if d.pool != nil {
		d.pool.Close()
		d.pool = nil
	}
}

// Workers returns the number of goroutines used per convolution pass.
func (d *Device) Workers() int {
	if d.pool == nil {
		return 1
	}
	return d.pool.Workers()
}

func (d *Device) log() *slog.Logger {
	if d.logger != nil {
		return d.logger
	}
	return postfx.Logger()
}

// Screen returns the default draw destination, resized to the viewport's
// current framebuffer size. Resizing discards its contents.
func (d *Device) Screen() *render.PixmapTarget {
	w, h := d.viewport.FramebufferSize()
	w, h = max(w, 1), max(h, 1)
	if d.screen.Width() != w || d.screen.Height() != h {
		d.screen.Resize(w, h)
		d.screen.Clear(color.Black)
	}
	return d.screen
}

// Batch returns the device's batch.
func (d *Device) Batch() *Batch { return d.batch }

// Handle returns a null device handle; the software device has no GPU.
func (d *Device) Handle() render.DeviceHandle { return render.NullDeviceHandle{} }

// Stats returns the activity counters.
func (d *Device) Stats() Stats { return d.stats }

// target returns the active draw destination.
func (d *Device) target() *render.PixmapTarget {
	if n := len(d.bound); n > 0 {
		return d.bound[n-1].pix
	}
	return d.Screen()
}

// NewFrameBuffer implements render.Device.
func (d *Device) NewFrameBuffer(desc render.TextureDescriptor) (render.FrameBuffer, error) {
	if desc.Width == 0 || desc.Height == 0 {
		return nil, fmt.Errorf("software: frame buffer %q: invalid size %dx%d", desc.Label, desc.Width, desc.Height)
	}
	if desc.Format != render.TargetFormat {
		return nil, fmt.Errorf("software: frame buffer %q: unsupported format %v", desc.Label, desc.Format)
	}
	if desc.SampleCount > 1 {
		return nil, fmt.Errorf("software: frame buffer %q: multisampling not supported", desc.Label)
	}

	fb := &FrameBuffer{
		dev:   d,
		label: desc.Label,
		pix:   render.NewPixmapTarget(int(desc.Width), int(desc.Height)),
	}
	fb.pix.Clear(color.Black)
	d.stats.FrameBuffersCreated++
	d.log().Debug("software: frame buffer created", "label", desc.Label, "width", desc.Width, "height", desc.Height)
	return fb, nil
}

// NewProgram implements render.Device. The combined WGSL is compiled to
// validate it; a failure is returned as *render.CompileFailure.
func (d *Device) NewProgram(desc render.ProgramDescriptor) (render.Program, error) {
	if _, err := d.compile(desc.Source()); err != nil {
		return nil, &render.CompileFailure{Label: desc.Label, Log: err.Error()}
	}
	d.stats.ProgramsCreated++
	return &Program{
		dev:       d,
		label:     desc.Label,
		direction: desc.Direction,
		uniforms:  make(map[string]float32),
	}, nil
}

var _ render.Device = (*Device)(nil)

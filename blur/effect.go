package blur

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/chewxy/math32"

	"github.com/gogpu/postfx"
	"github.com/gogpu/postfx/render"
	"github.com/gogpu/postfx/tween"
)

// State is the lifecycle state of an Effect.
type State uint8

const (
	// StateUninitialized means shaders are not loaded or targets are not
	// allocated yet.
	StateUninitialized State = iota

	// StateReady means the effect can capture and draw.
	StateReady

	// StateCapturing means scene draws land in the capture target.
	StateCapturing

	// StateDisposed is terminal.
	StateDisposed
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateReady:
		return "ready"
	case StateCapturing:
		return "capturing"
	case StateDisposed:
		return "disposed"
	default:
		return fmt.Sprintf("State(%d)", uint8(s))
	}
}

// Effect is a two-pass separable Gaussian blur.
//
// A frame captures the scene between Begin and End, then Draw runs the
// horizontal and vertical passes and composites the result over the
// viewport. The blur amount is fed to both programs as the u_blur uniform;
// the effect's Gate keeps it from being uploaded while it does not change.
//
// Effect is not safe for concurrent use. All methods must be called from
// the render thread, the same thread that updates the tween engine.
type Effect struct {
	viewport render.Viewport
	batch    render.Batch
	engine   tween.Engine
	logger   *slog.Logger

	amount     tween.Float
	iterations int
	downsample int
	easing     tween.Easing
	source     ShaderSource
	gate       Gate
	flush      bool // upload once on the next Draw whatever the gate says

	targets *Targets
	shaders *Shaders

	capturing bool
	disposed  bool
}

// New creates an effect drawing for viewport. It owns no GPU resources
// until Load and Resize are called.
func New(viewport render.Viewport, device render.Device, batch render.Batch, engine tween.Engine, opts ...Option) *Effect {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	e := &Effect{
		viewport:   viewport,
		batch:      batch,
		engine:     engine,
		logger:     o.logger,
		iterations: o.iterations,
		downsample: o.downsample,
		easing:     o.easing,
		source:     o.source,
		targets:    NewTargets(device),
		shaders:    NewShaders(device),
	}
	e.targets.logger = o.logger
	e.shaders.logger = o.logger
	return e
}

func (e *Effect) log() *slog.Logger {
	if e.logger != nil {
		return e.logger
	}
	return postfx.Logger()
}

// invalid builds and logs an *InvalidStateError for op.
func (e *Effect) invalid(op, msg string) error {
	err := &InvalidStateError{Op: op, State: e.State(), Msg: msg}
	e.log().Error("blur: invalid state", "op", op, "state", err.State, "msg", msg)
	return err
}

// State returns the lifecycle state.
func (e *Effect) State() State {
	switch {
	case e.disposed:
		return StateDisposed
	case e.capturing:
		return StateCapturing
	case e.shaders.Loaded() && e.targets.Allocated():
		return StateReady
	default:
		return StateUninitialized
	}
}

// Load compiles the blur programs from src, or from the source configured
// with WithSource when src is nil.
//
// A compile failure is logged and returned as *CompileError; the effect
// keeps its previous programs.
func (e *Effect) Load(src ShaderSource) error {
	if e.disposed {
		return e.invalid("load", "effect is disposed")
	}
	if src == nil {
		src = e.source
	}
	if err := e.shaders.Load(src); err != nil {
		e.logCompile(err)
		return err
	}
	e.source = src
	return nil
}

// Reload rebuilds the programs from their files. It is a no-op when the
// shaders were loaded from inline text.
func (e *Effect) Reload() error {
	if e.disposed {
		return e.invalid("reload", "effect is disposed")
	}
	return e.shaders.Reload()
}

func (e *Effect) logCompile(err error) {
	var ce *CompileError
	if errors.As(err, &ce) {
		e.log().Error("blur: shader compile failed", "pass", ce.Pass, "log", ce.Log)
		return
	}
	e.log().Error("blur: load shaders", "err", err)
}

// Resize reallocates the targets at the viewport's framebuffer size divided
// by the downsample factor. The first call only allocates.
func (e *Effect) Resize() error {
	if e.disposed {
		return e.invalid("resize", "effect is disposed")
	}
	if e.capturing {
		return e.invalid("resize", "capture in progress")
	}
	fw, fh := e.viewport.FramebufferSize()
	w, h := targetSize(fw, fh, e.downsample)
	if err := e.targets.Allocate(w, h); err != nil {
		e.log().Error("blur: resize failed", "width", w, "height", h, "err", err)
		return err
	}
	return nil
}

func targetSize(fw, fh, downsample int) (w, h int) {
	return max(fw/downsample, 1), max(fh/downsample, 1)
}

// Begin binds the capture target. Scene draws until End land there.
func (e *Effect) Begin() error {
	switch e.State() {
	case StateReady:
	case StateCapturing:
		return e.invalid("begin", "nested begin")
	default:
		return e.invalid("begin", "load and resize first")
	}
	e.targets.Capture().Begin()
	e.capturing = true
	return nil
}

// End unbinds the capture target, restoring the previous destination.
func (e *Effect) End() error {
	if e.State() != StateCapturing {
		return e.invalid("end", "end without begin")
	}
	e.targets.Capture().End()
	e.capturing = false
	return nil
}

// EndAndDraw ends the capture and draws the blurred result.
func (e *Effect) EndAndDraw() error {
	if err := e.End(); err != nil {
		return err
	}
	return e.Draw()
}

// Draw runs the blur passes over the captured scene and composites the
// result at the camera origin.
//
// Each iteration runs a horizontal pass into the horizontal target, then a
// vertical pass into the vertical target. The first iteration samples the
// capture; later ones sample the previous vertical result. The amount is
// uploaded to each program only when the gate permits it.
func (e *Effect) Draw() error {
	switch e.State() {
	case StateReady:
	case StateCapturing:
		return e.invalid("draw", "capture in progress")
	default:
		return e.invalid("draw", "load and resize first")
	}

	x, y := e.viewport.CameraOrigin()
	w, h := e.viewport.ScreenSize()
	amount := e.amount.Get()

	hfb, vfb := e.targets.Horizontal(), e.targets.Vertical()
	src := e.targets.Capture().ColorTexture()
	gate := e.gate
	if e.flush {
		gate = GateOneShot
	}
	uploads := 0
	for i := 0; i < e.iterations; i++ {
		if i > 0 {
			src = vfb.ColorTexture()
		}
		uploads += e.pass(PassHorizontal, hfb, src, gate, amount, x, y, w, h)
		uploads += e.pass(PassVertical, vfb, hfb.ColorTexture(), gate, amount, x, y, w, h)
	}

	e.batch.SetShader(nil)
	e.batch.Begin()
	e.batch.DrawRegion(vfb.ColorTexture(), x, y, w, h, 0, 0, 1, 1)
	e.batch.End()

	e.log().Debug("blur: draw",
		"iterations", e.iterations,
		"amount", amount,
		"gate", gate,
		"uploads", uploads)
	e.gate = e.gate.Frame()
	e.flush = false
	return nil
}

func (e *Effect) pass(p Pass, dst render.FrameBuffer, src render.Texture, gate Gate, amount, x, y, w, h float32) int {
	e.batch.SetShader(e.shaders.Program(p))
	dst.Begin()
	e.batch.Begin()
	uploaded := e.shaders.SetUniform(p, UniformName, amount, gate)
	e.batch.Draw(src, x, y, w, h)
	e.batch.End()
	dst.End()
	if uploaded {
		return 1
	}
	return 0
}

// SetAmount kills any animation of the amount, sets it to v and schedules
// a single upload on the next Draw. Negative and NaN values become 0.
func (e *Effect) SetAmount(v float32) {
	e.engine.Kill(&e.amount)
	e.amount.Set(clampAmount(v))
	e.gate = GateOneShot
}

// ResetAmount is SetAmount(0).
func (e *Effect) ResetAmount() {
	e.SetAmount(0)
}

// AnimateTo builds an animation of the amount towards target over d with
// the effect's easing. Any running animation of the amount is killed.
//
// The gate opens when the animation begins and closes when it completes, so
// every Draw in between uploads the current amount. The Draw after
// completion uploads the final amount once more. Until the new animation
// begins the gate stays closed. The caller starts the returned handle.
func (e *Effect) AnimateTo(target float32, d time.Duration) tween.Handle {
	e.engine.Kill(&e.amount)
	e.closeGate()
	return e.engine.To(&e.amount, clampAmount(target), d, e.easing).
		OnStart(func() { e.gate = GateOpen }).
		OnComplete(e.closeGate)
}

// closeGate closes the gate, keeping a pending upload if it was open.
func (e *Effect) closeGate() {
	if e.gate.Permits() {
		e.flush = true
	}
	e.gate = GateClosed
}

// AnimateOut is AnimateTo(0, d).
func (e *Effect) AnimateOut(d time.Duration) tween.Handle {
	return e.AnimateTo(0, d)
}

// ScheduleAmount builds an engine step that sets the amount to v and
// schedules a single upload, so the change can be sequenced with other
// animations. Any running animation of the amount is killed. The caller
// starts the returned handle.
func (e *Effect) ScheduleAmount(v float32) tween.Handle {
	e.engine.Kill(&e.amount)
	return e.engine.Set(&e.amount, clampAmount(v)).
		OnComplete(func() { e.gate = GateOneShot })
}

// ScheduleReset is ScheduleAmount(0).
func (e *Effect) ScheduleReset() tween.Handle {
	return e.ScheduleAmount(0)
}

// Reset kills any animation, sets the amount to 0 and closes the gate.
// GPU resources are kept.
func (e *Effect) Reset() {
	e.engine.Kill(&e.amount)
	e.amount.Set(0)
	e.gate = GateClosed
	e.flush = false
}

// Dispose releases the programs and targets. Every later call to Load,
// Reload, Resize, Begin, End, Draw or Dispose fails with
// *InvalidStateError.
func (e *Effect) Dispose() error {
	if e.disposed {
		return e.invalid("dispose", "effect is disposed")
	}
	if e.capturing {
		e.targets.Capture().End()
		e.capturing = false
	}
	e.engine.Kill(&e.amount)
	e.shaders.Destroy()
	if e.targets.Allocated() {
		if err := e.targets.Release(); err != nil {
			return err
		}
	}
	e.disposed = true
	e.log().Info("blur: disposed")
	return nil
}

// IsActive reports whether the amount is above 0.
func (e *Effect) IsActive() bool { return e.amount.Get() > 0 }

// Amount returns the current blur amount.
func (e *Effect) Amount() float32 { return e.amount.Get() }

// GateState returns the upload gate state.
func (e *Effect) GateState() Gate { return e.gate }

// Iterations returns the number of pass pairs per Draw.
func (e *Effect) Iterations() int { return e.iterations }

// SetIterations changes the number of pass pairs per Draw.
func (e *Effect) SetIterations(n int) error {
	if n < 1 {
		return fmt.Errorf("blur: iterations must be >= 1, got %d", n)
	}
	e.iterations = n
	return nil
}

// Downsample returns the target downsample factor.
func (e *Effect) Downsample() int { return e.downsample }

// TargetSize returns the size of the blur targets, or 0x0 before Resize.
func (e *Effect) TargetSize() (width, height int) { return e.targets.Size() }

// Source returns the source of the loaded shaders, or the configured
// source before the first Load.
func (e *Effect) Source() ShaderSource { return e.source }

// InputTexture returns the capture target's texture, or nil before Resize.
func (e *Effect) InputTexture() render.Texture {
	if !e.targets.Allocated() {
		return nil
	}
	return e.targets.Capture().ColorTexture()
}

func clampAmount(v float32) float32 {
	if v < 0 || math32.IsNaN(v) {
		return 0
	}
	return v
}

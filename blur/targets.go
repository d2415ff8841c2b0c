package blur

import (
	"fmt"
	"log/slog"

	"github.com/gogpu/postfx"
	"github.com/gogpu/postfx/render"
)

// Target labels.
const (
	labelCapture    = "blur.capture"
	labelHorizontal = "blur.horizontal"
	labelVertical   = "blur.vertical"
)

// Targets owns the three frame buffers of the blur pipeline: the scene
// capture, the horizontal intermediate and the vertical result. All three
// always share the same size.
type Targets struct {
	device render.Device
	logger *slog.Logger

	capture    render.FrameBuffer
	horizontal render.FrameBuffer
	vertical   render.FrameBuffer

	width, height int

	// resized is set by the first successful Allocate; until then there is
	// nothing to release.
	resized bool
}

// NewTargets returns an empty target set allocating from device.
func NewTargets(device render.Device) *Targets {
	return &Targets{device: device}
}

// Allocate creates the three frame buffers at width x height, releasing the
// previous set first. The first call has nothing to release.
//
// If any creation fails, the frame buffers created by this call are
// destroyed, the set is left empty and the error is returned.
func (t *Targets) Allocate(width, height int) error {
	if width < 1 || height < 1 {
		return fmt.Errorf("blur: invalid target size %dx%d", width, height)
	}
	if t.resized && t.Allocated() {
		t.release()
	}

	fbs := make([]render.FrameBuffer, 0, 3)
	for _, label := range []string{labelCapture, labelHorizontal, labelVertical} {
		fb, err := t.device.NewFrameBuffer(render.TargetDescriptor(label, width, height))
		if err != nil {
			for _, created := range fbs {
				created.Destroy()
			}
			return fmt.Errorf("blur: allocate %s: %w", label, err)
		}
		fbs = append(fbs, fb)
	}

	t.capture, t.horizontal, t.vertical = fbs[0], fbs[1], fbs[2]
	t.width, t.height = width, height
	t.resized = true

	t.log().Info("blur: targets allocated", "width", width, "height", height)
	return nil
}

// Release frees all three frame buffers. Releasing an empty set is an
// *InvalidStateError.
func (t *Targets) Release() error {
	if !t.Allocated() {
		return &InvalidStateError{Op: "release targets", State: StateUninitialized, Msg: "no targets allocated"}
	}
	t.release()
	return nil
}

func (t *Targets) release() {
	t.capture.Destroy()
	t.horizontal.Destroy()
	t.vertical.Destroy()
	t.capture, t.horizontal, t.vertical = nil, nil, nil
	t.width, t.height = 0, 0
	t.log().Debug("blur: targets released")
}

// Allocated reports whether the frame buffers exist.
func (t *Targets) Allocated() bool { return t.capture != nil }

// Size returns the size shared by the frame buffers, or 0x0 when empty.
func (t *Targets) Size() (width, height int) { return t.width, t.height }

// Capture returns the scene capture frame buffer.
func (t *Targets) Capture() render.FrameBuffer { return t.capture }

// Horizontal returns the horizontal pass output.
func (t *Targets) Horizontal() render.FrameBuffer { return t.horizontal }

// Vertical returns the vertical pass output, which holds the blurred result.
func (t *Targets) Vertical() render.FrameBuffer { return t.vertical }

func (t *Targets) log() *slog.Logger {
	if t.logger != nil {
		return t.logger
	}
	return postfx.Logger()
}

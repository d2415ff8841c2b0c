package tween

import (
	"time"

	"github.com/tanema/gween"

	"github.com/gogpu/postfx"
)

// Manager is a frame-driven Engine built on gween.
//
// Tweens advance only inside Update, on the caller's goroutine, so value
// writes and callbacks happen synchronously before the frame reads the
// animated values. Manager is not safe for concurrent use.
type Manager struct {
	tweens []*Tween
	built  []*Tween // built by To or Set, not started yet
}

// NewManager creates an empty manager.
func NewManager() *Manager {
	return &Manager{}
}

// Tween is a single animation of a Float. It implements Handle.
type Tween struct {
	m        *Manager
	target   *Float
	value    float32
	duration time.Duration
	easing   Easing
	instant  bool

	delay      time.Duration
	onStart    []func()
	onComplete []func()

	gw       *gween.Tween
	started  bool // handed to the manager
	began    bool // start callbacks fired
	finished bool
	killed   bool
}

// To implements Engine.
func (m *Manager) To(target *Float, value float32, d time.Duration, easing Easing) Handle {
	if d < 0 {
		d = 0
	}
	if easing == nil {
		easing = easings["linear"]
	}
	return m.build(&Tween{m: m, target: target, value: value, duration: d, easing: easing})
}

// Set implements Engine.
func (m *Manager) Set(target *Float, value float32) Handle {
	return m.build(&Tween{m: m, target: target, value: value, instant: true})
}

func (m *Manager) build(t *Tween) *Tween {
	m.built = append(m.built, t)
	return t
}

// unbuild forgets t once it starts or dies.
func (m *Manager) unbuild(t *Tween) {
	for i, b := range m.built {
		if b == t {
			m.built = append(m.built[:i], m.built[i+1:]...)
			return
		}
	}
}

// Kill implements Engine. Tweens of target that were built but not yet
// started are killed too; starting them later does nothing.
func (m *Manager) Kill(target *Float) {
	n := 0
	for _, t := range m.tweens {
		if t.target == target && !t.killed && !t.finished {
			t.killed = true
			n++
		}
	}
	built := m.built[:0]
	for _, t := range m.built {
		if t.target == target {
			t.killed = true
			n++
			continue
		}
		built = append(built, t)
	}
	clear(m.built[len(built):])
	m.built = built
	if n > 0 {
		postfx.Logger().Debug("tween: killed", "count", n)
	}
}

// Len returns the number of running tweens.
func (m *Manager) Len() int {
	n := 0
	for _, t := range m.tweens {
		if !t.killed && !t.finished {
			n++
		}
	}
	return n
}

// Running reports whether target has a running tween.
func (m *Manager) Running(target *Float) bool {
	for _, t := range m.tweens {
		if t.target == target && !t.killed && !t.finished {
			return true
		}
	}
	return false
}

// Update advances every running tween by dt.
//
// Tweens started by callbacks during Update first step on the next call.
func (m *Manager) Update(dt time.Duration) {
	if dt < 0 {
		dt = 0
	}
	running := make([]*Tween, len(m.tweens))
	copy(running, m.tweens)
	for _, t := range running {
		if t.killed || t.finished {
			continue
		}
		t.step(dt)
	}

	live := m.tweens[:0]
	for _, t := range m.tweens {
		if !t.killed && !t.finished {
			live = append(live, t)
		}
	}
	for i := len(live); i < len(m.tweens); i++ {
		m.tweens[i] = nil
	}
	m.tweens = live
}

// OnStart implements Handle.
func (t *Tween) OnStart(fn func()) Handle {
	if fn != nil {
		t.onStart = append(t.onStart, fn)
	}
	return t
}

// OnComplete implements Handle.
func (t *Tween) OnComplete(fn func()) Handle {
	if fn != nil {
		t.onComplete = append(t.onComplete, fn)
	}
	return t
}

// Delay implements Handle.
func (t *Tween) Delay(d time.Duration) Handle {
	if d > 0 && !t.began {
		t.delay = d
	}
	return t
}

// Start implements Handle. Starting twice, or starting a killed tween, is a
// no-op.
func (t *Tween) Start() Handle {
	if t.started || t.killed {
		return t
	}
	t.started = true
	t.m.unbuild(t)
	t.m.tweens = append(t.m.tweens, t)
	return t
}

// Finished reports whether the tween reached its target value.
func (t *Tween) Finished() bool { return t.finished }

// Killed reports whether the tween was killed before finishing.
func (t *Tween) Killed() bool { return t.killed }

func (t *Tween) step(dt time.Duration) {
	if t.delay > 0 {
		if dt < t.delay {
			t.delay -= dt
			return
		}
		dt -= t.delay
		t.delay = 0
	}

	if !t.began {
		t.began = true
		if !t.instant && t.duration > 0 {
			// The start value is read when interpolation begins, not when
			// the tween is built.
			t.gw = gween.New(t.target.Get(), t.value, float32(t.duration.Seconds()), t.easing)
		}
		for _, fn := range t.onStart {
			fn()
		}
		if t.killed {
			return
		}
	}

	if t.gw == nil {
		t.target.Set(t.value)
		t.complete()
		return
	}

	v, done := t.gw.Update(float32(dt.Seconds()))
	t.target.Set(v)
	if done {
		t.complete()
	}
}

func (t *Tween) complete() {
	t.finished = true
	for _, fn := range t.onComplete {
		fn()
	}
}

var (
	_ Engine = (*Manager)(nil)
	_ Handle = (*Tween)(nil)
)

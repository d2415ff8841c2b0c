package tween

import (
	"fmt"
	"sort"
	"time"

	"github.com/tanema/gween/ease"
)

// Float is a float32 value that an Engine can animate.
// The zero value is ready to use and holds 0.
type Float struct {
	v float32
}

// NewFloat returns a Float holding v.
func NewFloat(v float32) *Float {
	return &Float{v: v}
}

// Get returns the current value.
func (f *Float) Get() float32 { return f.v }

// Set replaces the current value.
func (f *Float) Set(v float32) { f.v = v }

// Easing maps elapsed time onto the animated range.
// It has the gween signature: t elapsed, b begin, c change, d duration.
type Easing = ease.TweenFunc

// Named easings accepted by EasingByName.
var easings = map[string]Easing{
	"linear":    ease.Linear,
	"outQuad":   ease.OutQuad,
	"outCubic":  ease.OutCubic,
	"outQuart":  ease.OutQuart,
	"outQuint":  ease.OutQuint,
	"outExpo":   ease.OutExpo,
	"inOutQuad": ease.InOutQuad,
	"inOutSine": ease.InOutSine,
}

// EasingByName resolves a named easing curve such as "outQuart".
func EasingByName(name string) (Easing, error) {
	e, ok := easings[name]
	if !ok {
		return nil, fmt.Errorf("tween: unknown easing %q", name)
	}
	return e, nil
}

// EasingNames returns the names accepted by EasingByName, sorted.
func EasingNames() []string {
	names := make([]string, 0, len(easings))
	for name := range easings {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Handle configures and starts an animation built by an Engine.
// Configuration methods return the handle so calls can be chained.
type Handle interface {
	// OnStart registers fn to run once, when the animation begins
	// interpolating (after any delay).
	OnStart(fn func()) Handle

	// OnComplete registers fn to run once, when the animation reaches its
	// target value. It does not run for killed animations.
	OnComplete(fn func()) Handle

	// Delay postpones the beginning of the animation.
	Delay(d time.Duration) Handle

	// Start hands the animation to its engine.
	Start() Handle
}

// Engine animates Float values over time.
type Engine interface {
	// To builds an animation of target towards value over d.
	To(target *Float, value float32, d time.Duration, easing Easing) Handle

	// Set builds an instant animation that assigns value on its first step.
	Set(target *Float, value float32) Handle

	// Kill drops every animation of target without running callbacks.
	Kill(target *Float)
}

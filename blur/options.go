package blur

import (
	"log/slog"

	"github.com/tanema/gween/ease"

	"github.com/gogpu/postfx/tween"
)

// Defaults applied by New.
const (
	DefaultIterations = 1
	DefaultDownsample = 1
)

// DefaultEasing is the curve AnimateTo uses unless WithEasing overrides it.
var DefaultEasing tween.Easing = ease.OutQuart

// Option configures an Effect during creation.
//
// Example:
//
//	fx := blur.New(vp, dev, batch, tweens,
//		blur.WithIterations(3),
//		blur.WithDownsample(2),
//	)
type Option func(*options)

// options holds optional configuration for Effect creation.
type options struct {
	iterations int
	downsample int
	easing     tween.Easing
	source     ShaderSource
	logger     *slog.Logger
}

// defaultOptions returns the default effect options.
func defaultOptions() options {
	return options{
		iterations: DefaultIterations,
		downsample: DefaultDownsample,
		easing:     DefaultEasing,
		source:     DefaultSource(),
	}
}

// WithIterations sets how many horizontal+vertical pass pairs run per Draw.
// Values below 1 are raised to 1.
func WithIterations(n int) Option {
	return func(o *options) {
		o.iterations = max(n, 1)
	}
}

// WithDownsample divides the framebuffer size by n when allocating the
// blur targets. Values below 1 are raised to 1.
func WithDownsample(n int) Option {
	return func(o *options) {
		o.downsample = max(n, 1)
	}
}

// WithEasing sets the easing curve of AnimateTo. A nil curve keeps the
// default.
func WithEasing(e tween.Easing) Option {
	return func(o *options) {
		if e != nil {
			o.easing = e
		}
	}
}

// WithSource sets the shader source Load uses when called with nil.
func WithSource(src ShaderSource) Option {
	return func(o *options) {
		if src != nil {
			o.source = src
		}
	}
}

// WithLogger routes the effect's diagnostics to l instead of the package
// logger set with postfx.SetLogger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

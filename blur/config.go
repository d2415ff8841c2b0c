package blur

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/gogpu/postfx/tween"
)

// Config is the file form of the effect options.
//
// Example:
//
//	iterations: 2
//	downsample: 2
//	easing: outQuart
//	shaders:
//	  horizontal_vertex: shaders/blur_h.vert.wgsl
//	  fragment: shaders/blur.frag.wgsl
//	  vertical_vertex: shaders/blur_v.vert.wgsl
type Config struct {
	Iterations int          `yaml:"iterations"`
	Downsample int          `yaml:"downsample"`
	Easing     string       `yaml:"easing"`
	Shaders    ShaderConfig `yaml:"shaders"`

	// dir resolves relative shader paths; set by LoadConfig.
	dir string
}

// ShaderConfig lists shader files. Leaving all of them empty selects the
// built-in shaders.
type ShaderConfig struct {
	HorizontalVertex string `yaml:"horizontal_vertex"`
	Fragment         string `yaml:"fragment"`
	VerticalVertex   string `yaml:"vertical_vertex"`
	Fragment2        string `yaml:"fragment2"`
}

func (c ShaderConfig) empty() bool {
	return c == ShaderConfig{}
}

// DefaultConfig returns the configuration matching New's defaults.
func DefaultConfig() Config {
	return Config{
		Iterations: DefaultIterations,
		Downsample: DefaultDownsample,
		Easing:     "outQuart",
	}
}

// LoadConfig reads a YAML config file. Relative shader paths resolve
// against the directory of path.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("blur: read config: %w", err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return Config{}, fmt.Errorf("blur: config %s: %w", path, err)
	}
	cfg.dir = filepath.Dir(path)
	return cfg, nil
}

// ParseConfig parses YAML config data. Missing keys keep their defaults.
// Relative shader paths resolve against the working directory.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("blur: parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the config values.
func (c Config) Validate() error {
	var errs []error
	if c.Iterations < 1 {
		errs = append(errs, fmt.Errorf("iterations must be >= 1, got %d", c.Iterations))
	}
	if c.Downsample < 1 {
		errs = append(errs, fmt.Errorf("downsample must be >= 1, got %d", c.Downsample))
	}
	if c.Easing != "" {
		if _, err := tween.EasingByName(c.Easing); err != nil {
			errs = append(errs, err)
		}
	}
	if s := c.Shaders; !s.empty() {
		if s.HorizontalVertex == "" || s.Fragment == "" || s.VerticalVertex == "" {
			errs = append(errs, errors.New("shaders: horizontal_vertex, fragment and vertical_vertex are required"))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("blur: invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// Source returns the configured shader files as a FileSource, or nil when
// the built-in shaders are selected.
func (c Config) Source() ShaderSource {
	if c.Shaders.empty() {
		return nil
	}
	return FileSource{
		HorizontalVertex: c.path(c.Shaders.HorizontalVertex),
		Fragment:         c.path(c.Shaders.Fragment),
		VerticalVertex:   c.path(c.Shaders.VerticalVertex),
		Fragment2:        c.path(c.Shaders.Fragment2),
	}
}

func (c Config) path(p string) string {
	if p == "" || filepath.IsAbs(p) || c.dir == "" {
		return p
	}
	return filepath.Join(c.dir, p)
}

// Options converts the config to effect options.
func (c Config) Options() ([]Option, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	opts := []Option{
		WithIterations(c.Iterations),
		WithDownsample(c.Downsample),
	}
	if c.Easing != "" {
		e, err := tween.EasingByName(c.Easing)
		if err != nil {
			return nil, err
		}
		opts = append(opts, WithEasing(e))
	}
	if src := c.Source(); src != nil {
		opts = append(opts, WithSource(src))
	}
	return opts, nil
}

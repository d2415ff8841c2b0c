package blur

import (
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"regexp"

	"github.com/gogpu/postfx"
	"github.com/gogpu/postfx/render"
)

// UniformName is the float uniform every blur fragment stage declares.
const UniformName = "u_blur"

//go:embed shaders/horizontal.vert.wgsl
var horizontalVertexSource string

//go:embed shaders/vertical.vert.wgsl
var verticalVertexSource string

//go:embed shaders/blur.frag.wgsl
var fragmentSource string

// uniformDecl matches a WGSL declaration of the blur uniform, either as a
// struct member or as a module-scope variable.
var uniformDecl = regexp.MustCompile(`\b` + UniformName + `\s*:`)

// Pass identifies one of the two blur programs.
type Pass uint8

const (
	PassHorizontal Pass = iota
	PassVertical
)

func (p Pass) String() string {
	if p == PassVertical {
		return "vertical"
	}
	return "horizontal"
}

// ShaderSource is where blur shader stages come from: a FileSource or an
// InlineSource.
type ShaderSource interface {
	stages() (hv, frag, vv, frag2 string)
}

// FileSource names the WGSL files of the blur stages. File-backed sources
// can be reloaded. An empty Fragment2 shares Fragment between both passes.
type FileSource struct {
	HorizontalVertex string
	Fragment         string
	VerticalVertex   string
	Fragment2        string
}

func (s FileSource) stages() (hv, frag, vv, frag2 string) {
	return s.HorizontalVertex, s.Fragment, s.VerticalVertex, s.Fragment2
}

// Paths returns the distinct file paths of the source.
func (s FileSource) Paths() []string {
	paths := []string{s.HorizontalVertex, s.Fragment, s.VerticalVertex}
	if s.Fragment2 != "" && s.Fragment2 != s.Fragment {
		paths = append(paths, s.Fragment2)
	}
	return paths
}

// InlineSource carries WGSL source text directly. An empty Fragment2 shares
// Fragment between both passes.
type InlineSource struct {
	HorizontalVertex string
	Fragment         string
	VerticalVertex   string
	Fragment2        string
}

func (s InlineSource) stages() (hv, frag, vv, frag2 string) {
	return s.HorizontalVertex, s.Fragment, s.VerticalVertex, s.Fragment2
}

// DefaultSource returns the built-in WGSL blur stages.
func DefaultSource() InlineSource {
	return InlineSource{
		HorizontalVertex: horizontalVertexSource,
		Fragment:         fragmentSource,
		VerticalVertex:   verticalVertexSource,
	}
}

// Shaders owns the horizontal and vertical blur programs.
type Shaders struct {
	device     render.Device
	logger     *slog.Logger
	horizontal render.Program
	vertical   render.Program
	source     ShaderSource
}

// NewShaders returns an empty program pair compiling on device.
func NewShaders(device render.Device) *Shaders {
	return &Shaders{device: device}
}

// Load builds both programs from src.
//
// A compile failure is returned as *CompileError; the previously loaded
// programs then stay in place. On success the previous programs are
// destroyed and src is remembered for Reload.
func (s *Shaders) Load(src ShaderSource) error {
	if src == nil {
		return errors.New("blur: nil shader source")
	}
	text, err := resolve(src)
	if err != nil {
		return err
	}

	hv, frag, vv, frag2 := text.stages()
	if frag2 == "" {
		frag2 = frag
	}

	h, err := s.build(PassHorizontal, hv, frag)
	if err != nil {
		return err
	}
	v, err := s.build(PassVertical, vv, frag2)
	if err != nil {
		h.Destroy()
		return err
	}

	s.destroyPrograms()
	s.horizontal, s.vertical = h, v
	s.source = src

	_, fileBacked := src.(FileSource)
	s.log().Info("blur: shaders loaded", "file_backed", fileBacked)
	return nil
}

// Reload rebuilds the programs from the remembered file-backed source.
// It is a no-op for inline sources and before the first Load.
func (s *Shaders) Reload() error {
	fs, ok := s.source.(FileSource)
	if !ok {
		return nil
	}
	if err := s.Load(fs); err != nil {
		s.log().Warn("blur: reload failed", "err", err)
		return err
	}
	s.log().Info("blur: shaders reloaded")
	return nil
}

// SetUniform uploads value under name to the program of pass when gate
// permits it. It reports whether an upload happened.
func (s *Shaders) SetUniform(pass Pass, name string, value float32, gate Gate) bool {
	if !gate.Permits() {
		return false
	}
	p := s.Program(pass)
	if p == nil {
		return false
	}
	p.SetUniformf(name, value)
	return true
}

// Program returns the program of pass, or nil before Load.
func (s *Shaders) Program(pass Pass) render.Program {
	if pass == PassVertical {
		return s.vertical
	}
	return s.horizontal
}

// Horizontal returns the horizontal pass program.
func (s *Shaders) Horizontal() render.Program { return s.horizontal }

// Vertical returns the vertical pass program.
func (s *Shaders) Vertical() render.Program { return s.vertical }

// Loaded reports whether both programs are built.
func (s *Shaders) Loaded() bool { return s.horizontal != nil && s.vertical != nil }

// Source returns the source of the loaded programs, or nil.
func (s *Shaders) Source() ShaderSource { return s.source }

// Destroy releases both programs. The source is kept so a later Reload
// can rebuild them.
func (s *Shaders) Destroy() {
	s.destroyPrograms()
}

func (s *Shaders) destroyPrograms() {
	if s.horizontal != nil {
		s.horizontal.Destroy()
		s.horizontal = nil
	}
	if s.vertical != nil {
		s.vertical.Destroy()
		s.vertical = nil
	}
}

func (s *Shaders) log() *slog.Logger {
	if s.logger != nil {
		return s.logger
	}
	return postfx.Logger()
}

func (s *Shaders) build(pass Pass, vertex, fragment string) (render.Program, error) {
	if !uniformDecl.MatchString(fragment) {
		return nil, &CompileError{
			Pass: pass,
			Log:  fmt.Sprintf("fragment stage does not declare uniform %s", UniformName),
		}
	}

	dir := render.DirectionHorizontal
	if pass == PassVertical {
		dir = render.DirectionVertical
	}
	p, err := s.device.NewProgram(render.ProgramDescriptor{
		Label:     "blur." + pass.String(),
		Vertex:    vertex,
		Fragment:  fragment,
		Direction: dir,
	})
	if err != nil {
		diag := err.Error()
		var cf *render.CompileFailure
		if errors.As(err, &cf) {
			diag = cf.Log
		}
		return nil, &CompileError{Pass: pass, Log: diag, Err: err}
	}
	return p, nil
}

// resolve reads the files of a FileSource. Inline sources are returned as is.
func resolve(src ShaderSource) (InlineSource, error) {
	switch s := src.(type) {
	case InlineSource:
		return s, nil
	case FileSource:
		read := func(path string) (string, error) {
			if path == "" {
				return "", nil
			}
			data, err := os.ReadFile(path)
			if err != nil {
				return "", fmt.Errorf("blur: read shader: %w", err)
			}
			return string(data), nil
		}
		var out InlineSource
		var err error
		if out.HorizontalVertex, err = read(s.HorizontalVertex); err != nil {
			return InlineSource{}, err
		}
		if out.Fragment, err = read(s.Fragment); err != nil {
			return InlineSource{}, err
		}
		if out.VerticalVertex, err = read(s.VerticalVertex); err != nil {
			return InlineSource{}, err
		}
		if out.Fragment2, err = read(s.Fragment2); err != nil {
			return InlineSource{}, err
		}
		return out, nil
	default:
		return InlineSource{}, fmt.Errorf("blur: unsupported shader source %T", src)
	}
}

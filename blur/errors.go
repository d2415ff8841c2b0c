package blur

import (
	"errors"
	"fmt"
)

var (
	// ErrCompile is matched by every *CompileError.
	ErrCompile = errors.New("blur: shader compile failed")

	// ErrInvalidState is matched by every *InvalidStateError.
	ErrInvalidState = errors.New("blur: invalid state")

	// ErrNotFileBacked is returned by NewWatcher when the effect's shaders
	// were loaded from inline source text.
	ErrNotFileBacked = errors.New("blur: shaders are not file backed")
)

// CompileError reports a shader program that failed to build.
// Log carries the compiler diagnostic.
type CompileError struct {
	Pass Pass
	Log  string
	Err  error
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("blur: compile %s pass: %s", e.Pass, e.Log)
}

// Unwrap returns ErrCompile and the underlying cause.
func (e *CompileError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrCompile}
	}
	return []error{ErrCompile, e.Err}
}

// InvalidStateError reports an operation called in a state that does not
// allow it, such as a nested Begin or any use after Dispose.
type InvalidStateError struct {
	Op    string
	State State
	Msg   string
}

func (e *InvalidStateError) Error() string {
	if e.Msg != "" {
		return fmt.Sprintf("blur: %s in state %s: %s", e.Op, e.State, e.Msg)
	}
	return fmt.Sprintf("blur: %s in state %s", e.Op, e.State)
}

// Unwrap returns ErrInvalidState.
func (e *InvalidStateError) Unwrap() error { return ErrInvalidState }

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import "fmt"

// Direction is the axis a separable filter program convolves along.
type Direction uint8

const (
	// DirectionNone marks a program without a convolution axis.
	DirectionNone Direction = iota

	// DirectionHorizontal convolves along X.
	DirectionHorizontal

	// DirectionVertical convolves along Y.
	DirectionVertical
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case DirectionHorizontal:
		return "horizontal"
	case DirectionVertical:
		return "vertical"
	default:
		return "none"
	}
}

// ProgramDescriptor describes a shader program made of a vertex stage and a
// fragment stage, both given as WGSL source text.
type ProgramDescriptor struct {
	// Label is a debug label for the program.
	Label string

	// Vertex is the vertex stage source.
	Vertex string

	// Fragment is the fragment stage source.
	Fragment string

	// Direction is the convolution axis of the program. GPU backends only
	// use it for labelling; the software backend emulates the pass along it.
	Direction Direction
}

// Source returns the combined WGSL module compiled for the program.
func (d ProgramDescriptor) Source() string {
	return d.Vertex + "\n" + d.Fragment
}

// Program is a compiled shader program.
type Program interface {
	// Label returns the program's debug label.
	Label() string

	// SetUniformf uploads a float uniform to the program.
	SetUniformf(name string, v float32)

	// Destroy releases the program.
	Destroy()
}

// CompileFailure is returned by a Device when a program fails to compile.
// Log holds the shader compiler diagnostic.
type CompileFailure struct {
	Label string
	Log   string
}

func (e *CompileFailure) Error() string {
	return fmt.Sprintf("render: compile %s: %s", e.Label, e.Log)
}

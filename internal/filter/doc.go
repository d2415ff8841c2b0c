// Package filter provides the CPU convolution used to emulate separable
// blur shader passes.
//
// A separable Gaussian blur runs a 1D horizontal pass followed by a 1D
// vertical pass, costing O(w*h*(rx+ry)) instead of O(w*h*rx*ry).
// Convolution output follows the RGB888 target contract: colour channels
// are convolved and alpha is written opaque.
//
// The Parallel variants split rows across a parallel.WorkerPool and produce
// the same bytes as the serial passes.
package filter

// Package parallel runs row-banded image work on a fixed set of goroutines.
//
// The software backend uses a WorkerPool to split each convolution pass
// into horizontal bands of rows. Bands never overlap, so workers write to
// disjoint parts of the destination without locking.
package parallel

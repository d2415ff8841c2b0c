// Package software provides a CPU implementation of the render.Device and
// render.Batch contracts.
//
// Frame buffers are render.PixmapTarget images. Programs are validated by
// compiling their WGSL with naga, but shaders never run on the CPU: a
// program built with a convolution direction is emulated by a separable
// Gaussian pass whose radius follows the program's u_blur uniform.
//
// The backend is meant for tests, demos and headless rendering:
//
//	vp := &render.FixedViewport{Width: 800, Height: 600}
//	dev := software.NewDevice(vp)
//	fx := blur.New(vp, dev, dev.Batch(), tweens)
//	...
//	png.Encode(w, dev.Screen().Image())
//
// WithWorkers spreads each convolution over several goroutines; such a
// device must be closed.
package software

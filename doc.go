// Package postfx provides GPU post-processing effects for 2D scenes.
//
// # Overview
//
// postfx is built around render-to-texture passes driven by a host
// renderer: a scene is captured into an off-screen target, processed by one
// or more shader passes and composited back to the display. The first
// effect is a two-pass separable Gaussian blur (package blur) whose
// intensity can be set instantly or animated by an interpolation engine
// (package tween).
//
// # Quick Start
//
//	dev := software.NewDevice(viewport)
//	tw := tween.NewManager()
//	fx := blur.New(viewport, dev, dev.Batch(), tw, blur.WithIterations(2))
//	if err := fx.Load(blur.DefaultSource()); err != nil {
//	    log.Fatal(err)
//	}
//	if err := fx.Resize(); err != nil {
//	    log.Fatal(err)
//	}
//
//	// every frame
//	tw.Update(dt)
//	fx.Begin()
//	drawScene()
//	fx.End()
//	fx.Draw()
//
// # Architecture
//
// The library is organized into:
//   - render: collaborator contracts (Device, FrameBuffer, Program, Batch, Viewport)
//   - blur: the blur effect, its render targets, shader pair and update gate
//   - tween: a frame-driven interpolation engine built on gween
//   - backend/software: CPU device and batch, used for tests and headless output
//   - backend/wgpu: GPU device over gogpu/wgpu HAL
//
// # Threading
//
// Effects are not safe for concurrent use. All calls happen on the render
// thread inside a frame callback.
package postfx

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)

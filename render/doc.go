// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package render defines the collaborator contracts of postfx effects.
//
// Effects never talk to a graphics API directly. They receive a Device
// that creates off-screen FrameBuffers and shader Programs, a Batch that
// draws textured quads, and a Viewport that maps world coordinates to the
// display. Backends implement these contracts: backend/software on the CPU
// and backend/wgpu over a host-provided HAL device.
//
// # Key Principle
//
// postfx RECEIVES a GPU device from the host application, it does NOT
// create its own. DeviceHandle is the gpucontext provider the host hands
// over.
//
// # Core Interfaces
//
//   - Device: creates FrameBuffers and Programs
//   - FrameBuffer: off-screen target with a sampleable colour Texture
//   - Program: compiled vertex and fragment stage with float uniforms
//   - Batch: quad drawing with an optional custom Program
//   - Viewport: camera origin, world size and framebuffer size
//
// Every off-screen target uses TargetFormat. PixmapTarget is the CPU
// texture behind the software backend.
//
// # Thread Safety
//
// None of the contracts are safe for concurrent use. Calls happen on the
// render thread.
package render

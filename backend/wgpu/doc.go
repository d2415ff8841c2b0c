// Package wgpu implements render.Device on top of gogpu/wgpu's HAL.
//
// The package allocates the GPU resources of post-processing effects:
// frame buffers are RGBA8Unorm textures with a view each, and programs
// are WGSL shader modules paired with a 16-byte uniform buffer holding
// u_blur. Drawing stays with the host: its batch renders into Current()
// and binds a program's Module() and UniformBuffer() in its pipeline.
//
// The device is shared with the host application, never created here:
//
//	dev, err := wgpu.NewDeviceFromProvider(app.DeviceProvider())
//	if err != nil {
//		return err
//	}
//	fx := blur.New(viewport, dev, hostBatch, tweens)
package wgpu

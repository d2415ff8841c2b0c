// Package blur implements a two-pass separable Gaussian blur
// post-processing effect.
//
// An Effect captures the scene into an off-screen target, runs a horizontal
// and a vertical shader pass (optionally iterated) and composites the result
// back over the viewport. A single blur amount, fed to both passes as the
// u_blur uniform, is set directly or animated through a tween.Engine.
//
// # Frame
//
//	fx.Begin()
//	drawScene()
//	fx.End()
//	fx.Draw()
//
// # Uploads
//
// The effect's Gate decides whether Draw uploads the amount. An animation
// keeps it open for its whole duration; SetAmount opens it for the next
// Draw only; otherwise no upload happens.
//
// # Lifecycle
//
// An effect is ready once Load and Resize have both succeeded. Dispose
// releases its programs and targets and is terminal.
package blur

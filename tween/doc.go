// Package tween animates float values over time along easing curves.
//
// Engine is the contract effects depend on; Manager is a frame-driven
// implementation built on github.com/tanema/gween. A Manager only advances
// inside Update, so all value writes and start/complete callbacks happen on
// the render thread:
//
//	m := tween.NewManager()
//	amount := tween.NewFloat(0)
//	m.To(amount, 1, 300*time.Millisecond, ease.OutQuart).
//	    OnComplete(func() { log.Print("done") }).
//	    Start()
//
//	// every frame
//	m.Update(dt)
package tween

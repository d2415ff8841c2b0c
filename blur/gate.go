package blur

// Gate decides whether a draw uploads the blur amount to the shaders.
type Gate uint8

const (
	// GateClosed skips uploads. The amount is static and already on the GPU.
	GateClosed Gate = iota

	// GateOpen uploads on every draw while an animation is in flight.
	GateOpen

	// GateOneShot uploads on the next draw only, then closes.
	GateOneShot
)

// String returns the gate state name.
func (g Gate) String() string {
	switch g {
	case GateClosed:
		return "closed"
	case GateOpen:
		return "open"
	case GateOneShot:
		return "one-shot"
	default:
		return "unknown"
	}
}

// Permits reports whether the current draw may upload the uniform.
func (g Gate) Permits() bool {
	return g == GateOpen || g == GateOneShot
}

// Frame returns the state that follows a completed draw.
func (g Gate) Frame() Gate {
	if g == GateOneShot {
		return GateClosed
	}
	return g
}

package parameter

import "time"

// Display
const (
	// DisplayRefresh is the terminal redraw period
	DisplayRefresh = 100 * time.Millisecond

	// DisplayEnabled shows the terminal preview by default
	DisplayEnabled = true
)

// Target Image
const (
	// TargetMaxSide caps the longer canvas side when width/height are derived from the image
	TargetMaxSide = 128
)

// Outer Surfaces
const (
	// AudioEnabled chimes on elite improvement
	AudioEnabled = false

	// MetricsListen is the Prometheus listen address; empty disables
	MetricsListen = ""
)

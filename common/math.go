package common

import (
	"math"

	"github.com/jakecoffman/cp"
)

// TPS is the fixed simulation rate. Frame counters convert to wall time
// through it.
const TPS = 60

// FrameMS is the simulated duration of one tick in milliseconds.
const FrameMS = 1000.0 / TPS

func Lerp(a, b, t float32) float32 {
	return a + t*(b-a)
}

func Clamp(v, lo, hi float64) float64 {
	if hi < lo {
		return lo
	}
	return cp.Clamp(v, lo, hi)
}

// ClampInt bounds v to [lo, hi].
func ClampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Finite replaces NaN and infinities with fallback.
func Finite(v, fallback float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fallback
	}
	return v
}

// DegToRad converts an angle in degrees.
func DegToRad(deg float64) float64 {
	return deg * math.Pi / 180
}

package common

import "math"

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// InverseLerp returns where v sits between a and b, clamped to [0,1].
// A degenerate range maps to 0.
func InverseLerp(a, b, v float64) float64 {
	if a == b {
		return 0
	}
	return Clamp01((v - a) / (b - a))
}

func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func Clamp01(v float64) float64 {
	return Clamp(v, 0, 1)
}

// MoveTowards moves current toward target by at most maxDelta without
// overshooting.
func MoveTowards(current, target, maxDelta float64) float64 {
	if math.Abs(target-current) <= maxDelta {
		return target
	}
	if target > current {
		return current + maxDelta
	}
	return current - maxDelta
}

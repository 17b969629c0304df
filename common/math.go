package common

import "math"

// WrapAngle maps a to the half-open interval (-pi, pi].
func WrapAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a <= -math.Pi {
		a += 2 * math.Pi
	} else if a > math.Pi {
		a -= 2 * math.Pi
	}
	return a
}

// RotateTowards turns current toward target along the shortest arc by at
// most maxStep radians.
func RotateTowards(current, target, maxStep float64) float64 {
	if maxStep < 0 {
		maxStep = 0
	}
	diff := WrapAngle(target - current)
	if math.Abs(diff) <= maxStep {
		return WrapAngle(target)
	}
	if diff < 0 {
		return WrapAngle(current - maxStep)
	}
	return WrapAngle(current + maxStep)
}

// ClampInt limits v to [lo, hi].
func ClampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

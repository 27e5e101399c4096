// pkg/physics/angle.go
package physics

import "math"

// NormalizeAngle wraps an angle into the (-π, π] range.
func NormalizeAngle(angle float64) float64 {
	for angle > math.Pi {
		angle -= 2 * math.Pi
	}
	for angle <= -math.Pi {
		angle += 2 * math.Pi
	}
	return angle
}

// AngleDiff returns the signed shortest rotation from one angle to another.
func AngleDiff(from, to float64) float64 {
	return NormalizeAngle(to - from)
}

// TurnToward rotates current toward target by at most maxDelta radians and
// returns the new angle. When the remaining difference is within maxDelta
// the target angle is returned exactly, so headings settle instead of
// oscillating around the bearing.
func TurnToward(current, target, maxDelta float64) float64 {
	diff := AngleDiff(current, target)
	if math.Abs(diff) <= maxDelta {
		return NormalizeAngle(target)
	}
	if diff > 0 {
		return NormalizeAngle(current + maxDelta)
	}
	return NormalizeAngle(current - maxDelta)
}

// pkg/physics/seek.go
package physics

import "math"

// SeekState tracks the kinematic state a seeking body mutates each tick.
type SeekState struct {
	Position Vector2D
	Velocity Vector2D
	Heading  float64 // radians
}

// SeekParams are the per-class movement limits applied by UpdateSeek.
type SeekParams struct {
	MaxSpeed        float64 // top speed, world units per second
	MaxAcceleration float64 // speed change limit, units per second squared
	TurnRate        float64 // heading change limit, radians per second
	BrakingDistance float64 // distance at which proportional braking starts
	ArrivalEpsilon  float64 // distance at which the target counts as reached
}

// UpdateSeek advances a seeking body toward target by deltaTime seconds and
// reports whether it arrived. The heading turns toward the bearing at a
// bounded rate, speed ramps toward MaxSpeed limited by MaxAcceleration, and
// inside BrakingDistance the desired speed falls proportionally with the
// remaining distance so the body arrives near-stationary. Arrival zeroes
// the velocity; a step that would carry past the target snaps onto it,
// which guarantees seeking terminates in finitely many ticks instead of
// approaching the target asymptotically.
func UpdateSeek(state *SeekState, target Vector2D, params SeekParams, deltaTime float64) bool {
	remaining := target.Sub(state.Position).Length()
	if remaining <= params.ArrivalEpsilon {
		state.Velocity = Vector2D{}
		return true
	}

	bearing := state.Position.AngleTo(target)
	state.Heading = TurnToward(state.Heading, bearing, params.TurnRate*deltaTime)

	speed := state.Velocity.Length()
	desired := params.MaxSpeed
	if params.BrakingDistance > 0 && remaining < params.BrakingDistance {
		desired = params.MaxSpeed * remaining / params.BrakingDistance
	}

	maxDelta := params.MaxAcceleration * deltaTime
	if speed < desired {
		speed = math.Min(speed+maxDelta, desired)
	} else {
		speed = math.Max(speed-maxDelta, desired)
	}

	if speed*deltaTime >= remaining {
		state.Position = target
		state.Velocity = Vector2D{}
		return true
	}

	state.Velocity = FromAngle(state.Heading, speed)
	state.Position = state.Position.Add(state.Velocity.Scale(deltaTime))

	if target.Sub(state.Position).Length() <= params.ArrivalEpsilon {
		state.Velocity = Vector2D{}
		return true
	}
	return false
}

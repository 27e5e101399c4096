package physics

import (
	"testing"
)

func clipperParams() SeekParams {
	return SeekParams{
		MaxSpeed:        120,
		MaxAcceleration: 200,
		TurnRate:        3.0,
		BrakingDistance: 60,
		ArrivalEpsilon:  2.0,
	}
}

func TestUpdateSeek_MovesTowardTarget(t *testing.T) {
	state := &SeekState{Position: Vector2D{X: 100, Y: 100}}
	target := Vector2D{X: 200, Y: 200}

	arrived := UpdateSeek(state, target, clipperParams(), 0.1)
	if arrived {
		t.Fatal("UpdateSeek() reported arrival on the first tick of a 141-unit leg")
	}
	if state.Position.X <= 100 || state.Position.Y <= 100 {
		t.Errorf("position did not move strictly toward target: %+v", state.Position)
	}
	if state.Velocity.Length() == 0 {
		t.Error("velocity is zero while seeking")
	}
}

func TestUpdateSeek_SpeedClampedByAcceleration(t *testing.T) {
	params := clipperParams()
	state := &SeekState{Position: Vector2D{}}

	UpdateSeek(state, Vector2D{X: 1000, Y: 0}, params, 0.1)

	maxGain := params.MaxAcceleration * 0.1
	if speed := state.Velocity.Length(); speed > maxGain+floatTolerance {
		t.Errorf("first-tick speed %f exceeds acceleration limit %f", speed, maxGain)
	}
}

func TestUpdateSeek_BrakesInsideBrakingDistance(t *testing.T) {
	params := clipperParams()
	state := &SeekState{
		Position: Vector2D{X: 0, Y: 0},
		Velocity: Vector2D{X: params.MaxSpeed, Y: 0},
	}
	// 30 units out: half the braking distance, so desired speed is half max.
	UpdateSeek(state, Vector2D{X: 30, Y: 0}, params, 0.05)

	if speed := state.Velocity.Length(); speed >= params.MaxSpeed {
		t.Errorf("speed %f did not drop inside braking distance", speed)
	}
}

func TestUpdateSeek_TerminatesNearTarget(t *testing.T) {
	state := &SeekState{Position: Vector2D{X: 100, Y: 100}}
	target := Vector2D{X: 105, Y: 105}
	params := clipperParams()

	arrived := false
	for tick := 0; tick < 10; tick++ {
		if UpdateSeek(state, target, params, 0.1) {
			arrived = true
			break
		}
	}
	if !arrived {
		t.Fatal("seek did not terminate within 10 ticks of a near-epsilon target")
	}
	if state.Velocity.Length() != 0 {
		t.Errorf("velocity not zeroed on arrival: %+v", state.Velocity)
	}
}

func TestUpdateSeek_ArrivalWithinEpsilon(t *testing.T) {
	state := &SeekState{Position: Vector2D{X: 10, Y: 0}}
	target := Vector2D{X: 10.5, Y: 0}

	if !UpdateSeek(state, target, clipperParams(), 0.1) {
		t.Error("target inside arrival epsilon was not reported as reached")
	}
}

func TestUpdateSeek_FasterClassArrivesFirst(t *testing.T) {
	fast := clipperParams()
	slow := clipperParams()
	slow.MaxSpeed = 40
	slow.MaxAcceleration = 60

	ticksToArrive := func(params SeekParams) int {
		state := &SeekState{Position: Vector2D{X: 0, Y: 0}}
		target := Vector2D{X: 800, Y: 600}
		for tick := 1; tick <= 10000; tick++ {
			if UpdateSeek(state, target, params, 0.05) {
				return tick
			}
		}
		t.Fatalf("seek with params %+v never terminated", params)
		return -1
	}

	fastTicks := ticksToArrive(fast)
	slowTicks := ticksToArrive(slow)
	if fastTicks > slowTicks {
		t.Errorf("faster class took %d ticks, slower class %d", fastTicks, slowTicks)
	}
}

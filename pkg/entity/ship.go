// pkg/entity/ship.go
package entity

import (
	"github.com/driftline/startrader/pkg/physics"
)

// ShipClass identifies a hull type with its own movement envelope.
type ShipClass int

const (
	Shuttle ShipClass = iota
	Freighter
	Clipper
	Corvette
)

// DefaultArrivalEpsilon is the distance below which a seeking ship counts
// as having reached its target.
const DefaultArrivalEpsilon = 2.0

// ShipStats are the per-class movement limits.
type ShipStats struct {
	MaxSpeed        float64 // world units per second
	MaxAcceleration float64 // units per second squared
	Maneuverability float64 // turn rate, radians per second
	BrakingDistance float64 // distance at which deceleration begins
}

// ClassStats returns the built-in statistics for a ship class.
func ClassStats(class ShipClass) ShipStats {
	switch class {
	case Shuttle:
		return ShipStats{
			MaxSpeed:        80,
			MaxAcceleration: 120,
			Maneuverability: 3.5,
			BrakingDistance: 40,
		}
	case Freighter:
		return ShipStats{
			MaxSpeed:        60,
			MaxAcceleration: 40,
			Maneuverability: 1.2,
			BrakingDistance: 90,
		}
	case Clipper:
		return ShipStats{
			MaxSpeed:        160,
			MaxAcceleration: 180,
			Maneuverability: 2.8,
			BrakingDistance: 110,
		}
	case Corvette:
		return ShipStats{
			MaxSpeed:        130,
			MaxAcceleration: 150,
			Maneuverability: 3.2,
			BrakingDistance: 80,
		}
	default:
		return ShipStats{
			MaxSpeed:        80,
			MaxAcceleration: 100,
			Maneuverability: 2.5,
			BrakingDistance: 60,
		}
	}
}

// ShipClassFromString converts a class name to a ShipClass, falling back
// to Shuttle for unknown names.
func ShipClassFromString(s string) ShipClass {
	switch s {
	case "Shuttle":
		return Shuttle
	case "Freighter":
		return Freighter
	case "Clipper":
		return Clipper
	case "Corvette":
		return Corvette
	default:
		return Shuttle
	}
}

// ShipActor is an actor with physics-based seek-to-target movement. A ship
// is either idle (no target) or seeking; reaching the arrival epsilon
// clears the target, zeroes velocity, and flips it back to idle within the
// same update call.
type ShipActor struct {
	BaseActor
	Class ShipClass
	Stats ShipStats

	target          *physics.Vector2D
	moving          bool
	initialDistance float64
	epsilon         float64
	arrived         bool
	departed        bool
}

// NewShipActor creates an idle ship of the given class on the ship layer.
func NewShipActor(id ID, name string, class ShipClass, position physics.Vector2D) *ShipActor {
	return NewShipActorWithStats(id, name, class, ClassStats(class), position)
}

// NewShipActorWithStats creates a ship using externally supplied stats,
// e.g. classes loaded from the world catalog.
func NewShipActorWithStats(id ID, name string, class ShipClass, stats ShipStats, position physics.Vector2D) *ShipActor {
	return &ShipActor{
		BaseActor: NewBaseActor(id, name, physics.PositionAt(position, LayerShips)),
		Class:     class,
		Stats:     stats,
		epsilon:   DefaultArrivalEpsilon,
	}
}

// SetArrivalEpsilon overrides the default arrival threshold.
func (s *ShipActor) SetArrivalEpsilon(epsilon float64) {
	if epsilon > 0 {
		s.epsilon = epsilon
	}
}

// SetTarget points the ship at a plane coordinate and begins seeking. A
// target already inside the arrival epsilon leaves the ship idle.
func (s *ShipActor) SetTarget(target physics.Vector2D) {
	distance := s.GetDistanceTo(target)
	if distance <= s.epsilon {
		s.StopMovement()
		return
	}
	t := target
	s.target = &t
	s.moving = true
	s.initialDistance = distance
	s.departed = true
}

// Target returns the current seek target, if any.
func (s *ShipActor) Target() (physics.Vector2D, bool) {
	if s.target == nil {
		return physics.Vector2D{}, false
	}
	return *s.target, true
}

// IsMoving reports whether the ship is seeking a target.
func (s *ShipActor) IsMoving() bool {
	return s.moving
}

// Progress reports how much of the current leg is behind the ship, 0 to 1.
// An idle ship reports 1.
func (s *ShipActor) Progress() float64 {
	if !s.moving || s.target == nil || s.initialDistance <= 0 {
		return 1
	}
	remaining := s.GetDistanceTo(*s.target)
	progress := 1 - remaining/s.initialDistance
	if progress < 0 {
		return 0
	}
	if progress > 1 {
		return 1
	}
	return progress
}

// StopMovement forces the ship idle from any state: target cleared,
// velocity zeroed, no other side effects.
func (s *ShipActor) StopMovement() {
	s.target = nil
	s.moving = false
	s.initialDistance = 0
	s.Velocity = physics.Vector2D{}
}

// Update advances the seek physics by deltaTime seconds. Idle ships do not
// change velocity or rotation.
func (s *ShipActor) Update(deltaTime float64) {
	if !s.moving || s.target == nil {
		return
	}

	state := physics.SeekState{
		Position: s.Position.Plane(),
		Velocity: s.Velocity,
		Heading:  s.Rotation,
	}
	arrived := physics.UpdateSeek(&state, *s.target, s.seekParams(), deltaTime)

	s.Position = s.Position.WithPlane(state.Position)
	s.Velocity = state.Velocity
	s.Rotation = state.Heading

	if arrived {
		s.target = nil
		s.moving = false
		s.initialDistance = 0
		s.arrived = true
	}
}

// TakeArrival reports and clears the arrived-this-tick flag. The scene
// consumes it after dispatch to publish arrival events.
func (s *ShipActor) TakeArrival() bool {
	arrived := s.arrived
	s.arrived = false
	return arrived
}

// TakeDeparture reports and clears the seek-started flag, returning the
// target the ship set out for. The scene consumes it to publish departure
// events.
func (s *ShipActor) TakeDeparture() (physics.Vector2D, bool) {
	if !s.departed {
		return physics.Vector2D{}, false
	}
	s.departed = false
	if s.target == nil {
		// Started and arrived (or was stopped) within the same tick.
		return s.GetPosition2D(), true
	}
	return *s.target, true
}

// Render dispatches to the renderer's ship pass.
func (s *ShipActor) Render(r Renderer) {
	r.RenderShip(s)
}

func (s *ShipActor) seekParams() physics.SeekParams {
	return physics.SeekParams{
		MaxSpeed:        s.Stats.MaxSpeed,
		MaxAcceleration: s.Stats.MaxAcceleration,
		TurnRate:        s.Stats.Maneuverability,
		BrakingDistance: s.Stats.BrakingDistance,
		ArrivalEpsilon:  s.epsilon,
	}
}

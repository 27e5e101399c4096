// pkg/entity/actor.go
package entity

import (
	"sync/atomic"

	"github.com/driftline/startrader/pkg/physics"
)

// ID is a unique identifier for an actor
type ID uint64

var nextID atomic.Uint64

// GenerateID returns a process-unique actor ID.
func GenerateID() ID {
	return ID(nextID.Add(1))
}

// Actor is the base interface for every simulated entity in a scene.
// Implementations advance their own state in Update and paint themselves
// in Render; they never reach into the scene that owns them.
type Actor interface {
	GetID() ID
	GetName() string
	GetPosition() physics.Position3
	GetPosition2D() physics.Vector2D
	SetPosition(p physics.Position3)
	SetPosition2D(p physics.Vector2D)
	GetVelocity() physics.Vector2D
	GetRotation() float64
	IsActive() bool
	Update(deltaTime float64)
	Render(r Renderer)
	Destroy()
}

// Sighting is a read-only observation of another actor: identity, plane
// position, and scene tag, all captured when the tick began. Actors scan
// sightings instead of live actor references so no actor can observe
// another's post-update state within the same tick.
type Sighting struct {
	ID       ID
	Position physics.Vector2D
	Tag      string
}

// Neighborhood is the spatial view a scene hands to actors that need to
// observe their surroundings during a tick. It reflects the registry and
// every position as they stood when the tick began, so neither mid-tick
// add/remove nor earlier actors' movement is visible through it.
type Neighborhood interface {
	ActorsInRadius(center physics.Vector2D, radius float64) []Sighting
	TaggedInRadius(tag string, center physics.Vector2D, radius float64) []Sighting
}

// Deliberator is implemented by actors that run a decision step in
// addition to their physics step. The scene detects it during dispatch so
// plain actors stay ignorant of AI concerns.
type Deliberator interface {
	Advance(deltaTime float64, nearby Neighborhood)
}

// BaseActor contains the state and helpers common to all actors.
type BaseActor struct {
	ID       ID
	Name     string
	Position physics.Position3
	Velocity physics.Vector2D
	Rotation float64
	Active   bool
}

// NewBaseActor creates an active actor at an explicit 3D position.
func NewBaseActor(id ID, name string, position physics.Position3) BaseActor {
	return BaseActor{
		ID:       id,
		Name:     name,
		Position: position,
		Active:   true,
	}
}

// NewBaseActorForKind creates an active actor on the depth layer mapped to
// the given entity kind. Unknown kinds land on the default layer rather
// than failing.
func NewBaseActorForKind(id ID, name string, plane physics.Vector2D, kind string) BaseActor {
	return NewBaseActor(id, name, physics.PositionAt(plane, LayerForKind(kind)))
}

// GetID returns the actor's unique identifier
func (a *BaseActor) GetID() ID {
	return a.ID
}

// GetName returns the actor's display name
func (a *BaseActor) GetName() string {
	return a.Name
}

// GetPosition returns a copy of the actor's 3D position
func (a *BaseActor) GetPosition() physics.Position3 {
	return a.Position
}

// GetPosition2D returns a copy of the actor's plane position
func (a *BaseActor) GetPosition2D() physics.Vector2D {
	return a.Position.Plane()
}

// SetPosition replaces the position wholesale, depth layer included.
func (a *BaseActor) SetPosition(p physics.Position3) {
	a.Position = p
}

// SetPosition2D moves the actor on the plane, preserving its depth layer.
func (a *BaseActor) SetPosition2D(p physics.Vector2D) {
	a.Position = a.Position.WithPlane(p)
}

// GetVelocity returns a copy of the actor's plane velocity
func (a *BaseActor) GetVelocity() physics.Vector2D {
	return a.Velocity
}

// GetRotation returns the actor's heading in radians
func (a *BaseActor) GetRotation() float64 {
	return a.Rotation
}

// IsActive reports whether the actor still participates in updates.
func (a *BaseActor) IsActive() bool {
	return a.Active
}

// GetDistanceTo returns the plane distance to a target point. Depth never
// participates in distance math.
func (a *BaseActor) GetDistanceTo(target physics.Vector2D) float64 {
	return a.Position.Plane().Distance(target)
}

// GetAngleTo returns the plane bearing toward a target point in radians.
func (a *BaseActor) GetAngleTo(target physics.Vector2D) float64 {
	return a.Position.Plane().AngleTo(target)
}

// Update integrates the actor's position by its velocity, preserving the
// depth layer.
func (a *BaseActor) Update(deltaTime float64) {
	a.Position = a.Position.WithPlane(
		a.Position.Plane().Add(a.Velocity.Scale(deltaTime)),
	)
}

// Render does nothing for the base actor; concrete types dispatch to the
// renderer method that knows how to draw them.
func (a *BaseActor) Render(r Renderer) {}

// Destroy deactivates the actor. It is idempotent and never reversed; a
// destroyed actor is skipped by scene iteration until it is swept out.
func (a *BaseActor) Destroy() {
	a.Active = false
}

// pkg/scene/scene.go
package scene

import (
	"context"
	"sort"

	"github.com/driftline/startrader/pkg/ai"
	"github.com/driftline/startrader/pkg/entity"
	"github.com/driftline/startrader/pkg/event"
	"github.com/driftline/startrader/pkg/logging"
	"github.com/driftline/startrader/pkg/physics"
)

// Scene is the authoritative registry of all active actors. It owns every
// actor added to it; external callers never manipulate the maps directly.
// All updates run synchronously on the calling goroutine: one Update call
// advances every active actor by the same deltaTime, in ascending ID
// order, against a registry snapshot taken when the tick began.
type Scene struct {
	actors       map[entity.ID]entity.Actor
	actorsByType map[string]map[entity.ID]struct{}
	tagByID      map[entity.ID]string

	bus    *event.Bus
	logger *logging.Logger
	tick   uint64
}

// New creates an empty scene publishing on the given bus. A nil bus
// disables event publication.
func New(bus *event.Bus) *Scene {
	return &Scene{
		actors:       make(map[entity.ID]entity.Actor),
		actorsByType: make(map[string]map[entity.ID]struct{}),
		tagByID:      make(map[entity.ID]string),
		bus:          bus,
		logger:       logging.NewLogger(),
	}
}

// Tick returns the number of completed Update calls.
func (s *Scene) Tick() uint64 {
	return s.tick
}

// Len returns the number of registered actors, active or not.
func (s *Scene) Len() int {
	return len(s.actors)
}

// AddActor inserts an actor under an optional type tag. Adding an actor
// whose id already exists overwrites the previous entry (last write
// wins); the old entry is scrubbed from its type bucket first.
func (s *Scene) AddActor(a entity.Actor, typeTag string) {
	id := a.GetID()
	if _, exists := s.actors[id]; exists {
		s.scrubFromIndex(id)
	}

	s.actors[id] = a
	if typeTag != "" {
		if s.actorsByType[typeTag] == nil {
			s.actorsByType[typeTag] = make(map[entity.ID]struct{})
		}
		s.actorsByType[typeTag][id] = struct{}{}
		s.tagByID[id] = typeTag
	}

	s.publish(event.NewActorEvent(event.ActorAdded, s, uint64(id), typeTag))
}

// RemoveActor destroys an actor, deletes it from the registry, and scrubs
// it from its type bucket, pruning the bucket if it empties. It reports
// whether the id was registered.
func (s *Scene) RemoveActor(id entity.ID) bool {
	a, ok := s.actors[id]
	if !ok {
		return false
	}

	a.Destroy()
	tag := s.tagByID[id]
	s.scrubFromIndex(id)
	delete(s.actors, id)

	s.publish(event.NewActorEvent(event.ActorRemoved, s, uint64(id), tag))
	return true
}

// Actor looks up an actor by id.
func (s *Scene) Actor(id entity.ID) (entity.Actor, bool) {
	a, ok := s.actors[id]
	return a, ok
}

// ActorsByType returns the currently active actors registered under a
// tag. Destroyed-but-unswept actors are filtered out.
func (s *Scene) ActorsByType(tag string) []entity.Actor {
	ids, ok := s.actorsByType[tag]
	if !ok {
		return nil
	}
	actors := make([]entity.Actor, 0, len(ids))
	for id := range ids {
		if a, ok := s.actors[id]; ok && a.IsActive() {
			actors = append(actors, a)
		}
	}
	sort.Slice(actors, func(i, j int) bool {
		return actors[i].GetID() < actors[j].GetID()
	})
	return actors
}

// FindActorsInRadius returns all active actors whose plane distance to
// the point is within radius, boundary inclusive. This is a deliberate
// linear scan: at expected actor counts it beats maintaining a spatial
// index, and it is the documented scaling limit of this registry.
func (s *Scene) FindActorsInRadius(point physics.Vector2D, radius float64) []entity.Actor {
	var found []entity.Actor
	for _, a := range s.actors {
		if !a.IsActive() {
			continue
		}
		if a.GetPosition2D().Distance(point) <= radius {
			found = append(found, a)
		}
	}
	sort.Slice(found, func(i, j int) bool {
		return found[i].GetID() < found[j].GetID()
	})
	return found
}

// Update advances every active actor by deltaTime seconds. The iteration
// set and the spatial view handed to deliberating actors are both
// snapshots from the start of the call, so an actor added or removed
// mid-tick is not retroactively visible, and an actor that deactivates
// itself mid-update stays in the registry until the next Sweep.
func (s *Scene) Update(deltaTime float64) {
	snapshot := s.snapshot()
	view := &tickView{sightings: snapshot.sightings}

	for _, a := range snapshot.actors {
		if !a.IsActive() {
			continue
		}

		if d, ok := a.(entity.Deliberator); ok {
			d.Advance(deltaTime, view)
		} else {
			a.Update(deltaTime)
		}

		s.publishTransitions(a)
	}
	s.tick++
}

// Render paints every active actor onto the surface in depth-layer order,
// lower layers first, ties broken by id.
func (s *Scene) Render(r entity.Renderer) {
	s.RenderWith(r, nil)
}

// RenderWith paints like Render but invokes background after the surface
// is cleared and before any actor draws. World furniture that is not an
// actor (stations) goes through here so Clear cannot wipe it.
func (s *Scene) RenderWith(r entity.Renderer, background func()) {
	snapshot := s.snapshot()
	sort.SliceStable(snapshot.actors, func(i, j int) bool {
		zi, zj := snapshot.actors[i].GetPosition().Z, snapshot.actors[j].GetPosition().Z
		if zi != zj {
			return zi < zj
		}
		return snapshot.actors[i].GetID() < snapshot.actors[j].GetID()
	})

	r.Clear()
	if background != nil {
		background()
	}
	for _, a := range snapshot.actors {
		if a.IsActive() {
			a.Render(r)
		}
	}
	r.Present()
}

// Sweep removes actors that were destroyed but left in the registry, and
// returns how many it removed. Destruction and removal are deliberately
// separate so a tick's iteration set stays stable.
func (s *Scene) Sweep() int {
	var removed int
	for id, a := range s.actors {
		if a.IsActive() {
			continue
		}
		tag := s.tagByID[id]
		s.scrubFromIndex(id)
		delete(s.actors, id)
		removed++
		s.publish(event.NewActorEvent(event.ActorDestroyed, s, uint64(id), tag))
	}
	if removed > 0 {
		s.logger.Debug(context.Background(), "swept inactive actors",
			"removed", removed,
			"remaining", len(s.actors),
		)
	}
	return removed
}

type registrySnapshot struct {
	actors    []entity.Actor
	sightings []entity.Sighting
}

// snapshot captures the registry in ascending ID order so iteration is
// reproducible for a fixed actor set, and freezes every active actor's
// position and tag into sightings for the tick's spatial queries.
func (s *Scene) snapshot() registrySnapshot {
	actors := make([]entity.Actor, 0, len(s.actors))
	for _, a := range s.actors {
		actors = append(actors, a)
	}
	sort.Slice(actors, func(i, j int) bool {
		return actors[i].GetID() < actors[j].GetID()
	})

	sightings := make([]entity.Sighting, 0, len(actors))
	for _, a := range actors {
		if !a.IsActive() {
			continue
		}
		sightings = append(sightings, entity.Sighting{
			ID:       a.GetID(),
			Position: a.GetPosition2D(),
			Tag:      s.tagByID[a.GetID()],
		})
	}
	return registrySnapshot{actors: actors, sightings: sightings}
}

// scrubFromIndex removes an id from its type bucket and prunes the bucket
// when it empties.
func (s *Scene) scrubFromIndex(id entity.ID) {
	tag, ok := s.tagByID[id]
	if !ok {
		return
	}
	if bucket, ok := s.actorsByType[tag]; ok {
		delete(bucket, id)
		if len(bucket) == 0 {
			delete(s.actorsByType, tag)
		}
	}
	delete(s.tagByID, id)
}

type arrivalReporter interface {
	TakeArrival() bool
}

type departureReporter interface {
	TakeDeparture() (physics.Vector2D, bool)
}

type goalReporter interface {
	TakeGoalChange() (previous, current ai.Goal, changed bool)
}

type threatReporter interface {
	TakeThreatSpike() (float64, bool)
}

// publishTransitions drains the per-tick transition flags actors record
// during their update and turns them into bus events.
func (s *Scene) publishTransitions(a entity.Actor) {
	if r, ok := a.(departureReporter); ok {
		if target, departed := r.TakeDeparture(); departed {
			s.publish(event.NewMovementStartedEvent(s, uint64(a.GetID()), target.X, target.Y))
		}
	}
	if r, ok := a.(arrivalReporter); ok && r.TakeArrival() {
		pos := a.GetPosition2D()
		s.publish(event.NewMovementEvent(s, uint64(a.GetID()), pos.X, pos.Y))
	}
	if r, ok := a.(goalReporter); ok {
		if previous, current, changed := r.TakeGoalChange(); changed {
			s.publish(event.NewGoalEvent(s, uint64(a.GetID()), string(previous.Type), string(current.Type)))
		}
	}
	if r, ok := a.(threatReporter); ok {
		if level, spiked := r.TakeThreatSpike(); spiked {
			s.publish(event.NewThreatEvent(s, uint64(a.GetID()), level))
		}
	}
}

func (s *Scene) publish(e event.Event) {
	if s.bus != nil {
		s.bus.Publish(e)
	}
}

// tickView is the read-only spatial view handed to deliberating actors.
// It answers queries from sightings frozen when the tick began, never from
// live actor state, so earlier-updated actors' movement stays invisible
// until the next tick.
type tickView struct {
	sightings []entity.Sighting
}

// ActorsInRadius implements entity.Neighborhood.
func (v *tickView) ActorsInRadius(center physics.Vector2D, radius float64) []entity.Sighting {
	var found []entity.Sighting
	for _, s := range v.sightings {
		if s.Position.Distance(center) <= radius {
			found = append(found, s)
		}
	}
	return found
}

// TaggedInRadius implements entity.Neighborhood.
func (v *tickView) TaggedInRadius(tag string, center physics.Vector2D, radius float64) []entity.Sighting {
	var found []entity.Sighting
	for _, s := range v.sightings {
		if s.Tag != tag {
			continue
		}
		if s.Position.Distance(center) <= radius {
			found = append(found, s)
		}
	}
	return found
}

// pkg/entity/npc.go
package entity

import (
	"fmt"

	"github.com/driftline/startrader/pkg/ai"
	"github.com/driftline/startrader/pkg/physics"
)

// Default tuning for the NPC decision loop. All three can be overridden
// per actor.
const (
	DefaultDecisionCooldown = 5.0   // seconds between goal re-evaluations
	DefaultThreatRadius     = 600.0 // hostile scan radius
	DefaultHostileTag       = "pirate"

	fleeDistance      = 800.0 // how far a fleeing ship runs from the threat centroid
	patrolLegDistance = 300.0 // patrol loop radius around the current position
	threatAlarmLevel  = 0.5   // level at which a threat spike is reported
)

// StationResolver resolves station ids to plane coordinates. It is the
// external World/Station collaborator; NPCs use it to turn trade goals
// into concrete targets.
type StationResolver interface {
	ResolveStation(id string) (physics.Vector2D, bool)
	StationIDs() []string
}

// NPCRecord is the externally readable snapshot of an NPC, kept in sync
// with the actor every tick. The actor's position is the source of truth;
// the record only mirrors it.
type NPCRecord struct {
	ID        string
	Name      string
	Archetype string
	ShipClass string
	X, Y, Z   float64
	GoalType  string
}

// NPCActor is a ship driven by an autonomous decision loop: a personality
// and skill profile score a fixed set of candidate goals on a cooldown,
// biased by live threat assessment, and the winning goal is translated
// into a movement target.
type NPCActor struct {
	ShipActor

	Record      *NPCRecord
	Personality ai.Personality
	Skills      ai.Skills
	Goal        ai.Goal
	GoalHistory []ai.Goal
	Threat      ai.ThreatAssessment
	Routes      ai.RouteMemory

	DecisionCooldown float64

	cooldownInterval float64
	threatRadius     float64
	hostileTag       string
	resolver         StationResolver

	waypoints       []physics.Vector2D
	currentWaypoint int
	onWaypoints     bool

	goalChanged    bool
	previousGoal   ai.Goal
	threatSpike    bool
	threatContacts []ai.Contact
}

// NewNPCActor creates an NPC around an existing ship actor. The ship's
// state is copied in: the NPC owns its own ship from then on, and the
// passed-in actor must not be retained or mutated by the caller. The
// resolver may be nil; station-directed goals then fall back to idle.
func NewNPCActor(ship *ShipActor, personality ai.Personality, skills ai.Skills, resolver StationResolver) *NPCActor {
	npc := &NPCActor{
		ShipActor:        *ship,
		Personality:      personality,
		Skills:           skills,
		Goal:             ai.NewGoal(ai.GoalIdle, 0, nil),
		Routes:           ai.NewRouteMemory(),
		cooldownInterval: DefaultDecisionCooldown,
		threatRadius:     DefaultThreatRadius,
		hostileTag:       DefaultHostileTag,
		resolver:         resolver,
	}
	npc.Record = &NPCRecord{
		ID:        fmt.Sprintf("npc-%d", ship.ID),
		Name:      ship.Name,
		Archetype: personality.Type,
		ShipClass: shipClassName(ship.Class),
	}
	npc.syncRecord()
	return npc
}

// SetDecisionCooldown sets the seconds between goal re-evaluations. Zero
// or negative means "re-evaluate immediately"; it is not an error.
func (n *NPCActor) SetDecisionCooldown(seconds float64) {
	n.cooldownInterval = seconds
	n.DecisionCooldown = seconds
}

// SetThreatProfile configures the hostile scan.
func (n *NPCActor) SetThreatProfile(tag string, radius float64) {
	if tag != "" {
		n.hostileTag = tag
	}
	if radius > 0 {
		n.threatRadius = radius
	}
}

// SetTargetPoint aims the NPC at a raw coordinate, abandoning any
// waypoint chain.
func (n *NPCActor) SetTargetPoint(target physics.Vector2D) {
	n.clearWaypoints()
	n.SetTarget(target)
}

// SetTargetStation resolves a station id to coordinates and seeks it.
// An unresolvable station leaves the NPC idle rather than seeking an
// invalid target; the return value reports which happened.
func (n *NPCActor) SetTargetStation(stationID string) bool {
	if n.resolver == nil {
		n.becomeIdle()
		return false
	}
	position, ok := n.resolver.ResolveStation(stationID)
	if !ok {
		n.becomeIdle()
		return false
	}
	n.SetTargetPoint(position)
	return true
}

// SetWaypoints follows a chain of points, one leg at a time. An empty
// chain leaves the NPC idle.
func (n *NPCActor) SetWaypoints(points []physics.Vector2D) {
	if len(points) == 0 {
		n.clearWaypoints()
		n.StopMovement()
		return
	}
	n.waypoints = append([]physics.Vector2D(nil), points...)
	n.currentWaypoint = 0
	n.onWaypoints = true
	n.SetTarget(n.waypoints[0])
}

// CurrentWaypoint reports the index of the leg in flight and whether a
// chain is active.
func (n *NPCActor) CurrentWaypoint() (int, bool) {
	return n.currentWaypoint, n.onWaypoints
}

// Update advances the NPC without a spatial view: physics and cooldown
// still run, threat assessment keeps its last value.
func (n *NPCActor) Update(deltaTime float64) {
	n.Advance(deltaTime, nil)
}

// Advance runs one full tick of the decision loop: threat scan, cooldown
// and goal re-evaluation, seek physics, waypoint advancement, and record
// sync. The neighborhood reflects the registry as of tick start and may
// be nil.
func (n *NPCActor) Advance(deltaTime float64, nearby Neighborhood) {
	if nearby != nil {
		n.assessThreat(nearby)
	}

	n.DecisionCooldown -= deltaTime
	if n.DecisionCooldown <= 0 {
		n.evaluateGoals()
		n.DecisionCooldown = n.cooldownInterval
	}

	n.ShipActor.Update(deltaTime)
	n.recordTradeArrival()
	n.advanceWaypoints()
	n.syncRecord()
}

// recordTradeArrival commits a completed trade leg to route memory. Without
// price formation the margin is a flat unit; what matters is that the
// station enters the profitable set and future trade goals prefer it.
func (n *NPCActor) recordTradeArrival() {
	if !n.arrived || n.Goal.Type != ai.GoalTrade {
		return
	}
	if station, ok := n.Goal.Params["station"]; ok {
		n.Routes.RecordProfit(station, 1)
	}
}

// TakeGoalChange reports and clears the goal transition recorded this
// tick, for the scene to publish.
func (n *NPCActor) TakeGoalChange() (previous, current ai.Goal, changed bool) {
	if !n.goalChanged {
		return ai.Goal{}, ai.Goal{}, false
	}
	n.goalChanged = false
	return n.previousGoal, n.Goal, true
}

// TakeThreatSpike reports and clears whether the threat level crossed the
// alarm threshold this tick.
func (n *NPCActor) TakeThreatSpike() (float64, bool) {
	if !n.threatSpike {
		return 0, false
	}
	n.threatSpike = false
	return n.Threat.Level, true
}

// Render dispatches to the renderer's NPC pass.
func (n *NPCActor) Render(r Renderer) {
	r.RenderNPC(n)
}

func (n *NPCActor) assessThreat(nearby Neighborhood) {
	hostiles := nearby.TaggedInRadius(n.hostileTag, n.GetPosition2D(), n.threatRadius)
	contacts := make([]ai.Contact, 0, len(hostiles))
	for _, h := range hostiles {
		if h.ID == n.ID {
			continue
		}
		contacts = append(contacts, ai.Contact{
			ID:       uint64(h.ID),
			Position: h.Position,
		})
	}

	previous := n.Threat.Level
	n.threatContacts = contacts
	n.Threat = ai.AssessThreat(n.GetPosition2D(), contacts, n.threatRadius)
	if previous < threatAlarmLevel && n.Threat.Level >= threatAlarmLevel {
		n.threatSpike = true
	}
}

// evaluateGoals scores the candidate set and applies the winner. The
// scoring itself is pure; only the application mutates actor state.
func (n *NPCActor) evaluateGoals() {
	scores := ai.ScoreGoals(n.Personality, n.Skills, n.Threat.Level)
	chosen := ai.ChooseGoal(scores)
	if chosen == n.Goal.Type {
		// Same intent: no history entry, no change event. A finished
		// movement still gets a fresh target, otherwise a patrol would fly
		// one loop and park, and a docked trader would never head back out.
		if !n.IsMoving() && !n.onWaypoints {
			n.applyGoal()
		}
		return
	}

	var priority float64
	for _, s := range scores {
		if s.Type == chosen {
			priority = s.Score
			break
		}
	}

	n.previousGoal = n.Goal
	n.GoalHistory = append(n.GoalHistory, n.Goal)
	n.Goal = ai.NewGoal(chosen, priority, nil)
	n.goalChanged = true

	n.applyGoal()
}

// applyGoal translates the active goal into a concrete movement target.
func (n *NPCActor) applyGoal() {
	switch n.Goal.Type {
	case ai.GoalTrade:
		station, ok := n.pickTradeStation()
		if !ok {
			n.becomeIdle()
			return
		}
		if n.SetTargetStation(station) {
			n.Goal.Params = map[string]string{"station": station}
		}
	case ai.GoalFlee:
		n.flee()
	case ai.GoalPatrol:
		n.SetWaypoints(n.patrolLoop())
	case ai.GoalIdle:
		n.becomeIdle()
	}
}

// pickTradeStation prefers the most profitable known route, then catalog
// declaration order. The station the ship is currently docked at is
// skipped so a trade leg always goes somewhere.
func (n *NPCActor) pickTradeStation() (string, bool) {
	if n.resolver == nil {
		return "", false
	}
	var candidates []string
	if best, ok := n.Routes.BestRoute(); ok {
		candidates = append(candidates, best)
	}
	candidates = append(candidates, n.resolver.StationIDs()...)

	for _, id := range candidates {
		position, ok := n.resolver.ResolveStation(id)
		if !ok {
			continue
		}
		if n.GetDistanceTo(position) <= n.epsilon {
			continue
		}
		return id, true
	}
	return "", false
}

// flee runs away from the threat centroid and remembers the sector as one
// to avoid. With no visible threats the NPC simply stops.
func (n *NPCActor) flee() {
	centroid, ok := ai.ThreatCentroid(n.threatContacts)
	if !ok {
		n.becomeIdle()
		return
	}

	away := n.GetPosition2D().Sub(centroid).Normalize()
	if away.Length() == 0 {
		away = physics.FromAngle(n.Rotation, 1)
	}
	n.Routes.AvoidSector(ai.SectorOf(centroid))
	n.SetTargetPoint(n.GetPosition2D().Add(away.Scale(fleeDistance)))
}

// patrolLoop lays out a diamond of waypoints around the current position.
func (n *NPCActor) patrolLoop() []physics.Vector2D {
	center := n.GetPosition2D()
	return []physics.Vector2D{
		center.Add(physics.Vector2D{X: patrolLegDistance}),
		center.Add(physics.Vector2D{Y: patrolLegDistance}),
		center.Add(physics.Vector2D{X: -patrolLegDistance}),
		center.Add(physics.Vector2D{Y: -patrolLegDistance}),
	}
}

func (n *NPCActor) advanceWaypoints() {
	if !n.onWaypoints || n.IsMoving() {
		return
	}
	n.currentWaypoint++
	if n.currentWaypoint >= len(n.waypoints) {
		n.clearWaypoints()
		return
	}
	n.SetTarget(n.waypoints[n.currentWaypoint])
}

func (n *NPCActor) clearWaypoints() {
	n.waypoints = nil
	n.currentWaypoint = 0
	n.onWaypoints = false
}

func (n *NPCActor) becomeIdle() {
	n.clearWaypoints()
	n.StopMovement()
}

func (n *NPCActor) syncRecord() {
	if n.Record == nil {
		return
	}
	n.Record.X = n.Position.X
	n.Record.Y = n.Position.Y
	n.Record.Z = n.Position.Z
	n.Record.GoalType = string(n.Goal.Type)
}

func shipClassName(class ShipClass) string {
	switch class {
	case Shuttle:
		return "Shuttle"
	case Freighter:
		return "Freighter"
	case Clipper:
		return "Clipper"
	case Corvette:
		return "Corvette"
	default:
		return "Shuttle"
	}
}

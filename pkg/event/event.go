// pkg/event/event.go
package event

import (
	"sync"
)

// Type represents the type of event
type Type string

// Simulation event types
const (
	ActorAdded        Type = "actor_added"
	ActorRemoved      Type = "actor_removed"
	ActorDestroyed    Type = "actor_destroyed"
	MovementStarted   Type = "movement_started"
	MovementArrived   Type = "movement_arrived"
	GoalChanged       Type = "goal_changed"
	ThreatDetected    Type = "threat_detected"
	SimulationStarted Type = "simulation_started"
	SimulationStopped Type = "simulation_stopped"
)

// Event is the base interface for all events
type Event interface {
	GetType() Type
	GetSource() interface{}
}

// BaseEvent provides common functionality for all events
type BaseEvent struct {
	EventType Type
	Source    interface{}
}

// GetType returns the event type
func (e *BaseEvent) GetType() Type {
	return e.EventType
}

// GetSource returns the event source
func (e *BaseEvent) GetSource() interface{} {
	return e.Source
}

// Handler is a function that handles events
type Handler func(Event)

// Subscription identifies a registered handler so it can be cancelled.
type Subscription struct {
	eventType Type
	id        uint64
}

// Bus manages event subscriptions and dispatching
type Bus struct {
	handlers map[Type]map[uint64]Handler
	nextID   uint64
	mu       sync.RWMutex
}

// NewBus creates a new event bus
func NewBus() *Bus {
	return &Bus{
		handlers: make(map[Type]map[uint64]Handler),
	}
}

// Subscribe registers a handler for a specific event type and returns a
// subscription token for later cancellation.
func (b *Bus) Subscribe(eventType Type, handler Handler) Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	if b.handlers[eventType] == nil {
		b.handlers[eventType] = make(map[uint64]Handler)
	}
	b.handlers[eventType][b.nextID] = handler
	return Subscription{eventType: eventType, id: b.nextID}
}

// Unsubscribe removes the handler identified by a subscription token.
func (b *Bus) Unsubscribe(sub Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if handlers, ok := b.handlers[sub.eventType]; ok {
		delete(handlers, sub.id)
		if len(handlers) == 0 {
			delete(b.handlers, sub.eventType)
		}
	}
}

// Publish sends an event to all subscribed handlers
func (b *Bus) Publish(event Event) {
	b.mu.RLock()
	registered := b.handlers[event.GetType()]
	handlers := make([]Handler, 0, len(registered))
	for _, h := range registered {
		handlers = append(handlers, h)
	}
	b.mu.RUnlock()

	for _, handler := range handlers {
		handler(event)
	}
}

// ActorEvent describes a registry change: an actor entering or leaving a
// scene, or being destroyed.
type ActorEvent struct {
	BaseEvent
	ActorID uint64
	TypeTag string
}

// NewActorEvent creates an actor lifecycle event
func NewActorEvent(eventType Type, source interface{}, actorID uint64, typeTag string) *ActorEvent {
	return &ActorEvent{
		BaseEvent: BaseEvent{
			EventType: eventType,
			Source:    source,
		},
		ActorID: actorID,
		TypeTag: typeTag,
	}
}

// MovementEvent reports a ship starting a seek or reaching its target.
// For MovementStarted the coordinates are the target; for MovementArrived
// they are the ship's final position.
type MovementEvent struct {
	BaseEvent
	ActorID uint64
	X, Y    float64
}

// NewMovementEvent creates an arrival event
func NewMovementEvent(source interface{}, actorID uint64, x, y float64) *MovementEvent {
	return &MovementEvent{
		BaseEvent: BaseEvent{
			EventType: MovementArrived,
			Source:    source,
		},
		ActorID: actorID,
		X:       x,
		Y:       y,
	}
}

// NewMovementStartedEvent creates a departure event carrying the target.
func NewMovementStartedEvent(source interface{}, actorID uint64, targetX, targetY float64) *MovementEvent {
	return &MovementEvent{
		BaseEvent: BaseEvent{
			EventType: MovementStarted,
			Source:    source,
		},
		ActorID: actorID,
		X:       targetX,
		Y:       targetY,
	}
}

// GoalEvent reports an NPC switching goals.
type GoalEvent struct {
	BaseEvent
	ActorID      uint64
	PreviousGoal string
	CurrentGoal  string
}

// NewGoalEvent creates a goal transition event
func NewGoalEvent(source interface{}, actorID uint64, previous, current string) *GoalEvent {
	return &GoalEvent{
		BaseEvent: BaseEvent{
			EventType: GoalChanged,
			Source:    source,
		},
		ActorID:      actorID,
		PreviousGoal: previous,
		CurrentGoal:  current,
	}
}

// ThreatEvent reports an NPC's threat level crossing its alarm threshold.
type ThreatEvent struct {
	BaseEvent
	ActorID uint64
	Level   float64
}

// NewThreatEvent creates a threat spike event
func NewThreatEvent(source interface{}, actorID uint64, level float64) *ThreatEvent {
	return &ThreatEvent{
		BaseEvent: BaseEvent{
			EventType: ThreatDetected,
			Source:    source,
		},
		ActorID: actorID,
		Level:   level,
	}
}

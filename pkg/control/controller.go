// pkg/control/controller.go

// Package control exposes the movement façade UI and event code drive the
// simulation through. Every call resolves the player's ship via the scene
// and reports failure as false or nil; nothing here panics or raises
// across the boundary, so a failed command simply leaves the ship where
// it is.
package control

import (
	"context"

	"github.com/driftline/startrader/pkg/entity"
	"github.com/driftline/startrader/pkg/logging"
	"github.com/driftline/startrader/pkg/physics"
	"github.com/driftline/startrader/pkg/scene"
)

// PlayerTag is the scene type tag the player's ship is registered under.
const PlayerTag = "player"

// MovementStatus is a snapshot of the player ship's movement state.
type MovementStatus struct {
	IsMoving        bool
	Progress        float64
	CurrentPosition physics.Vector2D
	Name            string
}

// mover is the slice of the ship API the façade needs.
type mover interface {
	SetTarget(target physics.Vector2D)
	StopMovement()
	IsMoving() bool
	Progress() float64
	GetName() string
	GetPosition2D() physics.Vector2D
}

// MovementController translates high-level intents into actor target
// assignments.
type MovementController struct {
	scene    *scene.Scene
	stations entity.StationResolver
	logger   *logging.Logger
}

// NewMovementController creates a façade over a scene and a station
// resolver. The resolver may be nil; station moves then always fail.
func NewMovementController(s *scene.Scene, stations entity.StationResolver) *MovementController {
	return &MovementController{
		scene:    s,
		stations: stations,
		logger:   logging.NewLogger(),
	}
}

// MovePlayerShipToStation sends the player's ship to a station's
// coordinates. It returns false when the ship or the station cannot be
// resolved.
func (c *MovementController) MovePlayerShipToStation(stationID string) bool {
	ship, ok := c.playerShip()
	if !ok {
		return false
	}
	if c.stations == nil {
		return false
	}
	position, ok := c.stations.ResolveStation(stationID)
	if !ok {
		c.logger.Warn(context.Background(), "move command for unknown station",
			"station_id", stationID,
		)
		return false
	}
	ship.SetTarget(position)
	return true
}

// MovePlayerShipToCoordinates sends the player's ship to a raw plane
// coordinate.
func (c *MovementController) MovePlayerShipToCoordinates(x, y float64) bool {
	ship, ok := c.playerShip()
	if !ok {
		return false
	}
	ship.SetTarget(physics.Vector2D{X: x, Y: y})
	return true
}

// StopPlayerShipMovement halts the player's ship immediately.
func (c *MovementController) StopPlayerShipMovement() bool {
	ship, ok := c.playerShip()
	if !ok {
		return false
	}
	ship.StopMovement()
	return true
}

// PlayerShipMovementStatus returns a movement snapshot for UI panels, or
// nil when no player ship is registered.
func (c *MovementController) PlayerShipMovementStatus() *MovementStatus {
	ship, ok := c.playerShip()
	if !ok {
		return nil
	}
	return &MovementStatus{
		IsMoving:        ship.IsMoving(),
		Progress:        ship.Progress(),
		CurrentPosition: ship.GetPosition2D(),
		Name:            ship.GetName(),
	}
}

// playerShip resolves the first active actor tagged as the player that
// exposes the movement API.
func (c *MovementController) playerShip() (mover, bool) {
	for _, a := range c.scene.ActorsByType(PlayerTag) {
		if m, ok := a.(mover); ok {
			return m, true
		}
	}
	return nil, false
}

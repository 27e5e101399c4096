// pkg/render/renderer.go
package render

import (
	"context"

	"github.com/driftline/startrader/pkg/entity"
	"github.com/driftline/startrader/pkg/logging"
)

// NullRenderer is an entity.Renderer that only logs at debug level. It is
// the surface used in headless runs and tests.
type NullRenderer struct {
	logger *logging.Logger
}

// NewNullRenderer creates a NullRenderer with structured logging.
func NewNullRenderer() *NullRenderer {
	return &NullRenderer{
		logger: logging.NewLogger(),
	}
}

// Clear implements entity.Renderer.
func (d *NullRenderer) Clear() {}

// Present implements entity.Renderer.
func (d *NullRenderer) Present() {}

// RenderShip implements entity.Renderer.
func (d *NullRenderer) RenderShip(ship *entity.ShipActor) {
	if ship == nil {
		return
	}
	d.logger.Debug(context.Background(), "render ship",
		"id", uint64(ship.ID),
		"name", ship.Name,
		"moving", ship.IsMoving(),
	)
}

// RenderNPC implements entity.Renderer.
func (d *NullRenderer) RenderNPC(npc *entity.NPCActor) {
	if npc == nil {
		return
	}
	d.logger.Debug(context.Background(), "render npc",
		"id", uint64(npc.ID),
		"name", npc.Name,
		"goal", string(npc.Goal.Type),
	)
}

// pkg/entity/renderer.go
package entity

// Renderer is the drawing surface handed to actors. Implementations own
// camera, buffering, and presentation; actors only declare what they are.
type Renderer interface {
	RenderShip(ship *ShipActor)
	RenderNPC(npc *NPCActor)
	Clear()
	Present()
}

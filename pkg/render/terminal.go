// pkg/render/terminal.go
package render

import (
	"math"
	"strings"

	"github.com/driftline/startrader/pkg/entity"
	"github.com/driftline/startrader/pkg/physics"
)

// Glyphs used by the ASCII view.
const (
	glyphShipEast  = '>'
	glyphShipWest  = '<'
	glyphShipNorth = '^'
	glyphShipSouth = 'v'
	glyphNPC       = 'o'
	glyphStation   = '#'
)

// TerminalRenderer draws the scene as ASCII into an off-screen buffer.
// The caller positions the camera with SetCenter and reads the frame back
// with String after Present.
type TerminalRenderer struct {
	width     int
	height    int
	scale     float64 // world units per character cell
	centerPos physics.Vector2D
	buffer    [][]rune
}

// NewTerminalRenderer creates a renderer with the given character-grid
// dimensions and world scale.
func NewTerminalRenderer(width, height int, scale float64) *TerminalRenderer {
	buffer := make([][]rune, height)
	for i := range buffer {
		buffer[i] = make([]rune, width)
	}
	r := &TerminalRenderer{
		width:  width,
		height: height,
		scale:  scale,
		buffer: buffer,
	}
	r.Clear()
	return r
}

// SetCenter positions the camera on a world coordinate.
func (r *TerminalRenderer) SetCenter(pos physics.Vector2D) {
	r.centerPos = pos
}

// worldToScreen converts world coordinates to buffer coordinates.
func (r *TerminalRenderer) worldToScreen(pos physics.Vector2D) (int, int) {
	screenX := int((pos.X-r.centerPos.X)/r.scale + float64(r.width)/2)
	screenY := int((pos.Y-r.centerPos.Y)/r.scale + float64(r.height)/2)
	return screenX, screenY
}

func (r *TerminalRenderer) plot(pos physics.Vector2D, glyph rune) {
	x, y := r.worldToScreen(pos)
	if x < 0 || x >= r.width || y < 0 || y >= r.height {
		return
	}
	r.buffer[y][x] = glyph
}

// Clear implements entity.Renderer.
func (r *TerminalRenderer) Clear() {
	for y := range r.buffer {
		for x := range r.buffer[y] {
			r.buffer[y][x] = ' '
		}
	}
}

// Present implements entity.Renderer. The frame stays in the buffer for
// String; nothing is written to the terminal here.
func (r *TerminalRenderer) Present() {}

// RenderShip implements entity.Renderer, picking a glyph from the ship's
// heading quadrant.
func (r *TerminalRenderer) RenderShip(ship *entity.ShipActor) {
	if ship == nil {
		return
	}
	r.plot(ship.GetPosition2D(), headingGlyph(ship.GetRotation()))
}

// RenderNPC implements entity.Renderer.
func (r *TerminalRenderer) RenderNPC(npc *entity.NPCActor) {
	if npc == nil {
		return
	}
	r.plot(npc.GetPosition2D(), glyphNPC)
}

// PlotStation marks a station on the frame. Stations are world data, not
// actors, so the caller plots them between Clear and Present.
func (r *TerminalRenderer) PlotStation(pos physics.Vector2D) {
	r.plot(pos, glyphStation)
}

// String returns the current frame, one row per line.
func (r *TerminalRenderer) String() string {
	var sb strings.Builder
	for y := range r.buffer {
		sb.WriteString(string(r.buffer[y]))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// headingGlyph maps a heading to a cardinal arrow.
func headingGlyph(rotation float64) rune {
	angle := physics.NormalizeAngle(rotation)
	switch {
	case angle >= -math.Pi/4 && angle < math.Pi/4:
		return glyphShipEast
	case angle >= math.Pi/4 && angle < 3*math.Pi/4:
		return glyphShipNorth
	case angle >= -3*math.Pi/4 && angle < -math.Pi/4:
		return glyphShipSouth
	default:
		return glyphShipWest
	}
}

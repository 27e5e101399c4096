package render

import (
	"math"
	"strings"
	"testing"

	"github.com/driftline/startrader/pkg/ai"
	"github.com/driftline/startrader/pkg/entity"
	"github.com/driftline/startrader/pkg/physics"
)

func TestHeadingGlyph(t *testing.T) {
	tests := []struct {
		name     string
		rotation float64
		want     rune
	}{
		{"east", 0, glyphShipEast},
		{"north", math.Pi / 2, glyphShipNorth},
		{"west", math.Pi, glyphShipWest},
		{"south", -math.Pi / 2, glyphShipSouth},
		{"wraps past full turn", 2 * math.Pi, glyphShipEast},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := headingGlyph(tt.rotation); got != tt.want {
				t.Errorf("headingGlyph(%f) = %q, want %q", tt.rotation, got, tt.want)
			}
		})
	}
}

func TestTerminalRenderer_PlotsCenteredShip(t *testing.T) {
	r := NewTerminalRenderer(20, 10, 1)
	ship := entity.NewShipActor(entity.GenerateID(), "ship", entity.Clipper, physics.Vector2D{X: 100, Y: 100})
	r.SetCenter(ship.GetPosition2D())

	r.Clear()
	r.RenderShip(ship)
	r.Present()

	frame := r.String()
	if !strings.ContainsRune(frame, glyphShipEast) {
		t.Errorf("centered ship not in frame:\n%s", frame)
	}
}

func TestTerminalRenderer_OffScreenIsDropped(t *testing.T) {
	r := NewTerminalRenderer(20, 10, 1)
	r.SetCenter(physics.Vector2D{})

	// Far outside the 20x10 window at scale 1; plotting must not panic
	// and must leave the frame blank.
	r.PlotStation(physics.Vector2D{X: 1000, Y: 1000})
	r.PlotStation(physics.Vector2D{X: -1000, Y: 0})

	if strings.ContainsRune(r.String(), glyphStation) {
		t.Error("off-screen station plotted")
	}
}

func TestTerminalRenderer_ClearWipesFrame(t *testing.T) {
	r := NewTerminalRenderer(20, 10, 1)
	r.PlotStation(physics.Vector2D{})

	r.Clear()

	if strings.ContainsRune(r.String(), glyphStation) {
		t.Error("Clear left a station glyph in the frame")
	}
}

func TestTerminalRenderer_ScaleMapsWorldToCells(t *testing.T) {
	r := NewTerminalRenderer(20, 10, 50)
	r.SetCenter(physics.Vector2D{})

	// 100 world units east is 2 cells at scale 50: inside the window.
	r.PlotStation(physics.Vector2D{X: 100, Y: 0})
	if !strings.ContainsRune(r.String(), glyphStation) {
		t.Error("station within the scaled window not plotted")
	}
}

func TestTerminalRenderer_RenderNPC(t *testing.T) {
	r := NewTerminalRenderer(20, 10, 1)
	r.SetCenter(physics.Vector2D{})

	ship := entity.NewShipActor(entity.GenerateID(), "npc", entity.Freighter, physics.Vector2D{})
	npc := entity.NewNPCActor(ship, ai.PersonalityByName("trader"), ai.SkillsByName("trader"), nil)
	r.RenderNPC(npc)

	if !strings.ContainsRune(r.String(), glyphNPC) {
		t.Error("NPC glyph missing from frame")
	}
}

func TestTerminalRenderer_NilActorsAreIgnored(t *testing.T) {
	r := NewTerminalRenderer(20, 10, 1)
	r.RenderShip(nil)
	r.RenderNPC(nil)
}

func TestTerminalRenderer_FrameShape(t *testing.T) {
	r := NewTerminalRenderer(12, 4, 1)
	lines := strings.Split(strings.TrimRight(r.String(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("frame has %d rows, want 4", len(lines))
	}
	for i, line := range lines {
		if len([]rune(line)) != 12 {
			t.Errorf("row %d has %d cells, want 12", i, len([]rune(line)))
		}
	}
}

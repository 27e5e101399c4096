// pkg/render/tcell.go
package render

import (
	"github.com/gdamore/tcell/v2"

	"github.com/driftline/startrader/pkg/entity"
	"github.com/driftline/startrader/pkg/logging"
	"github.com/driftline/startrader/pkg/physics"
)

// TcellRenderer is a live terminal viewer built on tcell. It implements
// entity.Renderer with the same camera model as TerminalRenderer but
// draws straight onto a real screen with per-kind colors.
type TcellRenderer struct {
	screen    tcell.Screen
	scale     float64
	centerPos physics.Vector2D
	logger    *logging.Logger

	shipStyle    tcell.Style
	npcStyle     tcell.Style
	stationStyle tcell.Style
}

// NewTcellRenderer allocates and initializes a screen. The caller owns
// the renderer and must Close it to restore the terminal.
func NewTcellRenderer(scale float64) (*TcellRenderer, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, logging.WrapError(err, "failed to allocate screen")
	}
	if err := screen.Init(); err != nil {
		return nil, logging.WrapError(err, "failed to initialize screen")
	}
	screen.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack))

	return &TcellRenderer{
		screen:       screen,
		scale:        scale,
		logger:       logging.NewLogger(),
		shipStyle:    tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true),
		npcStyle:     tcell.StyleDefault.Foreground(tcell.ColorAqua),
		stationStyle: tcell.StyleDefault.Foreground(tcell.ColorYellow),
	}, nil
}

// Close restores the terminal.
func (r *TcellRenderer) Close() {
	r.screen.Fini()
}

// SetCenter positions the camera on a world coordinate.
func (r *TcellRenderer) SetCenter(pos physics.Vector2D) {
	r.centerPos = pos
}

// PollQuit reports whether a quit key (ESC, q, Ctrl-C) is pending. It
// drains at most one event per call so the render loop stays in charge.
func (r *TcellRenderer) PollQuit() bool {
	if !r.screen.HasPendingEvent() {
		return false
	}
	switch ev := r.screen.PollEvent().(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC || ev.Rune() == 'q' {
			return true
		}
	case *tcell.EventResize:
		r.screen.Sync()
	}
	return false
}

func (r *TcellRenderer) worldToScreen(pos physics.Vector2D) (int, int) {
	width, height := r.screen.Size()
	screenX := int((pos.X-r.centerPos.X)/r.scale + float64(width)/2)
	screenY := int((pos.Y-r.centerPos.Y)/r.scale + float64(height)/2)
	return screenX, screenY
}

func (r *TcellRenderer) plot(pos physics.Vector2D, glyph rune, style tcell.Style) {
	x, y := r.worldToScreen(pos)
	width, height := r.screen.Size()
	if x < 0 || x >= width || y < 0 || y >= height {
		return
	}
	r.screen.SetContent(x, y, glyph, nil, style)
}

// Clear implements entity.Renderer.
func (r *TcellRenderer) Clear() {
	r.screen.Clear()
}

// Present implements entity.Renderer.
func (r *TcellRenderer) Present() {
	r.screen.Show()
}

// RenderShip implements entity.Renderer.
func (r *TcellRenderer) RenderShip(ship *entity.ShipActor) {
	if ship == nil {
		return
	}
	r.plot(ship.GetPosition2D(), headingGlyph(ship.GetRotation()), r.shipStyle)
}

// RenderNPC implements entity.Renderer.
func (r *TcellRenderer) RenderNPC(npc *entity.NPCActor) {
	if npc == nil {
		return
	}
	r.plot(npc.GetPosition2D(), glyphNPC, r.npcStyle)
}

// PlotStation marks a station on the screen.
func (r *TcellRenderer) PlotStation(pos physics.Vector2D) {
	r.plot(pos, glyphStation, r.stationStyle)
}

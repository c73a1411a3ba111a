package sokoban

import (
	platformcore "github.com/vovakirdan/tui-sokoban/internal/core"
	"github.com/vovakirdan/tui-sokoban/internal/games/sokoban/core"
)

// Screen texts, translated through the catalog.
const (
	textLevel    = "Level %d of %d"
	textStats    = "Moves: %d  Pushes: %d"
	textComplete = "Level complete! Press any key to continue."
	textFinished = "Congratulations, you finished the last level!"
	textQuit     = "Press any key to quit."
	textTooSmall = "Window too small"
	textNoLevel  = "No level loaded"
)

// Render draws the game to the screen.
func (g *Game) Render(dst *platformcore.Screen) {
	dst.Clear()
	g.screenW, g.screenH = dst.Width(), dst.Height()

	if g.ctrl == nil {
		g.renderHUD(dst, Snapshot{Levels: g.pack.Len()})
		return
	}

	var board *core.Board
	g.ctrl.Do(func(l *core.Level) {
		if l.Loaded() {
			g.calculateLayout(l.Width(), l.Height())
			g.renderBoard(dst, l.Board())
			board = l.Board()
		}
	})
	s := g.ctrl.Snapshot()

	g.renderHUD(dst, s)
	g.renderFooter(dst, s)

	switch {
	case board == nil:
		msg := textNoLevel
		if s.Error != "" {
			msg = s.Error
		}
		dst.DrawTextCentered(dst.Height()/2, msg, platformcore.ColorRed)
	case g.tooSmall:
		dst.DrawTextCentered(dst.Height()/2, g.catalog.T(textTooSmall), platformcore.ColorRed)
	}
}

// calculateLayout centers the board below the HUD.
func (g *Game) calculateLayout(w, h int) {
	availW := g.screenW
	availH := g.screenH - hudHeight - footerHeight

	g.cellW = 2
	if w*g.cellW > availW {
		g.cellW = 1
	}

	if w*g.cellW > availW || h > availH {
		g.tooSmall = true
		return
	}
	g.tooSmall = false

	g.offsetX = (availW - w*g.cellW) / 2
	g.offsetY = hudHeight + (availH-h)/2
}

// renderHUD draws the title bar.
func (g *Game) renderHUD(dst *platformcore.Screen, s Snapshot) {
	hud := " " + g.Title()
	if s.Level > 0 {
		hud += " | " + g.catalog.T(textLevel, s.Level, s.Levels)
		if s.Name != "" {
			hud += ": " + s.Name
		}
	}
	dst.DrawTextColored(0, 0, hud, platformcore.ColorCyan)

	for x := 0; x < dst.Width(); x++ {
		dst.SetColored(x, 1, '─', platformcore.ColorGray)
	}
}

// renderFooter draws the prompt, status message, counters and help.
func (g *Game) renderFooter(dst *platformcore.Screen, s Snapshot) {
	y := dst.Height() - footerHeight

	switch {
	case s.Finished:
		dst.DrawTextCentered(y, g.catalog.T(textFinished)+" "+g.catalog.T(textQuit), platformcore.ColorBrightGreen)
	case s.Complete:
		dst.DrawTextCentered(y, g.catalog.T(textComplete), platformcore.ColorBrightGreen)
	}

	if s.Message != "" {
		dst.DrawTextColored(1, y+1, s.Message, platformcore.ColorYellow)
	}
	if s.Level > 0 {
		dst.DrawTextColored(1, y+2, g.catalog.T(textStats, s.Moves, s.Pushes), platformcore.ColorWhite)
	}
	dst.DrawTextColored(1, y+3, g.catalog.T(Help), platformcore.ColorGray)
}

// renderBoard draws every cell of b at the current layout.
func (g *Game) renderBoard(dst *platformcore.Screen, b *core.Board) {
	if g.tooSmall {
		return
	}
	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			r, c := cellGlyph(b, core.V(x, y))
			sx := g.offsetX + x*g.cellW
			sy := g.offsetY + y
			dst.SetColored(sx, sy, r, c)
			if g.cellW > 1 {
				fill := ' '
				if r == '█' {
					fill = r
				}
				dst.SetColored(sx+1, sy, fill, c)
			}
		}
	}
}

// cellGlyph picks the character and color of a board cell.
func cellGlyph(b *core.Board, p core.Vector) (rune, platformcore.Color) {
	r := b.Rune(p)
	switch r {
	case '@', '+':
		return r, platformcore.ColorBrightYellow
	case '$':
		return r, platformcore.ColorOrange
	case '*':
		return r, platformcore.ColorBrightGreen
	case 'R':
		return r, platformcore.ColorGray
	}

	switch t := b.TileAt(p).(type) {
	case *core.Wall:
		return '█', platformcore.ColorBlue
	case *core.Target:
		return r, platformcore.ColorRed
	case *core.CrackedFloor:
		if t.Remaining() == 0 {
			return r, platformcore.ColorBrown
		}
		return r, platformcore.ColorYellow
	case *core.Rutting:
		return r, platformcore.ColorBrown
	case *core.Door:
		if t.Open() {
			return r, platformcore.ColorGreen
		}
		return r, platformcore.ColorMagenta
	case *core.Button:
		return r, platformcore.ColorCyan
	case *core.Teleporter:
		if t.Blocked() {
			return r, platformcore.ColorGray
		}
		return r, platformcore.ColorBrightRed
	}
	return r, platformcore.ColorDefault
}

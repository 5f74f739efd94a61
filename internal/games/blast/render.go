package blast

import (
	"fmt"
	"time"

	"github.com/vovakirdan/blockblast/internal/core"
)

const (
	cellW    = 2  // screen columns per grid cell
	hudW     = 20 // width of the stats column
	hudGap   = 3
	titleRow = 0
	boardTop = 2
)

// layout holds screen coordinates derived from the grid size and the
// largest catalog piece.
type layout struct {
	board    core.Rect // including the border
	hudX     int
	trayY    int
	slotW    int
	piece    int
	previewX int
	width    int
	height   int
}

func (g *Game) layout() layout {
	size := g.engine.Grid().Size()
	piece := g.pieceSize()

	var l layout
	l.piece = piece
	l.slotW = piece*cellW + 2
	boardW := size*cellW + 2
	trayW := len(g.engine.Available())*l.slotW + 2 + len(g.engine.Preview())*(piece+1)
	l.width = max(boardW+hudGap+hudW, trayW)

	left := max((g.screenW-l.width)/2, 0)
	l.board = core.NewRect(left, boardTop, boardW, size+2)
	l.hudX = l.board.Right() + hudGap
	l.trayY = l.board.Bottom() + 1
	l.previewX = left + len(g.engine.Available())*l.slotW + 2
	l.height = l.trayY + 1 + piece
	return l
}

// pieceSize is the largest side of any catalog shape.
func (g *Game) pieceSize() int {
	n := 1
	for _, s := range g.engine.gen.Shapes() {
		n = max(n, len(s.Cells), len(s.Cells[0]))
	}
	return n
}

func (g *Game) checkScreenSize() {
	if g.engine == nil {
		return
	}
	l := g.layout()
	g.tooSmall = g.screenW < l.width || g.screenH < l.height
}

// CellScreenPos returns the screen position of the left half of grid cell p.
func (g *Game) CellScreenPos(p core.Position) (x, y int) {
	l := g.layout()
	return l.board.X + 1 + p.X*cellW, l.board.Y + 1 + p.Y
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	l := g.layout()
	dst.DrawTextCentered(titleRow, g.Title(), core.ColorBrightCyan)
	g.renderBoard(dst, l)
	g.renderGhost(dst, l)
	g.renderHUD(dst, l)
	g.renderTray(dst, l)
	g.renderPreview(dst, l)
	g.renderOverlays(dst, l)
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *core.Screen) {
	l := g.layout()
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small", core.ColorDefault)
	dst.DrawTextCentered(y+1, fmt.Sprintf("Need %dx%d", l.width, l.height), core.ColorGray)
}

func (g *Game) renderBoard(dst *core.Screen, l layout) {
	dst.DrawBox(l.board, core.ColorGray)

	grid := g.engine.Grid()
	for y := 0; y < grid.Size(); y++ {
		for x := 0; x < grid.Size(); x++ {
			p := core.Pos(x, y)
			sx, sy := l.board.X+1+x*cellW, l.board.Y+1+y
			if c := grid.CellAt(p); c.Filled() {
				dst.DrawTextWithColor(sx, sy, "[]", c.Color)
			} else {
				dst.DrawTextWithColor(sx, sy, " .", core.ColorGray)
			}
		}
	}
}

// renderGhost previews the selected block at the cursor: green where it
// fits, red where it does not. Without a usable block only the cursor shows.
func (g *Game) renderGhost(dst *core.Screen, l layout) {
	if g.engine.Status() != StatusActive {
		return
	}
	grid := g.engine.Grid()
	sx, sy := l.board.X+1+g.cursor.X*cellW, l.board.Y+1+g.cursor.Y

	tray := g.engine.Available()
	if g.selected >= len(tray) || tray[g.selected].Used() {
		dst.DrawTextWithColor(sx, sy, "<>", core.ColorBrightWhite)
		return
	}

	b := tray[g.selected]
	color := core.ColorBrightGreen
	if !grid.CanPlaceBlock(b, g.cursor) {
		color = core.ColorBrightRed
	}
	for _, rel := range b.FilledPositions() {
		p := g.cursor.Add(rel)
		if !grid.IsPositionValid(p) {
			continue
		}
		dst.DrawTextWithColor(l.board.X+1+p.X*cellW, l.board.Y+1+p.Y, "[]", color)
	}
}

func (g *Game) renderHUD(dst *core.Screen, l layout) {
	s := g.engine.Summary()
	y := l.board.Y

	line := func(label, value string, c core.Color) {
		dst.DrawTextWithColor(l.hudX, y, fmt.Sprintf("%-7s%s", label, value), c)
		y++
	}

	line("Score", fmt.Sprintf("%d", s.Score), core.ColorBrightWhite)
	line("High", fmt.Sprintf("%d", s.HighScore), core.ColorYellow)
	line("Level", fmt.Sprintf("%d", s.Level), core.ColorDefault)
	if s.LinesToNext > 0 {
		line("Lines", fmt.Sprintf("%d (+%d)", s.LinesCleared, s.LinesToNext), core.ColorDefault)
	} else {
		line("Lines", fmt.Sprintf("%d", s.LinesCleared), core.ColorDefault)
	}
	line("Blocks", fmt.Sprintf("%d", s.BlocksPlaced), core.ColorDefault)

	comboColor := core.ColorDefault
	if s.Combo >= 2 {
		comboColor = core.ColorBrightMagenta
	}
	line("Combo", fmt.Sprintf("x%d", s.Combo), comboColor)

	switch s.Mode {
	case ModeTimed:
		timeColor := core.ColorDefault
		if s.TimeRemaining < 30*time.Second {
			timeColor = core.ColorBrightRed
		}
		line("Time", formatClock(s.TimeRemaining), timeColor)
	case ModeChallenge:
		line("Target", fmt.Sprintf("%d", s.TargetScore), core.ColorCyan)
	}

	if s.PerfectStreak > 0 {
		line("Streak", fmt.Sprintf("%d", s.PerfectStreak), core.ColorBrightYellow)
	}
	if s.LastClearScore > 0 {
		line("Last", fmt.Sprintf("+%d", s.LastClearScore), core.ColorBrightGreen)
	}
}

// formatClock renders d as m:ss, rounding up partial seconds.
func formatClock(d time.Duration) string {
	secs := int((d + time.Second - 1) / time.Second)
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}

func (g *Game) renderTray(dst *core.Screen, l layout) {
	for i, b := range g.engine.Available() {
		x := l.board.X + i*l.slotW

		label := fmt.Sprintf(" %d ", i+1)
		labelColor := core.ColorGray
		if i == g.selected && !b.Used() {
			label = fmt.Sprintf(">%d<", i+1)
			labelColor = core.ColorBrightYellow
		}
		dst.DrawTextWithColor(x, l.trayY, label, labelColor)

		if b.Used() {
			dst.DrawTextWithColor(x, l.trayY+1, "--", core.ColorGray)
			continue
		}
		for _, p := range b.FilledPositions() {
			if p.X >= l.piece || p.Y >= l.piece {
				continue
			}
			dst.DrawTextWithColor(x+p.X*cellW, l.trayY+1+p.Y, "[]", b.Color())
		}
	}
}

func (g *Game) renderPreview(dst *core.Screen, l layout) {
	preview := g.engine.Preview()
	if len(preview) == 0 {
		return
	}
	dst.DrawTextWithColor(l.previewX, l.trayY, "Next", core.ColorGray)
	for i, b := range preview {
		x := l.previewX + i*(l.piece+1)
		for _, p := range b.FilledPositions() {
			if p.X >= l.piece || p.Y >= l.piece {
				continue
			}
			dst.SetWithColor(x+p.X, l.trayY+1+p.Y, '■', b.Color())
		}
	}
}

// renderOverlays draws pause and game over boxes over the board.
func (g *Game) renderOverlays(dst *core.Screen, l layout) {
	switch g.engine.Status() {
	case StatusPaused:
		g.drawOverlay(dst, l, core.ColorYellow, "PAUSED", "Press P to resume")
	case StatusGameOver:
		title := "GAME OVER"
		if g.engine.Completed() {
			switch g.mode {
			case ModeTimed:
				title = "TIME UP"
			case ModeChallenge:
				title = "TARGET REACHED"
			}
		}
		score := fmt.Sprintf("Score: %d", g.engine.Score())
		g.drawOverlay(dst, l, core.ColorBrightRed, title, score, "Press R to restart")
	}
}

// drawOverlay draws a boxed block of centered lines over the board.
func (g *Game) drawOverlay(dst *core.Screen, l layout, c core.Color, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		maxLen = max(maxLen, len([]rune(line)))
	}
	w := maxLen + 4
	h := len(lines) + 2
	x := l.board.X + (l.board.W-w)/2
	y := l.board.Y + (l.board.H-h)/2

	box := core.NewRect(x, y, w, h)
	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, c)
	for i, line := range lines {
		lx := x + (w-len([]rune(line)))/2
		dst.DrawTextWithColor(lx, y+1+i, line, c)
	}
}

package blast

import (
	"testing"
	"time"

	"github.com/vovakirdan/blockblast/internal/config"
	"github.com/vovakirdan/blockblast/internal/core"
)

var testEpoch = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return testEpoch }

// shapeOf parses rows of '#' and '.' into a shape matrix.
func shapeOf(rows ...string) [][]int {
	m := make([][]int, len(rows))
	for y, row := range rows {
		m[y] = make([]int, len(row))
		for x, ch := range row {
			if ch == '#' {
				m[y][x] = 1
			}
		}
	}
	return m
}

func mustBlock(t *testing.T, id string, rows ...string) *Block {
	t.Helper()
	b, err := NewBlock(shapeOf(rows...), core.ColorBlue, id)
	if err != nil {
		t.Fatalf("NewBlock(%v) failed: %v", rows, err)
	}
	return b
}

func fill(g *Grid, ps ...core.Position) {
	for _, p := range ps {
		g.cells[p.Y][p.X] = Cell{State: CellFilled, Color: core.ColorRed, BlockID: "fixture"}
	}
}

// fillRowExcept fills row y apart from the listed columns.
func fillRowExcept(g *Grid, y int, skip ...int) {
	skipped := make(map[int]bool)
	for _, x := range skip {
		skipped[x] = true
	}
	for x := 0; x < g.Size(); x++ {
		if !skipped[x] {
			fill(g, core.Pos(x, y))
		}
	}
}

func newTestEngine(t *testing.T, mode Mode, mutate ...func(*config.BlastConfig)) *Engine {
	t.Helper()
	cfg := config.DefaultBlastConfig()
	for _, m := range mutate {
		m(&cfg)
	}
	e, err := NewEngine(cfg, mode, WithSeed(42), WithClock(fixedClock))
	if err != nil {
		t.Fatalf("NewEngine() failed: %v", err)
	}
	return e
}

// setTray replaces the tray with the given blocks.
func (e *Engine) setTray(blocks ...*Block) {
	e.available = blocks
}

type eventLog struct {
	events []Event
}

func (l *eventLog) HandleEvent(ev Event) { l.events = append(l.events, ev) }

func (l *eventLog) count(match func(Event) bool) int {
	n := 0
	for _, ev := range l.events {
		if match(ev) {
			n++
		}
	}
	return n
}

package blast

import (
	"strings"

	"github.com/vovakirdan/blockblast/internal/core"
)

// CellState is the occupancy of a grid cell.
type CellState uint8

const (
	CellEmpty CellState = iota
	CellFilled
)

// Cell is one square of the board.
type Cell struct {
	State   CellState
	Color   core.Color
	BlockID string
}

// Filled reports whether the cell is occupied.
func (c Cell) Filled() bool { return c.State == CellFilled }

// LineClearResult describes one clearing pass.
type LineClearResult struct {
	// LinesCleared counts rows plus columns. A cell shared by a cleared row
	// and a cleared column counts toward both.
	LinesCleared int
	Positions    []core.Position // every emptied cell, once
	Rows         []int
	Columns      []int
	Combo        int // combo counter after this pass; 0 when nothing cleared
}

// Grid is a square board of cells with the combo and line counters that
// belong to it.
type Grid struct {
	size       int
	cells      [][]Cell
	combo      int
	totalLines int
}

// NewGrid creates an empty size x size grid.
func NewGrid(size int) *Grid {
	g := &Grid{size: max(size, 0)}
	g.cells = make([][]Cell, g.size)
	for y := range g.cells {
		g.cells[y] = make([]Cell, g.size)
	}
	return g
}

// Size returns the side length.
func (g *Grid) Size() int { return g.size }

// Combo returns the running combo counter.
func (g *Grid) Combo() int { return g.combo }

// TotalLinesCleared returns lines cleared since the grid was created or reset.
func (g *Grid) TotalLinesCleared() int { return g.totalLines }

// IsPositionValid reports whether p lies on the board.
func (g *Grid) IsPositionValid(p core.Position) bool {
	return p.X >= 0 && p.X < g.size && p.Y >= 0 && p.Y < g.size
}

// CellAt returns the cell at p, or an empty cell when p is off the board.
func (g *Grid) CellAt(p core.Position) Cell {
	if !g.IsPositionValid(p) {
		return Cell{}
	}
	return g.cells[p.Y][p.X]
}

// IsFilledAt reports whether p is on the board and occupied.
func (g *Grid) IsFilledAt(p core.Position) bool {
	return g.IsPositionValid(p) && g.cells[p.Y][p.X].Filled()
}

// IsEmptyAt reports whether p is on the board and free.
func (g *Grid) IsEmptyAt(p core.Position) bool {
	return g.IsPositionValid(p) && !g.cells[p.Y][p.X].Filled()
}

// CanPlaceBlock reports whether every filled cell of b, translated to target,
// lands on an empty board cell. Used blocks never fit.
func (g *Grid) CanPlaceBlock(b *Block, target core.Position) bool {
	if b == nil || b.Used() {
		return false
	}
	for _, rel := range b.FilledPositions() {
		if !g.IsEmptyAt(target.Add(rel)) {
			return false
		}
	}
	return true
}

// PlaceBlock fills the block's cells at target and marks it used. It either
// succeeds completely or leaves the grid and block untouched.
func (g *Grid) PlaceBlock(b *Block, target core.Position) bool {
	if !g.CanPlaceBlock(b, target) {
		return false
	}
	for _, rel := range b.FilledPositions() {
		p := target.Add(rel)
		g.cells[p.Y][p.X] = Cell{State: CellFilled, Color: b.Color(), BlockID: b.ID()}
	}
	b.MarkUsed()
	return true
}

// CompletedLines returns the indices of fully filled rows and columns.
func (g *Grid) CompletedLines() (rows, cols []int) {
	for y := 0; y < g.size; y++ {
		full := true
		for x := 0; x < g.size && full; x++ {
			full = g.cells[y][x].Filled()
		}
		if full {
			rows = append(rows, y)
		}
	}
	for x := 0; x < g.size; x++ {
		full := true
		for y := 0; y < g.size && full; y++ {
			full = g.cells[y][x].Filled()
		}
		if full {
			cols = append(cols, x)
		}
	}
	return rows, cols
}

// ClearCompletedLines empties every completed row and column in one pass
// and updates the combo and line counters.
func (g *Grid) ClearCompletedLines() LineClearResult {
	rows, cols := g.CompletedLines()
	res := LineClearResult{
		LinesCleared: len(rows) + len(cols),
		Rows:         rows,
		Columns:      cols,
	}

	if res.LinesCleared == 0 {
		g.combo = 0
		return res
	}

	seen := make(map[core.Position]bool)
	mark := func(p core.Position) {
		if seen[p] {
			return
		}
		seen[p] = true
		res.Positions = append(res.Positions, p)
	}
	for _, y := range rows {
		for x := 0; x < g.size; x++ {
			mark(core.Pos(x, y))
		}
	}
	for _, x := range cols {
		for y := 0; y < g.size; y++ {
			mark(core.Pos(x, y))
		}
	}
	for _, p := range res.Positions {
		g.cells[p.Y][p.X] = Cell{}
	}

	g.combo++
	g.totalLines += res.LinesCleared
	res.Combo = g.combo
	return res
}

// IsEmpty reports whether no cell is filled.
func (g *Grid) IsEmpty() bool {
	return g.FilledCount() == 0
}

// IsFull reports whether every cell is filled.
func (g *Grid) IsFull() bool {
	return g.FilledCount() == g.size*g.size
}

// FilledCount returns the number of occupied cells.
func (g *Grid) FilledCount() int {
	n := 0
	for y := range g.cells {
		for x := range g.cells[y] {
			if g.cells[y][x].Filled() {
				n++
			}
		}
	}
	return n
}

// FilledPositions returns the occupied cells, row-major.
func (g *Grid) FilledPositions() []core.Position {
	return g.positions(true)
}

// EmptyPositions returns the free cells, row-major.
func (g *Grid) EmptyPositions() []core.Position {
	return g.positions(false)
}

func (g *Grid) positions(filled bool) []core.Position {
	var out []core.Position
	for y := range g.cells {
		for x := range g.cells[y] {
			if g.cells[y][x].Filled() == filled {
				out = append(out, core.Pos(x, y))
			}
		}
	}
	return out
}

// Occupied returns the set of filled positions.
func (g *Grid) Occupied() map[core.Position]bool {
	occ := make(map[core.Position]bool)
	for _, p := range g.FilledPositions() {
		occ[p] = true
	}
	return occ
}

// PossiblePlacements returns every target position where b fits.
func (g *Grid) PossiblePlacements(b *Block) []core.Position {
	var out []core.Position
	for y := 0; y < g.size; y++ {
		for x := 0; x < g.size; x++ {
			if g.CanPlaceBlock(b, core.Pos(x, y)) {
				out = append(out, core.Pos(x, y))
			}
		}
	}
	return out
}

// ClearAll empties every cell and breaks the combo. Lines cleared so far
// are kept.
func (g *Grid) ClearAll() {
	for y := range g.cells {
		for x := range g.cells[y] {
			g.cells[y][x] = Cell{}
		}
	}
	g.combo = 0
}

// Reset returns the grid to its freshly created state.
func (g *Grid) Reset() {
	g.ClearAll()
	g.totalLines = 0
}

// Clone returns a deep copy.
func (g *Grid) Clone() *Grid {
	c := NewGrid(g.size)
	for y := range g.cells {
		copy(c.cells[y], g.cells[y])
	}
	c.combo = g.combo
	c.totalLines = g.totalLines
	return c
}

// Equal compares cells and counters.
func (g *Grid) Equal(other *Grid) bool {
	if other == nil || g.size != other.size || g.combo != other.combo || g.totalLines != other.totalLines {
		return false
	}
	for y := range g.cells {
		for x := range g.cells[y] {
			if g.cells[y][x] != other.cells[y][x] {
				return false
			}
		}
	}
	return true
}

// GridStats summarizes board occupancy.
type GridStats struct {
	Size        int
	Filled      int
	Empty       int
	FillPercent float64
	Colors      map[core.Color]int
}

// Stats computes occupancy and the color distribution of filled cells.
func (g *Grid) Stats() GridStats {
	st := GridStats{Size: g.size, Colors: make(map[core.Color]int)}
	for y := range g.cells {
		for x := range g.cells[y] {
			if c := g.cells[y][x]; c.Filled() {
				st.Filled++
				st.Colors[c.Color]++
			}
		}
	}
	total := g.size * g.size
	st.Empty = total - st.Filled
	if total > 0 {
		st.FillPercent = float64(st.Filled) * 100 / float64(total)
	}
	return st
}

// String draws the board with '#' and '.', one row per line.
func (g *Grid) String() string {
	var sb strings.Builder
	for y := range g.cells {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for x := range g.cells[y] {
			if g.cells[y][x].Filled() {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
	}
	return sb.String()
}

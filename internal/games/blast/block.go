// Package blast implements Block Blast: a single-player puzzle where blocks
// from a small tray are placed on a square grid, and every completed row or
// column is cleared for points. The package holds the pure game logic
// (Block, Grid, Generator, Engine) plus the registry.Game adapter that the
// terminal platform drives.
package blast

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/blockblast/internal/core"
)

// InvalidShapeError is returned when a block is built from a malformed shape.
type InvalidShapeError struct {
	Reason string
}

func (e *InvalidShapeError) Error() string {
	return "blast: invalid shape: " + e.Reason
}

// Block is a placeable piece: a rectangular 0/1 shape with a color.
// Rotation replaces the shape matrix; placement latches the used flag.
type Block struct {
	id       string
	shape    [][]int
	color    core.Color
	used     bool
	rotation int // degrees, one of 0, 90, 180, 270
}

// NewBlock validates and copies shape into a new unused block.
func NewBlock(shape [][]int, color core.Color, id string) (*Block, error) {
	if err := validateShape(shape); err != nil {
		return nil, err
	}
	return &Block{
		id:    id,
		shape: copyShape(shape),
		color: color,
	}, nil
}

func validateShape(shape [][]int) error {
	if len(shape) == 0 || len(shape[0]) == 0 {
		return &InvalidShapeError{Reason: "empty"}
	}
	width := len(shape[0])
	filled := 0
	for y, row := range shape {
		if len(row) != width {
			return &InvalidShapeError{Reason: fmt.Sprintf("row %d has %d cells, expected %d", y, len(row), width)}
		}
		for _, v := range row {
			switch v {
			case 0:
			case 1:
				filled++
			default:
				return &InvalidShapeError{Reason: fmt.Sprintf("value %d in row %d", v, y)}
			}
		}
	}
	if filled == 0 {
		return &InvalidShapeError{Reason: "no filled cells"}
	}
	return nil
}

func copyShape(shape [][]int) [][]int {
	out := make([][]int, len(shape))
	for y, row := range shape {
		out[y] = append([]int(nil), row...)
	}
	return out
}

// ID returns the block's unique identifier.
func (b *Block) ID() string { return b.id }

// Color returns the block color.
func (b *Block) Color() core.Color { return b.color }

// Shape returns a copy of the current (rotated) shape matrix.
func (b *Block) Shape() [][]int { return copyShape(b.shape) }

// Width returns the number of columns in the shape.
func (b *Block) Width() int { return len(b.shape[0]) }

// Height returns the number of rows in the shape.
func (b *Block) Height() int { return len(b.shape) }

// Rotation returns the rotation angle in degrees.
func (b *Block) Rotation() int { return b.rotation }

// Used reports whether the block has been placed.
func (b *Block) Used() bool { return b.used }

// MarkUsed latches the block as placed.
func (b *Block) MarkUsed() { b.used = true }

// MarkUnused reverts MarkUsed. Only tests and undo tooling call it.
func (b *Block) MarkUnused() { b.used = false }

// RotateClockwise turns the shape 90 degrees clockwise:
// new[c][H-1-r] = old[r][c].
func (b *Block) RotateClockwise() {
	h, w := len(b.shape), len(b.shape[0])
	rotated := make([][]int, w)
	for c := range rotated {
		rotated[c] = make([]int, h)
	}
	for r := 0; r < h; r++ {
		for c := 0; c < w; c++ {
			rotated[c][h-1-r] = b.shape[r][c]
		}
	}
	b.shape = rotated
	b.rotation = (b.rotation + 90) % 360
}

// RotateCounterClockwise turns the shape 90 degrees counterclockwise.
func (b *Block) RotateCounterClockwise() {
	for i := 0; i < 3; i++ {
		b.RotateClockwise()
	}
}

// ResetRotation rotates back to the original orientation.
func (b *Block) ResetRotation() {
	for b.rotation != 0 {
		b.RotateClockwise()
	}
}

// FilledPositions returns the shape-relative cells that are filled, row-major.
func (b *Block) FilledPositions() []core.Position {
	var out []core.Position
	for y, row := range b.shape {
		for x, v := range row {
			if v == 1 {
				out = append(out, core.Pos(x, y))
			}
		}
	}
	return out
}

// CellCount returns the number of filled cells.
func (b *Block) CellCount() int {
	n := 0
	for _, row := range b.shape {
		for _, v := range row {
			n += v
		}
	}
	return n
}

// Bounds returns the bounding box of the filled cells.
func (b *Block) Bounds() core.Rect {
	minX, minY := b.Width(), b.Height()
	maxX, maxY := -1, -1
	for _, p := range b.FilledPositions() {
		minX, minY = min(minX, p.X), min(minY, p.Y)
		maxX, maxY = max(maxX, p.X), max(maxY, p.Y)
	}
	return core.NewRect(minX, minY, maxX-minX+1, maxY-minY+1)
}

// Clone returns an independent copy with the same identifier and state.
func (b *Block) Clone() *Block {
	c := *b
	c.shape = copyShape(b.shape)
	return &c
}

// String draws the shape with '#' and '.', one row per line.
func (b *Block) String() string {
	var sb strings.Builder
	for y, row := range b.shape {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for _, v := range row {
			if v == 1 {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
	}
	return sb.String()
}

package blast

import (
	"math/rand"

	"github.com/google/uuid"

	"github.com/vovakirdan/blockblast/internal/config"
	"github.com/vovakirdan/blockblast/internal/core"
)

// Shape is a catalog entry resolved from configuration.
type Shape struct {
	Name     string
	Category string
	Cells    [][]int
}

// Generator produces blocks from a shape catalog and color palette.
// All randomness, including block identifiers, comes from one RNG so a seed
// reproduces a whole game.
type Generator struct {
	shapes  []Shape
	palette []core.Color
	rng     *rand.Rand
}

// NewGenerator resolves the catalog and palette of cfg.
func NewGenerator(cfg config.BlastConfig, rng *rand.Rand) (*Generator, error) {
	palette, err := cfg.Colors()
	if err != nil {
		return nil, err
	}
	if len(cfg.Shapes) == 0 {
		return nil, &config.ConfigurationError{Field: "shapes", Message: "catalog is empty"}
	}

	shapes := make([]Shape, 0, len(cfg.Shapes))
	for _, def := range cfg.Shapes {
		m, err := def.Matrix()
		if err != nil {
			return nil, err
		}
		if err := validateShape(m); err != nil {
			return nil, err
		}
		shapes = append(shapes, Shape{Name: def.Name, Category: def.Category, Cells: m})
	}

	return &Generator{shapes: shapes, palette: palette, rng: rng}, nil
}

// Shapes returns the resolved catalog.
func (g *Generator) Shapes() []Shape { return g.shapes }

// Palette returns the block colors.
func (g *Generator) Palette() []core.Color { return g.palette }

// NewID returns a fresh identifier drawn from the generator's RNG.
func (g *Generator) NewID() string {
	id, err := uuid.NewRandomFromReader(g.rng)
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// RandomBlock picks a uniformly random shape and color.
func (g *Generator) RandomBlock() *Block {
	shape := g.shapes[g.rng.Intn(len(g.shapes))]
	color := g.palette[g.rng.Intn(len(g.palette))]
	// Catalog shapes were validated in NewGenerator.
	return &Block{id: g.NewID(), shape: copyShape(shape.Cells), color: color}
}

// BlockFromShape builds a block with a fresh identifier.
func (g *Generator) BlockFromShape(shape [][]int, color core.Color) (*Block, error) {
	return NewBlock(shape, color, g.NewID())
}

// BlockSet returns count independent random blocks. Duplicates are allowed.
func (g *Generator) BlockSet(count int) []*Block {
	blocks := make([]*Block, 0, max(count, 0))
	for i := 0; i < count; i++ {
		blocks = append(blocks, g.RandomBlock())
	}
	return blocks
}

// CatalogStats counts catalog shapes per category.
func (g *Generator) CatalogStats() map[string]int {
	out := make(map[string]int)
	for _, s := range g.shapes {
		out[s.Category]++
	}
	return out
}

// ValidPlacements returns every target position in a width x height board
// where b fits around the occupied cells.
func ValidPlacements(b *Block, occupied map[core.Position]bool, width, height int) []core.Position {
	var out []core.Position
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if fits(b, core.Pos(x, y), occupied, width, height) {
				out = append(out, core.Pos(x, y))
			}
		}
	}
	return out
}

// CanPlaceAny reports whether at least one unused block fits somewhere.
// This is the game-over test.
func CanPlaceAny(blocks []*Block, occupied map[core.Position]bool, width, height int) bool {
	for _, b := range blocks {
		if b == nil || b.Used() {
			continue
		}
		for y := 0; y < height; y++ {
			for x := 0; x < width; x++ {
				if fits(b, core.Pos(x, y), occupied, width, height) {
					return true
				}
			}
		}
	}
	return false
}

func fits(b *Block, target core.Position, occupied map[core.Position]bool, width, height int) bool {
	for _, rel := range b.FilledPositions() {
		p := target.Add(rel)
		if p.X < 0 || p.X >= width || p.Y < 0 || p.Y >= height || occupied[p] {
			return false
		}
	}
	return true
}

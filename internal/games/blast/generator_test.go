package blast

import (
	"math/rand"
	"reflect"
	"testing"

	"github.com/vovakirdan/blockblast/internal/config"
	"github.com/vovakirdan/blockblast/internal/core"
)

func newTestGenerator(t *testing.T, seed int64) *Generator {
	t.Helper()
	g, err := NewGenerator(config.DefaultBlastConfig(), rand.New(rand.NewSource(seed)))
	if err != nil {
		t.Fatalf("NewGenerator() failed: %v", err)
	}
	return g
}

func TestGeneratorIsDeterministicForSeed(t *testing.T) {
	a := newTestGenerator(t, 7).BlockSet(12)
	b := newTestGenerator(t, 7).BlockSet(12)

	for i := range a {
		if a[i].ID() != b[i].ID() || a[i].Color() != b[i].Color() || !reflect.DeepEqual(a[i].Shape(), b[i].Shape()) {
			t.Fatalf("block %d differs between equal seeds: %s vs %s", i, a[i].ID(), b[i].ID())
		}
	}
}

func TestBlockSetProducesFreshBlocks(t *testing.T) {
	g := newTestGenerator(t, 1)
	set := g.BlockSet(3)
	if len(set) != 3 {
		t.Fatalf("len(BlockSet(3)) = %d", len(set))
	}

	palette := make(map[core.Color]bool)
	for _, c := range g.Palette() {
		palette[c] = true
	}
	ids := make(map[string]bool)
	for _, b := range set {
		if b.Used() || b.Rotation() != 0 {
			t.Errorf("block %s not fresh", b.ID())
		}
		if !palette[b.Color()] {
			t.Errorf("color %v not in palette", b.Color())
		}
		if ids[b.ID()] {
			t.Errorf("duplicate id %s", b.ID())
		}
		ids[b.ID()] = true
	}

	if len(g.BlockSet(0)) != 0 {
		t.Error("BlockSet(0) should be empty")
	}
}

func TestNewGeneratorRejectsBadCatalog(t *testing.T) {
	cfg := config.DefaultBlastConfig()
	cfg.Shapes = nil
	if _, err := NewGenerator(cfg, rand.New(rand.NewSource(1))); err == nil {
		t.Error("empty catalog should be rejected")
	}

	cfg = config.DefaultBlastConfig()
	cfg.Palette = []string{"mauve"}
	if _, err := NewGenerator(cfg, rand.New(rand.NewSource(1))); err == nil {
		t.Error("unknown palette color should be rejected")
	}
}

func TestBlockFromShape(t *testing.T) {
	g := newTestGenerator(t, 3)

	a, err := g.BlockFromShape([][]int{{1, 1}, {1, 0}}, core.ColorRed)
	if err != nil {
		t.Fatalf("BlockFromShape() failed: %v", err)
	}
	b, err := g.BlockFromShape([][]int{{1, 1}, {1, 0}}, core.ColorRed)
	if err != nil {
		t.Fatalf("BlockFromShape() failed: %v", err)
	}
	if a.ID() == b.ID() {
		t.Errorf("blocks share id %q", a.ID())
	}
	if a.Color() != core.ColorRed {
		t.Errorf("Color() = %v, expected %v", a.Color(), core.ColorRed)
	}

	if _, err := g.BlockFromShape([][]int{{0, 0}}, core.ColorRed); err == nil {
		t.Error("empty shape should be rejected")
	}
}

func TestCatalogStats(t *testing.T) {
	g := newTestGenerator(t, 1)
	total := 0
	for _, n := range g.CatalogStats() {
		total += n
	}
	if total != len(g.Shapes()) {
		t.Errorf("category counts sum to %d, expected %d", total, len(g.Shapes()))
	}
}

func TestCanPlaceAny(t *testing.T) {
	square := func() *Block { return mustBlock(t, "sq", "##", "##") }
	dot := func() *Block { return mustBlock(t, "dot", "#") }

	// checkerboard: every empty cell is isolated
	checker := make(map[core.Position]bool)
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			if (x+y)%2 == 0 {
				checker[core.Pos(x, y)] = true
			}
		}
	}

	usedDot := dot()
	usedDot.MarkUsed()

	tests := []struct {
		name     string
		blocks   []*Block
		occupied map[core.Position]bool
		want     bool
	}{
		{"empty board", []*Block{square()}, map[core.Position]bool{}, true},
		{"square on checkerboard", []*Block{square()}, checker, false},
		{"dot on checkerboard", []*Block{square(), dot()}, checker, true},
		{"used dot is skipped", []*Block{square(), usedDot}, checker, false},
		{"no blocks", nil, map[core.Position]bool{}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := CanPlaceAny(tc.blocks, tc.occupied, 4, 4); got != tc.want {
				t.Errorf("CanPlaceAny() = %v, expected %v", got, tc.want)
			}
		})
	}
}

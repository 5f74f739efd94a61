package blast

import (
	"reflect"
	"testing"

	"github.com/vovakirdan/blockblast/internal/core"
)

func TestNewGridIsEmpty(t *testing.T) {
	g := NewGrid(10)
	if !g.IsEmpty() || g.FilledCount() != 0 {
		t.Errorf("new grid should be empty, has %d filled", g.FilledCount())
	}
	if g.Combo() != 0 || g.TotalLinesCleared() != 0 {
		t.Errorf("counters = %d/%d, expected 0/0", g.Combo(), g.TotalLinesCleared())
	}
	if len(g.EmptyPositions()) != 100 {
		t.Errorf("EmptyPositions() = %d, expected 100", len(g.EmptyPositions()))
	}
}

func TestGridBounds(t *testing.T) {
	g := NewGrid(10)
	tests := []struct {
		pos   core.Position
		valid bool
	}{
		{core.Pos(0, 0), true},
		{core.Pos(9, 9), true},
		{core.Pos(10, 0), false},
		{core.Pos(0, 10), false},
		{core.Pos(-1, 5), false},
	}
	for _, tc := range tests {
		if got := g.IsPositionValid(tc.pos); got != tc.valid {
			t.Errorf("IsPositionValid(%v) = %v, expected %v", tc.pos, got, tc.valid)
		}
		if !tc.valid && g.IsFilledAt(tc.pos) {
			t.Errorf("IsFilledAt(%v) should be false out of bounds", tc.pos)
		}
		if !tc.valid && g.IsEmptyAt(tc.pos) {
			t.Errorf("IsEmptyAt(%v) should be false out of bounds", tc.pos)
		}
	}
}

func TestPlaceBlock(t *testing.T) {
	g := NewGrid(10)
	b := mustBlock(t, "sq", "##", "##")

	if !g.PlaceBlock(b, core.Pos(3, 4)) {
		t.Fatal("placement on empty grid should succeed")
	}
	if !b.Used() {
		t.Error("placed block should be marked used")
	}
	for _, p := range []core.Position{core.Pos(3, 4), core.Pos(4, 4), core.Pos(3, 5), core.Pos(4, 5)} {
		c := g.CellAt(p)
		if !c.Filled() || c.BlockID != "sq" || c.Color != core.ColorBlue {
			t.Errorf("CellAt(%v) = %+v", p, c)
		}
	}
	if g.FilledCount() != 4 {
		t.Errorf("FilledCount() = %d, expected 4", g.FilledCount())
	}

	if g.PlaceBlock(b, core.Pos(0, 0)) {
		t.Error("a used block must not be placed again")
	}
}

func TestPlaceBlockIsAtomic(t *testing.T) {
	tests := []struct {
		name   string
		target core.Position
	}{
		{"overlap", core.Pos(4, 4)},
		{"off right edge", core.Pos(9, 0)},
		{"off bottom edge", core.Pos(0, 9)},
		{"negative", core.Pos(-1, 0)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g := NewGrid(10)
			fill(g, core.Pos(5, 5))
			before := g.Clone()

			b := mustBlock(t, "sq", "##", "##")
			if g.CanPlaceBlock(b, tc.target) {
				t.Errorf("CanPlaceBlock(%v) = true, expected false", tc.target)
			}
			if g.PlaceBlock(b, tc.target) {
				t.Fatalf("PlaceBlock(%v) succeeded", tc.target)
			}
			if !g.Equal(before) {
				t.Errorf("grid changed after rejected placement:\n%s", g)
			}
			if b.Used() {
				t.Error("rejected block should stay unused")
			}
		})
	}
}

func TestClearSingleRow(t *testing.T) {
	g := NewGrid(10)
	fillRowExcept(g, 3)
	fill(g, core.Pos(2, 7))

	res := g.ClearCompletedLines()
	if res.LinesCleared != 1 || !reflect.DeepEqual(res.Rows, []int{3}) || len(res.Columns) != 0 {
		t.Errorf("result = %+v, expected row 3", res)
	}
	if len(res.Positions) != 10 {
		t.Errorf("len(Positions) = %d, expected 10", len(res.Positions))
	}
	for x := 0; x < 10; x++ {
		if g.IsFilledAt(core.Pos(x, 3)) {
			t.Errorf("cell (%d,3) should be empty", x)
		}
	}
	if !g.IsFilledAt(core.Pos(2, 7)) {
		t.Error("cells outside cleared lines must stay filled")
	}
	if res.Combo != 1 || g.Combo() != 1 {
		t.Errorf("combo = %d, expected 1", g.Combo())
	}
}

func TestClearIntersectionCountsTwoLines(t *testing.T) {
	g := NewGrid(10)
	fillRowExcept(g, 0)
	for y := 1; y < 10; y++ {
		fill(g, core.Pos(0, y))
	}

	res := g.ClearCompletedLines()
	if res.LinesCleared != 2 {
		t.Errorf("LinesCleared = %d, expected 2", res.LinesCleared)
	}
	if len(res.Positions) != 19 {
		t.Errorf("len(Positions) = %d, expected 19 distinct cells", len(res.Positions))
	}
	if !g.IsEmpty() {
		t.Errorf("grid should be empty:\n%s", g)
	}
	if g.TotalLinesCleared() != 2 {
		t.Errorf("TotalLinesCleared() = %d, expected 2", g.TotalLinesCleared())
	}
}

func TestComboChain(t *testing.T) {
	g := NewGrid(10)
	fill(g, core.Pos(9, 9))

	clearRow := func(y int) LineClearResult {
		t.Helper()
		fillRowExcept(g, y, 0)
		dot := mustBlock(t, "dot", "#")
		if !g.PlaceBlock(dot, core.Pos(0, y)) {
			t.Fatalf("dot placement at row %d failed", y)
		}
		return g.ClearCompletedLines()
	}

	for i, y := range []int{0, 1, 2} {
		if res := clearRow(y); res.Combo != i+1 {
			t.Errorf("clear %d: combo = %d, expected %d", i+1, res.Combo, i+1)
		}
	}

	miss := mustBlock(t, "dot", "#")
	g.PlaceBlock(miss, core.Pos(5, 5))
	if res := g.ClearCompletedLines(); res.LinesCleared != 0 || g.Combo() != 0 {
		t.Errorf("non-clearing placement: combo = %d, expected 0", g.Combo())
	}

	if res := clearRow(4); res.Combo != 1 {
		t.Errorf("combo after reset = %d, expected 1", res.Combo)
	}
}

func TestPossiblePlacements(t *testing.T) {
	g := NewGrid(3)
	fill(g, core.Pos(1, 1))
	b := mustBlock(t, "h2", "##")

	got := g.PossiblePlacements(b)
	want := []core.Position{core.Pos(0, 0), core.Pos(1, 0), core.Pos(0, 2), core.Pos(1, 2)}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("PossiblePlacements() = %v, expected %v", got, want)
	}

	free := ValidPlacements(b, g.Occupied(), g.Size(), g.Size())
	if !reflect.DeepEqual(free, want) {
		t.Errorf("ValidPlacements() = %v, expected %v", free, want)
	}
}

func TestGridCloneResetAndStats(t *testing.T) {
	g := NewGrid(4)
	fillRowExcept(g, 0)
	g.ClearCompletedLines()
	fill(g, core.Pos(1, 1), core.Pos(2, 2))

	c := g.Clone()
	if !c.Equal(g) {
		t.Fatal("clone should equal the original")
	}
	fill(c, core.Pos(3, 3))
	if g.IsFilledAt(core.Pos(3, 3)) {
		t.Error("clone must not share cells")
	}

	st := g.Stats()
	if st.Filled != 2 || st.Empty != 14 || st.Colors[core.ColorRed] != 2 {
		t.Errorf("Stats() = %+v", st)
	}
	if st.FillPercent != 12.5 {
		t.Errorf("FillPercent = %v, expected 12.5", st.FillPercent)
	}

	g.ClearAll()
	if !g.IsEmpty() || g.TotalLinesCleared() != 1 {
		t.Errorf("ClearAll should empty cells and keep line total, got %d", g.TotalLinesCleared())
	}
	g.Reset()
	if g.TotalLinesCleared() != 0 || g.Combo() != 0 {
		t.Error("Reset should zero the counters")
	}
}

package physics

import "testing"

func collect(g *SpatialGrid, r Rect) map[int]int {
	seen := make(map[int]int)
	g.QueryRect(r, func(idx int) bool {
		seen[idx]++
		return false
	})
	return seen
}

func TestSpatialGridQueryFindsOverlappingCells(t *testing.T) {
	g := NewSpatialGrid(Rect{W: 100, H: 100}, 10)

	g.Insert(Rect{X: 5, Y: 5, W: 2, H: 2}, 0)
	g.Insert(Rect{X: 55, Y: 55, W: 2, H: 2}, 1)
	g.Insert(Rect{X: 15, Y: 5, W: 30, H: 2}, 2) // spans 4 columns

	seen := collect(g, Rect{X: 0, Y: 0, W: 10, H: 10})
	if seen[0] == 0 {
		t.Error("expected index 0 near origin")
	}
	if seen[1] != 0 {
		t.Error("index 1 is far away and must not be reported")
	}

	seen = collect(g, Rect{X: 40, Y: 0, W: 5, H: 5})
	if seen[2] == 0 {
		t.Error("wide box must be reachable from any covered cell")
	}
}

func TestSpatialGridClampsOutsideBoxes(t *testing.T) {
	g := NewSpatialGrid(Rect{W: 100, H: 100}, 25)

	g.Insert(Rect{X: -50, Y: -50, W: 10, H: 10}, 7)

	seen := collect(g, Rect{X: 0, Y: 0, W: 1, H: 1})
	if seen[7] == 0 {
		t.Error("box above-left of the area must land in the corner cell")
	}
}

func TestSpatialGridClear(t *testing.T) {
	g := NewSpatialGrid(Rect{W: 50, H: 50}, 10)
	g.Insert(Rect{X: 1, Y: 1, W: 48, H: 48}, 3)
	g.Clear()

	if seen := collect(g, Rect{W: 50, H: 50}); len(seen) != 0 {
		t.Errorf("expected empty grid after Clear, got %v", seen)
	}
}

func TestSpatialGridEarlyStop(t *testing.T) {
	g := NewSpatialGrid(Rect{W: 10, H: 10}, 10)
	for i := 0; i < 5; i++ {
		g.Insert(Rect{X: 1, Y: 1, W: 1, H: 1}, i)
	}

	calls := 0
	g.QueryRect(Rect{X: 0, Y: 0, W: 10, H: 10}, func(int) bool {
		calls++
		return true
	})
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

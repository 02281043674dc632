package draw

import (
	"strings"
	"testing"
)

func TestFillRectScales(t *testing.T) {
	// 10x5 terminal cells = 10x10 sub-pixels over a 100x100 logical area.
	c := NewScaledCanvas(10, 5, 100, 100)
	c.FillRect(20, 30, 20, 20, ColorGreen)

	tests := []struct {
		x, y int
		want Color
	}{
		{2, 3, ColorGreen},
		{3, 4, ColorGreen},
		{4, 3, ColorNone},
		{2, 5, ColorNone},
		{1, 3, ColorNone},
	}
	for _, tt := range tests {
		if got := c.Pixel(tt.x, tt.y); got != tt.want {
			t.Errorf("Pixel(%d, %d) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestFillRectTinyStaysVisible(t *testing.T) {
	c := NewScaledCanvas(10, 5, 100, 100)
	c.FillRect(55, 55, 1, 1, ColorWhite)

	if c.Pixel(5, 5) != ColorWhite {
		t.Error("tiny rect was not drawn")
	}
}

func TestFillRectClipped(t *testing.T) {
	c := NewScaledCanvas(10, 5, 100, 100)
	c.FillRect(-50, -50, 1000, 1000, ColorRed)

	if c.Pixel(0, 0) != ColorRed || c.Pixel(9, 9) != ColorRed {
		t.Error("clipped rect did not cover the canvas")
	}
}

func TestRenderOnlyChanges(t *testing.T) {
	c := NewCanvas(4, 2)
	c.FillRect(0, 0, 1, 2, ColorCyan)

	var first strings.Builder
	c.Render(&first)
	if !strings.ContainsRune(first.String(), BlockFull) {
		t.Fatalf("first render = %q, want a full block", first.String())
	}

	var second strings.Builder
	c.Render(&second)
	if second.Len() != 0 {
		t.Errorf("second render = %q, want nothing", second.String())
	}

	c.Clear()
	var third strings.Builder
	c.Render(&third)
	if !strings.Contains(third.String(), "\033[1;1H ") {
		t.Errorf("render after clear = %q, want the cell blanked", third.String())
	}
}

func TestRenderHalfBlocks(t *testing.T) {
	tests := []struct {
		name        string
		top, bottom Color
		want        string
	}{
		{"Top only", ColorRed, ColorNone, string(BlockUpperHalf)},
		{"Bottom only", ColorNone, ColorRed, string(BlockLowerHalf)},
		{"Two colors", ColorRed, ColorGreen, "\033[102m" + string(BlockUpperHalf)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCanvas(1, 1)
			c.setPixel(0, 0, tt.top)
			c.setPixel(0, 1, tt.bottom)

			var out strings.Builder
			c.Render(&out)
			if !strings.Contains(out.String(), tt.want) {
				t.Errorf("render = %q, want it to contain %q", out.String(), tt.want)
			}
		})
	}
}

func TestMarkTextDirtyRepaints(t *testing.T) {
	c := NewCanvas(4, 2)
	var out strings.Builder
	c.Render(&out)

	c.MarkTextDirty(2, 1, 2)
	out.Reset()
	c.Render(&out)

	if got := strings.Count(out.String(), "H "); got != 2 {
		t.Errorf("repainted cells = %d, want 2 (%q)", got, out.String())
	}
}

func TestForceRedraw(t *testing.T) {
	c := NewCanvas(3, 1)
	var out strings.Builder
	c.Render(&out)

	c.ForceRedraw()
	out.Reset()
	c.Render(&out)

	if got := strings.Count(out.String(), "H "); got != 3 {
		t.Errorf("repainted cells = %d, want 3", got)
	}
}

func TestDrawPolygonFilled(t *testing.T) {
	c := NewCanvas(20, 10)
	square := []Point{{X: 5, Y: 5}, {X: 15, Y: 5}, {X: 15, Y: 15}, {X: 5, Y: 15}}
	c.DrawPolygon(square, true, ColorYellow)

	if c.Pixel(10, 10) != ColorYellow {
		t.Error("interior not filled")
	}
	if c.Pixel(2, 2) != ColorNone {
		t.Error("exterior filled")
	}
}

func TestBlob(t *testing.T) {
	radii := BlobRadii(3, 8)
	if again := BlobRadii(3, 8); again[5] != radii[5] {
		t.Error("BlobRadii is not deterministic")
	}

	pts := Blob(make([]Point, len(radii)), 50, 40, 10, 10, radii, 90)
	for i, p := range pts {
		dx, dy := p.X-50, p.Y-40
		if d := dx*dx + dy*dy; d < 7*7-1e-9 || d > 13*13+1e-9 {
			t.Errorf("vertex %d at distance² %v, want within [49, 169]", i, d)
		}
	}
}

package physics

import (
	"math"
	"testing"

	"pgregory.net/rapid"
)

func TestRectIntersects(t *testing.T) {
	base := Rect{X: 10, Y: 10, W: 20, H: 20}
	tests := []struct {
		name  string
		other Rect
		want  bool
	}{
		{"Overlapping", Rect{X: 25, Y: 25, W: 10, H: 10}, true},
		{"Inside", Rect{X: 12, Y: 12, W: 2, H: 2}, true},
		{"Touching right edge", Rect{X: 30, Y: 10, W: 5, H: 5}, false},
		{"Touching bottom edge", Rect{X: 10, Y: 30, W: 5, H: 5}, false},
		{"Far away", Rect{X: 100, Y: 100, W: 5, H: 5}, false},
		{"Left of", Rect{X: 0, Y: 10, W: 10, H: 10}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := base.Intersects(tt.other); got != tt.want {
				t.Errorf("Intersects(%+v) = %v, want %v", tt.other, got, tt.want)
			}
			if got := tt.other.Intersects(base); got != tt.want {
				t.Errorf("symmetric Intersects(%+v) = %v, want %v", tt.other, got, tt.want)
			}
		})
	}
}

func TestRectEdges(t *testing.T) {
	r := Rect{X: -4, Y: 6, W: 10, H: 8}
	if r.Left() != -4 || r.Right() != 6 {
		t.Errorf("horizontal edges = (%d, %d), want (-4, 6)", r.Left(), r.Right())
	}
	if r.Top() != 6 || r.Bottom() != 14 {
		t.Errorf("vertical edges = (%d, %d), want (6, 14)", r.Top(), r.Bottom())
	}
	if r.CenterX() != 1 || r.CenterY() != 10 {
		t.Errorf("center = (%d, %d), want (1, 10)", r.CenterX(), r.CenterY())
	}
}

func TestSnapFloors(t *testing.T) {
	tests := []struct {
		in   float64
		want int
	}{
		{0, 0},
		{1.9, 1},
		{-0.1, -1},
		{-3.5, -4},
	}
	for _, tt := range tests {
		if got := Snap(tt.in); got != tt.want {
			t.Errorf("Snap(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestRectAround(t *testing.T) {
	r := RectAround(50, 40, 20, 10)
	want := Rect{X: 40, Y: 35, W: 20, H: 10}
	if r != want {
		t.Errorf("RectAround = %+v, want %+v", r, want)
	}
}

func TestScale(t *testing.T) {
	w, h := Scale(200, 100, 600, 0.1)
	if h != 60 {
		t.Errorf("h = %v, want 60", h)
	}
	if w != 120 {
		t.Errorf("w = %v, want 120", w)
	}

	w, h = Scale(10, 0, 600, 0.1)
	if w != 0 || h != 0 {
		t.Errorf("zero-height asset scaled to (%v, %v), want (0, 0)", w, h)
	}
}

func TestScalePreservesAspect(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		aw := rapid.Float64Range(1, 1000).Draw(t, "assetW")
		ah := rapid.Float64Range(1, 1000).Draw(t, "assetH")
		ref := rapid.Float64Range(1, 4000).Draw(t, "refHeight")
		ratio := rapid.Float64Range(0.001, 1).Draw(t, "ratio")

		w, h := Scale(aw, ah, ref, ratio)
		if math.Abs(h-ratio*ref) > 1e-9*ref {
			t.Fatalf("height %v, want %v", h, ratio*ref)
		}
		if math.Abs(w/h-aw/ah) > 1e-9*(aw/ah) {
			t.Fatalf("aspect %v, want %v", w/h, aw/ah)
		}
	})
}

func TestSign(t *testing.T) {
	if Sign(-2) != -1 || Sign(0) != 0 || Sign(3) != 1 {
		t.Error("Sign returned an unexpected value")
	}
}

func TestEmptyRectNeverIntersects(t *testing.T) {
	area := Rect{W: 100, H: 100}
	if (Rect{X: 10, Y: 10}).Intersects(area) {
		t.Error("zero-size box must not intersect")
	}
	if area.Intersects(Rect{X: 10, Y: 10, W: 5}) {
		t.Error("zero-height box must not intersect")
	}
}

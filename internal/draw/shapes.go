package draw

import (
	"math"
	"math/rand"
)

// BlobRadii returns n per-vertex radius factors in [0.7, 1.3] for an
// irregular rock outline. The same seed always yields the same outline.
func BlobRadii(seed int64, n int) []float64 {
	rng := rand.New(rand.NewSource(seed))
	radii := make([]float64, n)
	for i := range radii {
		radii[i] = 0.7 + rng.Float64()*0.6
	}
	return radii
}

// Blob fills dst with an irregular polygon centered on (cx, cy). Vertex i
// sits at radii[i] times the half extents (hw, hh), rotated by angle degrees.
// dst must have len(radii) elements.
func Blob(dst []Point, cx, cy, hw, hh float64, radii []float64, angle float64) []Point {
	n := len(radii)
	rot := angle * math.Pi / 180
	for i, r := range radii {
		a := rot + float64(i)*2*math.Pi/float64(n)
		dst[i] = Point{
			X: cx + math.Cos(a)*hw*r,
			Y: cy + math.Sin(a)*hh*r,
		}
	}
	return dst
}

package analyzer

import (
	"image"

	"github.com/ivlev/spriteoutline/internal/outline"
)

// Analyze measures every polygon. Winding decides the kind: traced outer
// boundaries are clockwise (negative signed area), holes counter-clockwise.
func Analyze(polys []outline.Polygon) []Region {
	regions := make([]Region, 0, len(polys))
	for i, p := range polys {
		area2 := p.SignedArea2()
		kind := Outer
		if area2 > 0 {
			kind = Hole
		}
		regions = append(regions, Region{
			Index:     i,
			Kind:      kind,
			Rect:      bounds(p),
			Area:      abs(area2) / 2,
			Perimeter: p.Perimeter(),
			Vertices:  len(p),
		})
	}
	return regions
}

// Summarize totals regions.
func Summarize(regions []Region) Summary {
	var s Summary
	for _, r := range regions {
		switch r.Kind {
		case Hole:
			s.Holes++
			s.SolidArea -= r.Area
		default:
			s.Outers++
			s.SolidArea += r.Area
		}
		s.Perimeter += r.Perimeter
		s.Vertices += r.Vertices
	}
	return s
}

// bounds returns the smallest rectangle containing every vertex of p
func bounds(p outline.Polygon) image.Rectangle {
	if len(p) == 0 {
		return image.Rectangle{}
	}
	minX, minY := p[0].X, p[0].Y
	maxX, maxY := minX, minY
	for _, pt := range p[1:] {
		minX, maxX = min(minX, pt.X), max(maxX, pt.X)
		minY, maxY = min(minY, pt.Y), max(maxY, pt.Y)
	}
	return image.Rect(minX, minY, maxX, maxY)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

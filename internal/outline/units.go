package outline

import "fmt"

// Vec2 is a point in sprite units.
type Vec2 struct {
	X float32 `yaml:"x"`
	Y float32 `yaml:"y"`
}

// UnitPolygon is a Polygon mapped into sprite units.
type UnitPolygon []Vec2

// Mapping converts grid points into units: p*Scale - Pivot.
type Mapping struct {
	Scale float32
	Pivot Vec2 // offset in units
}

// NewMapping builds the mapping for a w×h pixel rect. pivot is the pivot
// position as a fraction of the rect (0,0 lower-left, 1,1 upper-right).
func NewMapping(pixelsPerUnit float32, pivot Vec2, w, h int) (Mapping, error) {
	if !(pixelsPerUnit > 0) {
		return Mapping{}, fmt.Errorf("%w: %v", ErrInvalidScale, pixelsPerUnit)
	}
	scale := 1 / pixelsPerUnit
	return Mapping{
		Scale: scale,
		Pivot: Vec2{
			X: pivot.X * float32(w) * scale,
			Y: pivot.Y * float32(h) * scale,
		},
	}, nil
}

// Point maps a single vertex.
func (m Mapping) Point(p Point) Vec2 {
	return Vec2{
		X: float32(p.X)*m.Scale - m.Pivot.X,
		Y: float32(p.Y)*m.Scale - m.Pivot.Y,
	}
}

// Apply maps every vertex of every polygon, keeping counts and order.
func (m Mapping) Apply(polys []Polygon) []UnitPolygon {
	out := make([]UnitPolygon, len(polys))
	for i, poly := range polys {
		up := make(UnitPolygon, len(poly))
		for j, p := range poly {
			up[j] = m.Point(p)
		}
		out[i] = up
	}
	return out
}

// ToUnits is Mapping{scale, pivotOffset}.Apply(polys).
func ToUnits(polys []Polygon, scale float32, pivotOffset Vec2) []UnitPolygon {
	return Mapping{Scale: scale, Pivot: pivotOffset}.Apply(polys)
}

// Package analyzer measures traced outlines and names common solidity rules.
package analyzer

import "image"

// Kind tells outer boundaries from holes.
type Kind string

const (
	Outer Kind = "outer"
	Hole  Kind = "hole"
)

// Region describes one traced polygon
type Region struct {
	Index     int             // position in the traced polygon list
	Kind      Kind            // outer boundary or hole
	Rect      image.Rectangle // bounds in grid space (y-up)
	Area      int             // enclosed pixels, always positive
	Perimeter int             // boundary length in pixels
	Vertices  int
}

// Summary aggregates the regions of one trace.
type Summary struct {
	Outers    int
	Holes     int
	SolidArea int // outer area minus hole area
	Perimeter int
	Vertices  int
}

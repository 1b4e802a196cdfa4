package outline

import "fmt"

// Point is a vertex on the integer pixel grid (y-up).
type Point struct {
	X, Y int
}

func (p Point) String() string { return fmt.Sprintf("(%d,%d)", p.X, p.Y) }

// Direction is the travel direction of a boundary segment.
type Direction uint8

const (
	Right Direction = iota
	Left
	Up
	Down
	numDirections
)

func (d Direction) String() string {
	switch d {
	case Right:
		return "right"
	case Left:
		return "left"
	case Up:
		return "up"
	case Down:
		return "down"
	default:
		return fmt.Sprintf("Direction(%d)", uint8(d))
	}
}

// Horizontal reports whether d runs along a horizontal grid line.
func (d Direction) Horizontal() bool { return d == Right || d == Left }

// Segment is a maximal run of collinear boundary edges travelling in Dir.
type Segment struct {
	Start, End Point
	Dir        Direction
}

// Len is the number of unit edges in s.
func (s Segment) Len() int {
	return abs(s.End.X-s.Start.X) + abs(s.End.Y-s.Start.Y)
}

// Polygon is a closed loop of grid points. The closing point is implied:
// the last vertex connects back to the first.
type Polygon []Point

// Perimeter is the total edge length of the closed loop.
func (p Polygon) Perimeter() int {
	n := len(p)
	total := 0
	for i := range p {
		a, b := p[i], p[(i+1)%n]
		total += abs(b.X-a.X) + abs(b.Y-a.Y)
	}
	return total
}

// SignedArea2 is twice the shoelace area. Clockwise loops (outer
// boundaries in y-up space) are negative, holes positive.
func (p Polygon) SignedArea2() int {
	n := len(p)
	sum := 0
	for i := range p {
		a, b := p[i], p[(i+1)%n]
		sum += a.X*b.Y - b.X*a.Y
	}
	return sum
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

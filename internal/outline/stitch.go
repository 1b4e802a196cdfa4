package outline

// turns lists, for the direction just travelled, the two perpendicular
// directions to try next, in order. Trying Down before Up after Right keeps
// diagonal pixel pairs in separate loops.
var turns = [numDirections][2]Direction{
	Right: {Down, Up},
	Left:  {Up, Down},
	Up:    {Right, Left},
	Down:  {Left, Right},
}

// next removes and returns the segment that continues a boundary arriving
// at p after travelling in dir.
func (b *Buckets) next(p Point, dir Direction) (Segment, bool) {
	for _, d := range turns[dir] {
		if s, ok := b.dirs[d].take(p); ok {
			return s, true
		}
	}
	return Segment{}, false
}

// Stitch joins the segments of b into closed polygons. Loops are seeded from
// Right segments in scan order so the output is deterministic. Each polygon
// starts at the start point of its seed and omits the closing point.
//
// A *StitchError (wrapping ErrInconsistent) is returned when a vertex has no
// continuation or segments survive after every seed is used; polygons
// completed before that point are returned with it.
// Complexity: O(S) expected.
func Stitch(b *Buckets) ([]Polygon, error) {
	var polys []Polygon
	seeds := &b.dirs[Right]

	for i := range seeds.segs {
		if seeds.used[i] {
			continue
		}
		seed := seeds.consume(i)
		poly := Polygon{seed.Start, seed.End}
		last := seed.Dir

		for {
			at := poly[len(poly)-1]
			s, ok := b.next(at, last)
			if !ok {
				err := &StitchError{At: at, After: last, Left: b.Remaining()}
				Logger().Warn("outline: stitch failed", "at", at, "after", last, "left", err.Left)
				return polys, err
			}
			last = s.Dir
			if s.End == poly[0] {
				break
			}
			poly = append(poly, s.End)
		}
		polys = append(polys, poly)
	}

	if n := b.Remaining(); n > 0 {
		Logger().Warn("outline: unstitched segments", "left", n)
		for d := range b.dirs {
			bk := &b.dirs[d]
			for i, s := range bk.segs {
				if !bk.used[i] {
					return polys, &StitchError{At: s.Start, After: Direction(d), Left: n}
				}
			}
		}
	}
	return polys, nil
}

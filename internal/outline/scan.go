package outline

// Grid is a read-only solidity raster. Solid must return false for cells
// outside [0,Width)×[0,Height).
type Grid interface {
	Width() int
	Height() int
	Solid(x, y int) bool
}

// bucket holds the segments of one direction in scan order and indexes them
// by start point. Within a bucket start points are unique.
type bucket struct {
	segs    []Segment
	used    []bool
	byStart map[Point]int
	left    int
}

func (b *bucket) add(s Segment) {
	if b.byStart == nil {
		b.byStart = make(map[Point]int)
	}
	b.byStart[s.Start] = len(b.segs)
	b.segs = append(b.segs, s)
	b.used = append(b.used, false)
	b.left++
}

func (b *bucket) consume(i int) Segment {
	b.used[i] = true
	b.left--
	delete(b.byStart, b.segs[i].Start)
	return b.segs[i]
}

// take removes and returns the unconsumed segment starting at p.
func (b *bucket) take(p Point) (Segment, bool) {
	i, ok := b.byStart[p]
	if !ok {
		return Segment{}, false
	}
	return b.consume(i), true
}

// Buckets are the four direction collections produced by Scan. Stitch
// consumes them; a Buckets value is not reusable afterwards.
type Buckets struct {
	dirs [numDirections]bucket
}

// Segments returns the segments of direction d in scan order, consumed or not.
func (b *Buckets) Segments(d Direction) []Segment {
	out := make([]Segment, len(b.dirs[d].segs))
	copy(out, b.dirs[d].segs)
	return out
}

// Remaining counts the segments not yet consumed by Stitch.
func (b *Buckets) Remaining() int {
	n := 0
	for i := range b.dirs {
		n += b.dirs[i].left
	}
	return n
}

// run is the segment currently being extended along one grid line.
type run struct {
	open bool
	seg  Segment
}

// push extends the open run with the unit edge e when both travel the same
// way, otherwise it closes the run and starts a new one at e.
func (r *run) push(e Segment, b *Buckets) {
	if r.open && r.seg.Dir == e.Dir {
		switch e.Dir {
		case Right, Up:
			r.seg.End = e.End
		default:
			r.seg.Start = e.Start
		}
		return
	}
	r.flush(b)
	r.seg, r.open = e, true
}

func (r *run) flush(b *Buckets) {
	if r.open {
		b.dirs[r.seg.Dir].add(r.seg)
		r.open = false
	}
}

// Scan collects the maximal boundary segments of g.
//
// Horizontal grid line y separates cell (x,y-1) below from (x,y) above:
// solid below gives a Right edge, solid above a Left edge. Vertical grid
// line x separates (x-1,y) on the left from (x,y) on the right: solid right
// gives Up, solid left gives Down. Solid is thus always on the right-hand
// side of travel.
// Complexity: O(W×H).
func Scan(g Grid) *Buckets {
	w, h := g.Width(), g.Height()
	b := &Buckets{}
	var r run

	for y := 0; y <= h; y++ {
		for x := 0; x < w; x++ {
			below, above := g.Solid(x, y-1), g.Solid(x, y)
			switch {
			case below && !above:
				r.push(Segment{Point{x, y}, Point{x + 1, y}, Right}, b)
			case above && !below:
				r.push(Segment{Point{x + 1, y}, Point{x, y}, Left}, b)
			default:
				r.flush(b)
			}
		}
		r.flush(b)
	}

	for x := 0; x <= w; x++ {
		for y := 0; y < h; y++ {
			left, right := g.Solid(x-1, y), g.Solid(x, y)
			switch {
			case right && !left:
				r.push(Segment{Point{x, y}, Point{x, y + 1}, Up}, b)
			case left && !right:
				r.push(Segment{Point{x, y + 1}, Point{x, y}, Down}, b)
			default:
				r.flush(b)
			}
		}
		r.flush(b)
	}

	return b
}

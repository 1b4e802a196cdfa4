package solidity

import (
	"image"
	"image/color"
	"strings"
)

// Pixels is the read-only view of a raster Classify needs. Every image.Image
// satisfies it.
type Pixels interface {
	At(x, y int) color.Color
}

// Mask is a W×H grid of solidity flags in y-up order: cell (0,0) is the
// lower-left pixel. Cells outside the grid are never solid.
type Mask struct {
	W, H  int
	cells []bool
}

// NewMask returns an all non-solid mask. Negative sizes are treated as zero.
func NewMask(w, h int) *Mask {
	w, h = max(w, 0), max(h, 0)
	return &Mask{W: w, H: h, cells: make([]bool, w*h)}
}

// Width and Height let a Mask serve as an outline.Grid.
func (m *Mask) Width() int  { return m.W }
func (m *Mask) Height() int { return m.H }

// Solid reports whether (x,y) is solid; out-of-bounds cells are not.
func (m *Mask) Solid(x, y int) bool {
	if x < 0 || y < 0 || x >= m.W || y >= m.H {
		return false
	}
	return m.cells[y*m.W+x]
}

// Set marks (x,y). Out-of-bounds writes are ignored.
func (m *Mask) Set(x, y int, solid bool) {
	if x < 0 || y < 0 || x >= m.W || y >= m.H {
		return
	}
	m.cells[y*m.W+x] = solid
}

// Count returns the number of solid cells.
func (m *Mask) Count() int {
	n := 0
	for _, c := range m.cells {
		if c {
			n++
		}
	}
	return n
}

// Equal reports whether both masks have the same size and cells.
func (m *Mask) Equal(o *Mask) bool {
	if m.W != o.W || m.H != o.H {
		return false
	}
	for i := range m.cells {
		if m.cells[i] != o.cells[i] {
			return false
		}
	}
	return true
}

// MaskFromRows builds a mask from text rows written the way they look on
// screen: the first row is the top of the raster. '#' and 'X' are solid,
// anything else is not.
func MaskFromRows(rows ...string) (*Mask, error) {
	if len(rows) == 0 {
		return NewMask(0, 0), nil
	}
	w := len(rows[0])
	for _, r := range rows {
		if len(r) != w {
			return nil, ErrMaskRows
		}
	}
	h := len(rows)
	m := NewMask(w, h)
	for i, r := range rows {
		y := h - 1 - i
		for x := 0; x < w; x++ {
			m.Set(x, y, r[x] == '#' || r[x] == 'X')
		}
	}
	return m, nil
}

// String renders the mask in the MaskFromRows format.
func (m *Mask) String() string {
	var b strings.Builder
	for y := m.H - 1; y >= 0; y-- {
		for x := 0; x < m.W; x++ {
			if m.Solid(x, y) {
				b.WriteByte('#')
			} else {
				b.WriteByte('.')
			}
		}
		if y > 0 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// Classify evaluates cond for every pixel of rect inside src. rect is in
// src's (y-down) coordinate space; the returned mask is y-up with its origin
// at the lower-left corner of rect. The caller validates rect.
// Complexity: O(W×H).
func Classify(src Pixels, rect image.Rectangle, cond Condition) *Mask {
	cond = cond.Clamped()
	w, h := rect.Dx(), rect.Dy()
	m := NewMask(w, h)

	if img, ok := src.(*image.NRGBA); ok {
		for cy := 0; cy < h; cy++ {
			py := rect.Max.Y - 1 - cy
			for cx := 0; cx < w; cx++ {
				i := img.PixOffset(rect.Min.X+cx, py)
				p := img.Pix[i : i+4 : i+4]
				n := nrgbaTo64(p[0], p[1], p[2], p[3])
				m.cells[cy*w+cx] = cond.match(cond.Channel.Value(n))
			}
		}
		return m
	}

	for cy := 0; cy < h; cy++ {
		py := rect.Max.Y - 1 - cy
		for cx := 0; cx < w; cx++ {
			c := src.At(rect.Min.X+cx, py)
			m.cells[cy*w+cx] = cond.match(cond.Channel.Value(toNRGBA64(c)))
		}
	}
	return m
}

package outline

import (
	"fmt"
	"image"
	"image/color"
	"reflect"

	"github.com/ivlev/spriteoutline/internal/solidity"
)

// PixelSource is a fully readable raster. Every image.Image satisfies it.
// Trace only reads from it, so one source may be traced concurrently.
type PixelSource interface {
	Bounds() image.Rectangle
	At(x, y int) color.Color
}

// Trace classifies the pixels of rect with cond and returns the boundary
// polygons in grid space (y-up, origin at the lower-left corner of rect).
// rect is given in src's own coordinates and must lie inside src.Bounds().
func Trace(src PixelSource, rect image.Rectangle, cond solidity.Condition) ([]Polygon, error) {
	if err := Validate(src, rect); err != nil {
		return nil, err
	}
	return TraceMask(solidity.Classify(src, rect, cond))
}

// Validate checks the arguments of Trace.
func Validate(src PixelSource, rect image.Rectangle) error {
	if isNil(src) {
		return ErrNilSource
	}
	if rect.Dx() <= 0 || rect.Dy() <= 0 {
		return fmt.Errorf("%w: %v", ErrEmptyRect, rect)
	}
	if b := src.Bounds(); !rect.In(b) {
		return fmt.Errorf("%w: %v not in %v", ErrRectOutOfBounds, rect, b)
	}
	return nil
}

// isNil also catches a nil reference wrapped in the interface, such as
// (*image.NRGBA)(nil).
func isNil(src PixelSource) bool {
	if src == nil {
		return true
	}
	v := reflect.ValueOf(src)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Interface:
		return v.IsNil()
	}
	return false
}

// TraceMask scans and stitches an already classified grid.
func TraceMask(g Grid) ([]Polygon, error) {
	b := Scan(g)
	log := Logger()
	log.Debug("outline: scanned",
		"width", g.Width(), "height", g.Height(),
		"right", len(b.dirs[Right].segs), "left", len(b.dirs[Left].segs),
		"up", len(b.dirs[Up].segs), "down", len(b.dirs[Down].segs))

	polys, err := Stitch(b)
	if err != nil {
		return nil, err
	}
	log.Debug("outline: stitched", "polygons", len(polys))
	return polys, nil
}

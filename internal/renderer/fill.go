// Package renderer rasterizes traced outlines back into pixels, for checking
// a trace against its mask and for writing preview images.
package renderer

import (
	"image"

	"golang.org/x/image/draw"
	"golang.org/x/image/vector"

	"github.com/ivlev/spriteoutline/internal/outline"
	"github.com/ivlev/spriteoutline/internal/solidity"
)

// Rasterize fills polys into a w×h alpha image. Polygons are in grid space
// (y-up), the result in image space (y-down). Holes cancel their outer
// boundary because they wind the other way.
func Rasterize(polys []outline.Polygon, w, h int) *image.Alpha {
	dst := image.NewAlpha(image.Rect(0, 0, w, h))
	if w <= 0 || h <= 0 || len(polys) == 0 {
		return dst
	}
	z := vector.NewRasterizer(w, h)
	z.DrawOp = draw.Src
	addPaths(z, polys, h, 1, image.Point{})
	z.Draw(dst, dst.Bounds(), image.Opaque, image.Point{})
	return dst
}

// FillMask rasterizes polys and classifies the result, giving the mask the
// polygons enclose.
func FillMask(polys []outline.Polygon, w, h int) *solidity.Mask {
	a := Rasterize(polys, w, h)
	m := solidity.NewMask(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if a.AlphaAt(x, h-1-y).A > 127 {
				m.Set(x, y, true)
			}
		}
	}
	return m
}

// addPaths adds every polygon as a closed path, flipping y for a grid of
// height h, then scaling and offsetting into the rasterizer.
func addPaths(z *vector.Rasterizer, polys []outline.Polygon, h, scale int, off image.Point) {
	s := float32(scale)
	ox, oy := float32(off.X), float32(off.Y)
	for _, poly := range polys {
		if len(poly) < 3 {
			continue
		}
		for i, p := range poly {
			x := ox + float32(p.X)*s
			y := oy + float32(h-p.Y)*s
			if i == 0 {
				z.MoveTo(x, y)
			} else {
				z.LineTo(x, y)
			}
		}
		z.ClosePath()
	}
}

package renderer

import (
	"image"
	"image/color"
	"image/png"
	"os"

	"golang.org/x/image/draw"
	"golang.org/x/image/vector"

	"github.com/ivlev/spriteoutline/internal/outline"
)

// Tint is the overlay colour of solid areas in a preview.
var Tint = color.NRGBA{R: 255, G: 0, B: 160, A: 110}

// Checker colours the non-solid background so transparent sprites stay
// readable.
var checker = [2]color.NRGBA{
	{R: 200, G: 200, B: 200, A: 255},
	{R: 240, G: 240, B: 240, A: 255},
}

// Preview draws rect of src scaled up by scale on a checkerboard and tints
// the area enclosed by polys, which are grid polygons of that rect.
func Preview(src image.Image, rect image.Rectangle, polys []outline.Polygon, scale int) *image.NRGBA {
	if scale < 1 {
		scale = 1
	}
	w, h := rect.Dx(), rect.Dy()
	dst := image.NewNRGBA(image.Rect(0, 0, w*scale, h*scale))
	if w <= 0 || h <= 0 {
		return dst
	}

	cell := 8 * scale
	for y := 0; y < dst.Rect.Dy(); y++ {
		for x := 0; x < dst.Rect.Dx(); x++ {
			dst.SetNRGBA(x, y, checker[(x/cell+y/cell)%2])
		}
	}
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, rect, draw.Over, nil)

	if len(polys) > 0 {
		z := vector.NewRasterizer(dst.Rect.Dx(), dst.Rect.Dy())
		z.DrawOp = draw.Over
		addPaths(z, polys, h, scale, image.Point{})
		z.Draw(dst, dst.Bounds(), image.NewUniform(Tint), image.Point{})
	}
	return dst
}

// WritePNG encodes img to path.
func WritePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

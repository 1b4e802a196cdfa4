// Package export stores traced outlines as YAML documents.
package export

import (
	"image"

	"github.com/ivlev/spriteoutline/internal/analyzer"
	"github.com/ivlev/spriteoutline/internal/outline"
	"github.com/ivlev/spriteoutline/internal/solidity"
)

// Version is written into every document.
const Version = "1.0"

// Document is the outline file of one run.
type Document struct {
	Version       string             `yaml:"version"`
	Source        string             `yaml:"source"`
	Condition     solidity.Condition `yaml:"condition"`
	PixelsPerUnit float32            `yaml:"pixels_per_unit"`
	Frames        []Frame            `yaml:"frames"`
}

// Frame holds the sprites traced from one image or page.
type Frame struct {
	Index   int      `yaml:"index"`
	Name    string   `yaml:"name"`
	Width   int      `yaml:"width"`
	Height  int      `yaml:"height"`
	Sprites []Sprite `yaml:"sprites,omitempty"`
	Error   string   `yaml:"error,omitempty"`
}

// Sprite is one traced rectangle of a frame.
type Sprite struct {
	Name     string       `yaml:"name"`
	Rect     Rectangle    `yaml:"rect,flow"`
	Pivot    outline.Vec2 `yaml:"pivot,flow"`
	Outlines []Outline    `yaml:"outlines"`
	Error    string       `yaml:"error,omitempty"`
}

// Outline is one closed polygon with its measurements. Pixels are grid
// points (y-up, origin at the sprite's lower-left corner), Units the same
// points after pixels-per-unit and pivot mapping.
type Outline struct {
	Kind      analyzer.Kind `yaml:"kind"`
	Area      int           `yaml:"area"`
	Perimeter int           `yaml:"perimeter"`
	Bounds    Rectangle     `yaml:"bounds,flow"`
	Pixels    [][2]int      `yaml:"pixels,flow"`
	Units     [][2]float32  `yaml:"units,flow"`
}

// Rectangle is a bounding box
type Rectangle struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
	W int `yaml:"w"`
	H int `yaml:"h"`
}

// FromImageRect converts an image.Rectangle.
func FromImageRect(r image.Rectangle) Rectangle {
	return Rectangle{X: r.Min.X, Y: r.Min.Y, W: r.Dx(), H: r.Dy()}
}

// NewSprite combines the polygons of one sprite with their unit mapping and
// analysis. polys, units and regions must be index aligned.
func NewSprite(name string, rect image.Rectangle, pivot outline.Vec2, polys []outline.Polygon, units []outline.UnitPolygon, regions []analyzer.Region) Sprite {
	s := Sprite{
		Name:     name,
		Rect:     FromImageRect(rect),
		Pivot:    pivot,
		Outlines: make([]Outline, len(polys)),
	}
	for i, poly := range polys {
		o := Outline{
			Kind:      regions[i].Kind,
			Area:      regions[i].Area,
			Perimeter: regions[i].Perimeter,
			Bounds:    FromImageRect(regions[i].Rect),
			Pixels:    make([][2]int, len(poly)),
			Units:     make([][2]float32, len(units[i])),
		}
		for j, p := range poly {
			o.Pixels[j] = [2]int{p.X, p.Y}
		}
		for j, v := range units[i] {
			o.Units[j] = [2]float32{v.X, v.Y}
		}
		s.Outlines[i] = o
	}
	return s
}

// Polygons returns the pixel polygons of s.
func (s Sprite) Polygons() []outline.Polygon {
	out := make([]outline.Polygon, len(s.Outlines))
	for i, o := range s.Outlines {
		p := make(outline.Polygon, len(o.Pixels))
		for j, xy := range o.Pixels {
			p[j] = outline.Point{X: xy[0], Y: xy[1]}
		}
		out[i] = p
	}
	return out
}

package export

import (
	"fmt"
	"io"

	"github.com/ivlev/spriteoutline/internal/analyzer"
)

// Describe writes a per-sprite summary of doc: outline counts, solid area
// and perimeter, or the recorded error.
func Describe(w io.Writer, doc *Document) {
	fmt.Fprintf(w, "Version: %s | Source: %s | Condition: %s | PPU: %g\n",
		doc.Version, doc.Source, doc.Condition, doc.PixelsPerUnit)
	for _, f := range doc.Frames {
		if f.Error != "" {
			fmt.Fprintf(w, "%s: error: %s\n", f.Name, f.Error)
			continue
		}
		fmt.Fprintf(w, "%s (%dx%d): %d sprites\n", f.Name, f.Width, f.Height, len(f.Sprites))
		for _, s := range f.Sprites {
			if s.Error != "" {
				fmt.Fprintf(w, "  %s: error: %s\n", s.Name, s.Error)
				continue
			}
			outers, holes, area, perimeter := 0, 0, 0, 0
			for _, o := range s.Outlines {
				if o.Kind == analyzer.Hole {
					holes++
					area -= o.Area
				} else {
					outers++
					area += o.Area
				}
				perimeter += o.Perimeter
			}
			fmt.Fprintf(w, "  %s: outers=%d holes=%d area=%d perimeter=%d\n",
				s.Name, outers, holes, area, perimeter)
		}
	}
}

package export

import (
	"github.com/ivlev/spriteoutline/internal/config"
	"github.com/ivlev/spriteoutline/internal/engine"
)

// Build converts an engine report into a document.
func Build(report *engine.Report, sourceName string, prof config.Profile) *Document {
	doc := &Document{
		Version:       Version,
		Source:        sourceName,
		Condition:     prof.Condition.Clamped(),
		PixelsPerUnit: prof.PixelsPerUnit,
		Frames:        make([]Frame, 0, len(report.Frames)),
	}
	for _, fr := range report.Frames {
		f := Frame{
			Index:  fr.Index,
			Name:   fr.Name,
			Width:  fr.Bounds.Dx(),
			Height: fr.Bounds.Dy(),
		}
		if fr.Err != nil {
			f.Error = fr.Err.Error()
			doc.Frames = append(doc.Frames, f)
			continue
		}
		for _, sr := range fr.Sprites {
			s := NewSprite(sr.Name, sr.Rect.Sub(fr.Bounds.Min), sr.Pivot, sr.Polygons, sr.Units, sr.Regions)
			if sr.Err != nil {
				s.Error = sr.Err.Error()
			}
			f.Sprites = append(f.Sprites, s)
		}
		doc.Frames = append(doc.Frames, f)
	}
	return doc
}

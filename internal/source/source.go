// Package source provides the rasters to trace: image files, PDF pages and
// generated QR codes.
package source

import (
	"fmt"
	"image"
	"path/filepath"
	"strings"

	"github.com/gen2brain/go-fitz"
)

// Source yields the rasters to trace. Frames must be fully decoded images;
// tracing never reads from the underlying file.
type Source interface {
	FrameCount() int
	FrameName(index int) string
	Frame(index int) (image.Image, error)
	Close() error
}

// Open picks a PDFSource for .pdf files and an ImageSource otherwise.
func Open(path string, dpi int) (Source, error) {
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		return NewPDFSource(path, dpi)
	}
	return NewImageSource(path)
}

// PDFSource renders PDF pages at a fixed DPI.
type PDFSource struct {
	doc  *fitz.Document
	path string
	dpi  int
}

func NewPDFSource(path string, dpi int) (*PDFSource, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf %s: %w", path, err)
	}
	if dpi <= 0 {
		dpi = 72
	}
	return &PDFSource{doc: doc, path: path, dpi: dpi}, nil
}

func (f *PDFSource) FrameCount() int {
	return f.doc.NumPage()
}

func (f *PDFSource) FrameName(index int) string {
	base := strings.TrimSuffix(filepath.Base(f.path), filepath.Ext(f.path))
	return fmt.Sprintf("%s_p%d", base, index+1)
}

// Frame opens its own document handle so pages can be rendered from
// several workers at once.
func (f *PDFSource) Frame(index int) (image.Image, error) {
	workerDoc, err := fitz.New(f.path)
	if err != nil {
		return nil, err
	}
	defer workerDoc.Close()
	return workerDoc.ImageDPI(index, float64(f.dpi))
}

func (f *PDFSource) Close() error {
	return f.doc.Close()
}

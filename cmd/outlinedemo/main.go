package main

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"log"
	"os"
	"path/filepath"

	"github.com/ivlev/spriteoutline/internal/analyzer"
	"github.com/ivlev/spriteoutline/internal/config"
	"github.com/ivlev/spriteoutline/internal/engine"
	"github.com/ivlev/spriteoutline/internal/export"
	"github.com/ivlev/spriteoutline/internal/outline"
	"github.com/ivlev/spriteoutline/internal/renderer"
	"github.com/ivlev/spriteoutline/internal/source"
)

const cell = 32

func main() {
	sheetPath := filepath.Join(os.TempDir(), "outline_demo_sheet.png")
	outputPath := export.GenerateOutputPath("output", "demo_sheet")
	previewDir := filepath.Join("output", "preview")

	fmt.Println("=== Sprite Outline Demo ===")
	fmt.Printf("Output: %s\n\n", outputPath)

	// Step 1: Create synthetic sprite sheet
	fmt.Println("[1/3] Creating synthetic sprite sheet...")
	sheet := createSpriteSheet()
	if err := renderer.WritePNG(sheetPath, sheet); err != nil {
		log.Fatalf("Failed to write sprite sheet: %v", err)
	}
	fmt.Printf("✓ Created sprite sheet: %s (%dx%d)\n\n", sheetPath, sheet.Bounds().Dx(), sheet.Bounds().Dy())

	// Step 2: Trace every sprite
	fmt.Println("[2/3] Tracing sprites...")
	bottom := outline.Vec2{X: 0.5, Y: 0}
	prof := config.DefaultProfile()
	prof.PixelsPerUnit = cell
	prof.Sprites = []config.Sprite{
		{Name: "ring", Rect: config.Rect{X: 0, Y: 0, W: cell, H: cell}},
		{Name: "diagonal", Rect: config.Rect{X: cell, Y: 0, W: cell, H: cell}},
		{Name: "figure", Rect: config.Rect{X: 2 * cell, Y: 0, W: cell, H: cell}, Pivot: &bottom},
	}
	cfg := &config.Config{
		InputPath:  sheetPath,
		OutputPath: outputPath,
		PreviewDir: previewDir,
		Workers:    2,
		Profile:    prof,
	}

	src, err := source.NewImageSource(sheetPath)
	if err != nil {
		log.Fatalf("Failed to open sprite sheet: %v", err)
	}
	defer src.Close()

	report, err := engine.NewTracingProject(cfg, src).Run(context.Background())
	if err != nil {
		log.Fatalf("Failed to trace: %v", err)
	}
	for _, fr := range report.Frames {
		if fr.Err != nil {
			log.Fatalf("Frame %s failed: %v", fr.Name, fr.Err)
		}
		for _, s := range fr.Sprites {
			if s.Err != nil {
				log.Fatalf("Sprite %s failed: %v", s.Name, s.Err)
			}
			sum := analyzer.Summarize(s.Regions)
			fmt.Printf("  %-9s outers=%d holes=%d area=%d perimeter=%d vertices=%d\n",
				s.Name, sum.Outers, sum.Holes, sum.SolidArea, sum.Perimeter, sum.Vertices)
		}
	}
	fmt.Println()

	// Step 3: Write the outline document
	fmt.Println("[3/3] Writing YAML outline document...")
	os.MkdirAll(filepath.Dir(outputPath), 0755)
	doc := export.Build(report, filepath.Base(sheetPath), prof)
	if err := export.WriteDocument(doc, outputPath); err != nil {
		log.Fatalf("Failed to write document: %v", err)
	}
	fmt.Printf("✓ Document saved to: %s\n", outputPath)
	fmt.Printf("✓ Previews saved to: %s\n", previewDir)

	fmt.Println("\n✅ Demo completed successfully!")
	fmt.Printf("📄 View outlines: cat %s\n", outputPath)
}

// createSpriteSheet draws three sprites side by side: a ring with a hole,
// two diagonally touching squares and a figure with a notch.
func createSpriteSheet() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 3*cell, cell))
	ink := color.NRGBA{R: 40, G: 120, B: 200, A: 255}

	// Ring
	drawRect(img, 4, 4, 28, 28, ink)
	drawRect(img, 10, 10, 22, 22, color.NRGBA{})

	// Squares sharing one corner
	drawRect(img, cell+4, 4, cell+16, 16, ink)
	drawRect(img, cell+16, 16, cell+28, 28, ink)

	// Figure: body, head and a notch
	drawRect(img, 2*cell+8, 12, 2*cell+24, 32, ink)
	drawRect(img, 2*cell+12, 2, 2*cell+20, 10, ink)
	drawRect(img, 2*cell+14, 20, 2*cell+18, 32, color.NRGBA{})

	return img
}

// drawRect fills [x1,x2)×[y1,y2) with c
func drawRect(img *image.NRGBA, x1, y1, x2, y2 int, c color.NRGBA) {
	for y := y1; y < y2; y++ {
		for x := x1; x < x2; x++ {
			if image.Pt(x, y).In(img.Bounds()) {
				img.SetNRGBA(x, y, c)
			}
		}
	}
}

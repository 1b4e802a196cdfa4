package engine

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ivlev/spriteoutline/internal/analyzer"
	"github.com/ivlev/spriteoutline/internal/config"
	"github.com/ivlev/spriteoutline/internal/outline"
	"github.com/ivlev/spriteoutline/internal/source"
)

var errBroken = errors.New("broken frame")

type memSource struct {
	frames []image.Image
}

func (m *memSource) FrameCount() int        { return len(m.frames) }
func (m *memSource) FrameName(i int) string { return fmt.Sprintf("frame_%d", i) }
func (m *memSource) Close() error           { return nil }
func (m *memSource) Frame(i int) (image.Image, error) {
	if m.frames[i] == nil {
		return nil, errBroken
	}
	return m.frames[i], nil
}

// blocks draws opaque squares of side n at the given top-left corners.
func blocks(w, h, n int, corners ...image.Point) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for _, c := range corners {
		for y := c.Y; y < c.Y+n; y++ {
			for x := c.X; x < c.X+n; x++ {
				img.SetNRGBA(x, y, color.NRGBA{R: 200, A: 255})
			}
		}
	}
	return img
}

func newConfig(workers int) *config.Config {
	return &config.Config{Workers: workers, Profile: config.DefaultProfile()}
}

func run(t *testing.T, cfg *config.Config, src source.Source) *Report {
	t.Helper()
	p := NewTracingProject(cfg, src)
	p.Out = io.Discard
	report, err := p.Run(context.Background())
	require.NoError(t, err)
	return report
}

func TestRun_WholeFrame(t *testing.T) {
	src := &memSource{frames: []image.Image{blocks(4, 4, 2, image.Pt(1, 1))}}
	report := run(t, newConfig(1), src)

	require.Len(t, report.Frames, 1)
	fr := report.Frames[0]
	require.NoError(t, fr.Err)
	require.Len(t, fr.Sprites, 1)

	s := fr.Sprites[0]
	assert.Equal(t, "frame_0", s.Name)
	assert.Equal(t, image.Rect(0, 0, 4, 4), s.Rect)
	require.Len(t, s.Polygons, 1)
	assert.Equal(t, outline.Polygon{{X: 1, Y: 3}, {X: 3, Y: 3}, {X: 3, Y: 1}, {X: 1, Y: 1}}, s.Polygons[0])

	// 100 pixels per unit, pivot at the centre (2,2).
	assert.InDeltaSlice(t, []float32{-0.01, 0.01}, []float32{s.Units[0][0].X, s.Units[0][0].Y}, 1e-6)
	require.Len(t, s.Regions, 1)
	assert.Equal(t, analyzer.Outer, s.Regions[0].Kind)
	assert.Equal(t, 4, s.Regions[0].Area)
	assert.Equal(t, 1, report.Polygons)
	assert.Zero(t, report.Failed)
}

func TestRun_WorkerCountDoesNotChangeResults(t *testing.T) {
	var frames []image.Image
	for i := 0; i < 9; i++ {
		frames = append(frames, blocks(12, 10, 1+i%3, image.Pt(i%5, i%4), image.Pt(7, 6)))
	}
	src := &memSource{frames: frames}

	serial := run(t, newConfig(1), src)
	parallel := run(t, newConfig(4), src)

	require.Len(t, parallel.Frames, len(serial.Frames))
	for i := range serial.Frames {
		assert.Equal(t, i, parallel.Frames[i].Index)
		assert.Equal(t, serial.Frames[i].Sprites, parallel.Frames[i].Sprites, "frame %d", i)
	}
	assert.Equal(t, serial.Polygons, parallel.Polygons)
}

func TestRun_SpritesAndFailures(t *testing.T) {
	cfg := newConfig(2)
	right := outline.Vec2{X: 1, Y: 0}
	cfg.Profile.PixelsPerUnit = 1
	cfg.Profile.Sprites = []config.Sprite{
		{Name: "left", Rect: config.Rect{X: 0, Y: 0, W: 4, H: 4}},
		{Name: "right", Rect: config.Rect{X: 4, Y: 0, W: 4, H: 4}, Pivot: &right},
		{Name: "outside", Rect: config.Rect{X: 6, Y: 0, W: 4, H: 4}},
	}
	src := &memSource{frames: []image.Image{
		blocks(8, 4, 2, image.Pt(0, 2), image.Pt(6, 0)),
		nil,
	}}

	report := run(t, cfg, src)
	require.Len(t, report.Frames, 2)
	assert.ErrorIs(t, report.Frames[1].Err, errBroken)

	sprites := report.Frames[0].Sprites
	require.Len(t, sprites, 3)

	left := sprites[0]
	require.NoError(t, left.Err)
	assert.Equal(t, []outline.Polygon{{{X: 0, Y: 2}, {X: 2, Y: 2}, {X: 2, Y: 0}, {X: 0, Y: 0}}}, left.Polygons)
	assert.Equal(t, outline.Vec2{X: -2, Y: -2}, left.Units[0][3])

	rightSprite := sprites[1]
	require.NoError(t, rightSprite.Err)
	assert.Equal(t, image.Rect(4, 0, 8, 4), rightSprite.Rect)
	assert.Equal(t, []outline.Polygon{{{X: 2, Y: 4}, {X: 4, Y: 4}, {X: 4, Y: 2}, {X: 2, Y: 2}}}, rightSprite.Polygons)
	// Pivot at the lower-right corner.
	assert.Equal(t, outline.Vec2{X: -2, Y: 4}, rightSprite.Units[0][0])

	assert.ErrorIs(t, sprites[2].Err, outline.ErrRectOutOfBounds)
	assert.Equal(t, 2, report.Failed)
	assert.Equal(t, 2, report.Polygons)
}

func TestRun_OffsetBounds(t *testing.T) {
	img := image.NewNRGBA(image.Rect(10, 20, 13, 22))
	img.SetNRGBA(10, 20, color.NRGBA{A: 255})
	cfg := newConfig(1)
	cfg.Profile.Sprites = []config.Sprite{{Name: "corner", Rect: config.Rect{W: 2, H: 2}}}

	report := run(t, cfg, &memSource{frames: []image.Image{img}})
	s := report.Frames[0].Sprites[0]
	require.NoError(t, s.Err)
	assert.Equal(t, image.Rect(10, 20, 12, 22), s.Rect)
	assert.Equal(t, []outline.Polygon{{{X: 0, Y: 2}, {X: 1, Y: 2}, {X: 1, Y: 1}, {X: 0, Y: 1}}}, s.Polygons)
}

func TestRun_QRSource(t *testing.T) {
	report := run(t, newConfig(2), source.NewQRSource(2, "spriteoutline", "qr"))
	require.Len(t, report.Frames, 2)
	for _, fr := range report.Frames {
		require.NoError(t, fr.Err)
		require.Len(t, fr.Sprites, 1)
		s := fr.Sprites[0]
		require.NoError(t, s.Err)

		// The finder patterns alone give several outer boundaries and holes.
		sum := analyzer.Summarize(s.Regions)
		assert.Greater(t, sum.Outers, 3)
		assert.GreaterOrEqual(t, sum.Holes, 3)
	}
}

func TestRun_Errors(t *testing.T) {
	p := NewTracingProject(newConfig(1), &memSource{})
	_, err := p.Run(context.Background())
	assert.ErrorIs(t, err, ErrNoFrames)

	cfg := newConfig(1)
	cfg.Profile.PixelsPerUnit = 0
	p = NewTracingProject(cfg, &memSource{frames: []image.Image{blocks(1, 1, 1)}})
	_, err = p.Run(context.Background())
	assert.ErrorIs(t, err, config.ErrPixelsPerUnit)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	p = NewTracingProject(newConfig(2), &memSource{frames: []image.Image{blocks(1, 1, 1), blocks(1, 1, 1)}})
	p.Out = io.Discard
	_, err = p.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRun_Preview(t *testing.T) {
	cfg := newConfig(1)
	cfg.PreviewDir = filepath.Join(t.TempDir(), "preview")
	cfg.Profile.Sprites = []config.Sprite{{Name: "a", Rect: config.Rect{W: 2, H: 2}}}

	run(t, cfg, &memSource{frames: []image.Image{blocks(3, 3, 1, image.Pt(0, 0))}})
	_, err := os.Stat(filepath.Join(cfg.PreviewDir, "frame_0_a.png"))
	assert.NoError(t, err)
}

func TestReport(t *testing.T) {
	report := run(t, newConfig(1), &memSource{frames: []image.Image{blocks(2, 2, 1, image.Pt(0, 0))}})

	var buf bytes.Buffer
	report.Print(&buf, "test-build")
	assert.Contains(t, buf.String(), "Build: test-build")
	assert.Contains(t, buf.String(), "Frames: 1 | Polygons: 1 | Failed: 0")

	path := filepath.Join(t.TempDir(), "benchmark.log")
	require.NoError(t, report.AppendBenchmark(path, "b1", "in/sheet.png"))
	require.NoError(t, report.AppendBenchmark(path, "b2", "in/sheet.png"))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, bytes.Count(data, []byte("\n")))
	assert.Contains(t, string(data), "Input: sheet.png")
}

func TestOversizedSprites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sheet.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, blocks(8, 4, 2, image.Pt(0, 0))))
	require.NoError(t, f.Close())

	src, err := source.NewImageSource(path)
	require.NoError(t, err)

	cfg := newConfig(1)
	cfg.Profile.Sprites = []config.Sprite{
		{Name: "fits", Rect: config.Rect{X: 4, Y: 0, W: 4, H: 4}},
		{Name: "wide", Rect: config.Rect{X: 6, Y: 0, W: 4, H: 4}},
		{Name: "tall", Rect: config.Rect{X: 0, Y: 1, W: 2, H: 4}},
	}
	p := NewTracingProject(cfg, src)
	names, err := p.OversizedSprites()
	require.NoError(t, err)
	assert.Equal(t, []string{"wide", "tall"}, names)

	var buf bytes.Buffer
	p.Out = &buf
	_, err = p.Run(context.Background())
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "wide, tall")

	// Sources without header access and whole-frame profiles skip the check.
	names, err = NewTracingProject(cfg, &memSource{frames: []image.Image{blocks(1, 1, 1)}}).OversizedSprites()
	require.NoError(t, err)
	assert.Empty(t, names)
	names, err = NewTracingProject(newConfig(1), src).OversizedSprites()
	require.NoError(t, err)
	assert.Empty(t, names)
}

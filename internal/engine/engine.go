// Package engine запускает пакетную трассировку: загружает кадры источника,
// трассирует спрайты профиля в ограниченном пуле воркеров и собирает
// результаты в порядке кадров.
package engine

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"golang.org/x/image/draw"
	"golang.org/x/sync/errgroup"

	"github.com/ivlev/spriteoutline/internal/analyzer"
	"github.com/ivlev/spriteoutline/internal/config"
	"github.com/ivlev/spriteoutline/internal/outline"
	"github.com/ivlev/spriteoutline/internal/renderer"
	"github.com/ivlev/spriteoutline/internal/source"
	"github.com/ivlev/spriteoutline/internal/system"
)

// ErrNoFrames возвращается для источника без кадров.
var ErrNoFrames = errors.New("engine: источник не содержит кадров")

// SpriteResult - трассировка одного прямоугольника кадра.
type SpriteResult struct {
	Name     string
	Rect     image.Rectangle // координаты кадра, y вниз
	Pivot    outline.Vec2
	Polygons []outline.Polygon
	Units    []outline.UnitPolygon
	Regions  []analyzer.Region
	Err      error
}

// FrameResult - спрайты одного кадра. Err заполняется, если кадр не удалось
// загрузить; ошибки спрайтов остаются на спрайтах.
type FrameResult struct {
	Index   int
	Name    string
	Bounds  image.Rectangle
	Sprites []SpriteResult
	Err     error
}

// Report - итог Run.
type Report struct {
	Frames   []FrameResult
	Polygons int
	Failed   int // кадры и спрайты с ошибкой
	Load     time.Duration
	Trace    time.Duration
	Total    time.Duration
	Host     system.HostStats
}

type TracingProject struct {
	Config *config.Config
	Source source.Source
	Out    io.Writer // вывод прогресса, os.Stdout если nil

	loadNanos  atomic.Int64
	traceNanos atomic.Int64
}

func NewTracingProject(cfg *config.Config, src source.Source) *TracingProject {
	return &TracingProject{
		Config: cfg,
		Source: src,
	}
}

func (p *TracingProject) out() io.Writer {
	if p.Out == nil {
		return os.Stdout
	}
	return p.Out
}

// Run трассирует все кадры. Ошибки кадров и спрайтов попадают в отчет;
// возвращаемая ошибка - только неверный профиль или отмена контекста.
// Порядок результатов не зависит от числа воркеров.
func (p *TracingProject) Run(ctx context.Context) (*Report, error) {
	startTime := time.Now()
	if err := p.Config.Profile.Validate(); err != nil {
		return nil, err
	}

	frameCount := p.Source.FrameCount()
	if frameCount == 0 {
		return nil, ErrNoFrames
	}

	// Проверяем прямоугольники спрайтов по заголовку первого кадра, не декодируя его
	oversized, err := p.OversizedSprites()
	if err != nil {
		fmt.Fprintf(p.out(), "[!] Не удалось прочитать размер кадра: %v\n", err)
	} else if len(oversized) > 0 {
		fmt.Fprintf(p.out(), "[!] Спрайты выходят за пределы кадра: %s\n", strings.Join(oversized, ", "))
	}

	if p.Config.PreviewDir != "" {
		if err := os.MkdirAll(p.Config.PreviewDir, 0755); err != nil {
			return nil, fmt.Errorf("не удалось создать папку превью: %w", err)
		}
	}

	workers := p.Config.Workers
	if workers < 1 {
		workers = 1
	}
	if workers > frameCount {
		workers = frameCount
	}

	results := make([]FrameResult, frameCount)
	var done atomic.Int32
	p.loadNanos.Store(0)
	p.traceNanos.Store(0)

	// Каждый воркер пишет только в свой слот results, поэтому порядок сохраняется
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := 0; i < frameCount; i++ {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = p.traceFrame(i)
			n := done.Add(1)
			if results[i].Err != nil {
				fmt.Fprintf(p.out(), "[!] Ошибка кадра %s: %v\n", results[i].Name, results[i].Err)
			} else {
				fmt.Fprintf(p.out(), "[>] Ready: %s (%d/%d)\n", results[i].Name, n, frameCount)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	report := &Report{
		Frames: results,
		Load:   time.Duration(p.loadNanos.Load()),
		Trace:  time.Duration(p.traceNanos.Load()),
		Total:  time.Since(startTime),
		Host:   system.ReadHostStats(),
	}
	for _, fr := range results {
		if fr.Err != nil {
			report.Failed++
			continue
		}
		for _, s := range fr.Sprites {
			if s.Err != nil {
				report.Failed++
			}
			report.Polygons += len(s.Polygons)
		}
	}

	if p.Config.ShowStats {
		report.Print(p.out(), p.Config.BuildVersion)
		// Логирование в файл
		if err := report.AppendBenchmark("benchmark.log", p.Config.BuildVersion, p.Config.InputPath); err != nil {
			fmt.Fprintf(p.out(), "[!] Не удалось записать benchmark.log: %v\n", err)
		}
	}
	return report, nil
}

// dimensioner реализуют источники, умеющие читать размер кадра без декодирования.
type dimensioner interface {
	Dimensions(index int) (int, int, error)
}

// OversizedSprites возвращает имена спрайтов профиля, которые не помещаются
// в первый кадр. Для источников без dimensioner проверка пропускается.
func (p *TracingProject) OversizedSprites() ([]string, error) {
	sprites := p.Config.Profile.Sprites
	d, ok := p.Source.(dimensioner)
	if !ok || len(sprites) == 0 || p.Source.FrameCount() == 0 {
		return nil, nil
	}

	w, h, err := d.Dimensions(0)
	if err != nil {
		return nil, err
	}
	frame := image.Rect(0, 0, w, h)

	var names []string
	for _, s := range sprites {
		if !s.Rect.Image().In(frame) {
			names = append(names, s.Name)
		}
	}
	return names, nil
}

func (p *TracingProject) traceFrame(i int) FrameResult {
	res := FrameResult{Index: i, Name: p.Source.FrameName(i)}

	loadStart := time.Now()
	img, err := p.Source.Frame(i)
	if err != nil {
		res.Err = err
		return res
	}
	frame := toNRGBA(img)
	defer system.PutImage(frame)
	res.Bounds = frame.Bounds()
	p.loadNanos.Add(int64(time.Since(loadStart)))

	traceStart := time.Now()
	for _, sp := range p.sprites(res.Name, frame.Bounds()) {
		sr := p.traceSprite(frame, sp)
		if sr.Err == nil && p.Config.PreviewDir != "" {
			sr.Err = p.writePreview(frame, res.Name, sr)
		}
		res.Sprites = append(res.Sprites, sr)
	}
	elapsed := time.Since(traceStart)
	p.traceNanos.Add(int64(elapsed))
	outline.Logger().Debug("engine: frame traced",
		"frame", res.Name, "sprites", len(res.Sprites), "elapsed", elapsed)
	return res
}

// sprites привязывает спрайты профиля к кадру. Без спрайтов трассируется
// весь кадр под его именем.
func (p *TracingProject) sprites(frameName string, bounds image.Rectangle) []SpriteResult {
	prof := p.Config.Profile
	if len(prof.Sprites) == 0 {
		return []SpriteResult{{Name: frameName, Rect: bounds, Pivot: prof.Pivot}}
	}
	out := make([]SpriteResult, len(prof.Sprites))
	for i, s := range prof.Sprites {
		out[i] = SpriteResult{
			Name:  s.Name,
			Rect:  s.Rect.Image().Add(bounds.Min),
			Pivot: prof.PivotFor(s),
		}
	}
	return out
}

func (p *TracingProject) traceSprite(frame *image.NRGBA, sr SpriteResult) SpriteResult {
	prof := p.Config.Profile
	polys, err := outline.Trace(frame, sr.Rect, prof.Condition)
	if err != nil {
		sr.Err = fmt.Errorf("спрайт %s: %w", sr.Name, err)
		return sr
	}
	m, err := outline.NewMapping(prof.PixelsPerUnit, sr.Pivot, sr.Rect.Dx(), sr.Rect.Dy())
	if err != nil {
		sr.Err = fmt.Errorf("спрайт %s: %w", sr.Name, err)
		return sr
	}
	sr.Polygons = polys
	sr.Units = m.Apply(polys)
	sr.Regions = analyzer.Analyze(polys)
	return sr
}

func (p *TracingProject) writePreview(frame *image.NRGBA, frameName string, sr SpriteResult) error {
	img := renderer.Preview(frame, sr.Rect, sr.Polygons, previewScale(sr.Rect))
	name := sr.Name
	if name != frameName {
		name = frameName + "_" + name
	}
	path := filepath.Join(p.Config.PreviewDir, name+".png")
	if err := renderer.WritePNG(path, img); err != nil {
		return fmt.Errorf("превью %s: %w", sr.Name, err)
	}
	return nil
}

// previewScale увеличивает мелкие спрайты, чтобы были видны отдельные пиксели
func previewScale(r image.Rectangle) int {
	side := max(r.Dx(), r.Dy())
	switch {
	case side <= 32:
		return 8
	case side <= 128:
		return 4
	case side <= 512:
		return 2
	default:
		return 1
	}
}

// toNRGBA копирует img в NRGBA-буфер из пула с теми же границами
func toNRGBA(img image.Image) *image.NRGBA {
	b := img.Bounds()
	dst := system.GetImage(b)
	draw.Draw(dst, b, img, b.Min, draw.Src)
	return dst
}

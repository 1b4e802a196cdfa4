package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"

	"github.com/ivlev/spriteoutline/internal/config"
	"github.com/ivlev/spriteoutline/internal/engine"
	"github.com/ivlev/spriteoutline/internal/export"
	"github.com/ivlev/spriteoutline/internal/outline"
	"github.com/ivlev/spriteoutline/internal/source"
	"github.com/ivlev/spriteoutline/internal/system"
)

// version задается через -ldflags "-X main.version=..."
var version = "dev"

func main() {
	// Увеличиваем лимиты системы (для macOS/Linux)
	system.InitResourceLimits()

	// Создаем нужные директории, если их нет
	for _, d := range []string{"input", "output"} {
		os.MkdirAll(d, 0755)
	}

	inputPtr := flag.String("input", "", "Изображение, папка с изображениями или PDF (по умолчанию: самый свежий файл в input/)")
	qrPtr := flag.String("qr", "", "Трассировать QR-код с этим текстом вместо файла")
	qrScalePtr := flag.Int("qr-scale", 4, "Пикселей на модуль QR-кода")
	outputPtr := flag.String("output", "", "Путь к документу контуров, - для stdout (если пусто, генерируется автоматически в output/)")
	profilePtr := flag.String("profile", "", "YAML-профиль трассировки (condition, pixels_per_unit, pivot, sprites)")
	saveProfilePtr := flag.String("save-profile", "", "Сохранить итоговый профиль (с учетом флагов) в YAML")
	showPtr := flag.String("show", "", "Показать сводку документа контуров (latest - самый свежий в output/) и выйти")
	presetPtr := flag.String("preset", "", "Пресет условия: alpha, opaque, dark, light")
	channelPtr := flag.String("channel", "alpha", "Канал: alpha, brightness, red, green, blue")
	comparePtr := flag.String("compare", "greater", "Сравнение: greater или less")
	thresholdPtr := flag.Float64("threshold", 0.5, "Порог в [0,1]")
	ppuPtr := flag.Float64("ppu", 100, "Пикселей на единицу")
	pivotXPtr := flag.Float64("pivot-x", 0.5, "Pivot X как доля ширины спрайта")
	pivotYPtr := flag.Float64("pivot-y", 0.5, "Pivot Y как доля высоты спрайта (0 - низ)")
	dpiPtr := flag.Int("dpi", 72, "DPI")
	workersPtr := flag.Int("workers", runtime.NumCPU(), "Потоки")
	previewPtr := flag.String("preview", "", "Папка для PNG-превью каждого спрайта")
	statsPtr := flag.Bool("stats", false, "Отчет о производительности и запись в benchmark.log")
	verbosePtr := flag.Bool("verbose", false, "Отладочный лог в stderr")

	flag.Parse()

	if *verbosePtr {
		outline.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	// Режим просмотра готового документа
	if *showPtr != "" {
		path, err := resolveDocument(*showPtr, "output")
		if err != nil {
			log.Fatalf("[-] Ошибка: %v", err)
		}
		doc, err := export.ReadDocument(path)
		if err != nil {
			log.Fatalf("[-] Ошибка чтения документа: %v", err)
		}
		fmt.Printf("[*] Документ: %s\n", path)
		export.Describe(os.Stdout, doc)
		return
	}

	set := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })

	prof := config.DefaultProfile()
	if *profilePtr != "" {
		var err error
		prof, err = config.LoadProfile(*profilePtr)
		if err != nil {
			log.Fatalf("[-] Ошибка профиля: %v", err)
		}
		fmt.Printf("[*] Используется профиль: %s\n", *profilePtr)
	}

	err := applyOverrides(&prof, set, overrides{
		Preset:    *presetPtr,
		Channel:   *channelPtr,
		Compare:   *comparePtr,
		Threshold: *thresholdPtr,
		PPU:       *ppuPtr,
		PivotX:    *pivotXPtr,
		PivotY:    *pivotYPtr,
	})
	if err != nil {
		log.Fatalf("[-] Ошибка: %v", err)
	}

	if *saveProfilePtr != "" {
		if err := config.WriteProfile(prof, *saveProfilePtr); err != nil {
			log.Fatalf("[-] Ошибка сохранения профиля: %v", err)
		}
		fmt.Printf("[*] Профиль сохранен: %s\n", *saveProfilePtr)
	}

	cfg := &config.Config{
		InputPath:    *inputPtr,
		QRScale:      *qrScalePtr,
		OutputPath:   *outputPtr,
		PreviewDir:   *previewPtr,
		DPI:          *dpiPtr,
		Workers:      *workersPtr,
		ShowStats:    *statsPtr,
		Verbose:      *verbosePtr,
		BuildVersion: version,
		Profile:      prof,
	}
	if *qrPtr != "" {
		cfg.QRPayloads = []string{*qrPtr}
	}

	src, name, err := openSource(cfg)
	if err != nil {
		log.Fatalf("[-] Ошибка инициализации источника: %v", err)
	}
	defer src.Close()

	if cfg.OutputPath == "" {
		cfg.OutputPath = export.GenerateOutputPath("output", name)
	}

	fmt.Println("--- [SPRITE OUTLINE] ---")
	fmt.Printf("[*] Источник: %s | Кадров: %d | Потоков: %d\n", name, src.FrameCount(), cfg.Workers)
	fmt.Printf("[*] Условие: %s | PPU: %g | Pivot: (%g, %g)\n", prof.Condition, prof.PixelsPerUnit, prof.Pivot.X, prof.Pivot.Y)
	fmt.Println("------------------------")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	project := engine.NewTracingProject(cfg, src)
	if cfg.OutputPath == "-" {
		// stdout занят документом, прогресс уходит в stderr
		project.Out = os.Stderr
	}
	report, err := project.Run(ctx)
	if err != nil {
		log.Fatalf("[-] Ошибка трассировки: %v", err)
	}
	if report.Failed > 0 {
		log.Printf("[!] Ошибок в кадрах и спрайтах: %d, подробности в полях error документа", report.Failed)
	}

	doc := export.Build(report, name, prof)
	if cfg.OutputPath == "-" {
		if err := export.Encode(os.Stdout, doc); err != nil {
			log.Fatalf("[-] Ошибка записи: %v", err)
		}
		return
	}

	// Убеждаемся, что директория существует
	os.MkdirAll(filepath.Dir(cfg.OutputPath), 0755)
	if err := export.WriteDocument(doc, cfg.OutputPath); err != nil {
		log.Fatalf("[-] Ошибка записи: %v", err)
	}
	fmt.Printf("[+++] Успех! Контуров: %d, результат: %s\n", report.Polygons, cfg.OutputPath)
}

// openSource выбирает QR-коды, указанный вход или самый свежий файл в input/.
// Возвращаемое имя подписывает документ.
func openSource(cfg *config.Config) (source.Source, string, error) {
	if len(cfg.QRPayloads) > 0 {
		return source.NewQRSource(cfg.QRScale, cfg.QRPayloads...), "qr", nil
	}

	if cfg.InputPath == "" {
		latest, err := system.FindLatest("input", traceable)
		if err != nil {
			return nil, "", fmt.Errorf("%w. Положите изображение или PDF в input/", err)
		}
		cfg.InputPath = latest
		fmt.Printf("[*] Выбран файл: %s\n", cfg.InputPath)
	}

	src, err := source.Open(cfg.InputPath, cfg.DPI)
	if err != nil {
		return nil, "", err
	}
	return src, filepath.Base(cfg.InputPath), nil
}

func traceable(name string) bool {
	return source.IsImage(name) || system.HasExt(".pdf")(name)
}

// resolveDocument превращает значение -show в путь: latest означает самый
// свежий документ в dir.
func resolveDocument(arg, dir string) (string, error) {
	if arg != "latest" {
		return arg, nil
	}
	return export.FindLatestDocument(dir)
}

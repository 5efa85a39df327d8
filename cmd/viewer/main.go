package main

import (
	"flag"
	"fmt"
	"os"

	"shape-viewer/internal/config"
	"shape-viewer/internal/debug"
	"shape-viewer/internal/graphics"
	"shape-viewer/internal/host"
	"shape-viewer/internal/logger"
	"shape-viewer/internal/prefs"
	"shape-viewer/internal/primitives"
	"shape-viewer/internal/scene"
	"shape-viewer/internal/ui"
	"shape-viewer/internal/viewer"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "viewer:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("viewer", flag.ContinueOnError)
	configPath := fs.String("config", config.DefaultPath, "YAML config file")
	envPath := fs.String("env", ".env", "dotenv file loaded before SHAPEVIEWER_* overrides")
	width := fs.Int("width", 0, "window width (overrides config)")
	height := fs.Int("height", 0, "window height (overrides config)")
	backend := fs.String("prefs", "", "preference store: sqlite, file or memory (overrides config)")
	prefsPath := fs.String("prefs-path", "", "preference store location (overrides config)")
	logPath := fs.String("log", "", "log file (overrides config)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := config.LoadDotEnv(*envPath); err != nil {
		return fmt.Errorf("load %s: %w", *envPath, err)
	}
	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if err := cfg.ApplyEnv(nil); err != nil {
		return err
	}
	if err := cfg.Apply(config.Overrides{
		Width:        *width,
		Height:       *height,
		PrefsBackend: prefs.Backend(*backend),
		PrefsPath:    *prefsPath,
		LogPath:      *logPath,
	}); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log := logger.New(cfg.LogPath)
	store, err := prefs.Open(cfg.PrefsBackend, cfg.PrefsPath)
	if err != nil {
		log.Logf("prefs: %v; using in-memory store", err)
		store = prefs.NewMemoryStore()
	}
	defer store.Close()

	dev := graphics.NewDevice(graphics.WindowOptions{
		Title:     cfg.Title,
		Width:     cfg.Width,
		Height:    cfg.Height,
		TargetFPS: cfg.TargetFPS,
		Antialias: cfg.Antialias,
	}, log)
	frames := host.NewFrameQueue()
	window := host.NewWindow()

	app := viewer.New(viewer.Options{
		Store:     store,
		Catalog:   primitives.New(dev),
		Device:    dev,
		Scheduler: frames,
		Events:    window,
		Logger:    log,
	})
	app.Mount(dev.Window())
	defer app.Unmount()

	overlay := app.Overlay()
	stats := debug.New(graphics.FPS)
	graphics.Run(dev, frames, scene.Background, graphics.Hooks{
		Resize: window.NotifyResize,
		Key: func(r rune) bool {
			if r == 'f' || r == 'F' {
				stats.Toggle()
				return true
			}
			return app.HandleKey(r)
		},
		Click: overlay.Click,
		Overlay: func(p ui.Painter, w, h int32) {
			overlay.Layout(w, h)
			overlay.Draw(p)
			stats.Draw(p, w, h)
		},
		Title: func() string { return app.Snapshot().Title(cfg.Title) },
	})
	return nil
}

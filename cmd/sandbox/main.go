package main

import (
	"errors"
	"log/slog"
	"os"

	"github.com/hubastard/boxui/engine/core"
	glbackend "github.com/hubastard/boxui/engine/gfx/gl"
	"github.com/hubastard/boxui/engine/gfx/renderer2d"
	"github.com/hubastard/boxui/engine/platform"
	"github.com/hubastard/boxui/engine/profiler"
	"github.com/hubastard/boxui/engine/text"
	"github.com/hubastard/boxui/engine/ui"
)

const configPath = "sandbox.yaml"

type App struct {
	theme    ui.Theme
	r2d      *renderer2d.Renderer2D
	fonts    *text.Library
	font     ui.FontHandle
	settings sceneSettings
	stats    renderer2d.Statistics

	layer      *Layer2D
	debugLayer *LayerDebug
}

func (a *App) OnStart(e *core.Engine) {
	profiler.Init(1 << 10) // ~1K scope samples

	var err error
	a.r2d, err = renderer2d.New(e.Renderer, 10000)
	if err != nil {
		panic(err)
	}

	f, err := text.LoadDefault(e.Renderer, e.Config.UI.FontSize)
	if err != nil {
		panic(err)
	}
	a.fonts = text.NewLibrary()
	a.font = a.fonts.Add(f)

	a.settings = defaultSettings()

	// push the 2D demo layer
	a.layer = &Layer2D{r2d: a.r2d, settings: &a.settings, stats: &a.stats}
	e.Layers.Push(a.layer)

	a.debugLayer = &LayerDebug{
		r2d: a.r2d, fonts: a.fonts, font: a.font, theme: a.theme,
		settings: &a.settings, stats: &a.stats,
	}
	e.Layers.Push(a.debugLayer)
}

func (a *App) OnUpdate(e *core.Engine, dt float64)    {}
func (a *App) OnRender(e *core.Engine, alpha float64) {}
func (a *App) OnEvent(e *core.Engine, ev core.Event)  {}
func (a *App) OnShutdown(e *core.Engine) {
	if a.fonts != nil {
		a.fonts.Close()
	}
}

func loadConfig() (core.Config, error) {
	cfg, err := core.LoadConfig(configPath)
	if errors.Is(err, os.ErrNotExist) {
		slog.Info("no config file, using defaults", "path", configPath)
		return core.DefaultConfig(), nil
	}
	return cfg, err
}

func loadTheme(path string) (ui.Theme, error) {
	if path == "" {
		return ui.DefaultTheme(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return ui.Theme{}, err
	}
	defer f.Close()
	return ui.LoadTheme(f)
}

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo})))

	cfg, err := loadConfig()
	if err != nil {
		slog.Error("config", "err", err)
		os.Exit(1)
	}
	theme, err := loadTheme(cfg.UI.Theme)
	if err != nil {
		slog.Error("theme", "err", err)
		os.Exit(1)
	}
	app := &App{theme: theme}

	var win *platform.GLFWWindow
	newWindow := func(cfg core.Config) (core.Window, error) {
		w, err := platform.NewGLFWWindow(cfg)
		win = w
		return w, err
	}
	newRenderer := func(win core.Window, cfg core.Config) (core.Renderer, error) {
		return glbackend.NewRendererGL(win, cfg)
	}

	err = core.Run(app, cfg, newWindow, newRenderer)
	if win != nil {
		win.Destroy()
	}
	if err != nil {
		slog.Error("run", "err", err)
		os.Exit(1)
	}
}

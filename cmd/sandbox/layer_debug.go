package main

import (
	"log/slog"
	"os"
	"time"

	"github.com/hubastard/boxui/engine/colors"
	"github.com/hubastard/boxui/engine/core"
	"github.com/hubastard/boxui/engine/gfx/renderer2d"
	"github.com/hubastard/boxui/engine/gfx/uipaint"
	"github.com/hubastard/boxui/engine/profiler"
	"github.com/hubastard/boxui/engine/scene"
	"github.com/hubastard/boxui/engine/text"
	"github.com/hubastard/boxui/engine/ui"
)

const panelWidth = 320

// LayerDebug owns the immediate-mode UI: a controls panel that edits the 2D
// scene and a stats panel. F1 toggles the stats.
type LayerDebug struct {
	cam      *scene.OrthoCamera2D
	r2d      *renderer2d.Renderer2D
	fonts    *text.Library
	font     ui.FontHandle
	theme    ui.Theme
	settings *sceneSettings
	stats    *renderer2d.Statistics

	ui        *ui.State
	painter   *uipaint.Painter
	showStats bool
	phases    []profiler.PhaseStat
}

func (l *LayerDebug) OnAttach(e *core.Engine) {
	// Pixel camera: origin top-left, Y down.
	w, h := e.Window.FramebufferSize()
	l.cam = scene.NewPixelOrtho2D(w, h)
	l.ui = ui.New(ui.Options{
		Canvas:      ui.XYWH(0, 0, float32(w), float32(h)),
		HashBuckets: e.Config.UI.HashBuckets,
		EvictAfter:  e.Config.UI.EvictAfter,
		Theme:       &l.theme,
		Metrics:     l.fonts,
		DefaultFont: l.font,
		Logger:      slog.Default().With("layer", "debug"),
	})
	l.painter = uipaint.New(l.r2d, l.fonts)
	l.showStats = true
}

func (l *LayerDebug) OnDetach(e *core.Engine) { l.ui.Release() }

func (l *LayerDebug) OnUpdate(e *core.Engine, dt float64) {}

func (l *LayerDebug) OnRender(e *core.Engine, alpha float64) {
	end := profiler.Start("LayerDebug.OnRender")
	defer end()

	l.ui.BeginFrame(float32(e.FrameDelta()))
	l.build(e)
	if _, err := l.ui.EndFrame(); err != nil {
		slog.Warn("ui frame", "err", err)
	}
	l.painter.Render(l.ui, l.cam.VP(), l.font)
}

func (l *LayerDebug) build(e *core.Engine) {
	s := l.ui
	hud := s.BuildBox(ui.FlagLayoutAxisX, "##hud")
	hud.SetPrefSize(ui.AxisY, ui.Flex(0))
	hud.SetPadding(ui.Vec2{X: 16, Y: 16})
	defer s.Parent(hud)()

	l.controls()
	s.Spacer(ui.Flex(0))
	if l.showStats {
		l.statsPanel(e)
	}
}

// column opens a fixed-width vertical strip holding one content-sized panel.
func (l *LayerDebug) column(name string) func() {
	s := l.ui
	col := s.BuildBoxf(0, "##col-%s", name)
	col.SetPrefSize(ui.AxisX, ui.Px(panelWidth))
	popCol := s.Parent(col)

	const pad = 12
	panel := s.BuildBoxf(ui.FlagDrawBackground|ui.FlagDrawBorder|ui.FlagClip, "##panel-%s", name)
	panel.SetPrefSize(ui.AxisY, ui.ChildrenSum(pad))
	panel.SetPadding(ui.Vec2{X: pad, Y: pad})
	popPanel := s.Parent(panel)
	return func() {
		popPanel()
		popCol()
	}
}

func (l *LayerDebug) heading(label string) {
	defer l.ui.WithTextColor(colors.Yellow)()
	l.ui.Label(label)
}

// stat builds a label keyed by id whose text is formatted every frame.
func (l *LayerDebug) stat(id, format string, args ...any) {
	if b := l.ui.Label(id); b != nil {
		b.SetDisplay(l.ui.Sprintf(format, args...))
	}
}

func setDisplay(sig ui.Signal, text string) {
	if sig.Box != nil {
		sig.Box.SetDisplay(text)
	}
}

func (l *LayerDebug) controls() {
	s := l.ui
	defer l.column("controls")()

	l.heading("Scene")
	setDisplay(s.Slider("##spin", &l.settings.Spin, -4, 4),
		s.Sprintf("Spin %.2f rad/s", l.settings.Spin))
	setDisplay(s.Slider("##radius", &l.settings.Radius, 0, 24),
		s.Sprintf("Radius %.0f px", l.settings.Radius))
	s.Checkbox("Outline", &l.settings.Outline)
	s.Checkbox("Sprite", &l.settings.ShowSprite)

	func() {
		defer s.Row("##buttons")()
		pause := s.Button("Pause##pause")
		if pause.Clicked {
			l.settings.Paused = !l.settings.Paused
		}
		if l.settings.Paused {
			setDisplay(pause, "Resume")
		}
		s.Spacer(ui.Px(8))
		if s.Button("Reset").Clicked {
			*l.settings = defaultSettings()
		}
	}()
}

func (l *LayerDebug) statsPanel(e *core.Engine) {
	s := l.ui
	defer l.column("stats")()
	defer s.WithBackground(colors.Black.WithAlpha(0.6))()

	ms := e.FrameDelta() * 1000
	fps := 0.0
	if ms > 0 {
		fps = 1000 / ms
	}

	l.heading("Frame")
	l.stat("##frame", "  %d  %2.3f ms (%.1f FPS)", e.Frames(), ms, fps)
	l.heading("2D Renderer")
	l.stat("##dc", "  Draw Calls: %d", l.stats.DrawCalls)
	l.stat("##quads", "  Quads: %d", l.stats.QuadCount)
	l.stat("##verts", "  Vertices: %d", l.stats.TotalVertexCount())
	l.stat("##tex", "  Textures: %d", l.stats.TextureCount)
	l.heading("UI")
	l.stat("##persist", "  Persistent boxes: %d", s.NumPersistent())
	l.stat("##hot", "  Hot: %v", s.HotKey())
	l.heading("Phases (last / avg ms)")
	l.phases = profiler.AppendPhases(l.phases[:0])
	for _, p := range l.phases {
		l.stat(s.Sprintf("##phase-%s", p.Name), "  %s: %.3f / %.3f",
			p.Name, ms64(p.Last), ms64(p.Avg))
	}
	l.heading("Memory")
	mem := profiler.Memory()
	l.stat("##mem", "  Heap: %.3f MB", float32(mem.HeapAlloc)/(1<<20))
	l.stat("##allocs", "  Allocs: %d  GCs: %d", mem.Mallocs, mem.NumGC)
	l.stat("##gr", "  Goroutines: %d", profiler.NumGoroutine())
	l.heading("GPU")
	l.stat("##vendor", "  %s", e.Renderer.GPUVendor())
	l.stat("##renderer", "  %s", e.Renderer.GPURenderer())
	l.stat("##version", "  %s", e.Renderer.GPUVersion())
}

// wantsMouse reports whether the UI owns the pointer this frame.
func (l *LayerDebug) wantsMouse() bool {
	return l.ui.HotKey() != 0 || l.ui.ActiveKey() != 0
}

func (l *LayerDebug) OnEvent(e *core.Engine, ev core.Event) bool {
	switch v := ev.(type) {
	case core.EventMouseMove:
		l.ui.FeedMouseMove(float32(v.X), float32(v.Y))
	case core.EventMouseButton:
		if v.Button != core.MouseLeft {
			return false
		}
		l.ui.FeedMouseButton(v.Down)
		return l.wantsMouse()
	case core.EventScroll:
		return l.wantsMouse()
	case core.EventKey:
		if !v.Down {
			return false
		}
		switch {
		case v.Key == core.KeyF1:
			l.showStats = !l.showStats
			return true
		case v.Key == core.KeyP && v.Mods&core.ModCtrl != 0:
			if path, err := profiler.Dump(os.TempDir()); err == nil {
				slog.Info("speedscope dump", "path", path)
			} else {
				slog.Error("profiler dump", "err", err)
			}
			return true
		}
	case core.EventResize:
		l.cam.SetViewportPixels(v.W, v.H)
		l.cam.SetPosition(float32(v.W)/2, float32(v.H)/2)
		l.ui.SetCanvas(ui.XYWH(0, 0, float32(v.W), float32(v.H)))
	}
	return false
}

func ms64(d time.Duration) float64 { return float64(d) / float64(time.Millisecond) }

package main

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"

	"github.com/chewxy/math32"
	"github.com/hubastard/boxui/engine/assets"
	"github.com/hubastard/boxui/engine/colors"
	"github.com/hubastard/boxui/engine/core"
	"github.com/hubastard/boxui/engine/gfx/renderer2d"
	"github.com/hubastard/boxui/engine/profiler"
	"github.com/hubastard/boxui/engine/scene"
)

// sceneSettings is edited by the debug UI and read by the 2D layer.
type sceneSettings struct {
	Spin       float32 // radians per second
	Radius     float32 // corner radius of the tiles
	Outline    bool
	Paused     bool
	ShowSprite bool
}

func defaultSettings() sceneSettings {
	return sceneSettings{Spin: 1, Radius: 6, ShowSprite: true}
}

const gridN = 6

// ------- A simple 2D Layer demo -------
type Layer2D struct {
	cam      *scene.OrthoCamera2D
	ctrl     *scene.OrthoController2D
	r2d      *renderer2d.Renderer2D
	settings *sceneSettings
	stats    *renderer2d.Statistics
	player   renderer2d.Region
	t        float32
}

func (l *Layer2D) OnAttach(e *core.Engine) {
	// Camera sized to framebuffer
	w, h := e.Window.FramebufferSize()
	l.cam = scene.NewOrtho2D(w, h)
	l.cam.SetZoom(2)
	l.ctrl = scene.NewOrthoController2D(l.cam)

	pw, ph, pixels, err := assets.LoadPNG(os.DirFS("assets"), "player.png")
	switch {
	case errors.Is(err, fs.ErrNotExist):
		slog.Info("no sprite, drawing tiles only")
		return
	case err != nil:
		slog.Warn("sprite", "err", err)
		return
	}
	tex, err := e.Renderer.CreateTexture(core.TextureDesc{
		Width:     pw,
		Height:    ph,
		Format:    core.TextureRGBA8,
		Pixels:    pixels,
		MinFilter: "linear",
		MagFilter: "nearest",
		WrapU:     "clamp",
		WrapV:     "clamp",
	})
	if err != nil {
		slog.Warn("sprite upload", "err", err)
		return
	}
	l.player = renderer2d.NewRegion(tex, 0, 0, 32, 32, pw, ph)
}

func (l *Layer2D) OnDetach(e *core.Engine) {}

func (l *Layer2D) OnUpdate(e *core.Engine, dt float64) {
	l.ctrl.Update(e.Input, float32(dt))
	if !l.settings.Paused {
		l.t += float32(dt) * l.settings.Spin
	}

	if e.Input.IsKeyDown(core.KeyEscape) {
		e.Window.RequestClose()
	}
}

func (l *Layer2D) OnRender(e *core.Engine, alpha float64) {
	renderEnd := profiler.Start("Layer2D.OnRender")
	defer renderEnd()

	var border float32
	if l.settings.Outline {
		border = 2
	}

	l.r2d.BeginScene(l.cam.VP())
	const cell = 48
	origin := -float32(gridN) * cell / 2
	for i := 0; i < gridN; i++ {
		for j := 0; j < gridN; j++ {
			x := origin + float32(i)*cell
			y := origin + float32(j)*cell
			c := colors.Color{float32(i) / gridN, float32(j) / gridN, 0.8, 1}
			if (i+j)%2 == 0 {
				l.r2d.DrawRoundedRect(x+4, y+4, cell-8, cell-8, c, l.settings.Radius, border)
			} else {
				phase := l.t + float32(i+j)*0.3
				l.r2d.DrawQuad(x+cell/2, y+cell/2, cell*0.5, cell*0.5, c, phase)
			}
		}
	}
	if l.settings.ShowSprite {
		bob := math32.Sin(l.t*2) * 8
		l.r2d.DrawRegion(-16, bob-16, 32, 32, l.player, colors.White)
	}
	l.r2d.EndScene()
	*l.stats = l.r2d.Stats()
}

func (l *Layer2D) OnEvent(e *core.Engine, ev core.Event) bool {
	switch v := ev.(type) {
	case core.EventKey:
		if v.Down && v.Key == core.KeyR && v.Mods&core.ModCtrl != 0 {
			l.cam.SetPosition(0, 0)
			l.cam.SetZoom(2)
			return true
		}
	case core.EventResize:
		l.cam.SetViewportPixels(v.W, v.H)
	case core.EventScroll:
		return l.ctrl.HandleEvent(ev)
	}
	return false
}

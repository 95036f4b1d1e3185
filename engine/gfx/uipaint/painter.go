// Package uipaint draws a ui.State through the batched 2D renderer.
package uipaint

import (
	"github.com/hubastard/boxui/engine/colors"
	"github.com/hubastard/boxui/engine/gfx/renderer2d"
	"github.com/hubastard/boxui/engine/text"
	"github.com/hubastard/boxui/engine/ui"
)

// Painter implements ui.Painter and ui.Clipper. Rect coordinates are
// framebuffer pixels, so the renderer must be in a pixel projection.
type Painter struct {
	r2d   *renderer2d.Renderer2D
	fonts *text.Library
}

func New(r2d *renderer2d.Renderer2D, fonts *text.Library) *Painter {
	return &Painter{r2d: r2d, fonts: fonts}
}

func (p *Painter) DrawRect(r ui.Rect, c colors.Color, cornerRadius, borderThickness, opacity float32) {
	c[3] *= opacity
	p.r2d.DrawRoundedRect(r.Min.X, r.Min.Y, r.W(), r.H(), c, cornerRadius, borderThickness)
}

func (p *Painter) DrawText(pos ui.Vec2, s string, font ui.FontHandle, size float32, c colors.Color) {
	text.DrawText(p.r2d, p.fonts.Get(font), pos.X, pos.Y, size, s, c)
}

func (p *Painter) PushClip(r ui.Rect) { p.r2d.PushClip(r.Min.X, r.Min.Y, r.W(), r.H()) }
func (p *Painter) PopClip()           { p.r2d.PopClip() }

// Render draws the last finished frame of s as one scene.
func (p *Painter) Render(s *ui.State, viewProj [16]float32, defaultFont ui.FontHandle) {
	p.r2d.BeginScene(viewProj)
	s.Draw(p, defaultFont)
	p.r2d.EndScene()
}

package ui

import (
	"github.com/hubastard/boxui/engine/colors"
	"github.com/hubastard/boxui/engine/profiler"
)

// FontHandle identifies a font owned by the font collaborator. The zero
// handle means "no override".
type FontHandle uint32

func (h FontHandle) IsZero() bool { return h == 0 }

// FontMetrics measures text for TextContent sizing.
type FontMetrics interface {
	MeasureText(font FontHandle, size float32, s string) Vec2
}

// Painter receives the primitives emitted by Draw. Calls are synchronous and
// append-only.
type Painter interface {
	DrawRect(r Rect, c colors.Color, cornerRadius, borderThickness, opacity float32)
	DrawText(pos Vec2, s string, font FontHandle, size float32, c colors.Color)
}

// Clipper is implemented by painters that can restrict drawing to a rect.
// Boxes flagged FlagClip clip their descendants when the painter supports it.
type Clipper interface {
	PushClip(r Rect)
	PopClip()
}

// Draw walks the finished tree in tree order and emits primitives to p.
// defaultFont is used for boxes without a font override.
func (s *State) Draw(p Painter, defaultFont FontHandle) {
	if s == nil || s.released || s.root == nil || p == nil {
		return
	}
	end := profiler.Start("ui.draw")
	defer end()
	clip, _ := p.(Clipper)
	s.drawBox(s.root, p, clip, defaultFont)
}

func (s *State) drawBox(b *Box, p Painter, clip Clipper, defaultFont FontHandle) {
	st := b.style
	opacity := 1 - b.DisabledT()/2

	if b.flags&FlagDrawBackground != 0 {
		k := 1 + s.theme.HotBoost*b.HotT() - s.theme.ActiveDim*b.ActiveT()
		p.DrawRect(b.rect, st.Background.Scale(k), st.CornerRadius, 0, opacity)
	}

	if b.flags&FlagDrawBorder != 0 && st.BorderThickness > 0 {
		for _, edge := range borderEdges(b.rect, st.BorderThickness) {
			p.DrawRect(edge, st.Border, 0, 0, opacity)
		}
	}

	if b.flags&FlagDrawText != 0 && b.display != "" {
		font := defaultFont
		if !b.font.IsZero() {
			font = b.font
		}
		p.DrawText(s.textOrigin(b), b.display, font, b.fontSize, st.Text.WithAlpha(st.Text[3]*opacity))
	}

	if b.customDraw != nil {
		b.customDraw(b, p, b.customData)
	}

	clipping := clip != nil && b.flags&FlagClip != 0
	if clipping {
		clip.PushClip(b.rect)
	}
	for c := b.first; c != nil; c = c.next {
		s.drawBox(c, p, clip, defaultFont)
	}
	if clipping {
		clip.PopClip()
	}
}

// borderEdges returns the top, bottom, left and right edge rects of r.
func borderEdges(r Rect, t float32) [4]Rect {
	return [4]Rect{
		{Min: r.Min, Max: Vec2{r.Max.X, r.Min.Y + t}},
		{Min: Vec2{r.Min.X, r.Max.Y - t}, Max: r.Max},
		{Min: Vec2{r.Min.X, r.Min.Y + t}, Max: Vec2{r.Min.X + t, r.Max.Y - t}},
		{Min: Vec2{r.Max.X - t, r.Min.Y + t}, Max: Vec2{r.Max.X, r.Max.Y - t}},
	}
}

// textOrigin places the text after the leading padding, centered vertically.
func (s *State) textOrigin(b *Box) Vec2 {
	x := b.rect.Min.X + b.padding.X
	if sz := b.pref[AxisX]; sz.Kind == SizeTextContent {
		x += sz.Value
	}
	h := s.measure(b).Y
	return Vec2{X: x, Y: b.rect.Min.Y + (b.rect.H()-h)/2}
}

package text

import (
	"unicode"

	"github.com/hubastard/boxui/engine/colors"
	"github.com/hubastard/boxui/engine/gfx/renderer2d"
)

// DrawText draws s with its top-left corner at (x, y), scaled to size pixels.
// Positive Y goes downward (matching the 2D projection).
func DrawText(r2d *renderer2d.Renderer2D, f *Font, x, y, size float32, s string, color colors.Color) {
	if f == nil || f.Texture == nil {
		return
	}
	scale := f.scale(size)
	penX := x
	baseY := y + f.Ascent*scale
	var prev rune = -1

	for _, r := range s {
		if r == '\n' {
			penX = x
			baseY += f.LineHeight() * scale
			prev = -1
			continue
		}

		g, ok := f.Glyphs[r]
		if !ok {
			penX += f.Glyphs[' '].Advance * scale
			prev = r
			continue
		}
		if prev >= 0 {
			penX += f.Kern(prev, r) * scale
		}

		if g.W > 0 && g.H > 0 && !unicode.IsSpace(r) {
			// top = baseline - BearingY
			w, h := float32(g.W)*scale, float32(g.H)*scale
			left := penX + g.BearingX*scale
			top := baseY - g.BearingY*scale
			r2d.DrawTexturedQuadUV(
				left+w*0.5, top+h*0.5,
				w, h,
				f.Texture, color, 0,
				g.U0, g.V0, g.U1, g.V1,
			)
		}

		penX += g.Advance * scale
		prev = r
	}
}

// MeasureText returns the extent of s drawn at size pixels.
func MeasureText(f *Font, s string, size float32) (width, height float32) {
	var lineW float32
	var prev rune = -1
	lineH := f.LineHeight()
	height = lineH

	for _, r := range s {
		if r == '\n' {
			width = max(width, lineW)
			lineW = 0
			height += lineH
			prev = -1
			continue
		}

		g, ok := f.Glyphs[r]
		if !ok {
			lineW += f.Glyphs[' '].Advance
			prev = r
			continue
		}
		if prev >= 0 {
			lineW += f.Kern(prev, r)
		}
		lineW += g.Advance
		prev = r
	}

	width = max(width, lineW)
	scale := f.scale(size)
	return width * scale, height * scale
}

func (f *Font) scale(size float32) float32 {
	if size <= 0 {
		return 1
	}
	return size / f.SizePx
}

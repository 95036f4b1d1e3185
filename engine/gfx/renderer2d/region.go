package renderer2d

import "github.com/hubastard/boxui/engine/core"

// Region is a rectangle of a texture addressed by UVs with a top-left origin.
// Pixel rows are uploaded top row first, so V grows downward like y.
type Region struct {
	Texture core.Texture
	U0, V0  float32
	U1, V1  float32
	W, H    int // size in texels
}

// NewRegion maps the pixel rect (x, y, w, h) of an atlasW by atlasH texture
// to UVs. The rect is clamped to the atlas. An empty atlas or a rect that
// lies outside it yields a Region with zero size.
func NewRegion(tex core.Texture, x, y, w, h, atlasW, atlasH int) Region {
	if atlasW <= 0 || atlasH <= 0 {
		return Region{Texture: tex}
	}
	x0, y0 := clampInt(x, 0, atlasW), clampInt(y, 0, atlasH)
	x1, y1 := clampInt(x+w, x0, atlasW), clampInt(y+h, y0, atlasH)
	return Region{
		Texture: tex,
		U0:      float32(x0) / float32(atlasW),
		V0:      float32(y0) / float32(atlasH),
		U1:      float32(x1) / float32(atlasW),
		V1:      float32(y1) / float32(atlasH),
		W:       x1 - x0,
		H:       y1 - y0,
	}
}

// TileRegion returns cell (col, row) of a sprite sheet made of cw by ch cells.
func TileRegion(tex core.Texture, col, row, cw, ch, atlasW, atlasH int) Region {
	return NewRegion(tex, col*cw, row*ch, cw, ch, atlasW, atlasH)
}

// Empty reports whether the region covers no texels.
func (r Region) Empty() bool { return r.Texture == nil || r.W <= 0 || r.H <= 0 }

// FlipX mirrors the region horizontally.
func (r Region) FlipX() Region {
	r.U0, r.U1 = r.U1, r.U0
	return r
}

func clampInt(v, lo, hi int) int { return max(lo, min(v, hi)) }

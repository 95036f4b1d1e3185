package text

import (
	"fmt"
	"image"
	"log/slog"

	"github.com/hubastard/boxui/engine/assets"
	"github.com/hubastard/boxui/engine/core"
	"github.com/hubastard/boxui/engine/profiler"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

const (
	atlasPadding = 2
	maxAtlasSize = 4096
)

type Glyph struct {
	Rune     rune
	Advance  float32 // pixels
	BearingX float32 // left bearing in pixels
	BearingY float32 // top bearing in pixels (distance from baseline to glyph top)
	W, H     int     // glyph bitmap size
	U0, V0   float32 // UVs in atlas
	U1, V1   float32
}

type kernPair struct{ a, b rune }

// Font is a rasterized glyph atlas for one face at one pixel size. The atlas
// lives on the CPU until Upload creates the texture.
type Font struct {
	SizePx                   float32
	Ascent, Descent, LineGap float32
	Glyphs                   map[rune]Glyph
	Texture                  core.Texture
	AtlasW, AtlasH           int

	pixels    []byte
	kerning   map[kernPair]float32
	closeFace func()
}

// NewFont rasterizes Latin-1 (32..255) from face into a white, alpha-coverage
// atlas. sizePx is the size the face was built at.
func NewFont(face font.Face, sizePx float32) (*Font, error) {
	if face == nil {
		return nil, fmt.Errorf("text: nil face")
	}
	if sizePx <= 0 {
		return nil, fmt.Errorf("text: invalid font size %v", sizePx)
	}
	end := profiler.Start("text.rasterize")
	defer end()

	// Metrics in pixels
	m := face.Metrics()
	ascent := float32(m.Ascent.Round())
	descent := float32(-m.Descent.Round())
	lineGap := float32(m.Height.Round()) - ascent + descent

	type meas struct {
		r      rune
		w, h   int
		adv    float32
		bx, by float32
	}
	measure := make([]meas, 0, 224)
	for rr := rune(32); rr <= 255; rr++ {
		br, adv, ok := face.GlyphBounds(rr)
		if !ok {
			continue
		}
		measure = append(measure, meas{
			r: rr,
			w: (br.Max.X - br.Min.X).Round(), h: (br.Max.Y - br.Min.Y).Round(),
			adv: float32(adv.Round()),
			bx:  float32(br.Min.X.Round()),
			by:  float32(-br.Min.Y.Round()), // distance from baseline to top
		})
	}

	// Shelf packer. Start with 256^2 and grow until everything fits.
	atlasSize := 256
	var pos map[rune]image.Point
	for {
		x, y, rowH := atlasPadding, atlasPadding, 0
		fits := true
		pos = make(map[rune]image.Point, len(measure))
		for _, g := range measure {
			if g.w == 0 || g.h == 0 {
				continue
			}
			if g.w+atlasPadding*2 > atlasSize || g.h+atlasPadding*2 > atlasSize {
				fits = false
				break
			}
			if x+g.w+atlasPadding > atlasSize {
				x = atlasPadding
				y += rowH + atlasPadding
				rowH = 0
			}
			if y+g.h+atlasPadding > atlasSize {
				fits = false
				break
			}
			pos[g.r] = image.Pt(x, y)
			x += g.w + atlasPadding
			rowH = max(rowH, g.h)
		}
		if fits {
			break
		}
		atlasSize *= 2
		if atlasSize > maxAtlasSize {
			return nil, fmt.Errorf("text: font atlas too large (>%d)", maxAtlasSize)
		}
	}

	// White glyphs on a transparent background.
	dst := image.NewRGBA(image.Rect(0, 0, atlasSize, atlasSize))
	drawer := &font.Drawer{Dst: dst, Src: image.White, Face: face}

	glyphs := make(map[rune]Glyph, len(measure))
	for _, g := range measure {
		gl := Glyph{
			Rune: g.r, Advance: g.adv,
			BearingX: g.bx, BearingY: g.by,
			W: g.w, H: g.h,
		}
		if p, ok := pos[g.r]; ok {
			drawer.Dot = fixed.P(p.X-int(g.bx), p.Y+int(g.by))
			drawer.DrawString(string(g.r))
			gl.U0 = float32(p.X) / float32(atlasSize)
			gl.V0 = float32(p.Y) / float32(atlasSize)
			gl.U1 = float32(p.X+g.w) / float32(atlasSize)
			gl.V1 = float32(p.Y+g.h) / float32(atlasSize)
		}
		glyphs[g.r] = gl
	}

	kerning := make(map[kernPair]float32)
	for _, a := range measure {
		for _, b := range measure {
			if dx := face.Kern(a.r, b.r); dx != 0 {
				kerning[kernPair{a.r, b.r}] = float32(dx) / 64
			}
		}
	}

	w, h, pix := assets.Pixels(dst)
	// The drawer wrote premultiplied white; the quad shader expects straight
	// alpha, so the color channels stay white and coverage lives in alpha.
	for i := 0; i < len(pix); i += 4 {
		pix[i], pix[i+1], pix[i+2] = 255, 255, 255
	}
	return &Font{
		SizePx: sizePx,
		Ascent: ascent, Descent: descent, LineGap: lineGap,
		Glyphs: glyphs,
		AtlasW: w, AtlasH: h,
		pixels:  pix,
		kerning: kerning,
	}, nil
}

// LoadTTF parses TrueType/OpenType data, rasterizes it at sizePx and uploads
// the atlas.
func LoadTTF(r core.Renderer, ttf []byte, sizePx float32) (*Font, error) {
	ft, err := opentype.Parse(ttf)
	if err != nil {
		return nil, fmt.Errorf("text: parse font: %w", err)
	}
	face, err := opentype.NewFace(ft, &opentype.FaceOptions{
		Size: float64(sizePx), DPI: 72, Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("text: new face: %w", err)
	}
	f, err := NewFont(face, sizePx)
	if err != nil {
		_ = face.Close()
		return nil, err
	}
	f.closeFace = func() { _ = face.Close() }
	if err := f.Upload(r); err != nil {
		f.Close()
		return nil, err
	}
	slog.Info("font loaded", "size", sizePx, "glyphs", len(f.Glyphs), "atlas", f.AtlasW)
	return f, nil
}

// LoadDefault loads the embedded Go Regular face.
func LoadDefault(r core.Renderer, sizePx float32) (*Font, error) {
	return LoadTTF(r, goregular.TTF, sizePx)
}

// Upload creates the atlas texture. The CPU copy is released afterwards.
func (f *Font) Upload(r core.Renderer) error {
	if f.Texture != nil {
		return nil
	}
	tex, err := r.CreateTexture(core.TextureDesc{
		Width: f.AtlasW, Height: f.AtlasH,
		Format:    core.TextureRGBA8,
		Pixels:    f.pixels,
		MinFilter: "linear",
		MagFilter: "linear",
		WrapU:     "clamp",
		WrapV:     "clamp",
	})
	if err != nil {
		return fmt.Errorf("text: upload atlas: %w", err)
	}
	f.Texture = tex
	f.pixels = nil
	return nil
}

// Pixels returns the CPU atlas, or nil once uploaded.
func (f *Font) Pixels() []byte { return f.pixels }

func (f *Font) Close() {
	if f != nil && f.closeFace != nil {
		f.closeFace()
		f.closeFace = nil
	}
}

// Kern returns the pixel adjustment between a and b at the atlas size.
func (f *Font) Kern(a, b rune) float32 { return f.kerning[kernPair{a, b}] }

// Baseline-to-top distance (useful to position text by top-left).
func (f *Font) BaselineToTop() float32    { return f.Ascent }
func (f *Font) BaselineToBottom() float32 { return -f.Descent }
func (f *Font) LineHeight() float32       { return f.Ascent - f.Descent + f.LineGap }

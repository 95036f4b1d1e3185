package text_test

import (
	"testing"

	"github.com/hubastard/boxui/engine/colors"
	"github.com/hubastard/boxui/engine/core/coretest"
	"github.com/hubastard/boxui/engine/gfx/renderer2d"
	"github.com/hubastard/boxui/engine/text"
	"github.com/hubastard/boxui/engine/ui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/basicfont"
)

// basic returns the 7x13 bitmap face: 7px advance, 6x13 glyphs, ascent 11.
func basic(t *testing.T) *text.Font {
	t.Helper()
	f, err := text.NewFont(basicfont.Face7x13, 13)
	require.NoError(t, err)
	return f
}

func TestNewFontMetrics(t *testing.T) {
	f := basic(t)
	assert.Equal(t, float32(11), f.Ascent)
	assert.Equal(t, float32(-2), f.Descent)
	assert.Equal(t, float32(0), f.LineGap)
	assert.Equal(t, float32(13), f.LineHeight())
	assert.Equal(t, float32(11), f.BaselineToTop())
	assert.Equal(t, float32(2), f.BaselineToBottom())

	g, ok := f.Glyphs['a']
	require.True(t, ok)
	assert.Equal(t, float32(7), g.Advance)
	assert.Equal(t, 6, g.W)
	assert.Equal(t, 13, g.H)
	assert.Equal(t, float32(11), g.BearingY)
	assert.Less(t, g.U0, g.U1)
	assert.Less(t, g.V0, g.V1)
}

func TestNewFontAtlasPixels(t *testing.T) {
	f := basic(t)
	require.Len(t, f.Pixels(), f.AtlasW*f.AtlasH*4)
	assert.Equal(t, 256, f.AtlasW)

	// Some coverage landed in the atlas; color stays white (straight alpha).
	var covered, tinted int
	pix := f.Pixels()
	for i := 0; i < len(pix); i += 4 {
		if pix[i] != 255 || pix[i+1] != 255 || pix[i+2] != 255 {
			tinted++
		}
		if pix[i+3] > 0 {
			covered++
		}
	}
	assert.Zero(t, tinted)
	assert.Positive(t, covered)
}

func TestNewFontRejectsBadInput(t *testing.T) {
	_, err := text.NewFont(nil, 13)
	assert.Error(t, err)
	_, err = text.NewFont(basicfont.Face7x13, 0)
	assert.Error(t, err)
}

func TestMeasureText(t *testing.T) {
	f := basic(t)
	w, h := text.MeasureText(f, "abc", 13)
	assert.Equal(t, float32(21), w)
	assert.Equal(t, float32(13), h)

	w, h = text.MeasureText(f, "ab\nabcd", 13)
	assert.Equal(t, float32(28), w)
	assert.Equal(t, float32(26), h)

	w, h = text.MeasureText(f, "abc", 26)
	assert.Equal(t, float32(42), w, "scales with size")
	assert.Equal(t, float32(26), h)

	w, _ = text.MeasureText(f, "", 13)
	assert.Zero(t, w)
}

func TestUploadCreatesTexture(t *testing.T) {
	r := &coretest.Renderer{}
	f := basic(t)
	require.NoError(t, f.Upload(r))
	require.Len(t, r.Textures, 1)
	desc := r.Textures[0].Desc
	assert.Equal(t, f.AtlasW, desc.Width)
	assert.Len(t, desc.Pixels, f.AtlasW*f.AtlasH*4)
	assert.Nil(t, f.Pixels(), "CPU copy released")
	assert.Same(t, r.Textures[0], f.Texture)

	require.NoError(t, f.Upload(r), "second upload is a no-op")
	assert.Len(t, r.Textures, 1)
}

func TestUploadFailure(t *testing.T) {
	f := basic(t)
	err := f.Upload(&coretest.Renderer{FailCreate: true})
	assert.ErrorIs(t, err, coretest.ErrCreate)
	assert.Nil(t, f.Texture)
}

func TestLoadDefault(t *testing.T) {
	r := &coretest.Renderer{}
	f, err := text.LoadDefault(r, 24)
	require.NoError(t, err)
	defer f.Close()

	assert.Contains(t, f.Glyphs, 'A')
	assert.NotNil(t, f.Texture)
	w, h := text.MeasureText(f, "Hello", 24)
	assert.Positive(t, w)
	assert.InDelta(t, f.LineHeight(), h, 1e-4)
}

func TestLoadTTFRejectsGarbage(t *testing.T) {
	_, err := text.LoadTTF(&coretest.Renderer{}, []byte("not a font"), 16)
	assert.Error(t, err)
}

func TestDrawText(t *testing.T) {
	r := &coretest.Renderer{}
	rd, err := renderer2d.New(r, 64)
	require.NoError(t, err)
	f := basic(t)
	require.NoError(t, f.Upload(r))

	rd.BeginScene([16]float32{})
	text.DrawText(rd, f, 10, 20, 13, "a b", colors.White)
	rd.EndScene()

	require.Len(t, r.Draws, 1)
	v := r.Draws[0].Vertices
	require.Len(t, v, 2*4*15, "the space advances without a quad")
	assert.Equal(t, []float32{10, 20}, v[0:2], "top-left of 'a'")
	assert.Equal(t, []float32{16, 33}, v[3*15:3*15+2])
	assert.Equal(t, float32(24), v[4*15], "'b' starts two advances later")
	assert.Equal(t, float32(1), v[8], "atlas in slot 1")
}

func TestDrawTextScalesAndBreaksLines(t *testing.T) {
	r := &coretest.Renderer{}
	rd, err := renderer2d.New(r, 64)
	require.NoError(t, err)
	f := basic(t)
	require.NoError(t, f.Upload(r))

	rd.BeginScene([16]float32{})
	text.DrawText(rd, f, 0, 0, 26, "a\nb", colors.White)
	rd.EndScene()

	v := r.Draws[0].Vertices
	require.Len(t, v, 2*4*15)
	assert.Equal(t, []float32{12, 26}, v[3*15:3*15+2], "glyph doubled")
	assert.Equal(t, []float32{0, 26}, v[4*15:4*15+2], "second line one scaled line height down")
}

func TestDrawTextWithoutTexture(t *testing.T) {
	r := &coretest.Renderer{}
	rd, err := renderer2d.New(r, 64)
	require.NoError(t, err)
	rd.BeginScene([16]float32{})
	text.DrawText(rd, basic(t), 0, 0, 13, "abc", colors.White)
	text.DrawText(rd, nil, 0, 0, 13, "abc", colors.White)
	rd.EndScene()
	assert.Empty(t, r.Draws)
}

func TestLibrary(t *testing.T) {
	lib := text.NewLibrary()
	assert.Nil(t, lib.Get(1))
	assert.Equal(t, ui.Vec2{X: 30, Y: 24}, lib.MeasureText(0, 20, "abc"), "estimate without fonts")

	small := basic(t)
	big, err := text.NewFont(basicfont.Face7x13, 26)
	require.NoError(t, err)
	h1 := lib.Add(small)
	h2 := lib.Add(big)
	assert.Equal(t, ui.FontHandle(1), h1)
	assert.Equal(t, ui.FontHandle(2), h2)
	assert.Equal(t, 2, lib.Len())

	assert.Same(t, small, lib.Get(0), "zero handle falls back to the first font")
	assert.Same(t, big, lib.Get(h2))
	assert.Same(t, small, lib.Get(99))

	assert.Equal(t, ui.Vec2{X: 21, Y: 13}, lib.MeasureText(h1, 13, "abc"))
	// big was rasterized as if at 26px, so 13px halves its metrics.
	assert.Equal(t, ui.Vec2{X: 10.5, Y: 6.5}, lib.MeasureText(h2, 13, "abc"))

	var _ ui.FontMetrics = lib
	lib.Close()
	assert.Zero(t, lib.Len())
}

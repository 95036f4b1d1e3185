package uipaint_test

import (
	"io"
	"log/slog"
	"testing"

	"github.com/hubastard/boxui/engine/colors"
	"github.com/hubastard/boxui/engine/core"
	"github.com/hubastard/boxui/engine/core/coretest"
	"github.com/hubastard/boxui/engine/gfx/renderer2d"
	"github.com/hubastard/boxui/engine/gfx/uipaint"
	"github.com/hubastard/boxui/engine/text"
	"github.com/hubastard/boxui/engine/ui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/basicfont"
)

const stride = 15

type fixture struct {
	r     *coretest.Renderer
	fonts *text.Library
	font  ui.FontHandle
	p     *uipaint.Painter
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	r := &coretest.Renderer{}
	rd, err := renderer2d.New(r, 256)
	require.NoError(t, err)
	f, err := text.NewFont(basicfont.Face7x13, 13)
	require.NoError(t, err)
	require.NoError(t, f.Upload(r))
	lib := text.NewLibrary()
	h := lib.Add(f)
	return &fixture{r: r, fonts: lib, font: h, p: uipaint.New(rd, lib)}
}

func TestPainterImplementsUIInterfaces(t *testing.T) {
	var p any = uipaint.New(nil, nil)
	assert.Implements(t, (*ui.Painter)(nil), p)
	assert.Implements(t, (*ui.Clipper)(nil), p)
}

func TestRenderPanel(t *testing.T) {
	fx := newFixture(t)
	s := ui.New(ui.Options{
		Canvas:  ui.XYWH(0, 0, 320, 200),
		Metrics: fx.fonts,
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	})

	s.BeginFrame(1.0 / 60)
	panel := s.BuildBox(ui.FlagDrawBackground|ui.FlagClip, "panel")
	panel.SetPrefSize(ui.AxisY, ui.Px(100))
	func() {
		defer s.Parent(panel)()
		defer s.WithCornerRadius(4)()
		lbl := s.BuildBox(ui.FlagDrawText, "hi")
		lbl.SetPrefSize(ui.AxisY, ui.TextContent(0))
	}()
	_, err := s.EndFrame()
	require.NoError(t, err)

	fx.p.Render(s, [16]float32{1}, fx.font)

	// background, then the clipped label.
	require.Len(t, fx.r.Draws, 2)
	bg := fx.r.Draws[0]
	assert.False(t, bg.Cmd.Scissor.Enabled)
	assert.Equal(t, []float32{0, 0}, bg.Vertices[0:2])
	assert.Equal(t, []float32{320, 100}, bg.Vertices[3*stride:3*stride+2])

	lbl := fx.r.Draws[1]
	assert.Equal(t, core.Scissor{Enabled: true, X: 0, Y: 0, W: 320, H: 100}, lbl.Cmd.Scissor)
	assert.Len(t, lbl.Vertices, 2*4*stride, "one quad per glyph")
}

func TestDrawRectAppliesOpacity(t *testing.T) {
	fx := newFixture(t)
	rd, err := renderer2d.New(fx.r, 8)
	require.NoError(t, err)
	p := uipaint.New(rd, fx.fonts)

	rd.BeginScene([16]float32{})
	p.DrawRect(ui.XYWH(1, 2, 30, 40), colors.Color{1, 0.5, 0.25, 0.8}, 3, 1, 0.5)
	rd.EndScene()

	require.Len(t, fx.r.Draws, 1)
	v := fx.r.Draws[0].Vertices
	assert.Equal(t, []float32{1, 2}, v[0:2])
	assert.InDeltaSlice(t, []float32{1, 0.5, 0.25, 0.4}, v[2:6], 1e-6)
	assert.Equal(t, []float32{3, 1}, v[13:15])
}

func TestDrawTextFallsBackToFirstFont(t *testing.T) {
	fx := newFixture(t)
	rd, err := renderer2d.New(fx.r, 8)
	require.NoError(t, err)
	p := uipaint.New(rd, fx.fonts)

	rd.BeginScene([16]float32{})
	p.DrawText(ui.Vec2{X: 5, Y: 6}, "x", 42, 13, colors.White)
	rd.EndScene()

	require.Len(t, fx.r.Draws, 1)
	assert.Equal(t, []float32{5, 6}, fx.r.Draws[0].Vertices[0:2])
}

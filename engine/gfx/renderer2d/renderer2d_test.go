package renderer2d_test

import (
	"testing"

	"github.com/hubastard/boxui/engine/colors"
	"github.com/hubastard/boxui/engine/core"
	"github.com/hubastard/boxui/engine/core/coretest"
	"github.com/hubastard/boxui/engine/gfx/renderer2d"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const stride = 15

func newRenderer(t *testing.T, maxQuads int) (*coretest.Renderer, *renderer2d.Renderer2D) {
	t.Helper()
	r := &coretest.Renderer{}
	rd, err := renderer2d.New(r, maxQuads)
	require.NoError(t, err)
	return r, rd
}

func TestNewCompilesEmbeddedShaders(t *testing.T) {
	r, _ := newRenderer(t, 8)
	require.Len(t, r.Pipelines, 1)
	p := r.Pipelines[0].Desc
	assert.Contains(t, p.VertexSource, "#version 330 core")
	assert.Contains(t, p.FragmentSource, "roundedBox")
	assert.True(t, p.Blend)
	assert.False(t, p.DepthTest)

	require.Len(t, r.Textures, 1, "white texture")
	assert.Equal(t, []byte{255, 255, 255, 255}, r.Textures[0].Desc.Pixels)

	require.Len(t, r.Meshes, 1)
	assert.Equal(t, stride*4, r.Meshes[0].Layout.Stride)
	assert.Len(t, r.Meshes[0].Layout.Attributes, 8)
}

func TestNewFailsWhenBackendFails(t *testing.T) {
	_, err := renderer2d.New(&coretest.Renderer{FailCreate: true}, 8)
	assert.ErrorIs(t, err, coretest.ErrCreate)
}

func TestBatchesIntoOneDraw(t *testing.T) {
	r, rd := newRenderer(t, 8)
	rd.BeginScene([16]float32{1})
	rd.DrawQuad(0, 0, 10, 10, colors.Red, 0)
	rd.DrawRect(20, 20, 5, 5, colors.Blue)
	rd.EndScene()

	require.Len(t, r.Draws, 1)
	d := r.Draws[0]
	assert.Equal(t, 12, d.Cmd.IndexCount)
	assert.Len(t, d.Vertices, 8*stride)
	assert.Equal(t, [16]float32{1}, d.Cmd.Uniforms["uVP"])
	assert.False(t, d.Cmd.Scissor.Enabled)

	st := rd.Stats()
	assert.Equal(t, 1, st.DrawCalls)
	assert.Equal(t, 2, st.QuadCount)
	assert.Equal(t, 8, st.TotalVertexCount())
	assert.Equal(t, 12, st.TotalIndexCount())
}

func TestEmptySceneDrawsNothing(t *testing.T) {
	r, rd := newRenderer(t, 8)
	rd.BeginScene([16]float32{})
	rd.EndScene()
	assert.Empty(t, r.Draws)
}

func TestFlushesWhenBatchIsFull(t *testing.T) {
	r, rd := newRenderer(t, 2)
	rd.BeginScene([16]float32{})
	for range 5 {
		rd.DrawRect(0, 0, 1, 1, colors.White)
	}
	rd.EndScene()

	require.Len(t, r.Draws, 3)
	assert.Equal(t, 12, r.Draws[0].Cmd.IndexCount)
	assert.Equal(t, 6, r.Draws[2].Cmd.IndexCount)
	assert.Equal(t, 5, rd.Stats().QuadCount)
}

func TestFlushesWhenTextureSlotsRunOut(t *testing.T) {
	r, rd := newRenderer(t, 100)
	rd.BeginScene([16]float32{})
	// slot 0 is the white texture, so 15 more fit in one batch.
	for i := range 16 {
		rd.DrawTexturedQuad(0, 0, 1, 1, &coretest.Texture{ID: 100 + i}, colors.White, 0)
	}
	rd.EndScene()

	require.Len(t, r.Draws, 2)
	assert.Len(t, r.Draws[0].Cmd.Samplers, 16)
	assert.Len(t, r.Draws[1].Cmd.Samplers, 2)
	assert.Equal(t, 16, rd.Stats().TextureCount)
}

func TestSameTextureSharesSlot(t *testing.T) {
	r, rd := newRenderer(t, 100)
	tex := &coretest.Texture{ID: 7}
	rd.BeginScene([16]float32{})
	rd.DrawTexturedQuad(0, 0, 1, 1, tex, colors.White, 0)
	rd.DrawRegionQuad(0, 0, 1, 1, renderer2d.TileRegion(tex, 1, 0, 8, 8, 16, 16), colors.White, 0)
	rd.EndScene()

	require.Len(t, r.Draws, 1)
	v := r.Draws[0].Vertices
	assert.Equal(t, float32(1), v[8], "first quad samples slot 1")
	assert.Equal(t, float32(1), v[4*stride+8])
	assert.Equal(t, float32(0.5), v[4*stride+6], "sub texture u0")
}

func TestRoundedRectVertexData(t *testing.T) {
	r, rd := newRenderer(t, 8)
	rd.BeginScene([16]float32{})
	rd.DrawRoundedRect(10, 20, 40, 10, colors.Green, 99, 2)
	rd.EndScene()

	require.Len(t, r.Draws, 1)
	v := r.Draws[0].Vertices
	// top-left corner
	assert.Equal(t, []float32{10, 20}, v[0:2])
	assert.Equal(t, []float32{0, 1, 0, 1}, v[2:6])
	assert.Equal(t, []float32{-20, -5}, v[9:11], "local offset from center")
	assert.Equal(t, []float32{20, 5}, v[11:13], "half extent")
	assert.Equal(t, float32(5), v[13], "radius clamps to the smaller half extent")
	assert.Equal(t, float32(2), v[14])
	// bottom-right corner
	br := v[3*stride:]
	assert.Equal(t, []float32{50, 30}, br[0:2])
}

func TestDegenerateRectsAreSkipped(t *testing.T) {
	r, rd := newRenderer(t, 8)
	rd.BeginScene([16]float32{})
	rd.DrawRect(0, 0, 0, 10, colors.White)
	rd.DrawRect(0, 0, 10, 10, colors.Transparent)
	rd.EndScene()
	assert.Empty(t, r.Draws)
}

func TestClipFlushesAndIntersects(t *testing.T) {
	r, rd := newRenderer(t, 8)
	rd.BeginScene([16]float32{})
	rd.DrawRect(0, 0, 1, 1, colors.White)
	rd.PushClip(10, 10, 100, 50)
	rd.DrawRect(0, 0, 1, 1, colors.White)
	rd.PushClip(50, 0, 100, 30.5)
	rd.DrawRect(0, 0, 1, 1, colors.White)
	rd.PopClip()
	rd.DrawRect(0, 0, 1, 1, colors.White)
	rd.PopClip()
	rd.PopClip() // extra pops are ignored
	rd.DrawRect(0, 0, 1, 1, colors.White)
	rd.EndScene()

	require.Len(t, r.Draws, 5)
	assert.Equal(t, core.Scissor{}, r.Draws[0].Cmd.Scissor)
	assert.Equal(t, core.Scissor{Enabled: true, X: 10, Y: 10, W: 100, H: 50}, r.Draws[1].Cmd.Scissor)
	assert.Equal(t, core.Scissor{Enabled: true, X: 50, Y: 10, W: 60, H: 21}, r.Draws[2].Cmd.Scissor)
	assert.Equal(t, core.Scissor{Enabled: true, X: 10, Y: 10, W: 100, H: 50}, r.Draws[3].Cmd.Scissor)
	assert.Equal(t, core.Scissor{}, r.Draws[4].Cmd.Scissor)
	assert.Equal(t, 5, rd.Stats().DrawCalls)
}

func TestDisjointClipIsEmpty(t *testing.T) {
	r, rd := newRenderer(t, 8)
	rd.BeginScene([16]float32{})
	rd.PushClip(0, 0, 10, 10)
	rd.PushClip(20, 20, 10, 10)
	rd.DrawRect(0, 0, 1, 1, colors.White)
	rd.EndScene()

	require.Len(t, r.Draws, 1)
	sc := r.Draws[0].Cmd.Scissor
	assert.True(t, sc.Enabled)
	assert.Zero(t, sc.W)
	assert.Zero(t, sc.H)
}

func TestExtraUniforms(t *testing.T) {
	r, rd := newRenderer(t, 8)
	rd.SetUniform("uTime", float32(2))
	rd.BeginScene([16]float32{})
	rd.DrawRect(0, 0, 1, 1, colors.White)
	rd.EndScene()
	rd.SetUniform("uTime", nil)
	rd.BeginScene([16]float32{})
	rd.DrawRect(0, 0, 1, 1, colors.White)
	rd.EndScene()

	require.Len(t, r.Draws, 2)
	assert.Equal(t, float32(2), r.Draws[0].Cmd.Uniforms["uTime"])
	assert.NotContains(t, r.Draws[1].Cmd.Uniforms, "uTime")
}

func TestNewRegion(t *testing.T) {
	tex := &coretest.Texture{ID: 1}
	reg := renderer2d.NewRegion(tex, 16, 0, 16, 32, 64, 64)
	assert.Equal(t, float32(0.25), reg.U0)
	assert.Equal(t, float32(0), reg.V0)
	assert.Equal(t, float32(0.5), reg.U1)
	assert.Equal(t, float32(0.5), reg.V1)
	assert.Equal(t, 16, reg.W)
	assert.Equal(t, 32, reg.H)
	assert.False(t, reg.Empty())

	clamped := renderer2d.NewRegion(tex, 0, 0, 32, 32, 20, 10)
	assert.Equal(t, float32(1), clamped.U1)
	assert.Equal(t, float32(1), clamped.V1)
	assert.Equal(t, 20, clamped.W)
	assert.Equal(t, 10, clamped.H)

	assert.True(t, renderer2d.NewRegion(tex, 0, 0, 8, 8, 0, 0).Empty(), "zero atlas")
	assert.True(t, renderer2d.NewRegion(tex, 70, 0, 8, 8, 64, 64).Empty(), "outside the atlas")
	assert.True(t, renderer2d.NewRegion(nil, 0, 0, 8, 8, 64, 64).Empty(), "no texture")

	flipped := reg.FlipX()
	assert.Equal(t, reg.U1, flipped.U0)
	assert.Equal(t, reg.U0, flipped.U1)
}

func TestDrawRegionTopLeft(t *testing.T) {
	r, rd := newRenderer(t, 8)
	tex := &coretest.Texture{ID: 3}
	rd.BeginScene([16]float32{})
	rd.DrawRegion(10, 20, 30, 40, renderer2d.NewRegion(tex, 0, 0, 8, 8, 16, 16), colors.White)
	rd.DrawRegion(0, 0, 0, 10, renderer2d.NewRegion(tex, 0, 0, 8, 8, 16, 16), colors.White)
	rd.DrawRegion(0, 0, 10, 10, renderer2d.Region{}, colors.White)
	rd.DrawRegion(0, 0, 10, 10, renderer2d.NewRegion(tex, 0, 0, 8, 8, 16, 16), colors.Transparent)
	rd.EndScene()

	require.Len(t, r.Draws, 1)
	v := r.Draws[0].Vertices
	require.Len(t, v, 4*stride, "only the first region is drawn")
	assert.Equal(t, []float32{10, 20}, v[0:2], "top-left corner")
	assert.Equal(t, []float32{40, 60}, v[3*stride:3*stride+2], "bottom-right corner")
	assert.Equal(t, float32(0.5), v[3*stride+6], "u1")
	assert.Equal(t, float32(0.5), v[3*stride+7], "v1")
	assert.Equal(t, 1, rd.Stats().QuadCount)
}

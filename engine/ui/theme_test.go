package ui

import (
	"strings"
	"testing"

	"github.com/hubastard/boxui/engine/colors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadThemeOverridesDefaults(t *testing.T) {
	doc := `
background: "#ff0000"
accent: [0, 0.5, 1]
corner_radius: 8
font_size: 20
`
	th, err := LoadTheme(strings.NewReader(doc))
	require.NoError(t, err)

	def := DefaultTheme()
	assert.Equal(t, colors.Color{1, 0, 0, 1}, th.Background)
	assert.Equal(t, colors.Color{0, 0.5, 1, 1}, th.Accent)
	assert.Equal(t, float32(8), th.CornerRadius)
	assert.Equal(t, float32(20), th.FontSize)
	assert.Equal(t, def.Border, th.Border, "missing keys keep their default")
	assert.Equal(t, def.HotBoost, th.HotBoost)
}

func TestLoadThemeEmptyDocument(t *testing.T) {
	th, err := LoadTheme(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, DefaultTheme(), th)
}

func TestLoadThemeRejectsBadInput(t *testing.T) {
	_, err := LoadTheme(strings.NewReader("corner_radius: [1, 2"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ui: decode theme")

	_, err = LoadTheme(strings.NewReader(`text: "#12"`))
	require.Error(t, err)
}

func TestThemeFeedsStackDefaults(t *testing.T) {
	th := DefaultTheme()
	th.Text = colors.Yellow
	th.PaddingX = 6
	th.FontSize = 24
	s := New(Options{Canvas: XYWH(0, 0, 100, 100), Theme: &th, Logger: discardLogger()})

	s.BeginFrame(testDT)
	b := s.BuildBox(0, "b")
	assert.Equal(t, colors.Yellow, b.Style().Text)
	assert.Equal(t, Vec2{6, 0}, b.Padding())
	assert.Equal(t, float32(24), b.FontSize())
	_, err := s.EndFrame()
	require.NoError(t, err)
}

package colors

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/chewxy/math32"
	"gopkg.in/yaml.v3"
)

// Color is straight (non-premultiplied) RGBA in [0..1].
type Color [4]float32

var (
	Transparent = Color{0, 0, 0, 0}
	White       = Color{1, 1, 1, 1}
	Red         = Color{1, 0, 0, 1}
	Green       = Color{0, 1, 0, 1}
	Blue        = Color{0, 0, 1, 1}
	Black       = Color{0, 0, 0, 1}
	Magenta     = Color{1, 0, 1, 1}
	Cyan        = Color{0, 1, 1, 1}
	Yellow      = Color{1, 1, 0, 1}
	Gray        = Color{0.5, 0.5, 0.5, 1}
	DarkGray    = Color{0.08, 0.10, 0.12, 1}
)

func (c Color) WithAlpha(a float32) Color {
	c[3] = a
	return c
}

// Scale multiplies the RGB channels by k, clamping to [0..1]. Alpha is kept.
func (c Color) Scale(k float32) Color {
	for i := 0; i < 3; i++ {
		c[i] = clamp01(c[i] * k)
	}
	return c
}

// Lerp blends from a to b by t (clamped to [0..1]).
func Lerp(a, b Color, t float32) Color {
	t = clamp01(t)
	var out Color
	for i := range out {
		out[i] = a[i] + (b[i]-a[i])*t
	}
	return out
}

// Hex parses "#rgb", "#rrggbb" or "#rrggbbaa" (leading '#' optional).
func Hex(s string) (Color, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) == 6 {
		h += "ff"
	}
	if len(h) != 8 {
		return Color{}, fmt.Errorf("colors: invalid hex color %q", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("colors: invalid hex color %q: %w", s, err)
	}
	return Color{
		float32(v>>24&0xff) / 255,
		float32(v>>16&0xff) / 255,
		float32(v>>8&0xff) / 255,
		float32(v&0xff) / 255,
	}, nil
}

// UnmarshalYAML accepts either a hex string or a sequence of 3 or 4 floats.
func (c *Color) UnmarshalYAML(n *yaml.Node) error {
	switch n.Kind {
	case yaml.ScalarNode:
		v, err := Hex(n.Value)
		if err != nil {
			return fmt.Errorf("line %d: %w", n.Line, err)
		}
		*c = v
		return nil
	case yaml.SequenceNode:
		var parts []float32
		if err := n.Decode(&parts); err != nil {
			return err
		}
		if len(parts) != 3 && len(parts) != 4 {
			return fmt.Errorf("line %d: colors: want 3 or 4 components, got %d", n.Line, len(parts))
		}
		out := Color{0, 0, 0, 1}
		copy(out[:], parts)
		*c = out
		return nil
	default:
		return fmt.Errorf("line %d: colors: unsupported yaml node", n.Line)
	}
}

func clamp01(v float32) float32 {
	return math32.Max(0, math32.Min(1, v))
}

package ui

import (
	"errors"
	"fmt"
	"io"

	"github.com/hubastard/boxui/engine/colors"
	"gopkg.in/yaml.v3"
)

// Theme provides the defaults used when a property stack is empty.
type Theme struct {
	Background      colors.Color `yaml:"background"`
	Border          colors.Color `yaml:"border"`
	Text            colors.Color `yaml:"text"`
	Accent          colors.Color `yaml:"accent"`
	CornerRadius    float32      `yaml:"corner_radius"`
	BorderThickness float32      `yaml:"border_thickness"`
	PaddingX        float32      `yaml:"padding_x"`
	PaddingY        float32      `yaml:"padding_y"`
	FontSize        float32      `yaml:"font_size"`
	// HotBoost brightens a fully hot background; ActiveDim darkens a fully active one.
	HotBoost  float32 `yaml:"hot_boost"`
	ActiveDim float32 `yaml:"active_dim"`
}

func DefaultTheme() Theme {
	return Theme{
		Background:      colors.Color{0.18, 0.20, 0.24, 1},
		Border:          colors.Color{0.32, 0.35, 0.40, 1},
		Text:            colors.White,
		Accent:          colors.Color{0.26, 0.55, 0.90, 1},
		CornerRadius:    4,
		BorderThickness: 1,
		PaddingX:        0,
		PaddingY:        0,
		FontSize:        16,
		HotBoost:        0.25,
		ActiveDim:       0.35,
	}
}

// LoadTheme decodes a YAML theme on top of DefaultTheme. Missing keys keep
// their default value; an empty document yields the default theme.
func LoadTheme(r io.Reader) (Theme, error) {
	t := DefaultTheme()
	if err := yaml.NewDecoder(r).Decode(&t); err != nil && !errors.Is(err, io.EOF) {
		return Theme{}, fmt.Errorf("ui: decode theme: %w", err)
	}
	return t, nil
}

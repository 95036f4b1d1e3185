package core

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/hubastard/boxui/engine/colors"
	"gopkg.in/yaml.v3"
)

// Config for the engine run.
type Config struct {
	Title      string       `yaml:"title"`
	Width      int          `yaml:"width"`
	Height     int          `yaml:"height"`
	VSync      bool         `yaml:"vsync"`
	ClearColor colors.Color `yaml:"clear_color"`
	// TickHz is the fixed update rate. Default 60.
	TickHz int      `yaml:"tick_hz"`
	UI     UIConfig `yaml:"ui"`
}

// UIConfig feeds ui.Options and the font atlas.
type UIConfig struct {
	// Theme is a theme YAML file. Relative paths resolve against the config file.
	Theme       string  `yaml:"theme"`
	FontSize    float32 `yaml:"font_size"`
	EvictAfter  uint64  `yaml:"evict_after"`
	HashBuckets int     `yaml:"hash_buckets"`
}

func DefaultConfig() Config {
	return Config{
		Title:      "boxui",
		Width:      1280,
		Height:     720,
		VSync:      true,
		ClearColor: colors.DarkGray,
		TickHz:     60,
		UI: UIConfig{
			FontSize:    32,
			EvictAfter:  120,
			HashBuckets: 4096,
		},
	}
}

// ParseConfig decodes YAML over DefaultConfig. An empty document yields the
// defaults.
func ParseConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.NewDecoder(r).Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("core: decode config: %w", err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return Config{}, fmt.Errorf("core: invalid window size %dx%d", cfg.Width, cfg.Height)
	}
	if cfg.TickHz <= 0 {
		cfg.TickHz = 60
	}
	return cfg, nil
}

// LoadConfig reads a YAML config file. The returned error wraps
// os.ErrNotExist when the file is missing.
func LoadConfig(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("core: load config: %w", err)
	}
	defer f.Close()

	cfg, err := ParseConfig(f)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	if cfg.UI.Theme != "" && !filepath.IsAbs(cfg.UI.Theme) {
		cfg.UI.Theme = filepath.Join(filepath.Dir(path), cfg.UI.Theme)
	}
	return cfg, nil
}

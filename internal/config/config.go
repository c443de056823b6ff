// Package config handles viewer configuration loading and management.
package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Config holds all viewer settings.
type Config struct {
	Viewer  ViewerConfig  `yaml:"viewer"`
	Render  RenderConfig  `yaml:"render"`
	Cubemap CubemapConfig `yaml:"cubemap"`
	Output  OutputConfig  `yaml:"output"`
	Logging LoggingConfig `yaml:"logging"`
}

// ViewerConfig holds window and initial view settings.
type ViewerConfig struct {
	Width          int     `yaml:"width"`
	Height         int     `yaml:"height"`
	Fov            float32 `yaml:"fov"`
	Mode           string  `yaml:"mode"` // perspective, equirect or unwrapped
	Bilinear       bool    `yaml:"bilinear"`
	ShowInfo       bool    `yaml:"show_info"`
	ShowReference  bool    `yaml:"show_reference"`
	ReferenceColor string  `yaml:"reference_color"` // "#rrggbb"
	EquirectOffset float32 `yaml:"equirect_offset"`
	InvertMouse    bool    `yaml:"invert_mouse"`
}

// RenderConfig holds render pool settings.
type RenderConfig struct {
	Workers int `yaml:"workers"`  // 0 means one per CPU
	LUTSize int `yaml:"lut_size"` // equirect direction table resolution
}

// CubemapConfig selects the environment to show.
type CubemapConfig struct {
	Dir             string        `yaml:"dir"`
	Calibration     bool          `yaml:"calibration"`
	CalibrationSize int           `yaml:"calibration_size"`
	Watch           bool          `yaml:"watch"`
	WatchDebounce   time.Duration `yaml:"watch_debounce"`
}

// OutputConfig holds screenshot settings.
type OutputConfig struct {
	ScreenshotDir string `yaml:"screenshot_dir"`
	Format        string `yaml:"format"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Viewer: ViewerConfig{
			Width:          1280,
			Height:         720,
			Fov:            75,
			Mode:           "perspective",
			Bilinear:       true,
			ShowInfo:       true,
			ShowReference:  false,
			ReferenceColor: "#0000ff",
		},
		Render: RenderConfig{
			Workers: 0,
			LUTSize: 16,
		},
		Cubemap: CubemapConfig{
			CalibrationSize: 512,
			Watch:           true,
			WatchDebounce:   250 * time.Millisecond,
		},
		Output: OutputConfig{
			ScreenshotDir: "screenshots",
			Format:        "png",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate checks values that cannot be fixed up later.
func (c *Config) Validate() error {
	if c.Viewer.Width <= 0 || c.Viewer.Height <= 0 {
		return fmt.Errorf("viewer size %dx%d must be positive", c.Viewer.Width, c.Viewer.Height)
	}
	if _, err := ParseColor(c.Viewer.ReferenceColor); err != nil {
		return err
	}
	if c.Render.Workers < 0 {
		return fmt.Errorf("render workers %d must not be negative", c.Render.Workers)
	}
	if c.Cubemap.Dir == "" && !c.Cubemap.Calibration {
		return fmt.Errorf("no cubemap dir configured and calibration disabled")
	}
	if c.Cubemap.Calibration && c.Cubemap.CalibrationSize <= 0 {
		return fmt.Errorf("calibration size %d must be positive", c.Cubemap.CalibrationSize)
	}
	return nil
}

// ParseColor parses "#rrggbb", "0xrrggbb" or "rrggbb" into 0xRRGGBB.
func ParseColor(s string) (uint32, error) {
	h := strings.TrimSpace(s)
	h = strings.TrimPrefix(h, "#")
	h = strings.TrimPrefix(strings.TrimPrefix(h, "0x"), "0X")
	if len(h) != 6 {
		return 0, fmt.Errorf("color %q: want #rrggbb", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("color %q: %w", s, err)
	}
	return uint32(v), nil
}

// FormatColor prints 0xRRGGBB as "#rrggbb".
func FormatColor(c uint32) string {
	return fmt.Sprintf("#%06x", c&0xFFFFFF)
}

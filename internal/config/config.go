// Package config handles viewer configuration loading and management.
package config

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"

	"github.com/Faultbox/isoterrain/internal/engine/camera"
	"github.com/Faultbox/isoterrain/internal/engine/contour"
	"github.com/Faultbox/isoterrain/internal/engine/style"
	"github.com/Faultbox/isoterrain/internal/engine/terrain"
	"github.com/Faultbox/isoterrain/pkg/noise"
)

// ErrInvalid reports a configuration value that cannot be used.
var ErrInvalid = errors.New("invalid config")

// Config holds all viewer settings.
type Config struct {
	Window   WindowConfig  `yaml:"window"`
	Terrain  TerrainConfig `yaml:"terrain"`
	Contours ContourConfig `yaml:"contours"`
	Camera   CameraConfig  `yaml:"camera"`
	Render   RenderConfig  `yaml:"render"`
	Logging  LoggingConfig `yaml:"logging"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
}

// TerrainConfig holds synthesis parameters and the noise backend.
type TerrainConfig struct {
	terrain.Parameters `yaml:",inline"`

	Noise noise.Kind `yaml:"noise"`
}

// ContourConfig holds contour extraction settings.
type ContourConfig struct {
	Interval float32     `yaml:"interval"`
	Color    contour.RGB `yaml:"color,flow"`
}

// CameraConfig holds orbit limits. Pitch is in degrees above the horizon.
type CameraConfig struct {
	MinDistance     float32 `yaml:"min_distance"`
	MaxDistance     float32 `yaml:"max_distance"`
	MinPitch        float32 `yaml:"min_pitch"`
	MaxPitch        float32 `yaml:"max_pitch"`
	GroundClearance float32 `yaml:"ground_clearance"`
}

// RenderConfig holds style and fade settings.
type RenderConfig struct {
	Style         style.Style `yaml:"style"`
	Background    contour.RGB `yaml:"background,flow"`
	FadeNear      float32     `yaml:"fade_near"`
	FadeFar       float32     `yaml:"fade_far"`
	FadeColor     contour.RGB `yaml:"fade_color,flow"`
	LineWidth     float32     `yaml:"line_width"`
	ShowBounds    bool        `yaml:"show_bounds"`
	ScreenshotDir string      `yaml:"screenshot_dir"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	background := contour.RGB{0.05, 0.06, 0.08}
	return &Config{
		Window: WindowConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
		},
		Terrain: TerrainConfig{
			Parameters: terrain.DefaultParameters(),
			Noise:      noise.KindImproved,
		},
		Contours: ContourConfig{
			Interval: 2,
			Color:    contour.RGB{0.9, 0.95, 1.0},
		},
		Camera: CameraConfig{
			MinDistance:     20,
			MaxDistance:     800,
			MinPitch:        3,
			MaxPitch:        85,
			GroundClearance: 2,
		},
		Render: RenderConfig{
			Style:         style.FilledMountain,
			Background:    background,
			FadeNear:      150,
			FadeFar:       500,
			FadeColor:     background,
			LineWidth:     1.5,
			ScreenshotDir: "screenshots",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate checks every section and returns the first problem found.
func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("%w: window size %dx%d", ErrInvalid, c.Window.Width, c.Window.Height)
	}
	if err := c.Terrain.Validate(); err != nil {
		return fmt.Errorf("%w: terrain: %w", ErrInvalid, err)
	}
	if _, err := noise.ParseKind(string(c.Terrain.Noise)); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if err := c.ContourConfig().Validate(); err != nil {
		return fmt.Errorf("%w: contours: %w", ErrInvalid, err)
	}
	if c.Camera.MinDistance <= 0 || c.Camera.MaxDistance < c.Camera.MinDistance {
		return fmt.Errorf("%w: camera distance range [%v, %v]", ErrInvalid, c.Camera.MinDistance, c.Camera.MaxDistance)
	}
	if c.Camera.MinPitch < 0 || c.Camera.MaxPitch > 90 || c.Camera.MaxPitch < c.Camera.MinPitch {
		return fmt.Errorf("%w: camera pitch range [%v, %v]", ErrInvalid, c.Camera.MinPitch, c.Camera.MaxPitch)
	}
	if c.Render.LineWidth <= 0 {
		return fmt.Errorf("%w: line width %v", ErrInvalid, c.Render.LineWidth)
	}
	return nil
}

// ContourConfig returns the extractor settings matching the terrain section.
func (c *Config) ContourConfig() contour.Config {
	return contour.Config{
		Interval:        c.Contours.Interval,
		MaxHeight:       float32(c.Terrain.MaxHeight),
		MinHeightFactor: float32(c.Terrain.MinHeightFactor),
		BaseColor:       c.Contours.Color,
	}
}

// CameraConstraints converts the camera section to orbit limits in radians.
func (c *Config) CameraConstraints() camera.Constraints {
	return camera.Constraints{
		MinDistance: c.Camera.MinDistance,
		MaxDistance: c.Camera.MaxDistance,
		MinPitch:    c.Camera.MinPitch * math32.Pi / 180,
		MaxPitch:    c.Camera.MaxPitch * math32.Pi / 180,
	}
}

// FadeParams returns the distance fade settings.
func (c *Config) FadeParams() style.FadeParams {
	return style.FadeParams{
		Near:      c.Render.FadeNear,
		Far:       c.Render.FadeFar,
		FadeColor: c.Render.FadeColor,
	}
}

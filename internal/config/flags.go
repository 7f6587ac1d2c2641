package config

import (
	"flag"
	"fmt"
	"strconv"

	"github.com/Faultbox/isoterrain/internal/engine/style"
	"github.com/Faultbox/isoterrain/pkg/noise"
)

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagSeed       = flag.String("seed", "", "Noise seed (third noise coordinate)")
	flagSegments   = flag.Int("segments", 0, "Grid subdivisions per axis")
	flagSize       = flag.Float64("size", 0, "Grid side length in world units")
	flagInterval   = flag.Float64("interval", 0, "Contour interval")
	flagStyle      = flag.String("style", "", "Render style: filled, lines, fading")
	flagNoise      = flag.String("noise", "", "Noise backend: improved, perlin, simplex")
	flagWindowed   = flag.Bool("windowed", false, "Run in windowed mode")
	flagFullscreen = flag.Bool("fullscreen", false, "Run in fullscreen mode")
	flagWidth      = flag.Int("width", 0, "Window width")
	flagHeight     = flag.Int("height", 0, "Window height")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) error {
	if *flagDebug {
		cfg.Logging.Level = "debug"
		cfg.Render.ShowBounds = true
	}
	if *flagSeed != "" {
		seed, err := strconv.ParseFloat(*flagSeed, 64)
		if err != nil {
			return fmt.Errorf("-seed: %w", err)
		}
		cfg.Terrain.Seed = seed
	}
	if *flagSegments > 0 {
		cfg.Terrain.Segments = *flagSegments
	}
	if *flagSize > 0 {
		cfg.Terrain.Size = *flagSize
	}
	if *flagInterval > 0 {
		cfg.Contours.Interval = float32(*flagInterval)
	}
	if *flagStyle != "" {
		s, err := style.ParseStyle(*flagStyle)
		if err != nil {
			return fmt.Errorf("-style: %w", err)
		}
		cfg.Render.Style = s
	}
	if *flagNoise != "" {
		k, err := noise.ParseKind(*flagNoise)
		if err != nil {
			return fmt.Errorf("-noise: %w", err)
		}
		cfg.Terrain.Noise = k
	}
	if *flagWindowed {
		cfg.Window.Fullscreen = false
	}
	if *flagFullscreen {
		cfg.Window.Fullscreen = true
	}
	if *flagWidth > 0 {
		cfg.Window.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Window.Height = *flagHeight
	}
	return nil
}

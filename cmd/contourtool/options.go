package main

import (
	"flag"
	"fmt"
	"strconv"
	"time"

	"github.com/Faultbox/isoterrain/internal/app"
	"github.com/Faultbox/isoterrain/internal/config"
	"github.com/Faultbox/isoterrain/internal/engine/contour"
	"github.com/Faultbox/isoterrain/internal/engine/terrain"
	"github.com/Faultbox/isoterrain/pkg/noise"
)

// options are the flags shared by every command. Zero values keep the
// config file's setting.
type options struct {
	config     string
	seed       float64
	seedSet    bool
	segments   int
	size       float64
	maxHeight  float64
	noiseScale float64
	minHeight  float64
	plateau    float64
	interval   float64
	noise      string
}

func addCommonFlags(fs *flag.FlagSet) *options {
	o := &options{minHeight: -1, plateau: -1}
	fs.StringVar(&o.config, "config", "", "Path to config file")
	fs.Func("seed", "Noise seed (third noise coordinate)", func(s string) error {
		seed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return err
		}
		o.seed, o.seedSet = seed, true
		return nil
	})
	fs.IntVar(&o.segments, "segments", 0, "Grid subdivisions per axis")
	fs.Float64Var(&o.size, "size", 0, "Grid side length")
	fs.Float64Var(&o.maxHeight, "max-height", 0, "Nominal peak elevation")
	fs.Float64Var(&o.noiseScale, "noise-scale", 0, "World units per noise period")
	fs.Float64Var(&o.minHeight, "min-height", -1, "Floor as a fraction of max height")
	fs.Float64Var(&o.plateau, "plateau", -1, "Peak flattening in [0, 1]")
	fs.Float64Var(&o.interval, "interval", 0, "Contour interval")
	fs.StringVar(&o.noise, "noise", "", "Noise backend: improved, perlin, simplex")
	return o
}

// load resolves the effective configuration.
func (o *options) load() (*config.Config, error) {
	cfg := config.Default()
	if o.config != "" {
		var err error
		if cfg, err = config.LoadFile(o.config); err != nil {
			return nil, err
		}
	}

	p := &cfg.Terrain.Parameters
	if o.seedSet {
		p.Seed = o.seed
	}
	if o.segments > 0 {
		p.Segments = o.segments
	}
	if o.size > 0 {
		p.Size = o.size
	}
	if o.maxHeight > 0 {
		p.MaxHeight = o.maxHeight
	}
	if o.noiseScale > 0 {
		p.NoiseScale = o.noiseScale
	}
	if o.minHeight >= 0 {
		p.MinHeightFactor = o.minHeight
	}
	if o.plateau >= 0 {
		p.PlateauVolume = o.plateau
	}
	if o.interval > 0 {
		cfg.Contours.Interval = float32(o.interval)
	}
	if o.noise != "" {
		kind, err := noise.ParseKind(o.noise)
		if err != nil {
			return nil, err
		}
		cfg.Terrain.Noise = kind
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// result is one synthesized terrain and its contour map.
type result struct {
	cfg         *config.Config
	grid        *terrain.Grid
	levels      contour.Levels
	floor       float32
	synthTook   time.Duration
	extractTook time.Duration
}

func build(cfg *config.Config) (*result, error) {
	sampler, err := noise.New(cfg.Terrain.Noise, int64(cfg.Terrain.Seed))
	if err != nil {
		return nil, err
	}

	start := time.Now()
	grid, err := terrain.Synthesize(cfg.Terrain.Parameters, sampler)
	if err != nil {
		return nil, fmt.Errorf("synthesize: %w", err)
	}
	synthTook := time.Since(start)

	ccfg := app.ConfigFor(cfg.Terrain.Parameters, cfg.Contours.Interval, cfg.Contours.Color)
	start = time.Now()
	levels, err := contour.Extract(grid, ccfg)
	if err != nil {
		return nil, fmt.Errorf("extract: %w", err)
	}

	return &result{
		cfg:         cfg,
		grid:        grid,
		levels:      levels,
		floor:       ccfg.Floor(),
		synthTook:   synthTook,
		extractTook: time.Since(start),
	}, nil
}

// parse parses args and builds the terrain they describe.
func parse(fs *flag.FlagSet, o *options, args []string) (*result, error) {
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	cfg, err := o.load()
	if err != nil {
		return nil, err
	}
	return build(cfg)
}

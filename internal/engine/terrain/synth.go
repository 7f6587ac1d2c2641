package terrain

import (
	"fmt"
	gomath "math"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/isoterrain/internal/logger"
	"github.com/Faultbox/isoterrain/pkg/noise"
)

// Layer mixing constants.
const (
	detailScale   = 1.2  // second layer is sampled at scale*detailScale
	detailSeed    = 100  // seed offset decorrelating the second layer
	primaryWeight = 0.97 // coarse layer dominates for landform coherence
	detailWeight  = 0.03
	roughness     = 0.1 // slope modulator gain where the layers disagree
)

// Validate checks every parameter range. It never allocates.
func (p Parameters) Validate() error {
	switch {
	case p.Segments <= 0:
		return fmt.Errorf("%w: segments must be positive, got %d", ErrInvalidParameter, p.Segments)
	case !finite(p.Size) || p.Size <= 0:
		return fmt.Errorf("%w: size must be positive, got %v", ErrInvalidParameter, p.Size)
	case !finite(p.MaxHeight) || p.MaxHeight <= 0:
		return fmt.Errorf("%w: max height must be positive, got %v", ErrInvalidParameter, p.MaxHeight)
	case !finite(p.NoiseScale) || p.NoiseScale <= 0:
		return fmt.Errorf("%w: noise scale must be positive, got %v", ErrInvalidParameter, p.NoiseScale)
	case !finite(p.MinHeightFactor) || p.MinHeightFactor < 0 || p.MinHeightFactor > 0.5:
		return fmt.Errorf("%w: min height factor must be in [0, 0.5], got %v", ErrInvalidParameter, p.MinHeightFactor)
	case !finite(p.PlateauVolume) || p.PlateauVolume < 0 || p.PlateauVolume > 1:
		return fmt.Errorf("%w: plateau volume must be in [0, 1], got %v", ErrInvalidParameter, p.PlateauVolume)
	case !finite(p.Seed):
		return fmt.Errorf("%w: seed must be finite, got %v", ErrInvalidParameter, p.Seed)
	}
	return nil
}

// Synthesize builds a new heightfield from params, sampling elevation from
// sampler. The result is owned by the caller; nothing is retained.
//
// Given identical params and a deterministic sampler the output is
// bit-for-bit identical across calls.
func Synthesize(params Parameters, sampler noise.Sampler) (*Grid, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if sampler == nil {
		return nil, fmt.Errorf("%w: nil sampler", ErrNoiseFailure)
	}

	start := time.Now()

	g, err := NewGrid(float32(params.Size), params.Segments)
	if err != nil {
		return nil, err
	}

	for i := range g.Vertices {
		v := &g.Vertices[i]
		h, err := elevation(params, sampler, float64(v.X), float64(v.Z))
		if err != nil {
			return nil, err
		}
		v.Y = float32(h)
	}

	ComputeNormals(g)
	g.updateBounds()

	logger.Debug("terrain synthesized",
		zap.Int("segments", params.Segments),
		zap.Int("vertices", len(g.Vertices)),
		zap.Float32("min_y", g.Bounds.Min.Y),
		zap.Float32("max_y", g.Bounds.Max.Y),
		zap.Duration("took", time.Since(start)),
	)

	return g, nil
}

// elevation computes the final height of the vertex at world (x, z).
func elevation(p Parameters, sampler noise.Sampler, x, z float64) (float64, error) {
	n1 := sampler.Noise3(x/p.NoiseScale, z/p.NoiseScale, p.Seed)
	n2 := sampler.Noise3(x/(p.NoiseScale*detailScale), z/(p.NoiseScale*detailScale), p.Seed+detailSeed)
	if !finite(n1) || !finite(n2) {
		return 0, fmt.Errorf("%w: sample at (%v, %v) is %v, %v", ErrNoiseFailure, x, z, n1, n2)
	}

	combined := n1*primaryWeight + n2*detailWeight
	normalized := (combined + 1) / 2

	modulator := 1 + gomath.Abs(n1-n2)*roughness
	h := normalized * p.MaxHeight * modulator

	if p.PlateauVolume > 0 {
		cutoff := p.PlateauCutoff()
		if h > cutoff {
			h = cutoff + (h-cutoff)*(1-p.PlateauVolume)
		}
	}

	return gomath.Max(h, p.Floor()), nil
}

func finite(v float64) bool {
	return !gomath.IsNaN(v) && !gomath.IsInf(v, 0)
}

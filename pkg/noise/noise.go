// Package noise provides 3D gradient-noise samplers for terrain synthesis.
//
// Every backend satisfies Sampler: a pure, continuous function returning
// values in approximately [-1, 1]. Backends may be swapped without changing
// anything downstream of the sampler.
package noise

import (
	"errors"
	"fmt"
	"strings"

	"github.com/aquilax/go-perlin"
	"github.com/ojrac/opensimplex-go"
)

// ErrUnknownKind is returned for an unrecognized backend name.
var ErrUnknownKind = errors.New("unknown noise kind")

// Sampler evaluates 3D coherent noise.
type Sampler interface {
	Noise3(x, y, z float64) float64
}

// Func adapts a plain function to Sampler.
type Func func(x, y, z float64) float64

// Noise3 implements Sampler.
func (f Func) Noise3(x, y, z float64) float64 {
	return f(x, y, z)
}

// Kind names a noise backend.
type Kind string

const (
	KindImproved Kind = "improved" // Ken Perlin's improved noise
	KindPerlin   Kind = "perlin"   // github.com/aquilax/go-perlin, 3 octaves
	KindSimplex  Kind = "simplex"  // github.com/ojrac/opensimplex-go
)

// Kinds lists the available backends in cycling order.
var Kinds = []Kind{KindImproved, KindPerlin, KindSimplex}

// ParseKind parses a backend name (case-insensitive). Empty selects KindImproved.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case "":
		return KindImproved, nil
	case KindImproved, KindPerlin, KindSimplex:
		return k, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
	}
}

// Next returns the backend after k in Kinds, wrapping around.
func (k Kind) Next() Kind {
	for i, kind := range Kinds {
		if kind == k {
			return Kinds[(i+1)%len(Kinds)]
		}
	}
	return KindImproved
}

// New creates a sampler of the given kind.
func New(kind Kind, seed int64) (Sampler, error) {
	switch kind {
	case KindImproved, "":
		return NewImproved(seed), nil
	case KindPerlin:
		return &perlinSampler{p: perlin.NewPerlin(2, 2, 3, seed)}, nil
	case KindSimplex:
		return &simplexSampler{n: opensimplex.New(seed)}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, string(kind))
	}
}

// perlinSampler wraps go-perlin. Its octave sum can slightly exceed the unit
// range, so output is clamped to keep the Sampler contract.
type perlinSampler struct {
	p *perlin.Perlin
}

func (s *perlinSampler) Noise3(x, y, z float64) float64 {
	return clamp(s.p.Noise3D(x, y, z), -1, 1)
}

type simplexSampler struct {
	n opensimplex.Noise
}

func (s *simplexSampler) Noise3(x, y, z float64) float64 {
	return s.n.Eval3(x, y, z)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

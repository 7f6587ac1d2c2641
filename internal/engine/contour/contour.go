// Package contour extracts iso-height lines from triangulated heightfields.
package contour

import (
	"errors"
	"fmt"
	gomath "math"
	"sort"

	"github.com/Faultbox/isoterrain/pkg/math"
)

var (
	// ErrInvalidParameter reports an unusable Config.
	ErrInvalidParameter = errors.New("invalid contour parameter")

	// ErrMalformedMesh reports a mesh without a usable index buffer.
	ErrMalformedMesh = errors.New("malformed mesh")
)

// MaxLevels bounds MaxHeight/Interval, the number of levels one extraction
// can emit.
const MaxLevels = 10000

// RGB is a linear colour with components in [0, 1].
type RGB [3]float32

// Lerp interpolates from c to other by t.
func (c RGB) Lerp(other RGB, t float32) RGB {
	return RGB{
		c[0] + (other[0]-c[0])*t,
		c[1] + (other[1]-c[1])*t,
		c[2] + (other[2]-c[2])*t,
	}
}

// Config selects which iso-levels are extracted. MaxHeight and
// MinHeightFactor must match the synthesis parameters of the mesh.
type Config struct {
	Interval        float32
	MaxHeight       float32
	MinHeightFactor float32
	BaseColor       RGB
}

// Validate checks the config before any work is done.
func (c Config) Validate() error {
	switch {
	case !finite32(c.Interval) || c.Interval <= 0:
		return fmt.Errorf("%w: interval must be positive, got %v", ErrInvalidParameter, c.Interval)
	case !finite32(c.MaxHeight):
		return fmt.Errorf("%w: max height must be finite, got %v", ErrInvalidParameter, c.MaxHeight)
	case !finite32(c.MinHeightFactor) || c.MinHeightFactor < 0 || c.MinHeightFactor > 0.5:
		return fmt.Errorf("%w: min height factor must be in [0, 0.5], got %v", ErrInvalidParameter, c.MinHeightFactor)
	case c.MaxHeight/c.Interval > MaxLevels:
		return fmt.Errorf("%w: interval %v yields more than %d levels below %v", ErrInvalidParameter, c.Interval, MaxLevels, c.MaxHeight)
	}
	return nil
}

// Floor returns the base-plate elevation that is never contoured.
func (c Config) Floor() float32 {
	return c.MinHeightFactor * c.MaxHeight
}

// Level holds every segment at one iso-height. Points are segment endpoints
// taken pairwise; Colors is parallel to Points.
type Level struct {
	Height float32
	Points []math.Vec3
	Colors []RGB
}

// SegmentCount returns the number of line segments.
func (l *Level) SegmentCount() int {
	return len(l.Points) / 2
}

// Positions returns endpoints packed as xyz triples for a line buffer.
func (l *Level) Positions() []float32 {
	out := make([]float32, 0, len(l.Points)*3)
	for _, p := range l.Points {
		out = append(out, p.X, p.Y, p.Z)
	}
	return out
}

// PackedColors returns endpoint colours packed as rgb triples.
func (l *Level) PackedColors() []float32 {
	out := make([]float32, 0, len(l.Colors)*3)
	for _, c := range l.Colors {
		out = append(out, c[0], c[1], c[2])
	}
	return out
}

func (l *Level) addSegment(a, b math.Vec3, color RGB) {
	l.Points = append(l.Points, a, b)
	l.Colors = append(l.Colors, color, color)
}

// Levels maps iso-height to its level. Levels without segments are absent.
type Levels map[float32]*Level

// Heights returns the level heights in ascending order.
func (ls Levels) Heights() []float32 {
	hs := make([]float32, 0, len(ls))
	for h := range ls {
		hs = append(hs, h)
	}
	sort.Slice(hs, func(i, j int) bool { return hs[i] < hs[j] })
	return hs
}

// SegmentCount returns the total number of segments across all levels.
func (ls Levels) SegmentCount() int {
	n := 0
	for _, l := range ls {
		n += l.SegmentCount()
	}
	return n
}

func finite32(v float32) bool {
	f := float64(v)
	return !gomath.IsNaN(f) && !gomath.IsInf(f, 0)
}

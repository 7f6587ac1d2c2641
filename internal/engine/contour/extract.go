package contour

import (
	"fmt"
	"time"

	"github.com/chewxy/math32"
	"go.uber.org/zap"

	"github.com/Faultbox/isoterrain/internal/engine/terrain"
	"github.com/Faultbox/isoterrain/internal/logger"
	"github.com/Faultbox/isoterrain/pkg/math"
)

// Extract walks every triangle of grid and emits line segments where the
// surface crosses each multiple of cfg.Interval.
//
// Levels at or above cfg.MaxHeight, at or below the floor (when positive)
// and at or below zero are never emitted. On error the returned Levels is
// empty and non-nil, so callers can treat it as "nothing to draw".
func Extract(grid *terrain.Grid, cfg Config) (Levels, error) {
	levels := Levels{}

	if err := cfg.Validate(); err != nil {
		return levels, err
	}
	if err := checkMesh(grid); err != nil {
		return levels, err
	}

	start := time.Now()
	floor := cfg.Floor()
	vs := grid.Vertices
	idx := grid.Indices

	for i := 0; i < len(idx); i += 3 {
		tri := [3]math.Vec3{vs[idx[i]], vs[idx[i+1]], vs[idx[i+2]]}

		minY := math32.Min(tri[0].Y, math32.Min(tri[1].Y, tri[2].Y))
		maxY := math32.Max(tri[0].Y, math32.Max(tri[1].Y, tri[2].Y))

		// Nothing to emit below zero, the floor, or from MaxHeight up
		lo := math32.Max(minY, math32.Max(floor, 0))
		if lo >= cfg.MaxHeight {
			continue
		}

		// Heights are k*Interval with integer k so every triangle produces
		// the same key for the same level.
		for k := int(math32.Ceil(lo / cfg.Interval)); ; k++ {
			h := float32(k) * cfg.Interval
			if h > maxY || h >= cfg.MaxHeight {
				break
			}
			if floor > 0 && h <= floor {
				continue
			}
			if h <= 0 {
				continue
			}

			var pts [3]math.Vec3
			n := crossings(&tri, h, &pts)

			switch n {
			case 2:
				level(levels, h).addSegment(pts[0], pts[1], cfg.BaseColor)
			case 3:
				l := level(levels, h)
				l.addSegment(pts[0], pts[1], cfg.BaseColor)
				l.addSegment(pts[1], pts[2], cfg.BaseColor)
			}
		}
	}

	logger.Debug("contours extracted",
		zap.Int("triangles", len(idx)/3),
		zap.Int("levels", len(levels)),
		zap.Int("segments", levels.SegmentCount()),
		zap.Duration("took", time.Since(start)),
	)

	return levels, nil
}

// crossings stores the points where the triangle's edges cross height h and
// returns how many there are. An edge crosses when one endpoint is below h
// and the other at or above it, so a vertex lying exactly on h is counted
// once, from the below side.
func crossings(tri *[3]math.Vec3, h float32, out *[3]math.Vec3) int {
	n := 0
	for e := range 3 {
		a, b := tri[e], tri[(e+1)%3]
		if (a.Y < h && b.Y >= h) || (b.Y < h && a.Y >= h) {
			t := (h - a.Y) / (b.Y - a.Y)
			p := a.Lerp(b, t)
			p.Y = h
			out[n] = p
			n++
		}
	}
	return n
}

func level(levels Levels, h float32) *Level {
	l, ok := levels[h]
	if !ok {
		l = &Level{Height: h}
		levels[h] = l
	}
	return l
}

// checkMesh validates the whole index buffer up front so that extraction
// never produces partial output.
func checkMesh(grid *terrain.Grid) error {
	if grid == nil {
		return fmt.Errorf("%w: nil mesh", ErrMalformedMesh)
	}
	if len(grid.Indices) == 0 {
		return fmt.Errorf("%w: no index buffer", ErrMalformedMesh)
	}
	if len(grid.Indices)%3 != 0 {
		return fmt.Errorf("%w: index count %d is not a multiple of 3", ErrMalformedMesh, len(grid.Indices))
	}
	n := uint32(len(grid.Vertices))
	for i, idx := range grid.Indices {
		if idx >= n {
			return fmt.Errorf("%w: index %d references vertex %d of %d", ErrMalformedMesh, i, idx, n)
		}
	}
	return nil
}

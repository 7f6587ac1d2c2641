package picking

import (
	"github.com/Faultbox/isoterrain/internal/engine/terrain"
	"github.com/Faultbox/isoterrain/pkg/math"
)

// refineSteps is the number of bisection passes after the march brackets
// the surface.
const refineSteps = 20

// IntersectHeightfield finds the first point where ray meets the surface of
// grid, marching in increments of step up to maxDist and then bisecting the
// bracketing interval. The returned point lies on the surface.
func IntersectHeightfield(ray Ray, grid *terrain.Grid, maxDist, step float32) (math.Vec3, bool) {
	if grid == nil || len(grid.Vertices) == 0 || step <= 0 || maxDist <= 0 {
		return math.Vec3{}, false
	}

	// Pad the box so rays grazing a flat grid still enter it.
	pad := math.Vec3{X: 0, Y: 1e-3, Z: 0}
	box := NewAABB(grid.Bounds.Min.Sub(pad), grid.Bounds.Max.Add(pad))
	tmin, tmax, ok := ray.slabs(box)
	if !ok {
		return math.Vec3{}, false
	}
	if tmin < 0 {
		tmin = 0
	}
	if tmax > maxDist {
		tmax = maxDist
	}
	if tmax < tmin {
		return math.Vec3{}, false
	}

	above := func(t float32) (float32, bool) {
		p := ray.At(t)
		h, ok := grid.HeightAt(p.X, p.Z)
		return p.Y - h, ok
	}

	prevT := tmin
	prevD, prevOK := above(prevT)
	if prevOK && prevD <= 0 {
		return surface(ray, grid, prevT), true
	}

	for i := 1; ; i++ {
		t := tmin + float32(i)*step
		if t > tmax {
			t = tmax
		}
		d, ok := above(t)
		if ok && d <= 0 {
			if !prevOK {
				return surface(ray, grid, t), true
			}
			return surface(ray, grid, bisect(above, prevT, t)), true
		}
		prevT, prevOK = t, ok
		if t >= tmax {
			break
		}
	}
	return math.Vec3{}, false
}

// bisect narrows [lo, hi] where lo is above the surface and hi is not.
func bisect(above func(float32) (float32, bool), lo, hi float32) float32 {
	for range refineSteps {
		mid := (lo + hi) / 2
		if d, ok := above(mid); ok && d > 0 {
			lo = mid
		} else {
			hi = mid
		}
	}
	return hi
}

func surface(ray Ray, grid *terrain.Grid, t float32) math.Vec3 {
	p := ray.At(t)
	if h, ok := grid.HeightAt(p.X, p.Z); ok {
		p.Y = h
	}
	return p
}

package terrain

import "github.com/chewxy/math32"

// HeightAt returns the surface elevation at world position (x, z), following
// the grid's own triangulation so the result lies exactly on the rendered
// surface. The second result is false outside the grid or for non-finite
// coordinates.
func (g *Grid) HeightAt(x, z float32) (float32, bool) {
	if math32.IsNaN(x) || math32.IsNaN(z) || math32.IsInf(x, 0) || math32.IsInf(z, 0) {
		return 0, false
	}
	if g == nil || g.Segments <= 0 || len(g.Vertices) != (g.Segments+1)*(g.Segments+1) {
		return 0, false
	}

	half := g.Size / 2
	if x < -half || x > half || z < -half || z > half {
		return 0, false
	}

	step := g.Size / float32(g.Segments)
	gx := (x + half) / step
	gz := (z + half) / step

	col := int(math32.Floor(gx))
	row := int(math32.Floor(gz))

	// Points on the far edges belong to the last cell
	if col >= g.Segments {
		col = g.Segments - 1
	}
	if row >= g.Segments {
		row = g.Segments - 1
	}

	fx := clampf(gx-float32(col), 0, 1)
	fz := clampf(gz-float32(row), 0, 1)

	cols := g.Segments + 1
	ha := g.Vertices[row*cols+col].Y       // (0, 0)
	hb := g.Vertices[(row+1)*cols+col].Y   // (0, 1)
	hc := g.Vertices[(row+1)*cols+col+1].Y // (1, 1)
	hd := g.Vertices[row*cols+col+1].Y     // (1, 0)

	// Triangle (a, b, d) covers fx+fz <= 1, (b, c, d) the rest
	if fx+fz <= 1 {
		return ha + (hd-ha)*fx + (hb-ha)*fz, true
	}
	return hc + (hb-hc)*(1-fx) + (hd-hc)*(1-fz), true
}

func clampf(v, min, max float32) float32 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

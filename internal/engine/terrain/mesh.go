package terrain

import (
	"fmt"

	"github.com/Faultbox/isoterrain/pkg/math"
)

// NewGrid builds a flat (y=0) grid of size x size world units with segments
// subdivisions per axis, centred on the origin.
func NewGrid(size float32, segments int) (*Grid, error) {
	if segments <= 0 {
		return nil, fmt.Errorf("%w: segments must be positive, got %d", ErrInvalidParameter, segments)
	}
	if !(size > 0) {
		return nil, fmt.Errorf("%w: size must be positive, got %v", ErrInvalidParameter, size)
	}

	cols := segments + 1
	step := size / float32(segments)
	half := size / 2

	vertices := make([]math.Vec3, 0, cols*cols)
	for row := range cols {
		z := float32(row)*step - half
		for col := range cols {
			x := float32(col)*step - half
			vertices = append(vertices, math.Vec3{X: x, Y: 0, Z: z})
		}
	}

	indices := make([]uint32, 0, segments*segments*6)
	for row := range segments {
		for col := range segments {
			// a-d is the cell's corner ring: (col,row) (col,row+1) (col+1,row+1) (col+1,row)
			a := uint32(row*cols + col)
			b := uint32((row+1)*cols + col)
			c := uint32((row+1)*cols + col + 1)
			d := uint32(row*cols + col + 1)

			indices = append(indices,
				a, b, d,
				b, c, d,
			)
		}
	}

	g := &Grid{
		Size:     size,
		Segments: segments,
		Vertices: vertices,
		Indices:  indices,
	}
	g.updateBounds()
	return g, nil
}

// ComputeNormals recomputes per-vertex normals by accumulating area-weighted
// face normals. Vertices touched by no face get +Y.
func ComputeNormals(g *Grid) {
	normals := make([]math.Vec3, len(g.Vertices))

	for i := 0; i+2 < len(g.Indices); i += 3 {
		ia, ib, ic := g.Indices[i], g.Indices[i+1], g.Indices[i+2]
		a, b, c := g.Vertices[ia], g.Vertices[ib], g.Vertices[ic]

		// Unnormalized cross product weights by triangle area
		n := b.Sub(a).Cross(c.Sub(a))
		normals[ia] = normals[ia].Add(n)
		normals[ib] = normals[ib].Add(n)
		normals[ic] = normals[ic].Add(n)
	}

	up := math.Vec3{Y: 1}
	for i, n := range normals {
		if n.Length() < 1e-6 {
			normals[i] = up
			continue
		}
		normals[i] = n.Normalize()
	}

	g.Normals = normals
}

func (g *Grid) updateBounds() {
	if len(g.Vertices) == 0 {
		g.Bounds = Bounds{}
		return
	}
	b := Bounds{Min: g.Vertices[0], Max: g.Vertices[0]}
	for _, v := range g.Vertices[1:] {
		b.Min = b.Min.Min(v)
		b.Max = b.Max.Max(v)
	}
	g.Bounds = b
}

// Package terrain synthesizes noise-driven heightfield meshes.
package terrain

import (
	"github.com/Faultbox/isoterrain/pkg/math"
)

// Parameters controls heightfield synthesis. It is a value type: a synthesis
// call never modifies it.
type Parameters struct {
	MaxHeight       float64 `yaml:"max_height"`        // nominal peak elevation
	NoiseScale      float64 `yaml:"noise_scale"`       // world units per noise period
	MinHeightFactor float64 `yaml:"min_height_factor"` // floor as a fraction of MaxHeight, [0, 0.5]
	PlateauVolume   float64 `yaml:"plateau_volume"`    // peak flattening, [0, 1]
	Size            float64 `yaml:"size"`              // side length of the square grid
	Segments        int     `yaml:"segments"`          // subdivisions per axis
	Seed            float64 `yaml:"seed"`              // third noise coordinate
}

// DefaultParameters returns the parameters the viewer starts with.
func DefaultParameters() Parameters {
	return Parameters{
		MaxHeight:       40,
		NoiseScale:      60,
		MinHeightFactor: 0.1,
		PlateauVolume:   0,
		Size:            200,
		Segments:        200,
		Seed:            0,
	}
}

// Floor returns the hard minimum elevation, MinHeightFactor * MaxHeight.
func (p Parameters) Floor() float64 {
	return p.MinHeightFactor * p.MaxHeight
}

// PlateauCutoff returns the elevation above which peaks are compressed.
func (p Parameters) PlateauCutoff() float64 {
	return p.MaxHeight * (1 - p.PlateauVolume*0.5)
}

// Grid is a regular triangulated heightfield.
//
// Vertices are row-major: row r (z axis) and column c (x axis) live at
// r*(Segments+1)+c. The grid is centred on the origin. Indices holds two
// triangles per cell, wound counter-clockwise seen from +Y.
type Grid struct {
	Size     float32
	Segments int
	Vertices []math.Vec3
	Normals  []math.Vec3
	Indices  []uint32
	Bounds   Bounds
}

// Bounds is the axis-aligned bounding box of a grid.
type Bounds struct {
	Min math.Vec3
	Max math.Vec3
}

// Center returns the midpoint of the box.
func (b Bounds) Center() math.Vec3 {
	return b.Min.Lerp(b.Max, 0.5)
}

// TriangleCount returns the number of triangles in the index buffer.
func (g *Grid) TriangleCount() int {
	return len(g.Indices) / 3
}

// Positions returns vertex positions packed as xyz float triples.
func (g *Grid) Positions() []float32 {
	return pack(g.Vertices)
}

// PackedNormals returns vertex normals packed as xyz float triples.
func (g *Grid) PackedNormals() []float32 {
	return pack(g.Normals)
}

func pack(vs []math.Vec3) []float32 {
	out := make([]float32, 0, len(vs)*3)
	for _, v := range vs {
		out = append(out, v.X, v.Y, v.Z)
	}
	return out
}

package debug

import (
	"github.com/Faultbox/isoterrain/internal/engine/terrain"
	"github.com/Faultbox/isoterrain/pkg/math"
)

// CellGridRenderer generates debug visualization for the cells of a grid.
type CellGridRenderer struct {
	grid  *terrain.Grid
	every int
	lift  float32
}

// NewCellGridRenderer creates a renderer that outlines every n-th cell row
// and column, lifted lift units above the surface.
func NewCellGridRenderer(grid *terrain.Grid, every int, lift float32) *CellGridRenderer {
	if grid == nil {
		return nil
	}
	if every < 1 {
		every = 1
	}
	return &CellGridRenderer{
		grid:  grid,
		every: every,
		lift:  lift,
	}
}

// CellVertex represents a vertex for cell grid rendering.
type CellVertex struct {
	X, Y, Z float32 // Position
	R, G, B float32 // Color
}

// GenerateGridLines generates line vertices draped over the surface, two
// per grid edge.
func (r *CellGridRenderer) GenerateGridLines() []CellVertex {
	if r == nil {
		return nil
	}

	g := r.grid
	cols := g.Segments + 1
	gridColor := [3]float32{0.5, 0.5, 0.5}
	vertex := func(i int) CellVertex {
		v := g.Vertices[i]
		return CellVertex{v.X, v.Y + r.lift, v.Z, gridColor[0], gridColor[1], gridColor[2]}
	}

	var vertices []CellVertex

	// Lines of constant x
	for col := 0; col < cols; col += r.every {
		for row := 0; row < g.Segments; row++ {
			vertices = append(vertices, vertex(row*cols+col), vertex((row+1)*cols+col))
		}
	}

	// Lines of constant z
	for row := 0; row < cols; row += r.every {
		for col := 0; col < g.Segments; col++ {
			vertices = append(vertices, vertex(row*cols+col), vertex(row*cols+col+1))
		}
	}

	return vertices
}

// GenerateFloorOverlay generates coloured quads for cells whose four corners
// all sit on the floor, 6 vertices per cell.
func (r *CellGridRenderer) GenerateFloorOverlay(floor float32) []CellVertex {
	if r == nil || floor <= 0 {
		return nil
	}

	g := r.grid
	cols := g.Segments + 1
	color := [3]float32{0.0, 0.3, 0.6}

	var vertices []CellVertex
	for row := 0; row < g.Segments; row++ {
		for col := 0; col < g.Segments; col++ {
			a := g.Vertices[row*cols+col]
			b := g.Vertices[(row+1)*cols+col]
			c := g.Vertices[(row+1)*cols+col+1]
			d := g.Vertices[row*cols+col+1]
			if a.Y > floor || b.Y > floor || c.Y > floor || d.Y > floor {
				continue
			}

			y := floor + r.lift
			vertices = append(vertices,
				CellVertex{a.X, y, a.Z, color[0], color[1], color[2]},
				CellVertex{b.X, y, b.Z, color[0], color[1], color[2]},
				CellVertex{d.X, y, d.Z, color[0], color[1], color[2]},
			)
			vertices = append(vertices,
				CellVertex{b.X, y, b.Z, color[0], color[1], color[2]},
				CellVertex{c.X, y, c.Z, color[0], color[1], color[2]},
				CellVertex{d.X, y, d.Z, color[0], color[1], color[2]},
			)
		}
	}

	return vertices
}

// GenerateMarker generates a small flat quad centred on p, used to show the
// hovered point.
func (r *CellGridRenderer) GenerateMarker(p math.Vec3, size float32) []CellVertex {
	color := [3]float32{1.0, 0.8, 0.1}
	var lift float32
	if r != nil {
		lift = r.lift
	}
	h := size / 2
	y := p.Y + lift
	x0, x1 := p.X-h, p.X+h
	z0, z1 := p.Z-h, p.Z+h

	return []CellVertex{
		{x0, y, z0, color[0], color[1], color[2]},
		{x0, y, z1, color[0], color[1], color[2]},
		{x1, y, z0, color[0], color[1], color[2]},
		{x0, y, z1, color[0], color[1], color[2]},
		{x1, y, z1, color[0], color[1], color[2]},
		{x1, y, z0, color[0], color[1], color[2]},
	}
}

// CellInfo contains information about a specific cell.
type CellInfo struct {
	Col, Row int
	Heights  [4]float32 // Corner heights a, b, c, d
	Height   float32    // Interpolated height at the query point
}

// GetCellInfo returns information about the cell containing (x, z), or nil
// when the point is off the grid.
func (r *CellGridRenderer) GetCellInfo(x, z float32) *CellInfo {
	if r == nil {
		return nil
	}

	g := r.grid
	h, ok := g.HeightAt(x, z)
	if !ok {
		return nil
	}

	step := g.Size / float32(g.Segments)
	half := g.Size / 2
	col := min(int((x+half)/step), g.Segments-1)
	row := min(int((z+half)/step), g.Segments-1)
	cols := g.Segments + 1

	return &CellInfo{
		Col: col,
		Row: row,
		Heights: [4]float32{
			g.Vertices[row*cols+col].Y,
			g.Vertices[(row+1)*cols+col].Y,
			g.Vertices[(row+1)*cols+col+1].Y,
			g.Vertices[row*cols+col+1].Y,
		},
		Height: h,
	}
}

// Flatten packs vertices as interleaved xyz rgb floats.
func Flatten(vertices []CellVertex) []float32 {
	out := make([]float32, 0, len(vertices)*6)
	for _, v := range vertices {
		out = append(out, v.X, v.Y, v.Z, v.R, v.G, v.B)
	}
	return out
}

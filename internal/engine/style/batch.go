package style

import (
	"github.com/Faultbox/isoterrain/internal/engine/contour"
	"github.com/Faultbox/isoterrain/pkg/math"
)

// Batch packs every level of a contour map into one position array and one
// colour array so the lines draw in a single call. Each level keeps its own
// Buffer over a window of the shared colour array.
type Batch struct {
	heights   []float32
	positions []float32
	colors    []float32
	buffers   []*Buffer
	first     []int
}

// NewBatch packs levels in ascending height order.
func NewBatch(levels contour.Levels) *Batch {
	b := &Batch{heights: levels.Heights()}

	total := 0
	for _, h := range b.heights {
		total += len(levels[h].Points)
	}
	b.positions = make([]float32, 0, total*3)
	b.colors = make([]float32, total*3)

	vertex := 0
	for _, h := range b.heights {
		level := levels[h]
		n := len(level.Points)
		b.first = append(b.first, vertex)
		b.positions = append(b.positions, level.Positions()...)
		b.buffers = append(b.buffers, newBufferInto(level, b.colors[vertex*3:(vertex+n)*3]))
		vertex += n
	}
	return b
}

// Update re-fades every level for the given camera position.
func (b *Batch) Update(camera math.Vec3, p FadeParams) {
	for _, buf := range b.buffers {
		buf.Update(camera, p)
	}
}

// Reset restores every level's base colours.
func (b *Batch) Reset() {
	for _, buf := range b.buffers {
		buf.Reset()
	}
}

// Heights returns the packed level heights in draw order.
func (b *Batch) Heights() []float32 {
	return b.heights
}

// Range returns the first vertex and vertex count of the i-th level.
func (b *Batch) Range(i int) (first, count int) {
	return b.first[i], len(b.buffers[i].points)
}

// VertexCount returns the number of line vertices, two per segment.
func (b *Batch) VertexCount() int {
	return len(b.positions) / 3
}

// Positions returns packed xyz triples.
func (b *Batch) Positions() []float32 {
	return b.positions
}

// Colors returns packed rgb triples.
func (b *Batch) Colors() []float32 {
	return b.colors
}

package style

import (
	"github.com/Faultbox/isoterrain/internal/engine/contour"
	"github.com/Faultbox/isoterrain/pkg/math"
)

// Buffer is a per-level colour buffer owned by the renderer. It keeps the
// level's base colours untouched and rewrites its own copy every frame.
type Buffer struct {
	points []math.Vec3
	base   []contour.RGB
	colors []float32
}

// NewBuffer copies the colours of level into a new buffer.
func NewBuffer(level *contour.Level) *Buffer {
	return newBufferInto(level, make([]float32, len(level.Colors)*3))
}

// newBufferInto backs the buffer with dst, which must hold three floats per
// point of level.
func newBufferInto(level *contour.Level, dst []float32) *Buffer {
	b := &Buffer{
		points: level.Points,
		base:   level.Colors,
		colors: dst,
	}
	b.Reset()
	return b
}

// Update re-fades every colour for the given camera position.
func (b *Buffer) Update(camera math.Vec3, p FadeParams) {
	for i, pt := range b.points {
		c := Fade(pt, camera, p.Near, p.Far, b.base[i], p.FadeColor)
		b.colors[i*3] = c[0]
		b.colors[i*3+1] = c[1]
		b.colors[i*3+2] = c[2]
	}
}

// Reset restores the base colours.
func (b *Buffer) Reset() {
	for i, c := range b.base {
		b.colors[i*3] = c[0]
		b.colors[i*3+1] = c[1]
		b.colors[i*3+2] = c[2]
	}
}

// Colors returns the packed rgb triples, ready for upload.
func (b *Buffer) Colors() []float32 {
	return b.colors
}

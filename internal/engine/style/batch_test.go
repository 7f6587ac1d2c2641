package style

import (
	"testing"

	"github.com/Faultbox/isoterrain/internal/engine/contour"
	"github.com/Faultbox/isoterrain/pkg/math"
)

func testLevels() contour.Levels {
	return contour.Levels{
		10: {
			Height: 10,
			Points: []math.Vec3{{X: 0, Y: 10}, {X: 30, Y: 10}},
			Colors: []contour.RGB{base, base},
		},
		5: {
			Height: 5,
			Points: []math.Vec3{{X: 0, Y: 5}, {X: 5, Y: 5}, {X: 5, Y: 5}, {X: 50, Y: 5}},
			Colors: []contour.RGB{base, base, base, base},
		},
	}
}

func TestBatchPacksInHeightOrder(t *testing.T) {
	b := NewBatch(testLevels())

	if got := b.Heights(); len(got) != 2 || got[0] != 5 || got[1] != 10 {
		t.Fatalf("Heights = %v, want [5 10]", got)
	}
	if b.VertexCount() != 6 {
		t.Fatalf("VertexCount = %d, want 6", b.VertexCount())
	}
	if len(b.Colors()) != 18 || len(b.Positions()) != 18 {
		t.Fatalf("packed lengths = %d/%d, want 18/18", len(b.Positions()), len(b.Colors()))
	}

	if first, count := b.Range(0); first != 0 || count != 4 {
		t.Errorf("Range(0) = %d,%d, want 0,4", first, count)
	}
	if first, count := b.Range(1); first != 4 || count != 2 {
		t.Errorf("Range(1) = %d,%d, want 4,2", first, count)
	}

	// Fifth vertex is the first point of level 10
	if y := b.Positions()[4*3+1]; y != 10 {
		t.Errorf("vertex 4 y = %v, want 10", y)
	}
}

func TestBatchUpdateSharesColours(t *testing.T) {
	levels := testLevels()
	b := NewBatch(levels)

	for i, v := range b.Colors() {
		if v != 1 {
			t.Fatalf("initial colour %d = %v, want 1", i, v)
		}
	}

	b.Update(math.Vec3{}, FadeParams{Near: 10, Far: 20, FadeColor: fog})

	// Distances: level 5 = 5, 7.07, 7.07, 50.2; level 10 = 10, 31.6
	want := []float32{1, 1, 1, 0, 1, 0}
	for i, w := range want {
		if got := b.Colors()[i*3]; got != w {
			t.Errorf("vertex %d red = %v, want %v", i, got, w)
		}
	}

	for h, level := range levels {
		for i, c := range level.Colors {
			if c != base {
				t.Errorf("level %v colour %d mutated to %v", h, i, c)
			}
		}
	}

	b.Reset()
	for i, v := range b.Colors() {
		if v != 1 {
			t.Fatalf("after Reset colour %d = %v", i, v)
		}
	}
}

func TestBatchEmpty(t *testing.T) {
	b := NewBatch(contour.Levels{})
	if b.VertexCount() != 0 || len(b.Heights()) != 0 {
		t.Errorf("empty batch: %d vertices, %d heights", b.VertexCount(), len(b.Heights()))
	}
	b.Update(math.Vec3{}, FadeParams{Near: 1, Far: 2})
}

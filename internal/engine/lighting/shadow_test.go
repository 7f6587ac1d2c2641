package lighting

import (
	"testing"

	"github.com/Faultbox/isoterrain/internal/engine/terrain"
	"github.com/Faultbox/isoterrain/pkg/math"
)

func testBounds() terrain.Bounds {
	return terrain.Bounds{
		Min: math.Vec3{X: -100, Y: 0, Z: -100},
		Max: math.Vec3{X: 100, Y: 40, Z: 100},
	}
}

func TestVolumeOf(t *testing.T) {
	v := VolumeOf(testBounds())
	if v.Center != (math.Vec3{X: 0, Y: 20, Z: 0}) {
		t.Errorf("Center = %v, want (0,20,0)", v.Center)
	}
	want := math.Vec3{X: 100, Y: 20, Z: 100}.Length()
	if d := v.Radius - want; d > 1e-3 || d < -1e-3 {
		t.Errorf("Radius = %v, want %v", v.Radius, want)
	}
}

func TestShadowMatrixCoversBounds(t *testing.T) {
	b := testBounds()
	vol := VolumeOf(b)

	suns := []math.Vec3{
		SunDirection(135, 40),
		SunDirection(0, 10),
		{Y: 1},
	}

	for _, sun := range suns {
		m := ShadowMatrix(sun, vol)
		for _, x := range []float32{b.Min.X, b.Max.X} {
			for _, y := range []float32{b.Min.Y, b.Max.Y} {
				for _, z := range []float32{b.Min.Z, b.Max.Z} {
					p := m.TransformVec3(math.Vec3{X: x, Y: y, Z: z})
					if p.X < -1 || p.X > 1 || p.Y < -1 || p.Y > 1 || p.Z < -1 || p.Z > 1 {
						t.Errorf("sun %v: corner (%v,%v,%v) maps outside clip volume: %v", sun, x, y, z, p)
					}
				}
			}
		}
	}
}

func TestShadowMatrixDepthOrder(t *testing.T) {
	sun := math.Vec3{Y: 1}
	m := ShadowMatrix(sun, VolumeOf(testBounds()))

	high := m.TransformVec3(math.Vec3{Y: 40})
	low := m.TransformVec3(math.Vec3{Y: 0})
	if high.Z >= low.Z {
		t.Errorf("point nearer the sun should have smaller depth: high %v, low %v", high.Z, low.Z)
	}
}

func TestShadowMatrixDegenerateVolume(t *testing.T) {
	m := ShadowMatrix(math.Vec3{Y: 1}, Volume{})
	p := m.TransformVec3(math.Vec3{})
	if p.X != p.X || p.Y != p.Y || p.Z != p.Z {
		t.Fatalf("degenerate volume produced NaN: %v", p)
	}
}

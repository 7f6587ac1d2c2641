package picking

import (
	gomath "math"
	"testing"

	"github.com/Faultbox/isoterrain/internal/engine/terrain"
	"github.com/Faultbox/isoterrain/pkg/math"
)

func near(a, b, eps float32) bool {
	return gomath.Abs(float64(a-b)) <= float64(eps)
}

// shapedGrid returns a 100x100 grid with heights from f and matching bounds.
func shapedGrid(t *testing.T, f func(x, z float32) float32) *terrain.Grid {
	t.Helper()
	g, err := terrain.NewGrid(100, 20)
	if err != nil {
		t.Fatalf("NewGrid: %v", err)
	}
	for i, v := range g.Vertices {
		g.Vertices[i].Y = f(v.X, v.Z)
	}
	g.Bounds = terrain.Bounds{Min: g.Vertices[0], Max: g.Vertices[0]}
	for _, v := range g.Vertices {
		g.Bounds.Min = g.Bounds.Min.Min(v)
		g.Bounds.Max = g.Bounds.Max.Max(v)
	}
	return g
}

func TestScreenToRayCenter(t *testing.T) {
	eye := math.Vec3{Z: 10}
	view := math.LookAt(eye, math.Vec3{}, math.Vec3{Y: 1})
	proj := math.Perspective(gomath.Pi/3, 1, 0.1, 100)
	inv := proj.Mul(view).Inverse()

	r := ScreenToRay(400, 300, 800, 600, inv)
	if !near(r.Direction.X, 0, 1e-4) || !near(r.Direction.Y, 0, 1e-4) || !near(r.Direction.Z, -1, 1e-4) {
		t.Errorf("direction = %v, want (0, 0, -1)", r.Direction)
	}
	if !near(r.Origin.Z, 9.9, 1e-3) {
		t.Errorf("origin = %v, want on near plane z=9.9", r.Origin)
	}

	left := ScreenToRay(0, 300, 800, 600, inv)
	if left.Direction.X >= 0 {
		t.Errorf("left edge ray should point -X, got %v", left.Direction)
	}
}

func TestIntersectPlaneY(t *testing.T) {
	r := Ray{Origin: math.Vec3{X: 1, Y: 10, Z: 2}, Direction: math.Vec3{Y: -1}}
	x, z, ok := r.IntersectPlaneY(3)
	if !ok || x != 1 || z != 2 {
		t.Errorf("got (%v, %v, %v)", x, z, ok)
	}

	if _, _, ok := r.IntersectPlaneY(20); ok {
		t.Error("plane behind origin should miss")
	}
	flat := Ray{Direction: math.Vec3{X: 1}}
	if _, _, ok := flat.IntersectPlaneY(0); ok {
		t.Error("parallel ray should miss")
	}
}

func TestIntersectAABB(t *testing.T) {
	box := NewAABB(math.Vec3{X: 1, Y: 1, Z: 1}, math.Vec3{X: -1, Y: -1, Z: -1})

	r := Ray{Origin: math.Vec3{Z: 5}, Direction: math.Vec3{Z: -1}}
	if d, ok := r.IntersectAABB(box); !ok || !near(d, 4, 1e-5) {
		t.Errorf("front hit = (%v, %v), want (4, true)", d, ok)
	}

	inside := Ray{Direction: math.Vec3{X: 1}}
	if d, ok := inside.IntersectAABB(box); !ok || !near(d, 1, 1e-5) {
		t.Errorf("inside hit = (%v, %v), want (1, true)", d, ok)
	}

	miss := Ray{Origin: math.Vec3{X: 3, Z: 5}, Direction: math.Vec3{Z: -1}}
	if _, ok := miss.IntersectAABB(box); ok {
		t.Error("offset ray should miss")
	}
}

func TestIntersectHeightfieldFlat(t *testing.T) {
	g := shapedGrid(t, func(x, z float32) float32 { return 5 })

	down := Ray{Origin: math.Vec3{X: 10, Y: 50, Z: -20}, Direction: math.Vec3{Y: -1}}
	p, ok := IntersectHeightfield(down, g, 1000, 1)
	if !ok {
		t.Fatal("vertical ray missed")
	}
	if !near(p.X, 10, 1e-3) || !near(p.Y, 5, 1e-4) || !near(p.Z, -20, 1e-3) {
		t.Errorf("hit = %v, want (10, 5, -20)", p)
	}

	slant := Ray{Origin: math.Vec3{X: -40, Y: 30}, Direction: math.Vec3{X: 1, Y: -1}.Normalize()}
	p, ok = IntersectHeightfield(slant, g, 1000, 2)
	if !ok {
		t.Fatal("slanted ray missed")
	}
	if !near(p.X, -15, 1e-2) || !near(p.Y, 5, 1e-4) {
		t.Errorf("hit = %v, want x=-15 y=5", p)
	}
}

func TestIntersectHeightfieldSlope(t *testing.T) {
	g := shapedGrid(t, func(x, z float32) float32 { return x*0.5 + 25 })

	// Ray travelling +X at y=30 meets the slope where 0.5x+25 = 30.
	r := Ray{Origin: math.Vec3{X: -60, Y: 30, Z: 7}, Direction: math.Vec3{X: 1}}
	p, ok := IntersectHeightfield(r, g, 500, 3)
	if !ok {
		t.Fatal("ray missed slope")
	}
	if !near(p.X, 10, 1e-2) {
		t.Errorf("hit x = %v, want 10", p.X)
	}
	h, _ := g.HeightAt(p.X, p.Z)
	if p.Y != h {
		t.Errorf("hit y = %v, surface %v", p.Y, h)
	}
}

func TestIntersectHeightfieldMisses(t *testing.T) {
	g := shapedGrid(t, func(x, z float32) float32 { return 5 })

	tests := []struct {
		name    string
		ray     Ray
		maxDist float32
	}{
		{"pointing up", Ray{Origin: math.Vec3{Y: 50}, Direction: math.Vec3{Y: 1}}, 1000},
		{"outside grid", Ray{Origin: math.Vec3{X: 200, Y: 50}, Direction: math.Vec3{Y: -1}}, 1000},
		{"too short", Ray{Origin: math.Vec3{Y: 50}, Direction: math.Vec3{Y: -1}}, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if p, ok := IntersectHeightfield(tt.ray, g, tt.maxDist, 1); ok {
				t.Errorf("unexpected hit at %v", p)
			}
		})
	}

	if _, ok := IntersectHeightfield(tests[0].ray, nil, 100, 1); ok {
		t.Error("nil grid should miss")
	}
}

package terrain

import (
	"errors"
	gomath "math"
	"math/rand"
	"testing"

	"github.com/Faultbox/isoterrain/pkg/math"
	"github.com/Faultbox/isoterrain/pkg/noise"
)

func testParams() Parameters {
	return Parameters{
		MaxHeight:       40,
		NoiseScale:      60,
		MinHeightFactor: 0.1,
		PlateauVolume:   0,
		Size:            200,
		Segments:        48,
		Seed:            3.7,
	}
}

func constant(v float64) noise.Sampler {
	return noise.Func(func(x, y, z float64) float64 { return v })
}

func maxY(g *Grid) float32 {
	m := g.Vertices[0].Y
	for _, v := range g.Vertices {
		if v.Y > m {
			m = v.Y
		}
	}
	return m
}

func TestNewGridLayout(t *testing.T) {
	for _, segments := range []int{1, 2, 7} {
		g, err := NewGrid(100, segments)
		if err != nil {
			t.Fatalf("NewGrid(100, %d): %v", segments, err)
		}

		if want := (segments + 1) * (segments + 1); len(g.Vertices) != want {
			t.Errorf("segments=%d: %d vertices, want %d", segments, len(g.Vertices), want)
		}
		if want := 2 * segments * segments; g.TriangleCount() != want {
			t.Errorf("segments=%d: %d triangles, want %d", segments, g.TriangleCount(), want)
		}

		for i := 0; i < len(g.Indices); i += 3 {
			a, b, c := g.Indices[i], g.Indices[i+1], g.Indices[i+2]
			if a == b || b == c || a == c {
				t.Fatalf("triangle %d has repeated indices %d,%d,%d", i/3, a, b, c)
			}
			for _, idx := range []uint32{a, b, c} {
				if int(idx) >= len(g.Vertices) {
					t.Fatalf("index %d out of range", idx)
				}
			}
			// Counter-clockwise seen from +Y
			pa, pb, pc := g.Vertices[a], g.Vertices[b], g.Vertices[c]
			if n := pb.Sub(pa).Cross(pc.Sub(pa)); n.Y <= 0 {
				t.Fatalf("triangle %d winding normal %v points down", i/3, n)
			}
		}

		first, last := g.Vertices[0], g.Vertices[len(g.Vertices)-1]
		if first.Distance(math.Vec3{X: -50, Z: -50}) > 1e-3 || last.Distance(math.Vec3{X: 50, Z: 50}) > 1e-3 {
			t.Errorf("corners = %v, %v, want (-50,0,-50) and (50,0,50)", first, last)
		}
		// Row-major: second vertex steps along x
		if g.Vertices[1].Z != -50 || g.Vertices[1].X <= -50 {
			t.Errorf("second vertex %v should advance along x", g.Vertices[1])
		}
	}
}

func TestNewGridInvalid(t *testing.T) {
	tests := []struct {
		size     float32
		segments int
	}{
		{100, 0},
		{100, -3},
		{0, 4},
		{-1, 4},
	}
	for _, tt := range tests {
		if _, err := NewGrid(tt.size, tt.segments); !errors.Is(err, ErrInvalidParameter) {
			t.Errorf("NewGrid(%v, %d) error = %v, want ErrInvalidParameter", tt.size, tt.segments, err)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Parameters)
	}{
		{"zero segments", func(p *Parameters) { p.Segments = 0 }},
		{"negative size", func(p *Parameters) { p.Size = -10 }},
		{"zero max height", func(p *Parameters) { p.MaxHeight = 0 }},
		{"zero noise scale", func(p *Parameters) { p.NoiseScale = 0 }},
		{"min height factor above half", func(p *Parameters) { p.MinHeightFactor = 0.6 }},
		{"negative min height factor", func(p *Parameters) { p.MinHeightFactor = -0.1 }},
		{"plateau above one", func(p *Parameters) { p.PlateauVolume = 1.5 }},
		{"nan seed", func(p *Parameters) { p.Seed = gomath.NaN() }},
		{"infinite size", func(p *Parameters) { p.Size = gomath.Inf(1) }},
	}

	if err := testParams().Validate(); err != nil {
		t.Fatalf("valid params rejected: %v", err)
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := testParams()
			tt.mutate(&p)
			g, err := Synthesize(p, noise.NewImproved(0))
			if !errors.Is(err, ErrInvalidParameter) {
				t.Errorf("error = %v, want ErrInvalidParameter", err)
			}
			if g != nil {
				t.Error("no grid should be returned for invalid parameters")
			}
		})
	}
}

func TestSynthesizeDeterministic(t *testing.T) {
	for _, kind := range noise.Kinds {
		s1, _ := noise.New(kind, 5)
		s2, _ := noise.New(kind, 5)

		a, err := Synthesize(testParams(), s1)
		if err != nil {
			t.Fatalf("%s: %v", kind, err)
		}
		b, err := Synthesize(testParams(), s2)
		if err != nil {
			t.Fatalf("%s: %v", kind, err)
		}

		for i := range a.Vertices {
			if gomath.Float32bits(a.Vertices[i].Y) != gomath.Float32bits(b.Vertices[i].Y) {
				t.Fatalf("%s: vertex %d differs: %v vs %v", kind, i, a.Vertices[i].Y, b.Vertices[i].Y)
			}
		}
	}
}

func TestHeightFloor(t *testing.T) {
	for _, factor := range []float64{0, 0.1, 0.25, 0.5} {
		p := testParams()
		p.MinHeightFactor = factor
		g, err := Synthesize(p, noise.NewImproved(0))
		if err != nil {
			t.Fatal(err)
		}
		floor := float32(p.Floor())
		for i, v := range g.Vertices {
			if v.Y < floor {
				t.Fatalf("factor=%v: vertex %d at y=%v below floor %v", factor, i, v.Y, floor)
			}
		}
	}
}

func TestScenarioFloorAtHalf(t *testing.T) {
	p := testParams()
	p.MinHeightFactor = 0.5
	p.MaxHeight = 100

	g, err := Synthesize(p, noise.NewImproved(0))
	if err != nil {
		t.Fatal(err)
	}
	for i, v := range g.Vertices {
		if v.Y < 50 {
			t.Fatalf("vertex %d at y=%v, want >= 50", i, v.Y)
		}
	}
	if g.Bounds.Min.Y < 50 {
		t.Errorf("bounds min y = %v, want >= 50", g.Bounds.Min.Y)
	}
}

func TestPlateauMonotonic(t *testing.T) {
	prev := float32(gomath.Inf(1))
	var prevPlateau map[int]bool
	for _, volume := range []float64{0, 0.2, 0.4, 0.6, 0.8, 1} {
		p := testParams()
		p.PlateauVolume = volume
		g, err := Synthesize(p, noise.NewImproved(0))
		if err != nil {
			t.Fatal(err)
		}
		m := maxY(g)
		if m > prev {
			t.Errorf("volume=%v: max %v exceeds max %v at lower volume", volume, m, prev)
		}
		prev = m

		// Vertices flattened onto the plateau: at or above the cutoff
		cutoff := float32(p.PlateauCutoff())
		plateau := make(map[int]bool)
		for i, v := range g.Vertices {
			if v.Y >= cutoff {
				plateau[i] = true
			}
		}
		for i := range prevPlateau {
			if !plateau[i] {
				t.Errorf("volume=%v: vertex %d left the plateau", volume, i)
			}
		}
		if volume == 1 {
			if len(plateau) == 0 {
				t.Fatal("full plateau flattened no vertices")
			}
			for i := range plateau {
				if y := g.Vertices[i].Y; y != cutoff {
					t.Errorf("vertex %d at %v, want exactly the cutoff %v", i, y, cutoff)
				}
			}
		}
		prevPlateau = plateau
	}
}

func TestScenarioFullPlateau(t *testing.T) {
	p := testParams()
	p.MaxHeight = 100
	p.PlateauVolume = 1

	// A saturated sampler puts every raw height at MaxHeight
	g, err := Synthesize(p, constant(1))
	if err != nil {
		t.Fatal(err)
	}
	if got := maxY(g); got != 50 {
		t.Errorf("max height = %v, want %v", got, 50)
	}

	// Real noise: peaks are flattened to exactly the cutoff
	g, err = Synthesize(p, noise.NewImproved(0))
	if err != nil {
		t.Fatal(err)
	}
	if got, want := maxY(g), float32(p.PlateauCutoff()); got != want {
		t.Errorf("max height with noise = %v, want cutoff %v", got, want)
	}
}

func TestElevationFormula(t *testing.T) {
	p := Parameters{MaxHeight: 10, NoiseScale: 1, Size: 2, Segments: 1}

	// n1 = 0.5, n2 = -0.5
	s := noise.Func(func(x, y, z float64) float64 {
		if z == p.Seed {
			return 0.5
		}
		return -0.5
	})

	got, err := elevation(p, s, 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	combined := 0.5*0.97 - 0.5*0.03
	want := (combined + 1) / 2 * 10 * (1 + 1.0*0.1)
	if gomath.Abs(got-want) > 1e-12 {
		t.Errorf("elevation = %v, want %v", got, want)
	}
}

func TestNoiseFailureIsFatal(t *testing.T) {
	g, err := Synthesize(testParams(), constant(gomath.NaN()))
	if !errors.Is(err, ErrNoiseFailure) {
		t.Errorf("error = %v, want ErrNoiseFailure", err)
	}
	if g != nil {
		t.Error("no grid should be returned when the sampler fails")
	}

	if _, err := Synthesize(testParams(), nil); !errors.Is(err, ErrNoiseFailure) {
		t.Errorf("nil sampler error = %v, want ErrNoiseFailure", err)
	}
}

func TestNormals(t *testing.T) {
	g, err := NewGrid(10, 4)
	if err != nil {
		t.Fatal(err)
	}
	ComputeNormals(g)
	for i, n := range g.Normals {
		if n != (math.Vec3{Y: 1}) {
			t.Fatalf("flat grid normal %d = %v, want +Y", i, n)
		}
	}

	// Slope rising along +x tilts normals toward -x
	for i := range g.Vertices {
		g.Vertices[i].Y = g.Vertices[i].X
	}
	ComputeNormals(g)
	for i, n := range g.Normals {
		if n.X >= 0 || n.Y <= 0 {
			t.Fatalf("sloped normal %d = %v, want -x and +y components", i, n)
		}
		if l := n.Length(); l < 0.999 || l > 1.001 {
			t.Fatalf("normal %d not unit length: %v", i, l)
		}
	}
}

func TestHeightAt(t *testing.T) {
	g, err := NewGrid(20, 5)
	if err != nil {
		t.Fatal(err)
	}
	// Planar surface: barycentric interpolation is exact
	for i := range g.Vertices {
		v := &g.Vertices[i]
		v.Y = 0.5*v.X + 0.25*v.Z + 3
	}

	points := [][2]float32{{0, 0}, {-10, -10}, {10, 10}, {3.3, -7.1}, {9.99, 0.01}}
	for _, p := range points {
		got, ok := g.HeightAt(p[0], p[1])
		if !ok {
			t.Fatalf("HeightAt%v reported outside", p)
		}
		want := 0.5*p[0] + 0.25*p[1] + 3
		if d := got - want; d > 1e-4 || d < -1e-4 {
			t.Errorf("HeightAt%v = %v, want %v", p, got, want)
		}
	}

	if _, ok := g.HeightAt(10.5, 0); ok {
		t.Error("point outside the grid should report false")
	}
	nan, inf := float32(gomath.NaN()), float32(gomath.Inf(1))
	for _, p := range [][2]float32{{nan, 0}, {0, nan}, {inf, 0}, {0, -inf}} {
		if _, ok := g.HeightAt(p[0], p[1]); ok {
			t.Errorf("HeightAt%v should report false", p)
		}
	}
	var empty *Grid
	if _, ok := empty.HeightAt(0, 0); ok {
		t.Error("nil grid should report false")
	}
}

func TestHeightAtMatchesVertices(t *testing.T) {
	g, err := Synthesize(testParams(), noise.NewImproved(0))
	if err != nil {
		t.Fatal(err)
	}
	for _, i := range []int{0, 17, len(g.Vertices) / 2, len(g.Vertices) - 1} {
		v := g.Vertices[i]
		got, ok := g.HeightAt(v.X, v.Z)
		if !ok {
			t.Fatalf("vertex %d reported outside", i)
		}
		if d := got - v.Y; d > 1e-3 || d < -1e-3 {
			t.Errorf("HeightAt vertex %d = %v, want %v", i, got, v.Y)
		}
	}
}

func TestPackedBuffers(t *testing.T) {
	g, err := Synthesize(testParams(), noise.NewImproved(0))
	if err != nil {
		t.Fatal(err)
	}
	pos := g.Positions()
	if len(pos) != 3*len(g.Vertices) {
		t.Fatalf("positions length %d, want %d", len(pos), 3*len(g.Vertices))
	}
	if pos[4] != g.Vertices[1].Y {
		t.Errorf("packed y of vertex 1 = %v, want %v", pos[4], g.Vertices[1].Y)
	}
	if len(g.PackedNormals()) != len(pos) {
		t.Error("normals buffer should match positions length")
	}
}

func TestRoll(t *testing.T) {
	base := testParams()
	a := Roll(base, rand.New(rand.NewSource(1)))
	b := Roll(base, rand.New(rand.NewSource(1)))
	if a != b {
		t.Errorf("same rng seed should roll identical parameters: %+v vs %+v", a, b)
	}
	if a.Size != base.Size || a.Segments != base.Segments || a.MinHeightFactor != base.MinHeightFactor {
		t.Error("roll must keep grid shape and floor")
	}
	if err := a.Validate(); err != nil {
		t.Errorf("rolled parameters invalid: %v", err)
	}
}

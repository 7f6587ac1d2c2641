package noise

import (
	"errors"
	"math"
	"testing"
)

func TestParseKind(t *testing.T) {
	tests := []struct {
		in      string
		want    Kind
		wantErr bool
	}{
		{"", KindImproved, false},
		{"improved", KindImproved, false},
		{"Perlin", KindPerlin, false},
		{" simplex ", KindSimplex, false},
		{"worley", "", true},
	}

	for _, tt := range tests {
		got, err := ParseKind(tt.in)
		if tt.wantErr {
			if !errors.Is(err, ErrUnknownKind) {
				t.Errorf("ParseKind(%q) error = %v, want ErrUnknownKind", tt.in, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseKind(%q) unexpected error: %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseKind(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestKindNextCycles(t *testing.T) {
	k := KindImproved
	seen := map[Kind]bool{}
	for range Kinds {
		seen[k] = true
		k = k.Next()
	}
	if k != KindImproved {
		t.Errorf("cycling %d times should return to improved, got %q", len(Kinds), k)
	}
	if len(seen) != len(Kinds) {
		t.Errorf("expected to visit %d kinds, visited %d", len(Kinds), len(seen))
	}
}

func TestNewUnknownKind(t *testing.T) {
	if _, err := New("cellular", 1); !errors.Is(err, ErrUnknownKind) {
		t.Errorf("New(cellular) error = %v, want ErrUnknownKind", err)
	}
}

func TestReferencePermutationIsComplete(t *testing.T) {
	var seen [256]bool
	for _, v := range reference {
		if seen[v] {
			t.Fatalf("value %d appears twice", v)
		}
		seen[v] = true
	}
}

func TestImprovedLatticeIsZero(t *testing.T) {
	n := NewImproved(0)
	for _, p := range [][3]float64{{0, 0, 0}, {1, 2, 3}, {-4, 7, 100}} {
		if got := n.Noise3(p[0], p[1], p[2]); got != 0 {
			t.Errorf("Noise3%v = %v, want 0 on lattice points", p, got)
		}
	}
}

func TestSamplersDeterministicAndBounded(t *testing.T) {
	for _, kind := range Kinds {
		t.Run(string(kind), func(t *testing.T) {
			a, err := New(kind, 42)
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			b, _ := New(kind, 42)

			for i := range 500 {
				x := float64(i)*0.173 - 40
				y := float64(i%17) * 0.61
				z := float64(i)*-0.091 + 3
				va := a.Noise3(x, y, z)
				vb := b.Noise3(x, y, z)
				if va != vb {
					t.Fatalf("sample %d differs between identical samplers: %v vs %v", i, va, vb)
				}
				if math.IsNaN(va) || va < -1.05 || va > 1.05 {
					t.Fatalf("sample %d = %v out of approximately [-1,1]", i, va)
				}
			}
		})
	}
}

func TestSamplersCoherent(t *testing.T) {
	for _, kind := range Kinds {
		s, _ := New(kind, 7)
		for i := range 100 {
			x := float64(i) * 0.37
			d := math.Abs(s.Noise3(x, 1.5, 2.5) - s.Noise3(x+1e-4, 1.5, 2.5))
			if d > 0.01 {
				t.Errorf("%s: nearby samples differ by %v at x=%v", kind, d, x)
				break
			}
		}
	}
}

func TestImprovedSeedChangesField(t *testing.T) {
	a := NewImproved(0)
	b := NewImproved(99)
	differs := false
	for i := range 50 {
		x := float64(i)*0.31 + 0.5
		if a.Noise3(x, 0.25, 0.75) != b.Noise3(x, 0.25, 0.75) {
			differs = true
			break
		}
	}
	if !differs {
		t.Error("seeded permutation should produce a different field")
	}
}

func TestFuncAdapter(t *testing.T) {
	var s Sampler = Func(func(x, y, z float64) float64 { return x + y + z })
	if got := s.Noise3(1, 2, 3); got != 6 {
		t.Errorf("Func.Noise3 = %v, want 6", got)
	}
}

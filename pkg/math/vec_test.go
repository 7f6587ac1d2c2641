package math

import (
	"testing"
)

func TestVec2Length(t *testing.T) {
	v := Vec2{3, 4}
	if got := v.Length(); got != 5 {
		t.Errorf("Vec2.Length() = %v, want 5", got)
	}
}

func TestVec2Perp(t *testing.T) {
	got := Vec2{1, 0}.Perp()
	want := Vec2{0, 1}
	if got != want {
		t.Errorf("Vec2.Perp() = %v, want %v", got, want)
	}
}

func TestVec3Cross(t *testing.T) {
	got := Vec3{1, 0, 0}.Cross(Vec3{0, 1, 0})
	want := Vec3{0, 0, 1}
	if got != want {
		t.Errorf("Vec3.Cross() = %v, want %v", got, want)
	}
}

func TestVec3Normalize(t *testing.T) {
	n := Vec3{3, 4, 12}.Normalize()
	if l := n.Length(); l < 0.999 || l > 1.001 {
		t.Errorf("Vec3.Normalize().Length() = %v, want ~1", l)
	}
	if z := (Vec3{}).Normalize(); z != (Vec3{}) {
		t.Errorf("zero vector should normalize to zero, got %v", z)
	}
}

func TestVec3Lerp(t *testing.T) {
	a := Vec3{0, 10, 0}
	b := Vec3{10, 20, -10}
	tests := []struct {
		t    float32
		want Vec3
	}{
		{0, a},
		{1, b},
		{0.5, Vec3{5, 15, -5}},
	}
	for _, tt := range tests {
		if got := a.Lerp(b, tt.t); got != tt.want {
			t.Errorf("Lerp(%v) = %v, want %v", tt.t, got, tt.want)
		}
	}
}

func TestVec3MinMax(t *testing.T) {
	a := Vec3{1, 5, -3}
	b := Vec3{2, -1, 0}
	if got := a.Min(b); got != (Vec3{1, -1, -3}) {
		t.Errorf("Min = %v", got)
	}
	if got := a.Max(b); got != (Vec3{2, 5, 0}) {
		t.Errorf("Max = %v", got)
	}
}

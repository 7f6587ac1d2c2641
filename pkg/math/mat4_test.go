package math

import (
	"math"
	"testing"
)

func TestIdentity(t *testing.T) {
	m := Identity()
	if m[0] != 1 || m[5] != 1 || m[10] != 1 || m[15] != 1 {
		t.Error("Identity diagonal should be 1")
	}
	if m[1] != 0 || m[4] != 0 {
		t.Error("Identity off-diagonal should be 0")
	}
}

func TestMulIdentity(t *testing.T) {
	m := Translate(1, 2, 3)
	result := m.Mul(Identity())
	if result != m {
		t.Errorf("M * I = %v, want %v", result, m)
	}
}

func TestTranslate(t *testing.T) {
	m := Translate(5, 10, 15)
	if m[12] != 5 || m[13] != 10 || m[14] != 15 {
		t.Errorf("Translate: got (%f, %f, %f), want (5, 10, 15)", m[12], m[13], m[14])
	}
}

func TestTransformVec3(t *testing.T) {
	m := Translate(10, 20, 30)
	got := m.TransformVec3(Vec3{1, 2, 3})
	want := Vec3{11, 22, 33}
	if got != want {
		t.Errorf("TransformVec3: got %v, want %v", got, want)
	}
}

func TestPerspective(t *testing.T) {
	m := Perspective(float32(math.Pi/4), 1, 0.1, 100)
	if m[0] == 0 || m[5] == 0 {
		t.Error("Perspective should have non-zero scale elements")
	}
	if m[15] != 0 {
		t.Errorf("Perspective [15] should be 0, got %f", m[15])
	}
	if m[11] != -1 {
		t.Errorf("Perspective [11] should be -1, got %f", m[11])
	}
}

func TestOrthoMapsBoundsToNDC(t *testing.T) {
	m := Ortho(-50, 50, -20, 20, -1, 1)
	lo := m.TransformVec3(Vec3{-50, -20, 0})
	hi := m.TransformVec3(Vec3{50, 20, 0})
	if !near(lo.X, -1) || !near(lo.Y, -1) || !near(hi.X, 1) || !near(hi.Y, 1) {
		t.Errorf("Ortho corners: got %v and %v, want (-1,-1) and (1,1)", lo, hi)
	}
}

func TestLookAt(t *testing.T) {
	eye := Vec3{0, 0, 5}
	m := LookAt(eye, Vec3{}, Vec3{0, 1, 0})

	if got := m.TransformVec3(eye); got.Length() > 1e-5 {
		t.Errorf("eye should map to the origin, got %v", got)
	}
	if got := m.TransformVec3(Vec3{}); !near(got.Z, -5) {
		t.Errorf("center should map to z=-5, got %v", got)
	}
}

func TestInverse(t *testing.T) {
	m := LookAt(Vec3{3, 4, 5}, Vec3{1, 2, -3}, Vec3{0, 1, 0}).Mul(Translate(3, -2, 7))
	prod := m.Mul(m.Inverse())
	id := Identity()
	for i := range 16 {
		if !near(prod[i], id[i]) {
			t.Fatalf("M * M^-1 element %d = %f, want %f", i, prod[i], id[i])
		}
	}
}

func TestInverseSingular(t *testing.T) {
	var zero Mat4
	if got := zero.Inverse(); got != Identity() {
		t.Errorf("singular inverse = %v, want identity", got)
	}
}

func TestMulVec4(t *testing.T) {
	got := Translate(1, 2, 3).MulVec4(Vec4{0, 0, 0, 1})
	want := Vec4{1, 2, 3, 1}
	if got != want {
		t.Errorf("MulVec4: got %v, want %v", got, want)
	}
}

func near(a, b float32) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d < 1e-4
}

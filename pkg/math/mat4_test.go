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

	for i := 0; i < 16; i++ {
		if result[i] != m[i] {
			t.Errorf("M * I should equal M, element %d: got %f, want %f", i, result[i], m[i])
		}
	}
}

func TestTranslate(t *testing.T) {
	m := Translate(5, 10, 15)

	// Translation lives in column 4 (indices 12, 13, 14)
	if m[12] != 5 || m[13] != 10 || m[14] != 15 {
		t.Errorf("Translate: got (%f, %f, %f), want (5, 10, 15)", m[12], m[13], m[14])
	}
}

func TestScale(t *testing.T) {
	m := Scale(2, 3, 4)

	if m[0] != 2 || m[5] != 3 || m[10] != 4 {
		t.Errorf("Scale diagonal: got (%f, %f, %f), want (2, 3, 4)", m[0], m[5], m[10])
	}
}

func TestRotateZ90(t *testing.T) {
	m := RotateZ(float32(math.Pi / 2))
	p := m.TransformPoint([3]float32{1, 0, 0})

	// (1,0) rotates to (0,1)
	if abs(p[0]) > 1e-6 || abs(p[1]-1) > 1e-6 {
		t.Errorf("RotateZ 90: got %v, want (0, 1, 0)", p)
	}
}

func TestMulVec4Homogeneous(t *testing.T) {
	// A matrix with a non-trivial w row keeps w un-divided in MulVec4
	m := Identity()
	m[3] = -0.5 // w += -0.5 * x
	v := m.MulVec4(Vec4{2, 0, 0, 1})

	if v[0] != 2 {
		t.Errorf("MulVec4 x: got %f, want 2", v[0])
	}
	if v[3] != 0 {
		t.Errorf("MulVec4 w: got %f, want 0", v[3])
	}
}

func TestTransformPointDivide(t *testing.T) {
	m := Identity()
	m[15] = 2 // constant w of 2 halves every coordinate
	p := m.TransformPoint([3]float32{4, 8, 0})

	if abs(p[0]-2) > 1e-6 || abs(p[1]-4) > 1e-6 {
		t.Errorf("TransformPoint divide: got %v, want (2, 4, 0)", p)
	}
}

func TestInverseRoundTrip(t *testing.T) {
	m := Translate(3, -7, 2).Mul(RotateZ(0.8)).Mul(Scale(2, 2, 2))
	inv := m.Inverse()
	id := m.Mul(inv)

	want := Identity()
	for i := 0; i < 16; i++ {
		if abs(id[i]-want[i]) > 1e-5 {
			t.Errorf("M * M^-1 element %d: got %f, want %f", i, id[i], want[i])
		}
	}
}

func TestInverseSingular(t *testing.T) {
	m := Scale(0, 0, 0)
	inv := m.Inverse()
	want := Identity()
	for i := 0; i < 16; i++ {
		if inv[i] != want[i] {
			t.Fatalf("singular inverse should be identity, element %d: got %f", i, inv[i])
		}
	}
}

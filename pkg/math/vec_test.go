package math

import (
	"errors"
	"math"
	"testing"
)

func TestVec2Add(t *testing.T) {
	a := Vec2{1, 2}
	b := Vec2{3, 4}
	got := a.Add(b)
	want := Vec2{4, 6}
	if got != want {
		t.Errorf("Vec2.Add() = %v, want %v", got, want)
	}
}

func TestVec2Length(t *testing.T) {
	v := Vec2{3, 4}
	if got := v.Length(); got != 5 {
		t.Errorf("Vec2.Length() = %v, want 5", got)
	}
}

func TestVec3Cross(t *testing.T) {
	x := Vec3{1, 0, 0}
	y := Vec3{0, 1, 0}
	got := x.Cross(y)
	want := Vec3{0, 0, 1}
	if got != want {
		t.Errorf("Vec3.Cross() = %v, want %v", got, want)
	}
}

func TestVec3AddSubScale(t *testing.T) {
	a := Vec3{1, 2, 3}
	b := Vec3{4, 5, 6}
	if got, want := a.Add(b), (Vec3{5, 7, 9}); got != want {
		t.Errorf("Vec3.Add() = %v, want %v", got, want)
	}
	if got, want := b.Sub(a), (Vec3{3, 3, 3}); got != want {
		t.Errorf("Vec3.Sub() = %v, want %v", got, want)
	}
	if got, want := a.Scale(2), (Vec3{2, 4, 6}); got != want {
		t.Errorf("Vec3.Scale() = %v, want %v", got, want)
	}
	if got := a.Dot(b); got != 32 {
		t.Errorf("Vec3.Dot() = %v, want 32", got)
	}
}

func TestVec3Normalize(t *testing.T) {
	n, err := Vec3{3, 0, 4}.Normalize()
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	if l := n.Length(); math.Abs(l-1) > 1e-12 {
		t.Errorf("Normalize().Length() = %v, want 1", l)
	}
	if !ApproxEqual(n, Vec3{0.6, 0, 0.8}, 1e-12) {
		t.Errorf("Normalize() = %v, want (0.6, 0, 0.8)", n)
	}
}

func TestVec3NormalizeZero(t *testing.T) {
	n, err := Vec3{}.Normalize()
	if !errors.Is(err, ErrDegenerateVector) {
		t.Fatalf("Normalize(0) error = %v, want ErrDegenerateVector", err)
	}
	if math.IsNaN(n.X) || math.IsNaN(n.Y) || math.IsNaN(n.Z) {
		t.Errorf("Normalize(0) returned NaN components: %v", n)
	}
}

func TestVec3NormalizeTiny(t *testing.T) {
	if _, err := (Vec3{1e-14, 0, 0}).Normalize(); !errors.Is(err, ErrDegenerateVector) {
		t.Errorf("Normalize(1e-14) error = %v, want ErrDegenerateVector", err)
	}
}

func TestVec3Distance(t *testing.T) {
	a := Vec3{1, 1, 1}
	b := Vec3{4, 5, 1}
	if got := a.Distance(b); got != 5 {
		t.Errorf("Vec3.Distance() = %v, want 5", got)
	}
}

func TestLerp(t *testing.T) {
	a := Vec3{0, 0, 0}
	b := Vec3{10, 20, 30}

	tests := []struct {
		t    float64
		want Vec3
	}{
		{0, a},
		{1, b},
		{0.5, Vec3{5, 10, 15}},
	}
	for _, tt := range tests {
		if got := Lerp(a, b, tt.t); !ApproxEqual(got, tt.want, 1e-12) {
			t.Errorf("Lerp(t=%v) = %v, want %v", tt.t, got, tt.want)
		}
	}
}

func TestMat3Basis(t *testing.T) {
	m := FromBasis(Vec3{0, 1, 0}, Vec3{-1, 0, 0}, Vec3{0, 0, 1})
	if got := m.Col(1); got != (Vec3{-1, 0, 0}) {
		t.Errorf("Col(1) = %v, want (-1, 0, 0)", got)
	}
	if got := m.MulVec3(Vec3{1, 0, 0}); got != (Vec3{0, 1, 0}) {
		t.Errorf("MulVec3 = %v, want (0, 1, 0)", got)
	}
	if d := m.Det(); math.Abs(d-1) > 1e-12 {
		t.Errorf("Det() = %v, want 1", d)
	}
	back := m.Transpose().MulVec3(m.MulVec3(Vec3{1, 2, 3}))
	if !ApproxEqual(back, Vec3{1, 2, 3}, 1e-12) {
		t.Errorf("Transpose round trip = %v, want (1, 2, 3)", back)
	}
}

func TestVec2ScaleDistance(t *testing.T) {
	a := Vec2{3, 4}
	if got := a.Length(); got != 5 {
		t.Errorf("Vec2.Length() = %v, want 5", got)
	}
	if got, want := a.Add(Vec2{1, 1}).Scale(2), (Vec2{8, 10}); got != want {
		t.Errorf("Vec2.Add().Scale() = %v, want %v", got, want)
	}
	if got := XY(Vec3{6, 8, 100}).Distance(Vec2{}); got != 10 {
		t.Errorf("XY().Distance() = %v, want 10", got)
	}
}

package math

import (
	"math"
	"testing"
)

func TestVec3Cross(t *testing.T) {
	x := Vec3{1, 0, 0}
	y := Vec3{0, 1, 0}
	got := x.Cross(y)
	want := Vec3{0, 0, 1}
	if got != want {
		t.Errorf("Vec3.Cross() = %v, want %v", got, want)
	}
}

func TestVec3Normalize(t *testing.T) {
	v := Vec3{3, 4, 12}
	l := v.Normalize().Length()
	if l < 0.999 || l > 1.001 {
		t.Errorf("Vec3.Normalize().Length() = %v, want ~1", l)
	}
	if (Vec3{}).Normalize() != (Vec3{}) {
		t.Error("zero vector should normalize to zero")
	}
}

func TestVec3Angle(t *testing.T) {
	got := Vec3{1, 0, 0}.Angle(Vec3{0, 5, 0})
	if math.Abs(float64(got)-math.Pi/2) > 1e-5 {
		t.Errorf("Angle = %v, want pi/2", got)
	}
	if a := (Vec3{2, 2, 0}).Angle(Vec3{1, 1, 0}); a > 1e-3 {
		t.Errorf("Angle of parallel vectors = %v, want 0", a)
	}
}

func TestLerp(t *testing.T) {
	if got := Lerp(10, 20, 0.25); got != 12.5 {
		t.Errorf("Lerp = %v, want 12.5", got)
	}
	got := LerpVec3(Vec3{0, 0, 0}, Vec3{2, 4, 8}, 0.5)
	if got != (Vec3{1, 2, 4}) {
		t.Errorf("LerpVec3 = %v", got)
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		v, want float32
	}{
		{-1, 2},
		{1000, 175},
		{90, 90},
	}
	for _, tt := range tests {
		if got := Clamp(tt.v, 2, 175); got != tt.want {
			t.Errorf("Clamp(%v) = %v, want %v", tt.v, got, tt.want)
		}
	}
	if got := ClampInt(-3, 0, 9); got != 0 {
		t.Errorf("ClampInt = %d, want 0", got)
	}
}

func TestPointInPolygon(t *testing.T) {
	square := []Vec2{{0, 0}, {1, 0}, {1, 1}, {0, 1}}
	tests := []struct {
		name string
		p    Vec2
		want bool
	}{
		{"center", Vec2{0.5, 0.5}, true},
		{"outside right", Vec2{1.5, 0.5}, false},
		{"outside below", Vec2{0.5, -0.1}, false},
		{"near corner", Vec2{0.99, 0.99}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PointInPolygon(tt.p, square); got != tt.want {
				t.Errorf("PointInPolygon(%v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}

	// Concave "L": the notch must be outside.
	l := []Vec2{{0, 0}, {2, 0}, {2, 1}, {1, 1}, {1, 2}, {0, 2}}
	if PointInPolygon(Vec2{1.5, 1.5}, l) {
		t.Error("point in the notch of a concave polygon reported inside")
	}
	if !PointInPolygon(Vec2{0.5, 1.5}, l) {
		t.Error("point in the arm of a concave polygon reported outside")
	}
}

package render

import (
	gomath "math"
	"testing"

	"github.com/Faultbox/cubeview/pkg/math"
)

func degrees(rad float32) float64 {
	return float64(rad) * 180 / gomath.Pi
}

func TestProjectionCentreRay(t *testing.T) {
	p := NewProjection(90, 101, 51)
	d := p.Ray(50, 25, 101, 51)
	if a := degrees(d.Angle(math.Vec3{Z: 1})); a > 1e-3 {
		t.Errorf("centre ray is %.4f deg off +Z", a)
	}
}

func TestProjectionEdgeRays(t *testing.T) {
	const w, h = 1000, 500
	p := NewProjection(90, w, h)

	// Pixel centres sit half a pixel inside the plane edge.
	left := p.Ray(0, h/2, w, h)
	right := p.Ray(w-1, h/2, w, h)
	if left.X >= 0 || right.X <= 0 {
		t.Fatalf("left %v right %v", left, right)
	}
	if a := degrees(left.Angle(right)); gomath.Abs(a-90) > 0.2 {
		t.Errorf("horizontal span = %.3f deg, want ~90", a)
	}

	top := p.Ray(w/2, 0, w, h)
	bottom := p.Ray(w/2, h-1, w, h)
	if top.Y <= 0 || bottom.Y >= 0 {
		t.Errorf("row 0 should look up: top %v bottom %v", top, bottom)
	}
	if p.YRange*2 != p.XRange {
		t.Errorf("YRange %v should be XRange/aspect %v", p.YRange, p.XRange/2)
	}
}

func TestEquirectDirection(t *testing.T) {
	tests := []struct {
		u, v float32
		want math.Vec3
	}{
		{0, 0, math.Vec3{Y: 1}},
		{0.3, 1, math.Vec3{Y: -1}},
		{0, 0.5, math.Vec3{X: 1}},
		{0.25, 0.5, math.Vec3{Z: 1}},
		{0.5, 0.5, math.Vec3{X: -1}},
		{0.75, 0.5, math.Vec3{Z: -1}},
	}
	for _, tt := range tests {
		got := EquirectDirection(tt.u, tt.v)
		if a := degrees(got.Angle(tt.want)); a > 1e-3 {
			t.Errorf("EquirectDirection(%v,%v) = %v, want %v", tt.u, tt.v, got, tt.want)
		}
		if l := got.Length(); gomath.Abs(float64(l)-1) > 1e-5 {
			t.Errorf("EquirectDirection(%v,%v) length %v", tt.u, tt.v, l)
		}
	}
}

func TestDirectionLUTAccuracy(t *testing.T) {
	lut := NewDirectionLUT(DefaultLUTSize)
	worst := 0.0
	for i := 0; i <= 89; i++ {
		v := float32(i) / 89
		for j := 0; j < 97; j++ {
			u := float32(j) / 97
			got := lut.Lookup(u, v)
			want := EquirectDirection(u, v)
			if a := degrees(got.Angle(want)); a > worst {
				worst = a
			}
		}
	}
	if worst >= 2 {
		t.Errorf("worst LUT error %.3f deg, want < 2", worst)
	}
}

func TestDirectionLUTWrapsHorizontally(t *testing.T) {
	lut := NewDirectionLUT(8)
	a := lut.Lookup(0.01, 0.5)
	b := lut.Lookup(1.01, 0.5)
	c := lut.Lookup(-0.99, 0.5)
	if degrees(a.Angle(b)) > 1e-2 || degrees(a.Angle(c)) > 1e-2 {
		t.Errorf("lookups differ: %v %v %v", a, b, c)
	}
	// v outside [0,1] clamps to the poles.
	if d := degrees(lut.Lookup(0.4, -3).Angle(math.Vec3{Y: 1})); d > 1e-3 {
		t.Errorf("v<0 should clamp to north pole, off by %.4f deg", d)
	}
}

func TestDirectionLUTMinimumSize(t *testing.T) {
	if got := NewDirectionLUT(0).Size(); got != 2 {
		t.Errorf("Size = %d, want 2", got)
	}
}

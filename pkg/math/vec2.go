package math

import "github.com/chewxy/math32"

// Vec2 is a 2D vector.
type Vec2 struct {
	X, Y float32
}

// Add returns v + other.
func (v Vec2) Add(other Vec2) Vec2 {
	return Vec2{v.X + other.X, v.Y + other.Y}
}

// Sub returns v - other.
func (v Vec2) Sub(other Vec2) Vec2 {
	return Vec2{v.X - other.X, v.Y - other.Y}
}

// Scale returns v * scalar.
func (v Vec2) Scale(s float32) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

// Length returns the magnitude.
func (v Vec2) Length() float32 {
	return math32.Sqrt(v.X*v.X + v.Y*v.Y)
}

// PointInPolygon reports whether p lies inside the closed polygon poly using
// the even-odd crossing rule. The last vertex connects back to the first.
func PointInPolygon(p Vec2, poly []Vec2) bool {
	if len(poly) < 3 {
		return false
	}
	inside := false
	p0 := poly[len(poly)-1]
	for _, p1 := range poly {
		if (p0.Y < p.Y && p1.Y > p.Y) || (p0.Y > p.Y && p1.Y < p.Y) {
			// x of the edge at height p.Y
			ix := (p.Y-p0.Y)*(p1.X-p0.X)/(p1.Y-p0.Y) + p0.X
			if p.X < ix {
				inside = !inside
			}
		}
		p0 = p1
	}
	return inside
}

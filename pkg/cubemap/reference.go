package cubemap

import "github.com/Faultbox/cubeview/pkg/math"

// Reference overlay geometry. Glyphs are authored in a unit square and placed
// in a glyphSize-high box centred on the face: the sign on the left half, the
// axis letter on the right half.
const (
	glyphSize  = 0.15
	borderBand = 0.01
)

var (
	signPlus = placeGlyph([]math.Vec2{
		{0.15, 0.575}, {0.15, 0.425}, {0.425, 0.425}, {0.425, 0.15},
		{0.575, 0.15}, {0.575, 0.425}, {0.85, 0.425}, {0.85, 0.575},
		{0.575, 0.575}, {0.575, 0.85}, {0.425, 0.85}, {0.425, 0.575},
	}, -glyphSize/2)

	signMinus = placeGlyph([]math.Vec2{
		{0.15, 0.575}, {0.15, 0.425}, {0.85, 0.425}, {0.85, 0.575},
	}, -glyphSize/2)

	letterX = placeGlyph([]math.Vec2{
		{0, 1}, {0.35, 0.5}, {0, 0}, {0.3, 0}, {0.5, 0.2857}, {0.7, 0},
		{1, 0}, {0.65, 0.5}, {1, 1}, {0.7, 1}, {0.5, 0.7143}, {0.3, 1},
	}, glyphSize/2)

	letterY = placeGlyph([]math.Vec2{
		{0, 1}, {0.4, 0.4}, {0.4, 0}, {0.6, 0}, {0.6, 0.4},
		{1, 1}, {0.766, 1}, {0.5, 0.6}, {0.233, 1},
	}, glyphSize/2)

	letterZ = placeGlyph([]math.Vec2{
		{0, 1}, {0, 0.8}, {0.7, 0.8}, {0, 0.2}, {0, 0},
		{1, 0}, {1, 0.2}, {0.3, 0.2}, {1, 0.8}, {1, 1},
	}, glyphSize/2)

	letters = [3][]math.Vec2{letterX, letterY, letterZ}

	glyphBox = struct{ umin, umax, vmin, vmax float32 }{
		0.5 - glyphSize, 0.5 + glyphSize,
		0.5 - glyphSize/2, 0.5 + glyphSize/2,
	}
)

// placeGlyph scales a unit-square outline into the central box, shifted
// horizontally by dx from the face centre.
func placeGlyph(pts []math.Vec2, dx float32) []math.Vec2 {
	out := make([]math.Vec2, len(pts))
	for i, p := range pts {
		out[i] = math.Vec2{
			X: p.X*glyphSize + 0.5 - glyphSize/2 + dx,
			Y: p.Y*glyphSize + 0.5 - glyphSize/2,
		}
	}
	return out
}

// InReference reports whether face-local (u, v) is covered by the
// calibration overlay of face f: the border band or the face's sign and
// letter glyphs.
func InReference(f Face, u, v float32) bool {
	if u <= borderBand || u >= 1-borderBand || v <= borderBand || v >= 1-borderBand {
		return true
	}
	if u < glyphBox.umin || u > glyphBox.umax || v < glyphBox.vmin || v > glyphBox.vmax {
		return false
	}
	p := math.Vec2{X: u, Y: v}
	sign := signMinus
	if f.Positive() {
		sign = signPlus
	}
	return math.PointInPolygon(p, sign) || math.PointInPolygon(p, letters[f.Axis()])
}

// SampleWithReference samples dir like Sample but returns refColor wherever
// the calibration overlay covers the resolved face.
func (c *Cubemap) SampleWithReference(dir math.Vec3, bilinear bool, refColor uint32) uint32 {
	f, u, v := Resolve(dir)
	if InReference(f, u, v) {
		return refColor
	}
	if bilinear {
		return c.bilinear(f, u, v)
	}
	return c.nearest(f, u, v)
}

package render

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/cubeview/pkg/math"
)

// projectionDistance is the distance of the virtual image plane from the eye.
// Only the ratio to the plane size matters.
const projectionDistance float32 = 5

// Projection describes the image plane of a pinhole camera looking down +Z.
type Projection struct {
	Left, Bottom   float32
	XRange, YRange float32
	Distance       float32
}

// NewProjection builds the image plane for a horizontal field of view in
// degrees and the raster aspect ratio.
func NewProjection(fov float32, width, height int) Projection {
	aspect := float32(width) / float32(height)
	halfW := projectionDistance * math32.Tan(fov*math32.Pi/360)
	halfH := halfW / aspect
	return Projection{
		Left:     -halfW,
		Bottom:   -halfH,
		XRange:   2 * halfW,
		YRange:   2 * halfH,
		Distance: projectionDistance,
	}
}

// Ray returns the camera-space direction through the centre of pixel (x, y).
// Row 0 is the top of the raster.
func (p Projection) Ray(x, y, width, height int) math.Vec3 {
	nx := (float32(x) + 0.5) / float32(width)
	ny := (float32(height-1-y) + 0.5) / float32(height)
	return math.Vec3{
		X: p.Left + nx*p.XRange,
		Y: p.Bottom + ny*p.YRange,
		Z: p.Distance,
	}
}

// EquirectDirection maps panorama coordinates to a unit direction. u runs
// around the horizon, v from the north pole (0) to the south pole (1).
func EquirectDirection(u, v float32) math.Vec3 {
	sinT, cosT := math32.Sincos(math32.Pi * v)
	sinP, cosP := math32.Sincos(2 * math32.Pi * u)
	return math.Vec3{X: cosP * sinT, Y: cosT, Z: sinP * sinT}
}

// perspectiveRows fills rows [y0, y1) of a perspective frame.
func perspectiveRows(s *frameState, f *Frame, y0, y1 int) {
	w, h := s.width, s.height
	invW := 1 / float32(w)
	invH := 1 / float32(h)
	p := s.proj
	m := s.orientation
	sample := s.sampler()
	for y := y0; y < y1; y++ {
		py := p.Bottom + (float32(h-1-y)+0.5)*invH*p.YRange
		row := f.Img.Pix[y*f.Img.Stride:]
		for x := 0; x < w; x++ {
			px := p.Left + (float32(x)+0.5)*invW*p.XRange
			dir := m.MulVec3(math.Vec3{X: px, Y: py, Z: p.Distance})
			putPacked(row[x*4:], sample(dir))
		}
	}
}

// equirectRows fills rows [y0, y1) of an equirectangular frame through the
// direction lookup table.
func equirectRows(s *frameState, f *Frame, y0, y1 int) {
	w, h := s.width, s.height
	invW := 1 / float32(w)
	invH := 1 / float32(h)
	offset := wrapUnit(s.offset)
	sample := s.sampler()
	for y := y0; y < y1; y++ {
		v := (float32(y) + 0.5) * invH
		row := f.Img.Pix[y*f.Img.Stride:]
		for x := 0; x < w; x++ {
			u := wrapUnit((float32(x)+0.5)*invW + offset)
			putPacked(row[x*4:], sample(s.lut.Lookup(u, v)))
		}
	}
}

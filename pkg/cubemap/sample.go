package cubemap

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/cubeview/pkg/math"
)

// Resolve selects the face a direction points at and returns the face-local
// coordinates (u, v) in [0,1].
//
// The axis with the largest magnitude wins. Exact ties go to X before Y before
// Z, and a zero component counts as positive. Signs are arranged so that a
// viewer at the centre sees every face upright and unmirrored, which keeps
// shared edges continuous.
//
// dir must not be the zero vector.
func Resolve(dir math.Vec3) (Face, float32, float32) {
	ax, ay, az := math32.Abs(dir.X), math32.Abs(dir.Y), math32.Abs(dir.Z)

	var face Face
	var s, t, m float32
	switch {
	case ax >= ay && ax >= az:
		m = ax
		if dir.X >= 0 {
			face, s, t = PosX, -dir.Z, dir.Y
		} else {
			face, s, t = NegX, dir.Z, dir.Y
		}
	case ay >= az:
		m = ay
		if dir.Y >= 0 {
			face, s, t = PosY, dir.X, -dir.Z
		} else {
			face, s, t = NegY, dir.X, dir.Z
		}
	default:
		m = az
		if dir.Z >= 0 {
			face, s, t = PosZ, dir.X, dir.Y
		} else {
			face, s, t = NegZ, -dir.X, dir.Y
		}
	}
	return face, 0.5*s/m + 0.5, 0.5*t/m + 0.5
}

// Direction is the inverse of Resolve: it returns the (unnormalized) direction
// through face-local coordinates (u, v) of a face.
func Direction(f Face, u, v float32) math.Vec3 {
	s, t := 2*u-1, 2*v-1
	switch f {
	case PosX:
		return math.Vec3{X: 1, Y: t, Z: -s}
	case NegX:
		return math.Vec3{X: -1, Y: t, Z: s}
	case PosY:
		return math.Vec3{X: s, Y: 1, Z: -t}
	case NegY:
		return math.Vec3{X: s, Y: -1, Z: t}
	case PosZ:
		return math.Vec3{X: s, Y: t, Z: 1}
	default:
		return math.Vec3{X: -s, Y: t, Z: -1}
	}
}

// Sample returns the color seen along dir using nearest or bilinear filtering.
func (c *Cubemap) Sample(dir math.Vec3, bilinear bool) uint32 {
	f, u, v := Resolve(dir)
	if bilinear {
		return c.bilinear(f, u, v)
	}
	return c.nearest(f, u, v)
}

// SampleNearest returns the texel closest to dir.
func (c *Cubemap) SampleNearest(dir math.Vec3) uint32 {
	f, u, v := Resolve(dir)
	return c.nearest(f, u, v)
}

// SampleBilinear returns the weighted average of the four texels around dir.
func (c *Cubemap) SampleBilinear(dir math.Vec3) uint32 {
	f, u, v := Resolve(dir)
	return c.bilinear(f, u, v)
}

func (c *Cubemap) nearest(f Face, u, v float32) uint32 {
	last := c.size - 1
	col := math.ClampInt(int(math32.Floor(u*float32(c.size))), 0, last)
	row := math.ClampInt(int(math32.Floor(v*float32(c.size))), 0, last)
	// Row 0 is the top of the image, v = 0 is the bottom of the face.
	row = last - row
	return c.faces[f][row*c.size+col]
}

func (c *Cubemap) bilinear(f Face, u, v float32) uint32 {
	last := c.size - 1
	data := c.faces[f]

	mu := u*float32(c.size) - 0.5
	fu := math32.Floor(mu)
	alpha := mu - fu
	u0 := math.ClampInt(int(fu), 0, last)
	u1 := math.ClampInt(int(fu)+1, 0, last)

	mv := v*float32(c.size) - 0.5
	fv := math32.Floor(mv)
	beta := mv - fv
	r0 := last - math.ClampInt(int(fv), 0, last)
	r1 := last - math.ClampInt(int(fv)+1, 0, last)

	s00 := data[r0*c.size+u0]
	s01 := data[r0*c.size+u1]
	s10 := data[r1*c.size+u0]
	s11 := data[r1*c.size+u1]

	var out uint32
	for shift := 16; shift >= 0; shift -= 8 {
		c00 := float32(s00 >> shift & 0xFF)
		c01 := float32(s01 >> shift & 0xFF)
		c10 := float32(s10 >> shift & 0xFF)
		c11 := float32(s11 >> shift & 0xFF)
		bottom := math.Lerp(c00, c01, alpha)
		top := math.Lerp(c10, c11, alpha)
		ch := uint32(math.Lerp(bottom, top, beta) + 0.5)
		if ch > 0xFF {
			ch = 0xFF
		}
		out |= ch << shift
	}
	return out
}

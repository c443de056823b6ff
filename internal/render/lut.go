package render

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/cubeview/pkg/math"
)

// DefaultLUTSize is the grid resolution used when none is configured.
const DefaultLUTSize = 16

// DirectionLUT approximates EquirectDirection on an n x n grid.
//
// Columns sit at u = (j+0.5)/n and wrap around the horizon. Rows sit at
// v = i/(n-1) so both poles are sampled exactly.
type DirectionLUT struct {
	n    int
	dirs []math.Vec3 // row-major, rows by v
}

// NewDirectionLUT builds a table of n x n directions. n below 2 is raised to 2.
func NewDirectionLUT(n int) *DirectionLUT {
	if n < 2 {
		n = 2
	}
	l := &DirectionLUT{n: n, dirs: make([]math.Vec3, n*n)}
	for i := 0; i < n; i++ {
		v := float32(i) / float32(n-1)
		for j := 0; j < n; j++ {
			u := (float32(j) + 0.5) / float32(n)
			l.dirs[i*n+j] = EquirectDirection(u, v)
		}
	}
	return l
}

// Size returns the grid resolution.
func (l *DirectionLUT) Size() int {
	return l.n
}

// Lookup returns the bilinearly interpolated direction for (u, v). u wraps,
// v is clamped to [0,1]. The result is not normalized; sampling does not need
// it to be.
func (l *DirectionLUT) Lookup(u, v float32) math.Vec3 {
	n := l.n

	mu := u*float32(n) - 0.5
	fj := math32.Floor(mu)
	a := mu - fj
	j0 := wrapIndex(int(fj), n)
	j1 := wrapIndex(j0+1, n)

	mv := math.Clamp(v, 0, 1) * float32(n-1)
	fi := math32.Floor(mv)
	b := mv - fi
	i0 := math.ClampInt(int(fi), 0, n-1)
	i1 := math.ClampInt(i0+1, 0, n-1)

	top := math.LerpVec3(l.dirs[i0*n+j0], l.dirs[i0*n+j1], a)
	bottom := math.LerpVec3(l.dirs[i1*n+j0], l.dirs[i1*n+j1], a)
	return math.LerpVec3(top, bottom, b)
}

func wrapIndex(i, n int) int {
	i %= n
	if i < 0 {
		i += n
	}
	return i
}

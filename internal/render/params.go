// Package render turns a cube map into perspective, equirectangular or
// unwrapped images on a fixed pool of worker goroutines.
//
// Producers configure rendering through a Stage. A Renderer drains the stage,
// applies the changed fields between frames, fills the output raster on its
// workers and hands finished frames to a Publisher.
package render

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Faultbox/cubeview/pkg/cubemap"
	"github.com/Faultbox/cubeview/pkg/math"
)

// Field of view limits in degrees.
const (
	MinFov     float32 = 2
	MaxFov     float32 = 175
	DefaultFov float32 = 75
)

// DefaultReferenceColor is the overlay color used until one is set.
const DefaultReferenceColor uint32 = 0x0000FF

var (
	// ErrInvalidConfig is returned by setters for values that cannot be clamped.
	ErrInvalidConfig = errors.New("invalid render configuration")
	// ErrClosed is returned when rendering on a closed pool or renderer.
	ErrClosed = errors.New("renderer closed")
)

// Mode selects the projection.
type Mode int

const (
	Perspective Mode = iota
	Equirect
	Unwrapped
)

func (m Mode) String() string {
	switch m {
	case Perspective:
		return "perspective"
	case Equirect:
		return "equirect"
	case Unwrapped:
		return "unwrapped"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool {
	return m >= Perspective && m <= Unwrapped
}

// ParseMode parses a mode name as used in config files and flags.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "perspective", "":
		return Perspective, nil
	case "equirect", "equirectangular", "panorama":
		return Equirect, nil
	case "unwrapped", "cross":
		return Unwrapped, nil
	}
	return Perspective, fmt.Errorf("%w: unknown render mode %q", ErrInvalidConfig, s)
}

// Dirty is a bit set of changed Params fields.
type Dirty uint16

const (
	DirtyCubemap Dirty = 1 << iota
	DirtySize
	DirtyFov
	DirtyOrientation
	DirtyReference
	DirtyBilinear
	DirtyShowInfo
	DirtyReferenceColor
	DirtyMode
	DirtyEquirectOffset

	DirtyAll = DirtyCubemap | DirtySize | DirtyFov | DirtyOrientation | DirtyReference |
		DirtyBilinear | DirtyShowInfo | DirtyReferenceColor | DirtyMode | DirtyEquirectOffset
)

// Has reports whether any bit of f is set.
func (d Dirty) Has(f Dirty) bool {
	return d&f != 0
}

// Params is the full render configuration.
type Params struct {
	Width, Height  int
	Fov            float32 // degrees
	Orientation    math.Mat3
	Mode           Mode
	ShowReference  bool
	ReferenceColor uint32
	Bilinear       bool
	ShowInfo       bool
	EquirectOffset float32 // horizontal shift, taken mod 1
	Cubemap        *cubemap.Cubemap
}

// DefaultParams returns the configuration a new Stage starts with. No raster
// size is configured.
func DefaultParams() Params {
	return Params{
		Fov:            DefaultFov,
		Orientation:    math.Identity3(),
		Mode:           Perspective,
		ReferenceColor: DefaultReferenceColor,
		Bilinear:       true,
		ShowInfo:       true,
	}
}

// Validate checks a complete configuration, e.g. for a one-shot render.
func (p Params) Validate() error {
	if p.Width <= 0 || p.Height <= 0 {
		return fmt.Errorf("%w: render size %dx%d", ErrInvalidConfig, p.Width, p.Height)
	}
	if p.Fov < MinFov || p.Fov > MaxFov {
		return fmt.Errorf("%w: fov %v outside [%v,%v]", ErrInvalidConfig, p.Fov, MinFov, MaxFov)
	}
	if !p.Mode.Valid() {
		return fmt.Errorf("%w: render mode %d", ErrInvalidConfig, int(p.Mode))
	}
	if !p.Orientation.IsOrthonormal(orthoEps) {
		return fmt.Errorf("%w: orientation is not orthonormal", ErrInvalidConfig)
	}
	return nil
}

package render

import (
	"fmt"
	"sync"

	"github.com/chewxy/math32"

	"github.com/Faultbox/cubeview/pkg/cubemap"
	"github.com/Faultbox/cubeview/pkg/math"
)

// orthoEps is the tolerance for accepting an orientation matrix.
const orthoEps = 1e-3

// Stage holds the pending render configuration.
//
// Setters never block on rendering: the mutex only guards the copy of a few
// fields. Drain hands the renderer a consistent snapshot and the set of fields
// changed since the previous drain.
type Stage struct {
	mu     sync.Mutex
	p      Params
	dirty  Dirty
	notify chan struct{}
}

// NewStage returns a stage holding DefaultParams, all marked dirty.
func NewStage() *Stage {
	return &Stage{
		p:      DefaultParams(),
		dirty:  DirtyAll,
		notify: make(chan struct{}, 1),
	}
}

// Notify returns a channel that receives after a setter marks a field dirty.
// Wakeups are coalesced.
func (s *Stage) Notify() <-chan struct{} {
	return s.notify
}

// mark must be called with mu held.
func (s *Stage) mark(d Dirty) {
	s.dirty |= d
	select {
	case s.notify <- struct{}{}:
	default:
	}
}

// Drain returns a copy of the configuration and the dirty set, and clears the
// dirty set. ok is false when nothing changed since the last drain.
func (s *Stage) Drain() (p Params, dirty Dirty, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.dirty == 0 {
		return Params{}, 0, false
	}
	p, dirty = s.p, s.dirty
	s.dirty = 0
	return p, dirty, true
}

// Snapshot returns a copy of the configuration without touching the dirty set.
func (s *Stage) Snapshot() Params {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.p
}

// SetRenderSize sets the output raster size.
func (s *Stage) SetRenderSize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: render size %dx%d", ErrInvalidConfig, width, height)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.p.Width, s.p.Height = width, height
	s.mark(DirtySize)
	return nil
}

// Size returns the configured raster size; zero until set.
func (s *Stage) Size() (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.p.Width, s.p.Height
}

// SetFov sets the field of view in degrees, clamped to [MinFov, MaxFov].
// NaN is ignored.
func (s *Stage) SetFov(fov float32) {
	if math32.IsNaN(fov) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.p.Fov = math.Clamp(fov, MinFov, MaxFov)
	s.mark(DirtyFov)
}

// AdjustFov adds delta degrees to the field of view and returns the clamped
// result.
func (s *Stage) AdjustFov(delta float32) float32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !math32.IsNaN(delta) {
		s.p.Fov = math.Clamp(s.p.Fov+delta, MinFov, MaxFov)
		s.mark(DirtyFov)
	}
	return s.p.Fov
}

// Fov returns the field of view in degrees.
func (s *Stage) Fov() float32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.p.Fov
}

// SetOrientation sets the camera orientation. m must be orthonormal.
func (s *Stage) SetOrientation(m math.Mat3) error {
	if !m.IsOrthonormal(orthoEps) {
		return fmt.Errorf("%w: orientation is not orthonormal", ErrInvalidConfig)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.p.Orientation = m
	s.mark(DirtyOrientation)
	return nil
}

// Orientation returns the camera orientation.
func (s *Stage) Orientation() math.Mat3 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.p.Orientation
}

// SetMode selects the projection.
func (s *Stage) SetMode(m Mode) error {
	if !m.Valid() {
		return fmt.Errorf("%w: render mode %d", ErrInvalidConfig, int(m))
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.p.Mode = m
	s.mark(DirtyMode)
	return nil
}

// Mode returns the active projection.
func (s *Stage) Mode() Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.p.Mode
}

// SetShowReference toggles the calibration overlay.
func (s *Stage) SetShowReference(show bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.p.ShowReference = show
	s.mark(DirtyReference)
}

// SetReferenceColor sets the overlay color as 0xRRGGBB. Higher bits are dropped.
func (s *Stage) SetReferenceColor(c uint32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.p.ReferenceColor = c & 0xFFFFFF
	s.mark(DirtyReferenceColor)
}

// SetBilinear selects bilinear (true) or nearest (false) filtering.
func (s *Stage) SetBilinear(on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.p.Bilinear = on
	s.mark(DirtyBilinear)
}

// SetShowInfo toggles the frame info box.
func (s *Stage) SetShowInfo(show bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.p.ShowInfo = show
	s.mark(DirtyShowInfo)
}

// SetEquirectOffset sets the horizontal panorama shift. Any finite value is
// accepted; only its fractional part matters.
func (s *Stage) SetEquirectOffset(offset float32) error {
	if math32.IsNaN(offset) || math32.IsInf(offset, 0) {
		return fmt.Errorf("%w: equirect offset %v", ErrInvalidConfig, offset)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.p.EquirectOffset = offset
	s.mark(DirtyEquirectOffset)
	return nil
}

// AdjustEquirectOffset shifts the panorama by delta and returns the new
// offset, wrapped to [0,1).
func (s *Stage) AdjustEquirectOffset(delta float32) float32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !math32.IsNaN(delta) && !math32.IsInf(delta, 0) {
		s.p.EquirectOffset = wrapUnit(s.p.EquirectOffset + delta)
		s.mark(DirtyEquirectOffset)
	}
	return s.p.EquirectOffset
}

// SetCubemap replaces the environment. nil renders black frames.
func (s *Stage) SetCubemap(cm *cubemap.Cubemap) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.p.Cubemap = cm
	s.mark(DirtyCubemap)
}

// Cubemap returns the active environment, possibly nil.
func (s *Stage) Cubemap() *cubemap.Cubemap {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.p.Cubemap
}

// wrapUnit maps x into [0,1).
func wrapUnit(x float32) float32 {
	w := x - math32.Floor(x)
	if w >= 1 {
		// x just below an integer can round up to 1.
		w = 0
	}
	return w
}

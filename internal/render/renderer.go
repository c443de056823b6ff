package render

import (
	"errors"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/cubeview/pkg/cubemap"
	"github.com/Faultbox/cubeview/pkg/math"
)

// Publisher receives finished frames. Publish is called from the render
// goroutine and should not block for long; the frame belongs to the publisher
// until it is handed back through Renderer.Recycle.
type Publisher interface {
	Publish(f *Frame)
}

// PublisherFunc adapts a function to Publisher.
type PublisherFunc func(f *Frame)

// Publish calls fn(f).
func (fn PublisherFunc) Publish(f *Frame) { fn(f) }

// Options configures a Renderer.
type Options struct {
	Workers   int // defaults to runtime.NumCPU()
	LUTSize   int // defaults to DefaultLUTSize
	Publisher Publisher
	Logger    *zap.Logger
}

// frameState is the renderer-owned copy of the configuration. It is only
// written by the render goroutine between dispatches; workers read it.
type frameState struct {
	cubemap       *cubemap.Cubemap
	width, height int
	fov           float32
	orientation   math.Mat3
	mode          Mode
	showReference bool
	refColor      uint32
	bilinear      bool
	showInfo      bool
	offset        float32

	proj Projection
	lut  *DirectionLUT
}

// sampler picks the per-pixel lookup once per frame.
func (s *frameState) sampler() func(math.Vec3) uint32 {
	cm := s.cubemap
	if s.showReference {
		bilinear, ref := s.bilinear, s.refColor
		return func(d math.Vec3) uint32 {
			return cm.SampleWithReference(d, bilinear, ref)
		}
	}
	if s.bilinear {
		return cm.SampleBilinear
	}
	return cm.SampleNearest
}

// Renderer owns the render goroutine, the worker pool and the frame buffers.
type Renderer struct {
	opts  Options
	log   *zap.Logger
	stage *Stage
	pool  *Pool
	state frameState
	fps   fpsCounter
	seq   uint64
	free  chan *Frame

	started   atomic.Bool
	quit      chan struct{}
	done      chan struct{}
	closeOnce sync.Once
}

// New creates a renderer with its worker pool. Call Start to begin
// rendering.
func New(opts Options) *Renderer {
	if opts.Workers < 1 {
		opts.Workers = runtime.NumCPU()
	}
	if opts.LUTSize < 2 {
		opts.LUTSize = DefaultLUTSize
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	r := &Renderer{
		opts:  opts,
		log:   opts.Logger,
		stage: NewStage(),
		pool:  NewPool(opts.Workers),
		free:  make(chan *Frame, 3),
		quit:  make(chan struct{}),
		done:  make(chan struct{}),
	}
	r.state.lut = NewDirectionLUT(opts.LUTSize)
	r.apply(DefaultParams(), DirtyAll)
	r.log.Debug("renderer created",
		zap.Int("workers", opts.Workers),
		zap.Int("lut", opts.LUTSize))
	return r
}

// Stage returns the configuration stage the renderer drains.
func (r *Renderer) Stage() *Stage {
	return r.stage
}

// Start launches the render goroutine. Further calls do nothing.
func (r *Renderer) Start() {
	if r.started.CompareAndSwap(false, true) {
		go r.loop()
	}
}

// Close stops the render goroutine and the workers and waits for them.
func (r *Renderer) Close() {
	r.closeOnce.Do(func() {
		close(r.quit)
		if r.started.Load() {
			<-r.done
		}
		r.pool.Close()
		r.log.Debug("renderer closed", zap.Uint64("frames", r.seq))
	})
}

// Recycle returns a published frame for reuse. Safe to call from any
// goroutine.
func (r *Renderer) Recycle(f *Frame) {
	if f == nil {
		return
	}
	select {
	case r.free <- f:
	default:
	}
}

func (r *Renderer) loop() {
	defer close(r.done)
	for {
		select {
		case <-r.quit:
			return
		default:
		}

		p, dirty, ok := r.stage.Drain()
		if !ok {
			select {
			case <-r.stage.Notify():
			case <-r.quit:
				return
			}
			continue
		}

		r.apply(p, dirty)
		f, err := r.render()
		if err != nil {
			if errors.Is(err, ErrClosed) {
				return
			}
			r.log.Error("render failed", zap.Error(err))
			continue
		}
		if f == nil {
			continue
		}
		if r.opts.Publisher == nil {
			r.Recycle(f)
			continue
		}
		r.opts.Publisher.Publish(f)
	}
}

// apply copies the changed fields into the frame state.
func (r *Renderer) apply(p Params, dirty Dirty) {
	s := &r.state
	if dirty.Has(DirtyCubemap) {
		s.cubemap = p.Cubemap
		if p.Cubemap != nil {
			r.log.Info("cube map set",
				zap.String("name", p.Cubemap.Name()),
				zap.Int("size", p.Cubemap.Size()))
		}
	}
	if dirty.Has(DirtySize) {
		s.width, s.height = p.Width, p.Height
	}
	if dirty.Has(DirtyFov) {
		s.fov = p.Fov
	}
	if dirty.Has(DirtyOrientation) {
		s.orientation = p.Orientation
	}
	if dirty.Has(DirtyReference) {
		s.showReference = p.ShowReference
	}
	if dirty.Has(DirtyReferenceColor) {
		s.refColor = p.ReferenceColor
	}
	if dirty.Has(DirtyBilinear) {
		s.bilinear = p.Bilinear
	}
	if dirty.Has(DirtyShowInfo) {
		s.showInfo = p.ShowInfo
	}
	if dirty.Has(DirtyMode) {
		if s.mode != p.Mode {
			r.log.Debug("render mode changed", zap.Stringer("mode", p.Mode))
		}
		s.mode = p.Mode
	}
	if dirty.Has(DirtyEquirectOffset) {
		s.offset = p.EquirectOffset
	}
	if dirty.Has(DirtySize|DirtyFov) && s.width > 0 && s.height > 0 {
		s.proj = NewProjection(s.fov, s.width, s.height)
	}
}

// render produces one frame from the current state. It returns nil without
// error while no raster size is configured.
func (r *Renderer) render() (*Frame, error) {
	s := &r.state
	if s.width <= 0 || s.height <= 0 {
		return nil, nil
	}
	f := r.acquire(s.width, s.height)
	f.Mode = s.mode

	switch {
	case s.cubemap == nil:
		f.fill(0x000000)
	case s.mode == Unwrapped:
		drawUnwrapped(s, f)
	default:
		rows := perspectiveRows
		if s.mode == Equirect {
			rows = equirectRows
		}
		if err := r.pool.Dispatch(s, f, rows); err != nil {
			return nil, err
		}
	}

	if r.fps.tick(time.Now()) {
		r.log.Debug("render rate", zap.Float32("fps", r.fps.rate))
	}
	if s.showInfo && s.cubemap != nil && s.mode != Unwrapped {
		drawInfo(f.Img, r.fps.rate, s.fov, s.bilinear)
	}
	r.seq++
	f.Seq = r.seq
	return f, nil
}

func (r *Renderer) acquire(width, height int) *Frame {
	for {
		select {
		case f := <-r.free:
			if f.Width() == width && f.Height() == height {
				return f
			}
		default:
			return newFrame(width, height)
		}
	}
}

package render

import (
	"errors"
	"sync"
	"testing"

	"github.com/Faultbox/cubeview/pkg/math"
)

func TestNewStageDefaults(t *testing.T) {
	s := NewStage()
	p, dirty, ok := s.Drain()
	if !ok {
		t.Fatal("first Drain should report changes")
	}
	if dirty != DirtyAll {
		t.Errorf("dirty = %b, want %b", dirty, DirtyAll)
	}
	if p.Fov != DefaultFov {
		t.Errorf("Fov = %v, want %v", p.Fov, DefaultFov)
	}
	if !p.Bilinear || !p.ShowInfo || p.ShowReference {
		t.Errorf("unexpected toggles: %+v", p)
	}
	if p.ReferenceColor != DefaultReferenceColor {
		t.Errorf("ReferenceColor = %06x", p.ReferenceColor)
	}
	if p.Width != 0 || p.Height != 0 {
		t.Errorf("size = %dx%d, want unset", p.Width, p.Height)
	}
	if _, _, ok := s.Drain(); ok {
		t.Error("second Drain should report no changes")
	}
}

func TestStageDrainReportsChangedFields(t *testing.T) {
	s := NewStage()
	s.Drain()

	s.SetFov(60)
	s.SetBilinear(false)
	p, dirty, ok := s.Drain()
	if !ok {
		t.Fatal("Drain after setters returned !ok")
	}
	if dirty != DirtyFov|DirtyBilinear {
		t.Errorf("dirty = %b, want %b", dirty, DirtyFov|DirtyBilinear)
	}
	if p.Fov != 60 || p.Bilinear {
		t.Errorf("params = %+v", p)
	}
}

func TestStageFovClamp(t *testing.T) {
	tests := []struct {
		name string
		in   float32
		want float32
	}{
		{"in range", 90, 90},
		{"too wide", 1000, MaxFov},
		{"too narrow", 0, MinFov},
		{"negative", -20, MinFov},
		{"upper bound", MaxFov, MaxFov},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStage()
			s.SetFov(tt.in)
			if got := s.Fov(); got != tt.want {
				t.Errorf("SetFov(%v) -> %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestStageAdjustFov(t *testing.T) {
	s := NewStage()
	if got := s.AdjustFov(-1); got != DefaultFov-1 {
		t.Errorf("AdjustFov(-1) = %v", got)
	}
	if got := s.AdjustFov(500); got != MaxFov {
		t.Errorf("AdjustFov(500) = %v, want %v", got, MaxFov)
	}
}

func TestStageRejectsInvalidValues(t *testing.T) {
	s := NewStage()
	s.Drain()

	if err := s.SetRenderSize(0, 10); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("SetRenderSize(0,10) = %v", err)
	}
	if err := s.SetRenderSize(10, -1); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("SetRenderSize(10,-1) = %v", err)
	}
	skew := math.Identity3()
	skew[1] = 0.5
	if err := s.SetOrientation(skew); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("SetOrientation(skew) = %v", err)
	}
	if err := s.SetMode(Mode(7)); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("SetMode(7) = %v", err)
	}
	if _, _, ok := s.Drain(); ok {
		t.Error("rejected setters must not mark fields dirty")
	}
}

func TestStageReferenceColorMasked(t *testing.T) {
	s := NewStage()
	s.SetReferenceColor(0xAB123456)
	if got := s.Snapshot().ReferenceColor; got != 0x123456 {
		t.Errorf("ReferenceColor = %08x, want 00123456", got)
	}
}

func TestStageEquirectOffset(t *testing.T) {
	s := NewStage()
	if got := s.AdjustEquirectOffset(0.75); got != 0.75 {
		t.Errorf("offset = %v, want 0.75", got)
	}
	if got := s.AdjustEquirectOffset(0.5); got != 0.25 {
		t.Errorf("offset = %v, want 0.25", got)
	}
	if got := s.AdjustEquirectOffset(-0.5); got != 0.75 {
		t.Errorf("offset = %v, want 0.75", got)
	}
	if err := s.SetEquirectOffset(3.5); err != nil {
		t.Errorf("SetEquirectOffset(3.5) = %v", err)
	}
	var zero float32
	if err := s.SetEquirectOffset(1 / zero); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("SetEquirectOffset(+Inf) = %v", err)
	}
}

func TestStageNotify(t *testing.T) {
	s := NewStage()
	s.Drain()
	select {
	case <-s.Notify():
		t.Fatal("notify fired without a setter")
	default:
	}
	s.SetShowInfo(false)
	s.SetShowReference(true)
	select {
	case <-s.Notify():
	default:
		t.Fatal("notify did not fire after setters")
	}
}

func TestStageConcurrentSetters(t *testing.T) {
	s := NewStage()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				s.SetFov(float32(10 + j%100))
				s.SetOrientation(math.RotateY(float32(j) * 0.01))
				s.SetBilinear(j%2 == 0)
				s.SetRenderSize(100+i, 50+j%10)
				s.AdjustEquirectOffset(0.01)
			}
		}(i)
	}
	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-done:
				return
			default:
				if p, _, ok := s.Drain(); ok {
					if p.Fov < MinFov || p.Fov > MaxFov {
						t.Errorf("drained fov %v", p.Fov)
					}
				}
			}
		}
	}()
	wg.Wait()
	close(done)

	p := s.Snapshot()
	if p.Width < 100 || p.Width >= 108 {
		t.Errorf("width = %d", p.Width)
	}
	if !p.Orientation.IsOrthonormal(orthoEps) {
		t.Error("orientation lost orthonormality")
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{"perspective", Perspective, false},
		{"Equirect", Equirect, false},
		{"equirectangular", Equirect, false},
		{" unwrapped ", Unwrapped, false},
		{"cross", Unwrapped, false},
		{"fisheye", Perspective, true},
	}
	for _, tt := range tests {
		got, err := ParseMode(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseMode(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ParseMode(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
	if got := Unwrapped.String(); got != "unwrapped" {
		t.Errorf("Unwrapped.String() = %q", got)
	}
}

func TestParamsValidate(t *testing.T) {
	p := DefaultParams()
	if err := p.Validate(); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Validate without size = %v", err)
	}
	p.Width, p.Height = 64, 32
	if err := p.Validate(); err != nil {
		t.Errorf("Validate = %v", err)
	}
	p.Fov = 180
	if err := p.Validate(); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Validate fov 180 = %v", err)
	}
}

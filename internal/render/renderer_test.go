package render

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/chewxy/math32"

	"github.com/Faultbox/cubeview/pkg/cubemap"
	"github.com/Faultbox/cubeview/pkg/math"
)

var faceColors = [cubemap.FaceCount]uint32{
	cubemap.PosX: 0xFF0000,
	cubemap.NegX: 0x00FFFF,
	cubemap.PosY: 0x00FF00,
	cubemap.NegY: 0xFF00FF,
	cubemap.PosZ: 0x0000FF,
	cubemap.NegZ: 0xFFFF00,
}

func solidCubemap(t *testing.T, size int) *cubemap.Cubemap {
	t.Helper()
	var faces [cubemap.FaceCount][]uint32
	for i := range faces {
		faces[i] = make([]uint32, size*size)
		for j := range faces[i] {
			faces[i][j] = faceColors[i]
		}
	}
	cm, err := cubemap.New("solid", size, faces)
	if err != nil {
		t.Fatalf("cubemap.New: %v", err)
	}
	return cm
}

func stillParams(cm *cubemap.Cubemap, w, h int) Params {
	p := DefaultParams()
	p.Width, p.Height = w, h
	p.Cubemap = cm
	p.ShowInfo = false
	return p
}

func TestStillPerspectiveFacesCamera(t *testing.T) {
	cm := solidCubemap(t, 8)
	tests := []struct {
		name        string
		orientation math.Mat3
		want        uint32
	}{
		{"forward", math.Identity3(), faceColors[cubemap.PosZ]},
		{"yaw right", math.RotateY(math32.Pi / 2), faceColors[cubemap.PosX]},
		{"turn around", math.RotateY(math32.Pi), faceColors[cubemap.NegZ]},
		{"look down", math.RotateX(math32.Pi / 2), faceColors[cubemap.NegY]},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := stillParams(cm, 64, 32)
			p.Orientation = tt.orientation
			f, err := Still(p, Options{Workers: 2})
			if err != nil {
				t.Fatalf("Still: %v", err)
			}
			if got := f.At(32, 16); got != tt.want {
				t.Errorf("centre = %06x, want %06x", got, tt.want)
			}
		})
	}
}

func TestStillEquirect(t *testing.T) {
	cm := solidCubemap(t, 8)
	p := stillParams(cm, 64, 32)
	p.Mode = Equirect

	f, err := Still(p, Options{Workers: 3})
	if err != nil {
		t.Fatalf("Still: %v", err)
	}
	if got := f.At(16, 16); got != faceColors[cubemap.PosZ] {
		t.Errorf("u=0.25 = %06x, want +Z", got)
	}
	if got := f.At(32, 16); got != faceColors[cubemap.NegX] {
		t.Errorf("u=0.5 = %06x, want -X", got)
	}
	if got := f.At(10, 0); got != faceColors[cubemap.PosY] {
		t.Errorf("top row = %06x, want +Y", got)
	}
	if got := f.At(10, 31); got != faceColors[cubemap.NegY] {
		t.Errorf("bottom row = %06x, want -Y", got)
	}

	p.EquirectOffset = 0.25
	f, err = Still(p, Options{Workers: 3})
	if err != nil {
		t.Fatalf("Still: %v", err)
	}
	if got := f.At(16, 16); got != faceColors[cubemap.NegX] {
		t.Errorf("offset 0.25 at u=0.25 = %06x, want -X", got)
	}
}

func TestStillUnwrapped(t *testing.T) {
	cm := solidCubemap(t, 8)
	p := stillParams(cm, 400, 300)
	p.Mode = Unwrapped

	f, err := Still(p, Options{Workers: 1})
	if err != nil {
		t.Fatalf("Still: %v", err)
	}
	if got := f.At(0, 0); got != unwrappedBackground {
		t.Errorf("background = %06x", got)
	}
	cells := UnwrappedLayout(400, 300)
	if cells[cubemap.PosZ].Dx() != 90 {
		t.Fatalf("cell size = %d, want 90", cells[cubemap.PosZ].Dx())
	}
	for i, cell := range cells {
		c := cell.Min.Add(cell.Size().Div(2))
		if got := f.At(c.X, c.Y); got != faceColors[i] {
			t.Errorf("%v centre = %06x, want %06x", cubemap.Face(i), got, faceColors[i])
		}
	}

	p.ShowReference = true
	p.ReferenceColor = 0x123456
	f, err = Still(p, Options{Workers: 1})
	if err != nil {
		t.Fatalf("Still: %v", err)
	}
	corner := cells[cubemap.PosX].Min
	if got := f.At(corner.X, corner.Y); got != 0x123456 {
		t.Errorf("border = %06x, want reference color", got)
	}
}

func TestUnwrappedLayoutPlacement(t *testing.T) {
	cells := UnwrappedLayout(1000, 900)
	size := cells[cubemap.PosZ].Dx()
	if size != 225 {
		t.Fatalf("size = %d, want 225", size)
	}
	if cells[cubemap.NegX].Max.X != cells[cubemap.PosZ].Min.X ||
		cells[cubemap.PosZ].Max.X != cells[cubemap.PosX].Min.X ||
		cells[cubemap.PosX].Max.X != cells[cubemap.NegZ].Min.X {
		t.Errorf("middle row not contiguous: %v", cells)
	}
	if cells[cubemap.PosY].Max.Y != cells[cubemap.PosZ].Min.Y ||
		cells[cubemap.NegY].Min.Y != cells[cubemap.PosZ].Max.Y {
		t.Errorf("+Y/-Y not above/below +Z: %v", cells)
	}
	if cells[cubemap.NegZ].Max.X > 1000 || cells[cubemap.NegY].Max.Y > 900 {
		t.Errorf("layout leaves the raster: %v", cells)
	}
	if small := UnwrappedLayout(3, 2); !small[cubemap.PosZ].Empty() {
		t.Errorf("tiny raster should have empty cells: %v", small)
	}
}

func TestStillIndependentOfWorkerCount(t *testing.T) {
	cm, err := cubemap.Calibration(32)
	if err != nil {
		t.Fatalf("Calibration: %v", err)
	}
	base := stillParams(cm, 61, 37)
	base.Fov = 100
	base.Orientation = math.RotateY(0.3).Mul(math.RotateX(0.2))
	base.ShowReference = true

	for _, mode := range []Mode{Perspective, Equirect, Unwrapped} {
		for _, bilinear := range []bool{true, false} {
			p := base
			p.Mode = mode
			p.Bilinear = bilinear
			one, err := Still(p, Options{Workers: 1})
			if err != nil {
				t.Fatalf("Still: %v", err)
			}
			many, err := Still(p, Options{Workers: 7})
			if err != nil {
				t.Fatalf("Still: %v", err)
			}
			if !bytes.Equal(one.Img.Pix, many.Img.Pix) {
				t.Errorf("%v bilinear=%v: 1 and 7 workers differ", mode, bilinear)
			}
		}
	}
}

func TestStillInfoOverlay(t *testing.T) {
	cm := solidCubemap(t, 8)
	p := stillParams(cm, 256, 128)
	plain, err := Still(p, Options{})
	if err != nil {
		t.Fatalf("Still: %v", err)
	}
	p.ShowInfo = true
	info, err := Still(p, Options{})
	if err != nil {
		t.Fatalf("Still: %v", err)
	}
	if plain.At(6, 6) == info.At(6, 6) {
		t.Error("info box did not darken the corner")
	}
	if plain.At(200, 100) != info.At(200, 100) {
		t.Error("info box changed pixels outside its area")
	}
	if a := info.Img.Pix[info.Img.PixOffset(6, 6)+3]; a != 0xFF {
		t.Errorf("alpha = %d, want opaque", a)
	}
}

func TestStillRejectsIncompleteParams(t *testing.T) {
	p := DefaultParams()
	p.Width, p.Height = 8, 8
	if _, err := Still(p, Options{}); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Still without cube map = %v", err)
	}
	p.Width = 0
	p.Cubemap = solidCubemap(t, 2)
	if _, err := Still(p, Options{}); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Still without size = %v", err)
	}
}

// startCollecting starts a renderer with a publisher that forwards frames to the
// returned channel, recycling frames the test is too slow for.
func startCollecting(t *testing.T, opts Options) (*Renderer, <-chan *Frame) {
	t.Helper()
	frames := make(chan *Frame, 8)
	var r *Renderer
	opts.Publisher = PublisherFunc(func(f *Frame) {
		select {
		case frames <- f:
		default:
			r.Recycle(f)
		}
	})
	r = New(opts)
	r.Start()
	t.Cleanup(r.Close)
	return r, frames
}

func waitFrame(t *testing.T, frames <-chan *Frame, ok func(*Frame) bool) *Frame {
	t.Helper()
	timeout := time.After(5 * time.Second)
	for {
		select {
		case f := <-frames:
			if ok(f) {
				return f
			}
		case <-timeout:
			t.Fatal("timed out waiting for frame")
			return nil
		}
	}
}

func TestRendererPublishesFrames(t *testing.T) {
	r, frames := startCollecting(t, Options{Workers: 3})
	st := r.Stage()
	st.SetShowInfo(false)
	st.SetCubemap(solidCubemap(t, 4))
	if err := st.SetRenderSize(40, 20); err != nil {
		t.Fatal(err)
	}

	f := waitFrame(t, frames, func(f *Frame) bool {
		return f.Width() == 40 && f.At(20, 10) == faceColors[cubemap.PosZ]
	})
	if f.Height() != 20 || f.Mode != Perspective {
		t.Errorf("frame %dx%d mode %v", f.Width(), f.Height(), f.Mode)
	}
	seq := f.Seq
	r.Recycle(f)

	if err := st.SetOrientation(math.RotateY(math32.Pi / 2)); err != nil {
		t.Fatal(err)
	}
	f = waitFrame(t, frames, func(f *Frame) bool {
		return f.At(20, 10) == faceColors[cubemap.PosX]
	})
	if f.Seq <= seq {
		t.Errorf("seq %d not after %d", f.Seq, seq)
	}
}

func TestRendererBlackWithoutCubemap(t *testing.T) {
	r, frames := startCollecting(t, Options{Workers: 2})
	if err := r.Stage().SetRenderSize(8, 8); err != nil {
		t.Fatal(err)
	}
	f := waitFrame(t, frames, func(f *Frame) bool { return f.Width() == 8 })
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			if c := f.At(x, y); c != 0 {
				t.Fatalf("pixel (%d,%d) = %06x, want black", x, y, c)
			}
		}
	}
}

func TestRendererCloseWithoutStart(t *testing.T) {
	r := New(Options{Workers: 2})
	r.Close()
	r.Close()
}

func TestRendererRecyclesFrames(t *testing.T) {
	r := New(Options{Workers: 1})
	defer r.Close()

	f := newFrame(4, 4)
	r.Recycle(f)
	if got := r.acquire(4, 4); got != f {
		t.Error("acquire did not reuse recycled frame")
	}
	r.Recycle(f)
	if got := r.acquire(5, 5); got == f || got.Width() != 5 {
		t.Error("acquire reused a frame of the wrong size")
	}
}

func TestFPSCounter(t *testing.T) {
	var c fpsCounter
	t0 := time.Unix(100, 0)
	if c.tick(t0) {
		t.Error("first tick updated rate")
	}
	c.tick(t0.Add(400 * time.Millisecond))
	if !c.tick(t0.Add(time.Second)) {
		t.Fatal("tick after a second did not update rate")
	}
	if c.rate != 3 {
		t.Errorf("rate = %v, want 3", c.rate)
	}
}

func TestInfoLines(t *testing.T) {
	got := infoLines(59.999, 12.3, false)
	want := []string{"FPS: 60", "FOV: 12.3", "FILTER: Nearest"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, got[i], want[i])
		}
	}
	if got := infoLines(0, 75, true)[2]; got != "FILTER: Bilinear" {
		t.Errorf("filter line = %q", got)
	}
}

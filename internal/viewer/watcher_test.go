package viewer

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Faultbox/cubeview/pkg/cubemap"
)

var faceFiles = [cubemap.FaceCount]string{
	"posx.png", "negx.png", "posy.png", "negy.png", "posz.png", "negz.png",
}

func writeFace(t *testing.T, path string, size int, c uint32) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	fill := color.RGBA{R: uint8(c >> 16), G: uint8(c >> 8), B: uint8(c), A: 0xFF}
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			img.SetRGBA(x, y, fill)
		}
	}
	// Write then rename so the watcher never sees a half-written file.
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}
	if err := os.Rename(tmp, path); err != nil {
		t.Fatal(err)
	}
}

func writeFaces(t *testing.T, dir string, size int, c uint32) {
	t.Helper()
	for _, name := range faceFiles {
		writeFace(t, filepath.Join(dir, name), size, c)
	}
}

func startWatcher(t *testing.T, dir string) <-chan *cubemap.Cubemap {
	t.Helper()
	loaded := make(chan *cubemap.Cubemap, 64)
	w, err := NewWatcher(dir, 50*time.Millisecond, func(cm *cubemap.Cubemap) {
		select {
		case loaded <- cm:
		default:
		}
	}, nil)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	w.Start()
	t.Cleanup(func() { w.Close() })
	return loaded
}

func waitLoaded(t *testing.T, loaded <-chan *cubemap.Cubemap) *cubemap.Cubemap {
	t.Helper()
	select {
	case cm := <-loaded:
		return cm
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for reload")
		return nil
	}
}

func TestWatcherReloadsOnChange(t *testing.T) {
	dir := t.TempDir()
	writeFaces(t, dir, 4, 0x111111)
	loaded := startWatcher(t, dir)

	writeFace(t, filepath.Join(dir, "posz.png"), 4, 0x00FF00)
	cm := waitLoaded(t, loaded)
	if got := cm.Texel(cubemap.PosZ, 1, 1); got != 0x00FF00 {
		t.Errorf("+Z texel = %06x, want 00ff00", got)
	}
	if got := cm.Texel(cubemap.NegZ, 1, 1); got != 0x111111 {
		t.Errorf("-Z texel = %06x, want 111111", got)
	}
}

func TestWatcherKeepsPreviousOnFailure(t *testing.T) {
	dir := t.TempDir()
	writeFaces(t, dir, 4, 0x111111)
	loaded := startWatcher(t, dir)

	// A face of the wrong size makes the reload fail; nothing is delivered.
	writeFace(t, filepath.Join(dir, "negx.png"), 8, 0x222222)
	select {
	case cm := <-loaded:
		t.Fatalf("broken cube map delivered: %s", cm.Name())
	case <-time.After(400 * time.Millisecond):
	}

	writeFace(t, filepath.Join(dir, "negx.png"), 4, 0x333333)
	cm := waitLoaded(t, loaded)
	if got := cm.Texel(cubemap.NegX, 0, 0); got != 0x333333 {
		t.Errorf("-X texel = %06x, want 333333", got)
	}
}

func TestWatcherCoalescesBursts(t *testing.T) {
	dir := t.TempDir()
	writeFaces(t, dir, 4, 0x111111)
	loaded := startWatcher(t, dir)

	writeFaces(t, dir, 4, 0x444444)
	// The debounce may fire mid-burst; a later reload must see every face.
	for {
		cm := waitLoaded(t, loaded)
		done := true
		for f := cubemap.Face(0); f < cubemap.FaceCount; f++ {
			if cm.Texel(f, 0, 0) != 0x444444 {
				done = false
			}
		}
		if done {
			return
		}
	}
}

func TestNewWatcherMissingDir(t *testing.T) {
	if _, err := NewWatcher(filepath.Join(t.TempDir(), "missing"), 0, func(*cubemap.Cubemap) {}, nil); err == nil {
		t.Error("expected error for missing directory")
	}
}

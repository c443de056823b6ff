// Package cubemap stores six-face environment maps and samples them by
// direction.
//
// Texels are packed 24-bit RGB (0xRRGGBB) in row-major order with row 0 at the
// top of the face image. Face-local coordinates (u, v) run from the left/bottom
// edge at 0 to the right/top edge at 1.
package cubemap

import (
	"fmt"
	"image"
	"image/color"
	"sync"
)

// Cubemap is an immutable set of six equally sized square faces.
type Cubemap struct {
	name  string
	size  int
	faces [FaceCount][]uint32

	imagesOnce sync.Once
	images     [FaceCount]*image.RGBA
}

// New builds a cube map from packed face buffers. Each buffer must hold
// size*size texels. The buffers are owned by the cube map afterwards.
func New(name string, size int, faces [FaceCount][]uint32) (*Cubemap, error) {
	if size <= 0 {
		return nil, &FormatError{Face: noFace, Err: fmt.Errorf("invalid cubemap size %d", size)}
	}
	for i, data := range faces {
		if len(data) != size*size {
			return nil, &FormatError{Face: Face(i), Err: fmt.Errorf("%w: %d texels, want %d", ErrSizeMismatch, len(data), size*size)}
		}
	}
	return &Cubemap{name: name, size: size, faces: faces}, nil
}

// FromImages builds a cube map from six decoded images in face order.
func FromImages(name string, imgs [FaceCount]image.Image) (*Cubemap, error) {
	size := -1
	for i, img := range imgs {
		if img == nil {
			return nil, &MissingFaceError{Face: Face(i)}
		}
		b := img.Bounds()
		if b.Dx() != b.Dy() {
			return nil, &FormatError{Face: Face(i), Err: fmt.Errorf("%w (%dx%d)", ErrNotSquare, b.Dx(), b.Dy())}
		}
		if size >= 0 && b.Dx() != size {
			return nil, &FormatError{Face: noFace, Err: ErrSizeMismatch}
		}
		size = b.Dx()
	}
	var faces [FaceCount][]uint32
	for i, img := range imgs {
		faces[i] = packImage(img)
	}
	return New(name, size, faces)
}

// Name returns the cube map name, usually its source directory.
func (c *Cubemap) Name() string {
	return c.name
}

// Size returns the side length of every face in texels.
func (c *Cubemap) Size() int {
	return c.size
}

// Texel returns the packed color at row, col of a face.
func (c *Cubemap) Texel(f Face, row, col int) uint32 {
	return c.faces[f][row*c.size+col]
}

// Image returns an RGBA view of a face. The views are built once and shared;
// callers must not modify them.
func (c *Cubemap) Image(f Face) *image.RGBA {
	c.imagesOnce.Do(func() {
		for i, data := range c.faces {
			c.images[i] = unpackImage(data, c.size)
		}
	})
	return c.images[f]
}

// RGB packs three channels into 0xRRGGBB.
func RGB(r, g, b uint8) uint32 {
	return uint32(r)<<16 | uint32(g)<<8 | uint32(b)
}

// Channels splits a packed color.
func Channels(c uint32) (r, g, b uint8) {
	return uint8(c >> 16), uint8(c >> 8), uint8(c)
}

// packImage converts any image to packed RGB, dropping alpha.
func packImage(img image.Image) []uint32 {
	b := img.Bounds()
	out := make([]uint32, b.Dx()*b.Dy())
	if rgba, ok := img.(*image.RGBA); ok {
		for y := 0; y < b.Dy(); y++ {
			row := rgba.Pix[y*rgba.Stride : y*rgba.Stride+b.Dx()*4]
			for x := 0; x < b.Dx(); x++ {
				out[y*b.Dx()+x] = RGB(row[x*4], row[x*4+1], row[x*4+2])
			}
		}
		return out
	}
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r16, g16, b16, _ := img.At(x, y).RGBA()
			out[(y-b.Min.Y)*b.Dx()+(x-b.Min.X)] = RGB(uint8(r16>>8), uint8(g16>>8), uint8(b16>>8))
		}
	}
	return out
}

func unpackImage(data []uint32, size int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	for i, c := range data {
		r, g, b := Channels(c)
		img.SetRGBA(i%size, i/size, color.RGBA{R: r, G: g, B: b, A: 255})
	}
	return img
}

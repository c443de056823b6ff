package render

import (
	"image"
	"image/color"
	"image/draw"
)

// Frame is one finished output image. Frames are recycled: a consumer that is
// done with a frame should hand it back with Renderer.Recycle and must not
// touch it afterwards.
type Frame struct {
	Img  *image.RGBA
	Seq  uint64
	Mode Mode
}

func newFrame(width, height int) *Frame {
	return &Frame{Img: image.NewRGBA(image.Rect(0, 0, width, height))}
}

// Width returns the frame width in pixels.
func (f *Frame) Width() int {
	return f.Img.Rect.Dx()
}

// Height returns the frame height in pixels.
func (f *Frame) Height() int {
	return f.Img.Rect.Dy()
}

// At returns the pixel at (x, y) packed as 0xRRGGBB.
func (f *Frame) At(x, y int) uint32 {
	i := f.Img.PixOffset(x, y)
	p := f.Img.Pix[i : i+3 : i+3]
	return uint32(p[0])<<16 | uint32(p[1])<<8 | uint32(p[2])
}

// fill paints the whole frame with an opaque packed color.
func (f *Frame) fill(c uint32) {
	draw.Draw(f.Img, f.Img.Rect, image.NewUniform(opaque(c)), image.Point{}, draw.Src)
}

// putPacked writes an opaque packed color into a 4-byte RGBA pixel.
func putPacked(p []byte, c uint32) {
	p = p[:4:4]
	p[0] = uint8(c >> 16)
	p[1] = uint8(c >> 8)
	p[2] = uint8(c)
	p[3] = 0xFF
}

func opaque(c uint32) color.RGBA {
	return color.RGBA{R: uint8(c >> 16), G: uint8(c >> 8), B: uint8(c), A: 0xFF}
}

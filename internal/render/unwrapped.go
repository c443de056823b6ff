package render

import (
	"image"

	xdraw "golang.org/x/image/draw"

	"github.com/Faultbox/cubeview/pkg/cubemap"
)

// unwrappedBackground is the dark grey behind the cross layout.
const unwrappedBackground uint32 = 0x333333

// The cross fills 90% of the limiting raster dimension.
const (
	unwrappedFillNum = 9
	unwrappedFillDen = 10
)

// UnwrappedLayout returns the cell of every face in the horizontal cross
// layout:
//
//	     +Y
//	-X   +Z   +X   -Z
//	     -Y
//
// All cells are empty when the raster is too small.
func UnwrappedLayout(width, height int) [cubemap.FaceCount]image.Rectangle {
	var cells [cubemap.FaceCount]image.Rectangle
	size := min(width/4, height/3) * unwrappedFillNum / unwrappedFillDen
	if size <= 0 {
		return cells
	}
	ox := (width - 4*size) / 2
	oy := (height - 3*size) / 2
	cell := func(col, row int) image.Rectangle {
		return image.Rect(ox+col*size, oy+row*size, ox+(col+1)*size, oy+(row+1)*size)
	}
	cells[cubemap.NegX] = cell(0, 1)
	cells[cubemap.PosZ] = cell(1, 1)
	cells[cubemap.PosX] = cell(2, 1)
	cells[cubemap.NegZ] = cell(3, 1)
	cells[cubemap.PosY] = cell(1, 0)
	cells[cubemap.NegY] = cell(1, 2)
	return cells
}

// drawUnwrapped blits the six faces into the cross layout, scaled with the
// active filter, and paints the calibration marks over them when enabled.
func drawUnwrapped(s *frameState, f *Frame) {
	f.fill(unwrappedBackground)
	cells := UnwrappedLayout(s.width, s.height)
	if cells[cubemap.PosZ].Empty() {
		return
	}

	var scaler xdraw.Interpolator = xdraw.NearestNeighbor
	if s.bilinear {
		scaler = xdraw.ApproxBiLinear
	}
	for i, cell := range cells {
		src := s.cubemap.Image(cubemap.Face(i))
		scaler.Scale(f.Img, cell, src, src.Bounds(), xdraw.Src, nil)
	}

	if !s.showReference {
		return
	}
	for i, cell := range cells {
		face := cubemap.Face(i)
		size := float32(cell.Dx())
		for y := cell.Min.Y; y < cell.Max.Y; y++ {
			v := 1 - (float32(y-cell.Min.Y)+0.5)/size
			row := f.Img.Pix[y*f.Img.Stride:]
			for x := cell.Min.X; x < cell.Max.X; x++ {
				u := (float32(x-cell.Min.X) + 0.5) / size
				if cubemap.InReference(face, u, v) {
					putPacked(row[x*4:], s.refColor)
				}
			}
		}
	}
}

package cubemap

import "fmt"

// CalibrationInk is the overlay color painted into calibration faces.
const CalibrationInk uint32 = 0xFFFFFF

// CalibrationColors are the per-face base colors of Calibration.
var CalibrationColors = [FaceCount]uint32{
	PosX: 0xC03030,
	NegX: 0x30A0A0,
	PosY: 0x30A030,
	NegY: 0xA030A0,
	PosZ: 0x3040C0,
	NegZ: 0xB0A030,
}

// Calibration generates a cube map whose faces carry a distinct base color
// with their border, sign and axis letter painted in CalibrationInk. It is
// used to check face orientation without any files on disk.
func Calibration(size int) (*Cubemap, error) {
	if size <= 0 {
		return nil, &FormatError{Face: noFace, Err: fmt.Errorf("invalid cubemap size %d", size)}
	}
	var faces [FaceCount][]uint32
	inv := 1 / float32(size)
	for i := range faces {
		f := Face(i)
		data := make([]uint32, size*size)
		for row := 0; row < size; row++ {
			v := 1 - (float32(row)+0.5)*inv
			for col := 0; col < size; col++ {
				u := (float32(col) + 0.5) * inv
				if InReference(f, u, v) {
					data[row*size+col] = CalibrationInk
				} else {
					data[row*size+col] = CalibrationColors[f]
				}
			}
		}
		faces[i] = data
	}
	return New("calibration", size, faces)
}

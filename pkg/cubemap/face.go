package cubemap

// Face identifies one of the six cube map images.
type Face int

// Faces in storage order.
const (
	PosX Face = iota
	NegX
	PosY
	NegY
	PosZ
	NegZ
)

// FaceCount is the number of faces in a cube map.
const FaceCount = 6

// noFace marks errors that concern the cube map as a whole.
const noFace Face = -1

var faceNames = [FaceCount]string{"+X", "-X", "+Y", "-Y", "+Z", "-Z"}

// String returns the axis label of the face, e.g. "+X".
func (f Face) String() string {
	if f < 0 || int(f) >= FaceCount {
		return "?"
	}
	return faceNames[f]
}

// Positive reports whether the face looks down a positive axis.
func (f Face) Positive() bool {
	return f%2 == 0
}

// Axis returns 0, 1 or 2 for the X, Y or Z axis.
func (f Face) Axis() int {
	return int(f) / 2
}

// facePrefixes lists the accepted file name prefixes per face, lower case.
var facePrefixes = [FaceCount][2]string{
	PosX: {"posx", "right"},
	NegX: {"negx", "left"},
	PosY: {"posy", "top"},
	NegY: {"negy", "bottom"},
	PosZ: {"posz", "front"},
	NegZ: {"negz", "back"},
}

// Prefixes returns the file name prefixes that select this face when loading
// a cube map directory.
func (f Face) Prefixes() [2]string {
	return facePrefixes[f]
}

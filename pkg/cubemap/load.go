package cubemap

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/ftrvxmtrx/tga"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// Load reads a cube map from a directory holding one image per face. Faces
// are matched by case-insensitive file name prefix (posx/right, negx/left,
// posy/top, negy/bottom, posz/front, negz/back); the first match in name
// order wins. PNG, JPEG, GIF, BMP, WebP and TGA files are accepted.
func Load(dir string) (*Cubemap, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFileNotReadable, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: path %s is not a valid directory", ErrFileNotReadable, dir)
	}

	paths, err := findFaces(dir)
	if err != nil {
		return nil, err
	}

	var imgs [FaceCount]image.Image
	for i, p := range paths {
		img, err := decodeFace(p)
		if err != nil {
			return nil, err
		}
		if b := img.Bounds(); b.Dx() != b.Dy() {
			return nil, &FormatError{Face: Face(i), Err: fmt.Errorf("%s is %w", filepath.Base(p), ErrNotSquare)}
		}
		imgs[i] = img
	}
	return FromImages(filepath.Base(filepath.Clean(dir)), imgs)
}

// findFaces maps each face to a file in dir.
func findFaces(dir string) ([FaceCount]string, error) {
	var paths [FaceCount]string
	entries, err := os.ReadDir(dir)
	if err != nil {
		return paths, fmt.Errorf("%w: %v", ErrFileNotReadable, err)
	}
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		name := strings.ToLower(e.Name())
		for i := range paths {
			if paths[i] != "" {
				continue
			}
			p := facePrefixes[i]
			if strings.HasPrefix(name, p[0]) || strings.HasPrefix(name, p[1]) {
				paths[i] = filepath.Join(dir, e.Name())
				break
			}
		}
	}
	for i, p := range paths {
		if p == "" {
			return paths, &MissingFaceError{Face: Face(i)}
		}
	}
	return paths, nil
}

// decodeFace decodes a single face image.
func decodeFace(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFileNotReadable, err)
	}
	defer f.Close()

	var img image.Image
	if strings.EqualFold(filepath.Ext(path), ".tga") {
		// TGA has no magic number, so image.Decode cannot sniff it.
		img, err = tga.Decode(f)
	} else {
		img, _, err = image.Decode(f)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: couldn't open file %s: %v", ErrFileNotReadable, filepath.Base(path), err)
	}
	return img, nil
}

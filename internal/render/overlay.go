package render

import (
	"image"
	"image/color"
	"image/draw"
	stdmath "math"
	"strconv"
	"time"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Info box geometry in pixels.
const (
	infoX          = 5
	infoY          = 5
	infoWidth      = 110
	infoHeight     = 55
	infoPadding    = 10
	infoLineHeight = 15
)

var infoBackground = color.RGBA{A: 0x50}

// fpsCounter measures frames per second over windows of at least a second.
type fpsCounter struct {
	frames int
	since  time.Time
	rate   float32
}

// tick counts a frame and reports whether the rate was updated.
func (c *fpsCounter) tick(now time.Time) bool {
	if c.since.IsZero() {
		c.since = now
	}
	c.frames++
	elapsed := now.Sub(c.since)
	if elapsed < time.Second {
		return false
	}
	c.rate = float32(float64(c.frames) / elapsed.Seconds())
	c.frames = 0
	c.since = now
	return true
}

func infoLines(fps, fov float32, bilinear bool) []string {
	filter := "Nearest"
	if bilinear {
		filter = "Bilinear"
	}
	return []string{
		"FPS: " + formatStat(fps),
		"FOV: " + formatStat(fov),
		"FILTER: " + filter,
	}
}

// formatStat prints at most two decimals without trailing zeros.
func formatStat(v float32) string {
	return strconv.FormatFloat(stdmath.Round(float64(v)*100)/100, 'f', -1, 64)
}

// drawInfo paints the translucent stats box into the top-left corner.
func drawInfo(img *image.RGBA, fps, fov float32, bilinear bool) {
	box := image.Rect(infoX, infoY, infoX+infoWidth, infoY+infoHeight).Intersect(img.Rect)
	if box.Empty() {
		return
	}
	draw.Draw(img, box, image.NewUniform(infoBackground), image.Point{}, draw.Over)

	d := &font.Drawer{
		Dst:  img,
		Src:  image.White,
		Face: basicfont.Face7x13,
	}
	for i, line := range infoLines(fps, fov, bilinear) {
		d.Dot = fixed.P(infoX+infoPadding, infoY+infoLineHeight*(i+1))
		d.DrawString(line)
	}
}

// Package viewer translates user input into render configuration and keeps
// the displayed cube map in sync with its source.
package viewer

import (
	"github.com/chewxy/math32"
	"go.uber.org/zap"

	"github.com/Faultbox/cubeview/internal/engine/input"
	"github.com/Faultbox/cubeview/internal/render"
	"github.com/Faultbox/cubeview/pkg/math"
)

// Action is something the controller cannot do on its own and asks the
// main loop to perform.
type Action int

const (
	ActionNone Action = iota
	ActionQuit
	ActionScreenshot
	ActionOpen   // choose another cube map directory
	ActionSaveAs // save the current frame under a chosen name
)

// Keyboard step sizes.
const (
	keyTurnDegrees = 5
	keyFovDegrees  = 5
	keyOffsetStep  = 1.0 / 72
	maxPitch       = 90
)

// ReferenceColors are cycled through with the C key.
var ReferenceColors = []uint32{
	0x0000FF, 0xFF0000, 0x00FF00, 0xFFFF00,
	0xFF00FF, 0x00FFFF, 0xFFFFFF, 0x000000,
}

// ControllerOptions configures a Controller.
type ControllerOptions struct {
	InvertMouse bool
	Logger      *zap.Logger
}

// Controller owns the camera angles and turns input events into stage
// updates. It is driven from the main loop only.
type Controller struct {
	stage  *render.Stage
	log    *zap.Logger
	invert float32

	yaw, pitch float32 // degrees

	dragging      bool
	savedBilinear bool
	colorIndex    int
}

// NewController creates a controller with a level, forward-looking camera.
func NewController(st *render.Stage, opts ControllerOptions) *Controller {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	c := &Controller{
		stage:  st,
		log:    opts.Logger,
		invert: 1,
	}
	c.SetInvertMouse(opts.InvertMouse)
	ref := st.Snapshot().ReferenceColor
	for i, rc := range ReferenceColors {
		if rc == ref {
			c.colorIndex = i
		}
	}
	return c
}

// Orientation builds the camera matrix for yaw around +Y followed by pitch
// around +X, both in degrees.
func Orientation(yawDeg, pitchDeg float32) math.Mat3 {
	toRad := float32(math32.Pi / 180)
	return math.RotateY(yawDeg * toRad).Mul(math.RotateX(pitchDeg * toRad))
}

// Angles returns the current yaw and pitch in degrees.
func (c *Controller) Angles() (yaw, pitch float32) {
	return c.yaw, c.pitch
}

// SetAngles points the camera. Pitch is clamped to straight up or down.
func (c *Controller) SetAngles(yaw, pitch float32) {
	c.yaw = yaw
	c.pitch = math.Clamp(pitch, -maxPitch, maxPitch)
	if err := c.stage.SetOrientation(Orientation(c.yaw, c.pitch)); err != nil {
		c.log.Warn("orientation rejected", zap.Error(err))
	}
}

// SetInvertMouse flips the drag direction.
func (c *Controller) SetInvertMouse(invert bool) {
	c.invert = 1
	if invert {
		c.invert = -1
	}
}

// Dragging reports whether a left-button drag is in progress.
func (c *Controller) Dragging() bool {
	return c.dragging
}

// Handle applies one event and reports what the main loop should do next.
func (c *Controller) Handle(e input.Event) Action {
	switch e.Type {
	case input.EventQuit:
		return ActionQuit
	case input.EventWindowResize:
		if err := c.stage.SetRenderSize(e.Width, e.Height); err != nil {
			c.log.Debug("ignoring resize", zap.Error(err))
		}
	case input.EventMouseDown:
		if e.Button == input.ButtonLeft && !c.dragging {
			c.dragging = true
			// Nearest filtering keeps dragging responsive.
			c.savedBilinear = c.stage.Snapshot().Bilinear
			c.stage.SetBilinear(false)
		}
	case input.EventMouseUp:
		if e.Button == input.ButtonLeft && c.dragging {
			c.dragging = false
			c.stage.SetBilinear(c.savedBilinear)
		}
	case input.EventMouseMove:
		if c.dragging {
			c.drag(float32(e.RelX)*c.invert, float32(e.RelY)*c.invert)
		}
	case input.EventMouseWheel:
		if e.WheelY != 0 {
			// Scrolling towards the user widens the view.
			c.stage.AdjustFov(-float32(e.WheelY))
		}
	case input.EventKeyDown:
		return c.key(e)
	}
	return ActionNone
}

// drag turns the camera by a mouse delta in pixels. A drag across the whole
// window turns by one field of view.
func (c *Controller) drag(dx, dy float32) {
	p := c.stage.Snapshot()
	if p.Width <= 0 || p.Height <= 0 {
		return
	}
	switch p.Mode {
	case render.Perspective:
		aspect := float32(p.Width) / float32(p.Height)
		c.SetAngles(
			c.yaw+p.Fov*dx/float32(p.Width),
			c.pitch+(p.Fov/aspect)*dy/float32(p.Height),
		)
	case render.Equirect:
		c.stage.AdjustEquirectOffset(-dx / float32(p.Width))
	}
}

func (c *Controller) key(e input.Event) Action {
	switch e.Key {
	case input.KeyEscape:
		return ActionQuit
	case input.KeyS:
		if !e.Repeat {
			return ActionScreenshot
		}
	case input.KeyO:
		if !e.Repeat {
			return ActionOpen
		}
	case input.KeyE:
		if !e.Repeat {
			return ActionSaveAs
		}
	case input.Key1:
		c.setMode(render.Perspective)
	case input.Key2:
		c.setMode(render.Equirect)
	case input.Key3:
		c.setMode(render.Unwrapped)
	case input.KeyR:
		c.stage.SetShowReference(!c.stage.Snapshot().ShowReference)
	case input.KeyI:
		c.stage.SetShowInfo(!c.stage.Snapshot().ShowInfo)
	case input.KeyL:
		c.setBilinear(!c.currentBilinear())
	case input.KeyB:
		c.setBilinear(true)
	case input.KeyN:
		c.setBilinear(false)
	case input.KeyC:
		c.colorIndex = (c.colorIndex + 1) % len(ReferenceColors)
		c.stage.SetReferenceColor(ReferenceColors[c.colorIndex])
	case input.KeyM:
		c.SetInvertMouse(c.invert > 0)
		c.log.Info("mouse inversion toggled", zap.Bool("inverted", c.invert < 0))
	case input.KeySpace:
		c.SetAngles(0, 0)
		if err := c.stage.SetEquirectOffset(0); err != nil {
			c.log.Warn("offset reset rejected", zap.Error(err))
		}
	case input.KeyPlus:
		c.stage.AdjustFov(-keyFovDegrees)
	case input.KeyMinus:
		c.stage.AdjustFov(keyFovDegrees)
	case input.KeyLeft:
		c.turn(-1)
	case input.KeyRight:
		c.turn(1)
	case input.KeyUp:
		c.SetAngles(c.yaw, c.pitch-keyTurnDegrees)
	case input.KeyDown:
		c.SetAngles(c.yaw, c.pitch+keyTurnDegrees)
	}
	return ActionNone
}

func (c *Controller) turn(dir float32) {
	if c.stage.Mode() == render.Equirect {
		c.stage.AdjustEquirectOffset(dir * keyOffsetStep)
		return
	}
	c.SetAngles(c.yaw+dir*keyTurnDegrees, c.pitch)
}

func (c *Controller) setMode(m render.Mode) {
	if err := c.stage.SetMode(m); err != nil {
		c.log.Warn("mode rejected", zap.Error(err))
		return
	}
	c.log.Debug("mode selected", zap.Stringer("mode", m))
}

// currentBilinear is the filter the user chose, ignoring a drag in progress.
func (c *Controller) currentBilinear() bool {
	if c.dragging {
		return c.savedBilinear
	}
	return c.stage.Snapshot().Bilinear
}

func (c *Controller) setBilinear(on bool) {
	if c.dragging {
		c.savedBilinear = on
		return
	}
	c.stage.SetBilinear(on)
}

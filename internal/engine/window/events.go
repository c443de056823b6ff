package window

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/cubeview/internal/engine/input"
)

var keymap = map[sdl.Scancode]input.Key{
	sdl.SCANCODE_ESCAPE:   input.KeyEscape,
	sdl.SCANCODE_SPACE:    input.KeySpace,
	sdl.SCANCODE_1:        input.Key1,
	sdl.SCANCODE_2:        input.Key2,
	sdl.SCANCODE_3:        input.Key3,
	sdl.SCANCODE_B:        input.KeyB,
	sdl.SCANCODE_C:        input.KeyC,
	sdl.SCANCODE_E:        input.KeyE,
	sdl.SCANCODE_I:        input.KeyI,
	sdl.SCANCODE_L:        input.KeyL,
	sdl.SCANCODE_M:        input.KeyM,
	sdl.SCANCODE_N:        input.KeyN,
	sdl.SCANCODE_O:        input.KeyO,
	sdl.SCANCODE_R:        input.KeyR,
	sdl.SCANCODE_S:        input.KeyS,
	sdl.SCANCODE_LEFT:     input.KeyLeft,
	sdl.SCANCODE_RIGHT:    input.KeyRight,
	sdl.SCANCODE_UP:       input.KeyUp,
	sdl.SCANCODE_DOWN:     input.KeyDown,
	sdl.SCANCODE_EQUALS:   input.KeyPlus,
	sdl.SCANCODE_KP_PLUS:  input.KeyPlus,
	sdl.SCANCODE_MINUS:    input.KeyMinus,
	sdl.SCANCODE_KP_MINUS: input.KeyMinus,
}

// PollEvents drains the SDL queue into in. It returns true if the viewer
// should quit.
func (w *Window) PollEvents(in *input.Input) bool {
	quit := false
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			in.Push(input.Event{Type: input.EventQuit})
			quit = true

		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
				in.Push(input.Event{
					Type:   input.EventWindowResize,
					Width:  int(e.Data1),
					Height: int(e.Data2),
				})
			}

		case *sdl.KeyboardEvent:
			k, ok := keymap[e.Keysym.Scancode]
			if !ok {
				continue
			}
			typ := input.EventKeyDown
			if e.Type == sdl.KEYUP {
				typ = input.EventKeyUp
			}
			in.Push(input.Event{Type: typ, Key: k, Repeat: e.Repeat != 0})

		case *sdl.MouseMotionEvent:
			in.Push(input.Event{
				Type:   input.EventMouseMove,
				MouseX: int(e.X),
				MouseY: int(e.Y),
				RelX:   int(e.XRel),
				RelY:   int(e.YRel),
			})

		case *sdl.MouseButtonEvent:
			typ := input.EventMouseDown
			if e.Type == sdl.MOUSEBUTTONUP {
				typ = input.EventMouseUp
			}
			in.Push(input.Event{
				Type:   typ,
				MouseX: int(e.X),
				MouseY: int(e.Y),
				Button: input.Button(e.Button),
			})

		case *sdl.MouseWheelEvent:
			dy := int(e.Y)
			if e.Direction == sdl.MOUSEWHEEL_FLIPPED {
				dy = -dy
			}
			in.Push(input.Event{Type: input.EventMouseWheel, WheelY: dy})
		}
	}
	return quit
}

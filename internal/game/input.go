package game

import (
	"github.com/go-gl/glfw/v3.3/glfw"

	"invaders/internal/sim"
)

type Input struct {
	prevKeys map[glfw.Key]bool
}

func NewInput() *Input {
	return &Input{prevKeys: make(map[glfw.Key]bool)}
}

func (in *Input) JustPressed(window *glfw.Window, key glfw.Key) bool {
	down := window.GetKey(key) == glfw.Press
	jp := down && !in.prevKeys[key]
	in.prevKeys[key] = down
	return jp
}

func shiftHeld(window *glfw.Window) bool {
	return window.GetKey(glfw.KeyLeftShift) == glfw.Press ||
		window.GetKey(glfw.KeyRightShift) == glfw.Press
}

// Controls samples the keyboard once per frame. Arrows are held, Space fires
// on press, and Shift+1 ("!") arms lasers.
func (in *Input) Controls(window *glfw.Window) sim.Input {
	// Sample the edge unconditionally so a held 1 does not fire when Shift
	// is pressed later.
	one := in.JustPressed(window, glfw.Key1)
	return sim.Input{
		MoveLeft:  window.GetKey(glfw.KeyLeft) == glfw.Press,
		MoveRight: window.GetKey(glfw.KeyRight) == glfw.Press,
		Fire:      in.JustPressed(window, glfw.KeySpace),
		Lasers:    one && shiftHeld(window),
	}
}

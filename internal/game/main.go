package game

import (
	"fmt"
	"log"
	"runtime"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"invaders/internal/config"
)

// RunDesktop opens the window and runs the game until it is closed. The
// simulation advances in fixed ticks of cfg.TickDuration regardless of the
// display's refresh rate.
func RunDesktop(cfg config.Config) error {
	runtime.LockOSThread()

	window, err := initWindow(cfg.WindowSize)
	if err != nil {
		return err
	}
	defer glfw.Terminate()
	defer window.Destroy()

	if err := gl.Init(); err != nil {
		return fmt.Errorf("gl init: %w", err)
	}
	log.Printf("gl %s", gl.GoStr(gl.GetString(gl.VERSION)))

	var audio *AudioSystem
	if !cfg.Mute {
		if audio, err = InitAudio(); err != nil {
			log.Printf("audio init failed (continuing without sound): %v", err)
		}
	}

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Disable(gl.CULL_FACE)
	gl.ClearColor(0, 0, 0, 1)

	rend, err := NewRenderer()
	if err != nil {
		return fmt.Errorf("renderer: %w", err)
	}
	defer rend.Destroy()

	session := NewGameSession(cfg.Seed, audio)
	cam := DefaultCamera()
	input := NewInput()

	tick := cfg.TickDuration().Seconds()
	acc := 0.0
	last := glfw.GetTime()
	title := ""
	for !window.ShouldClose() {
		now := glfw.GetTime()
		acc += now - last
		last = now

		glfw.PollEvents()
		if window.GetKey(glfw.KeyEscape) == glfw.Press {
			window.SetShouldClose(true)
			continue
		}
		if input.JustPressed(window, glfw.KeyC) {
			if err := copyReport(session.Sim); err != nil {
				log.Printf("debug report: %v", err)
			}
		}
		if input.JustPressed(window, glfw.KeyR) && session.State == StateRoundOver {
			session.StartRound()
			acc = 0
		}

		// Fire and Lasers stay latched until a tick consumes them, so a press
		// between ticks is not lost.
		session.Sim.SetInput(input.Controls(window))
		steps := 0
		for acc >= tick && steps < config.MaxCatchUpTicks {
			session.Step()
			acc -= tick
			steps++
		}
		if steps == config.MaxCatchUpTicks && acc >= tick {
			log.Printf("dropping %.0f ticks after a stall", acc/tick)
			acc = 0
		}

		if t := session.Status(); t != title {
			window.SetTitle(t)
			title = t
		}

		fbW, fbH := window.GetFramebufferSize()
		if fbW <= 0 || fbH <= 0 {
			time.Sleep(10 * time.Millisecond)
			continue
		}
		rend.Draw(session.Sim, session.Particles, cam, fbW, fbH)
		window.SwapBuffers()
	}
	return nil
}

package game

import "github.com/go-gl/mathgl/mgl32"

// Camera is a fixed perspective view of the play field. The field is square,
// so the aspect ratio follows the framebuffer only to keep pixels square.
type Camera struct {
	Eye    mgl32.Vec3
	Center mgl32.Vec3
	Up     mgl32.Vec3

	FovY      float32 // radians
	Near, Far float32
}

func DefaultCamera() Camera {
	return Camera{
		Eye:    mgl32.Vec3{0.5, 0.5, -0.5},
		Center: mgl32.Vec3{0.5, 0.5, 0.5},
		Up:     mgl32.Vec3{0, 1, 0},
		FovY:   mgl32.DegToRad(90),
		Near:   0.1,
		Far:    10,
	}
}

func (c Camera) View() mgl32.Mat4 {
	return mgl32.LookAtV(c.Eye, c.Center, c.Up)
}

func (c Camera) Projection(fbW, fbH int) mgl32.Mat4 {
	aspect := float32(1)
	if fbH > 0 {
		aspect = float32(fbW) / float32(fbH)
	}
	return mgl32.Perspective(c.FovY, aspect, c.Near, c.Far)
}

// lightPosition is the single white point light, up and to the viewer's right.
var (
	lightPosition = mgl32.Vec3{-0.5, 1.5, -0.5}
	lightColor    = mgl32.Vec3{1, 1, 1}
)

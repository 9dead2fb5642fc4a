package sim

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Box is an axis-aligned box given by its centre and half-extents.
type Box struct {
	Center mgl64.Vec3
	Half   mgl64.Vec3
}

// Overlaps reports whether the boxes touch or intersect on every axis.
// Touching faces count as a hit.
func (b Box) Overlaps(o Box) bool {
	for i := 0; i < 3; i++ {
		if math.Abs(b.Center[i]-o.Center[i]) > b.Half[i]+o.Half[i] {
			return false
		}
	}
	return true
}

// LaserRay is a laser resolved analytically as the line through Origin along
// Dir. Dir must have a non-zero Y component.
type LaserRay struct {
	Origin mgl64.Vec3
	Dir    mgl64.Vec3
}

// XAt returns the ray's X coordinate at world height y.
func (l LaserRay) XAt(y float64) float64 {
	return l.Origin[0] + (y-l.Origin[1])/l.Dir[1]*l.Dir[0]
}

// HitsBox tests the ray against a box using only its X extent and the ray's
// X at the box's top and bottom. A hit is either sample inside [lo, hi] or the
// samples lying on opposite sides of lo, which catches a ray crossing the box
// between the two samples.
func (l LaserRay) HitsBox(b Box) bool {
	lo := b.Center[0] - b.Half[0]
	hi := b.Center[0] + b.Half[0]
	topX := l.XAt(b.Center[1] + b.Half[1])
	botX := l.XAt(b.Center[1] - b.Half[1])
	switch {
	case topX >= lo && topX <= hi:
		return true
	case botX >= lo && botX <= hi:
		return true
	}
	return (topX >= lo) != (botX >= lo)
}

// inColumn reports whether x lies within half of column centre cx.
func inColumn(x, cx, half float64) bool {
	return math.Abs(x-cx) <= half
}

package sim

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

// scriptedSource replays fixed draws. Once a script runs dry Float64 returns
// 0.5 (the centre of every spread) and Intn returns 0.
type scriptedSource struct {
	floats []float64
	ints   []int
}

func (s *scriptedSource) Float64() float64 {
	if len(s.floats) == 0 {
		return 0.5
	}
	v := s.floats[0]
	s.floats = s.floats[1:]
	return v
}

func (s *scriptedSource) Intn(n int) int {
	if len(s.ints) == 0 || n <= 0 {
		return 0
	}
	v := s.ints[0]
	s.ints = s.ints[1:]
	return v % n
}

// newQuietState returns a state whose formation will not dive on its own.
func newQuietState(t *testing.T, opts ...Option) *State {
	t.Helper()
	s := New(append([]Option{WithSource(&scriptedSource{})}, opts...)...)
	s.AttackCountdown = 1e9
	return s
}

// indexOf returns the n-th active object with role r.
func indexOf(t *testing.T, s *State, r Role, n int) int {
	t.Helper()
	for i := range s.Objects {
		if s.Objects[i].Role == r && s.Objects[i].Active {
			if n == 0 {
				return i
			}
			n--
		}
	}
	t.Fatalf("no active %s #%d", r, n)
	return -1
}

// makeFalling detaches enemy idx with the given wobble and places it so its
// world position is at.
func makeFalling(s *State, idx int, amplitude, frequency, phase float64, at mgl64.Vec3) *Object {
	o := &s.Objects[idx]
	o.Role = RoleFallingEnemy
	o.Palette = PaletteNone
	o.Amplitude = amplitude
	o.Frequency = frequency
	o.Phase = phase
	o.Translation = at.Sub(o.Offset)
	return o
}

func almostEqual(a, b float64) bool {
	return mgl64.FloatEqualThreshold(a, b, 1e-9)
}

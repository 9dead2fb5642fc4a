package main

import (
	"math"

	"invaders/internal/sim"
)

// Autopilot tuning.
const (
	dodgeWindow = 0.4  // how far above the player a bullet is a threat
	dodgeWidth  = 0.12 // half-width of the lane considered dangerous
)

// autopilot is a simple scripted player: dodge the nearest incoming enemy
// bullet, otherwise line up under the closest enemy and fire.
type autopilot struct{}

func (autopilot) decide(s *sim.State) sim.Input {
	p := s.Player()
	if !p.Active {
		return sim.Input{}
	}
	pos := p.World()

	if x, ok := incomingBullet(s, pos[0], pos[1]); ok {
		// Step out of the lane. Moving left increases X.
		if x <= pos[0] {
			return sim.Input{MoveLeft: true}
		}
		return sim.Input{MoveRight: true}
	}

	x, ok := nearestEnemyX(s, pos[0])
	if !ok {
		return sim.Input{}
	}
	dx := x - pos[0]
	var in sim.Input
	switch {
	case dx > sim.PlayerSpeed:
		in.MoveLeft = true
	case dx < -sim.PlayerSpeed:
		in.MoveRight = true
	}
	in.Fire = math.Abs(dx) < sim.EnemyScale && s.PlayerPool.InFlight(s.Objects) == 0
	return in
}

// incomingBullet returns the X of the closest enemy projectile about to
// reach the player's lane.
func incomingBullet(s *sim.State, px, py float64) (float64, bool) {
	best, found := math.Inf(1), false
	x := 0.0
	for i := range s.Objects {
		o := &s.Objects[i]
		if !o.Active || o.Role != sim.RoleEnemyBullet {
			continue
		}
		w := o.World()
		dy := w[1] - py
		if dy < 0 || dy > dodgeWindow || math.Abs(w[0]-px) > dodgeWidth {
			continue
		}
		if dy < best {
			best, x, found = dy, w[0], true
		}
	}
	return x, found
}

// nearestEnemyX prefers falling enemies, which are the ones that shoot, and
// otherwise picks the closest formation enemy by X.
func nearestEnemyX(s *sim.State, px float64) (float64, bool) {
	for _, role := range []sim.Role{sim.RoleFallingEnemy, sim.RoleEnemy} {
		best, found := math.Inf(1), false
		x := 0.0
		for i := range s.Objects {
			o := &s.Objects[i]
			if !o.Active || o.Role != role {
				continue
			}
			w := o.World()
			if d := math.Abs(w[0] - px); d < best {
				best, x, found = d, w[0], true
			}
		}
		if found {
			return x, true
		}
	}
	return 0, false
}

package sim

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// wobble is the horizontal offset of a falling enemy at its current height.
func wobble(o *Object) float64 {
	return math.Sin(o.Translation[1]*o.Frequency+o.Phase) * o.Amplitude
}

// updateFalling moves every falling enemy and lets the low ones shoot.
func (s *State) updateFalling() {
	threshold := FireThresholdY(s.rows)
	for i := range s.Objects {
		e := &s.Objects[i]
		if e.Role != RoleFallingEnemy || !e.Active {
			continue
		}

		// The wobble delta is sampled across the Y step so bullets and
		// lasers inherit the same instantaneous velocity.
		drift := -wobble(e)
		e.Translation[1] -= EnemyFallSpeed
		drift += wobble(e)
		e.Translation[0] += drift

		if e.Translation[1] <= EnemyBottomBound {
			e.deactivate()
			s.emit(EventEnemyEscaped, i)
			continue
		}

		if e.World()[1] > threshold {
			continue
		}
		e.ShotCooldown--
		if e.ShotCooldown < 0 && e.ShotsFired < MaxEnemyShots {
			s.fireEnemy(i, drift)
		}
	}
}

// fireEnemy launches a projectile from falling enemy idx if the pool has a
// free slot. drift is the enemy's horizontal movement this tick.
func (s *State) fireEnemy(idx int, drift float64) {
	slot, ok := s.EnemyPool.Acquire(s.Objects)
	if !ok {
		return
	}
	e := &s.Objects[idx]
	b := &s.Objects[slot]
	b.Translation = e.World()

	if !b.Role.IsLaser() {
		b.HorizontalMovement = -drift
		s.emit(EventEnemyShot, slot)
	} else {
		// Lasers point along the mirrored drift, the side enemy bullets
		// travel towards.
		b.YAxis = mgl64.Vec3{-drift, -EnemyFallSpeed, 0}.Normalize()
		b.XAxis = mgl64.Vec3{b.YAxis[1], -b.YAxis[0], 0}
		b.LaserCountdown = EnemyLaserDuration
		s.emit(EventEnemyShot, slot)

		// Resolved at once; the laser stays in flight after a hit.
		if p := s.Player(); p.Active && b.laserRay().HitsBox(p.Bounds()) {
			s.killPlayer()
		}
	}

	e.ShotsFired++
	e.ShotCooldown = EnemyShotCooldown
}

// laserRay returns the projectile as an analytic ray.
func (o *Object) laserRay() LaserRay {
	return LaserRay{Origin: o.World(), Dir: o.YAxis}
}

func (s *State) killPlayer() {
	p := s.Player()
	if !p.Active {
		return
	}
	p.deactivate()
	s.emit(EventPlayerKilled, s.player)
}

func (s *State) killEnemy(idx int) {
	o := &s.Objects[idx]
	if !o.Active {
		return
	}
	o.deactivate()
	s.kills++
	s.emit(EventEnemyKilled, idx)
}

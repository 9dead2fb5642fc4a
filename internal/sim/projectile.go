package sim

// updatePlayerProjectiles advances the player's slots and tests bullets
// against every formation and falling enemy.
func (s *State) updatePlayerProjectiles() {
	for _, i := range s.PlayerPool.Slots() {
		b := &s.Objects[i]
		if !b.Active {
			continue
		}
		if b.Role.IsLaser() {
			s.tickLaser(i)
			continue
		}

		b.Translation[1] += PlayerBulletSpeed
		if b.Translation[1] >= PlayerBulletTopBound {
			s.retire(i)
			continue
		}

		// A bullet may take out several overlapping enemies in one tick.
		hit := false
		box := b.Bounds()
		for j := range s.Objects {
			t := &s.Objects[j]
			if !t.Active || (t.Role != RoleEnemy && t.Role != RoleFallingEnemy) {
				continue
			}
			if box.Overlaps(t.Bounds()) {
				s.killEnemy(j)
				hit = true
			}
		}
		if hit {
			s.retire(i)
		}
	}
}

// updateEnemyProjectiles advances enemy slots and tests bullets against the
// player.
func (s *State) updateEnemyProjectiles() {
	ratio := EnemyBulletSpeed / EnemyFallSpeed
	for _, i := range s.EnemyPool.Slots() {
		b := &s.Objects[i]
		if !b.Active {
			continue
		}
		if b.Role.IsLaser() {
			s.tickLaser(i)
			continue
		}

		b.Translation[0] += b.HorizontalMovement * ratio
		b.Translation[1] -= EnemyBulletSpeed
		if b.Translation[1] <= EnemyBulletBottomBound {
			s.retire(i)
			continue
		}

		p := s.Player()
		if p.Active && b.Bounds().Overlaps(p.Bounds()) {
			s.killPlayer()
			s.retire(i)
		}
	}
}

// tickLaser counts a laser down and retires it when the countdown runs out.
func (s *State) tickLaser(idx int) {
	b := &s.Objects[idx]
	b.LaserCountdown--
	if b.LaserCountdown <= 0 {
		s.retire(idx)
	}
}

func (s *State) retire(idx int) {
	s.Objects[idx].deactivate()
	s.emit(EventProjectileRetired, idx)
}

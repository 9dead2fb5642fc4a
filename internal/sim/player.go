package sim

// updatePlayer applies held directions and a pending fire request. A dead
// player neither moves nor fires.
func (s *State) updatePlayer() {
	fire := s.input.Fire
	s.input.Fire = false

	p := s.Player()
	if !p.Active {
		return
	}

	// The camera looks down +Z, so screen left is world +X.
	if s.input.MoveLeft {
		p.Translation[0] = min(p.Translation[0]+PlayerSpeed, PlayerSideBounds)
	}
	if s.input.MoveRight {
		p.Translation[0] = max(p.Translation[0]-PlayerSpeed, -PlayerSideBounds)
	}

	if !fire {
		return
	}
	slot, ok := s.PlayerPool.Acquire(s.Objects)
	if !ok {
		return
	}
	b := &s.Objects[slot]
	b.Translation = p.World()
	s.emit(EventPlayerShot, slot)

	if b.Role.IsLaser() {
		// The player's laser is vertical, so a column test is enough. It
		// stays in flight after hitting.
		px := p.World()[0]
		for i := range s.Objects {
			t := &s.Objects[i]
			if !t.Active || (t.Role != RoleEnemy && t.Role != RoleFallingEnemy) {
				continue
			}
			if inColumn(t.World()[0], px, EnemyScale) {
				s.killEnemy(i)
			}
		}
		b.LaserCountdown = PlayerLaserDuration
	}
}

// collideFallingWithPlayer destroys both sides of any falling enemy that
// touches the player.
func (s *State) collideFallingWithPlayer() {
	p := s.Player()
	if !p.Active {
		return
	}
	for i := range s.Objects {
		e := &s.Objects[i]
		if e.Role != RoleFallingEnemy || !e.Active {
			continue
		}
		if e.Bounds().Overlaps(p.Bounds()) {
			s.killPlayer()
			s.killEnemy(i)
		}
	}
}

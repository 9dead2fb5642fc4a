package sim

// updateFormation sweeps the formation sideways, flashes the palette when it
// turns, and counts down to the next dive.
func (s *State) updateFormation() {
	s.FormationPos += EnemyBackforthSpeed * s.FormationDir
	turn := (s.FormationDir > 0 && s.FormationPos >= EnemySideBounds) ||
		(s.FormationDir < 0 && s.FormationPos <= -EnemySideBounds)

	for i := range s.Objects {
		o := &s.Objects[i]
		if o.Role == RoleEnemy && o.Active {
			o.Translation[0] = s.FormationPos
		}
	}

	if turn {
		s.FormationDir = -s.FormationDir
		s.Palette[0], s.Palette[1] = s.Palette[1], s.Palette[0]
		s.Bus.Emit(Event{Type: EventFormationTurned, Tick: s.Tick, Index: -1})
	}

	s.AttackCountdown--
	if s.AttackCountdown > 0 {
		return
	}
	s.AttackCountdown = spread(s.src, EnemyAttackWait, EnemyAttackWaitRange)
	if idx, ok := s.pickFormationEnemy(); ok {
		s.detach(idx)
	}
}

// pickFormationEnemy selects one formation enemy uniformly at random.
func (s *State) pickFormationEnemy() (int, bool) {
	n := s.countRole(RoleEnemy)
	if n == 0 {
		return -1, false
	}
	k := s.src.Intn(n)
	for i := range s.Objects {
		o := &s.Objects[i]
		if o.Role != RoleEnemy || !o.Active {
			continue
		}
		if k == 0 {
			return i, true
		}
		k--
	}
	return -1, false
}

// detach turns a formation enemy into a falling one with fresh wobble.
func (s *State) detach(idx int) {
	o := &s.Objects[idx]
	o.Role = RoleFallingEnemy
	o.Palette = PaletteNone
	o.Material.Ambient = FallingEnemyAmbient
	o.Amplitude = spread(s.src, EnemyFallAmplitude, EnemyFallAmplitudeRange)
	o.Frequency = spread(s.src, EnemyFallFrequency, EnemyFallFrequencyRange)
	o.Phase = s.src.Float64() * EnemyFallPhaseRange
	s.emit(EventEnemyDetached, idx)
}

// countRole counts active objects with the given role.
func (s *State) countRole(r Role) int {
	n := 0
	for i := range s.Objects {
		if s.Objects[i].Role == r && s.Objects[i].Active {
			n++
		}
	}
	return n
}

package sim

type Outcome int

const (
	OutcomePlaying Outcome = iota
	OutcomePlayerDown
	OutcomeCleared
)

func (o Outcome) String() string {
	switch o {
	case OutcomePlayerDown:
		return "player_down"
	case OutcomeCleared:
		return "cleared"
	}
	return "playing"
}

// Outcome reports how the round stands. The simulation keeps running after
// a round is decided; projectiles already in flight still move.
func (s *State) Outcome() Outcome {
	if !s.Player().Active {
		return OutcomePlayerDown
	}
	if s.countRole(RoleEnemy) == 0 && s.countRole(RoleFallingEnemy) == 0 {
		return OutcomeCleared
	}
	return OutcomePlaying
}

// Score is the number of enemies destroyed so far.
func (s *State) Score() int { return s.kills }

// Remaining counts enemies still in formation and still falling.
func (s *State) Remaining() (formation, falling int) {
	return s.countRole(RoleEnemy), s.countRole(RoleFallingEnemy)
}

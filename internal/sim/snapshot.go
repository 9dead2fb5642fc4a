package sim

import (
	"fmt"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
)

// ObjectSnapshot is the renderer-visible part of one registry entry.
type ObjectSnapshot struct {
	Role   Role       `msgpack:"r"`
	Active bool       `msgpack:"a"`
	Pos    [3]float64 `msgpack:"p"`
	Alpha  float64    `msgpack:"al"`
}

// Snapshot is a compact copy of the simulation after a tick.
type Snapshot struct {
	Tick         int              `msgpack:"t"`
	FormationPos float64          `msgpack:"fp"`
	Score        int              `msgpack:"s"`
	Outcome      Outcome          `msgpack:"o"`
	Objects      []ObjectSnapshot `msgpack:"obj"`
}

// Snapshot copies the current state. The registry order is preserved, so
// indices match Event.Index.
func (s *State) Snapshot() Snapshot {
	snap := Snapshot{
		Tick:         s.Tick,
		FormationPos: s.FormationPos,
		Score:        s.kills,
		Outcome:      s.Outcome(),
		Objects:      make([]ObjectSnapshot, len(s.Objects)),
	}
	for i := range s.Objects {
		o := &s.Objects[i]
		snap.Objects[i] = ObjectSnapshot{
			Role:   o.Role,
			Active: o.Active,
			Pos:    o.World(),
			Alpha:  o.Material.Alpha,
		}
	}
	return snap
}

func (sn Snapshot) Encode() ([]byte, error) {
	b, err := msgpack.Marshal(&sn)
	if err != nil {
		return nil, fmt.Errorf("encode snapshot tick %d: %w", sn.Tick, err)
	}
	return b, nil
}

func DecodeSnapshot(b []byte) (Snapshot, error) {
	var sn Snapshot
	if err := msgpack.Unmarshal(b, &sn); err != nil {
		return Snapshot{}, fmt.Errorf("decode snapshot: %w", err)
	}
	return sn, nil
}

// DebugReport renders the state as plain text for bug reports.
func (s *State) DebugReport() string {
	var b strings.Builder
	formation, falling := s.Remaining()
	p := s.Player()
	fmt.Fprintf(&b, "=== Invaders State ===\n")
	fmt.Fprintf(&b, "tick=%d outcome=%s score=%d\n", s.Tick, s.Outcome(), s.kills)
	fmt.Fprintf(&b, "formation pos=%.3f dir=%+.0f enemies=%d falling=%d next_dive=%.0f\n",
		s.FormationPos, s.FormationDir, formation, falling, s.AttackCountdown)
	fmt.Fprintf(&b, "player active=%t x=%.3f\n", p.Active, p.Translation[0])
	fmt.Fprintf(&b, "pools enemy=%d/%d player=%d/%d\n",
		s.EnemyPool.InFlight(s.Objects), len(s.EnemyPool.Slots()),
		s.PlayerPool.InFlight(s.Objects), len(s.PlayerPool.Slots()))

	for i := range s.Objects {
		o := &s.Objects[i]
		if !o.Active || o.Role == RoleEnemy {
			continue
		}
		w := o.World()
		fmt.Fprintf(&b, "  #%-3d %-14s (%.3f, %.3f)", i, o.Role, w[0], w[1])
		switch {
		case o.Role == RoleFallingEnemy:
			fmt.Fprintf(&b, " shots=%d cooldown=%d", o.ShotsFired, o.ShotCooldown)
		case o.Role.IsLaser():
			fmt.Fprintf(&b, " countdown=%d", o.LaserCountdown)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

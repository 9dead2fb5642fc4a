package sim

import (
	"bytes"
	"strings"
	"testing"
)

func TestState_RegistryLayout(t *testing.T) {
	s := New(WithSeed(1))
	counts := map[Role]int{}
	for i := range s.Objects {
		counts[s.Objects[i].Role]++
	}

	want := map[Role]int{
		RoleEnemy:        EnemyCols * EnemyRows,
		RolePlayer:       1,
		RoleEnemyBullet:  EnemyBulletCount,
		RoleEnemyLaser:   EnemyBulletCount,
		RolePlayerBullet: 1,
		RolePlayerLaser:  1,
	}
	for r, n := range want {
		if counts[r] != n {
			t.Fatalf("%s: got %d, want %d", r, counts[r], n)
		}
	}
	if len(s.Objects) != 36+1+20+2 {
		t.Fatalf("registry size %d", len(s.Objects))
	}

	for i := range s.Objects {
		o := &s.Objects[i]
		if o.Role.IsProjectile() && (o.Active || o.Material.Alpha != 0) {
			t.Fatalf("slot #%d should start idle and invisible", i)
		}
	}
}

func TestState_RegistryNeverGrows(t *testing.T) {
	s := New(WithSeed(7))
	n := len(s.Objects)
	for i := 0; i < 3000; i++ {
		s.SetInput(Input{MoveLeft: i%200 < 100, MoveRight: i%200 >= 100, Fire: i%7 == 0})
		s.Step()
		if len(s.Objects) != n {
			t.Fatalf("tick %d: registry size %d, want %d", s.Tick, len(s.Objects), n)
		}
	}
}

func TestState_CheckerboardPalette(t *testing.T) {
	s := New(WithSeed(1))
	// Enemies are laid out column by column.
	for x := 0; x < EnemyCols; x++ {
		for y := 0; y < EnemyRows; y++ {
			o := &s.Objects[x*EnemyRows+y]
			want := PaletteB
			if (x+y)%2 == 1 {
				want = PaletteA
			}
			if o.Palette != want {
				t.Fatalf("enemy (%d,%d) bound to %d, want %d", x, y, o.Palette, want)
			}
		}
	}
}

func TestState_WithGridAndBullets(t *testing.T) {
	s := New(WithSeed(1), WithGrid(4, 2), WithEnemyBullets(3))
	formation, falling := s.Remaining()
	if formation != 8 || falling != 0 {
		t.Fatalf("remaining %d/%d", formation, falling)
	}
	if n := len(s.EnemyPool.Slots()); n != 3 {
		t.Fatalf("enemy pool has %d slots", n)
	}
	if got, want := FireThresholdY(s.Rows()), EnemiesCenterStart[1]-EnemySpacing*1.5; !almostEqual(got, want) {
		t.Fatalf("threshold %.4f, want %.4f", got, want)
	}
}

func TestState_ConvertToLasers(t *testing.T) {
	s := newQuietState(t)
	s.EnemyPool.Acquire(s.Objects)
	bullet, _ := s.PlayerPool.Acquire(s.Objects)

	s.ConvertToLasers()

	if s.Objects[bullet].Active {
		t.Fatal("bullets in flight should retire on conversion")
	}
	for _, i := range s.EnemyPool.Slots() {
		if s.Objects[i].Role != RoleEnemyLaser {
			t.Fatalf("enemy pool slot #%d is %s", i, s.Objects[i].Role)
		}
	}
	for _, i := range s.PlayerPool.Slots() {
		if s.Objects[i].Role != RolePlayerLaser {
			t.Fatalf("player pool slot #%d is %s", i, s.Objects[i].Role)
		}
	}

	laser, _ := s.EnemyPool.Acquire(s.Objects)
	s.ConvertToLasers()
	if s.Objects[laser].Active {
		t.Fatal("converting again should retire lasers in flight")
	}
	if n := len(s.EnemyPool.Slots()); n != EnemyBulletCount {
		t.Fatalf("enemy pool capacity changed to %d", n)
	}
}

func TestState_LasersInputConvertsBeforeTick(t *testing.T) {
	s := newQuietState(t)
	s.SetInput(Input{Lasers: true, Fire: true})
	s.Step()

	slot := s.PlayerPool.Slots()[0]
	if s.Objects[slot].Role != RolePlayerLaser || !s.Objects[slot].Active {
		t.Fatalf("fire on the converting tick should shoot a laser")
	}
}

func TestState_DeterministicForEqualSeeds(t *testing.T) {
	run := func() []byte {
		s := New(WithSeed(42))
		for i := 0; i < 2500; i++ {
			s.SetInput(Input{MoveLeft: i%300 < 150, MoveRight: i%300 >= 150, Fire: i%11 == 0})
			s.Step()
		}
		b, err := s.Snapshot().Encode()
		if err != nil {
			t.Fatalf("encode: %v", err)
		}
		return b
	}
	a, b := run(), run()
	if !bytes.Equal(a, b) {
		t.Fatal("equal seeds and inputs produced different states")
	}
}

func TestState_SeedsDiverge(t *testing.T) {
	a, b := New(WithSeed(1)), New(WithSeed(2))
	if a.AttackCountdown == b.AttackCountdown {
		t.Fatalf("different seeds drew the same countdown %.3f", a.AttackCountdown)
	}
}

func TestState_OutcomeTransitions(t *testing.T) {
	s := newQuietState(t)
	if s.Outcome() != OutcomePlaying {
		t.Fatalf("fresh state outcome %s", s.Outcome())
	}

	for i := range s.Objects {
		if s.Objects[i].Role == RoleEnemy {
			s.killEnemy(i)
		}
	}
	if s.Outcome() != OutcomeCleared {
		t.Fatalf("outcome %s with no enemies left", s.Outcome())
	}
	if s.Score() != EnemyCols*EnemyRows {
		t.Fatalf("score %d", s.Score())
	}

	s.killPlayer()
	if s.Outcome() != OutcomePlayerDown {
		t.Fatalf("outcome %s with player down", s.Outcome())
	}
}

func TestState_FallingEnemyKeepsRoundOpen(t *testing.T) {
	s := newQuietState(t)
	keep := indexOf(t, s, RoleEnemy, 0)
	for i := range s.Objects {
		if s.Objects[i].Role == RoleEnemy && i != keep {
			s.killEnemy(i)
		}
	}
	makeFalling(s, keep, 0, 0, 0, s.Objects[keep].World())
	if s.Outcome() != OutcomePlaying {
		t.Fatalf("outcome %s while an enemy is still falling", s.Outcome())
	}
}

func TestSnapshot_EncodeDecode(t *testing.T) {
	s := New(WithSeed(3))
	for i := 0; i < 120; i++ {
		s.SetInput(Input{Fire: true})
		s.Step()
	}
	snap := s.Snapshot()
	b, err := snap.Encode()
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	got, err := DecodeSnapshot(b)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Tick != snap.Tick || got.Score != snap.Score || got.Outcome != snap.Outcome {
		t.Fatalf("header mismatch: got %+v", got)
	}
	if len(got.Objects) != len(s.Objects) {
		t.Fatalf("decoded %d objects, want %d", len(got.Objects), len(s.Objects))
	}
	if _, err := DecodeSnapshot([]byte{0xc1}); err == nil {
		t.Fatal("expected an error for garbage input")
	}
}

func TestSimLog_RecordsEvents(t *testing.T) {
	s := newQuietState(t)
	log := NewSimLog(s.Bus)

	s.SetInput(Input{Fire: true})
	s.Step()
	s.ConvertToLasers()

	if n := log.Count("player_shot"); n != 1 {
		t.Fatalf("player_shot count %d", n)
	}
	if got := log.Filter("projectile", ""); len(got) < 2 {
		t.Fatalf("expected shot and conversion entries, got %v", got)
	}
	dump := log.Dump()
	if !strings.Contains(dump, "lasers_armed") || !strings.Contains(dump, "player-bullet") {
		t.Fatalf("dump missing entries:\n%s", dump)
	}
}

func TestState_DebugReport(t *testing.T) {
	s := newQuietState(t)
	s.SetInput(Input{Fire: true})
	s.Step()
	r := s.DebugReport()
	for _, want := range []string{"tick=1", "outcome=playing", "player-bullet", "pools enemy=0/10 player=1/1"} {
		if !strings.Contains(r, want) {
			t.Fatalf("report missing %q:\n%s", want, r)
		}
	}
}

package sim

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestPlayer_ClampsAtLeftBound(t *testing.T) {
	s := newQuietState(t)
	s.Player().Translation[0] = PlayerSideBounds - PlayerSpeed/2

	s.SetInput(Input{MoveLeft: true})
	s.Step()
	if x := s.Player().Translation[0]; x != PlayerSideBounds {
		t.Fatalf("expected clamp to %.3f, got %.6f", PlayerSideBounds, x)
	}

	for i := 0; i < 20; i++ {
		s.SetInput(Input{MoveLeft: true})
		s.Step()
		if x := s.Player().Translation[0]; x > PlayerSideBounds {
			t.Fatalf("tick %d: player past left bound at %.6f", s.Tick, x)
		}
	}
}

func TestPlayer_ClampsAtRightBound(t *testing.T) {
	s := newQuietState(t)
	for i := 0; i < 400; i++ {
		s.SetInput(Input{MoveRight: true})
		s.Step()
	}
	if x := s.Player().Translation[0]; x != -PlayerSideBounds {
		t.Fatalf("expected clamp to %.3f, got %.6f", -PlayerSideBounds, x)
	}
}

func TestPlayer_HeldDirectionsCancel(t *testing.T) {
	s := newQuietState(t)
	s.SetInput(Input{MoveLeft: true, MoveRight: true})
	s.Step()
	if x := s.Player().Translation[0]; !almostEqual(x, 0) {
		t.Fatalf("both directions held should cancel, got %.6f", x)
	}
}

func TestPlayer_BulletSpawnsAtPlayer(t *testing.T) {
	s := newQuietState(t)
	var shot Event
	s.Bus.Subscribe(EventPlayerShot, func(ev Event) { shot = ev })

	s.SetInput(Input{Fire: true})
	s.Step()

	p := s.Player()
	if shot.Pos != p.World() {
		t.Fatalf("bullet spawned at %v, player at %v", shot.Pos, p.World())
	}
	b := &s.Objects[shot.Index]
	if b.Role != RolePlayerBullet || !b.Active {
		t.Fatalf("expected an active player bullet, got %s active=%t", b.Role, b.Active)
	}
	want := p.World().Add(mgl64.Vec3{0, PlayerBulletSpeed, 0})
	if !b.Translation.ApproxEqual(want) {
		t.Fatalf("bullet at %v after first move, want %v", b.Translation, want)
	}
}

func TestPlayer_FireWhileBusyIsDropped(t *testing.T) {
	s := newQuietState(t)
	s.SetInput(Input{Fire: true})
	s.Step()

	shots := 0
	s.Bus.Subscribe(EventPlayerShot, func(Event) { shots++ })
	s.SetInput(Input{Fire: true})
	s.Step()

	if shots != 0 {
		t.Fatalf("second shot should be dropped while the first is in flight")
	}
	if s.input.Fire {
		t.Fatal("a dropped fire request must not stay latched")
	}

	// Once the bullet leaves the top the slot frees up again.
	for i := 0; i < 300 && s.PlayerPool.InFlight(s.Objects) > 0; i++ {
		s.Step()
	}
	s.SetInput(Input{Fire: true})
	s.Step()
	if shots != 1 {
		t.Fatalf("expected a shot once the slot was free, got %d", shots)
	}
}

func TestPlayer_FireLatchedUntilStep(t *testing.T) {
	s := newQuietState(t)
	s.SetInput(Input{Fire: true})
	s.SetInput(Input{})
	s.Step()
	if n := s.PlayerPool.InFlight(s.Objects); n != 1 {
		t.Fatalf("fire press overwritten before the tick consumed it")
	}
}

func TestPlayer_DeadPlayerNeitherMovesNorFires(t *testing.T) {
	s := newQuietState(t)
	s.killPlayer()
	x := s.Player().Translation[0]

	s.SetInput(Input{MoveLeft: true, Fire: true})
	s.Step()

	if s.Player().Translation[0] != x {
		t.Fatal("dead player moved")
	}
	if n := s.PlayerPool.InFlight(s.Objects); n != 0 {
		t.Fatal("dead player fired")
	}
}

func TestPlayer_LaserKillsWholeColumn(t *testing.T) {
	s := newQuietState(t)
	s.ConvertToLasers()

	// Line the player up with column 0 after the formation's first step.
	col0 := EnemiesCenterStart[0] + EnemySpacing*(0-float64(EnemyCols-1)/2)
	s.Player().Translation[0] = col0 - EnemyBackforthSpeed - PlayerStart[0]

	killed := 0
	s.Bus.Subscribe(EventEnemyKilled, func(Event) { killed++ })
	s.SetInput(Input{Fire: true})
	s.Step()

	if killed != EnemyRows {
		t.Fatalf("expected the whole column (%d) to die, got %d", EnemyRows, killed)
	}
	if s.Score() != EnemyRows {
		t.Fatalf("score %d", s.Score())
	}
	laser := s.PlayerPool.Slots()[0]
	if !s.Objects[laser].Active {
		t.Fatal("player laser should stay in flight after hitting")
	}
	// The countdown starts after the fire, and the projectile stage has
	// already ticked it once.
	if got := s.Objects[laser].LaserCountdown; got != PlayerLaserDuration-1 {
		t.Fatalf("laser countdown %d, want %d", got, PlayerLaserDuration-1)
	}
}

func TestPlayer_LaserMissesNeighbourColumns(t *testing.T) {
	s := newQuietState(t)
	s.ConvertToLasers()
	// Halfway between columns 0 and 1.
	col0 := EnemiesCenterStart[0] + EnemySpacing*(0-float64(EnemyCols-1)/2)
	s.Player().Translation[0] = col0 + EnemySpacing/2 - EnemyBackforthSpeed - PlayerStart[0]

	s.SetInput(Input{Fire: true})
	s.Step()

	if s.Score() != 0 {
		t.Fatalf("laser between columns killed %d enemies", s.Score())
	}
}

func TestPlayer_FallingEnemyRamsPlayer(t *testing.T) {
	s := newQuietState(t)
	p := s.Player()
	idx := indexOf(t, s, RoleEnemy, 0)
	makeFalling(s, idx, 0, 0, 0, p.World().Add(mgl64.Vec3{0, EnemyFallSpeed, 0}))
	s.Objects[idx].ShotsFired = MaxEnemyShots

	s.Step()

	if p.Active {
		t.Fatal("player should die on contact")
	}
	if s.Objects[idx].Active {
		t.Fatal("ramming enemy should die too")
	}
	if s.Score() != 1 {
		t.Fatalf("a rammed enemy counts as a kill, score=%d", s.Score())
	}
	if s.Outcome() != OutcomePlayerDown {
		t.Fatalf("outcome %s", s.Outcome())
	}
}

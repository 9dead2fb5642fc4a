package sim

import "testing"

func TestPool_AcquireTakesFirstIdleSlot(t *testing.T) {
	s := newQuietState(t)
	slots := s.EnemyPool.Slots()

	s.Objects[slots[0]].activate()
	idx, ok := s.EnemyPool.Acquire(s.Objects)
	if !ok {
		t.Fatal("expected a free slot")
	}
	if idx != slots[1] {
		t.Fatalf("expected slot %d, got %d", slots[1], idx)
	}
	b := &s.Objects[idx]
	if !b.Active || b.Material.Alpha != 1 {
		t.Fatalf("acquired slot should be active with alpha 1, got active=%t alpha=%.1f", b.Active, b.Material.Alpha)
	}
}

func TestPool_ExhaustedRequestChangesNothing(t *testing.T) {
	s := newQuietState(t)
	for i := 0; i < EnemyBulletCount; i++ {
		if _, ok := s.EnemyPool.Acquire(s.Objects); !ok {
			t.Fatalf("slot %d should have been free", i)
		}
	}
	if n := s.EnemyPool.InFlight(s.Objects); n != EnemyBulletCount {
		t.Fatalf("expected %d in flight, got %d", EnemyBulletCount, n)
	}

	idx := indexOf(t, s, RoleEnemy, 0)
	e := makeFalling(s, idx, 0, 0, 0, s.Objects[idx].World())
	e.ShotCooldown = -1

	before := make([]Object, len(s.Objects))
	copy(before, s.Objects)

	s.fireEnemy(idx, 0.01)

	if len(s.Objects) != len(before) {
		t.Fatalf("registry grew from %d to %d", len(before), len(s.Objects))
	}
	for i := range before {
		if s.Objects[i] != before[i] {
			t.Fatalf("object #%d (%s) changed on a dropped fire request", i, before[i].Role)
		}
	}
}

func TestPool_RetireAllClearsSlots(t *testing.T) {
	s := newQuietState(t)
	s.EnemyPool.Acquire(s.Objects)
	s.EnemyPool.Acquire(s.Objects)
	s.EnemyPool.RetireAll(s.Objects)

	for _, i := range s.EnemyPool.Slots() {
		if s.Objects[i].Active || s.Objects[i].Material.Alpha != 0 {
			t.Fatalf("slot %d should be idle and invisible after RetireAll", i)
		}
	}
}

func TestPool_PlayerPoolHasOneSlot(t *testing.T) {
	s := newQuietState(t)
	if _, ok := s.PlayerPool.Acquire(s.Objects); !ok {
		t.Fatal("first player acquire should succeed")
	}
	if _, ok := s.PlayerPool.Acquire(s.Objects); ok {
		t.Fatal("second player acquire should be dropped while the first is in flight")
	}
}

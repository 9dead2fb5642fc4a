package sim

import "testing"

func TestRand_SameSeedSameStream(t *testing.T) {
	a, b := NewRand(99), NewRand(99)
	for i := 0; i < 1000; i++ {
		if x, y := a.NextU64(), b.NextU64(); x != y {
			t.Fatalf("draw %d: %d != %d", i, x, y)
		}
	}
}

func TestRand_ZeroSeedUsable(t *testing.T) {
	r := NewRand(0)
	if r.NextU64() == 0 && r.NextU64() == 0 {
		t.Fatal("zero seed produced a stuck stream")
	}
}

func TestRand_Ranges(t *testing.T) {
	r := NewRand(5)
	for i := 0; i < 10000; i++ {
		if f := r.Float64(); f < 0 || f >= 1 {
			t.Fatalf("Float64 out of range: %f", f)
		}
		if n := r.Intn(7); n < 0 || n >= 7 {
			t.Fatalf("Intn out of range: %d", n)
		}
	}
	if r.Intn(0) != 0 {
		t.Fatal("Intn(0) should be 0")
	}
}

func TestSpread_CentredOnBase(t *testing.T) {
	src := &scriptedSource{floats: []float64{0, 0.5, 0.999}}
	if got := spread(src, 500, 500); got != 250 {
		t.Fatalf("low end %.1f", got)
	}
	if got := spread(src, 500, 500); got != 500 {
		t.Fatalf("middle %.1f", got)
	}
	if got := spread(src, 500, 500); got >= 750 {
		t.Fatalf("high end %.1f should stay below 750", got)
	}
}

package game

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"invaders/internal/sim"
)

// MaxParticles caps the debris pool; the oldest particles are overwritten
// once it is full.
const MaxParticles = 512

// Debris tuning, in world units per tick.
const (
	debrisPerKill   = 14
	debrisSpeedMin  = 0.002
	debrisSpeedMax  = 0.012
	debrisGravity   = 0.0004
	debrisLifeMin   = 25
	debrisLifeMax   = 60
	debrisSizeMin   = 0.006
	debrisSizeRange = 0.01
)

type Particle struct {
	Pos, Vel mgl64.Vec3
	Size     float64

	Life    float64
	MaxLife float64

	Col mgl64.Vec3
}

// ParticleSystem holds cosmetic explosion debris. It lives outside the
// simulation and draws from its own random stream, so it never affects
// replay.
type ParticleSystem struct {
	Max    int
	P      []Particle
	rng    *sim.Rand
	ovrIdx int // circular overwrite index when full
}

func NewParticleSystem(maxParticles int, seed uint64) *ParticleSystem {
	if maxParticles <= 0 {
		maxParticles = MaxParticles
	}
	return &ParticleSystem{
		Max: maxParticles,
		P:   make([]Particle, 0, maxParticles),
		rng: sim.NewRand(seed),
	}
}

func (ps *ParticleSystem) Clear() {
	ps.P = ps.P[:0]
	ps.ovrIdx = 0
}

func (ps *ParticleSystem) Add(p Particle) {
	if len(ps.P) < ps.Max {
		ps.P = append(ps.P, p)
		return
	}
	if ps.ovrIdx >= ps.Max {
		ps.ovrIdx = 0
	}
	ps.P[ps.ovrIdx] = p
	ps.ovrIdx++
}

func (ps *ParticleSystem) rangeF(lo, hi float64) float64 {
	return lo + ps.rng.Float64()*(hi-lo)
}

// SpawnExplosion throws n fragments of colour col out from pos, mostly in
// the XY plane the camera looks at.
func (ps *ParticleSystem) SpawnExplosion(pos, col mgl64.Vec3, n int) {
	for range n {
		ang := ps.rangeF(0, 2*math.Pi)
		spd := ps.rangeF(debrisSpeedMin, debrisSpeedMax)
		ps.Add(Particle{
			Pos:     pos,
			Vel:     mgl64.Vec3{math.Cos(ang) * spd, math.Sin(ang) * spd, ps.rangeF(-0.002, 0.002)},
			Size:    debrisSizeMin + ps.rng.Float64()*debrisSizeRange,
			MaxLife: ps.rangeF(debrisLifeMin, debrisLifeMax),
			Col:     col,
		})
	}
}

// Update advances every particle by one tick and drops expired ones.
func (ps *ParticleSystem) Update() {
	alive := ps.P[:0]
	for _, p := range ps.P {
		p.Life++
		if p.Life >= p.MaxLife {
			continue
		}
		p.Vel[1] -= debrisGravity
		p.Pos = p.Pos.Add(p.Vel)
		alive = append(alive, p)
	}
	ps.P = alive
	if ps.ovrIdx > len(ps.P) {
		ps.ovrIdx = 0
	}
}

// Alpha fades a particle out over its life.
func (p *Particle) Alpha() float64 {
	t := p.Life / p.MaxLife
	return math.Max(0, 1-t)
}

// Bind spawns debris for every destroyed enemy and for the player.
func (ps *ParticleSystem) Bind(bus *sim.EventBus) {
	bus.Subscribe(sim.EventEnemyKilled, func(e sim.Event) {
		col := sim.PaletteAmbientB
		if e.Role == sim.RoleFallingEnemy {
			col = sim.FallingEnemyAmbient.Mul(2)
		}
		ps.SpawnExplosion(e.Pos, col, debrisPerKill)
	})
	bus.Subscribe(sim.EventPlayerKilled, func(e sim.Event) {
		ps.SpawnExplosion(e.Pos, sim.PlayerDiffuse, debrisPerKill*3)
	})
}

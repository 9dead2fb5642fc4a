package game

import (
	"fmt"
	"log"

	"invaders/internal/sim"
)

const windowTitle = "Invaders"

type GameState int

const (
	StatePlaying   GameState = iota // main gameplay
	StateRoundOver                  // player down or formation cleared
)

// GameSession owns the running simulation and restarts it between rounds.
// Each round gets its own seed derived from the session seed.
type GameSession struct {
	State GameState
	Round int
	Seed  uint64
	Sim   *sim.State

	Particles *ParticleSystem

	audio   *AudioSystem
	outcome sim.Outcome
}

func NewGameSession(seed uint64, audio *AudioSystem) *GameSession {
	s := &GameSession{
		Seed:      seed,
		Particles: NewParticleSystem(MaxParticles, seed^0xBEAD),
		audio:     audio,
	}
	s.StartRound()
	return s
}

// RoundSeed is the simulation seed for round n.
func RoundSeed(seed uint64, n int) uint64 {
	return seed + uint64(n)*0x9E3779B97F4A7C15
}

// StartRound replaces the simulation with a fresh one and wires the host's
// subscribers to its bus.
func (s *GameSession) StartRound() {
	s.Round++
	s.Sim = sim.New(sim.WithSeed(RoundSeed(s.Seed, s.Round)))
	s.State = StatePlaying
	s.outcome = sim.OutcomePlaying

	s.Particles.Clear()
	s.Particles.Bind(s.Sim.Bus)
	s.audio.Bind(s.Sim.Bus)
	s.Sim.Bus.SubscribeAll(func(e sim.Event) {
		if e.Index < 0 {
			log.Printf("tick=%d %s", e.Tick, e.Type)
			return
		}
		log.Printf("tick=%d %s #%d %s at (%.3f, %.3f)", e.Tick, e.Type, e.Index, e.Role, e.Pos[0], e.Pos[1])
	})
	log.Printf("round %d started seed=%d", s.Round, RoundSeed(s.Seed, s.Round))
}

// Step advances one tick and records the round's outcome once decided. The
// simulation keeps running after that so projectiles in flight finish their
// paths.
func (s *GameSession) Step() {
	s.Sim.Step()
	s.Particles.Update()

	if s.State != StatePlaying {
		return
	}
	switch out := s.Sim.Outcome(); out {
	case sim.OutcomePlayerDown, sim.OutcomeCleared:
		s.State = StateRoundOver
		s.outcome = out
		if out == sim.OutcomeCleared {
			s.audio.Play(SoundCleared)
		}
		log.Printf("round %d over: %s score=%d tick=%d", s.Round, out, s.Sim.Score(), s.Sim.Tick)
	}
}

// Status is a one-line summary for the window title.
func (s *GameSession) Status() string {
	formation, falling := s.Sim.Remaining()
	status := "playing"
	if s.State == StateRoundOver {
		status = s.outcome.String() + " (R to restart)"
	}
	return fmt.Sprintf("%s | round %d | score %d | enemies %d | %s",
		windowTitle, s.Round, s.Sim.Score(), formation+falling, status)
}

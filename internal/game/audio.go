package game

import (
	"fmt"
	"io"
	"log"
	"math"
	"sync/atomic"
	"time"

	"github.com/hajimehoshi/oto/v2"

	"invaders/internal/sim"
)

const (
	SampleRate   = 44100
	ChannelCount = 2
	BitDepth     = 0 // 32-bit float (oto.FormatFloat32LE)
)

// SoundKind identifies different sound effects.
type SoundKind int

const (
	SoundShot SoundKind = iota
	SoundLaser
	SoundEnemyShot
	SoundEnemyLaser
	SoundExplosion
	SoundPlayerDown
	SoundDive
	SoundLasersArmed
	SoundCleared
	soundKindCount
)

// AudioSystem plays procedurally generated sound effects. Samples are
// synthesized once at start-up.
type AudioSystem struct {
	ctx     *oto.Context
	ready   chan struct{}
	samples [soundKindCount][]byte
	volume  float64

	// active caps overlapping effects so a burst of kills does not clip.
	active int32
}

const maxVoices = 6

// InitAudio opens the output device and pre-renders every effect.
func InitAudio() (*AudioSystem, error) {
	ctx, ready, err := oto.NewContext(SampleRate, ChannelCount, BitDepth)
	if err != nil {
		return nil, fmt.Errorf("audio context: %w", err)
	}
	a := &AudioSystem{ctx: ctx, ready: ready, volume: 0.5}
	for k := SoundKind(0); k < soundKindCount; k++ {
		a.samples[k] = generateSound(k)
	}
	return a, nil
}

// Play starts a sound effect and returns at once. It is a no-op while the
// device is still starting, or on a nil system.
func (a *AudioSystem) Play(kind SoundKind) {
	if a == nil || kind < 0 || kind >= soundKindCount {
		return
	}
	select {
	case <-a.ready:
	default:
		return
	}
	if atomic.AddInt32(&a.active, 1) > maxVoices {
		atomic.AddInt32(&a.active, -1)
		return
	}
	go func() {
		defer atomic.AddInt32(&a.active, -1)
		player := a.ctx.NewPlayer(&soundReader{data: a.samples[kind]})
		player.SetVolume(a.volume)
		player.Play()
		for player.IsPlaying() {
			time.Sleep(10 * time.Millisecond)
		}
		if err := player.Close(); err != nil {
			log.Printf("audio: close player: %v", err)
		}
	}()
}

// Bind plays effects for simulation events.
func (a *AudioSystem) Bind(bus *sim.EventBus) {
	bus.Subscribe(sim.EventPlayerShot, func(e sim.Event) {
		if e.Role.IsLaser() {
			a.Play(SoundLaser)
			return
		}
		a.Play(SoundShot)
	})
	bus.Subscribe(sim.EventEnemyShot, func(e sim.Event) {
		if e.Role.IsLaser() {
			a.Play(SoundEnemyLaser)
			return
		}
		a.Play(SoundEnemyShot)
	})
	bus.Subscribe(sim.EventEnemyKilled, func(sim.Event) { a.Play(SoundExplosion) })
	bus.Subscribe(sim.EventPlayerKilled, func(sim.Event) { a.Play(SoundPlayerDown) })
	bus.Subscribe(sim.EventEnemyDetached, func(sim.Event) { a.Play(SoundDive) })
	bus.Subscribe(sim.EventLasersArmed, func(sim.Event) { a.Play(SoundLasersArmed) })
}

type soundReader struct {
	data []byte
	pos  int
}

func (r *soundReader) Read(p []byte) (int, error) {
	if r.pos >= len(r.data) {
		return 0, io.EOF
	}
	n := copy(p, r.data[r.pos:])
	r.pos += n
	return n, nil
}

// putStereoF32 writes a [-1,1] sample as float32 LE to both stereo channels at frame i.
func putStereoF32(buf []byte, i int, sample float64) {
	v := math.Float32bits(float32(sample))
	for ch := 0; ch < 2; ch++ {
		o := i*8 + ch*4
		buf[o] = byte(v)
		buf[o+1] = byte(v >> 8)
		buf[o+2] = byte(v >> 16)
		buf[o+3] = byte(v >> 24)
	}
}

// softSat applies gentle tanh-like saturation.
func softSat(x float64) float64 {
	if x > 1.0 {
		return 1.0 - 0.5/x
	}
	if x < -1.0 {
		return -1.0 + 0.5/(-x)
	}
	return x - x*x*x/3.0
}

// adsr returns an envelope at normalized progress [0,1].
// attack/decay/release are fractions of the total duration.
func adsr(progress, attack, decay, sustain, release float64) float64 {
	switch {
	case progress < attack:
		return progress / attack
	case progress < attack+decay:
		return 1.0 - (progress-attack)/decay*(1.0-sustain)
	case progress < 1.0-release:
		return sustain
	default:
		return sustain * (1.0 - (progress-(1.0-release))/release)
	}
}

// fm returns an FM-synthesized sample.
func fm(t, carrier, modRatio, modIdx float64) float64 {
	mod := math.Sin(2 * math.Pi * carrier * modRatio * t)
	return math.Sin(2*math.Pi*carrier*t + modIdx*mod)
}

// lcg advances an LCG seed and returns a noise sample in [-1,1].
func lcg(seed *uint64) float64 {
	*seed = *seed*6364136223846793005 + 1442695040888963407
	return float64(int64(*seed>>33)-int64(1<<30)) / float64(1<<30)
}

// synth renders dur seconds by calling voice with time and normalized
// progress for every frame.
func synth(dur float64, voice func(t, p float64) float64) []byte {
	n := int(dur * SampleRate)
	buf := make([]byte, n*8)
	for i := 0; i < n; i++ {
		t := float64(i) / SampleRate
		p := float64(i) / float64(n)
		putStereoF32(buf, i, softSat(voice(t, p)))
	}
	return buf
}

func generateSound(kind SoundKind) []byte {
	switch kind {
	case SoundShot:
		return genShot()
	case SoundLaser:
		return genLaser(1.0)
	case SoundEnemyShot:
		return genEnemyShot()
	case SoundEnemyLaser:
		return genLaser(0.6)
	case SoundExplosion:
		return genExplosion()
	case SoundPlayerDown:
		return genPlayerDown()
	case SoundDive:
		return genDive()
	case SoundLasersArmed:
		return genArmed()
	case SoundCleared:
		return genCleared()
	}
	return nil
}

// genShot: short descending zap.
func genShot() []byte {
	return synth(0.08, func(t, p float64) float64 {
		env := adsr(p, 0.01, 0.4, 0.2, 0.3)
		freq := 1500 - 900*p
		return fm(t, freq, 1.0, 1.8*env) * env * 0.35
	})
}

// genEnemyShot: lower, buzzier zap so the two sides are told apart.
func genEnemyShot() []byte {
	return synth(0.10, func(t, p float64) float64 {
		env := adsr(p, 0.01, 0.5, 0.1, 0.3)
		freq := 620 - 300*p
		return fm(t, freq, 0.5, 3.0*env) * env * 0.3
	})
}

// genLaser: sustained detuned hum with a bright attack. pitch scales the
// carrier so enemy lasers sit lower.
func genLaser(pitch float64) []byte {
	return synth(0.45, func(t, p float64) float64 {
		env := adsr(p, 0.02, 0.2, 0.6, 0.35)
		f := 220 * pitch
		s := fm(t, f, 2.01, 2.5*env) * 0.25
		s += fm(t, f*1.005, 3.0, 1.2) * 0.15
		s += math.Sin(2*math.Pi*f*4*t) * math.Exp(-p*12) * 0.1
		return s * env
	})
}

// genExplosion: noise burst over a falling sub thump.
func genExplosion() []byte {
	seed := uint64(424242)
	lp := 0.0
	return synth(0.30, func(t, p float64) float64 {
		lp = lp*0.8 + lcg(&seed)*0.2
		thumpFreq := 140 * math.Pow(0.2, p)
		thump := math.Sin(2*math.Pi*thumpFreq*t) * math.Exp(-p*9) * 0.5
		return (lp*0.7*math.Exp(-p*5) + thump) * 0.9
	})
}

// genPlayerDown: slow descending minor triad.
func genPlayerDown() []byte {
	notes := []struct{ freq, onset float64 }{
		{329.63, 0.00}, // E4
		{261.63, 0.14}, // C4
		{220.00, 0.28}, // A3
	}
	const dur = 0.75
	return synth(dur, func(t, p float64) float64 {
		s := 0.0
		for _, note := range notes {
			start := note.onset / dur
			if p < start {
				continue
			}
			np := (p - start) / (1 - start)
			env := adsr(np, 0.008, 0.25, 0.3, 0.45)
			freq := note.freq * (1 - np*0.025)
			s += fm(t, freq, 2.0, 2.0*env) * env * 0.32
		}
		return s
	})
}

// genDive: falling whistle.
func genDive() []byte {
	return synth(0.35, func(t, p float64) float64 {
		env := adsr(p, 0.05, 0.3, 0.5, 0.3)
		freq := 900 * math.Pow(0.4, p)
		return math.Sin(2*math.Pi*freq*t) * env * 0.22
	})
}

// genArmed: two rising bell notes.
func genArmed() []byte {
	return synth(0.25, func(t, p float64) float64 {
		freq := 660.0
		if p > 0.5 {
			freq = 990
		}
		np := math.Mod(p*2, 1)
		env := adsr(np, 0.01, 0.6, 0.1, 0.3)
		return fm(t, freq, 3.5, 4*env) * env * 0.25
	})
}

// genCleared: ascending arpeggio.
func genCleared() []byte {
	notes := []float64{440, 554.37, 659.25, 880}
	return synth(0.6, func(t, p float64) float64 {
		i := min(int(p*float64(len(notes))), len(notes)-1)
		np := p*float64(len(notes)) - float64(i)
		env := adsr(np, 0.01, 0.5, 0.2, 0.3)
		return fm(t, notes[i], 3.5, 5*env) * env * 0.28
	})
}

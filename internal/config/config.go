package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Environment variables read by Load.
const (
	EnvSeed     = "INVADERS_SEED"
	EnvTickRate = "INVADERS_TICK_RATE"
	EnvWindow   = "INVADERS_WINDOW"
	EnvMute     = "INVADERS_MUTE"
	EnvDebug    = "INVADERS_DEBUG"
)

// Defaults.
const (
	DefaultTickRate   = 60
	DefaultWindowSize = 800
	MinWindowSize     = 64

	// MaxCatchUpTicks bounds how many ticks one frame may run after a stall.
	MaxCatchUpTicks = 5
)

type Config struct {
	Seed       uint64
	TickRate   int
	WindowSize int
	Mute       bool
	Debug      bool
}

// TickDuration is the wall time covered by one simulation tick.
func (c Config) TickDuration() time.Duration {
	return time.Second / time.Duration(c.TickRate)
}

// Load reads an optional .env file from the working directory and then the
// environment. Variables already set in the environment win over .env.
func Load() (Config, error) {
	return LoadFiles(".env")
}

// LoadFiles is Load with explicit .env paths. Missing files are skipped.
func LoadFiles(files ...string) (Config, error) {
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}

	cfg := Config{
		Seed:       uint64(time.Now().UnixNano()),
		TickRate:   DefaultTickRate,
		WindowSize: DefaultWindowSize,
	}

	var err error
	if v, ok := os.LookupEnv(EnvSeed); ok {
		if cfg.Seed, err = strconv.ParseUint(v, 10, 64); err != nil {
			return Config{}, fmt.Errorf("%s: %w", EnvSeed, err)
		}
	}
	if v, ok := os.LookupEnv(EnvTickRate); ok {
		if cfg.TickRate, err = strconv.Atoi(v); err != nil {
			return Config{}, fmt.Errorf("%s: %w", EnvTickRate, err)
		}
		if cfg.TickRate <= 0 {
			return Config{}, fmt.Errorf("%s: must be positive, got %d", EnvTickRate, cfg.TickRate)
		}
	}
	if v, ok := os.LookupEnv(EnvWindow); ok {
		if cfg.WindowSize, err = strconv.Atoi(v); err != nil {
			return Config{}, fmt.Errorf("%s: %w", EnvWindow, err)
		}
		if cfg.WindowSize < MinWindowSize {
			return Config{}, fmt.Errorf("%s: must be at least %d, got %d", EnvWindow, MinWindowSize, cfg.WindowSize)
		}
	}
	if v, ok := os.LookupEnv(EnvMute); ok {
		if cfg.Mute, err = strconv.ParseBool(v); err != nil {
			return Config{}, fmt.Errorf("%s: %w", EnvMute, err)
		}
	}
	if v, ok := os.LookupEnv(EnvDebug); ok {
		if cfg.Debug, err = strconv.ParseBool(v); err != nil {
			return Config{}, fmt.Errorf("%s: %w", EnvDebug, err)
		}
	}
	return cfg, nil
}

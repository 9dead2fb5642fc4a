package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"invaders/internal/config"
	"invaders/internal/game"
)

func main() {
	debug := flag.Bool("debug", false, "write a debug log to logs/invaders.log")
	seed := flag.Uint64("seed", 0, "simulation seed (0 = from environment or clock)")
	flag.Parse()

	os.Exit(run(*debug, *seed))
}

func run(debug bool, seed uint64) int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		return 2
	}
	if debug {
		cfg.Debug = true
	}
	if seed != 0 {
		cfg.Seed = seed
	}

	if f := config.SetupLogging(cfg.Debug); f != nil {
		defer f.Close()
	}
	log.Printf("starting seed=%d tick_rate=%d window=%d mute=%t", cfg.Seed, cfg.TickRate, cfg.WindowSize, cfg.Mute)

	if err := game.RunDesktop(cfg); err != nil {
		log.Printf("fatal: %v", err)
		fmt.Fprintf(os.Stderr, "invaders: %v\n", err)
		return 1
	}
	return 0
}

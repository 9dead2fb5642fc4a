package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"invaders/internal/sim"
)

type runStats struct {
	runIndex int
	seed     uint64

	outcome     sim.Outcome
	outcomeTick int
	score       int
	ticks       int

	firstDiveTick  int
	firstShotTick  int
	dives          int
	enemyShots     int
	playerShots    int
	escaped        int
	formationTurns int
}

func main() {
	var runs int
	var ticks int
	var seedBase uint64
	var seedStep uint64
	var lasers bool
	var dumpDir string
	var verbose bool

	flag.IntVar(&runs, "runs", 5, "number of headless simulation runs")
	flag.IntVar(&ticks, "ticks", 6000, "maximum ticks per run")
	flag.Uint64Var(&seedBase, "seed-base", 42, "base RNG seed for run 1")
	flag.Uint64Var(&seedStep, "seed-step", 1, "seed increment between runs")
	flag.BoolVar(&lasers, "lasers", false, "arm lasers on the first tick")
	flag.StringVar(&dumpDir, "dump", "", "write a msgpack snapshot of each run's final state to this directory")
	flag.BoolVar(&verbose, "v", false, "print every event of every run")
	flag.Parse()

	if runs <= 0 {
		fmt.Println("error: -runs must be > 0")
		os.Exit(2)
	}
	if ticks <= 0 {
		fmt.Println("error: -ticks must be > 0")
		os.Exit(2)
	}
	if dumpDir != "" {
		if err := os.MkdirAll(dumpDir, 0o755); err != nil {
			fmt.Printf("error: %v\n", err)
			os.Exit(1)
		}
	}

	fmt.Printf("=== Headless Invaders Report ===\n")
	fmt.Printf("runs=%d ticks=%d seed_base=%d seed_step=%d lasers=%t\n\n", runs, ticks, seedBase, seedStep, lasers)

	all := make([]runStats, 0, runs)
	for i := 0; i < runs; i++ {
		seed := seedBase + uint64(i)*seedStep
		s, log := newRun(seed)
		rs := playRun(s, log, i+1, seed, ticks, lasers)
		all = append(all, rs)
		printRun(rs)
		if verbose {
			fmt.Print(log.Dump())
			fmt.Println()
		}
		if dumpDir != "" {
			if err := dumpSnapshot(s, filepath.Join(dumpDir, fmt.Sprintf("run-%03d.msgpack", i+1))); err != nil {
				fmt.Printf("error: %v\n", err)
				os.Exit(1)
			}
		}
	}

	printAggregate(all)
}

func newRun(seed uint64) (*sim.State, *sim.SimLog) {
	s := sim.New(sim.WithSeed(seed))
	return s, sim.NewSimLog(s.Bus)
}

// playRun drives the autopilot until the round is decided or the tick budget
// runs out.
func playRun(s *sim.State, log *sim.SimLog, runIndex int, seed uint64, ticks int, lasers bool) runStats {
	rs := runStats{runIndex: runIndex, seed: seed, outcomeTick: -1}
	var pilot autopilot
	for i := 0; i < ticks; i++ {
		in := pilot.decide(s)
		in.Lasers = lasers && i == 0
		s.SetInput(in)
		s.Step()
		if rs.outcomeTick < 0 && s.Outcome() != sim.OutcomePlaying {
			rs.outcomeTick = s.Tick
			break
		}
	}

	rs.outcome = s.Outcome()
	rs.score = s.Score()
	rs.ticks = s.Tick
	rs.firstDiveTick = firstTick(log.Entries(), "enemy_detached")
	rs.firstShotTick = firstTick(log.Entries(), "enemy_shot")
	rs.dives = log.Count("enemy_detached")
	rs.enemyShots = log.Count("enemy_shot")
	rs.playerShots = log.Count("player_shot")
	rs.escaped = log.Count("enemy_escaped")
	rs.formationTurns = log.Count("formation_turned")
	return rs
}

func firstTick(entries []sim.LogEntry, key string) int {
	for _, e := range entries {
		if e.Key == key {
			return e.Tick
		}
	}
	return -1
}

func dumpSnapshot(s *sim.State, path string) error {
	b, err := s.Snapshot().Encode()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}

func printRun(rs runStats) {
	fmt.Printf("--- Run %d (seed=%d) ---\n", rs.runIndex, rs.seed)
	fmt.Printf("outcome=%s at_tick=%d score=%d ticks=%d\n", rs.outcome, rs.outcomeTick, rs.score, rs.ticks)
	fmt.Printf("phase_markers: first_dive=%d first_enemy_shot=%d\n", rs.firstDiveTick, rs.firstShotTick)
	fmt.Printf("event_totals: dives=%d enemy_shots=%d player_shots=%d escaped=%d formation_turns=%d\n\n",
		rs.dives, rs.enemyShots, rs.playerShots, rs.escaped, rs.formationTurns)
}

func printAggregate(all []runStats) {
	outcomes := map[sim.Outcome]int{}
	scores := make([]int, 0, len(all))
	decided := make([]int, 0, len(all))
	totalDives, totalShots, totalEscaped := 0, 0, 0
	for _, rs := range all {
		outcomes[rs.outcome]++
		scores = append(scores, rs.score)
		if rs.outcomeTick >= 0 {
			decided = append(decided, rs.outcomeTick)
		}
		totalDives += rs.dives
		totalShots += rs.enemyShots
		totalEscaped += rs.escaped
	}

	fmt.Printf("=== Aggregate (%d runs) ===\n", len(all))
	fmt.Printf("outcomes: playing=%d player_down=%d cleared=%d\n",
		outcomes[sim.OutcomePlaying], outcomes[sim.OutcomePlayerDown], outcomes[sim.OutcomeCleared])
	fmt.Printf("score: min=%d median=%d max=%d mean=%.1f\n", minInt(scores), median(scores), maxInt(scores), mean(scores))
	if len(decided) > 0 {
		fmt.Printf("decided_tick: min=%d median=%d max=%d\n", minInt(decided), median(decided), maxInt(decided))
	}
	fmt.Printf("totals: dives=%d enemy_shots=%d escaped=%d\n", totalDives, totalShots, totalEscaped)
}

func median(v []int) int {
	if len(v) == 0 {
		return 0
	}
	s := append([]int(nil), v...)
	sort.Ints(s)
	return s[len(s)/2]
}

func mean(v []int) float64 {
	if len(v) == 0 {
		return 0
	}
	sum := 0
	for _, x := range v {
		sum += x
	}
	return float64(sum) / float64(len(v))
}

func minInt(v []int) int {
	if len(v) == 0 {
		return 0
	}
	m := v[0]
	for _, x := range v[1:] {
		m = min(m, x)
	}
	return m
}

func maxInt(v []int) int {
	if len(v) == 0 {
		return 0
	}
	m := v[0]
	for _, x := range v[1:] {
		m = max(m, x)
	}
	return m
}

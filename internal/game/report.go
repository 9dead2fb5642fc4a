package game

import (
	"fmt"
	"log"

	"github.com/atotto/clipboard"

	"invaders/internal/sim"
)

// copyReport puts the simulation's debug report on the system clipboard.
func copyReport(s *sim.State) error {
	if clipboard.Unsupported {
		return fmt.Errorf("clipboard unsupported on this system")
	}
	report := s.DebugReport()
	if err := clipboard.WriteAll(report); err != nil {
		return fmt.Errorf("copy report: %w", err)
	}
	log.Printf("debug report copied (%d bytes)", len(report))
	return nil
}

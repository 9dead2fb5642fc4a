package config

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"
)

const (
	logDir      = "logs"
	logFileName = "invaders.log"
	maxLogSize  = 10 * 1024 * 1024
)

// logSetupErr receives the one-line notice when the debug log cannot be opened.
var logSetupErr io.Writer = os.Stderr

// SetupLogging routes the standard logger to logs/invaders.log when debug is
// set and discards it otherwise. A log file over maxLogSize is renamed with a
// timestamp before a fresh one is opened. The returned file is nil when
// logging is off or the file could not be opened; the caller closes it.
func SetupLogging(debug bool) *os.File {
	if !debug {
		log.SetOutput(io.Discard)
		return nil
	}

	if err := os.MkdirAll(logDir, 0o755); err != nil {
		fmt.Fprintf(logSetupErr, "debug log disabled: %v\n", err)
		log.SetOutput(io.Discard)
		return nil
	}

	path := filepath.Join(logDir, logFileName)
	if info, err := os.Stat(path); err == nil && info.Size() > maxLogSize {
		rotated := filepath.Join(logDir, fmt.Sprintf("invaders-%s.log", time.Now().Format("20060102-150405")))
		_ = os.Rename(path, rotated)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(logSetupErr, "debug log disabled: %v\n", err)
		log.SetOutput(io.Discard)
		return nil
	}
	log.SetOutput(f)
	log.SetFlags(log.Ldate | log.Ltime | log.Lmicroseconds)
	log.Printf("logging started pid=%d", os.Getpid())
	return f
}

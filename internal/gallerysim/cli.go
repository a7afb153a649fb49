package gallerysim

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/okian/vitrine/pkg/logger"
)

// File permission constants.
const (
	logFilePermission = 0600
)

// SetupLogging configures logging to both console and file.
// If logFile is empty, a timestamped filename is generated.
func SetupLogging(logFile string) error {
	// Initialize the logger first
	if err := logger.Init(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	if logFile == "" {
		timestamp := time.Now().Format("20060102_150405")
		logFile = "gallery_sim_" + timestamp + ".log"
	}

	file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFilePermission)
	if err != nil {
		return fmt.Errorf("failed to create log file: %w", err)
	}

	multiWriter := io.MultiWriter(os.Stdout, file)
	log.SetOutput(multiWriter)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	logger.Get().Info(context.Background(), "logging to file", logger.String("logFile", logFile))
	return nil
}

// ShowHelp prints usage information for the gallery simulation tool.
func ShowHelp() {
	os.Stdout.WriteString(`Vitrine Gallery Simulator
=========================

Orbits a virtual camera around the project gallery and reports occlusion,
priority, and opacity per frame. Runs against the in-process engine or a
live server.

Usage:
  go run cmd/gallery-sim/main.go [options]

Options:
  -mode string
        Simulation mode: local, http, or stream (default "local")
  -url string
        Base URL of the service, for http and stream modes (default "http://localhost:5000")
  -frames int
        Number of camera samples (default 360)
  -radius float
        Camera orbit radius (default 12)
  -height float
        Camera height (default 7)
  -interval duration
        Simulated time between frames (default 16ms)
  -timeout duration
        HTTP request timeout (default 10s)
  -width float
        Viewport width for anchor projection (default 1600)
  -height-px float
        Viewport height for anchor projection (default 900)
  -log string
        Log file for simulation output (default: gallery_sim_TIMESTAMP.log)
  -verbose
        Log every frame instead of transitions only
  -help
        Show this help message

Examples:
  # One full in-process orbit at 60fps pacing
  go run cmd/gallery-sim/main.go

  # Drive a running server's frame endpoint
  go run cmd/gallery-sim/main.go -mode http -url http://localhost:5000

  # Hold a WebSocket stream open for the whole orbit
  go run cmd/gallery-sim/main.go -mode stream -frames 720 -verbose
`)
}

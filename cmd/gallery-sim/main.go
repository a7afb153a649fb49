package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/okian/vitrine/internal/gallerysim"
)

// Default configuration constants.
const (
	defaultFrames      = 360
	defaultOrbitRadius = 12.0
	defaultOrbitHeight = 7.0
	defaultInterval    = 16 * time.Millisecond
	defaultTimeout     = 10 * time.Second
	defaultWidth       = 1600.0
	defaultHeight      = 900.0
	defaultSimTimeout  = 10 * time.Minute
)

func main() {
	var (
		baseURL  = flag.String("url", "http://localhost:5000", "Base URL of the service")
		mode     = flag.String("mode", gallerysim.ModeLocal, "Simulation mode: local, http, or stream")
		frames   = flag.Int("frames", defaultFrames, "Number of camera samples")
		radius   = flag.Float64("radius", defaultOrbitRadius, "Camera orbit radius")
		height   = flag.Float64("height", defaultOrbitHeight, "Camera height")
		interval = flag.Duration("interval", defaultInterval, "Simulated time between frames")
		timeout  = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		width    = flag.Float64("width", defaultWidth, "Viewport width for anchor projection")
		heightPx = flag.Float64("height-px", defaultHeight, "Viewport height for anchor projection")
		logFile  = flag.String("log", "", "Log file for simulation output (default: gallery_sim_TIMESTAMP.log)")
		verbose  = flag.Bool("verbose", false, "Log every frame instead of transitions only")
		help     = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		gallerysim.ShowHelp()
		return
	}

	// Setup logging
	if err := gallerysim.SetupLogging(*logFile); err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		return
	}

	// Create context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), defaultSimTimeout)
	defer cancel()

	// Create simulation configuration
	config := &gallerysim.Config{
		BaseURL:     *baseURL,
		Mode:        *mode,
		Frames:      *frames,
		OrbitRadius: *radius,
		OrbitHeight: *height,
		Interval:    *interval,
		Timeout:     *timeout,
		Width:       *width,
		Height:      *heightPx,
		LogFile:     *logFile,
		Verbose:     *verbose,
	}

	// Run the simulation
	if err := gallerysim.Run(ctx, config); err != nil {
		os.Stderr.WriteString("Simulation failed: " + err.Error() + "\n")
		return
	}
}

package gallerysim

import "time"

// Simulation modes.
const (
	ModeLocal  = "local"  // run the engine in-process
	ModeHTTP   = "http"   // POST each frame to /api/gallery/frame
	ModeStream = "stream" // drive /api/gallery/stream over WebSocket
)

// Config holds configuration for the gallery simulation
type Config struct {
	BaseURL     string        // Base URL of the service (http and stream modes)
	Mode        string        // local, http, or stream
	Frames      int           // Number of camera samples to run
	OrbitRadius float64       // Camera orbit radius
	OrbitHeight float64       // Camera height above the scene
	Interval    time.Duration // Simulated time between frames
	Timeout     time.Duration // HTTP request timeout
	Width       float64       // Viewport width for anchor projection
	Height      float64       // Viewport height for anchor projection
	LogFile     string        // Log file for simulation output
	Verbose     bool          // Enable verbose logging
}

// Snapshot mirrors the frame shape returned by the gallery endpoints.
type Snapshot struct {
	Occluded    []bool    `json:"occluded"`
	Priority    []int     `json:"priority"`
	Opacity     []float64 `json:"opacity"`
	Interactive []bool    `json:"interactive"`
}

// Stats holds simulation statistics
type Stats struct {
	FramesComputed   int
	FramesFailed     int
	OcclusionChanges int
	OccludedPerCard  []int
	StartTime        time.Time
	EndTime          time.Time
	Duration         time.Duration
}

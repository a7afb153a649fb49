package gallerysim

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/okian/vitrine/internal/domain/gallery"
	"github.com/okian/vitrine/internal/domain/overlay"
)

// Run executes the simulation described by config and reports a summary.
func Run(ctx context.Context, config *Config) error {
	stats := &Stats{StartTime: time.Now()}

	log.Printf("🎥 Orbiting camera: mode=%s frames=%d radius=%.1f height=%.1f",
		config.Mode, config.Frames, config.OrbitRadius, config.OrbitHeight)

	var err error
	switch config.Mode {
	case ModeLocal:
		err = runLocal(ctx, config, stats)
	case ModeHTTP:
		err = runHTTP(ctx, config, stats)
	case ModeStream:
		err = runStream(ctx, config, stats)
	default:
		return fmt.Errorf("unknown mode %q", config.Mode)
	}
	if err != nil {
		return err
	}

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	report(stats)
	return nil
}

// runLocal drives an in-process engine and fader through one orbit.
func runLocal(ctx context.Context, config *Config, stats *Stats) error {
	engine := gallery.New(
		gallery.Ring(gallery.DefaultCardCount, gallery.DefaultRingRadius, gallery.DefaultCardHeight),
		gallery.DefaultObstaclePosition,
	)
	fader := gallery.NewFader(gallery.DefaultCardCount)

	var prev []bool
	for i := 0; i < config.Frames; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		camera := orbitCamera(i, config.Frames, config.OrbitRadius, config.OrbitHeight)
		frame := engine.Update(camera)
		fader.Advance(frame, config.Interval)

		snapshot := Snapshot{
			Occluded: frame.Occluded,
			Priority: frame.Priority,
			Opacity:  fader.Opacities(),
		}
		snapshot.Interactive = make([]bool, len(frame.Occluded))
		for j, occluded := range frame.Occluded {
			snapshot.Interactive[j] = overlay.Gate(occluded)
		}

		prev = observe(config, stats, i, snapshot, prev)
	}
	return nil
}

// observe folds one frame into the stats and logs transitions.
func observe(config *Config, stats *Stats, frame int, snapshot Snapshot, prev []bool) []bool {
	stats.FramesComputed++

	if stats.OccludedPerCard == nil {
		stats.OccludedPerCard = make([]int, len(snapshot.Occluded))
	}
	changed := len(prev) != len(snapshot.Occluded)
	for i, occluded := range snapshot.Occluded {
		if occluded {
			stats.OccludedPerCard[i]++
		}
		if !changed && prev[i] != occluded {
			changed = true
		}
	}
	if changed && prev != nil {
		stats.OcclusionChanges++
	}

	if config.Verbose || (changed && prev != nil) {
		log.Printf("frame %d: occluded=%v priority=%v", frame, snapshot.Occluded, snapshot.Priority)
	}

	out := make([]bool, len(snapshot.Occluded))
	copy(out, snapshot.Occluded)
	return out
}

// report prints the final simulation summary.
func report(stats *Stats) {
	log.Printf(`✅ Simulation completed:
   Frames: %d (failed: %d)
   Occlusion transitions: %d
   Occluded frames per card: %v
   Duration: %v
`, stats.FramesComputed, stats.FramesFailed, stats.OcclusionChanges, stats.OccludedPerCard, stats.Duration)
}

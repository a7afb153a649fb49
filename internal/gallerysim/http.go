package gallerysim

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/okian/vitrine/internal/domain/geom"
)

// frameRequest mirrors the gallery frame endpoint's request schema.
type frameRequest struct {
	Camera   geom.Vec3 `json:"camera"`
	Viewport *viewport `json:"viewport,omitempty"`
}

type viewport struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// runHTTP posts each camera sample to the frame endpoint.
func runHTTP(ctx context.Context, config *Config, stats *Stats) error {
	client := &http.Client{Timeout: config.Timeout}
	url := config.BaseURL + "/api/gallery/frame"

	var prev []bool
	for i := 0; i < config.Frames; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		snapshot, err := postFrame(ctx, client, url, frameRequest{
			Camera:   orbitCamera(i, config.Frames, config.OrbitRadius, config.OrbitHeight),
			Viewport: &viewport{Width: config.Width, Height: config.Height},
		})
		if err != nil {
			stats.FramesFailed++
			continue
		}

		prev = observe(config, stats, i, snapshot, prev)
	}
	return nil
}

// postFrame submits one camera sample and decodes the resulting snapshot.
func postFrame(ctx context.Context, client *http.Client, url string, reqBody frameRequest) (Snapshot, error) {
	body, err := json.Marshal(reqBody)
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to marshal frame request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return Snapshot{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return Snapshot{}, fmt.Errorf("frame request failed: status %d: %s", resp.StatusCode, string(detail))
	}

	var snapshot Snapshot
	if err := json.NewDecoder(resp.Body).Decode(&snapshot); err != nil {
		return Snapshot{}, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	return snapshot, nil
}

// pace sleeps for the configured frame interval, honoring cancellation.
func pace(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(interval):
		return nil
	}
}

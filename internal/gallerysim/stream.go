package gallerysim

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/gorilla/websocket"
)

// runStream holds one WebSocket open for the whole orbit, sending a camera
// sample per frame and pacing sends with the configured interval so the
// server-side fade advances in real time.
func runStream(ctx context.Context, config *Config, stats *Stats) error {
	streamURL, err := wsURL(config.BaseURL)
	if err != nil {
		return err
	}

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, streamURL, nil)
	if err != nil {
		return fmt.Errorf("failed to dial stream: %w", err)
	}
	defer conn.Close()

	var prev []bool
	for i := 0; i < config.Frames; i++ {
		req := frameRequest{
			Camera:   orbitCamera(i, config.Frames, config.OrbitRadius, config.OrbitHeight),
			Viewport: &viewport{Width: config.Width, Height: config.Height},
		}
		if err := conn.WriteJSON(req); err != nil {
			return fmt.Errorf("stream write failed at frame %d: %w", i, err)
		}

		var snapshot Snapshot
		if err := conn.ReadJSON(&snapshot); err != nil {
			return fmt.Errorf("stream read failed at frame %d: %w", i, err)
		}

		prev = observe(config, stats, i, snapshot, prev)

		if err := pace(ctx, config.Interval); err != nil {
			return err
		}
	}

	return conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}

// wsURL converts the configured base URL into the stream's WebSocket URL.
func wsURL(baseURL string) (string, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("invalid base URL: %w", err)
	}
	switch {
	case u.Scheme == "https":
		u.Scheme = "wss"
	case strings.HasPrefix(u.Scheme, "ws"):
		// Already a WebSocket URL.
	default:
		u.Scheme = "ws"
	}
	u.Path = "/api/gallery/stream"
	return u.String(), nil
}

// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/okian/vitrine/pkg/logger"
	"github.com/okian/vitrine/pkg/metrics"
)

const (
	streamWriteTimeout   = 10 * time.Second
	streamReadLimitBytes = 4 << 10
)

// StreamHandler serves a WebSocket where each client message carries a camera
// position and each reply carries the resulting overlay frame. Fade state is
// advanced by the wall-clock time between messages, so slow clients get the
// same fade curve as fast ones.
type StreamHandler struct {
	deps     GalleryDependencies
	upgrader websocket.Upgrader
}

// NewStreamHandler creates a new gallery stream handler.
func NewStreamHandler(deps GalleryDependencies) *StreamHandler {
	return &StreamHandler{
		deps: deps,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Origin is enforced by the CORS middleware before the upgrade.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

// streamRequest is one client message on the gallery stream. It shares the
// schema of POST /api/gallery/frame.
type streamRequest = frameRequest

// HandleStream handles GET /api/gallery/stream upgrade requests.
func (h *StreamHandler) HandleStream(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Get().Warn(r.Context(), "gallery stream upgrade failed", logger.Error(err))
		return
	}

	metrics.IncStreamConnections()
	session := h.deps.NewGallerySession()
	defer func() {
		session.Close()
		metrics.DecStreamConnections()
		_ = conn.Close()
	}()

	conn.SetReadLimit(streamReadLimitBytes)
	last := time.Now()

	for {
		var req streamRequest
		if err := conn.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Get().Debug(r.Context(), "gallery stream closed", logger.Error(err))
			}
			return
		}

		now := time.Now()
		dt := now.Sub(last)
		last = now

		snapshot := session.Step(req.Camera, req.Viewport, dt)

		_ = conn.SetWriteDeadline(time.Now().Add(streamWriteTimeout))
		if err := conn.WriteJSON(snapshot); err != nil {
			logger.Get().Debug(r.Context(), "gallery stream write failed", logger.Error(err))
			return
		}
	}
}

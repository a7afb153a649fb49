// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/netip"
	"strings"
	"time"

	"github.com/okian/vitrine/internal/domain/contact"
	"github.com/okian/vitrine/internal/domain/geom"
	"github.com/okian/vitrine/internal/domain/overlay"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/okian/vitrine/pkg/metrics"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	Relayer
	GalleryDependencies
	StatsProvider
	Environment() string
}

// Relayer runs the contact pipeline: validation, rate limiting, forwarding.
type Relayer interface {
	// Relay forwards a submission, keyed by client identity for rate
	// limiting. host is the request host used for the sender fallback.
	Relay(ctx context.Context, clientKey, host string, sub contact.Submission) error
}

// GalleryDependencies expose the occlusion engine to the gallery endpoints.
type GalleryDependencies interface {
	// ComputeFrame computes a single occlusion frame for a camera position.
	ComputeFrame(camera geom.Vec3, viewport *overlay.Size) overlay.Snapshot

	// NewGallerySession creates connection-scoped engine state for streaming.
	NewGallerySession() GallerySession
}

// GallerySession is one stream connection's engine and fader. Close releases
// the session when the connection ends.
type GallerySession interface {
	Step(camera geom.Vec3, viewport *overlay.Size, dt time.Duration) overlay.Snapshot
	Close()
}

// Snapshot mirrors the read shape returned by gallery frame queries.
type Snapshot = overlay.Snapshot

// Server wires HTTP routes for the portfolio API.
type Server struct {
	contactHandler *ContactHandler
	healthHandler  *HealthHandler
	statsHandler   *StatsHandler
	frameHandler   *FrameHandler
	streamHandler  *StreamHandler

	allowedOrigins []string
}

// ServerOption applies a configuration option to the Server.
type ServerOption func(*Server)

// WithAllowedOrigins sets the CORS allow-list. Empty means no cross-origin
// requests are accepted.
func WithAllowedOrigins(origins []string) ServerOption {
	return func(s *Server) {
		s.allowedOrigins = origins
	}
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, opts ...ServerOption) *Server {
	s := &Server{
		contactHandler: NewContactHandler(deps),
		healthHandler:  NewHealthHandler(deps.Environment()),
		statsHandler:   NewStatsHandler(deps),
		frameHandler:   NewFrameHandler(deps),
		streamHandler:  NewStreamHandler(deps),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	wrap := func(next http.HandlerFunc, endpoint string) http.HandlerFunc {
		return RequestIDMiddleware(
			SecurityHeadersMiddleware(
				CORSMiddleware(s.allowedOrigins,
					MetricsMiddleware(next, endpoint))))
	}

	mux.HandleFunc("/api/contact", wrap(s.contactHandler.HandlePostContact, "contact"))
	mux.HandleFunc("/api/health", wrap(s.healthHandler.HandleHealth, "health"))
	mux.HandleFunc("/api/stats", wrap(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/api/gallery/frame", wrap(s.frameHandler.HandlePostFrame, "gallery_frame"))
	// The stream upgrades to WebSocket; metrics are recorded per connection,
	// not per request.
	mux.HandleFunc("/api/gallery/stream", RequestIDMiddleware(
		SecurityHeadersMiddleware(
			CORSMiddleware(s.allowedOrigins, s.streamHandler.HandleStream))))

	mux.Handle("/metrics", promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{}))
}

// statusResponse is the wire shape for contact endpoint outcomes.
type statusResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// rateLimitResponse is the distinct wire shape for 429 responses, so callers
// can show a specific "try again later" message.
type rateLimitResponse struct {
	Error string `json:"error"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// clientKey derives the rate-limit identity for a request: the first
// X-Forwarded-For hop when present, otherwise the remote address without its
// port.
func clientKey(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		if first = strings.TrimSpace(first); first != "" {
			return first
		}
	}
	if addrPort, err := netip.ParseAddrPort(r.RemoteAddr); err == nil {
		return addrPort.Addr().String()
	}
	return r.RemoteAddr
}

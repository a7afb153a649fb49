// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"fmt"
	"html"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okian/vitrine/internal/adapters/http/api"
	"github.com/okian/vitrine/internal/adapters/mail"
	"github.com/okian/vitrine/internal/domain/contact"
	"github.com/okian/vitrine/internal/domain/gallery"
	"github.com/okian/vitrine/internal/domain/geom"
	"github.com/okian/vitrine/internal/domain/overlay"
	"github.com/okian/vitrine/internal/domain/ratelimit"
	"github.com/okian/vitrine/pkg/logger"
	"github.com/okian/vitrine/pkg/metrics"
)

// Default service configuration constants.
const (
	defaultMailTimeout = 10 * time.Second
	defaultEnvironment = "development"

	// senderDisplayName labels the forwarded mail so the inbox shows where it
	// came from rather than a bare address.
	senderDisplayName = "Portfolio Contact Form"
)

// Service implements the API dependencies for the portfolio backend: the
// contact relay pipeline and the gallery occlusion engine.
type Service struct {
	mu sync.Mutex

	// Contact pipeline
	limiter        ratelimit.Limiter
	sender         mail.Sender
	senderEmail    string
	receivingEmail string
	mailTimeout    time.Duration

	// Gallery scene
	engine     *gallery.Engine
	fader      *gallery.Fader
	obstacle   geom.Vec3
	cardCount  int
	ringRadius float64
	cardHeight float64

	// State
	environment string
	startedAt   time.Time
	sessions    atomic.Int64

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithLimiter replaces the submission rate limiter.
func WithLimiter(l ratelimit.Limiter) Option {
	return func(s *Service) {
		if l != nil {
			s.limiter = l
		}
	}
}

// WithRateLimit configures the default limiter's window and ceiling.
func WithRateLimit(window time.Duration, maxPerWindow int) Option {
	return func(s *Service) {
		if window > 0 && maxPerWindow > 0 {
			s.limiter = ratelimit.NewInMemoryLimiter(
				ratelimit.WithWindow(window),
				ratelimit.WithMaxPerWindow(maxPerWindow),
			)
		}
	}
}

// WithSender sets the mail provider. A service without a sender reports
// submissions as unconfigured rather than dropping them silently.
func WithSender(sender mail.Sender) Option {
	return func(s *Service) {
		s.sender = sender
	}
}

// WithMailAddresses sets the forwarding sender and receiving addresses.
// An empty sender falls back to contact@<request host> per submission.
func WithMailAddresses(senderEmail, receivingEmail string) Option {
	return func(s *Service) {
		s.senderEmail = senderEmail
		s.receivingEmail = receivingEmail
	}
}

// WithMailTimeout bounds one provider send.
func WithMailTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.mailTimeout = d
		}
	}
}

// WithEnvironment sets the deployment environment label.
func WithEnvironment(env string) Option {
	return func(s *Service) {
		if env != "" {
			s.environment = env
		}
	}
}

// WithGallery sets the card ring dimensions.
func WithGallery(cardCount int, ringRadius, cardHeight float64) Option {
	return func(s *Service) {
		if cardCount > 0 && ringRadius > 0 {
			s.cardCount = cardCount
			s.ringRadius = ringRadius
			s.cardHeight = cardHeight
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		limiter:     ratelimit.NewInMemoryLimiter(),
		mailTimeout: defaultMailTimeout,
		environment: defaultEnvironment,
		obstacle:    gallery.DefaultObstaclePosition,
		cardCount:   gallery.DefaultCardCount,
		ringRadius:  gallery.DefaultRingRadius,
		cardHeight:  gallery.DefaultCardHeight,
		startedAt:   time.Now(),
	}

	// Apply all options
	for _, opt := range opts {
		opt(s)
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.engine = gallery.New(gallery.Ring(s.cardCount, s.ringRadius, s.cardHeight), s.obstacle)
	s.fader = gallery.NewFader(s.cardCount)

	return s
}

// Environment returns the deployment environment label.
func (s *Service) Environment() string {
	return s.environment
}

// Relay runs a submission through the full contact pipeline: validation, rate
// limiting, configuration check, then the provider send. Each stage returns a
// contact sentinel the HTTP layer maps onto its wire contract.
func (s *Service) Relay(ctx context.Context, clientKey, host string, sub contact.Submission) error {
	if err := sub.Validate(); err != nil {
		metrics.RecordContactRejection(rejectionReason(err))
		return err
	}

	allowed := s.limiter.Allow(ctx, clientKey)
	metrics.UpdateRateLimitEntries(s.limiter.Size())
	if !allowed {
		metrics.RecordRateLimitHit()
		metrics.RecordContactRejection("rate_limited")
		s.logger.Warn(ctx, "submission rate limited",
			logger.String("client", clientKey),
		)
		return contact.ErrRateLimited
	}

	if s.sender == nil || s.receivingEmail == "" {
		metrics.RecordContactRejection("not_configured")
		s.logger.Error(ctx, "mail provider not configured, dropping submission")
		return contact.ErrNotConfigured
	}

	msg := s.buildMessage(host, sub)

	sendCtx, cancel := context.WithTimeout(ctx, s.mailTimeout)
	defer cancel()

	start := time.Now()
	err := s.sender.Send(sendCtx, msg)
	metrics.RecordMailSendDuration(float64(time.Since(start).Milliseconds()))
	if err != nil {
		metrics.RecordMailSendError()
		s.logger.Error(ctx, "mail provider send failed", logger.Error(err))
		return fmt.Errorf("%w: %w", contact.ErrSendFailed, err)
	}

	metrics.RecordContactSent()
	s.logger.Info(ctx, "contact submission forwarded",
		logger.String("client", clientKey),
	)
	return nil
}

// buildMessage renders a submission as the forwarded notification email.
// Submission text is HTML-escaped before interpolation; message newlines
// become line breaks.
func (s *Service) buildMessage(host string, sub contact.Submission) mail.Message {
	name := html.EscapeString(sub.Name)
	email := html.EscapeString(sub.Email)
	body := strings.ReplaceAll(html.EscapeString(sub.Message), "\n", "<br>")

	senderEmail := s.senderEmail
	if senderEmail == "" {
		senderEmail = "contact@" + host
	}

	return mail.Message{
		Sender:  mail.Party{Name: senderDisplayName, Email: senderEmail},
		To:      mail.Party{Email: s.receivingEmail},
		ReplyTo: mail.Party{Name: sub.Name, Email: sub.Email},
		Subject: "New Portfolio Contact from " + sub.Name,
		HTMLContent: fmt.Sprintf(
			"<h3>New contact form submission</h3><p><strong>Name:</strong> %s</p><p><strong>Email:</strong> %s</p><p><strong>Message:</strong></p><p>%s</p>",
			name, email, body,
		),
	}
}

// rejectionReason maps a validation error onto a metrics label.
func rejectionReason(err error) string {
	switch err {
	case contact.ErrMissingFields:
		return "missing_fields"
	case contact.ErrInvalidEmail:
		return "invalid_email"
	default:
		return "invalid"
	}
}

// ComputeFrame computes a one-shot occlusion frame on the shared engine.
// One-shot frames have no time base, so opacity snaps to each card's target
// level instead of fading.
func (s *Service) ComputeFrame(camera geom.Vec3, viewport *overlay.Size) overlay.Snapshot {
	start := time.Now()

	s.mu.Lock()
	frame := s.engine.Update(camera)
	cards := s.engine.Cards()
	opacity := make([]float64, len(frame.Occluded))
	for i, occluded := range frame.Occluded {
		opacity[i] = s.fader.Target(occluded)
	}
	s.mu.Unlock()

	snapshot := buildSnapshot(frame, opacity, cards, camera, viewport)
	metrics.RecordGalleryFrame(float64(time.Since(start).Microseconds()))
	return snapshot
}

// NewGallerySession creates connection-scoped engine state, so one stream's
// fade progress never bleeds into another's.
func (s *Service) NewGallerySession() api.GallerySession {
	s.sessions.Add(1)
	return &session{
		service: s,
		engine:  gallery.New(gallery.Ring(s.cardCount, s.ringRadius, s.cardHeight), s.obstacle),
		fader:   gallery.NewFader(s.cardCount),
	}
}

// session is one stream connection's private engine and fader.
type session struct {
	service *Service
	engine  *gallery.Engine
	fader   *gallery.Fader
	closed  bool
}

// Step advances the session by one camera sample.
func (c *session) Step(camera geom.Vec3, viewport *overlay.Size, dt time.Duration) overlay.Snapshot {
	start := time.Now()

	frame := c.engine.Update(camera)
	c.fader.Advance(frame, dt)

	snapshot := buildSnapshot(frame, c.fader.Opacities(), c.engine.Cards(), camera, viewport)
	metrics.RecordGalleryFrame(float64(time.Since(start).Microseconds()))
	return snapshot
}

// Close releases the session.
func (c *session) Close() {
	if c.closed {
		return
	}
	c.closed = true
	c.service.sessions.Add(-1)
}

// buildSnapshot assembles the overlay state for one frame. Anchors are
// computed only when the caller supplied a viewport.
func buildSnapshot(frame gallery.Frame, opacity []float64, cards []gallery.Card, camera geom.Vec3, viewport *overlay.Size) overlay.Snapshot {
	snapshot := overlay.Snapshot{
		Occluded:    frame.Occluded,
		Priority:    frame.Priority,
		Opacity:     opacity,
		Interactive: make([]bool, len(frame.Occluded)),
	}
	for i, occluded := range frame.Occluded {
		snapshot.Interactive[i] = overlay.Gate(occluded)
	}

	if viewport != nil && viewport.Height > 0 {
		cam := overlay.NewCamera(camera, geom.Vec3{}, viewport.Width/viewport.Height)
		snapshot.Anchors = make([]overlay.Point, len(cards))
		for i, card := range cards {
			snapshot.Anchors[i] = overlay.Anchor(card.Position, cam, *viewport)
		}
	}

	return snapshot
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	entries := s.limiter.Size()
	metrics.UpdateRateLimitEntries(entries)

	return map[string]interface{}{
		"environment":      s.environment,
		"uptimeSeconds":    int64(time.Since(s.startedAt).Seconds()),
		"rateLimitEntries": entries,
		"streamSessions":   s.sessions.Load(),
		"galleryCards":     s.cardCount,
	}
}

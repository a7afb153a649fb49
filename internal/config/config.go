// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Keep fields unexported where possible and use functional options.
// - Provide New() initializer to build a Config with defaults.
// - External errors must be wrapped via this package's error helpers.
package config

import (
	"time"
)

// Default configuration constants.
const (
	defaultAddr            = ":5000"
	defaultEnvironment     = "development"
	defaultRateLimitWindow = 15 * time.Minute
	defaultRateLimitMax    = 5
	defaultMailTimeout     = 10 * time.Second
	defaultMaxBodyBytes    = 10 << 10 // 10 KB request body cap
	defaultCardCount       = 6
	defaultRingRadius      = 6.5
	defaultCardHeight      = 2.2
)

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":5000".
	Addr string `koanf:"addr"`

	// Environment names the deployment environment reported by /api/health.
	Environment string `koanf:"environment"`

	// AllowedOrigins lists the origins accepted by the CORS layer.
	// Requests from any other origin are rejected before reaching handlers.
	AllowedOrigins []string `koanf:"allowed_origins"`

	// BrevoAPIKey authenticates against the transactional email provider.
	BrevoAPIKey string `koanf:"brevo_api_key"`

	// SenderEmail is the outbound sender address. When empty, a fallback
	// of contact@<request host> is constructed per request.
	SenderEmail string `koanf:"sender_email"`

	// ReceivingEmail is the destination for contact submissions. Required.
	ReceivingEmail string `koanf:"receiving_email"`

	// RateLimitWindow and RateLimitMax bound contact submissions per client.
	RateLimitWindow time.Duration `koanf:"rate_limit_window"`
	RateLimitMax    int           `koanf:"rate_limit_max"`

	// MailTimeout bounds a single outbound provider call.
	MailTimeout time.Duration `koanf:"mail_timeout"`

	// MaxBodyBytes caps the accepted request body size.
	MaxBodyBytes int64 `koanf:"max_body_bytes"`

	// GalleryCardCount, GalleryRingRadius, and GalleryCardHeight shape the
	// project card ring served by the gallery endpoints.
	GalleryCardCount  int     `koanf:"gallery_card_count"`
	GalleryRingRadius float64 `koanf:"gallery_ring_radius"`
	GalleryCardHeight float64 `koanf:"gallery_card_height"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:          "info",
		Addr:              defaultAddr,
		Environment:       defaultEnvironment,
		AllowedOrigins:    nil,
		RateLimitWindow:   defaultRateLimitWindow,
		RateLimitMax:      defaultRateLimitMax,
		MailTimeout:       defaultMailTimeout,
		MaxBodyBytes:      defaultMaxBodyBytes,
		GalleryCardCount:  defaultCardCount,
		GalleryRingRadius: defaultRingRadius,
		GalleryCardHeight: defaultCardHeight,
	}
}

// MailConfigured reports whether the provider credentials and destination
// address required for sending are present.
func (c *Config) MailConfigured() bool {
	return c.BrevoAPIKey != "" && c.ReceivingEmail != ""
}

package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, env vars, and the
// canonical deployment variables.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if VITRINE_CONFIG is set
//  3. env (prefix VITRINE_)
//  4. canonical deployment variables (PORT, FRONTEND_URL, BREVO_API_KEY,
//     BREVO_SENDER_EMAIL, YOUR_RECEIVING_EMAIL, ENVIRONMENT)
func Load(ctx context.Context) (*Config, error) {
	// Start with defaults
	base := New()

	k := koanf.New(".")

	// Load from file if provided
	if path := os.Getenv("VITRINE_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Environment variables: VITRINE_ADDR, VITRINE_RATE_LIMIT_MAX, ...
	// Map env keys like VITRINE_RATE_LIMIT_MAX -> rate_limit_max (flat keys)
	// Preserve underscores to match koanf tags on the struct.
	envProvider := env.Provider("VITRINE_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "vitrine_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, err
	}

	// Unmarshal into a copy
	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, err
	}

	applyCanonicalEnv(&cfg)

	// Basic validation
	if cfg.Addr == "" {
		return nil, fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}
	if cfg.RateLimitMax <= 0 {
		return nil, fmt.Errorf("%w: rate_limit_max must be positive", ErrInvalidConfig)
	}
	if cfg.RateLimitWindow <= 0 {
		return nil, fmt.Errorf("%w: rate_limit_window must be positive", ErrInvalidConfig)
	}
	if cfg.GalleryCardCount <= 0 {
		return nil, fmt.Errorf("%w: gallery_card_count must be positive", ErrInvalidConfig)
	}
	return &cfg, nil
}

// applyCanonicalEnv overlays the deployment variable names the service has
// always been configured with, taking precedence over everything else.
func applyCanonicalEnv(cfg *Config) {
	if port, ok := os.LookupEnv("PORT"); ok && port != "" {
		if strings.HasPrefix(port, ":") {
			cfg.Addr = port
		} else {
			cfg.Addr = ":" + port
		}
	}
	if origins, ok := os.LookupEnv("FRONTEND_URL"); ok && origins != "" {
		var parsed []string
		for _, o := range strings.Split(origins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				parsed = append(parsed, o)
			}
		}
		cfg.AllowedOrigins = parsed
	}
	if key, ok := os.LookupEnv("BREVO_API_KEY"); ok && key != "" {
		cfg.BrevoAPIKey = key
	}
	if sender, ok := os.LookupEnv("BREVO_SENDER_EMAIL"); ok && sender != "" {
		cfg.SenderEmail = sender
	}
	if receiver, ok := os.LookupEnv("YOUR_RECEIVING_EMAIL"); ok && receiver != "" {
		cfg.ReceivingEmail = receiver
	}
	if environment, ok := os.LookupEnv("ENVIRONMENT"); ok && environment != "" {
		cfg.Environment = environment
	}
}

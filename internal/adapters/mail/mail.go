// Package mail sends transactional email through the Brevo HTTP API.
package mail

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Brevo client constants.
const (
	defaultBaseURL = "https://api.brevo.com"
	sendPath       = "/v3/smtp/email"
	defaultTimeout = 10 * time.Second

	// maxErrorBodyBytes caps how much of a provider error response is read
	// for logging.
	maxErrorBodyBytes = 4 << 10
)

// Party is a named email address on an outbound message.
type Party struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email"`
}

// Message is one outbound transactional email.
type Message struct {
	Sender      Party
	To          Party
	ReplyTo     Party
	Subject     string
	HTMLContent string
}

// Sender delivers a message through the provider. Implementations must invoke
// the provider exactly once per call and honor ctx for cancellation.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// sendRequest mirrors the Brevo transactional email schema.
type sendRequest struct {
	Sender      Party   `json:"sender"`
	To          []Party `json:"to"`
	ReplyTo     *Party  `json:"replyTo,omitempty"`
	Subject     string  `json:"subject"`
	HTMLContent string  `json:"htmlContent"`
}

// BrevoClient implements Sender against the Brevo HTTP API.
type BrevoClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// Option applies a configuration option to the BrevoClient.
type Option func(*BrevoClient)

// WithBaseURL overrides the provider endpoint, for tests.
func WithBaseURL(url string) Option {
	return func(c *BrevoClient) {
		if url != "" {
			c.baseURL = url
		}
	}
}

// WithTimeout bounds a single provider call.
func WithTimeout(d time.Duration) Option {
	return func(c *BrevoClient) {
		if d > 0 {
			c.client.Timeout = d
		}
	}
}

// NewBrevoClient creates a provider client authenticated with apiKey.
func NewBrevoClient(apiKey string, opts ...Option) *BrevoClient {
	c := &BrevoClient{
		baseURL: defaultBaseURL,
		apiKey:  apiKey,
		client: &http.Client{
			Timeout: defaultTimeout,
		},
	}

	// Apply all options
	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Send posts the message to the provider and reports whether it was accepted.
func (c *BrevoClient) Send(ctx context.Context, msg Message) error {
	payload := sendRequest{
		Sender:      msg.Sender,
		To:          []Party{msg.To},
		Subject:     msg.Subject,
		HTMLContent: msg.HTMLContent,
	}
	if msg.ReplyTo.Email != "" {
		replyTo := msg.ReplyTo
		payload.ReplyTo = &replyTo
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal send request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+sendPath, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create send request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("api-key", c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrProviderUnreachable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		return fmt.Errorf("%w: status %d: %s", ErrProviderRejected, resp.StatusCode, string(detail))
	}
	return nil
}

package contact

import "errors"

// Sentinel kinds for the contact pipeline. The first two are validation
// failures; the rest classify why an otherwise valid submission was not
// forwarded.
var (
	ErrMissingFields = errors.New("all fields are required")
	ErrInvalidEmail  = errors.New("invalid email address")
	ErrRateLimited   = errors.New("too many submissions")
	ErrNotConfigured = errors.New("mail provider not configured")
	ErrSendFailed    = errors.New("send failed")
)

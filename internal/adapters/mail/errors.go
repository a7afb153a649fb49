package mail

import "errors"

// Sentinel kinds for provider errors.
var (
	ErrProviderUnreachable = errors.New("mail provider unreachable")
	ErrProviderRejected    = errors.New("mail provider rejected message")
)

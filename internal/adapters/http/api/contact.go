// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/okian/vitrine/internal/domain/contact"
)

// Contact endpoint constants.
const (
	// maxContactBodyBytes caps the accepted request body, mirroring the
	// 10kb JSON body limit the endpoint has always enforced.
	maxContactBodyBytes = 10 << 10
)

// User-facing response messages. These are part of the wire contract.
const (
	msgSent          = "Message sent successfully!"
	msgMissingFields = "All fields are required."
	msgInvalidEmail  = "Invalid email address."
	msgRateLimited   = "Too many contact form submissions. Please try again after 15 minutes."
	msgConfigError   = "Server email configuration error."
	msgSendFailed    = "Failed to send message. Please try again later."
)

// ContactHandler handles contact form submissions.
type ContactHandler struct {
	relayer Relayer
}

// NewContactHandler creates a new contact handler.
func NewContactHandler(relayer Relayer) *ContactHandler {
	return &ContactHandler{relayer: relayer}
}

// HandlePostContact handles POST /api/contact requests.
func (h *ContactHandler) HandlePostContact(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxContactBodyBytes)

	var sub contact.Submission
	if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
		writeJSON(w, http.StatusBadRequest, statusResponse{Success: false, Message: msgMissingFields})
		return
	}

	err := h.relayer.Relay(r.Context(), clientKey(r), r.Host, sub)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, statusResponse{Success: true, Message: msgSent})
	case errors.Is(err, contact.ErrMissingFields):
		writeJSON(w, http.StatusBadRequest, statusResponse{Success: false, Message: msgMissingFields})
	case errors.Is(err, contact.ErrInvalidEmail):
		writeJSON(w, http.StatusBadRequest, statusResponse{Success: false, Message: msgInvalidEmail})
	case errors.Is(err, contact.ErrRateLimited):
		writeJSON(w, http.StatusTooManyRequests, rateLimitResponse{Error: msgRateLimited})
	case errors.Is(err, contact.ErrNotConfigured):
		writeJSON(w, http.StatusInternalServerError, statusResponse{Success: false, Message: msgConfigError})
	default:
		// Provider failures and anything unexpected surface the same
		// generic message; detail stays in the server logs.
		writeJSON(w, http.StatusInternalServerError, statusResponse{Success: false, Message: msgSendFailed})
	}
}

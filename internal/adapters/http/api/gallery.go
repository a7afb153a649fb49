// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/okian/vitrine/internal/domain/geom"
	"github.com/okian/vitrine/internal/domain/overlay"
)

// frameRequest mirrors the schema for POST /api/gallery/frame.
type frameRequest struct {
	Camera   geom.Vec3     `json:"camera"`
	Viewport *overlay.Size `json:"viewport,omitempty"`
}

func (f frameRequest) validate() error {
	if f.Viewport != nil && (f.Viewport.Width <= 0 || f.Viewport.Height <= 0) {
		return NewKind("api.gallery_frame", ErrBadRequest)
	}
	return nil
}

// FrameHandler computes one-shot occlusion frames for a camera position.
type FrameHandler struct {
	deps GalleryDependencies
}

// NewFrameHandler creates a new gallery frame handler.
func NewFrameHandler(deps GalleryDependencies) *FrameHandler {
	return &FrameHandler{deps: deps}
}

// HandlePostFrame handles POST /api/gallery/frame requests.
func (h *FrameHandler) HandlePostFrame(w http.ResponseWriter, r *http.Request) {
	const op = "api.gallery_frame"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	var req frameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}

	snapshot := h.deps.ComputeFrame(req.Camera, req.Viewport)
	writeJSON(w, http.StatusOK, snapshot)
}

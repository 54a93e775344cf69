package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/starford/folio/internal/apperr"
	"github.com/starford/folio/internal/cardservice"
	"github.com/starford/folio/internal/sse"
)

const maxDocumentBytes = 10 << 20

// Publisher receives notifications about completed repaginations. A nil
// Publisher disables notifications.
type Publisher interface {
	PublishRepaginated(checksum string, cardCount int)
	PublishImageRegistered(id string)
}

// Verify the SSE broker satisfies Publisher at compile time.
var _ Publisher = (*sse.Broker)(nil)

// Handler holds API route handlers.
type Handler struct {
	svc *cardservice.Service
	pub Publisher
}

// NewHandler creates a new Handler. pub may be nil.
func NewHandler(svc *cardservice.Service, pub Publisher) *Handler {
	return &Handler{svc: svc, pub: pub}
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxDocumentBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return false
	}
	return true
}

// Paginate handles POST /api/paginate: compute optimal breaks and return
// the document with markers inserted.
func (h *Handler) Paginate(w http.ResponseWriter, r *http.Request) {
	var req DocumentRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Content == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("content is required"))
		return
	}
	if req.Typography != nil && !validTypography(*req.Typography) {
		writeJSON(w, http.StatusBadRequest, errorBody("fontSize and lineHeight must be positive; spacing must be non-negative"))
		return
	}

	res := h.svc.Paginate(r.Context(), req.Content, req.Typography, req.ImageMeta)
	writeJSON(w, http.StatusOK, res)
}

// Split handles POST /api/split: split a document that already contains
// explicit break markers into cards.
func (h *Handler) Split(w http.ResponseWriter, r *http.Request) {
	var req SplitRequest
	if !decodeBody(w, r, &req) {
		return
	}

	res := h.svc.SplitCards(r.Context(), req.Content)
	writeJSON(w, http.StatusOK, res)
}

// Recalculate handles POST /api/recalculate: re-flow existing breaks at new
// typography and return content, breaks, and cards.
func (h *Handler) Recalculate(w http.ResponseWriter, r *http.Request) {
	var req DocumentRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Content == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("content is required"))
		return
	}
	if req.Typography != nil && !validTypography(*req.Typography) {
		writeJSON(w, http.StatusBadRequest, errorBody("fontSize and lineHeight must be positive; spacing must be non-negative"))
		return
	}

	res := h.svc.Recalculate(r.Context(), req.Content, req.Typography, req.ImageMeta)
	if h.pub != nil {
		h.pub.PublishRepaginated(res.Checksum, len(res.Cards))
	}
	writeJSON(w, http.StatusOK, res)
}

// Estimate handles POST /api/estimate: return the estimated rendered height
// of the document so the preview collaborator can size its viewport.
func (h *Handler) Estimate(w http.ResponseWriter, r *http.Request) {
	var req DocumentRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Typography != nil && !validTypography(*req.Typography) {
		writeJSON(w, http.StatusBadRequest, errorBody("fontSize and lineHeight must be positive; spacing must be non-negative"))
		return
	}

	height := h.svc.Estimate(r.Context(), req.Content, req.Typography, req.ImageMeta)
	writeJSON(w, http.StatusOK, EstimateResponse{Height: height})
}

// PutImage handles PUT /api/images/{id}: register dimensions for an id.
func (h *Handler) PutImage(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req ImageMetaRequest
	if !decodeBody(w, r, &req) {
		return
	}

	err := h.svc.RegisterImage(r.Context(), id, imageMetaFromRequest(req))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		return
	}
	if h.pub != nil {
		h.pub.PublishImageRegistered(id)
	}
	writeJSON(w, http.StatusOK, ImageMetaResponse{ID: id, Width: req.Width, Height: req.Height})
}

// GetImage handles GET /api/images/{id}.
func (h *Handler) GetImage(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	meta, err := h.svc.GetImage(r.Context(), id)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, errorBody("not found"))
		} else {
			slog.Error("get image failed", slog.String("id", id), slog.String("error", err.Error()))
			writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		}
		return
	}
	writeJSON(w, http.StatusOK, ImageMetaResponse{ID: id, Width: meta.Width, Height: meta.Height})
}

// DeleteImage handles DELETE /api/images/{id}.
func (h *Handler) DeleteImage(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.svc.DeleteImage(r.Context(), id); err != nil {
		slog.Error("delete image failed", slog.String("id", id), slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListImages handles GET /api/images.
func (h *Handler) ListImages(w http.ResponseWriter, r *http.Request) {
	images, err := h.svc.ListImages(r.Context())
	if err != nil {
		slog.Error("list images failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, ImageListResponse{Images: images, Total: len(images)})
}

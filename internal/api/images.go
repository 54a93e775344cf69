package api

import (
	"bytes"
	"fmt"
	"image"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/starford/folio/internal/assets"
	"github.com/starford/folio/internal/cardservice"
	"github.com/starford/folio/internal/models"
)

const maxUploadBytes = 50 << 20 // 50 MB

var imageIDCleanRe = regexp.MustCompile(`[^A-Za-z0-9_-]+`)

// ImageHandler accepts image uploads and serves stored files. Uploading
// decodes the image's intrinsic dimensions and registers them so later
// pagination calls resolve the [IMG:id] token without extra metadata.
type ImageHandler struct {
	svc   *cardservice.Service
	store *assets.Store
	pub   Publisher
}

// NewImageHandler creates a handler backed by the given assets store.
func NewImageHandler(svc *cardservice.Service, store *assets.Store, pub Publisher) *ImageHandler {
	return &ImageHandler{svc: svc, store: store, pub: pub}
}

// deriveID turns a filename into a valid image id, falling back to a fresh
// uuid when nothing usable remains.
func deriveID(filename string) string {
	base := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	id := imageIDCleanRe.ReplaceAllString(base, "-")
	id = strings.Trim(id, "-")
	if id == "" {
		return uuid.NewString()
	}
	return id
}

// ServeFile handles GET /assets/{filename}.
func (h *ImageHandler) ServeFile(w http.ResponseWriter, r *http.Request) {
	filename := chi.URLParam(r, "filename")
	abs, err := h.store.Path(filename)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if _, statErr := os.Stat(abs); os.IsNotExist(statErr) {
		http.NotFound(w, r)
		return
	}
	http.ServeFile(w, r, abs)
}

// Upload handles POST /api/images/upload (multipart/form-data, field
// "file", optional field "id"). The file is stored, its dimensions decoded
// and registered, and the [IMG:id] token to embed is returned.
func (h *ImageHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("file too large or invalid multipart"))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("missing 'file' field in multipart form"))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("failed to read upload"))
		return
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("unsupported image format (png, jpeg, gif)"))
		return
	}

	id := r.FormValue("id")
	if id == "" {
		id = deriveID(header.Filename)
	}

	meta := models.ImageMeta{Width: float64(cfg.Width), Height: float64(cfg.Height)}
	if err := h.svc.RegisterImage(r.Context(), id, meta); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		return
	}

	filename := id + strings.ToLower(filepath.Ext(header.Filename))
	if err := h.store.Write(filename, data); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorBody("failed to store file"))
		return
	}

	if h.pub != nil {
		h.pub.PublishImageRegistered(id)
	}
	writeJSON(w, http.StatusCreated, ImageUploadResponse{
		ID:       id,
		Token:    fmt.Sprintf("[IMG:%s]", id),
		Width:    meta.Width,
		Height:   meta.Height,
		Filename: filename,
		Size:     int64(len(data)),
		URL:      "/assets/" + filename,
	})
}

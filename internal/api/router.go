package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/starford/folio/internal/assets"
	"github.com/starford/folio/internal/cardservice"
)

// NewRouter creates a chi router with all API routes mounted.
// authEnabled controls whether Bearer token auth is enforced.
// sseHandler, if non-nil, is mounted at GET /events inside the auth group.
// pub, if non-nil, receives repagination and image notifications.
func NewRouter(svc *cardservice.Service, authEnabled bool, token string, sseHandler http.Handler, store *assets.Store, pub Publisher) chi.Router {
	h := NewHandler(svc, pub)
	ih := NewImageHandler(svc, store, pub)

	r := chi.NewRouter()
	r.Use(AuthMiddleware(authEnabled, token))

	// Pagination engine operations.
	r.Post("/paginate", h.Paginate)
	r.Post("/split", h.Split)
	r.Post("/recalculate", h.Recalculate)
	r.Post("/estimate", h.Estimate)

	// Image-dimension registry.
	r.Get("/images", h.ListImages)
	r.Put("/images/{id}", h.PutImage)
	r.Get("/images/{id}", h.GetImage)
	r.Delete("/images/{id}", h.DeleteImage)

	// Image upload (auth-protected).
	r.Post("/images/upload", ih.Upload)

	// SSE endpoint (protected by same auth middleware).
	if sseHandler != nil {
		r.Get("/events", sseHandler.ServeHTTP)
	}

	return r
}

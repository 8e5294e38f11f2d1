// internal/app/features/apidocs/routes.go
package apidocs

import "github.com/go-chi/chi/v5"

// Routes returns the subrouter mounted under /api-docs.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeDocument)
	r.Get("/openapi.json", h.ServeDocument)
	return r
}

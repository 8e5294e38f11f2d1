// internal/app/features/courses/routes.go
package courses

import (
	"github.com/dalemusser/coursehub/internal/app/system/ratelimit"
	"github.com/go-chi/chi/v5"
)

// Routes returns the subrouter mounted under /api/cursos.
func Routes(h *Handler, bulk *ratelimit.Limiter) chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.ServeList)
	r.Post("/", h.HandleCreate)
	r.With(ratelimit.Middleware(bulk, h.Log)).Post("/coleccion", h.HandleBulkCreate)

	r.Get("/{id}", h.ServeCourse)
	r.Get("/{id}/usuarios", h.ServeCourseUsers)
	r.Put("/{id}", h.HandleUpdate)
	r.Delete("/{id}", h.HandleDeactivate)

	return r
}

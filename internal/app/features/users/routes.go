// internal/app/features/users/routes.go
package users

import (
	"github.com/dalemusser/coursehub/internal/app/system/ratelimit"
	"github.com/go-chi/chi/v5"
)

// Routes returns the subrouter mounted under /api/usuarios.
func Routes(h *Handler, bulk *ratelimit.Limiter) chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.ServeList)
	r.Post("/", h.HandleCreate)
	r.With(ratelimit.Middleware(bulk, h.Log)).Post("/coleccion", h.HandleBulkCreate)

	// by id
	r.Get("/{usuarioId}/cursos", h.ServeUserCourses)

	// by email (business key)
	r.Put("/{email}", h.HandleUpdate)
	r.Delete("/{email}", h.HandleDeactivate)
	r.Post("/{email}/cursos", h.HandleAddCourses)

	return r
}

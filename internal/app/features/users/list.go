package users

import (
	"net/http"

	"github.com/dalemusser/coursehub/internal/app/store/queries/usercourses"
	"github.com/dalemusser/coursehub/internal/app/system/respond"
	"github.com/dalemusser/coursehub/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
)

// ServeList handles GET /api/usuarios: active users with course titles.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "list active users")
	defer cancel()

	views, err := h.Enroll.ListActiveUsers(ctx)
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	respond.JSON(w, http.StatusOK, views)
}

// ServeUserCourses handles GET /api/usuarios/{usuarioId}/cursos.
func (h *Handler) ServeUserCourses(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "list user courses")
	defer cancel()

	courses, err := h.Enroll.ListCoursesOfUser(ctx, chi.URLParam(r, "usuarioId"))
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	if err := usercourses.FillEnrollment(ctx, h.Counter, courses); err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	respond.JSON(w, http.StatusOK, courses)
}

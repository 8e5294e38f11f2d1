package courses

import (
	"context"
	"net/http"

	coursestore "github.com/dalemusser/coursehub/internal/app/store/courses"
	"github.com/dalemusser/coursehub/internal/app/store/queries/usercourses"
	userstore "github.com/dalemusser/coursehub/internal/app/store/users"
	"github.com/dalemusser/coursehub/internal/app/system/respond"
	"github.com/dalemusser/coursehub/internal/app/system/timeouts"
	"github.com/dalemusser/coursehub/internal/domain/models"
)

// ServeList handles GET /api/cursos: active courses with enrollment counts.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "list courses")
	defer cancel()

	list, err := coursestore.New(h.DB).ListActive(ctx)
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	if err := usercourses.FillEnrollment(ctx, userstore.New(h.DB), list); err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	respond.JSON(w, http.StatusOK, list)
}

// ServeCourse handles GET /api/cursos/{id}.
func (h *Handler) ServeCourse(w http.ResponseWriter, r *http.Request) {
	id, err := courseID(r)
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "get course")
	defer cancel()

	c, err := coursestore.New(h.DB).GetByID(ctx, id)
	if err != nil {
		respond.Error(w, r, h.Log, notFound(err, id))
		return
	}
	h.respondCourse(ctx, w, r, *c)
}

// ServeCourseUsers handles GET /api/cursos/{id}/usuarios. Every user
// referencing the course is listed, active or not.
func (h *Handler) ServeCourseUsers(w http.ResponseWriter, r *http.Request) {
	id, err := courseID(r)
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "list course users")
	defer cancel()

	if _, err := coursestore.New(h.DB).GetByID(ctx, id); err != nil {
		respond.Error(w, r, h.Log, notFound(err, id))
		return
	}
	users, err := userstore.New(h.DB).ListByCourse(ctx, id)
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}

	out := make([]enrolledUser, 0, len(users))
	for _, u := range users {
		out = append(out, enrolledUser{ID: u.ID, Name: u.Name, Email: u.Email})
	}
	respond.JSON(w, http.StatusOK, out)
}

// respondCourse fills "alumnos" on c and writes it.
func (h *Handler) respondCourse(ctx context.Context, w http.ResponseWriter, r *http.Request, c models.Course) {
	one := []models.Course{c}
	if err := usercourses.FillEnrollment(ctx, userstore.New(h.DB), one); err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	respond.JSON(w, http.StatusOK, one[0])
}

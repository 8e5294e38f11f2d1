package courses

import (
	"net/http"

	coursestore "github.com/dalemusser/coursehub/internal/app/store/courses"
	"github.com/dalemusser/coursehub/internal/app/system/inputval"
	"github.com/dalemusser/coursehub/internal/app/system/respond"
	"github.com/dalemusser/coursehub/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// HandleUpdate handles PUT /api/cursos/{id} as a merge update.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := courseID(r)
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	var patch coursePatch
	if err := inputval.DecodeJSON(w, r, &patch); err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	upd, err := patch.update()
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "update course")
	defer cancel()

	c, err := coursestore.New(h.DB).Apply(ctx, id, upd)
	if err != nil {
		respond.Error(w, r, h.Log, notFound(err, id))
		return
	}
	h.respondCourse(ctx, w, r, c)
}

// HandleDeactivate handles DELETE /api/cursos/{id}. The course stays in
// users' enrollment sets.
func (h *Handler) HandleDeactivate(w http.ResponseWriter, r *http.Request) {
	id, err := courseID(r)
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "deactivate course")
	defer cancel()

	c, err := coursestore.New(h.DB).SetActive(ctx, id, false)
	if err != nil {
		respond.Error(w, r, h.Log, notFound(err, id))
		return
	}
	h.Log.Info("course deactivated", zap.String("course_id", id.Hex()))
	h.respondCourse(ctx, w, r, c)
}

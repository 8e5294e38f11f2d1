package courses

import (
	"fmt"
	"net/http"

	coursestore "github.com/dalemusser/coursehub/internal/app/store/courses"
	"github.com/dalemusser/coursehub/internal/app/system/apperr"
	"github.com/dalemusser/coursehub/internal/app/system/inputval"
	"github.com/dalemusser/coursehub/internal/app/system/respond"
	"github.com/dalemusser/coursehub/internal/app/system/timeouts"
	"github.com/dalemusser/coursehub/internal/domain/models"
	"go.uber.org/zap"
)

// HandleCreate handles POST /api/cursos.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var in courseInput
	if err := inputval.DecodeJSON(w, r, &in); err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	in.clean()
	if err := inputval.Check(in); err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "create course")
	defer cancel()

	c, err := coursestore.New(h.DB).Create(ctx, in.model())
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	h.Log.Info("course created", zap.String("course_id", c.ID.Hex()))
	respond.JSON(w, http.StatusCreated, createResponse{Course: c})
}

// HandleBulkCreate handles POST /api/cursos/coleccion. Every item is
// validated before any is written; one invalid item rejects the request.
func (h *Handler) HandleBulkCreate(w http.ResponseWriter, r *http.Request) {
	var items []courseInput
	if err := inputval.DecodeJSON(w, r, &items); err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	if len(items) == 0 {
		respond.Error(w, r, h.Log, apperr.Invalid("at least one course is required", nil))
		return
	}
	if len(items) > h.BulkMax {
		respond.Error(w, r, h.Log, apperr.Invalid(fmt.Sprintf("at most %d courses per request", h.BulkMax), nil))
		return
	}

	bad := map[string]string{}
	for i := range items {
		items[i].clean()
		for field, msg := range inputval.Struct(items[i]) {
			bad[fmt.Sprintf("[%d].%s", i, field)] = msg
		}
	}
	if len(bad) > 0 {
		respond.Error(w, r, h.Log, apperr.Invalid("invalid request", bad))
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Batch(), h.Log, "bulk create courses")
	defer cancel()

	store := coursestore.New(h.DB)
	out := make([]models.Course, 0, len(items))
	for _, in := range items {
		c, err := store.Create(ctx, in.model())
		if err != nil {
			h.Log.Error("bulk create courses stopped",
				zap.Int("created", len(out)),
				zap.Int("count", len(items)),
				zap.Error(err))
			respond.Error(w, r, h.Log, err)
			return
		}
		out = append(out, c)
	}

	h.Log.Info("bulk create courses", zap.Int("count", len(out)))
	respond.JSON(w, http.StatusCreated, out)
}

package users

import (
	"net/http"

	"github.com/dalemusser/coursehub/internal/app/enrollment"
	"github.com/dalemusser/coursehub/internal/app/system/inputval"
	"github.com/dalemusser/coursehub/internal/app/system/respond"
	"github.com/dalemusser/coursehub/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// HandleUpdate handles PUT /api/usuarios/{email}. The body is a merge patch.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var patch enrollment.UserPatch
	if err := inputval.DecodeJSON(w, r, &patch); err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "update user")
	defer cancel()

	u, err := h.Enroll.UpdateUser(ctx, emailParam(r), patch)
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	respond.JSON(w, http.StatusOK, valueResponse{Value: u})
}

// HandleDeactivate handles DELETE /api/usuarios/{email}. Users are never
// removed, only marked inactive.
func (h *Handler) HandleDeactivate(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "deactivate user")
	defer cancel()

	u, err := h.Enroll.DeactivateUser(ctx, emailParam(r))
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	h.Log.Info("user deactivated", zap.String("email", u.Email))
	respond.JSON(w, http.StatusOK, deactivateResponse{User: u})
}

// HandleAddCourses handles POST /api/usuarios/{email}/cursos.
func (h *Handler) HandleAddCourses(w http.ResponseWriter, r *http.Request) {
	var in addCoursesRequest
	if err := inputval.DecodeJSON(w, r, &in); err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	if err := inputval.Check(in); err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "add courses")
	defer cancel()

	u, err := h.Enroll.AddCourses(ctx, emailParam(r), in.Courses)
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	respond.JSON(w, http.StatusOK, valueResponse{Value: u})
}

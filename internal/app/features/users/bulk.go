package users

import (
	"fmt"
	"net/http"

	"github.com/dalemusser/coursehub/internal/app/enrollment"
	"github.com/dalemusser/coursehub/internal/app/system/apperr"
	"github.com/dalemusser/coursehub/internal/app/system/inputval"
	"github.com/dalemusser/coursehub/internal/app/system/respond"
	"github.com/dalemusser/coursehub/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// HandleBulkCreate handles POST /api/usuarios/coleccion. The body is an
// array of users; each is created or skipped on its own.
func (h *Handler) HandleBulkCreate(w http.ResponseWriter, r *http.Request) {
	var items []enrollment.NewUser
	if err := inputval.DecodeJSON(w, r, &items); err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	if len(items) == 0 {
		respond.Error(w, r, h.Log, apperr.Invalid("at least one user is required", nil))
		return
	}
	if len(items) > h.BulkMax {
		respond.Error(w, r, h.Log, apperr.Invalid(fmt.Sprintf("at most %d users per request", h.BulkMax), nil))
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Batch(), h.Log, "bulk create users")
	defer cancel()

	res, err := h.Enroll.BulkCreateUsers(ctx, items)
	if err != nil {
		if apperr.Is(err) {
			respond.Error(w, r, h.Log, err)
			return
		}
		// Users created before the failure are kept; the manager logged the
		// cause. Report what was done without exposing it.
		respond.JSON(w, http.StatusInternalServerError, bulkFailure{
			ErrorBody:    respond.ErrorBody{Error: respond.InternalMessage},
			bulkResponse: newBulkResponse(res),
		})
		return
	}

	h.Log.Info("bulk create users",
		zap.Int("count", len(items)),
		zap.Int("created", len(res.Created)),
		zap.Int("skipped", len(res.Skipped)))
	respond.JSON(w, http.StatusCreated, newBulkResponse(res))
}

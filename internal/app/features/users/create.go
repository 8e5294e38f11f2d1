package users

import (
	"net/http"

	"github.com/dalemusser/coursehub/internal/app/enrollment"
	"github.com/dalemusser/coursehub/internal/app/system/inputval"
	"github.com/dalemusser/coursehub/internal/app/system/respond"
	"github.com/dalemusser/coursehub/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// HandleCreate handles POST /api/usuarios.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var in enrollment.NewUser
	if err := inputval.DecodeJSON(w, r, &in); err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "create user")
	defer cancel()

	u, err := h.Enroll.CreateUser(ctx, in)
	if err != nil {
		respond.Error(w, r, h.Log, err)
		return
	}
	h.Log.Info("user created", zap.String("email", u.Email), zap.String("user_id", u.ID.Hex()))
	respond.JSON(w, http.StatusCreated, valueResponse{Value: u})
}

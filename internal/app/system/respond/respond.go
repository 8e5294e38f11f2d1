// internal/app/system/respond/respond.go
package respond

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dalemusser/coursehub/internal/app/system/apperr"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// InternalMessage is the only text clients see for unexpected failures.
const InternalMessage = "internal server error"

// ErrorBody is the JSON shape of every error response.
type ErrorBody struct {
	Error   string            `json:"error"`
	Details map[string]string `json:"details,omitempty"`
}

// JSON writes v with the given status.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// StatusOf maps an error to its HTTP status. Duplicate keys are reported as
// 400, which is what existing API clients expect.
func StatusOf(err error) int {
	switch {
	case errors.Is(err, apperr.ErrValidation), errors.Is(err, apperr.ErrDuplicateKey):
		return http.StatusBadRequest
	case errors.Is(err, apperr.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Error writes err as an ErrorBody. Taxonomy errors carry their own message;
// anything else is logged and answered with a generic 500.
func Error(w http.ResponseWriter, r *http.Request, log *zap.Logger, err error) {
	if !apperr.Is(err) {
		if log != nil {
			log.Error("request failed",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.String("request_id", middleware.GetReqID(r.Context())),
				zap.Error(err))
		}
		JSON(w, http.StatusInternalServerError, ErrorBody{Error: InternalMessage})
		return
	}
	JSON(w, StatusOf(err), ErrorBody{Error: err.Error(), Details: apperr.DetailsOf(err)})
}

// internal/app/features/users/handler.go
package users

import (
	"net/http"
	"net/url"

	"github.com/dalemusser/coursehub/internal/app/enrollment"
	"github.com/dalemusser/coursehub/internal/app/store/queries/usercourses"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// DefaultBulkMax caps bulk bodies when no limit is configured.
const DefaultBulkMax = 500

// Handler serves /api/usuarios. All relationship rules live in the
// enrollment Manager; handlers decode, call, and encode.
type Handler struct {
	Enroll  *enrollment.Manager
	Counter usercourses.EnrollmentCounter
	BulkMax int
	Log     *zap.Logger
}

// NewHandler constructs a users Handler. counter fills "alumnos" on the
// courses returned by the user course listing.
func NewHandler(mgr *enrollment.Manager, counter usercourses.EnrollmentCounter, bulkMax int, logger *zap.Logger) *Handler {
	if bulkMax <= 0 {
		bulkMax = DefaultBulkMax
	}
	return &Handler{
		Enroll:  mgr,
		Counter: counter,
		BulkMax: bulkMax,
		Log:     logger,
	}
}

// emailParam returns the {email} path segment, percent-decoded.
func emailParam(r *http.Request) string {
	raw := chi.URLParam(r, "email")
	if s, err := url.PathUnescape(raw); err == nil {
		return s
	}
	return raw
}

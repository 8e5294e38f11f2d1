// internal/app/features/courses/handler.go
package courses

import (
	"errors"
	"net/http"
	"strings"

	"github.com/dalemusser/coursehub/internal/app/system/apperr"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// DefaultBulkMax caps POST /coleccion bodies when no limit is configured.
const DefaultBulkMax = 500

// Handler serves /api/cursos.
type Handler struct {
	DB      *mongo.Database
	BulkMax int
	Log     *zap.Logger
}

func NewHandler(db *mongo.Database, bulkMax int, logger *zap.Logger) *Handler {
	if bulkMax <= 0 {
		bulkMax = DefaultBulkMax
	}
	return &Handler{
		DB:      db,
		BulkMax: bulkMax,
		Log:     logger,
	}
}

// courseID parses the {id} path segment.
func courseID(r *http.Request) (primitive.ObjectID, error) {
	raw := strings.TrimSpace(chi.URLParam(r, "id"))
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return primitive.NilObjectID, apperr.Invalid("invalid course id", map[string]string{"id": "must be a valid id"})
	}
	return id, nil
}

// notFound converts a missing-document error into the taxonomy.
func notFound(err error, id primitive.ObjectID) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return apperr.NotFound("course %s not found", id.Hex())
	}
	return err
}

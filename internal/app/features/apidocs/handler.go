// internal/app/features/apidocs/handler.go
package apidocs

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

// Handler serves the pre-rendered OpenAPI document.
type Handler struct {
	doc []byte
	Log *zap.Logger
}

// NewHandler renders the document once; it never changes at runtime.
func NewHandler(publicBaseURL string, logger *zap.Logger) (*Handler, error) {
	b, err := json.Marshal(Build(publicBaseURL))
	if err != nil {
		return nil, err
	}
	return &Handler{doc: b, Log: logger}, nil
}

func (h *Handler) ServeDocument(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "public, max-age=300")
	if _, err := w.Write(h.doc); err != nil {
		h.Log.Debug("write api document", zap.Error(err))
	}
}

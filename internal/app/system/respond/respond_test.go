package respond

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/coursehub/internal/app/system/apperr"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestStatusOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", apperr.Invalid("bad", nil), http.StatusBadRequest},
		{"duplicate", apperr.Duplicate("dup"), http.StatusBadRequest},
		{"not found", apperr.NotFound("missing"), http.StatusNotFound},
		{"other", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StatusOf(tt.err); got != tt.want {
				t.Errorf("StatusOf = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestError_TaxonomyMessageAndDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/usuarios", nil)

	Error(rec, req, zap.NewNop(), apperr.Invalid("invalid request", map[string]string{"email": "is required"}))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d", rec.Code)
	}
	var body ErrorBody
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Error != "invalid request" || body.Details["email"] != "is required" {
		t.Errorf("body = %+v", body)
	}
}

func TestError_InternalIsGenericAndLogged(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/cursos", nil)

	Error(rec, req, zap.New(core), errors.New("connection refused: 10.0.0.5:27017"))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d", rec.Code)
	}
	var body ErrorBody
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Error != "internal server error" {
		t.Errorf("store details leaked: %q", body.Error)
	}
	if logs.Len() != 1 {
		t.Errorf("log entries = %d, want 1", logs.Len())
	}
}

func TestJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	JSON(rec, http.StatusCreated, map[string]int{"n": 1})

	if rec.Code != http.StatusCreated {
		t.Errorf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}
}

package apidocs_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/coursehub/internal/app/features/apidocs"
	"go.uber.org/zap"
)

func TestBuild_Paths(t *testing.T) {
	doc := apidocs.Build("https://cursos.example.com/")

	if got := doc.Servers[0].URL; got != "https://cursos.example.com/api" {
		t.Errorf("server URL = %q", got)
	}

	tests := []struct {
		path    string
		methods []string
	}{
		{"/cursos", []string{"GET", "POST"}},
		{"/cursos/coleccion", []string{"POST"}},
		{"/cursos/{id}", []string{"GET", "PUT", "DELETE"}},
		{"/cursos/{id}/usuarios", []string{"GET"}},
		{"/usuarios", []string{"GET", "POST"}},
		{"/usuarios/coleccion", []string{"POST"}},
		{"/usuarios/{email}", []string{"PUT", "DELETE"}},
		{"/usuarios/{email}/cursos", []string{"POST"}},
		{"/usuarios/{usuarioId}/cursos", []string{"GET"}},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			item := doc.Paths.Value(tt.path)
			if item == nil {
				t.Fatalf("path %s missing", tt.path)
			}
			for _, m := range tt.methods {
				op := item.GetOperation(m)
				if op == nil {
					t.Errorf("%s %s missing", m, tt.path)
					continue
				}
				if len(op.Tags) != 1 || (op.Tags[0] != "Cursos" && op.Tags[0] != "Usuarios") {
					t.Errorf("%s %s tags = %v", m, tt.path, op.Tags)
				}
			}
		})
	}
}

func TestServeDocument(t *testing.T) {
	h, err := apidocs.NewHandler("http://localhost:8080", zap.NewNop())
	if err != nil {
		t.Fatalf("NewHandler failed: %v", err)
	}
	r := apidocs.Routes(h)

	for _, target := range []string{"/", "/openapi.json"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest("GET", target, nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("GET %s: status %d", target, rec.Code)
		}

		var body struct {
			OpenAPI string         `json:"openapi"`
			Paths   map[string]any `json:"paths"`
			Tags    []struct {
				Name string `json:"name"`
			} `json:"tags"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("GET %s: %v", target, err)
		}
		if body.OpenAPI != "3.0.3" || len(body.Paths) != 9 || len(body.Tags) != 2 {
			t.Errorf("GET %s: openapi=%q paths=%d tags=%d", target, body.OpenAPI, len(body.Paths), len(body.Tags))
		}
	}
}

package inputval

import (
	"errors"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dalemusser/coursehub/internal/app/system/apperr"
)

func TestIsValidEmail(t *testing.T) {
	tests := []struct {
		email string
		want  bool
	}{
		{"user@example.com", true},
		{"user.name@example.com", true},
		{"user+tag@example.com", true},
		{"user123@example.co.uk", true},

		{"", false},
		{"   ", false},
		{"user", false},
		{"user@", false},
		{"@example.com", false},
		{"user @example.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			if got := IsValidEmail(tt.email); got != tt.want {
				t.Errorf("IsValidEmail(%q) = %v, want %v", tt.email, got, tt.want)
			}
		})
	}
}

func TestIsValidName(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"Ana", true},
		{"José María", true},
		{"Ramón Núñez", true},
		{"Al", false},
		{"Ana3", false},
		{"<b>Ana</b>", false},
		{strings.Repeat("a", 30), true},
		{strings.Repeat("a", 31), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsValidName(tt.name); got != tt.want {
				t.Errorf("IsValidName(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

type signup struct {
	Email    string   `json:"email" validate:"required,email"`
	Name     string   `json:"nombre" validate:"required,nombre"`
	Password string   `json:"password" validate:"required,secreto"`
	Courses  []string `json:"cursos" validate:"omitempty,dive,objectid"`
}

func TestStruct(t *testing.T) {
	ok := signup{Email: "a@x.com", Name: "Ana", Password: "abc123", Courses: []string{"507f1f77bcf86cd799439011"}}
	if d := Struct(ok); d != nil {
		t.Fatalf("expected no details, got %v", d)
	}

	bad := signup{Email: "nope", Name: "A1", Password: "a-b", Courses: []string{"zz"}}
	d := Struct(bad)
	for _, field := range []string{"email", "nombre", "password", "cursos[0]"} {
		if _, found := d[field]; !found {
			t.Errorf("expected detail for %q, got %v", field, d)
		}
	}
}

func TestCheck_ReturnsValidationKind(t *testing.T) {
	err := Check(signup{})
	if !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if apperr.DetailsOf(err)["email"] != "is required" {
		t.Errorf("details = %v", apperr.DetailsOf(err))
	}
}

func TestParseObjectIDs(t *testing.T) {
	ids, bad := ParseObjectIDs("cursos", []string{"507f1f77bcf86cd799439011", "xyz", " 507f1f77bcf86cd799439012 "})
	if len(ids) != 2 {
		t.Errorf("len(ids) = %d, want 2", len(ids))
	}
	if bad["cursos[1]"] == "" {
		t.Errorf("expected cursos[1] flagged, got %v", bad)
	}

	ids, bad = ParseObjectIDs("cursos", nil)
	if bad != nil || len(ids) != 0 {
		t.Errorf("nil input: ids=%v bad=%v", ids, bad)
	}
}

func TestDecodeJSON(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
		field   string
	}{
		{"valid", `{"email":"a@x.com"}`, false, ""},
		{"empty", ``, true, "payload"},
		{"syntax", `{"email":`, true, "payload"},
		{"wrong type", `{"email":5}`, true, "email"},
		{"trailing", `{"email":"a@x.com"} {}`, true, "payload"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			var dst signup
			err := DecodeJSON(rec, req, &dst)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr {
				return
			}
			if !errors.Is(err, apperr.ErrValidation) {
				t.Errorf("expected validation kind, got %v", err)
			}
			if _, ok := apperr.DetailsOf(err)[tt.field]; !ok {
				t.Errorf("expected detail %q, got %v", tt.field, apperr.DetailsOf(err))
			}
		})
	}
}

func TestIsValidSecretAndURL(t *testing.T) {
	if !IsValidSecret("abc123") || IsValidSecret("ab") || IsValidSecret("abc 123") {
		t.Error("IsValidSecret mismatch")
	}
	if !IsValidURL("https://example.com/react.png") || IsValidURL("react.png") {
		t.Error("IsValidURL mismatch")
	}
}

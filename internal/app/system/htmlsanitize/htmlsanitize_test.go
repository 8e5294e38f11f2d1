package htmlsanitize_test

import (
	"testing"

	"github.com/dalemusser/coursehub/internal/app/system/htmlsanitize"
)

func TestPlainText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"plain text", "Introducción a React.js", "Introducción a React.js"},
		{"bold removed", "<b>Curso</b> básico", "Curso básico"},
		{"script removed", "Curso<script>alert('xss')</script>", "Curso"},
		{"ampersand kept", "HTML & CSS", "HTML & CSS"},
		{"surrounding space", "  Go  ", "Go"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := htmlsanitize.PlainText(tt.input); got != tt.want {
				t.Errorf("PlainText(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

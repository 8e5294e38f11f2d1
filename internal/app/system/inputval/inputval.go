// internal/app/system/inputval/inputval.go
package inputval

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/dalemusser/coursehub/internal/app/system/apperr"
	"github.com/dalemusser/coursehub/internal/app/system/limits"
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MaxBodyBytes caps JSON request bodies read by DecodeJSON.
const MaxBodyBytes = limits.MaxJSONBodySize

var (
	nameRe   = regexp.MustCompile(`^[A-Za-záéíóúÁÉÍÓÚñÑüÜ ]{3,30}$`)
	secretRe = regexp.MustCompile(`^[a-zA-Z0-9]{3,30}$`)
)

var (
	once sync.Once
	v    *validator.Validate
)

// Validator returns the shared validator. Field errors are reported under
// their JSON names, and the custom tags nombre, secreto and objectid are
// registered.
func Validator() *validator.Validate {
	once.Do(func() {
		v = validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		_ = v.RegisterValidation("nombre", func(fl validator.FieldLevel) bool {
			return nameRe.MatchString(fl.Field().String())
		})
		_ = v.RegisterValidation("secreto", func(fl validator.FieldLevel) bool {
			return secretRe.MatchString(fl.Field().String())
		})
		_ = v.RegisterValidation("objectid", func(fl validator.FieldLevel) bool {
			return primitive.IsValidObjectID(fl.Field().String())
		})
	})
	return v
}

// Struct validates s and returns field messages, or nil when s is valid.
func Struct(s any) map[string]string {
	return ToDetails(Validator().Struct(s))
}

// Check validates s and wraps any failure as an apperr validation error.
func Check(s any) error {
	if details := Struct(s); len(details) > 0 {
		return apperr.Invalid("invalid request", details)
	}
	return nil
}

// IsValidEmail reports whether s is a syntactically valid address.
func IsValidEmail(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	return Validator().Var(s, "email") == nil
}

// IsValidName reports whether s is 3-30 letters (accents allowed) or spaces.
func IsValidName(s string) bool {
	return nameRe.MatchString(s)
}

// IsValidSecret reports whether s is 3-30 letters or digits.
func IsValidSecret(s string) bool {
	return secretRe.MatchString(s)
}

// IsValidURL reports whether s is an absolute URL.
func IsValidURL(s string) bool {
	return Validator().Var(s, "url") == nil
}

// ParseObjectIDs converts hex strings to ObjectIDs. Invalid entries are
// reported by position.
func ParseObjectIDs(field string, in []string) ([]primitive.ObjectID, map[string]string) {
	out := make([]primitive.ObjectID, 0, len(in))
	var bad map[string]string
	for i, s := range in {
		id, err := primitive.ObjectIDFromHex(strings.TrimSpace(s))
		if err != nil {
			if bad == nil {
				bad = make(map[string]string)
			}
			bad[fmt.Sprintf("%s[%d]", field, i)] = "must be a valid id"
			continue
		}
		out = append(out, id)
	}
	return out, bad
}

// DecodeJSON reads a JSON body into dst, rejecting unknown trailing data and
// bodies over MaxBodyBytes.
func DecodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			return apperr.Invalid("request body too large", map[string]string{"payload": "too large"})
		}
		if errors.Is(err, io.EOF) {
			return apperr.Invalid("request body is empty", map[string]string{"payload": "is required"})
		}
		return apperr.Invalid("invalid request", ToDetails(err))
	}
	if dec.More() {
		return apperr.Invalid("invalid request", map[string]string{"payload": "must contain a single JSON value"})
	}
	return nil
}

// ToDetails converts decoding and validation errors into field messages.
func ToDetails(err error) map[string]string {
	if err == nil {
		return nil
	}

	var ute *json.UnmarshalTypeError
	if errors.As(err, &ute) && ute.Field != "" {
		return map[string]string{ute.Field: "has the wrong type"}
	}
	var se *json.SyntaxError
	if errors.As(err, &se) || ute != nil {
		return map[string]string{"payload": "invalid json"}
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		out := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			out[fe.Field()] = formatFieldError(fe)
		}
		return out
	}

	return map[string]string{"payload": "invalid payload"}
}

func formatFieldError(fe validator.FieldError) string {
	param := fe.Param()
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email"
	case "url", "http_url":
		return "must be a valid URL"
	case "nombre":
		return "must be 3-30 letters or spaces"
	case "secreto":
		return "must be 3-30 letters or digits"
	case "objectid":
		return "must be a valid id"
	case "min":
		if isNumberKind(fe.Kind()) {
			return "must be at least " + param
		}
		if fe.Kind() == reflect.Slice {
			return "must contain at least " + param + " items"
		}
		return "must be at least " + param + " characters long"
	case "max":
		if isNumberKind(fe.Kind()) {
			return "must be at most " + param
		}
		if fe.Kind() == reflect.Slice {
			return "must contain at most " + param + " items"
		}
		return "must be at most " + param + " characters long"
	case "gte":
		return "must be greater than or equal to " + param
	case "lte":
		return "must be less than or equal to " + param
	default:
		if param != "" {
			return fmt.Sprintf("validation failed for '%s' with parameter '%s'", fe.Tag(), param)
		}
		return fmt.Sprintf("validation failed for '%s'", fe.Tag())
	}
}

func isNumberKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}

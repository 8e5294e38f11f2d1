package courses

import (
	"unicode/utf8"

	coursestore "github.com/dalemusser/coursehub/internal/app/store/courses"
	"github.com/dalemusser/coursehub/internal/app/system/apperr"
	"github.com/dalemusser/coursehub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/coursehub/internal/app/system/inputval"
	"github.com/dalemusser/coursehub/internal/app/system/normalize"
	"github.com/dalemusser/coursehub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	maxTitleLen       = 200
	maxDescriptionLen = 2000
)

// courseInput is the body of POST / and of each POST /coleccion item.
// "estado" and "alumnos" are accepted but ignored: new courses are active
// and enrollment is derived.
type courseInput struct {
	Title       string  `json:"titulo" validate:"required,max=200"`
	Description string  `json:"descripcion" validate:"required,max=2000"`
	Avatar      string  `json:"imagen" validate:"omitempty,url"`
	Rating      float64 `json:"calificacion" validate:"gte=0,lte=5"`
}

func (in *courseInput) clean() {
	in.Title = normalize.Name(htmlsanitize.PlainText(in.Title))
	in.Description = htmlsanitize.PlainText(in.Description)
	in.Avatar = normalize.URL(in.Avatar)
}

func (in courseInput) model() models.Course {
	return models.Course{
		Title:       in.Title,
		Description: in.Description,
		Avatar:      in.Avatar,
		Rating:      in.Rating,
	}
}

// coursePatch is the body of PUT /{id}. Absent or empty fields are left
// untouched.
type coursePatch struct {
	Title       *string  `json:"titulo"`
	Description *string  `json:"descripcion"`
	Active      *bool    `json:"estado"`
	Avatar      *string  `json:"imagen"`
	Rating      *float64 `json:"calificacion"`
}

// update validates p and converts it into a store update.
func (p coursePatch) update() (coursestore.Update, error) {
	var upd coursestore.Update
	bad := map[string]string{}

	if p.Title != nil {
		if t := normalize.Name(htmlsanitize.PlainText(*p.Title)); t != "" {
			if utf8.RuneCountInString(t) > maxTitleLen {
				bad["titulo"] = "must be at most 200 characters"
			}
			upd.Title = &t
		}
	}
	if p.Description != nil {
		if d := htmlsanitize.PlainText(*p.Description); d != "" {
			if utf8.RuneCountInString(d) > maxDescriptionLen {
				bad["descripcion"] = "must be at most 2000 characters"
			}
			upd.Description = &d
		}
	}
	if p.Avatar != nil {
		if a := normalize.URL(*p.Avatar); a != "" {
			if !inputval.IsValidURL(a) {
				bad["imagen"] = "must be a valid URL"
			}
			upd.Avatar = &a
		}
	}
	if p.Rating != nil {
		if *p.Rating < 0 || *p.Rating > 5 {
			bad["calificacion"] = "must be between 0 and 5"
		}
		upd.Rating = p.Rating
	}
	upd.Active = p.Active

	if len(bad) > 0 {
		return coursestore.Update{}, apperr.Invalid("invalid request", bad)
	}
	return upd, nil
}

type createResponse struct {
	Course models.Course `json:"curso"`
}

// enrolledUser is one row of GET /{id}/usuarios.
type enrolledUser struct {
	ID    primitive.ObjectID `json:"_id"`
	Name  string             `json:"nombre"`
	Email string             `json:"email"`
}

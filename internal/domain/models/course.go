// internal/domain/models/course.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Course is a catalog entry users can enroll in.
//
// EnrollmentCount is not persisted. The users' course sets are the only
// source of truth for enrollment; readers fill it from an aggregation.
type Course struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Title           string             `bson:"titulo" json:"titulo"`
	TitleCI         string             `bson:"titulo_ci" json:"-"`
	Description     string             `bson:"descripcion" json:"descripcion"`
	Active          bool               `bson:"estado" json:"estado"`
	Avatar          string             `bson:"imagen,omitempty" json:"imagen,omitempty"`
	Rating          float64            `bson:"calificacion" json:"calificacion"`
	EnrollmentCount int                `bson:"-" json:"alumnos"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

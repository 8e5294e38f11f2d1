// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is a person who can enroll in courses.
//
// Email is the business key: lookups and mutations from the API go through it,
// never through _id (except the course listing of a user, which is by id).
// Courses holds the enrolled course ids as a set (no duplicates) kept in
// insertion order for display.
type User struct {
	ID           primitive.ObjectID   `bson:"_id,omitempty" json:"_id"`
	Email        string               `bson:"email" json:"email"`
	Name         string               `bson:"nombre" json:"nombre"`
	NameCI       string               `bson:"nombre_ci" json:"-"` // lowercase, diacritics-stripped
	PasswordHash string               `bson:"password" json:"-"`  // bcrypt, never serialized
	Active       bool                 `bson:"estado" json:"estado"`
	Avatar       string               `bson:"imagen,omitempty" json:"imagen,omitempty"`
	Courses      []primitive.ObjectID `bson:"cursos" json:"cursos"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

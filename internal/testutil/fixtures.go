package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/dalemusser/coursehub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Fixtures provides helper methods for creating test data.
// Documents are written straight to the collections, bypassing stores.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateCourse creates an active course with the given title.
func (f *Fixtures) CreateCourse(ctx context.Context, title string) models.Course {
	f.t.Helper()

	now := time.Now().UTC()
	c := models.Course{
		ID:          primitive.NewObjectID(),
		Title:       title,
		TitleCI:     text.Fold(title),
		Description: "Descripción de " + title,
		Active:      true,
		Rating:      4,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if _, err := f.db.Collection("cursos").InsertOne(ctx, c); err != nil {
		f.t.Fatalf("failed to create test course: %v", err)
	}
	return c
}

// CreateInactiveCourse creates a course with estado=false.
func (f *Fixtures) CreateInactiveCourse(ctx context.Context, title string) models.Course {
	f.t.Helper()

	c := f.CreateCourse(ctx, title)
	if _, err := f.db.Collection("cursos").UpdateByID(ctx, c.ID, map[string]any{
		"$set": map[string]any{"estado": false},
	}); err != nil {
		f.t.Fatalf("failed to deactivate test course: %v", err)
	}
	c.Active = false
	return c
}

// CreateUser creates an active user enrolled in the given courses.
// The stored password hash is a placeholder, not a real bcrypt hash.
func (f *Fixtures) CreateUser(ctx context.Context, name, email string, courses ...primitive.ObjectID) models.User {
	f.t.Helper()

	if courses == nil {
		courses = []primitive.ObjectID{}
	}
	now := time.Now().UTC()
	u := models.User{
		ID:           primitive.NewObjectID(),
		Email:        email,
		Name:         name,
		NameCI:       text.Fold(name),
		PasswordHash: "$2a$04$fixture",
		Active:       true,
		Courses:      courses,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if _, err := f.db.Collection("users").InsertOne(ctx, u); err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}
	return u
}

// CreateInactiveUser creates a user with estado=false.
func (f *Fixtures) CreateInactiveUser(ctx context.Context, name, email string) models.User {
	f.t.Helper()

	u := f.CreateUser(ctx, name, email)
	if _, err := f.db.Collection("users").UpdateByID(ctx, u.ID, map[string]any{
		"$set": map[string]any{"estado": false},
	}); err != nil {
		f.t.Fatalf("failed to deactivate test user: %v", err)
	}
	u.Active = false
	return u
}

// DeleteCourse hard-removes a course document, leaving dangling references.
func (f *Fixtures) DeleteCourse(ctx context.Context, id primitive.ObjectID) {
	f.t.Helper()

	if _, err := f.db.Collection("cursos").DeleteOne(ctx, map[string]any{"_id": id}); err != nil {
		f.t.Fatalf("failed to delete test course: %v", err)
	}
}

package validators_test

import (
	"testing"
	"time"

	"github.com/dalemusser/coursehub/internal/app/system/validators"
	"github.com/dalemusser/coursehub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestEnsureAll(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := validators.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}
}

func TestEnsureAll_Idempotent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := validators.EnsureAll(ctx, db); err != nil {
		t.Fatalf("First EnsureAll failed: %v", err)
	}
	if err := validators.EnsureAll(ctx, db); err != nil {
		t.Fatalf("Second EnsureAll failed: %v", err)
	}
}

func TestEnsureAll_CreatesCollections(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := validators.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	names, err := db.ListCollectionNames(ctx, bson.M{})
	if err != nil {
		t.Fatalf("ListCollectionNames failed: %v", err)
	}
	collMap := make(map[string]bool)
	for _, name := range names {
		collMap[name] = true
	}
	for _, expected := range []string{"users", "cursos"} {
		if !collMap[expected] {
			t.Errorf("expected collection %q to exist", expected)
		}
	}
}

func validUser() bson.M {
	now := time.Now().UTC()
	return bson.M{
		"email":      "ana@example.com",
		"nombre":     "Ana",
		"nombre_ci":  "ana",
		"password":   "$2a$12$hash",
		"estado":     true,
		"cursos":     bson.A{primitive.NewObjectID()},
		"created_at": now,
		"updated_at": now,
	}
}

func validCourse() bson.M {
	return bson.M{
		"titulo":       "React",
		"titulo_ci":    "react",
		"descripcion":  "Componentes y hooks",
		"estado":       true,
		"calificacion": 4.5,
	}
}

func TestUsersValidator(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := validators.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	id := primitive.NewObjectID()
	tests := []struct {
		name    string
		mutate  func(bson.M)
		wantErr bool
	}{
		{"valid", func(bson.M) {}, false},
		{"missing email", func(d bson.M) { delete(d, "email") }, true},
		{"blank nombre", func(d bson.M) { d["nombre"] = "   " }, true},
		{"estado not bool", func(d bson.M) { d["estado"] = "activo" }, true},
		{"cursos null", func(d bson.M) { d["cursos"] = nil }, true},
		{"cursos with strings", func(d bson.M) { d["cursos"] = bson.A{"abc"} }, true},
		{"cursos duplicated", func(d bson.M) { d["cursos"] = bson.A{id, id} }, true},
		{"empty cursos", func(d bson.M) { d["cursos"] = bson.A{} }, false},
	}

	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := validUser()
			doc["email"] = primitive.NewObjectID().Hex() + "@example.com"
			if i == 1 {
				delete(doc, "email")
			}
			tt.mutate(doc)
			_, err := db.Collection("users").InsertOne(ctx, doc)
			if (err != nil) != tt.wantErr {
				t.Errorf("InsertOne err = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestCoursesValidator(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := validators.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	tests := []struct {
		name    string
		mutate  func(bson.M)
		wantErr bool
	}{
		{"valid", func(bson.M) {}, false},
		{"integer rating", func(d bson.M) { d["calificacion"] = 3 }, false},
		{"no rating", func(d bson.M) { delete(d, "calificacion") }, false},
		{"missing titulo", func(d bson.M) { delete(d, "titulo") }, true},
		{"missing descripcion", func(d bson.M) { delete(d, "descripcion") }, true},
		{"rating above 5", func(d bson.M) { d["calificacion"] = 7.0 }, true},
		{"negative rating", func(d bson.M) { d["calificacion"] = -1.0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := validCourse()
			tt.mutate(doc)
			_, err := db.Collection("cursos").InsertOne(ctx, doc)
			if (err != nil) != tt.wantErr {
				t.Errorf("InsertOne err = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

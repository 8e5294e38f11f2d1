package indexes_test

import (
	"context"
	"testing"

	"github.com/dalemusser/coursehub/internal/app/system/indexes"
	"github.com/dalemusser/coursehub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func indexNames(t *testing.T, ctx context.Context, coll *mongo.Collection) map[string]bool {
	t.Helper()
	cur, err := coll.Indexes().List(ctx)
	if err != nil {
		t.Fatalf("List indexes failed: %v", err)
	}
	defer cur.Close(ctx)

	names := make(map[string]bool)
	for cur.Next(ctx) {
		var idx bson.M
		if err := cur.Decode(&idx); err != nil {
			continue
		}
		if name, ok := idx["name"].(string); ok {
			names[name] = true
		}
	}
	return names
}

func TestEnsureAll(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}
}

func TestEnsureAll_Idempotent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("First EnsureAll failed: %v", err)
	}
	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("Second EnsureAll failed: %v", err)
	}
}

func TestEnsureAll_CreatesIndexes(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	tests := []struct {
		coll string
		want []string
	}{
		{"users", []string{indexes.UsersEmailUnique, indexes.UsersActiveNameID, indexes.UsersCourses}},
		{"cursos", []string{indexes.CoursesActiveTitleID}},
	}
	for _, tt := range tests {
		t.Run(tt.coll, func(t *testing.T) {
			names := indexNames(t, ctx, db.Collection(tt.coll))
			for _, name := range tt.want {
				if !names[name] {
					t.Errorf("expected index %q to exist on %s", name, tt.coll)
				}
			}
		})
	}
}

func TestEnsureAll_RenamesIndexWithSameKeys(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, err := db.Collection("users").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "cursos", Value: 1}},
		Options: options.Index().SetName("cursos_1_legacy"),
	})
	if err != nil {
		t.Fatalf("create legacy index: %v", err)
	}

	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	names := indexNames(t, ctx, db.Collection("users"))
	if names["cursos_1_legacy"] {
		t.Error("legacy index should have been replaced")
	}
	if !names[indexes.UsersCourses] {
		t.Errorf("expected %q after reconcile", indexes.UsersCourses)
	}
}

func TestEnsureAll_UniqueEmailEnforced(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	if _, err := db.Collection("users").InsertOne(ctx, bson.M{"email": "a@x.com"}); err != nil {
		t.Fatalf("Insert user failed: %v", err)
	}
	if _, err := db.Collection("users").InsertOne(ctx, bson.M{"email": "a@x.com"}); err == nil {
		t.Error("expected duplicate key error for unique index on users.email")
	}
}

func TestEnsureAll_ReportsExistingDuplicates(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	users := db.Collection("users")
	for i := 0; i < 2; i++ {
		if _, err := users.InsertOne(ctx, bson.M{"email": "dup@x.com"}); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	if err := indexes.EnsureAll(ctx, db); err == nil {
		t.Fatal("expected error when duplicates block the unique index")
	}
}

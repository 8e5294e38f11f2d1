// internal/app/system/indexes/indexes.go
package indexes

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// Index names. Tests and operators refer to these.
const (
	UsersEmailUnique     = "uniq_users_email"
	UsersActiveNameID    = "idx_users_estado_nombreci_id"
	UsersCourses         = "idx_users_cursos"
	CoursesActiveTitleID = "idx_cursos_estado_tituloci_id"
)

/*
EnsureAll is called at startup. Each ensure* function is idempotent.
Errors are aggregated so every problem is visible and startup can fail fast.
*/
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	if err := ensureUsers(ctx, db); err != nil {
		problems = append(problems, "users: "+err.Error())
	}
	if err := ensureCourses(ctx, db); err != nil {
		problems = append(problems, "cursos: "+err.Error())
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

func ensureUsers(ctx context.Context, db *mongo.Database) error {
	return ensureIndexSet(ctx, db.Collection("users"), []mongo.IndexModel{
		{
			// email is the business key; closes the check-then-insert race
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetName(UsersEmailUnique).SetUnique(true),
		},
		{
			// active listing sorted by name
			Keys:    bson.D{{Key: "estado", Value: 1}, {Key: "nombre_ci", Value: 1}, {Key: "_id", Value: 1}},
			Options: options.Index().SetName(UsersActiveNameID),
		},
		{
			// multikey: users of a course and enrollment counts
			Keys:    bson.D{{Key: "cursos", Value: 1}},
			Options: options.Index().SetName(UsersCourses),
		},
	})
}

func ensureCourses(ctx context.Context, db *mongo.Database) error {
	return ensureIndexSet(ctx, db.Collection("cursos"), []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "estado", Value: 1}, {Key: "titulo_ci", Value: 1}, {Key: "_id", Value: 1}},
			Options: options.Index().SetName(CoursesActiveTitleID),
		},
	})
}

/* -------------------------------------------------------------------------- */
/* Reconcile a set of desired indexes for one collection                      */
/* -------------------------------------------------------------------------- */

type existingIndex struct {
	Name   string `bson:"name"`
	Key    bson.D `bson:"key"`
	Unique *bool  `bson:"unique,omitempty"`
}

func keySig(keys bson.D) string {
	parts := make([]string, 0, len(keys))
	for _, kv := range keys {
		parts = append(parts, fmt.Sprintf("%s:%v", kv.Key, kv.Value))
	}
	return strings.Join(parts, ", ")
}

func sameBoolPtr(a, b *bool) bool {
	return (a != nil && *a) == (b != nil && *b)
}

func listExisting(ctx context.Context, coll *mongo.Collection) (map[string]existingIndex, error) {
	cur, err := coll.Indexes().List(ctx)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	existing := map[string]existingIndex{} // sig -> index
	for cur.Next(ctx) {
		var idx existingIndex
		if err := cur.Decode(&idx); err != nil {
			zap.L().Warn("failed to decode existing index",
				zap.String("collection", coll.Name()),
				zap.Error(err))
			continue
		}
		existing[keySig(idx.Key)] = idx
	}
	return existing, cur.Err()
}

func ensureIndexSet(ctx context.Context, coll *mongo.Collection, models []mongo.IndexModel) error {
	// A collection that does not exist yet has no indexes; List fails on
	// some servers, which is treated as empty.
	existing, err := listExisting(ctx, coll)
	if err != nil {
		existing = map[string]existingIndex{}
	}

	var errs []string
	for _, m := range models {
		name := *m.Options.Name
		unique := m.Options.Unique
		sig := keySig(m.Keys.(bson.D))
		start := time.Now()

		fields := []zap.Field{
			zap.String("collection", coll.Name()),
			zap.String("name", name),
			zap.String("keys", sig),
			zap.Bool("unique", unique != nil && *unique),
		}

		ex, ok := existing[sig]
		if ok && sameBoolPtr(unique, ex.Unique) && ex.Name == name {
			zap.L().Info("reusing existing index", append(fields, zap.Duration("took", time.Since(start)))...)
			continue
		}

		// Same keys with another name or other options: drop and recreate.
		if ok {
			if _, err := coll.Indexes().DropOne(ctx, ex.Name); err != nil {
				zap.L().Warn("drop existing index failed", append(fields, zap.String("existing", ex.Name), zap.Error(err))...)
				errs = append(errs, fmt.Sprintf("%s(%s): drop failed: %v", coll.Name(), name, err))
				continue
			}
		}

		if _, err := coll.Indexes().CreateOne(ctx, m); err != nil {
			zap.L().Warn("index ensure failed", append(fields, zap.Error(err))...)
			errs = append(errs, describeCreateErr(coll.Name(), name, unique, err))
			continue
		}
		zap.L().Info("index ensured", append(fields, zap.Duration("took", time.Since(start)))...)
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

func describeCreateErr(coll, name string, unique *bool, err error) string {
	if unique != nil && *unique && wafflemongo.IsDup(err) {
		helper := ""
		if coll == "users" {
			helper = "; find them with " +
				`db.users.aggregate([{ $group: { _id: "$email", n: { $sum: 1 } } }, { $match: { n: { $gt: 1 } } }])`
		}
		return fmt.Sprintf("%s(%s): cannot create unique index (duplicates present)%s", coll, name, helper)
	}
	return fmt.Sprintf("%s(%s): %v", coll, name, err)
}

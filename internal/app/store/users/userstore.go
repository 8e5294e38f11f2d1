package userstore

import (
	"context"
	"time"

	"github.com/dalemusser/coursehub/internal/app/system/apperr"
	"github.com/dalemusser/coursehub/internal/app/system/normalize"
	"github.com/dalemusser/coursehub/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrDuplicateEmail is returned when attempting to create a user with an email
// that already exists. It is a DuplicateKey in the apperr taxonomy.
var ErrDuplicateEmail = apperr.Duplicate("a user with this email already exists")

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("users")}
}

// GetByID loads a user by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByEmail looks up a user by case-insensitive email. Returns mongo.ErrNoDocuments if not found.
func (s *Store) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"email": normalize.Email(email)}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// EmailExists reports whether any user (active or not) has this email.
func (s *Store) EmailExists(ctx context.Context, email string) (bool, error) {
	n, err := s.c.CountDocuments(ctx, bson.M{"email": normalize.Email(email)}, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Create inserts a new user after normalizing fields. u.Active is stored as
// given; callers decide the initial state.
// The unique email index turns a lost check-then-insert race into ErrDuplicateEmail.
func (s *Store) Create(ctx context.Context, u models.User) (models.User, error) {
	u.ID = primitive.NewObjectID()
	u.Email = normalize.Email(u.Email)
	u.Name = normalize.Name(u.Name)
	u.NameCI = text.Fold(u.Name)
	u.Avatar = normalize.URL(u.Avatar)
	u.Courses = normalize.ObjectIDs(u.Courses)

	now := time.Now().UTC().Truncate(time.Millisecond)
	u.CreatedAt = now
	u.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, u); err != nil {
		if wafflemongo.IsDup(err) {
			return models.User{}, ErrDuplicateEmail
		}
		return models.User{}, err
	}
	return u, nil
}

// Update is a merge patch. Nil fields are left untouched; AddCourses is
// unioned into the existing set, never replacing it.
type Update struct {
	Name         *string
	PasswordHash *string
	Active       *bool
	Avatar       *string
	AddCourses   []primitive.ObjectID
}

// IsZero reports whether the patch changes nothing.
func (u Update) IsZero() bool {
	return u.Name == nil && u.PasswordHash == nil && u.Active == nil && u.Avatar == nil && len(u.AddCourses) == 0
}

// Apply performs the whole patch as one atomic document update and returns
// the post-image. Returns mongo.ErrNoDocuments (and writes nothing) when no
// user has the email.
func (s *Store) Apply(ctx context.Context, email string, upd Update) (models.User, error) {
	set := bson.M{"updated_at": time.Now().UTC()}
	if upd.Name != nil {
		name := normalize.Name(*upd.Name)
		set["nombre"] = name
		set["nombre_ci"] = text.Fold(name)
	}
	if upd.PasswordHash != nil {
		set["password"] = *upd.PasswordHash
	}
	if upd.Active != nil {
		set["estado"] = *upd.Active
	}
	if upd.Avatar != nil {
		set["imagen"] = normalize.URL(*upd.Avatar)
	}

	update := bson.M{"$set": set}
	if ids := normalize.ObjectIDs(upd.AddCourses); len(ids) > 0 {
		// $addToSet keeps existing order and appends unseen ids in order.
		update["$addToSet"] = bson.M{"cursos": bson.M{"$each": ids}}
	}

	var u models.User
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"email": normalize.Email(email)},
		update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&u)
	if err != nil {
		return models.User{}, err
	}
	return u, nil
}

// SetActive flips estado. Setting the current value again is a no-op write.
func (s *Store) SetActive(ctx context.Context, email string, active bool) (models.User, error) {
	return s.Apply(ctx, email, Update{Active: &active})
}

// ForEachActive streams active users ordered by name. It stops at the first
// error returned by fn and returns it.
func (s *Store) ForEachActive(ctx context.Context, fn func(models.User) error) error {
	opts := options.Find().SetSort(bson.D{{Key: "nombre_ci", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := s.c.Find(ctx, bson.M{"estado": true}, opts)
	if err != nil {
		return err
	}
	defer cur.Close(ctx)

	for cur.Next(ctx) {
		var u models.User
		if err := cur.Decode(&u); err != nil {
			return err
		}
		if err := fn(u); err != nil {
			return err
		}
	}
	return cur.Err()
}

// ListByCourse returns every user (active or not) enrolled in courseID, by name.
func (s *Store) ListByCourse(ctx context.Context, courseID primitive.ObjectID) ([]models.User, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "nombre_ci", Value: 1}, {Key: "_id", Value: 1}}).
		SetProjection(bson.M{"password": 0})
	cur, err := s.c.Find(ctx, bson.M{"cursos": courseID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.User{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CountByCourses counts enrolled users per course id. Ids with no users are
// absent from the map.
func (s *Store) CountByCourses(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]int, error) {
	out := make(map[primitive.ObjectID]int, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	in := bson.M{"cursos": bson.M{"$in": ids}}
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: in}},
		{{Key: "$unwind", Value: "$cursos"}},
		{{Key: "$match", Value: in}},
		{{Key: "$group", Value: bson.M{"_id": "$cursos", "n": bson.M{"$sum": 1}}}},
	}
	cur, err := s.c.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	for cur.Next(ctx) {
		var row struct {
			ID primitive.ObjectID `bson:"_id"`
			N  int                `bson:"n"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, err
		}
		out[row.ID] = row.N
	}
	return out, cur.Err()
}

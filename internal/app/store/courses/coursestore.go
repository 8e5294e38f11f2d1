// internal/app/store/courses/coursestore.go
package coursestore

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/dalemusser/coursehub/internal/app/system/normalize"
	"github.com/dalemusser/coursehub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	errTitleRequired       = errors.New("titulo is required")
	errDescriptionRequired = errors.New("descripcion is required")
	errRatingRange         = errors.New("calificacion must be between 0 and 5")
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("cursos")}
}

// Create inserts a new, active course, setting TitleCI and timestamps.
// EnrollmentCount is never stored.
func (s *Store) Create(ctx context.Context, c models.Course) (models.Course, error) {
	c.ID = primitive.NewObjectID()
	c.Title = normalize.Name(c.Title)
	c.TitleCI = text.Fold(c.Title)
	c.Description = strings.TrimSpace(c.Description)
	c.Avatar = normalize.URL(c.Avatar)
	c.Active = true
	c.EnrollmentCount = 0

	if c.Title == "" {
		return models.Course{}, errTitleRequired
	}
	if c.Description == "" {
		return models.Course{}, errDescriptionRequired
	}
	if c.Rating < 0 || c.Rating > 5 {
		return models.Course{}, errRatingRange
	}

	now := time.Now().UTC().Truncate(time.Millisecond)
	c.CreatedAt = now
	c.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, c); err != nil {
		return models.Course{}, err
	}
	return c, nil
}

// GetByID loads a course regardless of estado.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Course, error) {
	var c models.Course
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&c); err != nil {
		return nil, err
	}
	return &c, nil
}

// FindByIDs returns the courses that exist among ids, active or not.
// Order is unspecified; missing ids are simply absent.
func (s *Store) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Course, error) {
	if len(ids) == 0 {
		return []models.Course{}, nil
	}
	cur, err := s.c.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Course{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ExistingIDs reports which of ids have a course document.
func (s *Store) ExistingIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]bool, error) {
	out := make(map[primitive.ObjectID]bool, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	opts := options.Find().SetProjection(bson.M{"_id": 1})
	cur, err := s.c.Find(ctx, bson.M{"_id": bson.M{"$in": ids}}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	for cur.Next(ctx) {
		var row struct {
			ID primitive.ObjectID `bson:"_id"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, err
		}
		out[row.ID] = true
	}
	return out, cur.Err()
}

// ListActive returns active courses ordered by title.
func (s *Store) ListActive(ctx context.Context) ([]models.Course, error) {
	opts := options.Find().SetSort(bson.D{{Key: "titulo_ci", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := s.c.Find(ctx, bson.M{"estado": true}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Course{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Update is a merge patch; nil fields are left untouched.
type Update struct {
	Title       *string
	Description *string
	Active      *bool
	Avatar      *string
	Rating      *float64
}

// Apply updates the present fields and returns the post-image.
// Returns mongo.ErrNoDocuments when the course does not exist.
func (s *Store) Apply(ctx context.Context, id primitive.ObjectID, upd Update) (models.Course, error) {
	set := bson.M{"updated_at": time.Now().UTC()}
	if upd.Title != nil {
		title := normalize.Name(*upd.Title)
		if title == "" {
			return models.Course{}, errTitleRequired
		}
		set["titulo"] = title
		set["titulo_ci"] = text.Fold(title)
	}
	if upd.Description != nil {
		desc := strings.TrimSpace(*upd.Description)
		if desc == "" {
			return models.Course{}, errDescriptionRequired
		}
		set["descripcion"] = desc
	}
	if upd.Active != nil {
		set["estado"] = *upd.Active
	}
	if upd.Avatar != nil {
		set["imagen"] = normalize.URL(*upd.Avatar)
	}
	if upd.Rating != nil {
		if *upd.Rating < 0 || *upd.Rating > 5 {
			return models.Course{}, errRatingRange
		}
		set["calificacion"] = *upd.Rating
	}

	var c models.Course
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&c)
	if err != nil {
		return models.Course{}, err
	}
	return c, nil
}

// SetActive flips estado. Users' course sets are not touched.
func (s *Store) SetActive(ctx context.Context, id primitive.ObjectID, active bool) (models.Course, error) {
	return s.Apply(ctx, id, Update{Active: &active})
}

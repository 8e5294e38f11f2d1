// Package enrollment owns the user/course relationship: creating and
// updating users, deactivating them, and growing their course sets.
//
// Every failure it reports is an apperr kind. Stores stay free of business
// rules beyond normalization; the Manager decides what is valid, what is a
// duplicate and what is missing.
package enrollment

import (
	"context"
	"errors"
	"strings"

	"github.com/dalemusser/coursehub/internal/app/store/queries/usercourses"
	userstore "github.com/dalemusser/coursehub/internal/app/store/users"
	"github.com/dalemusser/coursehub/internal/app/system/apperr"
	"github.com/dalemusser/coursehub/internal/app/system/authutil"
	"github.com/dalemusser/coursehub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/coursehub/internal/app/system/inputval"
	"github.com/dalemusser/coursehub/internal/app/system/normalize"
	"github.com/dalemusser/coursehub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// UserStore is the users half of the entity store.
type UserStore interface {
	Create(ctx context.Context, u models.User) (models.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Apply(ctx context.Context, email string, upd userstore.Update) (models.User, error)
	SetActive(ctx context.Context, email string, active bool) (models.User, error)
	ForEachActive(ctx context.Context, fn func(models.User) error) error
}

// CourseStore is the courses half of the entity store.
type CourseStore interface {
	usercourses.CourseFinder
	ExistingIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]bool, error)
}

// Manager coordinates the two stores. It holds no connection of its own.
type Manager struct {
	users   UserStore
	courses CourseStore
	proj    *usercourses.Projector
	log     *zap.Logger
}

// New wires a Manager. log may be nil.
func New(users UserStore, courses CourseStore, log *zap.Logger) *Manager {
	if log == nil {
		log = zap.NewNop()
	}
	return &Manager{
		users:   users,
		courses: courses,
		proj:    usercourses.New(courses),
		log:     log,
	}
}

// NewUser is the input of CreateUser and of each BulkCreateUsers item.
type NewUser struct {
	Email    string   `json:"email" validate:"required,email"`
	Name     string   `json:"nombre" validate:"required,nombre"`
	Password string   `json:"password" validate:"required,secreto"`
	Avatar   string   `json:"imagen" validate:"omitempty,url"`
	Courses  []string `json:"cursos" validate:"omitempty,dive,objectid"`
	// Active is honored by BulkCreateUsers only; nil means active.
	// CreateUser always creates active users.
	Active   *bool    `json:"estado"`
}

// UserPatch is a merge update. Nil or empty fields are left untouched;
// Courses are added to the existing set, never replacing it.
type UserPatch struct {
	Name     *string  `json:"nombre"`
	Password *string  `json:"password"`
	Active   *bool    `json:"estado"`
	Avatar   *string  `json:"imagen"`
	Courses  []string `json:"cursos"`
}

// CreateUser registers a new active user. The email must be unused by any
// user, active or not, and every referenced course must exist.
func (m *Manager) CreateUser(ctx context.Context, nu NewUser) (models.User, error) {
	return m.create(ctx, nu, true)
}

func (m *Manager) create(ctx context.Context, nu NewUser, active bool) (models.User, error) {
	u, err := m.prepare(ctx, nu)
	if err != nil {
		return models.User{}, err
	}
	u.Active = active

	created, err := m.users.Create(ctx, u)
	if errors.Is(err, userstore.ErrDuplicateEmail) {
		return models.User{}, duplicateEmail(u.Email)
	}
	if err != nil {
		return models.User{}, err
	}
	m.log.Debug("user created", zap.String("email", created.Email), zap.String("user_id", created.ID.Hex()))
	return created, nil
}

// prepare validates nu and turns it into a storable user with a hashed secret.
func (m *Manager) prepare(ctx context.Context, nu NewUser) (models.User, error) {
	nu.Email = normalize.Email(nu.Email)
	nu.Name = normalize.Name(htmlsanitize.PlainText(nu.Name))
	nu.Avatar = normalize.URL(nu.Avatar)
	if err := inputval.Check(nu); err != nil {
		return models.User{}, err
	}
	ids, bad := inputval.ParseObjectIDs("cursos", nu.Courses)
	if bad != nil {
		return models.User{}, apperr.Invalid("invalid course ids", bad)
	}

	exists, err := m.users.EmailExists(ctx, nu.Email)
	if err != nil {
		return models.User{}, err
	}
	if exists {
		return models.User{}, duplicateEmail(nu.Email)
	}

	ids = normalize.ObjectIDs(ids)
	if err := m.requireCourses(ctx, ids); err != nil {
		return models.User{}, err
	}

	hash, err := authutil.HashPassword(nu.Password)
	if err != nil {
		return models.User{}, err
	}
	return models.User{
		Email:        nu.Email,
		Name:         nu.Name,
		PasswordHash: hash,
		Avatar:       nu.Avatar,
		Courses:      ids,
	}, nil
}

// UpdateUser merges p into the user identified by email.
func (m *Manager) UpdateUser(ctx context.Context, email string, p UserPatch) (models.User, error) {
	email, err := lookupEmail(email)
	if err != nil {
		return models.User{}, err
	}

	var upd userstore.Update
	details := map[string]string{}

	if p.Name != nil {
		if name := normalize.Name(htmlsanitize.PlainText(*p.Name)); name != "" {
			if !inputval.IsValidName(name) {
				details["nombre"] = "must be 3-30 letters or spaces"
			}
			upd.Name = &name
		}
	}
	if p.Avatar != nil {
		if avatar := normalize.URL(*p.Avatar); avatar != "" {
			if !inputval.IsValidURL(avatar) {
				details["imagen"] = "must be a valid URL"
			}
			upd.Avatar = &avatar
		}
	}
	upd.Active = p.Active

	ids, bad := inputval.ParseObjectIDs("cursos", p.Courses)
	for k, v := range bad {
		details[k] = v
	}
	var password string
	if p.Password != nil && *p.Password != "" {
		if !inputval.IsValidSecret(*p.Password) {
			details["password"] = "must be 3-30 letters or digits"
		}
		password = *p.Password
	}
	if len(details) > 0 {
		return models.User{}, apperr.Invalid("invalid request", details)
	}

	upd.AddCourses = normalize.ObjectIDs(ids)
	if err := m.requireCourses(ctx, upd.AddCourses); err != nil {
		return models.User{}, err
	}
	if password != "" {
		hash, err := authutil.HashPassword(password)
		if err != nil {
			return models.User{}, err
		}
		upd.PasswordHash = &hash
	}

	if upd.IsZero() {
		// Nothing to write; updated_at stays put.
		cur, err := m.users.GetByEmail(ctx, email)
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.User{}, userNotFound(email)
		}
		if err != nil {
			return models.User{}, err
		}
		return *cur, nil
	}

	u, err := m.users.Apply(ctx, email, upd)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.User{}, userNotFound(email)
	}
	return u, err
}

// DeactivateUser sets estado=false. Deactivating twice is not an error.
func (m *Manager) DeactivateUser(ctx context.Context, email string) (models.User, error) {
	email, err := lookupEmail(email)
	if err != nil {
		return models.User{}, err
	}
	u, err := m.users.SetActive(ctx, email, false)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.User{}, userNotFound(email)
	}
	return u, err
}

// AddCourses unions ids into the user's course set in one atomic update.
// Unknown users and unknown courses are NotFound; nothing is written then.
func (m *Manager) AddCourses(ctx context.Context, email string, ids []string) (models.User, error) {
	email, err := lookupEmail(email)
	if err != nil {
		return models.User{}, err
	}
	if len(ids) == 0 {
		return models.User{}, apperr.Invalid("at least one course is required", map[string]string{"cursos": "is required"})
	}
	parsed, bad := inputval.ParseObjectIDs("cursos", ids)
	if bad != nil {
		return models.User{}, apperr.Invalid("invalid course ids", bad)
	}
	parsed = normalize.ObjectIDs(parsed)
	if err := m.requireCourses(ctx, parsed); err != nil {
		return models.User{}, err
	}

	u, err := m.users.Apply(ctx, email, userstore.Update{AddCourses: parsed})
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.User{}, userNotFound(email)
	}
	if err != nil {
		return models.User{}, err
	}
	m.log.Debug("courses added", zap.String("email", u.Email), zap.Int("count", len(parsed)))
	return u, nil
}

// EachActiveUser streams active users with course titles resolved. Titles
// are memoized for the duration of the call only.
func (m *Manager) EachActiveUser(ctx context.Context, fn func(usercourses.UserView) error) error {
	proj := m.proj.WithTitleMemo()
	return m.users.ForEachActive(ctx, func(u models.User) error {
		v, err := proj.ExpandForListing(ctx, u)
		if err != nil {
			return err
		}
		return fn(v)
	})
}

// ListActiveUsers materializes EachActiveUser.
func (m *Manager) ListActiveUsers(ctx context.Context) ([]usercourses.UserView, error) {
	out := []usercourses.UserView{}
	err := m.EachActiveUser(ctx, func(v usercourses.UserView) error {
		out = append(out, v)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ListCoursesOfUser returns the full course documents of the user with the
// given id, in enrollment order. Courses that no longer exist are omitted.
func (m *Manager) ListCoursesOfUser(ctx context.Context, userID string) ([]models.Course, error) {
	id, err := primitive.ObjectIDFromHex(strings.TrimSpace(userID))
	if err != nil {
		return nil, apperr.Invalid("invalid user id", map[string]string{"usuarioId": "must be a valid id"})
	}
	u, err := m.users.GetByID(ctx, id)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.NotFound("user %s not found", userID)
	}
	if err != nil {
		return nil, err
	}
	return m.proj.ExpandFull(ctx, *u)
}

// requireCourses fails with NotFound naming every id without a course document.
func (m *Manager) requireCourses(ctx context.Context, ids []primitive.ObjectID) error {
	if len(ids) == 0 {
		return nil
	}
	found, err := m.courses.ExistingIDs(ctx, ids)
	if err != nil {
		return err
	}
	var missing []string
	for _, id := range ids {
		if !found[id] {
			missing = append(missing, id.Hex())
		}
	}
	if len(missing) > 0 {
		return apperr.NotFound("courses not found: %s", strings.Join(missing, ", "))
	}
	return nil
}

func duplicateEmail(email string) error {
	return apperr.Duplicate("email %s is already registered", email)
}

// lookupEmail normalizes an email that addresses an existing user.
func lookupEmail(email string) (string, error) {
	email = normalize.Email(email)
	if email == "" {
		return "", apperr.Invalid("email is required", map[string]string{"email": "is required"})
	}
	if !inputval.IsValidEmail(email) {
		return "", apperr.Invalid("invalid email", map[string]string{"email": "must be a valid email"})
	}
	return email, nil
}

func userNotFound(email string) error {
	return apperr.NotFound("user %s not found", normalize.Email(email))
}

// Package usercourses resolves a user's course references into course data
// for responses. References to courses that no longer exist are silently
// omitted; inactive courses are still shown.
package usercourses

import (
	"context"

	"github.com/dalemusser/coursehub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CourseFinder loads courses by id, any status. Missing ids are absent from
// the result. *coursestore.Store satisfies it.
type CourseFinder interface {
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Course, error)
}

// EnrollmentCounter counts users per course. *userstore.Store satisfies it.
type EnrollmentCounter interface {
	CountByCourses(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]int, error)
}

// UserView is the listing shape of a user: course references replaced by
// course titles in enrollment order.
type UserView struct {
	ID      primitive.ObjectID `json:"_id"`
	Email   string             `json:"email"`
	Name    string             `json:"nombre"`
	Active  bool               `json:"estado"`
	Avatar  string             `json:"imagen,omitempty"`
	Courses []string           `json:"cursos"`
}

type memoEntry struct {
	title string
	found bool
}

// Projector expands users. The zero memo means every call hits the finder.
type Projector struct {
	finder CourseFinder
	memo   map[primitive.ObjectID]memoEntry
}

// New returns a Projector reading courses through f.
func New(f CourseFinder) *Projector {
	return &Projector{finder: f}
}

// WithTitleMemo returns a projector that remembers titles (and misses) across
// calls. It is meant for one listing request and is not safe for concurrent use.
func (p *Projector) WithTitleMemo() *Projector {
	return &Projector{finder: p.finder, memo: make(map[primitive.ObjectID]memoEntry)}
}

// ExpandForListing builds the UserView of u.
func (p *Projector) ExpandForListing(ctx context.Context, u models.User) (UserView, error) {
	titles, err := p.titles(ctx, u.Courses)
	if err != nil {
		return UserView{}, err
	}

	out := make([]string, 0, len(u.Courses))
	for _, id := range u.Courses {
		if e, ok := titles[id]; ok && e.found {
			out = append(out, e.title)
		}
	}
	return UserView{
		ID:      u.ID,
		Email:   u.Email,
		Name:    u.Name,
		Active:  u.Active,
		Avatar:  u.Avatar,
		Courses: out,
	}, nil
}

// ExpandFull returns u's courses as full documents in enrollment order.
func (p *Projector) ExpandFull(ctx context.Context, u models.User) ([]models.Course, error) {
	out := make([]models.Course, 0, len(u.Courses))
	if len(u.Courses) == 0 {
		return out, nil
	}

	found, err := p.finder.FindByIDs(ctx, u.Courses)
	if err != nil {
		return nil, err
	}
	byID := make(map[primitive.ObjectID]models.Course, len(found))
	for _, c := range found {
		byID[c.ID] = c
	}
	for _, id := range u.Courses {
		if c, ok := byID[id]; ok {
			out = append(out, c)
		}
	}
	return out, nil
}

func (p *Projector) titles(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]memoEntry, error) {
	out := make(map[primitive.ObjectID]memoEntry, len(ids))
	var fetch []primitive.ObjectID
	for _, id := range ids {
		if e, ok := p.memo[id]; ok {
			out[id] = e
			continue
		}
		fetch = append(fetch, id)
	}
	if len(fetch) == 0 {
		return out, nil
	}

	found, err := p.finder.FindByIDs(ctx, fetch)
	if err != nil {
		return nil, err
	}
	for _, c := range found {
		out[c.ID] = memoEntry{title: c.Title, found: true}
	}
	if p.memo != nil {
		for _, id := range fetch {
			p.memo[id] = out[id]
		}
	}
	return out, nil
}

// FillEnrollment sets EnrollmentCount on each course from the users'
// course sets.
func FillEnrollment(ctx context.Context, counter EnrollmentCounter, courses []models.Course) error {
	if len(courses) == 0 {
		return nil
	}
	ids := make([]primitive.ObjectID, len(courses))
	for i, c := range courses {
		ids[i] = c.ID
	}
	counts, err := counter.CountByCourses(ctx, ids)
	if err != nil {
		return err
	}
	for i := range courses {
		courses[i].EnrollmentCount = counts[courses[i].ID]
	}
	return nil
}

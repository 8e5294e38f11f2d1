package usercourses_test

import (
	"context"
	"errors"
	"testing"

	"github.com/dalemusser/coursehub/internal/app/store/queries/usercourses"
	"github.com/dalemusser/coursehub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// fakeFinder serves courses from memory and counts lookups.
type fakeFinder struct {
	courses map[primitive.ObjectID]models.Course
	calls   int
	asked   int
	err     error
}

func (f *fakeFinder) FindByIDs(_ context.Context, ids []primitive.ObjectID) ([]models.Course, error) {
	f.calls++
	f.asked += len(ids)
	if f.err != nil {
		return nil, f.err
	}
	var out []models.Course
	// reverse order so callers can't rely on finder ordering
	for i := len(ids) - 1; i >= 0; i-- {
		if c, ok := f.courses[ids[i]]; ok {
			out = append(out, c)
		}
	}
	return out, nil
}

type fakeCounter map[primitive.ObjectID]int

func (f fakeCounter) CountByCourses(context.Context, []primitive.ObjectID) (map[primitive.ObjectID]int, error) {
	return f, nil
}

func course(title string, active bool) models.Course {
	return models.Course{ID: primitive.NewObjectID(), Title: title, Active: active}
}

func newFinder(cs ...models.Course) *fakeFinder {
	f := &fakeFinder{courses: map[primitive.ObjectID]models.Course{}}
	for _, c := range cs {
		f.courses[c.ID] = c
	}
	return f
}

func TestExpandForListing(t *testing.T) {
	react, angular := course("React", true), course("Angular", false)
	gone := primitive.NewObjectID()
	p := usercourses.New(newFinder(react, angular))

	u := models.User{
		ID:      primitive.NewObjectID(),
		Email:   "a@x.com",
		Name:    "Ana",
		Active:  true,
		Courses: []primitive.ObjectID{angular.ID, gone, react.ID},
	}
	view, err := p.ExpandForListing(context.Background(), u)
	if err != nil {
		t.Fatalf("ExpandForListing failed: %v", err)
	}

	want := []string{"Angular", "React"}
	if len(view.Courses) != len(want) {
		t.Fatalf("Courses = %v, want %v", view.Courses, want)
	}
	for i := range want {
		if view.Courses[i] != want[i] {
			t.Errorf("Courses[%d] = %q, want %q", i, view.Courses[i], want[i])
		}
	}
	if view.Email != u.Email || view.Name != u.Name || view.ID != u.ID || !view.Active {
		t.Errorf("view = %+v", view)
	}
}

func TestExpandForListing_NoCourses(t *testing.T) {
	f := newFinder()
	view, err := usercourses.New(f).ExpandForListing(context.Background(), models.User{Email: "a@x.com"})
	if err != nil {
		t.Fatalf("ExpandForListing failed: %v", err)
	}
	if view.Courses == nil || len(view.Courses) != 0 {
		t.Errorf("Courses = %#v, want empty non-nil", view.Courses)
	}
	if f.calls != 0 {
		t.Errorf("finder called %d times for a user without courses", f.calls)
	}
}

func TestExpandFull_OrderAndMissing(t *testing.T) {
	a, b, c := course("A", true), course("B", true), course("C", true)
	gone := primitive.NewObjectID()
	p := usercourses.New(newFinder(a, b, c))

	got, err := p.ExpandFull(context.Background(), models.User{Courses: []primitive.ObjectID{c.ID, gone, a.ID, b.ID}})
	if err != nil {
		t.Fatalf("ExpandFull failed: %v", err)
	}
	want := []string{"C", "A", "B"}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].Title != want[i] {
			t.Errorf("got[%d] = %q, want %q", i, got[i].Title, want[i])
		}
	}
}

func TestWithTitleMemo(t *testing.T) {
	a, b := course("A", true), course("B", true)
	gone := primitive.NewObjectID()
	f := newFinder(a, b)
	p := usercourses.New(f).WithTitleMemo()
	ctx := context.Background()

	users := []models.User{
		{Courses: []primitive.ObjectID{a.ID, gone}},
		{Courses: []primitive.ObjectID{a.ID, b.ID, gone}},
		{Courses: []primitive.ObjectID{b.ID}},
	}
	for _, u := range users {
		if _, err := p.ExpandForListing(ctx, u); err != nil {
			t.Fatalf("ExpandForListing failed: %v", err)
		}
	}

	if f.asked != 3 {
		t.Errorf("finder asked for %d ids, want 3 (a, gone, b once each)", f.asked)
	}
	if f.calls != 2 {
		t.Errorf("finder calls = %d, want 2", f.calls)
	}
}

func TestExpand_PropagatesFinderError(t *testing.T) {
	f := newFinder()
	f.err = errors.New("boom")
	u := models.User{Courses: []primitive.ObjectID{primitive.NewObjectID()}}

	if _, err := usercourses.New(f).ExpandForListing(context.Background(), u); err == nil {
		t.Error("ExpandForListing: expected error")
	}
	if _, err := usercourses.New(f).ExpandFull(context.Background(), u); err == nil {
		t.Error("ExpandFull: expected error")
	}
}

func TestFillEnrollment(t *testing.T) {
	a, b := course("A", true), course("B", true)
	a.EnrollmentCount = 42
	courses := []models.Course{a, b}

	if err := usercourses.FillEnrollment(context.Background(), fakeCounter{a.ID: 2}, courses); err != nil {
		t.Fatalf("FillEnrollment failed: %v", err)
	}
	if courses[0].EnrollmentCount != 2 {
		t.Errorf("A count = %d, want 2", courses[0].EnrollmentCount)
	}
	if courses[1].EnrollmentCount != 0 {
		t.Errorf("B count = %d, want 0", courses[1].EnrollmentCount)
	}
}

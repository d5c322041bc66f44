package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/sunflowertrip/tour-booking-backend/internal/domain"
)

type fakeItineraryRepo struct {
	nextID      int64
	itineraries map[int64]domain.Itinerary
}

func newFakeItineraryRepo() *fakeItineraryRepo {
	return &fakeItineraryRepo{itineraries: map[int64]domain.Itinerary{}}
}

func (f *fakeItineraryRepo) Create(ctx context.Context, itinerary *domain.Itinerary) error {
	f.nextID++
	itinerary.ID = f.nextID
	itinerary.CreatedAt = time.Now()
	f.itineraries[itinerary.ID] = *itinerary
	return nil
}

func (f *fakeItineraryRepo) List(ctx context.Context) ([]domain.Itinerary, error) {
	out := make([]domain.Itinerary, 0, len(f.itineraries))
	for id := int64(1); id <= f.nextID; id++ {
		if it, ok := f.itineraries[id]; ok {
			out = append(out, it)
		}
	}
	return out, nil
}

func (f *fakeItineraryRepo) FindByID(ctx context.Context, id int64) (*domain.Itinerary, error) {
	it, ok := f.itineraries[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &it, nil
}

func (f *fakeItineraryRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := f.itineraries[id]; !ok {
		return sql.ErrNoRows
	}
	delete(f.itineraries, id)
	return nil
}

func TestCreateItineraryRequest(t *testing.T) {
	repo := newFakeItineraryRepo()
	svc := NewItineraryService(repo)

	itinerary, err := svc.Create(context.Background(), domain.ItineraryInput{
		Name:        " Tharindu ",
		Email:       "tharindu@example.com",
		Destination: "Sri Lanka",
		Travelers:   2,
		Children:    1,
		ChildAges:   domain.IntList{8},
		Date:        strPtr("2026-11-20"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if itinerary.Name != "Tharindu" {
		t.Fatalf("expected trimmed name, got %q", itinerary.Name)
	}
	if itinerary.Date == nil || itinerary.Date.Format("2006-01-02") != "2026-11-20" {
		t.Fatalf("expected parsed date, got %v", itinerary.Date)
	}
	if len(repo.itineraries) != 1 {
		t.Fatalf("expected 1 stored request, got %d", len(repo.itineraries))
	}
}

func TestCreateItineraryValidation(t *testing.T) {
	svc := NewItineraryService(newFakeItineraryRepo())

	_, err := svc.Create(context.Background(), domain.ItineraryInput{
		Email:     "bad",
		Travelers: 0,
		Children:  2,
		ChildAges: domain.IntList{4},
		Duration:  intPtr(0),
		Date:      strPtr("20/11/2026"),
	})
	fields := violatedFields(t, err)
	for _, want := range []string{"name", "email", "destination", "travelers", "child_ages", "duration", "date"} {
		if _, ok := fields[want]; !ok {
			t.Errorf("missing violation for %s; collected: %v", want, fields)
		}
	}
}

func TestItineraryLookupAndDelete(t *testing.T) {
	svc := NewItineraryService(newFakeItineraryRepo())

	created, err := svc.Create(context.Background(), domain.ItineraryInput{
		Name:        "Tharindu",
		Email:       "tharindu@example.com",
		Destination: "Sri Lanka",
		Travelers:   2,
	})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	if _, err := svc.Get(context.Background(), created.ID); err != nil {
		t.Fatalf("get: %v", err)
	}
	if _, err := svc.Get(context.Background(), 404); !errors.Is(err, ErrItineraryNotFound) {
		t.Fatalf("expected ErrItineraryNotFound, got %v", err)
	}

	if err := svc.Delete(context.Background(), created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := svc.Delete(context.Background(), created.ID); !errors.Is(err, ErrItineraryNotFound) {
		t.Fatalf("expected ErrItineraryNotFound on second delete, got %v", err)
	}
}

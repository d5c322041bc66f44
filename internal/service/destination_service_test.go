package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/sunflowertrip/tour-booking-backend/internal/domain"
	"github.com/sunflowertrip/tour-booking-backend/internal/repository/ports"
)

type fakeDestinationRepo struct {
	nextID       int64
	destinations map[int64]domain.Destination
	titles       map[string]int64
	locations    map[int64][]domain.Location
	attractions  map[int64][]domain.Attraction
	ethnicities  map[int64][]domain.Ethnicity
	cuisines     map[int64][]domain.Cuisine
	activities   map[int64][]domain.Activity

	// referencing tour counts per destination, consulted on delete
	tourCounts map[int64]int

	replaceLocationsErr error
}

func newFakeDestinationRepo() *fakeDestinationRepo {
	return &fakeDestinationRepo{
		destinations: map[int64]domain.Destination{},
		titles:       map[string]int64{},
		locations:    map[int64][]domain.Location{},
		attractions:  map[int64][]domain.Attraction{},
		ethnicities:  map[int64][]domain.Ethnicity{},
		cuisines:     map[int64][]domain.Cuisine{},
		activities:   map[int64][]domain.Activity{},
		tourCounts:   map[int64]int{},
	}
}

func (f *fakeDestinationRepo) List(ctx context.Context) ([]domain.Destination, error) {
	out := make([]domain.Destination, 0, len(f.destinations))
	for id := int64(1); id <= f.nextID; id++ {
		if d, ok := f.destinations[id]; ok {
			out = append(out, d)
		}
	}
	return out, nil
}

func (f *fakeDestinationRepo) Names(ctx context.Context) ([]domain.DestinationName, error) {
	var out []domain.DestinationName
	for id := int64(1); id <= f.nextID; id++ {
		if d, ok := f.destinations[id]; ok {
			out = append(out, domain.DestinationName{ID: d.ID, ParentID: d.ParentID, ImageURL: d.ImageURL, Title: d.Title})
		}
	}
	return out, nil
}

func (f *fakeDestinationRepo) FindByID(ctx context.Context, id int64) (*domain.Destination, error) {
	d, ok := f.destinations[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &d, nil
}

func (f *fakeDestinationRepo) FindByTitle(ctx context.Context, title string) (*domain.Destination, error) {
	id, ok := f.titles[title]
	if !ok {
		return nil, sql.ErrNoRows
	}
	d := f.destinations[id]
	return &d, nil
}

func (f *fakeDestinationRepo) LocationsByDestinationIDs(ctx context.Context, ids []int64) (map[int64][]domain.Location, error) {
	return pickByID(f.locations, ids), nil
}

func (f *fakeDestinationRepo) AttractionsByDestinationIDs(ctx context.Context, ids []int64) (map[int64][]domain.Attraction, error) {
	return pickByID(f.attractions, ids), nil
}

func (f *fakeDestinationRepo) EthnicitiesByDestinationIDs(ctx context.Context, ids []int64) (map[int64][]domain.Ethnicity, error) {
	return pickByID(f.ethnicities, ids), nil
}

func (f *fakeDestinationRepo) CuisinesByDestinationIDs(ctx context.Context, ids []int64) (map[int64][]domain.Cuisine, error) {
	return pickByID(f.cuisines, ids), nil
}

func (f *fakeDestinationRepo) ActivitiesByDestinationIDs(ctx context.Context, ids []int64) (map[int64][]domain.Activity, error) {
	return pickByID(f.activities, ids), nil
}

func (f *fakeDestinationRepo) InTx(ctx context.Context, fn func(ports.DestinationTx) error) error {
	snap := f.snapshot()
	if err := fn(&fakeDestinationTx{repo: f}); err != nil {
		f.restore(snap)
		return err
	}
	return nil
}

type destinationRepoState struct {
	nextID       int64
	destinations map[int64]domain.Destination
	titles       map[string]int64
	locations    map[int64][]domain.Location
	attractions  map[int64][]domain.Attraction
	ethnicities  map[int64][]domain.Ethnicity
	cuisines     map[int64][]domain.Cuisine
	activities   map[int64][]domain.Activity
}

func (f *fakeDestinationRepo) snapshot() destinationRepoState {
	return destinationRepoState{
		nextID:       f.nextID,
		destinations: copyMap(f.destinations),
		titles:       copyMap(f.titles),
		locations:    copySliceMap(f.locations),
		attractions:  copySliceMap(f.attractions),
		ethnicities:  copySliceMap(f.ethnicities),
		cuisines:     copySliceMap(f.cuisines),
		activities:   copySliceMap(f.activities),
	}
}

func (f *fakeDestinationRepo) restore(s destinationRepoState) {
	f.nextID = s.nextID
	f.destinations = s.destinations
	f.titles = s.titles
	f.locations = s.locations
	f.attractions = s.attractions
	f.ethnicities = s.ethnicities
	f.cuisines = s.cuisines
	f.activities = s.activities
}

type fakeDestinationTx struct {
	repo *fakeDestinationRepo
}

func (t *fakeDestinationTx) InsertDestination(ctx context.Context, fields domain.DestinationFields) (int64, error) {
	title := ""
	if fields.Title != nil {
		title = *fields.Title
	}
	t.repo.nextID++
	id := t.repo.nextID
	t.repo.destinations[id] = domain.Destination{
		ID:          id,
		Title:       title,
		ImageURL:    fields.ImageURL,
		Description: fields.Description,
		ParentID:    fields.ParentID,
	}
	t.repo.titles[title] = id
	return id, nil
}

func (t *fakeDestinationTx) UpdateDestinationFields(ctx context.Context, id int64, fields domain.DestinationFields) error {
	dest, ok := t.repo.destinations[id]
	if !ok {
		return sql.ErrNoRows
	}
	if fields.Title != nil {
		delete(t.repo.titles, dest.Title)
		dest.Title = *fields.Title
		t.repo.titles[dest.Title] = id
	}
	if fields.Description != nil {
		dest.Description = fields.Description
	}
	t.repo.destinations[id] = dest
	return nil
}

func (t *fakeDestinationTx) ReplaceLocations(ctx context.Context, id int64, locations []domain.Location) error {
	if t.repo.replaceLocationsErr != nil {
		return t.repo.replaceLocationsErr
	}
	t.repo.locations[id] = append([]domain.Location(nil), locations...)
	return nil
}

func (t *fakeDestinationTx) ReplaceAttractions(ctx context.Context, id int64, attractions []domain.Attraction) error {
	t.repo.attractions[id] = append([]domain.Attraction(nil), attractions...)
	return nil
}

func (t *fakeDestinationTx) ReplaceEthnicities(ctx context.Context, id int64, ethnicities []domain.Ethnicity) error {
	t.repo.ethnicities[id] = append([]domain.Ethnicity(nil), ethnicities...)
	return nil
}

func (t *fakeDestinationTx) ReplaceCuisines(ctx context.Context, id int64, cuisines []domain.Cuisine) error {
	t.repo.cuisines[id] = append([]domain.Cuisine(nil), cuisines...)
	return nil
}

func (t *fakeDestinationTx) ReplaceActivities(ctx context.Context, id int64, activities []domain.Activity) error {
	t.repo.activities[id] = append([]domain.Activity(nil), activities...)
	return nil
}

func (t *fakeDestinationTx) TourCount(ctx context.Context, id int64) (int, error) {
	return t.repo.tourCounts[id], nil
}

func (t *fakeDestinationTx) DeleteDetails(ctx context.Context, id int64) error {
	delete(t.repo.locations, id)
	delete(t.repo.attractions, id)
	delete(t.repo.ethnicities, id)
	delete(t.repo.cuisines, id)
	delete(t.repo.activities, id)
	return nil
}

func (t *fakeDestinationTx) DeleteDestination(ctx context.Context, id int64) error {
	dest, ok := t.repo.destinations[id]
	if !ok {
		return sql.ErrNoRows
	}
	delete(t.repo.titles, dest.Title)
	delete(t.repo.destinations, id)
	return nil
}

var (
	_ ports.DestinationRepository = (*fakeDestinationRepo)(nil)
	_ ports.DestinationTx         = (*fakeDestinationTx)(nil)
)

func newDestinationServiceForTests() (*DestinationService, *fakeDestinationRepo, *fakeTourRepo) {
	destRepo := newFakeDestinationRepo()
	tourRepo := newFakeTourRepo()
	return NewDestinationService(destRepo, NewTourService(tourRepo)), destRepo, tourRepo
}

func TestCreateDestinationAggregate(t *testing.T) {
	svc, repo, _ := newDestinationServiceForTests()

	details, err := svc.Create(context.Background(), domain.DestinationInput{
		Destination: domain.DestinationFields{Title: strPtr("Kandy")},
		Locations:   []domain.Location{{Name: "Peradeniya"}},
		Attractions: []domain.Attraction{{Title: "Temple of the Tooth"}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if details.Title != "Kandy" {
		t.Fatalf("expected title Kandy, got %q", details.Title)
	}
	if len(details.Locations) != 1 || details.Locations[0].Name != "Peradeniya" {
		t.Fatalf("expected location attached, got %+v", details.Locations)
	}
	if len(details.Attractions) != 1 {
		t.Fatalf("expected attraction attached, got %+v", details.Attractions)
	}
	if details.Cuisines == nil || len(details.Cuisines) != 0 {
		t.Fatalf("expected empty non-nil cuisines, got %#v", details.Cuisines)
	}
	if details.Tours == nil || len(details.Tours) != 0 {
		t.Fatalf("expected empty non-nil tours, got %#v", details.Tours)
	}
	if len(repo.destinations) != 1 {
		t.Fatalf("expected 1 stored destination, got %d", len(repo.destinations))
	}
}

func TestCreateDestinationTitleConflict(t *testing.T) {
	svc, _, _ := newDestinationServiceForTests()

	in := domain.DestinationInput{Destination: domain.DestinationFields{Title: strPtr("Galle")}}
	if _, err := svc.Create(context.Background(), in); err != nil {
		t.Fatalf("seed: %v", err)
	}

	_, err := svc.Create(context.Background(), in)
	if !errors.Is(err, ErrDestinationExists) {
		t.Fatalf("expected ErrDestinationExists, got %v", err)
	}
}

func TestCreateDestinationValidation(t *testing.T) {
	svc, repo, _ := newDestinationServiceForTests()

	badRating := 7.5
	_, err := svc.Create(context.Background(), domain.DestinationInput{
		Destination: domain.DestinationFields{Title: strPtr(" ")},
		Locations:   []domain.Location{{Name: ""}},
		Attractions: []domain.Attraction{{Title: "Fort", Rating: &badRating}},
	})

	fields := violatedFields(t, err)
	for _, want := range []string{"title", "locations[0].name", "attractions[0].rating"} {
		if _, ok := fields[want]; !ok {
			t.Errorf("missing violation for %s; collected: %v", want, fields)
		}
	}
	if len(repo.destinations) != 0 {
		t.Fatal("invalid payload must not touch storage")
	}
}

func TestCreateDestinationRollsBackOnDetailFailure(t *testing.T) {
	svc, repo, _ := newDestinationServiceForTests()
	repo.replaceLocationsErr = errors.New("constraint violated")

	_, err := svc.Create(context.Background(), domain.DestinationInput{
		Destination: domain.DestinationFields{Title: strPtr("Ella")},
		Locations:   []domain.Location{{Name: "Nine Arches"}},
	})
	if err == nil {
		t.Fatal("expected error from detail insert")
	}
	if len(repo.destinations) != 0 {
		t.Fatal("expected destination row rolled back")
	}
}

func TestUpdateDestinationCollectionSemantics(t *testing.T) {
	svc, _, _ := newDestinationServiceForTests()

	created, err := svc.Create(context.Background(), domain.DestinationInput{
		Destination: domain.DestinationFields{Title: strPtr("Sigiriya")},
		Locations:   []domain.Location{{Name: "Rock Fortress"}},
		Cuisines:    []domain.Cuisine{{Title: "Rice and curry"}},
	})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	updated, err := svc.Update(context.Background(), created.ID, domain.DestinationUpdate{
		Destination: domain.DestinationFields{Description: strPtr("Ancient rock citadel")},
		Cuisines:    []domain.Cuisine{},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Description == nil || *updated.Description != "Ancient rock citadel" {
		t.Fatalf("expected description patched, got %v", updated.Description)
	}
	if len(updated.Locations) != 1 {
		t.Fatalf("nil locations slice must leave the collection alone, got %d", len(updated.Locations))
	}
	if len(updated.Cuisines) != 0 {
		t.Fatalf("empty cuisines slice must clear the collection, got %d", len(updated.Cuisines))
	}
}

func TestUpdateDestinationNotFound(t *testing.T) {
	svc, _, _ := newDestinationServiceForTests()

	_, err := svc.Update(context.Background(), 77, domain.DestinationUpdate{
		Destination: domain.DestinationFields{Title: strPtr("Nowhere")},
	})
	if !errors.Is(err, ErrDestinationNotFound) {
		t.Fatalf("expected ErrDestinationNotFound, got %v", err)
	}
}

func TestDeleteDestinationBlockedWhenReferenced(t *testing.T) {
	svc, repo, _ := newDestinationServiceForTests()

	created, err := svc.Create(context.Background(), domain.DestinationInput{
		Destination: domain.DestinationFields{Title: strPtr("Mirissa")},
	})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	repo.tourCounts[created.ID] = 2

	if err := svc.Delete(context.Background(), created.ID); !errors.Is(err, ErrDestinationInUse) {
		t.Fatalf("expected ErrDestinationInUse, got %v", err)
	}
	if len(repo.destinations) != 1 {
		t.Fatal("referenced destination must not be deleted")
	}

	repo.tourCounts[created.ID] = 0
	if err := svc.Delete(context.Background(), created.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repo.destinations) != 0 || len(repo.locations) != 0 {
		t.Fatal("expected destination and details removed")
	}
}

func TestDetailsIncludesReferencingTours(t *testing.T) {
	svc, _, tours := newDestinationServiceForTests()

	created, err := svc.Create(context.Background(), domain.DestinationInput{
		Destination: domain.DestinationFields{Title: strPtr("Yala")},
	})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	tourID := seedTour(tours, domain.Tour{Title: "Safari Week", Slug: "safari-week"})
	tours.tourDestinations[tourID] = []int64{created.ID}

	details, err := svc.Details(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(details.Tours) != 1 || details.Tours[0].Slug != "safari-week" {
		t.Fatalf("expected referencing tour in aggregate, got %+v", details.Tours)
	}
	if details.Tours[0].Photos == nil {
		t.Fatal("embedded tours must be fully assembled aggregates")
	}
}

func TestNamesWithLocations(t *testing.T) {
	svc, _, _ := newDestinationServiceForTests()

	first, err := svc.Create(context.Background(), domain.DestinationInput{
		Destination: domain.DestinationFields{Title: strPtr("Colombo")},
		Locations:   []domain.Location{{Name: "Pettah"}, {Name: "Fort"}},
	})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	if _, err := svc.Create(context.Background(), domain.DestinationInput{
		Destination: domain.DestinationFields{Title: strPtr("Jaffna")},
	}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	out, err := svc.NamesWithLocations(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 destinations, got %d", len(out))
	}
	if out[0].ID != first.ID || len(out[0].Locations) != 2 {
		t.Fatalf("expected Colombo with 2 locations, got %+v", out[0])
	}
	if out[1].Locations == nil || len(out[1].Locations) != 0 {
		t.Fatalf("destination without locations must carry an empty slice, got %#v", out[1].Locations)
	}
}

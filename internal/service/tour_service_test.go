package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"

	"github.com/sunflowertrip/tour-booking-backend/internal/domain"
	"github.com/sunflowertrip/tour-booking-backend/internal/repository/ports"
)

// fakeTourRepo keeps the whole tour aggregate in memory and counts every
// query-shaped call so tests can assert on batching. InTx snapshots the
// state before running fn and restores it on error, mimicking a rollback.
type fakeTourRepo struct {
	queries int

	nextID     int64
	tours      map[int64]domain.Tour
	slugs      map[string]int64
	photos     map[int64][]domain.TourPhoto
	reviews    map[int64][]domain.TourReview
	roomTypes  map[int64][]domain.RoomType
	itinerary  map[int64][]domain.ItineraryDay
	departures map[int64][]domain.Departure

	knownDestinations map[int64]bool
	locationOwner     map[int64]int64
	tourDestinations  map[int64][]int64
	tourLocations     map[int64][]int64

	categories []string

	replacePhotosErr error
}

func newFakeTourRepo() *fakeTourRepo {
	return &fakeTourRepo{
		tours:             map[int64]domain.Tour{},
		slugs:             map[string]int64{},
		photos:            map[int64][]domain.TourPhoto{},
		reviews:           map[int64][]domain.TourReview{},
		roomTypes:         map[int64][]domain.RoomType{},
		itinerary:         map[int64][]domain.ItineraryDay{},
		departures:        map[int64][]domain.Departure{},
		knownDestinations: map[int64]bool{},
		locationOwner:     map[int64]int64{},
		tourDestinations:  map[int64][]int64{},
		tourLocations:     map[int64][]int64{},
	}
}

func (f *fakeTourRepo) rowFor(id int64) domain.Tour {
	tour := f.tours[id]
	tour.DestinationIDs = pq.Int64Array(append([]int64(nil), f.tourDestinations[id]...))
	tour.LocationIDs = pq.Int64Array(append([]int64(nil), f.tourLocations[id]...))
	return tour
}

func (f *fakeTourRepo) ListRows(ctx context.Context, filter domain.TourFilter) ([]domain.Tour, error) {
	f.queries++
	var out []domain.Tour
	for id := int64(1); id <= f.nextID; id++ {
		tour, ok := f.tours[id]
		if !ok {
			continue
		}
		if filter.FeaturedOnly && !tour.IsFeatured {
			continue
		}
		if filter.DestinationID != nil {
			linked := false
			for _, destID := range f.tourDestinations[id] {
				if destID == *filter.DestinationID {
					linked = true
				}
			}
			if !linked {
				continue
			}
		}
		if filter.Category != nil && (tour.Category == nil || *tour.Category != *filter.Category) {
			continue
		}
		out = append(out, f.rowFor(id))
	}
	return out, nil
}

func (f *fakeTourRepo) FindRowByID(ctx context.Context, id int64) (*domain.Tour, error) {
	f.queries++
	if _, ok := f.tours[id]; !ok {
		return nil, sql.ErrNoRows
	}
	tour := f.rowFor(id)
	return &tour, nil
}

func (f *fakeTourRepo) FindRowBySlug(ctx context.Context, slug string) (*domain.Tour, error) {
	f.queries++
	id, ok := f.slugs[slug]
	if !ok {
		return nil, sql.ErrNoRows
	}
	tour := f.rowFor(id)
	return &tour, nil
}

func (f *fakeTourRepo) PhotosByTourIDs(ctx context.Context, ids []int64) (map[int64][]domain.TourPhoto, error) {
	f.queries++
	return pickByID(f.photos, ids), nil
}

func (f *fakeTourRepo) ReviewsByTourIDs(ctx context.Context, ids []int64) (map[int64][]domain.TourReview, error) {
	f.queries++
	out := make(map[int64][]domain.TourReview)
	for id, reviews := range pickByID(f.reviews, ids) {
		approved := make([]domain.TourReview, 0, len(reviews))
		for _, review := range reviews {
			if review.IsApproved {
				approved = append(approved, review)
			}
		}
		out[id] = approved
	}
	return out, nil
}

func (f *fakeTourRepo) RoomTypesByTourIDs(ctx context.Context, ids []int64) (map[int64][]domain.RoomType, error) {
	f.queries++
	return pickByID(f.roomTypes, ids), nil
}

func (f *fakeTourRepo) ItineraryByTourIDs(ctx context.Context, ids []int64) (map[int64][]domain.ItineraryDay, error) {
	f.queries++
	return pickByID(f.itinerary, ids), nil
}

func (f *fakeTourRepo) DeparturesByTourIDs(ctx context.Context, ids []int64) (map[int64][]domain.Departure, error) {
	f.queries++
	return pickByID(f.departures, ids), nil
}

func (f *fakeTourRepo) Categories(ctx context.Context) ([]string, error) {
	f.queries++
	return f.categories, nil
}

func (f *fakeTourRepo) InTx(ctx context.Context, fn func(ports.TourTx) error) error {
	snap := f.snapshot()
	if err := fn(&fakeTourTx{repo: f}); err != nil {
		f.restore(snap)
		return err
	}
	return nil
}

type tourRepoState struct {
	nextID           int64
	tours            map[int64]domain.Tour
	slugs            map[string]int64
	photos           map[int64][]domain.TourPhoto
	reviews          map[int64][]domain.TourReview
	roomTypes        map[int64][]domain.RoomType
	itinerary        map[int64][]domain.ItineraryDay
	departures       map[int64][]domain.Departure
	tourDestinations map[int64][]int64
	tourLocations    map[int64][]int64
}

func (f *fakeTourRepo) snapshot() tourRepoState {
	return tourRepoState{
		nextID:           f.nextID,
		tours:            copyMap(f.tours),
		slugs:            copyMap(f.slugs),
		photos:           copySliceMap(f.photos),
		reviews:          copySliceMap(f.reviews),
		roomTypes:        copySliceMap(f.roomTypes),
		itinerary:        copySliceMap(f.itinerary),
		departures:       copySliceMap(f.departures),
		tourDestinations: copySliceMap(f.tourDestinations),
		tourLocations:    copySliceMap(f.tourLocations),
	}
}

func (f *fakeTourRepo) restore(s tourRepoState) {
	f.nextID = s.nextID
	f.tours = s.tours
	f.slugs = s.slugs
	f.photos = s.photos
	f.reviews = s.reviews
	f.roomTypes = s.roomTypes
	f.itinerary = s.itinerary
	f.departures = s.departures
	f.tourDestinations = s.tourDestinations
	f.tourLocations = s.tourLocations
}

func copyMap[K comparable, V any](in map[K]V) map[K]V {
	out := make(map[K]V, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func copySliceMap[V any](in map[int64][]V) map[int64][]V {
	out := make(map[int64][]V, len(in))
	for k, v := range in {
		out[k] = append([]V(nil), v...)
	}
	return out
}

func pickByID[V any](src map[int64][]V, ids []int64) map[int64][]V {
	out := make(map[int64][]V)
	for _, id := range ids {
		if items, ok := src[id]; ok {
			out[id] = append([]V(nil), items...)
		}
	}
	return out
}

type fakeTourTx struct {
	repo *fakeTourRepo
}

func (t *fakeTourTx) InsertTour(ctx context.Context, in domain.TourInput) (int64, error) {
	if _, taken := t.repo.slugs[in.Slug]; taken {
		return 0, &pgconn.PgError{Code: "23505"}
	}
	t.repo.nextID++
	id := t.repo.nextID
	tour := domain.Tour{
		ID:            id,
		Title:         in.Title,
		Slug:          in.Slug,
		Description:   in.Description,
		Category:      in.Category,
		DurationDays:  in.DurationDays,
		AvailableFrom: in.AvailableFrom,
		AvailableTo:   in.AvailableTo,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}
	if in.IsFeatured != nil {
		tour.IsFeatured = *in.IsFeatured
	}
	if in.IsCustomizable != nil {
		tour.IsCustomizable = *in.IsCustomizable
	}
	if in.FlightIncluded != nil {
		tour.FlightIncluded = *in.FlightIncluded
	}
	if in.AdvanceBookingDays != nil {
		tour.AdvanceBookingDays = *in.AdvanceBookingDays
	} else {
		tour.AdvanceBookingDays = 7
	}
	t.repo.tours[id] = tour
	t.repo.slugs[in.Slug] = id
	return id, nil
}

func (t *fakeTourTx) UpdateTourFields(ctx context.Context, id int64, patch domain.TourUpdate) error {
	tour, ok := t.repo.tours[id]
	if !ok {
		return sql.ErrNoRows
	}
	if patch.Slug != nil {
		if other, taken := t.repo.slugs[*patch.Slug]; taken && other != id {
			return &pgconn.PgError{Code: "23505"}
		}
		delete(t.repo.slugs, tour.Slug)
		tour.Slug = *patch.Slug
		t.repo.slugs[tour.Slug] = id
	}
	if patch.Title != nil {
		tour.Title = *patch.Title
	}
	if patch.Category != nil {
		tour.Category = patch.Category
	}
	if patch.AvailableFrom != nil {
		tour.AvailableFrom = patch.AvailableFrom
	}
	if patch.AvailableTo != nil {
		tour.AvailableTo = patch.AvailableTo
	}
	tour.UpdatedAt = time.Now()
	t.repo.tours[id] = tour
	return nil
}

func (t *fakeTourTx) TourByID(ctx context.Context, id int64) (*domain.Tour, error) {
	if _, ok := t.repo.tours[id]; !ok {
		return nil, sql.ErrNoRows
	}
	tour := t.repo.rowFor(id)
	return &tour, nil
}

func (t *fakeTourTx) ValidDestinationIDs(ctx context.Context, ids []int64) ([]int64, error) {
	var found []int64
	for _, id := range ids {
		if t.repo.knownDestinations[id] {
			found = append(found, id)
		}
	}
	return found, nil
}

func (t *fakeTourTx) LocationIDsWithin(ctx context.Context, destinationIDs, locationIDs []int64) ([]int64, error) {
	allowed := make(map[int64]bool, len(destinationIDs))
	for _, id := range destinationIDs {
		allowed[id] = true
	}
	var found []int64
	for _, locID := range locationIDs {
		if allowed[t.repo.locationOwner[locID]] {
			found = append(found, locID)
		}
	}
	return found, nil
}

func (t *fakeTourTx) DepartureCount(ctx context.Context, tourID int64) (int, error) {
	return len(t.repo.departures[tourID]), nil
}

func (t *fakeTourTx) ReplaceDestinations(ctx context.Context, tourID int64, ids []int64) error {
	t.repo.tourDestinations[tourID] = append([]int64(nil), ids...)
	return nil
}

func (t *fakeTourTx) ReplaceLocations(ctx context.Context, tourID int64, ids []int64) error {
	t.repo.tourLocations[tourID] = append([]int64(nil), ids...)
	return nil
}

func (t *fakeTourTx) ReplacePhotos(ctx context.Context, tourID int64, photos []domain.TourPhoto) error {
	if t.repo.replacePhotosErr != nil {
		return t.repo.replacePhotosErr
	}
	t.repo.photos[tourID] = append([]domain.TourPhoto(nil), photos...)
	return nil
}

func (t *fakeTourTx) ReplaceReviews(ctx context.Context, tourID int64, reviews []domain.TourReview) error {
	t.repo.reviews[tourID] = append([]domain.TourReview(nil), reviews...)
	return nil
}

func (t *fakeTourTx) ReplaceRoomTypes(ctx context.Context, tourID int64, roomTypes []domain.RoomType) error {
	t.repo.roomTypes[tourID] = append([]domain.RoomType(nil), roomTypes...)
	return nil
}

func (t *fakeTourTx) ReplaceItinerary(ctx context.Context, tourID int64, days []domain.ItineraryDay) error {
	t.repo.itinerary[tourID] = append([]domain.ItineraryDay(nil), days...)
	return nil
}

func (t *fakeTourTx) ReplaceDepartures(ctx context.Context, tourID int64, departures []domain.Departure) error {
	t.repo.departures[tourID] = append([]domain.Departure(nil), departures...)
	return nil
}

func (t *fakeTourTx) DeleteChildren(ctx context.Context, tourID int64) error {
	delete(t.repo.photos, tourID)
	delete(t.repo.reviews, tourID)
	delete(t.repo.roomTypes, tourID)
	delete(t.repo.itinerary, tourID)
	delete(t.repo.departures, tourID)
	delete(t.repo.tourDestinations, tourID)
	delete(t.repo.tourLocations, tourID)
	return nil
}

func (t *fakeTourTx) DeleteTour(ctx context.Context, tourID int64) error {
	tour, ok := t.repo.tours[tourID]
	if !ok {
		return sql.ErrNoRows
	}
	delete(t.repo.slugs, tour.Slug)
	delete(t.repo.tours, tourID)
	return nil
}

var (
	_ ports.TourRepository = (*fakeTourRepo)(nil)
	_ ports.TourTx         = (*fakeTourTx)(nil)
)

func strPtr(v string) *string        { return &v }
func intPtr(v int) *int              { return &v }
func boolPtr(v bool) *bool           { return &v }
func timePtr(v time.Time) *time.Time { return &v }

func validGroupInput() domain.TourInput {
	return domain.TourInput{
		Title:          "Sri Lanka Highlights",
		Slug:           "sri-lanka-highlights",
		Description:    "Ten days through the cultural triangle.",
		Category:       strPtr(domain.TourCategoryGroup),
		DurationDays:   intPtr(10),
		DestinationIDs: []int64{1},
		Departures: []domain.Departure{
			{DepartureDate: time.Now().AddDate(0, 2, 0), AvailableSeats: 16},
		},
	}
}

func seedDestination(repo *fakeTourRepo, destID int64, locationIDs ...int64) {
	repo.knownDestinations[destID] = true
	for _, locID := range locationIDs {
		repo.locationOwner[locID] = destID
	}
}

func TestCreateTourAggregateRoundTrip(t *testing.T) {
	repo := newFakeTourRepo()
	seedDestination(repo, 1, 11)
	svc := NewTourService(repo)

	in := validGroupInput()
	in.LocationIDs = []int64{11}
	in.Photos = []domain.TourPhoto{{URL: "https://cdn/img.jpg", IsPrimary: true}}
	in.Itinerary = []domain.ItineraryDay{{DayNumber: 1, Title: "Arrival", Description: "Airport pickup."}}
	in.RoomTypes = []domain.RoomType{{Name: "Double", MaxOccupancy: intPtr(2)}}

	tour, err := svc.Create(context.Background(), in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tour.ID == 0 {
		t.Fatal("expected assigned id")
	}
	if len(tour.Photos) != 1 || tour.Photos[0].URL != "https://cdn/img.jpg" {
		t.Fatalf("expected photo attached, got %+v", tour.Photos)
	}
	if len(tour.Itinerary) != 1 || tour.Itinerary[0].DayNumber != 1 {
		t.Fatalf("expected itinerary attached, got %+v", tour.Itinerary)
	}
	if len(tour.RoomTypes) != 1 {
		t.Fatalf("expected room type attached, got %+v", tour.RoomTypes)
	}
	if len(tour.Departures) != 1 || tour.Departures[0].AvailableSeats != 16 {
		t.Fatalf("expected departure attached, got %+v", tour.Departures)
	}
	if tour.Reviews == nil || len(tour.Reviews) != 0 {
		t.Fatalf("expected empty non-nil reviews, got %#v", tour.Reviews)
	}
	if len(tour.DestinationIDs) != 1 || tour.DestinationIDs[0] != 1 {
		t.Fatalf("expected destination link, got %v", tour.DestinationIDs)
	}
	if len(tour.LocationIDs) != 1 || tour.LocationIDs[0] != 11 {
		t.Fatalf("expected location link, got %v", tour.LocationIDs)
	}
}

func TestListBatchesChildQueries(t *testing.T) {
	repo := newFakeTourRepo()
	seedDestination(repo, 1)
	svc := NewTourService(repo)

	for i := 0; i < 3; i++ {
		in := validGroupInput()
		in.Slug = in.Slug + "-" + string(rune('a'+i))
		in.Photos = []domain.TourPhoto{{URL: "https://cdn/p.jpg"}}
		if _, err := svc.Create(context.Background(), in); err != nil {
			t.Fatalf("seed tour %d: %v", i, err)
		}
	}

	repo.queries = 0
	tours, err := svc.List(context.Background(), domain.TourFilter{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tours) != 3 {
		t.Fatalf("expected 3 tours, got %d", len(tours))
	}
	// One parent query plus one batch per child table, regardless of N.
	if repo.queries != 6 {
		t.Fatalf("expected 6 queries for the listing, got %d", repo.queries)
	}
	for _, tour := range tours {
		if len(tour.Photos) != 1 {
			t.Fatalf("tour %d missing photos: %+v", tour.ID, tour.Photos)
		}
		if tour.RoomTypes == nil {
			t.Fatalf("tour %d room types should be empty, not nil", tour.ID)
		}
	}
}

func TestCreateRequiresDestination(t *testing.T) {
	repo := newFakeTourRepo()
	svc := NewTourService(repo)

	in := validGroupInput()
	in.DestinationIDs = nil

	_, err := svc.Create(context.Background(), in)
	if !errors.Is(err, ErrDestinationRequired) {
		t.Fatalf("expected ErrDestinationRequired, got %v", err)
	}
}

func TestCreateGroupRequiresDepartures(t *testing.T) {
	repo := newFakeTourRepo()
	seedDestination(repo, 1)
	svc := NewTourService(repo)

	in := validGroupInput()
	in.Departures = nil

	_, err := svc.Create(context.Background(), in)
	if !errors.Is(err, ErrDeparturesRequired) {
		t.Fatalf("expected ErrDeparturesRequired, got %v", err)
	}
}

func TestCreateNonGroupRequiresAvailabilityWindow(t *testing.T) {
	repo := newFakeTourRepo()
	seedDestination(repo, 1)
	svc := NewTourService(repo)

	in := validGroupInput()
	in.Category = strPtr("private")
	in.Departures = nil

	_, err := svc.Create(context.Background(), in)
	if !errors.Is(err, ErrAvailabilityWindowRequired) {
		t.Fatalf("expected ErrAvailabilityWindowRequired, got %v", err)
	}

	in.AvailableFrom = timePtr(time.Now())
	in.AvailableTo = timePtr(time.Now().AddDate(0, 6, 0))
	if _, err := svc.Create(context.Background(), in); err != nil {
		t.Fatalf("expected window to satisfy the rule, got %v", err)
	}
}

func TestCreateRejectsUnknownDestination(t *testing.T) {
	repo := newFakeTourRepo()
	seedDestination(repo, 1)
	svc := NewTourService(repo)

	in := validGroupInput()
	in.DestinationIDs = []int64{1, 99}

	_, err := svc.Create(context.Background(), in)
	if !errors.Is(err, ErrUnknownDestination) {
		t.Fatalf("expected ErrUnknownDestination, got %v", err)
	}
	if len(repo.tours) != 0 {
		t.Fatal("expected nothing persisted")
	}
}

func TestCreateRejectsLocationOutsideDestinations(t *testing.T) {
	repo := newFakeTourRepo()
	seedDestination(repo, 1, 11)
	seedDestination(repo, 2, 22)
	svc := NewTourService(repo)

	in := validGroupInput()
	in.DestinationIDs = []int64{1}
	in.LocationIDs = []int64{22}

	_, err := svc.Create(context.Background(), in)
	if !errors.Is(err, ErrLocationOutsideDestinations) {
		t.Fatalf("expected ErrLocationOutsideDestinations, got %v", err)
	}
}

func TestCreateRollsBackOnChildFailure(t *testing.T) {
	repo := newFakeTourRepo()
	seedDestination(repo, 1)
	repo.replacePhotosErr = errors.New("disk full")
	svc := NewTourService(repo)

	in := validGroupInput()
	in.Photos = []domain.TourPhoto{{URL: "https://cdn/p.jpg"}}

	_, err := svc.Create(context.Background(), in)
	if err == nil {
		t.Fatal("expected error from child insert")
	}
	if len(repo.tours) != 0 {
		t.Fatalf("expected parent row rolled back, found %d tours", len(repo.tours))
	}
	if len(repo.slugs) != 0 {
		t.Fatal("expected slug reservation rolled back")
	}
}

func TestCreateDuplicateSlug(t *testing.T) {
	repo := newFakeTourRepo()
	seedDestination(repo, 1)
	svc := NewTourService(repo)

	if _, err := svc.Create(context.Background(), validGroupInput()); err != nil {
		t.Fatalf("seed: %v", err)
	}
	_, err := svc.Create(context.Background(), validGroupInput())
	if !errors.Is(err, ErrSlugExists) {
		t.Fatalf("expected ErrSlugExists, got %v", err)
	}
}

func TestUpdateCollectionSemantics(t *testing.T) {
	repo := newFakeTourRepo()
	seedDestination(repo, 1)
	svc := NewTourService(repo)

	in := validGroupInput()
	in.Photos = []domain.TourPhoto{{URL: "https://cdn/a.jpg"}, {URL: "https://cdn/b.jpg"}}
	in.RoomTypes = []domain.RoomType{{Name: "Twin"}}
	created, err := svc.Create(context.Background(), in)
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	// nil photos: untouched; empty room types: cleared.
	updated, err := svc.Update(context.Background(), created.ID, domain.TourUpdate{
		Title:     strPtr("Renamed"),
		RoomTypes: []domain.RoomType{},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Title != "Renamed" {
		t.Fatalf("expected title patched, got %q", updated.Title)
	}
	if len(updated.Photos) != 2 {
		t.Fatalf("nil photos slice must leave the collection alone, got %d", len(updated.Photos))
	}
	if len(updated.RoomTypes) != 0 {
		t.Fatalf("empty room types slice must clear the collection, got %d", len(updated.RoomTypes))
	}
	if updated.RoomTypes == nil {
		t.Fatal("cleared collection should still be an empty slice")
	}
}

func TestUpdateGroupDepartureRules(t *testing.T) {
	repo := newFakeTourRepo()
	seedDestination(repo, 1)
	svc := NewTourService(repo)

	created, err := svc.Create(context.Background(), validGroupInput())
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	// Patch without departures keeps the stored schedule.
	if _, err := svc.Update(context.Background(), created.ID, domain.TourUpdate{Title: strPtr("Still grouped")}); err != nil {
		t.Fatalf("expected existing departures to satisfy the rule, got %v", err)
	}

	// Explicitly clearing departures on a group tour is rejected.
	_, err = svc.Update(context.Background(), created.ID, domain.TourUpdate{Departures: []domain.Departure{}})
	if !errors.Is(err, ErrDeparturesRequired) {
		t.Fatalf("expected ErrDeparturesRequired, got %v", err)
	}
}

func TestReadsReturnOnlyApprovedReviews(t *testing.T) {
	repo := newFakeTourRepo()
	seedDestination(repo, 1)
	svc := NewTourService(repo)

	created, err := svc.Create(context.Background(), validGroupInput())
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	repo.reviews[created.ID] = []domain.TourReview{
		{TourID: created.ID, ReviewerName: "Amaya", Rating: 5, Comment: "Wonderful trip.", IsApproved: true},
		{TourID: created.ID, ReviewerName: "Spammer", Rating: 1, Comment: "Awaiting moderation."},
	}

	tour, err := svc.GetByID(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tour.Reviews) != 1 || tour.Reviews[0].ReviewerName != "Amaya" {
		t.Fatalf("expected only the approved review, got %+v", tour.Reviews)
	}

	bySlug, err := svc.GetBySlug(context.Background(), created.Slug)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(bySlug.Reviews) != 1 {
		t.Fatalf("expected only the approved review by slug, got %+v", bySlug.Reviews)
	}
}

func TestUpdateDestinationsRevalidatesStoredLocations(t *testing.T) {
	repo := newFakeTourRepo()
	seedDestination(repo, 1, 11)
	seedDestination(repo, 2, 22)
	svc := NewTourService(repo)

	in := validGroupInput()
	in.LocationIDs = []int64{11}
	created, err := svc.Create(context.Background(), in)
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	// Replacing the destination set while keeping the stored location
	// links must not strand them outside the new set.
	_, err = svc.Update(context.Background(), created.ID, domain.TourUpdate{DestinationIDs: []int64{2}})
	if !errors.Is(err, ErrLocationOutsideDestinations) {
		t.Fatalf("expected ErrLocationOutsideDestinations, got %v", err)
	}

	updated, err := svc.Update(context.Background(), created.ID, domain.TourUpdate{
		DestinationIDs: []int64{2},
		LocationIDs:    []int64{22},
	})
	if err != nil {
		t.Fatalf("expected matching locations to pass, got %v", err)
	}
	if len(updated.LocationIDs) != 1 || updated.LocationIDs[0] != 22 {
		t.Fatalf("expected location links replaced, got %v", updated.LocationIDs)
	}
}

func TestUpdateCannotClearDestinations(t *testing.T) {
	repo := newFakeTourRepo()
	seedDestination(repo, 1)
	svc := NewTourService(repo)

	created, err := svc.Create(context.Background(), validGroupInput())
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	_, err = svc.Update(context.Background(), created.ID, domain.TourUpdate{DestinationIDs: []int64{}})
	if !errors.Is(err, ErrDestinationRequired) {
		t.Fatalf("expected ErrDestinationRequired, got %v", err)
	}
}

func TestUpdateNotFound(t *testing.T) {
	repo := newFakeTourRepo()
	svc := NewTourService(repo)

	_, err := svc.Update(context.Background(), 42, domain.TourUpdate{Title: strPtr("nope")})
	if !errors.Is(err, ErrTourNotFound) {
		t.Fatalf("expected ErrTourNotFound, got %v", err)
	}
}

func TestDeleteTourRemovesChildren(t *testing.T) {
	repo := newFakeTourRepo()
	seedDestination(repo, 1)
	svc := NewTourService(repo)

	in := validGroupInput()
	in.Photos = []domain.TourPhoto{{URL: "https://cdn/p.jpg"}}
	created, err := svc.Create(context.Background(), in)
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	if err := svc.Delete(context.Background(), created.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repo.tours) != 0 || len(repo.photos) != 0 || len(repo.departures) != 0 {
		t.Fatal("expected tour and children removed")
	}

	if err := svc.Delete(context.Background(), created.ID); !errors.Is(err, ErrTourNotFound) {
		t.Fatalf("expected ErrTourNotFound on second delete, got %v", err)
	}
}

func TestGetBySlug(t *testing.T) {
	repo := newFakeTourRepo()
	seedDestination(repo, 1)
	svc := NewTourService(repo)

	created, err := svc.Create(context.Background(), validGroupInput())
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	tour, err := svc.GetBySlug(context.Background(), created.Slug)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tour.ID != created.ID {
		t.Fatalf("expected tour %d, got %d", created.ID, tour.ID)
	}

	if _, err := svc.GetBySlug(context.Background(), "missing"); !errors.Is(err, ErrTourNotFound) {
		t.Fatalf("expected ErrTourNotFound, got %v", err)
	}
}

func TestFeaturedFilters(t *testing.T) {
	repo := newFakeTourRepo()
	seedDestination(repo, 1)
	svc := NewTourService(repo)

	plain := validGroupInput()
	if _, err := svc.Create(context.Background(), plain); err != nil {
		t.Fatalf("seed: %v", err)
	}
	featured := validGroupInput()
	featured.Slug = "featured-trip"
	featured.IsFeatured = boolPtr(true)
	if _, err := svc.Create(context.Background(), featured); err != nil {
		t.Fatalf("seed: %v", err)
	}

	tours, err := svc.Featured(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tours) != 1 || tours[0].Slug != "featured-trip" {
		t.Fatalf("expected only the featured tour, got %+v", tours)
	}
}

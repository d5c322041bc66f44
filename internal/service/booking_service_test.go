package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/sunflowertrip/tour-booking-backend/internal/domain"
)

type fakeBookingRepo struct {
	nextID   int64
	bookings map[int64]domain.Booking
	byRef    map[uuid.UUID]int64

	createErr error
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: map[int64]domain.Booking{}, byRef: map[uuid.UUID]int64{}}
}

func (f *fakeBookingRepo) Create(ctx context.Context, booking *domain.Booking) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.nextID++
	booking.ID = f.nextID
	booking.CreatedAt = time.Now()
	f.bookings[booking.ID] = *booking
	f.byRef[booking.Reference] = booking.ID
	return nil
}

func (f *fakeBookingRepo) List(ctx context.Context) ([]domain.Booking, error) {
	out := make([]domain.Booking, 0, len(f.bookings))
	for id := int64(1); id <= f.nextID; id++ {
		if b, ok := f.bookings[id]; ok {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) FindByID(ctx context.Context, id int64) (*domain.Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &b, nil
}

func (f *fakeBookingRepo) FindByReference(ctx context.Context, reference uuid.UUID) (*domain.Booking, error) {
	id, ok := f.byRef[reference]
	if !ok {
		return nil, sql.ErrNoRows
	}
	b := f.bookings[id]
	return &b, nil
}

func (f *fakeBookingRepo) Delete(ctx context.Context, id int64) error {
	b, ok := f.bookings[id]
	if !ok {
		return sql.ErrNoRows
	}
	delete(f.byRef, b.Reference)
	delete(f.bookings, id)
	return nil
}

type fakeEnquiryRepo struct {
	nextID    int64
	enquiries map[int64]domain.Enquiry
}

func newFakeEnquiryRepo() *fakeEnquiryRepo {
	return &fakeEnquiryRepo{enquiries: map[int64]domain.Enquiry{}}
}

func (f *fakeEnquiryRepo) Create(ctx context.Context, enquiry *domain.Enquiry) error {
	f.nextID++
	enquiry.ID = f.nextID
	enquiry.CreatedAt = time.Now()
	f.enquiries[enquiry.ID] = *enquiry
	return nil
}

func (f *fakeEnquiryRepo) List(ctx context.Context) ([]domain.Enquiry, error) {
	out := make([]domain.Enquiry, 0, len(f.enquiries))
	for id := int64(1); id <= f.nextID; id++ {
		if e, ok := f.enquiries[id]; ok {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeEnquiryRepo) FindByID(ctx context.Context, id int64) (*domain.Enquiry, error) {
	e, ok := f.enquiries[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &e, nil
}

func (f *fakeEnquiryRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := f.enquiries[id]; !ok {
		return sql.ErrNoRows
	}
	delete(f.enquiries, id)
	return nil
}

func seedTour(repo *fakeTourRepo, tour domain.Tour) int64 {
	repo.nextID++
	tour.ID = repo.nextID
	repo.tours[tour.ID] = tour
	if tour.Slug != "" {
		repo.slugs[tour.Slug] = tour.ID
	}
	return tour.ID
}

func newBookingServiceForTests() (*BookingService, *fakeBookingRepo, *fakeEnquiryRepo, *fakeTourRepo) {
	bookings := newFakeBookingRepo()
	enquiries := newFakeEnquiryRepo()
	tours := newFakeTourRepo()
	return NewBookingService(bookings, enquiries, tours), bookings, enquiries, tours
}

func validBookingInput(tourID int64, travelDate time.Time) domain.BookingInput {
	return domain.BookingInput{
		TourID:     tourID,
		Name:       "Nimal Perera",
		Email:      "nimal@example.com",
		Adults:     2,
		TravelDate: travelDate.Format("2006-01-02"),
	}
}

func TestCreateBookingGroupDeparture(t *testing.T) {
	svc, bookings, _, tours := newBookingServiceForTests()

	travel := time.Now().AddDate(0, 3, 0)
	tourID := seedTour(tours, domain.Tour{
		Title:    "Kandy Circuit",
		Category: strPtr(domain.TourCategoryGroup),
	})
	tours.departures[tourID] = []domain.Departure{
		{TourID: tourID, DepartureDate: travel, AvailableSeats: 4},
	}

	booking, err := svc.CreateBooking(context.Background(), validBookingInput(tourID, travel))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if booking.Reference == uuid.Nil {
		t.Fatal("expected generated booking reference")
	}
	if len(bookings.bookings) != 1 {
		t.Fatalf("expected 1 stored booking, got %d", len(bookings.bookings))
	}

	got, err := svc.GetBookingByReference(context.Background(), booking.Reference)
	if err != nil {
		t.Fatalf("lookup by reference: %v", err)
	}
	if got.ID != booking.ID {
		t.Fatalf("expected booking %d, got %d", booking.ID, got.ID)
	}
}

func TestCreateBookingNoDepartureOnDate(t *testing.T) {
	svc, _, _, tours := newBookingServiceForTests()

	travel := time.Now().AddDate(0, 3, 0)
	tourID := seedTour(tours, domain.Tour{Category: strPtr(domain.TourCategoryGroup)})
	tours.departures[tourID] = []domain.Departure{
		{TourID: tourID, DepartureDate: travel.AddDate(0, 0, 7), AvailableSeats: 10},
	}

	_, err := svc.CreateBooking(context.Background(), validBookingInput(tourID, travel))
	if !errors.Is(err, ErrNoDepartureOnDate) {
		t.Fatalf("expected ErrNoDepartureOnDate, got %v", err)
	}
}

func TestCreateBookingInsufficientSeats(t *testing.T) {
	svc, _, _, tours := newBookingServiceForTests()

	travel := time.Now().AddDate(0, 3, 0)
	tourID := seedTour(tours, domain.Tour{Category: strPtr(domain.TourCategoryGroup)})
	tours.departures[tourID] = []domain.Departure{
		{TourID: tourID, DepartureDate: travel, AvailableSeats: 3},
	}

	in := validBookingInput(tourID, travel)
	in.Adults = 2
	in.Children = 2
	in.ChildAges = domain.IntList{6, 9}

	_, err := svc.CreateBooking(context.Background(), in)
	if !errors.Is(err, ErrNoDepartureOnDate) {
		t.Fatalf("expected ErrNoDepartureOnDate for oversized party, got %v", err)
	}
}

func TestCreateBookingOutsideAvailabilityWindow(t *testing.T) {
	svc, _, _, tours := newBookingServiceForTests()

	tourID := seedTour(tours, domain.Tour{
		Category:      strPtr("private"),
		AvailableFrom: timePtr(time.Now().AddDate(0, 1, 0)),
		AvailableTo:   timePtr(time.Now().AddDate(0, 2, 0)),
	})

	_, err := svc.CreateBooking(context.Background(), validBookingInput(tourID, time.Now().AddDate(0, 6, 0)))
	if !errors.Is(err, ErrTravelDateOutsideWindow) {
		t.Fatalf("expected ErrTravelDateOutsideWindow, got %v", err)
	}
}

func TestCreateBookingInsideAvailabilityWindow(t *testing.T) {
	svc, _, _, tours := newBookingServiceForTests()

	travel := time.Now().AddDate(0, 1, 15)
	tourID := seedTour(tours, domain.Tour{
		Category:      strPtr("private"),
		AvailableFrom: timePtr(time.Now().AddDate(0, 1, 0)),
		AvailableTo:   timePtr(time.Now().AddDate(0, 2, 0)),
	})

	if _, err := svc.CreateBooking(context.Background(), validBookingInput(tourID, travel)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCreateBookingAdvanceWindow(t *testing.T) {
	svc, _, _, tours := newBookingServiceForTests()

	tourID := seedTour(tours, domain.Tour{
		Category:           strPtr("private"),
		AdvanceBookingDays: 60,
		AvailableFrom:      timePtr(time.Now()),
		AvailableTo:        timePtr(time.Now().AddDate(1, 0, 0)),
	})

	_, err := svc.CreateBooking(context.Background(), validBookingInput(tourID, time.Now().AddDate(0, 0, 10)))
	if !errors.Is(err, ErrAdvanceBookingWindow) {
		t.Fatalf("expected ErrAdvanceBookingWindow, got %v", err)
	}
}

func TestCreateBookingAdvanceWindowBoundary(t *testing.T) {
	svc, _, _, tours := newBookingServiceForTests()

	tourID := seedTour(tours, domain.Tour{
		Category:           strPtr("private"),
		AdvanceBookingDays: 60,
		AvailableFrom:      timePtr(time.Now()),
		AvailableTo:        timePtr(time.Now().AddDate(1, 0, 0)),
	})

	// Travelling exactly AdvanceBookingDays from today is allowed,
	// whatever the local timezone offset is.
	if _, err := svc.CreateBooking(context.Background(), validBookingInput(tourID, time.Now().AddDate(0, 0, 60))); err != nil {
		t.Fatalf("expected boundary date to be accepted, got %v", err)
	}
}

func TestCreateBookingFlightOptionUnavailable(t *testing.T) {
	svc, _, _, tours := newBookingServiceForTests()

	tourID := seedTour(tours, domain.Tour{
		Category:       strPtr("private"),
		FlightIncluded: false,
		AvailableFrom:  timePtr(time.Now()),
		AvailableTo:    timePtr(time.Now().AddDate(1, 0, 0)),
	})

	in := validBookingInput(tourID, time.Now().AddDate(0, 3, 0))
	in.FlightOption = strPtr(domain.FlightOptionWith)

	_, err := svc.CreateBooking(context.Background(), in)
	if !errors.Is(err, ErrFlightOptionUnavailable) {
		t.Fatalf("expected ErrFlightOptionUnavailable, got %v", err)
	}
}

func TestCreateBookingCustomDaysRequireCustomizable(t *testing.T) {
	svc, _, _, tours := newBookingServiceForTests()

	tourID := seedTour(tours, domain.Tour{
		Category:       strPtr("private"),
		DurationDays:   intPtr(7),
		IsCustomizable: false,
		AvailableFrom:  timePtr(time.Now()),
		AvailableTo:    timePtr(time.Now().AddDate(1, 0, 0)),
	})

	in := validBookingInput(tourID, time.Now().AddDate(0, 3, 0))
	in.Days = intPtr(10)

	_, err := svc.CreateBooking(context.Background(), in)
	if !errors.Is(err, ErrTourNotCustomizable) {
		t.Fatalf("expected ErrTourNotCustomizable, got %v", err)
	}
}

func TestCreateBookingUnknownTour(t *testing.T) {
	svc, _, _, _ := newBookingServiceForTests()

	_, err := svc.CreateBooking(context.Background(), validBookingInput(99, time.Now().AddDate(0, 3, 0)))
	if !errors.Is(err, ErrTourNotFound) {
		t.Fatalf("expected ErrTourNotFound, got %v", err)
	}
}

func TestCreateBookingCollectsValidationErrors(t *testing.T) {
	svc, bookings, _, _ := newBookingServiceForTests()

	_, err := svc.CreateBooking(context.Background(), domain.BookingInput{
		Email:      "not-an-email",
		Adults:     0,
		Children:   2,
		ChildAges:  domain.IntList{5},
		Days:       intPtr(0),
		TravelDate: "31-12-2026",
	})

	fields := violatedFields(t, err)
	for _, want := range []string{"name", "email", "tour_id", "adults", "child_ages", "days", "travel_date"} {
		if _, ok := fields[want]; !ok {
			t.Errorf("missing violation for %s; collected: %v", want, fields)
		}
	}
	if len(bookings.bookings) != 0 {
		t.Fatal("invalid payload must not be stored")
	}
}

func TestBookingLookupsAndDelete(t *testing.T) {
	svc, bookings, _, tours := newBookingServiceForTests()

	travel := time.Now().AddDate(0, 3, 0)
	tourID := seedTour(tours, domain.Tour{
		Category:      strPtr("private"),
		AvailableFrom: timePtr(time.Now()),
		AvailableTo:   timePtr(time.Now().AddDate(1, 0, 0)),
	})

	created, err := svc.CreateBooking(context.Background(), validBookingInput(tourID, travel))
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	listed, err := svc.ListBookings(context.Background())
	if err != nil || len(listed) != 1 {
		t.Fatalf("expected 1 booking, got %d (err %v)", len(listed), err)
	}

	if _, err := svc.GetBooking(context.Background(), created.ID); err != nil {
		t.Fatalf("get by id: %v", err)
	}
	if _, err := svc.GetBooking(context.Background(), 404); !errors.Is(err, ErrBookingNotFound) {
		t.Fatalf("expected ErrBookingNotFound, got %v", err)
	}
	if _, err := svc.GetBookingByReference(context.Background(), uuid.New()); !errors.Is(err, ErrBookingNotFound) {
		t.Fatalf("expected ErrBookingNotFound for unknown reference, got %v", err)
	}

	if err := svc.DeleteBooking(context.Background(), created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := svc.DeleteBooking(context.Background(), created.ID); !errors.Is(err, ErrBookingNotFound) {
		t.Fatalf("expected ErrBookingNotFound on second delete, got %v", err)
	}
	if len(bookings.bookings) != 0 {
		t.Fatal("expected booking removed")
	}
}

func TestCreateEnquiry(t *testing.T) {
	svc, _, enquiries, tours := newBookingServiceForTests()
	tourID := seedTour(tours, domain.Tour{Title: "Ella Escape"})

	enquiry, err := svc.CreateEnquiry(context.Background(), domain.EnquiryInput{
		TourID: tourID,
		Name:   "  Sanduni  ",
		Email:  "sanduni@example.com",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if enquiry.Name != "Sanduni" {
		t.Fatalf("expected trimmed name, got %q", enquiry.Name)
	}
	if len(enquiries.enquiries) != 1 {
		t.Fatalf("expected 1 stored enquiry, got %d", len(enquiries.enquiries))
	}
}

func TestCreateEnquiryUnknownTour(t *testing.T) {
	svc, _, _, _ := newBookingServiceForTests()

	_, err := svc.CreateEnquiry(context.Background(), domain.EnquiryInput{
		TourID: 5,
		Name:   "Sanduni",
		Email:  "sanduni@example.com",
	})
	if !errors.Is(err, ErrTourNotFound) {
		t.Fatalf("expected ErrTourNotFound, got %v", err)
	}
}

func TestCreateEnquiryValidation(t *testing.T) {
	svc, _, _, _ := newBookingServiceForTests()

	_, err := svc.CreateEnquiry(context.Background(), domain.EnquiryInput{Email: "bad"})
	fields := violatedFields(t, err)
	for _, want := range []string{"name", "email", "tour_id"} {
		if _, ok := fields[want]; !ok {
			t.Errorf("missing violation for %s; collected: %v", want, fields)
		}
	}
}

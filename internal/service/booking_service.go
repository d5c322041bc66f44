package service

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sunflowertrip/tour-booking-backend/internal/domain"
	"github.com/sunflowertrip/tour-booking-backend/internal/repository/ports"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

const dateLayout = "2006-01-02"

// BookingService handles bookings and tour enquiries. A booking is only
// accepted when the requested travel date is actually bookable: group
// tours need a scheduled departure with enough seats, other tours need
// the date inside their availability window.
type BookingService struct {
	bookings  ports.BookingRepository
	enquiries ports.EnquiryRepository
	tours     ports.TourRepository
}

func NewBookingService(bookingRepo ports.BookingRepository, enquiryRepo ports.EnquiryRepository, tourRepo ports.TourRepository) *BookingService {
	return &BookingService{bookings: bookingRepo, enquiries: enquiryRepo, tours: tourRepo}
}

func (s *BookingService) CreateBooking(ctx context.Context, in domain.BookingInput) (*domain.Booking, error) {
	travelDate, err := validateBookingInput(in)
	if err != nil {
		return nil, err
	}

	tour, err := s.tours.FindRowByID(ctx, in.TourID)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrTourNotFound
		}
		return nil, err
	}

	if in.FlightOption != nil && *in.FlightOption == domain.FlightOptionWith && !tour.FlightIncluded {
		return nil, ErrFlightOptionUnavailable
	}
	if in.Days != nil && tour.DurationDays != nil && *in.Days != *tour.DurationDays && !tour.IsCustomizable {
		return nil, ErrTourNotCustomizable
	}

	earliest := time.Now().AddDate(0, 0, tour.AdvanceBookingDays)
	minDate := time.Date(earliest.Year(), earliest.Month(), earliest.Day(), 0, 0, 0, 0, travelDate.Location())
	if travelDate.Before(minDate) {
		return nil, ErrAdvanceBookingWindow
	}

	if tour.IsGroup() {
		if err := s.checkDeparture(ctx, tour.ID, travelDate, in.Adults+in.Children); err != nil {
			return nil, err
		}
	} else if !availabilityWindowContains(tour, travelDate) {
		return nil, ErrTravelDateOutsideWindow
	}

	booking := &domain.Booking{
		Reference:    uuid.New(),
		TourID:       in.TourID,
		Name:         strings.TrimSpace(in.Name),
		Email:        strings.TrimSpace(in.Email),
		Phone:        in.Phone,
		Days:         in.Days,
		Adults:       in.Adults,
		Children:     in.Children,
		ChildAges:    in.ChildAges,
		HotelRating:  in.HotelRating,
		MealPlan:     in.MealPlan,
		FlightOption: in.FlightOption,
		FlightNumber: in.FlightNumber,
		TravelDate:   travelDate,
	}
	if err := s.bookings.Create(ctx, booking); err != nil {
		return nil, err
	}
	return booking, nil
}

func (s *BookingService) ListBookings(ctx context.Context) ([]domain.Booking, error) {
	return s.bookings.List(ctx)
}

func (s *BookingService) GetBooking(ctx context.Context, id int64) (*domain.Booking, error) {
	booking, err := s.bookings.FindByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return booking, nil
}

func (s *BookingService) GetBookingByReference(ctx context.Context, reference uuid.UUID) (*domain.Booking, error) {
	booking, err := s.bookings.FindByReference(ctx, reference)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return booking, nil
}

func (s *BookingService) DeleteBooking(ctx context.Context, id int64) error {
	if err := s.bookings.Delete(ctx, id); err != nil {
		if isNotFound(err) {
			return ErrBookingNotFound
		}
		return err
	}
	return nil
}

func (s *BookingService) CreateEnquiry(ctx context.Context, in domain.EnquiryInput) (*domain.Enquiry, error) {
	verr := &ValidationError{}
	if strings.TrimSpace(in.Name) == "" {
		verr.add("name", "is required")
	}
	if strings.TrimSpace(in.Email) == "" {
		verr.add("email", "is required")
	} else if !emailPattern.MatchString(in.Email) {
		verr.add("email", "is not a valid email address")
	}
	if in.TourID <= 0 {
		verr.add("tour_id", "is required")
	}
	if err := verr.orNil(); err != nil {
		return nil, err
	}

	if _, err := s.tours.FindRowByID(ctx, in.TourID); err != nil {
		if isNotFound(err) {
			return nil, ErrTourNotFound
		}
		return nil, err
	}

	enquiry := &domain.Enquiry{
		TourID:      in.TourID,
		Name:        strings.TrimSpace(in.Name),
		Email:       strings.TrimSpace(in.Email),
		Phone:       in.Phone,
		Description: in.Description,
	}
	if err := s.enquiries.Create(ctx, enquiry); err != nil {
		return nil, err
	}
	return enquiry, nil
}

func (s *BookingService) ListEnquiries(ctx context.Context) ([]domain.Enquiry, error) {
	return s.enquiries.List(ctx)
}

func (s *BookingService) GetEnquiry(ctx context.Context, id int64) (*domain.Enquiry, error) {
	enquiry, err := s.enquiries.FindByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrEnquiryNotFound
		}
		return nil, err
	}
	return enquiry, nil
}

func (s *BookingService) DeleteEnquiry(ctx context.Context, id int64) error {
	if err := s.enquiries.Delete(ctx, id); err != nil {
		if isNotFound(err) {
			return ErrEnquiryNotFound
		}
		return err
	}
	return nil
}

func (s *BookingService) checkDeparture(ctx context.Context, tourID int64, travelDate time.Time, partySize int) error {
	departures, err := s.tours.DeparturesByTourIDs(ctx, []int64{tourID})
	if err != nil {
		return err
	}
	for _, dep := range departures[tourID] {
		if sameDay(dep.DepartureDate, travelDate) {
			if dep.AvailableSeats >= partySize {
				return nil
			}
		}
	}
	return ErrNoDepartureOnDate
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}

func validateBookingInput(in domain.BookingInput) (time.Time, error) {
	verr := &ValidationError{}

	if strings.TrimSpace(in.Name) == "" {
		verr.add("name", "is required")
	}
	if strings.TrimSpace(in.Email) == "" {
		verr.add("email", "is required")
	} else if !emailPattern.MatchString(in.Email) {
		verr.add("email", "is not a valid email address")
	}
	if in.TourID <= 0 {
		verr.add("tour_id", "is required")
	}
	if in.Adults < 1 {
		verr.add("adults", "must be at least 1")
	}
	if in.Children < 0 {
		verr.add("children", "must not be negative")
	}
	if in.ChildAges != nil && len(in.ChildAges) != in.Children {
		verr.add("child_ages", "must list one age per child")
	}
	if in.Days != nil && *in.Days < 1 {
		verr.add("days", "must be positive")
	}
	if in.HotelRating != nil && (*in.HotelRating < 1 || *in.HotelRating > 5) {
		verr.add("hotel_rating", "must be between 1 and 5")
	}
	if in.FlightOption != nil && *in.FlightOption != domain.FlightOptionWith && *in.FlightOption != domain.FlightOptionWithout {
		verr.add("flight_option", "must be with_flight or without_flight")
	}

	var travelDate time.Time
	if strings.TrimSpace(in.TravelDate) == "" {
		verr.add("travel_date", "is required")
	} else {
		parsed, err := time.Parse(dateLayout, in.TravelDate)
		if err != nil {
			verr.add("travel_date", "must be formatted YYYY-MM-DD")
		} else {
			travelDate = parsed
		}
	}

	if err := verr.orNil(); err != nil {
		return time.Time{}, err
	}
	return travelDate, nil
}

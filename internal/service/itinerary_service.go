package service

import (
	"context"
	"strings"
	"time"

	"github.com/sunflowertrip/tour-booking-backend/internal/domain"
	"github.com/sunflowertrip/tour-booking-backend/internal/repository/ports"
)

// ItineraryService stores custom trip requests from the trip planner.
type ItineraryService struct {
	itineraries ports.ItineraryRepository
}

func NewItineraryService(itineraryRepo ports.ItineraryRepository) *ItineraryService {
	return &ItineraryService{itineraries: itineraryRepo}
}

func (s *ItineraryService) Create(ctx context.Context, in domain.ItineraryInput) (*domain.Itinerary, error) {
	verr := &ValidationError{}
	if strings.TrimSpace(in.Name) == "" {
		verr.add("name", "is required")
	}
	if strings.TrimSpace(in.Email) == "" {
		verr.add("email", "is required")
	} else if !emailPattern.MatchString(in.Email) {
		verr.add("email", "is not a valid email address")
	}
	if strings.TrimSpace(in.Destination) == "" {
		verr.add("destination", "is required")
	}
	if in.Travelers < 1 {
		verr.add("travelers", "must be at least 1")
	}
	if in.Children < 0 {
		verr.add("children", "must not be negative")
	}
	if in.ChildAges != nil && len(in.ChildAges) != in.Children {
		verr.add("child_ages", "must list one age per child")
	}
	if in.Duration != nil && *in.Duration < 1 {
		verr.add("duration", "must be positive")
	}

	var date *time.Time
	if in.Date != nil && strings.TrimSpace(*in.Date) != "" {
		parsed, err := time.Parse(dateLayout, *in.Date)
		if err != nil {
			verr.add("date", "must be formatted YYYY-MM-DD")
		} else {
			date = &parsed
		}
	}
	if err := verr.orNil(); err != nil {
		return nil, err
	}

	itinerary := &domain.Itinerary{
		Name:          strings.TrimSpace(in.Name),
		Email:         strings.TrimSpace(in.Email),
		Phone:         in.Phone,
		Destination:   strings.TrimSpace(in.Destination),
		Travelers:     in.Travelers,
		Children:      in.Children,
		ChildAges:     in.ChildAges,
		Duration:      in.Duration,
		Date:          date,
		Budget:        in.Budget,
		HotelCategory: in.HotelCategory,
		TravelType:    in.TravelType,
		Occupation:    in.Occupation,
		Preferences:   in.Preferences,
	}
	if err := s.itineraries.Create(ctx, itinerary); err != nil {
		return nil, err
	}
	return itinerary, nil
}

func (s *ItineraryService) List(ctx context.Context) ([]domain.Itinerary, error) {
	return s.itineraries.List(ctx)
}

func (s *ItineraryService) Get(ctx context.Context, id int64) (*domain.Itinerary, error) {
	itinerary, err := s.itineraries.FindByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrItineraryNotFound
		}
		return nil, err
	}
	return itinerary, nil
}

func (s *ItineraryService) Delete(ctx context.Context, id int64) error {
	if err := s.itineraries.Delete(ctx, id); err != nil {
		if isNotFound(err) {
			return ErrItineraryNotFound
		}
		return err
	}
	return nil
}

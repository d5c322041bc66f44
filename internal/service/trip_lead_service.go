package service

import (
	"context"
	"strings"
	"time"

	"github.com/sunflowertrip/tour-booking-backend/internal/domain"
	"github.com/sunflowertrip/tour-booking-backend/internal/repository/ports"
)

// TripLeadService stores sales leads from the trip estimator.
type TripLeadService struct {
	leads ports.TripLeadRepository
}

func NewTripLeadService(leadRepo ports.TripLeadRepository) *TripLeadService {
	return &TripLeadService{leads: leadRepo}
}

func (s *TripLeadService) Create(ctx context.Context, in domain.TripLeadInput) (*domain.TripLead, error) {
	verr := &ValidationError{}
	if strings.TrimSpace(in.FullName) == "" {
		verr.add("full_name", "is required")
	}
	if strings.TrimSpace(in.Email) == "" {
		verr.add("email", "is required")
	} else if !emailPattern.MatchString(in.Email) {
		verr.add("email", "is not a valid email address")
	}
	if strings.TrimSpace(in.PhoneNumber) == "" {
		verr.add("phone_number", "is required")
	}
	if in.NumberOfAdults < 0 || in.NumberOfChildren < 0 {
		verr.add("travellers", "counts must not be negative")
	}
	if in.HotelRating != nil && (*in.HotelRating < 1 || *in.HotelRating > 5) {
		verr.add("hotel_rating", "must be between 1 and 5")
	}

	departure := parseOptionalDate(verr, "departure_date", in.DepartureDate)
	returnDate := parseOptionalDate(verr, "return_date", in.ReturnDate)
	if departure != nil && returnDate != nil && returnDate.Before(*departure) {
		verr.add("return_date", "must not be before departure_date")
	}
	if err := verr.orNil(); err != nil {
		return nil, err
	}

	lead := &domain.TripLead{
		FullName:         strings.TrimSpace(in.FullName),
		Email:            strings.TrimSpace(in.Email),
		PhoneNumber:      strings.TrimSpace(in.PhoneNumber),
		PreferredCountry: in.PreferredCountry,
		PreferredCity:    in.PreferredCity,
		DepartureDate:    departure,
		ReturnDate:       returnDate,
		NumberOfDays:     in.NumberOfDays,
		NumberOfAdults:   in.NumberOfAdults,
		NumberOfChildren: in.NumberOfChildren,
		NumberOfMale:     in.NumberOfMale,
		NumberOfFemale:   in.NumberOfFemale,
		NumberOfOther:    in.NumberOfOther,
		AgedPersons:      in.AgedPersons,
		HotelRating:      in.HotelRating,
		MealPlan:         in.MealPlan,
		RoomType:         in.RoomType,
		NeedFlight:       in.NeedFlight,
		DepartureAirport: in.DepartureAirport,
		TripType:         in.TripType,
		EstimateRange:    in.EstimateRange,
	}
	if err := s.leads.Create(ctx, lead); err != nil {
		return nil, err
	}
	return lead, nil
}

func (s *TripLeadService) List(ctx context.Context) ([]domain.TripLead, error) {
	return s.leads.List(ctx)
}

func (s *TripLeadService) Get(ctx context.Context, id int64) (*domain.TripLead, error) {
	lead, err := s.leads.FindByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrTripLeadNotFound
		}
		return nil, err
	}
	return lead, nil
}

func (s *TripLeadService) Delete(ctx context.Context, id int64) error {
	if err := s.leads.Delete(ctx, id); err != nil {
		if isNotFound(err) {
			return ErrTripLeadNotFound
		}
		return err
	}
	return nil
}

func parseOptionalDate(verr *ValidationError, field string, value *string) *time.Time {
	if value == nil || strings.TrimSpace(*value) == "" {
		return nil
	}
	parsed, err := time.Parse(dateLayout, *value)
	if err != nil {
		verr.add(field, "must be formatted YYYY-MM-DD")
		return nil
	}
	return &parsed
}

package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sunflowertrip/tour-booking-backend/internal/domain"
)

func violatedFields(t *testing.T, err error) map[string]string {
	t.Helper()
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	fields := make(map[string]string, len(verr.Fields))
	for _, f := range verr.Fields {
		fields[f.Field] = f.Message
	}
	return fields
}

func TestCreateCollectsEveryViolation(t *testing.T) {
	repo := newFakeTourRepo()
	seedDestination(repo, 1)
	svc := NewTourService(repo)

	minGroup := 10
	maxGroup := 4
	rating := 9
	badDiscount := 150.0
	badPrice := -10.0

	_, err := svc.Create(context.Background(), domain.TourInput{
		Title:               "  ",
		Slug:                "Bad Slug!",
		Description:         "",
		MinGroupSize:        &minGroup,
		MaxGroupSize:        &maxGroup,
		AccommodationRating: &rating,
		EarlyBirdDiscount:   &badDiscount,
		Price:               &badPrice,
		DestinationIDs:      []int64{1, -2},
		Photos:              []domain.TourPhoto{{URL: ""}},
		Reviews:             []domain.TourReview{{ReviewerName: "", Rating: 0}},
		RoomTypes:           []domain.RoomType{{Name: ""}},
		Itinerary: []domain.ItineraryDay{
			{DayNumber: 1, Title: "Arrival"},
			{DayNumber: 1, Title: "Arrival again"},
		},
		Departures: []domain.Departure{{AvailableSeats: 0}},
	})

	fields := violatedFields(t, err)
	for _, want := range []string{
		"title",
		"slug",
		"description",
		"min_group_size",
		"accommodation_rating",
		"early_bird_discount",
		"price",
		"destination_ids[1]",
		"photos[0].url",
		"reviews[0].reviewer_name",
		"reviews[0].rating",
		"room_types[0].name",
		"itinerary[1].day_number",
		"departures[0].departure_date",
		"departures[0].available_seats",
	} {
		if _, ok := fields[want]; !ok {
			t.Errorf("missing violation for %s; collected: %v", want, fields)
		}
	}
	if len(repo.tours) != 0 {
		t.Fatal("invalid payload must not touch storage")
	}
}

func TestValidateTourInputAcceptsCompletePayload(t *testing.T) {
	in := validGroupInput()
	in.Photos = []domain.TourPhoto{{URL: "https://cdn/p.jpg", DisplayOrder: 1}}
	in.Reviews = []domain.TourReview{{ReviewerName: "Amara", Rating: 5, Comment: "Great trip"}}
	in.Itinerary = []domain.ItineraryDay{
		{DayNumber: 1, Title: "Arrival"},
		{DayNumber: 2, Title: "Sigiriya"},
	}
	if err := validateTourInput(in); err != nil {
		t.Fatalf("expected valid payload, got %v", err)
	}
}

func TestValidateTourInputSlugFormat(t *testing.T) {
	cases := []struct {
		slug string
		ok   bool
	}{
		{"sri-lanka-2026", true},
		{"a", true},
		{"UPPER-case", false},
		{"trailing-", false},
		{"-leading", false},
		{"double--hyphen", false},
		{"with space", false},
	}
	for _, tc := range cases {
		t.Run(tc.slug, func(t *testing.T) {
			in := validGroupInput()
			in.Slug = tc.slug
			err := validateTourInput(in)
			if tc.ok && err != nil {
				t.Fatalf("expected %q to be accepted, got %v", tc.slug, err)
			}
			if !tc.ok {
				fields := violatedFields(t, err)
				if _, found := fields["slug"]; !found {
					t.Fatalf("expected slug violation for %q, got %v", tc.slug, fields)
				}
			}
		})
	}
}

func TestValidateTourInputWindowOrder(t *testing.T) {
	in := validGroupInput()
	in.AvailableFrom = timePtr(time.Now().AddDate(0, 3, 0))
	in.AvailableTo = timePtr(time.Now())

	fields := violatedFields(t, validateTourInput(in))
	if _, ok := fields["available_from"]; !ok {
		t.Fatalf("expected window-order violation, got %v", fields)
	}
}

func TestValidateTourUpdateNilFieldsPass(t *testing.T) {
	if err := validateTourUpdate(domain.TourUpdate{}); err != nil {
		t.Fatalf("empty patch must be valid, got %v", err)
	}
}

func TestValidateTourUpdateRejectsBlankValues(t *testing.T) {
	fields := violatedFields(t, validateTourUpdate(domain.TourUpdate{
		Title:       strPtr(" "),
		Slug:        strPtr(""),
		Description: strPtr("\t"),
		Rooms:       intPtr(0),
	}))
	for _, want := range []string{"title", "slug", "description", "rooms"} {
		if _, ok := fields[want]; !ok {
			t.Errorf("missing violation for %s; collected: %v", want, fields)
		}
	}
}

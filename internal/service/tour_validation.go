package service

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/sunflowertrip/tour-booking-backend/internal/domain"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// validateTourInput checks a create payload and reports every violation
// at once rather than stopping at the first.
func validateTourInput(in domain.TourInput) error {
	verr := &ValidationError{}

	if strings.TrimSpace(in.Title) == "" {
		verr.add("title", "is required")
	}
	if strings.TrimSpace(in.Slug) == "" {
		verr.add("slug", "is required")
	} else if !slugPattern.MatchString(in.Slug) {
		verr.add("slug", "must contain only lowercase letters, digits and hyphens")
	}
	if strings.TrimSpace(in.Description) == "" {
		verr.add("description", "is required")
	}

	checkOptionalPositive(verr, "duration_days", in.DurationDays)
	checkOptionalNonNegative(verr, "price", in.Price)
	checkOptionalNonNegative(verr, "price_per_person", in.PricePerPerson)
	checkPercent(verr, "early_bird_discount", in.EarlyBirdDiscount)
	checkPercent(verr, "group_discount", in.GroupDiscount)
	checkOptionalPositive(verr, "max_group_size", in.MaxGroupSize)
	checkOptionalPositive(verr, "min_group_size", in.MinGroupSize)
	if in.MinGroupSize != nil && in.MaxGroupSize != nil && *in.MinGroupSize > *in.MaxGroupSize {
		verr.add("min_group_size", "must not exceed max_group_size")
	}
	if in.AvailableFrom != nil && in.AvailableTo != nil && in.AvailableFrom.After(*in.AvailableTo) {
		verr.add("available_from", "must not be after available_to")
	}
	if in.AccommodationRating != nil && (*in.AccommodationRating < 1 || *in.AccommodationRating > 5) {
		verr.add("accommodation_rating", "must be between 1 and 5")
	}
	if in.AdvanceBookingDays != nil && *in.AdvanceBookingDays < 0 {
		verr.add("advance_booking_days", "must not be negative")
	}
	if in.Adults != nil && *in.Adults < 0 {
		verr.add("adults", "must not be negative")
	}
	if in.Children != nil && *in.Children < 0 {
		verr.add("children", "must not be negative")
	}
	if in.Rooms != nil && *in.Rooms < 1 {
		verr.add("rooms", "must be at least 1")
	}

	for i, id := range in.DestinationIDs {
		if id <= 0 {
			verr.addf(fmt.Sprintf("destination_ids[%d]", i), "must be a positive id")
		}
	}
	for i, id := range in.LocationIDs {
		if id <= 0 {
			verr.addf(fmt.Sprintf("location_ids[%d]", i), "must be a positive id")
		}
	}

	validatePhotos(verr, in.Photos)
	validateReviews(verr, in.Reviews)
	validateRoomTypes(verr, in.RoomTypes)
	validateItinerary(verr, in.Itinerary)
	validateDepartures(verr, in.Departures)

	return verr.orNil()
}

// validateTourUpdate applies the same field rules to whatever the patch
// actually carries. Nil means "leave alone" and is never a violation.
func validateTourUpdate(patch domain.TourUpdate) error {
	verr := &ValidationError{}

	if patch.Title != nil && strings.TrimSpace(*patch.Title) == "" {
		verr.add("title", "must not be empty")
	}
	if patch.Slug != nil {
		if strings.TrimSpace(*patch.Slug) == "" {
			verr.add("slug", "must not be empty")
		} else if !slugPattern.MatchString(*patch.Slug) {
			verr.add("slug", "must contain only lowercase letters, digits and hyphens")
		}
	}
	if patch.Description != nil && strings.TrimSpace(*patch.Description) == "" {
		verr.add("description", "must not be empty")
	}

	checkOptionalPositive(verr, "duration_days", patch.DurationDays)
	checkOptionalNonNegative(verr, "price", patch.Price)
	checkOptionalNonNegative(verr, "price_per_person", patch.PricePerPerson)
	checkPercent(verr, "early_bird_discount", patch.EarlyBirdDiscount)
	checkPercent(verr, "group_discount", patch.GroupDiscount)
	checkOptionalPositive(verr, "max_group_size", patch.MaxGroupSize)
	checkOptionalPositive(verr, "min_group_size", patch.MinGroupSize)
	if patch.MinGroupSize != nil && patch.MaxGroupSize != nil && *patch.MinGroupSize > *patch.MaxGroupSize {
		verr.add("min_group_size", "must not exceed max_group_size")
	}
	if patch.AvailableFrom != nil && patch.AvailableTo != nil && patch.AvailableFrom.After(*patch.AvailableTo) {
		verr.add("available_from", "must not be after available_to")
	}
	if patch.AccommodationRating != nil && (*patch.AccommodationRating < 1 || *patch.AccommodationRating > 5) {
		verr.add("accommodation_rating", "must be between 1 and 5")
	}
	if patch.AdvanceBookingDays != nil && *patch.AdvanceBookingDays < 0 {
		verr.add("advance_booking_days", "must not be negative")
	}
	if patch.Adults != nil && *patch.Adults < 0 {
		verr.add("adults", "must not be negative")
	}
	if patch.Children != nil && *patch.Children < 0 {
		verr.add("children", "must not be negative")
	}
	if patch.Rooms != nil && *patch.Rooms < 1 {
		verr.add("rooms", "must be at least 1")
	}

	for i, id := range patch.DestinationIDs {
		if id <= 0 {
			verr.addf(fmt.Sprintf("destination_ids[%d]", i), "must be a positive id")
		}
	}
	for i, id := range patch.LocationIDs {
		if id <= 0 {
			verr.addf(fmt.Sprintf("location_ids[%d]", i), "must be a positive id")
		}
	}

	validatePhotos(verr, patch.Photos)
	validateReviews(verr, patch.Reviews)
	validateRoomTypes(verr, patch.RoomTypes)
	validateItinerary(verr, patch.Itinerary)
	validateDepartures(verr, patch.Departures)

	return verr.orNil()
}

func validatePhotos(verr *ValidationError, photos []domain.TourPhoto) {
	for i, photo := range photos {
		if strings.TrimSpace(photo.URL) == "" {
			verr.addf(fmt.Sprintf("photos[%d].url", i), "is required")
		}
		if photo.DisplayOrder < 0 {
			verr.addf(fmt.Sprintf("photos[%d].display_order", i), "must not be negative")
		}
	}
}

func validateReviews(verr *ValidationError, reviews []domain.TourReview) {
	for i, review := range reviews {
		if strings.TrimSpace(review.ReviewerName) == "" {
			verr.addf(fmt.Sprintf("reviews[%d].reviewer_name", i), "is required")
		}
		if review.Rating < 1 || review.Rating > 5 {
			verr.addf(fmt.Sprintf("reviews[%d].rating", i), "must be between 1 and 5")
		}
	}
}

func validateRoomTypes(verr *ValidationError, roomTypes []domain.RoomType) {
	for i, rt := range roomTypes {
		if strings.TrimSpace(rt.Name) == "" {
			verr.addf(fmt.Sprintf("room_types[%d].name", i), "is required")
		}
		if rt.MaxOccupancy != nil && *rt.MaxOccupancy < 1 {
			verr.addf(fmt.Sprintf("room_types[%d].max_occupancy", i), "must be at least 1")
		}
	}
}

func validateItinerary(verr *ValidationError, days []domain.ItineraryDay) {
	seen := map[int]bool{}
	for i, day := range days {
		if day.DayNumber < 1 {
			verr.addf(fmt.Sprintf("itinerary[%d].day_number", i), "must be at least 1")
		} else if seen[day.DayNumber] {
			verr.addf(fmt.Sprintf("itinerary[%d].day_number", i), "duplicates day %d", day.DayNumber)
		}
		seen[day.DayNumber] = true
		if strings.TrimSpace(day.Title) == "" {
			verr.addf(fmt.Sprintf("itinerary[%d].title", i), "is required")
		}
	}
}

func validateDepartures(verr *ValidationError, departures []domain.Departure) {
	for i, dep := range departures {
		if dep.DepartureDate.IsZero() {
			verr.addf(fmt.Sprintf("departures[%d].departure_date", i), "is required")
		}
		if dep.AvailableSeats < 1 {
			verr.addf(fmt.Sprintf("departures[%d].available_seats", i), "must be at least 1")
		}
	}
}

func checkOptionalPositive(verr *ValidationError, field string, v *int) {
	if v != nil && *v < 1 {
		verr.add(field, "must be positive")
	}
}

func checkOptionalNonNegative(verr *ValidationError, field string, v *float64) {
	if v != nil && *v < 0 {
		verr.add(field, "must not be negative")
	}
}

func checkPercent(verr *ValidationError, field string, v *float64) {
	if v != nil && (*v < 0 || *v > 100) {
		verr.add(field, "must be between 0 and 100")
	}
}

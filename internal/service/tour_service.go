package service

import (
	"context"
	"time"

	"github.com/sunflowertrip/tour-booking-backend/internal/domain"
	"github.com/sunflowertrip/tour-booking-backend/internal/repository/ports"
)

// TourService assembles tour aggregates and owns every multi-table write.
// Reads batch the five child tables so a listing of N tours costs six
// queries, not 5N+1. Writes run inside a single transaction: parent row,
// link tables and child collections commit or roll back together.
type TourService struct {
	tours ports.TourRepository
}

func NewTourService(tourRepo ports.TourRepository) *TourService {
	return &TourService{tours: tourRepo}
}

func (s *TourService) List(ctx context.Context, filter domain.TourFilter) ([]domain.Tour, error) {
	tours, err := s.tours.ListRows(ctx, filter)
	if err != nil {
		return nil, err
	}
	if err := s.attachChildren(ctx, tours); err != nil {
		return nil, err
	}
	return tours, nil
}

func (s *TourService) Featured(ctx context.Context) ([]domain.Tour, error) {
	return s.List(ctx, domain.TourFilter{FeaturedOnly: true})
}

func (s *TourService) GetByID(ctx context.Context, id int64) (*domain.Tour, error) {
	tour, err := s.tours.FindRowByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrTourNotFound
		}
		return nil, err
	}
	tours := []domain.Tour{*tour}
	if err := s.attachChildren(ctx, tours); err != nil {
		return nil, err
	}
	return &tours[0], nil
}

func (s *TourService) GetBySlug(ctx context.Context, slug string) (*domain.Tour, error) {
	tour, err := s.tours.FindRowBySlug(ctx, slug)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrTourNotFound
		}
		return nil, err
	}
	tours := []domain.Tour{*tour}
	if err := s.attachChildren(ctx, tours); err != nil {
		return nil, err
	}
	return &tours[0], nil
}

func (s *TourService) Categories(ctx context.Context) ([]string, error) {
	return s.tours.Categories(ctx)
}

func (s *TourService) Create(ctx context.Context, in domain.TourInput) (*domain.Tour, error) {
	if err := validateTourInput(in); err != nil {
		return nil, err
	}
	if len(in.DestinationIDs) == 0 {
		return nil, ErrDestinationRequired
	}
	if isGroupCategory(in.Category) {
		if len(in.Departures) == 0 {
			return nil, ErrDeparturesRequired
		}
	} else if in.AvailableFrom == nil || in.AvailableTo == nil {
		return nil, ErrAvailabilityWindowRequired
	}

	var tourID int64
	err := s.tours.InTx(ctx, func(tx ports.TourTx) error {
		if err := checkDestinations(ctx, tx, in.DestinationIDs); err != nil {
			return err
		}
		if err := checkLocations(ctx, tx, in.DestinationIDs, in.LocationIDs); err != nil {
			return err
		}

		id, err := tx.InsertTour(ctx, in)
		if err != nil {
			if isUniqueViolation(err) {
				return ErrSlugExists
			}
			return err
		}
		tourID = id

		if err := tx.ReplaceDestinations(ctx, id, dedupe(in.DestinationIDs)); err != nil {
			return err
		}
		if len(in.LocationIDs) > 0 {
			if err := tx.ReplaceLocations(ctx, id, dedupe(in.LocationIDs)); err != nil {
				return err
			}
		}
		if len(in.Photos) > 0 {
			if err := tx.ReplacePhotos(ctx, id, in.Photos); err != nil {
				return err
			}
		}
		if len(in.Reviews) > 0 {
			if err := tx.ReplaceReviews(ctx, id, in.Reviews); err != nil {
				return err
			}
		}
		if len(in.RoomTypes) > 0 {
			if err := tx.ReplaceRoomTypes(ctx, id, in.RoomTypes); err != nil {
				return err
			}
		}
		if len(in.Itinerary) > 0 {
			if err := tx.ReplaceItinerary(ctx, id, in.Itinerary); err != nil {
				return err
			}
		}
		if len(in.Departures) > 0 {
			if err := tx.ReplaceDepartures(ctx, id, in.Departures); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.GetByID(ctx, tourID)
}

// Update patches the parent row and replaces only the collections the
// payload actually carries: a nil slice leaves the stored collection
// untouched, an empty one clears it. Destination links can never be
// cleared; a tour always references at least one destination.
func (s *TourService) Update(ctx context.Context, id int64, patch domain.TourUpdate) (*domain.Tour, error) {
	if err := validateTourUpdate(patch); err != nil {
		return nil, err
	}

	err := s.tours.InTx(ctx, func(tx ports.TourTx) error {
		current, err := tx.TourByID(ctx, id)
		if err != nil {
			if isNotFound(err) {
				return ErrTourNotFound
			}
			return err
		}

		category := current.Category
		if patch.Category != nil {
			category = patch.Category
		}

		effectiveDestinations := []int64(current.DestinationIDs)
		if patch.DestinationIDs != nil {
			if len(patch.DestinationIDs) == 0 {
				return ErrDestinationRequired
			}
			if err := checkDestinations(ctx, tx, patch.DestinationIDs); err != nil {
				return err
			}
			effectiveDestinations = patch.DestinationIDs
		}
		if patch.LocationIDs != nil && len(patch.LocationIDs) > 0 {
			if err := checkLocations(ctx, tx, effectiveDestinations, patch.LocationIDs); err != nil {
				return err
			}
		} else if patch.LocationIDs == nil && patch.DestinationIDs != nil && len(current.LocationIDs) > 0 {
			// Keeping the stored location links while replacing the
			// destination set must not leave them pointing outside it.
			if err := checkLocations(ctx, tx, effectiveDestinations, current.LocationIDs); err != nil {
				return err
			}
		}

		if isGroupCategory(category) {
			if patch.Departures != nil {
				if len(patch.Departures) == 0 {
					return ErrDeparturesRequired
				}
			} else {
				count, err := tx.DepartureCount(ctx, id)
				if err != nil {
					return err
				}
				if count == 0 {
					return ErrDeparturesRequired
				}
			}
		} else {
			from, to := current.AvailableFrom, current.AvailableTo
			if patch.AvailableFrom != nil {
				from = patch.AvailableFrom
			}
			if patch.AvailableTo != nil {
				to = patch.AvailableTo
			}
			if from == nil || to == nil {
				return ErrAvailabilityWindowRequired
			}
		}

		if err := tx.UpdateTourFields(ctx, id, patch); err != nil {
			if isUniqueViolation(err) {
				return ErrSlugExists
			}
			if isNotFound(err) {
				return ErrTourNotFound
			}
			return err
		}

		if patch.DestinationIDs != nil {
			if err := tx.ReplaceDestinations(ctx, id, dedupe(patch.DestinationIDs)); err != nil {
				return err
			}
		}
		if patch.LocationIDs != nil {
			if err := tx.ReplaceLocations(ctx, id, dedupe(patch.LocationIDs)); err != nil {
				return err
			}
		}
		if patch.Photos != nil {
			if err := tx.ReplacePhotos(ctx, id, patch.Photos); err != nil {
				return err
			}
		}
		if patch.Reviews != nil {
			if err := tx.ReplaceReviews(ctx, id, patch.Reviews); err != nil {
				return err
			}
		}
		if patch.RoomTypes != nil {
			if err := tx.ReplaceRoomTypes(ctx, id, patch.RoomTypes); err != nil {
				return err
			}
		}
		if patch.Itinerary != nil {
			if err := tx.ReplaceItinerary(ctx, id, patch.Itinerary); err != nil {
				return err
			}
		}
		if patch.Departures != nil {
			if err := tx.ReplaceDepartures(ctx, id, patch.Departures); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.GetByID(ctx, id)
}

func (s *TourService) Delete(ctx context.Context, id int64) error {
	return s.tours.InTx(ctx, func(tx ports.TourTx) error {
		if err := tx.DeleteChildren(ctx, id); err != nil {
			return err
		}
		if err := tx.DeleteTour(ctx, id); err != nil {
			if isNotFound(err) {
				return ErrTourNotFound
			}
			return err
		}
		return nil
	})
}

// Search is the trip-planner entry point: every filter is optional and
// unset fields do not narrow the result.
func (s *TourService) Search(ctx context.Context, filter domain.TourFilter) ([]domain.Tour, error) {
	return s.List(ctx, filter)
}

// availabilityWindowContains reports whether the given travel date falls
// inside the tour's bookable window.
func availabilityWindowContains(tour *domain.Tour, date time.Time) bool {
	if tour.AvailableFrom != nil && date.Before(*tour.AvailableFrom) {
		return false
	}
	if tour.AvailableTo != nil && date.After(*tour.AvailableTo) {
		return false
	}
	return true
}

func (s *TourService) attachChildren(ctx context.Context, tours []domain.Tour) error {
	if len(tours) == 0 {
		return nil
	}
	ids := make([]int64, len(tours))
	for i := range tours {
		ids[i] = tours[i].ID
	}

	photos, err := s.tours.PhotosByTourIDs(ctx, ids)
	if err != nil {
		return err
	}
	reviews, err := s.tours.ReviewsByTourIDs(ctx, ids)
	if err != nil {
		return err
	}
	roomTypes, err := s.tours.RoomTypesByTourIDs(ctx, ids)
	if err != nil {
		return err
	}
	itinerary, err := s.tours.ItineraryByTourIDs(ctx, ids)
	if err != nil {
		return err
	}
	departures, err := s.tours.DeparturesByTourIDs(ctx, ids)
	if err != nil {
		return err
	}

	for i := range tours {
		t := &tours[i]
		t.Photos = orEmpty(photos[t.ID])
		t.Reviews = orEmpty(reviews[t.ID])
		t.RoomTypes = orEmpty(roomTypes[t.ID])
		t.Itinerary = orEmpty(itinerary[t.ID])
		t.Departures = orEmpty(departures[t.ID])
	}
	return nil
}

func checkDestinations(ctx context.Context, tx ports.TourTx, ids []int64) error {
	unique := dedupe(ids)
	found, err := tx.ValidDestinationIDs(ctx, unique)
	if err != nil {
		return err
	}
	if len(found) != len(unique) {
		return ErrUnknownDestination
	}
	return nil
}

func checkLocations(ctx context.Context, tx ports.TourTx, destinationIDs, locationIDs []int64) error {
	if len(locationIDs) == 0 {
		return nil
	}
	unique := dedupe(locationIDs)
	found, err := tx.LocationIDsWithin(ctx, dedupe(destinationIDs), unique)
	if err != nil {
		return err
	}
	if len(found) != len(unique) {
		return ErrLocationOutsideDestinations
	}
	return nil
}

func isGroupCategory(category *string) bool {
	return category != nil && *category == domain.TourCategoryGroup
}

func dedupe(ids []int64) []int64 {
	seen := make(map[int64]bool, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

func orEmpty[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}

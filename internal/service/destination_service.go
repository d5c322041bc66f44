package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/sunflowertrip/tour-booking-backend/internal/domain"
	"github.com/sunflowertrip/tour-booking-backend/internal/repository/ports"
)

// DestinationService assembles destination aggregates (the destination
// row, its five detail collections and the tours that reference it) and
// owns the transactional writes across those tables.
type DestinationService struct {
	destinations ports.DestinationRepository
	tours        *TourService
}

func NewDestinationService(destRepo ports.DestinationRepository, tourSvc *TourService) *DestinationService {
	return &DestinationService{destinations: destRepo, tours: tourSvc}
}

func (s *DestinationService) List(ctx context.Context) ([]domain.Destination, error) {
	return s.destinations.List(ctx)
}

func (s *DestinationService) Names(ctx context.Context) ([]domain.DestinationName, error) {
	return s.destinations.Names(ctx)
}

// NamesWithLocations returns each destination paired with its location
// names, for the trip-planner dropdowns. Locations are fetched in one
// batched query across all destinations.
func (s *DestinationService) NamesWithLocations(ctx context.Context) ([]domain.DestinationLocations, error) {
	names, err := s.destinations.Names(ctx)
	if err != nil {
		return nil, err
	}
	ids := make([]int64, len(names))
	for i, n := range names {
		ids[i] = n.ID
	}
	locations, err := s.destinations.LocationsByDestinationIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]domain.DestinationLocations, len(names))
	for i, n := range names {
		entry := domain.DestinationLocations{ID: n.ID, Title: n.Title, Locations: []domain.LocationName{}}
		for _, loc := range locations[n.ID] {
			entry.Locations = append(entry.Locations, domain.LocationName{ID: loc.ID, Name: loc.Name})
		}
		out[i] = entry
	}
	return out, nil
}

func (s *DestinationService) Details(ctx context.Context, id int64) (*domain.DestinationDetails, error) {
	dest, err := s.destinations.FindByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrDestinationNotFound
		}
		return nil, err
	}
	return s.assemble(ctx, dest)
}

func (s *DestinationService) DetailsByTitle(ctx context.Context, title string) (*domain.DestinationDetails, error) {
	dest, err := s.destinations.FindByTitle(ctx, title)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrDestinationNotFound
		}
		return nil, err
	}
	return s.assemble(ctx, dest)
}

func (s *DestinationService) Create(ctx context.Context, in domain.DestinationInput) (*domain.DestinationDetails, error) {
	if err := validateDestinationInput(in); err != nil {
		return nil, err
	}

	if existing, err := s.destinations.FindByTitle(ctx, strings.TrimSpace(*in.Destination.Title)); err == nil && existing != nil {
		return nil, ErrDestinationExists
	} else if err != nil && !isNotFound(err) {
		return nil, err
	}

	var destID int64
	err := s.destinations.InTx(ctx, func(tx ports.DestinationTx) error {
		id, err := tx.InsertDestination(ctx, in.Destination)
		if err != nil {
			if isUniqueViolation(err) {
				return ErrDestinationExists
			}
			return err
		}
		destID = id

		if len(in.Locations) > 0 {
			if err := tx.ReplaceLocations(ctx, id, in.Locations); err != nil {
				return err
			}
		}
		if len(in.Attractions) > 0 {
			if err := tx.ReplaceAttractions(ctx, id, in.Attractions); err != nil {
				return err
			}
		}
		if len(in.Ethnicities) > 0 {
			if err := tx.ReplaceEthnicities(ctx, id, in.Ethnicities); err != nil {
				return err
			}
		}
		if len(in.Cuisines) > 0 {
			if err := tx.ReplaceCuisines(ctx, id, in.Cuisines); err != nil {
				return err
			}
		}
		if len(in.Activities) > 0 {
			if err := tx.ReplaceActivities(ctx, id, in.Activities); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.Details(ctx, destID)
}

// Update patches the destination row and replaces only the detail
// collections the payload carries: nil leaves a collection untouched,
// empty clears it.
func (s *DestinationService) Update(ctx context.Context, id int64, patch domain.DestinationUpdate) (*domain.DestinationDetails, error) {
	if err := validateDestinationUpdate(patch); err != nil {
		return nil, err
	}

	err := s.destinations.InTx(ctx, func(tx ports.DestinationTx) error {
		if err := tx.UpdateDestinationFields(ctx, id, patch.Destination); err != nil {
			if isNotFound(err) {
				return ErrDestinationNotFound
			}
			if isUniqueViolation(err) {
				return ErrDestinationExists
			}
			return err
		}

		if patch.Locations != nil {
			if err := tx.ReplaceLocations(ctx, id, patch.Locations); err != nil {
				return err
			}
		}
		if patch.Attractions != nil {
			if err := tx.ReplaceAttractions(ctx, id, patch.Attractions); err != nil {
				return err
			}
		}
		if patch.Ethnicities != nil {
			if err := tx.ReplaceEthnicities(ctx, id, patch.Ethnicities); err != nil {
				return err
			}
		}
		if patch.Cuisines != nil {
			if err := tx.ReplaceCuisines(ctx, id, patch.Cuisines); err != nil {
				return err
			}
		}
		if patch.Activities != nil {
			if err := tx.ReplaceActivities(ctx, id, patch.Activities); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.Details(ctx, id)
}

// Delete removes the destination and its detail rows. A destination
// referenced by tours cannot be deleted; the tours must drop the link
// first.
func (s *DestinationService) Delete(ctx context.Context, id int64) error {
	return s.destinations.InTx(ctx, func(tx ports.DestinationTx) error {
		count, err := tx.TourCount(ctx, id)
		if err != nil {
			return err
		}
		if count > 0 {
			return ErrDestinationInUse
		}
		if err := tx.DeleteDetails(ctx, id); err != nil {
			return err
		}
		if err := tx.DeleteDestination(ctx, id); err != nil {
			if isNotFound(err) {
				return ErrDestinationNotFound
			}
			return err
		}
		return nil
	})
}

func (s *DestinationService) assemble(ctx context.Context, dest *domain.Destination) (*domain.DestinationDetails, error) {
	ids := []int64{dest.ID}

	locations, err := s.destinations.LocationsByDestinationIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	attractions, err := s.destinations.AttractionsByDestinationIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	ethnicities, err := s.destinations.EthnicitiesByDestinationIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	cuisines, err := s.destinations.CuisinesByDestinationIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	activities, err := s.destinations.ActivitiesByDestinationIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	tours, err := s.tours.List(ctx, domain.TourFilter{DestinationID: &dest.ID})
	if err != nil {
		return nil, err
	}
	if tours == nil {
		tours = []domain.Tour{}
	}

	return &domain.DestinationDetails{
		Destination: *dest,
		Locations:   orEmpty(locations[dest.ID]),
		Attractions: orEmpty(attractions[dest.ID]),
		Ethnicities: orEmpty(ethnicities[dest.ID]),
		Cuisines:    orEmpty(cuisines[dest.ID]),
		Activities:  orEmpty(activities[dest.ID]),
		Tours:       tours,
	}, nil
}

func validateDestinationInput(in domain.DestinationInput) error {
	verr := &ValidationError{}
	if in.Destination.Title == nil || strings.TrimSpace(*in.Destination.Title) == "" {
		verr.add("title", "is required")
	}
	validateDestinationDetails(verr, in.Locations, in.Attractions, in.Ethnicities, in.Cuisines, in.Activities)
	return verr.orNil()
}

func validateDestinationUpdate(patch domain.DestinationUpdate) error {
	verr := &ValidationError{}
	if patch.Destination.Title != nil && strings.TrimSpace(*patch.Destination.Title) == "" {
		verr.add("title", "must not be empty")
	}
	validateDestinationDetails(verr, patch.Locations, patch.Attractions, patch.Ethnicities, patch.Cuisines, patch.Activities)
	return verr.orNil()
}

func validateDestinationDetails(verr *ValidationError, locations []domain.Location, attractions []domain.Attraction, ethnicities []domain.Ethnicity, cuisines []domain.Cuisine, activities []domain.Activity) {
	for i, loc := range locations {
		if strings.TrimSpace(loc.Name) == "" {
			verr.addf(fmt.Sprintf("locations[%d].name", i), "is required")
		}
	}
	for i, a := range attractions {
		if strings.TrimSpace(a.Title) == "" {
			verr.addf(fmt.Sprintf("attractions[%d].title", i), "is required")
		}
		if a.Rating != nil && (*a.Rating < 0 || *a.Rating > 5) {
			verr.addf(fmt.Sprintf("attractions[%d].rating", i), "must be between 0 and 5")
		}
	}
	for i, e := range ethnicities {
		if strings.TrimSpace(e.Title) == "" {
			verr.addf(fmt.Sprintf("ethnicities[%d].title", i), "is required")
		}
	}
	for i, c := range cuisines {
		if strings.TrimSpace(c.Title) == "" {
			verr.addf(fmt.Sprintf("cuisines[%d].title", i), "is required")
		}
	}
	for i, a := range activities {
		if strings.TrimSpace(a.Title) == "" {
			verr.addf(fmt.Sprintf("activities[%d].title", i), "is required")
		}
	}
}

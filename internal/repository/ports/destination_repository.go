package ports

import (
	"context"

	"github.com/sunflowertrip/tour-booking-backend/internal/domain"
)

type DestinationRepository interface {
	List(ctx context.Context) ([]domain.Destination, error)
	Names(ctx context.Context) ([]domain.DestinationName, error)
	FindByID(ctx context.Context, id int64) (*domain.Destination, error)
	FindByTitle(ctx context.Context, title string) (*domain.Destination, error)

	LocationsByDestinationIDs(ctx context.Context, destinationIDs []int64) (map[int64][]domain.Location, error)
	AttractionsByDestinationIDs(ctx context.Context, destinationIDs []int64) (map[int64][]domain.Attraction, error)
	EthnicitiesByDestinationIDs(ctx context.Context, destinationIDs []int64) (map[int64][]domain.Ethnicity, error)
	CuisinesByDestinationIDs(ctx context.Context, destinationIDs []int64) (map[int64][]domain.Cuisine, error)
	ActivitiesByDestinationIDs(ctx context.Context, destinationIDs []int64) (map[int64][]domain.Activity, error)

	InTx(ctx context.Context, fn func(DestinationTx) error) error
}

type DestinationTx interface {
	InsertDestination(ctx context.Context, fields domain.DestinationFields) (int64, error)
	UpdateDestinationFields(ctx context.Context, id int64, fields domain.DestinationFields) error

	ReplaceLocations(ctx context.Context, destinationID int64, locations []domain.Location) error
	ReplaceAttractions(ctx context.Context, destinationID int64, attractions []domain.Attraction) error
	ReplaceEthnicities(ctx context.Context, destinationID int64, ethnicities []domain.Ethnicity) error
	ReplaceCuisines(ctx context.Context, destinationID int64, cuisines []domain.Cuisine) error
	ReplaceActivities(ctx context.Context, destinationID int64, activities []domain.Activity) error

	TourCount(ctx context.Context, destinationID int64) (int, error)
	DeleteDetails(ctx context.Context, destinationID int64) error
	DeleteDestination(ctx context.Context, destinationID int64) error
}

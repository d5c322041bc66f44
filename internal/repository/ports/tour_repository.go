package ports

import (
	"context"

	"github.com/sunflowertrip/tour-booking-backend/internal/domain"
)

// TourRepository reads tour rows and batched child collections. The five
// ByTourIDs readers each issue a single query regardless of how many ids
// are passed, keyed by tour id so the service can stitch aggregates.
type TourRepository interface {
	ListRows(ctx context.Context, filter domain.TourFilter) ([]domain.Tour, error)
	FindRowByID(ctx context.Context, id int64) (*domain.Tour, error)
	FindRowBySlug(ctx context.Context, slug string) (*domain.Tour, error)

	PhotosByTourIDs(ctx context.Context, tourIDs []int64) (map[int64][]domain.TourPhoto, error)
	ReviewsByTourIDs(ctx context.Context, tourIDs []int64) (map[int64][]domain.TourReview, error)
	RoomTypesByTourIDs(ctx context.Context, tourIDs []int64) (map[int64][]domain.RoomType, error)
	ItineraryByTourIDs(ctx context.Context, tourIDs []int64) (map[int64][]domain.ItineraryDay, error)
	DeparturesByTourIDs(ctx context.Context, tourIDs []int64) (map[int64][]domain.Departure, error)

	Categories(ctx context.Context) ([]string, error)

	// InTx runs fn inside a single transaction, committing on nil and
	// rolling back on error or panic.
	InTx(ctx context.Context, fn func(TourTx) error) error
}

// TourTx is the write surface available inside a tour transaction.
// Replace* methods delete the existing rows for the tour and insert the
// given ones; calling them with an empty slice clears the collection.
type TourTx interface {
	InsertTour(ctx context.Context, in domain.TourInput) (int64, error)
	UpdateTourFields(ctx context.Context, id int64, patch domain.TourUpdate) error
	TourByID(ctx context.Context, id int64) (*domain.Tour, error)

	ValidDestinationIDs(ctx context.Context, ids []int64) ([]int64, error)
	LocationIDsWithin(ctx context.Context, destinationIDs, locationIDs []int64) ([]int64, error)
	DepartureCount(ctx context.Context, tourID int64) (int, error)

	ReplaceDestinations(ctx context.Context, tourID int64, destinationIDs []int64) error
	ReplaceLocations(ctx context.Context, tourID int64, locationIDs []int64) error
	ReplacePhotos(ctx context.Context, tourID int64, photos []domain.TourPhoto) error
	ReplaceReviews(ctx context.Context, tourID int64, reviews []domain.TourReview) error
	ReplaceRoomTypes(ctx context.Context, tourID int64, roomTypes []domain.RoomType) error
	ReplaceItinerary(ctx context.Context, tourID int64, days []domain.ItineraryDay) error
	ReplaceDepartures(ctx context.Context, tourID int64, departures []domain.Departure) error

	DeleteChildren(ctx context.Context, tourID int64) error
	DeleteTour(ctx context.Context, tourID int64) error
}

package ports

import (
	"context"

	"github.com/sunflowertrip/tour-booking-backend/internal/domain"
)

type ItineraryRepository interface {
	Create(ctx context.Context, itinerary *domain.Itinerary) error
	List(ctx context.Context) ([]domain.Itinerary, error)
	FindByID(ctx context.Context, id int64) (*domain.Itinerary, error)
	Delete(ctx context.Context, id int64) error
}

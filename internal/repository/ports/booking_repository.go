package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/sunflowertrip/tour-booking-backend/internal/domain"
)

type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) error
	List(ctx context.Context) ([]domain.Booking, error)
	FindByID(ctx context.Context, id int64) (*domain.Booking, error)
	FindByReference(ctx context.Context, reference uuid.UUID) (*domain.Booking, error)
	Delete(ctx context.Context, id int64) error
}

package ports

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/sunflowertrip/tour-booking-backend/internal/domain"
)

type ContactRepository interface {
	Create(ctx context.Context, contact *domain.Contact) error
	List(ctx context.Context) ([]domain.Contact, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Contact, error)
	CreatedBetween(ctx context.Context, from, to time.Time) ([]domain.Contact, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

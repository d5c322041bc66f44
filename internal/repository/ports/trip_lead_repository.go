package ports

import (
	"context"

	"github.com/sunflowertrip/tour-booking-backend/internal/domain"
)

type TripLeadRepository interface {
	Create(ctx context.Context, lead *domain.TripLead) error
	List(ctx context.Context) ([]domain.TripLead, error)
	FindByID(ctx context.Context, id int64) (*domain.TripLead, error)
	Delete(ctx context.Context, id int64) error
}

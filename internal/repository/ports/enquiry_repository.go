package ports

import (
	"context"

	"github.com/sunflowertrip/tour-booking-backend/internal/domain"
)

type EnquiryRepository interface {
	Create(ctx context.Context, enquiry *domain.Enquiry) error
	List(ctx context.Context) ([]domain.Enquiry, error)
	FindByID(ctx context.Context, id int64) (*domain.Enquiry, error)
	Delete(ctx context.Context, id int64) error
}

package ports

import (
	"context"

	"github.com/sunflowertrip/tour-booking-backend/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByGoogleID(ctx context.Context, googleID string) (*domain.User, error)
	UpdateGoogleID(ctx context.Context, id int64, googleID string) error
	UpdateRefreshToken(ctx context.Context, id int64, token *string) error
	List(ctx context.Context) ([]domain.User, error)
	Delete(ctx context.Context, id int64) error
}

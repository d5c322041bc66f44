package ports

import (
	"context"

	"github.com/sunflowertrip/tour-booking-backend/internal/domain"
)

type SettingRepository interface {
	List(ctx context.Context) ([]domain.Setting, error)
	Get(ctx context.Context, key string) (*domain.Setting, error)
	Upsert(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

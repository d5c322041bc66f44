package service

import (
	"context"
	"strings"

	"github.com/sunflowertrip/tour-booking-backend/internal/domain"
	"github.com/sunflowertrip/tour-booking-backend/internal/repository/ports"
)

type SettingService struct {
	settings ports.SettingRepository
}

func NewSettingService(settingRepo ports.SettingRepository) *SettingService {
	return &SettingService{settings: settingRepo}
}

func (s *SettingService) List(ctx context.Context) ([]domain.Setting, error) {
	return s.settings.List(ctx)
}

func (s *SettingService) Get(ctx context.Context, key string) (*domain.Setting, error) {
	setting, err := s.settings.Get(ctx, key)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrSettingNotFound
		}
		return nil, err
	}
	return setting, nil
}

func (s *SettingService) Set(ctx context.Context, key, value string) (*domain.Setting, error) {
	verr := &ValidationError{}
	if strings.TrimSpace(key) == "" {
		verr.add("key_name", "is required")
	}
	if err := verr.orNil(); err != nil {
		return nil, err
	}
	if err := s.settings.Upsert(ctx, strings.TrimSpace(key), value); err != nil {
		return nil, err
	}
	return &domain.Setting{KeyName: strings.TrimSpace(key), KeyValue: value}, nil
}

func (s *SettingService) Delete(ctx context.Context, key string) error {
	if err := s.settings.Delete(ctx, key); err != nil {
		if isNotFound(err) {
			return ErrSettingNotFound
		}
		return err
	}
	return nil
}

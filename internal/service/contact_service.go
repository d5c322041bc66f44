package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sunflowertrip/tour-booking-backend/internal/domain"
	"github.com/sunflowertrip/tour-booking-backend/internal/repository/ports"
)

type ContactService struct {
	contacts ports.ContactRepository
}

func NewContactService(contactRepo ports.ContactRepository) *ContactService {
	return &ContactService{contacts: contactRepo}
}

func (s *ContactService) Create(ctx context.Context, in domain.ContactInput) (*domain.Contact, error) {
	verr := &ValidationError{}
	if strings.TrimSpace(in.FirstName) == "" {
		verr.add("first_name", "is required")
	}
	if strings.TrimSpace(in.Email) == "" {
		verr.add("email", "is required")
	} else if !emailPattern.MatchString(in.Email) {
		verr.add("email", "is not a valid email address")
	}
	if err := verr.orNil(); err != nil {
		return nil, err
	}

	contact := &domain.Contact{
		ContactID:   uuid.New(),
		FirstName:   strings.TrimSpace(in.FirstName),
		Email:       strings.TrimSpace(in.Email),
		PhoneNumber: in.PhoneNumber,
		Subject:     in.Subject,
		Message:     in.Message,
	}
	if err := s.contacts.Create(ctx, contact); err != nil {
		return nil, err
	}
	return contact, nil
}

func (s *ContactService) List(ctx context.Context) ([]domain.Contact, error) {
	return s.contacts.List(ctx)
}

func (s *ContactService) Get(ctx context.Context, id uuid.UUID) (*domain.Contact, error) {
	contact, err := s.contacts.FindByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrContactNotFound
		}
		return nil, err
	}
	return contact, nil
}

func (s *ContactService) CreatedBetween(ctx context.Context, from, to time.Time) ([]domain.Contact, error) {
	return s.contacts.CreatedBetween(ctx, from, to)
}

func (s *ContactService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.contacts.Delete(ctx, id); err != nil {
		if isNotFound(err) {
			return ErrContactNotFound
		}
		return err
	}
	return nil
}

package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/sunflowertrip/tour-booking-backend/internal/domain"
	"github.com/sunflowertrip/tour-booking-backend/internal/repository/ports"
)

type ContactRepository struct {
	db *sqlx.DB
}

func NewContactRepo(db *sqlx.DB) *ContactRepository {
	return &ContactRepository{db: db}
}

func (r *ContactRepository) Create(ctx context.Context, contact *domain.Contact) error {
	const query = `
		INSERT INTO contacts (contact_id, first_name, email, phone_number, subject, message)
		VALUES (:contact_id, :first_name, :email, :phone_number, :subject, :message)
		RETURNING created_at
	`
	rows, err := r.db.NamedQueryContext(ctx, query, contact)
	if err != nil {
		return err
	}
	defer rows.Close()

	if rows.Next() {
		return rows.Scan(&contact.CreatedAt)
	}
	return sql.ErrNoRows
}

func (r *ContactRepository) List(ctx context.Context) ([]domain.Contact, error) {
	const query = `
		SELECT contact_id, first_name, email, phone_number, subject, message, created_at
		FROM contacts
		ORDER BY created_at DESC
	`
	var contacts []domain.Contact
	if err := r.db.SelectContext(ctx, &contacts, query); err != nil {
		return nil, err
	}
	return contacts, nil
}

func (r *ContactRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Contact, error) {
	const query = `
		SELECT contact_id, first_name, email, phone_number, subject, message, created_at
		FROM contacts
		WHERE contact_id = $1
	`
	var contact domain.Contact
	if err := r.db.GetContext(ctx, &contact, query, id); err != nil {
		return nil, err
	}
	return &contact, nil
}

func (r *ContactRepository) CreatedBetween(ctx context.Context, from, to time.Time) ([]domain.Contact, error) {
	const query = `
		SELECT contact_id, first_name, email, phone_number, subject, message, created_at
		FROM contacts
		WHERE created_at >= $1 AND created_at < $2
		ORDER BY created_at
	`
	var contacts []domain.Contact
	if err := r.db.SelectContext(ctx, &contacts, query, from, to); err != nil {
		return nil, err
	}
	return contacts, nil
}

func (r *ContactRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM contacts WHERE contact_id = $1`, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

var _ ports.ContactRepository = (*ContactRepository)(nil)

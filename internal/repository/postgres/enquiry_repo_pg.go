package postgres

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"

	"github.com/sunflowertrip/tour-booking-backend/internal/domain"
	"github.com/sunflowertrip/tour-booking-backend/internal/repository/ports"
)

type EnquiryRepository struct {
	db *sqlx.DB
}

func NewEnquiryRepo(db *sqlx.DB) *EnquiryRepository {
	return &EnquiryRepository{db: db}
}

func (r *EnquiryRepository) Create(ctx context.Context, enquiry *domain.Enquiry) error {
	const query = `
		INSERT INTO enquiries (tour_id, name, email, phone, description)
		VALUES (:tour_id, :name, :email, :phone, :description)
		RETURNING id, created_at
	`
	rows, err := r.db.NamedQueryContext(ctx, query, enquiry)
	if err != nil {
		return err
	}
	defer rows.Close()

	if rows.Next() {
		return rows.Scan(&enquiry.ID, &enquiry.CreatedAt)
	}
	return sql.ErrNoRows
}

func (r *EnquiryRepository) List(ctx context.Context) ([]domain.Enquiry, error) {
	const query = `
		SELECT id, tour_id, name, email, phone, description, created_at
		FROM enquiries
		ORDER BY created_at DESC
	`
	var enquiries []domain.Enquiry
	if err := r.db.SelectContext(ctx, &enquiries, query); err != nil {
		return nil, err
	}
	return enquiries, nil
}

func (r *EnquiryRepository) FindByID(ctx context.Context, id int64) (*domain.Enquiry, error) {
	const query = `
		SELECT id, tour_id, name, email, phone, description, created_at
		FROM enquiries
		WHERE id = $1
	`
	var enquiry domain.Enquiry
	if err := r.db.GetContext(ctx, &enquiry, query, id); err != nil {
		return nil, err
	}
	return &enquiry, nil
}

func (r *EnquiryRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM enquiries WHERE id = $1`, id)
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

var _ ports.EnquiryRepository = (*EnquiryRepository)(nil)

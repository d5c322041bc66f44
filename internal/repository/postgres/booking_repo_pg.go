package postgres

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/sunflowertrip/tour-booking-backend/internal/domain"
	"github.com/sunflowertrip/tour-booking-backend/internal/repository/ports"
)

type BookingRepository struct {
	db *sqlx.DB
}

func NewBookingRepo(db *sqlx.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

const bookingColumns = `
	id, reference, tour_id, name, email, phone, days, adults, children,
	child_ages, hotel_rating, meal_plan, flight_option, flight_number,
	travel_date, created_at
`

func (r *BookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	const query = `
		INSERT INTO bookings (
			reference, tour_id, name, email, phone, days, adults, children,
			child_ages, hotel_rating, meal_plan, flight_option, flight_number, travel_date
		) VALUES (
			:reference, :tour_id, :name, :email, :phone, :days, :adults, :children,
			:child_ages, :hotel_rating, :meal_plan, :flight_option, :flight_number, :travel_date
		)
		RETURNING id, created_at
	`
	rows, err := r.db.NamedQueryContext(ctx, query, booking)
	if err != nil {
		return err
	}
	defer rows.Close()

	if rows.Next() {
		return rows.Scan(&booking.ID, &booking.CreatedAt)
	}
	return sql.ErrNoRows
}

func (r *BookingRepository) List(ctx context.Context) ([]domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings ORDER BY created_at DESC`
	var bookings []domain.Booking
	if err := r.db.SelectContext(ctx, &bookings, query); err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *BookingRepository) FindByID(ctx context.Context, id int64) (*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`
	var booking domain.Booking
	if err := r.db.GetContext(ctx, &booking, query, id); err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *BookingRepository) FindByReference(ctx context.Context, reference uuid.UUID) (*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE reference = $1`
	var booking domain.Booking
	if err := r.db.GetContext(ctx, &booking, query, reference); err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *BookingRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM bookings WHERE id = $1`, id)
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

var _ ports.BookingRepository = (*BookingRepository)(nil)

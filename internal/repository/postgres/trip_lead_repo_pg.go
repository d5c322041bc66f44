package postgres

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"

	"github.com/sunflowertrip/tour-booking-backend/internal/domain"
	"github.com/sunflowertrip/tour-booking-backend/internal/repository/ports"
)

type TripLeadRepository struct {
	db *sqlx.DB
}

func NewTripLeadRepo(db *sqlx.DB) *TripLeadRepository {
	return &TripLeadRepository{db: db}
}

const tripLeadColumns = `
	id, full_name, email, phone_number, preferred_country, preferred_city,
	departure_date, return_date, number_of_days, number_of_adults,
	number_of_children, number_of_male, number_of_female, number_of_other,
	aged_persons, hotel_rating, meal_plan, room_type, need_flight,
	departure_airport, trip_type, estimate_range, created_at
`

func (r *TripLeadRepository) Create(ctx context.Context, lead *domain.TripLead) error {
	const query = `
		INSERT INTO trip_leads (
			full_name, email, phone_number, preferred_country, preferred_city,
			departure_date, return_date, number_of_days, number_of_adults,
			number_of_children, number_of_male, number_of_female, number_of_other,
			aged_persons, hotel_rating, meal_plan, room_type, need_flight,
			departure_airport, trip_type, estimate_range
		) VALUES (
			:full_name, :email, :phone_number, :preferred_country, :preferred_city,
			:departure_date, :return_date, :number_of_days, :number_of_adults,
			:number_of_children, :number_of_male, :number_of_female, :number_of_other,
			:aged_persons, :hotel_rating, :meal_plan, :room_type, :need_flight,
			:departure_airport, :trip_type, :estimate_range
		)
		RETURNING id, created_at
	`
	rows, err := r.db.NamedQueryContext(ctx, query, lead)
	if err != nil {
		return err
	}
	defer rows.Close()

	if rows.Next() {
		return rows.Scan(&lead.ID, &lead.CreatedAt)
	}
	return sql.ErrNoRows
}

func (r *TripLeadRepository) List(ctx context.Context) ([]domain.TripLead, error) {
	query := `SELECT ` + tripLeadColumns + ` FROM trip_leads ORDER BY created_at DESC`
	var leads []domain.TripLead
	if err := r.db.SelectContext(ctx, &leads, query); err != nil {
		return nil, err
	}
	return leads, nil
}

func (r *TripLeadRepository) FindByID(ctx context.Context, id int64) (*domain.TripLead, error) {
	query := `SELECT ` + tripLeadColumns + ` FROM trip_leads WHERE id = $1`
	var lead domain.TripLead
	if err := r.db.GetContext(ctx, &lead, query, id); err != nil {
		return nil, err
	}
	return &lead, nil
}

func (r *TripLeadRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM trip_leads WHERE id = $1`, id)
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

var _ ports.TripLeadRepository = (*TripLeadRepository)(nil)

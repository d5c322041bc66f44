package postgres

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"

	"github.com/sunflowertrip/tour-booking-backend/internal/domain"
	"github.com/sunflowertrip/tour-booking-backend/internal/repository/ports"
)

type ItineraryRepository struct {
	db *sqlx.DB
}

func NewItineraryRepo(db *sqlx.DB) *ItineraryRepository {
	return &ItineraryRepository{db: db}
}

const itineraryColumns = `
	id, name, email, phone, destination, travelers, children, child_ages,
	duration, date, budget, hotel_category, travel_type, occupation,
	preferences, created_at
`

func (r *ItineraryRepository) Create(ctx context.Context, itinerary *domain.Itinerary) error {
	const query = `
		INSERT INTO itineraries (
			name, email, phone, destination, travelers, children, child_ages,
			duration, date, budget, hotel_category, travel_type, occupation, preferences
		) VALUES (
			:name, :email, :phone, :destination, :travelers, :children, :child_ages,
			:duration, :date, :budget, :hotel_category, :travel_type, :occupation, :preferences
		)
		RETURNING id, created_at
	`
	rows, err := r.db.NamedQueryContext(ctx, query, itinerary)
	if err != nil {
		return err
	}
	defer rows.Close()

	if rows.Next() {
		return rows.Scan(&itinerary.ID, &itinerary.CreatedAt)
	}
	return sql.ErrNoRows
}

func (r *ItineraryRepository) List(ctx context.Context) ([]domain.Itinerary, error) {
	query := `SELECT ` + itineraryColumns + ` FROM itineraries ORDER BY created_at DESC`
	var itineraries []domain.Itinerary
	if err := r.db.SelectContext(ctx, &itineraries, query); err != nil {
		return nil, err
	}
	return itineraries, nil
}

func (r *ItineraryRepository) FindByID(ctx context.Context, id int64) (*domain.Itinerary, error) {
	query := `SELECT ` + itineraryColumns + ` FROM itineraries WHERE id = $1`
	var itinerary domain.Itinerary
	if err := r.db.GetContext(ctx, &itinerary, query, id); err != nil {
		return nil, err
	}
	return &itinerary, nil
}

func (r *ItineraryRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM itineraries WHERE id = $1`, id)
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

var _ ports.ItineraryRepository = (*ItineraryRepository)(nil)

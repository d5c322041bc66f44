package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/sunflowertrip/tour-booking-backend/internal/domain"
	"github.com/sunflowertrip/tour-booking-backend/internal/repository/ports"
)

type DestinationRepository struct {
	db *sqlx.DB
}

func NewDestinationRepo(db *sqlx.DB) *DestinationRepository {
	return &DestinationRepository{db: db}
}

const destinationColumns = `
	id, title, image_url, best_time_to_visit, weather, currency,
	language, time_zone, description, parent_id, created_at
`

func (r *DestinationRepository) List(ctx context.Context) ([]domain.Destination, error) {
	query := `SELECT ` + destinationColumns + ` FROM destinations ORDER BY title`
	var destinations []domain.Destination
	if err := r.db.SelectContext(ctx, &destinations, query); err != nil {
		return nil, err
	}
	return destinations, nil
}

func (r *DestinationRepository) Names(ctx context.Context) ([]domain.DestinationName, error) {
	const query = `SELECT id, parent_id, image_url, title FROM destinations ORDER BY title`
	var names []domain.DestinationName
	if err := r.db.SelectContext(ctx, &names, query); err != nil {
		return nil, err
	}
	return names, nil
}

func (r *DestinationRepository) FindByID(ctx context.Context, id int64) (*domain.Destination, error) {
	query := `SELECT ` + destinationColumns + ` FROM destinations WHERE id = $1`
	var dest domain.Destination
	if err := r.db.GetContext(ctx, &dest, query, id); err != nil {
		return nil, err
	}
	return &dest, nil
}

func (r *DestinationRepository) FindByTitle(ctx context.Context, title string) (*domain.Destination, error) {
	query := `SELECT ` + destinationColumns + ` FROM destinations WHERE LOWER(title) = LOWER($1)`
	var dest domain.Destination
	if err := r.db.GetContext(ctx, &dest, query, title); err != nil {
		return nil, err
	}
	return &dest, nil
}

func (r *DestinationRepository) LocationsByDestinationIDs(ctx context.Context, destinationIDs []int64) (map[int64][]domain.Location, error) {
	out := make(map[int64][]domain.Location, len(destinationIDs))
	if len(destinationIDs) == 0 {
		return out, nil
	}
	query, args, err := sqlx.In(`
		SELECT id, destination_id, name, description, image_url, iframe_360
		FROM locations
		WHERE destination_id IN (?)
		ORDER BY destination_id, name
	`, destinationIDs)
	if err != nil {
		return nil, err
	}
	rows, err := r.db.QueryxContext(ctx, r.db.Rebind(query), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var loc domain.Location
		if err := rows.StructScan(&loc); err != nil {
			return nil, err
		}
		out[loc.DestinationID] = append(out[loc.DestinationID], loc)
	}
	return out, rows.Err()
}

func (r *DestinationRepository) AttractionsByDestinationIDs(ctx context.Context, destinationIDs []int64) (map[int64][]domain.Attraction, error) {
	out := make(map[int64][]domain.Attraction, len(destinationIDs))
	if len(destinationIDs) == 0 {
		return out, nil
	}
	query, args, err := sqlx.In(`
		SELECT id, destination_id, title, image_url, rating, video_url
		FROM destination_attractions
		WHERE destination_id IN (?)
		ORDER BY destination_id, id
	`, destinationIDs)
	if err != nil {
		return nil, err
	}
	rows, err := r.db.QueryxContext(ctx, r.db.Rebind(query), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var a domain.Attraction
		if err := rows.StructScan(&a); err != nil {
			return nil, err
		}
		out[a.DestinationID] = append(out[a.DestinationID], a)
	}
	return out, rows.Err()
}

func (r *DestinationRepository) EthnicitiesByDestinationIDs(ctx context.Context, destinationIDs []int64) (map[int64][]domain.Ethnicity, error) {
	out := make(map[int64][]domain.Ethnicity, len(destinationIDs))
	if len(destinationIDs) == 0 {
		return out, nil
	}
	query, args, err := sqlx.In(`
		SELECT id, destination_id, title, image_url
		FROM destination_ethnicities
		WHERE destination_id IN (?)
		ORDER BY destination_id, id
	`, destinationIDs)
	if err != nil {
		return nil, err
	}
	rows, err := r.db.QueryxContext(ctx, r.db.Rebind(query), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var e domain.Ethnicity
		if err := rows.StructScan(&e); err != nil {
			return nil, err
		}
		out[e.DestinationID] = append(out[e.DestinationID], e)
	}
	return out, rows.Err()
}

func (r *DestinationRepository) CuisinesByDestinationIDs(ctx context.Context, destinationIDs []int64) (map[int64][]domain.Cuisine, error) {
	out := make(map[int64][]domain.Cuisine, len(destinationIDs))
	if len(destinationIDs) == 0 {
		return out, nil
	}
	query, args, err := sqlx.In(`
		SELECT id, destination_id, title, image_url
		FROM destination_cuisines
		WHERE destination_id IN (?)
		ORDER BY destination_id, id
	`, destinationIDs)
	if err != nil {
		return nil, err
	}
	rows, err := r.db.QueryxContext(ctx, r.db.Rebind(query), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var c domain.Cuisine
		if err := rows.StructScan(&c); err != nil {
			return nil, err
		}
		out[c.DestinationID] = append(out[c.DestinationID], c)
	}
	return out, rows.Err()
}

func (r *DestinationRepository) ActivitiesByDestinationIDs(ctx context.Context, destinationIDs []int64) (map[int64][]domain.Activity, error) {
	out := make(map[int64][]domain.Activity, len(destinationIDs))
	if len(destinationIDs) == 0 {
		return out, nil
	}
	query, args, err := sqlx.In(`
		SELECT id, destination_id, title, image_url
		FROM destination_activities
		WHERE destination_id IN (?)
		ORDER BY destination_id, id
	`, destinationIDs)
	if err != nil {
		return nil, err
	}
	rows, err := r.db.QueryxContext(ctx, r.db.Rebind(query), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var a domain.Activity
		if err := rows.StructScan(&a); err != nil {
			return nil, err
		}
		out[a.DestinationID] = append(out[a.DestinationID], a)
	}
	return out, rows.Err()
}

func (r *DestinationRepository) InTx(ctx context.Context, fn func(ports.DestinationTx) error) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		}
	}()
	if err := fn(&destinationTx{tx: tx}); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}

var _ ports.DestinationRepository = (*DestinationRepository)(nil)

type destinationTx struct {
	tx *sqlx.Tx
}

func (t *destinationTx) InsertDestination(ctx context.Context, fields domain.DestinationFields) (int64, error) {
	const query = `
		INSERT INTO destinations (
			title, image_url, best_time_to_visit, weather, currency,
			language, time_zone, description, parent_id
		) VALUES (
			:title, :image_url, :best_time_to_visit, :weather, :currency,
			:language, :time_zone, :description, :parent_id
		)
		RETURNING id
	`
	args := map[string]any{
		"title":              strOr(fields.Title, ""),
		"image_url":          fields.ImageURL,
		"best_time_to_visit": fields.BestTimeToVisit,
		"weather":            fields.Weather,
		"currency":           fields.Currency,
		"language":           fields.Language,
		"time_zone":          fields.TimeZone,
		"description":        fields.Description,
		"parent_id":          fields.ParentID,
	}

	rows, err := sqlx.NamedQueryContext(ctx, t.tx, query, args)
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	if rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return 0, err
		}
		return id, nil
	}
	return 0, sql.ErrNoRows
}

func (t *destinationTx) UpdateDestinationFields(ctx context.Context, id int64, fields domain.DestinationFields) error {
	set := []string{}
	args := []any{}
	idx := 1

	add := func(col string, val any) {
		set = append(set, fmt.Sprintf("%s = $%d", col, idx))
		args = append(args, val)
		idx++
	}

	if fields.Title != nil {
		add("title", *fields.Title)
	}
	if fields.ImageURL != nil {
		add("image_url", *fields.ImageURL)
	}
	if fields.BestTimeToVisit != nil {
		add("best_time_to_visit", *fields.BestTimeToVisit)
	}
	if fields.Weather != nil {
		add("weather", *fields.Weather)
	}
	if fields.Currency != nil {
		add("currency", *fields.Currency)
	}
	if fields.Language != nil {
		add("language", *fields.Language)
	}
	if fields.TimeZone != nil {
		add("time_zone", *fields.TimeZone)
	}
	if fields.Description != nil {
		add("description", *fields.Description)
	}
	if fields.ParentID != nil {
		add("parent_id", *fields.ParentID)
	}

	if len(set) == 0 {
		// Nothing to change; still verify the row exists.
		var exists bool
		if err := t.tx.GetContext(ctx, &exists, `SELECT EXISTS (SELECT 1 FROM destinations WHERE id = $1)`, id); err != nil {
			return err
		}
		if !exists {
			return sql.ErrNoRows
		}
		return nil
	}

	args = append(args, id)
	query := fmt.Sprintf(`UPDATE destinations SET %s WHERE id = $%d`, strings.Join(set, ", "), idx)

	result, err := t.tx.ExecContext(ctx, query, args...)
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

func (t *destinationTx) ReplaceLocations(ctx context.Context, destinationID int64, locations []domain.Location) error {
	if _, err := t.tx.ExecContext(ctx, `DELETE FROM locations WHERE destination_id = $1`, destinationID); err != nil {
		return err
	}
	for _, loc := range locations {
		if _, err := t.tx.ExecContext(ctx, `
			INSERT INTO locations (destination_id, name, description, image_url, iframe_360)
			VALUES ($1, $2, $3, $4, $5)
		`, destinationID, loc.Name, loc.Description, loc.ImageURL, loc.Iframe360); err != nil {
			return err
		}
	}
	return nil
}

func (t *destinationTx) ReplaceAttractions(ctx context.Context, destinationID int64, attractions []domain.Attraction) error {
	if _, err := t.tx.ExecContext(ctx, `DELETE FROM destination_attractions WHERE destination_id = $1`, destinationID); err != nil {
		return err
	}
	for _, a := range attractions {
		if _, err := t.tx.ExecContext(ctx, `
			INSERT INTO destination_attractions (destination_id, title, image_url, rating, video_url)
			VALUES ($1, $2, $3, $4, $5)
		`, destinationID, a.Title, a.ImageURL, a.Rating, a.VideoURL); err != nil {
			return err
		}
	}
	return nil
}

func (t *destinationTx) ReplaceEthnicities(ctx context.Context, destinationID int64, ethnicities []domain.Ethnicity) error {
	if _, err := t.tx.ExecContext(ctx, `DELETE FROM destination_ethnicities WHERE destination_id = $1`, destinationID); err != nil {
		return err
	}
	for _, e := range ethnicities {
		if _, err := t.tx.ExecContext(ctx, `
			INSERT INTO destination_ethnicities (destination_id, title, image_url)
			VALUES ($1, $2, $3)
		`, destinationID, e.Title, e.ImageURL); err != nil {
			return err
		}
	}
	return nil
}

func (t *destinationTx) ReplaceCuisines(ctx context.Context, destinationID int64, cuisines []domain.Cuisine) error {
	if _, err := t.tx.ExecContext(ctx, `DELETE FROM destination_cuisines WHERE destination_id = $1`, destinationID); err != nil {
		return err
	}
	for _, c := range cuisines {
		if _, err := t.tx.ExecContext(ctx, `
			INSERT INTO destination_cuisines (destination_id, title, image_url)
			VALUES ($1, $2, $3)
		`, destinationID, c.Title, c.ImageURL); err != nil {
			return err
		}
	}
	return nil
}

func (t *destinationTx) ReplaceActivities(ctx context.Context, destinationID int64, activities []domain.Activity) error {
	if _, err := t.tx.ExecContext(ctx, `DELETE FROM destination_activities WHERE destination_id = $1`, destinationID); err != nil {
		return err
	}
	for _, a := range activities {
		if _, err := t.tx.ExecContext(ctx, `
			INSERT INTO destination_activities (destination_id, title, image_url)
			VALUES ($1, $2, $3)
		`, destinationID, a.Title, a.ImageURL); err != nil {
			return err
		}
	}
	return nil
}

func (t *destinationTx) TourCount(ctx context.Context, destinationID int64) (int, error) {
	var count int
	if err := t.tx.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM tour_destinations WHERE destination_id = $1`, destinationID); err != nil {
		return 0, err
	}
	return count, nil
}

func (t *destinationTx) DeleteDetails(ctx context.Context, destinationID int64) error {
	tables := []string{
		"locations", "destination_attractions", "destination_ethnicities",
		"destination_cuisines", "destination_activities",
	}
	for _, table := range tables {
		if _, err := t.tx.ExecContext(ctx,
			fmt.Sprintf(`DELETE FROM %s WHERE destination_id = $1`, table), destinationID); err != nil {
			return err
		}
	}
	return nil
}

func (t *destinationTx) DeleteDestination(ctx context.Context, destinationID int64) error {
	result, err := t.tx.ExecContext(ctx, `DELETE FROM destinations WHERE id = $1`, destinationID)
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

var _ ports.DestinationTx = (*destinationTx)(nil)

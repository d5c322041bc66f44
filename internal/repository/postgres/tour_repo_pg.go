package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/sunflowertrip/tour-booking-backend/internal/domain"
	"github.com/sunflowertrip/tour-booking-backend/internal/repository/ports"
)

// tourSelect collapses the destination and location links into arrays so a
// listing needs one query for the parent rows no matter how many tours match.
const tourSelect = `
	SELECT
		t.*,
		COALESCE(array_agg(DISTINCT d.id) FILTER (WHERE d.id IS NOT NULL), '{}') AS destination_ids,
		COALESCE(array_agg(DISTINCT d.title) FILTER (WHERE d.id IS NOT NULL), '{}') AS destination_titles,
		COALESCE(array_agg(DISTINCT l.id) FILTER (WHERE l.id IS NOT NULL), '{}') AS location_ids,
		COALESCE(array_agg(DISTINCT l.name) FILTER (WHERE l.id IS NOT NULL), '{}') AS location_names
	FROM tours t
	LEFT JOIN tour_destinations td ON td.tour_id = t.id
	LEFT JOIN destinations d ON d.id = td.destination_id
	LEFT JOIN tour_locations tl ON tl.tour_id = t.id
	LEFT JOIN locations l ON l.id = tl.location_id
`

type TourRepository struct {
	db *sqlx.DB
}

func NewTourRepo(db *sqlx.DB) *TourRepository {
	return &TourRepository{db: db}
}

func (r *TourRepository) ListRows(ctx context.Context, filter domain.TourFilter) ([]domain.Tour, error) {
	clauses := []string{"t.is_active"}
	args := []any{}
	idx := 1

	add := func(clause string, vals ...any) {
		for range vals {
			clause = strings.Replace(clause, "?", fmt.Sprintf("$%d", idx), 1)
			idx++
		}
		clauses = append(clauses, clause)
		args = append(args, vals...)
	}

	if filter.DestinationID != nil {
		add("EXISTS (SELECT 1 FROM tour_destinations x WHERE x.tour_id = t.id AND x.destination_id = ?)", *filter.DestinationID)
	}
	if filter.LocationID != nil {
		add("EXISTS (SELECT 1 FROM tour_locations x WHERE x.tour_id = t.id AND x.location_id = ?)", *filter.LocationID)
	}
	if filter.Category != nil {
		add("t.category = ?", *filter.Category)
	}
	if filter.MinPrice != nil {
		add("t.price >= ?", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		add("t.price <= ?", *filter.MaxPrice)
	}
	if filter.MinDuration != nil {
		add("t.duration_days >= ?", *filter.MinDuration)
	}
	if filter.MaxDuration != nil {
		add("t.duration_days <= ?", *filter.MaxDuration)
	}
	if filter.AvailableFrom != nil {
		add("t.available_to >= ?", *filter.AvailableFrom)
	}
	if filter.AvailableTo != nil {
		add("t.available_from <= ?", *filter.AvailableTo)
	}
	if len(filter.AccommodationRatings) > 0 {
		add("t.accommodation_rating = ANY(?)", pq.Array(filter.AccommodationRatings))
	}
	if filter.FlightIncluded != nil {
		add("t.flight_included = ?", *filter.FlightIncluded)
	}
	if filter.Adults != nil {
		add("t.adults >= ?", *filter.Adults)
	}
	if filter.Children != nil {
		add("t.children >= ?", *filter.Children)
	}
	if filter.Rooms != nil {
		add("t.rooms >= ?", *filter.Rooms)
	}
	if filter.DepartureDate != nil {
		add("EXISTS (SELECT 1 FROM tour_departures x WHERE x.tour_id = t.id AND x.departure_date = ?)", *filter.DepartureDate)
	}
	if filter.FeaturedOnly {
		clauses = append(clauses, "t.is_featured")
	}

	query := fmt.Sprintf(`%s WHERE %s GROUP BY t.id ORDER BY t.created_at DESC, t.id DESC`,
		tourSelect, strings.Join(clauses, " AND "))

	rows, err := r.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tours []domain.Tour
	for rows.Next() {
		var tour domain.Tour
		if err := rows.StructScan(&tour); err != nil {
			return nil, err
		}
		tours = append(tours, tour)
	}
	return tours, rows.Err()
}

func (r *TourRepository) FindRowByID(ctx context.Context, id int64) (*domain.Tour, error) {
	query := tourSelect + ` WHERE t.id = $1 GROUP BY t.id`
	var tour domain.Tour
	if err := r.db.GetContext(ctx, &tour, query, id); err != nil {
		return nil, err
	}
	return &tour, nil
}

func (r *TourRepository) FindRowBySlug(ctx context.Context, slug string) (*domain.Tour, error) {
	query := tourSelect + ` WHERE t.slug = $1 AND t.is_active GROUP BY t.id`
	var tour domain.Tour
	if err := r.db.GetContext(ctx, &tour, query, slug); err != nil {
		return nil, err
	}
	return &tour, nil
}

func (r *TourRepository) PhotosByTourIDs(ctx context.Context, tourIDs []int64) (map[int64][]domain.TourPhoto, error) {
	out := make(map[int64][]domain.TourPhoto, len(tourIDs))
	if len(tourIDs) == 0 {
		return out, nil
	}
	query, args, err := sqlx.In(`
		SELECT id, tour_id, url, caption, is_primary, display_order
		FROM tour_photos
		WHERE tour_id IN (?)
		ORDER BY tour_id, display_order, id
	`, tourIDs)
	if err != nil {
		return nil, err
	}
	rows, err := r.db.QueryxContext(ctx, r.db.Rebind(query), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var photo domain.TourPhoto
		if err := rows.StructScan(&photo); err != nil {
			return nil, err
		}
		out[photo.TourID] = append(out[photo.TourID], photo)
	}
	return out, rows.Err()
}

func (r *TourRepository) ReviewsByTourIDs(ctx context.Context, tourIDs []int64) (map[int64][]domain.TourReview, error) {
	out := make(map[int64][]domain.TourReview, len(tourIDs))
	if len(tourIDs) == 0 {
		return out, nil
	}
	query, args, err := sqlx.In(`
		SELECT id, tour_id, reviewer_name, reviewer_email, rating, comment, is_verified, is_approved, date
		FROM tour_reviews
		WHERE tour_id IN (?) AND is_approved
		ORDER BY tour_id, date DESC, id DESC
	`, tourIDs)
	if err != nil {
		return nil, err
	}
	rows, err := r.db.QueryxContext(ctx, r.db.Rebind(query), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var review domain.TourReview
		if err := rows.StructScan(&review); err != nil {
			return nil, err
		}
		out[review.TourID] = append(out[review.TourID], review)
	}
	return out, rows.Err()
}

func (r *TourRepository) RoomTypesByTourIDs(ctx context.Context, tourIDs []int64) (map[int64][]domain.RoomType, error) {
	out := make(map[int64][]domain.RoomType, len(tourIDs))
	if len(tourIDs) == 0 {
		return out, nil
	}
	query, args, err := sqlx.In(`
		SELECT id, tour_id, name, description, max_occupancy
		FROM room_types
		WHERE tour_id IN (?)
		ORDER BY tour_id, id
	`, tourIDs)
	if err != nil {
		return nil, err
	}
	rows, err := r.db.QueryxContext(ctx, r.db.Rebind(query), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var rt domain.RoomType
		if err := rows.StructScan(&rt); err != nil {
			return nil, err
		}
		out[rt.TourID] = append(out[rt.TourID], rt)
	}
	return out, rows.Err()
}

func (r *TourRepository) ItineraryByTourIDs(ctx context.Context, tourIDs []int64) (map[int64][]domain.ItineraryDay, error) {
	out := make(map[int64][]domain.ItineraryDay, len(tourIDs))
	if len(tourIDs) == 0 {
		return out, nil
	}
	query, args, err := sqlx.In(`
		SELECT id, tour_id, day_number, title, description, activities, meals_included, accommodation
		FROM itinerary_days
		WHERE tour_id IN (?)
		ORDER BY tour_id, day_number
	`, tourIDs)
	if err != nil {
		return nil, err
	}
	rows, err := r.db.QueryxContext(ctx, r.db.Rebind(query), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var day domain.ItineraryDay
		if err := rows.StructScan(&day); err != nil {
			return nil, err
		}
		out[day.TourID] = append(out[day.TourID], day)
	}
	return out, rows.Err()
}

func (r *TourRepository) DeparturesByTourIDs(ctx context.Context, tourIDs []int64) (map[int64][]domain.Departure, error) {
	out := make(map[int64][]domain.Departure, len(tourIDs))
	if len(tourIDs) == 0 {
		return out, nil
	}
	query, args, err := sqlx.In(`
		SELECT tour_id, departure_date, available_seats
		FROM tour_departures
		WHERE tour_id IN (?)
		ORDER BY tour_id, departure_date
	`, tourIDs)
	if err != nil {
		return nil, err
	}
	rows, err := r.db.QueryxContext(ctx, r.db.Rebind(query), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var dep domain.Departure
		if err := rows.StructScan(&dep); err != nil {
			return nil, err
		}
		out[dep.TourID] = append(out[dep.TourID], dep)
	}
	return out, rows.Err()
}

func (r *TourRepository) Categories(ctx context.Context) ([]string, error) {
	const query = `
		SELECT DISTINCT category
		FROM tours
		WHERE category IS NOT NULL AND is_active
		ORDER BY category
	`
	var categories []string
	if err := r.db.SelectContext(ctx, &categories, query); err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *TourRepository) InTx(ctx context.Context, fn func(ports.TourTx) error) error {
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
	if err := fn(&tourTx{tx: tx}); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}

var _ ports.TourRepository = (*TourRepository)(nil)

type tourTx struct {
	tx *sqlx.Tx
}

func (t *tourTx) InsertTour(ctx context.Context, in domain.TourInput) (int64, error) {
	const query = `
		INSERT INTO tours (
			title, slug, description, duration_days, price, image_url, map_embed_url,
			category, available_from, available_to, departure_airport, arrival_airport,
			max_group_size, min_group_size, inclusions, exclusions, complementaries,
			highlights, booking_terms, cancellation_policy, meta_title, meta_description,
			price_per_person, price_currency, early_bird_discount, group_discount,
			difficulty_level, physical_requirements, best_time_to_visit, weather_info,
			packing_list, languages_supported, guide_included, guide_languages,
			transportation_included, transportation_details, meals_included,
			dietary_restrictions_supported, accommodation_type, accommodation_rating,
			activity_types, interests, instant_booking, requires_approval,
			advance_booking_days, is_active, is_featured, adults, children, rooms,
			is_customizable, flight_included
		) VALUES (
			:title, :slug, :description, :duration_days, :price, :image_url, :map_embed_url,
			:category, :available_from, :available_to, :departure_airport, :arrival_airport,
			:max_group_size, :min_group_size, :inclusions, :exclusions, :complementaries,
			:highlights, :booking_terms, :cancellation_policy, :meta_title, :meta_description,
			:price_per_person, :price_currency, :early_bird_discount, :group_discount,
			:difficulty_level, :physical_requirements, :best_time_to_visit, :weather_info,
			:packing_list, :languages_supported, :guide_included, :guide_languages,
			:transportation_included, :transportation_details, :meals_included,
			:dietary_restrictions_supported, :accommodation_type, :accommodation_rating,
			:activity_types, :interests, :instant_booking, :requires_approval,
			:advance_booking_days, :is_active, :is_featured, :adults, :children, :rooms,
			:is_customizable, :flight_included
		)
		RETURNING id
	`
	args := map[string]any{
		"title":                          in.Title,
		"slug":                           in.Slug,
		"description":                    in.Description,
		"duration_days":                  in.DurationDays,
		"price":                          in.Price,
		"image_url":                      in.ImageURL,
		"map_embed_url":                  in.MapEmbedURL,
		"category":                       in.Category,
		"available_from":                 in.AvailableFrom,
		"available_to":                   in.AvailableTo,
		"departure_airport":              in.DepartureAirport,
		"arrival_airport":                in.ArrivalAirport,
		"max_group_size":                 in.MaxGroupSize,
		"min_group_size":                 in.MinGroupSize,
		"inclusions":                     in.Inclusions,
		"exclusions":                     in.Exclusions,
		"complementaries":                in.Complementaries,
		"highlights":                     in.Highlights,
		"booking_terms":                  in.BookingTerms,
		"cancellation_policy":            in.CancellationPolicy,
		"meta_title":                     in.MetaTitle,
		"meta_description":               in.MetaDescription,
		"price_per_person":               in.PricePerPerson,
		"price_currency":                 strOr(in.PriceCurrency, "INR"),
		"early_bird_discount":            in.EarlyBirdDiscount,
		"group_discount":                 in.GroupDiscount,
		"difficulty_level":               in.DifficultyLevel,
		"physical_requirements":          in.PhysicalRequirements,
		"best_time_to_visit":             in.BestTimeToVisit,
		"weather_info":                   in.WeatherInfo,
		"packing_list":                   in.PackingList,
		"languages_supported":            in.LanguagesSupported,
		"guide_included":                 boolOr(in.GuideIncluded, true),
		"guide_languages":                in.GuideLanguages,
		"transportation_included":        boolOr(in.TransportationIncluded, true),
		"transportation_details":         in.TransportationDetails,
		"meals_included":                 in.MealsIncluded,
		"dietary_restrictions_supported": in.DietaryRestrictionsSupported,
		"accommodation_type":             in.AccommodationType,
		"accommodation_rating":           in.AccommodationRating,
		"activity_types":                 in.ActivityTypes,
		"interests":                      in.Interests,
		"instant_booking":                boolOr(in.InstantBooking, false),
		"requires_approval":              boolOr(in.RequiresApproval, true),
		"advance_booking_days":           intOr(in.AdvanceBookingDays, 7),
		"is_active":                      boolOr(in.IsActive, true),
		"is_featured":                    boolOr(in.IsFeatured, false),
		"adults":                         intOr(in.Adults, 0),
		"children":                       intOr(in.Children, 0),
		"rooms":                          intOr(in.Rooms, 1),
		"is_customizable":                boolOr(in.IsCustomizable, false),
		"flight_included":                boolOr(in.FlightIncluded, false),
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

func (t *tourTx) UpdateTourFields(ctx context.Context, id int64, patch domain.TourUpdate) error {
	set := []string{"updated_at = NOW()"}
	args := []any{}
	idx := 1

	add := func(col string, val any) {
		set = append(set, fmt.Sprintf("%s = $%d", col, idx))
		args = append(args, val)
		idx++
	}

	if patch.Title != nil {
		add("title", *patch.Title)
	}
	if patch.Slug != nil {
		add("slug", *patch.Slug)
	}
	if patch.Description != nil {
		add("description", *patch.Description)
	}
	if patch.DurationDays != nil {
		add("duration_days", *patch.DurationDays)
	}
	if patch.Price != nil {
		add("price", *patch.Price)
	}
	if patch.ImageURL != nil {
		add("image_url", *patch.ImageURL)
	}
	if patch.MapEmbedURL != nil {
		add("map_embed_url", *patch.MapEmbedURL)
	}
	if patch.Category != nil {
		add("category", *patch.Category)
	}
	if patch.AvailableFrom != nil {
		add("available_from", *patch.AvailableFrom)
	}
	if patch.AvailableTo != nil {
		add("available_to", *patch.AvailableTo)
	}
	if patch.DepartureAirport != nil {
		add("departure_airport", *patch.DepartureAirport)
	}
	if patch.ArrivalAirport != nil {
		add("arrival_airport", *patch.ArrivalAirport)
	}
	if patch.MaxGroupSize != nil {
		add("max_group_size", *patch.MaxGroupSize)
	}
	if patch.MinGroupSize != nil {
		add("min_group_size", *patch.MinGroupSize)
	}
	if patch.Inclusions != nil {
		add("inclusions", patch.Inclusions)
	}
	if patch.Exclusions != nil {
		add("exclusions", patch.Exclusions)
	}
	if patch.Complementaries != nil {
		add("complementaries", patch.Complementaries)
	}
	if patch.Highlights != nil {
		add("highlights", patch.Highlights)
	}
	if patch.BookingTerms != nil {
		add("booking_terms", *patch.BookingTerms)
	}
	if patch.CancellationPolicy != nil {
		add("cancellation_policy", *patch.CancellationPolicy)
	}
	if patch.MetaTitle != nil {
		add("meta_title", *patch.MetaTitle)
	}
	if patch.MetaDescription != nil {
		add("meta_description", *patch.MetaDescription)
	}
	if patch.PricePerPerson != nil {
		add("price_per_person", *patch.PricePerPerson)
	}
	if patch.PriceCurrency != nil {
		add("price_currency", *patch.PriceCurrency)
	}
	if patch.EarlyBirdDiscount != nil {
		add("early_bird_discount", *patch.EarlyBirdDiscount)
	}
	if patch.GroupDiscount != nil {
		add("group_discount", *patch.GroupDiscount)
	}
	if patch.DifficultyLevel != nil {
		add("difficulty_level", *patch.DifficultyLevel)
	}
	if patch.PhysicalRequirements != nil {
		add("physical_requirements", *patch.PhysicalRequirements)
	}
	if patch.BestTimeToVisit != nil {
		add("best_time_to_visit", *patch.BestTimeToVisit)
	}
	if patch.WeatherInfo != nil {
		add("weather_info", *patch.WeatherInfo)
	}
	if patch.PackingList != nil {
		add("packing_list", patch.PackingList)
	}
	if patch.LanguagesSupported != nil {
		add("languages_supported", patch.LanguagesSupported)
	}
	if patch.GuideIncluded != nil {
		add("guide_included", *patch.GuideIncluded)
	}
	if patch.GuideLanguages != nil {
		add("guide_languages", patch.GuideLanguages)
	}
	if patch.TransportationIncluded != nil {
		add("transportation_included", *patch.TransportationIncluded)
	}
	if patch.TransportationDetails != nil {
		add("transportation_details", *patch.TransportationDetails)
	}
	if patch.MealsIncluded != nil {
		add("meals_included", patch.MealsIncluded)
	}
	if patch.DietaryRestrictionsSupported != nil {
		add("dietary_restrictions_supported", patch.DietaryRestrictionsSupported)
	}
	if patch.AccommodationType != nil {
		add("accommodation_type", *patch.AccommodationType)
	}
	if patch.AccommodationRating != nil {
		add("accommodation_rating", *patch.AccommodationRating)
	}
	if patch.ActivityTypes != nil {
		add("activity_types", patch.ActivityTypes)
	}
	if patch.Interests != nil {
		add("interests", patch.Interests)
	}
	if patch.InstantBooking != nil {
		add("instant_booking", *patch.InstantBooking)
	}
	if patch.RequiresApproval != nil {
		add("requires_approval", *patch.RequiresApproval)
	}
	if patch.AdvanceBookingDays != nil {
		add("advance_booking_days", *patch.AdvanceBookingDays)
	}
	if patch.IsActive != nil {
		add("is_active", *patch.IsActive)
	}
	if patch.IsFeatured != nil {
		add("is_featured", *patch.IsFeatured)
	}
	if patch.Adults != nil {
		add("adults", *patch.Adults)
	}
	if patch.Children != nil {
		add("children", *patch.Children)
	}
	if patch.Rooms != nil {
		add("rooms", *patch.Rooms)
	}
	if patch.IsCustomizable != nil {
		add("is_customizable", *patch.IsCustomizable)
	}
	if patch.FlightIncluded != nil {
		add("flight_included", *patch.FlightIncluded)
	}

	args = append(args, id)
	query := fmt.Sprintf(`UPDATE tours SET %s WHERE id = $%d`, strings.Join(set, ", "), idx)

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

func (t *tourTx) TourByID(ctx context.Context, id int64) (*domain.Tour, error) {
	query := tourSelect + ` WHERE t.id = $1 GROUP BY t.id`
	var tour domain.Tour
	if err := t.tx.GetContext(ctx, &tour, query, id); err != nil {
		return nil, err
	}
	return &tour, nil
}

func (t *tourTx) ValidDestinationIDs(ctx context.Context, ids []int64) ([]int64, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query, args, err := sqlx.In(`SELECT id FROM destinations WHERE id IN (?)`, ids)
	if err != nil {
		return nil, err
	}
	var found []int64
	if err := t.tx.SelectContext(ctx, &found, t.tx.Rebind(query), args...); err != nil {
		return nil, err
	}
	return found, nil
}

func (t *tourTx) LocationIDsWithin(ctx context.Context, destinationIDs, locationIDs []int64) ([]int64, error) {
	if len(locationIDs) == 0 || len(destinationIDs) == 0 {
		return nil, nil
	}
	query, args, err := sqlx.In(`
		SELECT id FROM locations WHERE id IN (?) AND destination_id IN (?)
	`, locationIDs, destinationIDs)
	if err != nil {
		return nil, err
	}
	var found []int64
	if err := t.tx.SelectContext(ctx, &found, t.tx.Rebind(query), args...); err != nil {
		return nil, err
	}
	return found, nil
}

func (t *tourTx) DepartureCount(ctx context.Context, tourID int64) (int, error) {
	var count int
	if err := t.tx.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM tour_departures WHERE tour_id = $1`, tourID); err != nil {
		return 0, err
	}
	return count, nil
}

func (t *tourTx) ReplaceDestinations(ctx context.Context, tourID int64, destinationIDs []int64) error {
	if _, err := t.tx.ExecContext(ctx, `DELETE FROM tour_destinations WHERE tour_id = $1`, tourID); err != nil {
		return err
	}
	for _, destinationID := range destinationIDs {
		if _, err := t.tx.ExecContext(ctx,
			`INSERT INTO tour_destinations (tour_id, destination_id) VALUES ($1, $2)`,
			tourID, destinationID); err != nil {
			return err
		}
	}
	return nil
}

func (t *tourTx) ReplaceLocations(ctx context.Context, tourID int64, locationIDs []int64) error {
	if _, err := t.tx.ExecContext(ctx, `DELETE FROM tour_locations WHERE tour_id = $1`, tourID); err != nil {
		return err
	}
	for _, locationID := range locationIDs {
		if _, err := t.tx.ExecContext(ctx,
			`INSERT INTO tour_locations (tour_id, location_id) VALUES ($1, $2)`,
			tourID, locationID); err != nil {
			return err
		}
	}
	return nil
}

func (t *tourTx) ReplacePhotos(ctx context.Context, tourID int64, photos []domain.TourPhoto) error {
	if _, err := t.tx.ExecContext(ctx, `DELETE FROM tour_photos WHERE tour_id = $1`, tourID); err != nil {
		return err
	}
	for _, photo := range photos {
		if _, err := t.tx.ExecContext(ctx, `
			INSERT INTO tour_photos (tour_id, url, caption, is_primary, display_order)
			VALUES ($1, $2, $3, $4, $5)
		`, tourID, photo.URL, photo.Caption, photo.IsPrimary, photo.DisplayOrder); err != nil {
			return err
		}
	}
	return nil
}

func (t *tourTx) ReplaceReviews(ctx context.Context, tourID int64, reviews []domain.TourReview) error {
	if _, err := t.tx.ExecContext(ctx, `DELETE FROM tour_reviews WHERE tour_id = $1`, tourID); err != nil {
		return err
	}
	for _, review := range reviews {
		if _, err := t.tx.ExecContext(ctx, `
			INSERT INTO tour_reviews (tour_id, reviewer_name, reviewer_email, rating, comment, is_verified, is_approved, date)
			VALUES ($1, $2, $3, $4, $5, $6, $7, COALESCE($8, NOW()))
		`, tourID, review.ReviewerName, review.ReviewerEmail, review.Rating, review.Comment,
			review.IsVerified, review.IsApproved, nullTime(review.Date)); err != nil {
			return err
		}
	}
	return nil
}

func (t *tourTx) ReplaceRoomTypes(ctx context.Context, tourID int64, roomTypes []domain.RoomType) error {
	if _, err := t.tx.ExecContext(ctx, `DELETE FROM room_types WHERE tour_id = $1`, tourID); err != nil {
		return err
	}
	for _, rt := range roomTypes {
		if _, err := t.tx.ExecContext(ctx, `
			INSERT INTO room_types (tour_id, name, description, max_occupancy)
			VALUES ($1, $2, $3, $4)
		`, tourID, rt.Name, rt.Description, rt.MaxOccupancy); err != nil {
			return err
		}
	}
	return nil
}

func (t *tourTx) ReplaceItinerary(ctx context.Context, tourID int64, days []domain.ItineraryDay) error {
	if _, err := t.tx.ExecContext(ctx, `DELETE FROM itinerary_days WHERE tour_id = $1`, tourID); err != nil {
		return err
	}
	for _, day := range days {
		if _, err := t.tx.ExecContext(ctx, `
			INSERT INTO itinerary_days (tour_id, day_number, title, description, activities, meals_included, accommodation)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, tourID, day.DayNumber, day.Title, day.Description, day.Activities, day.MealsIncluded, day.Accommodation); err != nil {
			return err
		}
	}
	return nil
}

func (t *tourTx) ReplaceDepartures(ctx context.Context, tourID int64, departures []domain.Departure) error {
	if _, err := t.tx.ExecContext(ctx, `DELETE FROM tour_departures WHERE tour_id = $1`, tourID); err != nil {
		return err
	}
	for _, dep := range departures {
		if _, err := t.tx.ExecContext(ctx, `
			INSERT INTO tour_departures (tour_id, departure_date, available_seats)
			VALUES ($1, $2, $3)
		`, tourID, dep.DepartureDate, dep.AvailableSeats); err != nil {
			return err
		}
	}
	return nil
}

func (t *tourTx) DeleteChildren(ctx context.Context, tourID int64) error {
	tables := []string{
		"tour_photos", "tour_reviews", "room_types", "itinerary_days",
		"tour_departures", "tour_destinations", "tour_locations",
	}
	for _, table := range tables {
		if _, err := t.tx.ExecContext(ctx,
			fmt.Sprintf(`DELETE FROM %s WHERE tour_id = $1`, table), tourID); err != nil {
			return err
		}
	}
	return nil
}

func (t *tourTx) DeleteTour(ctx context.Context, tourID int64) error {
	result, err := t.tx.ExecContext(ctx, `DELETE FROM tours WHERE id = $1`, tourID)
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

var _ ports.TourTx = (*tourTx)(nil)

package domain

import (
	"time"

	"github.com/lib/pq"
)

// Tour is the aggregate root: one parent row plus five owned child
// collections and two many-to-many link sets. Child slices are never nil
// after assembly; a tour without photos carries an empty slice.
type Tour struct {
	ID                           int64       `db:"id" json:"id"`
	Title                        string      `db:"title" json:"title"`
	Slug                         string      `db:"slug" json:"slug"`
	Description                  string      `db:"description" json:"description"`
	DurationDays                 *int        `db:"duration_days" json:"duration_days,omitempty"`
	Price                        *float64    `db:"price" json:"price,omitempty"`
	ImageURL                     *string     `db:"image_url" json:"image_url,omitempty"`
	MapEmbedURL                  *string     `db:"map_embed_url" json:"map_embed_url,omitempty"`
	Category                     *string     `db:"category" json:"category,omitempty"`
	AvailableFrom                *time.Time  `db:"available_from" json:"available_from,omitempty"`
	AvailableTo                  *time.Time  `db:"available_to" json:"available_to,omitempty"`
	DepartureAirport             *string     `db:"departure_airport" json:"departure_airport,omitempty"`
	ArrivalAirport               *string     `db:"arrival_airport" json:"arrival_airport,omitempty"`
	MaxGroupSize                 *int        `db:"max_group_size" json:"max_group_size,omitempty"`
	MinGroupSize                 *int        `db:"min_group_size" json:"min_group_size,omitempty"`
	Inclusions                   StringList  `db:"inclusions" json:"inclusions"`
	Exclusions                   StringList  `db:"exclusions" json:"exclusions"`
	Complementaries              StringList  `db:"complementaries" json:"complementaries"`
	Highlights                   StringList  `db:"highlights" json:"highlights"`
	BookingTerms                 *string     `db:"booking_terms" json:"booking_terms,omitempty"`
	CancellationPolicy           *string     `db:"cancellation_policy" json:"cancellation_policy,omitempty"`
	MetaTitle                    *string     `db:"meta_title" json:"meta_title,omitempty"`
	MetaDescription              *string     `db:"meta_description" json:"meta_description,omitempty"`
	PricePerPerson               *float64    `db:"price_per_person" json:"price_per_person,omitempty"`
	PriceCurrency                string      `db:"price_currency" json:"price_currency"`
	EarlyBirdDiscount            *float64    `db:"early_bird_discount" json:"early_bird_discount,omitempty"`
	GroupDiscount                *float64    `db:"group_discount" json:"group_discount,omitempty"`
	DifficultyLevel              *string     `db:"difficulty_level" json:"difficulty_level,omitempty"`
	PhysicalRequirements         *string     `db:"physical_requirements" json:"physical_requirements,omitempty"`
	BestTimeToVisit              *string     `db:"best_time_to_visit" json:"best_time_to_visit,omitempty"`
	WeatherInfo                  *string     `db:"weather_info" json:"weather_info,omitempty"`
	PackingList                  StringList  `db:"packing_list" json:"packing_list"`
	LanguagesSupported           StringList  `db:"languages_supported" json:"languages_supported"`
	GuideIncluded                bool        `db:"guide_included" json:"guide_included"`
	GuideLanguages               StringList  `db:"guide_languages" json:"guide_languages"`
	TransportationIncluded       bool        `db:"transportation_included" json:"transportation_included"`
	TransportationDetails        *string     `db:"transportation_details" json:"transportation_details,omitempty"`
	MealsIncluded                StringList  `db:"meals_included" json:"meals_included"`
	DietaryRestrictionsSupported StringList  `db:"dietary_restrictions_supported" json:"dietary_restrictions_supported"`
	AccommodationType            *string     `db:"accommodation_type" json:"accommodation_type,omitempty"`
	AccommodationRating          *int        `db:"accommodation_rating" json:"accommodation_rating,omitempty"`
	ActivityTypes                StringList  `db:"activity_types" json:"activity_types"`
	Interests                    StringList  `db:"interests" json:"interests"`
	InstantBooking               bool        `db:"instant_booking" json:"instant_booking"`
	RequiresApproval             bool        `db:"requires_approval" json:"requires_approval"`
	AdvanceBookingDays           int         `db:"advance_booking_days" json:"advance_booking_days"`
	IsActive                     bool        `db:"is_active" json:"is_active"`
	IsFeatured                   bool        `db:"is_featured" json:"is_featured"`
	Adults                       int         `db:"adults" json:"adults"`
	Children                     int         `db:"children" json:"children"`
	Rooms                        int         `db:"rooms" json:"rooms"`
	IsCustomizable               bool        `db:"is_customizable" json:"is_customizable"`
	FlightIncluded               bool        `db:"flight_included" json:"flight_included"`
	CreatedAt                    time.Time   `db:"created_at" json:"created_at"`
	UpdatedAt                    time.Time   `db:"updated_at" json:"updated_at"`

	// Denormalized link arrays collapsed from the destination/location joins.
	DestinationIDs    pq.Int64Array  `db:"destination_ids" json:"destination_ids"`
	DestinationTitles pq.StringArray `db:"destination_titles" json:"destination_titles"`
	LocationIDs       pq.Int64Array  `db:"location_ids" json:"location_ids"`
	LocationNames     pq.StringArray `db:"location_names" json:"location_names"`

	// Child collections, attached by the aggregate assembly.
	Photos     []TourPhoto    `db:"-" json:"photos"`
	Reviews    []TourReview   `db:"-" json:"reviews"`
	RoomTypes  []RoomType     `db:"-" json:"room_types"`
	Itinerary  []ItineraryDay `db:"-" json:"itinerary"`
	Departures []Departure    `db:"-" json:"departures"`
}

const TourCategoryGroup = "group"

// IsGroup reports whether the tour runs on fixed group departures.
func (t *Tour) IsGroup() bool {
	return t.Category != nil && *t.Category == TourCategoryGroup
}

type TourPhoto struct {
	ID           int64   `db:"id" json:"id"`
	TourID       int64   `db:"tour_id" json:"-"`
	URL          string  `db:"url" json:"url"`
	Caption      *string `db:"caption" json:"caption,omitempty"`
	IsPrimary    bool    `db:"is_primary" json:"is_primary"`
	DisplayOrder int     `db:"display_order" json:"display_order"`
}

type TourReview struct {
	ID            int64     `db:"id" json:"id"`
	TourID        int64     `db:"tour_id" json:"-"`
	ReviewerName  string    `db:"reviewer_name" json:"reviewer_name"`
	ReviewerEmail *string   `db:"reviewer_email" json:"reviewer_email,omitempty"`
	Rating        int       `db:"rating" json:"rating"`
	Comment       string    `db:"comment" json:"comment"`
	IsVerified    bool      `db:"is_verified" json:"is_verified"`
	IsApproved    bool      `db:"is_approved" json:"is_approved"`
	Date          time.Time `db:"date" json:"date"`
}

type RoomType struct {
	ID           int64   `db:"id" json:"id"`
	TourID       int64   `db:"tour_id" json:"-"`
	Name         string  `db:"name" json:"name"`
	Description  *string `db:"description" json:"description,omitempty"`
	MaxOccupancy *int    `db:"max_occupancy" json:"max_occupancy,omitempty"`
}

type ItineraryDay struct {
	ID            int64      `db:"id" json:"id"`
	TourID        int64      `db:"tour_id" json:"-"`
	DayNumber     int        `db:"day_number" json:"day_number"`
	Title         string     `db:"title" json:"title"`
	Description   string     `db:"description" json:"description"`
	Activities    StringList `db:"activities" json:"activities"`
	MealsIncluded StringList `db:"meals_included" json:"meals_included"`
	Accommodation *string    `db:"accommodation" json:"accommodation,omitempty"`
}

type Departure struct {
	TourID         int64     `db:"tour_id" json:"-"`
	DepartureDate  time.Time `db:"departure_date" json:"departure_date"`
	AvailableSeats int       `db:"available_seats" json:"available_seats"`
}

// TourFilter narrows a tour listing. Nil fields are ignored.
type TourFilter struct {
	DestinationID        *int64
	Category             *string
	MinPrice             *float64
	MaxPrice             *float64
	MinDuration          *int
	MaxDuration          *int
	AvailableFrom        *time.Time
	AvailableTo          *time.Time
	AccommodationRatings []int
	LocationID           *int64
	FlightIncluded       *bool
	Adults               *int
	Children             *int
	Rooms                *int
	DepartureDate        *time.Time
	FeaturedOnly         bool
}

// TourInput carries a full create payload: every parent column the caller
// may set plus the child collections and link id sets.
type TourInput struct {
	Title                        string         `json:"title"`
	Slug                         string         `json:"slug"`
	Description                  string         `json:"description"`
	DurationDays                 *int           `json:"duration_days"`
	Price                        *float64       `json:"price"`
	ImageURL                     *string        `json:"image_url"`
	MapEmbedURL                  *string        `json:"map_embed_url"`
	Category                     *string        `json:"category"`
	AvailableFrom                *time.Time     `json:"available_from"`
	AvailableTo                  *time.Time     `json:"available_to"`
	DepartureAirport             *string        `json:"departure_airport"`
	ArrivalAirport               *string        `json:"arrival_airport"`
	MaxGroupSize                 *int           `json:"max_group_size"`
	MinGroupSize                 *int           `json:"min_group_size"`
	Inclusions                   StringList     `json:"inclusions"`
	Exclusions                   StringList     `json:"exclusions"`
	Complementaries              StringList     `json:"complementaries"`
	Highlights                   StringList     `json:"highlights"`
	BookingTerms                 *string        `json:"booking_terms"`
	CancellationPolicy           *string        `json:"cancellation_policy"`
	MetaTitle                    *string        `json:"meta_title"`
	MetaDescription              *string        `json:"meta_description"`
	PricePerPerson               *float64       `json:"price_per_person"`
	PriceCurrency                *string        `json:"price_currency"`
	EarlyBirdDiscount            *float64       `json:"early_bird_discount"`
	GroupDiscount                *float64       `json:"group_discount"`
	DifficultyLevel              *string        `json:"difficulty_level"`
	PhysicalRequirements         *string        `json:"physical_requirements"`
	BestTimeToVisit              *string        `json:"best_time_to_visit"`
	WeatherInfo                  *string        `json:"weather_info"`
	PackingList                  StringList     `json:"packing_list"`
	LanguagesSupported           StringList     `json:"languages_supported"`
	GuideIncluded                *bool          `json:"guide_included"`
	GuideLanguages               StringList     `json:"guide_languages"`
	TransportationIncluded       *bool          `json:"transportation_included"`
	TransportationDetails        *string        `json:"transportation_details"`
	MealsIncluded                StringList     `json:"meals_included"`
	DietaryRestrictionsSupported StringList     `json:"dietary_restrictions_supported"`
	AccommodationType            *string        `json:"accommodation_type"`
	AccommodationRating          *int           `json:"accommodation_rating"`
	ActivityTypes                StringList     `json:"activity_types"`
	Interests                    StringList     `json:"interests"`
	InstantBooking               *bool          `json:"instant_booking"`
	RequiresApproval             *bool          `json:"requires_approval"`
	AdvanceBookingDays           *int           `json:"advance_booking_days"`
	IsActive                     *bool          `json:"is_active"`
	IsFeatured                   *bool          `json:"is_featured"`
	Adults                       *int           `json:"adults"`
	Children                     *int           `json:"children"`
	Rooms                        *int           `json:"rooms"`
	IsCustomizable               *bool          `json:"is_customizable"`
	FlightIncluded               *bool          `json:"flight_included"`

	DestinationIDs []int64        `json:"destination_ids"`
	LocationIDs    []int64        `json:"location_ids"`
	Photos         []TourPhoto    `json:"photos"`
	Reviews        []TourReview   `json:"reviews"`
	RoomTypes      []RoomType     `json:"room_types"`
	Itinerary      []ItineraryDay `json:"itinerary"`
	Departures     []Departure    `json:"departures"`
}

// TourUpdate is a partial update: nil scalar pointers leave the column
// untouched, nil slices leave the child collection untouched, and empty
// non-nil slices clear it.
type TourUpdate struct {
	Title                        *string    `json:"title"`
	Slug                         *string    `json:"slug"`
	Description                  *string    `json:"description"`
	DurationDays                 *int       `json:"duration_days"`
	Price                        *float64   `json:"price"`
	ImageURL                     *string    `json:"image_url"`
	MapEmbedURL                  *string    `json:"map_embed_url"`
	Category                     *string    `json:"category"`
	AvailableFrom                *time.Time `json:"available_from"`
	AvailableTo                  *time.Time `json:"available_to"`
	DepartureAirport             *string    `json:"departure_airport"`
	ArrivalAirport               *string    `json:"arrival_airport"`
	MaxGroupSize                 *int       `json:"max_group_size"`
	MinGroupSize                 *int       `json:"min_group_size"`
	Inclusions                   StringList `json:"inclusions"`
	Exclusions                   StringList `json:"exclusions"`
	Complementaries              StringList `json:"complementaries"`
	Highlights                   StringList `json:"highlights"`
	BookingTerms                 *string    `json:"booking_terms"`
	CancellationPolicy           *string    `json:"cancellation_policy"`
	MetaTitle                    *string    `json:"meta_title"`
	MetaDescription              *string    `json:"meta_description"`
	PricePerPerson               *float64   `json:"price_per_person"`
	PriceCurrency                *string    `json:"price_currency"`
	EarlyBirdDiscount            *float64   `json:"early_bird_discount"`
	GroupDiscount                *float64   `json:"group_discount"`
	DifficultyLevel              *string    `json:"difficulty_level"`
	PhysicalRequirements         *string    `json:"physical_requirements"`
	BestTimeToVisit              *string    `json:"best_time_to_visit"`
	WeatherInfo                  *string    `json:"weather_info"`
	PackingList                  StringList `json:"packing_list"`
	LanguagesSupported           StringList `json:"languages_supported"`
	GuideIncluded                *bool      `json:"guide_included"`
	GuideLanguages               StringList `json:"guide_languages"`
	TransportationIncluded       *bool      `json:"transportation_included"`
	TransportationDetails        *string    `json:"transportation_details"`
	MealsIncluded                StringList `json:"meals_included"`
	DietaryRestrictionsSupported StringList `json:"dietary_restrictions_supported"`
	AccommodationType            *string    `json:"accommodation_type"`
	AccommodationRating          *int       `json:"accommodation_rating"`
	ActivityTypes                StringList `json:"activity_types"`
	Interests                    StringList `json:"interests"`
	InstantBooking               *bool      `json:"instant_booking"`
	RequiresApproval             *bool      `json:"requires_approval"`
	AdvanceBookingDays           *int       `json:"advance_booking_days"`
	IsActive                     *bool      `json:"is_active"`
	IsFeatured                   *bool      `json:"is_featured"`
	Adults                       *int       `json:"adults"`
	Children                     *int       `json:"children"`
	Rooms                        *int       `json:"rooms"`
	IsCustomizable               *bool      `json:"is_customizable"`
	FlightIncluded               *bool      `json:"flight_included"`

	DestinationIDs []int64        `json:"destination_ids"`
	LocationIDs    []int64        `json:"location_ids"`
	Photos         []TourPhoto    `json:"photos"`
	Reviews        []TourReview   `json:"reviews"`
	RoomTypes      []RoomType     `json:"room_types"`
	Itinerary      []ItineraryDay `json:"itinerary"`
	Departures     []Departure    `json:"departures"`
}

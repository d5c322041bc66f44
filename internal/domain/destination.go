package domain

import "time"

// Destination is the second aggregate root: a destination row plus five
// owned detail collections. Destinations optionally nest through ParentID.
type Destination struct {
	ID              int64     `db:"id" json:"id"`
	Title           string    `db:"title" json:"title"`
	ImageURL        *string   `db:"image_url" json:"image_url,omitempty"`
	BestTimeToVisit *string   `db:"best_time_to_visit" json:"best_time_to_visit,omitempty"`
	Weather         *string   `db:"weather" json:"weather,omitempty"`
	Currency        *string   `db:"currency" json:"currency,omitempty"`
	Language        *string   `db:"language" json:"language,omitempty"`
	TimeZone        *string   `db:"time_zone" json:"time_zone,omitempty"`
	Description     *string   `db:"description" json:"description,omitempty"`
	ParentID        *int64    `db:"parent_id" json:"parent_id,omitempty"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
}

type Location struct {
	ID            int64   `db:"id" json:"id"`
	DestinationID int64   `db:"destination_id" json:"destination_id"`
	Name          string  `db:"name" json:"name"`
	Description   *string `db:"description" json:"description,omitempty"`
	ImageURL      *string `db:"image_url" json:"image_url,omitempty"`
	Iframe360     *string `db:"iframe_360" json:"iframe_360,omitempty"`
}

type Attraction struct {
	ID            int64    `db:"id" json:"id"`
	DestinationID int64    `db:"destination_id" json:"-"`
	Title         string   `db:"title" json:"title"`
	ImageURL      *string  `db:"image_url" json:"image_url,omitempty"`
	Rating        *float64 `db:"rating" json:"rating,omitempty"`
	VideoURL      *string  `db:"video_url" json:"video_url,omitempty"`
}

type Ethnicity struct {
	ID            int64   `db:"id" json:"id"`
	DestinationID int64   `db:"destination_id" json:"-"`
	Title         string  `db:"title" json:"title"`
	ImageURL      *string `db:"image_url" json:"image_url,omitempty"`
}

type Cuisine struct {
	ID            int64   `db:"id" json:"id"`
	DestinationID int64   `db:"destination_id" json:"-"`
	Title         string  `db:"title" json:"title"`
	ImageURL      *string `db:"image_url" json:"image_url,omitempty"`
}

type Activity struct {
	ID            int64   `db:"id" json:"id"`
	DestinationID int64   `db:"destination_id" json:"-"`
	Title         string  `db:"title" json:"title"`
	ImageURL      *string `db:"image_url" json:"image_url,omitempty"`
}

// DestinationDetails is the assembled destination aggregate, including the
// tours that reference it.
type DestinationDetails struct {
	Destination
	Locations   []Location   `json:"locations"`
	Attractions []Attraction `json:"attractions"`
	Ethnicities []Ethnicity  `json:"ethnicities"`
	Cuisines    []Cuisine    `json:"cuisines"`
	Activities  []Activity   `json:"activities"`
	Tours       []Tour       `json:"tours"`
}

// DestinationFields is the writable subset of destination columns. Nil
// pointers are skipped on update.
type DestinationFields struct {
	Title           *string `json:"title"`
	ImageURL        *string `json:"image_url"`
	BestTimeToVisit *string `json:"best_time_to_visit"`
	Weather         *string `json:"weather"`
	Currency        *string `json:"currency"`
	Language        *string `json:"language"`
	TimeZone        *string `json:"time_zone"`
	Description     *string `json:"description"`
	ParentID        *int64  `json:"parent_id"`
}

// DestinationInput is the "create with details" payload.
type DestinationInput struct {
	Destination DestinationFields `json:"destination"`
	Locations   []Location        `json:"locations"`
	Attractions []Attraction      `json:"attractions"`
	Ethnicities []Ethnicity       `json:"ethnicities"`
	Cuisines    []Cuisine         `json:"cuisines"`
	Activities  []Activity        `json:"activities"`
}

// DestinationUpdate patches parent fields and optionally replaces detail
// collections: nil slice = leave untouched, empty slice = clear.
type DestinationUpdate struct {
	Destination DestinationFields `json:"destination"`
	Locations   []Location        `json:"locations"`
	Attractions []Attraction      `json:"attractions"`
	Ethnicities []Ethnicity       `json:"ethnicities"`
	Cuisines    []Cuisine         `json:"cuisines"`
	Activities  []Activity        `json:"activities"`
}

// DestinationName is the compact listing row used by the trip planner.
type DestinationName struct {
	ID       int64   `db:"id" json:"id"`
	ParentID *int64  `db:"parent_id" json:"parent_id,omitempty"`
	ImageURL *string `db:"image_url" json:"image_url,omitempty"`
	Title    string  `db:"title" json:"title"`
}

// DestinationLocations pairs a destination with its location names.
type DestinationLocations struct {
	ID        int64          `json:"id"`
	Title     string         `json:"title"`
	Locations []LocationName `json:"locations"`
}

type LocationName struct {
	ID   int64  `db:"location_id" json:"id"`
	Name string `db:"location_name" json:"name"`
}

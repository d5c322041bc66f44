package domain

import "time"

// Itinerary is a custom trip request submitted through the trip planner
// form, distinct from the per-tour itinerary_days child table.
type Itinerary struct {
	ID            int64      `db:"id" json:"id"`
	Name          string     `db:"name" json:"name"`
	Email         string     `db:"email" json:"email"`
	Phone         *string    `db:"phone" json:"phone,omitempty"`
	Destination   string     `db:"destination" json:"destination"`
	Travelers     int        `db:"travelers" json:"travelers"`
	Children      int        `db:"children" json:"children"`
	ChildAges     IntList    `db:"child_ages" json:"child_ages"`
	Duration      *int       `db:"duration" json:"duration,omitempty"`
	Date          *time.Time `db:"date" json:"date,omitempty"`
	Budget        *string    `db:"budget" json:"budget,omitempty"`
	HotelCategory *string    `db:"hotel_category" json:"hotel_category,omitempty"`
	TravelType    *string    `db:"travel_type" json:"travel_type,omitempty"`
	Occupation    *string    `db:"occupation" json:"occupation,omitempty"`
	Preferences   *string    `db:"preferences" json:"preferences,omitempty"`
	CreatedAt     time.Time  `db:"created_at" json:"created_at"`
}

type ItineraryInput struct {
	Name          string  `json:"name"`
	Email         string  `json:"email"`
	Phone         *string `json:"phone"`
	Destination   string  `json:"destination"`
	Travelers     int     `json:"travelers"`
	Children      int     `json:"children"`
	ChildAges     IntList `json:"child_ages"`
	Duration      *int    `json:"duration"`
	Date          *string `json:"date"`
	Budget        *string `json:"budget"`
	HotelCategory *string `json:"hotel_category"`
	TravelType    *string `json:"travel_type"`
	Occupation    *string `json:"occupation"`
	Preferences   *string `json:"preferences"`
}

package domain

import (
	"time"

	"github.com/google/uuid"
)

// Flight options accepted on a booking when the tour includes flights.
const (
	FlightOptionWith    = "with_flight"
	FlightOptionWithout = "without_flight"
)

// Booking is a confirmed reservation against a tour. Reference is a
// UUID generated at creation and returned to the customer.
type Booking struct {
	ID           int64     `db:"id" json:"id"`
	Reference    uuid.UUID `db:"reference" json:"reference"`
	TourID       int64     `db:"tour_id" json:"tour_id"`
	Name         string    `db:"name" json:"name"`
	Email        string    `db:"email" json:"email"`
	Phone        *string   `db:"phone" json:"phone,omitempty"`
	Days         *int      `db:"days" json:"days,omitempty"`
	Adults       int       `db:"adults" json:"adults"`
	Children     int       `db:"children" json:"children"`
	ChildAges    IntList   `db:"child_ages" json:"child_ages"`
	HotelRating  *int      `db:"hotel_rating" json:"hotel_rating,omitempty"`
	MealPlan     *string   `db:"meal_plan" json:"meal_plan,omitempty"`
	FlightOption *string   `db:"flight_option" json:"flight_option,omitempty"`
	FlightNumber *string   `db:"flight_number" json:"flight_number,omitempty"`
	TravelDate   time.Time `db:"travel_date" json:"travel_date"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

type BookingInput struct {
	TourID       int64   `json:"tour_id"`
	Name         string  `json:"name"`
	Email        string  `json:"email"`
	Phone        *string `json:"phone"`
	Days         *int    `json:"days"`
	Adults       int     `json:"adults"`
	Children     int     `json:"children"`
	ChildAges    IntList `json:"child_ages"`
	HotelRating  *int    `json:"hotel_rating"`
	MealPlan     *string `json:"meal_plan"`
	FlightOption *string `json:"flight_option"`
	FlightNumber *string `json:"flight_number"`
	TravelDate   string  `json:"travel_date"`
}

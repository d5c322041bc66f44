package domain

import "time"

// TripLead is a sales lead captured by the trip estimator widget.
type TripLead struct {
	ID               int64      `db:"id" json:"id"`
	FullName         string     `db:"full_name" json:"full_name"`
	Email            string     `db:"email" json:"email"`
	PhoneNumber      string     `db:"phone_number" json:"phone_number"`
	PreferredCountry *string    `db:"preferred_country" json:"preferred_country,omitempty"`
	PreferredCity    *string    `db:"preferred_city" json:"preferred_city,omitempty"`
	DepartureDate    *time.Time `db:"departure_date" json:"departure_date,omitempty"`
	ReturnDate       *time.Time `db:"return_date" json:"return_date,omitempty"`
	NumberOfDays     int        `db:"number_of_days" json:"number_of_days"`
	NumberOfAdults   int        `db:"number_of_adults" json:"number_of_adults"`
	NumberOfChildren int        `db:"number_of_children" json:"number_of_children"`
	NumberOfMale     int        `db:"number_of_male" json:"number_of_male"`
	NumberOfFemale   int        `db:"number_of_female" json:"number_of_female"`
	NumberOfOther    int        `db:"number_of_other" json:"number_of_other"`
	AgedPersons      IntList    `db:"aged_persons" json:"aged_persons"`
	HotelRating      *int       `db:"hotel_rating" json:"hotel_rating,omitempty"`
	MealPlan         *string    `db:"meal_plan" json:"meal_plan,omitempty"`
	RoomType         *string    `db:"room_type" json:"room_type,omitempty"`
	NeedFlight       bool       `db:"need_flight" json:"need_flight"`
	DepartureAirport *string    `db:"departure_airport" json:"departure_airport,omitempty"`
	TripType         string     `db:"trip_type" json:"trip_type"`
	EstimateRange    string     `db:"estimate_range" json:"estimate_range"`
	CreatedAt        time.Time  `db:"created_at" json:"created_at"`
}

type TripLeadInput struct {
	FullName         string  `json:"full_name"`
	Email            string  `json:"email"`
	PhoneNumber      string  `json:"phone_number"`
	PreferredCountry *string `json:"preferred_country"`
	PreferredCity    *string `json:"preferred_city"`
	DepartureDate    *string `json:"departure_date"`
	ReturnDate       *string `json:"return_date"`
	NumberOfDays     int     `json:"number_of_days"`
	NumberOfAdults   int     `json:"number_of_adults"`
	NumberOfChildren int     `json:"number_of_children"`
	NumberOfMale     int     `json:"number_of_male"`
	NumberOfFemale   int     `json:"number_of_female"`
	NumberOfOther    int     `json:"number_of_other"`
	AgedPersons      IntList `json:"aged_persons"`
	HotelRating      *int    `json:"hotel_rating"`
	MealPlan         *string `json:"meal_plan"`
	RoomType         *string `json:"room_type"`
	NeedFlight       bool    `json:"need_flight"`
	DepartureAirport *string `json:"departure_airport"`
	TripType         string  `json:"trip_type"`
	EstimateRange    string  `json:"estimate_range"`
}

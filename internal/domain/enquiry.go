package domain

import "time"

// Enquiry is a question about a specific tour.
type Enquiry struct {
	ID          int64     `db:"id" json:"id"`
	TourID      int64     `db:"tour_id" json:"tour_id"`
	Name        string    `db:"name" json:"name"`
	Email       string    `db:"email" json:"email"`
	Phone       *string   `db:"phone" json:"phone,omitempty"`
	Description *string   `db:"description" json:"description,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

type EnquiryInput struct {
	TourID      int64   `json:"tour_id"`
	Name        string  `json:"name"`
	Email       string  `json:"email"`
	Phone       *string `json:"phone"`
	Description *string `json:"description"`
}

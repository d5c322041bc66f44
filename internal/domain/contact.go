package domain

import (
	"time"

	"github.com/google/uuid"
)

// Contact is a "contact us" submission. Keyed by a UUID generated at
// insert time so the reference can be handed back to the visitor.
type Contact struct {
	ContactID   uuid.UUID `db:"contact_id" json:"contact_id"`
	FirstName   string    `db:"first_name" json:"first_name"`
	Email       string    `db:"email" json:"email"`
	PhoneNumber *string   `db:"phone_number" json:"phone_number,omitempty"`
	Subject     *string   `db:"subject" json:"subject,omitempty"`
	Message     *string   `db:"message" json:"message,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

type ContactInput struct {
	FirstName   string  `json:"first_name"`
	Email       string  `json:"email"`
	PhoneNumber *string `json:"phone_number"`
	Subject     *string `json:"subject"`
	Message     *string `json:"message"`
}

package service

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrTourNotFound        = errors.New("tour not found")
	ErrDestinationNotFound = errors.New("destination not found")
	ErrContactNotFound     = errors.New("contact not found")
	ErrEnquiryNotFound     = errors.New("enquiry not found")
	ErrBookingNotFound     = errors.New("booking not found")
	ErrItineraryNotFound   = errors.New("itinerary request not found")
	ErrTripLeadNotFound    = errors.New("trip lead not found")
	ErrSettingNotFound     = errors.New("setting not found")
	ErrUserNotFound        = errors.New("user not found")

	ErrDestinationRequired         = errors.New("a tour must reference at least one destination")
	ErrDeparturesRequired          = errors.New("a group tour must have at least one departure with available seats")
	ErrAvailabilityWindowRequired  = errors.New("a non-group tour must have an availability window")
	ErrUnknownDestination          = errors.New("one or more destination ids do not exist")
	ErrLocationOutsideDestinations = errors.New("one or more locations do not belong to the tour's destinations")
	ErrDestinationExists           = errors.New("a destination with this title already exists")
	ErrDestinationInUse            = errors.New("destination is referenced by existing tours")
	ErrSlugExists                  = errors.New("a tour with this slug already exists")
	ErrTravelDateOutsideWindow     = errors.New("travel date is outside the tour's availability window")
	ErrAdvanceBookingWindow        = errors.New("travel date does not meet the tour's advance booking requirement")
	ErrNoDepartureOnDate           = errors.New("no departure is scheduled for the requested date")
	ErrFlightOptionUnavailable     = errors.New("flight option is not available on this tour")
	ErrTourNotCustomizable         = errors.New("tour does not accept custom itinerary requests")
)

// FieldError is a single validation violation, addressed by field path
// (e.g. "departures[2].available_seats").
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError collects every violation found in a payload so the
// caller can fix them all in one round trip.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = fmt.Sprintf("%s: %s", f.Field, f.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) add(field, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
}

func (e *ValidationError) addf(field, format string, args ...any) {
	e.add(field, fmt.Sprintf(format, args...))
}

func (e *ValidationError) orNil() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}

func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

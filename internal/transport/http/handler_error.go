package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sunflowertrip/tour-booking-backend/internal/service"
	"github.com/sunflowertrip/tour-booking-backend/internal/util"
)

// respondError translates service errors into HTTP responses so handlers
// stay thin. Unknown errors become an opaque 500.
func respondError(c echo.Context, err error) error {
	var verr *service.ValidationError
	if errors.As(err, &verr) {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error":  "validation failed",
			"fields": verr.Fields,
		})
	}

	switch {
	case errors.Is(err, service.ErrTourNotFound),
		errors.Is(err, service.ErrDestinationNotFound),
		errors.Is(err, service.ErrContactNotFound),
		errors.Is(err, service.ErrEnquiryNotFound),
		errors.Is(err, service.ErrBookingNotFound),
		errors.Is(err, service.ErrItineraryNotFound),
		errors.Is(err, service.ErrTripLeadNotFound),
		errors.Is(err, service.ErrSettingNotFound),
		errors.Is(err, service.ErrUserNotFound):
		return c.JSON(http.StatusNotFound, util.Error(err.Error()))

	case errors.Is(err, service.ErrSlugExists),
		errors.Is(err, service.ErrDestinationExists),
		errors.Is(err, service.ErrEmailTaken):
		return c.JSON(http.StatusConflict, util.Error(err.Error()))

	case errors.Is(err, service.ErrDestinationRequired),
		errors.Is(err, service.ErrDeparturesRequired),
		errors.Is(err, service.ErrAvailabilityWindowRequired),
		errors.Is(err, service.ErrUnknownDestination),
		errors.Is(err, service.ErrLocationOutsideDestinations),
		errors.Is(err, service.ErrDestinationInUse),
		errors.Is(err, service.ErrTravelDateOutsideWindow),
		errors.Is(err, service.ErrAdvanceBookingWindow),
		errors.Is(err, service.ErrNoDepartureOnDate),
		errors.Is(err, service.ErrFlightOptionUnavailable),
		errors.Is(err, service.ErrTourNotCustomizable):
		return c.JSON(http.StatusUnprocessableEntity, util.Error(err.Error()))

	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrInvalidGoogleToken),
		errors.Is(err, service.ErrInvalidRefresh):
		return c.JSON(http.StatusUnauthorized, util.Error(err.Error()))

	case errors.Is(err, service.ErrImageTooLarge):
		return c.JSON(http.StatusRequestEntityTooLarge, util.Error(err.Error()))
	}

	c.Logger().Errorf("internal error: %v", err)
	return c.JSON(http.StatusInternalServerError, util.Error("internal server error"))
}

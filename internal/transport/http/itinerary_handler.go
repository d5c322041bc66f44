package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sunflowertrip/tour-booking-backend/internal/domain"
	"github.com/sunflowertrip/tour-booking-backend/internal/service"
	"github.com/sunflowertrip/tour-booking-backend/internal/util"
)

type ItineraryHandler struct {
	itineraries *service.ItineraryService
}

func RegisterItineraries(e *echo.Echo, jwt *util.JWTManager, itineraries *service.ItineraryService) {
	handler := &ItineraryHandler{itineraries: itineraries}

	e.POST("/api/v1/itineraries", handler.createItinerary)

	admin := e.Group("/api/v1/itineraries", RequireAuth(jwt), RequireAdmin())
	admin.GET("", handler.listItineraries)
	admin.GET("/:id", handler.getItinerary)
	admin.DELETE("/:id", handler.deleteItinerary)
}

// createItinerary handles POST /api/v1/itineraries
func (h *ItineraryHandler) createItinerary(c echo.Context) error {
	var in domain.ItineraryInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid itinerary payload"))
	}
	itinerary, err := h.itineraries.Create(c.Request().Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, util.Data("itinerary", itinerary))
}

// listItineraries handles GET /api/v1/itineraries
func (h *ItineraryHandler) listItineraries(c echo.Context) error {
	itineraries, err := h.itineraries.List(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, util.Data("itineraries", itineraries))
}

// getItinerary handles GET /api/v1/itineraries/{id}
func (h *ItineraryHandler) getItinerary(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid itinerary id"))
	}
	itinerary, err := h.itineraries.Get(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, util.Data("itinerary", itinerary))
}

// deleteItinerary handles DELETE /api/v1/itineraries/{id}
func (h *ItineraryHandler) deleteItinerary(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid itinerary id"))
	}
	if err := h.itineraries.Delete(c.Request().Context(), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, util.Envelope{"success": true})
}

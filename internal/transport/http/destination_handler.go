package http

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/sunflowertrip/tour-booking-backend/internal/domain"
	"github.com/sunflowertrip/tour-booking-backend/internal/service"
	"github.com/sunflowertrip/tour-booking-backend/internal/util"
)

type DestinationHandler struct {
	destinations *service.DestinationService
}

func RegisterDestinations(e *echo.Echo, jwt *util.JWTManager, destinations *service.DestinationService) {
	handler := &DestinationHandler{destinations: destinations}

	public := e.Group("/api/v1/destinations")
	public.GET("", handler.listDestinations)
	public.GET("/names", handler.listNames)
	public.GET("/names/locations", handler.listNamesWithLocations)
	public.GET("/title/:title", handler.getDestinationByTitle)
	public.GET("/:id", handler.getDestination)

	admin := e.Group("/api/v1/destinations", RequireAuth(jwt), RequireAdmin())
	admin.POST("", handler.createDestination)
	admin.PUT("/:id", handler.updateDestination)
	admin.DELETE("/:id", handler.deleteDestination)
}

// listDestinations handles GET /api/v1/destinations
func (h *DestinationHandler) listDestinations(c echo.Context) error {
	destinations, err := h.destinations.List(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, util.Data("destinations", destinations))
}

// listNames handles GET /api/v1/destinations/names
func (h *DestinationHandler) listNames(c echo.Context) error {
	names, err := h.destinations.Names(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, util.Data("destinations", names))
}

// listNamesWithLocations handles GET /api/v1/destinations/names/locations
func (h *DestinationHandler) listNamesWithLocations(c echo.Context) error {
	entries, err := h.destinations.NamesWithLocations(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, util.Data("destinations", entries))
}

// getDestination handles GET /api/v1/destinations/{id}
func (h *DestinationHandler) getDestination(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid destination id"))
	}
	details, err := h.destinations.Details(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, util.Data("destination", details))
}

// getDestinationByTitle handles GET /api/v1/destinations/title/{title}
func (h *DestinationHandler) getDestinationByTitle(c echo.Context) error {
	title := strings.TrimSpace(c.Param("title"))
	if title == "" {
		return c.JSON(http.StatusBadRequest, util.Error("invalid destination title"))
	}
	details, err := h.destinations.DetailsByTitle(c.Request().Context(), title)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, util.Data("destination", details))
}

// createDestination handles POST /api/v1/destinations
func (h *DestinationHandler) createDestination(c echo.Context) error {
	var in domain.DestinationInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid destination payload"))
	}
	details, err := h.destinations.Create(c.Request().Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, util.Data("destination", details))
}

// updateDestination handles PUT /api/v1/destinations/{id}
func (h *DestinationHandler) updateDestination(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid destination id"))
	}
	var patch domain.DestinationUpdate
	if err := c.Bind(&patch); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid destination payload"))
	}
	details, err := h.destinations.Update(c.Request().Context(), id, patch)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, util.Data("destination", details))
}

// deleteDestination handles DELETE /api/v1/destinations/{id}
func (h *DestinationHandler) deleteDestination(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid destination id"))
	}
	if err := h.destinations.Delete(c.Request().Context(), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, util.Envelope{"success": true})
}

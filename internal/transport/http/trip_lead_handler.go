package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sunflowertrip/tour-booking-backend/internal/domain"
	"github.com/sunflowertrip/tour-booking-backend/internal/service"
	"github.com/sunflowertrip/tour-booking-backend/internal/util"
)

type TripLeadHandler struct {
	leads *service.TripLeadService
}

func RegisterTripLeads(e *echo.Echo, jwt *util.JWTManager, leads *service.TripLeadService) {
	handler := &TripLeadHandler{leads: leads}

	e.POST("/api/v1/trip-leads", handler.createLead)

	admin := e.Group("/api/v1/trip-leads", RequireAuth(jwt), RequireAdmin())
	admin.GET("", handler.listLeads)
	admin.GET("/:id", handler.getLead)
	admin.DELETE("/:id", handler.deleteLead)
}

// createLead handles POST /api/v1/trip-leads
func (h *TripLeadHandler) createLead(c echo.Context) error {
	var in domain.TripLeadInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid trip lead payload"))
	}
	lead, err := h.leads.Create(c.Request().Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, util.Data("trip_lead", lead))
}

// listLeads handles GET /api/v1/trip-leads
func (h *TripLeadHandler) listLeads(c echo.Context) error {
	leads, err := h.leads.List(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, util.Data("trip_leads", leads))
}

// getLead handles GET /api/v1/trip-leads/{id}
func (h *TripLeadHandler) getLead(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid trip lead id"))
	}
	lead, err := h.leads.Get(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, util.Data("trip_lead", lead))
}

// deleteLead handles DELETE /api/v1/trip-leads/{id}
func (h *TripLeadHandler) deleteLead(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid trip lead id"))
	}
	if err := h.leads.Delete(c.Request().Context(), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, util.Envelope{"success": true})
}

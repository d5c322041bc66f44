package http

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/sunflowertrip/tour-booking-backend/internal/domain"
	"github.com/sunflowertrip/tour-booking-backend/internal/service"
	"github.com/sunflowertrip/tour-booking-backend/internal/util"
)

type ContactHandler struct {
	contacts *service.ContactService
}

func RegisterContacts(e *echo.Echo, jwt *util.JWTManager, contacts *service.ContactService) {
	handler := &ContactHandler{contacts: contacts}

	e.POST("/api/v1/contacts", handler.createContact)

	admin := e.Group("/api/v1/contacts", RequireAuth(jwt), RequireAdmin())
	admin.GET("", handler.listContacts)
	admin.GET("/:id", handler.getContact)
	admin.DELETE("/:id", handler.deleteContact)
}

// createContact handles POST /api/v1/contacts
func (h *ContactHandler) createContact(c echo.Context) error {
	var in domain.ContactInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid contact payload"))
	}
	contact, err := h.contacts.Create(c.Request().Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, util.Data("contact", contact))
}

// listContacts handles GET /api/v1/contacts
func (h *ContactHandler) listContacts(c echo.Context) error {
	contacts, err := h.contacts.List(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, util.Data("contacts", contacts))
}

// getContact handles GET /api/v1/contacts/{id}
func (h *ContactHandler) getContact(c echo.Context) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Param("id")))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid contact id"))
	}
	contact, err := h.contacts.Get(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, util.Data("contact", contact))
}

// deleteContact handles DELETE /api/v1/contacts/{id}
func (h *ContactHandler) deleteContact(c echo.Context) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Param("id")))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid contact id"))
	}
	if err := h.contacts.Delete(c.Request().Context(), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, util.Envelope{"success": true})
}

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

type BookingHandler struct {
	bookings *service.BookingService
}

func RegisterBookings(e *echo.Echo, jwt *util.JWTManager, bookings *service.BookingService) {
	handler := &BookingHandler{bookings: bookings}

	public := e.Group("/api/v1/bookings")
	public.POST("", handler.createBooking)
	public.GET("/reference/:reference", handler.getBookingByReference)

	admin := e.Group("/api/v1/bookings", RequireAuth(jwt), RequireAdmin())
	admin.GET("", handler.listBookings)
	admin.GET("/:id", handler.getBooking)
	admin.DELETE("/:id", handler.deleteBooking)

	enquiries := e.Group("/api/v1/enquiries")
	enquiries.POST("", handler.createEnquiry)

	enquiryAdmin := e.Group("/api/v1/enquiries", RequireAuth(jwt), RequireAdmin())
	enquiryAdmin.GET("", handler.listEnquiries)
	enquiryAdmin.GET("/:id", handler.getEnquiry)
	enquiryAdmin.DELETE("/:id", handler.deleteEnquiry)
}

// createBooking handles POST /api/v1/bookings
func (h *BookingHandler) createBooking(c echo.Context) error {
	var in domain.BookingInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid booking payload"))
	}
	booking, err := h.bookings.CreateBooking(c.Request().Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, util.Data("booking", booking))
}

// getBookingByReference handles GET /api/v1/bookings/reference/{reference}
func (h *BookingHandler) getBookingByReference(c echo.Context) error {
	reference, err := uuid.Parse(strings.TrimSpace(c.Param("reference")))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid booking reference"))
	}
	booking, err := h.bookings.GetBookingByReference(c.Request().Context(), reference)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, util.Data("booking", booking))
}

// listBookings handles GET /api/v1/bookings
func (h *BookingHandler) listBookings(c echo.Context) error {
	bookings, err := h.bookings.ListBookings(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, util.Data("bookings", bookings))
}

// getBooking handles GET /api/v1/bookings/{id}
func (h *BookingHandler) getBooking(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid booking id"))
	}
	booking, err := h.bookings.GetBooking(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, util.Data("booking", booking))
}

// deleteBooking handles DELETE /api/v1/bookings/{id}
func (h *BookingHandler) deleteBooking(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid booking id"))
	}
	if err := h.bookings.DeleteBooking(c.Request().Context(), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, util.Envelope{"success": true})
}

// createEnquiry handles POST /api/v1/enquiries
func (h *BookingHandler) createEnquiry(c echo.Context) error {
	var in domain.EnquiryInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid enquiry payload"))
	}
	enquiry, err := h.bookings.CreateEnquiry(c.Request().Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, util.Data("enquiry", enquiry))
}

// listEnquiries handles GET /api/v1/enquiries
func (h *BookingHandler) listEnquiries(c echo.Context) error {
	enquiries, err := h.bookings.ListEnquiries(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, util.Data("enquiries", enquiries))
}

// getEnquiry handles GET /api/v1/enquiries/{id}
func (h *BookingHandler) getEnquiry(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid enquiry id"))
	}
	enquiry, err := h.bookings.GetEnquiry(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, util.Data("enquiry", enquiry))
}

// deleteEnquiry handles DELETE /api/v1/enquiries/{id}
func (h *BookingHandler) deleteEnquiry(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid enquiry id"))
	}
	if err := h.bookings.DeleteEnquiry(c.Request().Context(), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, util.Envelope{"success": true})
}

package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/sunflowertrip/tour-booking-backend/internal/domain"
	"github.com/sunflowertrip/tour-booking-backend/internal/service"
	"github.com/sunflowertrip/tour-booking-backend/internal/util"
)

type TourHandler struct {
	tours *service.TourService
}

func RegisterTours(e *echo.Echo, jwt *util.JWTManager, tours *service.TourService) {
	handler := &TourHandler{tours: tours}

	public := e.Group("/api/v1/tours")
	public.GET("", handler.listTours)
	public.GET("/search", handler.searchTours)
	public.GET("/featured", handler.featuredTours)
	public.GET("/categories", handler.listCategories)
	public.GET("/slug/:slug", handler.getTourBySlug)
	public.GET("/:id", handler.getTour)

	admin := e.Group("/api/v1/tours", RequireAuth(jwt), RequireAdmin())
	admin.POST("", handler.createTour)
	admin.PUT("/:id", handler.updateTour)
	admin.DELETE("/:id", handler.deleteTour)
}

// listTours handles GET /api/v1/tours
func (h *TourHandler) listTours(c echo.Context) error {
	filter, err := parseTourFilter(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
	}
	tours, err := h.tours.List(c.Request().Context(), filter)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, util.Data("tours", tours))
}

// searchTours handles GET /api/v1/tours/search, the trip-planner entry
// point. Same filters as the listing; unset filters do not narrow.
func (h *TourHandler) searchTours(c echo.Context) error {
	filter, err := parseTourFilter(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
	}
	tours, err := h.tours.Search(c.Request().Context(), filter)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, util.Data("tours", tours))
}

// featuredTours handles GET /api/v1/tours/featured
func (h *TourHandler) featuredTours(c echo.Context) error {
	tours, err := h.tours.Featured(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, util.Data("tours", tours))
}

// listCategories handles GET /api/v1/tours/categories
func (h *TourHandler) listCategories(c echo.Context) error {
	categories, err := h.tours.Categories(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, util.Data("categories", categories))
}

// getTour handles GET /api/v1/tours/{id}
func (h *TourHandler) getTour(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid tour id"))
	}
	tour, err := h.tours.GetByID(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, util.Data("tour", tour))
}

// getTourBySlug handles GET /api/v1/tours/slug/{slug}
func (h *TourHandler) getTourBySlug(c echo.Context) error {
	slug := strings.TrimSpace(c.Param("slug"))
	if slug == "" {
		return c.JSON(http.StatusBadRequest, util.Error("invalid tour slug"))
	}
	tour, err := h.tours.GetBySlug(c.Request().Context(), slug)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, util.Data("tour", tour))
}

// createTour handles POST /api/v1/tours
func (h *TourHandler) createTour(c echo.Context) error {
	var in domain.TourInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid tour payload"))
	}
	tour, err := h.tours.Create(c.Request().Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, util.Data("tour", tour))
}

// updateTour handles PUT /api/v1/tours/{id}
func (h *TourHandler) updateTour(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid tour id"))
	}
	var patch domain.TourUpdate
	if err := c.Bind(&patch); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid tour payload"))
	}
	tour, err := h.tours.Update(c.Request().Context(), id, patch)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, util.Data("tour", tour))
}

// deleteTour handles DELETE /api/v1/tours/{id}
func (h *TourHandler) deleteTour(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid tour id"))
	}
	if err := h.tours.Delete(c.Request().Context(), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, util.Envelope{"success": true})
}

func parseID(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(c.Param(name)), 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New(name + " must be a positive integer")
	}
	return id, nil
}

func parseTourFilter(c echo.Context) (domain.TourFilter, error) {
	filter := domain.TourFilter{}

	if v := strings.TrimSpace(c.QueryParam("destination_id")); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return domain.TourFilter{}, errors.New("destination_id must be an integer")
		}
		filter.DestinationID = &id
	}
	if v := strings.TrimSpace(c.QueryParam("location_id")); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return domain.TourFilter{}, errors.New("location_id must be an integer")
		}
		filter.LocationID = &id
	}
	if v := strings.TrimSpace(c.QueryParam("category")); v != "" {
		filter.Category = &v
	}
	if v := strings.TrimSpace(c.QueryParam("min_price")); v != "" {
		price, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return domain.TourFilter{}, errors.New("min_price must be a number")
		}
		filter.MinPrice = &price
	}
	if v := strings.TrimSpace(c.QueryParam("max_price")); v != "" {
		price, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return domain.TourFilter{}, errors.New("max_price must be a number")
		}
		filter.MaxPrice = &price
	}
	if v := strings.TrimSpace(c.QueryParam("min_duration")); v != "" {
		days, err := strconv.Atoi(v)
		if err != nil {
			return domain.TourFilter{}, errors.New("min_duration must be an integer")
		}
		filter.MinDuration = &days
	}
	if v := strings.TrimSpace(c.QueryParam("max_duration")); v != "" {
		days, err := strconv.Atoi(v)
		if err != nil {
			return domain.TourFilter{}, errors.New("max_duration must be an integer")
		}
		filter.MaxDuration = &days
	}
	if v := strings.TrimSpace(c.QueryParam("available_from")); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return domain.TourFilter{}, errors.New("available_from must be formatted YYYY-MM-DD")
		}
		filter.AvailableFrom = &t
	}
	if v := strings.TrimSpace(c.QueryParam("available_to")); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return domain.TourFilter{}, errors.New("available_to must be formatted YYYY-MM-DD")
		}
		filter.AvailableTo = &t
	}
	if v := strings.TrimSpace(c.QueryParam("departure_date")); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return domain.TourFilter{}, errors.New("departure_date must be formatted YYYY-MM-DD")
		}
		filter.DepartureDate = &t
	}
	if v := strings.TrimSpace(c.QueryParam("accommodation_ratings")); v != "" {
		for _, part := range strings.Split(v, ",") {
			rating, err := strconv.Atoi(strings.TrimSpace(part))
			if err != nil {
				return domain.TourFilter{}, errors.New("accommodation_ratings must be a comma-separated list of integers")
			}
			filter.AccommodationRatings = append(filter.AccommodationRatings, rating)
		}
	}
	if v := strings.TrimSpace(c.QueryParam("flight_included")); v != "" {
		included, err := strconv.ParseBool(v)
		if err != nil {
			return domain.TourFilter{}, errors.New("flight_included must be a boolean")
		}
		filter.FlightIncluded = &included
	}
	if v := strings.TrimSpace(c.QueryParam("adults")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return domain.TourFilter{}, errors.New("adults must be an integer")
		}
		filter.Adults = &n
	}
	if v := strings.TrimSpace(c.QueryParam("children")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return domain.TourFilter{}, errors.New("children must be an integer")
		}
		filter.Children = &n
	}
	if v := strings.TrimSpace(c.QueryParam("rooms")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return domain.TourFilter{}, errors.New("rooms must be an integer")
		}
		filter.Rooms = &n
	}
	if v := strings.TrimSpace(c.QueryParam("featured")); v != "" {
		featured, err := strconv.ParseBool(v)
		if err != nil {
			return domain.TourFilter{}, errors.New("featured must be a boolean")
		}
		filter.FeaturedOnly = featured
	}

	return filter, nil
}

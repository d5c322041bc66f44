package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sunflowertrip/tour-booking-backend/internal/service"
	"github.com/sunflowertrip/tour-booking-backend/internal/util"
)

type UserHandler struct {
	users *service.UserService
}

func RegisterUsers(e *echo.Echo, jwt *util.JWTManager, users *service.UserService) {
	handler := &UserHandler{users: users}

	me := e.Group("/api/v1/users", RequireAuth(jwt))
	me.GET("/me", handler.currentUser)

	admin := e.Group("/api/v1/users", RequireAuth(jwt), RequireAdmin())
	admin.GET("", handler.listUsers)
	admin.GET("/:id", handler.getUser)
	admin.DELETE("/:id", handler.deleteUser)
}

// currentUser handles GET /api/v1/users/me
func (h *UserHandler) currentUser(c echo.Context) error {
	claims, ok := CurrentClaims(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}
	user, err := h.users.Get(c.Request().Context(), claims.UserID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, util.Data("user", user))
}

// listUsers handles GET /api/v1/users
func (h *UserHandler) listUsers(c echo.Context) error {
	users, err := h.users.List(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, util.Data("users", users))
}

// getUser handles GET /api/v1/users/{id}
func (h *UserHandler) getUser(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid user id"))
	}
	user, err := h.users.Get(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, util.Data("user", user))
}

// deleteUser handles DELETE /api/v1/users/{id}
func (h *UserHandler) deleteUser(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid user id"))
	}
	if err := h.users.Delete(c.Request().Context(), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, util.Envelope{"success": true})
}

package http

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/sunflowertrip/tour-booking-backend/internal/service"
	"github.com/sunflowertrip/tour-booking-backend/internal/util"
)

type SettingHandler struct {
	settings *service.SettingService
}

type SettingRequest struct {
	KeyName  string `json:"key_name"`
	KeyValue string `json:"key_value"`
}

func RegisterSettings(e *echo.Echo, jwt *util.JWTManager, settings *service.SettingService) {
	handler := &SettingHandler{settings: settings}

	e.GET("/api/v1/settings/:key", handler.getSetting)

	admin := e.Group("/api/v1/settings", RequireAuth(jwt), RequireAdmin())
	admin.GET("", handler.listSettings)
	admin.PUT("", handler.setSetting)
	admin.DELETE("/:key", handler.deleteSetting)
}

// listSettings handles GET /api/v1/settings
func (h *SettingHandler) listSettings(c echo.Context) error {
	settings, err := h.settings.List(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, util.Data("settings", settings))
}

// getSetting handles GET /api/v1/settings/{key}
func (h *SettingHandler) getSetting(c echo.Context) error {
	key := strings.TrimSpace(c.Param("key"))
	if key == "" {
		return c.JSON(http.StatusBadRequest, util.Error("invalid setting key"))
	}
	setting, err := h.settings.Get(c.Request().Context(), key)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, util.Data("setting", setting))
}

// setSetting handles PUT /api/v1/settings
func (h *SettingHandler) setSetting(c echo.Context) error {
	var req SettingRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid setting payload"))
	}
	setting, err := h.settings.Set(c.Request().Context(), req.KeyName, req.KeyValue)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, util.Data("setting", setting))
}

// deleteSetting handles DELETE /api/v1/settings/{key}
func (h *SettingHandler) deleteSetting(c echo.Context) error {
	key := strings.TrimSpace(c.Param("key"))
	if key == "" {
		return c.JSON(http.StatusBadRequest, util.Error("invalid setting key"))
	}
	if err := h.settings.Delete(c.Request().Context(), key); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, util.Envelope{"success": true})
}

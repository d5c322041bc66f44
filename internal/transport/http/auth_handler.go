package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sunflowertrip/tour-booking-backend/internal/service"
	"github.com/sunflowertrip/tour-booking-backend/internal/util"
)

type AuthHandler struct {
	auth *service.AuthService
}

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type GoogleLoginRequest struct {
	IDToken string `json:"id_token"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

func RegisterAuth(e *echo.Echo, jwt *util.JWTManager, auth *service.AuthService) {
	handler := &AuthHandler{auth: auth}

	group := e.Group("/api/v1/auth")
	group.POST("/register", handler.register)
	group.POST("/login", handler.login)
	group.POST("/google", handler.loginWithGoogle)
	group.POST("/refresh", handler.refresh)

	group.POST("/logout", handler.logout, RequireAuth(jwt))
}

// register handles POST /api/v1/auth/register
func (h *AuthHandler) register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid register payload"))
	}
	user, tokens, err := h.auth.Register(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, util.Envelope{"user": user, "tokens": tokens})
}

// login handles POST /api/v1/auth/login
func (h *AuthHandler) login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid login payload"))
	}
	user, tokens, err := h.auth.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, util.Envelope{"user": user, "tokens": tokens})
}

// loginWithGoogle handles POST /api/v1/auth/google
func (h *AuthHandler) loginWithGoogle(c echo.Context) error {
	var req GoogleLoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid google login payload"))
	}
	user, tokens, err := h.auth.LoginWithGoogle(c.Request().Context(), req.IDToken)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, util.Envelope{"user": user, "tokens": tokens})
}

// refresh handles POST /api/v1/auth/refresh
func (h *AuthHandler) refresh(c echo.Context) error {
	var req RefreshRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid refresh payload"))
	}
	tokens, err := h.auth.Refresh(c.Request().Context(), req.RefreshToken)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, util.Data("tokens", tokens))
}

// logout handles POST /api/v1/auth/logout
func (h *AuthHandler) logout(c echo.Context) error {
	claims, ok := CurrentClaims(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}
	if err := h.auth.Logout(c.Request().Context(), claims.UserID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, util.Message("logged out"))
}

package handlers

import (
	"net/http"
	"time"

	"kubramarket/internal/common"
	"kubramarket/internal/middleware"
	"kubramarket/internal/models"
	"kubramarket/internal/services"

	"github.com/labstack/echo/v4"
)

type AuthHandlers struct {
	authSvc services.AuthService
}

func NewAuthHandlers(authSvc services.AuthService) *AuthHandlers {
	return &AuthHandlers{authSvc: authSvc}
}

func (h *AuthHandlers) Register(c echo.Context) error {
	var req models.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request body")
	}

	merchant, token, err := h.authSvc.Signup(c.Request().Context(), &req)
	if err != nil {
		return common.SendError(c, err)
	}

	setSessionCookie(c, token)
	return c.JSON(http.StatusCreated, merchant)
}

func (h *AuthHandlers) Login(c echo.Context) error {
	var req models.LoginRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request body")
	}

	merchant, token, err := h.authSvc.Login(c.Request().Context(), &req)
	if err != nil {
		return common.SendError(c, err)
	}

	setSessionCookie(c, token)
	return c.JSON(http.StatusOK, merchant)
}

func (h *AuthHandlers) Logout(c echo.Context) error {
	sessionID, ok := common.GetSessionIDFromContext(c.Request().Context())
	if !ok {
		return common.SendUnauthorizedError(c)
	}
	if err := h.authSvc.Logout(c.Request().Context(), sessionID); err != nil {
		return common.SendError(c, err)
	}

	clearSessionCookie(c)
	return c.JSON(http.StatusOK, map[string]string{"message": "logged out"})
}

func (h *AuthHandlers) CurrentMerchant(c echo.Context) error {
	merchantID, ok := common.GetMerchantIDFromContext(c.Request().Context())
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	merchant, err := h.authSvc.CurrentMerchant(c.Request().Context(), merchantID)
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, merchant)
}

func setSessionCookie(c echo.Context, token string) {
	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int((7 * 24 * time.Hour).Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearSessionCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

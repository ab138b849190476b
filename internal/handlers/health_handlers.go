package handlers

import (
	"net/http"

	"kubramarket/internal/repositories"

	"github.com/labstack/echo/v4"
)

type HealthHandlers struct {
	db repositories.DB
}

func NewHealthHandlers(db repositories.DB) *HealthHandlers {
	return &HealthHandlers{db: db}
}

func (h *HealthHandlers) Live(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// Ready confirms the database answers before reporting healthy.
func (h *HealthHandlers) Ready(c echo.Context) error {
	var one int
	if err := h.db.QueryRow(c.Request().Context(), "SELECT 1").Scan(&one); err != nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ready"})
}

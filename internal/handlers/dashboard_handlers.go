package handlers

import (
	"net/http"

	"kubramarket/internal/common"
	"kubramarket/internal/services"

	"github.com/labstack/echo/v4"
)

type DashboardHandlers struct {
	dashboardSvc services.DashboardService
}

func NewDashboardHandlers(dashboardSvc services.DashboardService) *DashboardHandlers {
	return &DashboardHandlers{dashboardSvc: dashboardSvc}
}

func (h *DashboardHandlers) Stats(c echo.Context) error {
	merchantID, ok := common.GetMerchantIDFromContext(c.Request().Context())
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	stats, err := h.dashboardSvc.Stats(c.Request().Context(), merchantID)
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, stats)
}

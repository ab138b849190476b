package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"kubramarket/internal/common"
	"kubramarket/internal/services"

	"github.com/labstack/echo/v4"
)

type SalesHandlers struct {
	salesSvc services.SalesService
}

func NewSalesHandlers(salesSvc services.SalesService) *SalesHandlers {
	return &SalesHandlers{salesSvc: salesSvc}
}

func (h *SalesHandlers) Summary(c echo.Context) error {
	merchantID, ok := common.GetMerchantIDFromContext(c.Request().Context())
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	summary, err := h.salesSvc.Summary(c.Request().Context(), merchantID)
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, summary)
}

func (h *SalesHandlers) Orders(c echo.Context) error {
	merchantID, ok := common.GetMerchantIDFromContext(c.Request().Context())
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	limit := 0
	if raw := strings.TrimSpace(c.QueryParam("limit")); raw != "" {
		l, err := strconv.Atoi(raw)
		if err != nil || l <= 0 {
			return common.SendValidationError(c, "limit", "limit must be a positive integer")
		}
		limit = l
	}

	orders, err := h.salesSvc.RecentOrders(c.Request().Context(), merchantID, limit)
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, orders)
}

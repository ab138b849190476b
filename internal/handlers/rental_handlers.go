package handlers

import (
	"net/http"

	"kubramarket/internal/common"
	"kubramarket/internal/models"
	"kubramarket/internal/services"

	"github.com/labstack/echo/v4"
)

type RentalHandlers struct {
	rentalSvc services.RentalService
}

func NewRentalHandlers(rentalSvc services.RentalService) *RentalHandlers {
	return &RentalHandlers{rentalSvc: rentalSvc}
}

func (h *RentalHandlers) Current(c echo.Context) error {
	merchantID, ok := common.GetMerchantIDFromContext(c.Request().Context())
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	rental, err := h.rentalSvc.Current(c.Request().Context(), merchantID)
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, rental)
}

func (h *RentalHandlers) Pay(c echo.Context) error {
	merchantID, ok := common.GetMerchantIDFromContext(c.Request().Context())
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	var req models.PayRentalRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request body")
	}
	if req.RentalID <= 0 {
		return common.SendValidationError(c, "rentalId", "rentalId must be a positive integer")
	}

	rental, err := h.rentalSvc.Pay(c.Request().Context(), merchantID, req.RentalID)
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, rental)
}

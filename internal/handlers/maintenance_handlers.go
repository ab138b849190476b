package handlers

import (
	"net/http"

	"kubramarket/internal/common"
	"kubramarket/internal/models"
	"kubramarket/internal/services"

	"github.com/labstack/echo/v4"
)

type MaintenanceHandlers struct {
	maintenanceSvc services.MaintenanceService
}

func NewMaintenanceHandlers(maintenanceSvc services.MaintenanceService) *MaintenanceHandlers {
	return &MaintenanceHandlers{maintenanceSvc: maintenanceSvc}
}

func (h *MaintenanceHandlers) List(c echo.Context) error {
	merchantID, ok := common.GetMerchantIDFromContext(c.Request().Context())
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	requests, err := h.maintenanceSvc.List(c.Request().Context(), merchantID)
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, requests)
}

func (h *MaintenanceHandlers) Create(c echo.Context) error {
	merchantID, ok := common.GetMerchantIDFromContext(c.Request().Context())
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	var req models.CreateMaintenanceRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request body")
	}

	request, err := h.maintenanceSvc.Create(c.Request().Context(), merchantID, &req)
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusCreated, request)
}

func (h *MaintenanceHandlers) UpdateStatus(c echo.Context) error {
	merchantID, ok := common.GetMerchantIDFromContext(c.Request().Context())
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	id, err := common.ParseID(c.Param("id"), "request id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	var req struct {
		Status models.MaintenanceStatus `json:"status"`
	}
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request body")
	}

	if err := h.maintenanceSvc.UpdateStatus(c.Request().Context(), merchantID, id, req.Status); err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "status updated"})
}

package handlers

import (
	"net/http"

	"kubramarket/internal/common"
	"kubramarket/internal/models"
	"kubramarket/internal/services"

	"github.com/labstack/echo/v4"
)

type OrderHandlers struct {
	orderSvc services.OrderService
}

func NewOrderHandlers(orderSvc services.OrderService) *OrderHandlers {
	return &OrderHandlers{orderSvc: orderSvc}
}

func (h *OrderHandlers) List(c echo.Context) error {
	merchantID, ok := common.GetMerchantIDFromContext(c.Request().Context())
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	page, pageSize, err := common.ValidatePaginationParams(c.QueryParam("page"), c.QueryParam("pageSize"))
	if err != nil {
		return common.SendValidationError(c, "pagination", err.Error())
	}

	result, err := h.orderSvc.ListOrders(c.Request().Context(), merchantID, page, pageSize)
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, result)
}

func (h *OrderHandlers) Place(c echo.Context) error {
	merchantID, ok := common.GetMerchantIDFromContext(c.Request().Context())
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	var req models.PlaceOrderRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request body")
	}

	order, err := h.orderSvc.PlaceOrder(c.Request().Context(), merchantID, &req)
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusCreated, order)
}

func (h *OrderHandlers) Get(c echo.Context) error {
	merchantID, ok := common.GetMerchantIDFromContext(c.Request().Context())
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	id, err := common.ParseID(c.Param("id"), "order id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	order, err := h.orderSvc.GetOrder(c.Request().Context(), merchantID, id)
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, order)
}

func (h *OrderHandlers) UpdateStatus(c echo.Context) error {
	merchantID, ok := common.GetMerchantIDFromContext(c.Request().Context())
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	id, err := common.ParseID(c.Param("id"), "order id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	var req models.UpdateOrderStatusRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request body")
	}

	order, err := h.orderSvc.UpdateStatus(c.Request().Context(), merchantID, id, req.Status)
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, order)
}

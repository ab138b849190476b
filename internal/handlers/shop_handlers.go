package handlers

import (
	"net/http"

	"kubramarket/internal/common"
	"kubramarket/internal/models"
	"kubramarket/internal/services"

	"github.com/labstack/echo/v4"
)

type ShopHandlers struct {
	shopSvc services.ShopService
}

func NewShopHandlers(shopSvc services.ShopService) *ShopHandlers {
	return &ShopHandlers{shopSvc: shopSvc}
}

func (h *ShopHandlers) Get(c echo.Context) error {
	merchantID, ok := common.GetMerchantIDFromContext(c.Request().Context())
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	shop, err := h.shopSvc.Get(c.Request().Context(), merchantID)
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, shop)
}

func (h *ShopHandlers) Create(c echo.Context) error {
	merchantID, ok := common.GetMerchantIDFromContext(c.Request().Context())
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	var req models.CreateShopRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request body")
	}

	shop, err := h.shopSvc.Create(c.Request().Context(), merchantID, &req)
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusCreated, shop)
}

func (h *ShopHandlers) Update(c echo.Context) error {
	merchantID, ok := common.GetMerchantIDFromContext(c.Request().Context())
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	var req models.UpdateShopRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request body")
	}

	shop, err := h.shopSvc.Update(c.Request().Context(), merchantID, &req)
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, shop)
}

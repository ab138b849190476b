package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"kubramarket/internal/common"
	"kubramarket/internal/models"
	"kubramarket/internal/services"

	"github.com/labstack/echo/v4"
)

type ProductHandlers struct {
	productSvc services.ProductService
}

func NewProductHandlers(productSvc services.ProductService) *ProductHandlers {
	return &ProductHandlers{productSvc: productSvc}
}

func (h *ProductHandlers) List(c echo.Context) error {
	merchantID, ok := common.GetMerchantIDFromContext(c.Request().Context())
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	products, err := h.productSvc.List(c.Request().Context(), merchantID)
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, products)
}

func (h *ProductHandlers) Create(c echo.Context) error {
	merchantID, ok := common.GetMerchantIDFromContext(c.Request().Context())
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	var req models.CreateProductRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request body")
	}

	product, err := h.productSvc.Create(c.Request().Context(), merchantID, &req)
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusCreated, product)
}

func (h *ProductHandlers) Get(c echo.Context) error {
	merchantID, ok := common.GetMerchantIDFromContext(c.Request().Context())
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	id, err := common.ParseID(c.Param("id"), "product id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	product, err := h.productSvc.GetByID(c.Request().Context(), merchantID, id)
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, product)
}

func (h *ProductHandlers) Update(c echo.Context) error {
	merchantID, ok := common.GetMerchantIDFromContext(c.Request().Context())
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	id, err := common.ParseID(c.Param("id"), "product id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	var req models.UpdateProductRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request body")
	}

	product, err := h.productSvc.Update(c.Request().Context(), merchantID, id, &req)
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, product)
}

func (h *ProductHandlers) Delete(c echo.Context) error {
	merchantID, ok := common.GetMerchantIDFromContext(c.Request().Context())
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	id, err := common.ParseID(c.Param("id"), "product id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	if err := h.productSvc.Delete(c.Request().Context(), merchantID, id); err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "product deleted"})
}

func (h *ProductHandlers) LowStock(c echo.Context) error {
	merchantID, ok := common.GetMerchantIDFromContext(c.Request().Context())
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	threshold := 0
	if raw := strings.TrimSpace(c.QueryParam("threshold")); raw != "" {
		t, err := strconv.Atoi(raw)
		if err != nil || t <= 0 {
			return common.SendValidationError(c, "threshold", "threshold must be a positive integer")
		}
		threshold = t
	}

	products, err := h.productSvc.LowStock(c.Request().Context(), merchantID, threshold)
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, products)
}

func (h *ProductHandlers) UploadImage(c echo.Context) error {
	merchantID, ok := common.GetMerchantIDFromContext(c.Request().Context())
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	id, err := common.ParseID(c.Param("id"), "product id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	file, err := c.FormFile("image")
	if err != nil {
		return common.SendValidationError(c, "image", "image file is required")
	}

	src, err := file.Open()
	if err != nil {
		return common.SendServerError(c, "Failed to read uploaded file")
	}
	defer src.Close()

	product, err := h.productSvc.UploadImage(c.Request().Context(), merchantID, id,
		file.Filename, file.Header.Get("Content-Type"), src, file.Size)
	if err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, product)
}

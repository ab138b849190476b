package handlers

import (
	"net/http"

	"kubramarket/internal/common"
	"kubramarket/internal/services"

	"github.com/labstack/echo/v4"
)

type NotificationHandlers struct {
	notificationSvc services.NotificationService
}

func NewNotificationHandlers(notificationSvc services.NotificationService) *NotificationHandlers {
	return &NotificationHandlers{notificationSvc: notificationSvc}
}

func (h *NotificationHandlers) List(c echo.Context) error {
	merchantID, ok := common.GetMerchantIDFromContext(c.Request().Context())
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	notifications, err := h.notificationSvc.List(c.Request().Context(), merchantID)
	if err != nil {
		return common.SendError(c, err)
	}

	unread, err := h.notificationSvc.UnreadCount(c.Request().Context(), merchantID)
	if err != nil {
		return common.SendError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"notifications": notifications,
		"unreadCount":   unread,
	})
}

func (h *NotificationHandlers) MarkRead(c echo.Context) error {
	merchantID, ok := common.GetMerchantIDFromContext(c.Request().Context())
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	id, err := common.ParseID(c.Param("id"), "notification id")
	if err != nil {
		return common.SendValidationError(c, "id", err.Error())
	}

	if err := h.notificationSvc.MarkRead(c.Request().Context(), merchantID, id); err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "notification marked read"})
}

func (h *NotificationHandlers) MarkAllRead(c echo.Context) error {
	merchantID, ok := common.GetMerchantIDFromContext(c.Request().Context())
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	if err := h.notificationSvc.MarkAllRead(c.Request().Context(), merchantID); err != nil {
		return common.SendError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "all notifications marked read"})
}

package models

import (
	"time"
)

type NotificationType string

const (
	NotificationTypeOrder    NotificationType = "order"
	NotificationTypeShipping NotificationType = "shipping"
	NotificationTypeRental   NotificationType = "rental"
	NotificationTypeDelivery NotificationType = "delivery"
	NotificationTypeSystem   NotificationType = "system"
)

func ValidNotificationType(t NotificationType) bool {
	switch t {
	case NotificationTypeOrder, NotificationTypeShipping, NotificationTypeRental,
		NotificationTypeDelivery, NotificationTypeSystem:
		return true
	}
	return false
}

type Notification struct {
	ID         int64            `json:"id" db:"id"`
	MerchantID int64            `json:"merchantId" db:"merchant_id"`
	Type       NotificationType `json:"type" db:"type"`
	Title      string           `json:"title" db:"title"`
	Message    string           `json:"message" db:"message"`
	IsRead     bool             `json:"isRead" db:"is_read"`
	CreatedAt  time.Time        `json:"createdAt" db:"created_at"`
	UpdatedAt  time.Time        `json:"updatedAt" db:"updated_at"`
}

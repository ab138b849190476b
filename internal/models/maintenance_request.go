package models

import (
	"time"
)

type MaintenanceStatus string

const (
	MaintenanceStatusPending    MaintenanceStatus = "pending"
	MaintenanceStatusInProgress MaintenanceStatus = "in-progress"
	MaintenanceStatusResolved   MaintenanceStatus = "resolved"
)

func ValidMaintenanceStatus(s MaintenanceStatus) bool {
	switch s {
	case MaintenanceStatusPending, MaintenanceStatusInProgress, MaintenanceStatusResolved:
		return true
	}
	return false
}

type MaintenancePriority string

const (
	MaintenancePriorityLow    MaintenancePriority = "low"
	MaintenancePriorityMedium MaintenancePriority = "medium"
	MaintenancePriorityHigh   MaintenancePriority = "high"
)

func ValidMaintenancePriority(p MaintenancePriority) bool {
	switch p {
	case MaintenancePriorityLow, MaintenancePriorityMedium, MaintenancePriorityHigh:
		return true
	}
	return false
}

type MaintenanceRequest struct {
	ID          int64               `json:"id" db:"id"`
	MerchantID  int64               `json:"merchantId" db:"merchant_id"`
	ShopID      int64               `json:"shopId" db:"shop_id"`
	IssueType   string              `json:"issueType" db:"issue_type"`
	Description string              `json:"description" db:"description"`
	Priority    MaintenancePriority `json:"priority" db:"priority"`
	Status      MaintenanceStatus   `json:"status" db:"status"`
	CreatedAt   time.Time           `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time           `json:"updatedAt" db:"updated_at"`
}

type CreateMaintenanceRequest struct {
	IssueType   string              `json:"issueType"`
	Description string              `json:"description"`
	Priority    MaintenancePriority `json:"priority"`
}

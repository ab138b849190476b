package models

import (
	"time"
)

// Rental is a recurring stall-rent obligation for the merchant's shop.
type Rental struct {
	ID         int64      `json:"id" db:"id"`
	MerchantID int64      `json:"merchantId" db:"merchant_id"`
	ShopID     int64      `json:"shopId" db:"shop_id"`
	Amount     float64    `json:"amount" db:"amount"`
	StartDate  time.Time  `json:"startDate" db:"start_date"`
	DueDate    time.Time  `json:"dueDate" db:"due_date"`
	IsPaid     bool       `json:"isPaid" db:"is_paid"`
	PaidAt     *time.Time `json:"paidAt" db:"paid_at"`
	CreatedAt  time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt  time.Time  `json:"updatedAt" db:"updated_at"`
}

// RentalView is the current-rental payload, enriched with the shop name.
type RentalView struct {
	Rental
	ShopName string `json:"shopName"`
}

type PayRentalRequest struct {
	RentalID int64 `json:"rentalId"`
}

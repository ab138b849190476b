package models

import (
	"time"
)

// Customer is not merchant-scoped. A row is written for every placed order
// and referenced from it via customer_id; the order additionally snapshots
// the contact fields it was placed with.
type Customer struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Phone     *string   `json:"phone" db:"phone"`
	Address   *string   `json:"address" db:"address"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

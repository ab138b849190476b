package models

import (
	"time"
)

type Product struct {
	ID          int64     `json:"id" db:"id"`
	MerchantID  int64     `json:"merchantId" db:"merchant_id"`
	ShopID      int64     `json:"shopId" db:"shop_id"`
	Name        string    `json:"name" db:"name"`
	Description *string   `json:"description" db:"description"`
	Price       float64   `json:"price" db:"price"`
	Stock       int       `json:"stock" db:"stock"`
	Category    *string   `json:"category" db:"category"`
	ImageURL    *string   `json:"imageUrl" db:"image_url"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}

type CreateProductRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
	Category    *string `json:"category"`
}

// UpdateProductRequest carries partial updates; nil fields are left untouched.
type UpdateProductRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Stock       *int     `json:"stock"`
	Category    *string  `json:"category"`
	ImageURL    *string  `json:"imageUrl"`
}

// DefaultLowStockThreshold is applied when a low-stock query gives none.
const DefaultLowStockThreshold = 10

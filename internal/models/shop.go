package models

import (
	"time"
)

// Shop is the merchant's storefront profile. One shop per merchant.
type Shop struct {
	ID         int64     `json:"id" db:"id"`
	MerchantID int64     `json:"merchantId" db:"merchant_id"`
	Name       string    `json:"name" db:"name"`
	Phone      *string   `json:"phone" db:"phone"`
	Address    *string   `json:"address" db:"address"`
	BannerURL  *string   `json:"bannerUrl" db:"banner_url"`
	LogoURL    *string   `json:"logoUrl" db:"logo_url"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt  time.Time `json:"updatedAt" db:"updated_at"`
}

type CreateShopRequest struct {
	Name      string  `json:"name"`
	Phone     *string `json:"phone"`
	Address   *string `json:"address"`
	BannerURL *string `json:"bannerUrl"`
	LogoURL   *string `json:"logoUrl"`
}

// UpdateShopRequest carries partial updates; nil fields are left untouched.
type UpdateShopRequest struct {
	Name      *string `json:"name"`
	Phone     *string `json:"phone"`
	Address   *string `json:"address"`
	BannerURL *string `json:"bannerUrl"`
	LogoURL   *string `json:"logoUrl"`
}

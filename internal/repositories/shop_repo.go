package repositories

import (
	"context"

	"kubramarket/internal/models"
)

type ShopRepository interface {
	Create(ctx context.Context, shop *models.Shop) error
	GetByMerchant(ctx context.Context, merchantID int64) (*models.Shop, error)
	Update(ctx context.Context, shop *models.Shop) error
}

type shopRepo struct {
	db DB
}

func NewShopRepo(db DB) ShopRepository {
	return &shopRepo{db: db}
}

func (r *shopRepo) Create(ctx context.Context, shop *models.Shop) error {
	query := `
		INSERT INTO shops (merchant_id, name, phone, address, banner_url, logo_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`
	return r.db.QueryRow(ctx, query, shop.MerchantID, shop.Name, shop.Phone, shop.Address, shop.BannerURL, shop.LogoURL).
		Scan(&shop.ID, &shop.CreatedAt, &shop.UpdatedAt)
}

func (r *shopRepo) GetByMerchant(ctx context.Context, merchantID int64) (*models.Shop, error) {
	shop := &models.Shop{}
	query := `
		SELECT id, merchant_id, name, phone, address, banner_url, logo_url, created_at, updated_at
		FROM shops
		WHERE merchant_id = $1
	`
	err := r.db.QueryRow(ctx, query, merchantID).Scan(&shop.ID, &shop.MerchantID, &shop.Name, &shop.Phone, &shop.Address, &shop.BannerURL, &shop.LogoURL, &shop.CreatedAt, &shop.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return shop, nil
}

func (r *shopRepo) Update(ctx context.Context, shop *models.Shop) error {
	query := `
		UPDATE shops
		SET name = $1, phone = $2, address = $3, banner_url = $4, logo_url = $5, updated_at = NOW()
		WHERE merchant_id = $6 AND id = $7
		RETURNING updated_at
	`
	return r.db.QueryRow(ctx, query, shop.Name, shop.Phone, shop.Address, shop.BannerURL, shop.LogoURL, shop.MerchantID, shop.ID).
		Scan(&shop.UpdatedAt)
}

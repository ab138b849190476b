package repositories

import (
	"context"

	"kubramarket/internal/models"
)

type MerchantRepository interface {
	Create(ctx context.Context, merchant *models.Merchant) error
	GetByID(ctx context.Context, id int64) (*models.Merchant, error)
	GetByUsername(ctx context.Context, username string) (*models.Merchant, error)
	Delete(ctx context.Context, id int64) error
}

type merchantRepo struct {
	db DB
}

func NewMerchantRepo(db DB) MerchantRepository {
	return &merchantRepo{db: db}
}

func (r *merchantRepo) Create(ctx context.Context, merchant *models.Merchant) error {
	query := `
		INSERT INTO merchants (username, password_hash, name, phone, email, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`
	return r.db.QueryRow(ctx, query, merchant.Username, merchant.PasswordHash, merchant.Name, merchant.Phone, merchant.Email).
		Scan(&merchant.ID, &merchant.CreatedAt, &merchant.UpdatedAt)
}

func (r *merchantRepo) GetByID(ctx context.Context, id int64) (*models.Merchant, error) {
	merchant := &models.Merchant{}
	query := `
		SELECT id, username, password_hash, name, phone, email, created_at, updated_at
		FROM merchants
		WHERE id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(&merchant.ID, &merchant.Username, &merchant.PasswordHash, &merchant.Name, &merchant.Phone, &merchant.Email, &merchant.CreatedAt, &merchant.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return merchant, nil
}

func (r *merchantRepo) GetByUsername(ctx context.Context, username string) (*models.Merchant, error) {
	merchant := &models.Merchant{}
	query := `
		SELECT id, username, password_hash, name, phone, email, created_at, updated_at
		FROM merchants
		WHERE username = $1
	`
	err := r.db.QueryRow(ctx, query, username).Scan(&merchant.ID, &merchant.Username, &merchant.PasswordHash, &merchant.Name, &merchant.Phone, &merchant.Email, &merchant.CreatedAt, &merchant.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return merchant, nil
}

// Delete removes the merchant row; shop, products, orders, order items,
// rentals, maintenance requests and notifications follow via ON DELETE CASCADE.
func (r *merchantRepo) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM merchants WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	return err
}

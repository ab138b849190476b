package repositories

import (
	"context"

	"kubramarket/internal/models"

	"github.com/jackc/pgx/v5"
)

type ProductRepository interface {
	Create(ctx context.Context, product *models.Product) error
	GetByID(ctx context.Context, id int64) (*models.Product, error)
	List(ctx context.Context, merchantID int64) ([]*models.Product, error)
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id int64) (bool, error)
	LowStock(ctx context.Context, merchantID int64, threshold int) ([]*models.Product, error)
	LowStockAcrossMerchants(ctx context.Context, threshold int) ([]*models.Product, error)
}

type productRepo struct {
	db DB
}

func NewProductRepo(db DB) ProductRepository {
	return &productRepo{db: db}
}

func (r *productRepo) Create(ctx context.Context, product *models.Product) error {
	query := `
		INSERT INTO products (merchant_id, shop_id, name, description, price, stock, category, image_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`
	return r.db.QueryRow(ctx, query, product.MerchantID, product.ShopID, product.Name, product.Description, product.Price, product.Stock, product.Category, product.ImageURL).
		Scan(&product.ID, &product.CreatedAt, &product.UpdatedAt)
}

// GetByID fetches by primary key regardless of owner; callers compare the
// returned merchant_id against the session merchant before exposing the row.
func (r *productRepo) GetByID(ctx context.Context, id int64) (*models.Product, error) {
	product := &models.Product{}
	query := `
		SELECT id, merchant_id, shop_id, name, description, price, stock, category, image_url, created_at, updated_at
		FROM products
		WHERE id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(&product.ID, &product.MerchantID, &product.ShopID, &product.Name, &product.Description, &product.Price, &product.Stock, &product.Category, &product.ImageURL, &product.CreatedAt, &product.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return product, nil
}

func (r *productRepo) List(ctx context.Context, merchantID int64) ([]*models.Product, error) {
	query := `
		SELECT id, merchant_id, shop_id, name, description, price, stock, category, image_url, created_at, updated_at
		FROM products
		WHERE merchant_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.db.Query(ctx, query, merchantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanProducts(rows)
}

func (r *productRepo) Update(ctx context.Context, product *models.Product) error {
	query := `
		UPDATE products
		SET name = $1, description = $2, price = $3, stock = $4, category = $5, image_url = $6, updated_at = NOW()
		WHERE id = $7
		RETURNING updated_at
	`
	return r.db.QueryRow(ctx, query, product.Name, product.Description, product.Price, product.Stock, product.Category, product.ImageURL, product.ID).
		Scan(&product.UpdatedAt)
}

func (r *productRepo) Delete(ctx context.Context, id int64) (bool, error) {
	query := `DELETE FROM products WHERE id = $1`
	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *productRepo) LowStock(ctx context.Context, merchantID int64, threshold int) ([]*models.Product, error) {
	query := `
		SELECT id, merchant_id, shop_id, name, description, price, stock, category, image_url, created_at, updated_at
		FROM products
		WHERE merchant_id = $1 AND stock < $2
		ORDER BY stock ASC
	`
	rows, err := r.db.Query(ctx, query, merchantID, threshold)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanProducts(rows)
}

// LowStockAcrossMerchants feeds the background low-stock scan; results are
// grouped by merchant by the caller.
func (r *productRepo) LowStockAcrossMerchants(ctx context.Context, threshold int) ([]*models.Product, error) {
	query := `
		SELECT id, merchant_id, shop_id, name, description, price, stock, category, image_url, created_at, updated_at
		FROM products
		WHERE stock < $1
		ORDER BY merchant_id, stock ASC
	`
	rows, err := r.db.Query(ctx, query, threshold)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanProducts(rows)
}

func scanProducts(rows pgx.Rows) ([]*models.Product, error) {
	var products []*models.Product
	for rows.Next() {
		product := &models.Product{}
		if err := rows.Scan(&product.ID, &product.MerchantID, &product.ShopID, &product.Name, &product.Description, &product.Price, &product.Stock, &product.Category, &product.ImageURL, &product.CreatedAt, &product.UpdatedAt); err != nil {
			return nil, err
		}
		products = append(products, product)
	}
	return products, rows.Err()
}

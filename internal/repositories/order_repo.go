package repositories

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"kubramarket/internal/common"
	"kubramarket/internal/models"

	"github.com/jackc/pgx/v5"
)

type OrderRepository interface {
	CreateWithItems(ctx context.Context, order *models.Order, lines []models.OrderLine) error
	GetByID(ctx context.Context, id int64) (*models.Order, error)
	List(ctx context.Context, merchantID int64, page, pageSize int) ([]models.Order, int, error)
	Recent(ctx context.Context, merchantID int64, limit int) ([]models.Order, error)
	UpdateStatus(ctx context.Context, id int64, status models.OrderStatus) (bool, error)
	SalesSummary(ctx context.Context, merchantID int64) (*models.SalesSummary, error)
}

type orderRepo struct {
	db DB
}

func NewOrderRepo(db DB) OrderRepository {
	return &orderRepo{db: db}
}

// CreateWithItems places an order atomically: every referenced product row is
// locked, checked for ownership and stock, a customer row is written, the
// order and its items are written with the locked price, and stock is
// decremented. Any failure rolls the whole placement back with zero rows
// written.
func (r *orderRepo) CreateWithItems(ctx context.Context, order *models.Order, lines []models.OrderLine) error {
	seen := make(map[int64]bool, len(lines))
	for _, line := range lines {
		if seen[line.ProductID] {
			return common.NewValidationError(fmt.Sprintf("duplicate product %d in order items", line.ProductID))
		}
		seen[line.ProductID] = true
	}

	// Lock rows in a deterministic order so concurrent placements cannot
	// deadlock on each other.
	ordered := make([]models.OrderLine, len(lines))
	copy(ordered, lines)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].ProductID < ordered[j].ProductID })

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	type lockedProduct struct {
		line  models.OrderLine
		price float64
	}
	locked := make([]lockedProduct, 0, len(ordered))
	var total float64

	for _, line := range ordered {
		var ownerID int64
		var price float64
		var stock int
		err := tx.QueryRow(ctx,
			`SELECT merchant_id, price, stock FROM products WHERE id = $1 FOR UPDATE`,
			line.ProductID,
		).Scan(&ownerID, &price, &stock)
		if errors.Is(err, pgx.ErrNoRows) {
			return common.NewNotFoundError("Product")
		}
		if err != nil {
			return err
		}
		// A foreign merchant's product reads as unavailable, never as a
		// hint that it exists.
		if ownerID != order.MerchantID {
			return common.NewValidationError(fmt.Sprintf("product %d is unavailable", line.ProductID))
		}
		if stock < line.Quantity {
			return common.NewValidationError(fmt.Sprintf("insufficient stock for product %d", line.ProductID))
		}
		total += price * float64(line.Quantity)
		locked = append(locked, lockedProduct{line: line, price: price})
	}

	order.TotalAmount = total
	if order.Status == "" {
		order.Status = models.OrderStatusNew
	}

	err = tx.QueryRow(ctx, `
		INSERT INTO customers (name, phone, address, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		RETURNING id
	`, order.CustomerName, order.CustomerPhone, order.CustomerAddr).Scan(&order.CustomerID)
	if err != nil {
		return err
	}

	err = tx.QueryRow(ctx, `
		INSERT INTO orders (merchant_id, customer_id, customer_name, customer_phone, customer_address, status, total_amount, payment_method, is_paid, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`, order.MerchantID, order.CustomerID, order.CustomerName, order.CustomerPhone, order.CustomerAddr, order.Status, order.TotalAmount, order.PaymentMethod, order.IsPaid).
		Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		return err
	}

	order.Items = order.Items[:0]
	for _, lp := range locked {
		item := models.OrderItem{
			OrderID:   order.ID,
			ProductID: lp.line.ProductID,
			Quantity:  lp.line.Quantity,
			Price:     lp.price,
		}
		err = tx.QueryRow(ctx, `
			INSERT INTO order_items (order_id, product_id, quantity, price, created_at)
			VALUES ($1, $2, $3, $4, NOW())
			RETURNING id, created_at
		`, item.OrderID, item.ProductID, item.Quantity, item.Price).Scan(&item.ID, &item.CreatedAt)
		if err != nil {
			return err
		}
		_, err = tx.Exec(ctx,
			`UPDATE products SET stock = stock - $1, updated_at = NOW() WHERE id = $2`,
			lp.line.Quantity, lp.line.ProductID,
		)
		if err != nil {
			return err
		}
		order.Items = append(order.Items, item)
	}

	return tx.Commit(ctx)
}

// GetByID fetches by primary key regardless of owner; callers compare the
// returned merchant_id against the session merchant before exposing the row.
func (r *orderRepo) GetByID(ctx context.Context, id int64) (*models.Order, error) {
	order := &models.Order{}
	query := `
		SELECT id, merchant_id, customer_id, customer_name, customer_phone, customer_address, status, total_amount, payment_method, is_paid, created_at, updated_at
		FROM orders
		WHERE id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(&order.ID, &order.MerchantID, &order.CustomerID, &order.CustomerName, &order.CustomerPhone, &order.CustomerAddr, &order.Status, &order.TotalAmount, &order.PaymentMethod, &order.IsPaid, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if err := r.loadItems(ctx, []*models.Order{order}); err != nil {
		return nil, err
	}
	return order, nil
}

// List returns one newest-first page of orders plus the merchant's total
// order count.
func (r *orderRepo) List(ctx context.Context, merchantID int64, page, pageSize int) ([]models.Order, int, error) {
	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM orders WHERE merchant_id = $1`, merchantID).Scan(&total); err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	query := `
		SELECT id, merchant_id, customer_id, customer_name, customer_phone, customer_address, status, total_amount, payment_method, is_paid, created_at, updated_at
		FROM orders
		WHERE merchant_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	orders, err := r.scanOrders(ctx, query, merchantID, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

func (r *orderRepo) Recent(ctx context.Context, merchantID int64, limit int) ([]models.Order, error) {
	query := `
		SELECT id, merchant_id, customer_id, customer_name, customer_phone, customer_address, status, total_amount, payment_method, is_paid, created_at, updated_at
		FROM orders
		WHERE merchant_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`
	orders, err := r.scanOrders(ctx, query, merchantID, limit)
	if err != nil {
		return nil, err
	}
	refs := make([]*models.Order, len(orders))
	for i := range orders {
		refs[i] = &orders[i]
	}
	if err := r.loadItems(ctx, refs); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *orderRepo) UpdateStatus(ctx context.Context, id int64, status models.OrderStatus) (bool, error) {
	query := `UPDATE orders SET status = $1, updated_at = NOW() WHERE id = $2`
	tag, err := r.db.Exec(ctx, query, status, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// SalesSummary aggregates over every order for the merchant, cancelled ones
// included. Zero orders yield a zero-valued summary, not an error.
func (r *orderRepo) SalesSummary(ctx context.Context, merchantID int64) (*models.SalesSummary, error) {
	summary := &models.SalesSummary{}
	query := `
		SELECT COALESCE(SUM(total_amount), 0), COUNT(*), COALESCE(AVG(total_amount), 0)
		FROM orders
		WHERE merchant_id = $1
	`
	err := r.db.QueryRow(ctx, query, merchantID).Scan(&summary.TotalSale, &summary.OrderCount, &summary.AvgOrderValue)
	if err != nil {
		return nil, err
	}
	return summary, nil
}

func (r *orderRepo) scanOrders(ctx context.Context, query string, args ...any) ([]models.Order, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []models.Order
	for rows.Next() {
		var order models.Order
		if err := rows.Scan(&order.ID, &order.MerchantID, &order.CustomerID, &order.CustomerName, &order.CustomerPhone, &order.CustomerAddr, &order.Status, &order.TotalAmount, &order.PaymentMethod, &order.IsPaid, &order.CreatedAt, &order.UpdatedAt); err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	return orders, rows.Err()
}

// loadItems attaches order items, with the current product row joined in,
// to the given orders.
func (r *orderRepo) loadItems(ctx context.Context, orders []*models.Order) error {
	if len(orders) == 0 {
		return nil
	}
	ids := make([]int64, len(orders))
	byID := make(map[int64]*models.Order, len(orders))
	for i, order := range orders {
		ids[i] = order.ID
		byID[order.ID] = order
		order.Items = []models.OrderItem{}
	}

	query := `
		SELECT i.id, i.order_id, i.product_id, i.quantity, i.price, i.created_at,
			p.id, p.merchant_id, p.shop_id, p.name, p.description, p.price, p.stock, p.category, p.image_url, p.created_at, p.updated_at
		FROM order_items i
		JOIN products p ON p.id = i.product_id
		WHERE i.order_id = ANY($1)
		ORDER BY i.id
	`
	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var item models.OrderItem
		product := &models.Product{}
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Quantity, &item.Price, &item.CreatedAt,
			&product.ID, &product.MerchantID, &product.ShopID, &product.Name, &product.Description, &product.Price, &product.Stock, &product.Category, &product.ImageURL, &product.CreatedAt, &product.UpdatedAt); err != nil {
			return err
		}
		item.Product = product
		if order, ok := byID[item.OrderID]; ok {
			order.Items = append(order.Items, item)
		}
	}
	return rows.Err()
}

package repositories

import (
	"context"
	"errors"

	"kubramarket/internal/common"
	"kubramarket/internal/models"

	"github.com/jackc/pgx/v5"
)

type RentalRepository interface {
	Create(ctx context.Context, rental *models.Rental) error
	GetByID(ctx context.Context, id int64) (*models.Rental, error)
	Current(ctx context.Context, merchantID int64) (*models.Rental, error)
	MarkPaid(ctx context.Context, merchantID, id int64) (*models.Rental, error)
	DueWithinDays(ctx context.Context, days int) ([]*models.Rental, error)
}

type rentalRepo struct {
	db DB
}

func NewRentalRepo(db DB) RentalRepository {
	return &rentalRepo{db: db}
}

func (r *rentalRepo) Create(ctx context.Context, rental *models.Rental) error {
	query := `
		INSERT INTO rentals (merchant_id, shop_id, amount, start_date, due_date, is_paid, paid_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`
	return r.db.QueryRow(ctx, query, rental.MerchantID, rental.ShopID, rental.Amount, rental.StartDate, rental.DueDate, rental.IsPaid, rental.PaidAt).
		Scan(&rental.ID, &rental.CreatedAt, &rental.UpdatedAt)
}

// GetByID fetches by primary key regardless of owner; callers compare the
// returned merchant_id against the session merchant before exposing the row.
func (r *rentalRepo) GetByID(ctx context.Context, id int64) (*models.Rental, error) {
	rental := &models.Rental{}
	query := `
		SELECT id, merchant_id, shop_id, amount, start_date, due_date, is_paid, paid_at, created_at, updated_at
		FROM rentals
		WHERE id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(&rental.ID, &rental.MerchantID, &rental.ShopID, &rental.Amount, &rental.StartDate, &rental.DueDate, &rental.IsPaid, &rental.PaidAt, &rental.CreatedAt, &rental.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return rental, nil
}

// Current returns the unpaid rental with the earliest future due date, or
// pgx.ErrNoRows when none is pending.
func (r *rentalRepo) Current(ctx context.Context, merchantID int64) (*models.Rental, error) {
	rental := &models.Rental{}
	query := `
		SELECT id, merchant_id, shop_id, amount, start_date, due_date, is_paid, paid_at, created_at, updated_at
		FROM rentals
		WHERE merchant_id = $1 AND is_paid = FALSE AND due_date > NOW()
		ORDER BY due_date ASC
		LIMIT 1
	`
	err := r.db.QueryRow(ctx, query, merchantID).Scan(&rental.ID, &rental.MerchantID, &rental.ShopID, &rental.Amount, &rental.StartDate, &rental.DueDate, &rental.IsPaid, &rental.PaidAt, &rental.CreatedAt, &rental.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return rental, nil
}

// MarkPaid settles a rental exactly once. The row is locked by primary key,
// then checked: a missing row is not found, someone else's row is forbidden,
// an already-settled row is rejected without touching updated_at. Two
// concurrent payments cannot both succeed.
func (r *rentalRepo) MarkPaid(ctx context.Context, merchantID, id int64) (*models.Rental, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	rental := &models.Rental{}
	err = tx.QueryRow(ctx, `
		SELECT id, merchant_id, shop_id, amount, start_date, due_date, is_paid, paid_at, created_at, updated_at
		FROM rentals
		WHERE id = $1
		FOR UPDATE
	`, id).Scan(&rental.ID, &rental.MerchantID, &rental.ShopID, &rental.Amount, &rental.StartDate, &rental.DueDate, &rental.IsPaid, &rental.PaidAt, &rental.CreatedAt, &rental.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, common.NewNotFoundError("Rental")
	}
	if err != nil {
		return nil, err
	}
	if rental.MerchantID != merchantID {
		return nil, common.NewAuthorizationError("rental belongs to another merchant")
	}
	if rental.IsPaid {
		return nil, common.NewValidationError("rental is already paid")
	}

	err = tx.QueryRow(ctx, `
		UPDATE rentals
		SET is_paid = TRUE, paid_at = NOW(), updated_at = NOW()
		WHERE id = $1
		RETURNING is_paid, paid_at, updated_at
	`, id).Scan(&rental.IsPaid, &rental.PaidAt, &rental.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return rental, nil
}

// DueWithinDays lists unpaid rentals across all merchants coming due inside
// the window. Used by the reminder job.
func (r *rentalRepo) DueWithinDays(ctx context.Context, days int) ([]*models.Rental, error) {
	query := `
		SELECT id, merchant_id, shop_id, amount, start_date, due_date, is_paid, paid_at, created_at, updated_at
		FROM rentals
		WHERE is_paid = FALSE AND due_date > NOW() AND due_date <= NOW() + ($1 || ' days')::interval
		ORDER BY due_date ASC
	`
	rows, err := r.db.Query(ctx, query, days)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rentals []*models.Rental
	for rows.Next() {
		rental := &models.Rental{}
		if err := rows.Scan(&rental.ID, &rental.MerchantID, &rental.ShopID, &rental.Amount, &rental.StartDate, &rental.DueDate, &rental.IsPaid, &rental.PaidAt, &rental.CreatedAt, &rental.UpdatedAt); err != nil {
			return nil, err
		}
		rentals = append(rentals, rental)
	}
	return rentals, rows.Err()
}

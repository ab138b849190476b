package repositories

import (
	"context"

	"kubramarket/internal/models"
)

type NotificationRepository interface {
	Create(ctx context.Context, notification *models.Notification) error
	GetByID(ctx context.Context, id int64) (*models.Notification, error)
	List(ctx context.Context, merchantID int64) ([]*models.Notification, error)
	UnreadCount(ctx context.Context, merchantID int64) (int, error)
	MarkRead(ctx context.Context, id int64) (bool, error)
	MarkAllRead(ctx context.Context, merchantID int64) error
}

type notificationRepo struct {
	db DB
}

func NewNotificationRepo(db DB) NotificationRepository {
	return &notificationRepo{db: db}
}

func (r *notificationRepo) Create(ctx context.Context, notification *models.Notification) error {
	query := `
		INSERT INTO notifications (merchant_id, type, title, message, is_read, created_at, updated_at)
		VALUES ($1, $2, $3, $4, FALSE, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`
	return r.db.QueryRow(ctx, query, notification.MerchantID, notification.Type, notification.Title, notification.Message).
		Scan(&notification.ID, &notification.CreatedAt, &notification.UpdatedAt)
}

// GetByID fetches by primary key regardless of owner; callers compare the
// returned merchant_id against the session merchant before exposing the row.
func (r *notificationRepo) GetByID(ctx context.Context, id int64) (*models.Notification, error) {
	notification := &models.Notification{}
	query := `
		SELECT id, merchant_id, type, title, message, is_read, created_at, updated_at
		FROM notifications
		WHERE id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(&notification.ID, &notification.MerchantID, &notification.Type, &notification.Title, &notification.Message, &notification.IsRead, &notification.CreatedAt, &notification.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return notification, nil
}

func (r *notificationRepo) List(ctx context.Context, merchantID int64) ([]*models.Notification, error) {
	query := `
		SELECT id, merchant_id, type, title, message, is_read, created_at, updated_at
		FROM notifications
		WHERE merchant_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.db.Query(ctx, query, merchantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notifications []*models.Notification
	for rows.Next() {
		notification := &models.Notification{}
		if err := rows.Scan(&notification.ID, &notification.MerchantID, &notification.Type, &notification.Title, &notification.Message, &notification.IsRead, &notification.CreatedAt, &notification.UpdatedAt); err != nil {
			return nil, err
		}
		notifications = append(notifications, notification)
	}
	return notifications, rows.Err()
}

func (r *notificationRepo) UnreadCount(ctx context.Context, merchantID int64) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM notifications WHERE merchant_id = $1 AND is_read = FALSE`
	err := r.db.QueryRow(ctx, query, merchantID).Scan(&count)
	return count, err
}

// MarkRead is idempotent; marking an already-read notification succeeds and
// still advances updated_at.
func (r *notificationRepo) MarkRead(ctx context.Context, id int64) (bool, error) {
	query := `UPDATE notifications SET is_read = TRUE, updated_at = NOW() WHERE id = $1`
	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *notificationRepo) MarkAllRead(ctx context.Context, merchantID int64) error {
	query := `UPDATE notifications SET is_read = TRUE, updated_at = NOW() WHERE merchant_id = $1 AND is_read = FALSE`
	_, err := r.db.Exec(ctx, query, merchantID)
	return err
}

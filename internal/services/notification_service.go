package services

import (
	"context"
	"errors"

	"kubramarket/internal/common"
	"kubramarket/internal/models"
	"kubramarket/internal/repositories"

	"github.com/jackc/pgx/v5"
)

type NotificationService interface {
	Notify(ctx context.Context, merchantID int64, kind models.NotificationType, title, message string) error
	List(ctx context.Context, merchantID int64) ([]*models.Notification, error)
	UnreadCount(ctx context.Context, merchantID int64) (int, error)
	MarkRead(ctx context.Context, merchantID, id int64) error
	MarkAllRead(ctx context.Context, merchantID int64) error
}

type notificationService struct {
	notificationRepo repositories.NotificationRepository
}

func NewNotificationService(notificationRepo repositories.NotificationRepository) NotificationService {
	return &notificationService{notificationRepo: notificationRepo}
}

func (s *notificationService) Notify(ctx context.Context, merchantID int64, kind models.NotificationType, title, message string) error {
	if !models.ValidNotificationType(kind) {
		return common.NewValidationError("invalid notification type")
	}
	notification := &models.Notification{
		MerchantID: merchantID,
		Type:       kind,
		Title:      title,
		Message:    message,
	}
	if err := s.notificationRepo.Create(ctx, notification); err != nil {
		return common.NewUnexpectedError("failed to create notification", err)
	}
	return nil
}

func (s *notificationService) List(ctx context.Context, merchantID int64) ([]*models.Notification, error) {
	notifications, err := s.notificationRepo.List(ctx, merchantID)
	if err != nil {
		return nil, common.NewUnexpectedError("failed to list notifications", err)
	}
	if notifications == nil {
		notifications = []*models.Notification{}
	}
	return notifications, nil
}

func (s *notificationService) UnreadCount(ctx context.Context, merchantID int64) (int, error) {
	count, err := s.notificationRepo.UnreadCount(ctx, merchantID)
	if err != nil {
		return 0, common.NewUnexpectedError("failed to count notifications", err)
	}
	return count, nil
}

// MarkRead is idempotent; re-marking a read notification succeeds. A missing
// notification is 404, someone else's is 403.
func (s *notificationService) MarkRead(ctx context.Context, merchantID, id int64) error {
	notification, err := s.notificationRepo.GetByID(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return common.NewNotFoundError("Notification")
	}
	if err != nil {
		return common.NewUnexpectedError("failed to load notification", err)
	}
	if notification.MerchantID != merchantID {
		return common.NewAuthorizationError("notification belongs to another merchant")
	}

	found, err := s.notificationRepo.MarkRead(ctx, id)
	if err != nil {
		return common.NewUnexpectedError("failed to mark notification read", err)
	}
	if !found {
		return common.NewNotFoundError("Notification")
	}
	return nil
}

func (s *notificationService) MarkAllRead(ctx context.Context, merchantID int64) error {
	if err := s.notificationRepo.MarkAllRead(ctx, merchantID); err != nil {
		return common.NewUnexpectedError("failed to mark notifications read", err)
	}
	return nil
}

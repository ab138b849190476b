package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"

	"kubramarket/internal/common"
	"kubramarket/internal/models"
	"kubramarket/internal/repositories"

	"github.com/jackc/pgx/v5"
)

type OrderService interface {
	PlaceOrder(ctx context.Context, merchantID int64, req *models.PlaceOrderRequest) (*models.Order, error)
	GetOrder(ctx context.Context, merchantID, id int64) (*models.Order, error)
	ListOrders(ctx context.Context, merchantID int64, page, pageSize int) (*models.OrderPage, error)
	UpdateStatus(ctx context.Context, merchantID, id int64, status models.OrderStatus) (*models.Order, error)
}

type orderService struct {
	orderRepo       repositories.OrderRepository
	notificationSvc NotificationService
}

func NewOrderService(orderRepo repositories.OrderRepository, notificationSvc NotificationService) OrderService {
	return &orderService{
		orderRepo:       orderRepo,
		notificationSvc: notificationSvc,
	}
}

func (s *orderService) PlaceOrder(ctx context.Context, merchantID int64, req *models.PlaceOrderRequest) (*models.Order, error) {
	if err := common.ValidateRequiredString(req.CustomerName, "customerName"); err != nil {
		return nil, common.NewFieldValidationError("customerName", err.Error())
	}
	if len(req.Items) == 0 {
		return nil, common.NewFieldValidationError("items", "order must contain at least one item")
	}
	for _, item := range req.Items {
		if item.Quantity <= 0 {
			return nil, common.NewFieldValidationError("items", fmt.Sprintf("quantity for product %d must be positive", item.ProductID))
		}
	}

	order := &models.Order{
		MerchantID:    merchantID,
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		CustomerAddr:  req.CustomerAddr,
		PaymentMethod: req.PaymentMethod,
		Status:        models.OrderStatusNew,
	}
	if err := s.orderRepo.CreateWithItems(ctx, order, req.Items); err != nil {
		if common.KindOf(err) != common.KindUnexpected {
			return nil, err
		}
		return nil, common.NewUnexpectedError("failed to place order", err)
	}

	if err := s.notificationSvc.Notify(ctx, merchantID, models.NotificationTypeOrder,
		"New Order Received",
		fmt.Sprintf("Order #%d from %s for %.2f", order.ID, order.CustomerName, order.TotalAmount),
	); err != nil {
		log.Printf("WARN: failed to notify about order %d: %v", order.ID, err)
	}
	return order, nil
}

// GetOrder distinguishes a missing order (404) from someone else's (403).
func (s *orderService) GetOrder(ctx context.Context, merchantID, id int64) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, common.NewNotFoundError("Order")
	}
	if err != nil {
		return nil, common.NewUnexpectedError("failed to load order", err)
	}
	if order.MerchantID != merchantID {
		return nil, common.NewAuthorizationError("order belongs to another merchant")
	}
	return order, nil
}

func (s *orderService) ListOrders(ctx context.Context, merchantID int64, page, pageSize int) (*models.OrderPage, error) {
	orders, total, err := s.orderRepo.List(ctx, merchantID, page, pageSize)
	if err != nil {
		return nil, common.NewUnexpectedError("failed to list orders", err)
	}
	if orders == nil {
		orders = []models.Order{}
	}
	return &models.OrderPage{
		Orders:     orders,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: int(math.Ceil(float64(total) / float64(pageSize))),
	}, nil
}

// UpdateStatus accepts any valid status regardless of the current one; there
// is no transition graph. Every update emits an order notification.
func (s *orderService) UpdateStatus(ctx context.Context, merchantID, id int64, status models.OrderStatus) (*models.Order, error) {
	if !models.ValidOrderStatus(status) {
		return nil, common.NewFieldValidationError("status", "invalid order status")
	}

	if _, err := s.GetOrder(ctx, merchantID, id); err != nil {
		return nil, err
	}
	found, err := s.orderRepo.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, common.NewUnexpectedError("failed to update order status", err)
	}
	if !found {
		return nil, common.NewNotFoundError("Order")
	}

	if err := s.notificationSvc.Notify(ctx, merchantID, models.NotificationTypeOrder,
		fmt.Sprintf("Order #%d Status Updated", id),
		fmt.Sprintf("Order #%d is now %s", id, status),
	); err != nil {
		log.Printf("WARN: failed to notify about order %d status: %v", id, err)
	}

	return s.GetOrder(ctx, merchantID, id)
}

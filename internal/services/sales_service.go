package services

import (
	"context"

	"kubramarket/internal/common"
	"kubramarket/internal/models"
	"kubramarket/internal/repositories"
)

const defaultRecentSalesLimit = 10

type SalesService interface {
	Summary(ctx context.Context, merchantID int64) (*models.SalesSummary, error)
	RecentOrders(ctx context.Context, merchantID int64, limit int) ([]models.Order, error)
}

type salesService struct {
	orderRepo repositories.OrderRepository
}

func NewSalesService(orderRepo repositories.OrderRepository) SalesService {
	return &salesService{orderRepo: orderRepo}
}

// Summary covers every order for the merchant with no status filter;
// cancelled orders are part of the totals.
func (s *salesService) Summary(ctx context.Context, merchantID int64) (*models.SalesSummary, error) {
	summary, err := s.orderRepo.SalesSummary(ctx, merchantID)
	if err != nil {
		return nil, common.NewUnexpectedError("failed to compute sales summary", err)
	}
	return summary, nil
}

func (s *salesService) RecentOrders(ctx context.Context, merchantID int64, limit int) ([]models.Order, error) {
	if limit <= 0 {
		limit = defaultRecentSalesLimit
	}
	orders, err := s.orderRepo.Recent(ctx, merchantID, limit)
	if err != nil {
		return nil, common.NewUnexpectedError("failed to list recent orders", err)
	}
	if orders == nil {
		orders = []models.Order{}
	}
	return orders, nil
}

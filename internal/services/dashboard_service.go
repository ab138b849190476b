package services

import (
	"context"
	"errors"
	"fmt"

	"kubramarket/internal/common"
	"kubramarket/internal/models"
	"kubramarket/internal/repositories"

	"github.com/jackc/pgx/v5"
)

const (
	dashboardRecentOrders = 5
)

type DashboardService interface {
	Stats(ctx context.Context, merchantID int64) (*models.DashboardStats, error)
}

type dashboardService struct {
	orderRepo   repositories.OrderRepository
	productRepo repositories.ProductRepository
	rentalRepo  repositories.RentalRepository
}

func NewDashboardService(orderRepo repositories.OrderRepository, productRepo repositories.ProductRepository, rentalRepo repositories.RentalRepository) DashboardService {
	return &dashboardService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		rentalRepo:  rentalRepo,
	}
}

// Stats builds the dashboard read model in one call: the five most recent
// orders, products under the default stock threshold, the next unpaid rental
// and derived alerts. The trend block carries fixed display values until
// historical comparisons exist.
func (s *dashboardService) Stats(ctx context.Context, merchantID int64) (*models.DashboardStats, error) {
	recent, err := s.orderRepo.Recent(ctx, merchantID, dashboardRecentOrders)
	if err != nil {
		return nil, common.NewUnexpectedError("failed to load recent orders", err)
	}
	if recent == nil {
		recent = []models.Order{}
	}

	lowStock, err := s.productRepo.LowStock(ctx, merchantID, models.DefaultLowStockThreshold)
	if err != nil {
		return nil, common.NewUnexpectedError("failed to load low-stock products", err)
	}

	var upcoming *models.Rental
	rental, err := s.rentalRepo.Current(ctx, merchantID)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, common.NewUnexpectedError("failed to load rental", err)
	}
	if err == nil {
		upcoming = rental
	}

	stats := &models.DashboardStats{
		RecentOrders:     recent,
		LowStockProducts: derefProducts(lowStock),
		UpcomingRental:   upcoming,
		Stats: models.DashboardTrends{
			OrdersChange:   models.TrendStat{Value: 15, Trend: "up"},
			RevenueChange:  models.TrendStat{Value: 23, Trend: "up"},
			ProductsChange: models.TrendStat{Value: 5, Trend: "down"},
		},
		Alerts: []models.DashboardAlert{},
	}

	// The low-stock alert is always present, zero count included.
	stats.Alerts = append(stats.Alerts, models.DashboardAlert{
		Type:    models.NotificationTypeSystem,
		Message: fmt.Sprintf("%d products are running low on stock", len(lowStock)),
	})
	if upcoming != nil {
		stats.Alerts = append(stats.Alerts, models.DashboardAlert{
			Type:    models.NotificationTypeRental,
			Message: fmt.Sprintf("Rental payment of %.2f due on %s", upcoming.Amount, upcoming.DueDate.Format("2006-01-02")),
		})
	}
	return stats, nil
}

func derefProducts(products []*models.Product) []models.Product {
	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		out = append(out, *p)
	}
	return out
}

package jobs

import (
	"context"
	"fmt"
	"log"
	"time"

	"kubramarket/internal/caching"
	"kubramarket/internal/models"
	"kubramarket/internal/repositories"
	"kubramarket/internal/services"
)

const (
	lowStockDedupTTL = 24 * time.Hour
	rentalDueWindow  = 3 // days
)

// AlertService produces the periodic notifications: low-stock warnings and
// rental-due reminders. It runs only on the scheduler, never on the request
// path.
type AlertService struct {
	productRepo     repositories.ProductRepository
	rentalRepo      repositories.RentalRepository
	notificationSvc services.NotificationService
	cacheSvc        caching.CacheService
}

func NewAlertService(productRepo repositories.ProductRepository, rentalRepo repositories.RentalRepository,
	notificationSvc services.NotificationService, cacheSvc caching.CacheService) *AlertService {
	return &AlertService{
		productRepo:     productRepo,
		rentalRepo:      rentalRepo,
		notificationSvc: notificationSvc,
		cacheSvc:        cacheSvc,
	}
}

// CheckLowStock creates one system notification per merchant whose catalog
// has products under the threshold. A redis marker suppresses repeats for a
// day so the half-hourly scan does not spam.
func (a *AlertService) CheckLowStock(ctx context.Context, threshold int) error {
	if threshold <= 0 {
		threshold = models.DefaultLowStockThreshold
	}

	products, err := a.productRepo.LowStockAcrossMerchants(ctx, threshold)
	if err != nil {
		log.Printf("Failed to scan for low stock: %v", err)
		return err
	}

	counts := make(map[int64]int)
	for _, product := range products {
		counts[product.MerchantID]++
	}

	for merchantID, count := range counts {
		dedupKey := fmt.Sprintf("kubra:lowstockalert:%d", merchantID)
		marker, err := a.cacheSvc.GetString(ctx, dedupKey)
		if err != nil {
			log.Printf("Failed to check low-stock marker for merchant %d: %v", merchantID, err)
			continue
		}
		if marker != "" {
			continue
		}

		if err := a.notificationSvc.Notify(ctx, merchantID, models.NotificationTypeSystem,
			"Low Stock Warning",
			fmt.Sprintf("%d products are below %d units of stock", count, threshold),
		); err != nil {
			log.Printf("Failed to create low-stock notification for merchant %d: %v", merchantID, err)
			continue
		}
		if err := a.cacheSvc.SetString(ctx, dedupKey, "sent", lowStockDedupTTL); err != nil {
			log.Printf("Failed to set low-stock marker for merchant %d: %v", merchantID, err)
		}
	}
	return nil
}

// RemindRentalsDue notifies merchants whose unpaid rental comes due within
// the reminder window.
func (a *AlertService) RemindRentalsDue(ctx context.Context) error {
	rentals, err := a.rentalRepo.DueWithinDays(ctx, rentalDueWindow)
	if err != nil {
		log.Printf("Failed to scan for due rentals: %v", err)
		return err
	}

	for _, rental := range rentals {
		if err := a.notificationSvc.Notify(ctx, rental.MerchantID, models.NotificationTypeRental,
			"Rental Payment Due",
			fmt.Sprintf("Rental payment of %.2f is due on %s", rental.Amount, rental.DueDate.Format("2006-01-02")),
		); err != nil {
			log.Printf("Failed to create rental reminder for merchant %d: %v", rental.MerchantID, err)
		}
	}
	return nil
}

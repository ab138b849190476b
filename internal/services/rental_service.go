package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"kubramarket/internal/common"
	"kubramarket/internal/models"
	"kubramarket/internal/repositories"

	"github.com/jackc/pgx/v5"
)

type RentalService interface {
	Current(ctx context.Context, merchantID int64) (*models.RentalView, error)
	Pay(ctx context.Context, merchantID, rentalID int64) (*models.Rental, error)
}

type rentalService struct {
	rentalRepo      repositories.RentalRepository
	shopRepo        repositories.ShopRepository
	notificationSvc NotificationService
}

func NewRentalService(rentalRepo repositories.RentalRepository, shopRepo repositories.ShopRepository, notificationSvc NotificationService) RentalService {
	return &rentalService{
		rentalRepo:      rentalRepo,
		shopRepo:        shopRepo,
		notificationSvc: notificationSvc,
	}
}

// Current returns the earliest unpaid rental with a future due date, enriched
// with the shop name when a shop exists.
func (s *rentalService) Current(ctx context.Context, merchantID int64) (*models.RentalView, error) {
	rental, err := s.rentalRepo.Current(ctx, merchantID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, common.NewNotFoundError("Rental")
	}
	if err != nil {
		return nil, common.NewUnexpectedError("failed to load rental", err)
	}

	view := &models.RentalView{Rental: *rental}
	shop, err := s.shopRepo.GetByMerchant(ctx, merchantID)
	if err == nil {
		view.ShopName = shop.Name
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, common.NewUnexpectedError("failed to load shop", err)
	}
	return view, nil
}

// Pay settles the rental exactly once; a second payment attempt is rejected
// without side effects, and only a successful payment emits a notification.
func (s *rentalService) Pay(ctx context.Context, merchantID, rentalID int64) (*models.Rental, error) {
	rental, err := s.rentalRepo.MarkPaid(ctx, merchantID, rentalID)
	if err != nil {
		if common.KindOf(err) != common.KindUnexpected {
			return nil, err
		}
		return nil, common.NewUnexpectedError("failed to pay rental", err)
	}

	if err := s.notificationSvc.Notify(ctx, merchantID, models.NotificationTypeRental,
		"Rental Payment Successful",
		fmt.Sprintf("Rental payment of %.2f received", rental.Amount),
	); err != nil {
		log.Printf("WARN: failed to notify about rental %d payment: %v", rentalID, err)
	}
	return rental, nil
}

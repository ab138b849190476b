package services

import (
	"context"
	"errors"

	"kubramarket/internal/common"
	"kubramarket/internal/models"
	"kubramarket/internal/repositories"

	"github.com/jackc/pgx/v5"
)

type ShopService interface {
	Get(ctx context.Context, merchantID int64) (*models.Shop, error)
	Create(ctx context.Context, merchantID int64, req *models.CreateShopRequest) (*models.Shop, error)
	Update(ctx context.Context, merchantID int64, req *models.UpdateShopRequest) (*models.Shop, error)
}

type shopService struct {
	shopRepo repositories.ShopRepository
}

func NewShopService(shopRepo repositories.ShopRepository) ShopService {
	return &shopService{shopRepo: shopRepo}
}

func (s *shopService) Get(ctx context.Context, merchantID int64) (*models.Shop, error) {
	shop, err := s.shopRepo.GetByMerchant(ctx, merchantID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, common.NewNotFoundError("Shop")
	}
	if err != nil {
		return nil, common.NewUnexpectedError("failed to load shop", err)
	}
	return shop, nil
}

func (s *shopService) Create(ctx context.Context, merchantID int64, req *models.CreateShopRequest) (*models.Shop, error) {
	if err := common.ValidateRequiredString(req.Name, "name"); err != nil {
		return nil, common.NewFieldValidationError("name", err.Error())
	}

	existing, err := s.shopRepo.GetByMerchant(ctx, merchantID)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, common.NewUnexpectedError("failed to check shop", err)
	}
	if existing != nil {
		return nil, common.NewValidationError("merchant already has a shop")
	}

	shop := &models.Shop{
		MerchantID: merchantID,
		Name:       req.Name,
		Phone:      req.Phone,
		Address:    req.Address,
		BannerURL:  req.BannerURL,
		LogoURL:    req.LogoURL,
	}
	if err := s.shopRepo.Create(ctx, shop); err != nil {
		return nil, common.NewUnexpectedError("failed to create shop", err)
	}
	return shop, nil
}

// Update applies only the fields present in the request onto the stored shop.
func (s *shopService) Update(ctx context.Context, merchantID int64, req *models.UpdateShopRequest) (*models.Shop, error) {
	shop, err := s.Get(ctx, merchantID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if err := common.ValidateRequiredString(*req.Name, "name"); err != nil {
			return nil, common.NewFieldValidationError("name", err.Error())
		}
		shop.Name = *req.Name
	}
	if req.Phone != nil {
		shop.Phone = req.Phone
	}
	if req.Address != nil {
		shop.Address = req.Address
	}
	if req.BannerURL != nil {
		shop.BannerURL = req.BannerURL
	}
	if req.LogoURL != nil {
		shop.LogoURL = req.LogoURL
	}

	if err := s.shopRepo.Update(ctx, shop); err != nil {
		return nil, common.NewUnexpectedError("failed to update shop", err)
	}
	return shop, nil
}

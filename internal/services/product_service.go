package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"path"
	"time"

	"kubramarket/internal/caching"
	"kubramarket/internal/common"
	"kubramarket/internal/models"
	"kubramarket/internal/repositories"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const (
	productCacheTTL  = 5 * time.Minute
	productImageTTL  = time.Hour
	maxProductPrice  = 10000000.00
	productBucket    = "product-images"
	maxImageSizeByte = 5 << 20
)

type ProductService interface {
	Create(ctx context.Context, merchantID int64, req *models.CreateProductRequest) (*models.Product, error)
	GetByID(ctx context.Context, merchantID, id int64) (*models.Product, error)
	List(ctx context.Context, merchantID int64) ([]*models.Product, error)
	Update(ctx context.Context, merchantID, id int64, req *models.UpdateProductRequest) (*models.Product, error)
	Delete(ctx context.Context, merchantID, id int64) error
	LowStock(ctx context.Context, merchantID int64, threshold int) ([]*models.Product, error)
	UploadImage(ctx context.Context, merchantID, id int64, filename, contentType string, reader io.Reader, size int64) (*models.Product, error)
	ImageURL(ctx context.Context, merchantID, id int64) (string, error)
}

type productService struct {
	productRepo repositories.ProductRepository
	shopRepo    repositories.ShopRepository
	cacheSvc    caching.CacheService
	minioSvc    MinioService
}

func NewProductService(productRepo repositories.ProductRepository, shopRepo repositories.ShopRepository, cacheSvc caching.CacheService, minioSvc MinioService) ProductService {
	return &productService{
		productRepo: productRepo,
		shopRepo:    shopRepo,
		cacheSvc:    cacheSvc,
		minioSvc:    minioSvc,
	}
}

func (s *productService) Create(ctx context.Context, merchantID int64, req *models.CreateProductRequest) (*models.Product, error) {
	if err := common.ValidateRequiredString(req.Name, "name"); err != nil {
		return nil, common.NewFieldValidationError("name", err.Error())
	}
	if err := common.ValidatePositiveFloat(req.Price, "price", maxProductPrice); err != nil {
		return nil, common.NewFieldValidationError("price", err.Error())
	}
	if req.Stock < 0 {
		return nil, common.NewFieldValidationError("stock", "stock cannot be negative")
	}

	shop, err := s.shopRepo.GetByMerchant(ctx, merchantID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, common.NewValidationError("merchant has no shop to list products under")
	}
	if err != nil {
		return nil, common.NewUnexpectedError("failed to load shop", err)
	}

	product := &models.Product{
		MerchantID:  merchantID,
		ShopID:      shop.ID,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		Category:    req.Category,
	}
	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, common.NewUnexpectedError("failed to create product", err)
	}
	return product, nil
}

// getOwned loads a product by id and verifies the session merchant owns it:
// missing rows are 404, someone else's rows are 403.
func (s *productService) getOwned(ctx context.Context, merchantID, id int64) (*models.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, common.NewNotFoundError("Product")
	}
	if err != nil {
		return nil, common.NewUnexpectedError("failed to load product", err)
	}
	if product.MerchantID != merchantID {
		return nil, common.NewAuthorizationError("product belongs to another merchant")
	}
	return product, nil
}

func (s *productService) GetByID(ctx context.Context, merchantID, id int64) (*models.Product, error) {
	// The cache key is merchant-scoped, so a hit already implies ownership.
	if cached, err := s.cacheSvc.GetProduct(ctx, merchantID, id); err == nil && cached != nil {
		return cached, nil
	}

	product, err := s.getOwned(ctx, merchantID, id)
	if err != nil {
		return nil, err
	}

	if err := s.cacheSvc.SetProduct(ctx, merchantID, product, productCacheTTL); err != nil {
		log.Printf("WARN: failed to cache product %d: %v", id, err)
	}
	return product, nil
}

func (s *productService) List(ctx context.Context, merchantID int64) ([]*models.Product, error) {
	products, err := s.productRepo.List(ctx, merchantID)
	if err != nil {
		return nil, common.NewUnexpectedError("failed to list products", err)
	}
	if products == nil {
		products = []*models.Product{}
	}
	return products, nil
}

// Update applies only the fields present in the request onto the stored
// product and invalidates its cache entry.
func (s *productService) Update(ctx context.Context, merchantID, id int64, req *models.UpdateProductRequest) (*models.Product, error) {
	product, err := s.getOwned(ctx, merchantID, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if err := common.ValidateRequiredString(*req.Name, "name"); err != nil {
			return nil, common.NewFieldValidationError("name", err.Error())
		}
		product.Name = *req.Name
	}
	if req.Description != nil {
		product.Description = req.Description
	}
	if req.Price != nil {
		if err := common.ValidatePositiveFloat(*req.Price, "price", maxProductPrice); err != nil {
			return nil, common.NewFieldValidationError("price", err.Error())
		}
		product.Price = *req.Price
	}
	if req.Stock != nil {
		if *req.Stock < 0 {
			return nil, common.NewFieldValidationError("stock", "stock cannot be negative")
		}
		product.Stock = *req.Stock
	}
	if req.Category != nil {
		product.Category = req.Category
	}
	if req.ImageURL != nil {
		product.ImageURL = req.ImageURL
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, common.NewUnexpectedError("failed to update product", err)
	}
	if err := s.cacheSvc.DeleteProduct(ctx, merchantID, id); err != nil {
		log.Printf("WARN: failed to invalidate product cache %d: %v", id, err)
	}
	return product, nil
}

func (s *productService) Delete(ctx context.Context, merchantID, id int64) error {
	if _, err := s.getOwned(ctx, merchantID, id); err != nil {
		return err
	}
	deleted, err := s.productRepo.Delete(ctx, id)
	if err != nil {
		return common.NewUnexpectedError("failed to delete product", err)
	}
	if !deleted {
		return common.NewNotFoundError("Product")
	}
	if err := s.cacheSvc.DeleteProduct(ctx, merchantID, id); err != nil {
		log.Printf("WARN: failed to invalidate product cache %d: %v", id, err)
	}
	return nil
}

func (s *productService) LowStock(ctx context.Context, merchantID int64, threshold int) ([]*models.Product, error) {
	if threshold <= 0 {
		threshold = models.DefaultLowStockThreshold
	}
	products, err := s.productRepo.LowStock(ctx, merchantID, threshold)
	if err != nil {
		return nil, common.NewUnexpectedError("failed to list low-stock products", err)
	}
	if products == nil {
		products = []*models.Product{}
	}
	return products, nil
}

// UploadImage stores the file in the product image bucket and records the
// object name on the product; the persisted imageUrl is the object name, not
// a presigned URL.
func (s *productService) UploadImage(ctx context.Context, merchantID, id int64, filename, contentType string, reader io.Reader, size int64) (*models.Product, error) {
	if size <= 0 || size > maxImageSizeByte {
		return nil, common.NewFieldValidationError("image", "image must be between 1 byte and 5 MB")
	}

	product, err := s.getOwned(ctx, merchantID, id)
	if err != nil {
		return nil, err
	}

	objectName := fmt.Sprintf("%d/%d-%s%s", merchantID, id, uuid.NewString(), path.Ext(filename))
	if err := s.minioSvc.UploadImage(ctx, productBucket, objectName, contentType, reader, size); err != nil {
		return nil, common.NewUnexpectedError("failed to upload image", err)
	}

	product.ImageURL = &objectName
	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, common.NewUnexpectedError("failed to save image reference", err)
	}
	if err := s.cacheSvc.DeleteProduct(ctx, merchantID, id); err != nil {
		log.Printf("WARN: failed to invalidate product cache %d: %v", id, err)
	}
	return product, nil
}

func (s *productService) ImageURL(ctx context.Context, merchantID, id int64) (string, error) {
	product, err := s.GetByID(ctx, merchantID, id)
	if err != nil {
		return "", err
	}
	if product.ImageURL == nil || *product.ImageURL == "" {
		return "", common.NewNotFoundError("Product image")
	}
	url, err := s.minioSvc.GetPresignedURL(ctx, productBucket, *product.ImageURL, productImageTTL)
	if err != nil {
		return "", common.NewUnexpectedError("failed to presign image URL", err)
	}
	return url, nil
}

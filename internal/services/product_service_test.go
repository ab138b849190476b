package services

import (
	"context"
	"testing"

	"kubramarket/internal/common"
	"kubramarket/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type ProductServiceTestSuite struct {
	suite.Suite
	mockProductRepo  *MockProductRepository
	mockShopRepo     *MockShopRepository
	mockCacheSvc     *MockCacheService
	mockMinioService *MockMinioService
	service          ProductService
	merchantID       int64
}

func (suite *ProductServiceTestSuite) SetupTest() {
	suite.mockProductRepo = &MockProductRepository{}
	suite.mockShopRepo = &MockShopRepository{}
	suite.mockCacheSvc = &MockCacheService{}
	suite.mockMinioService = &MockMinioService{}
	suite.service = NewProductService(suite.mockProductRepo, suite.mockShopRepo, suite.mockCacheSvc, suite.mockMinioService)
	suite.merchantID = 4
}

func (suite *ProductServiceTestSuite) TearDownTest() {
	suite.mockProductRepo.AssertExpectations(suite.T())
	suite.mockShopRepo.AssertExpectations(suite.T())
	suite.mockCacheSvc.AssertExpectations(suite.T())
	suite.mockMinioService.AssertExpectations(suite.T())
}

func TestProductServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ProductServiceTestSuite))
}

func (suite *ProductServiceTestSuite) TestCreate_Success() {
	req := &models.CreateProductRequest{Name: "Basmati Rice 5kg", Price: 540, Stock: 20}
	shop := &models.Shop{ID: 2, MerchantID: suite.merchantID, Name: "Asha Stores"}

	suite.mockShopRepo.On("GetByMerchant", mock.Anything, suite.merchantID).
		Return(shop, nil).Once()
	suite.mockProductRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.Product")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*models.Product).ID = 12
		}).Return(nil).Once()

	product, err := suite.service.Create(context.Background(), suite.merchantID, req)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(12), product.ID)
	assert.Equal(suite.T(), suite.merchantID, product.MerchantID)
	assert.Equal(suite.T(), int64(2), product.ShopID)
}

func (suite *ProductServiceTestSuite) TestCreate_WithoutShop() {
	req := &models.CreateProductRequest{Name: "Basmati Rice 5kg", Price: 540, Stock: 20}

	suite.mockShopRepo.On("GetByMerchant", mock.Anything, suite.merchantID).
		Return(nil, pgx.ErrNoRows).Once()

	_, err := suite.service.Create(context.Background(), suite.merchantID, req)

	assert.Error(suite.T(), err)
	assert.Equal(suite.T(), common.KindValidation, common.KindOf(err))
	suite.mockProductRepo.AssertNotCalled(suite.T(), "Create", mock.Anything, mock.Anything)
}

func (suite *ProductServiceTestSuite) TestCreate_NameRequired() {
	req := &models.CreateProductRequest{Price: 540, Stock: 20}

	_, err := suite.service.Create(context.Background(), suite.merchantID, req)

	assert.Error(suite.T(), err)
	assert.Equal(suite.T(), common.KindValidation, common.KindOf(err))
}

func (suite *ProductServiceTestSuite) TestCreate_NonPositivePrice() {
	req := &models.CreateProductRequest{Name: "Basmati Rice 5kg", Price: 0, Stock: 20}

	_, err := suite.service.Create(context.Background(), suite.merchantID, req)

	assert.Error(suite.T(), err)
	assert.Equal(suite.T(), common.KindValidation, common.KindOf(err))
}

func (suite *ProductServiceTestSuite) TestCreate_NegativeStock() {
	req := &models.CreateProductRequest{Name: "Basmati Rice 5kg", Price: 540, Stock: -1}

	_, err := suite.service.Create(context.Background(), suite.merchantID, req)

	assert.Error(suite.T(), err)
	assert.Equal(suite.T(), common.KindValidation, common.KindOf(err))
}

func (suite *ProductServiceTestSuite) TestGetByID_CacheHit() {
	cached := &models.Product{ID: 12, MerchantID: suite.merchantID, Name: "Basmati Rice 5kg"}

	suite.mockCacheSvc.On("GetProduct", mock.Anything, suite.merchantID, int64(12)).
		Return(cached, nil).Once()

	product, err := suite.service.GetByID(context.Background(), suite.merchantID, 12)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), cached, product)
	suite.mockProductRepo.AssertNotCalled(suite.T(), "GetByID", mock.Anything, mock.Anything)
}

func (suite *ProductServiceTestSuite) TestGetByID_CacheMissFillsCache() {
	stored := &models.Product{ID: 12, MerchantID: suite.merchantID, Name: "Basmati Rice 5kg"}

	suite.mockCacheSvc.On("GetProduct", mock.Anything, suite.merchantID, int64(12)).
		Return(nil, nil).Once()
	suite.mockProductRepo.On("GetByID", mock.Anything, int64(12)).
		Return(stored, nil).Once()
	suite.mockCacheSvc.On("SetProduct", mock.Anything, suite.merchantID, stored, productCacheTTL).
		Return(nil).Once()

	product, err := suite.service.GetByID(context.Background(), suite.merchantID, 12)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), stored, product)
}

func (suite *ProductServiceTestSuite) TestGetByID_NotFound() {
	suite.mockCacheSvc.On("GetProduct", mock.Anything, suite.merchantID, int64(99)).
		Return(nil, nil).Once()
	suite.mockProductRepo.On("GetByID", mock.Anything, int64(99)).
		Return(nil, pgx.ErrNoRows).Once()

	_, err := suite.service.GetByID(context.Background(), suite.merchantID, 99)

	assert.Error(suite.T(), err)
	assert.Equal(suite.T(), common.KindNotFound, common.KindOf(err))
}

func (suite *ProductServiceTestSuite) TestGetByID_ForeignProductForbidden() {
	foreign := &models.Product{ID: 12, MerchantID: 999, Name: "Basmati Rice 5kg"}

	suite.mockCacheSvc.On("GetProduct", mock.Anything, suite.merchantID, int64(12)).
		Return(nil, nil).Once()
	suite.mockProductRepo.On("GetByID", mock.Anything, int64(12)).
		Return(foreign, nil).Once()

	_, err := suite.service.GetByID(context.Background(), suite.merchantID, 12)

	assert.Error(suite.T(), err)
	assert.Equal(suite.T(), common.KindAuthorization, common.KindOf(err))
	suite.mockCacheSvc.AssertNotCalled(suite.T(), "SetProduct",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ProductServiceTestSuite) TestUpdate_PartialFieldsInvalidateCache() {
	stored := &models.Product{ID: 12, MerchantID: suite.merchantID, Name: "Basmati Rice 5kg", Price: 540, Stock: 20}
	newStock := 35

	suite.mockProductRepo.On("GetByID", mock.Anything, int64(12)).
		Return(stored, nil).Once()
	suite.mockProductRepo.On("Update", mock.Anything, mock.AnythingOfType("*models.Product")).
		Return(nil).Once()
	suite.mockCacheSvc.On("DeleteProduct", mock.Anything, suite.merchantID, int64(12)).
		Return(nil).Once()

	product, err := suite.service.Update(context.Background(), suite.merchantID, 12, &models.UpdateProductRequest{Stock: &newStock})

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 35, product.Stock)
	assert.Equal(suite.T(), "Basmati Rice 5kg", product.Name)
	assert.Equal(suite.T(), 540.0, product.Price)
}

func (suite *ProductServiceTestSuite) TestUpdate_ForeignProductForbidden() {
	foreign := &models.Product{ID: 12, MerchantID: 999, Name: "Basmati Rice 5kg"}
	newStock := 35

	suite.mockProductRepo.On("GetByID", mock.Anything, int64(12)).
		Return(foreign, nil).Once()

	_, err := suite.service.Update(context.Background(), suite.merchantID, 12, &models.UpdateProductRequest{Stock: &newStock})

	assert.Error(suite.T(), err)
	assert.Equal(suite.T(), common.KindAuthorization, common.KindOf(err))
	suite.mockProductRepo.AssertNotCalled(suite.T(), "Update", mock.Anything, mock.Anything)
}

func (suite *ProductServiceTestSuite) TestDelete_Success() {
	stored := &models.Product{ID: 12, MerchantID: suite.merchantID, Name: "Basmati Rice 5kg"}

	suite.mockProductRepo.On("GetByID", mock.Anything, int64(12)).
		Return(stored, nil).Once()
	suite.mockProductRepo.On("Delete", mock.Anything, int64(12)).
		Return(true, nil).Once()
	suite.mockCacheSvc.On("DeleteProduct", mock.Anything, suite.merchantID, int64(12)).
		Return(nil).Once()

	err := suite.service.Delete(context.Background(), suite.merchantID, 12)

	assert.NoError(suite.T(), err)
}

func (suite *ProductServiceTestSuite) TestDelete_NotFound() {
	suite.mockProductRepo.On("GetByID", mock.Anything, int64(99)).
		Return(nil, pgx.ErrNoRows).Once()

	err := suite.service.Delete(context.Background(), suite.merchantID, 99)

	assert.Error(suite.T(), err)
	assert.Equal(suite.T(), common.KindNotFound, common.KindOf(err))
	suite.mockProductRepo.AssertNotCalled(suite.T(), "Delete", mock.Anything, mock.Anything)
}

func (suite *ProductServiceTestSuite) TestDelete_ForeignProductForbidden() {
	foreign := &models.Product{ID: 12, MerchantID: 999, Name: "Basmati Rice 5kg"}

	suite.mockProductRepo.On("GetByID", mock.Anything, int64(12)).
		Return(foreign, nil).Once()

	err := suite.service.Delete(context.Background(), suite.merchantID, 12)

	assert.Error(suite.T(), err)
	assert.Equal(suite.T(), common.KindAuthorization, common.KindOf(err))
	suite.mockProductRepo.AssertNotCalled(suite.T(), "Delete", mock.Anything, mock.Anything)
}

func (suite *ProductServiceTestSuite) TestLowStock_DefaultThreshold() {
	products := []*models.Product{{ID: 1, Stock: 2}}

	suite.mockProductRepo.On("LowStock", mock.Anything, suite.merchantID, models.DefaultLowStockThreshold).
		Return(products, nil).Once()

	result, err := suite.service.LowStock(context.Background(), suite.merchantID, 0)

	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), result, 1)
}

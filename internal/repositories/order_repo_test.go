package repositories

import (
	"context"
	"testing"
	"time"

	"kubramarket/internal/common"
	"kubramarket/internal/models"

	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type OrderRepoTestSuite struct {
	suite.Suite
	mock       pgxmock.PgxPoolIface
	repo       OrderRepository
	merchantID int64
	ctx        context.Context
}

func (suite *OrderRepoTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	assert.NoError(suite.T(), err)
	suite.mock = mock

	suite.repo = NewOrderRepo(mock)
	suite.merchantID = 7
	suite.ctx = context.Background()
}

func (suite *OrderRepoTestSuite) TearDownTest() {
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
	suite.mock.Close()
}

func TestOrderRepoTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepoTestSuite))
}

func (suite *OrderRepoTestSuite) TestCreateWithItems_Success() {
	now := time.Now()
	order := &models.Order{
		MerchantID:   suite.merchantID,
		CustomerName: "Asha Verma",
		Status:       models.OrderStatusNew,
	}
	lines := []models.OrderLine{{ProductID: 3, Quantity: 2}}

	suite.mock.ExpectBegin()
	suite.mock.ExpectQuery(`SELECT merchant_id, price, stock FROM products WHERE id = \$1 FOR UPDATE`).
		WithArgs(int64(3)).
		WillReturnRows(pgxmock.NewRows([]string{"merchant_id", "price", "stock"}).
			AddRow(suite.merchantID, 50.0, 5))
	suite.mock.ExpectQuery(`INSERT INTO customers`).
		WithArgs("Asha Verma", (*string)(nil), (*string)(nil)).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(17)))
	suite.mock.ExpectQuery(`INSERT INTO orders`).
		WithArgs(suite.merchantID, int64(17), "Asha Verma", (*string)(nil), (*string)(nil),
			models.OrderStatusNew, 100.0, (*string)(nil), false).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at", "updated_at"}).
			AddRow(int64(42), now, now))
	suite.mock.ExpectQuery(`INSERT INTO order_items`).
		WithArgs(int64(42), int64(3), 2, 50.0).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).
			AddRow(int64(1), now))
	suite.mock.ExpectExec(`UPDATE products SET stock = stock - \$1`).
		WithArgs(2, int64(3)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	suite.mock.ExpectCommit()
	suite.mock.ExpectRollback() // deferred rollback after commit is a no-op

	err := suite.repo.CreateWithItems(suite.ctx, order, lines)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(42), order.ID)
	assert.Equal(suite.T(), int64(17), order.CustomerID)
	assert.Equal(suite.T(), 100.0, order.TotalAmount)
	assert.Len(suite.T(), order.Items, 1)
	assert.Equal(suite.T(), 50.0, order.Items[0].Price)
}

func (suite *OrderRepoTestSuite) TestCreateWithItems_InsufficientStockRollsBack() {
	order := &models.Order{MerchantID: suite.merchantID, CustomerName: "Asha Verma"}
	lines := []models.OrderLine{{ProductID: 3, Quantity: 4}}

	suite.mock.ExpectBegin()
	suite.mock.ExpectQuery(`SELECT merchant_id, price, stock FROM products WHERE id = \$1 FOR UPDATE`).
		WithArgs(int64(3)).
		WillReturnRows(pgxmock.NewRows([]string{"merchant_id", "price", "stock"}).
			AddRow(suite.merchantID, 50.0, 3))
	suite.mock.ExpectRollback()

	err := suite.repo.CreateWithItems(suite.ctx, order, lines)

	assert.Error(suite.T(), err)
	assert.Equal(suite.T(), common.KindValidation, common.KindOf(err))
	assert.Contains(suite.T(), err.Error(), "insufficient stock")
	assert.Zero(suite.T(), order.ID)
}

func (suite *OrderRepoTestSuite) TestCreateWithItems_MissingProduct() {
	order := &models.Order{MerchantID: suite.merchantID, CustomerName: "Asha Verma"}
	lines := []models.OrderLine{{ProductID: 99, Quantity: 1}}

	suite.mock.ExpectBegin()
	suite.mock.ExpectQuery(`SELECT merchant_id, price, stock FROM products WHERE id = \$1 FOR UPDATE`).
		WithArgs(int64(99)).
		WillReturnRows(pgxmock.NewRows([]string{"merchant_id", "price", "stock"}))
	suite.mock.ExpectRollback()

	err := suite.repo.CreateWithItems(suite.ctx, order, lines)

	assert.Error(suite.T(), err)
	assert.Equal(suite.T(), common.KindNotFound, common.KindOf(err))
}

func (suite *OrderRepoTestSuite) TestCreateWithItems_ForeignProductReadsAsUnavailable() {
	order := &models.Order{MerchantID: suite.merchantID, CustomerName: "Asha Verma"}
	lines := []models.OrderLine{{ProductID: 3, Quantity: 1}}

	suite.mock.ExpectBegin()
	suite.mock.ExpectQuery(`SELECT merchant_id, price, stock FROM products WHERE id = \$1 FOR UPDATE`).
		WithArgs(int64(3)).
		WillReturnRows(pgxmock.NewRows([]string{"merchant_id", "price", "stock"}).
			AddRow(int64(999), 50.0, 5))
	suite.mock.ExpectRollback()

	err := suite.repo.CreateWithItems(suite.ctx, order, lines)

	assert.Error(suite.T(), err)
	assert.Equal(suite.T(), common.KindValidation, common.KindOf(err))
	assert.Contains(suite.T(), err.Error(), "unavailable")
	assert.NotContains(suite.T(), err.Error(), "merchant")
}

func (suite *OrderRepoTestSuite) TestCreateWithItems_SecondItemFailureWritesNothing() {
	// First product locks fine; the second is short on stock. The whole
	// placement rolls back, first product's stock included.
	order := &models.Order{MerchantID: suite.merchantID, CustomerName: "Asha Verma"}
	lines := []models.OrderLine{
		{ProductID: 1, Quantity: 1},
		{ProductID: 2, Quantity: 10},
	}

	suite.mock.ExpectBegin()
	suite.mock.ExpectQuery(`SELECT merchant_id, price, stock FROM products WHERE id = \$1 FOR UPDATE`).
		WithArgs(int64(1)).
		WillReturnRows(pgxmock.NewRows([]string{"merchant_id", "price", "stock"}).
			AddRow(suite.merchantID, 20.0, 5))
	suite.mock.ExpectQuery(`SELECT merchant_id, price, stock FROM products WHERE id = \$1 FOR UPDATE`).
		WithArgs(int64(2)).
		WillReturnRows(pgxmock.NewRows([]string{"merchant_id", "price", "stock"}).
			AddRow(suite.merchantID, 30.0, 2))
	suite.mock.ExpectRollback()

	err := suite.repo.CreateWithItems(suite.ctx, order, lines)

	assert.Error(suite.T(), err)
	assert.Equal(suite.T(), common.KindValidation, common.KindOf(err))
	assert.Zero(suite.T(), order.ID)
}

func (suite *OrderRepoTestSuite) TestCreateWithItems_DuplicateProductRejectedBeforeTx() {
	order := &models.Order{MerchantID: suite.merchantID, CustomerName: "Asha Verma"}
	lines := []models.OrderLine{
		{ProductID: 3, Quantity: 1},
		{ProductID: 3, Quantity: 2},
	}

	err := suite.repo.CreateWithItems(suite.ctx, order, lines)

	assert.Error(suite.T(), err)
	assert.Equal(suite.T(), common.KindValidation, common.KindOf(err))
}

func (suite *OrderRepoTestSuite) TestList_SecondPageWithTotal() {
	now := time.Now()
	suite.mock.ExpectQuery(`SELECT COUNT\(\*\) FROM orders WHERE merchant_id = \$1`).
		WithArgs(suite.merchantID).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(7))

	rows := pgxmock.NewRows([]string{"id", "merchant_id", "customer_id", "customer_name", "customer_phone", "customer_address", "status", "total_amount", "payment_method", "is_paid", "created_at", "updated_at"}).
		AddRow(int64(2), suite.merchantID, int64(12), "B", (*string)(nil), (*string)(nil), models.OrderStatusNew, 20.0, (*string)(nil), false, now, now).
		AddRow(int64(1), suite.merchantID, int64(11), "A", (*string)(nil), (*string)(nil), models.OrderStatusNew, 10.0, (*string)(nil), false, now, now)
	suite.mock.ExpectQuery(`FROM orders\s+WHERE merchant_id = \$1\s+ORDER BY created_at DESC\s+LIMIT \$2 OFFSET \$3`).
		WithArgs(suite.merchantID, 5, 5).
		WillReturnRows(rows)

	orders, total, err := suite.repo.List(suite.ctx, suite.merchantID, 2, 5)

	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), orders, 2)
	assert.Equal(suite.T(), 7, total)
}

func (suite *OrderRepoTestSuite) TestSalesSummary_NoOrdersYieldsZeros() {
	suite.mock.ExpectQuery(`COALESCE\(SUM\(total_amount\), 0\), COUNT\(\*\), COALESCE\(AVG\(total_amount\), 0\)`).
		WithArgs(suite.merchantID).
		WillReturnRows(pgxmock.NewRows([]string{"sum", "count", "avg"}).AddRow(0.0, 0, 0.0))

	summary, err := suite.repo.SalesSummary(suite.ctx, suite.merchantID)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 0.0, summary.TotalSale)
	assert.Equal(suite.T(), 0, summary.OrderCount)
	assert.Equal(suite.T(), 0.0, summary.AvgOrderValue)
}

func (suite *OrderRepoTestSuite) TestUpdateStatus_RowMatched() {
	suite.mock.ExpectExec(`UPDATE orders SET status = \$1, updated_at = NOW\(\) WHERE id = \$2`).
		WithArgs(models.OrderStatusDelivered, int64(9)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	found, err := suite.repo.UpdateStatus(suite.ctx, 9, models.OrderStatusDelivered)

	assert.NoError(suite.T(), err)
	assert.True(suite.T(), found)
}

func (suite *OrderRepoTestSuite) TestUpdateStatus_NoRow() {
	suite.mock.ExpectExec(`UPDATE orders SET status = \$1`).
		WithArgs(models.OrderStatusDelivered, int64(404)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	found, err := suite.repo.UpdateStatus(suite.ctx, 404, models.OrderStatusDelivered)

	assert.NoError(suite.T(), err)
	assert.False(suite.T(), found)
}

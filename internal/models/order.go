package models

import (
	"time"
)

type OrderStatus string

const (
	OrderStatusNew        OrderStatus = "new"
	OrderStatusAccepted   OrderStatus = "accepted"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

func ValidOrderStatus(s OrderStatus) bool {
	switch s {
	case OrderStatusNew, OrderStatusAccepted, OrderStatusProcessing,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// Order references the customer row written at placement time and also
// snapshots the contact fields; later edits to the customer never alter
// placed orders.
type Order struct {
	ID            int64       `json:"id" db:"id"`
	MerchantID    int64       `json:"merchantId" db:"merchant_id"`
	CustomerID    int64       `json:"customerId" db:"customer_id"`
	CustomerName  string      `json:"customerName" db:"customer_name"`
	CustomerPhone *string     `json:"customerPhone" db:"customer_phone"`
	CustomerAddr  *string     `json:"customerAddress" db:"customer_address"`
	Status        OrderStatus `json:"status" db:"status"`
	TotalAmount   float64     `json:"totalAmount" db:"total_amount"`
	PaymentMethod *string     `json:"paymentMethod" db:"payment_method"`
	IsPaid        bool        `json:"isPaid" db:"is_paid"`
	CreatedAt     time.Time   `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time   `json:"updatedAt" db:"updated_at"`

	Items []OrderItem `json:"items,omitempty" db:"-"`
}

// OrderLine is one requested line of a placement request.
type OrderLine struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

type PlaceOrderRequest struct {
	CustomerName  string      `json:"customerName"`
	CustomerPhone *string     `json:"customerPhone"`
	CustomerAddr  *string     `json:"customerAddress"`
	PaymentMethod *string     `json:"paymentMethod"`
	Items         []OrderLine `json:"items"`
}

type UpdateOrderStatusRequest struct {
	Status OrderStatus `json:"status"`
}

// OrderPage is the paginated order listing payload.
type OrderPage struct {
	Orders     []Order `json:"orders"`
	Total      int     `json:"total"`
	Page       int     `json:"page"`
	PageSize   int     `json:"pageSize"`
	TotalPages int     `json:"totalPages"`
}

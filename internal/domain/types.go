package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type ProductID string
type CustomerID string
type OrderID string

// Product is a catalog entry. UnitPrice is fixed once the product is added,
// Stock changes only through a successful order.
type Product struct {
	ID        ProductID       `json:"id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Stock     decimal.Decimal `json:"stock"`
}

type Customer struct {
	ID        CustomerID      `json:"id"`
	Name      string          `json:"name"`
	Email     string          `json:"email"`
	PassHash  string          `json:"-"`
	Credit    decimal.Decimal `json:"credit"`
	CreatedAt time.Time       `json:"created_at"`
	Orders    []Order         `json:"orders"`
}

// Order is a snapshot taken at purchase time. It does not reference the
// product, so renaming or repricing the product leaves history intact.
type Order struct {
	ID          OrderID         `json:"id"`
	CustomerID  CustomerID      `json:"customer_id"`
	CreatedAt   time.Time       `json:"created_at"`
	ProductName string          `json:"product_name"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    decimal.Decimal `json:"quantity"`
	Total       decimal.Decimal `json:"total"`
}

// Date is the calendar day the order was placed on.
func (o Order) Date() string { return o.CreatedAt.Format("2006-01-02") }

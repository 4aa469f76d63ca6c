package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	ErrProductNotFound      = errors.New("product not found")
	ErrOutOfStock           = errors.New("out of stock")
	ErrInsufficientCredit   = errors.New("insufficient credit")
	ErrInvalidQuantity      = errors.New("quantity must be positive")
	ErrDuplicateProduct     = errors.New("product already exists")
	ErrInvalidProduct       = errors.New("invalid product")
	ErrCustomerNotFound     = errors.New("customer not found")
	ErrDuplicateCustomer    = errors.New("customer already exists")
	ErrInvalidCustomer      = errors.New("invalid customer")
	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrInvalidAmount        = errors.New("amount must be positive")
)

// FailureKind tells which check of an order rejected it.
type FailureKind int

const (
	FailureProductNotFound FailureKind = iota + 1
	FailureOutOfStock
	FailureInsufficientCredit
	FailureInvalidQuantity
)

func (k FailureKind) String() string {
	switch k {
	case FailureProductNotFound:
		return "product_not_found"
	case FailureOutOfStock:
		return "out_of_stock"
	case FailureInsufficientCredit:
		return "insufficient_credit"
	case FailureInvalidQuantity:
		return "invalid_quantity"
	default:
		return fmt.Sprintf("FailureKind(%d)", int(k))
	}
}

func (k FailureKind) sentinel() error {
	switch k {
	case FailureProductNotFound:
		return ErrProductNotFound
	case FailureOutOfStock:
		return ErrOutOfStock
	case FailureInsufficientCredit:
		return ErrInsufficientCredit
	case FailureInvalidQuantity:
		return ErrInvalidQuantity
	default:
		return nil
	}
}

// OrderError is the outcome of a rejected order. It unwraps to the sentinel
// of its kind, so callers can use errors.Is(err, ErrOutOfStock) or pull the
// details out with errors.As.
//
// Requested and Available carry the quantities (OutOfStock) or the cost and
// the credit (InsufficientCredit). For InvalidQuantity, Requested is the
// rejected quantity when it is within InRange. Otherwise they are zero.
type OrderError struct {
	Kind      FailureKind
	Product   string
	Requested decimal.Decimal
	Available decimal.Decimal
}

func (e *OrderError) Error() string {
	switch e.Kind {
	case FailureOutOfStock:
		return fmt.Sprintf("%s: %q requested %s, in stock %s", e.Kind.sentinel(), e.Product, e.Requested, e.Available)
	case FailureInsufficientCredit:
		return fmt.Sprintf("%s: %q costs %s, credit %s", e.Kind.sentinel(), e.Product, e.Requested, e.Available)
	case FailureInvalidQuantity:
		return fmt.Sprintf("%s: got %s", e.Kind.sentinel(), e.Requested)
	default:
		if s := e.Kind.sentinel(); s != nil {
			return fmt.Sprintf("%s: %q", s, e.Product)
		}
		return "order rejected: " + e.Kind.String()
	}
}

func (e *OrderError) Unwrap() error { return e.Kind.sentinel() }

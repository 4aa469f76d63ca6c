package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderError_UnwrapsToKindSentinel(t *testing.T) {
	tests := []struct {
		kind FailureKind
		want error
	}{
		{FailureProductNotFound, ErrProductNotFound},
		{FailureOutOfStock, ErrOutOfStock},
		{FailureInsufficientCredit, ErrInsufficientCredit},
		{FailureInvalidQuantity, ErrInvalidQuantity},
	}
	for _, tc := range tests {
		t.Run(tc.kind.String(), func(t *testing.T) {
			err := fmt.Errorf("place order: %w", &OrderError{Kind: tc.kind, Product: "Laptop"})
			assert.ErrorIs(t, err, tc.want)

			var oe *OrderError
			require.True(t, errors.As(err, &oe))
			assert.Equal(t, tc.kind, oe.Kind)
		})
	}
}

func TestOrderError_KindsDoNotCrossMatch(t *testing.T) {
	err := &OrderError{Kind: FailureOutOfStock}
	assert.NotErrorIs(t, err, ErrInsufficientCredit)
	assert.NotErrorIs(t, err, ErrProductNotFound)
}

func TestOrderError_Message(t *testing.T) {
	err := &OrderError{
		Kind:      FailureOutOfStock,
		Product:   "Laptop",
		Requested: decimal.NewFromInt(3),
		Available: decimal.NewFromInt(2),
	}
	assert.Equal(t, `out of stock: "Laptop" requested 3, in stock 2`, err.Error())

	unknown := &OrderError{Kind: FailureKind(42)}
	assert.Equal(t, "order rejected: FailureKind(42)", unknown.Error())
	assert.NoError(t, errors.Unwrap(unknown))
}

func TestOrder_Date(t *testing.T) {
	o := Order{}
	assert.Equal(t, "0001-01-01", o.Date())
}

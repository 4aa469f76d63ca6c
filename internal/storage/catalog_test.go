package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vi13x/shop-lite-cli/internal/domain"
)

func product(name string, price, stock int64) domain.Product {
	return domain.Product{Name: name, UnitPrice: decimal.NewFromInt(price), Stock: decimal.NewFromInt(stock)}
}

func TestCatalog_AddAssignsIDAndTrimsName(t *testing.T) {
	c := NewCatalog()
	p, err := c.Add(product("  Laptop ", 45000, 140))
	require.NoError(t, err)
	assert.NotEmpty(t, p.ID)
	assert.Equal(t, "Laptop", p.Name)
	assert.Equal(t, 1, c.Len())
}

func TestCatalog_AddRejectsDuplicateNameIgnoringCase(t *testing.T) {
	c := NewCatalog()
	_, err := c.Add(product("Laptop", 45000, 140))
	require.NoError(t, err)

	_, err = c.Add(product("LAPTOP", 1, 1))
	assert.ErrorIs(t, err, domain.ErrDuplicateProduct)
	assert.Equal(t, 1, c.Len())
}

func TestCatalog_AddRejectsInvalidProducts(t *testing.T) {
	tests := []struct {
		name string
		p    domain.Product
	}{
		{"empty name", product("  ", 1, 1)},
		{"negative price", product("Dress", -1, 1)},
		{"negative stock", product("Dress", 1, -1)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := NewCatalog()
			_, err := c.Add(tc.p)
			assert.ErrorIs(t, err, domain.ErrInvalidProduct)
			assert.Zero(t, c.Len())
		})
	}
}

func TestCatalog_FindByNameIgnoresCase(t *testing.T) {
	c := NewCatalog()
	_, err := c.Add(product("Laptop", 45000, 140))
	require.NoError(t, err)

	for _, name := range []string{"laptop", "LAPTOP", " Laptop "} {
		p, err := c.FindByName(name)
		require.NoError(t, err, name)
		assert.Equal(t, "Laptop", p.Name)
	}

	_, err = c.FindByName("Tablet")
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestCatalog_FindByNameReturnsCopy(t *testing.T) {
	c := NewCatalog()
	_, err := c.Add(product("Laptop", 45000, 140))
	require.NoError(t, err)

	p, err := c.FindByName("laptop")
	require.NoError(t, err)
	p.Stock = decimal.Zero

	again, err := c.FindByName("laptop")
	require.NoError(t, err)
	assert.True(t, again.Stock.Equal(decimal.NewFromInt(140)))
}

func TestCatalog_ListKeepsInsertionOrder(t *testing.T) {
	c := NewCatalog()
	assert.Empty(t, c.List())
	assert.NotNil(t, c.List())

	for _, name := range []string{"Laptop", "Cycle", "Dress"} {
		_, err := c.Add(product(name, 1, 1))
		require.NoError(t, err)
	}
	var names []string
	for _, p := range c.List() {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"Laptop", "Cycle", "Dress"}, names)
}

func TestCatalog_Search(t *testing.T) {
	c := NewCatalog()
	for _, name := range []string{"Shirts", "T-Shirt", "Books"} {
		_, err := c.Add(product(name, 1, 1))
		require.NoError(t, err)
	}
	got := c.Search("SHIRT")
	require.Len(t, got, 2)
	assert.Equal(t, "Shirts", got[0].Name)
	assert.Equal(t, "T-Shirt", got[1].Name)
	assert.Empty(t, c.Search("tablet"))
}

func TestCatalog_WithProductKeepsChangesAndErrors(t *testing.T) {
	c := NewCatalog()
	_, err := c.Add(product("Laptop", 45000, 140))
	require.NoError(t, err)

	err = c.WithProduct(context.Background(), "laptop", func(p *domain.Product) error {
		p.Stock = p.Stock.Sub(decimal.NewFromInt(2))
		return nil
	})
	require.NoError(t, err)
	p, _ := c.FindByName("Laptop")
	assert.True(t, p.Stock.Equal(decimal.NewFromInt(138)))

	boom := errors.New("boom")
	err = c.WithProduct(context.Background(), "laptop", func(*domain.Product) error { return boom })
	assert.ErrorIs(t, err, boom)

	err = c.WithProduct(context.Background(), "tablet", func(*domain.Product) error {
		t.Fatal("fn must not run for a missing product")
		return nil
	})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestCatalog_WithProductHonoursCancelledContext(t *testing.T) {
	c := NewCatalog()
	_, err := c.Add(product("Laptop", 45000, 140))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	called := false
	err = c.WithProduct(ctx, "laptop", func(*domain.Product) error { called = true; return nil })
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/vi13x/shop-lite-cli/data"
	"github.com/vi13x/shop-lite-cli/internal/domain"
)

func (s *Shop) AddProduct(ctx context.Context, name string, price, stock decimal.Decimal) (*domain.Product, error) {
	p, err := s.catalog.Add(domain.Product{Name: name, UnitPrice: price, Stock: stock})
	if err != nil {
		return nil, err
	}
	s.log.InfoContext(ctx, "product added", "product", p.ID, "name", p.Name, "price", p.UnitPrice.String(), "stock", p.Stock.String())
	return p, nil
}

// TopUp raises a customer's credit. It is the only way credit goes up.
func (s *Shop) TopUp(ctx context.Context, id domain.CustomerID, amount decimal.Decimal) (*domain.Customer, error) {
	if !domain.InRange(amount) {
		return nil, fmt.Errorf("%w: out of range", domain.ErrInvalidAmount)
	}
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: got %s", domain.ErrInvalidAmount, amount)
	}
	err := s.ledger.WithCustomer(ctx, id, func(c *domain.Customer) error {
		c.Credit = c.Credit.Add(amount)
		return nil
	})
	if err != nil {
		return nil, err
	}
	c, err := s.ledger.Get(id)
	if err != nil {
		return nil, err
	}
	s.log.InfoContext(ctx, "credit topped up", "customer", id, "amount", amount.String(), "credit", c.Credit.String())
	return c, nil
}

func (s *Shop) Customers() []*domain.Customer { return s.ledger.List() }

func (s *Shop) CustomerByEmail(email string) (*domain.Customer, error) { return s.ledger.GetByEmail(email) }

// ExportSnapshot writes the whole catalog and ledger as JSON to outPath.
// Password hashes are left out.
func (s *Shop) ExportSnapshot(outPath string) (string, error) {
	snap := &data.Snapshot{TakenAt: s.now(), Products: s.catalog.List(), Customers: s.ledger.List()}
	if err := snap.Save(outPath); err != nil {
		return "", err
	}
	s.log.Info("snapshot exported", "path", outPath, "products", len(snap.Products), "customers", len(snap.Customers))
	return outPath, nil
}

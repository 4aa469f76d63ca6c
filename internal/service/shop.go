package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vi13x/shop-lite-cli/internal/domain"
	"github.com/vi13x/shop-lite-cli/internal/storage"
)

type Shop struct {
	catalog *storage.Catalog
	ledger  *storage.Ledger
	log     *slog.Logger
	now     func() time.Time
}

func NewShop(catalog *storage.Catalog, ledger *storage.Ledger, logger *slog.Logger) *Shop {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Shop{catalog: catalog, ledger: ledger, log: logger, now: time.Now}
}

func (s *Shop) Register(ctx context.Context, name, password, email string, credit decimal.Decimal) (*domain.Customer, error) {
	c, err := s.ledger.Register(ctx, name, password, email, credit)
	if err != nil {
		return nil, err
	}
	s.log.InfoContext(ctx, "customer registered", "customer", c.ID, "email", c.Email, "credit", c.Credit.String())
	return c, nil
}

func (s *Shop) Login(email, password string) (*domain.Customer, error) {
	return s.ledger.Authenticate(email, password)
}

// PlaceOrder buys quantity units of the named product for the customer.
//
// Stock and credit are both checked before either is touched, with the
// product and then the customer locked, so a rejected order changes nothing.
// Rejections are *domain.OrderError. Each successful call creates a new order.
func (s *Shop) PlaceOrder(ctx context.Context, cid domain.CustomerID, productName string, quantity decimal.Decimal) (*domain.Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !domain.InRange(quantity) {
		// never compared or formatted: the rescale alone could take minutes
		return nil, s.rejected(ctx, cid, &domain.OrderError{Kind: domain.FailureInvalidQuantity, Product: productName})
	}
	if !quantity.IsPositive() {
		return nil, s.rejected(ctx, cid, &domain.OrderError{
			Kind: domain.FailureInvalidQuantity, Product: productName, Requested: quantity,
		})
	}

	var order domain.Order
	err := s.catalog.WithProduct(ctx, productName, func(p *domain.Product) error {
		if p.Stock.LessThan(quantity) {
			return &domain.OrderError{
				Kind: domain.FailureOutOfStock, Product: p.Name, Requested: quantity, Available: p.Stock,
			}
		}
		cost := p.UnitPrice.Mul(quantity)
		return s.ledger.WithCustomer(ctx, cid, func(c *domain.Customer) error {
			if c.Credit.LessThan(cost) {
				return &domain.OrderError{
					Kind: domain.FailureInsufficientCredit, Product: p.Name, Requested: cost, Available: c.Credit,
				}
			}
			p.Stock = p.Stock.Sub(quantity)
			c.Credit = c.Credit.Sub(cost)
			order = domain.Order{
				ID:          domain.OrderID(uuid.NewString()),
				CustomerID:  c.ID,
				CreatedAt:   s.now(),
				ProductName: p.Name,
				UnitPrice:   p.UnitPrice,
				Quantity:    quantity,
				Total:       cost,
			}
			s.ledger.RecordOrder(c, order)
			return nil
		})
	})
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			err = &domain.OrderError{Kind: domain.FailureProductNotFound, Product: productName}
		}
		return nil, s.rejected(ctx, cid, err)
	}

	s.log.InfoContext(ctx, "order placed",
		"order", order.ID,
		"customer", cid,
		"product", order.ProductName,
		"quantity", order.Quantity.String(),
		"total", order.Total.String(),
	)
	return &order, nil
}

func (s *Shop) rejected(ctx context.Context, cid domain.CustomerID, err error) error {
	var oe *domain.OrderError
	if errors.As(err, &oe) {
		s.log.InfoContext(ctx, "order rejected", "customer", cid, "product", oe.Product, "kind", oe.Kind.String())
		return err
	}
	s.log.WarnContext(ctx, "order failed", "customer", cid, "error", err)
	return fmt.Errorf("place order: %w", err)
}

// Products lists the catalog. An empty catalog is an empty slice.
func (s *Shop) Products() []*domain.Product { return s.catalog.List() }

func (s *Shop) Search(query string) []*domain.Product { return s.catalog.Search(query) }

// Product looks one product up by name, for stock checks.
func (s *Shop) Product(name string) (*domain.Product, error) { return s.catalog.FindByName(name) }

func (s *Shop) Customer(id domain.CustomerID) (*domain.Customer, error) { return s.ledger.Get(id) }

func (s *Shop) Orders(id domain.CustomerID) ([]domain.Order, error) {
	c, err := s.ledger.Get(id)
	if err != nil {
		return nil, err
	}
	return c.Orders, nil
}

func (s *Shop) UpdateProfile(ctx context.Context, id domain.CustomerID, name, password string) (*domain.Customer, error) {
	c, err := s.ledger.UpdateProfile(ctx, id, name, password)
	if err != nil {
		return nil, err
	}
	s.log.InfoContext(ctx, "profile updated", "customer", id, "password_changed", password != "")
	return c, nil
}

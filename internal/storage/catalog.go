package storage

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/vi13x/shop-lite-cli/internal/domain"
)

type productRecord struct {
	mu sync.Mutex
	p  domain.Product
}

// Catalog keeps products in insertion order. The list is guarded by mu, each
// product's stock by its own record lock.
type Catalog struct {
	mu    sync.RWMutex
	items []*productRecord
}

func NewCatalog() *Catalog { return &Catalog{} }

func normalizeName(name string) string { return strings.ToLower(strings.TrimSpace(name)) }

// Add appends a product. Names are unique ignoring case.
func (c *Catalog) Add(p domain.Product) (*domain.Product, error) {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return nil, fmt.Errorf("%w: empty name", domain.ErrInvalidProduct)
	}
	if !domain.InRange(p.UnitPrice) || !domain.InRange(p.Stock) {
		return nil, fmt.Errorf("%w: price or stock out of range", domain.ErrInvalidProduct)
	}
	if p.UnitPrice.IsNegative() {
		return nil, fmt.Errorf("%w: negative price %s", domain.ErrInvalidProduct, p.UnitPrice)
	}
	if p.Stock.IsNegative() {
		return nil, fmt.Errorf("%w: negative stock %s", domain.ErrInvalidProduct, p.Stock)
	}
	if p.ID == "" {
		p.ID = domain.ProductID(uuid.NewString())
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.lookupLocked(p.Name) != nil {
		return nil, fmt.Errorf("%w: %q", domain.ErrDuplicateProduct, p.Name)
	}
	c.items = append(c.items, &productRecord{p: p})
	out := p
	return &out, nil
}

// lookupLocked returns the first record whose name matches. Names never change
// after Add, so reading them needs only the catalog lock.
func (c *Catalog) lookupLocked(name string) *productRecord {
	key := normalizeName(name)
	for _, r := range c.items {
		if normalizeName(r.p.Name) == key {
			return r
		}
	}
	return nil
}

func (c *Catalog) lookup(name string) (*productRecord, error) {
	c.mu.RLock()
	r := c.lookupLocked(name)
	c.mu.RUnlock()
	if r == nil {
		return nil, fmt.Errorf("%w: %q", domain.ErrProductNotFound, strings.TrimSpace(name))
	}
	return r, nil
}

func (r *productRecord) snapshot() *domain.Product {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.p
	return &out
}

// FindByName returns a copy of the product with the given name, ignoring case.
func (c *Catalog) FindByName(name string) (*domain.Product, error) {
	r, err := c.lookup(name)
	if err != nil {
		return nil, err
	}
	return r.snapshot(), nil
}

// WithProduct runs fn with the named product locked. Changes fn makes to the
// product are kept; fn must not change its name.
func (c *Catalog) WithProduct(ctx context.Context, name string, fn func(*domain.Product) error) error {
	r, err := c.lookup(name)
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}
	return fn(&r.p)
}

// List returns copies of all products. An empty catalog gives an empty slice.
func (c *Catalog) List() []*domain.Product {
	return c.filter(func(*domain.Product) bool { return true })
}

// Search returns the products whose name contains query, ignoring case.
func (c *Catalog) Search(query string) []*domain.Product {
	q := normalizeName(query)
	return c.filter(func(p *domain.Product) bool {
		return strings.Contains(strings.ToLower(p.Name), q)
	})
}

func (c *Catalog) filter(keep func(*domain.Product) bool) []*domain.Product {
	c.mu.RLock()
	records := make([]*productRecord, len(c.items))
	copy(records, c.items)
	c.mu.RUnlock()

	out := make([]*domain.Product, 0, len(records))
	for _, r := range records {
		if p := r.snapshot(); keep(p) {
			out = append(out, p)
		}
	}
	return out
}

func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

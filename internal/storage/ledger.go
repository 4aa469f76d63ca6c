package storage

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/vi13x/shop-lite-cli/internal/domain"
)

type customerRecord struct {
	mu sync.Mutex
	c  domain.Customer
}

// Ledger holds registered customers keyed by normalized email.
type Ledger struct {
	mu       sync.RWMutex
	byID     map[domain.CustomerID]*customerRecord
	byEmail  map[string]*customerRecord
	hashCost int
	now      func() time.Time
}

type LedgerOption func(*Ledger)

// WithHashCost sets the bcrypt cost used for new credentials.
func WithHashCost(cost int) LedgerOption {
	return func(l *Ledger) { l.hashCost = cost }
}

func NewLedger(opts ...LedgerOption) *Ledger {
	l := &Ledger{
		byID:     map[domain.CustomerID]*customerRecord{},
		byEmail:  map[string]*customerRecord{},
		hashCost: bcrypt.DefaultCost,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// NormalizeEmail gives the identity key for an email address.
func NormalizeEmail(email string) string { return strings.ToLower(strings.TrimSpace(email)) }

func (l *Ledger) hash(password string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(password), l.hashCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(h), nil
}

func (l *Ledger) Register(ctx context.Context, name, password, email string, credit decimal.Decimal) (*domain.Customer, error) {
	name = strings.TrimSpace(name)
	key := NormalizeEmail(email)
	switch {
	case name == "":
		return nil, fmt.Errorf("%w: empty name", domain.ErrInvalidCustomer)
	case !strings.Contains(key, "@"):
		return nil, fmt.Errorf("%w: bad email %q", domain.ErrInvalidCustomer, email)
	case password == "":
		return nil, fmt.Errorf("%w: empty password", domain.ErrInvalidCustomer)
	case !domain.InRange(credit):
		return nil, fmt.Errorf("%w: credit out of range", domain.ErrInvalidCustomer)
	case credit.IsNegative():
		return nil, fmt.Errorf("%w: negative credit %s", domain.ErrInvalidCustomer, credit)
	}
	if _, err := l.GetByEmail(key); err == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrDuplicateCustomer, key)
	}
	h, err := l.hash(password)
	if err != nil {
		return nil, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}
	// re-check: hashing ran without the lock
	if _, exists := l.byEmail[key]; exists {
		return nil, fmt.Errorf("%w: %s", domain.ErrDuplicateCustomer, key)
	}
	rec := &customerRecord{c: domain.Customer{
		ID:        domain.CustomerID(uuid.NewString()),
		Name:      name,
		Email:     key,
		PassHash:  h,
		Credit:    credit,
		CreatedAt: l.now(),
	}}
	l.byID[rec.c.ID] = rec
	l.byEmail[key] = rec
	return rec.snapshot(), nil
}

func (r *customerRecord) snapshot() *domain.Customer {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.c
	out.Orders = slices.Clone(r.c.Orders)
	return &out
}

// Authenticate returns the customer when password matches the registered one.
func (l *Ledger) Authenticate(email, password string) (*domain.Customer, error) {
	l.mu.RLock()
	rec, ok := l.byEmail[NormalizeEmail(email)]
	l.mu.RUnlock()
	if !ok {
		return nil, domain.ErrAuthenticationFailed
	}
	c := rec.snapshot()
	if bcrypt.CompareHashAndPassword([]byte(c.PassHash), []byte(password)) != nil {
		return nil, domain.ErrAuthenticationFailed
	}
	return c, nil
}

func (l *Ledger) record(id domain.CustomerID) (*customerRecord, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	rec, ok := l.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrCustomerNotFound, id)
	}
	return rec, nil
}

func (l *Ledger) Get(id domain.CustomerID) (*domain.Customer, error) {
	rec, err := l.record(id)
	if err != nil {
		return nil, err
	}
	return rec.snapshot(), nil
}

func (l *Ledger) GetByEmail(email string) (*domain.Customer, error) {
	key := NormalizeEmail(email)
	l.mu.RLock()
	rec, ok := l.byEmail[key]
	l.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrCustomerNotFound, key)
	}
	return rec.snapshot(), nil
}

// List returns all customers ordered by registration time, then email.
func (l *Ledger) List() []*domain.Customer {
	l.mu.RLock()
	records := make([]*customerRecord, 0, len(l.byID))
	for _, rec := range l.byID {
		records = append(records, rec)
	}
	l.mu.RUnlock()

	out := make([]*domain.Customer, 0, len(records))
	for _, rec := range records {
		out = append(out, rec.snapshot())
	}
	slices.SortFunc(out, func(a, b *domain.Customer) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.Email, b.Email)
	})
	return out
}

// WithCustomer runs fn with the customer locked. fn must not change the ID or
// the email.
func (l *Ledger) WithCustomer(ctx context.Context, id domain.CustomerID, fn func(*domain.Customer) error) error {
	rec, err := l.record(id)
	if err != nil {
		return err
	}
	rec.mu.Lock()
	defer rec.mu.Unlock()
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}
	return fn(&rec.c)
}

// RecordOrder appends o to the customer's history. c must come from
// WithCustomer.
func (l *Ledger) RecordOrder(c *domain.Customer, o domain.Order) {
	c.Orders = append(c.Orders, o)
}

// UpdateProfile changes the display name and the password. Empty values keep
// the current ones.
func (l *Ledger) UpdateProfile(ctx context.Context, id domain.CustomerID, name, password string) (*domain.Customer, error) {
	name = strings.TrimSpace(name)
	var h string
	if password != "" {
		var err error
		if h, err = l.hash(password); err != nil {
			return nil, err
		}
	}
	var out *domain.Customer
	err := l.WithCustomer(ctx, id, func(c *domain.Customer) error {
		if name != "" {
			c.Name = name
		}
		if h != "" {
			c.PassHash = h
		}
		cp := *c
		cp.Orders = slices.Clone(c.Orders)
		out = &cp
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (l *Ledger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.byID)
}

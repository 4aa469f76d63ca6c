package storage

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/vi13x/shop-lite-cli/internal/domain"
)

func newTestLedger() *Ledger { return NewLedger(WithHashCost(bcrypt.MinCost)) }

func TestLedger_RegisterAndAuthenticate(t *testing.T) {
	l := newTestLedger()
	ctx := context.Background()

	c, err := l.Register(ctx, "Aman", "secret", " Aman@Example.com ", decimal.NewFromInt(100000))
	require.NoError(t, err)
	assert.NotEmpty(t, c.ID)
	assert.Equal(t, "aman@example.com", c.Email)
	assert.NotEqual(t, "secret", c.PassHash)
	assert.True(t, c.Credit.Equal(decimal.NewFromInt(100000)))
	assert.Empty(t, c.Orders)

	got, err := l.Authenticate("AMAN@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, c.ID, got.ID)

	_, err = l.Authenticate("aman@example.com", "Secret")
	assert.ErrorIs(t, err, domain.ErrAuthenticationFailed)
	_, err = l.Authenticate("aman@example.com", "secret ")
	assert.ErrorIs(t, err, domain.ErrAuthenticationFailed)
	_, err = l.Authenticate("nobody@example.com", "secret")
	assert.ErrorIs(t, err, domain.ErrAuthenticationFailed)
}

func TestLedger_RegisterRejectsDuplicateEmail(t *testing.T) {
	l := newTestLedger()
	ctx := context.Background()
	_, err := l.Register(ctx, "Aman", "secret", "aman@example.com", decimal.Zero)
	require.NoError(t, err)

	_, err = l.Register(ctx, "Other Aman", "pw", "AMAN@example.com", decimal.Zero)
	assert.ErrorIs(t, err, domain.ErrDuplicateCustomer)
	assert.Equal(t, 1, l.Len())
}

func TestLedger_RegisterAllowsSameNameDifferentEmail(t *testing.T) {
	l := newTestLedger()
	ctx := context.Background()
	_, err := l.Register(ctx, "Aman", "a", "a@example.com", decimal.Zero)
	require.NoError(t, err)
	_, err = l.Register(ctx, "Aman", "b", "b@example.com", decimal.Zero)
	require.NoError(t, err)
	assert.Equal(t, 2, l.Len())
}

func TestLedger_RegisterValidates(t *testing.T) {
	tests := []struct {
		name, login, password, email string
		credit                       int64
	}{
		{"empty name", " ", "pw", "a@example.com", 0},
		{"bad email", "Aman", "pw", "aman", 0},
		{"empty password", "Aman", "", "a@example.com", 0},
		{"negative credit", "Aman", "pw", "a@example.com", -1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			l := newTestLedger()
			_, err := l.Register(context.Background(), tc.login, tc.password, tc.email, decimal.NewFromInt(tc.credit))
			assert.ErrorIs(t, err, domain.ErrInvalidCustomer)
			assert.Zero(t, l.Len())
		})
	}
}

func TestLedger_RecordOrderAppendsInOrder(t *testing.T) {
	l := newTestLedger()
	ctx := context.Background()
	c, err := l.Register(ctx, "Aman", "secret", "aman@example.com", decimal.Zero)
	require.NoError(t, err)

	err = l.WithCustomer(ctx, c.ID, func(cust *domain.Customer) error {
		l.RecordOrder(cust, domain.Order{ID: "o1"})
		l.RecordOrder(cust, domain.Order{ID: "o2"})
		return nil
	})
	require.NoError(t, err)

	got, err := l.Get(c.ID)
	require.NoError(t, err)
	require.Len(t, got.Orders, 2)
	assert.Equal(t, domain.OrderID("o1"), got.Orders[0].ID)
	assert.Equal(t, domain.OrderID("o2"), got.Orders[1].ID)

	// the snapshot's history is detached from the ledger
	got.Orders[0].ID = "changed"
	again, _ := l.Get(c.ID)
	assert.Equal(t, domain.OrderID("o1"), again.Orders[0].ID)
}

func TestLedger_GetMissing(t *testing.T) {
	l := newTestLedger()
	_, err := l.Get("nope")
	assert.ErrorIs(t, err, domain.ErrCustomerNotFound)
	_, err = l.GetByEmail("nope@example.com")
	assert.ErrorIs(t, err, domain.ErrCustomerNotFound)
	err = l.WithCustomer(context.Background(), "nope", func(*domain.Customer) error { return nil })
	assert.ErrorIs(t, err, domain.ErrCustomerNotFound)
}

func TestLedger_UpdateProfile(t *testing.T) {
	l := newTestLedger()
	ctx := context.Background()
	c, err := l.Register(ctx, "Aman", "secret", "aman@example.com", decimal.Zero)
	require.NoError(t, err)

	updated, err := l.UpdateProfile(ctx, c.ID, "Aman K", "new-secret")
	require.NoError(t, err)
	assert.Equal(t, "Aman K", updated.Name)

	_, err = l.Authenticate("aman@example.com", "secret")
	assert.ErrorIs(t, err, domain.ErrAuthenticationFailed)
	_, err = l.Authenticate("aman@example.com", "new-secret")
	require.NoError(t, err)

	kept, err := l.UpdateProfile(ctx, c.ID, "", "")
	require.NoError(t, err)
	assert.Equal(t, "Aman K", kept.Name)
	_, err = l.Authenticate("aman@example.com", "new-secret")
	assert.NoError(t, err)
}

func TestLedger_ListOrdersByRegistration(t *testing.T) {
	l := newTestLedger()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	tick := 0
	l.now = func() time.Time { tick++; return base.Add(time.Duration(tick) * time.Minute) }

	ctx := context.Background()
	for _, email := range []string{"c@example.com", "a@example.com", "b@example.com"} {
		_, err := l.Register(ctx, "x", "pw", email, decimal.Zero)
		require.NoError(t, err)
	}
	var emails []string
	for _, c := range l.List() {
		emails = append(emails, c.Email)
	}
	assert.Equal(t, []string{"c@example.com", "a@example.com", "b@example.com"}, emails)
}

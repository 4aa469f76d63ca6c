package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	for in, want := range map[string]string{
		"2":          "2",
		" 1,5 ":      "1.5",
		"2.40":       "2.4",
		"-3":         "-3",
		"0.00000001": "0.00000001",
	} {
		got, err := ParseAmount(in)
		require.NoError(t, err, in)
		assert.True(t, got.Equal(decimal.RequireFromString(want)), "%q: got %s", in, got)
	}
}

func TestParseAmount_Rejects(t *testing.T) {
	for _, in := range []string{
		"", "abc", "1e3", "1E3", "1e-50000000", "1e999999999",
		"0.000000001",
		"123456789012345678901234567890123",
	} {
		_, err := ParseAmount(in)
		assert.ErrorIs(t, err, ErrBadNumber, in)
	}
}

func TestInRange(t *testing.T) {
	assert.True(t, InRange(decimal.New(1, MinExponent)))
	assert.True(t, InRange(decimal.New(1, MaxExponent)))
	assert.False(t, InRange(decimal.New(1, -50000000)))
	assert.False(t, InRange(decimal.New(1, 999999999)))
}

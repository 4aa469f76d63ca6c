package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Exponent bounds for prices, stock, credit and quantities. Outside them a
// single comparison would rescale to millions of digits.
const (
	MinExponent = -8
	MaxExponent = 12

	maxAmountLen = 32
)

var ErrBadNumber = errors.New("not a number")

// InRange reports whether d's exponent lies within MinExponent..MaxExponent.
// It only reads the exponent, so it is cheap for any value.
func InRange(d decimal.Decimal) bool {
	e := d.Exponent()
	return e >= MinExponent && e <= MaxExponent
}

// ParseAmount reads a plain decimal typed by a user. Comma works as the
// separator. Exponent notation and out-of-range values are rejected.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	if s == "" || len(s) > maxAmountLen || strings.ContainsAny(s, "eE") {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrBadNumber, s)
	}
	d, err := decimal.NewFromString(s)
	if err != nil || !InRange(d) {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrBadNumber, s)
	}
	return d, nil
}

package types

import (
	"strings"

	"github.com/cockroachdb/apd/v3"
	"github.com/pkg/errors"
)

// NewAmount returns an integral amount holding v
func NewAmount(v int64) *apd.Decimal {
	return apd.New(v, 0)
}

// ParseAmount parses a base-10 integer amount of arbitrary size.
// The result is validated and normalized with NormalizeAmount.
func ParseAmount(s string) (*apd.Decimal, error) {
	d, _, err := apd.NewFromString(s)
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidAmount, "cannot parse %q: %v", s, err)
	}
	return NormalizeAmount(d)
}

// NormalizeAmount validates d and returns a fresh copy with exponent 0, so
// "1000.00" and "1e3" are both stored and rendered as 1000
func NormalizeAmount(d *apd.Decimal) (*apd.Decimal, error) {
	if err := ValidateAmount(d); err != nil {
		return nil, err
	}
	if d.IsZero() {
		return NewAmount(0), nil
	}
	digits, _, _ := strings.Cut(d.Text('f'), ".")
	out, _, err := apd.NewFromString(digits)
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidAmount, "cannot normalize %s: %v", d.String(), err)
	}
	return out, nil
}

// ValidateAmount checks that d is a finite, non-negative integer
func ValidateAmount(d *apd.Decimal) error {
	if d == nil {
		return errors.Wrap(ErrInvalidAmount, "amount is required")
	}
	if d.Form != apd.Finite {
		return errors.Wrapf(ErrInvalidAmount, "amount must be finite, got %s", d.String())
	}
	if d.Sign() < 0 {
		return errors.Wrapf(ErrInvalidAmount, "amount must be non-negative, got %s", d.String())
	}
	var integ, frac apd.Decimal
	d.Modf(&integ, &frac)
	if !frac.IsZero() {
		return errors.Wrapf(ErrInvalidAmount, "amount must be an integer, got %s", d.String())
	}
	return nil
}

// CopyAmount returns a fresh copy of d, or zero when d is nil
func CopyAmount(d *apd.Decimal) *apd.Decimal {
	if d == nil {
		return NewAmount(0)
	}
	return new(apd.Decimal).Set(d)
}

// FormatAmount renders an amount without exponent notation
func FormatAmount(d *apd.Decimal) string {
	if d == nil {
		return "0"
	}
	return d.Text('f')
}

package kernel

import (
	"fmt"
	"math"
	"math/bits"
	"strconv"
	"strings"

	"fulfilment/internal/pkg/errs"
)

// minorUnits is the number of minor units in one major unit (pence per pound).
const minorUnits = 100

// Money is a non-negative amount stored in minor currency units, so that
// arithmetic on prices never accumulates floating point error.
//
// Example:
//
//	price, _ := kernel.ParseMoney("2.50")
//	total, err := price.Times(3) // 7.50
type Money struct {
	minor int64
}

// NewMoney builds Money from minor units. Negative amounts are rejected.
func NewMoney(minor int64) (Money, error) {
	if minor < 0 {
		return Money{}, errs.NewValueIsOutOfRangeError("money", minor, 0, int64(math.MaxInt64))
	}
	return Money{minor: minor}, nil
}

// MustMoney is NewMoney for constants known to be valid. It panics otherwise.
func MustMoney(minor int64) Money {
	m, err := NewMoney(minor)
	if err != nil {
		panic(err)
	}
	return m
}

// ParseMoney parses a decimal string with at most two fractional digits, e.g. "2.5" or "2.50".
func ParseMoney(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Money{}, errs.NewValueIsRequiredError("money")
	}
	whole, frac, hasFrac := strings.Cut(s, ".")
	if hasFrac && (len(frac) == 0 || len(frac) > 2 || strings.TrimLeft(frac, "0123456789") != "") {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("money", fmt.Errorf("%q has an invalid fraction", s))
	}
	for len(frac) < 2 {
		frac += "0"
	}

	major, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("money", err)
	}
	minor, err := strconv.ParseInt(frac, 10, 64)
	if err != nil {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("money", err)
	}
	if major > (math.MaxInt64-minor)/minorUnits {
		return Money{}, errs.NewValueIsOutOfRangeError("money", s, 0, int64(math.MaxInt64))
	}
	if strings.HasPrefix(whole, "-") {
		return NewMoney(-(-major*minorUnits + minor))
	}

	return NewMoney(major*minorUnits + minor)
}

// Minor returns the amount in minor units.
func (m Money) Minor() int64 {
	return m.minor
}

// Times multiplies the amount by a non-negative quantity. A product that does
// not fit in int64 minor units is rejected.
func (m Money) Times(quantity int) (Money, error) {
	if quantity < 0 {
		return Money{}, errs.NewValueIsOutOfRangeError("quantity", quantity, 0, math.MaxInt)
	}
	hi, lo := bits.Mul64(uint64(m.minor), uint64(quantity))
	if hi != 0 || lo > math.MaxInt64 {
		return Money{}, errs.NewValueIsOutOfRangeErrorWithCause("money", m.String(), 0, int64(math.MaxInt64),
			fmt.Errorf("%s x %d overflows", m, quantity))
	}
	return Money{minor: int64(lo)}, nil
}

// Add returns m + other, or an error when the sum does not fit in int64 minor units.
func (m Money) Add(other Money) (Money, error) {
	sum, carry := bits.Add64(uint64(m.minor), uint64(other.minor), 0)
	if carry != 0 || sum > math.MaxInt64 {
		return Money{}, errs.NewValueIsOutOfRangeErrorWithCause("money", m.String(), 0, int64(math.MaxInt64),
			fmt.Errorf("%s + %s overflows", m, other))
	}
	return Money{minor: int64(sum)}, nil
}

// String formats the amount with two decimal places.
func (m Money) String() string {
	return fmt.Sprintf("%d.%02d", m.minor/minorUnits, m.minor%minorUnits)
}

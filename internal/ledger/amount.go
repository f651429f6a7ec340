package ledger

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount parses a typed money amount into cents.
// Currency symbols, spaces and thousands separators are dropped; a trailing
// "," or "." followed by one or two digits is the decimal separator.
// Examples: "$ 1.500" -> 150000, "2000" -> 200000, "1.234,50" -> 123450.
func ParseAmount(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "-") {
		return 0, fmt.Errorf("%w: %q is negative", ErrInvalidAmount, s)
	}

	whole, frac := s, ""
	if i := strings.LastIndexAny(s, ".,"); i >= 0 {
		tail := s[i+1:]
		if n := len(tail); n >= 1 && n <= 2 && isDigits(tail) {
			whole, frac = s[:i], tail
		}
	}

	whole = strings.Map(func(r rune) rune {
		if isDigits(string(r)) {
			return r
		}

		return -1
	}, whole)

	if whole == "" && frac == "" {
		return 0, fmt.Errorf("%w: %q is not a number", ErrInvalidAmount, s)
	}

	if whole == "" {
		whole = "0"
	}

	num := whole
	if frac != "" {
		num += "." + frac
	}

	d, err := decimal.NewFromString(num)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidAmount, err)
	}

	return DecimalToCents(d)
}

// MaxAmount is the largest amount, in cents, a single movement may carry.
// It leaves room to sum many movements without overflowing int64.
const MaxAmount int64 = 100_000_000_000_000

// DecimalToCents converts a money value to cents, rounding to the nearest cent.
// Negative values and values above MaxAmount are rejected.
func DecimalToCents(d decimal.Decimal) (int64, error) {
	if d.IsNegative() {
		return 0, fmt.Errorf("%w: %s is negative", ErrInvalidAmount, d)
	}

	cents := d.Shift(2).Round(0)
	if !cents.BigInt().IsInt64() || cents.IntPart() > MaxAmount {
		return 0, fmt.Errorf("%w: %s is too large", ErrInvalidAmount, d)
	}

	return cents.IntPart(), nil
}

// FormatAmount renders cents as a plain decimal string with two places.
func FormatAmount(cents int64) string {
	return decimal.New(cents, -2).StringFixed(2)
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}

	return true
}

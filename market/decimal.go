package market

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// StoreScale is the number of fractional digits kept when a value is
// written to the store. Arithmetic in memory is never rounded.
const StoreScale int32 = 12

var Hundred = decimal.NewFromInt(100)

// Round applies banker's rounding at StoreScale.
func Round(d decimal.Decimal) decimal.Decimal {
	return d.RoundBank(StoreScale)
}

// Pct returns part/whole*100, or zero when whole is zero.
func Pct(part, whole decimal.Decimal) decimal.Decimal {
	if whole.IsZero() {
		return decimal.Zero
	}
	return part.Div(whole).Mul(Hundred)
}

// OfPct returns value*pct/100.
func OfPct(value, pct decimal.Decimal) decimal.Decimal {
	return value.Mul(pct).Div(Hundred)
}

// Parse reads a user supplied number. A leading '$' and a trailing '%'
// are tolerated. A comma is a thousands separator only inside well formed
// groups ("1,250.50"); otherwise a single comma is the decimal mark
// ("1,5", "1.000,50").
func Parse(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "%")
	s = strings.TrimPrefix(s, "$")
	n, err := normalizeSeparators(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse %q: %w", s, err)
	}
	d, err := decimal.NewFromString(n)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse %q: %w", s, err)
	}
	return d, nil
}

var errSeparators = errors.New("ambiguous digit separators")

// normalizeSeparators rewrites s with '.' as the only separator.
func normalizeSeparators(s string) (string, error) {
	comma, dot := strings.LastIndex(s, ","), strings.LastIndex(s, ".")
	switch {
	case comma < 0:
		return s, nil
	case dot < 0:
		if grouped(s, ",") {
			return strings.ReplaceAll(s, ",", ""), nil
		}
		if strings.Count(s, ",") == 1 {
			return strings.Replace(s, ",", ".", 1), nil
		}
		return "", errSeparators
	case dot > comma:
		if !grouped(s[:dot], ",") {
			return "", errSeparators
		}
		return strings.ReplaceAll(s[:dot], ",", "") + s[dot:], nil
	default:
		if !grouped(s[:comma], ".") {
			return "", errSeparators
		}
		return strings.ReplaceAll(s[:comma], ".", "") + "." + s[comma+1:], nil
	}
}

// grouped reports whether s is an integer split by sep into thousands
// groups, e.g. "12,345,678".
func grouped(s, sep string) bool {
	s = strings.TrimPrefix(s, "-")
	groups := strings.Split(s, sep)
	if len(groups) < 2 {
		return false
	}
	first := groups[0]
	if len(first) == 0 || len(first) > 3 || first[0] == '0' || !digits(first) {
		return false
	}
	for _, g := range groups[1:] {
		if len(g) != 3 || !digits(g) {
			return false
		}
	}
	return true
}

func digits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// MustParse is Parse for literals known to be valid.
func MustParse(s string) decimal.Decimal {
	d, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return d
}

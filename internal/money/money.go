// Package money converts between user-facing amounts and the int64 minor
// units (centavos) stored in the ledger.
package money

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

var ErrInvalidAmount = errors.New("invalid amount")

var hundred = decimal.NewFromInt(100)

// Parse reads an amount written with either separator convention:
// "1.234,56", "1,234.56", "1234.5", "1234,5", "₱ 1,000" all parse.
func Parse(s string) (int64, error) {
	clean := strings.TrimSpace(s)
	clean = strings.TrimPrefix(clean, "₱")
	clean = strings.TrimPrefix(clean, "PHP")
	clean = strings.ReplaceAll(clean, " ", "")

	if clean == "" {
		return 0, ErrInvalidAmount
	}

	clean = normalizeSeparators(clean)

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return 0, ErrInvalidAmount
	}

	return FromDecimal(d), nil
}

// FromDecimal rounds a major-unit amount to minor units.
func FromDecimal(d decimal.Decimal) int64 {
	return d.Mul(hundred).Round(0).IntPart()
}

// FromFloat converts a major-unit float (as received in JSON) to minor units.
func FromFloat(f float64) int64 {
	return FromDecimal(decimal.NewFromFloat(f))
}

// ToDecimal converts minor units to a major-unit decimal.
func ToDecimal(cents int64) decimal.Decimal {
	return decimal.New(cents, -2)
}

// Format renders minor units with a thousands separator and two decimals.
func Format(cents int64) string {
	raw := ToDecimal(cents).StringFixed(2)

	sign := ""
	if strings.HasPrefix(raw, "-") {
		sign, raw = "-", raw[1:]
	}

	intPart, frac, _ := strings.Cut(raw, ".")

	var sb strings.Builder

	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			sb.WriteByte(',')
		}

		sb.WriteRune(r)
	}

	return sign + sb.String() + "." + frac
}

func normalizeSeparators(s string) string {
	lastDot := strings.LastIndex(s, ".")
	lastComma := strings.LastIndex(s, ",")

	switch {
	case lastDot >= 0 && lastComma >= 0:
		if lastComma > lastDot {
			s = strings.ReplaceAll(s, ".", "")
			return strings.Replace(s, ",", ".", 1)
		}

		return strings.ReplaceAll(s, ",", "")
	case lastComma >= 0:
		if strings.Count(s, ",") == 1 && len(s)-lastComma-1 <= 2 {
			return strings.Replace(s, ",", ".", 1)
		}

		return strings.ReplaceAll(s, ",", "")
	case strings.Count(s, ".") > 1:
		return strings.ReplaceAll(s, ".", "")
	}

	return s
}

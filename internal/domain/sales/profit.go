package sales

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// ComputeNetProfit returns sales minus every cost the staff member incurred.
// It is the only place the profit formula lives; stored values and
// aggregates all derive from it.
func ComputeNetProfit(sales, commission, bonus, expenses decimal.Decimal) decimal.Decimal {
	return sales.Sub(commission.Add(bonus).Add(expenses))
}

// plainAmount is a normalized amount with at most 16 integer digits, the
// range of the decimal(18,2) columns. Exponents are not accepted.
var plainAmount = regexp.MustCompile(`^-?(\d{1,16})?(\.\d+)?$`)

// ParseAmount converts user-entered money text into a decimal.
// Blank or non-numeric input yields zero. Both "1234.5" and the pt-BR forms
// "1.234,50" / "1234,50" are accepted, with or without an "R$" prefix.
func ParseAmount(raw string) decimal.Decimal {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "R$")
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "\u00a0", "")
	if s == "" {
		return decimal.Zero
	}

	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	}
	if !plainAmount.MatchString(s) {
		return decimal.Zero
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

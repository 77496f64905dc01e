package plan

import (
	"sort"

	"github.com/shopspring/decimal"

	"planservice/internal/money"
)

// InvalidDiscounts returns the sorted indices of every row whose discount
// exceeds its effective value. The effective value is the row's explicit
// Value when it parses to a positive amount, otherwise the value derived
// from the plan total. Rows with no resolvable effective value are never
// flagged: without a priced baseline there is nothing to judge against.
func InvalidDiscounts(options map[int]Option, total string) []int {
	var out []int
	for i, o := range options {
		disc, ok := money.Parse(o.Discount)
		if !ok || disc.LessThanOrEqual(decimal.Zero) {
			continue
		}
		eff := effectiveValue(o, total)
		if eff.GreaterThan(decimal.Zero) && disc.GreaterThan(eff) {
			out = append(out, i)
		}
	}
	sort.Ints(out)
	return out
}

// HasInvalidDiscount reports whether any row violates the discount ceiling.
// Submission must be refused while it returns true.
func HasInvalidDiscount(options map[int]Option, total string) bool {
	return len(InvalidDiscounts(options, total)) > 0
}

func effectiveValue(o Option, total string) decimal.Decimal {
	if v, ok := money.Parse(o.Value); ok && v.GreaterThan(decimal.Zero) {
		return v
	}
	if derived := DeriveValue(total, o.Installments); derived != "" {
		if v, ok := money.Parse(derived); ok {
			return v
		}
	}
	return decimal.Zero
}

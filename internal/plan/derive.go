package plan

import (
	"strings"

	"github.com/shopspring/decimal"

	"planservice/internal/money"
)

// DeriveValue computes the per-installment value of a row from the plan
// total: total/count rounded to 2 places, round-half-up. The result is a
// canonical dot-decimal string.
//
// No derivation applies ("" is returned) when the count is not a positive
// integer or the total is empty, unparsable or not positive.
func DeriveValue(total string, count int) string {
	if count < 1 {
		return ""
	}
	if strings.TrimSpace(total) == "" {
		return ""
	}
	t, ok := money.Parse(total)
	if !ok || t.LessThanOrEqual(decimal.Zero) {
		return ""
	}
	return t.Div(decimal.NewFromInt(int64(count))).Round(2).StringFixed(2)
}

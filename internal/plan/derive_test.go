package plan

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestDeriveValue_ThreeInstallments(t *testing.T) {
	if got := DeriveValue("1200.00", 3); got != "400.00" {
		t.Fatalf("expected 400.00, got %q", got)
	}
	// comma-decimal legacy spelling reads the same
	if got := DeriveValue("1200,00", 3); got != "400.00" {
		t.Fatalf("expected 400.00 from comma-decimal total, got %q", got)
	}
	// three rows reconstruct the total exactly
	per := decimal.RequireFromString(DeriveValue("1200.00", 3))
	if !per.Mul(decimal.NewFromInt(3)).Equal(decimal.RequireFromString("1200.00")) {
		t.Fatalf("3 x %s != 1200.00", per)
	}
}

func TestDeriveValue_NoDerivation(t *testing.T) {
	cases := []struct {
		total string
		count int
	}{
		{"", 3},
		{"   ", 3},
		{"abc", 3},
		{"0", 3},
		{"-100.00", 3},
		{"1200.00", 0},
		{"1200.00", -1},
	}
	for _, c := range cases {
		if got := DeriveValue(c.total, c.count); got != "" {
			t.Fatalf("DeriveValue(%q, %d) = %q, want empty", c.total, c.count, got)
		}
	}
}

func TestDeriveValue_ReconstructionError(t *testing.T) {
	// Rounding drifts by at most half a cent per installment, so count
	// derived installments reconstruct the total within count * 0.005.
	halfCent := decimal.RequireFromString("0.005")
	for _, total := range []string{"1200.00", "100.00", "999.99", "753.17"} {
		want := decimal.RequireFromString(total)
		for count := 1; count <= MaxInstallments; count++ {
			got := DeriveValue(total, count)
			if got == "" {
				t.Fatalf("no derivation for total=%s count=%d", total, count)
			}
			per := decimal.RequireFromString(got)
			diff := per.Mul(decimal.NewFromInt(int64(count))).Sub(want).Abs()
			limit := halfCent.Mul(decimal.NewFromInt(int64(count)))
			if diff.GreaterThan(limit) {
				t.Fatalf("total=%s count=%d: %s x %d off by %s (limit %s)", total, count, got, count, diff, limit)
			}
		}
	}
}

func TestDeriveValue_ExactWhenDivisible(t *testing.T) {
	// When the total divides cleanly the reconstruction is within one cent.
	cent := decimal.RequireFromString("0.01")
	for count := 1; count <= MaxInstallments; count++ {
		total := decimal.NewFromInt(int64(count * 100)) // always divisible
		got := DeriveValue(total.StringFixed(2), count)
		per := decimal.RequireFromString(got)
		diff := per.Mul(decimal.NewFromInt(int64(count))).Sub(total).Abs()
		if diff.GreaterThan(cent) {
			t.Fatalf("count=%d: %s x %d off by %s", count, got, count, diff)
		}
	}
}

func TestDeriveValue_RoundHalfUp(t *testing.T) {
	// ties round away from zero at 2 places
	if got := DeriveValue("100.00", 8); got != "12.50" {
		t.Fatalf("expected 12.50, got %q", got)
	}
	if got := DeriveValue("1.00", 8); got != "0.13" { // 0.125 -> 0.13
		t.Fatalf("expected 0.13, got %q", got)
	}
}

package plan

import (
	"testing"

	"planservice/internal/money"
)

func TestInvalidDiscounts_DerivedBaseline(t *testing.T) {
	options := map[int]Option{
		1: {Installments: 3, Discount: "500.00"}, // derived value 400.00
	}
	got := InvalidDiscounts(options, "1200.00")
	if len(got) != 1 || got[0] != 1 {
		t.Fatalf("expected row 1 flagged, got %v", got)
	}

	// discount equal to the value is allowed
	options[1] = Option{Installments: 3, Discount: "400.00"}
	if got := InvalidDiscounts(options, "1200.00"); len(got) != 0 {
		t.Fatalf("expected no flags at discount == value, got %v", got)
	}
}

func TestInvalidDiscounts_ExplicitValueWins(t *testing.T) {
	// explicit row value 100 beats the derived 400
	options := map[int]Option{
		1: {Installments: 3, Value: "100.00", Discount: "150.00"},
	}
	if got := InvalidDiscounts(options, "1200.00"); len(got) != 1 {
		t.Fatalf("expected flag against explicit value, got %v", got)
	}
	options[1] = Option{Installments: 3, Value: "100.00", Discount: "100.00"}
	if got := InvalidDiscounts(options, "1200.00"); len(got) != 0 {
		t.Fatalf("expected no flags, got %v", got)
	}
}

func TestInvalidDiscounts_NoBaselineNeverFlags(t *testing.T) {
	// no total, no explicit value: nothing to judge the discount against
	options := map[int]Option{
		1: {Installments: 3, Discount: "500.00"},
	}
	if got := InvalidDiscounts(options, ""); len(got) != 0 {
		t.Fatalf("expected no flags without a baseline, got %v", got)
	}
	// unparsable total behaves the same
	if got := InvalidDiscounts(options, "n/a"); len(got) != 0 {
		t.Fatalf("expected no flags on unparsable total, got %v", got)
	}
}

func TestHasInvalidDiscount_MatchesInvalidIndices(t *testing.T) {
	options := map[int]Option{
		1: {Installments: 3, Discount: "500.00"},
		2: {Installments: 6, Discount: "100.00"},
		5: {Installments: 2},
	}
	total := "1200.00"

	flagged := map[int]bool{}
	for _, i := range InvalidDiscounts(options, total) {
		flagged[i] = true
	}
	for i, o := range options {
		violates := false
		if eff := effectiveValue(o, total); eff.IsPositive() {
			if d, ok := money.Parse(o.Discount); ok && d.GreaterThan(eff) {
				violates = true
			}
		}
		if violates != flagged[i] {
			t.Fatalf("row %d: violates=%v flagged=%v", i, violates, flagged[i])
		}
	}
	if HasInvalidDiscount(options, total) != (len(flagged) > 0) {
		t.Fatalf("HasInvalidDiscount disagrees with InvalidDiscounts")
	}
}

package money

import "testing"

func TestApplyMask_PtBR(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"600.00", "R$ 600,00"},
		{"600", "R$ 600,00"},
		{"1234.56", "R$ 1.234,56"},
		{"1234567.89", "R$ 1.234.567,89"},
		{"600.5", "R$ 600,50"},
		{"R$ 600,00", "R$ 600,00"},
		{"0", "R$ 0,00"},
		{"", ""},
		{"abc", ""},
	}
	for _, c := range cases {
		if got := PtBR.ApplyMask(c.in); got != c.want {
			t.Fatalf("ApplyMask(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestApplyMask_EnUS(t *testing.T) {
	if got := EnUS.ApplyMask("106.26"); got != "$ 106.26" {
		t.Fatalf("expected $ 106.26, got %q", got)
	}
	if got := EnUS.ApplyMask("1234.50"); got != "$ 1,234.50" {
		t.Fatalf("expected $ 1,234.50, got %q", got)
	}
}

func TestRemoveMask(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"R$ 600,00", "600.00"},
		{"R$ 1.234,56", "1234.56"},
		{"$ 1,234.56", "1234.56"},
		{"600,00", "600.00"},
		{"600.00", "600.00"},
		{"600", "600.00"},
		{"", ""},
	}
	for _, c := range cases {
		if got := PtBR.RemoveMask(c.in); got != c.want {
			t.Fatalf("RemoveMask(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestParse_MixedSeparatorConventions(t *testing.T) {
	// Legacy records mix comma- and dot-decimal fields; the parser must read both.
	cases := []struct {
		in   string
		want string
	}{
		{"1200,00", "1200.00"},
		{"1200.00", "1200.00"},
		{"1.234", "1234.00"},  // lone dot followed by a 3-digit group reads as thousands
		{"1.23", "1.23"},      // two trailing digits read as a fraction
		{"1,234.56", "1234.56"},
		{"1.234,56", "1234.56"},
	}
	for _, c := range cases {
		d, ok := Parse(c.in)
		if !ok {
			t.Fatalf("Parse(%q) failed", c.in)
		}
		if got := d.StringFixed(2); got != c.want {
			t.Fatalf("Parse(%q) = %s, want %s", c.in, got, c.want)
		}
	}
}

func TestParse_NoDigits(t *testing.T) {
	if _, ok := Parse(""); ok {
		t.Fatalf("expected failure on empty input")
	}
	if _, ok := Parse("R$ "); ok {
		t.Fatalf("expected failure on symbol-only input")
	}
}

func TestMaskRoundTrip(t *testing.T) {
	for _, canon := range []string{"600.00", "1234.56", "0.50", "1000000.00"} {
		if got := PtBR.RemoveMask(PtBR.ApplyMask(canon)); got != canon {
			t.Fatalf("round trip of %s gave %s", canon, got)
		}
	}
}

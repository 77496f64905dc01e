package money

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Locale describes how a currency amount is rendered for display.
// The canonical internal representation is always a dot-separated decimal
// string ("1234.56"); locale formatting happens only at the display boundary.
type Locale struct {
	Tag       string
	Symbol    string
	Thousands byte
	Decimal   byte
}

var (
	PtBR = Locale{Tag: "pt-BR", Symbol: "R$", Thousands: '.', Decimal: ','}
	EnUS = Locale{Tag: "en-US", Symbol: "$", Thousands: ',', Decimal: '.'}
)

// LocaleFor resolves a locale tag; unknown tags fall back to pt-BR, the
// locale of the legacy records this service stays wire-compatible with.
func LocaleFor(tag string) Locale {
	switch strings.ToLower(strings.TrimSpace(tag)) {
	case "en-us", "en":
		return EnUS
	default:
		return PtBR
	}
}

// ApplyMask renders a display string ("R$ 1.234,56") from any numeric input:
// a canonical decimal, a bare digit run, or an already-masked value. The
// amount is parsed leniently, then regrouped with the locale separators and
// currency symbol, always with exactly two fraction digits. Input with no
// digits yields "".
func (l Locale) ApplyMask(raw string) string {
	digits := digitsOf(normalizeCents(raw))
	if digits == "" {
		return ""
	}
	digits = strings.TrimLeft(digits, "0")
	for len(digits) < 3 {
		digits = "0" + digits
	}

	intPart := digits[:len(digits)-2]
	cents := digits[len(digits)-2:]

	var b strings.Builder
	b.WriteString(l.Symbol)
	b.WriteByte(' ')
	for i := 0; i < len(intPart); i++ {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(l.Thousands)
		}
		b.WriteByte(intPart[i])
	}
	b.WriteByte(l.Decimal)
	b.WriteString(cents)
	return b.String()
}

// RemoveMask converts a display string back to the canonical dot-decimal form.
// Malformed input degrades to "" rather than failing.
func (l Locale) RemoveMask(display string) string {
	d, ok := Parse(display)
	if !ok {
		return ""
	}
	return d.StringFixed(2)
}

// Parse reads a monetary amount in any of the conventions found in legacy
// records: canonical "600.00", comma-decimal "600,00", fully masked
// "R$ 1.234,56" or "$ 1,234.56". When both separators appear, the one
// further right is the decimal separator. Returns ok=false for input with
// no digits at all.
func Parse(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	neg := strings.HasPrefix(s, "-")

	lastComma := strings.LastIndexByte(s, ',')
	lastDot := strings.LastIndexByte(s, '.')

	var decSep byte
	switch {
	case lastComma >= 0 && lastDot >= 0:
		if lastComma > lastDot {
			decSep = ','
		} else {
			decSep = '.'
		}
	case lastComma >= 0:
		decSep = sepKind(s, ',')
	case lastDot >= 0:
		decSep = sepKind(s, '.')
	}

	decIdx := -1
	if decSep != 0 {
		decIdx = lastIdx(s, decSep)
	}

	var intPart, fracPart strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			continue
		}
		if decIdx >= 0 && i > decIdx {
			fracPart.WriteByte(c)
		} else {
			intPart.WriteByte(c)
		}
	}

	if intPart.Len() == 0 && fracPart.Len() == 0 {
		return decimal.Zero, false
	}

	canon := intPart.String()
	if canon == "" {
		canon = "0"
	}
	if fracPart.Len() > 0 {
		canon += "." + fracPart.String()
	}
	if neg {
		canon = "-" + canon
	}

	d, err := decimal.NewFromString(canon)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// Canonical formats a decimal in the internal convention: dot separator,
// exactly two fraction digits.
func Canonical(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// sepKind decides whether a lone separator is decimal or thousands:
// a single occurrence followed by one or two digits reads as decimal,
// anything else (repeated, or exactly three trailing digits in groups)
// reads as a thousands separator.
func sepKind(s string, sep byte) byte {
	if strings.Count(s, string(sep)) != 1 {
		return 0
	}
	tail := digitsOf(s[strings.IndexByte(s, sep)+1:])
	if len(tail) == 3 {
		return 0
	}
	return sep
}

func lastIdx(s string, c byte) int {
	for i := len(s) - 1; i >= 0; i-- {
		if s[i] == c {
			return i
		}
	}
	return -1
}

func digitsOf(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			b.WriteString(s[i : i+1])
		}
	}
	return b.String()
}

// normalizeCents widens inputs that carry an explicit decimal part shorter
// than two digits ("600.5" -> "600.50") so the digits-are-cents rule of
// ApplyMask stays correct for canonical inputs.
func normalizeCents(raw string) string {
	d, ok := Parse(raw)
	if !ok {
		return raw
	}
	return d.StringFixed(2)
}

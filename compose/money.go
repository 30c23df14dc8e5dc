package compose

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount reads user-formatted euro amounts: "4500", "4 500", "4.500,00",
// "4500 €", "1,200.50". Returns false when nothing numeric is left.
func ParseAmount(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, false
	}
	s = strings.ReplaceAll(s, "€", "")
	s = strings.ReplaceAll(s, "EUR", "")
	s = strings.ReplaceAll(s, " ", "") // non-breaking space
	s = strings.ReplaceAll(s, " ", "") // narrow non-breaking space
	s = strings.ReplaceAll(s, " ", "")

	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	// French decimal comma: a single trailing comma group of 1-2 digits is a
	// decimal separator, every other comma/dot is a thousands separator.
	if i := strings.LastIndexAny(s, ",."); i >= 0 && len(s)-i-1 <= 2 && len(s)-i-1 > 0 {
		intPart := s[:i]
		fracPart := s[i+1:]
		intPart = strings.ReplaceAll(intPart, ",", "")
		intPart = strings.ReplaceAll(intPart, ".", "")
		s = intPart + "." + fracPart
	} else {
		s = strings.ReplaceAll(s, ",", "")
		s = strings.ReplaceAll(s, ".", "")
	}

	var b strings.Builder
	b.Grow(len(s) + 1)
	if neg {
		b.WriteByte('-')
	}
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}
	clean := b.String()
	if clean == "" || clean == "-" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// FormatAmount renders a euro amount with space-grouped thousands:
// 12500 -> "12 500 €", 1234.5 -> "1 234,50 €".
func FormatAmount(d decimal.Decimal) string {
	s := d.StringFixed(2)
	s = strings.TrimSuffix(s, ".00")

	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	intPart := s
	fracPart := ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart = s[:i]
		fracPart = "," + s[i+1:]
	}

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	out := b.String() + fracPart + " €"
	if neg {
		out = "-" + out
	}
	return out
}

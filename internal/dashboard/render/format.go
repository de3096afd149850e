package render

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Integer renders n with thousands separators: 1200 -> "1,200".
func Integer(n int64) string {
	return message.NewPrinter(language.English).Sprintf("%d", n)
}

// Fixed rounds d half away from zero to places decimals and groups the integer part.
func Fixed(d decimal.Decimal, places int32) string {
	if places < 0 {
		places = 0
	}
	rounded := d.Round(places)
	sign := ""
	if rounded.IsNegative() {
		sign = "-"
	}
	whole, frac, _ := strings.Cut(rounded.Abs().StringFixed(places), ".")
	if frac == "" {
		return sign + groupThousands(whole)
	}
	return sign + groupThousands(whole) + "." + frac
}

// groupThousands inserts commas into a plain digit string. Decimals can exceed int64,
// so this works on the text rather than going through Integer.
func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	b.Grow(len(digits) + len(digits)/3)
	head := len(digits) % 3
	if head == 0 {
		head = 3
	}
	b.WriteString(digits[:head])
	for i := head; i < len(digits); i += 3 {
		b.WriteByte(',')
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// Currency renders whole dollars: 1234567 -> "$1,234,567", -1234 -> "-$1,234".
func Currency(d decimal.Decimal) string {
	out := Fixed(d, 0)
	if strings.HasPrefix(out, "-") {
		return "-$" + out[1:]
	}
	return "$" + out
}

// Percent renders a percentage with one decimal: 23.456 -> "23.5%".
func Percent(d decimal.Decimal) string {
	return Fixed(d, 1) + "%"
}

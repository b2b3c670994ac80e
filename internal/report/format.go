package report

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// groupThousands inserts sep between three-digit groups of the integer part
// of a plain numeric string. The string may carry a leading sign and a
// fractional part; both pass through untouched.
func groupThousands(s, sep string) string {
	sign := ""
	if strings.HasPrefix(s, "-") || strings.HasPrefix(s, "+") {
		sign, s = s[:1], s[1:]
	}

	intPart := s
	frac := ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, frac = s[:i], s[i:]
	}

	if len(intPart) <= 3 {
		return sign + intPart + frac
	}

	var b strings.Builder
	lead := len(intPart) % 3
	if lead > 0 {
		b.WriteString(intPart[:lead])
	}
	for i := lead; i < len(intPart); i += 3 {
		if b.Len() > 0 {
			b.WriteString(sep)
		}
		b.WriteString(intPart[i : i+3])
	}
	return sign + b.String() + frac
}

// price renders a unit price to 4 decimal places with comma grouping.
func price(v float64) string {
	return groupThousands(fmt.Sprintf("%.4f", v), ",")
}

// signedPrice renders a price delta to 4 decimal places with an explicit
// leading sign; zero takes the positive branch.
func signedPrice(v float64) string {
	if v < 0 {
		return "-" + fmt.Sprintf("%.4f", -v)
	}
	return "+" + fmt.Sprintf("%.4f", math.Abs(v))
}

// signedPct renders a percentage to 2 decimal places with an explicit
// leading sign; zero takes the positive branch.
func signedPct(v float64) string {
	if v < 0 {
		return "-" + fmt.Sprintf("%.2f", -v)
	}
	return "+" + fmt.Sprintf("%.2f", math.Abs(v))
}

// money renders a monetary value to 2 decimal places with comma grouping.
func money(d decimal.Decimal) string {
	return groupThousands(d.StringFixed(2), ",")
}

// signedMoney renders a signed monetary value to 2 decimal places with comma
// grouping and an explicit leading sign; zero takes the positive branch.
func signedMoney(d decimal.Decimal) string {
	if d.IsNegative() {
		return "-" + groupThousands(d.Abs().StringFixed(2), ",")
	}
	return "+" + groupThousands(d.StringFixed(2), ",")
}

// signedDecimalPct renders a decimal percentage to 2 decimal places with an
// explicit leading sign; zero takes the positive branch.
func signedDecimalPct(d decimal.Decimal) string {
	if d.IsNegative() {
		return "-" + d.Abs().StringFixed(2)
	}
	return "+" + d.StringFixed(2)
}

// quantity renders a unit count with space grouping, dropping a fractional
// part only when there is none.
func quantity(v float64) string {
	s := fmt.Sprintf("%.0f", v)
	if v != math.Trunc(v) {
		s = fmt.Sprintf("%g", v)
	}
	return groupThousands(s, " ")
}

// trend picks the cosmetic pictogram for a signed value; zero takes the
// positive branch, matching the sign rendering rule.
func trend(negative bool) string {
	if negative {
		return "📉"
	}
	return "📈"
}

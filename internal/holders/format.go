package holders

import (
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// finite maps NaN and infinities to zero. Presentation never prints them.
func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

func fixed2(v float64) string {
	return decimal.NewFromFloat(finite(v)).StringFixed(2)
}

// FormatSOLValue renders a SOL amount and its USD equivalent, e.g. "1.10 SOL ($214.50)".
func FormatSOLValue(sol, usd float64) string {
	return fixed2(sol) + " SOL ($" + fixed2(usd) + ")"
}

// FormatPercentage renders a share with two decimals, e.g. "12.34%".
func FormatPercentage(pct float64) string {
	return fixed2(pct) + "%"
}

// FormatNftSummary renders an NFT count, e.g. "3 NFTs".
func FormatNftSummary(n int64) string {
	return strconv.FormatInt(n, 10) + " NFTs"
}

// FormatAmount renders a token amount with thousands separators and at most
// three fraction digits, trailing zeros trimmed: 1234567.891 -> "1,234,567.891".
func FormatAmount(amount float64) string {
	s := decimal.NewFromFloat(finite(amount)).Round(3).String()

	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}

	intPart, frac, hasFrac := strings.Cut(s, ".")

	var b strings.Builder
	b.WriteString(sign)
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if hasFrac {
		b.WriteByte('.')
		b.WriteString(frac)
	}
	return b.String()
}

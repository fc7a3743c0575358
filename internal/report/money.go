package report

import (
	"fmt"
	"math"
	"strings"
)

// FormatETB renders a cent amount as birr with the given number of
// fraction digits, rounding half away from zero. KPI tiles use zero
// digits, tables use two.
func FormatETB(cents int64, digits int) string {
	birr := float64(cents) / 100.0

	scale := math.Pow(10, float64(digits))
	rounded := math.Round(birr*scale) / scale

	formatted := fmt.Sprintf("%.*f", digits, rounded)

	// thousands separators on the integer part
	parts := strings.SplitN(formatted, ".", 2)
	intPart := parts[0]
	negative := strings.HasPrefix(intPart, "-")
	if negative {
		intPart = intPart[1:]
	}

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}

	out := b.String()
	if negative {
		out = "-" + out
	}
	if len(parts) == 2 {
		out += "." + parts[1]
	}
	return "ETB " + out
}

// UsagePercentage is used/issued as a percentage. Zero issued reads
// as zero usage. Values above 100 pass through untouched since they
// are the over-usage signal the dashboard exists to show.
func UsagePercentage(usedCents, issuedCents int64) float64 {
	if issuedCents <= 0 {
		return 0
	}
	pct := float64(usedCents) / float64(issuedCents) * 100
	if pct < 0 {
		return 0
	}
	return pct
}

// BarWidth sizes an over-usage bar relative to the issued amount,
// capped at 100. An employee with nothing issued gets no bar.
func BarWidth(overCents, issuedCents int64) float64 {
	if issuedCents <= 0 || overCents <= 0 {
		return 0
	}
	width := float64(overCents) / float64(issuedCents) * 100
	if width > 100 {
		return 100
	}
	return width
}

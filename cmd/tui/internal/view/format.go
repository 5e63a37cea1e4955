package view

import (
	"fmt"
	"strings"
	"time"

	"github.com/MrJamesThe3rd/savr/internal/money"
)

// FormatAmount renders centavos as pesos with thousands separators.
func FormatAmount(cents int64) string {
	return "₱" + money.Format(cents)
}

// FormatDate formats a time.Time into YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(time.DateOnly)
}

// FormatTrend renders a percentage change with an arrow.
func FormatTrend(pct float64) string {
	switch {
	case pct > 0:
		return fmt.Sprintf("▲ %.1f%%", pct)
	case pct < 0:
		return fmt.Sprintf("▼ %.1f%%", -pct)
	}

	return "– 0.0%"
}

var sparks = []rune("▁▂▃▄▅▆▇█")

// Sparkline scales values between their minimum and maximum onto block
// characters. A flat series renders at the lowest level.
func Sparkline(values []int64) string {
	if len(values) == 0 {
		return ""
	}

	lo, hi := values[0], values[0]
	for _, v := range values {
		lo = min(lo, v)
		hi = max(hi, v)
	}

	var sb strings.Builder

	for _, v := range values {
		idx := 0
		if hi > lo {
			idx = int((v - lo) * int64(len(sparks)-1) / (hi - lo))
		}

		sb.WriteRune(sparks[idx])
	}

	return sb.String()
}

// Bar draws a fixed-width progress bar for a percentage in [0, 100].
func Bar(pct float64, width int) string {
	filled := int(pct / 100 * float64(width))
	filled = max(0, min(width, filled))

	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

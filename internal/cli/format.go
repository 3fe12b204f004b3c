// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"math"
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// FormatCompact formats a count with human-readable suffixes.
// e.g., 1234 -> "1.2K", 1234567 -> "1.2M", 1234567890 -> "1.2B"
func FormatCompact(n int64) string {
	abs := n
	if abs < 0 {
		abs = -abs
	}

	switch {
	case abs >= 1_000_000_000:
		return fmt.Sprintf("%.1fB", float64(n)/1_000_000_000)
	case abs >= 1_000_000:
		return fmt.Sprintf("%.1fM", float64(n)/1_000_000)
	case abs >= 1_000:
		return fmt.Sprintf("%.1fK", float64(n)/1_000)
	default:
		return strconv.FormatInt(n, 10)
	}
}

// FormatNumber adds thousands separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	return printer.Sprintf("%d", n)
}

// FormatMoney formats a USD amount with cents and separators.
// e.g., 265630.14 -> "$265,630.14", -42 -> "-$42.00"
func FormatMoney(v float64) string {
	if v < 0 {
		return "-" + FormatMoney(-v)
	}
	return printer.Sprintf("$%.2f", v)
}

// FormatCost formats a USD amount compactly for cards and charts.
func FormatCost(cost float64) string {
	if cost < 0 {
		return "-" + FormatCost(-cost)
	}
	if cost >= 1_000_000 {
		return fmt.Sprintf("$%.2fM", cost/1_000_000)
	}
	if cost >= 1000 {
		return "$" + FormatNumber(int64(math.Round(cost)))
	}
	if cost >= 100 {
		return fmt.Sprintf("$%.0f", cost)
	}
	if cost >= 10 {
		return fmt.Sprintf("$%.1f", cost)
	}
	return fmt.Sprintf("$%.2f", cost)
}

// FormatPercent formats a percentage value (0-100 scale).
func FormatPercent(pct float64) string {
	return fmt.Sprintf("%.1f%%", pct)
}

// FormatRate formats a conversion-style rate with two decimals.
func FormatRate(pct float64) string {
	return fmt.Sprintf("%.2f%%", pct)
}

// FormatDelta formats the difference between two amounts with a sign.
func FormatDelta(current, previous float64) string {
	delta := current - previous
	if delta >= 0 {
		return "+" + FormatCost(delta)
	}
	return "-" + FormatCost(-delta)
}

// FormatParam formats a coefficient with the given number of decimals.
func FormatParam(v float64, decimals int) string {
	if decimals == 0 {
		return FormatNumber(int64(math.Round(v)))
	}
	return strconv.FormatFloat(v, 'f', decimals, 64)
}

// FormatMonth returns a short month label, e.g. 3 -> "M03".
func FormatMonth(m int) string {
	return fmt.Sprintf("M%02d", m)
}

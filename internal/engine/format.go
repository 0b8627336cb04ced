package engine

import (
	"fmt"
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// printer is the locale-aware message printer for number formatting.
// English locale keeps thousand separators consistent across reports.
//
//nolint:gochecknoglobals // Global printer is idiomatic for x/text/message usage.
var printer = message.NewPrinter(language.English)

const (
	millionThreshold = 1_000_000
	billionThreshold = 1_000_000_000
)

// FormatCount formats a count for display: comma-separated integers
// below one million, abbreviated "~X.X million"/"~X.X billion" above.
func FormatCount(v float64) string {
	switch {
	case v >= billionThreshold:
		return fmt.Sprintf("~%.1f billion", v/billionThreshold)
	case v >= millionThreshold:
		return fmt.Sprintf("~%.1f million", v/millionThreshold)
	default:
		return printer.Sprintf("%d", int64(math.Round(v)))
	}
}

// FormatTonnes formats an emission quantity in tonnes CO2e with two
// decimal places and thousand separators.
func FormatTonnes(tonnes float64) string {
	return printer.Sprintf("%.2f", tonnes)
}

// FormatPercent formats a scope share rounded to one decimal place.
func FormatPercent(pct float64) string {
	return fmt.Sprintf("%.1f%%", pct)
}

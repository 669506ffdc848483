// Package textutil provides formatting helpers for building reply text.
package textutil

import (
	"fmt"
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Attendance percentage cutoffs. These are business rules, not display
// preferences: 75 is the detention threshold, 65 marks critical standing.
const (
	AttendanceGoodThreshold    = 75.0
	AttendanceWarningThreshold = 65.0
)

// Status glyphs used across reply templates.
const (
	GlyphGood     = "✅"
	GlyphWarning  = "⚠️"
	GlyphCritical = "🔴"
	GlyphUrgent   = "🟡"
	GlyphSafe     = "🟢"
)

var currencyPrinter = message.NewPrinter(language.English)

// Percent formats a percentage to one decimal place with a trailing %.
func Percent(v float64) string {
	return fmt.Sprintf("%.1f%%", v)
}

// Rupees formats an amount as grouped-thousands rupees (e.g. ₹12,500).
// Whole amounts render without a decimal part; fractional amounts keep
// two places.
func Rupees(amount float64) string {
	if amount == math.Trunc(amount) {
		return currencyPrinter.Sprintf("₹%d", int64(amount))
	}
	return currencyPrinter.Sprintf("₹%.2f", amount)
}

// AttendanceGlyph returns the status glyph for an attendance percentage.
// Cutoffs: >=75 good, >=65 warning, below critical.
func AttendanceGlyph(pct float64) string {
	switch {
	case pct >= AttendanceGoodThreshold:
		return GlyphGood
	case pct >= AttendanceWarningThreshold:
		return GlyphWarning
	default:
		return GlyphCritical
	}
}

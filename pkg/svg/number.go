package svg

import (
	"math"
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var printer = message.NewPrinter(language.AmericanEnglish)

// Grouped formats v with en-US digit grouping and at most three fraction
// digits, e.g. 1234567.5 -> "1,234,567.5".
func Grouped(v float64) string {
	return printer.Sprint(number.Decimal(v, number.MaxFractionDigits(3)))
}

// Fixed formats v with exactly digits fraction digits and no grouping.
func Fixed(v float64, digits int) string {
	return strconv.FormatFloat(v, 'f', digits, 64)
}

// TickLabel formats an axis tick value with as many fraction digits as the tick
// step needs, grouped like Grouped.
func TickLabel(v, step float64) string {
	digits := 0
	if step > 0 && step < 1 {
		digits = int(math.Ceil(-math.Log10(step) - 1e-9))
	}
	return printer.Sprint(number.Decimal(v,
		number.MinFractionDigits(digits),
		number.MaxFractionDigits(digits)))
}

// Package format renders converted amounts for display.
package format

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"

	"github.com/vadiminshakov/coinconv/internal/domain"
)

const (
	fallbackScale  = 2
	groupSeparator = ","
	groupSize      = 3
)

// en-US narrow symbols, x/text only exposes them through its own amount layout
var symbols = map[domain.FiatCode]string{
	domain.FiatUSD: "$",
	domain.FiatEUR: "€",
	domain.FiatINR: "₹",
	domain.FiatGBP: "£",
	domain.FiatJPY: "¥",
}

// FormatCurrency formats amount the en-US way: symbol prefix, comma grouping,
// ISO 4217 fraction digits. Unknown codes fall back to a plain number with two decimals.
// Digits come straight from the decimal, so no precision is lost for large amounts.
func FormatCurrency(amount decimal.Decimal, fiat domain.FiatCode) string {
	symbol, ok := symbols[fiat]
	if !ok {
		return amount.StringFixed(fallbackScale)
	}

	scale := scaleOf(fiat)
	// StringFixed rounds half away from zero
	text := amount.StringFixed(int32(scale))

	sign := ""
	if strings.HasPrefix(text, "-") {
		text = text[1:]
		if strings.Trim(text, "0.") != "" {
			sign = "-"
		}
	}

	intPart, fracPart, _ := strings.Cut(text, ".")
	out := sign + symbol + group(intPart)
	if fracPart != "" {
		out += "." + fracPart
	}
	return out
}

func scaleOf(fiat domain.FiatCode) int {
	unit, err := currency.ParseISO(fiat.String())
	if err != nil {
		return fallbackScale
	}
	scale, _ := currency.Standard.Rounding(unit)
	return scale
}

func group(digits string) string {
	if len(digits) <= groupSize {
		return digits
	}

	var b strings.Builder
	head := len(digits) % groupSize
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < len(digits); i += groupSize {
		if b.Len() > 0 {
			b.WriteString(groupSeparator)
		}
		b.WriteString(digits[i : i+groupSize])
	}
	return b.String()
}

package format

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/vadiminshakov/coinconv/internal/domain"
)

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		name     string
		amount   string
		fiat     domain.FiatCode
		expected string
	}{
		{name: "USD grouping", amount: "1234.5", fiat: domain.FiatUSD, expected: "$1,234.50"},
		{name: "USD large", amount: "100000", fiat: domain.FiatUSD, expected: "$100,000.00"},
		{name: "USD rounding", amount: "0.125", fiat: domain.FiatUSD, expected: "$0.13"},
		{name: "EUR", amount: "2841.37", fiat: domain.FiatEUR, expected: "€2,841.37"},
		{name: "GBP", amount: "12", fiat: domain.FiatGBP, expected: "£12.00"},
		{name: "INR", amount: "1234567.891", fiat: domain.FiatINR, expected: "₹1,234,567.89"},
		{name: "JPY has no fraction", amount: "15000000.6", fiat: domain.FiatJPY, expected: "¥15,000,001"},
		{name: "Negative", amount: "-1234.5", fiat: domain.FiatUSD, expected: "-$1,234.50"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatCurrency(decimal.RequireFromString(tt.amount), tt.fiat)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestFormatCurrency_GroupingExample(t *testing.T) {
	got := FormatCurrency(decimal.NewFromFloat(1234.5), domain.FiatUSD)
	assert.Contains(t, got, "1,234.50")
	assert.Contains(t, got, "$")
}

func TestFormatCurrency_Deterministic(t *testing.T) {
	a := decimal.RequireFromString("98765.4321")
	assert.Equal(t, FormatCurrency(a, domain.FiatEUR), FormatCurrency(a, domain.FiatEUR))
}

func TestFormatCurrency_UnknownCodeFallsBack(t *testing.T) {
	assert.NotPanics(t, func() {
		assert.Equal(t, "1234.50", FormatCurrency(decimal.RequireFromString("1234.5"), domain.FiatCode("XYZ")))
		assert.Equal(t, "10.00", FormatCurrency(decimal.NewFromInt(10), domain.FiatCode("")))
	})
}

func TestFormatCurrency_KeepsPrecision(t *testing.T) {
	tests := []struct {
		amount   string
		fiat     domain.FiatCode
		expected string
	}{
		{amount: "12345678901234567.89", fiat: domain.FiatUSD, expected: "$12,345,678,901,234,567.89"},
		{amount: "98765432109876543210.5", fiat: domain.FiatJPY, expected: "¥98,765,432,109,876,543,211"},
		{amount: "0.005", fiat: domain.FiatEUR, expected: "€0.01"},
		{amount: "-0.001", fiat: domain.FiatGBP, expected: "£0.00"},
		{amount: "999.999", fiat: domain.FiatINR, expected: "₹1,000.00"},
	}

	for _, tt := range tests {
		t.Run(tt.amount, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatCurrency(decimal.RequireFromString(tt.amount), tt.fiat))
		})
	}
}

func TestScaleOf(t *testing.T) {
	assert.Equal(t, 2, scaleOf(domain.FiatUSD))
	assert.Equal(t, 0, scaleOf(domain.FiatJPY))
	assert.Equal(t, 2, scaleOf(domain.FiatCode("nope")))
}

func TestGroup(t *testing.T) {
	assert.Equal(t, "0", group("0"))
	assert.Equal(t, "999", group("999"))
	assert.Equal(t, "1,000", group("1000"))
	assert.Equal(t, "123,456", group("123456"))
	assert.Equal(t, "1,234,567", group("1234567"))
}

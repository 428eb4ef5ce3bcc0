// Package domain defines core data structures used throughout the converter.
package domain

import "strings"

// FiatCode fiat currency the converter can price assets in.
type FiatCode string

const (
	// FiatUSD United States dollar.
	FiatUSD FiatCode = "USD"
	// FiatEUR euro.
	FiatEUR FiatCode = "EUR"
	// FiatINR Indian rupee.
	FiatINR FiatCode = "INR"
	// FiatGBP pound sterling.
	FiatGBP FiatCode = "GBP"
	// FiatJPY Japanese yen.
	FiatJPY FiatCode = "JPY"
)

var fiatCodes = []FiatCode{FiatUSD, FiatEUR, FiatINR, FiatGBP, FiatJPY}

// FiatCodes returns the supported fiat codes in display order.
func FiatCodes() []FiatCode {
	out := make([]FiatCode, len(fiatCodes))
	copy(out, fiatCodes)
	return out
}

// ParseFiatCode parses a fiat code ignoring case and surrounding spaces.
func ParseFiatCode(s string) (FiatCode, error) {
	code := FiatCode(strings.ToUpper(strings.TrimSpace(s)))
	if !code.IsValid() {
		return "", NewValidationError("unsupported fiat currency %q", s)
	}
	return code, nil
}

// String returns the string representation.
func (f FiatCode) String() string {
	return string(f)
}

// Lower returns the lower-cased code used in provider queries.
func (f FiatCode) Lower() string {
	return strings.ToLower(string(f))
}

// IsValid checks if the FiatCode value is one of the supported codes.
func (f FiatCode) IsValid() bool {
	for _, c := range fiatCodes {
		if c == f {
			return true
		}
	}
	return false
}

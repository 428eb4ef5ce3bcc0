package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// MinAmount smallest amount accepted for conversion.
var MinAmount = decimal.NewFromInt(1)

// ConversionRequest single conversion attempt built from the form selection.
type ConversionRequest struct {
	AssetID string
	Fiat    FiatCode
	Amount  decimal.Decimal
}

// NewConversionRequest creates a request. Validation happens in the conversion service.
func NewConversionRequest(assetID string, fiat FiatCode, amount decimal.Decimal) ConversionRequest {
	return ConversionRequest{
		AssetID: strings.TrimSpace(assetID),
		Fiat:    fiat,
		Amount:  amount,
	}
}

// Validate checks the request preconditions.
func (r ConversionRequest) Validate() error {
	if r.AssetID == "" {
		return NewValidationError("asset is not selected")
	}
	if !r.Fiat.IsValid() {
		return NewValidationError("unsupported fiat currency %q", r.Fiat)
	}
	if r.Amount.LessThan(MinAmount) {
		return NewValidationError("amount %s is below minimum %s", r.Amount.String(), MinAmount.String())
	}
	return nil
}

// ConversionResult converted amount held for display.
type ConversionResult struct {
	AssetID   string          `json:"asset_id"`
	Amount    decimal.Decimal `json:"amount"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Fiat      FiatCode        `json:"fiat"`
}

// ParseAmount parses user-entered amount text.
// Empty, non-numeric and non-finite input is rejected.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Decimal{}, NewValidationError("amount is empty")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, NewValidationError("amount %q is not a number", s)
	}
	return d, nil
}

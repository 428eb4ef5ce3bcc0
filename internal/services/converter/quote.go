package converter

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/vadiminshakov/coinconv/internal/clients"
	"github.com/vadiminshakov/coinconv/internal/domain"
)

type quote struct {
	assetKey    string
	currencyKey string
	price       decimal.Decimal
}

// extractQuote reads the single asset -> currency -> price entry of a /simple/price payload.
// Keys are taken from the payload, the provider may not echo the requested spelling.
// The currency key must still match fiat ignoring case.
func extractQuote(prices clients.SimplePrices, fiat domain.FiatCode) (quote, error) {
	if len(prices) != 1 {
		return quote{}, fmt.Errorf("expected exactly one asset in price response, got %d", len(prices))
	}

	var q quote
	var byCurrency map[string]json.Number
	for k, v := range prices {
		q.assetKey, byCurrency = k, v
	}
	if q.assetKey == "" {
		return quote{}, errors.New("price response has an empty asset key")
	}

	if len(byCurrency) != 1 {
		return quote{}, fmt.Errorf("expected exactly one currency for %q, got %d", q.assetKey, len(byCurrency))
	}

	var raw json.Number
	for k, v := range byCurrency {
		q.currencyKey, raw = k, v
	}
	if !strings.EqualFold(q.currencyKey, fiat.String()) {
		return quote{}, fmt.Errorf("price quoted in %q, requested %q", q.currencyKey, fiat.Lower())
	}

	if raw == "" {
		return quote{}, fmt.Errorf("no price for %q in %q", q.assetKey, q.currencyKey)
	}
	price, err := decimal.NewFromString(raw.String())
	if err != nil {
		return quote{}, errors.Wrapf(err, "price %q is not numeric", raw.String())
	}
	if price.IsNegative() {
		return quote{}, fmt.Errorf("negative price %s", price.String())
	}
	q.price = price

	return q, nil
}

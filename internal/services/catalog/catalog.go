// Package catalog loads the list of assets offered for conversion.
package catalog

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/vadiminshakov/coinconv/internal/clients"
	"github.com/vadiminshakov/coinconv/internal/domain"
)

type marketLister interface {
	ListMarkets(ctx context.Context, fiat domain.FiatCode) ([]clients.MarketCoin, error)
}

// Loader fetches the asset catalog from the market data provider.
type Loader struct {
	markets marketLister
	logger  *zap.Logger
}

// NewLoader creates a catalog loader.
func NewLoader(markets marketLister, logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{markets: markets, logger: logger}
}

// LoadAssets returns the provider-ordered assets priced in fiat.
// Any failure is reported as *domain.LoadError and no assets are returned.
func (l *Loader) LoadAssets(ctx context.Context, fiat domain.FiatCode) ([]domain.Asset, error) {
	if !fiat.IsValid() {
		return nil, l.fail(fiat, fmt.Errorf("unsupported fiat currency %q", fiat))
	}

	coins, err := l.markets.ListMarkets(ctx, fiat)
	if err != nil {
		return nil, l.fail(fiat, errors.Wrap(err, "list markets"))
	}

	assets, err := toAssets(coins)
	if err != nil {
		return nil, l.fail(fiat, err)
	}

	l.logger.Debug("catalog loaded", zap.String("fiat", fiat.String()), zap.Int("assets", len(assets)))
	return assets, nil
}

// Load returns the catalog for fiat with the first asset nominated as default.
func (l *Loader) Load(ctx context.Context, fiat domain.FiatCode) (domain.Catalog, error) {
	assets, err := l.LoadAssets(ctx, fiat)
	if err != nil {
		return domain.Catalog{Fiat: fiat}, err
	}
	return domain.NewCatalog(fiat, assets), nil
}

func (l *Loader) fail(fiat domain.FiatCode, err error) error {
	l.logger.Error("failed to load cryptocurrencies", zap.String("fiat", fiat.String()), zap.Error(err))
	return domain.NewLoadError(err)
}

func toAssets(coins []clients.MarketCoin) ([]domain.Asset, error) {
	if len(coins) == 0 {
		return nil, errors.New("provider returned an empty listing")
	}

	seen := make(map[string]struct{}, len(coins))
	assets := make([]domain.Asset, 0, len(coins))
	for i, c := range coins {
		if c.ID == "" {
			return nil, fmt.Errorf("listing entry %d has no id", i)
		}
		if _, dup := seen[c.ID]; dup {
			return nil, fmt.Errorf("listing contains duplicate id %q", c.ID)
		}
		seen[c.ID] = struct{}{}

		name := c.Name
		if name == "" {
			name = c.ID
		}
		assets = append(assets, domain.Asset{ID: c.ID, Name: name})
	}

	return assets, nil
}

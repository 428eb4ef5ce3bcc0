package catalog

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/vadiminshakov/coinconv/internal/clients"
	"github.com/vadiminshakov/coinconv/internal/domain"
	marketMock "github.com/vadiminshakov/coinconv/mocks/marketdata"
)

func TestLoader_LoadAssets(t *testing.T) {
	markets := marketMock.NewMarketLister(t)
	markets.On("ListMarkets", mock.Anything, domain.FiatUSD).Return([]clients.MarketCoin{
		{ID: "bitcoin", Symbol: "btc", Name: "Bitcoin"},
		{ID: "ethereum", Symbol: "eth", Name: "Ethereum"},
		{ID: "tether", Symbol: "usdt", Name: "Tether"},
	}, nil)

	l := NewLoader(markets, zap.NewNop())

	assets, err := l.LoadAssets(context.Background(), domain.FiatUSD)
	require.NoError(t, err)
	assert.Equal(t, []domain.Asset{
		{ID: "bitcoin", Name: "Bitcoin"},
		{ID: "ethereum", Name: "Ethereum"},
		{ID: "tether", Name: "Tether"},
	}, assets)
}

func TestLoader_Load_DefaultSelection(t *testing.T) {
	markets := marketMock.NewMarketLister(t)
	markets.On("ListMarkets", mock.Anything, domain.FiatJPY).Return([]clients.MarketCoin{
		{ID: "ethereum", Name: "Ethereum"},
		{ID: "bitcoin", Name: "Bitcoin"},
	}, nil)

	c, err := NewLoader(markets, nil).Load(context.Background(), domain.FiatJPY)
	require.NoError(t, err)
	assert.Equal(t, domain.FiatJPY, c.Fiat)
	assert.Equal(t, "ethereum", c.Default)
}

func TestLoader_LoadAssets_Failures(t *testing.T) {
	tests := []struct {
		name  string
		coins []clients.MarketCoin
		err   error
	}{
		{name: "Network error", err: errors.New("connection refused")},
		{name: "Empty listing", coins: []clients.MarketCoin{}},
		{name: "Missing id", coins: []clients.MarketCoin{{ID: "bitcoin", Name: "Bitcoin"}, {Name: "Nameless"}}},
		{name: "Duplicate id", coins: []clients.MarketCoin{{ID: "bitcoin", Name: "Bitcoin"}, {ID: "bitcoin", Name: "Bitcoin again"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			markets := marketMock.NewMarketLister(t)
			markets.On("ListMarkets", mock.Anything, domain.FiatGBP).Return(tt.coins, tt.err)

			assets, err := NewLoader(markets, zap.NewNop()).LoadAssets(context.Background(), domain.FiatGBP)
			require.Error(t, err)
			assert.Nil(t, assets)
			assert.True(t, domain.IsLoadError(err))
			assert.Equal(t, "Failed to load cryptocurrencies", err.Error())
		})
	}
}

func TestLoader_LoadAssets_UnsupportedFiat(t *testing.T) {
	markets := marketMock.NewMarketLister(t)

	_, err := NewLoader(markets, zap.NewNop()).LoadAssets(context.Background(), domain.FiatCode("CHF"))
	require.Error(t, err)
	assert.True(t, domain.IsLoadError(err))
	markets.AssertNotCalled(t, "ListMarkets", mock.Anything, mock.Anything)
}

func TestLoader_LoadAssets_NameFallsBackToID(t *testing.T) {
	markets := marketMock.NewMarketLister(t)
	markets.On("ListMarkets", mock.Anything, domain.FiatINR).Return([]clients.MarketCoin{{ID: "wrapped-bitcoin"}}, nil)

	assets, err := NewLoader(markets, zap.NewNop()).LoadAssets(context.Background(), domain.FiatINR)
	require.NoError(t, err)
	assert.Equal(t, "wrapped-bitcoin", assets[0].Name)
}

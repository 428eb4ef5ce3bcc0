package catalog

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/vadiminshakov/coinconv/internal/domain"
)

type stubLoader struct {
	assets map[domain.FiatCode][]domain.Asset
	err    error
}

func (s *stubLoader) LoadAssets(_ context.Context, fiat domain.FiatCode) ([]domain.Asset, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.assets[fiat], nil
}

// gatedLoader blocks each call until its fiat gate is closed.
type gatedLoader struct {
	mu        sync.Mutex
	gates     map[domain.FiatCode]chan struct{}
	assets    map[domain.FiatCode][]domain.Asset
	started   chan domain.FiatCode
	cancelled map[domain.FiatCode]bool
}

func newGatedLoader() *gatedLoader {
	return &gatedLoader{
		gates: map[domain.FiatCode]chan struct{}{
			domain.FiatUSD: make(chan struct{}),
			domain.FiatEUR: make(chan struct{}),
		},
		assets: map[domain.FiatCode][]domain.Asset{
			domain.FiatUSD: {{ID: "bitcoin", Name: "Bitcoin"}},
			domain.FiatEUR: {{ID: "ethereum", Name: "Ethereum"}, {ID: "bitcoin", Name: "Bitcoin"}},
		},
		started:   make(chan domain.FiatCode, 2),
		cancelled: make(map[domain.FiatCode]bool),
	}
}

func (g *gatedLoader) LoadAssets(ctx context.Context, fiat domain.FiatCode) ([]domain.Asset, error) {
	g.started <- fiat
	<-g.gates[fiat]

	g.mu.Lock()
	g.cancelled[fiat] = ctx.Err() != nil
	g.mu.Unlock()

	return g.assets[fiat], nil
}

func TestTracker_Refresh(t *testing.T) {
	loader := &stubLoader{assets: map[domain.FiatCode][]domain.Asset{
		domain.FiatUSD: {{ID: "bitcoin", Name: "Bitcoin"}, {ID: "ethereum", Name: "Ethereum"}},
	}}
	tr := NewTracker(loader, zap.NewNop())

	c, state := tr.Current()
	assert.True(t, c.IsEmpty())
	assert.Equal(t, domain.StatusIdle, state.Status)

	c, err := tr.Refresh(context.Background(), domain.FiatUSD)
	require.NoError(t, err)
	assert.Equal(t, "bitcoin", c.Default)

	current, state := tr.Current()
	assert.Equal(t, c, current)
	assert.Equal(t, domain.StatusSuccess, state.Status)
	assert.Equal(t, uint64(1), state.Seq)
}

func TestTracker_Refresh_FailureEmptiesCatalog(t *testing.T) {
	loader := &stubLoader{assets: map[domain.FiatCode][]domain.Asset{
		domain.FiatUSD: {{ID: "bitcoin", Name: "Bitcoin"}},
	}}
	tr := NewTracker(loader, zap.NewNop())

	_, err := tr.Refresh(context.Background(), domain.FiatUSD)
	require.NoError(t, err)

	loader.err = domain.NewLoadError(errors.New("boom"))
	_, err = tr.Refresh(context.Background(), domain.FiatUSD)
	require.Error(t, err)

	c, state := tr.Current()
	assert.True(t, c.IsEmpty())
	assert.Equal(t, domain.StatusError, state.Status)
	assert.True(t, domain.IsLoadError(state.Err))
}

func TestTracker_Refresh_LastInitiatedWins(t *testing.T) {
	loader := newGatedLoader()
	tr := NewTracker(loader, zap.NewNop())
	ctx := context.Background()

	usdErr := make(chan error, 1)
	go func() {
		_, err := tr.Refresh(ctx, domain.FiatUSD)
		usdErr <- err
	}()
	require.Equal(t, domain.FiatUSD, <-loader.started)

	type outcome struct {
		catalog domain.Catalog
		err     error
	}
	eurDone := make(chan outcome, 1)
	go func() {
		c, err := tr.Refresh(ctx, domain.FiatEUR)
		eurDone <- outcome{c, err}
	}()
	require.Equal(t, domain.FiatEUR, <-loader.started)

	close(loader.gates[domain.FiatEUR])
	eur := <-eurDone
	require.NoError(t, eur.err)
	assert.Equal(t, domain.FiatEUR, eur.catalog.Fiat)

	// the older USD response arrives last and must not be applied
	close(loader.gates[domain.FiatUSD])
	select {
	case err := <-usdErr:
		assert.ErrorIs(t, err, domain.ErrStaleResponse)
	case <-time.After(time.Second):
		t.Fatal("stale refresh did not return")
	}

	c, state := tr.Current()
	assert.Equal(t, domain.FiatEUR, c.Fiat)
	assert.Equal(t, "ethereum", c.Default)
	assert.Equal(t, domain.StatusSuccess, state.Status)
	assert.Equal(t, uint64(2), state.Seq)

	loader.mu.Lock()
	defer loader.mu.Unlock()
	assert.True(t, loader.cancelled[domain.FiatUSD], "superseded request context must be cancelled")
	assert.False(t, loader.cancelled[domain.FiatEUR])
}

func TestTracker_Current_ReturnsCopy(t *testing.T) {
	loader := &stubLoader{assets: map[domain.FiatCode][]domain.Asset{
		domain.FiatUSD: {{ID: "bitcoin", Name: "Bitcoin"}},
	}}
	tr := NewTracker(loader, zap.NewNop())
	_, err := tr.Refresh(context.Background(), domain.FiatUSD)
	require.NoError(t, err)

	c, _ := tr.Current()
	c.Assets[0].Name = "changed"

	again, _ := tr.Current()
	assert.Equal(t, "Bitcoin", again.Assets[0].Name)
}

package catalog

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/vadiminshakov/coinconv/internal/domain"
)

type assetLoader interface {
	LoadAssets(ctx context.Context, fiat domain.FiatCode) ([]domain.Asset, error)
}

// Tracker holds the current catalog of one form.
// The last refresh initiated is the last one applied: older responses are dropped.
type Tracker struct {
	loader assetLoader
	logger *zap.Logger

	mu      sync.Mutex
	seq     uint64
	cancel  context.CancelFunc
	catalog domain.Catalog
	state   domain.OperationState
}

// NewTracker creates a tracker with an empty catalog.
func NewTracker(loader assetLoader, logger *zap.Logger) *Tracker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Tracker{
		loader: loader,
		logger: logger,
		state:  domain.OperationState{Status: domain.StatusIdle},
	}
}

// Refresh loads the catalog for fiat and applies it unless a newer refresh was started meanwhile,
// in which case domain.ErrStaleResponse is returned.
func (t *Tracker) Refresh(ctx context.Context, fiat domain.FiatCode) (domain.Catalog, error) {
	t.mu.Lock()
	t.seq++
	seq := t.seq
	if t.cancel != nil {
		t.cancel()
	}
	reqCtx, cancel := context.WithCancel(ctx)
	t.cancel = cancel
	t.state = t.state.Begin(seq)
	t.mu.Unlock()

	defer cancel()

	assets, err := t.loader.LoadAssets(reqCtx, fiat)

	t.mu.Lock()
	defer t.mu.Unlock()

	if seq != t.seq {
		t.logger.Debug("dropping stale catalog response",
			zap.String("fiat", fiat.String()), zap.Uint64("seq", seq), zap.Uint64("latest", t.seq))
		return domain.Catalog{}, domain.ErrStaleResponse
	}
	t.cancel = nil

	if err != nil {
		t.catalog = domain.Catalog{Fiat: fiat}
		t.state = t.state.Fail(seq, err)
		return t.catalog, err
	}

	t.catalog = domain.NewCatalog(fiat, assets)
	t.state = t.state.Succeed(seq)
	return t.catalog, nil
}

// Current returns the applied catalog and the state of the latest refresh.
func (t *Tracker) Current() (domain.Catalog, domain.OperationState) {
	t.mu.Lock()
	defer t.mu.Unlock()

	c := t.catalog
	c.Assets = append([]domain.Asset(nil), t.catalog.Assets...)
	return c, t.state
}

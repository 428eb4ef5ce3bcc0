package internal

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/vadiminshakov/coinconv/internal/domain"
)

type catalogTracker interface {
	Refresh(ctx context.Context, fiat domain.FiatCode) (domain.Catalog, error)
	Current() (domain.Catalog, domain.OperationState)
}

type conversionService interface {
	Convert(ctx context.Context, req domain.ConversionRequest) (domain.ConversionResult, error)
}

// FormState immutable snapshot of a converter form for rendering.
type FormState struct {
	Catalog         domain.Catalog
	CatalogState    domain.OperationState
	SelectedAsset   string
	SelectedFiat    domain.FiatCode
	Result          *domain.ConversionResult
	ConversionState domain.OperationState
}

// Banner returns the persistent catalog error message, if any.
func (s FormState) Banner() string {
	if s.CatalogState.Status == domain.StatusError && s.CatalogState.Err != nil {
		return s.CatalogState.Err.Error()
	}
	return ""
}

// Form converter form: one asset selection, one fiat selection and the last result.
// Selections are explicit fields read once per operation, never ambient.
type Form struct {
	catalog   catalogTracker
	converter conversionService
	logger    *zap.Logger

	mu        sync.Mutex
	fiat      domain.FiatCode
	asset     string
	result    *domain.ConversionResult
	convSeq   uint64
	convState domain.OperationState
}

// NewForm creates a form with defaultFiat preselected. Call Start to load the catalog.
func NewForm(catalog catalogTracker, converter conversionService, defaultFiat domain.FiatCode, logger *zap.Logger) *Form {
	if logger == nil {
		logger = zap.NewNop()
	}
	if !defaultFiat.IsValid() {
		defaultFiat = domain.FiatUSD
	}
	return &Form{
		catalog:   catalog,
		converter: converter,
		logger:    logger,
		fiat:      defaultFiat,
		convState: domain.OperationState{Status: domain.StatusIdle},
	}
}

// Start loads the catalog for the preselected fiat currency.
func (f *Form) Start(ctx context.Context) error {
	f.mu.Lock()
	fiat := f.fiat
	f.mu.Unlock()

	return f.SelectFiat(ctx, fiat)
}

// SelectFiat reloads the catalog priced in fiat. The selected fiat always follows
// the catalog the tracker holds, so overlapping calls settle on the last applied one.
// The selected asset survives when the new catalog still lists it.
func (f *Form) SelectFiat(ctx context.Context, fiat domain.FiatCode) error {
	if !fiat.IsValid() {
		return domain.NewValidationError("unsupported fiat currency %q", fiat)
	}

	_, err := f.catalog.Refresh(ctx, fiat)
	if errors.Is(err, domain.ErrStaleResponse) {
		// a newer selection owns the catalog now
		return nil
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	// re-read under the form lock: a newer refresh may have been applied meanwhile
	current, _ := f.catalog.Current()
	f.fiat = current.Fiat
	if !current.Contains(f.asset) {
		f.asset = current.Default
	}
	return err
}

// SelectAsset selects an asset listed in the current catalog.
func (f *Form) SelectAsset(id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	catalog, _ := f.catalog.Current()
	if !catalog.Contains(id) {
		return domain.NewValidationError("asset %q is not in the catalog", id)
	}
	f.asset = id
	return nil
}

// Convert converts amountText of the selected asset into the selected fiat.
// On failure the previously displayed result is kept unchanged.
func (f *Form) Convert(ctx context.Context, amountText string) (domain.ConversionResult, error) {
	f.mu.Lock()
	f.convSeq++
	seq := f.convSeq
	f.convState = f.convState.Begin(seq)
	asset, fiat := f.asset, f.fiat
	f.mu.Unlock()

	res, err := f.convert(ctx, asset, fiat, amountText)

	f.mu.Lock()
	defer f.mu.Unlock()

	if seq != f.convSeq {
		f.logger.Debug("dropping stale conversion result", zap.Uint64("seq", seq), zap.Uint64("latest", f.convSeq))
		if err != nil {
			return domain.ConversionResult{}, err
		}
		return res, domain.ErrStaleResponse
	}

	if err != nil {
		f.convState = f.convState.Fail(seq, err)
		return domain.ConversionResult{}, err
	}

	f.convState = f.convState.Succeed(seq)
	f.result = &res
	return res, nil
}

func (f *Form) convert(ctx context.Context, asset string, fiat domain.FiatCode, amountText string) (domain.ConversionResult, error) {
	amount, err := domain.ParseAmount(amountText)
	if err != nil {
		f.logger.Warn("conversion rejected", zap.String("amount", amountText), zap.String("reason", domain.Describe(err)))
		return domain.ConversionResult{}, err
	}
	return f.converter.Convert(ctx, domain.NewConversionRequest(asset, fiat, amount))
}

// State returns a snapshot of the form.
func (f *Form) State() FormState {
	f.mu.Lock()
	defer f.mu.Unlock()

	catalog, catalogState := f.catalog.Current()
	s := FormState{
		Catalog:         catalog,
		CatalogState:    catalogState,
		SelectedAsset:   f.asset,
		SelectedFiat:    f.fiat,
		ConversionState: f.convState,
	}
	if f.result != nil {
		res := *f.result
		s.Result = &res
	}
	return s
}

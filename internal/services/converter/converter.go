// Package converter prices an amount of a crypto asset in a fiat currency.
package converter

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/vadiminshakov/coinconv/internal/clients"
	"github.com/vadiminshakov/coinconv/internal/domain"
)

type priceSource interface {
	SimplePrice(ctx context.Context, assetID string, fiat domain.FiatCode) (clients.SimplePrices, error)
}

type journal interface {
	Save(event domain.ConversionEvent) error
}

// Service converts crypto amounts to fiat using the provider spot price.
type Service struct {
	prices  priceSource
	journal journal
	logger  *zap.Logger
	now     func() time.Time
}

// Option configures the Service.
type Option func(*Service)

// WithJournal records every attempt that passes validation.
func WithJournal(j journal) Option {
	return func(s *Service) {
		s.journal = j
	}
}

// NewService creates a conversion service.
func NewService(prices priceSource, logger *zap.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Service{
		prices: prices,
		logger: logger,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Convert validates req, fetches the unit price and multiplies it by the amount.
// Invalid input yields *domain.ValidationError without any network call,
// every later failure yields *domain.ConversionError.
func (s *Service) Convert(ctx context.Context, req domain.ConversionRequest) (domain.ConversionResult, error) {
	if err := req.Validate(); err != nil {
		s.logger.Warn("conversion rejected",
			zap.String("asset", req.AssetID),
			zap.String("fiat", req.Fiat.String()),
			zap.String("amount", req.Amount.String()),
			zap.String("reason", domain.Describe(err)),
		)
		return domain.ConversionResult{}, err
	}

	result, err := s.convert(ctx, req)
	s.record(req, result, err)
	if err != nil {
		s.logger.Error("conversion failed",
			zap.String("asset", req.AssetID),
			zap.String("fiat", req.Fiat.String()),
			zap.Error(err),
		)
		return domain.ConversionResult{}, domain.NewConversionError(err)
	}

	s.logger.Info("conversion succeeded",
		zap.String("asset", req.AssetID),
		zap.String("fiat", result.Fiat.String()),
		zap.String("unit_price", result.UnitPrice.String()),
		zap.String("amount", result.Amount.String()),
	)
	return result, nil
}

func (s *Service) convert(ctx context.Context, req domain.ConversionRequest) (domain.ConversionResult, error) {
	prices, err := s.prices.SimplePrice(ctx, req.AssetID, req.Fiat)
	if err != nil {
		return domain.ConversionResult{}, errors.Wrap(err, "fetch spot price")
	}

	q, err := extractQuote(prices, req.Fiat)
	if err != nil {
		return domain.ConversionResult{}, err
	}
	if q.assetKey != req.AssetID {
		s.logger.Debug("provider echoed a different asset key",
			zap.String("requested", req.AssetID), zap.String("returned", q.assetKey))
	}

	return domain.ConversionResult{
		AssetID:   req.AssetID,
		Amount:    q.price.Mul(req.Amount),
		UnitPrice: q.price,
		Fiat:      req.Fiat,
	}, nil
}

func (s *Service) record(req domain.ConversionRequest, result domain.ConversionResult, convErr error) {
	if s.journal == nil {
		return
	}

	event := domain.ConversionEvent{
		ID:        uuid.New().String(),
		Timestamp: s.now().UTC(),
		AssetID:   req.AssetID,
		Fiat:      req.Fiat.String(),
		Amount:    req.Amount.String(),
	}
	if convErr != nil {
		event.Error = convErr.Error()
	} else {
		event.UnitPrice = result.UnitPrice.String()
		event.Result = result.Amount.String()
	}

	if err := s.journal.Save(event); err != nil {
		s.logger.Warn("failed to journal conversion", zap.String("event_id", event.ID), zap.Error(err))
	}
}

package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/vadiminshakov/coinconv/internal/domain"
	"github.com/vadiminshakov/coinconv/internal/services/format"
)

const (
	journalPollInterval = 2 * time.Second
	apiTimeout          = 30 * time.Second
)

type catalogLoader interface {
	Load(ctx context.Context, fiat domain.FiatCode) (domain.Catalog, error)
}

type conversionService interface {
	Convert(ctx context.Context, req domain.ConversionRequest) (domain.ConversionResult, error)
}

type conversionEventReader interface {
	EventsAfter(index uint64) ([]domain.ConversionEventRecord, error)
}

// Server exposes the converter as a JSON API, an HTML page and an SSE stream of conversions.
type Server struct {
	Addr      string
	Catalog   catalogLoader
	Converter conversionService
	Journal   conversionEventReader
	logger    *zap.Logger
}

// NewServer creates a new web server instance. journal may be nil.
func NewServer(addr string, catalog catalogLoader, converter conversionService, journal conversionEventReader, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{Addr: addr, Catalog: catalog, Converter: converter, Journal: journal, logger: logger}
}

// Routes builds the HTTP handler.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleIndex)
	r.Get("/conversions/stream", s.handleConversionStream)

	r.Route("/api", func(api chi.Router) {
		api.Use(cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type"},
			MaxAge:         300,
		}))
		api.Use(middleware.Timeout(apiTimeout))

		api.Get("/fiats", s.handleFiats)
		api.Get("/assets", s.handleAssets)
		api.Post("/convert", s.handleConvert)
	})

	return r
}

// Start runs the HTTP server (blocking) and shuts it down when ctx is cancelled.
func (s *Server) Start(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	server := &http.Server{
		Addr:              s.Addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	s.logger.Info("web server listening", zap.String("addr", s.Addr))
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

type assetsResponse struct {
	Fiat    domain.FiatCode `json:"fiat"`
	Default string          `json:"default"`
	Assets  []domain.Asset  `json:"assets"`
}

type convertRequest struct {
	AssetID string `json:"asset_id"`
	Fiat    string `json:"fiat"`
	// Amount is text so that the same parsing rules apply as for form input.
	Amount json.RawMessage `json:"amount"`
}

type convertResponse struct {
	AssetID   string          `json:"asset_id"`
	Amount    string          `json:"amount"`
	UnitPrice string          `json:"unit_price"`
	Fiat      domain.FiatCode `json:"fiat"`
	Formatted string          `json:"formatted"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, indexHTML)
}

func (s *Server) handleFiats(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, domain.FiatCodes())
}

func (s *Server) handleAssets(w http.ResponseWriter, r *http.Request) {
	fiatParam := r.URL.Query().Get("fiat")
	fiat := domain.FiatUSD
	if fiatParam != "" {
		parsed, err := domain.ParseFiatCode(fiatParam)
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		fiat = parsed
	}

	c, err := s.Catalog.Load(r.Context(), fiat)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}

	writeJSON(w, http.StatusOK, assetsResponse{Fiat: c.Fiat, Default: c.Default, Assets: c.Assets})
}

func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	var body convertRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<16)).Decode(&body); err != nil {
		s.logger.Warn("malformed convert request", zap.Error(err))
		writeError(w, http.StatusBadRequest, domain.NewValidationError("malformed body"))
		return
	}

	fiat, err := domain.ParseFiatCode(body.Fiat)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	amount, err := domain.ParseAmount(amountText(body.Amount))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	res, err := s.Converter.Convert(r.Context(), domain.NewConversionRequest(body.AssetID, fiat, amount))
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}

	writeJSON(w, http.StatusOK, convertResponse{
		AssetID:   res.AssetID,
		Amount:    res.Amount.String(),
		UnitPrice: res.UnitPrice.String(),
		Fiat:      res.Fiat,
		Formatted: format.FormatCurrency(res.Amount, res.Fiat),
	})
}

func (s *Server) handleConversionStream(w http.ResponseWriter, r *http.Request) {
	if s.Journal == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		fmt.Fprint(w, "conversion journal not available")
		return
	}
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	// send a comment heartbeat every 30s so proxies keep connection
	heartbeat := time.NewTicker(30 * time.Second)
	defer heartbeat.Stop()

	pollTicker := time.NewTicker(journalPollInterval)
	defer pollTicker.Stop()

	lastIndex := uint64(0)
	sendEvents := func() error {
		// the journal hands out bounded pages, drain until caught up
		for {
			records, err := s.Journal.EventsAfter(lastIndex)
			if err != nil {
				return err
			}
			if len(records) == 0 {
				return nil
			}
			if err := s.writeEvents(w, records, &lastIndex); err != nil {
				return err
			}
			flusher.Flush()
		}
	}

	if err := sendEvents(); err != nil {
		http.Error(w, "failed to load conversions", http.StatusInternalServerError)
		s.logger.Error("conversion stream initial load", zap.Error(err))
		return
	}

	for {
		select {
		case <-r.Context().Done():
			return
		case <-heartbeat.C:
			fmt.Fprintf(w, ": ping\n\n")
			flusher.Flush()
		case <-pollTicker.C:
			if err := sendEvents(); err != nil {
				s.logger.Warn("conversion stream poll", zap.Error(err))
			}
		}
	}
}

func (s *Server) writeEvents(w http.ResponseWriter, records []domain.ConversionEventRecord, lastIndex *uint64) error {
	for _, record := range records {
		payload, err := json.Marshal(record.Event)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "event: conversion\n")
		fmt.Fprintf(w, "data: %s\n\n", payload)
		*lastIndex = record.Index
	}
	return nil
}

// amountText accepts the amount either as a JSON number or as a JSON string.
func amountText(raw json.RawMessage) string {
	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		return text
	}
	return string(raw)
}

func statusFor(err error) int {
	switch {
	case domain.IsValidationError(err):
		return http.StatusBadRequest
	case domain.IsLoadError(err), domain.IsConversionError(err):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Command coinconv converts an amount of a cryptocurrency into a fiat currency
// using live CoinGecko market data. It runs either as an interactive terminal
// form or as a web server, and is configured via a YAML file or command-line
// arguments.
//
// Usage:
//
//	coinconv --config config.yaml
//	coinconv --mode web --listen :8080
//	coinconv (terminal form with defaults)
//
// Optional environment variables:
//
//	COINGECKO_API_KEY: demo API key sent with every request
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/vadiminshakov/coinconv/config"
	"github.com/vadiminshakov/coinconv/internal"
	"github.com/vadiminshakov/coinconv/internal/clients"
	"github.com/vadiminshakov/coinconv/internal/services/catalog"
	"github.com/vadiminshakov/coinconv/internal/services/converter"
	"github.com/vadiminshakov/coinconv/internal/storage/conversions"
	"github.com/vadiminshakov/coinconv/internal/tui"
	"github.com/vadiminshakov/coinconv/internal/web"
)

// tuiLogFile receives logs in terminal mode so they do not draw over the form.
const tuiLogFile = "coinconv.log"

func main() {
	conf, err := config.Get()
	if err != nil {
		log.Fatal(err)
	}

	logger, err := newLogger(conf)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gecko := clients.NewCoinGeckoClient(conf.APIURL,
		clients.WithAPIKey(conf.APIKey),
		clients.WithTimeout(conf.RequestTimeout),
	)

	var opts []converter.Option
	var journal *conversions.Journal
	if conf.JournalDir != "" {
		journal, err = conversions.Open(conf.JournalDir, logger)
		if err != nil {
			logger.Fatal("failed to open conversion journal", zap.String("dir", conf.JournalDir), zap.Error(err))
		}
		defer journal.Close()
		opts = append(opts, converter.WithJournal(journal))
	}

	loader := catalog.NewLoader(gecko, logger)
	conv := converter.NewService(gecko, logger, opts...)

	switch conf.Mode {
	case config.ModeWeb:
		err = runWeb(ctx, conf, logger, loader, conv, journal)
	default:
		form := internal.NewForm(catalog.NewTracker(loader, logger), conv, conf.DefaultFiat, logger)
		err = tui.New(form).Run(ctx)
	}

	if err != nil && ctx.Err() == nil {
		logger.Fatal("coinconv stopped", zap.String("mode", conf.Mode), zap.Error(err))
	}
}

func runWeb(ctx context.Context, conf config.Config, logger *zap.Logger,
	loader *catalog.Loader, conv *converter.Service, journal *conversions.Journal) error {
	var server *web.Server
	if journal != nil {
		server = web.NewServer(conf.ListenAddr, loader, conv, journal, logger)
	} else {
		// keep the interface nil so the stream endpoint reports it as unavailable
		server = web.NewServer(conf.ListenAddr, loader, conv, nil, logger)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return server.Start(gctx)
	})
	g.Go(func() error {
		// probe the provider once so a bad api_url or key shows up at startup
		c, err := loader.Load(gctx, conf.DefaultFiat)
		if err != nil {
			logger.Warn("initial catalog load failed", zap.String("fiat", conf.DefaultFiat.String()), zap.Error(err))
			return nil
		}
		logger.Info("catalog available", zap.String("fiat", c.Fiat.String()), zap.Int("assets", len(c.Assets)))
		return nil
	})

	return g.Wait()
}

func newLogger(conf config.Config) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(conf.LogLevel)
	if conf.Mode == config.ModeTUI {
		zc.OutputPaths = []string{tuiLogFile}
		zc.ErrorOutputPaths = []string{tuiLogFile}
	}
	return zc.Build()
}

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"vendas/internal/auth"
	"vendas/internal/cli"
	"vendas/internal/config"
	"vendas/internal/dashboard"
	"vendas/internal/feed"
	apphttp "vendas/internal/http"
	"vendas/internal/log"
	"vendas/internal/report"
	gsheet "vendas/internal/report/google"
	"vendas/internal/session"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger()

	logger.Info("Starting vendas server")

	cfg := cli.LoadAndValidateConfig(logger)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	backend, err := cli.OpenStore(ctx, cfg)
	if err != nil {
		logger.Error("Failed to initialize data backend",
			log.FieldError, err.Error(), "backend", cfg.DataBackend)
		os.Exit(1)
	}
	defer backend.Close()
	logger.Info("Data backend initialized", "backend", cfg.DataBackend)

	sessions, err := openSessions(cfg)
	if err != nil {
		logger.Error("Failed to initialize session backend",
			log.FieldError, err.Error(), "backend", cfg.SessionBackend)
		os.Exit(1)
	}
	defer sessions.Close()

	var sheets report.Writer
	if cfg.GoogleSpreadsheetID != "" {
		client, err := gsheet.New(ctx, gsheet.Config{
			SpreadsheetID:   cfg.GoogleSpreadsheetID,
			SheetName:       cfg.GoogleSheetName,
			CredentialsFile: cfg.GoogleCredentialsFile,
			CredentialsJSON: cfg.GoogleCredentialsJSON,
		})
		if err != nil {
			logger.Error("Failed to initialize spreadsheet export", log.FieldError, err.Error())
			os.Exit(1)
		}
		sheets = client
		logger.Info("Spreadsheet export initialized", "spreadsheet_id", cfg.GoogleSpreadsheetID)
	} else {
		logger.Info("Spreadsheet export disabled - no GOOGLE_SPREADSHEET_ID provided")
	}

	svc := dashboard.NewService(backend, cfg.LoadLimit, logger)
	if count, err := svc.Reload(ctx); err != nil {
		// The feed and the login-time reload can still recover the set.
		logger.Warn("Initial record load failed", log.FieldError, err.Error())
	} else {
		logger.Info("Record set loaded", log.FieldRecordCount, count)
	}

	srv := apphttp.NewServer(":"+cfg.Port, apphttp.Deps{
		Auth:      auth.New(backend, cfg.JWTSecret, cfg.JWTTTL),
		Sessions:  sessions,
		Dashboard: svc,
		Sheets:    sheets,
		Logger:    logger,
	})

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return srv.ListenAndServe(gctx)
	})

	g.Go(func() error {
		err := feed.ConsumeWithRetry(gctx, cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue, func(msg *feed.SaleCreatedMessage) error {
			if err := msg.Sale.Validate(); err != nil {
				logger.Warn("Dropping invalid feed record",
					log.FieldSaleID, msg.Sale.ID,
					log.FieldError, err.Error())
				return nil
			}
			svc.Apply(gctx, msg.Sale)
			return nil
		})
		if err != nil && err != context.Canceled {
			return err
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server error", log.FieldError, err.Error())
		os.Exit(1)
	}
	logger.Info("Server stopped gracefully")
}

func openSessions(cfg *config.Config) (session.Store, error) {
	if cfg.SessionBackend == "redis" {
		return session.NewRedisStore(cfg.RedisURL, cfg.SessionTTL, cfg.RememberTTL)
	}
	return session.NewMemoryStore(cfg.SessionTTL, cfg.RememberTTL), nil
}

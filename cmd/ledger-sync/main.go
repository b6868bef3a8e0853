package main

import (
	"context"
	"errors"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"budgetbook/internal/amqp"
	"budgetbook/internal/cli"
	"budgetbook/internal/log"
	"budgetbook/internal/sheets"
	gsheet "budgetbook/internal/sheets/google"
	mirrormem "budgetbook/internal/sheets/memory"
	"budgetbook/internal/worker"
)

func main() {
	cli.LoadEnvFile()

	logger := cli.SetupLogger(os.Getenv("LOG_LEVEL"), log.ComponentWorker)
	logger.Info("Starting ledger-sync")

	cfg := cli.LoadAndValidateConfig(logger)
	if err := cfg.ValidateSync(); err != nil {
		logger.Error("Invalid ledger-sync configuration", log.FieldError, err)
		os.Exit(1)
	}

	ctx := context.Background()
	backend := cli.InitBackend(ctx, logger, cfg)

	var mirror sheets.StateMirror
	if cfg.SheetsEnabled() {
		client, err := gsheet.New(ctx, cfg.GoogleSpreadsheetID, cfg.GoogleSheetPrefix, gsheet.Credentials{
			JSON: cfg.GoogleServiceAccountJSON,
			File: cfg.GoogleServiceAccountFile,
		}, logger)
		if err != nil {
			logger.Error("Failed to initialize Google Sheets client", log.FieldError, err)
			os.Exit(1)
		}
		mirror = client
		logger.Info("Google Sheets client initialized", log.FieldSpreadsheet, cfg.GoogleSpreadsheetID)
	} else {
		mirror = mirrormem.New(cfg.GoogleSheetPrefix)
		logger.Info("Google Sheets disabled - mirroring in memory only")
	}

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue, cfg.AMQPPrefetch, logger)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", log.FieldError, err)
		os.Exit(1)
	}

	syncWorker := worker.NewSyncWorker(backend.Repository, mirror, cfg.SyncInterval, logger)

	shutdownCtx, done := cli.GracefulShutdown(logger, 30*time.Second, func() {
		if err := amqpClient.Close(); err != nil {
			logger.Warn("Failed to close AMQP client", log.FieldError, err)
		}
		if err := backend.Cleanup(); err != nil {
			logger.Warn("Failed to close backend", log.FieldError, err)
		}
	})

	logger.Info("Performing startup sync check...")
	if err := syncWorker.StartupSyncCheck(shutdownCtx); err != nil {
		// retried by the periodic flush
		logger.Error("Failed startup sync check", log.FieldError, err)
	}

	g, gctx := errgroup.WithContext(shutdownCtx)
	g.Go(func() error {
		return amqpClient.ConsumeChanges(gctx, syncWorker.HandleChangeMessage)
	})
	g.Go(func() error {
		return syncWorker.Run(gctx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("ledger-sync stopped", log.FieldError, err)
		os.Exit(1)
	}
	cli.WaitForShutdown(shutdownCtx, done)
}

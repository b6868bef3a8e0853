package main

import (
	"context"
	"os"
	"time"

	"budgetbook/internal/amqp"
	"budgetbook/internal/cli"
	"budgetbook/internal/ledger"
	"budgetbook/internal/log"
	"budgetbook/internal/scheduler"
	"budgetbook/internal/seed"
)

func main() {
	cli.LoadEnvFile()

	logger := cli.SetupLogger(os.Getenv("LOG_LEVEL"), log.ComponentApp)
	logger.Info("Starting budgetbook")

	cfg := cli.LoadAndValidateConfig(logger)
	ctx := context.Background()

	backend := cli.InitBackend(ctx, logger, cfg)

	opts := []ledger.Option{ledger.WithLogger(logger.WithComponent(log.ComponentLedger))}

	// Change notifications are optional; the ledger works without a broker
	var amqpClient *amqp.Client
	if cfg.AMQPEnabled() {
		var err error
		amqpClient, err = amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue, cfg.AMQPPrefetch, logger)
		if err != nil {
			logger.Warn("Failed to initialize AMQP client, continuing without change notifications", log.FieldError, err)
		} else {
			opts = append(opts, ledger.WithNotifier(amqpClient))
			logger.Info("Initialized AMQP client", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
		}
	}

	if cfg.SeedFile != "" {
		set, err := seed.Load(cfg.SeedFile)
		if err != nil {
			logger.Error("Failed to load seed file", log.FieldError, err, "path", cfg.SeedFile)
			os.Exit(1)
		}
		opts = append(opts, ledger.WithSeed(set))
	}

	store := ledger.Open(ctx, backend.Repository, opts...)
	if err := store.Initialize(ctx); err != nil {
		logger.Error("Failed to initialize ledger", log.FieldError, err)
		os.Exit(1)
	}
	logSummary(logger, store)

	var rollover *scheduler.Rollover
	if cfg.RolloverSchedule != "" {
		var err error
		rollover, err = scheduler.NewRollover(cfg.RolloverSchedule, store, logger)
		if err != nil {
			logger.Error("Failed to schedule budget rollover", log.FieldError, err)
			os.Exit(1)
		}
		// spent totals may be from an earlier month if the process was down at rollover
		if err := rollover.RunOnce(ctx); err != nil {
			logger.Warn("Initial budget refresh failed", log.FieldError, err)
		}
	}

	shutdownCtx, done := cli.GracefulShutdown(logger, 30*time.Second, func() {
		if rollover != nil {
			rollover.Stop()
		}
		if amqpClient != nil {
			if err := amqpClient.Close(); err != nil {
				logger.Warn("Failed to close AMQP client", log.FieldError, err)
			}
		}
		if err := backend.Cleanup(); err != nil {
			logger.Warn("Failed to close backend", log.FieldError, err)
		}
	})

	if rollover != nil {
		rollover.Start(shutdownCtx)
	}

	logger.Info("budgetbook is running", log.FieldBackend, cfg.DataBackend)
	cli.WaitForShutdown(shutdownCtx, done)
}

func logSummary(logger *log.Logger, store *ledger.Store) {
	stats := store.CurrentMonthStats()
	budgets := store.BudgetSummary()
	progress := store.SavingsGoalProgress()

	logger.Info("Current month",
		"income", stats.TotalIncome.String(),
		"expenses", stats.TotalExpenses.String(),
		"net", stats.NetBalance.String(),
		"savings_goal_pct", progress.Percentage)
	logger.Info("Budgets",
		"limit", budgets.TotalLimit.String(),
		"spent", budgets.TotalSpent.String(),
		"over", budgets.Over,
		"near", budgets.Near,
		"under", budgets.Under,
		"days_remaining", budgets.DaysRemaining)
	for _, c := range store.TopCategories() {
		logger.Info("Top category", log.FieldCategory, c.Name, "amount", c.Amount.String(), "share_pct", c.Percentage)
	}
}

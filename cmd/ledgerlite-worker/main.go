package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/robfig/cron/v3"
	"golang.org/x/sync/errgroup"

	"ledgerlite/internal/amqp"
	"ledgerlite/internal/cli"
	"ledgerlite/internal/sheets"
	gsheet "ledgerlite/internal/sheets/google"
	sheetsmem "ledgerlite/internal/sheets/memory"
	"ledgerlite/internal/worker"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger()

	logger.Info("Starting ledgerlite-worker")

	cfg := cli.LoadAndValidateConfig(logger)

	// The worker reads the durable copy of records from SQLite.
	repo := cli.InitSQLite(logger, cfg.SQLiteDBPath)
	defer repo.Close()

	// Google Sheets mirror is optional; without credentials the worker keeps
	// an in-memory mirror so events still drain and snapshots still run.
	var mirror sheets.RecordMirror
	if cfg.GoogleSpreadsheetID != "" {
		client, err := gsheet.NewFromEnv(context.Background())
		if err != nil {
			logger.Error("Failed to initialize Google Sheets client", "error", err)
			os.Exit(1)
		}
		mirror = client
		logger.Info("Google Sheets mirror initialized", "spreadsheet_id", cfg.GoogleSpreadsheetID)
	} else {
		mirror = sheetsmem.New()
		logger.Info("Google Sheets disabled - no GOOGLE_SPREADSHEET_ID provided, using in-memory mirror")
	}

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", "error", err)
		os.Exit(1)
	}
	defer amqpClient.Close()

	mirrorWorker := worker.NewMirrorWorker(repo, mirror)
	snapshotter := worker.NewSnapshotter(repo, cfg.SnapshotDir)

	cronRunner := cron.New()
	if _, err := snapshotter.Schedule(cronRunner, cfg.SnapshotCron); err != nil {
		logger.Error("Failed to schedule snapshot job", "error", err, "cron", cfg.SnapshotCron)
		os.Exit(1)
	}
	cronRunner.Start()
	defer cronRunner.Stop()
	logger.Info("Snapshot job scheduled", "cron", cfg.SnapshotCron, "dir", cfg.SnapshotDir)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return amqpClient.ConsumeRecordEvents(ctx, func(ctx context.Context, msg *amqp.RecordEventMessage) error {
			ctx, cancel := context.WithTimeout(ctx, cfg.MirrorTimeout)
			defer cancel()
			return mirrorWorker.HandleRecordEvent(ctx, msg)
		})
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Worker stopped with error", "error", err)
		os.Exit(1)
	}
	logger.Info("Worker stopped gracefully")
}

package main

import (
	"context"
	"os"
	"time"

	"grafica/internal/amqp"
	"grafica/internal/cli"
	"grafica/internal/export"
	"grafica/internal/export/file"
	"grafica/internal/export/google"
	"grafica/internal/services"
	"grafica/internal/worker"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger()
	logger.Info("Starting grafica-worker")

	cfg := cli.LoadAndValidateConfig(logger)

	repo := cli.InitSQLite(logger, cfg.SQLiteDBPath)
	defer repo.Close()

	var exporter export.ReportWriter
	switch cfg.ExportTarget {
	case "file":
		w, err := file.NewWriter(cfg.ExportDir)
		if err != nil {
			logger.Error("Failed to initialize file exporter", "error", err, "dir", cfg.ExportDir)
			os.Exit(1)
		}
		exporter = w
		logger.Info("File exporter initialized", "dir", cfg.ExportDir)
	case "sheets":
		c, err := google.NewClient(context.Background(), cfg.GoogleSpreadsheetID, cfg.GoogleReportSheet)
		if err != nil {
			logger.Error("Failed to initialize Google Sheets exporter", "error", err)
			os.Exit(1)
		}
		exporter = c
		logger.Info("Google Sheets exporter initialized", "spreadsheet_id", cfg.GoogleSpreadsheetID)
	default:
		logger.Error("Worker requires an export target", "target", cfg.ExportTarget)
		os.Exit(1)
	}

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", "error", err)
		os.Exit(1)
	}
	defer amqpClient.Close()

	source, err := services.ParseSource(cfg.LedgerSource)
	if err != nil {
		logger.Error("Invalid ledger source", "error", err)
		os.Exit(1)
	}

	reports := services.NewReportService(repo)
	exportWorker := worker.NewExportWorker(reports, exporter, source)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Export once at startup so a fresh deployment has a report even
	// before the first record change arrives.
	if err := exportWorker.Export(ctx); err != nil {
		logger.Error("Startup export failed", "error", err)
	}

	go func() {
		if err := amqpClient.ConsumeRecordChanges(ctx, func(msg *amqp.RecordChangedMessage) error {
			return exportWorker.HandleRecordChange(ctx, msg)
		}); err != nil {
			if err != context.Canceled {
				logger.Error("Message consumption failed", "error", err)
			}
			cancel()
		}
	}()

	// Periodic rebuild as backup in case messages are lost.
	go exportWorker.RunPeriodic(ctx, cfg.ExportInterval)

	shutdownCtx, done := cli.GracefulShutdown(logger, 30*time.Second, func() {
		logger.Info("Shutting down worker...")
		cancel()
	})

	select {
	case <-ctx.Done():
	case <-shutdownCtx.Done():
	}
	select {
	case <-done:
	case <-time.After(5 * time.Second):
	}
	logger.Info("Worker stopped")
}

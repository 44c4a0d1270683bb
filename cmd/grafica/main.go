package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"grafica/internal/amqp"
	"grafica/internal/cli"
	"grafica/internal/export"
	"grafica/internal/export/file"
	"grafica/internal/export/google"
	apphttp "grafica/internal/http"
	"grafica/internal/services"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger()
	cfg := cli.LoadAndValidateConfig(logger)

	repo := cli.InitSQLite(logger, cfg.SQLiteDBPath)
	defer repo.Close()

	// AMQP is optional for the API server. Without it, record changes
	// are simply not announced and the worker relies on its periodic
	// rebuild.
	var publisher services.Publisher
	if cfg.AMQPURL != "" {
		amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Warn("AMQP unavailable, continuing without record change events", "error", err)
		} else {
			defer amqpClient.Close()
			publisher = amqpClient
		}
	}

	var exporter export.ReportWriter
	switch cfg.ExportTarget {
	case "file":
		w, err := file.NewWriter(cfg.ExportDir)
		if err != nil {
			logger.Error("Failed to initialize file exporter", "error", err, "dir", cfg.ExportDir)
			os.Exit(1)
		}
		exporter = w
	case "sheets":
		c, err := google.NewClient(context.Background(), cfg.GoogleSpreadsheetID, cfg.GoogleReportSheet)
		if err != nil {
			logger.Error("Failed to initialize Google Sheets exporter", "error", err)
			os.Exit(1)
		}
		exporter = c
	default:
		logger.Info("Report export disabled", "target", cfg.ExportTarget)
	}

	source, err := services.ParseSource(cfg.LedgerSource)
	if err != nil {
		logger.Error("Invalid ledger source", "error", err)
		os.Exit(1)
	}

	catalog := services.NewCatalogService(repo)
	orders := services.NewOrderService(repo, publisher)
	txs := services.NewTransactionService(repo, publisher)
	reports := services.NewReportService(repo)

	srv := apphttp.NewServer(":"+cfg.Port, catalog, orders, txs, reports, exporter, source)
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 10 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16

	ctx, done := cli.GracefulShutdown(logger, 30*time.Second, func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", "error", err)
		}
	})

	logger.Info("Starting grafica server", "port", cfg.Port, "source", cfg.LedgerSource, "export_target", cfg.ExportTarget)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", "error", err, "port", cfg.Port)
		os.Exit(1)
	}

	cli.WaitForShutdown(ctx, done)
	logger.Info("Server stopped gracefully")
}

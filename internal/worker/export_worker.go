// Package worker keeps the exported report in sync with the ledger.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"grafica/internal/amqp"
	"grafica/internal/export"
	"grafica/internal/ledger"
	"grafica/internal/log"
	"grafica/internal/services"
)

// ReportBuilder produces the report views the worker exports.
type ReportBuilder interface {
	Build(ctx context.Context, source services.Source) (ledger.Result, error)
}

// ExportWorker rebuilds and exports the financial report whenever a
// record changes, with a periodic rebuild as backup in case messages
// are lost.
type ExportWorker struct {
	reports ReportBuilder
	writer  export.ReportWriter
	source  services.Source
}

func NewExportWorker(reports ReportBuilder, writer export.ReportWriter, source services.Source) *ExportWorker {
	return &ExportWorker{
		reports: reports,
		writer:  writer,
		source:  source,
	}
}

// HandleRecordChange processes a single record change message from AMQP.
func (w *ExportWorker) HandleRecordChange(ctx context.Context, msg *amqp.RecordChangedMessage) error {
	slog.InfoContext(ctx, "Processing record change",
		log.FieldComponent, log.ComponentWorker,
		log.FieldSource, msg.Source,
		log.FieldRecordID, msg.ID,
		log.FieldOperation, msg.Action)

	return w.Export(ctx)
}

// Export rebuilds the report from storage and writes it to the
// configured target.
func (w *ExportWorker) Export(ctx context.Context) error {
	res, err := w.reports.Build(ctx, w.source)
	if err != nil {
		return fmt.Errorf("build report: %w", err)
	}

	ref, err := w.writer.WriteReport(ctx, res.Document)
	if err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	slog.InfoContext(ctx, "Report exported",
		log.FieldComponent, log.ComponentWorker,
		log.FieldExportRef, ref,
		"rows", len(res.Document.Rows),
		log.FieldSkipped, res.Skipped)
	return nil
}

// RunPeriodic re-exports on a fixed interval until the context is
// cancelled. This is a backup mechanism in case AMQP messages are lost.
func (w *ExportWorker) RunPeriodic(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.InfoContext(ctx, "Periodic export stopped")
			return
		case <-ticker.C:
			if err := w.Export(ctx); err != nil {
				slog.ErrorContext(ctx, "Periodic export failed", "error", err)
			}
		}
	}
}

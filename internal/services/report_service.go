package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"grafica/internal/core"
	"grafica/internal/ledger"
	"grafica/internal/log"
)

// Source selects which record sets feed the ledger pipeline.
type Source string

const (
	SourceOrders       Source = "orders"
	SourceTransactions Source = "transactions"
	SourceCombined     Source = "combined"
)

// ParseSource validates a source name from config or query string.
func ParseSource(s string) (Source, error) {
	switch Source(s) {
	case SourceOrders, SourceTransactions, SourceCombined:
		return Source(s), nil
	}
	return "", fmt.Errorf("unknown ledger source %q", s)
}

// ReportService builds dashboard and report views. It fetches a
// snapshot from storage, converts it to raw records and runs the
// ledger pipeline over it.
type ReportService struct {
	source SnapshotSource
	now    func() time.Time
}

func NewReportService(source SnapshotSource) *ReportService {
	return &ReportService{
		source: source,
		now:    time.Now,
	}
}

// Snapshot fetches the record sets the given source needs. Orders and
// transactions are fetched concurrently.
func (s *ReportService) Snapshot(ctx context.Context, source Source) (ledger.Snapshot, error) {
	var snap ledger.Snapshot

	g, gctx := errgroup.WithContext(ctx)

	if source == SourceOrders || source == SourceCombined {
		g.Go(func() error {
			orders, err := s.source.ListOrders(gctx)
			if err != nil {
				return fmt.Errorf("list orders: %w", err)
			}
			snap.Orders = rawOrders(orders)
			return nil
		})
	}

	if source == SourceTransactions || source == SourceCombined {
		g.Go(func() error {
			txs, err := s.source.ListTransactions(gctx)
			if err != nil {
				return fmt.Errorf("list transactions: %w", err)
			}
			snap.Transactions = rawTransactions(txs)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return ledger.Snapshot{}, err
	}

	return snap, nil
}

// Build runs the full pipeline for the given source.
func (s *ReportService) Build(ctx context.Context, source Source) (ledger.Result, error) {
	snap, err := s.Snapshot(ctx, source)
	if err != nil {
		return ledger.Result{}, err
	}

	res := ledger.Run(snap, s.now())
	if res.Skipped > 0 {
		slog.WarnContext(ctx, "Skipped malformed records during aggregation",
			log.FieldComponent, log.ComponentReport,
			log.FieldSkipped, res.Skipped,
			log.FieldSource, string(source))
	}

	return res, nil
}

func rawOrders(orders []core.Order) []ledger.RawOrder {
	out := make([]ledger.RawOrder, 0, len(orders))
	for _, o := range orders {
		raw := ledger.RawOrder{
			ID:           o.ID,
			OrderName:    o.OrderName,
			CustomerName: o.CustomerName,
			Amount:       core.FormatCents(o.Amount.Cents),
			ReceivedDate: o.ReceivedDate.Format("2006-01-02"),
			Status:       o.Status,
			Paid:         o.Paid,
			ServiceID:    o.ServiceID,
		}
		if !o.DeliveryDate.IsZero() {
			raw.DeliveryDate = o.DeliveryDate.Format("2006-01-02")
		}
		out = append(out, raw)
	}
	return out
}

func rawTransactions(txs []core.Transaction) []ledger.RawTransaction {
	out := make([]ledger.RawTransaction, 0, len(txs))
	for _, t := range txs {
		out = append(out, ledger.RawTransaction{
			ID:          t.ID,
			Type:        string(t.Type),
			Amount:      core.FormatCents(t.Amount.Cents),
			Description: t.Description,
			Date:        t.Date.Format("2006-01-02"),
			ServiceID:   t.ServiceID,
		})
	}
	return out
}

// Package export defines where finished reports go. Implementations
// live in subpackages; the worker and the HTTP layer only see the
// ReportWriter port.
package export

import (
	"context"

	"grafica/internal/ledger"
)

// ReportWriter persists a rendered report document somewhere durable
// and returns an opaque reference to it (file path, sheet range...).
type ReportWriter interface {
	WriteReport(ctx context.Context, doc ledger.Document) (string, error)
}

// Package ledger turns raw financial records into monthly aggregates,
// grand totals and report content.
//
// The package is a pure pipeline: it consumes an in-memory snapshot of
// records, holds no state between calls and performs no I/O. Callers
// fetch the snapshot (storage, import, spreadsheet) and hand it over.
package ledger

import "grafica/internal/core"

// Classification tags an entry as money in or money out.
type Classification string

const (
	Income  Classification = "income"
	Expense Classification = "expense"
)

// Entry is the canonical ledger record every source normalizes into.
// Classification is fixed here and never recomputed downstream.
type Entry struct {
	ID             string
	Amount         core.Money // always >= 0; the classification carries the sign
	Date           core.Date
	Classification Classification
	Label          string // order status or transaction description
	Settled        bool   // order: payment received; transaction: always true
}

// RawOrder is an order record as delivered by the persistence
// collaborator, before any validation.
type RawOrder struct {
	ID           string `json:"id"`
	OrderName    string `json:"order_name"`
	CustomerName string `json:"customer_name"`
	Amount       string `json:"amount"`
	ReceivedDate string `json:"received_date"`
	DeliveryDate string `json:"delivery_date"`
	Status       string `json:"status"`
	Paid         bool   `json:"paid"`
	ServiceID    string `json:"service_id,omitempty"`
}

// RawTransaction is a transaction record as delivered by the
// persistence collaborator, before any validation.
type RawTransaction struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	Amount      string `json:"amount"`
	Description string `json:"description"`
	Date        string `json:"date"`
	ServiceID   string `json:"service_id,omitempty"`
}

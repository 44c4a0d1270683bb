package ledger

import (
	"sort"
	"strconv"
	"time"

	"grafica/internal/core"
)

// Short month names in pt-BR, used only for presentation.
var monthNames = [13]string{"", "jan", "fev", "mar", "abr", "mai", "jun",
	"jul", "ago", "set", "out", "nov", "dez"}

// Label renders the month for display, e.g. "mar 2024".
func (k MonthKey) Label() string {
	if k.Month < 1 || k.Month > 12 {
		return strconv.Itoa(k.Year)
	}
	return monthNames[k.Month] + " " + strconv.Itoa(k.Year)
}

// ChartPoint is one month of the dashboard series. Amounts stay in
// cents; the consumer decides how to render them.
type ChartPoint struct {
	Label        string `json:"month"`
	IncomeCents  int64  `json:"income_cents"`
	ExpenseCents int64  `json:"expense_cents"`
	ProfitCents  int64  `json:"profit_cents"`
}

// ChartSeries maps month buckets to chart points, preserving the
// aggregator's chronological order. A trend reads left to right.
func ChartSeries(buckets []MonthBucket) []ChartPoint {
	points := make([]ChartPoint, 0, len(buckets))
	for _, b := range buckets {
		points = append(points, ChartPoint{
			Label:        b.Key.Label(),
			IncomeCents:  b.Income.Cents,
			ExpenseCents: b.Expense.Cents,
			ProfitCents:  b.Profit().Cents,
		})
	}
	return points
}

// DocumentRow is one pre-formatted line of the printable report table.
type DocumentRow struct {
	Date    string `json:"date"`    // dd/mm/yyyy
	Label   string `json:"label"`   // order status or transaction description
	Settled string `json:"settled"` // "Pago" or "Pendente"
	Amount  string `json:"amount"`  // "R$ 150.00"
}

// Document is the printable financial report: header summary plus one
// row per entry, everything already formatted as strings. Writing it
// somewhere durable is the exporter's job, not this package's.
type Document struct {
	Title        string        `json:"title"`
	GeneratedAt  string        `json:"generated_at"` // dd/mm/yyyy
	TotalIncome  string        `json:"total_income"`
	TotalExpense string        `json:"total_expense"`
	NetProfit    string        `json:"net_profit"`
	Rows         []DocumentRow `json:"rows"`
}

// ReportTitle is the fixed heading of the exported document.
const ReportTitle = "Relatório Financeiro - Gráfica e Encantos"

// BuildDocument renders the report from the classified entries and
// their summary. Rows come out most recent first, which is how people
// read a statement; the chart keeps the opposite order for trends.
func BuildDocument(entries []Entry, sum Summary, generatedAt time.Time) Document {
	doc := Document{
		Title:        ReportTitle,
		GeneratedAt:  generatedAt.Format("02/01/2006"),
		TotalIncome:  core.FormatBRL(sum.TotalIncome.Cents),
		TotalExpense: core.FormatBRL(sum.TotalExpense.Cents),
		NetProfit:    core.FormatBRL(sum.NetProfit.Cents),
	}

	rows := make([]Entry, len(entries))
	copy(rows, entries)
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[j].Date.Before(rows[i].Date.Time)
	})

	for _, e := range rows {
		settled := "Pendente"
		if e.Settled {
			settled = "Pago"
		}
		doc.Rows = append(doc.Rows, DocumentRow{
			Date:    e.Date.Format("02/01/2006"),
			Label:   e.Label,
			Settled: settled,
			Amount:  core.FormatBRL(e.Amount.Cents),
		})
	}
	return doc
}

package ledger

import "time"

// Snapshot is the immutable record set one pipeline invocation works
// on. Either slice may be empty; a dashboard built from orders alone
// simply leaves Transactions nil.
type Snapshot struct {
	Orders       []RawOrder
	Transactions []RawTransaction
}

// Result bundles every derived view of one snapshot.
type Result struct {
	Entries  []Entry
	Buckets  []MonthBucket
	Summary  Summary
	Chart    []ChartPoint
	Document Document
	Skipped  int
}

// Run executes the whole pipeline over a snapshot: normalize and
// classify, bucket by month, total, and format. It is a single
// synchronous fold with no side effects; running it twice on the same
// snapshot and generation time yields identical results.
//
// generatedAt stamps the report header. It is a parameter rather than
// time.Now() so results stay reproducible.
func Run(snap Snapshot, generatedAt time.Time) Result {
	orders := NormalizeOrders(snap.Orders)
	txs := NormalizeTransactions(snap.Transactions)

	entries := make([]Entry, 0, len(orders.Entries)+len(txs.Entries))
	entries = append(entries, orders.Entries...)
	entries = append(entries, txs.Entries...)

	buckets := AggregateMonthly(entries)
	sum := Summarize(entries)

	return Result{
		Entries:  entries,
		Buckets:  buckets,
		Summary:  sum,
		Chart:    ChartSeries(buckets),
		Document: BuildDocument(entries, sum, generatedAt),
		Skipped:  orders.Skipped + txs.Skipped,
	}
}

package ledger

import "grafica/internal/core"

// NormalizeResult carries the entries that survived normalization plus
// a count of records rejected for malformed data. Skips are reported,
// never silently folded into totals.
type NormalizeResult struct {
	Entries []Entry
	Skipped int
}

// NormalizeOrders converts raw order records into canonical entries.
// A record is skipped when its amount is not a non-negative decimal or
// its received date is not a valid calendar date.
func NormalizeOrders(orders []RawOrder) NormalizeResult {
	var res NormalizeResult
	for _, o := range orders {
		cents, err := core.ParseAmountToCents(o.Amount)
		if err != nil {
			res.Skipped++
			continue
		}
		date, err := core.ParseDate(o.ReceivedDate)
		if err != nil {
			res.Skipped++
			continue
		}
		res.Entries = append(res.Entries, Entry{
			ID:             o.ID,
			Amount:         core.Money{Cents: cents},
			Date:           date,
			Classification: ClassifyOrder(o.Paid),
			Label:          o.Status,
			Settled:        o.Paid,
		})
	}
	return res
}

// NormalizeTransactions converts raw transaction records into canonical
// entries. Besides amount and date checks, a record whose type tag is
// neither income nor expense has no applicable classification rule and
// is skipped like any other malformed record.
func NormalizeTransactions(txs []RawTransaction) NormalizeResult {
	var res NormalizeResult
	for _, tx := range txs {
		class, ok := ClassifyTransaction(tx.Type)
		if !ok {
			res.Skipped++
			continue
		}
		cents, err := core.ParseAmountToCents(tx.Amount)
		if err != nil {
			res.Skipped++
			continue
		}
		date, err := core.ParseDate(tx.Date)
		if err != nil {
			res.Skipped++
			continue
		}
		res.Entries = append(res.Entries, Entry{
			ID:             tx.ID,
			Amount:         core.Money{Cents: cents},
			Date:           date,
			Classification: class,
			Label:          tx.Description,
			Settled:        true, // a recorded transaction is settled by definition
		})
	}
	return res
}

package ledger

import (
	"sort"

	"grafica/internal/core"
)

// MonthKey identifies a calendar month. Bucketing and sorting key off
// this structure, never off the display label: short labels like
// "mar 2024" vs "mar 2025" collide and sort wrong across years.
type MonthKey struct {
	Year  int
	Month int // 1-12
}

// MonthKeyOf truncates a date to its year and month.
func MonthKeyOf(d core.Date) MonthKey {
	return MonthKey{Year: d.Year(), Month: d.Month()}
}

// Before reports chronological order: year first, then month.
func (k MonthKey) Before(other MonthKey) bool {
	if k.Year != other.Year {
		return k.Year < other.Year
	}
	return k.Month < other.Month
}

// MonthBucket accumulates income and expense for one calendar month.
// Profit is derived, not stored.
type MonthBucket struct {
	Key     MonthKey
	Income  core.Money
	Expense core.Money
}

// Profit returns income minus expense for the bucket.
func (b MonthBucket) Profit() core.Money {
	return core.Money{Cents: b.Income.Cents - b.Expense.Cents}
}

// AggregateMonthly folds entries into month buckets sorted ascending by
// (year, month). Input order is irrelevant; an empty input yields an
// empty slice. A month seen only on one side still appears with the
// other side at zero.
func AggregateMonthly(entries []Entry) []MonthBucket {
	byKey := make(map[MonthKey]*MonthBucket)
	for _, e := range entries {
		key := MonthKeyOf(e.Date)
		b, ok := byKey[key]
		if !ok {
			b = &MonthBucket{Key: key}
			byKey[key] = b
		}
		switch e.Classification {
		case Income:
			b.Income.Cents += e.Amount.Cents
		case Expense:
			b.Expense.Cents += e.Amount.Cents
		}
	}

	buckets := make([]MonthBucket, 0, len(byKey))
	for _, b := range byKey {
		buckets = append(buckets, *b)
	}
	sort.Slice(buckets, func(i, j int) bool {
		return buckets[i].Key.Before(buckets[j].Key)
	})
	return buckets
}

// Summary holds grand totals across all entries, independent of
// bucketing.
type Summary struct {
	TotalIncome  core.Money
	TotalExpense core.Money
	NetProfit    core.Money
}

// Summarize totals the classified entries. Sums run over integer cents
// so they are exact and order-independent.
func Summarize(entries []Entry) Summary {
	var s Summary
	for _, e := range entries {
		switch e.Classification {
		case Income:
			s.TotalIncome.Cents += e.Amount.Cents
		case Expense:
			s.TotalExpense.Cents += e.Amount.Cents
		}
	}
	s.NetProfit.Cents = s.TotalIncome.Cents - s.TotalExpense.Cents
	return s
}

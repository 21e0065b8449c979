package core

import "time"

// Filters select record subsets. All of them propagate absence: a nil input
// slice stays nil, while an empty result over real input is a valid,
// non-nil empty slice. The two states render differently (null vs []).

// MonthStart returns the first instant of t's calendar month.
func MonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// FilterMonthToDate keeps records from the first instant of ref's month up
// to ref, both ends inclusive.
func FilterMonthToDate(txs []Transaction, ref time.Time) []Transaction {
	start := MonthStart(ref)
	return filter(txs, func(t Transaction) bool {
		return inRange(t.OperationTime, start, ref)
	})
}

// FilterTrailingMonths keeps records from the trailing window of the given
// number of calendar months ending at ref, inclusive. The window opens on
// the day before the plain calendar boundary: with ref 2025-04-15 a record
// dated 2025-01-14 is still inside, 2024-12-31 is not.
func FilterTrailingMonths(txs []Transaction, ref time.Time, months int) []Transaction {
	start := ref.AddDate(0, -months, -1)
	return filter(txs, func(t Transaction) bool {
		return inRange(t.OperationTime, start, ref)
	})
}

// FilterYearMonth keeps records whose operation date falls in the given
// calendar month.
func FilterYearMonth(txs []Transaction, year int, month time.Month) []Transaction {
	return filter(txs, func(t Transaction) bool {
		return t.OperationTime.Year() == year && t.OperationTime.Month() == month
	})
}

// FilterStatusOK drops every record that is not economically valid.
func FilterStatusOK(txs []Transaction) []Transaction {
	return filter(txs, func(t Transaction) bool { return t.Status == StatusOK })
}

// FilterOutgoing keeps spend records, i.e. strictly negative payments.
func FilterOutgoing(txs []Transaction) []Transaction {
	return filter(txs, func(t Transaction) bool { return t.PaymentAmount < 0 })
}

// FilterPositiveCashback keeps records that actually earned cashback.
func FilterPositiveCashback(txs []Transaction) []Transaction {
	return filter(txs, func(t Transaction) bool { return t.Cashback > 0 })
}

// FilterCategory keeps records whose category equals cat exactly; the
// caller is responsible for normalizing capitalization beforehand.
func FilterCategory(txs []Transaction, cat string) []Transaction {
	return filter(txs, func(t Transaction) bool { return t.Category == cat })
}

func filter(txs []Transaction, keep func(Transaction) bool) []Transaction {
	if txs == nil {
		return nil
	}
	out := make([]Transaction, 0, len(txs))
	for _, t := range txs {
		if keep(t) {
			out = append(out, t)
		}
	}
	return out
}

func inRange(t, from, to time.Time) bool {
	return !t.Before(from) && !t.After(to)
}

package services

import (
	"context"
	"time"

	"svodka/internal/core"
)

// CashbackByMonth sums earned cashback per category for one calendar
// month. It returns nil when the ledger is absent and, deliberately, also
// when the month has no records at all; a month whose records were all
// filtered out by status or zero cashback still yields an empty map. The
// spending report handles the analogous case differently, and callers
// depend on the distinction.
func (r *Reports) CashbackByMonth(ctx context.Context, year, month int) map[string]float64 {
	r.log.Info("cashback report requested", "year", year, "month", month)

	txs := r.loadLedger(ctx)
	if txs == nil {
		return nil
	}

	inMonth := core.FilterYearMonth(txs, year, time.Month(month))
	if len(inMonth) == 0 {
		r.log.Warn("no records for month", "year", year, "month", month)
		return nil
	}

	earned := core.FilterStatusOK(core.FilterPositiveCashback(inMonth))
	result := core.GroupSum(earned,
		func(t core.Transaction) string { return t.Category },
		func(t core.Transaction) float64 { return t.Cashback })

	r.log.Info("cashback report built", "year", year, "month", month, "categories", len(result))
	return result
}

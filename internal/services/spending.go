package services

import (
	"context"
	"errors"
	"time"

	"svodka/internal/core"
)

const trailingMonths = 3

// SpendingByCategory sums rounded amounts for one category over the
// trailing three months ending at ref; a zero ref defaults to the current
// date at midnight. The bool reports presence: an absent ledger or blank
// category yields (nil, false), while a window with no matching records
// yields an explicit empty map — unlike the cashback report.
func (r *Reports) SpendingByCategory(ctx context.Context, category string, ref time.Time) (map[string]float64, bool) {
	r.log.Info("spending report requested", "category", category)

	txs := r.loadLedger(ctx)
	if txs == nil {
		return nil, false
	}
	if category == "" {
		r.log.Error("empty category")
		return nil, false
	}

	if ref.IsZero() {
		now := r.now()
		ref = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	}

	window := core.FilterTrailingMonths(txs, ref, trailingMonths)
	matched := core.FilterStatusOK(core.FilterCategory(window, category))
	if len(matched) == 0 {
		r.log.Info("no spending found", "category", category, "until", ref.Format("2006-01-02"))
		return map[string]float64{}, true
	}

	result := core.GroupSum(matched,
		func(t core.Transaction) string { return t.Category },
		func(t core.Transaction) float64 { return t.RoundedAmount })

	r.log.Info("spending report built", "category", category, "records", len(matched))
	return result, true
}

// SpendingByCategoryJSON renders the spending report; absence surfaces as
// an error so the audit trail records the failure.
func (r *Reports) SpendingByCategoryJSON(ctx context.Context, category string, ref time.Time) (string, error) {
	result, ok := r.SpendingByCategory(ctx, category, ref)
	if !ok {
		return "", errors.New("spending report unavailable")
	}
	return RenderJSON(result)
}

package core

import (
	"cmp"
	"slices"
	"strings"
)

// GroupSum buckets txs by keyFn and accumulates valFn per bucket. Sums are
// plain float64 accumulation in ledger order; bucket order carries no
// meaning.
func GroupSum(txs []Transaction, keyFn func(Transaction) string, valFn func(Transaction) float64) map[string]float64 {
	out := make(map[string]float64, len(txs))
	for _, t := range txs {
		out[keyFn(t)] += valFn(t)
	}
	return out
}

// CardTotals summarizes valid outgoing spend and cashback per card. Cards
// with no valid spend contribute no entry. Spend is rounded to two
// decimals, cashback is published as accumulated. Output is sorted by the
// unmasked digits so identical ledgers always render identically.
func CardTotals(txs []Transaction) []CardSummary {
	if txs == nil {
		return nil
	}
	valid := FilterStatusOK(FilterOutgoing(txs))

	spent := GroupSum(valid, Transaction.LastDigits, func(t Transaction) float64 { return t.RoundedAmount })
	back := GroupSum(valid, Transaction.LastDigits, func(t Transaction) float64 { return t.Cashback })

	out := make([]CardSummary, 0, len(spent))
	for card, total := range spent {
		out = append(out, CardSummary{
			LastDigits: card,
			TotalSpent: Round2(total),
			Cashback:   back[card],
		})
	}
	slices.SortFunc(out, func(a, b CardSummary) int {
		return strings.Compare(a.LastDigits, b.LastDigits)
	})
	return out
}

// TopTransactions returns the n largest valid operations by rounded
// amount. Ties keep their ledger order; dates are always rendered
// day-first regardless of the source format.
func TopTransactions(txs []Transaction, n int) []TopTransaction {
	if txs == nil {
		return nil
	}
	valid := FilterStatusOK(txs)
	slices.SortStableFunc(valid, func(a, b Transaction) int {
		return cmp.Compare(b.RoundedAmount, a.RoundedAmount)
	})
	if n > len(valid) {
		n = len(valid)
	}

	out := make([]TopTransaction, 0, n)
	for _, t := range valid[:n] {
		out = append(out, TopTransaction{
			Date:        t.OperationTime.Format("02.01.2006"),
			Amount:      t.PaymentAmount,
			Category:    t.Category,
			Description: t.Description,
		})
	}
	return out
}

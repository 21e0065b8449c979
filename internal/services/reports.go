// Package services composes the record filters and aggregators into the
// three user-facing reports.
package services

import (
	"context"
	"time"

	"svodka/internal/core"
	"svodka/internal/ledger"
	"svodka/internal/log"
	"svodka/internal/quotes"
	"svodka/internal/settings"
)

// ReferenceLayout is the timestamp format the digest is requested with.
const ReferenceLayout = "2006-01-02 15:04:05"

const defaultTopN = 5

// Reports builds the user-facing views. Every call reloads the ledger and
// settings fresh; nothing is cached between invocations.
type Reports struct {
	ledger       ledger.Source
	settingsPath string
	rates        quotes.RateFetcher
	stocks       quotes.StockFetcher
	topN         int
	now          func() time.Time
	log          *log.Logger
}

func NewReports(src ledger.Source, settingsPath string, rates quotes.RateFetcher, stocks quotes.StockFetcher, logger *log.Logger) *Reports {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	return &Reports{
		ledger:       src,
		settingsPath: settingsPath,
		rates:        rates,
		stocks:       stocks,
		topN:         defaultTopN,
		now:          time.Now,
		log:          logger.WithComponent("reports"),
	}
}

// WithTopN overrides the digest's top-transactions list size.
func (r *Reports) WithTopN(n int) *Reports {
	if n > 0 {
		r.topN = n
	}
	return r
}

// WithClock overrides the wall clock, used by tests to pin the greeting.
func (r *Reports) WithClock(now func() time.Time) *Reports {
	r.now = now
	return r
}

// loadLedger returns the snapshot or nil when the ledger is absent. The
// distinction between absent (nil) and empty (non-nil, zero records)
// matters to every report.
func (r *Reports) loadLedger(ctx context.Context) []core.Transaction {
	txs, err := r.ledger.Load(ctx)
	if err != nil {
		r.log.Error("ledger unavailable", "error", err)
		return nil
	}
	return txs
}

// Digest builds the month-start-to-date dashboard. No failure escapes:
// every broken sub-section degrades to a null field in the output and the
// digest itself is always returned.
func (r *Reports) Digest(ctx context.Context, ref string) *core.Digest {
	r.log.Info("digest requested", "ref", ref)

	d := &core.Digest{Greeting: core.Greeting(r.now().Hour())}

	var window []core.Transaction
	refTime, err := time.Parse(ReferenceLayout, ref)
	if err != nil {
		r.log.Error("bad reference timestamp", "ref", ref, "error", err)
	} else {
		window = core.FilterMonthToDate(r.loadLedger(ctx), refTime)
	}

	d.Cards = core.CardTotals(window)
	d.TopTransactions = core.TopTransactions(window, r.topN)

	s, err := settings.Load(r.settingsPath)
	if err != nil {
		r.log.Error("settings unavailable", "path", r.settingsPath, "error", err)
		return d
	}
	if s == nil {
		r.log.Warn("no user settings, skipping quotes", "path", r.settingsPath)
		return d
	}

	if rates, err := r.rates.Rates(ctx, s.UserCurrencies); err != nil {
		r.log.Error("currency batch failed", "error", err)
	} else {
		d.CurrencyRates = rates
	}
	if prices, err := r.stocks.Prices(ctx, s.UserStocks); err != nil {
		r.log.Error("stock batch failed", "error", err)
	} else {
		d.StockPrices = prices
	}

	return d
}

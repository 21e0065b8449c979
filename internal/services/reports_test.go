package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"svodka/internal/core"
	"svodka/internal/ledger/memory"
)

type stubRates struct {
	rates []core.CurrencyRate
	err   error
}

func (s stubRates) Rates(_ context.Context, _ []string) ([]core.CurrencyRate, error) {
	return s.rates, s.err
}

type stubStocks struct {
	prices []core.StockPrice
	err    error
}

func (s stubStocks) Prices(_ context.Context, _ []string) ([]core.StockPrice, error) {
	return s.prices, s.err
}

func at(value string) time.Time {
	t, err := time.Parse("2006-01-02 15:04:05", value)
	if err != nil {
		panic(err)
	}
	return t
}

func writeSettings(t *testing.T, doc string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "user_settings.json")
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("write settings: %v", err)
	}
	return path
}

func aprilLedger() []core.Transaction {
	return []core.Transaction{
		{OperationTime: at("2025-04-01 10:00:00"), PaymentAmount: -50, RoundedAmount: -50, Cashback: 1.5, Category: "Еда", Card: "*1111", Description: "Обед", Status: "OK"},
		{OperationTime: at("2025-04-05 12:00:00"), PaymentAmount: -100, RoundedAmount: -100, Cashback: 3.0, Category: "Покупки", Card: "*1111", Description: "Кроссовки", Status: "OK"},
		{OperationTime: at("2025-04-10 09:00:00"), PaymentAmount: -20, RoundedAmount: -20, Cashback: 0.5, Category: "Транспорт", Card: "*2222", Description: "Метро", Status: "OK"},
		{OperationTime: at("2025-03-31 23:59:59"), PaymentAmount: -999, RoundedAmount: -999, Cashback: 9.9, Category: "Еда", Card: "*3333", Description: "Прошлый месяц", Status: "OK"},
		{OperationTime: at("2025-04-12 08:00:00"), PaymentAmount: -70, RoundedAmount: -70, Cashback: 2.0, Category: "Еда", Card: "*2222", Description: "Отменено", Status: "FAIL"},
	}
}

func TestDigest(t *testing.T) {
	settingsPath := writeSettings(t, `{"user_currencies": ["USD"], "user_stocks": ["AAPL"]}`)
	r := NewReports(
		memory.New(aprilLedger()),
		settingsPath,
		stubRates{rates: []core.CurrencyRate{{Currency: "USD", Rate: 90.0}}},
		stubStocks{prices: []core.StockPrice{{Stock: "AAPL", Price: 150.0}}},
		nil,
	).WithClock(func() time.Time { return at("2025-04-15 15:30:00") })

	d := r.Digest(context.Background(), "2025-04-15 00:00:00")

	if d.Greeting != "Добрый день" {
		t.Errorf("unexpected greeting %q", d.Greeting)
	}

	wantCards := []core.CardSummary{
		{LastDigits: "1111", TotalSpent: -150.0, Cashback: 4.5},
		{LastDigits: "2222", TotalSpent: -20.0, Cashback: 0.5},
	}
	if !reflect.DeepEqual(d.Cards, wantCards) {
		t.Errorf("expected cards %v, got %v", wantCards, d.Cards)
	}

	if len(d.TopTransactions) != 3 {
		t.Fatalf("expected 3 top transactions, got %d", len(d.TopTransactions))
	}
	if d.TopTransactions[0].Description != "Метро" || d.TopTransactions[0].Date != "10.04.2025" {
		t.Errorf("unexpected first top transaction: %+v", d.TopTransactions[0])
	}

	if len(d.CurrencyRates) != 1 || d.CurrencyRates[0].Rate != 90.0 {
		t.Errorf("unexpected rates: %v", d.CurrencyRates)
	}
	if len(d.StockPrices) != 1 || d.StockPrices[0].Price != 150.0 {
		t.Errorf("unexpected prices: %v", d.StockPrices)
	}
}

func TestDigestAbsentLedger(t *testing.T) {
	settingsPath := writeSettings(t, `{"user_currencies": [], "user_stocks": []}`)
	r := NewReports(memory.New(nil), settingsPath, stubRates{}, stubStocks{}, nil).
		WithClock(func() time.Time { return at("2025-04-15 23:00:00") })

	d := r.Digest(context.Background(), "2025-04-15 00:00:00")

	if d.Greeting != "Доброй ночи" {
		t.Errorf("unexpected greeting %q", d.Greeting)
	}
	if d.Cards != nil || d.TopTransactions != nil {
		t.Errorf("absent ledger must yield nil sections, got %v / %v", d.Cards, d.TopTransactions)
	}

	out, err := RenderJSON(d)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out, `"cards": null`) {
		t.Errorf("absent cards must render as null:\n%s", out)
	}
}

func TestDigestBadReference(t *testing.T) {
	settingsPath := writeSettings(t, `{"user_currencies": [], "user_stocks": []}`)
	r := NewReports(memory.New(aprilLedger()), settingsPath, stubRates{}, stubStocks{}, nil).
		WithClock(func() time.Time { return at("2025-04-15 08:00:00") })

	d := r.Digest(context.Background(), "15.04.2025")

	if d.Greeting != "Доброе утро" {
		t.Errorf("greeting must survive a bad reference, got %q", d.Greeting)
	}
	if d.Cards != nil {
		t.Errorf("bad reference must yield nil cards, got %v", d.Cards)
	}
}

func TestDigestFetchFailuresDegradeToNull(t *testing.T) {
	settingsPath := writeSettings(t, `{"user_currencies": ["USD"], "user_stocks": ["AAPL"]}`)
	r := NewReports(
		memory.New(aprilLedger()),
		settingsPath,
		stubRates{err: errors.New("status 403")},
		stubStocks{prices: []core.StockPrice{{Stock: "AAPL", Price: 150.0}}},
		nil,
	).WithClock(func() time.Time { return at("2025-04-15 15:30:00") })

	d := r.Digest(context.Background(), "2025-04-15 00:00:00")

	if d.CurrencyRates != nil {
		t.Errorf("failed currency batch must yield nil, got %v", d.CurrencyRates)
	}
	if len(d.StockPrices) != 1 {
		t.Errorf("stock batch must survive a currency failure, got %v", d.StockPrices)
	}
}

func TestDigestMissingSettings(t *testing.T) {
	r := NewReports(
		memory.New(aprilLedger()),
		filepath.Join(t.TempDir(), "nope.json"),
		stubRates{rates: []core.CurrencyRate{{Currency: "USD", Rate: 90.0}}},
		stubStocks{},
		nil,
	).WithClock(func() time.Time { return at("2025-04-15 15:30:00") })

	d := r.Digest(context.Background(), "2025-04-15 00:00:00")

	if d.CurrencyRates != nil || d.StockPrices != nil {
		t.Errorf("missing settings must yield nil quote sections, got %v / %v", d.CurrencyRates, d.StockPrices)
	}
	if d.Cards == nil {
		t.Error("card section must not depend on settings")
	}
}

func TestDigestIdempotent(t *testing.T) {
	settingsPath := writeSettings(t, `{"user_currencies": ["USD"], "user_stocks": ["AAPL"]}`)
	r := NewReports(
		memory.New(aprilLedger()),
		settingsPath,
		stubRates{rates: []core.CurrencyRate{{Currency: "USD", Rate: 90.0}}},
		stubStocks{prices: []core.StockPrice{{Stock: "AAPL", Price: 150.0}}},
		nil,
	).WithClock(func() time.Time { return at("2025-04-15 15:30:00") })

	first, err := RenderJSON(r.Digest(context.Background(), "2025-04-15 00:00:00"))
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	second, err := RenderJSON(r.Digest(context.Background(), "2025-04-15 00:00:00"))
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if first != second {
		t.Error("identical inputs must produce byte-identical output")
	}
}

func januaryLedger() []core.Transaction {
	return []core.Transaction{
		{OperationTime: at("2025-01-01 10:00:00"), Category: "Еда", Cashback: 10.0, Status: "OK"},
		{OperationTime: at("2025-01-15 12:00:00"), Category: "Транспорт", Cashback: 5.0, Status: "OK"},
		{OperationTime: at("2025-01-31 14:00:00"), Category: "Еда", Cashback: 0.0, Status: "OK"},
		{OperationTime: at("2025-02-01 09:00:00"), Category: "Транспорт", Cashback: 20.0, Status: "OK"},
		{OperationTime: at("2025-01-10 09:00:00"), Category: "Еда", Cashback: 15.0, Status: "OK"},
		{OperationTime: at("2025-01-10 09:00:00"), Category: "Развлечения", Cashback: 2.0, Status: "FAIL"},
	}
}

func newCashbackReports(src *memory.Source) *Reports {
	return NewReports(src, "unused.json", stubRates{}, stubStocks{}, nil)
}

func TestCashbackByMonth(t *testing.T) {
	r := newCashbackReports(memory.New(januaryLedger()))

	got := r.CashbackByMonth(context.Background(), 2025, 1)

	want := map[string]float64{"Еда": 25.0, "Транспорт": 5.0}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestCashbackByMonthEmptyMonthIsAbsent(t *testing.T) {
	r := newCashbackReports(memory.New(januaryLedger()))

	if got := r.CashbackByMonth(context.Background(), 2025, 6); got != nil {
		t.Errorf("month without records must be absent, got %v", got)
	}
}

func TestCashbackByMonthAbsentLedger(t *testing.T) {
	r := newCashbackReports(memory.New(nil))

	if got := r.CashbackByMonth(context.Background(), 2025, 1); got != nil {
		t.Errorf("absent ledger must yield nil, got %v", got)
	}
}

func TestCashbackByMonthAllFilteredOutIsEmptyMap(t *testing.T) {
	txs := []core.Transaction{
		{OperationTime: at("2025-01-10 09:00:00"), Category: "Еда", Cashback: 0.0, Status: "OK"},
	}
	r := newCashbackReports(memory.New(txs))

	got := r.CashbackByMonth(context.Background(), 2025, 1)

	if got == nil {
		t.Fatal("a month with records must not be absent, even when all are filtered out")
	}
	if len(got) != 0 {
		t.Errorf("expected empty map, got %v", got)
	}
}

func spendingLedger() []core.Transaction {
	return []core.Transaction{
		{OperationTime: at("2025-01-14 10:00:00"), Category: "Еда", RoundedAmount: 10, Status: "OK"},
		{OperationTime: at("2025-01-16 10:00:00"), Category: "Еда", RoundedAmount: 20, Status: "OK"},
		{OperationTime: at("2025-04-01 10:00:00"), Category: "Еда", RoundedAmount: 5, Status: "FAIL"},
		{OperationTime: at("2025-04-16 10:00:00"), Category: "Еда", RoundedAmount: 50, Status: "OK"},
		{OperationTime: at("2025-03-01 10:00:00"), Category: "Транспорт", RoundedAmount: 100, Status: "OK"},
		{OperationTime: at("2025-03-20 10:00:00"), Category: "Еда", RoundedAmount: 15, Status: "OK"},
		{OperationTime: at("2025-03-20 11:00:00"), Category: "Еда", RoundedAmount: 5, Status: "FAIL"},
	}
}

func TestSpendingByCategory(t *testing.T) {
	r := newCashbackReports(memory.New(spendingLedger()))

	got, ok := r.SpendingByCategory(context.Background(), "Еда", at("2025-04-15 00:00:00"))

	if !ok {
		t.Fatal("expected a present result")
	}
	want := map[string]float64{"Еда": 45.0}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestSpendingByCategoryEmptyIsPresent(t *testing.T) {
	r := newCashbackReports(memory.New(spendingLedger()))

	got, ok := r.SpendingByCategory(context.Background(), "Аптеки", at("2025-04-15 00:00:00"))

	if !ok {
		t.Fatal("an empty window is a valid result, not an absent one")
	}
	if got == nil || len(got) != 0 {
		t.Errorf("expected explicit empty map, got %v", got)
	}
}

func TestSpendingByCategoryAbsentLedger(t *testing.T) {
	r := newCashbackReports(memory.New(nil))

	got, ok := r.SpendingByCategory(context.Background(), "Еда", at("2025-04-15 00:00:00"))
	if ok || got != nil {
		t.Errorf("absent ledger must yield (nil, false), got (%v, %v)", got, ok)
	}
}

func TestSpendingByCategoryDefaultReference(t *testing.T) {
	r := newCashbackReports(memory.New(spendingLedger())).
		WithClock(func() time.Time { return at("2025-04-15 18:45:00") })

	got, ok := r.SpendingByCategory(context.Background(), "Еда", time.Time{})

	if !ok {
		t.Fatal("expected a present result")
	}
	// Midnight of the clock date: the 2025-04-15 reference of the explicit
	// test, so the same window applies.
	want := map[string]float64{"Еда": 45.0}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestSpendingByCategoryJSON(t *testing.T) {
	r := newCashbackReports(memory.New(spendingLedger()))

	out, err := r.SpendingByCategoryJSON(context.Background(), "Еда", at("2025-04-15 00:00:00"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "\"Еда\": 45") {
		t.Errorf("unexpected rendering:\n%s", out)
	}

	if _, err := newCashbackReports(memory.New(nil)).SpendingByCategoryJSON(context.Background(), "Еда", at("2025-04-15 00:00:00")); err == nil {
		t.Fatal("absent ledger must surface as an error")
	}
}

func TestRenderJSON(t *testing.T) {
	out, err := RenderJSON(map[string]float64{"Еда": 45.0, "Аптеки": 10.5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if strings.Contains(out, "\\u") {
		t.Errorf("non-ASCII text must be preserved:\n%s", out)
	}
	if !strings.Contains(out, "    \"Аптеки\": 10.5") {
		t.Errorf("expected four-space indentation:\n%s", out)
	}
	if strings.Index(out, "Аптеки") > strings.Index(out, "Еда") {
		t.Errorf("map keys must render sorted:\n%s", out)
	}
}

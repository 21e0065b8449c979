package ledger

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"svodka/internal/core"
)

// Column headers of the operations sheet.
const (
	HeaderDate        = "Дата операции"
	HeaderPayment     = "Сумма платежа"
	HeaderRounded     = "Сумма операции с округлением"
	HeaderCashback    = "Кэшбэк"
	HeaderCategory    = "Категория"
	HeaderCard        = "Номер карты"
	HeaderDescription = "Описание"
	HeaderStatus      = "Статус"
)

var opTimeLayouts = []string{
	"02.01.2006 15:04:05",
	"02.01.2006",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseRows converts a header-plus-data matrix into transactions. The
// first row names the columns; unknown columns are ignored, blank numeric
// cells read as zero, and rows without an operation date are skipped.
// A matrix with a header but no data rows is an empty ledger, which is a
// valid state distinct from a missing one.
func ParseRows(rows [][]string) ([]core.Transaction, error) {
	if len(rows) == 0 {
		return nil, ErrNoLedger
	}

	idx := make(map[string]int, len(rows[0]))
	for i, h := range rows[0] {
		idx[strings.TrimSpace(h)] = i
	}
	if _, ok := idx[HeaderDate]; !ok {
		return nil, fmt.Errorf("ledger header: missing column %q", HeaderDate)
	}

	txs := make([]core.Transaction, 0, len(rows)-1)
	for _, row := range rows[1:] {
		cell := func(name string) string {
			i, ok := idx[name]
			if !ok || i >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[i])
		}

		raw := cell(HeaderDate)
		if raw == "" {
			continue
		}
		ts, err := ParseOperationTime(raw)
		if err != nil {
			return nil, fmt.Errorf("ledger row: %w", err)
		}

		txs = append(txs, core.Transaction{
			OperationTime: ts,
			PaymentAmount: num(cell(HeaderPayment)),
			RoundedAmount: num(cell(HeaderRounded)),
			Cashback:      num(cell(HeaderCashback)),
			Category:      cell(HeaderCategory),
			Card:          cell(HeaderCard),
			Description:   cell(HeaderDescription),
			Status:        cell(HeaderStatus),
		})
	}
	return txs, nil
}

// ParseOperationTime parses a ledger timestamp, day-first, with or without
// a time of day.
func ParseOperationTime(s string) (time.Time, error) {
	for _, layout := range opTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("parse operation time %q", s)
}

func num(s string) float64 {
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
	if err != nil {
		return 0
	}
	return v
}

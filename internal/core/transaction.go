// Package core holds the transaction record model and the pure
// filter/aggregate transforms the reports are built from.
package core

import (
	"strings"
	"time"
)

// StatusOK marks an economically valid operation. Every aggregation must
// exclude records carrying any other status.
const StatusOK = "OK"

type (
	// Transaction is one ledger row. Records are immutable once loaded;
	// filters return fresh slices instead of mutating in place.
	Transaction struct {
		OperationTime time.Time
		PaymentAmount float64
		RoundedAmount float64
		Cashback      float64
		Category      string
		Card          string
		Description   string
		Status        string
	}

	// Settings lists the currencies and stock tickers the user tracks.
	Settings struct {
		UserCurrencies []string `json:"user_currencies"`
		UserStocks     []string `json:"user_stocks"`
	}
)

// LastDigits returns the card identifier with mask characters stripped
// ("*1234" -> "1234").
func (t Transaction) LastDigits() string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, t.Card)
}

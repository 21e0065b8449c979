package core

// CardSummary is the per-card spend/cashback line of the dashboard digest.
type CardSummary struct {
	LastDigits string  `json:"last_digits"`
	TotalSpent float64 `json:"total_spent"`
	Cashback   float64 `json:"cashback"`
}

// TopTransaction is one entry of the digest's largest-operations list.
type TopTransaction struct {
	Date        string  `json:"date"`
	Amount      float64 `json:"amount"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
}

// CurrencyRate is a 1-unit conversion rate into RUB.
type CurrencyRate struct {
	Currency string  `json:"currency"`
	Rate     float64 `json:"rate"`
}

// StockPrice is the latest quote for one tracked ticker.
type StockPrice struct {
	Stock string  `json:"stock"`
	Price float64 `json:"price"`
}

// Digest is the composite dashboard report. Slice fields deliberately have
// no omitempty: an absent sub-result must render as null, not disappear.
type Digest struct {
	Greeting        string           `json:"greeting"`
	Cards           []CardSummary    `json:"cards"`
	TopTransactions []TopTransaction `json:"top_transactions"`
	CurrencyRates   []CurrencyRate   `json:"currency_rates"`
	StockPrices     []StockPrice     `json:"stock_prices"`
}

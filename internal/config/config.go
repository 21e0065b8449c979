package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

type Config struct {
	// Ledger
	LedgerBackend string
	LedgerPath    string
	SettingsPath  string

	// Quote providers
	CurrencyAPIURL string
	CurrencyAPIKey string
	StockAPIURL    string
	StockAPIKey    string

	// Reports
	TopTransactions int
	ReportSinkPath  string
	HistoryDBPath   string

	// Logging
	LogDir string
}

func Load() *Config {
	cfg := &Config{
		LedgerBackend: getEnv("LEDGER_BACKEND", "xlsx"),
		LedgerPath:    getEnv("LEDGER_PATH", "./data/operations.xlsx"),
		SettingsPath:  getEnv("USER_SETTINGS_PATH", "./user_settings.json"),

		CurrencyAPIURL: getEnv("CURRENCY_API_URL", ""),
		CurrencyAPIKey: getEnv("CURRENCY_API_KEY", ""),
		StockAPIURL:    getEnv("STOCK_API_URL", ""),
		StockAPIKey:    getEnv("STOCK_API_KEY", ""),

		TopTransactions: getEnvInt("TOP_TRANSACTIONS", 5),
		ReportSinkPath:  getEnv("REPORT_SINK_PATH", "./log.log"),
		HistoryDBPath:   getEnv("HISTORY_DB_PATH", "./data/svodka.db"),

		LogDir: getEnv("LOG_DIR", "./logs"),
	}

	return cfg
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	validBackends := []string{"xlsx", "sheets", "memory"}
	isValidBackend := false
	for _, backend := range validBackends {
		if c.LedgerBackend == backend {
			isValidBackend = true
			break
		}
	}
	if !isValidBackend {
		errors = append(errors, fmt.Sprintf("invalid ledger backend '%s': must be one of %v", c.LedgerBackend, validBackends))
	}

	if c.LedgerBackend == "xlsx" && c.LedgerPath == "" {
		errors = append(errors, "ledger path cannot be empty when using the xlsx backend")
	}

	if c.SettingsPath == "" {
		errors = append(errors, "user settings path cannot be empty")
	}

	if c.TopTransactions < 1 {
		errors = append(errors, fmt.Sprintf("invalid top transactions count %d: must be at least 1", c.TopTransactions))
	}

	if c.ReportSinkPath == "" {
		errors = append(errors, "report sink path cannot be empty")
	}

	if c.HistoryDBPath != "" {
		dir := filepath.Dir(c.HistoryDBPath)
		if dir != "." && dir != "" {
			if _, err := os.Stat(dir); os.IsNotExist(err) {
				if err := os.MkdirAll(dir, 0755); err != nil {
					errors = append(errors, fmt.Sprintf("cannot create history database directory '%s': %v", dir, err))
				}
			}
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(errors, "\n  - "))
	}

	return nil
}

// getEnv gets an environment variable with a fallback default
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt gets an environment variable as int with a fallback default
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

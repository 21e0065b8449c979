package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"svodka/internal/config"
	"svodka/internal/ledger"
	"svodka/internal/ledger/google"
	"svodka/internal/ledger/memory"
	"svodka/internal/ledger/xlsx"
	"svodka/internal/log"
	"svodka/internal/quotes"
	"svodka/internal/services"
	"svodka/internal/storage"
)

func main() {
	root := &cobra.Command{
		Use:          "svodka",
		Short:        "svodka builds personal finance reports from a transaction ledger",
		SilenceUsage: true,
		RunE:         runInteractive,
	}
	root.AddCommand(newHistoryCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func setup() (*config.Config, *log.Logger, error) {
	// .env is optional in production
	_ = godotenv.Load()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	logger := log.New(log.Config{
		Level:     slog.LevelDebug,
		Component: "app",
		Handler:   log.NewFileHandler(cfg.LogDir, slog.LevelDebug),
	})
	log.SetDefault(logger)

	return cfg, logger, nil
}

func newLedgerSource(ctx context.Context, cfg *config.Config) (ledger.Source, error) {
	switch cfg.LedgerBackend {
	case "sheets":
		return google.NewFromEnv(ctx)
	case "memory":
		return memory.New(nil), nil
	default:
		return xlsx.New(cfg.LedgerPath), nil
	}
}

func runInteractive(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}

	src, err := newLedgerSource(cmd.Context(), cfg)
	if err != nil {
		logger.Error("ledger backend init failed", "backend", cfg.LedgerBackend, "error", err)
		return err
	}

	client := quotes.NewClient(nil, cfg.CurrencyAPIURL, cfg.CurrencyAPIKey, cfg.StockAPIURL, cfg.StockAPIKey)
	reports := services.NewReports(src, cfg.SettingsPath, client, client, logger).
		WithTopN(cfg.TopTransactions)

	in := bufio.NewReader(cmd.InOrStdin())
	out := cmd.OutOrStdout()

	// Dashboard digest
	date := prompt(in, out, "Введите дату в формате YYYY-MM-DD HH:MM:SS, чтобы получить данные с начала месяца    ")
	rendered, err := services.RenderJSON(reports.Digest(cmd.Context(), date))
	if err != nil {
		return err
	}
	fmt.Fprintln(out, rendered)

	// Monthly cashback by category
	fmt.Fprintln(out, "Чтобы получить список выгодных категорий повышенного кэшбэка за месяц")
	year, err := strconv.Atoi(prompt(in, out, "введите год    "))
	if err != nil {
		return fmt.Errorf("bad year: %w", err)
	}
	month, err := strconv.Atoi(prompt(in, out, "Введите месяц    "))
	if err != nil {
		return fmt.Errorf("bad month: %w", err)
	}
	if cash := reports.CashbackByMonth(cmd.Context(), year, month); cash != nil {
		rendered, err := services.RenderJSON(cash)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, rendered)
	}

	// Spending by category over the trailing three months
	fmt.Fprintln(out, "Чтобы получить траты по заданной категории за последние три месяца")
	category := capitalize(prompt(in, out, "Введите категорию    "))
	var ref time.Time
	if raw := prompt(in, out, "Введите дату (необязательно)    "); raw != "" {
		ref, err = ledger.ParseOperationTime(raw)
		if err != nil {
			return fmt.Errorf("bad date: %w", err)
		}
	}

	var history *storage.History
	if cfg.HistoryDBPath != "" {
		history, err = storage.NewHistory(cfg.HistoryDBPath)
		if err != nil {
			logger.Error("report history unavailable", "path", cfg.HistoryDBPath, "error", err)
			history = nil
		} else {
			defer history.Close()
		}
	}

	spending := services.WithAudit(reports.SpendingByCategoryJSON, cfg.ReportSinkPath, history, logger)
	result, err := spending(cmd.Context(), category, ref)
	if err != nil {
		logger.Error("spending report failed", "category", category, "error", err)
		return nil
	}
	fmt.Fprintln(out, result)
	return nil
}

func newHistoryCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent report invocations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, _, err := setup()
			if err != nil {
				return err
			}
			if cfg.HistoryDBPath == "" {
				return fmt.Errorf("report history is disabled (HISTORY_DB_PATH is empty)")
			}

			h, err := storage.NewHistory(cfg.HistoryDBPath)
			if err != nil {
				return err
			}
			defer h.Close()

			entries, err := h.Recent(cmd.Context(), limit)
			if err != nil {
				return err
			}
			for _, e := range entries {
				status := "ok"
				if !e.OK {
					status = "error"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %-22s %-5s  %s\n",
					e.CreatedAt.Format(time.RFC3339), e.Report, status, e.Payload)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "number of entries to show")
	return cmd
}

func prompt(in *bufio.Reader, out io.Writer, msg string) string {
	fmt.Fprint(out, msg)
	line, _ := in.ReadString('\n')
	return strings.TrimSpace(line)
}

// capitalize normalizes a category the way it is stored in the ledger:
// first rune upper, the rest lower.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(strings.ToLower(s))
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

package xlsx

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"svodka/internal/ledger"
)

func writeWorkbook(t *testing.T, rows [][]any) string {
	t.Helper()

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatalf("set row: %v", err)
		}
	}

	path := filepath.Join(t.TempDir(), "operations.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save workbook: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeWorkbook(t, [][]any{
		{ledger.HeaderDate, ledger.HeaderPayment, ledger.HeaderRounded, ledger.HeaderCashback,
			ledger.HeaderCategory, ledger.HeaderCard, ledger.HeaderDescription, ledger.HeaderStatus},
		{"15.01.2025 12:30:00", -100.5, -100.5, 1.5, "Еда", "*1111", "Обед", "OK"},
		{"16.01.2025 09:00:00", -20.0, -20.0, 0.0, "Транспорт", "*2222", "Метро", "OK"},
	})

	txs, err := New(path).Load(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(txs) != 2 {
		t.Fatalf("expected 2 transactions, got %d", len(txs))
	}
	if txs[0].Category != "Еда" || txs[0].PaymentAmount != -100.5 {
		t.Errorf("unexpected first transaction: %+v", txs[0])
	}
	if txs[1].Card != "*2222" {
		t.Errorf("unexpected second transaction: %+v", txs[1])
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "nope.xlsx")).Load(context.Background())
	if !errors.Is(err, ledger.ErrNoLedger) {
		t.Errorf("expected ErrNoLedger, got %v", err)
	}
}

func TestLoadEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.xlsx")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatalf("write empty file: %v", err)
	}

	_, err := New(path).Load(context.Background())
	if !errors.Is(err, ledger.ErrNoLedger) {
		t.Errorf("expected ErrNoLedger, got %v", err)
	}
}

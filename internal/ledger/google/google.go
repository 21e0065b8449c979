// Package google reads the ledger from a Google Sheets spreadsheet.
package google

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"

	"svodka/internal/core"
	"svodka/internal/ledger"
)

type Source struct {
	svc           *gsheet.Service
	spreadsheetID string
	readRange     string
}

var _ ledger.Source = (*Source)(nil)

// NewFromEnv builds a Sheets-backed ledger source.
// Required: GOOGLE_SPREADSHEET_ID. Auth comes from GOOGLE_CREDENTIALS_JSON
// or Application Default Credentials. The sheet name defaults to
// "Operations" and can be overridden with GOOGLE_SHEET_NAME.
func NewFromEnv(ctx context.Context) (*Source, error) {
	spreadsheetID := strings.TrimSpace(os.Getenv("GOOGLE_SPREADSHEET_ID"))
	if spreadsheetID == "" {
		return nil, errors.New("missing GOOGLE_SPREADSHEET_ID")
	}
	sheet := strings.TrimSpace(os.Getenv("GOOGLE_SHEET_NAME"))
	if sheet == "" {
		sheet = "Operations"
	}

	opts := []goption.ClientOption{goption.WithScopes(gsheet.SpreadsheetsReadonlyScope)}
	if creds := strings.TrimSpace(os.Getenv("GOOGLE_CREDENTIALS_JSON")); creds != "" {
		opts = append(opts, goption.WithCredentialsJSON([]byte(creds)))
	}
	svc, err := gsheet.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}

	return &Source{svc: svc, spreadsheetID: spreadsheetID, readRange: sheet}, nil
}

// Load fetches the whole sheet and parses it exactly like the xlsx source.
func (s *Source) Load(ctx context.Context) ([]core.Transaction, error) {
	resp, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, s.readRange).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read range %s: %w", s.readRange, err)
	}
	if len(resp.Values) == 0 {
		return nil, ledger.ErrNoLedger
	}
	return ledger.ParseRows(toStrings(resp.Values))
}

func toStrings(values [][]any) [][]string {
	rows := make([][]string, 0, len(values))
	for _, raw := range values {
		row := make([]string, 0, len(raw))
		for _, c := range raw {
			row = append(row, fmt.Sprint(c))
		}
		rows = append(rows, row)
	}
	return rows
}

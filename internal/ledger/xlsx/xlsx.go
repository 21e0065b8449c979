// Package xlsx loads the ledger from an operations workbook on disk.
package xlsx

import (
	"context"
	"fmt"
	"os"

	"github.com/xuri/excelize/v2"

	"svodka/internal/core"
	"svodka/internal/ledger"
)

type Source struct {
	path string
}

var _ ledger.Source = (*Source)(nil)

func New(path string) *Source {
	return &Source{path: path}
}

// Load reads the first sheet of the workbook. A missing or zero-size file
// means there is no ledger at all, which reports render as absent rather
// than failing on.
func (s *Source) Load(_ context.Context) ([]core.Transaction, error) {
	info, err := os.Stat(s.path)
	if err != nil || info.Size() == 0 {
		return nil, ledger.ErrNoLedger
	}

	f, err := excelize.OpenFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", s.path, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ledger.ErrNoLedger
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheets[0], err)
	}
	return ledger.ParseRows(rows)
}

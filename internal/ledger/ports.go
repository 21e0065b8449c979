// Package ledger defines the sources a transaction ledger can be loaded
// from and the shared row parsing all of them use.
package ledger

import (
	"context"
	"errors"

	"svodka/internal/core"
)

// ErrNoLedger reports a missing or empty ledger source. Report builders
// treat it as "no data at all" and degrade to absent results instead of
// failing the run.
var ErrNoLedger = errors.New("ledger not found or empty")

// Source loads the full ordered ledger snapshot. Every report run calls
// Load fresh; implementations must not cache between calls.
type Source interface {
	Load(ctx context.Context) ([]core.Transaction, error)
}

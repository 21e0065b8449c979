// Package memory holds a fixed in-memory ledger, used by tests and the
// "memory" CLI backend.
package memory

import (
	"context"
	"sync"

	"svodka/internal/core"
	"svodka/internal/ledger"
)

type Source struct {
	mu  sync.Mutex
	txs []core.Transaction
}

var _ ledger.Source = (*Source)(nil)

func New(txs []core.Transaction) *Source {
	return &Source{txs: append([]core.Transaction(nil), txs...)}
}

// Load returns a copy of the seeded snapshot, or ErrNoLedger when nothing
// was seeded.
func (s *Source) Load(_ context.Context) ([]core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.txs) == 0 {
		return nil, ledger.ErrNoLedger
	}
	return append([]core.Transaction(nil), s.txs...), nil
}

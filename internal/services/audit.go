package services

import (
	"context"
	"fmt"
	"os"
	"time"

	"svodka/internal/log"
	"svodka/internal/storage"
)

// SpendingFunc produces the serialized spending report for a category and
// reference date.
type SpendingFunc func(ctx context.Context, category string, ref time.Time) (string, error)

// WithAudit wraps fn so that every invocation's outcome, success or
// failure, is truncate-written to the sink file and recorded in the
// history store (when one is configured) before the result is returned.
// The write happens on every exit path; it is an observable side effect of
// the report, not diagnostic logging.
func WithAudit(fn SpendingFunc, sinkPath string, history *storage.History, logger *log.Logger) SpendingFunc {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	auditLog := logger.WithComponent("audit")

	return func(ctx context.Context, category string, ref time.Time) (string, error) {
		out, err := fn(ctx, category, ref)

		payload := out
		if err != nil {
			payload = fmt.Sprintf("spending_by_category error: %v. Inputs: %q, %s",
				err, category, ref.Format("2006-01-02"))
		}

		if werr := os.WriteFile(sinkPath, []byte(payload), 0o644); werr != nil {
			auditLog.Error("sink write failed", "path", sinkPath, "error", werr)
		}
		if history != nil {
			if herr := history.Record(ctx, "spending_by_category", payload, err == nil); herr != nil {
				auditLog.Error("history record failed", "error", herr)
			}
		}

		return out, err
	}
}

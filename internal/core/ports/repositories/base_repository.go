package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// TransactionManager exposes explicit transaction control for
// repositories that compose multi-statement postings, such as an
// inventory mutation committed together with its ledger entry.
type TransactionManager interface {
	// Begin opens a transaction on the underlying pool.
	Begin(ctx context.Context) (pgx.Tx, error)

	// Commit commits tx.
	Commit(ctx context.Context, tx pgx.Tx) error

	// Rollback rolls back tx, ignoring transactions already closed by
	// Commit so callers can defer it unconditionally.
	Rollback(ctx context.Context, tx pgx.Tx) error
}

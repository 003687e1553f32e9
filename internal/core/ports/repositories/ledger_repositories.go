package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/pardisco/shop_ledger_app/internal/core/domain"
)

// LedgerReader defines read operations for ledger entries
type LedgerReader interface {
	// ListEntriesByAccount retrieves ledger entries for one account in
	// insertion order (ascending entry id). afterEntryID is an exclusive
	// keyset cursor; nil starts from the first entry.
	ListEntriesByAccount(ctx context.Context, kind domain.AccountKind, accountID string, limit int, afterEntryID *int64) ([]domain.LedgerEntry, error)
}

// LedgerWriter defines write operations for ledger entries
type LedgerWriter interface {
	// AppendEntry posts one ledger entry in its own transaction: it locks
	// the account row, computes the new running balance from the tail
	// entry, inserts the entry and updates the persisted account balance.
	AppendEntry(ctx context.Context, posting domain.LedgerPosting) (*domain.LedgerEntry, error)
}

// LedgerTransactionSupport defines posting operations inside a caller-owned transaction
type LedgerTransactionSupport interface {
	// AppendEntryInTx posts one ledger entry within tx, following the same
	// lock/compute/insert/update sequence as AppendEntry.
	AppendEntryInTx(ctx context.Context, tx pgx.Tx, posting domain.LedgerPosting) (*domain.LedgerEntry, error)
}

// LedgerRepositoryFacade combines all ledger-related repository interfaces
type LedgerRepositoryFacade interface {
	LedgerReader
	LedgerWriter
	LedgerTransactionSupport
}

// LedgerRepositoryWithTx extends LedgerRepositoryFacade with transaction capabilities
type LedgerRepositoryWithTx interface {
	LedgerRepositoryFacade
	TransactionManager
}

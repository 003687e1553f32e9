package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pardisco/shop_ledger_app/internal/apperrors"
	"github.com/pardisco/shop_ledger_app/internal/core/domain"
	portsrepo "github.com/pardisco/shop_ledger_app/internal/core/ports/repositories"
	"github.com/pardisco/shop_ledger_app/internal/middleware"
	"github.com/pardisco/shop_ledger_app/internal/utils/ledgercalc"
	"github.com/shopspring/decimal"
)

type PgxLedgerRepository struct {
	BaseRepository
	accountRepo portsrepo.AccountRepositoryFacade
}

// newPgxLedgerRepository creates a new repository for ledger entries.
// The account repository is used to lock account rows and maintain the
// persisted balance while posting.
func newPgxLedgerRepository(pool *pgxpool.Pool, accountRepo portsrepo.AccountRepositoryFacade) portsrepo.LedgerRepositoryWithTx {
	return &PgxLedgerRepository{
		BaseRepository: BaseRepository{Pool: pool},
		accountRepo:    accountRepo,
	}
}

var _ portsrepo.LedgerRepositoryWithTx = (*PgxLedgerRepository)(nil)

// AppendEntry posts one ledger entry in its own transaction.
func (r *PgxLedgerRepository) AppendEntry(ctx context.Context, posting domain.LedgerPosting) (*domain.LedgerEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		if rbErr := r.Rollback(ctx, tx); rbErr != nil {
			logger.Error("failed to rollback ledger append transaction", "error", rbErr)
		}
	}()

	entry, err := r.AppendEntryInTx(ctx, tx, posting)
	if err != nil {
		return nil, err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return entry, nil
}

// AppendEntryInTx posts one ledger entry within tx. The sequence is:
// lock the account row, read the tail entry's balance, compute the new
// running balance, insert the entry and update the persisted account
// balance. Serializing on the account row lock keeps the balance chain
// free of gaps under concurrent postings.
func (r *PgxLedgerRepository) AppendEntryInTx(ctx context.Context, tx pgx.Tx, posting domain.LedgerPosting) (*domain.LedgerEntry, error) {
	persisted, err := r.accountRepo.FindAccountBalanceForUpdate(ctx, tx, posting.AccountKind, posting.AccountID)
	if err != nil {
		return nil, err
	}

	previous, err := r.tailBalanceInTx(ctx, tx, posting.AccountKind, posting.AccountID, persisted)
	if err != nil {
		return nil, err
	}

	newBalance, err := ledgercalc.NextBalance(posting.AccountKind, previous, posting.Debit, posting.Credit)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}

	now := time.Now().UTC()
	insertQuery := `
		INSERT INTO ledger_entries (account_kind, account_id, transaction_date, description, debit, credit, balance, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING entry_id;
	`
	var entryID int64
	err = tx.QueryRow(ctx, insertQuery,
		posting.AccountKind,
		posting.AccountID,
		posting.TransactionDate,
		posting.Description,
		posting.Debit,
		posting.Credit,
		newBalance,
		now,
	).Scan(&entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to insert ledger entry for %s account %s: %w", posting.AccountKind, posting.AccountID, err)
	}

	if err := r.accountRepo.UpdateAccountBalanceInTx(ctx, tx, posting.AccountKind, posting.AccountID, newBalance, now); err != nil {
		return nil, err
	}

	return &domain.LedgerEntry{
		EntryID:         entryID,
		AccountKind:     posting.AccountKind,
		AccountID:       posting.AccountID,
		TransactionDate: posting.TransactionDate,
		Description:     posting.Description,
		Debit:           posting.Debit,
		Credit:          posting.Credit,
		Balance:         newBalance,
		CreatedAt:       now,
	}, nil
}

// tailBalanceInTx reads the balance snapshot of the account's newest
// entry. The account row must already be locked. An account with no
// entries falls back to its persisted balance (zero at creation).
func (r *PgxLedgerRepository) tailBalanceInTx(ctx context.Context, tx pgx.Tx, kind domain.AccountKind, accountID string, persisted decimal.Decimal) (decimal.Decimal, error) {
	query := `
		SELECT balance
		FROM ledger_entries
		WHERE account_kind = $1 AND account_id = $2
		ORDER BY entry_id DESC
		LIMIT 1;
	`
	var tail decimal.Decimal
	err := tx.QueryRow(ctx, query, kind, accountID).Scan(&tail)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return persisted, nil
		}
		return decimal.Zero, fmt.Errorf("failed to read tail ledger balance for %s account %s: %w", kind, accountID, err)
	}
	return tail, nil
}

// ListEntriesByAccount retrieves a page of an account's ledger in
// insertion order, using entry_id as an exclusive keyset cursor.
func (r *PgxLedgerRepository) ListEntriesByAccount(ctx context.Context, kind domain.AccountKind, accountID string, limit int, afterEntryID *int64) ([]domain.LedgerEntry, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `
		SELECT entry_id, account_kind, account_id, transaction_date, description, debit, credit, balance, created_at
		FROM ledger_entries
		WHERE account_kind = $1 AND account_id = $2
	`
	args := []interface{}{kind, accountID}
	if afterEntryID != nil {
		query += ` AND entry_id > $3`
		args = append(args, *afterEntryID)
	}
	query += fmt.Sprintf(` ORDER BY entry_id ASC LIMIT $%d;`, len(args)+1)
	args = append(args, limit)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query ledger entries for %s account %s: %w", kind, accountID, err)
	}
	defer rows.Close()

	entries := []domain.LedgerEntry{}
	for rows.Next() {
		var e domain.LedgerEntry
		err := rows.Scan(
			&e.EntryID,
			&e.AccountKind,
			&e.AccountID,
			&e.TransactionDate,
			&e.Description,
			&e.Debit,
			&e.Credit,
			&e.Balance,
			&e.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ledger entry row: %w", err)
		}
		entries = append(entries, e)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating ledger entry rows: %w", rows.Err())
	}
	return entries, nil
}

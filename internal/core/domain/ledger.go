package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerEntry is one immutable row of an account's transaction log.
// Balance is the post-transaction snapshot: for any account, entries
// ordered by EntryID form a sequence where each Balance equals the prior
// Balance adjusted by this entry's debit/credit under the account-kind
// sign convention. There are no update or delete operations.
type LedgerEntry struct {
	EntryID         int64           `json:"entryID"`
	AccountKind     AccountKind     `json:"accountKind"`
	AccountID       string          `json:"accountID"`
	TransactionDate time.Time       `json:"transactionDate"`
	Description     string          `json:"description"`
	Debit           decimal.Decimal `json:"debit"`
	Credit          decimal.Decimal `json:"credit"`
	Balance         decimal.Decimal `json:"balance"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// LedgerPosting is an instruction to append one ledger entry as part of a
// larger transaction (a sale, an installment sale, a goods receipt). The
// balance snapshot is computed by the repository inside that transaction,
// after locking the account row.
type LedgerPosting struct {
	AccountKind     AccountKind
	AccountID       string
	Description     string
	Debit           decimal.Decimal
	Credit          decimal.Decimal
	TransactionDate time.Time
}

package services

import (
	"context"

	"github.com/pardisco/shop_ledger_app/internal/core/domain"
	"github.com/pardisco/shop_ledger_app/internal/dto"
)

// LedgerReaderSvc defines read operations for account ledgers
type LedgerReaderSvc interface {
	// ListEntries retrieves a page of an account's ledger, newest first.
	ListEntries(ctx context.Context, kind domain.AccountKind, accountID string, params dto.ListLedgerParams) (*dto.ListLedgerResponse, error)
}

// LedgerWriterSvc defines write operations for account ledgers
type LedgerWriterSvc interface {
	// AddManualEntry posts a manual debit or credit against an account and
	// returns the appended entry with its balance snapshot.
	AddManualEntry(ctx context.Context, kind domain.AccountKind, accountID string, req dto.ManualLedgerEntryRequest) (*domain.LedgerEntry, error)
}

// LedgerSvcFacade combines all ledger-related service interfaces
type LedgerSvcFacade interface {
	LedgerReaderSvc
	LedgerWriterSvc
}

package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/pardisco/shop_ledger_app/internal/apperrors"
	"github.com/pardisco/shop_ledger_app/internal/core/domain"
	portsrepo "github.com/pardisco/shop_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/pardisco/shop_ledger_app/internal/core/ports/services"
	"github.com/pardisco/shop_ledger_app/internal/dto"
	"github.com/pardisco/shop_ledger_app/internal/middleware"
	"github.com/pardisco/shop_ledger_app/internal/utils/jdate"
	"github.com/pardisco/shop_ledger_app/internal/utils/pagination"
)

type ledgerService struct {
	ledgerRepo  portsrepo.LedgerRepositoryFacade
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewLedgerService creates the service managing account ledgers.
func NewLedgerService(ledgerRepo portsrepo.LedgerRepositoryFacade, accountRepo portsrepo.AccountRepositoryFacade) portssvc.LedgerSvcFacade {
	return &ledgerService{ledgerRepo: ledgerRepo, accountRepo: accountRepo}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// verifyAccountExists checks the target account before posting so a bad
// ID fails with NotFound instead of surfacing from inside the posting
// transaction.
func (s *ledgerService) verifyAccountExists(ctx context.Context, kind domain.AccountKind, accountID string) error {
	switch kind {
	case domain.KindCustomer:
		_, err := s.accountRepo.FindCustomerByID(ctx, accountID)
		return err
	case domain.KindPartner:
		_, err := s.accountRepo.FindPartnerByID(ctx, accountID)
		return err
	default:
		return fmt.Errorf("%w: unknown account kind %q", apperrors.ErrValidation, kind)
	}
}

// AddManualEntry posts a manual debit or credit against an account.
// Exactly one of debit and credit must be positive.
func (s *ledgerService) AddManualEntry(ctx context.Context, kind domain.AccountKind, accountID string, req dto.ManualLedgerEntryRequest) (*domain.LedgerEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Debit.IsNegative() || req.Credit.IsNegative() {
		return nil, fmt.Errorf("%w: debit and credit must not be negative", apperrors.ErrInvalidAmount)
	}
	if req.Debit.IsPositive() == req.Credit.IsPositive() {
		return nil, fmt.Errorf("%w: exactly one of debit and credit must be positive", apperrors.ErrInvalidAmount)
	}

	if err := s.verifyAccountExists(ctx, kind, accountID); err != nil {
		return nil, err
	}

	txnDate := time.Now().UTC()
	if req.TransactionDate != "" {
		parsed, err := jdate.NormalizeDateString(req.TransactionDate)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		txnDate = parsed
	}

	posting := domain.LedgerPosting{
		AccountKind:     kind,
		AccountID:       accountID,
		Description:     req.Description,
		Debit:           req.Debit,
		Credit:          req.Credit,
		TransactionDate: txnDate,
	}

	entry, err := s.ledgerRepo.AppendEntry(ctx, posting)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to append manual ledger entry", slog.String("error", err.Error()), slog.String("account_id", accountID))
		}
		return nil, err
	}

	logger.Info("Manual ledger entry posted",
		slog.String("account_id", accountID),
		slog.Int64("entry_id", entry.EntryID),
		slog.String("balance", entry.Balance.String()),
	)
	return entry, nil
}

// ListEntries retrieves a page of an account's ledger in insertion order.
func (s *ledgerService) ListEntries(ctx context.Context, kind domain.AccountKind, accountID string, params dto.ListLedgerParams) (*dto.ListLedgerResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.verifyAccountExists(ctx, kind, accountID); err != nil {
		return nil, err
	}

	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}

	var afterEntryID *int64
	if params.NextToken != "" {
		raw, err := pagination.DecodeIDToken(params.NextToken)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid pagination token", apperrors.ErrValidation)
		}
		afterEntryID = &id
	}

	// Fetch one extra row to detect whether another page exists.
	entries, err := s.ledgerRepo.ListEntriesByAccount(ctx, kind, accountID, limit+1, afterEntryID)
	if err != nil {
		logger.Error("Failed to list ledger entries", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to list ledger entries: %w", err)
	}

	var nextToken *string
	if len(entries) > limit {
		entries = entries[:limit]
		token := pagination.EncodeIDToken(strconv.FormatInt(entries[len(entries)-1].EntryID, 10))
		nextToken = &token
	}

	return dto.ToListLedgerResponse(entries, nextToken), nil
}

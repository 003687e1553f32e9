package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/pardisco/shop_ledger_app/internal/apperrors"
	"github.com/pardisco/shop_ledger_app/internal/core/domain"
	portsrepo "github.com/pardisco/shop_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/pardisco/shop_ledger_app/internal/core/ports/services"
	"github.com/pardisco/shop_ledger_app/internal/dto"
	"github.com/pardisco/shop_ledger_app/internal/middleware"
	"github.com/pardisco/shop_ledger_app/internal/utils/jdate"
	"github.com/pardisco/shop_ledger_app/internal/utils/pagination"
	"github.com/shopspring/decimal"
)

type saleService struct {
	saleRepo    portsrepo.SaleRepositoryFacade
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewSaleService creates the service recording sales.
func NewSaleService(saleRepo portsrepo.SaleRepositoryFacade, accountRepo portsrepo.AccountRepositoryFacade) portssvc.SaleSvcFacade {
	return &saleService{saleRepo: saleRepo, accountRepo: accountRepo}
}

var _ portssvc.SaleSvcFacade = (*saleService)(nil)

// RecordSale validates and records a sale. The unit price comes from
// the stored item, resolved inside the repository transaction together
// with the inventory mutation, the sale record and the receivable
// posting, so the whole sale commits atomically. CASH sales never touch
// the ledger, even when a customer is attached to the record.
func (s *saleService) RecordSale(ctx context.Context, req dto.RecordSaleRequest) (*domain.SaleRecord, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	itemType := domain.ItemType(req.ItemType)
	paymentMethod := domain.PaymentMethod(req.PaymentMethod)

	if itemType == domain.ItemPhone && req.Quantity != 1 {
		return nil, fmt.Errorf("%w: phones sell with quantity 1", apperrors.ErrValidation)
	}
	if req.Discount.IsNegative() {
		return nil, fmt.Errorf("%w: discount must not be negative", apperrors.ErrInvalidAmount)
	}

	if paymentMethod == domain.PaymentCredit {
		if req.CustomerID == nil {
			return nil, fmt.Errorf("%w: credit sales require a customer", apperrors.ErrValidation)
		}
		if _, err := s.accountRepo.FindCustomerByID(ctx, *req.CustomerID); err != nil {
			return nil, err
		}
	}

	now := time.Now().UTC()
	saleDate := now
	if req.SaleDate != "" {
		parsed, err := jdate.NormalizeDateString(req.SaleDate)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		saleDate = parsed
	}

	// Unit price and total are left zero here: the repository fills
	// them from the stored item while mutating inventory.
	sale := domain.SaleRecord{
		SaleID:        uuid.NewString(),
		ItemType:      itemType,
		ItemID:        req.ItemID,
		Quantity:      req.Quantity,
		Discount:      req.Discount,
		CustomerID:    req.CustomerID,
		PaymentMethod: paymentMethod,
		SaleDate:      saleDate,
		CreatedAt:     now,
	}

	var posting *domain.LedgerPosting
	if paymentMethod == domain.PaymentCredit {
		// Debit is filled by the repository once the total is known.
		posting = &domain.LedgerPosting{
			AccountKind:     domain.KindCustomer,
			AccountID:       *req.CustomerID,
			Description:     fmt.Sprintf("Credit sale %s", sale.SaleID),
			Credit:          decimal.Zero,
			TransactionDate: saleDate,
		}
	}

	saved, err := s.saleRepo.SaveSale(ctx, sale, posting)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) &&
			!errors.Is(err, apperrors.ErrInvalidState) &&
			!errors.Is(err, apperrors.ErrInsufficientStock) &&
			!errors.Is(err, apperrors.ErrInvalidAmount) {
			logger.Error("Failed to save sale", slog.String("error", err.Error()), slog.String("item_id", req.ItemID))
		}
		return nil, err
	}

	logger.Info("Sale recorded",
		slog.String("sale_id", saved.SaleID),
		slog.String("item_type", string(saved.ItemType)),
		slog.String("payment_method", string(saved.PaymentMethod)),
		slog.String("total", saved.Total.String()),
	)
	return saved, nil
}

// GetSaleByID retrieves a specific sale.
func (s *saleService) GetSaleByID(ctx context.Context, saleID string) (*domain.SaleRecord, error) {
	return s.saleRepo.FindSaleByID(ctx, saleID)
}

// ListSales retrieves a page of sales, newest first.
func (s *saleService) ListSales(ctx context.Context, params dto.ListSalesParams) (*dto.ListSalesResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}

	var beforeSaleDate, beforeCreatedAt time.Time
	if params.NextToken != "" {
		saleDate, createdAt, err := pagination.DecodeToken(params.NextToken)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		beforeSaleDate, beforeCreatedAt = saleDate, createdAt
	}

	// Fetch one extra row to detect whether another page exists.
	sales, err := s.saleRepo.ListSales(ctx, limit+1, beforeSaleDate, beforeCreatedAt)
	if err != nil {
		logger.Error("Failed to list sales", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list sales: %w", err)
	}

	var nextToken *string
	if len(sales) > limit {
		sales = sales[:limit]
		last := sales[len(sales)-1]
		token := pagination.EncodeToken(last.SaleDate, last.CreatedAt)
		nextToken = &token
	}

	return dto.ToListSalesResponse(sales, nextToken), nil
}

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

type installmentService struct {
	installmentRepo portsrepo.InstallmentRepositoryFacade
	accountRepo     portsrepo.AccountRepositoryFacade
}

// NewInstallmentService creates the service managing installment sales.
func NewInstallmentService(installmentRepo portsrepo.InstallmentRepositoryFacade, accountRepo portsrepo.AccountRepositoryFacade) portssvc.InstallmentSvcFacade {
	return &installmentService{installmentRepo: installmentRepo, accountRepo: accountRepo}
}

var _ portssvc.InstallmentSvcFacade = (*installmentService)(nil)

// buildSchedule generates the payment schedule in the Jalali calendar:
// installment i falls i-1 calendar months after the start date, with the
// day clamped to the target month's length.
func buildSchedule(installmentSaleID string, start jdate.Date, count int, amount decimal.Decimal, now time.Time) []domain.InstallmentPayment {
	payments := make([]domain.InstallmentPayment, count)
	for i := 0; i < count; i++ {
		payments[i] = domain.InstallmentPayment{
			PaymentID:         uuid.NewString(),
			InstallmentSaleID: installmentSaleID,
			InstallmentNumber: i + 1,
			DueDate:           start.AddMonths(i).Time(),
			AmountDue:         amount,
			Status:            domain.PaymentUnpaid,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				LastUpdatedAt: now,
			},
		}
	}
	return payments
}

// CreateInstallmentSale opens an installment sale. The full sale price
// is debited to the customer up front; installment payments and the down
// payment reduce the exposure as they arrive.
func (s *installmentService) CreateInstallmentSale(ctx context.Context, req dto.CreateInstallmentSaleRequest) (*dto.InstallmentSaleResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.ActualSalePrice.IsPositive() {
		return nil, fmt.Errorf("%w: sale price must be positive", apperrors.ErrInvalidAmount)
	}
	if req.DownPayment.IsNegative() {
		return nil, fmt.Errorf("%w: down payment must not be negative", apperrors.ErrInvalidAmount)
	}
	if req.DownPayment.GreaterThan(req.ActualSalePrice) {
		return nil, fmt.Errorf("%w: down payment exceeds sale price", apperrors.ErrInvalidAmount)
	}
	if !req.InstallmentAmount.IsPositive() {
		return nil, fmt.Errorf("%w: installment amount must be positive", apperrors.ErrInvalidAmount)
	}

	if _, err := s.accountRepo.FindCustomerByID(ctx, req.CustomerID); err != nil {
		return nil, err
	}

	startTime, err := jdate.NormalizeDateString(req.StartDate)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}
	startJalali := jdate.FromTime(startTime)

	now := time.Now().UTC()
	sale := domain.InstallmentSale{
		InstallmentSaleID: uuid.NewString(),
		CustomerID:        req.CustomerID,
		PhoneID:           req.PhoneID,
		ActualSalePrice:   req.ActualSalePrice,
		DownPayment:       req.DownPayment,
		InstallmentCount:  req.InstallmentCount,
		InstallmentAmount: req.InstallmentAmount,
		StartDate:         startTime,
		Notes:             req.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}
	sale.Payments = buildSchedule(sale.InstallmentSaleID, startJalali, req.InstallmentCount, req.InstallmentAmount, now)

	checks, err := s.buildChecks(sale.InstallmentSaleID, req.Checks, now)
	if err != nil {
		return nil, err
	}
	sale.Checks = checks

	posting := domain.LedgerPosting{
		AccountKind:     domain.KindCustomer,
		AccountID:       req.CustomerID,
		Description:     fmt.Sprintf("Installment sale %s", sale.InstallmentSaleID),
		Debit:           req.ActualSalePrice,
		Credit:          decimal.Zero,
		TransactionDate: startTime,
	}

	if err := s.installmentRepo.SaveInstallmentSale(ctx, sale, posting); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, apperrors.ErrInvalidState) {
			logger.Error("Failed to save installment sale", slog.String("error", err.Error()), slog.String("phone_id", req.PhoneID))
		}
		return nil, err
	}

	logger.Info("Installment sale created",
		slog.String("installment_sale_id", sale.InstallmentSaleID),
		slog.String("customer_id", sale.CustomerID),
		slog.Int("installments", sale.InstallmentCount),
	)
	resp := dto.ToInstallmentSaleResponse(&sale, now)
	return &resp, nil
}

// buildChecks converts check requests into domain checks, defaulting the
// status to HELD_BY_CUSTOMER.
func (s *installmentService) buildChecks(installmentSaleID string, reqs []dto.CreateCheckRequest, now time.Time) ([]domain.InstallmentCheck, error) {
	checks := make([]domain.InstallmentCheck, 0, len(reqs))
	for _, cr := range reqs {
		if !cr.Amount.IsPositive() {
			return nil, fmt.Errorf("%w: check amount must be positive", apperrors.ErrInvalidAmount)
		}

		status := domain.CheckHeldByCustomer
		if cr.Status != nil {
			status = domain.CheckStatus(*cr.Status)
			if !domain.ValidCheckStatus(status) {
				return nil, fmt.Errorf("%w: unknown check status %q", apperrors.ErrValidation, *cr.Status)
			}
		}

		var dueDate *time.Time
		if cr.DueDate != nil && *cr.DueDate != "" {
			parsed, err := jdate.NormalizeDateString(*cr.DueDate)
			if err != nil {
				return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
			}
			dueDate = &parsed
		}

		checks = append(checks, domain.InstallmentCheck{
			CheckID:           uuid.NewString(),
			InstallmentSaleID: installmentSaleID,
			CheckNumber:       cr.CheckNumber,
			BankName:          cr.BankName,
			Amount:            cr.Amount,
			DueDate:           dueDate,
			Status:            status,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				LastUpdatedAt: now,
			},
		})
	}
	return checks, nil
}

// GetInstallmentSale retrieves an installment sale with derived status.
func (s *installmentService) GetInstallmentSale(ctx context.Context, installmentSaleID string) (*dto.InstallmentSaleResponse, error) {
	sale, err := s.installmentRepo.FindInstallmentSaleByID(ctx, installmentSaleID)
	if err != nil {
		return nil, err
	}
	resp := dto.ToInstallmentSaleResponse(sale, time.Now().UTC())
	return &resp, nil
}

// ListInstallmentSales retrieves a page of installment sales. The status
// filter applies to the derived status of each sale within the page.
func (s *installmentService) ListInstallmentSales(ctx context.Context, params dto.ListInstallmentSalesParams) (*dto.ListInstallmentSalesResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}

	var beforeCreatedAt time.Time
	if params.NextToken != "" {
		raw, err := pagination.DecodeIDToken(params.NextToken)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		parsed, err := time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid pagination token", apperrors.ErrValidation)
		}
		beforeCreatedAt = parsed
	}

	// Fetch one extra row to detect whether another page exists.
	sales, err := s.installmentRepo.ListInstallmentSales(ctx, limit+1, beforeCreatedAt)
	if err != nil {
		logger.Error("Failed to list installment sales", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list installment sales: %w", err)
	}

	var nextToken *string
	if len(sales) > limit {
		sales = sales[:limit]
		token := pagination.EncodeIDToken(sales[len(sales)-1].CreatedAt.Format(time.RFC3339Nano))
		nextToken = &token
	}

	now := time.Now().UTC()
	responses := make([]dto.InstallmentSaleResponse, 0, len(sales))
	for i := range sales {
		resp := dto.ToInstallmentSaleResponse(&sales[i], now)
		if params.Status != "" && resp.Status != params.Status {
			continue
		}
		responses = append(responses, resp)
	}

	return &dto.ListInstallmentSalesResponse{InstallmentSales: responses, NextToken: nextToken}, nil
}

// SetPaymentPaid flips a scheduled payment's paid flag, recording or
// clearing the payment date. The ledger is untouched: the full sale
// price was debited when the sale was opened.
func (s *installmentService) SetPaymentPaid(ctx context.Context, installmentSaleID string, paymentID string, req dto.SetPaymentPaidRequest) (*domain.InstallmentPayment, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	payment, err := s.installmentRepo.FindPaymentByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if payment.InstallmentSaleID != installmentSaleID {
		return nil, apperrors.ErrNotFound
	}

	now := time.Now().UTC()
	status := domain.PaymentUnpaid
	var paymentDate *time.Time
	if *req.Paid {
		status = domain.PaymentPaid
		pd := now
		if req.PaymentDate != "" {
			parsed, err := jdate.NormalizeDateString(req.PaymentDate)
			if err != nil {
				return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
			}
			pd = parsed
		}
		paymentDate = &pd
	}

	updated, err := s.installmentRepo.SetPaymentStatus(ctx, paymentID, status, paymentDate, now)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, apperrors.ErrInvalidState) {
			logger.Error("Failed to update payment status", slog.String("error", err.Error()), slog.String("payment_id", paymentID))
		}
		return nil, err
	}

	logger.Info("Installment payment status updated",
		slog.String("installment_sale_id", installmentSaleID),
		slog.String("payment_id", paymentID),
		slog.Int("installment_number", updated.InstallmentNumber),
		slog.String("status", string(updated.Status)),
	)
	return updated, nil
}

// UpdateCheckStatus moves a check to a new status.
func (s *installmentService) UpdateCheckStatus(ctx context.Context, installmentSaleID string, checkID string, req dto.UpdateCheckStatusRequest) (*domain.InstallmentCheck, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	status := domain.CheckStatus(req.Status)
	if !domain.ValidCheckStatus(status) {
		return nil, fmt.Errorf("%w: unknown check status %q", apperrors.ErrValidation, req.Status)
	}

	check, err := s.installmentRepo.FindCheckByID(ctx, checkID)
	if err != nil {
		return nil, err
	}
	if check.InstallmentSaleID != installmentSaleID {
		return nil, apperrors.ErrNotFound
	}

	updated, err := s.installmentRepo.UpdateCheckStatus(ctx, checkID, status, time.Now().UTC())
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to update check status", slog.String("error", err.Error()), slog.String("check_id", checkID))
		}
		return nil, err
	}

	logger.Info("Check status updated",
		slog.String("check_id", checkID),
		slog.String("status", string(updated.Status)),
	)
	return updated, nil
}

package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/pardisco/shop_ledger_app/internal/apperrors"
	portsrepo "github.com/pardisco/shop_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/pardisco/shop_ledger_app/internal/core/ports/services"
	"github.com/pardisco/shop_ledger_app/internal/dto"
	"github.com/pardisco/shop_ledger_app/internal/middleware"
	"github.com/pardisco/shop_ledger_app/internal/utils/jdate"
)

type reportingService struct {
	reportingRepo portsrepo.ReportingRepository
}

// NewReportingService creates the service producing aggregate reports.
func NewReportingService(repo portsrepo.ReportingRepository) portssvc.ReportingService {
	return &reportingService{reportingRepo: repo}
}

var _ portssvc.ReportingService = (*reportingService)(nil)

// GetDebtors lists customers who owe money, largest balance first.
func (s *reportingService) GetDebtors(ctx context.Context, params dto.ListDebtorsParams) (*dto.DebtorsReportResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	debtors, err := s.reportingRepo.ListDebtors(ctx, params.Limit, params.Offset)
	if err != nil {
		logger.Error("Failed to list debtors", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list debtors: %w", err)
	}

	return dto.ToDebtorsReportResponse(debtors, time.Now().UTC()), nil
}

// GetSalesSummary aggregates sales over an inclusive date range.
func (s *reportingService) GetSalesSummary(ctx context.Context, params dto.SalesSummaryParams) (*dto.SalesSummaryResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	from, err := jdate.NormalizeDateString(params.From)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}
	to, err := jdate.NormalizeDateString(params.To)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}
	if to.Before(from) {
		return nil, fmt.Errorf("%w: range end is before range start", apperrors.ErrValidation)
	}

	// The upper bound is inclusive of the whole day.
	toEnd := to.Add(24*time.Hour - time.Nanosecond)

	summary, err := s.reportingRepo.GetSalesSummary(ctx, from, toEnd)
	if err != nil {
		logger.Error("Failed to aggregate sales summary", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to aggregate sales summary: %w", err)
	}

	return dto.ToSalesSummaryResponse(summary, from, to), nil
}

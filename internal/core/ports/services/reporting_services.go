package services

import (
	"context"

	"github.com/pardisco/shop_ledger_app/internal/dto"
)

// ReportingService defines aggregate read operations for reports
type ReportingService interface {
	// GetDebtors lists customers who owe money, largest balance first.
	GetDebtors(ctx context.Context, params dto.ListDebtorsParams) (*dto.DebtorsReportResponse, error)

	// GetSalesSummary aggregates sales over an inclusive date range.
	GetSalesSummary(ctx context.Context, params dto.SalesSummaryParams) (*dto.SalesSummaryResponse, error)
}

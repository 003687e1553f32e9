package repositories

import (
	"context"
	"time"

	"github.com/pardisco/shop_ledger_app/internal/core/domain"
)

// ReportingRepository defines aggregate read queries for reports
type ReportingRepository interface {
	// ListDebtors retrieves customers with a positive balance, largest first.
	ListDebtors(ctx context.Context, limit int, offset int) ([]domain.Debtor, error)

	// GetSalesSummary aggregates sales whose sale date falls in [from, to].
	GetSalesSummary(ctx context.Context, from time.Time, to time.Time) (*domain.SalesSummary, error)
}

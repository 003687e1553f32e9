package repositories

import (
	"context"
	"time"

	"github.com/pardisco/shop_ledger_app/internal/core/domain"
)

// SaleReader defines read operations for sale records
type SaleReader interface {
	// FindSaleByID retrieves a specific sale by its unique identifier.
	FindSaleByID(ctx context.Context, saleID string) (*domain.SaleRecord, error)

	// ListSales retrieves sales newest first using a (saleDate, createdAt)
	// keyset cursor. Zero cursor values start from the newest record.
	ListSales(ctx context.Context, limit int, beforeSaleDate time.Time, beforeCreatedAt time.Time) ([]domain.SaleRecord, error)
}

// SaleWriter defines write operations for sale records
type SaleWriter interface {
	// SaveSale persists a sale atomically: within one transaction it
	// resolves the unit price from the stored item while applying the
	// guarded inventory mutation, validates the discount against the
	// subtotal, inserts the sale record, and, when posting is non-nil,
	// appends the customer ledger entry for the computed total. Any
	// failure rolls back every effect. The returned record carries the
	// resolved unit price and total.
	SaveSale(ctx context.Context, sale domain.SaleRecord, posting *domain.LedgerPosting) (*domain.SaleRecord, error)
}

// SaleRepositoryFacade combines all sale-related repository interfaces
type SaleRepositoryFacade interface {
	SaleReader
	SaleWriter
}

package services

import (
	"context"

	"github.com/pardisco/shop_ledger_app/internal/core/domain"
	"github.com/pardisco/shop_ledger_app/internal/dto"
)

// SaleReaderSvc defines read operations for sales
type SaleReaderSvc interface {
	// GetSaleByID retrieves a specific sale.
	GetSaleByID(ctx context.Context, saleID string) (*domain.SaleRecord, error)

	// ListSales retrieves a page of sales, newest first.
	ListSales(ctx context.Context, params dto.ListSalesParams) (*dto.ListSalesResponse, error)
}

// SaleWriterSvc defines write operations for sales
type SaleWriterSvc interface {
	// RecordSale validates and records a sale atomically: the unit price
	// is resolved from the item's stored price while the inventory
	// mutation, the sale record and the customer ledger posting (for
	// CREDIT sales) either all commit or none do.
	RecordSale(ctx context.Context, req dto.RecordSaleRequest) (*domain.SaleRecord, error)
}

// SaleSvcFacade combines all sale-related service interfaces
type SaleSvcFacade interface {
	SaleReaderSvc
	SaleWriterSvc
}

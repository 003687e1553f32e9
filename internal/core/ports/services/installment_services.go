package services

import (
	"context"

	"github.com/pardisco/shop_ledger_app/internal/core/domain"
	"github.com/pardisco/shop_ledger_app/internal/dto"
)

// InstallmentReaderSvc defines read operations for installment sales
type InstallmentReaderSvc interface {
	// GetInstallmentSale retrieves an installment sale with its schedule,
	// checks and derived status.
	GetInstallmentSale(ctx context.Context, installmentSaleID string) (*dto.InstallmentSaleResponse, error)

	// ListInstallmentSales retrieves a page of installment sales with
	// derived statuses, optionally filtered by status.
	ListInstallmentSales(ctx context.Context, params dto.ListInstallmentSalesParams) (*dto.ListInstallmentSalesResponse, error)
}

// InstallmentWriterSvc defines write operations for installment sales
type InstallmentWriterSvc interface {
	// CreateInstallmentSale opens an installment sale atomically: the
	// phone moves to SOLD_ON_INSTALLMENT, the Jalali-month payment
	// schedule and checks are created, and the full sale price is debited
	// to the customer's ledger.
	CreateInstallmentSale(ctx context.Context, req dto.CreateInstallmentSaleRequest) (*dto.InstallmentSaleResponse, error)

	// SetPaymentPaid flips a scheduled payment's paid flag in either
	// direction, recording or clearing the payment date. The ledger is
	// untouched: the full sale price was debited at sale creation.
	SetPaymentPaid(ctx context.Context, installmentSaleID string, paymentID string, req dto.SetPaymentPaidRequest) (*domain.InstallmentPayment, error)

	// UpdateCheckStatus moves a check to a new status.
	UpdateCheckStatus(ctx context.Context, installmentSaleID string, checkID string, req dto.UpdateCheckStatusRequest) (*domain.InstallmentCheck, error)
}

// InstallmentSvcFacade combines all installment-related service interfaces
type InstallmentSvcFacade interface {
	InstallmentReaderSvc
	InstallmentWriterSvc
}

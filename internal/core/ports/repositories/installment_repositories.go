package repositories

import (
	"context"
	"time"

	"github.com/pardisco/shop_ledger_app/internal/core/domain"
)

// InstallmentReader defines read operations for installment sales
type InstallmentReader interface {
	// FindInstallmentSaleByID retrieves an installment sale with its full
	// payment schedule and checks.
	FindInstallmentSaleByID(ctx context.Context, installmentSaleID string) (*domain.InstallmentSale, error)

	// ListInstallmentSales retrieves installment sales newest first, each
	// with its payments loaded, using a createdAt keyset cursor. A zero
	// cursor starts from the newest record.
	ListInstallmentSales(ctx context.Context, limit int, beforeCreatedAt time.Time) ([]domain.InstallmentSale, error)

	// FindPaymentByID retrieves a single scheduled payment.
	FindPaymentByID(ctx context.Context, paymentID string) (*domain.InstallmentPayment, error)

	// FindCheckByID retrieves a single check.
	FindCheckByID(ctx context.Context, checkID string) (*domain.InstallmentCheck, error)
}

// InstallmentWriter defines write operations for installment sales
type InstallmentWriter interface {
	// SaveInstallmentSale persists an installment sale atomically: within
	// one transaction it transitions the phone from IN_STOCK to
	// SOLD_ON_INSTALLMENT, inserts the parent record, batch-inserts the
	// payment schedule and checks, and appends the customer ledger entry
	// for the full sale price.
	SaveInstallmentSale(ctx context.Context, sale domain.InstallmentSale, posting domain.LedgerPosting) error

	// SetPaymentStatus flips a payment between UNPAID and PAID, recording
	// or clearing the payment date. The ledger is untouched: the full sale
	// exposure was posted when the sale was opened. Fails with
	// ErrInvalidState if the payment is already in the requested status.
	SetPaymentStatus(ctx context.Context, paymentID string, status domain.PaymentStatus, paymentDate *time.Time, now time.Time) (*domain.InstallmentPayment, error)

	// UpdateCheckStatus sets a check's status. Any status may follow any other.
	UpdateCheckStatus(ctx context.Context, checkID string, status domain.CheckStatus, now time.Time) (*domain.InstallmentCheck, error)
}

// InstallmentRepositoryFacade combines all installment-related repository interfaces
type InstallmentRepositoryFacade interface {
	InstallmentReader
	InstallmentWriter
}

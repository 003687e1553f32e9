package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pardisco/shop_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PhoneReader defines read operations for serialized phone inventory
type PhoneReader interface {
	// FindPhoneByID retrieves a specific phone by its unique identifier.
	FindPhoneByID(ctx context.Context, phoneID string) (*domain.Phone, error)

	// FindPhoneByIMEI retrieves a phone by its IMEI.
	FindPhoneByIMEI(ctx context.Context, imei string) (*domain.Phone, error)

	// ListPhones retrieves a paginated list of phones, optionally filtered by status.
	ListPhones(ctx context.Context, status *domain.PhoneStatus, limit int, offset int) ([]domain.Phone, error)
}

// PhoneWriter defines write operations for serialized phone inventory
type PhoneWriter interface {
	// SavePhone persists a new phone and, when costPosting is non-nil,
	// appends the supplier goods-receipt ledger entry in the same transaction.
	SavePhone(ctx context.Context, phone domain.Phone, costPosting *domain.LedgerPosting) error

	// MarkPhoneReturned transitions an IN_STOCK phone to RETURNED, taking
	// it out of sellable stock. Fails with ErrInvalidState if the phone is
	// not currently IN_STOCK.
	MarkPhoneReturned(ctx context.Context, phoneID string, now time.Time) error
}

// PhoneTransactionSupport defines guarded phone state transitions inside a caller-owned transaction
type PhoneTransactionSupport interface {
	// SellPhoneInTx transitions an IN_STOCK phone to SOLD at its stored
	// sale price, recording the sale date, and returns that price. The
	// update is guarded on the current status and on a positive stored
	// sale price; a phone without one cannot be sold.
	SellPhoneInTx(ctx context.Context, tx pgx.Tx, phoneID string, saleDate time.Time, now time.Time) (decimal.Decimal, error)

	// MarkPhoneSoldInTx transitions an IN_STOCK phone to the given sold
	// status at a caller-negotiated price, recording sale price and sale
	// date. Used by installment sales, where the price is part of the
	// contract rather than read from stock. The update is guarded on the
	// current status; zero rows affected means the phone was not
	// available and the caller must abort.
	MarkPhoneSoldInTx(ctx context.Context, tx pgx.Tx, phoneID string, status domain.PhoneStatus, salePrice decimal.Decimal, saleDate time.Time, now time.Time) error
}

// ProductReader defines read operations for bulk product inventory
type ProductReader interface {
	// FindProductByID retrieves a specific product by its unique identifier.
	FindProductByID(ctx context.Context, productID string) (*domain.Product, error)

	// ListProducts retrieves a paginated list of products.
	ListProducts(ctx context.Context, limit int, offset int) ([]domain.Product, error)
}

// ProductWriter defines write operations for bulk product inventory
type ProductWriter interface {
	// SaveProduct persists a new product and, when costPosting is non-nil,
	// appends the supplier goods-receipt ledger entry in the same transaction.
	SaveProduct(ctx context.Context, product domain.Product, costPosting *domain.LedgerPosting) error

	// UpdateProduct updates an existing product's details.
	UpdateProduct(ctx context.Context, product domain.Product) error
}

// ProductTransactionSupport defines guarded stock movements inside a caller-owned transaction
type ProductTransactionSupport interface {
	// SellProductInTx atomically subtracts quantity from a product's
	// stock, adds it to the lifetime sold counter and returns the stored
	// selling price. The update is guarded on sufficient stock and on a
	// positive selling price; an unpriced product cannot be sold.
	SellProductInTx(ctx context.Context, tx pgx.Tx, productID string, quantity int, now time.Time) (decimal.Decimal, error)
}

// InventoryRepositoryFacade combines all inventory-related repository interfaces
type InventoryRepositoryFacade interface {
	PhoneReader
	PhoneWriter
	PhoneTransactionSupport
	ProductReader
	ProductWriter
	ProductTransactionSupport
}

// InventoryRepositoryWithTx extends InventoryRepositoryFacade with transaction capabilities
type InventoryRepositoryWithTx interface {
	InventoryRepositoryFacade
	TransactionManager
}

package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pardisco/shop_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AccountReader defines read operations for customer and partner accounts
type AccountReader interface {
	// FindCustomerByID retrieves a specific customer by its unique identifier.
	FindCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error)

	// ListCustomers retrieves a paginated list of customers.
	ListCustomers(ctx context.Context, limit int, offset int) ([]domain.Customer, error)

	// FindPartnerByID retrieves a specific partner by its unique identifier.
	FindPartnerByID(ctx context.Context, partnerID string) (*domain.Partner, error)

	// ListPartners retrieves a paginated list of partners.
	ListPartners(ctx context.Context, limit int, offset int) ([]domain.Partner, error)
}

// AccountWriter defines write operations for customer and partner accounts
type AccountWriter interface {
	// SaveCustomer persists a new customer.
	SaveCustomer(ctx context.Context, customer domain.Customer) error

	// UpdateCustomer updates an existing customer's details.
	UpdateCustomer(ctx context.Context, customer domain.Customer) error

	// DeleteCustomer removes a customer with no ledger history.
	DeleteCustomer(ctx context.Context, customerID string) error

	// SavePartner persists a new partner.
	SavePartner(ctx context.Context, partner domain.Partner) error

	// UpdatePartner updates an existing partner's details.
	UpdatePartner(ctx context.Context, partner domain.Partner) error

	// DeletePartner removes a partner with no ledger history.
	DeletePartner(ctx context.Context, partnerID string) error
}

// AccountTransactionSupport defines operations that support ledger postings
type AccountTransactionSupport interface {
	// FindAccountBalanceForUpdate selects an account row and locks it for
	// update within a transaction, returning its persisted balance.
	FindAccountBalanceForUpdate(ctx context.Context, tx pgx.Tx, kind domain.AccountKind, accountID string) (decimal.Decimal, error)

	// UpdateAccountBalanceInTx updates the persisted balance for an account
	// within a given transaction.
	UpdateAccountBalanceInTx(ctx context.Context, tx pgx.Tx, kind domain.AccountKind, accountID string, balance decimal.Decimal, now time.Time) error
}

// AccountRepositoryFacade combines all account-related repository interfaces
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
	AccountTransactionSupport
}

// AccountRepositoryWithTx extends AccountRepositoryFacade with transaction capabilities
type AccountRepositoryWithTx interface {
	AccountRepositoryFacade
	TransactionManager
}

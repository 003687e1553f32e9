package services

import (
	"context"

	"github.com/pardisco/shop_ledger_app/internal/core/domain"
	"github.com/pardisco/shop_ledger_app/internal/dto"
)

// AccountReaderSvc defines read operations for customers and partners
type AccountReaderSvc interface {
	// GetCustomerByID retrieves a specific customer.
	GetCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error)

	// ListCustomers retrieves a paginated list of customers.
	ListCustomers(ctx context.Context, params dto.ListAccountsParams) ([]domain.Customer, error)

	// GetPartnerByID retrieves a specific partner.
	GetPartnerByID(ctx context.Context, partnerID string) (*domain.Partner, error)

	// ListPartners retrieves a paginated list of partners.
	ListPartners(ctx context.Context, params dto.ListAccountsParams) ([]domain.Partner, error)
}

// AccountWriterSvc defines write operations for customers and partners
type AccountWriterSvc interface {
	// CreateCustomer persists a new customer with a zero balance.
	CreateCustomer(ctx context.Context, req dto.CreateCustomerRequest) (*domain.Customer, error)

	// UpdateCustomer updates a customer's details.
	UpdateCustomer(ctx context.Context, customerID string, req dto.UpdateCustomerRequest) (*domain.Customer, error)

	// DeleteCustomer removes a customer that has no ledger history.
	DeleteCustomer(ctx context.Context, customerID string) error

	// CreatePartner persists a new partner with a zero balance.
	CreatePartner(ctx context.Context, req dto.CreatePartnerRequest) (*domain.Partner, error)

	// UpdatePartner updates a partner's details.
	UpdatePartner(ctx context.Context, partnerID string, req dto.UpdatePartnerRequest) (*domain.Partner, error)

	// DeletePartner removes a partner that has no ledger history.
	DeletePartner(ctx context.Context, partnerID string) error
}

// AccountSvcFacade combines all account-related service interfaces
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
}

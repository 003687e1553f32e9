package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/pardisco/shop_ledger_app/internal/apperrors"
	"github.com/pardisco/shop_ledger_app/internal/core/domain"
	portsrepo "github.com/pardisco/shop_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/pardisco/shop_ledger_app/internal/core/ports/services"
	"github.com/pardisco/shop_ledger_app/internal/dto"
	"github.com/pardisco/shop_ledger_app/internal/middleware"
	"github.com/shopspring/decimal"
)

type accountService struct {
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewAccountService creates the service managing customers and partners.
func NewAccountService(repo portsrepo.AccountRepositoryFacade) portssvc.AccountSvcFacade {
	return &accountService{accountRepo: repo}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// CreateCustomer persists a new customer with a zero balance.
func (s *accountService) CreateCustomer(ctx context.Context, req dto.CreateCustomerRequest) (*domain.Customer, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	now := time.Now().UTC()

	customer := domain.Customer{
		CustomerID:  uuid.NewString(),
		Name:        req.Name,
		PhoneNumber: req.PhoneNumber,
		Balance:     decimal.Zero,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	if err := s.accountRepo.SaveCustomer(ctx, customer); err != nil {
		logger.Error("Failed to save customer in repository", slog.String("error", err.Error()), slog.String("customer_id", customer.CustomerID))
		return nil, err
	}

	logger.Info("Customer created", slog.String("customer_id", customer.CustomerID))
	return &customer, nil
}

// GetCustomerByID retrieves a specific customer.
func (s *accountService) GetCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	customer, err := s.accountRepo.FindCustomerByID(ctx, customerID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find customer by ID in repository", slog.String("error", err.Error()), slog.String("customer_id", customerID))
		}
		return nil, err
	}
	return customer, nil
}

// ListCustomers retrieves a paginated list of customers.
func (s *accountService) ListCustomers(ctx context.Context, params dto.ListAccountsParams) ([]domain.Customer, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	customers, err := s.accountRepo.ListCustomers(ctx, params.Limit, params.Offset)
	if err != nil {
		logger.Error("Failed to list customers from repository", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	if customers == nil {
		return []domain.Customer{}, nil
	}
	return customers, nil
}

// UpdateCustomer updates a customer's details.
func (s *accountService) UpdateCustomer(ctx context.Context, customerID string, req dto.UpdateCustomerRequest) (*domain.Customer, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	customer, err := s.accountRepo.FindCustomerByID(ctx, customerID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		customer.Name = *req.Name
	}
	if req.PhoneNumber != nil {
		customer.PhoneNumber = *req.PhoneNumber
	}
	customer.LastUpdatedAt = time.Now().UTC()

	if err := s.accountRepo.UpdateCustomer(ctx, *customer); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to update customer in repository", slog.String("error", err.Error()), slog.String("customer_id", customerID))
		}
		return nil, err
	}

	logger.Info("Customer updated", slog.String("customer_id", customerID))
	return customer, nil
}

// DeleteCustomer removes a customer that has no ledger history.
func (s *accountService) DeleteCustomer(ctx context.Context, customerID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)
	if err := s.accountRepo.DeleteCustomer(ctx, customerID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, apperrors.ErrValidation) {
			logger.Error("Failed to delete customer in repository", slog.String("error", err.Error()), slog.String("customer_id", customerID))
		}
		return err
	}
	logger.Info("Customer deleted", slog.String("customer_id", customerID))
	return nil
}

// CreatePartner persists a new partner with a zero balance.
func (s *accountService) CreatePartner(ctx context.Context, req dto.CreatePartnerRequest) (*domain.Partner, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	now := time.Now().UTC()

	partner := domain.Partner{
		PartnerID:   uuid.NewString(),
		Name:        req.Name,
		PhoneNumber: req.PhoneNumber,
		Balance:     decimal.Zero,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	if err := s.accountRepo.SavePartner(ctx, partner); err != nil {
		logger.Error("Failed to save partner in repository", slog.String("error", err.Error()), slog.String("partner_id", partner.PartnerID))
		return nil, err
	}

	logger.Info("Partner created", slog.String("partner_id", partner.PartnerID))
	return &partner, nil
}

// GetPartnerByID retrieves a specific partner.
func (s *accountService) GetPartnerByID(ctx context.Context, partnerID string) (*domain.Partner, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	partner, err := s.accountRepo.FindPartnerByID(ctx, partnerID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find partner by ID in repository", slog.String("error", err.Error()), slog.String("partner_id", partnerID))
		}
		return nil, err
	}
	return partner, nil
}

// ListPartners retrieves a paginated list of partners.
func (s *accountService) ListPartners(ctx context.Context, params dto.ListAccountsParams) ([]domain.Partner, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	partners, err := s.accountRepo.ListPartners(ctx, params.Limit, params.Offset)
	if err != nil {
		logger.Error("Failed to list partners from repository", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list partners: %w", err)
	}
	if partners == nil {
		return []domain.Partner{}, nil
	}
	return partners, nil
}

// UpdatePartner updates a partner's details.
func (s *accountService) UpdatePartner(ctx context.Context, partnerID string, req dto.UpdatePartnerRequest) (*domain.Partner, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	partner, err := s.accountRepo.FindPartnerByID(ctx, partnerID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		partner.Name = *req.Name
	}
	if req.PhoneNumber != nil {
		partner.PhoneNumber = *req.PhoneNumber
	}
	partner.LastUpdatedAt = time.Now().UTC()

	if err := s.accountRepo.UpdatePartner(ctx, *partner); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to update partner in repository", slog.String("error", err.Error()), slog.String("partner_id", partnerID))
		}
		return nil, err
	}

	logger.Info("Partner updated", slog.String("partner_id", partnerID))
	return partner, nil
}

// DeletePartner removes a partner that has no ledger history.
func (s *accountService) DeletePartner(ctx context.Context, partnerID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)
	if err := s.accountRepo.DeletePartner(ctx, partnerID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, apperrors.ErrValidation) {
			logger.Error("Failed to delete partner in repository", slog.String("error", err.Error()), slog.String("partner_id", partnerID))
		}
		return err
	}
	logger.Info("Partner deleted", slog.String("partner_id", partnerID))
	return nil
}

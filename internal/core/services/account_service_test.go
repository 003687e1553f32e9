package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pardisco/shop_ledger_app/internal/apperrors"
	"github.com/pardisco/shop_ledger_app/internal/core/domain"
	portsrepo "github.com/pardisco/shop_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/pardisco/shop_ledger_app/internal/core/ports/services"
	"github.com/pardisco/shop_ledger_app/internal/core/services"
	"github.com/pardisco/shop_ledger_app/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock AccountRepository ---
type MockAccountRepository struct {
	mock.Mock
}

var _ portsrepo.AccountRepositoryFacade = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) FindCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

func (m *MockAccountRepository) ListCustomers(ctx context.Context, limit int, offset int) ([]domain.Customer, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Customer), args.Error(1)
}

func (m *MockAccountRepository) FindPartnerByID(ctx context.Context, partnerID string) (*domain.Partner, error) {
	args := m.Called(ctx, partnerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Partner), args.Error(1)
}

func (m *MockAccountRepository) ListPartners(ctx context.Context, limit int, offset int) ([]domain.Partner, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Partner), args.Error(1)
}

func (m *MockAccountRepository) SaveCustomer(ctx context.Context, customer domain.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockAccountRepository) UpdateCustomer(ctx context.Context, customer domain.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockAccountRepository) DeleteCustomer(ctx context.Context, customerID string) error {
	args := m.Called(ctx, customerID)
	return args.Error(0)
}

func (m *MockAccountRepository) SavePartner(ctx context.Context, partner domain.Partner) error {
	args := m.Called(ctx, partner)
	return args.Error(0)
}

func (m *MockAccountRepository) UpdatePartner(ctx context.Context, partner domain.Partner) error {
	args := m.Called(ctx, partner)
	return args.Error(0)
}

func (m *MockAccountRepository) DeletePartner(ctx context.Context, partnerID string) error {
	args := m.Called(ctx, partnerID)
	return args.Error(0)
}

func (m *MockAccountRepository) FindAccountBalanceForUpdate(ctx context.Context, tx pgx.Tx, kind domain.AccountKind, accountID string) (decimal.Decimal, error) {
	args := m.Called(ctx, tx, kind, accountID)
	if args.Get(0) == nil {
		return decimal.Zero, args.Error(1)
	}
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockAccountRepository) UpdateAccountBalanceInTx(ctx context.Context, tx pgx.Tx, kind domain.AccountKind, accountID string, balance decimal.Decimal, now time.Time) error {
	args := m.Called(ctx, tx, kind, accountID, balance, now)
	return args.Error(0)
}

// --- Test Suite Setup ---
type AccountServiceTestSuite struct {
	suite.Suite
	mockRepo *MockAccountRepository
	service  portssvc.AccountSvcFacade
}

func (suite *AccountServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockAccountRepository)
	suite.service = services.NewAccountService(suite.mockRepo)
}

// --- Test Cases ---

func (suite *AccountServiceTestSuite) TestCreateCustomer_Success() {
	ctx := context.Background()
	req := dto.CreateCustomerRequest{Name: "Ali Rezaei", PhoneNumber: "09121234567"}

	suite.mockRepo.On("SaveCustomer", ctx, mock.AnythingOfType("domain.Customer")).Return(nil).Once()

	customer, err := suite.service.CreateCustomer(ctx, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(customer)
	suite.NotEmpty(customer.CustomerID)
	suite.Equal(req.Name, customer.Name)
	suite.Equal(req.PhoneNumber, customer.PhoneNumber)
	suite.True(customer.Balance.IsZero(), "new customers start at zero balance")
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestCreateCustomer_SaveError() {
	ctx := context.Background()
	repoErr := assert.AnError
	suite.mockRepo.On("SaveCustomer", ctx, mock.Anything).Return(repoErr).Once()

	_, err := suite.service.CreateCustomer(ctx, dto.CreateCustomerRequest{Name: "X"})

	suite.Require().Error(err)
	suite.ErrorIs(err, repoErr)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestGetCustomerByID_NotFound() {
	ctx := context.Background()
	customerID := uuid.NewString()
	suite.mockRepo.On("FindCustomerByID", ctx, customerID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.GetCustomerByID(ctx, customerID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestListCustomers_NilBecomesEmpty() {
	ctx := context.Background()
	suite.mockRepo.On("ListCustomers", ctx, 20, 0).Return(nil, nil).Once()

	customers, err := suite.service.ListCustomers(ctx, dto.ListAccountsParams{Limit: 20, Offset: 0})

	suite.Require().NoError(err)
	suite.NotNil(customers)
	suite.Empty(customers)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestUpdateCustomer_PartialUpdate() {
	ctx := context.Background()
	customerID := uuid.NewString()
	existing := &domain.Customer{
		CustomerID:  customerID,
		Name:        "Old Name",
		PhoneNumber: "09120000000",
		Balance:     decimal.NewFromInt(150),
	}
	newName := "New Name"

	suite.mockRepo.On("FindCustomerByID", ctx, customerID).Return(existing, nil).Once()
	suite.mockRepo.On("UpdateCustomer", ctx, mock.MatchedBy(func(c domain.Customer) bool {
		return c.Name == newName && c.PhoneNumber == "09120000000"
	})).Return(nil).Once()

	updated, err := suite.service.UpdateCustomer(ctx, customerID, dto.UpdateCustomerRequest{Name: &newName})

	suite.Require().NoError(err)
	suite.Equal(newName, updated.Name)
	suite.Equal("09120000000", updated.PhoneNumber, "phone number untouched when not provided")
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestDeleteCustomer_WithLedgerHistory() {
	ctx := context.Background()
	customerID := uuid.NewString()
	suite.mockRepo.On("DeleteCustomer", ctx, customerID).Return(apperrors.ErrValidation).Once()

	err := suite.service.DeleteCustomer(ctx, customerID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestCreatePartner_Success() {
	ctx := context.Background()
	req := dto.CreatePartnerRequest{Name: "Mobile Wholesale Co"}

	suite.mockRepo.On("SavePartner", ctx, mock.AnythingOfType("domain.Partner")).Return(nil).Once()

	partner, err := suite.service.CreatePartner(ctx, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(partner)
	suite.NotEmpty(partner.PartnerID)
	suite.True(partner.Balance.IsZero())
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestListPartners_RepoError() {
	ctx := context.Background()
	suite.mockRepo.On("ListPartners", ctx, 20, 0).Return(nil, assert.AnError).Once()

	_, err := suite.service.ListPartners(ctx, dto.ListAccountsParams{Limit: 20})

	suite.Require().Error(err)
	suite.Contains(err.Error(), assert.AnError.Error())
	suite.mockRepo.AssertExpectations(suite.T())
}

// --- Run Test Suite ---
func TestAccountService(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}

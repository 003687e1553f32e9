package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pardisco/shop_ledger_app/internal/apperrors"
	"github.com/pardisco/shop_ledger_app/internal/core/domain"
	portsrepo "github.com/pardisco/shop_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/pardisco/shop_ledger_app/internal/core/ports/services"
	"github.com/pardisco/shop_ledger_app/internal/core/services"
	"github.com/pardisco/shop_ledger_app/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock InstallmentRepository ---
type MockInstallmentRepository struct {
	mock.Mock
}

var _ portsrepo.InstallmentRepositoryFacade = (*MockInstallmentRepository)(nil)

func (m *MockInstallmentRepository) FindInstallmentSaleByID(ctx context.Context, installmentSaleID string) (*domain.InstallmentSale, error) {
	args := m.Called(ctx, installmentSaleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InstallmentSale), args.Error(1)
}

func (m *MockInstallmentRepository) ListInstallmentSales(ctx context.Context, limit int, beforeCreatedAt time.Time) ([]domain.InstallmentSale, error) {
	args := m.Called(ctx, limit, beforeCreatedAt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.InstallmentSale), args.Error(1)
}

func (m *MockInstallmentRepository) FindPaymentByID(ctx context.Context, paymentID string) (*domain.InstallmentPayment, error) {
	args := m.Called(ctx, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InstallmentPayment), args.Error(1)
}

func (m *MockInstallmentRepository) FindCheckByID(ctx context.Context, checkID string) (*domain.InstallmentCheck, error) {
	args := m.Called(ctx, checkID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InstallmentCheck), args.Error(1)
}

func (m *MockInstallmentRepository) SaveInstallmentSale(ctx context.Context, sale domain.InstallmentSale, posting domain.LedgerPosting) error {
	args := m.Called(ctx, sale, posting)
	return args.Error(0)
}

func (m *MockInstallmentRepository) SetPaymentStatus(ctx context.Context, paymentID string, status domain.PaymentStatus, paymentDate *time.Time, now time.Time) (*domain.InstallmentPayment, error) {
	args := m.Called(ctx, paymentID, status, paymentDate, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InstallmentPayment), args.Error(1)
}

func (m *MockInstallmentRepository) UpdateCheckStatus(ctx context.Context, checkID string, status domain.CheckStatus, now time.Time) (*domain.InstallmentCheck, error) {
	args := m.Called(ctx, checkID, status, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InstallmentCheck), args.Error(1)
}

// --- Test Suite Setup ---
type InstallmentServiceTestSuite struct {
	suite.Suite
	mockInstallmentRepo *MockInstallmentRepository
	mockAccountRepo     *MockAccountRepository
	service             portssvc.InstallmentSvcFacade
	customerID          string
	phoneID             string
}

func (suite *InstallmentServiceTestSuite) SetupTest() {
	suite.mockInstallmentRepo = new(MockInstallmentRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.service = services.NewInstallmentService(suite.mockInstallmentRepo, suite.mockAccountRepo)
	suite.customerID = uuid.NewString()
	suite.phoneID = uuid.NewString()
}

func (suite *InstallmentServiceTestSuite) expectCustomer() {
	suite.mockAccountRepo.On("FindCustomerByID", mock.Anything, suite.customerID).
		Return(&domain.Customer{CustomerID: suite.customerID}, nil).Once()
}

func (suite *InstallmentServiceTestSuite) baseRequest() dto.CreateInstallmentSaleRequest {
	return dto.CreateInstallmentSaleRequest{
		CustomerID:        suite.customerID,
		PhoneID:           suite.phoneID,
		ActualSalePrice:   decimal.NewFromInt(1200),
		DownPayment:       decimal.NewFromInt(400),
		InstallmentCount:  4,
		InstallmentAmount: decimal.NewFromInt(200),
		StartDate:         "1403/01/01",
	}
}

// --- Test Cases ---

func (suite *InstallmentServiceTestSuite) TestCreateInstallmentSale_SchedulesJalaliMonths() {
	ctx := context.Background()
	req := suite.baseRequest()
	suite.expectCustomer()

	var saved domain.InstallmentSale
	var posting domain.LedgerPosting
	suite.mockInstallmentRepo.On("SaveInstallmentSale", ctx, mock.AnythingOfType("domain.InstallmentSale"), mock.AnythingOfType("domain.LedgerPosting")).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).(domain.InstallmentSale)
			posting = args.Get(2).(domain.LedgerPosting)
		}).Return(nil).Once()

	resp, err := suite.service.CreateInstallmentSale(ctx, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(resp)

	// Due dates advance by Jalali calendar months from 1403/01/01.
	suite.Require().Len(saved.Payments, 4)
	expectedDues := []time.Time{
		time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 4, 20, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 5, 21, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 6, 21, 0, 0, 0, 0, time.UTC),
	}
	for i, p := range saved.Payments {
		suite.Equal(i+1, p.InstallmentNumber)
		suite.Equal(expectedDues[i], p.DueDate, "installment %d due date", i+1)
		suite.True(p.AmountDue.Equal(decimal.NewFromInt(200)))
		suite.Equal(domain.PaymentUnpaid, p.Status)
	}

	// The full sale price is debited to the customer up front.
	suite.Equal(domain.KindCustomer, posting.AccountKind)
	suite.Equal(suite.customerID, posting.AccountID)
	suite.True(posting.Debit.Equal(decimal.NewFromInt(1200)))
	suite.True(posting.Credit.IsZero())

	suite.True(resp.RemainingAmount.Equal(decimal.NewFromInt(800)), "remaining = price - down payment")
	suite.mockInstallmentRepo.AssertExpectations(suite.T())
}

func (suite *InstallmentServiceTestSuite) TestCreateInstallmentSale_ClampsDayToMonthLength() {
	ctx := context.Background()
	req := suite.baseRequest()
	req.InstallmentCount = 2
	req.StartDate = "1403/06/31"
	suite.expectCustomer()

	var saved domain.InstallmentSale
	suite.mockInstallmentRepo.On("SaveInstallmentSale", ctx, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).(domain.InstallmentSale)
		}).Return(nil).Once()

	_, err := suite.service.CreateInstallmentSale(ctx, req)

	suite.Require().NoError(err)
	suite.Require().Len(saved.Payments, 2)
	// 1403/06/31 exists but Mehr has 30 days, so the second due date clamps to 1403/07/30.
	suite.Equal(time.Date(2024, 9, 21, 0, 0, 0, 0, time.UTC), saved.Payments[0].DueDate)
	suite.Equal(time.Date(2024, 10, 21, 0, 0, 0, 0, time.UTC), saved.Payments[1].DueDate)
}

func (suite *InstallmentServiceTestSuite) TestCreateInstallmentSale_InvalidAmounts() {
	ctx := context.Background()

	req := suite.baseRequest()
	req.ActualSalePrice = decimal.Zero
	_, err := suite.service.CreateInstallmentSale(ctx, req)
	suite.ErrorIs(err, apperrors.ErrInvalidAmount)

	req = suite.baseRequest()
	req.DownPayment = decimal.NewFromInt(1500)
	_, err = suite.service.CreateInstallmentSale(ctx, req)
	suite.ErrorIs(err, apperrors.ErrInvalidAmount)

	req = suite.baseRequest()
	req.InstallmentAmount = decimal.Zero
	_, err = suite.service.CreateInstallmentSale(ctx, req)
	suite.ErrorIs(err, apperrors.ErrInvalidAmount)

	suite.mockInstallmentRepo.AssertNotCalled(suite.T(), "SaveInstallmentSale", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *InstallmentServiceTestSuite) TestCreateInstallmentSale_CustomerNotFound() {
	ctx := context.Background()
	req := suite.baseRequest()
	suite.mockAccountRepo.On("FindCustomerByID", ctx, suite.customerID).
		Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.CreateInstallmentSale(ctx, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockInstallmentRepo.AssertNotCalled(suite.T(), "SaveInstallmentSale", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *InstallmentServiceTestSuite) TestCreateInstallmentSale_CheckStatusDefaults() {
	ctx := context.Background()
	req := suite.baseRequest()
	req.Checks = []dto.CreateCheckRequest{
		{CheckNumber: "100200", BankName: "Mellat", Amount: decimal.NewFromInt(200), DueDate: strPtr("1403/02/01")},
	}
	suite.expectCustomer()

	var saved domain.InstallmentSale
	suite.mockInstallmentRepo.On("SaveInstallmentSale", ctx, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).(domain.InstallmentSale)
		}).Return(nil).Once()

	_, err := suite.service.CreateInstallmentSale(ctx, req)

	suite.Require().NoError(err)
	suite.Require().Len(saved.Checks, 1)
	suite.Equal(domain.CheckHeldByCustomer, saved.Checks[0].Status)
	suite.Require().NotNil(saved.Checks[0].DueDate)
	suite.Equal(time.Date(2024, 4, 20, 0, 0, 0, 0, time.UTC), *saved.Checks[0].DueDate)
}

func (suite *InstallmentServiceTestSuite) TestCreateInstallmentSale_BadCheck() {
	ctx := context.Background()

	req := suite.baseRequest()
	req.Checks = []dto.CreateCheckRequest{{CheckNumber: "1", Amount: decimal.Zero}}
	suite.expectCustomer()
	_, err := suite.service.CreateInstallmentSale(ctx, req)
	suite.ErrorIs(err, apperrors.ErrInvalidAmount)

	req = suite.baseRequest()
	bad := "TORN_UP"
	req.Checks = []dto.CreateCheckRequest{{CheckNumber: "1", Amount: decimal.NewFromInt(10), Status: &bad}}
	suite.expectCustomer()
	_, err = suite.service.CreateInstallmentSale(ctx, req)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *InstallmentServiceTestSuite) TestSetPaymentPaid_FlipsStatusOnly() {
	ctx := context.Background()
	saleID := uuid.NewString()
	paymentID := uuid.NewString()

	payment := &domain.InstallmentPayment{
		PaymentID:         paymentID,
		InstallmentSaleID: saleID,
		InstallmentNumber: 2,
		AmountDue:         decimal.NewFromInt(200),
		Status:            domain.PaymentUnpaid,
	}

	suite.mockInstallmentRepo.On("FindPaymentByID", ctx, paymentID).Return(payment, nil).Once()

	paidAt := time.Now().UTC()
	paid := &domain.InstallmentPayment{
		PaymentID:         paymentID,
		InstallmentSaleID: saleID,
		InstallmentNumber: 2,
		AmountDue:         payment.AmountDue,
		Status:            domain.PaymentPaid,
		PaymentDate:       &paidAt,
	}
	suite.mockInstallmentRepo.On("SetPaymentStatus", ctx, paymentID, domain.PaymentPaid, mock.MatchedBy(func(d *time.Time) bool {
		return d != nil
	}), mock.AnythingOfType("time.Time")).Return(paid, nil).Once()

	result, err := suite.service.SetPaymentPaid(ctx, saleID, paymentID, dto.SetPaymentPaidRequest{Paid: boolPtr(true)})

	suite.Require().NoError(err)
	suite.Equal(domain.PaymentPaid, result.Status)
	// Receiving an installment never posts to the ledger: the full sale
	// price was debited when the sale was opened.
	suite.mockInstallmentRepo.AssertNotCalled(suite.T(), "FindInstallmentSaleByID", mock.Anything, mock.Anything)
	suite.mockInstallmentRepo.AssertExpectations(suite.T())
}

func (suite *InstallmentServiceTestSuite) TestSetPaymentPaid_UnpayClearsDate() {
	ctx := context.Background()
	saleID := uuid.NewString()
	paymentID := uuid.NewString()

	paidAt := time.Now().UTC()
	payment := &domain.InstallmentPayment{
		PaymentID:         paymentID,
		InstallmentSaleID: saleID,
		InstallmentNumber: 3,
		AmountDue:         decimal.NewFromInt(200),
		Status:            domain.PaymentPaid,
		PaymentDate:       &paidAt,
	}
	unpaid := &domain.InstallmentPayment{
		PaymentID:         paymentID,
		InstallmentSaleID: saleID,
		InstallmentNumber: 3,
		AmountDue:         payment.AmountDue,
		Status:            domain.PaymentUnpaid,
	}

	suite.mockInstallmentRepo.On("FindPaymentByID", ctx, paymentID).Return(payment, nil).Once()
	suite.mockInstallmentRepo.On("SetPaymentStatus", ctx, paymentID, domain.PaymentUnpaid, (*time.Time)(nil), mock.AnythingOfType("time.Time")).
		Return(unpaid, nil).Once()

	result, err := suite.service.SetPaymentPaid(ctx, saleID, paymentID, dto.SetPaymentPaidRequest{Paid: boolPtr(false)})

	suite.Require().NoError(err)
	suite.Equal(domain.PaymentUnpaid, result.Status)
	suite.Nil(result.PaymentDate)
	suite.mockInstallmentRepo.AssertExpectations(suite.T())
}

func (suite *InstallmentServiceTestSuite) TestSetPaymentPaid_WrongSale() {
	ctx := context.Background()
	paymentID := uuid.NewString()
	payment := &domain.InstallmentPayment{
		PaymentID:         paymentID,
		InstallmentSaleID: uuid.NewString(),
		Status:            domain.PaymentUnpaid,
	}
	suite.mockInstallmentRepo.On("FindPaymentByID", ctx, paymentID).Return(payment, nil).Once()

	_, err := suite.service.SetPaymentPaid(ctx, uuid.NewString(), paymentID, dto.SetPaymentPaidRequest{Paid: boolPtr(true)})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockInstallmentRepo.AssertNotCalled(suite.T(), "SetPaymentStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *InstallmentServiceTestSuite) TestSetPaymentPaid_AlreadyPaid() {
	ctx := context.Background()
	saleID := uuid.NewString()
	paymentID := uuid.NewString()

	payment := &domain.InstallmentPayment{
		PaymentID:         paymentID,
		InstallmentSaleID: saleID,
		AmountDue:         decimal.NewFromInt(200),
		Status:            domain.PaymentPaid,
	}

	suite.mockInstallmentRepo.On("FindPaymentByID", ctx, paymentID).Return(payment, nil).Once()
	suite.mockInstallmentRepo.On("SetPaymentStatus", ctx, paymentID, domain.PaymentPaid, mock.Anything, mock.Anything).
		Return(nil, apperrors.ErrInvalidState).Once()

	_, err := suite.service.SetPaymentPaid(ctx, saleID, paymentID, dto.SetPaymentPaidRequest{Paid: boolPtr(true)})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidState)
}

func (suite *InstallmentServiceTestSuite) TestUpdateCheckStatus_Success() {
	ctx := context.Background()
	saleID := uuid.NewString()
	checkID := uuid.NewString()

	check := &domain.InstallmentCheck{
		CheckID:           checkID,
		InstallmentSaleID: saleID,
		Status:            domain.CheckInCollection,
	}
	updated := &domain.InstallmentCheck{
		CheckID:           checkID,
		InstallmentSaleID: saleID,
		Status:            domain.CheckCollected,
	}

	suite.mockInstallmentRepo.On("FindCheckByID", ctx, checkID).Return(check, nil).Once()
	suite.mockInstallmentRepo.On("UpdateCheckStatus", ctx, checkID, domain.CheckCollected, mock.AnythingOfType("time.Time")).
		Return(updated, nil).Once()

	result, err := suite.service.UpdateCheckStatus(ctx, saleID, checkID, dto.UpdateCheckStatusRequest{Status: "COLLECTED"})

	suite.Require().NoError(err)
	suite.Equal(domain.CheckCollected, result.Status)
	suite.mockInstallmentRepo.AssertExpectations(suite.T())
}

func (suite *InstallmentServiceTestSuite) TestUpdateCheckStatus_UnknownStatus() {
	ctx := context.Background()

	_, err := suite.service.UpdateCheckStatus(ctx, uuid.NewString(), uuid.NewString(), dto.UpdateCheckStatusRequest{Status: "SHREDDED"})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockInstallmentRepo.AssertNotCalled(suite.T(), "UpdateCheckStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *InstallmentServiceTestSuite) TestUpdateCheckStatus_WrongSale() {
	ctx := context.Background()
	checkID := uuid.NewString()
	check := &domain.InstallmentCheck{
		CheckID:           checkID,
		InstallmentSaleID: uuid.NewString(),
		Status:            domain.CheckInCollection,
	}
	suite.mockInstallmentRepo.On("FindCheckByID", ctx, checkID).Return(check, nil).Once()

	_, err := suite.service.UpdateCheckStatus(ctx, uuid.NewString(), checkID, dto.UpdateCheckStatusRequest{Status: "BOUNCED"})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *InstallmentServiceTestSuite) TestListInstallmentSales_FiltersDerivedStatus() {
	ctx := context.Background()
	now := time.Now().UTC()

	// One settled sale, one still open.
	completed := domain.InstallmentSale{
		InstallmentSaleID: uuid.NewString(),
		ActualSalePrice:   decimal.NewFromInt(100),
		DownPayment:       decimal.NewFromInt(100),
		InstallmentCount:  1,
		InstallmentAmount: decimal.NewFromInt(100),
		Payments: []domain.InstallmentPayment{
			{InstallmentNumber: 1, DueDate: now.AddDate(0, 1, 0), AmountDue: decimal.NewFromInt(100), Status: domain.PaymentUnpaid},
		},
	}
	open := domain.InstallmentSale{
		InstallmentSaleID: uuid.NewString(),
		ActualSalePrice:   decimal.NewFromInt(500),
		InstallmentCount:  1,
		InstallmentAmount: decimal.NewFromInt(500),
		Payments: []domain.InstallmentPayment{
			{InstallmentNumber: 1, DueDate: now.AddDate(0, 1, 0), AmountDue: decimal.NewFromInt(500), Status: domain.PaymentUnpaid},
		},
	}
	suite.mockInstallmentRepo.On("ListInstallmentSales", ctx, 21, time.Time{}).
		Return([]domain.InstallmentSale{completed, open}, nil).Once()

	resp, err := suite.service.ListInstallmentSales(ctx, dto.ListInstallmentSalesParams{Status: "COMPLETED"})

	suite.Require().NoError(err)
	suite.Require().Len(resp.InstallmentSales, 1)
	suite.Equal(completed.InstallmentSaleID, resp.InstallmentSales[0].InstallmentSaleID)
	suite.Nil(resp.NextToken)
}

func strPtr(s string) *string { return &s }

func boolPtr(b bool) *bool { return &b }

// --- Run Test Suite ---
func TestInstallmentService(t *testing.T) {
	suite.Run(t, new(InstallmentServiceTestSuite))
}

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

// --- Mock ReportingRepository ---
type MockReportingRepository struct {
	mock.Mock
}

var _ portsrepo.ReportingRepository = (*MockReportingRepository)(nil)

func (m *MockReportingRepository) ListDebtors(ctx context.Context, limit int, offset int) ([]domain.Debtor, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Debtor), args.Error(1)
}

func (m *MockReportingRepository) GetSalesSummary(ctx context.Context, from time.Time, to time.Time) (*domain.SalesSummary, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SalesSummary), args.Error(1)
}

// --- Test Suite Setup ---
type ReportingServiceTestSuite struct {
	suite.Suite
	mockRepo *MockReportingRepository
	service  portssvc.ReportingService
}

func (suite *ReportingServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockReportingRepository)
	suite.service = services.NewReportingService(suite.mockRepo)
}

// --- Test Cases ---

func (suite *ReportingServiceTestSuite) TestGetDebtors_SumsTotalOwed() {
	ctx := context.Background()
	debtors := []domain.Debtor{
		{CustomerID: uuid.NewString(), Name: "Ali", Balance: decimal.NewFromInt(500)},
		{CustomerID: uuid.NewString(), Name: "Sara", Balance: decimal.NewFromInt(300)},
	}
	suite.mockRepo.On("ListDebtors", ctx, 50, 0).Return(debtors, nil).Once()

	report, err := suite.service.GetDebtors(ctx, dto.ListDebtorsParams{Limit: 50})

	suite.Require().NoError(err)
	suite.Len(report.Debtors, 2)
	suite.True(report.TotalOwed.Equal(decimal.NewFromInt(800)))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestGetSalesSummary_InclusiveUpperBound() {
	ctx := context.Background()
	from := time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC)
	// The repository receives the very end of the "to" day.
	toEnd := time.Date(2024, 4, 20, 0, 0, 0, 0, time.UTC).Add(24*time.Hour - time.Nanosecond)

	summary := &domain.SalesSummary{
		SaleCount:    3,
		TotalRevenue: decimal.NewFromInt(900),
		CashRevenue:  decimal.NewFromInt(400),
	}
	suite.mockRepo.On("GetSalesSummary", ctx, from, toEnd).Return(summary, nil).Once()

	resp, err := suite.service.GetSalesSummary(ctx, dto.SalesSummaryParams{From: "1403/01/01", To: "1403/02/01"})

	suite.Require().NoError(err)
	suite.Equal(3, resp.SaleCount)
	suite.Equal("1403/01/01", resp.FromFa)
	suite.Equal("1403/02/01", resp.ToFa)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestGetSalesSummary_RangeEndBeforeStart() {
	ctx := context.Background()

	_, err := suite.service.GetSalesSummary(ctx, dto.SalesSummaryParams{From: "1403/02/01", To: "1403/01/01"})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "GetSalesSummary", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ReportingServiceTestSuite) TestGetSalesSummary_BadDate() {
	ctx := context.Background()

	_, err := suite.service.GetSalesSummary(ctx, dto.SalesSummaryParams{From: "garbage", To: "1403/01/01"})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

// --- Run Test Suite ---
func TestReportingService(t *testing.T) {
	suite.Run(t, new(ReportingServiceTestSuite))
}

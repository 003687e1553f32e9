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
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock InventoryRepository ---
type MockInventoryRepository struct {
	mock.Mock
}

var _ portsrepo.InventoryRepositoryFacade = (*MockInventoryRepository)(nil)

func (m *MockInventoryRepository) FindPhoneByID(ctx context.Context, phoneID string) (*domain.Phone, error) {
	args := m.Called(ctx, phoneID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Phone), args.Error(1)
}

func (m *MockInventoryRepository) FindPhoneByIMEI(ctx context.Context, imei string) (*domain.Phone, error) {
	args := m.Called(ctx, imei)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Phone), args.Error(1)
}

func (m *MockInventoryRepository) ListPhones(ctx context.Context, status *domain.PhoneStatus, limit int, offset int) ([]domain.Phone, error) {
	args := m.Called(ctx, status, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Phone), args.Error(1)
}

func (m *MockInventoryRepository) SavePhone(ctx context.Context, phone domain.Phone, costPosting *domain.LedgerPosting) error {
	args := m.Called(ctx, phone, costPosting)
	return args.Error(0)
}

func (m *MockInventoryRepository) MarkPhoneReturned(ctx context.Context, phoneID string, now time.Time) error {
	args := m.Called(ctx, phoneID, now)
	return args.Error(0)
}

func (m *MockInventoryRepository) SellPhoneInTx(ctx context.Context, tx pgx.Tx, phoneID string, saleDate time.Time, now time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, tx, phoneID, saleDate, now)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockInventoryRepository) MarkPhoneSoldInTx(ctx context.Context, tx pgx.Tx, phoneID string, status domain.PhoneStatus, salePrice decimal.Decimal, saleDate time.Time, now time.Time) error {
	args := m.Called(ctx, tx, phoneID, status, salePrice, saleDate, now)
	return args.Error(0)
}

func (m *MockInventoryRepository) FindProductByID(ctx context.Context, productID string) (*domain.Product, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *MockInventoryRepository) ListProducts(ctx context.Context, limit int, offset int) ([]domain.Product, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Product), args.Error(1)
}

func (m *MockInventoryRepository) SaveProduct(ctx context.Context, product domain.Product, costPosting *domain.LedgerPosting) error {
	args := m.Called(ctx, product, costPosting)
	return args.Error(0)
}

func (m *MockInventoryRepository) UpdateProduct(ctx context.Context, product domain.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockInventoryRepository) SellProductInTx(ctx context.Context, tx pgx.Tx, productID string, quantity int, now time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, tx, productID, quantity, now)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// --- Test Suite Setup ---
type InventoryServiceTestSuite struct {
	suite.Suite
	mockInventoryRepo *MockInventoryRepository
	mockAccountRepo   *MockAccountRepository
	service           portssvc.InventorySvcFacade
	supplierID        string
}

func (suite *InventoryServiceTestSuite) SetupTest() {
	suite.mockInventoryRepo = new(MockInventoryRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.service = services.NewInventoryService(suite.mockInventoryRepo, suite.mockAccountRepo)
	suite.supplierID = uuid.NewString()
}

func (suite *InventoryServiceTestSuite) expectSupplier() {
	suite.mockAccountRepo.On("FindPartnerByID", mock.Anything, suite.supplierID).
		Return(&domain.Partner{PartnerID: suite.supplierID, Name: "Wholesale Co"}, nil).Once()
}

// --- Test Cases ---

func (suite *InventoryServiceTestSuite) TestAddPhone_WithSupplierPostsCost() {
	ctx := context.Background()
	req := dto.CreatePhoneRequest{
		IMEI:          "356938035643809",
		Model:         "Galaxy A54",
		PurchasePrice: decimal.NewFromInt(800),
		SupplierID:    &suite.supplierID,
	}
	suite.expectSupplier()

	suite.mockInventoryRepo.On("SavePhone", ctx, mock.AnythingOfType("domain.Phone"), mock.MatchedBy(func(p *domain.LedgerPosting) bool {
		return p != nil &&
			p.AccountKind == domain.KindPartner &&
			p.AccountID == suite.supplierID &&
			p.Credit.Equal(decimal.NewFromInt(800)) &&
			p.Debit.IsZero()
	})).Return(nil).Once()

	phone, err := suite.service.AddPhone(ctx, req)

	suite.Require().NoError(err)
	suite.Equal(domain.PhoneInStock, phone.Status)
	suite.Equal(req.IMEI, phone.IMEI)
	suite.mockAccountRepo.AssertExpectations(suite.T())
	suite.mockInventoryRepo.AssertExpectations(suite.T())
}

func (suite *InventoryServiceTestSuite) TestAddPhone_NoSupplierNoPosting() {
	ctx := context.Background()
	req := dto.CreatePhoneRequest{
		IMEI:          "356938035643810",
		Model:         "Redmi Note 12",
		PurchasePrice: decimal.NewFromInt(500),
	}

	suite.mockInventoryRepo.On("SavePhone", ctx, mock.AnythingOfType("domain.Phone"), (*domain.LedgerPosting)(nil)).
		Return(nil).Once()

	_, err := suite.service.AddPhone(ctx, req)

	suite.Require().NoError(err)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "FindPartnerByID", mock.Anything, mock.Anything)
	suite.mockInventoryRepo.AssertExpectations(suite.T())
}

func (suite *InventoryServiceTestSuite) TestAddPhone_NonPositivePurchasePrice() {
	ctx := context.Background()
	req := dto.CreatePhoneRequest{IMEI: "1", Model: "X", PurchasePrice: decimal.Zero}

	_, err := suite.service.AddPhone(ctx, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidAmount)
	suite.mockInventoryRepo.AssertNotCalled(suite.T(), "SavePhone", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *InventoryServiceTestSuite) TestAddPhone_SupplierNotFound() {
	ctx := context.Background()
	req := dto.CreatePhoneRequest{
		IMEI:          "356938035643811",
		Model:         "Galaxy A54",
		PurchasePrice: decimal.NewFromInt(800),
		SupplierID:    &suite.supplierID,
	}
	suite.mockAccountRepo.On("FindPartnerByID", ctx, suite.supplierID).
		Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.AddPhone(ctx, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockInventoryRepo.AssertNotCalled(suite.T(), "SavePhone", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *InventoryServiceTestSuite) TestAddPhone_DuplicateIMEI() {
	ctx := context.Background()
	req := dto.CreatePhoneRequest{
		IMEI:          "356938035643812",
		Model:         "Galaxy A54",
		PurchasePrice: decimal.NewFromInt(800),
	}
	suite.mockInventoryRepo.On("SavePhone", ctx, mock.Anything, (*domain.LedgerPosting)(nil)).
		Return(apperrors.ErrDuplicate).Once()

	_, err := suite.service.AddPhone(ctx, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
}

func (suite *InventoryServiceTestSuite) TestAddProduct_PostsTotalCost() {
	ctx := context.Background()
	req := dto.CreateProductRequest{
		Name:          "Glass Protector",
		StockQuantity: 40,
		SellingPrice:  decimal.NewFromInt(15),
		PurchasePrice: decimal.NewFromInt(5),
		SupplierID:    &suite.supplierID,
	}
	suite.expectSupplier()

	suite.mockInventoryRepo.On("SaveProduct", ctx, mock.AnythingOfType("domain.Product"), mock.MatchedBy(func(p *domain.LedgerPosting) bool {
		return p != nil &&
			p.AccountKind == domain.KindPartner &&
			p.Credit.Equal(decimal.NewFromInt(200)) // 40 * 5
	})).Return(nil).Once()

	product, err := suite.service.AddProduct(ctx, req)

	suite.Require().NoError(err)
	suite.Equal(40, product.StockQuantity)
	suite.Equal(0, product.UnitsSold)
	suite.mockInventoryRepo.AssertExpectations(suite.T())
}

func (suite *InventoryServiceTestSuite) TestAddProduct_PurchaseDatePostsAtReceipt() {
	ctx := context.Background()
	req := dto.CreateProductRequest{
		Name:          "Screen Protector",
		StockQuantity: 10,
		SellingPrice:  decimal.NewFromInt(20),
		PurchasePrice: decimal.NewFromInt(8),
		SupplierID:    &suite.supplierID,
		PurchaseDate:  "1403/01/01",
	}
	suite.expectSupplier()

	// The supplier credit is dated at the purchase date, not at insert time.
	receiptDate := time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC)
	suite.mockInventoryRepo.On("SaveProduct", ctx, mock.AnythingOfType("domain.Product"), mock.MatchedBy(func(p *domain.LedgerPosting) bool {
		return p != nil && p.TransactionDate.Equal(receiptDate)
	})).Return(nil).Once()

	_, err := suite.service.AddProduct(ctx, req)

	suite.Require().NoError(err)
	suite.mockInventoryRepo.AssertExpectations(suite.T())
}

func (suite *InventoryServiceTestSuite) TestReturnPhone_Success() {
	ctx := context.Background()
	phoneID := uuid.NewString()
	returned := &domain.Phone{PhoneID: phoneID, Status: domain.PhoneReturned}

	suite.mockInventoryRepo.On("MarkPhoneReturned", ctx, phoneID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockInventoryRepo.On("FindPhoneByID", ctx, phoneID).Return(returned, nil).Once()

	phone, err := suite.service.ReturnPhone(ctx, phoneID)

	suite.Require().NoError(err)
	suite.Equal(domain.PhoneReturned, phone.Status)
	suite.mockInventoryRepo.AssertExpectations(suite.T())
}

func (suite *InventoryServiceTestSuite) TestReturnPhone_NotInStock() {
	ctx := context.Background()
	phoneID := uuid.NewString()
	suite.mockInventoryRepo.On("MarkPhoneReturned", ctx, phoneID, mock.AnythingOfType("time.Time")).
		Return(apperrors.ErrInvalidState).Once()

	_, err := suite.service.ReturnPhone(ctx, phoneID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidState)
	suite.mockInventoryRepo.AssertNotCalled(suite.T(), "FindPhoneByID", mock.Anything, mock.Anything)
}

func (suite *InventoryServiceTestSuite) TestListPhones_StatusFilter() {
	ctx := context.Background()
	inStock := domain.PhoneInStock
	phones := []domain.Phone{{PhoneID: uuid.NewString(), Status: domain.PhoneInStock}}
	suite.mockInventoryRepo.On("ListPhones", ctx, &inStock, 20, 0).Return(phones, nil).Once()

	result, err := suite.service.ListPhones(ctx, dto.ListPhonesParams{Status: "IN_STOCK", Limit: 20})

	suite.Require().NoError(err)
	suite.Len(result, 1)
	suite.mockInventoryRepo.AssertExpectations(suite.T())
}

func (suite *InventoryServiceTestSuite) TestUpdateProduct_NegativeSellingPrice() {
	ctx := context.Background()
	productID := uuid.NewString()
	existing := &domain.Product{ProductID: productID, Name: "Charger", SellingPrice: decimal.NewFromInt(30)}
	negative := decimal.NewFromInt(-5)

	suite.mockInventoryRepo.On("FindProductByID", ctx, productID).Return(existing, nil).Once()

	_, err := suite.service.UpdateProduct(ctx, productID, dto.UpdateProductRequest{SellingPrice: &negative})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidAmount)
	suite.mockInventoryRepo.AssertNotCalled(suite.T(), "UpdateProduct", mock.Anything, mock.Anything)
}

// --- Run Test Suite ---
func TestInventoryService(t *testing.T) {
	suite.Run(t, new(InventoryServiceTestSuite))
}

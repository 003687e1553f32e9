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
	"github.com/pardisco/shop_ledger_app/internal/utils/jdate"
	"github.com/shopspring/decimal"
)

type inventoryService struct {
	inventoryRepo portsrepo.InventoryRepositoryFacade
	accountRepo   portsrepo.AccountRepositoryFacade
}

// NewInventoryService creates the service managing phone and product stock.
func NewInventoryService(inventoryRepo portsrepo.InventoryRepositoryFacade, accountRepo portsrepo.AccountRepositoryFacade) portssvc.InventorySvcFacade {
	return &inventoryService{inventoryRepo: inventoryRepo, accountRepo: accountRepo}
}

var _ portssvc.InventorySvcFacade = (*inventoryService)(nil)

// goodsReceiptPosting builds the partner ledger credit for received
// stock: the shop owes the supplier the purchase cost.
func (s *inventoryService) goodsReceiptPosting(ctx context.Context, supplierID string, cost decimal.Decimal, description string, date time.Time) (*domain.LedgerPosting, error) {
	if _, err := s.accountRepo.FindPartnerByID(ctx, supplierID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: supplier %s", apperrors.ErrNotFound, supplierID)
		}
		return nil, err
	}
	return &domain.LedgerPosting{
		AccountKind:     domain.KindPartner,
		AccountID:       supplierID,
		Description:     description,
		Debit:           decimal.Zero,
		Credit:          cost,
		TransactionDate: date,
	}, nil
}

// AddPhone registers a phone in stock, posting the supplier cost when a
// supplier is given.
func (s *inventoryService) AddPhone(ctx context.Context, req dto.CreatePhoneRequest) (*domain.Phone, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.PurchasePrice.IsPositive() {
		return nil, fmt.Errorf("%w: purchase price must be positive", apperrors.ErrInvalidAmount)
	}
	if req.SalePrice != nil && req.SalePrice.IsNegative() {
		return nil, fmt.Errorf("%w: sale price must not be negative", apperrors.ErrInvalidAmount)
	}

	now := time.Now().UTC()
	purchaseDate := now
	if req.PurchaseDate != "" {
		parsed, err := jdate.NormalizeDateString(req.PurchaseDate)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		purchaseDate = parsed
	}

	phone := domain.Phone{
		PhoneID:       uuid.NewString(),
		IMEI:          req.IMEI,
		Model:         req.Model,
		Status:        domain.PhoneInStock,
		PurchasePrice: req.PurchasePrice,
		SalePrice:     req.SalePrice,
		SupplierID:    req.SupplierID,
		PurchaseDate:  purchaseDate,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	var costPosting *domain.LedgerPosting
	if req.SupplierID != nil {
		description := fmt.Sprintf("Goods receipt: phone %s (IMEI %s)", req.Model, req.IMEI)
		posting, err := s.goodsReceiptPosting(ctx, *req.SupplierID, req.PurchasePrice, description, purchaseDate)
		if err != nil {
			return nil, err
		}
		costPosting = posting
	}

	if err := s.inventoryRepo.SavePhone(ctx, phone, costPosting); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			logger.Error("Failed to save phone in repository", slog.String("error", err.Error()), slog.String("imei", req.IMEI))
		}
		return nil, err
	}

	logger.Info("Phone added to stock", slog.String("phone_id", phone.PhoneID), slog.String("imei", phone.IMEI))
	return &phone, nil
}

// GetPhoneByID retrieves a specific phone.
func (s *inventoryService) GetPhoneByID(ctx context.Context, phoneID string) (*domain.Phone, error) {
	return s.inventoryRepo.FindPhoneByID(ctx, phoneID)
}

// GetPhoneByIMEI retrieves a phone by its IMEI.
func (s *inventoryService) GetPhoneByIMEI(ctx context.Context, imei string) (*domain.Phone, error) {
	return s.inventoryRepo.FindPhoneByIMEI(ctx, imei)
}

// ListPhones retrieves a paginated list of phones, optionally filtered by status.
func (s *inventoryService) ListPhones(ctx context.Context, params dto.ListPhonesParams) ([]domain.Phone, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	var status *domain.PhoneStatus
	if params.Status != "" {
		st := domain.PhoneStatus(params.Status)
		status = &st
	}

	phones, err := s.inventoryRepo.ListPhones(ctx, status, params.Limit, params.Offset)
	if err != nil {
		logger.Error("Failed to list phones from repository", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list phones: %w", err)
	}
	if phones == nil {
		return []domain.Phone{}, nil
	}
	return phones, nil
}

// ReturnPhone marks an IN_STOCK phone as RETURNED, sending it back to
// the supplier and out of sellable stock.
func (s *inventoryService) ReturnPhone(ctx context.Context, phoneID string) (*domain.Phone, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.inventoryRepo.MarkPhoneReturned(ctx, phoneID, time.Now().UTC()); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, apperrors.ErrInvalidState) {
			logger.Error("Failed to mark phone returned", slog.String("error", err.Error()), slog.String("phone_id", phoneID))
		}
		return nil, err
	}

	logger.Info("Phone returned", slog.String("phone_id", phoneID))
	return s.inventoryRepo.FindPhoneByID(ctx, phoneID)
}

// AddProduct registers a bulk product, posting the total supplier cost
// when a supplier is given.
func (s *inventoryService) AddProduct(ctx context.Context, req dto.CreateProductRequest) (*domain.Product, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.PurchasePrice.IsPositive() {
		return nil, fmt.Errorf("%w: purchase price must be positive", apperrors.ErrInvalidAmount)
	}
	if req.SellingPrice.IsNegative() {
		return nil, fmt.Errorf("%w: selling price must not be negative", apperrors.ErrInvalidAmount)
	}

	now := time.Now().UTC()
	purchaseDate := now
	if req.PurchaseDate != "" {
		parsed, err := jdate.NormalizeDateString(req.PurchaseDate)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		purchaseDate = parsed
	}

	product := domain.Product{
		ProductID:     uuid.NewString(),
		Name:          req.Name,
		StockQuantity: req.StockQuantity,
		SellingPrice:  req.SellingPrice,
		PurchasePrice: req.PurchasePrice,
		UnitsSold:     0,
		SupplierID:    req.SupplierID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	var costPosting *domain.LedgerPosting
	if req.SupplierID != nil {
		totalCost := req.PurchasePrice.Mul(decimal.NewFromInt(int64(req.StockQuantity)))
		description := fmt.Sprintf("Goods receipt: %d x %s", req.StockQuantity, req.Name)
		posting, err := s.goodsReceiptPosting(ctx, *req.SupplierID, totalCost, description, purchaseDate)
		if err != nil {
			return nil, err
		}
		costPosting = posting
	}

	if err := s.inventoryRepo.SaveProduct(ctx, product, costPosting); err != nil {
		logger.Error("Failed to save product in repository", slog.String("error", err.Error()), slog.String("name", req.Name))
		return nil, err
	}

	logger.Info("Product added to stock", slog.String("product_id", product.ProductID), slog.Int("quantity", product.StockQuantity))
	return &product, nil
}

// GetProductByID retrieves a specific product.
func (s *inventoryService) GetProductByID(ctx context.Context, productID string) (*domain.Product, error) {
	return s.inventoryRepo.FindProductByID(ctx, productID)
}

// ListProducts retrieves a paginated list of products.
func (s *inventoryService) ListProducts(ctx context.Context, params dto.ListProductsParams) ([]domain.Product, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	products, err := s.inventoryRepo.ListProducts(ctx, params.Limit, params.Offset)
	if err != nil {
		logger.Error("Failed to list products from repository", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	if products == nil {
		return []domain.Product{}, nil
	}
	return products, nil
}

// UpdateProduct updates a product's editable fields.
func (s *inventoryService) UpdateProduct(ctx context.Context, productID string, req dto.UpdateProductRequest) (*domain.Product, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	product, err := s.inventoryRepo.FindProductByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.SellingPrice != nil {
		if req.SellingPrice.IsNegative() {
			return nil, fmt.Errorf("%w: selling price must not be negative", apperrors.ErrInvalidAmount)
		}
		product.SellingPrice = *req.SellingPrice
	}
	product.LastUpdatedAt = time.Now().UTC()

	if err := s.inventoryRepo.UpdateProduct(ctx, *product); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to update product in repository", slog.String("error", err.Error()), slog.String("product_id", productID))
		}
		return nil, err
	}

	logger.Info("Product updated", slog.String("product_id", productID))
	return product, nil
}

package services

import (
	"context"

	"github.com/pardisco/shop_ledger_app/internal/core/domain"
	"github.com/pardisco/shop_ledger_app/internal/dto"
)

// PhoneReaderSvc defines read operations for phone inventory
type PhoneReaderSvc interface {
	// GetPhoneByID retrieves a specific phone.
	GetPhoneByID(ctx context.Context, phoneID string) (*domain.Phone, error)

	// GetPhoneByIMEI retrieves a phone by its IMEI.
	GetPhoneByIMEI(ctx context.Context, imei string) (*domain.Phone, error)

	// ListPhones retrieves a paginated list of phones, optionally filtered by status.
	ListPhones(ctx context.Context, params dto.ListPhonesParams) ([]domain.Phone, error)
}

// PhoneWriterSvc defines write operations for phone inventory
type PhoneWriterSvc interface {
	// AddPhone registers a phone in stock; when a supplier is given, the
	// purchase cost is posted to that partner's ledger atomically.
	AddPhone(ctx context.Context, req dto.CreatePhoneRequest) (*domain.Phone, error)

	// ReturnPhone marks a SOLD phone as RETURNED.
	ReturnPhone(ctx context.Context, phoneID string) (*domain.Phone, error)
}

// ProductReaderSvc defines read operations for product inventory
type ProductReaderSvc interface {
	// GetProductByID retrieves a specific product.
	GetProductByID(ctx context.Context, productID string) (*domain.Product, error)

	// ListProducts retrieves a paginated list of products.
	ListProducts(ctx context.Context, params dto.ListProductsParams) ([]domain.Product, error)
}

// ProductWriterSvc defines write operations for product inventory
type ProductWriterSvc interface {
	// AddProduct registers a bulk product; when a supplier is given, the
	// total purchase cost is posted to that partner's ledger atomically.
	AddProduct(ctx context.Context, req dto.CreateProductRequest) (*domain.Product, error)

	// UpdateProduct updates a product's details.
	UpdateProduct(ctx context.Context, productID string, req dto.UpdateProductRequest) (*domain.Product, error)
}

// InventorySvcFacade combines all inventory-related service interfaces
type InventorySvcFacade interface {
	PhoneReaderSvc
	PhoneWriterSvc
	ProductReaderSvc
	ProductWriterSvc
}

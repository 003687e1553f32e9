package dto

import (
	"time"

	"github.com/pardisco/shop_ledger_app/internal/core/domain"
	"github.com/pardisco/shop_ledger_app/internal/utils/jdate"
	"github.com/shopspring/decimal"
)

// CreatePhoneRequest defines the data needed to register a phone in stock.
// PurchaseDate accepts a Jalali or ISO date string and defaults to today.
// When SupplierID is set, the purchase cost is credited to that partner's
// ledger in the same transaction.
type CreatePhoneRequest struct {
	IMEI          string           `json:"imei" binding:"required"`
	Model         string           `json:"model" binding:"required"`
	PurchasePrice decimal.Decimal  `json:"purchasePrice" binding:"required"`
	SalePrice     *decimal.Decimal `json:"salePrice"`
	SupplierID    *string          `json:"supplierID"`
	PurchaseDate  string           `json:"purchaseDate"`
}

// PhoneResponse defines the data returned for a phone.
type PhoneResponse struct {
	PhoneID        string           `json:"phoneID"`
	IMEI           string           `json:"imei"`
	Model          string           `json:"model"`
	Status         string           `json:"status"`
	PurchasePrice  decimal.Decimal  `json:"purchasePrice"`
	SalePrice      *decimal.Decimal `json:"salePrice,omitempty"`
	SupplierID     *string          `json:"supplierID,omitempty"`
	PurchaseDate   time.Time        `json:"purchaseDate"`
	PurchaseDateFa string           `json:"purchaseDateFa"`
	SaleDate       *time.Time       `json:"saleDate,omitempty"`
	SaleDateFa     string           `json:"saleDateFa,omitempty"`
	CreatedAt      time.Time        `json:"createdAt"`
	LastUpdatedAt  time.Time        `json:"lastUpdatedAt"`
}

// ToPhoneResponse converts a domain.Phone to PhoneResponse DTO
func ToPhoneResponse(p *domain.Phone) PhoneResponse {
	resp := PhoneResponse{
		PhoneID:        p.PhoneID,
		IMEI:           p.IMEI,
		Model:          p.Model,
		Status:         string(p.Status),
		PurchasePrice:  p.PurchasePrice,
		SalePrice:      p.SalePrice,
		SupplierID:     p.SupplierID,
		PurchaseDate:   p.PurchaseDate,
		PurchaseDateFa: jdate.FormatTime(p.PurchaseDate),
		SaleDate:       p.SaleDate,
		CreatedAt:      p.CreatedAt,
		LastUpdatedAt:  p.LastUpdatedAt,
	}
	if p.SaleDate != nil {
		resp.SaleDateFa = jdate.FormatTime(*p.SaleDate)
	}
	return resp
}

// ToListPhonesResponse converts a slice of domain.Phone to response DTOs
func ToListPhonesResponse(phones []domain.Phone) []PhoneResponse {
	res := make([]PhoneResponse, len(phones))
	for i := range phones {
		res[i] = ToPhoneResponse(&phones[i])
	}
	return res
}

// ListPhonesParams defines query parameters for listing phones.
type ListPhonesParams struct {
	Status string `form:"status" binding:"omitempty,oneof=IN_STOCK SOLD RETURNED SOLD_ON_INSTALLMENT"`
	Limit  int    `form:"limit,default=20"`
	Offset int    `form:"offset,default=0"`
}

// CreateProductRequest defines the data needed to register a bulk product.
// PurchaseDate accepts a Jalali or ISO date string and defaults to today.
// When SupplierID is set, purchasePrice*stockQuantity is credited to that
// partner's ledger in the same transaction, dated at the purchase date.
type CreateProductRequest struct {
	Name          string          `json:"name" binding:"required"`
	StockQuantity int             `json:"stockQuantity" binding:"required,gt=0"`
	SellingPrice  decimal.Decimal `json:"sellingPrice" binding:"required"`
	PurchasePrice decimal.Decimal `json:"purchasePrice" binding:"required"`
	SupplierID    *string         `json:"supplierID"`
	PurchaseDate  string          `json:"purchaseDate"`
}

// UpdateProductRequest defines the data allowed for updating a product.
type UpdateProductRequest struct {
	Name         *string          `json:"name"`
	SellingPrice *decimal.Decimal `json:"sellingPrice"`
}

// ProductResponse defines the data returned for a product.
type ProductResponse struct {
	ProductID     string          `json:"productID"`
	Name          string          `json:"name"`
	StockQuantity int             `json:"stockQuantity"`
	SellingPrice  decimal.Decimal `json:"sellingPrice"`
	PurchasePrice decimal.Decimal `json:"purchasePrice"`
	UnitsSold     int             `json:"unitsSold"`
	SupplierID    *string         `json:"supplierID,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
	LastUpdatedAt time.Time       `json:"lastUpdatedAt"`
}

// ToProductResponse converts a domain.Product to ProductResponse DTO
func ToProductResponse(p *domain.Product) ProductResponse {
	return ProductResponse{
		ProductID:     p.ProductID,
		Name:          p.Name,
		StockQuantity: p.StockQuantity,
		SellingPrice:  p.SellingPrice,
		PurchasePrice: p.PurchasePrice,
		UnitsSold:     p.UnitsSold,
		SupplierID:    p.SupplierID,
		CreatedAt:     p.CreatedAt,
		LastUpdatedAt: p.LastUpdatedAt,
	}
}

// ToListProductsResponse converts a slice of domain.Product to response DTOs
func ToListProductsResponse(products []domain.Product) []ProductResponse {
	res := make([]ProductResponse, len(products))
	for i := range products {
		res[i] = ToProductResponse(&products[i])
	}
	return res
}

// ListProductsParams defines query parameters for listing products.
type ListProductsParams struct {
	Limit  int `form:"limit,default=20"`
	Offset int `form:"offset,default=0"`
}

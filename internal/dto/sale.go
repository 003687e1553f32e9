package dto

import (
	"time"

	"github.com/pardisco/shop_ledger_app/internal/core/domain"
	"github.com/pardisco/shop_ledger_app/internal/utils/jdate"
	"github.com/shopspring/decimal"
)

// RecordSaleRequest defines the data needed to record a sale. The unit
// price comes from the item's stored price, not the request.
// Phones always sell with quantity 1. CustomerID is required for CREDIT
// sales; SaleDate accepts a Jalali or ISO date string and defaults to today.
type RecordSaleRequest struct {
	ItemType      string          `json:"itemType" binding:"required,oneof=PHONE PRODUCT"`
	ItemID        string          `json:"itemID" binding:"required"`
	Quantity      int             `json:"quantity" binding:"required,gt=0"`
	Discount      decimal.Decimal `json:"discount"`
	CustomerID    *string         `json:"customerID"`
	PaymentMethod string          `json:"paymentMethod" binding:"required,oneof=CASH CREDIT"`
	SaleDate      string          `json:"saleDate"`
}

// SaleResponse defines the data returned for a sale record.
type SaleResponse struct {
	SaleID        string          `json:"saleID"`
	ItemType      string          `json:"itemType"`
	ItemID        string          `json:"itemID"`
	Quantity      int             `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unitPrice"`
	Discount      decimal.Decimal `json:"discount"`
	Total         decimal.Decimal `json:"total"`
	CustomerID    *string         `json:"customerID,omitempty"`
	PaymentMethod string          `json:"paymentMethod"`
	SaleDate      time.Time       `json:"saleDate"`
	SaleDateFa    string          `json:"saleDateFa"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// ToSaleResponse converts a domain.SaleRecord to SaleResponse DTO
func ToSaleResponse(s *domain.SaleRecord) SaleResponse {
	return SaleResponse{
		SaleID:        s.SaleID,
		ItemType:      string(s.ItemType),
		ItemID:        s.ItemID,
		Quantity:      s.Quantity,
		UnitPrice:     s.UnitPrice,
		Discount:      s.Discount,
		Total:         s.Total,
		CustomerID:    s.CustomerID,
		PaymentMethod: string(s.PaymentMethod),
		SaleDate:      s.SaleDate,
		SaleDateFa:    jdate.FormatTime(s.SaleDate),
		CreatedAt:     s.CreatedAt,
	}
}

// ListSalesParams defines query parameters for listing sales.
type ListSalesParams struct {
	Limit     int    `form:"limit,default=20"`
	NextToken string `form:"nextToken"`
}

// ListSalesResponse wraps a page of sales. NextToken is set when more
// records remain.
type ListSalesResponse struct {
	Sales     []SaleResponse `json:"sales"`
	NextToken *string        `json:"nextToken,omitempty"`
}

// ToListSalesResponse converts domain sales to a page response.
func ToListSalesResponse(sales []domain.SaleRecord, nextToken *string) *ListSalesResponse {
	res := make([]SaleResponse, len(sales))
	for i := range sales {
		res[i] = ToSaleResponse(&sales[i])
	}
	return &ListSalesResponse{Sales: res, NextToken: nextToken}
}

package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ItemType distinguishes which inventory variant a sale targets.
type ItemType string

const (
	ItemPhone   ItemType = "PHONE"
	ItemProduct ItemType = "PRODUCT"
)

// PaymentMethod of a sale. Cash sales settle immediately and never create
// a receivable; credit sales post the total to the customer ledger.
type PaymentMethod string

const (
	PaymentCash   PaymentMethod = "CASH"
	PaymentCredit PaymentMethod = "CREDIT"
)

// SaleRecord is the immutable snapshot of a completed sale.
// Total = Quantity*UnitPrice - Discount and is never negative.
type SaleRecord struct {
	SaleID        string          `json:"saleID"`
	ItemType      ItemType        `json:"itemType"`
	ItemID        string          `json:"itemID"`
	Quantity      int             `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unitPrice"`
	Discount      decimal.Decimal `json:"discount"`
	Total         decimal.Decimal `json:"total"`
	CustomerID    *string         `json:"customerID,omitempty"`
	PaymentMethod PaymentMethod   `json:"paymentMethod"`
	SaleDate      time.Time       `json:"saleDate"`
	CreatedAt     time.Time       `json:"createdAt"`
}

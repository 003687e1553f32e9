package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PhoneStatus is the lifecycle state of a serialized inventory unit.
// A phone is created IN_STOCK and makes exactly one terminal transition.
type PhoneStatus string

const (
	PhoneInStock           PhoneStatus = "IN_STOCK"
	PhoneSold              PhoneStatus = "SOLD"
	PhoneReturned          PhoneStatus = "RETURNED"
	PhoneSoldOnInstallment PhoneStatus = "SOLD_ON_INSTALLMENT"
)

// Phone is an individually tracked inventory unit, identified by IMEI.
type Phone struct {
	PhoneID       string           `json:"phoneID"`
	IMEI          string           `json:"imei"`
	Model         string           `json:"model"`
	Status        PhoneStatus      `json:"status"`
	PurchasePrice decimal.Decimal  `json:"purchasePrice"`
	SalePrice     *decimal.Decimal `json:"salePrice,omitempty"`
	SupplierID    *string          `json:"supplierID,omitempty"`
	PurchaseDate  time.Time        `json:"purchaseDate"`
	SaleDate      *time.Time       `json:"saleDate,omitempty"`
	AuditFields
}

// Product is bulk inventory tracked only by quantity. StockQuantity never
// goes negative; UnitsSold is a lifetime counter incremented on each sale.
type Product struct {
	ProductID     string          `json:"productID"`
	Name          string          `json:"name"`
	StockQuantity int             `json:"stockQuantity"`
	SellingPrice  decimal.Decimal `json:"sellingPrice"`
	PurchasePrice decimal.Decimal `json:"purchasePrice"`
	UnitsSold     int             `json:"unitsSold"`
	SupplierID    *string         `json:"supplierID,omitempty"`
	AuditFields
}

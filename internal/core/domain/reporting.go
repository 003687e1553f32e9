package domain

import (
	"github.com/shopspring/decimal"
)

// Debtor is a customer carrying a positive receivable balance.
type Debtor struct {
	CustomerID  string          `json:"customerID"`
	Name        string          `json:"name"`
	PhoneNumber string          `json:"phoneNumber"`
	Balance     decimal.Decimal `json:"balance"`
}

// SalesSummary aggregates completed sales over a date range.
type SalesSummary struct {
	SaleCount     int             `json:"saleCount"`
	TotalRevenue  decimal.Decimal `json:"totalRevenue"`
	CashRevenue   decimal.Decimal `json:"cashRevenue"`
	CreditRevenue decimal.Decimal `json:"creditRevenue"`
	PhonesSold    int             `json:"phonesSold"`
	ProductUnits  int             `json:"productUnits"`
}

package dto

import (
	"time"

	"github.com/pardisco/shop_ledger_app/internal/core/domain"
	"github.com/pardisco/shop_ledger_app/internal/utils/jdate"
	"github.com/shopspring/decimal"
)

// DebtorResponse defines one row of the debtors report.
type DebtorResponse struct {
	CustomerID  string          `json:"customerID"`
	Name        string          `json:"name"`
	PhoneNumber string          `json:"phoneNumber"`
	Balance     decimal.Decimal `json:"balance"`
}

// DebtorsReportResponse wraps the debtors report with its grand total.
type DebtorsReportResponse struct {
	Debtors     []DebtorResponse `json:"debtors"`
	TotalOwed   decimal.Decimal  `json:"totalOwed"`
	GeneratedAt time.Time        `json:"generatedAt"`
}

// ToDebtorsReportResponse converts domain debtors to the report DTO.
func ToDebtorsReportResponse(debtors []domain.Debtor, now time.Time) *DebtorsReportResponse {
	res := make([]DebtorResponse, len(debtors))
	total := decimal.Zero
	for i, d := range debtors {
		res[i] = DebtorResponse{
			CustomerID:  d.CustomerID,
			Name:        d.Name,
			PhoneNumber: d.PhoneNumber,
			Balance:     d.Balance,
		}
		total = total.Add(d.Balance)
	}
	return &DebtorsReportResponse{Debtors: res, TotalOwed: total, GeneratedAt: now}
}

// ListDebtorsParams defines query parameters for the debtors report.
type ListDebtorsParams struct {
	Limit  int `form:"limit,default=50"`
	Offset int `form:"offset,default=0"`
}

// SalesSummaryParams defines the date range of a sales summary. Both
// bounds accept Jalali or ISO date strings and are inclusive.
type SalesSummaryParams struct {
	From string `form:"from" binding:"required"`
	To   string `form:"to" binding:"required"`
}

// SalesSummaryResponse defines the aggregated sales figures for a range.
type SalesSummaryResponse struct {
	From          time.Time       `json:"from"`
	FromFa        string          `json:"fromFa"`
	To            time.Time       `json:"to"`
	ToFa          string          `json:"toFa"`
	SaleCount     int             `json:"saleCount"`
	TotalRevenue  decimal.Decimal `json:"totalRevenue"`
	CashRevenue   decimal.Decimal `json:"cashRevenue"`
	CreditRevenue decimal.Decimal `json:"creditRevenue"`
	PhonesSold    int             `json:"phonesSold"`
	ProductUnits  int             `json:"productUnits"`
}

// ToSalesSummaryResponse converts a domain.SalesSummary to the response DTO.
func ToSalesSummaryResponse(s *domain.SalesSummary, from, to time.Time) *SalesSummaryResponse {
	return &SalesSummaryResponse{
		From:          from,
		FromFa:        jdate.FormatTime(from),
		To:            to,
		ToFa:          jdate.FormatTime(to),
		SaleCount:     s.SaleCount,
		TotalRevenue:  s.TotalRevenue,
		CashRevenue:   s.CashRevenue,
		CreditRevenue: s.CreditRevenue,
		PhonesSold:    s.PhonesSold,
		ProductUnits:  s.ProductUnits,
	}
}

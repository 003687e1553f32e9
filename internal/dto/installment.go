package dto

import (
	"time"

	"github.com/pardisco/shop_ledger_app/internal/core/domain"
	"github.com/pardisco/shop_ledger_app/internal/utils/jdate"
	"github.com/shopspring/decimal"
)

// CreateCheckRequest defines one check received with an installment sale.
// Status defaults to HELD_BY_CUSTOMER; DueDate accepts a Jalali or ISO date.
type CreateCheckRequest struct {
	CheckNumber string          `json:"checkNumber" binding:"required"`
	BankName    string          `json:"bankName"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	DueDate     *string         `json:"dueDate"`
	Status      *string         `json:"status" binding:"omitempty,oneof=IN_COLLECTION COLLECTED BOUNCED HELD_BY_CUSTOMER VOIDED"`
}

// CreateInstallmentSaleRequest defines the data needed to open an
// installment sale. StartDate accepts a Jalali or ISO date string; the
// payment schedule is generated by adding Jalali calendar months to it.
type CreateInstallmentSaleRequest struct {
	CustomerID        string               `json:"customerID" binding:"required"`
	PhoneID           string               `json:"phoneID" binding:"required"`
	ActualSalePrice   decimal.Decimal      `json:"actualSalePrice" binding:"required"`
	DownPayment       decimal.Decimal      `json:"downPayment"`
	InstallmentCount  int                  `json:"installmentCount" binding:"required,gt=0"`
	InstallmentAmount decimal.Decimal      `json:"installmentAmount" binding:"required"`
	StartDate         string               `json:"startDate" binding:"required"`
	Notes             string               `json:"notes"`
	Checks            []CreateCheckRequest `json:"checks"`
}

// SetPaymentPaidRequest defines the data for flipping a payment's paid
// flag in either direction. PaymentDate applies only when Paid is true
// and defaults to today when empty.
type SetPaymentPaidRequest struct {
	Paid        *bool  `json:"paid" binding:"required"`
	PaymentDate string `json:"paymentDate"`
}

// UpdateCheckStatusRequest defines the data for moving a check to a new status.
type UpdateCheckStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=IN_COLLECTION COLLECTED BOUNCED HELD_BY_CUSTOMER VOIDED"`
}

// InstallmentPaymentResponse defines the data returned for one scheduled payment.
type InstallmentPaymentResponse struct {
	PaymentID         string          `json:"paymentID"`
	InstallmentNumber int             `json:"installmentNumber"`
	DueDate           time.Time       `json:"dueDate"`
	DueDateFa         string          `json:"dueDateFa"`
	AmountDue         decimal.Decimal `json:"amountDue"`
	Status            string          `json:"status"`
	PaymentDate       *time.Time      `json:"paymentDate,omitempty"`
	PaymentDateFa     string          `json:"paymentDateFa,omitempty"`
}

// ToInstallmentPaymentResponse converts a domain.InstallmentPayment to its DTO
func ToInstallmentPaymentResponse(p *domain.InstallmentPayment) InstallmentPaymentResponse {
	resp := InstallmentPaymentResponse{
		PaymentID:         p.PaymentID,
		InstallmentNumber: p.InstallmentNumber,
		DueDate:           p.DueDate,
		DueDateFa:         jdate.FormatTime(p.DueDate),
		AmountDue:         p.AmountDue,
		Status:            string(p.Status),
		PaymentDate:       p.PaymentDate,
	}
	if p.PaymentDate != nil {
		resp.PaymentDateFa = jdate.FormatTime(*p.PaymentDate)
	}
	return resp
}

// InstallmentCheckResponse defines the data returned for one check.
type InstallmentCheckResponse struct {
	CheckID     string          `json:"checkID"`
	CheckNumber string          `json:"checkNumber"`
	BankName    string          `json:"bankName"`
	Amount      decimal.Decimal `json:"amount"`
	DueDate     *time.Time      `json:"dueDate,omitempty"`
	DueDateFa   string          `json:"dueDateFa,omitempty"`
	Status      string          `json:"status"`
}

// ToInstallmentCheckResponse converts a domain.InstallmentCheck to its DTO
func ToInstallmentCheckResponse(c *domain.InstallmentCheck) InstallmentCheckResponse {
	resp := InstallmentCheckResponse{
		CheckID:     c.CheckID,
		CheckNumber: c.CheckNumber,
		BankName:    c.BankName,
		Amount:      c.Amount,
		DueDate:     c.DueDate,
		Status:      string(c.Status),
	}
	if c.DueDate != nil {
		resp.DueDateFa = jdate.FormatTime(*c.DueDate)
	}
	return resp
}

// InstallmentSaleResponse defines the data returned for an installment
// sale. Status and RemainingAmount are derived from the payment schedule
// on every read.
type InstallmentSaleResponse struct {
	InstallmentSaleID string                       `json:"installmentSaleID"`
	CustomerID        string                       `json:"customerID"`
	PhoneID           string                       `json:"phoneID"`
	ActualSalePrice   decimal.Decimal              `json:"actualSalePrice"`
	DownPayment       decimal.Decimal              `json:"downPayment"`
	InstallmentCount  int                          `json:"installmentCount"`
	InstallmentAmount decimal.Decimal              `json:"installmentAmount"`
	StartDate         time.Time                    `json:"startDate"`
	StartDateFa       string                       `json:"startDateFa"`
	Notes             string                       `json:"notes"`
	Status            string                       `json:"status"`
	RemainingAmount   decimal.Decimal              `json:"remainingAmount"`
	NextDueDate       *time.Time                   `json:"nextDueDate,omitempty"`
	NextDueDateFa     string                       `json:"nextDueDateFa,omitempty"`
	Payments          []InstallmentPaymentResponse `json:"payments"`
	Checks            []InstallmentCheckResponse   `json:"checks"`
	CreatedAt         time.Time                    `json:"createdAt"`
}

// ToInstallmentSaleResponse converts a domain.InstallmentSale with its
// schedule into the response DTO, deriving status against now.
func ToInstallmentSaleResponse(s *domain.InstallmentSale, now time.Time) InstallmentSaleResponse {
	payments := make([]InstallmentPaymentResponse, len(s.Payments))
	for i := range s.Payments {
		payments[i] = ToInstallmentPaymentResponse(&s.Payments[i])
	}
	checks := make([]InstallmentCheckResponse, len(s.Checks))
	for i := range s.Checks {
		checks[i] = ToInstallmentCheckResponse(&s.Checks[i])
	}

	resp := InstallmentSaleResponse{
		InstallmentSaleID: s.InstallmentSaleID,
		CustomerID:        s.CustomerID,
		PhoneID:           s.PhoneID,
		ActualSalePrice:   s.ActualSalePrice,
		DownPayment:       s.DownPayment,
		InstallmentCount:  s.InstallmentCount,
		InstallmentAmount: s.InstallmentAmount,
		StartDate:         s.StartDate,
		StartDateFa:       jdate.FormatTime(s.StartDate),
		Notes:             s.Notes,
		Status:            string(domain.DeriveInstallmentStatus(*s, s.Payments, now)),
		RemainingAmount:   domain.RemainingAmount(*s, s.Payments),
		Payments:          payments,
		Checks:            checks,
		CreatedAt:         s.CreatedAt,
	}
	if next := domain.NextDuePayment(s.Payments); next != nil {
		resp.NextDueDate = &next.DueDate
		resp.NextDueDateFa = jdate.FormatTime(next.DueDate)
	}
	return resp
}

// ListInstallmentSalesParams defines query parameters for listing
// installment sales. Status filters on the derived status.
type ListInstallmentSalesParams struct {
	Status    string `form:"status" binding:"omitempty,oneof=IN_PROGRESS OVERDUE COMPLETED"`
	Limit     int    `form:"limit,default=20"`
	NextToken string `form:"nextToken"`
}

// ListInstallmentSalesResponse wraps a page of installment sales.
type ListInstallmentSalesResponse struct {
	InstallmentSales []InstallmentSaleResponse `json:"installmentSales"`
	NextToken        *string                   `json:"nextToken,omitempty"`
}

package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatus of one scheduled installment payment.
type PaymentStatus string

const (
	PaymentUnpaid PaymentStatus = "UNPAID"
	PaymentPaid   PaymentStatus = "PAID"
)

// CheckStatus of a negotiable instrument backing an installment sale.
// No transition graph is enforced: any status may follow any other.
type CheckStatus string

const (
	CheckInCollection   CheckStatus = "IN_COLLECTION"
	CheckCollected      CheckStatus = "COLLECTED"
	CheckBounced        CheckStatus = "BOUNCED"
	CheckHeldByCustomer CheckStatus = "HELD_BY_CUSTOMER"
	CheckVoided         CheckStatus = "VOIDED"
)

// ValidCheckStatus reports whether s is one of the five known statuses.
func ValidCheckStatus(s CheckStatus) bool {
	switch s {
	case CheckInCollection, CheckCollected, CheckBounced, CheckHeldByCustomer, CheckVoided:
		return true
	}
	return false
}

// InstallmentStatus is the derived overall state of an installment sale.
// It is computed on every read, never stored.
type InstallmentStatus string

const (
	InstallmentInProgress InstallmentStatus = "IN_PROGRESS"
	InstallmentOverdue    InstallmentStatus = "OVERDUE"
	InstallmentCompleted  InstallmentStatus = "COMPLETED"
)

// InstallmentSale is the parent record of a sale paid via a down payment
// plus a fixed number of scheduled future payments.
type InstallmentSale struct {
	InstallmentSaleID string          `json:"installmentSaleID"`
	CustomerID        string          `json:"customerID"`
	PhoneID           string          `json:"phoneID"`
	ActualSalePrice   decimal.Decimal `json:"actualSalePrice"`
	DownPayment       decimal.Decimal `json:"downPayment"`
	InstallmentCount  int             `json:"installmentCount"`
	InstallmentAmount decimal.Decimal `json:"installmentAmount"`
	StartDate         time.Time       `json:"startDate"`
	Notes             string          `json:"notes"`
	AuditFields

	Payments []InstallmentPayment `json:"payments,omitempty"`
	Checks   []InstallmentCheck   `json:"checks,omitempty"`
}

// InstallmentPayment is one scheduled payment obligation.
type InstallmentPayment struct {
	PaymentID         string          `json:"paymentID"`
	InstallmentSaleID string          `json:"installmentSaleID"`
	InstallmentNumber int             `json:"installmentNumber"`
	DueDate           time.Time       `json:"dueDate"`
	AmountDue         decimal.Decimal `json:"amountDue"`
	Status            PaymentStatus   `json:"status"`
	PaymentDate       *time.Time      `json:"paymentDate,omitempty"`
	AuditFields
}

// InstallmentCheck is a check received against an installment sale. Its
// status is tracked independently of the payment schedule.
type InstallmentCheck struct {
	CheckID           string          `json:"checkID"`
	InstallmentSaleID string          `json:"installmentSaleID"`
	CheckNumber       string          `json:"checkNumber"`
	BankName          string          `json:"bankName"`
	Amount            decimal.Decimal `json:"amount"`
	DueDate           *time.Time      `json:"dueDate,omitempty"`
	Status            CheckStatus     `json:"status"`
	AuditFields
}

// RemainingAmount is the outstanding value of an installment sale:
// actual sale price minus the down payment minus the sum of paid
// installments. It can go negative if the schedule overshoots the price;
// callers treat <= 0 as settled.
func RemainingAmount(sale InstallmentSale, payments []InstallmentPayment) decimal.Decimal {
	remaining := sale.ActualSalePrice.Sub(sale.DownPayment)
	for _, p := range payments {
		if p.Status == PaymentPaid {
			remaining = remaining.Sub(p.AmountDue)
		}
	}
	return remaining
}

// DeriveInstallmentStatus computes the overall status of an installment
// sale from its payment schedule. This is the single derivation used by
// every read path:
//
//	completed   if remaining amount <= 0
//	overdue     if any unpaid payment's due date is before today
//	in-progress otherwise
func DeriveInstallmentStatus(sale InstallmentSale, payments []InstallmentPayment, today time.Time) InstallmentStatus {
	if RemainingAmount(sale, payments).LessThanOrEqual(decimal.Zero) {
		return InstallmentCompleted
	}
	day := today.Truncate(24 * time.Hour)
	for _, p := range payments {
		if p.Status == PaymentUnpaid && p.DueDate.Before(day) {
			return InstallmentOverdue
		}
	}
	return InstallmentInProgress
}

// NextDuePayment returns the earliest unpaid payment, or nil if all are paid.
func NextDuePayment(payments []InstallmentPayment) *InstallmentPayment {
	var next *InstallmentPayment
	for i := range payments {
		p := &payments[i]
		if p.Status != PaymentUnpaid {
			continue
		}
		if next == nil || p.DueDate.Before(next.DueDate) {
			next = p
		}
	}
	return next
}

package domain

import (
	"github.com/shopspring/decimal"
)

// AccountKind tags which ledger flavour an account belongs to. The
// debit/credit sign convention inverts between the two kinds, so every
// ledger operation carries the kind explicitly instead of inferring it
// from the table being targeted.
type AccountKind string

const (
	// KindCustomer accounts are receivables: balance = prev + debit - credit.
	// Positive means the customer owes the business.
	KindCustomer AccountKind = "CUSTOMER"
	// KindPartner accounts are payables: balance = prev + credit - debit.
	// Positive means the business owes the partner.
	KindPartner AccountKind = "PARTNER"
)

// ValidAccountKind reports whether k is one of the two known kinds.
func ValidAccountKind(k AccountKind) bool {
	return k == KindCustomer || k == KindPartner
}

// Customer is a buyer with a running receivable balance.
// Balance always equals the balance snapshot of the customer's most
// recent ledger entry (or zero if none exist).
type Customer struct {
	CustomerID  string          `json:"customerID"`
	Name        string          `json:"name"`
	PhoneNumber string          `json:"phoneNumber"`
	Balance     decimal.Decimal `json:"balance"`
	AuditFields
}

// Partner is a supplier with a running payable balance.
type Partner struct {
	PartnerID   string          `json:"partnerID"`
	Name        string          `json:"name"`
	PhoneNumber string          `json:"phoneNumber"`
	Balance     decimal.Decimal `json:"balance"`
	AuditFields
}

package dto

import (
	"time"

	"github.com/pardisco/shop_ledger_app/internal/core/domain"
	"github.com/pardisco/shop_ledger_app/internal/utils/jdate"
	"github.com/shopspring/decimal"
)

// ManualLedgerEntryRequest defines the data for posting a manual ledger
// entry against a customer or partner account. Exactly one of debit and
// credit must be positive; TransactionDate accepts a Jalali (1403/01/01)
// or ISO (2024-03-20) date string and defaults to today when empty.
type ManualLedgerEntryRequest struct {
	Description     string          `json:"description" binding:"required"`
	Debit           decimal.Decimal `json:"debit"`
	Credit          decimal.Decimal `json:"credit"`
	TransactionDate string          `json:"transactionDate"`
}

// LedgerEntryResponse defines the data returned for one ledger entry.
// Dates are returned both as ISO timestamps and as local Jalali strings.
type LedgerEntryResponse struct {
	EntryID           int64           `json:"entryID"`
	AccountKind       string          `json:"accountKind"`
	AccountID         string          `json:"accountID"`
	TransactionDate   time.Time       `json:"transactionDate"`
	TransactionDateFa string          `json:"transactionDateFa"`
	Description       string          `json:"description"`
	Debit             decimal.Decimal `json:"debit"`
	Credit            decimal.Decimal `json:"credit"`
	Balance           decimal.Decimal `json:"balance"`
	CreatedAt         time.Time       `json:"createdAt"`
}

// ToLedgerEntryResponse converts a domain.LedgerEntry to LedgerEntryResponse DTO
func ToLedgerEntryResponse(e *domain.LedgerEntry) LedgerEntryResponse {
	return LedgerEntryResponse{
		EntryID:           e.EntryID,
		AccountKind:       string(e.AccountKind),
		AccountID:         e.AccountID,
		TransactionDate:   e.TransactionDate,
		TransactionDateFa: jdate.FormatTime(e.TransactionDate),
		Description:       e.Description,
		Debit:             e.Debit,
		Credit:            e.Credit,
		Balance:           e.Balance,
		CreatedAt:         e.CreatedAt,
	}
}

// ListLedgerParams defines query parameters for listing ledger entries.
type ListLedgerParams struct {
	Limit     int    `form:"limit,default=20"`
	NextToken string `form:"nextToken"`
}

// ListLedgerResponse wraps a page of ledger entries. NextToken is set when
// more entries remain.
type ListLedgerResponse struct {
	Entries   []LedgerEntryResponse `json:"entries"`
	NextToken *string               `json:"nextToken,omitempty"`
}

// ToListLedgerResponse converts domain entries to a page response.
func ToListLedgerResponse(entries []domain.LedgerEntry, nextToken *string) *ListLedgerResponse {
	res := make([]LedgerEntryResponse, len(entries))
	for i := range entries {
		res[i] = ToLedgerEntryResponse(&entries[i])
	}
	return &ListLedgerResponse{Entries: res, NextToken: nextToken}
}

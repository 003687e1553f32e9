package dto

import (
	"time"

	"github.com/pardisco/shop_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateCustomerRequest defines the data needed to create a new customer.
type CreateCustomerRequest struct {
	Name        string `json:"name" binding:"required"`
	PhoneNumber string `json:"phoneNumber"`
}

// UpdateCustomerRequest defines the data allowed for updating a customer.
// Use pointers to distinguish between zero-value updates and fields not provided.
type UpdateCustomerRequest struct {
	Name        *string `json:"name"`
	PhoneNumber *string `json:"phoneNumber"`
}

// CustomerResponse defines the data returned for a customer.
type CustomerResponse struct {
	CustomerID    string          `json:"customerID"`
	Name          string          `json:"name"`
	PhoneNumber   string          `json:"phoneNumber"`
	Balance       decimal.Decimal `json:"balance"`
	CreatedAt     time.Time       `json:"createdAt"`
	LastUpdatedAt time.Time       `json:"lastUpdatedAt"`
}

// ToCustomerResponse converts a domain.Customer to CustomerResponse DTO
func ToCustomerResponse(c *domain.Customer) CustomerResponse {
	return CustomerResponse{
		CustomerID:    c.CustomerID,
		Name:          c.Name,
		PhoneNumber:   c.PhoneNumber,
		Balance:       c.Balance,
		CreatedAt:     c.CreatedAt,
		LastUpdatedAt: c.LastUpdatedAt,
	}
}

// CreatePartnerRequest defines the data needed to create a new partner.
type CreatePartnerRequest struct {
	Name        string `json:"name" binding:"required"`
	PhoneNumber string `json:"phoneNumber"`
}

// UpdatePartnerRequest defines the data allowed for updating a partner.
type UpdatePartnerRequest struct {
	Name        *string `json:"name"`
	PhoneNumber *string `json:"phoneNumber"`
}

// PartnerResponse defines the data returned for a partner.
type PartnerResponse struct {
	PartnerID     string          `json:"partnerID"`
	Name          string          `json:"name"`
	PhoneNumber   string          `json:"phoneNumber"`
	Balance       decimal.Decimal `json:"balance"`
	CreatedAt     time.Time       `json:"createdAt"`
	LastUpdatedAt time.Time       `json:"lastUpdatedAt"`
}

// ToPartnerResponse converts a domain.Partner to PartnerResponse DTO
func ToPartnerResponse(p *domain.Partner) PartnerResponse {
	return PartnerResponse{
		PartnerID:     p.PartnerID,
		Name:          p.Name,
		PhoneNumber:   p.PhoneNumber,
		Balance:       p.Balance,
		CreatedAt:     p.CreatedAt,
		LastUpdatedAt: p.LastUpdatedAt,
	}
}

// ToListCustomersResponse converts a slice of domain.Customer to response DTOs
func ToListCustomersResponse(customers []domain.Customer) []CustomerResponse {
	res := make([]CustomerResponse, len(customers))
	for i := range customers {
		res[i] = ToCustomerResponse(&customers[i])
	}
	return res
}

// ToListPartnersResponse converts a slice of domain.Partner to response DTOs
func ToListPartnersResponse(partners []domain.Partner) []PartnerResponse {
	res := make([]PartnerResponse, len(partners))
	for i := range partners {
		res[i] = ToPartnerResponse(&partners[i])
	}
	return res
}

// ListAccountsParams defines query parameters for listing customers or partners.
type ListAccountsParams struct {
	Limit  int `form:"limit,default=20"`
	Offset int `form:"offset,default=0"`
}

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/pardisco/shop_ledger_app/internal/core/ports/services"
	"github.com/pardisco/shop_ledger_app/internal/dto"
	"github.com/pardisco/shop_ledger_app/internal/middleware"
)

// accountHandler handles HTTP requests for customers and partners.
type accountHandler struct {
	accountService portssvc.AccountSvcFacade
}

func newAccountHandler(as portssvc.AccountSvcFacade) *accountHandler {
	return &accountHandler{accountService: as}
}

// registerAccountRoutes registers customer and partner routes.
func registerAccountRoutes(rg *gin.RouterGroup, accountService portssvc.AccountSvcFacade) {
	h := newAccountHandler(accountService)

	customers := rg.Group("/customers")
	{
		customers.POST("", h.createCustomer)
		customers.GET("", h.listCustomers)
		customers.GET("/:id", h.getCustomer)
		customers.PUT("/:id", h.updateCustomer)
		customers.DELETE("/:id", h.deleteCustomer)
	}

	partners := rg.Group("/partners")
	{
		partners.POST("", h.createPartner)
		partners.GET("", h.listPartners)
		partners.GET("/:id", h.getPartner)
		partners.PUT("/:id", h.updatePartner)
		partners.DELETE("/:id", h.deletePartner)
	}
}

func (h *accountHandler) createCustomer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateCustomerRequest
	if !bindJSONOrAbort(c, &req) {
		return
	}

	customer, err := h.accountService.CreateCustomer(c.Request.Context(), req)
	if err != nil {
		respondWithError(c, err, "Failed to create customer")
		return
	}

	logger.Info("Customer created", slog.String("customer_id", customer.CustomerID))
	c.JSON(http.StatusCreated, dto.ToCustomerResponse(customer))
}

func (h *accountHandler) getCustomer(c *gin.Context) {
	customer, err := h.accountService.GetCustomerByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondWithError(c, err, "Failed to retrieve customer")
		return
	}
	c.JSON(http.StatusOK, dto.ToCustomerResponse(customer))
}

func (h *accountHandler) listCustomers(c *gin.Context) {
	var params dto.ListAccountsParams
	if !bindQueryOrAbort(c, &params) {
		return
	}

	customers, err := h.accountService.ListCustomers(c.Request.Context(), params)
	if err != nil {
		respondWithError(c, err, "Failed to list customers")
		return
	}
	c.JSON(http.StatusOK, gin.H{"customers": dto.ToListCustomersResponse(customers)})
}

func (h *accountHandler) updateCustomer(c *gin.Context) {
	var req dto.UpdateCustomerRequest
	if !bindJSONOrAbort(c, &req) {
		return
	}

	customer, err := h.accountService.UpdateCustomer(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondWithError(c, err, "Failed to update customer")
		return
	}
	c.JSON(http.StatusOK, dto.ToCustomerResponse(customer))
}

func (h *accountHandler) deleteCustomer(c *gin.Context) {
	if err := h.accountService.DeleteCustomer(c.Request.Context(), c.Param("id")); err != nil {
		respondWithError(c, err, "Failed to delete customer")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *accountHandler) createPartner(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreatePartnerRequest
	if !bindJSONOrAbort(c, &req) {
		return
	}

	partner, err := h.accountService.CreatePartner(c.Request.Context(), req)
	if err != nil {
		respondWithError(c, err, "Failed to create partner")
		return
	}

	logger.Info("Partner created", slog.String("partner_id", partner.PartnerID))
	c.JSON(http.StatusCreated, dto.ToPartnerResponse(partner))
}

func (h *accountHandler) getPartner(c *gin.Context) {
	partner, err := h.accountService.GetPartnerByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondWithError(c, err, "Failed to retrieve partner")
		return
	}
	c.JSON(http.StatusOK, dto.ToPartnerResponse(partner))
}

func (h *accountHandler) listPartners(c *gin.Context) {
	var params dto.ListAccountsParams
	if !bindQueryOrAbort(c, &params) {
		return
	}

	partners, err := h.accountService.ListPartners(c.Request.Context(), params)
	if err != nil {
		respondWithError(c, err, "Failed to list partners")
		return
	}
	c.JSON(http.StatusOK, gin.H{"partners": dto.ToListPartnersResponse(partners)})
}

func (h *accountHandler) updatePartner(c *gin.Context) {
	var req dto.UpdatePartnerRequest
	if !bindJSONOrAbort(c, &req) {
		return
	}

	partner, err := h.accountService.UpdatePartner(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondWithError(c, err, "Failed to update partner")
		return
	}
	c.JSON(http.StatusOK, dto.ToPartnerResponse(partner))
}

func (h *accountHandler) deletePartner(c *gin.Context) {
	if err := h.accountService.DeletePartner(c.Request.Context(), c.Param("id")); err != nil {
		respondWithError(c, err, "Failed to delete partner")
		return
	}
	c.Status(http.StatusNoContent)
}

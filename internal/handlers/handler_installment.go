package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/pardisco/shop_ledger_app/internal/core/ports/services"
	"github.com/pardisco/shop_ledger_app/internal/dto"
	"github.com/pardisco/shop_ledger_app/internal/middleware"
)

// installmentHandler handles HTTP requests for installment sales.
type installmentHandler struct {
	installmentService portssvc.InstallmentSvcFacade
}

func newInstallmentHandler(is portssvc.InstallmentSvcFacade) *installmentHandler {
	return &installmentHandler{installmentService: is}
}

// registerInstallmentRoutes registers installment sale routes.
func registerInstallmentRoutes(rg *gin.RouterGroup, installmentService portssvc.InstallmentSvcFacade) {
	h := newInstallmentHandler(installmentService)

	installments := rg.Group("/installment-sales")
	{
		installments.POST("", h.createInstallmentSale)
		installments.GET("", h.listInstallmentSales)
		installments.GET("/:id", h.getInstallmentSale)
		installments.PUT("/:id/payments/:paymentID", h.setPaymentPaid)
		installments.PUT("/:id/checks/:checkID/status", h.updateCheckStatus)
	}
}

func (h *installmentHandler) createInstallmentSale(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateInstallmentSaleRequest
	if !bindJSONOrAbort(c, &req) {
		return
	}

	sale, err := h.installmentService.CreateInstallmentSale(c.Request.Context(), req)
	if err != nil {
		respondWithError(c, err, "Failed to create installment sale")
		return
	}

	logger.Info("Installment sale created", slog.String("installment_sale_id", sale.InstallmentSaleID))
	c.JSON(http.StatusCreated, sale)
}

func (h *installmentHandler) getInstallmentSale(c *gin.Context) {
	sale, err := h.installmentService.GetInstallmentSale(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondWithError(c, err, "Failed to retrieve installment sale")
		return
	}
	c.JSON(http.StatusOK, sale)
}

func (h *installmentHandler) listInstallmentSales(c *gin.Context) {
	var params dto.ListInstallmentSalesParams
	if !bindQueryOrAbort(c, &params) {
		return
	}

	resp, err := h.installmentService.ListInstallmentSales(c.Request.Context(), params)
	if err != nil {
		respondWithError(c, err, "Failed to list installment sales")
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *installmentHandler) setPaymentPaid(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.SetPaymentPaidRequest
	if !bindJSONOrAbort(c, &req) {
		return
	}

	payment, err := h.installmentService.SetPaymentPaid(c.Request.Context(), c.Param("id"), c.Param("paymentID"), req)
	if err != nil {
		respondWithError(c, err, "Failed to update payment status")
		return
	}

	logger.Info("Installment payment status updated",
		slog.String("installment_sale_id", c.Param("id")),
		slog.String("payment_id", payment.PaymentID),
	)
	c.JSON(http.StatusOK, dto.ToInstallmentPaymentResponse(payment))
}

func (h *installmentHandler) updateCheckStatus(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.UpdateCheckStatusRequest
	if !bindJSONOrAbort(c, &req) {
		return
	}

	check, err := h.installmentService.UpdateCheckStatus(c.Request.Context(), c.Param("id"), c.Param("checkID"), req)
	if err != nil {
		respondWithError(c, err, "Failed to update check status")
		return
	}

	logger.Info("Check status updated", slog.String("check_id", check.CheckID), slog.String("status", string(check.Status)))
	c.JSON(http.StatusOK, dto.ToInstallmentCheckResponse(check))
}

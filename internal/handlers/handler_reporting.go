package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/pardisco/shop_ledger_app/internal/core/ports/services"
	"github.com/pardisco/shop_ledger_app/internal/dto"
)

// reportingHandler handles HTTP requests for reports.
type reportingHandler struct {
	reportingService portssvc.ReportingService
}

func newReportingHandler(rs portssvc.ReportingService) *reportingHandler {
	return &reportingHandler{reportingService: rs}
}

// registerReportingRoutes registers report routes.
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingService) {
	h := newReportingHandler(reportingService)

	reports := rg.Group("/reports")
	{
		reports.GET("/debtors", h.getDebtors)
		reports.GET("/sales-summary", h.getSalesSummary)
	}
}

func (h *reportingHandler) getDebtors(c *gin.Context) {
	var params dto.ListDebtorsParams
	if !bindQueryOrAbort(c, &params) {
		return
	}

	report, err := h.reportingService.GetDebtors(c.Request.Context(), params)
	if err != nil {
		respondWithError(c, err, "Failed to build debtors report")
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *reportingHandler) getSalesSummary(c *gin.Context) {
	var params dto.SalesSummaryParams
	if !bindQueryOrAbort(c, &params) {
		return
	}

	summary, err := h.reportingService.GetSalesSummary(c.Request.Context(), params)
	if err != nil {
		respondWithError(c, err, "Failed to build sales summary")
		return
	}
	c.JSON(http.StatusOK, summary)
}

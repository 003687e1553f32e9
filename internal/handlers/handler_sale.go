package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/pardisco/shop_ledger_app/internal/core/ports/services"
	"github.com/pardisco/shop_ledger_app/internal/dto"
	"github.com/pardisco/shop_ledger_app/internal/middleware"
)

// saleHandler handles HTTP requests for sales.
type saleHandler struct {
	saleService portssvc.SaleSvcFacade
}

func newSaleHandler(ss portssvc.SaleSvcFacade) *saleHandler {
	return &saleHandler{saleService: ss}
}

// registerSaleRoutes registers sale routes.
func registerSaleRoutes(rg *gin.RouterGroup, saleService portssvc.SaleSvcFacade) {
	h := newSaleHandler(saleService)

	sales := rg.Group("/sales")
	{
		sales.POST("", h.recordSale)
		sales.GET("", h.listSales)
		sales.GET("/:id", h.getSale)
	}
}

func (h *saleHandler) recordSale(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.RecordSaleRequest
	if !bindJSONOrAbort(c, &req) {
		return
	}

	sale, err := h.saleService.RecordSale(c.Request.Context(), req)
	if err != nil {
		respondWithError(c, err, "Failed to record sale")
		return
	}

	logger.Info("Sale recorded", slog.String("sale_id", sale.SaleID), slog.String("total", sale.Total.String()))
	c.JSON(http.StatusCreated, dto.ToSaleResponse(sale))
}

func (h *saleHandler) getSale(c *gin.Context) {
	sale, err := h.saleService.GetSaleByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondWithError(c, err, "Failed to retrieve sale")
		return
	}
	c.JSON(http.StatusOK, dto.ToSaleResponse(sale))
}

func (h *saleHandler) listSales(c *gin.Context) {
	var params dto.ListSalesParams
	if !bindQueryOrAbort(c, &params) {
		return
	}

	resp, err := h.saleService.ListSales(c.Request.Context(), params)
	if err != nil {
		respondWithError(c, err, "Failed to list sales")
		return
	}
	c.JSON(http.StatusOK, resp)
}

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pardisco/shop_ledger_app/internal/core/domain"
	portssvc "github.com/pardisco/shop_ledger_app/internal/core/ports/services"
	"github.com/pardisco/shop_ledger_app/internal/dto"
	"github.com/pardisco/shop_ledger_app/internal/middleware"
)

// ledgerHandler handles HTTP requests for account ledgers.
type ledgerHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

func newLedgerHandler(ls portssvc.LedgerSvcFacade) *ledgerHandler {
	return &ledgerHandler{ledgerService: ls}
}

// registerLedgerRoutes registers the per-account ledger routes under
// both the customer and partner groups.
func registerLedgerRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade) {
	h := newLedgerHandler(ledgerService)

	rg.GET("/customers/:id/ledger", h.listEntries(domain.KindCustomer))
	rg.POST("/customers/:id/ledger", h.addManualEntry(domain.KindCustomer))
	rg.GET("/partners/:id/ledger", h.listEntries(domain.KindPartner))
	rg.POST("/partners/:id/ledger", h.addManualEntry(domain.KindPartner))
}

func (h *ledgerHandler) addManualEntry(kind domain.AccountKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		var req dto.ManualLedgerEntryRequest
		if !bindJSONOrAbort(c, &req) {
			return
		}

		entry, err := h.ledgerService.AddManualEntry(c.Request.Context(), kind, c.Param("id"), req)
		if err != nil {
			respondWithError(c, err, "Failed to post ledger entry")
			return
		}

		logger.Info("Ledger entry posted",
			slog.String("account_kind", string(kind)),
			slog.String("account_id", c.Param("id")),
			slog.Int64("entry_id", entry.EntryID),
		)
		c.JSON(http.StatusCreated, dto.ToLedgerEntryResponse(entry))
	}
}

func (h *ledgerHandler) listEntries(kind domain.AccountKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		var params dto.ListLedgerParams
		if !bindQueryOrAbort(c, &params) {
			return
		}

		resp, err := h.ledgerService.ListEntries(c.Request.Context(), kind, c.Param("id"), params)
		if err != nil {
			respondWithError(c, err, "Failed to list ledger entries")
			return
		}
		c.JSON(http.StatusOK, resp)
	}
}

package handlers

import (
	"github.com/gin-gonic/gin"
	portssvc "github.com/pardisco/shop_ledger_app/internal/core/ports/services"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(r *gin.Engine, services *portssvc.ServiceContainer) {
	registerHomeRoutes(r)

	setupAPIV1Routes(r, services)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(r *gin.Engine, services *portssvc.ServiceContainer) {
	v1 := r.Group("/api/v1")

	registerAccountRoutes(v1, services.Account)
	registerLedgerRoutes(v1, services.Ledger)
	registerInventoryRoutes(v1, services.Inventory)
	registerSaleRoutes(v1, services.Sale)
	registerInstallmentRoutes(v1, services.Installment)
	registerReportingRoutes(v1, services.Reporting)
}

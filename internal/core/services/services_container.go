package services

import (
	portsrepo "github.com/pardisco/shop_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/pardisco/shop_ledger_app/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Account = NewAccountService(repos.AccountRepo)
	container.Ledger = NewLedgerService(repos.LedgerRepo, repos.AccountRepo)
	container.Inventory = NewInventoryService(repos.InventoryRepo, repos.AccountRepo)
	container.Sale = NewSaleService(repos.SaleRepo, repos.AccountRepo)
	container.Installment = NewInstallmentService(repos.InstallmentRepo, repos.AccountRepo)
	container.Reporting = NewReportingService(repos.ReportingRepo)

	return container
}

package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"
	portsrepo "github.com/pardisco/shop_ledger_app/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	accountRepo := newPgxAccountRepository(dbPool)
	ledgerRepo := newPgxLedgerRepository(dbPool, accountRepo)
	inventoryRepo := newPgxInventoryRepository(dbPool, ledgerRepo)
	saleRepo := newPgxSaleRepository(dbPool, inventoryRepo, ledgerRepo)
	installmentRepo := newPgxInstallmentRepository(dbPool, inventoryRepo, ledgerRepo)
	reportingRepo := newPgxReportingRepository(dbPool)

	return portsrepo.RepositoryProvider{
		AccountRepo:     accountRepo,
		LedgerRepo:      ledgerRepo,
		InventoryRepo:   inventoryRepo,
		SaleRepo:        saleRepo,
		InstallmentRepo: installmentRepo,
		ReportingRepo:   reportingRepo,
	}
}

package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pardisco/shop_ledger_app/internal/core/domain"
	portsrepo "github.com/pardisco/shop_ledger_app/internal/core/ports/repositories"
)

type PgxReportingRepository struct {
	pool *pgxpool.Pool
}

// newPgxReportingRepository creates a new repository for aggregate reports.
func newPgxReportingRepository(pool *pgxpool.Pool) portsrepo.ReportingRepository {
	return &PgxReportingRepository{pool: pool}
}

var _ portsrepo.ReportingRepository = (*PgxReportingRepository)(nil)

// ListDebtors retrieves customers with a positive balance, largest first.
func (r *PgxReportingRepository) ListDebtors(ctx context.Context, limit int, offset int) ([]domain.Debtor, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	query := `
		SELECT customer_id, name, phone_number, balance
		FROM customers
		WHERE balance > 0
		ORDER BY balance DESC, name
		LIMIT $1 OFFSET $2;
	`
	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query debtors: %w", err)
	}
	defer rows.Close()

	debtors := []domain.Debtor{}
	for rows.Next() {
		var d domain.Debtor
		if err := rows.Scan(&d.CustomerID, &d.Name, &d.PhoneNumber, &d.Balance); err != nil {
			return nil, fmt.Errorf("failed to scan debtor row: %w", err)
		}
		debtors = append(debtors, d)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating debtor rows: %w", rows.Err())
	}
	return debtors, nil
}

// GetSalesSummary aggregates sales whose sale date falls in [from, to].
func (r *PgxReportingRepository) GetSalesSummary(ctx context.Context, from time.Time, to time.Time) (*domain.SalesSummary, error) {
	query := `
		SELECT
			COUNT(*),
			COALESCE(SUM(total), 0),
			COALESCE(SUM(total) FILTER (WHERE payment_method = 'CASH'), 0),
			COALESCE(SUM(total) FILTER (WHERE payment_method = 'CREDIT'), 0),
			COALESCE(COUNT(*) FILTER (WHERE item_type = 'PHONE'), 0),
			COALESCE(SUM(quantity) FILTER (WHERE item_type = 'PRODUCT'), 0)
		FROM sales
		WHERE sale_date >= $1 AND sale_date <= $2;
	`
	var s domain.SalesSummary
	err := r.pool.QueryRow(ctx, query, from, to).Scan(
		&s.SaleCount,
		&s.TotalRevenue,
		&s.CashRevenue,
		&s.CreditRevenue,
		&s.PhonesSold,
		&s.ProductUnits,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate sales summary: %w", err)
	}
	return &s, nil
}

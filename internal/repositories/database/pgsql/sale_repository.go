package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pardisco/shop_ledger_app/internal/apperrors"
	"github.com/pardisco/shop_ledger_app/internal/core/domain"
	portsrepo "github.com/pardisco/shop_ledger_app/internal/core/ports/repositories"
	"github.com/pardisco/shop_ledger_app/internal/middleware"
	"github.com/shopspring/decimal"
)

type PgxSaleRepository struct {
	BaseRepository
	inventoryRepo portsrepo.InventoryRepositoryFacade
	ledgerRepo    portsrepo.LedgerRepositoryFacade
}

// newPgxSaleRepository creates a new repository for sale records. The
// inventory and ledger repositories carry out the guarded stock mutation
// and the receivable posting inside the sale transaction.
func newPgxSaleRepository(pool *pgxpool.Pool, inventoryRepo portsrepo.InventoryRepositoryFacade, ledgerRepo portsrepo.LedgerRepositoryFacade) portsrepo.SaleRepositoryFacade {
	return &PgxSaleRepository{
		BaseRepository: BaseRepository{Pool: pool},
		inventoryRepo:  inventoryRepo,
		ledgerRepo:     ledgerRepo,
	}
}

var _ portsrepo.SaleRepositoryFacade = (*PgxSaleRepository)(nil)

// SaveSale persists a sale atomically: the guarded inventory mutation
// resolves the unit price from the stored item, the discount is checked
// against the resulting subtotal, and the sale record insert plus the
// optional customer ledger posting all share one transaction, so a
// failure in any step leaves no partial state.
func (r *PgxSaleRepository) SaveSale(ctx context.Context, sale domain.SaleRecord, posting *domain.LedgerPosting) (*domain.SaleRecord, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		if rbErr := r.Rollback(ctx, tx); rbErr != nil {
			logger.Error("failed to rollback sale transaction", "error", rbErr)
		}
	}()

	var unitPrice decimal.Decimal
	switch sale.ItemType {
	case domain.ItemPhone:
		unitPrice, err = r.inventoryRepo.SellPhoneInTx(ctx, tx, sale.ItemID, sale.SaleDate, sale.CreatedAt)
	case domain.ItemProduct:
		unitPrice, err = r.inventoryRepo.SellProductInTx(ctx, tx, sale.ItemID, sale.Quantity, sale.CreatedAt)
	default:
		err = fmt.Errorf("%w: unknown item type %q", apperrors.ErrValidation, sale.ItemType)
	}
	if err != nil {
		return nil, err
	}

	subtotal := unitPrice.Mul(decimal.NewFromInt(int64(sale.Quantity)))
	if sale.Discount.GreaterThan(subtotal) {
		return nil, fmt.Errorf("%w: discount %s exceeds subtotal %s", apperrors.ErrInvalidAmount, sale.Discount, subtotal)
	}
	sale.UnitPrice = unitPrice
	sale.Total = subtotal.Sub(sale.Discount)

	insertQuery := `
		INSERT INTO sales (sale_id, item_type, item_id, quantity, unit_price, discount, total, customer_id, payment_method, sale_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err = tx.Exec(ctx, insertQuery,
		sale.SaleID,
		sale.ItemType,
		sale.ItemID,
		sale.Quantity,
		sale.UnitPrice,
		sale.Discount,
		sale.Total,
		sale.CustomerID,
		sale.PaymentMethod,
		sale.SaleDate,
		sale.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert sale %s: %w", sale.SaleID, err)
	}

	if posting != nil {
		posting.Debit = sale.Total
		if _, err := r.ledgerRepo.AppendEntryInTx(ctx, tx, *posting); err != nil {
			return nil, err
		}
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return &sale, nil
}

// FindSaleByID retrieves a sale by its ID.
func (r *PgxSaleRepository) FindSaleByID(ctx context.Context, saleID string) (*domain.SaleRecord, error) {
	query := `
		SELECT sale_id, item_type, item_id, quantity, unit_price, discount, total, customer_id, payment_method, sale_date, created_at
		FROM sales
		WHERE sale_id = $1;
	`
	var s domain.SaleRecord
	err := r.Pool.QueryRow(ctx, query, saleID).Scan(
		&s.SaleID,
		&s.ItemType,
		&s.ItemID,
		&s.Quantity,
		&s.UnitPrice,
		&s.Discount,
		&s.Total,
		&s.CustomerID,
		&s.PaymentMethod,
		&s.SaleDate,
		&s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find sale by ID %s: %w", saleID, err)
	}
	return &s, nil
}

// ListSales retrieves a page of sales, newest first, using a
// (sale_date, created_at) keyset cursor. Zero cursor values start from
// the newest record.
func (r *PgxSaleRepository) ListSales(ctx context.Context, limit int, beforeSaleDate time.Time, beforeCreatedAt time.Time) ([]domain.SaleRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `
		SELECT sale_id, item_type, item_id, quantity, unit_price, discount, total, customer_id, payment_method, sale_date, created_at
		FROM sales
	`
	args := []interface{}{}
	if !beforeSaleDate.IsZero() {
		query += ` WHERE (sale_date, created_at) < ($1, $2)`
		args = append(args, beforeSaleDate, beforeCreatedAt)
	}
	query += fmt.Sprintf(` ORDER BY sale_date DESC, created_at DESC LIMIT $%d;`, len(args)+1)
	args = append(args, limit)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query sales: %w", err)
	}
	defer rows.Close()

	sales := []domain.SaleRecord{}
	for rows.Next() {
		var s domain.SaleRecord
		err := rows.Scan(
			&s.SaleID,
			&s.ItemType,
			&s.ItemID,
			&s.Quantity,
			&s.UnitPrice,
			&s.Discount,
			&s.Total,
			&s.CustomerID,
			&s.PaymentMethod,
			&s.SaleDate,
			&s.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan sale row: %w", err)
		}
		sales = append(sales, s)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating sale rows: %w", rows.Err())
	}
	return sales, nil
}

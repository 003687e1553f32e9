package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pardisco/shop_ledger_app/internal/apperrors"
	"github.com/pardisco/shop_ledger_app/internal/core/domain"
	portsrepo "github.com/pardisco/shop_ledger_app/internal/core/ports/repositories"
	"github.com/pardisco/shop_ledger_app/internal/middleware"
	"github.com/shopspring/decimal"
)

type PgxInventoryRepository struct {
	BaseRepository
	ledgerRepo portsrepo.LedgerRepositoryFacade
}

// newPgxInventoryRepository creates a new repository for phone and
// product inventory. The ledger repository is used to post supplier
// goods-receipt entries in the same transaction as the stock insert.
func newPgxInventoryRepository(pool *pgxpool.Pool, ledgerRepo portsrepo.LedgerRepositoryFacade) portsrepo.InventoryRepositoryWithTx {
	return &PgxInventoryRepository{
		BaseRepository: BaseRepository{Pool: pool},
		ledgerRepo:     ledgerRepo,
	}
}

var _ portsrepo.InventoryRepositoryWithTx = (*PgxInventoryRepository)(nil)

// SavePhone inserts a new phone and posts the supplier cost entry, if
// any, atomically.
func (r *PgxInventoryRepository) SavePhone(ctx context.Context, phone domain.Phone, costPosting *domain.LedgerPosting) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if rbErr := r.Rollback(ctx, tx); rbErr != nil {
			logger.Error("failed to rollback phone save transaction", "error", rbErr)
		}
	}()

	query := `
		INSERT INTO phones (phone_id, imei, model, status, purchase_price, sale_price, supplier_id, purchase_date, sale_date, created_at, last_updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err = tx.Exec(ctx, query,
		phone.PhoneID,
		phone.IMEI,
		phone.Model,
		phone.Status,
		phone.PurchasePrice,
		phone.SalePrice,
		phone.SupplierID,
		phone.PurchaseDate,
		phone.SaleDate,
		phone.CreatedAt,
		phone.LastUpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: phone with IMEI %s already exists", apperrors.ErrDuplicate, phone.IMEI)
		}
		return fmt.Errorf("failed to save phone %s: %w", phone.PhoneID, err)
	}

	if costPosting != nil {
		if _, err := r.ledgerRepo.AppendEntryInTx(ctx, tx, *costPosting); err != nil {
			return err
		}
	}

	return r.Commit(ctx, tx)
}

// FindPhoneByID retrieves a phone by its ID.
func (r *PgxInventoryRepository) FindPhoneByID(ctx context.Context, phoneID string) (*domain.Phone, error) {
	return r.findPhone(ctx, "phone_id", phoneID)
}

// FindPhoneByIMEI retrieves a phone by its IMEI.
func (r *PgxInventoryRepository) FindPhoneByIMEI(ctx context.Context, imei string) (*domain.Phone, error) {
	return r.findPhone(ctx, "imei", imei)
}

func (r *PgxInventoryRepository) findPhone(ctx context.Context, col string, value string) (*domain.Phone, error) {
	query := fmt.Sprintf(`
		SELECT phone_id, imei, model, status, purchase_price, sale_price, supplier_id, purchase_date, sale_date, created_at, last_updated_at
		FROM phones
		WHERE %s = $1;
	`, col)

	var p domain.Phone
	err := r.Pool.QueryRow(ctx, query, value).Scan(
		&p.PhoneID,
		&p.IMEI,
		&p.Model,
		&p.Status,
		&p.PurchasePrice,
		&p.SalePrice,
		&p.SupplierID,
		&p.PurchaseDate,
		&p.SaleDate,
		&p.CreatedAt,
		&p.LastUpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find phone by %s %s: %w", col, value, err)
	}
	return &p, nil
}

// ListPhones retrieves a paginated list of phones, newest purchases
// first, optionally filtered by status.
func (r *PgxInventoryRepository) ListPhones(ctx context.Context, status *domain.PhoneStatus, limit int, offset int) ([]domain.Phone, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := `
		SELECT phone_id, imei, model, status, purchase_price, sale_price, supplier_id, purchase_date, sale_date, created_at, last_updated_at
		FROM phones
	`
	args := []interface{}{}
	if status != nil {
		query += ` WHERE status = $1`
		args = append(args, *status)
	}
	query += fmt.Sprintf(` ORDER BY purchase_date DESC, phone_id LIMIT $%d OFFSET $%d;`, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query phones: %w", err)
	}
	defer rows.Close()

	phones := []domain.Phone{}
	for rows.Next() {
		var p domain.Phone
		err := rows.Scan(
			&p.PhoneID,
			&p.IMEI,
			&p.Model,
			&p.Status,
			&p.PurchasePrice,
			&p.SalePrice,
			&p.SupplierID,
			&p.PurchaseDate,
			&p.SaleDate,
			&p.CreatedAt,
			&p.LastUpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan phone row: %w", err)
		}
		phones = append(phones, p)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating phone rows: %w", rows.Err())
	}
	return phones, nil
}

// SellPhoneInTx transitions an IN_STOCK phone to SOLD at its stored
// sale price and returns that price. The guard requires both the
// IN_STOCK status and a positive sale_price, so concurrent sales and
// unpriced units lose without double-selling.
func (r *PgxInventoryRepository) SellPhoneInTx(ctx context.Context, tx pgx.Tx, phoneID string, saleDate time.Time, now time.Time) (decimal.Decimal, error) {
	query := `
		UPDATE phones
		SET status = $2, sale_date = $3, last_updated_at = $4
		WHERE phone_id = $1 AND status = $5 AND sale_price IS NOT NULL AND sale_price > 0
		RETURNING sale_price;
	`
	var salePrice decimal.Decimal
	err := tx.QueryRow(ctx, query, phoneID, domain.PhoneSold, saleDate, now, domain.PhoneInStock).Scan(&salePrice)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, r.phoneSaleGuardError(ctx, phoneID)
		}
		return decimal.Zero, fmt.Errorf("failed to sell phone %s: %w", phoneID, err)
	}
	return salePrice, nil
}

// phoneSaleGuardError disambiguates a zero-rows sale guard: missing row,
// wrong status, or no positive stored sale price.
func (r *PgxInventoryRepository) phoneSaleGuardError(ctx context.Context, phoneID string) error {
	var status domain.PhoneStatus
	var salePrice *decimal.Decimal
	err := r.Pool.QueryRow(ctx, `SELECT status, sale_price FROM phones WHERE phone_id = $1;`, phoneID).Scan(&status, &salePrice)
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.ErrNotFound
	} else if err != nil {
		return fmt.Errorf("failed to check phone %s status: %w", phoneID, err)
	}
	if status != domain.PhoneInStock {
		return fmt.Errorf("%w: phone %s is not in stock (status %s)", apperrors.ErrInvalidState, phoneID, status)
	}
	return fmt.Errorf("%w: phone %s has no positive sale price", apperrors.ErrInvalidAmount, phoneID)
}

// MarkPhoneSoldInTx transitions an IN_STOCK phone to a sold status at a
// caller-negotiated price. The status guard in the WHERE clause makes
// concurrent sales of the same unit lose with ErrInvalidState instead
// of double-selling.
func (r *PgxInventoryRepository) MarkPhoneSoldInTx(ctx context.Context, tx pgx.Tx, phoneID string, status domain.PhoneStatus, salePrice decimal.Decimal, saleDate time.Time, now time.Time) error {
	query := `
		UPDATE phones
		SET status = $2, sale_price = $3, sale_date = $4, last_updated_at = $5
		WHERE phone_id = $1 AND status = $6;
	`
	cmdTag, err := tx.Exec(ctx, query, phoneID, status, salePrice, saleDate, now, domain.PhoneInStock)
	if err != nil {
		return fmt.Errorf("failed to mark phone %s sold: %w", phoneID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return r.phoneGuardError(ctx, phoneID, "is not in stock")
	}
	return nil
}

// MarkPhoneReturned transitions an IN_STOCK phone to RETURNED.
func (r *PgxInventoryRepository) MarkPhoneReturned(ctx context.Context, phoneID string, now time.Time) error {
	query := `
		UPDATE phones
		SET status = $2, last_updated_at = $3
		WHERE phone_id = $1 AND status = $4;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, phoneID, domain.PhoneReturned, now, domain.PhoneInStock)
	if err != nil {
		return fmt.Errorf("failed to mark phone %s returned: %w", phoneID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return r.phoneGuardError(ctx, phoneID, "is not in stock")
	}
	return nil
}

// phoneGuardError disambiguates a zero-rows guarded update: missing row
// means not found, otherwise the phone exists in a disallowed state.
func (r *PgxInventoryRepository) phoneGuardError(ctx context.Context, phoneID string, reason string) error {
	var status domain.PhoneStatus
	err := r.Pool.QueryRow(ctx, `SELECT status FROM phones WHERE phone_id = $1;`, phoneID).Scan(&status)
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.ErrNotFound
	} else if err != nil {
		return fmt.Errorf("failed to check phone %s status: %w", phoneID, err)
	}
	return fmt.Errorf("%w: phone %s %s (status %s)", apperrors.ErrInvalidState, phoneID, reason, status)
}

// SaveProduct inserts a new product and posts the supplier cost entry,
// if any, atomically.
func (r *PgxInventoryRepository) SaveProduct(ctx context.Context, product domain.Product, costPosting *domain.LedgerPosting) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if rbErr := r.Rollback(ctx, tx); rbErr != nil {
			logger.Error("failed to rollback product save transaction", "error", rbErr)
		}
	}()

	query := `
		INSERT INTO products (product_id, name, stock_quantity, selling_price, purchase_price, units_sold, supplier_id, created_at, last_updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err = tx.Exec(ctx, query,
		product.ProductID,
		product.Name,
		product.StockQuantity,
		product.SellingPrice,
		product.PurchasePrice,
		product.UnitsSold,
		product.SupplierID,
		product.CreatedAt,
		product.LastUpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: product with ID %s already exists", apperrors.ErrDuplicate, product.ProductID)
		}
		return fmt.Errorf("failed to save product %s: %w", product.ProductID, err)
	}

	if costPosting != nil {
		if _, err := r.ledgerRepo.AppendEntryInTx(ctx, tx, *costPosting); err != nil {
			return err
		}
	}

	return r.Commit(ctx, tx)
}

// FindProductByID retrieves a product by its ID.
func (r *PgxInventoryRepository) FindProductByID(ctx context.Context, productID string) (*domain.Product, error) {
	query := `
		SELECT product_id, name, stock_quantity, selling_price, purchase_price, units_sold, supplier_id, created_at, last_updated_at
		FROM products
		WHERE product_id = $1;
	`
	var p domain.Product
	err := r.Pool.QueryRow(ctx, query, productID).Scan(
		&p.ProductID,
		&p.Name,
		&p.StockQuantity,
		&p.SellingPrice,
		&p.PurchasePrice,
		&p.UnitsSold,
		&p.SupplierID,
		&p.CreatedAt,
		&p.LastUpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find product by ID %s: %w", productID, err)
	}
	return &p, nil
}

// ListProducts retrieves a paginated list of products ordered by name.
func (r *PgxInventoryRepository) ListProducts(ctx context.Context, limit int, offset int) ([]domain.Product, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := `
		SELECT product_id, name, stock_quantity, selling_price, purchase_price, units_sold, supplier_id, created_at, last_updated_at
		FROM products
		ORDER BY name
		LIMIT $1 OFFSET $2;
	`
	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	products := []domain.Product{}
	for rows.Next() {
		var p domain.Product
		err := rows.Scan(
			&p.ProductID,
			&p.Name,
			&p.StockQuantity,
			&p.SellingPrice,
			&p.PurchasePrice,
			&p.UnitsSold,
			&p.SupplierID,
			&p.CreatedAt,
			&p.LastUpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product row: %w", err)
		}
		products = append(products, p)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating product rows: %w", rows.Err())
	}
	return products, nil
}

// UpdateProduct updates a product's editable fields.
func (r *PgxInventoryRepository) UpdateProduct(ctx context.Context, product domain.Product) error {
	query := `
		UPDATE products
		SET name = $2, selling_price = $3, last_updated_at = $4
		WHERE product_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		product.ProductID,
		product.Name,
		product.SellingPrice,
		product.LastUpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to execute update product %s: %w", product.ProductID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// SellProductInTx subtracts quantity from a product's stock, adds it to
// the lifetime sold counter and returns the stored selling price. The
// stock_quantity >= quantity guard makes oversells lose with
// ErrInsufficientStock; the selling_price > 0 guard keeps unpriced
// products unsellable.
func (r *PgxInventoryRepository) SellProductInTx(ctx context.Context, tx pgx.Tx, productID string, quantity int, now time.Time) (decimal.Decimal, error) {
	query := `
		UPDATE products
		SET stock_quantity = stock_quantity - $2, units_sold = units_sold + $2, last_updated_at = $3
		WHERE product_id = $1 AND stock_quantity >= $2 AND selling_price > 0
		RETURNING selling_price;
	`
	var sellingPrice decimal.Decimal
	err := tx.QueryRow(ctx, query, productID, quantity, now).Scan(&sellingPrice)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, r.productSaleGuardError(ctx, productID, quantity)
		}
		return decimal.Zero, fmt.Errorf("failed to sell product %s: %w", productID, err)
	}
	return sellingPrice, nil
}

// productSaleGuardError disambiguates a zero-rows sale guard: missing
// row, insufficient stock, or no positive selling price.
func (r *PgxInventoryRepository) productSaleGuardError(ctx context.Context, productID string, quantity int) error {
	var stock int
	var sellingPrice decimal.Decimal
	err := r.Pool.QueryRow(ctx, `SELECT stock_quantity, selling_price FROM products WHERE product_id = $1;`, productID).Scan(&stock, &sellingPrice)
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.ErrNotFound
	} else if err != nil {
		return fmt.Errorf("failed to check product %s stock: %w", productID, err)
	}
	if stock < quantity {
		return fmt.Errorf("%w: product %s has %d units, %d requested", apperrors.ErrInsufficientStock, productID, stock, quantity)
	}
	return fmt.Errorf("%w: product %s has no positive selling price", apperrors.ErrInvalidAmount, productID)
}

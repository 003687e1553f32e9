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
)

type PgxInstallmentRepository struct {
	BaseRepository
	inventoryRepo portsrepo.InventoryRepositoryFacade
	ledgerRepo    portsrepo.LedgerRepositoryFacade
}

// newPgxInstallmentRepository creates a new repository for installment
// sales. The inventory and ledger repositories carry out the phone state
// transition and the receivable posting inside the opening transaction.
func newPgxInstallmentRepository(pool *pgxpool.Pool, inventoryRepo portsrepo.InventoryRepositoryFacade, ledgerRepo portsrepo.LedgerRepositoryFacade) portsrepo.InstallmentRepositoryFacade {
	return &PgxInstallmentRepository{
		BaseRepository: BaseRepository{Pool: pool},
		inventoryRepo:  inventoryRepo,
		ledgerRepo:     ledgerRepo,
	}
}

var _ portsrepo.InstallmentRepositoryFacade = (*PgxInstallmentRepository)(nil)

// SaveInstallmentSale opens an installment sale atomically: the phone
// transitions to SOLD_ON_INSTALLMENT, the parent record, payment
// schedule and checks are inserted, and the full sale price is debited
// to the customer ledger, all in one transaction.
func (r *PgxInstallmentRepository) SaveInstallmentSale(ctx context.Context, sale domain.InstallmentSale, posting domain.LedgerPosting) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if rbErr := r.Rollback(ctx, tx); rbErr != nil {
			logger.Error("failed to rollback installment sale transaction", "error", rbErr)
		}
	}()

	err = r.inventoryRepo.MarkPhoneSoldInTx(ctx, tx, sale.PhoneID, domain.PhoneSoldOnInstallment, sale.ActualSalePrice, sale.StartDate, sale.CreatedAt)
	if err != nil {
		return err
	}

	parentQuery := `
		INSERT INTO installment_sales (installment_sale_id, customer_id, phone_id, actual_sale_price, down_payment, installment_count, installment_amount, start_date, notes, created_at, last_updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err = tx.Exec(ctx, parentQuery,
		sale.InstallmentSaleID,
		sale.CustomerID,
		sale.PhoneID,
		sale.ActualSalePrice,
		sale.DownPayment,
		sale.InstallmentCount,
		sale.InstallmentAmount,
		sale.StartDate,
		sale.Notes,
		sale.CreatedAt,
		sale.LastUpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert installment sale %s: %w", sale.InstallmentSaleID, err)
	}

	batch := &pgx.Batch{}
	paymentQuery := `
		INSERT INTO installment_payments (payment_id, installment_sale_id, installment_number, due_date, amount_due, status, payment_date, created_at, last_updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	for _, p := range sale.Payments {
		batch.Queue(paymentQuery,
			p.PaymentID,
			p.InstallmentSaleID,
			p.InstallmentNumber,
			p.DueDate,
			p.AmountDue,
			p.Status,
			p.PaymentDate,
			p.CreatedAt,
			p.LastUpdatedAt,
		)
	}
	checkQuery := `
		INSERT INTO installment_checks (check_id, installment_sale_id, check_number, bank_name, amount, due_date, status, created_at, last_updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	for _, c := range sale.Checks {
		batch.Queue(checkQuery,
			c.CheckID,
			c.InstallmentSaleID,
			c.CheckNumber,
			c.BankName,
			c.Amount,
			c.DueDate,
			c.Status,
			c.CreatedAt,
			c.LastUpdatedAt,
		)
	}

	if batch.Len() > 0 {
		br := tx.SendBatch(ctx, batch)
		var batchErr error
		for i := 0; i < batch.Len(); i++ {
			if _, err := br.Exec(); err != nil && batchErr == nil {
				batchErr = fmt.Errorf("failed to insert installment schedule row for sale %s: %w", sale.InstallmentSaleID, err)
			}
		}
		if err := br.Close(); err != nil && batchErr == nil {
			batchErr = fmt.Errorf("failed to close installment schedule batch: %w", err)
		}
		if batchErr != nil {
			return batchErr
		}
	}

	if _, err := r.ledgerRepo.AppendEntryInTx(ctx, tx, posting); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// FindInstallmentSaleByID retrieves an installment sale with its full
// payment schedule and checks.
func (r *PgxInstallmentRepository) FindInstallmentSaleByID(ctx context.Context, installmentSaleID string) (*domain.InstallmentSale, error) {
	query := `
		SELECT installment_sale_id, customer_id, phone_id, actual_sale_price, down_payment, installment_count, installment_amount, start_date, notes, created_at, last_updated_at
		FROM installment_sales
		WHERE installment_sale_id = $1;
	`
	var s domain.InstallmentSale
	err := r.Pool.QueryRow(ctx, query, installmentSaleID).Scan(
		&s.InstallmentSaleID,
		&s.CustomerID,
		&s.PhoneID,
		&s.ActualSalePrice,
		&s.DownPayment,
		&s.InstallmentCount,
		&s.InstallmentAmount,
		&s.StartDate,
		&s.Notes,
		&s.CreatedAt,
		&s.LastUpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find installment sale by ID %s: %w", installmentSaleID, err)
	}

	paymentsBySale, err := r.loadPayments(ctx, []string{installmentSaleID})
	if err != nil {
		return nil, err
	}
	s.Payments = paymentsBySale[installmentSaleID]

	checks, err := r.loadChecks(ctx, installmentSaleID)
	if err != nil {
		return nil, err
	}
	s.Checks = checks

	return &s, nil
}

// ListInstallmentSales retrieves installment sales newest first with
// their payment schedules, using a created_at keyset cursor.
func (r *PgxInstallmentRepository) ListInstallmentSales(ctx context.Context, limit int, beforeCreatedAt time.Time) ([]domain.InstallmentSale, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `
		SELECT installment_sale_id, customer_id, phone_id, actual_sale_price, down_payment, installment_count, installment_amount, start_date, notes, created_at, last_updated_at
		FROM installment_sales
	`
	args := []interface{}{}
	if !beforeCreatedAt.IsZero() {
		query += ` WHERE created_at < $1`
		args = append(args, beforeCreatedAt)
	}
	query += fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d;`, len(args)+1)
	args = append(args, limit)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query installment sales: %w", err)
	}
	defer rows.Close()

	sales := []domain.InstallmentSale{}
	saleIDs := []string{}
	for rows.Next() {
		var s domain.InstallmentSale
		err := rows.Scan(
			&s.InstallmentSaleID,
			&s.CustomerID,
			&s.PhoneID,
			&s.ActualSalePrice,
			&s.DownPayment,
			&s.InstallmentCount,
			&s.InstallmentAmount,
			&s.StartDate,
			&s.Notes,
			&s.CreatedAt,
			&s.LastUpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan installment sale row: %w", err)
		}
		sales = append(sales, s)
		saleIDs = append(saleIDs, s.InstallmentSaleID)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating installment sale rows: %w", rows.Err())
	}

	if len(saleIDs) > 0 {
		paymentsBySale, err := r.loadPayments(ctx, saleIDs)
		if err != nil {
			return nil, err
		}
		for i := range sales {
			sales[i].Payments = paymentsBySale[sales[i].InstallmentSaleID]
		}
	}

	return sales, nil
}

// loadPayments fetches the payment schedules for the given sales, keyed
// by sale ID and ordered by installment number.
func (r *PgxInstallmentRepository) loadPayments(ctx context.Context, saleIDs []string) (map[string][]domain.InstallmentPayment, error) {
	query := `
		SELECT payment_id, installment_sale_id, installment_number, due_date, amount_due, status, payment_date, created_at, last_updated_at
		FROM installment_payments
		WHERE installment_sale_id = ANY($1)
		ORDER BY installment_sale_id, installment_number;
	`
	rows, err := r.Pool.Query(ctx, query, saleIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query installment payments: %w", err)
	}
	defer rows.Close()

	bySale := make(map[string][]domain.InstallmentPayment)
	for rows.Next() {
		var p domain.InstallmentPayment
		err := rows.Scan(
			&p.PaymentID,
			&p.InstallmentSaleID,
			&p.InstallmentNumber,
			&p.DueDate,
			&p.AmountDue,
			&p.Status,
			&p.PaymentDate,
			&p.CreatedAt,
			&p.LastUpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan installment payment row: %w", err)
		}
		bySale[p.InstallmentSaleID] = append(bySale[p.InstallmentSaleID], p)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating installment payment rows: %w", rows.Err())
	}
	return bySale, nil
}

// loadChecks fetches the checks for one sale, oldest first.
func (r *PgxInstallmentRepository) loadChecks(ctx context.Context, saleID string) ([]domain.InstallmentCheck, error) {
	query := `
		SELECT check_id, installment_sale_id, check_number, bank_name, amount, due_date, status, created_at, last_updated_at
		FROM installment_checks
		WHERE installment_sale_id = $1
		ORDER BY created_at, check_id;
	`
	rows, err := r.Pool.Query(ctx, query, saleID)
	if err != nil {
		return nil, fmt.Errorf("failed to query installment checks: %w", err)
	}
	defer rows.Close()

	checks := []domain.InstallmentCheck{}
	for rows.Next() {
		var c domain.InstallmentCheck
		err := rows.Scan(
			&c.CheckID,
			&c.InstallmentSaleID,
			&c.CheckNumber,
			&c.BankName,
			&c.Amount,
			&c.DueDate,
			&c.Status,
			&c.CreatedAt,
			&c.LastUpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan installment check row: %w", err)
		}
		checks = append(checks, c)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating installment check rows: %w", rows.Err())
	}
	return checks, nil
}

// FindPaymentByID retrieves a single scheduled payment.
func (r *PgxInstallmentRepository) FindPaymentByID(ctx context.Context, paymentID string) (*domain.InstallmentPayment, error) {
	query := `
		SELECT payment_id, installment_sale_id, installment_number, due_date, amount_due, status, payment_date, created_at, last_updated_at
		FROM installment_payments
		WHERE payment_id = $1;
	`
	var p domain.InstallmentPayment
	err := r.Pool.QueryRow(ctx, query, paymentID).Scan(
		&p.PaymentID,
		&p.InstallmentSaleID,
		&p.InstallmentNumber,
		&p.DueDate,
		&p.AmountDue,
		&p.Status,
		&p.PaymentDate,
		&p.CreatedAt,
		&p.LastUpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find installment payment by ID %s: %w", paymentID, err)
	}
	return &p, nil
}

// FindCheckByID retrieves a single check.
func (r *PgxInstallmentRepository) FindCheckByID(ctx context.Context, checkID string) (*domain.InstallmentCheck, error) {
	query := `
		SELECT check_id, installment_sale_id, check_number, bank_name, amount, due_date, status, created_at, last_updated_at
		FROM installment_checks
		WHERE check_id = $1;
	`
	var c domain.InstallmentCheck
	err := r.Pool.QueryRow(ctx, query, checkID).Scan(
		&c.CheckID,
		&c.InstallmentSaleID,
		&c.CheckNumber,
		&c.BankName,
		&c.Amount,
		&c.DueDate,
		&c.Status,
		&c.CreatedAt,
		&c.LastUpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find installment check by ID %s: %w", checkID, err)
	}
	return &c, nil
}

// SetPaymentStatus flips a payment between UNPAID and PAID, recording or
// clearing the payment date. The ledger is untouched: the full sale
// exposure was posted when the sale was opened. The status guard in the
// WHERE clause makes a repeated flip lose with ErrInvalidState.
func (r *PgxInstallmentRepository) SetPaymentStatus(ctx context.Context, paymentID string, status domain.PaymentStatus, paymentDate *time.Time, now time.Time) (*domain.InstallmentPayment, error) {
	from := domain.PaymentUnpaid
	if status == domain.PaymentUnpaid {
		from = domain.PaymentPaid
	}

	query := `
		UPDATE installment_payments
		SET status = $2, payment_date = $3, last_updated_at = $4
		WHERE payment_id = $1 AND status = $5
		RETURNING payment_id, installment_sale_id, installment_number, due_date, amount_due, status, payment_date, created_at, last_updated_at;
	`
	var p domain.InstallmentPayment
	err := r.Pool.QueryRow(ctx, query, paymentID, status, paymentDate, now, from).Scan(
		&p.PaymentID,
		&p.InstallmentSaleID,
		&p.InstallmentNumber,
		&p.DueDate,
		&p.AmountDue,
		&p.Status,
		&p.PaymentDate,
		&p.CreatedAt,
		&p.LastUpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			existing, findErr := r.FindPaymentByID(ctx, paymentID)
			if findErr != nil {
				return nil, findErr
			}
			return nil, fmt.Errorf("%w: payment %s is already %s", apperrors.ErrInvalidState, paymentID, existing.Status)
		}
		return nil, fmt.Errorf("failed to set payment %s status: %w", paymentID, err)
	}
	return &p, nil
}

// UpdateCheckStatus sets a check's status. Transitions are unconstrained.
func (r *PgxInstallmentRepository) UpdateCheckStatus(ctx context.Context, checkID string, status domain.CheckStatus, now time.Time) (*domain.InstallmentCheck, error) {
	query := `
		UPDATE installment_checks
		SET status = $2, last_updated_at = $3
		WHERE check_id = $1
		RETURNING check_id, installment_sale_id, check_number, bank_name, amount, due_date, status, created_at, last_updated_at;
	`
	var c domain.InstallmentCheck
	err := r.Pool.QueryRow(ctx, query, checkID, status, now).Scan(
		&c.CheckID,
		&c.InstallmentSaleID,
		&c.CheckNumber,
		&c.BankName,
		&c.Amount,
		&c.DueDate,
		&c.Status,
		&c.CreatedAt,
		&c.LastUpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to update check %s status: %w", checkID, err)
	}
	return &c, nil
}

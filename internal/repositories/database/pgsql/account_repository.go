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
	"github.com/shopspring/decimal"
)

type PgxAccountRepository struct {
	pool *pgxpool.Pool
}

// newPgxAccountRepository creates a new repository for customer and partner accounts.
func newPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepositoryFacade {
	return &PgxAccountRepository{pool: pool}
}

var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

// accountTable maps an account kind to its table and primary key column.
func accountTable(kind domain.AccountKind) (table string, idCol string, err error) {
	switch kind {
	case domain.KindCustomer:
		return "customers", "customer_id", nil
	case domain.KindPartner:
		return "partners", "partner_id", nil
	default:
		return "", "", fmt.Errorf("%w: unknown account kind %q", apperrors.ErrValidation, kind)
	}
}

// SaveCustomer inserts a new customer.
func (r *PgxAccountRepository) SaveCustomer(ctx context.Context, customer domain.Customer) error {
	query := `
		INSERT INTO customers (customer_id, name, phone_number, balance, created_at, last_updated_at)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	_, err := r.pool.Exec(ctx, query,
		customer.CustomerID,
		customer.Name,
		customer.PhoneNumber,
		customer.Balance,
		customer.CreatedAt,
		customer.LastUpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: customer with ID %s already exists", apperrors.ErrDuplicate, customer.CustomerID)
		}
		return fmt.Errorf("failed to save customer %s: %w", customer.CustomerID, err)
	}
	return nil
}

// FindCustomerByID retrieves a customer by its ID.
func (r *PgxAccountRepository) FindCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error) {
	query := `
		SELECT customer_id, name, phone_number, balance, created_at, last_updated_at
		FROM customers
		WHERE customer_id = $1;
	`
	var c domain.Customer
	err := r.pool.QueryRow(ctx, query, customerID).Scan(
		&c.CustomerID,
		&c.Name,
		&c.PhoneNumber,
		&c.Balance,
		&c.CreatedAt,
		&c.LastUpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find customer by ID %s: %w", customerID, err)
	}
	return &c, nil
}

// ListCustomers retrieves a paginated list of customers ordered by name.
func (r *PgxAccountRepository) ListCustomers(ctx context.Context, limit int, offset int) ([]domain.Customer, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := `
		SELECT customer_id, name, phone_number, balance, created_at, last_updated_at
		FROM customers
		ORDER BY name
		LIMIT $1 OFFSET $2;
	`
	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query customers: %w", err)
	}
	defer rows.Close()

	customers := []domain.Customer{}
	for rows.Next() {
		var c domain.Customer
		if err := rows.Scan(&c.CustomerID, &c.Name, &c.PhoneNumber, &c.Balance, &c.CreatedAt, &c.LastUpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan customer row: %w", err)
		}
		customers = append(customers, c)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating customer rows: %w", rows.Err())
	}
	return customers, nil
}

// UpdateCustomer updates a customer's editable fields.
func (r *PgxAccountRepository) UpdateCustomer(ctx context.Context, customer domain.Customer) error {
	query := `
		UPDATE customers
		SET name = $2, phone_number = $3, last_updated_at = $4
		WHERE customer_id = $1;
	`
	cmdTag, err := r.pool.Exec(ctx, query,
		customer.CustomerID,
		customer.Name,
		customer.PhoneNumber,
		customer.LastUpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to execute update customer %s: %w", customer.CustomerID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteCustomer removes a customer, guarded on having no ledger entries.
func (r *PgxAccountRepository) DeleteCustomer(ctx context.Context, customerID string) error {
	return r.deleteAccount(ctx, domain.KindCustomer, customerID)
}

// SavePartner inserts a new partner.
func (r *PgxAccountRepository) SavePartner(ctx context.Context, partner domain.Partner) error {
	query := `
		INSERT INTO partners (partner_id, name, phone_number, balance, created_at, last_updated_at)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	_, err := r.pool.Exec(ctx, query,
		partner.PartnerID,
		partner.Name,
		partner.PhoneNumber,
		partner.Balance,
		partner.CreatedAt,
		partner.LastUpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: partner with ID %s already exists", apperrors.ErrDuplicate, partner.PartnerID)
		}
		return fmt.Errorf("failed to save partner %s: %w", partner.PartnerID, err)
	}
	return nil
}

// FindPartnerByID retrieves a partner by its ID.
func (r *PgxAccountRepository) FindPartnerByID(ctx context.Context, partnerID string) (*domain.Partner, error) {
	query := `
		SELECT partner_id, name, phone_number, balance, created_at, last_updated_at
		FROM partners
		WHERE partner_id = $1;
	`
	var p domain.Partner
	err := r.pool.QueryRow(ctx, query, partnerID).Scan(
		&p.PartnerID,
		&p.Name,
		&p.PhoneNumber,
		&p.Balance,
		&p.CreatedAt,
		&p.LastUpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find partner by ID %s: %w", partnerID, err)
	}
	return &p, nil
}

// ListPartners retrieves a paginated list of partners ordered by name.
func (r *PgxAccountRepository) ListPartners(ctx context.Context, limit int, offset int) ([]domain.Partner, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := `
		SELECT partner_id, name, phone_number, balance, created_at, last_updated_at
		FROM partners
		ORDER BY name
		LIMIT $1 OFFSET $2;
	`
	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query partners: %w", err)
	}
	defer rows.Close()

	partners := []domain.Partner{}
	for rows.Next() {
		var p domain.Partner
		if err := rows.Scan(&p.PartnerID, &p.Name, &p.PhoneNumber, &p.Balance, &p.CreatedAt, &p.LastUpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan partner row: %w", err)
		}
		partners = append(partners, p)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating partner rows: %w", rows.Err())
	}
	return partners, nil
}

// UpdatePartner updates a partner's editable fields.
func (r *PgxAccountRepository) UpdatePartner(ctx context.Context, partner domain.Partner) error {
	query := `
		UPDATE partners
		SET name = $2, phone_number = $3, last_updated_at = $4
		WHERE partner_id = $1;
	`
	cmdTag, err := r.pool.Exec(ctx, query,
		partner.PartnerID,
		partner.Name,
		partner.PhoneNumber,
		partner.LastUpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to execute update partner %s: %w", partner.PartnerID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeletePartner removes a partner, guarded on having no ledger entries.
func (r *PgxAccountRepository) DeletePartner(ctx context.Context, partnerID string) error {
	return r.deleteAccount(ctx, domain.KindPartner, partnerID)
}

// deleteAccount deletes an account row only when no ledger history
// references it. Zero rows affected is disambiguated with a follow-up
// existence check.
func (r *PgxAccountRepository) deleteAccount(ctx context.Context, kind domain.AccountKind, accountID string) error {
	table, idCol, err := accountTable(kind)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE %s = $1
		AND NOT EXISTS (
			SELECT 1 FROM ledger_entries
			WHERE account_kind = $2 AND account_id = $1
		);
	`, table, idCol)

	cmdTag, err := r.pool.Exec(ctx, query, accountID, kind)
	if err != nil {
		return fmt.Errorf("failed to delete %s account %s: %w", kind, accountID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		existsQuery := fmt.Sprintf(`SELECT 1 FROM %s WHERE %s = $1;`, table, idCol)
		var one int
		findErr := r.pool.QueryRow(ctx, existsQuery, accountID).Scan(&one)
		if errors.Is(findErr, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		} else if findErr != nil {
			return fmt.Errorf("failed to check %s account %s after delete attempt: %w", kind, accountID, findErr)
		}
		return fmt.Errorf("%w: account %s has ledger history and cannot be deleted", apperrors.ErrValidation, accountID)
	}
	return nil
}

// FindAccountBalanceForUpdate locks one account row and returns its
// persisted balance. Must be called within a transaction.
func (r *PgxAccountRepository) FindAccountBalanceForUpdate(ctx context.Context, tx pgx.Tx, kind domain.AccountKind, accountID string) (decimal.Decimal, error) {
	table, idCol, err := accountTable(kind)
	if err != nil {
		return decimal.Zero, err
	}

	query := fmt.Sprintf(`SELECT balance FROM %s WHERE %s = $1 FOR UPDATE;`, table, idCol)

	var balance decimal.Decimal
	if err := tx.QueryRow(ctx, query, accountID).Scan(&balance); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, fmt.Errorf("%w: %s account %s", apperrors.ErrNotFound, kind, accountID)
		}
		return decimal.Zero, fmt.Errorf("failed to lock %s account %s: %w", kind, accountID, err)
	}
	return balance, nil
}

// UpdateAccountBalanceInTx sets the persisted balance for an account
// within a transaction. The row must already be locked by the caller.
func (r *PgxAccountRepository) UpdateAccountBalanceInTx(ctx context.Context, tx pgx.Tx, kind domain.AccountKind, accountID string, balance decimal.Decimal, now time.Time) error {
	table, idCol, err := accountTable(kind)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`UPDATE %s SET balance = $2, last_updated_at = $3 WHERE %s = $1;`, table, idCol)

	cmdTag, err := tx.Exec(ctx, query, accountID, balance, now)
	if err != nil {
		return fmt.Errorf("failed to update balance for %s account %s: %w", kind, accountID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s account %s not found during balance update", apperrors.ErrNotFound, kind, accountID)
	}
	return nil
}

// Package accountrepo manages repository layer of accounts.
package accountrepo

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/rs/zerolog"

	"github.com/taller01/accountms/internal/domain"
	"github.com/taller01/accountms/pkg/dbpkg"
	"github.com/taller01/accountms/pkg/errorspkg"
)

// RepoPGS facilitates account repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns account RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{
		db: db,
	}
}

const getQuery = `
SELECT
	id, client_id, account_number, balance, active, category, created_at
FROM accounts
WHERE id = $1
`

// Get returns the account with the given id.
func (r *RepoPGS) Get(ctx context.Context, id string) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, getQuery, id)

	var a domain.Account

	err := row.Scan(
		&a.ID,
		&a.OwnerID,
		&a.AccountNumber,
		&a.Balance,
		&a.Active,
		&a.Category,
		&a.CreatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return a, domain.ErrAccountNotFound
		}

		l.Error().Err(err).Send()

		return a, errorspkg.ErrInternal
	}

	return a, nil
}

const getByNumberQuery = `
SELECT
	id, client_id, account_number, balance, active, category, created_at
FROM accounts
WHERE account_number = $1
`

// GetByNumber returns the account with the given account number.
func (r *RepoPGS) GetByNumber(ctx context.Context, number string) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, getByNumberQuery, number)

	var a domain.Account

	err := row.Scan(
		&a.ID,
		&a.OwnerID,
		&a.AccountNumber,
		&a.Balance,
		&a.Active,
		&a.Category,
		&a.CreatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return a, domain.ErrAccountNotFound
		}

		l.Error().Err(err).Send()

		return a, errorspkg.ErrInternal
	}

	return a, nil
}

const listAllQuery = `
SELECT
	id, client_id, account_number, balance, active, category, created_at
FROM accounts
`

// ListAll returns all accounts in store order.
func (r *RepoPGS) ListAll(ctx context.Context) ([]domain.Account, error) {
	return r.list(ctx, listAllQuery)
}

const listByOwnerQuery = `
SELECT
	id, client_id, account_number, balance, active, category, created_at
FROM accounts
WHERE client_id = $1
`

// ListByOwner returns all accounts held by the given owner.
func (r *RepoPGS) ListByOwner(ctx context.Context, ownerID string) ([]domain.Account, error) {
	return r.list(ctx, listByOwnerQuery, ownerID)
}

func (r *RepoPGS) list(ctx context.Context, query string, args ...interface{}) ([]domain.Account, error) {
	l := zerolog.Ctx(ctx)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}
	defer rows.Close()

	items := []domain.Account{}

	for rows.Next() {
		var a domain.Account
		if err := rows.Scan(&a.ID, &a.OwnerID, &a.AccountNumber, &a.Balance, &a.Active, &a.Category, &a.CreatedAt); err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrInternal
		}

		items = append(items, a)
	}

	if err := rows.Err(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	return items, nil
}

const existsByNumberQuery = `
SELECT EXISTS (
	SELECT 1 FROM accounts WHERE account_number = $1
)
`

// ExistsByNumber reports whether an account with the given number exists.
func (r *RepoPGS) ExistsByNumber(ctx context.Context, number string) (bool, error) {
	l := zerolog.Ctx(ctx)

	var exists bool

	err := r.db.QueryRowContext(ctx, existsByNumberQuery, number).Scan(&exists)
	if err != nil {
		l.Error().Err(err).Send()
		return false, errorspkg.ErrInternal
	}

	return exists, nil
}

const saveQuery = `
INSERT INTO
	accounts (id, client_id, account_number, balance, active, category)
VALUES
	($1, $2, $3, $4, $5, $6)
ON CONFLICT (id) DO UPDATE
SET balance = EXCLUDED.balance, active = EXCLUDED.active
RETURNING id, client_id, account_number, balance, active, category, created_at
`

// Save upserts the account and returns the stored document. The store assigns
// the id on first save. The write is unconditional, so concurrent saves of the
// same account resolve last-write-wins.
func (r *RepoPGS) Save(ctx context.Context, account domain.Account) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	if account.ID == "" {
		account.ID = uuid.NewString()
	}

	row := r.db.QueryRowContext(ctx, saveQuery,
		account.ID,
		account.OwnerID,
		account.AccountNumber,
		account.Balance,
		account.Active,
		string(account.Category),
	)

	var a domain.Account

	err := row.Scan(
		&a.ID,
		&a.OwnerID,
		&a.AccountNumber,
		&a.Balance,
		&a.Active,
		&a.Category,
		&a.CreatedAt,
	)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Constraint == "accounts_account_number_key" {
				return a, domain.ErrAccountNumberTaken
			}
		}

		l.Error().Err(err).Send()

		return a, errorspkg.ErrInternal
	}

	return a, nil
}

const deleteQuery = `
DELETE FROM accounts
WHERE id = $1
`

// Delete removes the account with the given id.
func (r *RepoPGS) Delete(ctx context.Context, id string) error {
	l := zerolog.Ctx(ctx)

	res, err := r.db.ExecContext(ctx, deleteQuery, id)
	if err != nil {
		l.Error().Err(err).Send()
		return errorspkg.ErrInternal
	}

	n, err := res.RowsAffected()
	if err != nil {
		l.Error().Err(err).Send()
		return errorspkg.ErrInternal
	}

	if n == 0 {
		return domain.ErrAccountNotFound
	}

	return nil
}

package seller

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"veridev/pkg/domain"
	"veridev/pkg/platform/sentinel"
	txcontext "veridev/pkg/platform/tx"
)

// PostgresStore persists seller accounts. Writes issued inside an engine
// transaction join it via the context.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

type dbExecutor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (s *PostgresStore) executor(ctx context.Context) dbExecutor {
	if tx, ok := txcontext.From(ctx); ok {
		return tx
	}
	return s.db
}

func (s *PostgresStore) Create(ctx context.Context, account *Account) error {
	const q = `
		INSERT INTO sellers (identity, name, location, registered, registered_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := s.executor(ctx).ExecContext(ctx, q,
		account.Identity.String(),
		account.Name,
		account.Location,
		account.Registered,
		account.RegisteredAt,
		account.UpdatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("create seller: %w", err)
	}
	return nil
}

func (s *PostgresStore) Update(ctx context.Context, account *Account) error {
	const q = `
		UPDATE sellers SET name = $2, location = $3, updated_at = $4
		WHERE identity = $1`

	res, err := s.executor(ctx).ExecContext(ctx, q,
		account.Identity.String(),
		account.Name,
		account.Location,
		account.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update seller: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update seller: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *PostgresStore) FindByIdentity(ctx context.Context, identity domain.Identity) (*Account, error) {
	const q = `
		SELECT identity, name, location, registered, registered_at, updated_at
		FROM sellers WHERE identity = $1`

	var (
		account  Account
		identityS string
	)
	err := s.executor(ctx).QueryRowContext(ctx, q, identity.String()).Scan(
		&identityS,
		&account.Name,
		&account.Location,
		&account.Registered,
		&account.RegisteredAt,
		&account.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find seller: %w", err)
	}
	account.Identity = domain.Identity(identityS)
	return &account, nil
}

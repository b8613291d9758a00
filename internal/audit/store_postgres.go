package audit

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"veridev/pkg/domain"
	txcontext "veridev/pkg/platform/tx"
)

// PostgresStore persists registry events. Appends issued inside an engine
// transaction join it so events commit or roll back with the writes they
// describe.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

type dbExecutor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func (s *PostgresStore) executor(ctx context.Context) dbExecutor {
	if tx, ok := txcontext.From(ctx); ok {
		return tx
	}
	return s.db
}

func (s *PostgresStore) Append(ctx context.Context, event Event) error {
	const q = `
		INSERT INTO registry_events
			(id, occurred_at, actor, action, product_id, certificate_id, asset, amount, detail)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := s.executor(ctx).ExecContext(ctx, q,
		uuid.New(),
		event.Timestamp,
		event.Actor.String(),
		string(event.Action),
		nullID(uint64(event.ProductID)),
		nullID(uint64(event.CertificateID)),
		nullString(event.Asset.String()),
		int64(event.Amount),
		event.Detail,
	)
	if err != nil {
		return fmt.Errorf("append registry event: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListByActor(ctx context.Context, actor domain.Identity) ([]Event, error) {
	const q = `
		SELECT occurred_at, actor, action, product_id, certificate_id, asset, amount, detail
		FROM registry_events
		WHERE actor = $1
		ORDER BY occurred_at`

	rows, err := s.executor(ctx).QueryContext(ctx, q, actor.String())
	if err != nil {
		return nil, fmt.Errorf("list registry events: %w", err)
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var (
			e       Event
			actorS  string
			action  string
			prodID  sql.NullInt64
			certID  sql.NullInt64
			asset   sql.NullString
			amount  int64
		)
		if err := rows.Scan(&e.Timestamp, &actorS, &action, &prodID, &certID, &asset, &amount, &e.Detail); err != nil {
			return nil, fmt.Errorf("scan registry event: %w", err)
		}
		e.Actor = domain.Identity(actorS)
		e.Action = Action(action)
		if prodID.Valid {
			e.ProductID = domain.ProductID(prodID.Int64)
		}
		if certID.Valid {
			e.CertificateID = domain.CertificateID(certID.Int64)
		}
		if asset.Valid {
			e.Asset = domain.AssetRef(asset.String)
		}
		e.Amount = uint64(amount)
		events = append(events, e)
	}
	return events, rows.Err()
}

func nullID(v uint64) sql.NullInt64 {
	if v == 0 {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(v), Valid: true}
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

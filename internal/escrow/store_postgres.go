package escrow

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"veridev/pkg/domain"
	"veridev/pkg/platform/sentinel"
	txcontext "veridev/pkg/platform/tx"
)

// PostgresStore persists certificates. The buyer and seller indexes are the
// (party, id) btree indexes on the table itself, so a single insert keeps
// both views current.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

type dbExecutor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func (s *PostgresStore) executor(ctx context.Context) dbExecutor {
	if tx, ok := txcontext.From(ctx); ok {
		return tx
	}
	return s.db
}

func (s *PostgresStore) Append(ctx context.Context, cert *Certificate) (domain.CertificateID, error) {
	const q = `
		INSERT INTO certificates (
			product_id, seller, buyer,
			device_brand, device_model, device_variant, serial_fingerprint,
			status, purchased_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`

	var id int64
	err := s.executor(ctx).QueryRowContext(ctx, q,
		int64(cert.ProductID),
		cert.Seller.String(),
		cert.Buyer.String(),
		cert.Claim.Brand,
		cert.Claim.Model,
		cert.Claim.Variant,
		cert.Claim.SerialFingerprint[:],
		string(cert.Status),
		cert.PurchasedAt,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("append certificate: %w", err)
	}
	return domain.CertificateID(id), nil
}

func (s *PostgresStore) FindByID(ctx context.Context, id domain.CertificateID) (*Certificate, error) {
	const q = `
		SELECT id, product_id, seller, buyer,
		       device_brand, device_model, device_variant, serial_fingerprint,
		       verified_brand, verified_model, verified_variant, condition, remarks,
		       status, purchased_at, finalized_at
		FROM certificates WHERE id = $1`

	c, err := scanCertificate(s.executor(ctx).QueryRowContext(ctx, q, int64(id)))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find certificate: %w", err)
	}
	return c, nil
}

func (s *PostgresStore) Update(ctx context.Context, cert *Certificate) error {
	const q = `
		UPDATE certificates
		SET verified_brand = $2, verified_model = $3, verified_variant = $4,
		    condition = $5, remarks = $6, status = $7, finalized_at = $8
		WHERE id = $1`

	res, err := s.executor(ctx).ExecContext(ctx, q,
		int64(cert.ID),
		cert.Report.Brand,
		cert.Report.Model,
		cert.Report.Variant,
		cert.Report.Condition,
		cert.Report.Remarks,
		string(cert.Status),
		nullTime(cert.FinalizedAt),
	)
	if err != nil {
		return fmt.Errorf("update certificate: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update certificate: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *PostgresStore) ListByBuyer(ctx context.Context, buyer domain.Identity) ([]domain.CertificateID, error) {
	return s.listIDs(ctx, `SELECT id FROM certificates WHERE buyer = $1 ORDER BY id`, buyer.String())
}

func (s *PostgresStore) ListBySeller(ctx context.Context, seller domain.Identity) ([]domain.CertificateID, error) {
	return s.listIDs(ctx, `SELECT id FROM certificates WHERE seller = $1 ORDER BY id`, seller.String())
}

func (s *PostgresStore) listIDs(ctx context.Context, query, party string) ([]domain.CertificateID, error) {
	rows, err := s.executor(ctx).QueryContext(ctx, query, party)
	if err != nil {
		return nil, fmt.Errorf("list certificate ids: %w", err)
	}
	defer rows.Close()

	ids := []domain.CertificateID{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("list certificate ids: %w", err)
		}
		ids = append(ids, domain.CertificateID(id))
	}
	return ids, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCertificate(row rowScanner) (*Certificate, error) {
	var (
		c           Certificate
		id          int64
		productID   int64
		seller      string
		buyer       string
		fingerprint []byte
		status      string
		finalizedAt sql.NullTime
	)
	err := row.Scan(
		&id, &productID, &seller, &buyer,
		&c.Claim.Brand, &c.Claim.Model, &c.Claim.Variant, &fingerprint,
		&c.Report.Brand, &c.Report.Model, &c.Report.Variant, &c.Report.Condition, &c.Report.Remarks,
		&status, &c.PurchasedAt, &finalizedAt,
	)
	if err != nil {
		return nil, err
	}
	c.ID = domain.CertificateID(id)
	c.ProductID = domain.ProductID(productID)
	c.Seller = domain.Identity(seller)
	c.Buyer = domain.Identity(buyer)
	copy(c.Claim.SerialFingerprint[:], fingerprint)
	c.Status = Status(status)
	if finalizedAt.Valid {
		c.FinalizedAt = finalizedAt.Time
	}
	return &c, nil
}

func nullTime(t time.Time) sql.NullTime {
	return sql.NullTime{Time: t, Valid: !t.IsZero()}
}

package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"veridev/pkg/domain"
	"veridev/pkg/platform/sentinel"
	txcontext "veridev/pkg/platform/tx"
)

// PostgresStore persists products; the id sequence lives in the table.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

type dbExecutor interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func (s *PostgresStore) executor(ctx context.Context) dbExecutor {
	if tx, ok := txcontext.From(ctx); ok {
		return tx
	}
	return s.db
}

func (s *PostgresStore) Append(ctx context.Context, product *Product) (domain.ProductID, error) {
	const q = `
		INSERT INTO products (device_type, price, asset, seller, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`

	var id int64
	err := s.executor(ctx).QueryRowContext(ctx, q,
		product.DeviceType,
		int64(product.Price),
		product.Asset.String(),
		product.Seller.String(),
		product.CreatedAt,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("append product: %w", err)
	}
	return domain.ProductID(id), nil
}

func (s *PostgresStore) FindByID(ctx context.Context, id domain.ProductID) (*Product, error) {
	const q = `
		SELECT id, device_type, price, asset, seller, created_at
		FROM products WHERE id = $1`

	p, err := scanProduct(s.executor(ctx).QueryRowContext(ctx, q, int64(id)))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find product: %w", err)
	}
	return p, nil
}

func (s *PostgresStore) ListAll(ctx context.Context) ([]*Product, error) {
	const q = `
		SELECT id, device_type, price, asset, seller, created_at
		FROM products ORDER BY id`

	rows, err := s.executor(ctx).QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var products []*Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("list products: %w", err)
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (*Product, error) {
	var (
		p      Product
		id     int64
		price  int64
		asset  string
		seller string
	)
	if err := row.Scan(&id, &p.DeviceType, &price, &asset, &seller, &p.CreatedAt); err != nil {
		return nil, err
	}
	p.ID = domain.ProductID(id)
	p.Price = uint64(price)
	p.Asset = domain.AssetRef(asset)
	p.Seller = domain.Identity(seller)
	return &p, nil
}

package postgres

import (
	"context"
	"database/sql"
	"fmt"
)

// schema holds the registry engine tables. Append-only entities carry the
// allocating sequence in the table itself; terminal flags are mutually
// exclusive by check constraint so a torn write can never mark a certificate
// both completed and refunded.
const schema = `
CREATE TABLE IF NOT EXISTS sellers (
    identity      TEXT PRIMARY KEY,
    name          TEXT NOT NULL CHECK (name <> ''),
    location      TEXT NOT NULL CHECK (location <> ''),
    registered    BOOLEAN NOT NULL DEFAULT TRUE,
    registered_at TIMESTAMPTZ NOT NULL,
    updated_at    TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS products (
    id          BIGSERIAL PRIMARY KEY,
    device_type TEXT NOT NULL,
    price       BIGINT NOT NULL CHECK (price >= 0),
    asset       TEXT NOT NULL,
    seller      TEXT NOT NULL REFERENCES sellers(identity),
    created_at  TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS certificates (
    id                 BIGSERIAL PRIMARY KEY,
    product_id         BIGINT NOT NULL REFERENCES products(id),
    seller             TEXT NOT NULL,
    buyer              TEXT NOT NULL,
    device_brand       TEXT NOT NULL,
    device_model       TEXT NOT NULL,
    device_variant     TEXT NOT NULL,
    serial_fingerprint BYTEA NOT NULL CHECK (octet_length(serial_fingerprint) = 32),
    verified_brand     TEXT NOT NULL DEFAULT '',
    verified_model     TEXT NOT NULL DEFAULT '',
    verified_variant   TEXT NOT NULL DEFAULT '',
    condition          TEXT NOT NULL DEFAULT '',
    remarks            TEXT NOT NULL DEFAULT '',
    status             TEXT NOT NULL DEFAULT 'pending'
        CHECK (status IN ('pending', 'completed', 'refunded')),
    purchased_at       TIMESTAMPTZ NOT NULL,
    finalized_at       TIMESTAMPTZ
);

CREATE INDEX IF NOT EXISTS certificates_buyer_idx ON certificates (buyer, id);
CREATE INDEX IF NOT EXISTS certificates_seller_idx ON certificates (seller, id);

CREATE TABLE IF NOT EXISTS registry_events (
    id         UUID PRIMARY KEY,
    occurred_at TIMESTAMPTZ NOT NULL,
    actor      TEXT NOT NULL,
    action     TEXT NOT NULL,
    product_id BIGINT,
    certificate_id BIGINT,
    asset      TEXT,
    amount     BIGINT,
    detail     TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS registry_events_actor_idx ON registry_events (actor, occurred_at);
`

// Migrate applies the embedded schema. Statements are idempotent so repeated
// startups are safe.
func Migrate(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

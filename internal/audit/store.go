package audit

import (
	"context"

	"veridev/pkg/domain"
)

// Store is an append-only event sink with per-actor reads. Sinks that only
// forward events (Kafka) return sentinel.ErrUnavailable from ListByActor.
type Store interface {
	Append(ctx context.Context, event Event) error
	ListByActor(ctx context.Context, actor domain.Identity) ([]Event, error)
}

package audit

import (
	"context"
	"time"

	"veridev/pkg/domain"
)

// Publisher captures structured registry events. It is append-only and uses
// the store layer for persistence so tests can swap sinks easily.
type Publisher struct {
	store Store
}

func NewPublisher(store Store) *Publisher {
	return &Publisher{store: store}
}

func (p *Publisher) Emit(ctx context.Context, event Event) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	return p.store.Append(ctx, event)
}

func (p *Publisher) List(ctx context.Context, actor domain.Identity) ([]Event, error) {
	return p.store.ListByActor(ctx, actor)
}

// ChannelPublisher hands events to a worker inbox without blocking the
// emitting operation. Events are dropped when the inbox is full; the trail is
// observability, not ledger state, so a slow sink must not stall purchases.
type ChannelPublisher struct {
	inbox chan<- Event
}

func NewChannelPublisher(inbox chan<- Event) *ChannelPublisher {
	return &ChannelPublisher{inbox: inbox}
}

func (p *ChannelPublisher) Emit(_ context.Context, event Event) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	select {
	case p.inbox <- event:
	default:
	}
	return nil
}

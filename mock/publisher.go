package mock

import (
	"context"
	"sync"

	"scrapetask"
)

var _ scrapetask.EventPublisher = (*EventPublisher)(nil)

// EventPublisher is a mock implementation of scrapetask.EventPublisher.
// When PublishFn is nil it records published events in order.
type EventPublisher struct {
	PublishFn func(ctx context.Context, event scrapetask.Event) error

	mu     sync.Mutex
	events []scrapetask.Event
}

func (p *EventPublisher) Publish(ctx context.Context, event scrapetask.Event) error {
	if p.PublishFn != nil {
		return p.PublishFn(ctx, event)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

// Events returns a copy of the recorded events in publication order.
func (p *EventPublisher) Events() []scrapetask.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]scrapetask.Event{}, p.events...)
}

// EventTypes returns just the types of the recorded events, in order.
func (p *EventPublisher) EventTypes() []scrapetask.EventType {
	p.mu.Lock()
	defer p.mu.Unlock()
	types := make([]scrapetask.EventType, len(p.events))
	for i, e := range p.events {
		types[i] = e.Type
	}
	return types
}

package slog

import (
	"context"
	"log/slog"

	"scrapetask"
)

// Ensure EventPublisher implements scrapetask.EventPublisher.
var _ scrapetask.EventPublisher = (*EventPublisher)(nil)

// EventPublisher announces task lifecycle events by writing them to the
// log. It is the in-process stand-in for an external event bus; replacing
// it with a real bus client is a matter of implementing the same interface.
type EventPublisher struct {
	logger *slog.Logger
}

// NewEventPublisher creates a new EventPublisher.
func NewEventPublisher(logger *slog.Logger) *EventPublisher {
	return &EventPublisher{logger: logger}
}

// Publish writes the lifecycle event to the log.
func (p *EventPublisher) Publish(_ context.Context, event scrapetask.Event) error {
	attrs := []any{
		"type", string(event.Type),
		"task", event.TaskID,
		"time", event.Time,
	}
	if event.Task != nil {
		attrs = append(attrs, "stage", string(event.Task.Stage))
	}
	if event.Err != "" {
		attrs = append(attrs, "err", event.Err)
	}

	if event.Type == scrapetask.EventError {
		p.logger.Error("task event", attrs...)
	} else {
		p.logger.Info("task event", attrs...)
	}
	return nil
}

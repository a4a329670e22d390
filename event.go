package scrapetask

import (
	"context"
	"time"
)

// EventType identifies a task lifecycle notification.
type EventType string

// Lifecycle event types, one per stage transition plus a final completion
// signal that fires after every run, success or error.
const (
	EventPending    EventType = "pending"
	EventStart      EventType = "start"
	EventProcessing EventType = "processing"
	EventSuccess    EventType = "success"
	EventError      EventType = "error"
	EventComplete   EventType = "complete"
)

// Event is a task lifecycle notification carrying a snapshot of the task
// record at the time of the transition.
type Event struct {
	Type   EventType `json:"type"`
	TaskID string    `json:"taskId"`
	Task   *Task     `json:"task,omitempty"`
	Err    string    `json:"err,omitempty"`
	Time   time.Time `json:"time"`
}

// EventPublisher announces task lifecycle events to an external bus.
// Publishing is best-effort from the pipeline's perspective: a failed
// publish is logged but never fails the task.
type EventPublisher interface {
	Publish(ctx context.Context, event Event) error
}

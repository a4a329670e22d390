package scrapetask

import (
	"context"
	"net/url"
	"time"
)

// TaskStage represents a task's position in the processing state machine.
type TaskStage string

// Task lifecycle stages. A task moves Pending -> Validating -> Processing ->
// Success, or to Error from any stage. Error and Success are terminal.
const (
	StagePending    TaskStage = "Pending"
	StageValidating TaskStage = "Validating"
	StageProcessing TaskStage = "Processing"
	StageSuccess    TaskStage = "Success"
	StageError      TaskStage = "Error"
)

// Task is one unit of scrape work and its lifecycle record.
type Task struct {
	ID       string  `json:"id"`
	URL      string  `json:"url"`
	Template string  `json:"template,omitempty"`
	Queries  []Query `json:"queries,omitempty"`

	Stage TaskStage `json:"stage"`

	// Data maps query ids to extracted values. Populated only on success.
	Data map[string][]string `json:"data,omitempty"`

	// Error describes the failure. Populated only on failure.
	Error string `json:"error,omitempty"`

	// ContentHash is the hash of the fetched HTML, recorded for change
	// detection. Populated once the fetch succeeds.
	ContentHash string `json:"contentHash,omitempty"`

	CreatedAt   time.Time `json:"createdAt"`
	StartedAt   time.Time `json:"startedAt,omitzero"`
	ConcludedAt time.Time `json:"concludedAt,omitzero"`
}

// Validate returns an error if the task record is malformed. A valid task
// has an absolute URL and at least one of queries or a template reference.
func (t *Task) Validate() error {
	if t == nil {
		return Errorf(EINVALID, "task is missing")
	}

	if t.URL == "" {
		return Errorf(EINVALID, "task url ('url') must be provided as a string")
	}
	if !isAbsoluteURL(t.URL) {
		return Errorf(EINVALID, "task url ('url') is not a valid url: %q", t.URL)
	}

	if t.Queries == nil && t.Template == "" {
		return Errorf(EINVALID, "task must have either template ('template') or queries ('queries')")
	}

	if t.Queries != nil {
		if err := validateQueries(t.Queries); err != nil {
			return err
		}
	}

	return nil
}

// validateQueries is the shared non-empty-and-well-formed check applied to
// both task and template query lists when they are present.
func validateQueries(queries []Query) error {
	if len(queries) == 0 {
		return Errorf(EINVALID, "queries ('queries') are empty")
	}
	for i := range queries {
		if err := queries[i].Validate(); err != nil {
			return Errorf(EINVALID, "queries[%d]: %s", i, ErrorMessage(err))
		}
	}
	return nil
}

// isAbsoluteURL reports whether s parses as a URL with a scheme and host.
func isAbsoluteURL(s string) bool {
	u, err := url.Parse(s)
	return err == nil && u.IsAbs() && u.Host != ""
}

// TaskService represents a service for managing task records.
type TaskService interface {
	// CreateTask creates a new task record in the Pending stage.
	CreateTask(ctx context.Context, task *Task) error

	// FindTaskByID retrieves a task by ID.
	// Returns ENOTFOUND if the task does not exist.
	FindTaskByID(ctx context.Context, id string) (*Task, error)

	// FindTasks retrieves tasks matching the filter.
	FindTasks(ctx context.Context, filter TaskFilter) ([]*Task, error)

	// UpdateTask updates an existing task record.
	// Returns ENOTFOUND if the task does not exist.
	UpdateTask(ctx context.Context, id string, upd TaskUpdate) (*Task, error)
}

// TaskFilter represents a filter for FindTasks.
type TaskFilter struct {
	ID    *string    `json:"id"`
	Stage *TaskStage `json:"stage"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// TaskUpdate represents fields that can be updated on a task.
type TaskUpdate struct {
	Stage       *TaskStage           `json:"stage"`
	Data        *map[string][]string `json:"data"`
	Error       *string              `json:"error"`
	ContentHash *string              `json:"contentHash"`
	StartedAt   *time.Time           `json:"startedAt"`
	ConcludedAt *time.Time           `json:"concludedAt"`
}

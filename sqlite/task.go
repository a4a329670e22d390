package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"
	"scrapetask"
)

// Compile-time interface verification.
var _ scrapetask.TaskService = (*TaskService)(nil)

// TaskService implements scrapetask.TaskService using SQLite.
type TaskService struct {
	db *DB
}

// NewTaskService creates a new TaskService.
func NewTaskService(db *DB) *TaskService {
	return &TaskService{db: db}
}

// CreateTask creates a new task record in the Pending stage. The record is
// deliberately not validated here: validation is the pipeline's first stage
// and malformed tasks must still be persistable so their failure is
// externally visible.
func (s *TaskService) CreateTask(ctx context.Context, task *scrapetask.Task) error {
	if task == nil {
		return scrapetask.Errorf(scrapetask.EINVALID, "task is missing")
	}

	task.ID = uuid.New().String()
	task.CreatedAt = time.Now().UTC()
	if task.Stage == "" {
		task.Stage = scrapetask.StagePending
	}

	queries, err := taskQueriesJSON(task.Queries)
	if err != nil {
		return err
	}
	data, err := taskDataJSON(task.Data)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO tasks (id, url, template, queries, stage, data, error, content_hash, created_at, started_at, concluded_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, task.ID, task.URL, task.Template, queries, string(task.Stage), data, task.Error, task.ContentHash,
		task.CreatedAt.Format(time.RFC3339), formatRFC3339(task.StartedAt), formatRFC3339(task.ConcludedAt))

	return err
}

// FindTaskByID retrieves a task by ID.
func (s *TaskService) FindTaskByID(ctx context.Context, id string) (*scrapetask.Task, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, url, template, queries, stage, data, error, content_hash, created_at, started_at, concluded_at
		FROM tasks
		WHERE id = ?
	`, id)

	task, err := scanTask(row.Scan)
	if err == sql.ErrNoRows {
		return nil, scrapetask.Errorf(scrapetask.ENOTFOUND, "task not found")
	}
	if err != nil {
		return nil, err
	}
	return task, nil
}

// FindTasks retrieves tasks matching the filter, newest first.
func (s *TaskService) FindTasks(ctx context.Context, filter scrapetask.TaskFilter) ([]*scrapetask.Task, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, url, template, queries, stage, data, error, content_hash, created_at, started_at, concluded_at FROM tasks WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.Stage != nil {
		query.WriteString(" AND stage = ?")
		args = append(args, string(*filter.Stage))
	}

	query.WriteString(" ORDER BY created_at DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []*scrapetask.Task
	for rows.Next() {
		task, err := scanTask(rows.Scan)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}

	return tasks, rows.Err()
}

// UpdateTask updates an existing task record.
func (s *TaskService) UpdateTask(ctx context.Context, id string, upd scrapetask.TaskUpdate) (*scrapetask.Task, error) {
	task, err := s.FindTaskByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if upd.Stage != nil {
		task.Stage = *upd.Stage
	}
	if upd.Data != nil {
		task.Data = *upd.Data
	}
	if upd.Error != nil {
		task.Error = *upd.Error
	}
	if upd.ContentHash != nil {
		task.ContentHash = *upd.ContentHash
	}
	if upd.StartedAt != nil {
		task.StartedAt = *upd.StartedAt
	}
	if upd.ConcludedAt != nil {
		task.ConcludedAt = *upd.ConcludedAt
	}

	data, err := taskDataJSON(task.Data)
	if err != nil {
		return nil, err
	}

	_, err = s.db.ExecContext(ctx, `
		UPDATE tasks
		SET stage = ?, data = ?, error = ?, content_hash = ?, started_at = ?, concluded_at = ?
		WHERE id = ?
	`, string(task.Stage), data, task.Error, task.ContentHash,
		formatRFC3339(task.StartedAt), formatRFC3339(task.ConcludedAt), id)

	if err != nil {
		return nil, err
	}

	return task, nil
}

// scanTask reads one task row using the provided scan function.
func scanTask(scan func(dest ...any) error) (*scrapetask.Task, error) {
	var task scrapetask.Task
	var queries, stage, data, createdAt, startedAt, concludedAt string

	err := scan(&task.ID, &task.URL, &task.Template, &queries, &stage, &data,
		&task.Error, &task.ContentHash, &createdAt, &startedAt, &concludedAt)
	if err != nil {
		return nil, err
	}

	task.Stage = scrapetask.TaskStage(stage)

	if err := unmarshalJSON(queries, &task.Queries); err != nil {
		return nil, err
	}
	if err := unmarshalJSON(data, &task.Data); err != nil {
		return nil, err
	}

	if task.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
		return nil, err
	}
	if task.StartedAt, err = parseRFC3339(startedAt, "started_at"); err != nil {
		return nil, err
	}
	if task.ConcludedAt, err = parseRFC3339(concludedAt, "concluded_at"); err != nil {
		return nil, err
	}

	return &task, nil
}

// taskQueriesJSON serializes a query list; a nil list stores as absent.
func taskQueriesJSON(queries []scrapetask.Query) (string, error) {
	if queries == nil {
		return "", nil
	}
	return marshalJSON(queries)
}

// taskDataJSON serializes a result map; a nil map stores as absent.
func taskDataJSON(data map[string][]string) (string, error) {
	if data == nil {
		return "", nil
	}
	return marshalJSON(data)
}

package mock

import (
	"context"

	"scrapetask"
)

var _ scrapetask.TaskService = (*TaskService)(nil)

// TaskService is a mock implementation of scrapetask.TaskService.
type TaskService struct {
	CreateTaskFn   func(ctx context.Context, task *scrapetask.Task) error
	FindTaskByIDFn func(ctx context.Context, id string) (*scrapetask.Task, error)
	FindTasksFn    func(ctx context.Context, filter scrapetask.TaskFilter) ([]*scrapetask.Task, error)
	UpdateTaskFn   func(ctx context.Context, id string, upd scrapetask.TaskUpdate) (*scrapetask.Task, error)
}

func (s *TaskService) CreateTask(ctx context.Context, task *scrapetask.Task) error {
	return s.CreateTaskFn(ctx, task)
}

func (s *TaskService) FindTaskByID(ctx context.Context, id string) (*scrapetask.Task, error) {
	return s.FindTaskByIDFn(ctx, id)
}

func (s *TaskService) FindTasks(ctx context.Context, filter scrapetask.TaskFilter) ([]*scrapetask.Task, error) {
	return s.FindTasksFn(ctx, filter)
}

func (s *TaskService) UpdateTask(ctx context.Context, id string, upd scrapetask.TaskUpdate) (*scrapetask.Task, error) {
	return s.UpdateTaskFn(ctx, id, upd)
}

// Package pipeline orchestrates the processing of one scrape task through
// its stage state machine: validation (with template merge), HTML fetch,
// query execution, and persistence of the outcome. Every stage transition
// is persisted before the matching lifecycle event is announced, giving
// external observers a monotonic view of stage progression.
package pipeline

import (
	"context"
	"encoding/binary"
	"encoding/hex"
	"log/slog"
	"time"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/sync/errgroup"
	"scrapetask"
)

// DefaultConcurrency bounds concurrent task runs in ProcessAll.
const DefaultConcurrency = 4

// Processor drives scrape tasks through their lifecycle. One task is
// processed per Process call; calls may run concurrently with each other
// but each run is internally sequential.
type Processor struct {
	Tasks     scrapetask.TaskService
	Templates scrapetask.TemplateService
	Fetcher   scrapetask.Fetcher
	Parser    scrapetask.Parser
	Events    scrapetask.EventPublisher
	Logger    *slog.Logger

	// Now returns the current time. Tests may override it; nil means
	// time.Now.
	Now func() time.Time
}

// Process runs the task with the given id to a terminal stage. All task
// failures (validation, resolution, fetch, extraction, panics) are recorded
// on the task record as stage Error and never surface as a returned error;
// the returned error is reserved for store-level faults that prevent the
// outcome from being persisted at all.
func (p *Processor) Process(ctx context.Context, taskID string) (result *scrapetask.Task, err error) {
	task, err := p.Tasks.FindTaskByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	defer func() {
		if r := recover(); r != nil {
			p.logger().Error("unhandled error during processing", "task", taskID, "panic", r)
			cause := scrapetask.Errorf(scrapetask.EINTERNAL, "unhandled error occurred during processing: %v", r)
			if failed, failErr := p.fail(ctx, task, cause); failErr == nil {
				result, err = failed, nil
			} else {
				result, err = task, failErr
			}
		}

		// The complete event is unconditional, after success or error.
		snapshot := result
		if snapshot == nil {
			snapshot = task
		}
		p.publish(ctx, scrapetask.EventComplete, snapshot, "")
	}()

	result, err = p.run(ctx, task)
	return result, err
}

// run executes the stage machine for one task.
func (p *Processor) run(ctx context.Context, task *scrapetask.Task) (*scrapetask.Task, error) {
	started := p.now()
	stage := scrapetask.StageValidating
	task, err := p.Tasks.UpdateTask(ctx, task.ID, scrapetask.TaskUpdate{Stage: &stage, StartedAt: &started})
	if err != nil {
		return nil, err
	}
	p.publish(ctx, scrapetask.EventPending, task, "")
	p.publish(ctx, scrapetask.EventStart, task, "")

	// Template resolution and merge happen inside the validating stage so
	// that a template-supplied URL participates in validation of the
	// effective task. Resolution failures stop the run exactly like
	// validation failures: they never reach the fetch.
	effective := task
	if task.Template != "" {
		tmpl, err := p.Templates.FindTemplateByID(ctx, task.Template)
		if err != nil {
			return p.fail(ctx, task, err)
		}
		if err := tmpl.Validate(); err != nil {
			return p.fail(ctx, task, err)
		}
		effective, err = scrapetask.MergeTemplate(tmpl, task)
		if err != nil {
			return p.fail(ctx, task, err)
		}
	}

	if err := effective.Validate(); err != nil {
		return p.fail(ctx, task, err)
	}

	for i := range effective.Queries {
		for _, warning := range effective.Queries[i].Warnings() {
			p.logger().Warn(warning, "task", task.ID)
		}
	}

	stage = scrapetask.StageProcessing
	task, err = p.Tasks.UpdateTask(ctx, task.ID, scrapetask.TaskUpdate{Stage: &stage})
	if err != nil {
		return nil, err
	}
	p.publish(ctx, scrapetask.EventProcessing, task, "")

	html, err := p.Fetcher.Fetch(ctx, effective.URL)
	if err != nil {
		return p.fail(ctx, task, err)
	}

	queryer, err := p.Parser.Parse(html)
	if err != nil {
		return p.fail(ctx, task, err)
	}

	data, err := queryer.MultiQuery(effective.Queries)
	if err != nil {
		return p.fail(ctx, task, err)
	}

	hash := hashContent(html)
	concluded := p.now()
	stage = scrapetask.StageSuccess
	task, err = p.Tasks.UpdateTask(ctx, task.ID, scrapetask.TaskUpdate{
		Stage:       &stage,
		Data:        &data,
		ContentHash: &hash,
		ConcludedAt: &concluded,
	})
	if err != nil {
		return nil, err
	}
	p.publish(ctx, scrapetask.EventSuccess, task, "")

	return task, nil
}

// fail records a terminal error outcome on the task and announces it.
func (p *Processor) fail(ctx context.Context, task *scrapetask.Task, cause error) (*scrapetask.Task, error) {
	msg := errorText(cause)
	concluded := p.now()
	stage := scrapetask.StageError

	updated, err := p.Tasks.UpdateTask(ctx, task.ID, scrapetask.TaskUpdate{
		Stage:       &stage,
		Error:       &msg,
		ConcludedAt: &concluded,
	})
	if err != nil {
		return nil, err
	}
	p.publish(ctx, scrapetask.EventError, updated, msg)

	return updated, nil
}

// publish announces a lifecycle event. Publishing is best-effort: failures
// are logged and never fail the task.
func (p *Processor) publish(ctx context.Context, typ scrapetask.EventType, task *scrapetask.Task, errMsg string) {
	event := scrapetask.Event{
		Type:   typ,
		TaskID: task.ID,
		Task:   task,
		Err:    errMsg,
		Time:   p.now(),
	}
	if err := p.Events.Publish(ctx, event); err != nil {
		p.logger().Error("failed to publish event", "type", string(typ), "task", task.ID, "err", err)
	}
}

// RunResult holds the outcome of one task run within ProcessAll.
type RunResult struct {
	TaskID string
	Task   *scrapetask.Task
	Err    error
}

// ProcessAll processes multiple tasks concurrently, at most concurrency at
// a time. Results are returned in input order; per-task failures are
// recorded on the task records, so a non-nil RunResult.Err indicates a
// store-level fault only.
func (p *Processor) ProcessAll(ctx context.Context, taskIDs []string, concurrency int) []RunResult {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	results := make([]RunResult, len(taskIDs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, id := range taskIDs {
		g.Go(func() error {
			task, err := p.Process(gctx, id)
			results[i] = RunResult{TaskID: id, Task: task, Err: err}
			return nil
		})
	}
	_ = g.Wait()

	return results
}

func (p *Processor) now() time.Time {
	if p.Now != nil {
		return p.Now()
	}
	return time.Now().UTC()
}

func (p *Processor) logger() *slog.Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return slog.Default()
}

// errorText renders a failure for the task's error field, preferring the
// application error message when one is available.
func errorText(err error) string {
	if msg := scrapetask.ErrorMessage(err); msg != "Internal error" {
		return msg
	}
	return err.Error()
}

// hashContent computes the xxHash of content and returns it as a hex
// string. Recorded on the task for change detection across runs.
func hashContent(content string) string {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, xxhash.Sum64String(content))
	return hex.EncodeToString(b)
}

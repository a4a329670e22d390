package main

import (
	"fmt"
	"os"

	"scrapetask"
	"scrapetask/yaml"
)

// Run executes the run command. Each file is parsed and registered as a
// task; the batch is then processed concurrently. Task failures are
// recorded on the task records and reported per task, so the command only
// returns an error for faults that prevent processing entirely.
func (c *RunCmd) Run(deps *Dependencies) error {
	ids := make([]string, 0, len(c.Files))
	for _, file := range c.Files {
		data, err := os.ReadFile(file)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", err)
			return err
		}

		task, err := yaml.ParseTask(data)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s: %s\n", file, scrapetask.ErrorMessage(err))
			return err
		}

		if err := deps.Tasks.CreateTask(deps.Ctx, task); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s: %s\n", file, scrapetask.ErrorMessage(err))
			return err
		}
		ids = append(ids, task.ID)
	}

	results := deps.Processor.ProcessAll(deps.Ctx, ids, c.Concurrency)

	var succeeded, failed int
	for _, r := range results {
		if r.Err != nil {
			failed++
			fmt.Fprintf(deps.Stderr, "error: task %s: %s\n", r.TaskID, scrapetask.ErrorMessage(r.Err))
			continue
		}
		switch r.Task.Stage {
		case scrapetask.StageSuccess:
			succeeded++
			fmt.Fprintf(deps.Stdout, "%s  %s  %d queries\n", r.Task.ID, r.Task.Stage, len(r.Task.Data))
		default:
			failed++
			fmt.Fprintf(deps.Stdout, "%s  %s  %s\n", r.Task.ID, r.Task.Stage, r.Task.Error)
		}
	}

	fmt.Fprintf(deps.Stdout, "Processed %d tasks: %d succeeded, %d failed\n", len(results), succeeded, failed)

	return nil
}

package main

import (
	"encoding/json"
	"fmt"

	"scrapetask"
)

// Run executes the tasks command.
func (c *TasksCmd) Run(deps *Dependencies) error {
	filter := scrapetask.TaskFilter{Limit: c.Limit}
	if c.Stage != "" {
		stage := scrapetask.TaskStage(c.Stage)
		filter.Stage = &stage
	}

	tasks, err := deps.Tasks.FindTasks(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", scrapetask.ErrorMessage(err))
		return err
	}

	if len(tasks) == 0 {
		fmt.Fprintln(deps.Stdout, "No tasks found. Use 'scrapetask run' to create some.")
		return nil
	}

	for _, t := range tasks {
		line := fmt.Sprintf("%s  %-10s  %s", t.ID, t.Stage, t.URL)
		if t.Error != "" {
			line += "  " + t.Error
		}
		fmt.Fprintln(deps.Stdout, line)
	}

	return nil
}

// Run executes the show command.
func (c *ShowCmd) Run(deps *Dependencies) error {
	task, err := deps.Tasks.FindTaskByID(deps.Ctx, c.ID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", scrapetask.ErrorMessage(err))
		return err
	}

	out, err := json.MarshalIndent(task, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(deps.Stdout, string(out))

	return nil
}

package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"scrapetask"
	"scrapetask/pipeline"
	"scrapetask/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	Logger    *slog.Logger
	DB        *sqlite.DB
	Tasks     scrapetask.TaskService
	Templates scrapetask.TemplateService
	Processor *pipeline.Processor
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Run      RunCmd      `cmd:"" help:"Run scrape tasks from definition files"`
	Tasks    TasksCmd    `cmd:"" help:"List stored tasks"`
	Show     ShowCmd     `cmd:"" help:"Show a stored task with its extracted data"`
	Template TemplateCmd `cmd:"" help:"Manage query templates"`

	Verbose bool `short:"v" help:"Enable debug logging"`
}

// RunCmd is the "run" subcommand.
type RunCmd struct {
	Files       []string      `arg:"" help:"Task definition files (YAML)"`
	Concurrency int           `short:"c" default:"4" help:"Concurrent task limit"`
	RPS         float64       `name:"rps" default:"1" help:"Max requests per second per host"`
	Timeout     time.Duration `default:"10s" help:"HTTP fetch timeout"`
}

// TasksCmd is the "tasks" subcommand.
type TasksCmd struct {
	Stage string `help:"Filter by stage (Pending, Validating, Processing, Success, Error)"`
	Limit int    `help:"Maximum number of tasks to show"`
}

// ShowCmd is the "show" subcommand.
type ShowCmd struct {
	ID string `arg:"" help:"Task id"`
}

// TemplateCmd groups the template subcommands.
type TemplateCmd struct {
	Add  TemplateAddCmd  `cmd:"" help:"Add a template from a definition file"`
	List TemplateListCmd `cmd:"" help:"List stored templates"`
}

// TemplateAddCmd is the "template add" subcommand.
type TemplateAddCmd struct {
	File string `arg:"" help:"Template definition file (YAML)"`
}

// TemplateListCmd is the "template list" subcommand.
type TemplateListCmd struct{}

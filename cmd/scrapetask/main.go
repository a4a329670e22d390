package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"scrapetask/goquery"
	taskhttp "scrapetask/http"
	"scrapetask/pipeline"
	taskslog "scrapetask/slog"
	"scrapetask/sqlite"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("scrapetask"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle help flags using Kong
	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'scrapetask --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	// Open database
	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set SCRAPETASK_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	// Wire core services into dependencies
	deps.DB = m.DB
	deps.Tasks = sqlite.NewTaskService(m.DB)
	deps.Templates = sqlite.NewTemplateService(m.DB)

	if cmd == "run" {
		fetcher := taskslog.NewLoggingFetcher(
			taskhttp.NewRateLimitedFetcher(
				taskhttp.NewFetcher(taskhttp.WithTimeout(cli.Run.Timeout)),
				taskhttp.NewHostLimiter(cli.Run.RPS),
			),
			deps.Logger,
		)

		deps.Processor = &pipeline.Processor{
			Tasks:     deps.Tasks,
			Templates: deps.Templates,
			Fetcher:   fetcher,
			Parser:    goquery.NewParser(),
			Events:    taskslog.NewEventPublisher(deps.Logger),
			Logger:    deps.Logger,
		}
	}

	return kongCtx.Run(deps)
}

func defaultDBPath() string {
	if path := os.Getenv("SCRAPETASK_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "scrapetask.db"
	}
	dir := filepath.Join(home, ".scrapetask")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "scrapetask.db")
}

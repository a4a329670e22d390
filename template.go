package scrapetask

import (
	"context"
	"time"
)

// Template is a named, reusable fragment of task configuration. Templates
// are administered out-of-band and are read-only during task processing.
type Template struct {
	ID      string  `json:"id"`
	URL     string  `json:"url,omitempty"`
	Queries []Query `json:"queries,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

// Validate returns an error if the template record is malformed. Unlike
// tasks, templates may omit queries entirely (a template can supply only a
// URL), and the URL itself is optional.
func (t *Template) Validate() error {
	if t == nil {
		return Errorf(EINVALID, "template is missing")
	}

	if t.URL != "" && !isAbsoluteURL(t.URL) {
		return Errorf(EINVALID, "template url ('url') is not a valid url: %q", t.URL)
	}

	if t.Queries != nil {
		if err := validateQueries(t.Queries); err != nil {
			return err
		}
	}

	return nil
}

// MergeTemplate merges a resolved template into a task and returns the
// effective task. The task is not mutated.
//
// The task's own URL wins when non-empty; otherwise the template's URL is
// substituted. Template queries are prepended to the task's queries and the
// concatenation is deduplicated by query id, first occurrence wins, so a
// template query takes precedence over a task query sharing its id.
func MergeTemplate(tmpl *Template, task *Task) (*Task, error) {
	if tmpl == nil {
		return nil, Errorf(EINTERNAL, "template not resolved")
	}
	if task == nil {
		return nil, Errorf(EINVALID, "task is missing")
	}

	merged := *task
	if merged.URL == "" {
		merged.URL = tmpl.URL
	}

	if len(tmpl.Queries) > 0 {
		queries := make([]Query, 0, len(tmpl.Queries)+len(task.Queries))
		seen := make(map[string]bool)
		for _, q := range append(append([]Query{}, tmpl.Queries...), task.Queries...) {
			if seen[q.ID] {
				continue
			}
			seen[q.ID] = true
			queries = append(queries, q)
		}
		merged.Queries = queries
	}

	return &merged, nil
}

// TemplateService represents a service for managing template records.
type TemplateService interface {
	// CreateTemplate creates a new template record.
	CreateTemplate(ctx context.Context, tmpl *Template) error

	// FindTemplateByID retrieves a template by ID.
	// Returns ENOTFOUND if the template does not exist.
	FindTemplateByID(ctx context.Context, id string) (*Template, error)

	// FindTemplates retrieves all templates, newest first.
	FindTemplates(ctx context.Context, filter TemplateFilter) ([]*Template, error)
}

// TemplateFilter represents a filter for FindTemplates.
type TemplateFilter struct {
	ID *string `json:"id"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
